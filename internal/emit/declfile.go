package emit

import (
	"fmt"
	"strings"

	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/importplan"
)

// RenderInternalDecl renders one namespace's internal declaration file —
// the only file another namespace may import — in forward-reference-safe emission order.
func RenderInternalDecl(rc *RenderContext, ns *graph.Namespace, refs []importplan.CrossNamespaceRef) string {
	w := &indentWriter{}
	renderImports(w, rc, refs)
	for _, t := range importplan.OrderedTypes(ns) {
		if t.Accessibility != graph.AccessPublic && t.Accessibility != graph.AccessInternal {
			continue
		}
		renderType(w, rc, t)
		w.blank()
	}
	return w.String()
}

func renderImports(w *indentWriter, rc *RenderContext, refs []importplan.CrossNamespaceRef) {
	byTarget := map[string]bool{}
	var ordered []importplan.CrossNamespaceRef
	for _, r := range refs {
		if r.SourceNamespace != rc.Namespace || byTarget[r.TargetTypeID] {
			continue
		}
		byTarget[r.TargetTypeID] = true
		ordered = append(ordered, r)
	}
	if len(ordered) == 0 {
		return
	}
	for _, r := range ordered {
		t, ok := rc.Graph.TypeByStableID(r.TargetTypeID)
		if !ok || t.EmitName == nil {
			continue
		}
		name := *t.EmitName
		clause := name
		if alias, ok := rc.Aliases[r.TargetTypeID]; ok {
			clause = name + " as " + alias
		}
		path := importplan.RelativeImportPath(rc.Namespace, r.TargetNamespace)
		w.line(fmt.Sprintf("import { %s } from %q;", clause, path))
	}
	w.blank()
}

func renderType(w *indentWriter, rc *RenderContext, t *graph.Type) {
	switch t.Kind {
	case graph.KindEnum:
		renderEnum(w, t)
	case graph.KindDelegate:
		renderDelegate(w, rc, t)
	case graph.KindInterface:
		renderInterface(w, rc, t)
	default:
		renderClassLike(w, rc, t)
	}
}

func renderEnum(w *indentWriter, t *graph.Type) {
	w.line("export const enum " + emitName(t) + " {")
	w.indent()
	for _, m := range t.AllMembers() {
		if m.Kind != graph.MemberField || m.EmitScope == graph.ScopeOmitted {
			continue
		}
		w.line(m.EmitName + ",")
	}
	w.unindent()
	w.line("}")
}

func renderDelegate(w *indentWriter, rc *RenderContext, t *graph.Type) {
	invoke := findInvoke(t)
	if invoke == nil {
		w.line("export type " + emitName(t) + " = (...args: unknown[]) => unknown;")
		return
	}
	w.line("export type " + emitName(t) + " = (" + renderParamList(rc, invoke.Params) + ") => " + rc.TSType(invoke.ReturnType) + ";")
}

func findInvoke(t *graph.Type) *graph.Member {
	for _, m := range t.AllMembers() {
		if m.Kind == graph.MemberMethod && m.EmitScope != graph.ScopeOmitted {
			return m
		}
	}
	return nil
}

func renderInterface(w *indentWriter, rc *RenderContext, t *graph.Type) {
	header := "export interface " + emitName(t) + genericParamList(t.GenericParams)
	if extends := extendsClause(rc, t.Interfaces); extends != "" {
		header += " extends " + extends
	}
	w.line(header + " {")
	w.indent()
	for _, m := range importplan.OrderedMembers(t) {
		if m.EmitScope == graph.ScopeOmitted {
			continue
		}
		renderMemberSignature(w, rc, m, false)
	}
	w.unindent()
	w.line("}")
}

func renderClassLike(w *indentWriter, rc *RenderContext, t *graph.Type) {
	header := "export declare class " + emitName(t) + genericParamList(t.GenericParams)
	if t.BaseType != nil {
		header += " extends " + rc.TSType(t.BaseType)
	}
	if implements := extendsClause(rc, t.Interfaces); implements != "" {
		header += " implements " + implements
	}
	w.line(header + " {")
	w.indent()
	for _, m := range importplan.OrderedMembers(t) {
		if m.EmitScope != graph.ScopeClassSurface && m.EmitScope != graph.ScopeStaticSurface {
			continue
		}
		renderMemberSignature(w, rc, m, m.EmitScope == graph.ScopeStaticSurface)
	}
	w.unindent()
	w.line("}")

	viewMembers := collectViewMembers(t)
	if len(viewMembers) == 0 {
		return
	}
	w.blank()
	w.line("export interface " + emitName(t) + " {")
	w.indent()
	for _, m := range viewMembers {
		renderMemberSignature(w, rc, m, false)
	}
	w.unindent()
	w.line("}")
}

func collectViewMembers(t *graph.Type) []*graph.Member {
	var out []*graph.Member
	for _, v := range t.Views {
		out = append(out, v.Members...)
	}
	return out
}

func renderMemberSignature(w *indentWriter, rc *RenderContext, m *graph.Member, static bool) {
	prefix := ""
	if static {
		prefix = "static "
	}
	switch m.Kind {
	case graph.MemberConstructor:
		w.line("constructor(" + renderParamList(rc, m.Params) + ");")
	case graph.MemberMethod:
		w.line(prefix + tsIdentOrLiteral(m.EmitName) + genericParamList(m.GenericParams) + "(" + renderParamList(rc, m.Params) + "): " + rc.TSType(m.ReturnType) + ";")
	case graph.MemberProperty:
		if len(m.IndexParams) > 0 {
			w.line(prefix + "[" + renderParamList(rc, m.IndexParams) + "]: " + rc.TSType(m.PropertyType) + ";")
			return
		}
		readonly := ""
		if m.SetterReadonly {
			readonly = "readonly "
		}
		w.line(prefix + readonly + tsIdentOrLiteral(m.EmitName) + ": " + rc.TSType(m.PropertyType) + ";")
	case graph.MemberField:
		w.line(prefix + tsIdentOrLiteral(m.EmitName) + ": " + rc.TSType(m.FieldType) + ";")
	case graph.MemberEvent:
		w.line(prefix + tsIdentOrLiteral(m.EmitName) + ": " + rc.TSType(m.EventHandlerType) + ";")
	}
}

func renderParamList(rc *RenderContext, params []graph.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		parts[i] = name + ": " + rc.TSType(p.Type)
	}
	return strings.Join(parts, ", ")
}

func genericParamList(params []*graph.GenericParam) string {
	if len(params) == 0 {
		return ""
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return "<" + strings.Join(names, ", ") + ">"
}

func extendsClause(rc *RenderContext, ifaces []*graph.TypeRef) string {
	if len(ifaces) == 0 {
		return ""
	}
	parts := make([]string, len(ifaces))
	for i, ref := range ifaces {
		parts[i] = rc.TSType(ref)
	}
	return strings.Join(parts, ", ")
}

func emitName(t *graph.Type) string {
	if t.EmitName != nil {
		return *t.EmitName
	}
	return t.CLRFullName
}
