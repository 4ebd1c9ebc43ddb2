package emit

import (
	"strconv"
	"strings"

	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/importplan"
)

// RenderContext carries the read-only state every render function in this
// package needs: the validated graph (for resolving a referenced type's
// emit name) and the current namespace's assigned import aliases.
type RenderContext struct {
	Graph            *graph.Graph
	Namespace        string
	Aliases          map[string]string // target stable id -> alias, this namespace only
}

// NewRenderContext builds the render context for one namespace's files.
func NewRenderContext(g *graph.Graph, namespace string, aliases importplan.Aliases) *RenderContext {
	return &RenderContext{Graph: g, Namespace: namespace, Aliases: aliases[namespace]}
}

// TSType renders r as a TypeScript type expression, resolving named
// references to their final emit name (aliased, if the import planner
// assigned one for this namespace) rather than their CLR name.
func (rc *RenderContext) TSType(r *graph.TypeRef) string {
	if r == nil {
		return "void"
	}
	switch r.Kind {
	case graph.RefNamed:
		return rc.namedRefName(r) + rc.typeArgumentList(r.TypeArguments)
	case graph.RefGenericParam:
		return r.ParamName
	case graph.RefArray:
		return "(" + rc.TSType(r.Element) + ")" + strings.Repeat("[]", maxInt(r.Rank, 1))
	case graph.RefPointer:
		// Raw pointers cannot be represented; Phase Gate's
		// typerefs/no-raw-pointer-in-public-api rule already flags any
		// survivor in the public surface (diagnostics.TYPEMAPRawPointer).
		return "unknown /* pointer */"
	case graph.RefByReference:
		return rc.TSType(r.Referent)
	case graph.RefNested:
		if r.Full != nil {
			return rc.TSType(r.Full)
		}
		return "unknown /* unresolved nested type */"
	case graph.RefPlaceholder:
		return "unknown /* unresolved placeholder */"
	default:
		return "unknown"
	}
}

func (rc *RenderContext) namedRefName(r *graph.TypeRef) string {
	id := r.StableID()
	if alias, ok := rc.Aliases[id]; ok {
		return alias
	}
	if t, ok := rc.Graph.TypeByStableID(id); ok && t.EmitName != nil {
		return *t.EmitName
	}
	return r.SimpleName
}

func (rc *RenderContext) typeArgumentList(args []*graph.TypeRef) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('<')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(rc.TSType(a))
	}
	b.WriteByte('>')
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// tsIdentOrLiteral quotes name as a TS property key when it is not a valid
// bare identifier (e.g. a name produced by the indexer planner or an
// explicit-interface-implementation form).
func tsIdentOrLiteral(name string) string {
	if name == "" {
		return `""`
	}
	valid := isIdentStart(name[0])
	for i := 1; valid && i < len(name); i++ {
		if !isIdentPart(name[i]) {
			valid = false
		}
	}
	if valid {
		return name
	}
	return strconv.Quote(name)
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// indentWriter is a tiny helper around strings.Builder that tracks nesting
// depth — a small hand-rolled printer rather than a template engine, for
// structured, deterministic text output.
type indentWriter struct {
	b     strings.Builder
	depth int
}

func (w *indentWriter) line(s string) {
	w.b.WriteString(strings.Repeat("  ", w.depth))
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *indentWriter) blank() { w.b.WriteByte('\n') }

func (w *indentWriter) indent()   { w.depth++ }
func (w *indentWriter) unindent() { w.depth-- }

func (w *indentWriter) String() string { return w.b.String() }
