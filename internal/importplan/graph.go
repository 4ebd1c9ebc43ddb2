// Package importplan implements the import graph & emit order planner:
// builds the cross-namespace reference graph, assigns disambiguating
// aliases, plans each namespace's file paths, computes the
// forward-reference-safe emission order, and audits constructor-
// constraint loss across implemented interfaces.
package importplan

import (
	"strings"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
)

// Reason tags why a cross-namespace reference exists.
type Reason string

const (
	ReasonBaseClass         Reason = "base-class"
	ReasonInterface         Reason = "interface"
	ReasonGenericConstraint Reason = "generic-constraint"
	ReasonConstructorParam  Reason = "constructor-parameter"
	ReasonMethodParam       Reason = "method-parameter"
	ReasonMethodReturn      Reason = "method-return"
	ReasonPropertyType      Reason = "property-type"
	ReasonFieldType         Reason = "field-type"
	ReasonEventHandlerType  Reason = "event-handler-type"
	ReasonIndexParam        Reason = "index-parameter"
)

// CrossNamespaceRef records that a public type in SourceNamespace names a
// type owned by TargetNamespace, and why.
type CrossNamespaceRef struct {
	SourceNamespace string
	TargetNamespace string
	SourceTypeID    string
	TargetTypeID    string
	Reason          Reason
}

// BuildReferenceGraph walks every public type's base, interfaces,
// constraints, and every (non-omitted) member's signature recursively into
// generic type arguments, array elements, pointer pointees, and by-
// reference referents, recording one CrossNamespaceRef per foreign named
// type reached, keyed by the source namespace.
//
// The lookup key for a referenced type is always its open-generic stable
// id (TypeRef.StableID(), which encodes arity, never closed type
// arguments) — never an assembly-qualified constructed form. Should one
// ever reach here regardless, it is flagged rather than silently admitted
// into an import statement with garbage type arguments.
func BuildReferenceGraph(g *graph.Graph, bag *diagnostics.Bag) map[string][]CrossNamespaceRef {
	refs := make(map[string][]CrossNamespaceRef)
	for _, ns := range g.Namespaces() {
		for _, t := range ns.Types {
			walkType(g, ns.Name, t, refs, bag)
		}
	}
	return refs
}

func walkType(g *graph.Graph, sourceNS string, t *graph.Type, refs map[string][]CrossNamespaceRef, bag *diagnostics.Bag) {
	if t.Accessibility == graph.AccessPublic {
		visited := make(map[string]bool)
		record := func(ref *graph.TypeRef, reason Reason) {
			addRef(g, sourceNS, t.StableID, ref, reason, refs, visited, bag)
		}
		if t.BaseType != nil {
			record(t.BaseType, ReasonBaseClass)
		}
		for _, iface := range t.Interfaces {
			record(iface, ReasonInterface)
		}
		for _, gp := range t.GenericParams {
			for _, c := range gp.Constraints {
				record(c, ReasonGenericConstraint)
			}
		}
		for _, m := range t.AllMembers() {
			if m.EmitScope == graph.ScopeOmitted {
				continue
			}
			walkMember(m, record)
		}
		for _, v := range t.Views {
			for _, m := range v.Members {
				walkMember(m, record)
			}
		}
	}
	for _, n := range t.Nested {
		walkType(g, sourceNS, n, refs, bag)
	}
}

func walkMember(m *graph.Member, record func(*graph.TypeRef, Reason)) {
	paramReason := ReasonMethodParam
	if m.Kind == graph.MemberConstructor {
		paramReason = ReasonConstructorParam
	}
	for _, p := range m.Params {
		record(p.Type, paramReason)
	}
	if m.ReturnType != nil {
		record(m.ReturnType, ReasonMethodReturn)
	}
	if m.PropertyType != nil {
		record(m.PropertyType, ReasonPropertyType)
	}
	for _, p := range m.IndexParams {
		record(p.Type, ReasonIndexParam)
	}
	if m.FieldType != nil {
		record(m.FieldType, ReasonFieldType)
	}
	if m.EventHandlerType != nil {
		record(m.EventHandlerType, ReasonEventHandlerType)
	}
	for _, gp := range m.GenericParams {
		for _, c := range gp.Constraints {
			record(c, ReasonGenericConstraint)
		}
	}
}

func addRef(g *graph.Graph, sourceNS, sourceTypeID string, ref *graph.TypeRef, reason Reason, refs map[string][]CrossNamespaceRef, visited map[string]bool, bag *diagnostics.Bag) {
	ref.WalkTypeArguments(func(r *graph.TypeRef) {
		if r == nil || r.Kind == graph.RefGenericParam || r.Kind == graph.RefPlaceholder {
			return
		}
		id := r.StableID()
		if id == "" {
			return
		}
		if strings.ContainsAny(id, "[,") || strings.Contains(id, "Culture=") {
			bag.Error(diagnostics.IMPORTConstructedKeyLeaked,
				"constructed-generic or assembly-qualified key reached the import planner: "+id,
				sourceTypeID, "", "")
			return
		}
		if visited[id] {
			return
		}
		visited[id] = true
		targetNS, ok := g.NamespaceOwning(id)
		if !ok {
			bag.Warning(diagnostics.IMPORTMissing, "referenced type not found in graph: "+id, sourceTypeID, "", "")
			return
		}
		if targetNS == sourceNS {
			return
		}
		refs[sourceNS] = append(refs[sourceNS], CrossNamespaceRef{
			SourceNamespace: sourceNS,
			TargetNamespace: targetNS,
			SourceTypeID:    sourceTypeID,
			TargetTypeID:    id,
			Reason:          reason,
		})
	})
}
