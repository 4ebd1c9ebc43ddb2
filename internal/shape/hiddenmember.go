package shape

import (
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// HiddenMemberPlanner finds members that shadow a base member under the
// source language's explicit "new" keyword — same simple name as a base
// member, not marked as an override — and asks the Renamer to reserve an
// alternative name (e.g. "method_new") in the class's instance or static
// scope. Does not modify the graph itself: the member's CLR name and
// emit scope are untouched, only a rename decision is recorded for Emit
// to consult later.
func HiddenMemberPlanner(g *graph.Graph, r *rename.Renamer, pol policy.Policy, style rename.Style) {
	for _, t := range g.AllTypes() {
		if t.BaseType == nil {
			continue
		}
		base, ok := g.TypeByStableID(t.BaseType.StableID())
		if !ok {
			continue
		}
		baseNames := make(map[string]bool)
		for _, m := range base.AllMembers() {
			baseNames[m.CLRName] = true
		}
		for _, m := range t.AllMembers() {
			if m.Provenance != graph.ProvenanceHiddenNew {
				continue
			}
			if !baseNames[m.CLRName] {
				continue
			}
			scope := instanceOrStaticScope(t, m)
			r.Reserve(rename.Request{
				StableID: m.StableID,
				Base:     m.CLRName + pol.Classes.HiddenMemberSuffix,
				Scope:    scope,
				Style:    style,
				Reason:   rename.ReasonHiddenMember,
				Source:   rename.SourceSynthesis,
				Static:   m.IsStatic,
			})
		}
	}
}

func instanceOrStaticScope(t *graph.Type, m *graph.Member) rename.Scope {
	return rename.ClassScope(t.CLRFullName, m.IsStatic)
}
