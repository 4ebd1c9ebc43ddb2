package shape

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
)

// OverloadReturnConflictDetector groups a type's methods by "signature
// without return type" within each scope (class-surface, view-only kept
// separate by source interface); two members sharing that group with
// different return types is a conflict the target cannot express, since
// the target has no overloading on return type alone.
//
// Records a finding and marks the later member's provenance as
// overload-return-conflict; it does not remove either member, leaving the
// decision of which one survives to Emit/Phase Gate policy.
func OverloadReturnConflictDetector(g *graph.Graph, bag *diagnostics.Bag) *graph.Graph {
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		groups := make(map[string][]*graph.Member)
		for _, m := range t.Members.Methods {
			key := scopeGroupKey(m) + "|" + signatureWithoutReturn(m)
			groups[key] = append(groups[key], m)
		}
		var conflicted []string
		for _, members := range groups {
			if len(members) < 2 {
				continue
			}
			firstReturn := graph.TypeName(members[0].ReturnType)
			for _, m := range members[1:] {
				if graph.TypeName(m.ReturnType) != firstReturn {
					conflicted = append(conflicted, m.StableID)
					bag.Warning(diagnostics.OVReturnOnlyConflict,
						"method \""+m.CLRName+"\" overloads differ only by return type; the target cannot express this",
						t.StableID, m.StableID, "")
				}
			}
		}
		if len(conflicted) == 0 {
			return t
		}
		flagged := make(map[string]bool, len(conflicted))
		for _, id := range conflicted {
			flagged[id] = true
		}
		methods := make([]*graph.Member, len(t.Members.Methods))
		for i, m := range t.Members.Methods {
			if flagged[m.StableID] {
				clone := *m
				clone.Provenance = graph.ProvenanceOverloadReturnConflict
				methods[i] = &clone
			} else {
				methods[i] = m
			}
		}
		bundle := *t.Members
		bundle.Methods = methods
		return t.WithMembers(&bundle)
	})
}

func scopeGroupKey(m *graph.Member) string {
	if m.EmitScope == graph.ScopeViewOnly && m.SourceInterface != nil {
		return "view:" + m.SourceInterface.InterfaceStableID
	}
	return "class"
}

func signatureWithoutReturn(m *graph.Member) string {
	em := *m
	em.ReturnType = nil
	return graph.CanonicalSignature(&em)
}
