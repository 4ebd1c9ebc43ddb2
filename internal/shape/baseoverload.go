package shape

import (
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/stableid"
)

// BaseOverloadAdder adds synthetic class-surface members to a derived
// class for every base overload of any method name the derived class also
// overloads. The target requires every overload of an overridden method to
// appear on the derived type, unlike the source runtime where an
// unshadowed base overload remains reachable through ordinary
// inheritance.
//
// Uses the derived type's stable id for the synthetic copy — the
// synthesised member is owned by the derived type, not the base, so later
// passes (dedup, name reservation) see it as the derived type's own
// member.
func BaseOverloadAdder(g *graph.Graph) *graph.Graph {
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		if t.BaseType == nil || (t.Kind != graph.KindClass && t.Kind != graph.KindStruct) {
			return t
		}
		base, ok := g.TypeByStableID(t.BaseType.StableID())
		if !ok {
			return t
		}
		ownNames := make(map[string]bool)
		for _, m := range t.Members.Methods {
			ownNames[m.CLRName] = true
		}
		if len(ownNames) == 0 {
			return t
		}
		ownSigs := make(map[string]bool)
		for _, m := range t.Members.Methods {
			ownSigs[m.CanonicalSignature()] = true
		}

		var added []*graph.Member
		for _, baseMethod := range allBaseMethods(g, base) {
			if !ownNames[baseMethod.CLRName] {
				continue
			}
			if ownSigs[baseMethod.CanonicalSignature()] {
				continue
			}
			clone := *baseMethod
			clone.StableID = stableid.Member(t.Assembly, t.CLRFullName, baseMethod.CLRName, baseMethod.CanonicalSignature())
			clone.Provenance = graph.ProvenanceBaseOverload
			clone.EmitScope = graph.ScopeClassSurface
			ownSigs[clone.CanonicalSignature()] = true
			added = append(added, &clone)
		}
		if len(added) == 0 {
			return t
		}
		bundle := t.Members
		for _, m := range added {
			bundle = bundle.AppendByKind(m)
		}
		return t.WithMembers(bundle)
	})
}

// allBaseMethods walks every ancestor class transitively, collecting
// every method so a two-level-deep overload chain is still surfaced.
func allBaseMethods(g *graph.Graph, t *graph.Type) []*graph.Member {
	out := append([]*graph.Member{}, t.Members.Methods...)
	if t.BaseType != nil {
		if parent, ok := g.TypeByStableID(t.BaseType.StableID()); ok {
			out = append(out, allBaseMethods(g, parent)...)
		}
	}
	return out
}

