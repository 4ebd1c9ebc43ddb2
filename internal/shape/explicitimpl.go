package shape

import (
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/index"
)

// ExplicitImplementationSynthesiser collects every member required by
// every interface a type implements (post-flattening, post-internal-
// filter). Any member present on the interface but absent from the type
// (by member stable id identity) becomes a synthesised view-only clone,
// inheriting the interface member's stable id. Deduplicates by stable id,
// since several interfaces can demand the same member.
//
// Runs after the Interface Inliner (4.2.3) — it depends on each
// interface's flattened member list rather than walking `extends` chains
// itself. Uses the Interface Resolver (4.2.6) to attribute each
// synthesised member to the most ancestral interface that actually
// declared it, rather than the (possibly derived) interface named in the
// type's own `implements` clause.
func ExplicitImplementationSynthesiser(g *graph.Graph, idx index.Indexes) *graph.Graph {
	resolver := NewInterfaceResolver(idx)
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		have := make(map[string]bool)
		for _, m := range t.AllMembers() {
			have[m.StableID] = true
		}
		var synthesized []*graph.Member
		seen := make(map[string]bool)
		for _, ifaceRef := range t.Interfaces {
			ifaceID := ifaceRef.StableID()
			iface, ok := g.TypeByStableID(ifaceID)
			if !ok {
				continue
			}
			for _, m := range iface.AllMembers() {
				if have[m.StableID] || seen[m.StableID] {
					continue
				}
				seen[m.StableID] = true
				attribution := ifaceID
				if owner, found := resolver.Resolve(ifaceID, m.CanonicalSignature()); found {
					attribution = owner
				}
				synthesized = append(synthesized, cloneAsView(m, attribution))
			}
		}
		if len(synthesized) == 0 {
			return t
		}
		bundle := t.Members
		for _, m := range synthesized {
			bundle = bundle.AppendByKind(m)
		}
		return t.WithMembers(bundle)
	})
}
