package shape

import "github.com/tsbindgen/tsbindgen/internal/graph"

// MemberDeduplicator removes exact duplicates by member stable id. Several
// preceding passes (conformance, explicit-implementation synthesiser) may
// independently synthesise the same view-only clone for the same
// interface member; this is the safety net that collapses them back to
// one copy before view planning groups members by source interface.
func MemberDeduplicator(g *graph.Graph) *graph.Graph {
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		seen := make(map[string]bool)
		changed := false
		dedupe := func(in []*graph.Member) []*graph.Member {
			out := make([]*graph.Member, 0, len(in))
			for _, m := range in {
				if seen[m.StableID] {
					changed = true
					continue
				}
				seen[m.StableID] = true
				out = append(out, m)
			}
			return out
		}
		bundle := &graph.MemberBundle{
			Constructors: dedupe(t.Members.Constructors),
			Fields:       dedupe(t.Members.Fields),
			Properties:   dedupe(t.Members.Properties),
			Events:       dedupe(t.Members.Events),
			Methods:      dedupe(t.Members.Methods),
		}
		if !changed {
			return t
		}
		return t.WithMembers(bundle)
	})
}
