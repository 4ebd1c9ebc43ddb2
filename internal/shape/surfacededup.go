package shape

import (
	"sort"

	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// ClassSurfaceDeduplicator groups a type's class-surface properties by
// their post-style-transform name — two CLR properties
// that only differ by generic specialisation (`object Current` from
// `IEnumerator`, `T Current` from `IEnumerator<T>`) camel-case to the same
// target name and would otherwise collide at Name Reservation. In any
// group larger than one, picks a winner (preference order: non-synthesised
// over synthesised, generic-parameterised over concrete, any narrower type
// over System.Object, then a lexicographically stable tie-break on stable
// id) and demotes the rest to view-only, attaching each loser to the view
// belonging to its own source interface when it has one, or synthesising
// a same-interface view entry otherwise.
//
// Must run after the view planner (4.2.11) so a view already exists to
// receive demoted losers.
func ClassSurfaceDeduplicator(g *graph.Graph, style rename.Style) *graph.Graph {
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		groups := make(map[string][]*graph.Member)
		order := make([]string, 0)
		for _, m := range t.Members.Properties {
			if m.EmitScope != graph.ScopeClassSurface && m.EmitScope != graph.ScopeUnspecified {
				continue
			}
			name := rename.Transform(m.CLRName, style)
			if _, ok := groups[name]; !ok {
				order = append(order, name)
			}
			groups[name] = append(groups[name], m)
		}
		hasConflict := false
		for _, ms := range groups {
			if len(ms) > 1 {
				hasConflict = true
				break
			}
		}
		if !hasConflict {
			return t
		}

		demoted := make(map[string]bool)
		views := append([]*graph.ExplicitView{}, t.Views...)
		viewByIface := make(map[string]int)
		for i, v := range views {
			viewByIface[v.SourceInterfaceStableID] = i
		}

		for _, name := range order {
			ms := groups[name]
			if len(ms) < 2 {
				continue
			}
			sort.SliceStable(ms, func(i, j int) bool {
				return rankSurfaceCandidate(ms[i]) < rankSurfaceCandidate(ms[j])
			})
			for _, loser := range ms[1:] {
				demoted[loser.StableID] = true
				ifaceID := ""
				if loser.SourceInterface != nil {
					ifaceID = loser.SourceInterface.InterfaceStableID
				}
				clone := *loser
				clone.EmitScope = graph.ScopeViewOnly
				if clone.SourceInterface == nil {
					clone.SourceInterface = &graph.TypeRef{Kind: graph.RefNamed, InterfaceStableID: t.StableID}
					ifaceID = t.StableID
				}
				if idx, ok := viewByIface[ifaceID]; ok {
					v := *views[idx]
					v.Members = append(append([]*graph.Member{}, v.Members...), &clone)
					views[idx] = &v
				} else {
					viewByIface[ifaceID] = len(views)
					views = append(views, &graph.ExplicitView{
						SourceInterfaceStableID: ifaceID,
						PropertyName:            "As_" + name,
						Members:                 []*graph.Member{&clone},
					})
				}
			}
		}

		properties := make([]*graph.Member, 0, len(t.Members.Properties))
		for _, m := range t.Members.Properties {
			if demoted[m.StableID] {
				continue
			}
			properties = append(properties, m)
		}
		bundle := *t.Members
		bundle.Properties = properties
		nt := t.WithMembers(&bundle)
		return nt.WithViews(views)
	})
}

// rankSurfaceCandidate returns a sort key where lower sorts first (wins):
// non-synthesised before synthesised, generic-parameterised before
// concrete, narrower (non-Object) type before Object, then stable id.
func rankSurfaceCandidate(m *graph.Member) string {
	synth := "0"
	if m.Provenance != graph.ProvenanceOriginal {
		synth = "1"
	}
	generic := "1"
	if m.PropertyType != nil && m.PropertyType.Kind == graph.RefGenericParam {
		generic = "0"
	}
	narrow := "0"
	if graph.TypeName(m.PropertyType) == "System.Object" {
		narrow = "1"
	}
	return synth + generic + narrow + m.StableID
}
