package shape

import (
	"sort"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
)

// ViewPlanner collects every view-only member of a type, grouped by source
// interface stable id, and attaches each group to the type as an explicit
// view. Must run after every pass that can produce
// view-only members (structural conformance 4.2.2, explicit-implementation
// synthesis 4.2.5) and before the class-surface deduplicator (4.2.12),
// which demotes rival winners into these same views.
func ViewPlanner(g *graph.Graph, bag *diagnostics.Bag) *graph.Graph {
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		groups := make(map[string][]*graph.Member)
		seenInGroup := make(map[string]map[string]bool)
		for _, m := range t.AllMembers() {
			if m.EmitScope != graph.ScopeViewOnly {
				continue
			}
			if m.SourceInterface == nil {
				bag.Error(diagnostics.VIEWMissingSourceInterface,
					"view-only member \""+m.CLRName+"\" has no source interface", t.StableID, m.StableID, "")
				continue
			}
			ifaceID := m.SourceInterface.InterfaceStableID
			if seenInGroup[ifaceID] == nil {
				seenInGroup[ifaceID] = make(map[string]bool)
			}
			if seenInGroup[ifaceID][m.StableID] {
				bag.Warning(diagnostics.VIEWMemberInMultipleViews,
					"member \""+m.CLRName+"\" attached to the same view more than once", t.StableID, m.StableID, "")
				continue
			}
			seenInGroup[ifaceID][m.StableID] = true
			groups[ifaceID] = append(groups[ifaceID], m)
		}
		if len(groups) == 0 {
			return t
		}
		ifaceIDs := make([]string, 0, len(groups))
		for id := range groups {
			ifaceIDs = append(ifaceIDs, id)
		}
		sort.Strings(ifaceIDs)

		views := make([]*graph.ExplicitView, 0, len(groups))
		for _, ifaceID := range ifaceIDs {
			members := groups[ifaceID]
			if len(members) == 0 {
				bag.Warning(diagnostics.VIEWEmpty, "planned view has zero members", t.StableID, "", ifaceID)
				continue
			}
			ref := closedInterfaceRef(t, ifaceID)
			if ref == nil {
				if iface, ok := g.TypeByStableID(ifaceID); ok {
					ref = iface.Reference()
				}
			}
			views = append(views, &graph.ExplicitView{
				SourceInterfaceStableID: ifaceID,
				PropertyName:            graph.ViewName(ref),
				Members:                 members,
			})
		}
		return t.WithViews(views)
	})
}

// closedInterfaceRef returns the TypeRef from t's own Interfaces list whose
// stable id matches ifaceID, carrying whatever closed type arguments t
// declared when implementing it (e.g. the `<string>` in
// `IEnumerable<string>`), which the interface's own Type symbol does not
// retain.
func closedInterfaceRef(t *graph.Type, ifaceID string) *graph.TypeRef {
	for _, ref := range t.Interfaces {
		if ref.StableID() == ifaceID {
			return ref
		}
	}
	return nil
}
