package phasegate

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/importplan"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// importRules enforce that the public API surface never leaks an
// internal-only type, that every foreign reference resolves to an entry in
// the import plan, and that every such entry is actually re-exported from
// its owning namespace's façade.
var importRules = []Rule{
	{Name: "imports/no-internal-leak", Check: checkNoInternalTypeLeaked},
	{Name: "imports/cross-namespace-refs-resolve", Check: checkCrossNamespaceRefsResolve},
	{Name: "imports/target-re-exported", Check: checkImportTargetReExported},
}

func checkNoInternalTypeLeaked(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		if t.Accessibility != graph.AccessPublic {
			continue
		}
		for _, m := range t.AllMembers() {
			if m.EmitScope == graph.ScopeOmitted || m.Visibility != graph.AccessPublic {
				continue
			}
			walkMemberRefs(m, func(r *graph.TypeRef) {
				id := r.StableID()
				if id == "" {
					return
				}
				target, ok := g.TypeByStableID(id)
				if ok && target.Accessibility != graph.AccessPublic {
					bag.Error(diagnostics.APIInternalTypeLeaked,
						"public member \""+m.CLRName+"\" of \""+t.CLRFullName+"\" names internal type \""+target.CLRFullName+"\"",
						t.StableID, m.StableID, "")
				}
			})
		}
	}
}

// checkCrossNamespaceRefsResolve re-derives the cross-namespace reference
// graph and confirms every reference resolved to a known namespace — the
// same bag the import planner itself wrote to, so a duplicate finding is
// deduplicated rather than double-counted.
func checkCrossNamespaceRefsResolve(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	importplan.BuildReferenceGraph(g, bag)
}

func checkImportTargetReExported(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	refs := importplan.BuildReferenceGraph(g, diagnostics.NewBag())
	for ns, list := range refs {
		for _, ref := range list {
			owningNS, ok := g.NamespaceOwning(ref.TargetTypeID)
			if !ok || owningNS != ref.TargetNamespace {
				bag.Error(diagnostics.EXPORTNotReExported,
					"namespace \""+ns+"\" imports \""+ref.TargetTypeID+"\" from \""+ref.TargetNamespace+"\" but that type is not re-exported there",
					ref.TargetTypeID, "", "")
			}
		}
	}
}
