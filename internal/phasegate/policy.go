package phasegate

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// policyRules confirm the configured policy's "error" strategies actually
// fired when their trigger condition held, so a silently-ignored policy
// setting cannot slip an unwanted shape past Emit.
var policyRules = []Rule{
	{Name: "policy/diamond-error-strategy", Check: checkDiamondErrorStrategy},
	{Name: "policy/static-side-error-strategy", Check: checkStaticSideErrorStrategy},
}

func checkDiamondErrorStrategy(g *graph.Graph, _ *rename.Renamer, pol policy.Policy, bag *diagnostics.Bag) {
	if pol.Interfaces.DiamondResolution != graph.DiamondError {
		return
	}
	for _, t := range allTypesRecursive(g) {
		for _, m := range t.AllMembers() {
			if m.Provenance == graph.ProvenanceDiamondResolved {
				bag.Error(diagnostics.PolicyDiamondError,
					"member \""+m.CLRName+"\" of \""+t.CLRFullName+"\" required diamond resolution under the \"error\" policy",
					t.StableID, m.StableID, "")
			}
		}
	}
}

func checkStaticSideErrorStrategy(g *graph.Graph, _ *rename.Renamer, pol policy.Policy, bag *diagnostics.Bag) {
	if pol.StaticSide.Action != graph.StaticSideError {
		return
	}
	for _, t := range allTypesRecursive(g) {
		for _, m := range t.AllMembers() {
			if m.IsStatic && m.EmitScope == graph.ScopeStaticSurface && m.Provenance == graph.ProvenanceHiddenNew {
				bag.Error(diagnostics.PolicyStaticSideError,
					"static member \""+m.CLRName+"\" of \""+t.CLRFullName+"\" required static-side hiding under the \"error\" policy",
					t.StableID, m.StableID, "")
			}
		}
	}
}
