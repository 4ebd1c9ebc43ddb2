package phasegate

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// finalisationRules enforce the Phase Gate contract that every symbol has
// an explicit emit scope and a final name recorded in the correct scope.
var finalisationRules = []Rule{
	{Name: "finalisation/emit-scope-specified", Check: checkEmitScopeSpecified},
	{Name: "finalisation/type-name-assigned", Check: checkTypeNameAssigned},
	{Name: "finalisation/rename-decision-present", Check: checkRenameDecisionPresent},
}

func checkEmitScopeSpecified(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		for _, m := range t.AllMembers() {
			if m.EmitScope == graph.ScopeUnspecified {
				bag.Error(diagnostics.FINUnspecifiedEmitScope,
					"member \""+m.CLRName+"\" of \""+t.CLRFullName+"\" reached Phase Gate with unspecified emit scope",
					t.StableID, m.StableID, "")
			}
		}
	}
}

func checkTypeNameAssigned(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		if t.EmitName == nil {
			bag.Error(diagnostics.FINMissingRenameDecision,
				"type \""+t.CLRFullName+"\" reached Phase Gate with no emit name",
				t.StableID, "", "")
		}
	}
}

func checkRenameDecisionPresent(g *graph.Graph, rn *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		for _, m := range t.AllMembers() {
			if m.EmitScope == graph.ScopeOmitted || m.EmitScope == graph.ScopeUnspecified {
				continue
			}
			scope := memberLookupScope(t, m)
			if _, ok := rn.Decision(m.StableID, scope); !ok {
				bag.Error(diagnostics.FINMissingRenameDecision,
					"member \""+m.CLRName+"\" of \""+t.CLRFullName+"\" has no rename decision in scope \""+scope.Key()+"\"",
					t.StableID, m.StableID, scope.Key())
			}
		}
		for _, v := range t.Views {
			for _, m := range v.Members {
				scope := rename.ViewScope(t.StableID, v.SourceInterfaceStableID, m.IsStatic)
				if _, ok := rn.Decision(m.StableID, scope); !ok {
					bag.Error(diagnostics.FINMissingRenameDecision,
						"view member \""+m.CLRName+"\" of \""+t.CLRFullName+"\" has no rename decision in scope \""+scope.Key()+"\"",
						t.StableID, m.StableID, scope.Key())
				}
			}
		}
	}
}
