package phasegate

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// scopeRules enforce scope hygiene: every recorded scope key is
// well-formed, and every member's emit scope matches the surface scope its
// rename decision actually lives in.
var scopeRules = []Rule{
	{Name: "scopes/well-formed-keys", Check: checkScopeKeysWellFormed},
	{Name: "scopes/lookup-matches-emit-scope", Check: checkScopeMatchesEmitScope},
}

func checkScopeKeysWellFormed(_ *graph.Graph, rn *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, d := range rn.AllDecisions() {
		if _, ok := rename.ParseScope(d.ScopeKey); !ok {
			bag.Error(diagnostics.SCOPEMalformedKey,
				"decision for \""+d.StableID+"\" carries malformed scope key \""+d.ScopeKey+"\"",
				"", d.StableID, d.ScopeKey)
		}
	}
}

func checkScopeMatchesEmitScope(g *graph.Graph, rn *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		for _, m := range t.AllMembers() {
			if m.EmitScope == graph.ScopeOmitted || m.EmitScope == graph.ScopeUnspecified {
				continue
			}
			if m.EmitScope == graph.ScopeViewOnly {
				if m.SourceInterface == nil {
					continue // already flagged by views/source-interface-present
				}
				scope := rename.ViewScope(t.StableID, m.SourceInterface.InterfaceStableID, m.IsStatic)
				if _, ok := rn.Lookup(m.StableID, scope); !ok {
					bag.Error(diagnostics.SCOPELookupMismatch,
						"view-only member \""+m.StableID+"\" of \""+t.CLRFullName+"\" has no decision in its view scope",
						t.StableID, m.StableID, scope.Key())
				}
				continue
			}
			scope := rename.ClassScope(t.CLRFullName, m.IsStatic)
			if _, ok := rn.Lookup(m.StableID, scope); !ok {
				bag.Error(diagnostics.SCOPELookupMismatch,
					"class-surface member \""+m.StableID+"\" of \""+t.CLRFullName+"\" has no decision in its class scope",
					t.StableID, m.StableID, scope.Key())
			}
		}
	}
}
