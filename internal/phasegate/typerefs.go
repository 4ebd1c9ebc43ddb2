package phasegate

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// typerefRules enforce type-reference hygiene: no unresolved placeholder
// survives to Emit, no unsupported special form (raw pointers) reaches the
// public API, and the Emit printer's name for every symbol agrees with the
// Renamer's recorded final decision.
var typerefRules = []Rule{
	{Name: "typerefs/no-placeholder-at-emit", Check: checkNoPlaceholderReachedEmit},
	{Name: "typerefs/no-raw-pointer-in-public-api", Check: checkNoRawPointerInPublicAPI},
	{Name: "typerefs/printer-renamer-consistency", Check: checkPrinterRenamerConsistency},
}

func checkNoPlaceholderReachedEmit(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		for _, m := range t.AllMembers() {
			if m.EmitScope == graph.ScopeOmitted {
				continue
			}
			walkMemberRefs(m, func(r *graph.TypeRef) {
				if r.IsPlaceholder() {
					bag.Error(diagnostics.INTPlaceholderReachedEmit,
						"member \""+m.CLRName+"\" of \""+t.CLRFullName+"\" still references an unresolved placeholder",
						t.StableID, m.StableID, "")
				}
			})
		}
	}
}

func checkNoRawPointerInPublicAPI(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		if t.Accessibility != graph.AccessPublic {
			continue
		}
		for _, m := range t.AllMembers() {
			if m.EmitScope == graph.ScopeOmitted || m.Visibility != graph.AccessPublic {
				continue
			}
			walkMemberRefs(m, func(r *graph.TypeRef) {
				if r.Kind == graph.RefPointer {
					bag.Warning(diagnostics.TYPEMAPRawPointer,
						"member \""+m.CLRName+"\" of \""+t.CLRFullName+"\" exposes a raw pointer the target cannot represent",
						t.StableID, m.StableID, "")
				}
			})
		}
	}
}

func checkPrinterRenamerConsistency(g *graph.Graph, rn *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		if t.EmitName != nil {
			ns, _ := g.NamespaceOwning(t.StableID)
			scope := rename.NamespaceScope(ns, t.Accessibility == graph.AccessPublic)
			if dec, ok := rn.Decision(t.StableID, scope); ok && dec.Final != *t.EmitName {
				bag.Error(diagnostics.PRINTNameMismatch,
					"type \""+t.CLRFullName+"\" would print as \""+*t.EmitName+"\" but the Renamer recorded \""+dec.Final+"\"",
					t.StableID, "", "")
			}
		}
		for _, m := range t.AllMembers() {
			if m.EmitScope == graph.ScopeOmitted || m.EmitName == "" {
				continue
			}
			scope := memberLookupScope(t, m)
			if dec, ok := rn.Decision(m.StableID, scope); ok && dec.Final != m.EmitName {
				bag.Error(diagnostics.PRINTNameMismatch,
					"member \""+m.CLRName+"\" of \""+t.CLRFullName+"\" would print as \""+m.EmitName+"\" but the Renamer recorded \""+dec.Final+"\"",
					t.StableID, m.StableID, "")
			}
		}
	}
}
