package phasegate

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// viewRules enforce view integrity: every view non-empty, every view-only
// member attached to exactly one view, and every view's companion property
// name valid.
var viewRules = []Rule{
	{Name: "views/non-empty", Check: checkViewNonEmpty},
	{Name: "views/member-single-owner", Check: checkViewMemberSingleOwner},
	{Name: "views/source-interface-present", Check: checkViewSourceInterfacePresent},
	{Name: "views/property-name-valid", Check: checkViewPropertyNameValid},
}

func checkViewNonEmpty(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		for _, v := range t.Views {
			if len(v.Members) == 0 {
				bag.Error(diagnostics.VIEWEmpty,
					"view \""+v.PropertyName+"\" of \""+t.CLRFullName+"\" has no members",
					t.StableID, "", "")
			}
		}
	}
}

func checkViewMemberSingleOwner(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		owner := map[string]string{}
		for _, v := range t.Views {
			for _, m := range v.Members {
				if prev, ok := owner[m.StableID]; ok && prev != v.PropertyName {
					bag.Error(diagnostics.VIEWMemberInMultipleViews,
						"member \""+m.StableID+"\" of \""+t.CLRFullName+"\" appears in views \""+prev+"\" and \""+v.PropertyName+"\"",
						t.StableID, m.StableID, "")
					continue
				}
				owner[m.StableID] = v.PropertyName
			}
		}
	}
}

func checkViewSourceInterfacePresent(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		for _, v := range t.Views {
			for _, m := range v.Members {
				if m.SourceInterface == nil {
					bag.Error(diagnostics.VIEWMissingSourceInterface,
						"view member \""+m.StableID+"\" of \""+t.CLRFullName+"\" lacks a source-interface reference",
						t.StableID, m.StableID, "")
				}
			}
		}
	}
}

func checkViewPropertyNameValid(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		for _, v := range t.Views {
			if v.PropertyName == "" {
				bag.Error(diagnostics.VIEWInvalidPropertyName,
					"a view of \""+t.CLRFullName+"\" has an empty companion property name",
					t.StableID, "", "")
			}
		}
	}
}
