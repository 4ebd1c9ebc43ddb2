package phasegate

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// namingRules enforce name uniqueness within every scope a renamed symbol
// can collide in.
var namingRules = []Rule{
	{Name: "naming/class-surface-uniqueness", Check: checkClassSurfaceUniqueness},
	{Name: "naming/view-uniqueness", Check: checkViewUniqueness},
	{Name: "naming/view-shadows-surface", Check: checkViewShadowsSurface},
}

func checkClassSurfaceUniqueness(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		seen := map[string]string{}
		for _, m := range t.AllMembers() {
			if m.EmitScope != graph.ScopeClassSurface && m.EmitScope != graph.ScopeStaticSurface {
				continue
			}
			key := staticKey(m.IsStatic) + ":" + m.EmitName
			if other, ok := seen[key]; ok && other != m.StableID {
				bag.Error(diagnostics.NameClassSurfaceCollision,
					"members \""+other+"\" and \""+m.StableID+"\" of \""+t.CLRFullName+"\" both project to \""+m.EmitName+"\"",
					t.StableID, m.StableID, "")
				continue
			}
			seen[key] = m.StableID
		}
	}
}

func checkViewUniqueness(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		for _, v := range t.Views {
			seen := map[string]string{}
			for _, m := range v.Members {
				if other, ok := seen[m.EmitName]; ok && other != m.StableID {
					bag.Error(diagnostics.NameViewCollision,
						"view members \""+other+"\" and \""+m.StableID+"\" of \""+t.CLRFullName+"\" both project to \""+m.EmitName+"\" in view \""+v.PropertyName+"\"",
						t.StableID, m.StableID, "")
					continue
				}
				seen[m.EmitName] = m.StableID
			}
		}
	}
}

func checkViewShadowsSurface(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		surface := map[string]bool{}
		for _, m := range t.AllMembers() {
			if m.EmitScope == graph.ScopeClassSurface || m.EmitScope == graph.ScopeStaticSurface {
				surface[m.EmitName] = true
			}
		}
		for _, v := range t.Views {
			for _, m := range v.Members {
				if surface[m.EmitName] {
					bag.Error(diagnostics.NameViewShadowsSurface,
						"view member \""+m.StableID+"\" of \""+t.CLRFullName+"\" projects to \""+m.EmitName+"\", identical to a class-surface member name without the $view suffix",
						t.StableID, m.StableID, "")
				}
			}
		}
	}
}
