package shape

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// StaticSideAnalyser identifies static members whose simple names collide
// with a static member of the same name on an ancestor.
// The target has a single shared static namespace per type hierarchy
// rather than the source runtime's independent per-type static side, so a
// name unique per-type in the source can collide once flattened.
//
// Policy-driven: auto-rename (reserve a suffixed name through the
// Renamer), analyse (record a warning only, no rename), or error (fail at
// Phase Gate).
func StaticSideAnalyser(g *graph.Graph, r *rename.Renamer, pol policy.Policy, style rename.Style, bag *diagnostics.Bag) {
	for _, t := range g.AllTypes() {
		if t.BaseType == nil {
			continue
		}
		ancestorStaticNames := make(map[string]bool)
		for _, m := range allStaticAncestors(g, t) {
			ancestorStaticNames[m.CLRName] = true
		}
		for _, m := range t.AllMembers() {
			if !m.IsStatic || !ancestorStaticNames[m.CLRName] {
				continue
			}
			switch pol.StaticSide.Action {
			case graph.StaticSideAutoRename:
				r.Reserve(rename.Request{
					StableID: m.StableID,
					Base:     m.CLRName + "_" + shortOwnerName(t),
					Scope:    rename.ClassScope(t.CLRFullName, true),
					Style:    style,
					Reason:   rename.ReasonStaticCollision,
					Source:   rename.SourceSynthesis,
					Static:   true,
				})
			case graph.StaticSideError:
				bag.Error(diagnostics.PolicyStaticSideError,
					"static member \""+m.CLRName+"\" collides with an ancestor's static member of the same name",
					t.StableID, m.StableID, "")
			case graph.StaticSideAnalyse:
				bag.Warning(diagnostics.PolicyStaticSideError,
					"static member \""+m.CLRName+"\" collides with an ancestor's static member of the same name",
					t.StableID, m.StableID, "")
			}
		}
	}
}

func allStaticAncestors(g *graph.Graph, t *graph.Type) []*graph.Member {
	if t.BaseType == nil {
		return nil
	}
	parent, ok := g.TypeByStableID(t.BaseType.StableID())
	if !ok {
		return nil
	}
	var out []*graph.Member
	for _, m := range parent.AllMembers() {
		if m.IsStatic {
			out = append(out, m)
		}
	}
	return append(out, allStaticAncestors(g, parent)...)
}

func shortOwnerName(t *graph.Type) string {
	_, simple := splitLastDot(t.CLRFullName)
	return simple
}

func splitLastDot(s string) (prefix, suffix string) {
	last := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			last = i
		}
	}
	if last < 0 {
		return "", s
	}
	return s[:last], s[last+1:]
}
