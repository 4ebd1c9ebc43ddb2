// Package reservation implements Name Reservation: the
// single orchestrated pass that walks the post-Shape symbol graph and
// assigns every symbol its final target-language identifier through the
// Renamer, in a fixed six-step order.
package reservation

import (
	"strconv"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// Reserve runs the six-step Name Reservation process and returns a new
// graph with every symbol's EmitName populated from the Renamer's final
// decisions.
func Reserve(g *graph.Graph, r *rename.Renamer, pol policy.Policy, bag *diagnostics.Bag) *graph.Graph {
	typeStyle := rename.Style(pol.Naming.TypeStyle)
	memberStyle := rename.Style(pol.Naming.MemberStyle)

	reserveTypeNames(g, r, pol, typeStyle)           // step 1
	reserveClassSurfaceMembers(g, r, pol, memberStyle) // step 2
	shadows := buildShadows(g, r)                      // step 3
	reserveViewMembers(g, r, pol, memberStyle, shadows) // step 4
	audit(g, r, bag)                                    // step 5
	return apply(g, r)                                  // step 6
}

// reserveTypeNames reserves every type's name in its owning namespace's
// scope (step 1). Namespace scope is not a surface scope, so it is looked
// up at Apply time via Decision, not Lookup.
func reserveTypeNames(g *graph.Graph, r *rename.Renamer, pol policy.Policy, style rename.Style) {
	for _, t := range g.AllTypes() {
		reserveOneTypeName(g, r, pol, style, t)
	}
}

func reserveOneTypeName(g *graph.Graph, r *rename.Renamer, pol policy.Policy, style rename.Style, t *graph.Type) {
	ns, _ := g.NamespaceOwning(t.StableID)
	public := t.Accessibility == graph.AccessPublic
	if override, ok := pol.TypeRenames[t.StableID]; ok {
		r.SetOverride(t.StableID, override)
	}
	r.Reserve(rename.Request{
		StableID: t.StableID,
		Base:     simpleTypeName(t.CLRFullName),
		Scope:    rename.NamespaceScope(ns, public),
		Style:    style,
		Reason:   rename.ReasonOriginal,
		Source:   rename.SourceReflection,
	})
	for _, n := range t.Nested {
		reserveOneTypeName(g, r, pol, style, n)
	}
}

func simpleTypeName(clrFullName string) string {
	lastDot := -1
	for i := 0; i < len(clrFullName); i++ {
		if clrFullName[i] == '.' {
			lastDot = i
		}
	}
	if lastDot < 0 {
		return clrFullName
	}
	return clrFullName[lastDot+1:]
}

// reserveClassSurfaceMembers reserves every class-surface member in its
// type's class scope, with the static flag carried through (step 2).
func reserveClassSurfaceMembers(g *graph.Graph, r *rename.Renamer, pol policy.Policy, style rename.Style) {
	for _, t := range allTypesRecursive(g) {
		for _, m := range t.AllMembers() {
			if m.EmitScope != graph.ScopeClassSurface && m.EmitScope != graph.ScopeStaticSurface {
				continue
			}
			reserveMember(r, pol, style, t, m, rename.ClassScope(t.CLRFullName, m.IsStatic))
		}
	}
}

func reserveMember(r *rename.Renamer, pol policy.Policy, style rename.Style, t *graph.Type, m *graph.Member, scope rename.Scope) {
	if override, ok := pol.TypeRenames[m.StableID]; ok {
		r.SetOverride(m.StableID, override)
	}
	req := rename.Request{
		StableID: m.StableID,
		Base:     m.CLRName,
		Scope:    scope,
		Style:    style,
		Reason:   rename.ReasonOriginal,
		Source:   rename.SourceReflection,
		Static:   m.IsStatic,
	}
	if m.Provenance != graph.ProvenanceOriginal {
		req.Source = rename.SourceSynthesis
		req.Reason = rename.Reason("")
	}
	req.InterfaceShortName = explicitImplInterfaceShortName(m)
	r.Reserve(req)
}

// explicitImplInterfaceShortName extracts the interface short name a
// view-only or explicit-implementation member carries, used by the
// Renamer's collision resolution to try `{base}_{interface_short_name}`
// before numeric suffixing.
func explicitImplInterfaceShortName(m *graph.Member) string {
	if m.SourceInterface == nil {
		return ""
	}
	return simpleTypeName(m.SourceInterface.SimpleName)
}

// buildShadows computes, for every type, the union of final names
// reserved in its class scope (both instance and static) — the set view
// reservations must avoid colliding with (step 3).
func buildShadows(g *graph.Graph, r *rename.Renamer) map[string]map[string]bool {
	shadows := make(map[string]map[string]bool)
	for _, t := range allTypesRecursive(g) {
		shadow := make(map[string]bool)
		for name := range r.NamesReservedIn(rename.ClassScope(t.CLRFullName, false)) {
			shadow[name] = true
		}
		for name := range r.NamesReservedIn(rename.ClassScope(t.CLRFullName, true)) {
			shadow[name] = true
		}
		shadows[t.StableID] = shadow
	}
	return shadows
}

// reserveViewMembers reserves every view-only member in its view's scope,
// applying the `$view`/`$view2`/... suffix when the natural name shadows a
// class-surface name (step 4).
func reserveViewMembers(g *graph.Graph, r *rename.Renamer, pol policy.Policy, style rename.Style, shadows map[string]map[string]bool) {
	for _, t := range allTypesRecursive(g) {
		shadow := shadows[t.StableID]
		for _, v := range t.Views {
			for _, m := range v.Members {
				scope := rename.ViewScope(t.StableID, v.SourceInterfaceStableID, m.IsStatic)
				reserveViewMember(r, pol, style, m, scope, shadow)
			}
		}
	}
}

func reserveViewMember(r *rename.Renamer, pol policy.Policy, style rename.Style, m *graph.Member, scope rename.Scope, shadow map[string]bool) {
	base := m.CLRName
	if override, ok := pol.TypeRenames[m.StableID]; ok {
		base = override
	}
	preview := r.PreviewStyled(base, style)
	if !shadow[preview] {
		reserveMember(r, pol, style, nil, m, scope)
		return
	}
	for n := 1; ; n++ {
		candidate := viewSuffixed(preview, n)
		if final, ok := r.TryReserveExact(m.StableID, candidate, scope, rename.ReasonViewCollision, rename.SourceSynthesis, m.IsStatic); ok {
			_ = final
			return
		}
	}
}

func viewSuffixed(base string, n int) string {
	if n == 1 {
		return base + "$view"
	}
	return base + "$view" + strconv.Itoa(n)
}

// audit asserts that every non-omitted member has a rename decision in the
// scope matching its emit scope, and that no member reached this point
// with an unspecified emit scope (step 5).
func audit(g *graph.Graph, r *rename.Renamer, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		if _, ok := r.Decision(t.StableID, typeScopeOf(g, t)); !ok {
			bag.Error(diagnostics.FINMissingRenameDecision, "type has no rename decision", t.StableID, "", "")
		}
		for _, m := range t.AllMembers() {
			switch m.EmitScope {
			case graph.ScopeOmitted:
				continue
			case graph.ScopeUnspecified:
				bag.Error(diagnostics.FINUnspecifiedEmitScope, "member reached Name Reservation with unspecified emit scope", t.StableID, m.StableID, "")
				continue
			}
			scope := memberScopeOf(t, m)
			if _, ok := r.Lookup(m.StableID, scope); !ok {
				bag.Error(diagnostics.FINMissingRenameDecision, "member has no rename decision in its emit scope", t.StableID, m.StableID, scope.Key())
			}
		}
		for _, v := range t.Views {
			for _, m := range v.Members {
				scope := rename.ViewScope(t.StableID, v.SourceInterfaceStableID, m.IsStatic)
				if _, ok := r.Lookup(m.StableID, scope); !ok {
					bag.Error(diagnostics.FINMissingRenameDecision, "view member has no rename decision", t.StableID, m.StableID, scope.Key())
				}
			}
		}
	}
}

func typeScopeOf(g *graph.Graph, t *graph.Type) rename.Scope {
	ns, _ := g.NamespaceOwning(t.StableID)
	return rename.NamespaceScope(ns, t.Accessibility == graph.AccessPublic)
}

func memberScopeOf(t *graph.Type, m *graph.Member) rename.Scope {
	if m.EmitScope == graph.ScopeViewOnly && m.SourceInterface != nil {
		return rename.ViewScope(t.StableID, m.SourceInterface.InterfaceStableID, m.IsStatic)
	}
	return rename.ClassScope(t.CLRFullName, m.IsStatic)
}

// apply walks the graph and populates every symbol's EmitName from the
// Renamer's final decisions (step 6).
func apply(g *graph.Graph, r *rename.Renamer) *graph.Graph {
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		return applyRecursive(g, r, t)
	})
}

func applyRecursive(g *graph.Graph, r *rename.Renamer, t *graph.Type) *graph.Type {
	nt := applyToType(g, r, t)
	if nt.Members != nil {
		bundle := *nt.Members
		bundle.Constructors = applyToSlice(r, nt, bundle.Constructors)
		bundle.Fields = applyToSlice(r, nt, bundle.Fields)
		bundle.Properties = applyToSlice(r, nt, bundle.Properties)
		bundle.Events = applyToSlice(r, nt, bundle.Events)
		bundle.Methods = applyToSlice(r, nt, bundle.Methods)
		nt = nt.WithMembers(&bundle)
	}
	if len(nt.Views) > 0 {
		views := make([]*graph.ExplicitView, len(nt.Views))
		for i, v := range nt.Views {
			views[i] = applyToView(r, nt, v)
		}
		nt = nt.WithViews(views)
	}
	if len(nt.Nested) > 0 {
		nested := make([]*graph.Type, len(nt.Nested))
		for i, n := range nt.Nested {
			nested[i] = applyRecursive(g, r, n)
		}
		clone := nt.Clone()
		clone.Nested = nested
		nt = clone
	}
	return nt
}

func applyToView(r *rename.Renamer, t *graph.Type, v *graph.ExplicitView) *graph.ExplicitView {
	members := make([]*graph.Member, len(v.Members))
	for i, m := range v.Members {
		scope := rename.ViewScope(t.StableID, v.SourceInterfaceStableID, m.IsStatic)
		if final, ok := r.Lookup(m.StableID, scope); ok {
			clone := *m
			clone.EmitName = final
			members[i] = &clone
		} else {
			members[i] = m
		}
	}
	nv := *v
	nv.Members = members
	return &nv
}

// allTypesRecursive returns every top-level and nested type in the graph.
func allTypesRecursive(g *graph.Graph) []*graph.Type {
	var out []*graph.Type
	for _, t := range g.AllTypes() {
		out = append(out, t)
		out = append(out, nestedRecursive(t)...)
	}
	return out
}

func nestedRecursive(t *graph.Type) []*graph.Type {
	var out []*graph.Type
	for _, n := range t.Nested {
		out = append(out, n)
		out = append(out, nestedRecursive(n)...)
	}
	return out
}

func applyToType(g *graph.Graph, r *rename.Renamer, t *graph.Type) *graph.Type {
	if d, ok := r.Decision(t.StableID, typeScopeOf(g, t)); ok {
		t = t.WithEmitName(d.Final)
	}
	return t
}

func applyToSlice(r *rename.Renamer, t *graph.Type, members []*graph.Member) []*graph.Member {
	if len(members) == 0 {
		return members
	}
	out := make([]*graph.Member, len(members))
	for i, m := range members {
		if m.EmitScope == graph.ScopeOmitted || m.EmitScope == graph.ScopeUnspecified {
			out[i] = m
			continue
		}
		scope := memberScopeOf(t, m)
		if final, ok := r.Lookup(m.StableID, scope); ok {
			clone := *m
			clone.EmitName = final
			out[i] = &clone
		} else {
			out[i] = m
		}
	}
	return out
}
