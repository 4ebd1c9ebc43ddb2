// Package overload implements the Overload unifier: the
// pass that runs after Name Reservation and collapses CLR overloads that
// erase to the same target-language signature down to the single widest
// member, demoting the rest to omitted.
package overload

import (
	"sort"
	"strconv"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
)

// Unify groups each type's class-surface and static-surface methods by
// erasure key (post-rename simple name, generic arity, parameter count).
// Any group with two
// or more members keeps the single widest one — fewer by-reference
// parameters, then fewer generic constraints, then the lexicographically
// earliest stable id — and demotes the rest to ScopeOmitted. This is the
// only pass that demotes away from class-surface to omitted rather than
// to view-only, deliberately run after Name Reservation so the erasure key
// is computed from final, already-collision-resolved names.
func Unify(g *graph.Graph, bag *diagnostics.Bag) *graph.Graph {
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		return unifyType(t, bag)
	})
}

func unifyType(t *graph.Type, bag *diagnostics.Bag) *graph.Type {
	if t.Members == nil || len(t.Members.Methods) == 0 {
		return t
	}
	groups := make(map[string][]*graph.Member)
	order := make([]string, 0)
	for _, m := range t.Members.Methods {
		if m.EmitScope != graph.ScopeClassSurface && m.EmitScope != graph.ScopeStaticSurface {
			continue
		}
		key := erasureKey(m)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m)
	}

	omitted := make(map[string]bool)
	for _, key := range order {
		ms := groups[key]
		if len(ms) < 2 {
			continue
		}
		sort.SliceStable(ms, func(i, j int) bool {
			return widthRank(ms[i]) < widthRank(ms[j])
		})
		for _, loser := range ms[1:] {
			omitted[loser.StableID] = true
			bag.Info(diagnostics.OVWidenedOverloadOmitted,
				"method \""+loser.CLRName+"\" erases to the same signature as a wider overload and is omitted",
				t.StableID, loser.StableID, "")
		}
	}
	if len(omitted) == 0 {
		return t
	}

	methods := make([]*graph.Member, len(t.Members.Methods))
	for i, m := range t.Members.Methods {
		if omitted[m.StableID] {
			clone := *m
			clone.EmitScope = graph.ScopeOmitted
			methods[i] = &clone
		} else {
			methods[i] = m
		}
	}
	bundle := *t.Members
	bundle.Methods = methods
	return t.WithMembers(&bundle)
}

// erasureKey is the target-language-visible signature shape: final name,
// generic arity, parameter count. Two CLR overloads sharing this key are
// indistinguishable once erased to the target.
func erasureKey(m *graph.Member) string {
	name := m.EmitName
	if name == "" {
		name = m.CLRName
	}
	return name + "/" + strconv.Itoa(len(m.GenericParams)) + "/" + strconv.Itoa(len(m.Params))
}

// widthRank orders members so the widest sorts first: fewer by-reference
// parameters, then fewer generic constraints, then the earliest stable id.
func widthRank(m *graph.Member) string {
	return pad(byRefCount(m)) + pad(constraintCount(m)) + m.StableID
}

func byRefCount(m *graph.Member) int {
	n := 0
	for _, p := range m.Params {
		if p.Modifier != graph.ParamNone {
			n++
		}
	}
	return n
}

func constraintCount(m *graph.Member) int {
	n := 0
	for _, gp := range m.GenericParams {
		n += len(gp.Constraints)
	}
	return n
}

// pad renders n as a fixed-width decimal string so lexicographic string
// comparison orders the same as numeric comparison for any realistic
// parameter or constraint count.
func pad(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
