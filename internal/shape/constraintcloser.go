package shape

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/stableid"
)

// ConstraintCloser resolves the raw constraint types captured at Load into
// fully-formed TypeRefs, using a memoised factory keyed by stable id so a
// self-referential constraint (`T where T : IComparable<T>`) terminates
// instead of recursing forever.
//
// Validates: demanding both value-type and reference-type special
// constraints simultaneously is a warning; a pointer or by-reference type
// as a constraint is a warning (unrepresentable in the target). The
// configured merge strategy for multi-constraint cases governs only
// whether a union of more than one constraint is representable —
// intersection (default) maps to the target's `&` form, prefer-left keeps
// only the first and drops the rest silently by design, union is itself
// unrepresentable and is always a warning regardless of constraint count.
func ConstraintCloser(g *graph.Graph, pol policy.Policy, bag *diagnostics.Bag) *graph.Graph {
	memo := make(map[string]*graph.TypeRef)
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		if len(t.GenericParams) == 0 {
			return t
		}
		params := make([]*graph.GenericParam, len(t.GenericParams))
		anyRaw := false
		for i, gp := range t.GenericParams {
			if len(gp.Raw) > 0 {
				anyRaw = true
			}
			resolved := closeConstraints(gp, memo)
			if pol.Constraints.MergeStrategy == graph.MergePreferLeft && len(resolved) > 1 {
				resolved = resolved[:1]
			}
			validateConstraints(t, gp, resolved, pol, bag)
			clone := *gp
			clone.Constraints = resolved
			clone.Raw = nil
			params[i] = &clone
		}
		if !anyRaw {
			return t
		}
		nt := t.Clone()
		nt.GenericParams = params
		return nt
	})
}

func closeConstraints(gp *graph.GenericParam, memo map[string]*graph.TypeRef) []*graph.TypeRef {
	out := make([]*graph.TypeRef, 0, len(gp.Raw))
	for _, raw := range gp.Raw {
		out = append(out, closeOne(raw, memo))
	}
	return out
}

func closeOne(raw graph.RawConstraint, memo map[string]*graph.TypeRef) *graph.TypeRef {
	if existing, ok := memo[raw.StableID]; ok {
		return existing
	}
	placeholder := &graph.TypeRef{Kind: graph.RefPlaceholder, PlaceholderForStableID: raw.StableID}
	memo[raw.StableID] = placeholder
	args := make([]*graph.TypeRef, 0, len(raw.TypeArguments))
	for _, a := range raw.TypeArguments {
		args = append(args, closeOne(a, memo))
	}
	assembly, clrFullName, ok := stableid.SplitType(raw.StableID)
	if !ok {
		return placeholder
	}
	namespace, simple := splitLastDot(clrFullName)
	resolved := &graph.TypeRef{
		Kind:              graph.RefNamed,
		Assembly:          assembly,
		Namespace:         namespace,
		SimpleName:        simple,
		TypeArguments:     args,
		InterfaceStableID: raw.StableID,
	}
	memo[raw.StableID] = resolved
	return resolved
}

func validateConstraints(t *graph.Type, gp *graph.GenericParam, resolved []*graph.TypeRef, pol policy.Policy, bag *diagnostics.Bag) {
	if gp.Special.Has(graph.ConstraintValueType) && gp.Special.Has(graph.ConstraintReferenceType) {
		bag.Warning(diagnostics.CTConflictingSpecialConstraints,
			"generic parameter \""+gp.Name+"\" demands both value-type and reference-type", t.StableID, "", "")
	}
	for _, c := range resolved {
		if c.Kind == graph.RefPointer || c.Kind == graph.RefByReference {
			bag.Warning(diagnostics.CTUnrepresentableConstraint,
				"generic parameter \""+gp.Name+"\" has an unrepresentable pointer/by-reference constraint", t.StableID, "", "")
		}
	}
	if gp.Special.Has(graph.ConstraintDefaultConstructor) {
		bag.Warning(diagnostics.CTConstructorConstraintLoss,
			"generic parameter \""+gp.Name+"\" has a new() constraint the target cannot encode", t.StableID, "", "")
	}
	if len(resolved) > 1 && pol.Constraints.MergeStrategy == graph.MergeUnion {
		bag.Warning(diagnostics.CTUnionMergeUnsupported,
			"generic parameter \""+gp.Name+"\" has multiple constraints under the unsupported union merge strategy", t.StableID, "", "")
	}
}
