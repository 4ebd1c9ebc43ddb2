package shape

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
)

// IndexerPlanner is policy-driven: if a type has exactly
// one indexer property and policy allows keeping it, it stays a property.
// Otherwise every indexer converts to a pair of synthetic methods
// (get_Item/set_Item, named from policy.Indexers.MethodName) with
// provenance indexer-normalized, and the original property is omitted.
//
// Indexer passes bracket the rest of Shape: no earlier or later pass may
// reintroduce an indexer property, enforced here by FinalIndexerSweep.
func IndexerPlanner(g *graph.Graph, pol policy.Policy) *graph.Graph {
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		var indexers []*graph.Member
		var rest []*graph.Member
		for _, m := range t.Members.Properties {
			if len(m.IndexParams) > 0 {
				indexers = append(indexers, m)
			} else {
				rest = append(rest, m)
			}
		}
		if len(indexers) == 0 {
			return t
		}
		if len(indexers) == 1 && pol.Indexers.EmitPropertyWhenSingle {
			return t
		}

		bundle := *t.Members
		bundle.Properties = rest
		methods := append([]*graph.Member{}, t.Members.Methods...)
		for _, idx := range indexers {
			methods = append(methods, synthesizeIndexerGet(idx, pol), synthesizeIndexerSet(idx, pol)...)
		}
		bundle.Methods = methods
		return t.WithMembers(&bundle)
	})
}

func synthesizeIndexerGet(idx *graph.Member, pol policy.Policy) *graph.Member {
	return &graph.Member{
		StableID:   idx.StableID + "::get_" + pol.Indexers.MethodName,
		CLRName:    "get_" + pol.Indexers.MethodName,
		Kind:       graph.MemberMethod,
		Visibility: idx.Visibility,
		IsStatic:   idx.IsStatic,
		Provenance: graph.ProvenanceIndexerNormalized,
		EmitScope:  idx.EmitScope,
		Params:     idx.IndexParams,
		ReturnType: idx.PropertyType,
	}
}

// synthesizeIndexerSet returns zero or one synthetic setter method,
// returned as a slice so the caller can append unconditionally; a
// get-only indexer (HasSetter false) produces no setter.
func synthesizeIndexerSet(idx *graph.Member, pol policy.Policy) []*graph.Member {
	if !idx.HasSetter {
		return nil
	}
	params := append(append([]graph.Param{}, idx.IndexParams...), graph.Param{Name: "value", Type: idx.PropertyType})
	return []*graph.Member{{
		StableID:   idx.StableID + "::set_" + pol.Indexers.MethodName,
		CLRName:    "set_" + pol.Indexers.MethodName,
		Kind:       graph.MemberMethod,
		Visibility: idx.Visibility,
		IsStatic:   idx.IsStatic,
		Provenance: graph.ProvenanceIndexerNormalized,
		EmitScope:  idx.EmitScope,
		Params:     params,
		ReturnType: nil,
	}}
}

// FinalIndexerSweep enforces the invariant that no indexer property
// remains in the graph unless the single-property policy applies to it —
// a defensive check against any earlier pass resurrecting one.
func FinalIndexerSweep(g *graph.Graph, pol policy.Policy, bag *diagnostics.Bag) {
	for _, t := range g.AllTypes() {
		var indexers int
		for _, m := range t.Members.Properties {
			if len(m.IndexParams) > 0 {
				indexers++
			}
		}
		if indexers > 1 || (indexers == 1 && !pol.Indexers.EmitPropertyWhenSingle) {
			bag.Error(diagnostics.FINIndexerPropertySurvived,
				"indexer property survived shape in a configuration that should have normalised it", t.StableID, "", "")
		}
	}
}
