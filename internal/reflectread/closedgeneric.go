package reflectread

import "github.com/tsbindgen/tsbindgen/internal/graph"

// Substitution maps a generic parameter name to the closed type argument
// supplied for it by one closed-generic interface reference (e.g.
// `IComparable<Widget>` on `class Widget : IComparable<Widget>` substitutes
// T -> Widget). Load only computes this map; applying it to the
// interface's own member signatures is deferred to Shape's Structural
// Conformance pass, which is the first pass that needs a
// per-implementation view of an interface's members.
type Substitution map[string]*graph.TypeRef

// ClosedInterface bundles one implemented interface reference with the
// substitution computed for it.
type ClosedInterface struct {
	Ref          *graph.TypeRef
	Substitution Substitution
}

// GenericParamLookup resolves an interface's own declared generic
// parameters by stable id, in position order.
type GenericParamLookup func(interfaceStableID string) []*graph.GenericParam

// ComputeClosedInterfaces walks implementedInterfaces and computes a
// substitution map for every closed-generic reference among them (a
// reference whose TypeArguments are all already resolved, non-placeholder
// types — an open generic parameter used as the argument, e.g.
// `IEnumerable<T>` on an as-yet-ungrounded `T`, is left unsubstituted and
// carried through as-is). Non-generic and open-generic interface
// references are skipped; they need no substitution.
func ComputeClosedInterfaces(implementedInterfaces []*graph.TypeRef, lookup GenericParamLookup) []ClosedInterface {
	var out []ClosedInterface
	for _, ref := range implementedInterfaces {
		if ref == nil || ref.Kind != graph.RefNamed || len(ref.TypeArguments) == 0 {
			continue
		}
		params := lookup(ref.StableID())
		if len(params) == 0 {
			continue
		}
		out = append(out, ClosedInterface{Ref: ref, Substitution: buildSubstitution(params, ref.TypeArguments)})
	}
	return out
}

func buildSubstitution(declaredParams []*graph.GenericParam, closedArgs []*graph.TypeRef) Substitution {
	sub := make(Substitution, len(declaredParams))
	for i, p := range declaredParams {
		if i >= len(closedArgs) {
			break
		}
		sub[p.Name] = closedArgs[i]
	}
	return sub
}
