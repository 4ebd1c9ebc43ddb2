// Package shape implements the ≈17 ordered rewrite passes that reshape the
// symbol graph so a structurally-typed target language can accept it.
// Each pass lives in its own file, named for the exact source/target
// mismatch it resolves — one file per desugaring concern. Most passes take
// a *graph.Graph (plus indexes, policy or the diagnostic bag as needed) and
// return a new *graph.Graph; HiddenMemberPlanner, FinalIndexerSweep and
// StaticSideAnalyser return nothing and only record into the Renamer or
// the bag.
package shape

import "github.com/tsbindgen/tsbindgen/internal/graph"

// assignable reports whether a member satisfying shape `have` can stand in
// for an interface member of shape `want`, using target-level assignability
// over erased signatures:
//
//   - pointers and by-reference modifiers are removed before comparing
//   - generic-parameter references compare by name
//   - named types use structural widening: any numeric widens to any
//     numeric, everything widens to the root object type
//   - readonly properties are covariant, mutable properties are invariant
//   - methods are covariant in return type, invariant in parameters —
//     stricter than the target's own rules, to catch real breakage
func assignable(have, want *graph.Member) bool {
	if have.Kind != want.Kind {
		return false
	}
	switch have.Kind {
	case graph.MemberMethod:
		return methodAssignable(have, want)
	case graph.MemberProperty:
		return propertyAssignable(have, want)
	case graph.MemberEvent:
		return graph.TypeName(have.EventHandlerType.Erased()) == graph.TypeName(want.EventHandlerType.Erased())
	default:
		return false
	}
}

func methodAssignable(have, want *graph.Member) bool {
	if have.CLRName != want.CLRName || len(have.Params) != len(want.Params) {
		return false
	}
	for i := range have.Params {
		// invariant in parameters
		if graph.TypeName(have.Params[i].Type.Erased()) != graph.TypeName(want.Params[i].Type.Erased()) {
			return false
		}
	}
	// covariant in return: have's return must widen to want's
	return widensTo(have.ReturnType.Erased(), want.ReturnType.Erased())
}

func propertyAssignable(have, want *graph.Member) bool {
	if have.CLRName != want.CLRName {
		return false
	}
	haveReadonly := have.HasGetter && !have.HasSetter
	if haveReadonly {
		return widensTo(have.PropertyType.Erased(), want.PropertyType.Erased())
	}
	return graph.TypeName(have.PropertyType.Erased()) == graph.TypeName(want.PropertyType.Erased())
}

// widensTo reports whether from structurally widens to to: identical
// names, any numeric-to-numeric pair, or anything widening to the root
// object type.
func widensTo(from, to *graph.TypeRef) bool {
	if from == nil || to == nil {
		return from == to
	}
	toName := graph.TypeName(to)
	if toName == "System.Object" {
		return true
	}
	if from.Kind == graph.RefGenericParam && to.Kind == graph.RefGenericParam {
		return from.ParamName == to.ParamName
	}
	if isNumeric(from) && isNumeric(to) {
		return true
	}
	return graph.TypeName(from) == toName
}

var numericTypeNames = map[string]bool{
	"System.Byte": true, "System.SByte": true, "System.Int16": true, "System.UInt16": true,
	"System.Int32": true, "System.UInt32": true, "System.Int64": true, "System.UInt64": true,
	"System.Single": true, "System.Double": true, "System.Decimal": true,
}

func isNumeric(r *graph.TypeRef) bool {
	return r != nil && r.Kind == graph.RefNamed && numericTypeNames[graph.TypeName(r)]
}
