package shape

import "github.com/tsbindgen/tsbindgen/internal/graph"

// substitution maps a generic parameter name to the concrete type argument
// it should be replaced with.
type substitution map[string]*graph.TypeRef

// buildSubstitution pairs generic params positionally with closed type
// arguments. Returns an empty substitution if arities don't match (an
// unclosed or malformed reference — callers treat that as "no
// substitution available" rather than panicking).
func buildSubstitution(params []*graph.GenericParam, args []*graph.TypeRef) substitution {
	if len(params) != len(args) {
		return substitution{}
	}
	s := make(substitution, len(params))
	for i, p := range params {
		s[p.Name] = args[i]
	}
	return s
}

// compose returns a substitution equivalent to applying `inner` first and
// then `outer` — used to substitute transitively through multi-level
// interface inheritance chains.
func compose(outer, inner substitution) substitution {
	if len(outer) == 0 {
		return inner
	}
	if len(inner) == 0 {
		return outer
	}
	out := make(substitution, len(outer)+len(inner))
	for k, v := range inner {
		out[k] = substituteRef(v, outer)
	}
	for k, v := range outer {
		if _, already := out[k]; !already {
			out[k] = v
		}
	}
	return out
}

// substituteRef replaces every generic-parameter reference in r that
// appears in s, recursively through type arguments/array/pointer/by-ref/
// nested wrappers. References to parameters not in s (e.g. a method's own
// generic parameters, deliberately excluded from substitution to avoid
// capturing them) pass through unchanged.
func substituteRef(r *graph.TypeRef, s substitution) *graph.TypeRef {
	if r == nil {
		return nil
	}
	switch r.Kind {
	case graph.RefGenericParam:
		if repl, ok := s[r.ParamName]; ok {
			return repl
		}
		return r
	case graph.RefNamed:
		if len(r.TypeArguments) == 0 {
			return r
		}
		newArgs := make([]*graph.TypeRef, len(r.TypeArguments))
		changed := false
		for i, a := range r.TypeArguments {
			newArgs[i] = substituteRef(a, s)
			if newArgs[i] != a {
				changed = true
			}
		}
		if !changed {
			return r
		}
		clone := *r
		clone.TypeArguments = newArgs
		return &clone
	case graph.RefArray:
		elem := substituteRef(r.Element, s)
		if elem == r.Element {
			return r
		}
		clone := *r
		clone.Element = elem
		return &clone
	case graph.RefPointer:
		pointee := substituteRef(r.Pointee, s)
		if pointee == r.Pointee {
			return r
		}
		clone := *r
		clone.Pointee = pointee
		return &clone
	case graph.RefByReference:
		referent := substituteRef(r.Referent, s)
		if referent == r.Referent {
			return r
		}
		clone := *r
		clone.Referent = referent
		return &clone
	case graph.RefNested:
		if r.Full == nil {
			return r
		}
		full := substituteRef(r.Full, s)
		if full == r.Full {
			return r
		}
		clone := *r
		clone.Full = full
		return &clone
	default:
		return r
	}
}

// substituteMember returns a clone of m with every signature-bearing type
// reference substituted via s.
func substituteMember(m *graph.Member, s substitution) *graph.Member {
	if len(s) == 0 {
		return m
	}
	clone := *m
	if len(m.Params) > 0 {
		clone.Params = make([]graph.Param, len(m.Params))
		for i, p := range m.Params {
			clone.Params[i] = graph.Param{Name: p.Name, Modifier: p.Modifier, Type: substituteRef(p.Type, s)}
		}
	}
	clone.ReturnType = substituteRef(m.ReturnType, s)
	clone.PropertyType = substituteRef(m.PropertyType, s)
	clone.FieldType = substituteRef(m.FieldType, s)
	clone.EventHandlerType = substituteRef(m.EventHandlerType, s)
	if len(m.IndexParams) > 0 {
		clone.IndexParams = make([]graph.Param, len(m.IndexParams))
		for i, p := range m.IndexParams {
			clone.IndexParams[i] = graph.Param{Name: p.Name, Modifier: p.Modifier, Type: substituteRef(p.Type, s)}
		}
	}
	return &clone
}
