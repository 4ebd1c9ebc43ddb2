package graph

import "strings"

// CanonicalSignature computes the deterministic string encoding of a
// member's distinguishing shape:
//
//	methods:    (param_type_1{:in|out|ref|params},...)->return_type
//	properties: (index_param_types)->property_type
//	fields/events: ->type
//
// All type names are normalised (generic backticks kept, assembly
// qualification stripped) via TypeName.
func CanonicalSignature(m *Member) string {
	var b strings.Builder
	switch m.Kind {
	case MemberMethod, MemberConstructor:
		writeParamList(&b, m.Params)
		b.WriteString("->")
		if m.ReturnType != nil {
			b.WriteString(TypeName(m.ReturnType))
		} else {
			b.WriteString("void")
		}
	case MemberProperty:
		writeParamList(&b, m.IndexParams)
		b.WriteString("->")
		b.WriteString(TypeName(m.PropertyType))
	case MemberField:
		b.WriteString("->")
		b.WriteString(TypeName(m.FieldType))
	case MemberEvent:
		b.WriteString("->")
		b.WriteString(TypeName(m.EventHandlerType))
	}
	return b.String()
}

func writeParamList(b *strings.Builder, params []Param) {
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(TypeName(p.Type))
		if p.Modifier != ParamNone {
			b.WriteByte(':')
			b.WriteString(string(p.Modifier))
		}
	}
	b.WriteByte(')')
}

// ErasedSignature is CanonicalSignature computed over erased parameter and
// return types (pointers/by-reference stripped) — used by target-level
// assignability checks and the overload unifier's erasure key, which must
// not distinguish `ref T` from `T`.
func ErasedSignature(m *Member) string {
	erasedParams := make([]Param, len(m.Params))
	for i, p := range m.Params {
		erasedParams[i] = Param{Name: p.Name, Type: p.Type.Erased()}
	}
	em := *m
	em.Params = erasedParams
	if em.ReturnType != nil {
		em.ReturnType = em.ReturnType.Erased()
	}
	if em.PropertyType != nil {
		em.PropertyType = em.PropertyType.Erased()
	}
	return CanonicalSignature(&em)
}

// TypeName renders a TypeRef's normalised name: generic backticks kept
// (List`1<string>), assembly-qualification noise stripped, nested types
// rendered via their declaring chain.
func TypeName(r *TypeRef) string {
	if r == nil {
		return "void"
	}
	switch r.Kind {
	case RefNamed:
		name := r.SimpleName
		if r.Arity > 0 {
			name += "`" + itoa(r.Arity)
		}
		if r.Namespace != "" {
			name = r.Namespace + "." + name
		}
		if len(r.TypeArguments) > 0 {
			var b strings.Builder
			b.WriteString(name)
			b.WriteByte('<')
			for i, a := range r.TypeArguments {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(TypeName(a))
			}
			b.WriteByte('>')
			return b.String()
		}
		return name
	case RefGenericParam:
		return r.ParamName
	case RefArray:
		return TypeName(r.Element) + strings.Repeat("[]", max(r.Rank, 1))
	case RefPointer:
		return TypeName(r.Pointee) + strings.Repeat("*", max(r.Depth, 1))
	case RefByReference:
		return "ref " + TypeName(r.Referent)
	case RefNested:
		if r.Full != nil {
			return TypeName(r.Full)
		}
		return TypeName(r.DeclaringType) + "+" + r.NestedName
	case RefPlaceholder:
		return "<placeholder:" + r.PlaceholderForStableID + ">"
	default:
		return "<unknown>"
	}
}
