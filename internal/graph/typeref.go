package graph

// TypeRefKind tags the TypeRef sum type.
type TypeRefKind string

const (
	RefNamed           TypeRefKind = "named"
	RefGenericParam    TypeRefKind = "generic-parameter"
	RefArray           TypeRefKind = "array"
	RefPointer         TypeRefKind = "pointer"
	RefByReference     TypeRefKind = "by-reference"
	RefNested          TypeRefKind = "nested"
	RefPlaceholder     TypeRefKind = "placeholder"
)

// TypeRef is used wherever a type is named in a signature, as opposed to
// defined. It is a tagged union: exactly the fields relevant to Kind are
// populated, and every consumer exhaustively switches on Kind rather than
// testing fields for nil.
type TypeRef struct {
	Kind TypeRefKind

	// RefNamed
	Assembly      string
	Namespace     string
	SimpleName    string
	Arity         int
	TypeArguments []*TypeRef
	// InterfaceStableID is pre-stamped when the referent is an interface,
	// so later passes never need to re-resolve "is this an interface?".
	InterfaceStableID string

	// RefGenericParam
	ParamID          string
	ParamName        string
	ResolvedConstraints []*TypeRef

	// RefArray
	Element *TypeRef
	Rank    int

	// RefPointer
	Pointee *TypeRef
	Depth   int

	// RefByReference
	Referent *TypeRef

	// RefNested
	DeclaringType *TypeRef
	NestedName    string
	Full          *TypeRef // the full named view of the nested type

	// RefPlaceholder: a cycle-breaker. Holds the stable id under
	// construction so the factory can splice in the real reference once
	// the recursion that created it unwinds. Must never reach Emit.
	PlaceholderForStableID string
}

// StableID returns the type stable id a named or nested reference points
// at, in the assembly:clr_full_name form, using the backtick-arity
// convention. Returns "" for reference kinds that don't name a defined
// type (generic parameter, array, pointer, by-reference, placeholder).
func (r *TypeRef) StableID() string {
	if r == nil {
		return ""
	}
	switch r.Kind {
	case RefNamed:
		return r.Assembly + ":" + fullNameWithArity(r.Namespace, r.SimpleName, r.Arity)
	case RefNested:
		if r.Full != nil {
			return r.Full.StableID()
		}
		return ""
	default:
		return ""
	}
}

func fullNameWithArity(namespace, simpleName string, arity int) string {
	name := simpleName
	if arity > 0 {
		name = name + "`" + itoa(arity)
	}
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// IsPlaceholder reports whether r is a cycle-breaker placeholder.
func (r *TypeRef) IsPlaceholder() bool { return r != nil && r.Kind == RefPlaceholder }

// WalkTypeArguments applies fn to every type-argument-bearing child
// reference reachable from r (type arguments, array element, pointer
// pointee, by-reference referent). Used by the import graph builder and by
// Shape passes that need to find every named type mentioned in a
// signature. Generic-parameter references are terminal: fn is called on
// them but their ResolvedConstraints are not descended into automatically
// (callers that need constraint-aware walks do so explicitly).
func (r *TypeRef) WalkTypeArguments(fn func(*TypeRef)) {
	if r == nil {
		return
	}
	fn(r)
	switch r.Kind {
	case RefNamed:
		for _, arg := range r.TypeArguments {
			arg.WalkTypeArguments(fn)
		}
	case RefArray:
		r.Element.WalkTypeArguments(fn)
	case RefPointer:
		r.Pointee.WalkTypeArguments(fn)
	case RefByReference:
		r.Referent.WalkTypeArguments(fn)
	case RefNested:
		if r.Full != nil {
			r.Full.WalkTypeArguments(fn)
		}
	}
}

// Erased returns a copy of r with pointer/by-reference wrapping stripped,
// for the target-level assignability comparisons in Structural Conformance
// and Base-Overload-Adder.
func (r *TypeRef) Erased() *TypeRef {
	for r != nil && (r.Kind == RefPointer || r.Kind == RefByReference) {
		switch r.Kind {
		case RefPointer:
			r = r.Pointee
		case RefByReference:
			r = r.Referent
		}
	}
	return r
}
