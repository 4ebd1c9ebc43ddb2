package graph

// Param is one method or indexer parameter.
type Param struct {
	Name     string
	Type     *TypeRef
	Modifier ParamModifier
}

// Member is a method, property, field, event, or constructor symbol.
//
// Provenance and EmitScope are the two classification fields central to
// Shape. EmitScope starts at ScopeUnspecified and every Shape
// pass may change it; Phase Gate forbids ScopeUnspecified at emission.
type Member struct {
	StableID  string
	CLRName   string
	EmitName  string // assigned during Name Reservation; "" until then
	Kind      MemberKind
	Visibility Accessibility
	IsStatic  bool

	Provenance Provenance
	EmitScope  EmitScope

	// SourceInterface is set for view-eligible members (methods,
	// properties, events) when EmitScope is ScopeViewOnly, identifying
	// which interface contributes them. Must be nil for class-surface
	// members.
	SourceInterface *TypeRef

	// Method / constructor fields.
	Params        []Param
	ReturnType    *TypeRef // nil for constructors
	GenericParams []*GenericParam

	// Property fields.
	PropertyType   *TypeRef
	IndexParams    []Param // non-empty for indexers
	HasGetter      bool
	HasSetter      bool
	SetterReadonly bool // true when only a getter exists (read-only property)

	// Field fields.
	FieldType *TypeRef

	// Event fields.
	EventHandlerType *TypeRef
}

// CanonicalSignature returns the deterministic signature string used
// whenever Shape needs to know "is this the same member?".
func (m *Member) CanonicalSignature() string {
	return CanonicalSignature(m)
}

// MemberBundle groups a type's members by kind, mirroring the Emit
// ordering category on the type symbol.
type MemberBundle struct {
	Constructors []*Member
	Fields       []*Member
	Properties   []*Member
	Events       []*Member
	Methods      []*Member
}

// All returns every member in the bundle in Emit category order.
func (b *MemberBundle) All() []*Member {
	total := len(b.Constructors) + len(b.Fields) + len(b.Properties) + len(b.Events) + len(b.Methods)
	out := make([]*Member, 0, total)
	out = append(out, b.Constructors...)
	out = append(out, b.Fields...)
	out = append(out, b.Properties...)
	out = append(out, b.Events...)
	out = append(out, b.Methods...)
	return out
}

// AppendByKind appends m to the slice matching its Kind, returning a new
// bundle (pass inputs are never mutated in place).
func (b *MemberBundle) AppendByKind(m *Member) *MemberBundle {
	nb := *b
	switch m.Kind {
	case MemberConstructor:
		nb.Constructors = append(append([]*Member{}, b.Constructors...), m)
	case MemberField:
		nb.Fields = append(append([]*Member{}, b.Fields...), m)
	case MemberProperty:
		nb.Properties = append(append([]*Member{}, b.Properties...), m)
	case MemberEvent:
		nb.Events = append(append([]*Member{}, b.Events...), m)
	case MemberMethod:
		nb.Methods = append(append([]*Member{}, b.Methods...), m)
	}
	return &nb
}

// ViewEligible reports whether m's kind can be placed in an explicit view
// (methods, properties, events).
func (m *Member) ViewEligible() bool {
	switch m.Kind {
	case MemberMethod, MemberProperty, MemberEvent:
		return true
	default:
		return false
	}
}
