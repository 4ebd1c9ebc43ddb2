package graph

import "github.com/tsbindgen/tsbindgen/internal/stableid"

// Type is a type symbol: a class, struct, interface, enum, delegate, or
// static namespace.
type Type struct {
	StableID      string
	CLRFullName   string
	Assembly      string
	Kind          TypeKind
	Accessibility Accessibility

	GenericParams []*GenericParam
	BaseType      *TypeRef   // nil for interfaces and for System.Object itself
	Interfaces    []*TypeRef

	Members *MemberBundle
	Nested  []*Type

	IsAbstract  bool
	IsSealed    bool
	IsValueType bool
	IsStatic    bool

	// EmitName is absent (nil) until Name Reservation assigns it.
	EmitName *string

	// Views is set by Shape's view planner (4.2.11).
	Views []*ExplicitView
}

// Clone returns a shallow copy of t suitable as the basis for a pass that
// changes only a few fields — callers overwrite what they need and never
// mutate the original Type in place, preserving the "every phase takes a
// graph and returns a new one" discipline.
func (t *Type) Clone() *Type {
	c := *t
	return &c
}

// WithMembers returns a clone of t with Members replaced.
func (t *Type) WithMembers(b *MemberBundle) *Type {
	c := t.Clone()
	c.Members = b
	return c
}

// WithInterfaces returns a clone of t with Interfaces replaced.
func (t *Type) WithInterfaces(ifaces []*TypeRef) *Type {
	c := t.Clone()
	c.Interfaces = ifaces
	return c
}

// WithViews returns a clone of t with Views replaced.
func (t *Type) WithViews(views []*ExplicitView) *Type {
	c := t.Clone()
	c.Views = views
	return c
}

// WithEmitName returns a clone of t with EmitName set.
func (t *Type) WithEmitName(name string) *Type {
	c := t.Clone()
	c.EmitName = &name
	return c
}

// AllMembers returns every member of t across all kinds, in Emit category
// order.
func (t *Type) AllMembers() []*Member {
	if t.Members == nil {
		return nil
	}
	return t.Members.All()
}

// Reference returns the TypeRef a consumer would use to name t, with the
// interface stable id pre-stamped when t is an interface.
func (t *Type) Reference() *TypeRef {
	namespace, simpleName := splitNamespace(t.CLRFullName)
	simpleName, arity := stableid.StripArity(simpleName)
	ref := &TypeRef{
		Kind:       RefNamed,
		Assembly:   t.Assembly,
		Namespace:  namespace,
		SimpleName: simpleName,
		Arity:      arity,
	}
	if t.Kind == KindInterface {
		ref.InterfaceStableID = t.StableID
	}
	return ref
}

func splitNamespace(clrFullName string) (namespace, simpleName string) {
	lastDot := -1
	for i := 0; i < len(clrFullName); i++ {
		if clrFullName[i] == '.' {
			lastDot = i
		}
		if clrFullName[i] == '`' {
			break
		}
	}
	if lastDot < 0 {
		return "", clrFullName
	}
	return clrFullName[:lastDot], clrFullName[lastDot+1:]
}
