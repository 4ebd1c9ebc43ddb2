// Package reflectread implements the Load phase: turning
// the physical bytes of a set of seed assemblies into an initial
// *graph.Graph, plus the set of references that could not be resolved.
//
// The physical reading of assembly bytes into types and members is
// delegated to a reflection facility the host provides — this
// package never parses CLR metadata tables itself for that purpose. It
// only (a) does lightweight PE/COFF-level probing for assembly identity
// and the reference-edge set used by the transitive closure BFS
// (peprobe.go), and (b) consumes whatever a Reflector hands back and turns
// it into graph types (extract.go).
package reflectread

import "github.com/tsbindgen/tsbindgen/internal/assemblykey"

// Reflector is the external collaborator that actually walks a loaded
// assembly's metadata and reports its public surface. A production
// implementation requires a live CLR host (or a full ECMA-335 metadata
// reader, which nothing in this module's dependency set provides); this
// package ships only the interface, a recording test double
// (reflector_test.go), and the consumer logic that turns a Reflector's
// output into graph types.
type Reflector interface {
	// Reflect returns everything Load needs from one assembly, identified
	// by the path a closure walk resolved it to.
	Reflect(path string) (ReflectedAssembly, error)
}

// ReflectedAssembly is one assembly's declared-only public/internal
// surface, in a form close enough to graph.Type/graph.Member that extract.go
// is a straight field-by-field lift rather than a second parsing pass.
type ReflectedAssembly struct {
	Identity   assemblykey.Key
	References []assemblykey.Key
	Types      []ReflectedType
}

// ReflectedType mirrors graph.Type before stable ids, emit names, and
// views exist — those are Load/Shape/Name-Reservation concerns, not
// reflection concerns.
type ReflectedType struct {
	CLRFullName   string
	Kind          ReflectedKind
	Accessibility ReflectedAccessibility
	IsAbstract    bool
	IsSealed      bool
	IsValueType   bool
	IsStatic      bool

	GenericParams []ReflectedGenericParam
	BaseType      *ReflectedTypeRef
	Interfaces    []ReflectedTypeRef

	Constructors []ReflectedMember
	Fields       []ReflectedMember
	Properties   []ReflectedMember
	Events       []ReflectedMember
	Methods      []ReflectedMember

	Nested []ReflectedType
}

// ReflectedKind mirrors graph.TypeKind. Kept as a distinct type so
// extract.go is the single place the reflection vocabulary crosses into
// the graph vocabulary.
type ReflectedKind string

const (
	ReflectedClass     ReflectedKind = "class"
	ReflectedStruct    ReflectedKind = "struct"
	ReflectedInterface ReflectedKind = "interface"
	ReflectedEnum      ReflectedKind = "enum"
	ReflectedDelegate  ReflectedKind = "delegate"
)

// ReflectedAccessibility mirrors the source language's declared (not yet
// effective) accessibility. Effective accessibility — the intersection
// with every enclosing type's accessibility — is computed in extract.go,
// since a Reflector reports each type in isolation.
type ReflectedAccessibility string

const (
	ReflectedPublic            ReflectedAccessibility = "public"
	ReflectedInternal          ReflectedAccessibility = "internal"
	ReflectedProtected         ReflectedAccessibility = "protected"
	ReflectedPrivate           ReflectedAccessibility = "private"
	ReflectedProtectedInternal ReflectedAccessibility = "protected-internal"
)

// ReflectedMemberKind mirrors graph.MemberKind.
type ReflectedMemberKind string

const (
	ReflectedConstructor ReflectedMemberKind = "constructor"
	ReflectedField       ReflectedMemberKind = "field"
	ReflectedProperty    ReflectedMemberKind = "property"
	ReflectedEvent       ReflectedMemberKind = "event"
	ReflectedMethod      ReflectedMemberKind = "method"
)

// ReflectedMember mirrors graph.Member before a stable id, canonical
// signature, provenance, or emit scope exists.
type ReflectedMember struct {
	CLRName    string
	Kind       ReflectedMemberKind
	Visibility ReflectedAccessibility
	IsStatic   bool

	// IsAccessor marks a property/event's generated get_/set_/add_/
	// remove_ method so extract.go's declared-only filter can drop it.
	IsAccessor bool

	Params        []ReflectedParam
	ReturnType    *ReflectedTypeRef
	GenericParams []ReflectedGenericParam

	PropertyType   *ReflectedTypeRef
	IndexParams    []ReflectedParam
	HasGetter      bool
	HasSetter      bool
	SetterReadonly bool

	FieldType *ReflectedTypeRef

	EventHandlerType *ReflectedTypeRef
}

// ReflectedParam mirrors graph.Param.
type ReflectedParam struct {
	Name     string
	Type     ReflectedTypeRef
	Modifier ReflectedParamModifier
}

type ReflectedParamModifier string

const (
	ReflectedParamNone   ReflectedParamModifier = ""
	ReflectedParamIn     ReflectedParamModifier = "in"
	ReflectedParamOut    ReflectedParamModifier = "out"
	ReflectedParamRef    ReflectedParamModifier = "ref"
	ReflectedParamParams ReflectedParamModifier = "params"
)

// ReflectedGenericParam mirrors graph.GenericParam, except constraints are
// carried as raw stable-id references (ReflectedRawConstraint) — Load
// never resolves a constraint into a TypeRef, only the Constraint Closer
// Shape pass does.
type ReflectedGenericParam struct {
	Name     string
	Position int
	Variance ReflectedVariance
	Special  ReflectedSpecialConstraint

	RawConstraints []ReflectedRawConstraint
}

type ReflectedVariance string

const (
	ReflectedVarianceNone         ReflectedVariance = "none"
	ReflectedVarianceCovariant    ReflectedVariance = "covariant"
	ReflectedVarianceContravariant ReflectedVariance = "contravariant"
)

// ReflectedSpecialConstraint is a bitmask mirroring graph.SpecialConstraint.
type ReflectedSpecialConstraint uint8

const (
	ReflectedConstraintReferenceType     ReflectedSpecialConstraint = 1 << iota
	ReflectedConstraintValueType
	ReflectedConstraintDefaultConstructor
	ReflectedConstraintNotNullable
)

func (c ReflectedSpecialConstraint) Has(flag ReflectedSpecialConstraint) bool { return c&flag != 0 }

// ReflectedRawConstraint mirrors graph.RawConstraint: a constraint type
// known by stable id at capture time, resolved into a TypeRef later.
type ReflectedRawConstraint struct {
	StableID      string
	TypeArguments []ReflectedRawConstraint
}

// ReflectedTypeRef mirrors graph.TypeRef, flattened to exactly what a
// Reflector can report about a reference without a live graph to resolve
// against: a named type (possibly generic-closed), a generic parameter by
// position/name, or one of the wrapping kinds.
type ReflectedTypeRef struct {
	Kind ReflectedRefKind

	Assembly      string
	Namespace     string
	SimpleName    string
	Arity         int
	TypeArguments []ReflectedTypeRef
	IsInterface   bool

	ParamName string

	Element *ReflectedTypeRef
	Rank    int

	Pointee *ReflectedTypeRef
	Depth   int

	Referent *ReflectedTypeRef
}

type ReflectedRefKind string

const (
	ReflectedRefNamed        ReflectedRefKind = "named"
	ReflectedRefGenericParam ReflectedRefKind = "generic-parameter"
	ReflectedRefArray        ReflectedRefKind = "array"
	ReflectedRefPointer      ReflectedRefKind = "pointer"
	ReflectedRefByReference  ReflectedRefKind = "by-reference"
)
