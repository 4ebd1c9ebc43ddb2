package graph

// TypeKind classifies a type symbol.
type TypeKind string

const (
	KindClass          TypeKind = "class"
	KindStruct         TypeKind = "struct"
	KindInterface      TypeKind = "interface"
	KindEnum           TypeKind = "enum"
	KindDelegate       TypeKind = "delegate"
	KindStaticNamespace TypeKind = "static-namespace"
)

// emitOrder is the forward-reference-safe ordering used by the import/emit
// planner: enums, delegates, interfaces, structs, classes, static
// namespaces.
var emitOrder = map[TypeKind]int{
	KindEnum:            0,
	KindDelegate:        1,
	KindInterface:       2,
	KindStruct:          3,
	KindClass:           4,
	KindStaticNamespace: 5,
}

// EmitOrderRank returns k's position in the forward-reference-safe type
// emission order.
func EmitOrderRank(k TypeKind) int { return emitOrder[k] }

// Accessibility is the effective visibility of a type or member, already
// intersected with every enclosing type's accessibility.
type Accessibility string

const (
	AccessPublic    Accessibility = "public"
	AccessInternal  Accessibility = "internal"
	AccessProtected Accessibility = "protected"
	AccessPrivate   Accessibility = "private"
)

// Variance is a generic parameter's declared variance.
type Variance string

const (
	VarianceNone         Variance = "none"
	VarianceCovariant    Variance = "covariant"
	VarianceContravariant Variance = "contravariant"
)

// SpecialConstraint is a bitmask of the source language's special generic
// constraints.
type SpecialConstraint uint8

const (
	ConstraintReferenceType    SpecialConstraint = 1 << iota // class
	ConstraintValueType                                      // struct
	ConstraintDefaultConstructor                             // new()
	ConstraintNotNullable
)

func (c SpecialConstraint) Has(flag SpecialConstraint) bool { return c&flag != 0 }

// Provenance records why a member exists in its current form.
type Provenance string

const (
	ProvenanceOriginal              Provenance = "original"
	ProvenanceFromInterface         Provenance = "from-interface"
	ProvenanceSynthesized           Provenance = "synthesized"
	ProvenanceHiddenNew             Provenance = "hidden-new"
	ProvenanceBaseOverload          Provenance = "base-overload"
	ProvenanceDiamondResolved       Provenance = "diamond-resolved"
	ProvenanceIndexerNormalized     Provenance = "indexer-normalized"
	ProvenanceExplicitView          Provenance = "explicit-view"
	ProvenanceOverloadReturnConflict Provenance = "overload-return-conflict"
)

// EmitScope is the placement decision for a member.
type EmitScope string

const (
	ScopeUnspecified  EmitScope = "unspecified"
	ScopeClassSurface EmitScope = "class-surface"
	ScopeStaticSurface EmitScope = "static-surface"
	ScopeViewOnly     EmitScope = "view-only"
	ScopeOmitted      EmitScope = "omitted"
)

// MemberKind distinguishes the kind-specific signature fields on Member.
type MemberKind string

const (
	MemberMethod      MemberKind = "method"
	MemberProperty    MemberKind = "property"
	MemberField       MemberKind = "field"
	MemberEvent       MemberKind = "event"
	MemberConstructor MemberKind = "constructor"
)

// ParamModifier is a by-ref style parameter modifier.
type ParamModifier string

const (
	ParamIn     ParamModifier = "in"
	ParamOut    ParamModifier = "out"
	ParamRef    ParamModifier = "ref"
	ParamParams ParamModifier = "params"
	ParamNone   ParamModifier = ""
)

// DiamondResolution is the configured policy for the diamond resolver.
type DiamondResolution string

const (
	DiamondOverloadAll    DiamondResolution = "overload-all"
	DiamondPreferDerived  DiamondResolution = "prefer-derived"
	DiamondError          DiamondResolution = "error"
)

// StaticSideAction is the configured policy for the static-side analyser.
type StaticSideAction string

const (
	StaticSideAnalyse    StaticSideAction = "analyse"
	StaticSideAutoRename StaticSideAction = "auto-rename"
	StaticSideError      StaticSideAction = "error"
)

// ConstraintMergeStrategy is the configured policy for the constraint closer.
type ConstraintMergeStrategy string

const (
	MergeIntersection ConstraintMergeStrategy = "intersection"
	MergeUnion        ConstraintMergeStrategy = "union"
	MergePreferLeft   ConstraintMergeStrategy = "prefer-left"
)
