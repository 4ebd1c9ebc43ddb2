package graph

// RawConstraint carries a constraint type captured at Load time before the
// Constraint Closer pass resolves it into a proper TypeRef. Kept separate
// from ConstraintRefs to prevent infinite recursion on self-referential
// constraints (e.g. `T where T : IComparable<T>`): the memoising type-
// reference factory can finish building T's own reference before the
// constraint on T is resolved.
type RawConstraint struct {
	// StableID of the referenced constraint type, known at capture time
	// even though the TypeRef itself isn't resolved yet.
	StableID string
	// TypeArguments mirrors the raw (unresolved) closed generic arguments,
	// resolved lazily by the constraint closer.
	TypeArguments []RawConstraint
}

// GenericParam is a type or method generic parameter.
type GenericParam struct {
	Name     string
	Position int
	Variance Variance
	Special  SpecialConstraint

	// Constraints is empty at Load time; populated by the Constraint
	// Closer Shape pass.
	Constraints []*TypeRef

	// Raw holds the unresolved constraint types captured at Load.
	Raw []RawConstraint
}
