// Package diagnostics provides the centralized diagnostic code taxonomy and
// the append-only diagnostic bag threaded through every build phase.
//
// All diagnostic codes follow a consistent family-prefixed taxonomy so a
// downstream consumer (CI, a binding-compiler author) can group and count
// findings by code without parsing message text.
package diagnostics

// Code identifies a stable diagnostic kind. Codes are grouped by the phase
// or concern that raises them; see the family banners below.
const (
	// ============================================================================
	// Load / reflection reader errors (LOAD###)
	// ============================================================================

	// LoadCoreLibraryMissing indicates the core library was not found in the
	// transitive closure. Fatal: the build aborts rather than diagnosing.
	LoadCoreLibraryMissing = "LOAD001"

	// LoadIdentityConflict indicates two paths expose the same simple
	// assembly name with different public key tokens.
	LoadIdentityConflict = "LOAD002"

	// LoadVersionDrift indicates major-version drift for identical
	// assembly names. Error under strict policy, warning under lax.
	LoadVersionDrift = "LOAD003"

	// LoadUnresolvedReference indicates an assembly reference could not be
	// located among seed or reference search paths. Always a warning; the
	// reference is recorded in the deferred unresolved set.
	LoadUnresolvedReference = "LOAD004"

	// LoadCorruptMetadata indicates a referenced assembly's metadata could
	// not be parsed; the reflection factory recovers with a placeholder.
	LoadCorruptMetadata = "LOAD005"

	// LoadDuplicateMember indicates two members in one type share a member
	// stable id at Load time — a hard error, never recoverable.
	LoadDuplicateMember = "LOAD006"

	// ============================================================================
	// Naming collisions (NAME###)
	// ============================================================================

	// NameClassSurfaceCollision indicates two class-surface members of one
	// type would project to the same final name in the same static scope.
	NameClassSurfaceCollision = "NAME005"

	// NameViewCollision indicates two view-only members of one explicit
	// view would project to the same final name.
	NameViewCollision = "NAME003"

	// NameViewShadowsSurface indicates a view-only final name equals a
	// class-surface final name of the same type without the $view suffix.
	NameViewShadowsSurface = "NAME004"

	// NameHiddenMemberSuffixCollision indicates the hidden-member planner's
	// renamed form still collides after suffixing.
	NameHiddenMemberSuffixCollision = "NAME006"

	// ============================================================================
	// Identifier sanitisation (IDENT###)
	// ============================================================================

	// IdentReservedWord indicates a requested name collided with a target
	// language reserved word and was suffixed with an underscore.
	IdentReservedWord = "IDENT001"

	// IdentEmptyAfterSanitisation indicates style transform + sanitisation
	// reduced a name to the empty string.
	IdentEmptyAfterSanitisation = "IDENT002"

	// ============================================================================
	// Overload collisions (OV###)
	// ============================================================================

	// OVReturnOnlyConflict indicates two methods share a signature without
	// return type but differ in return type — unrepresentable as overloads.
	OVReturnOnlyConflict = "OV002"

	// OVNonUniqueErasure indicates an overload group still has more than
	// one surviving surface member after unification.
	OVNonUniqueErasure = "OV001"

	// OVWidenedOverloadOmitted indicates a narrower CLR overload was
	// demoted to omitted in favour of the widest member of its erasure
	// group.
	OVWidenedOverloadOmitted = "OV003"

	// ============================================================================
	// View integrity (VIEW###)
	// ============================================================================

	// VIEWEmpty indicates an explicit view was planned with zero members.
	VIEWEmpty = "VIEW001"

	// VIEWMemberInMultipleViews indicates a view-only member was attached
	// to more than one explicit view of the same type.
	VIEWMemberInMultipleViews = "VIEW002"

	// VIEWMissingSourceInterface indicates a view-only member lacks a
	// source-interface reference.
	VIEWMissingSourceInterface = "VIEW003"

	// VIEWInvalidPropertyName indicates an explicit view reached Phase Gate
	// with an empty or otherwise invalid companion property name.
	VIEWInvalidPropertyName = "VIEW004"

	// ============================================================================
	// Internal invariants (INT###)
	// ============================================================================

	// INTClassSurfaceHasSourceInterface indicates a class-surface member
	// incorrectly carries a source-interface reference.
	INTClassSurfaceHasSourceInterface = "INT003"

	// INTPlaceholderReachedEmit indicates a placeholder type reference
	// survived Shape and reached Emit. Fatal.
	INTPlaceholderReachedEmit = "INT001"

	// INTSynthesisNotIdempotent indicates a second run of a synthesis pass
	// added new members, violating the idempotence invariant.
	INTSynthesisNotIdempotent = "INT002"

	// ============================================================================
	// Scope hygiene (SCOPE###)
	// ============================================================================

	// SCOPEMalformedKey indicates a scope key did not match any of the
	// well-formed shapes produced by the scope factory.
	SCOPEMalformedKey = "SCOPE001"

	// SCOPELookupMismatch indicates a lookup used a scope that does not
	// match the reservation's scope (e.g. instance vs static).
	SCOPELookupMismatch = "SCOPE002"

	// ============================================================================
	// Constraint losses (CT###)
	// ============================================================================

	// CTConstructorConstraintLoss indicates an implemented interface
	// carried a generic parameter with the default-constructor special
	// constraint, which the target language cannot encode.
	CTConstructorConstraintLoss = "CT001"

	// CTUnrepresentableConstraint indicates a pointer or by-reference type
	// appeared as a generic constraint.
	CTUnrepresentableConstraint = "CT002"

	// CTConflictingSpecialConstraints indicates a generic parameter
	// simultaneously demanded value-type and reference-type.
	CTConflictingSpecialConstraints = "CT003"

	// CTUnionMergeUnsupported indicates the configured "union" constraint
	// merge strategy was requested but is unrepresentable.
	CTUnionMergeUnsupported = "CT004"

	// ============================================================================
	// Finalisation (FIN###)
	// ============================================================================

	// FINUnspecifiedEmitScope indicates a member reached Phase Gate with
	// emit scope still unspecified.
	FINUnspecifiedEmitScope = "FIN003"

	// FINMissingRenameDecision indicates a non-omitted member has no rename
	// decision in the scope matching its emit scope.
	FINMissingRenameDecision = "FIN004"

	// FINIndexerPropertySurvived indicates an indexer property reached the
	// final indexer sweep in a configuration that should have normalised it
	// to get_Item/set_Item methods.
	FINIndexerPropertySurvived = "FIN005"

	// ============================================================================
	// Renamer/printer mismatches (PRINT###)
	// ============================================================================

	// PRINTNameMismatch indicates the name the Emit module would print
	// differs from the Renamer's recorded final name for that stable id.
	PRINTNameMismatch = "PRINT001"

	// ============================================================================
	// Unsupported constructs (TYPEMAP###)
	// ============================================================================

	// TYPEMAPRawPointer indicates a raw pointer type appeared where the
	// target cannot represent it and was widened to an opaque marker.
	TYPEMAPRawPointer = "TYPEMAP001"

	// TYPEMAPValueTypeSemantics indicates true value-type semantics were
	// requested and could not be preserved.
	TYPEMAPValueTypeSemantics = "TYPEMAP002"

	// ============================================================================
	// Module surface (API/IMPORT/EXPORT###)
	// ============================================================================

	// APIInternalTypeLeaked indicates a public type's signature names a
	// type from a namespace's internal-only surface.
	APIInternalTypeLeaked = "API001"

	// IMPORTMissing indicates a named type referenced in a public signature
	// was not found in the import plan for its namespace.
	IMPORTMissing = "IMPORT001"

	// IMPORTConstructedKeyLeaked indicates a constructed-generic or
	// assembly-qualified string reached the import planner as a lookup key.
	IMPORTConstructedKeyLeaked = "IMPORT002"

	// EXPORTNotReExported indicates an imported type required by a public
	// signature was not re-exported from the façade file.
	EXPORTNotReExported = "EXPORT001"

	// ============================================================================
	// Policy compliance (POLICY###)
	// ============================================================================

	// PolicyDiamondError indicates the diamond resolver's "error" strategy
	// fired.
	PolicyDiamondError = "POLICY001"

	// PolicyStaticSideError indicates the static-side analyser's "error"
	// action fired.
	PolicyStaticSideError = "POLICY002"
)
