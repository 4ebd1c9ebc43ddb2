package rename

// Reason tags why a reservation was requested — used in diagnostics and
// the binding sidecar.
type Reason string

const (
	ReasonOriginal          Reason = "original"
	ReasonReservedWord      Reason = "reserved-word"
	ReasonHiddenMember      Reason = "hidden-member"
	ReasonStaticCollision   Reason = "static-collision"
	ReasonIndexerMethod     Reason = "indexer-method"
	ReasonUserOverride      Reason = "user-override"
	ReasonViewCollision     Reason = "view-collision"
)

// Source tags what decided the requested base name.
type Source string

const (
	SourceReflection  Source = "reflection"
	SourceSynthesis   Source = "synthesis"
	SourcePolicy      Source = "policy"
)

// Strategy tags which collision-resolution path a reservation took.
type Strategy string

const (
	StrategyDirect           Strategy = "direct"
	StrategyInterfaceSuffix  Strategy = "interface-suffix"
	StrategyNumericSuffix    Strategy = "numeric-suffix"
	StrategyViewSuffix       Strategy = "view-suffix"
)

// Decision is a record describing one reservation: requested, final,
// reason, source, strategy, suffix, scope.
type Decision struct {
	StableID  string
	ScopeKey  string
	Requested string
	Final     string
	From      string // the pre-style-transform / pre-sanitisation name
	Reason    Reason
	Source    Source
	Strategy  Strategy
	Suffix    int // 0 when no suffix was needed
	Static    bool
}
