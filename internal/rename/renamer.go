package rename

import "fmt"

// Request bundles everything one reservation needs.
type Request struct {
	StableID  string
	Base      string // requested base name, pre-transform
	Scope     Scope
	Style     Style
	Reason    Reason
	Source    Source
	Static    bool

	// InterfaceShortName is set when Base came from an explicit interface
	// implementation form (`IFoo.Bar`) — collision resolution tries
	// `{base}_{InterfaceShortName}` before falling back to numeric
	// suffixes.
	InterfaceShortName string
}

// Renamer is the central naming authority. It is mutable and accumulates
// across every pass that reserves; it requires no locking because the
// whole pipeline is single-threaded, and it is owned by the orchestrator
// (build.Run) rather than a process global.
type Renamer struct {
	// reservations[scopeKey][finalName] = stableID
	reservations map[string]map[string]string
	// decisions[scopeKey][stableID] = Decision
	decisions map[string]map[string]Decision
	// overrides[stableID] = explicit user-requested final name
	overrides map[string]string
}

// New returns an empty Renamer.
func New() *Renamer {
	return &Renamer{
		reservations: make(map[string]map[string]string),
		decisions:    make(map[string]map[string]Decision),
		overrides:    make(map[string]string),
	}
}

// SetOverride records an explicit user override for stableID (policy's
// typeRenames / equivalent member-rename maps). Reserve consults this
// before applying any style transform.
func (r *Renamer) SetOverride(stableID, finalName string) {
	r.overrides[stableID] = finalName
}

// Reserve performs the five-step contract:
//  1. apply any explicit user override
//  2. apply the configured style transform
//  3. sanitise reserved words
//  4. attempt to reserve, resolving collisions
//  5. record the decision
//
// The same stable id re-reserving in the same scope with the same
// requested base is idempotent: it returns the name already on file
// without consuming a new suffix.
func (r *Renamer) Reserve(req Request) string {
	scopeKey := req.Scope.Key()

	if existing, ok := r.lookupDecision(req.StableID, scopeKey); ok {
		return existing.Final
	}

	requested := req.Base
	name := requested
	if override, ok := r.overrides[req.StableID]; ok {
		name = override
		req.Reason = ReasonUserOverride
		req.Source = SourcePolicy
	} else {
		name = Transform(name, req.Style)
	}
	sanitized := Sanitize(name)
	if sanitized.Changed && req.Reason == "" {
		req.Reason = ReasonReservedWord
	}
	name = sanitized.Sanitized

	bucket := r.bucket(scopeKey)
	final := name
	strategy := StrategyDirect
	suffixIdx := 0

	if owner, taken := bucket[final]; taken && owner != req.StableID {
		if req.InterfaceShortName != "" {
			candidate := name + "_" + req.InterfaceShortName
			if owner2, taken2 := bucket[candidate]; !taken2 || owner2 == req.StableID {
				final = candidate
				strategy = StrategyInterfaceSuffix
			}
		}
		if owner, taken := bucket[final]; taken && owner != req.StableID {
			final, suffixIdx = nextNumericSuffix(bucket, name, req.StableID)
			strategy = StrategyNumericSuffix
			_ = owner
		}
	}

	bucket[final] = req.StableID
	decision := Decision{
		StableID:  req.StableID,
		ScopeKey:  scopeKey,
		Requested: requested,
		Final:     final,
		From:      requested,
		Reason:    req.Reason,
		Source:    req.Source,
		Strategy:  strategy,
		Suffix:    suffixIdx,
		Static:    req.Static,
	}
	r.recordDecision(scopeKey, req.StableID, decision)
	return final
}

// nextNumericSuffix appends the next available numeric suffix: name,
// name2, name3, ....
func nextNumericSuffix(bucket map[string]string, base, stableID string) (string, int) {
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if owner, taken := bucket[candidate]; !taken || owner == stableID {
			return candidate, i
		}
	}
}

func (r *Renamer) bucket(scopeKey string) map[string]string {
	b, ok := r.reservations[scopeKey]
	if !ok {
		b = make(map[string]string)
		r.reservations[scopeKey] = b
	}
	return b
}

func (r *Renamer) recordDecision(scopeKey, stableID string, d Decision) {
	m, ok := r.decisions[scopeKey]
	if !ok {
		m = make(map[string]Decision)
		r.decisions[scopeKey] = m
	}
	m[stableID] = d
}

func (r *Renamer) lookupDecision(stableID, scopeKey string) (Decision, bool) {
	m, ok := r.decisions[scopeKey]
	if !ok {
		return Decision{}, false
	}
	d, ok := m[stableID]
	return d, ok
}

// Lookup returns the final name reserved for stableID in scope. scope must
// be a surface scope (class or view); a namespace scope is a programming
// error here.
func (r *Renamer) Lookup(stableID string, scope Scope) (string, bool) {
	if !scope.IsSurface() {
		return "", false
	}
	d, ok := r.lookupDecision(stableID, scope.Key())
	if !ok {
		return "", false
	}
	return d.Final, true
}

// Decision returns the full rename decision recorded for stableID in
// scope, if any.
func (r *Renamer) Decision(stableID string, scope Scope) (Decision, bool) {
	return r.lookupDecision(stableID, scope.Key())
}

// PreviewStyled computes the name Reserve would choose for base under
// style, without consuming a reservation — the "peek" step Name
// Reservation's view-member pass uses to check whether a view member's
// natural name collides with the class-surface shadow before deciding
// whether to apply the $view suffix.
func (r *Renamer) PreviewStyled(base string, style Style) string {
	return Sanitize(Transform(base, style)).Sanitized
}

// TryReserveExact attempts to reserve name verbatim (no style transform,
// no sanitisation) in scope for stableID. Returns ok=false without
// recording anything if name is already taken by a different stable id.
// Used by Name Reservation's view pass, which computes its own $view/
// $view2/... suffix sequence rather than the Renamer's default numeric
// suffixing.
func (r *Renamer) TryReserveExact(stableID, name string, scope Scope, reason Reason, source Source, static bool) (string, bool) {
	if existing, ok := r.lookupDecision(stableID, scope.Key()); ok {
		return existing.Final, existing.Final == name
	}
	bucket := r.bucket(scope.Key())
	if owner, taken := bucket[name]; taken && owner != stableID {
		return "", false
	}
	bucket[name] = stableID
	r.recordDecision(scope.Key(), stableID, Decision{
		StableID: stableID, ScopeKey: scope.Key(), Requested: name, Final: name,
		From: name, Reason: reason, Source: source, Strategy: StrategyDirect, Static: static,
	})
	return name, true
}

// NamesReservedIn returns every final name currently reserved in scope,
// used by Name Reservation step 3 to build the class-surface "shadow" set
// a view reservation must avoid.
func (r *Renamer) NamesReservedIn(scope Scope) map[string]string {
	bucket := r.reservations[scope.Key()]
	out := make(map[string]string, len(bucket))
	for name, id := range bucket {
		out[name] = id
	}
	return out
}

// AllDecisions returns every decision recorded across every scope, used by
// the Name Reservation audit and by Emit's binding sidecar.
func (r *Renamer) AllDecisions() []Decision {
	var out []Decision
	for _, m := range r.decisions {
		for _, d := range m {
			out = append(out, d)
		}
	}
	return out
}
