package diagnostics

import (
	"encoding/json"
	"sort"
)

// Severity classifies how a Diagnostic affects the build.
type Severity string

const (
	// SeverityError blocks Emit; the build reports failure.
	SeverityError Severity = "error"
	// SeverityWarning is logged but does not block the build.
	SeverityWarning Severity = "warning"
	// SeverityInfo is recorded for completeness only.
	SeverityInfo Severity = "info"
)

// Diagnostic is one finding: a stable code, a severity, a message, and an
// optional location expressed in terms of the symbol graph (type stable
// id, member stable id, scope key) rather than source position, since this
// pipeline has no source text once past Load.
type Diagnostic struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	TypeID   string   `json:"typeId,omitempty"`
	MemberID string   `json:"memberId,omitempty"`
	ScopeKey string   `json:"scopeKey,omitempty"`
}

// Bag is the append-only diagnostic accumulator threaded through every
// phase as an explicit parameter. It is safe against duplicate
// appends — an identical Diagnostic appended twice is stored once.
type Bag struct {
	items []Diagnostic
	seen  map[string]struct{}
}

// NewBag returns an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{seen: make(map[string]struct{})}
}

// Add appends d to the bag unless an identical Diagnostic was already
// recorded.
func (b *Bag) Add(d Diagnostic) {
	key := dedupeKey(d)
	if _, ok := b.seen[key]; ok {
		return
	}
	b.seen[key] = struct{}{}
	b.items = append(b.items, d)
}

// Error is a convenience for Add with SeverityError.
func (b *Bag) Error(code, message, typeID, memberID, scopeKey string) {
	b.Add(Diagnostic{Code: code, Severity: SeverityError, Message: message, TypeID: typeID, MemberID: memberID, ScopeKey: scopeKey})
}

// Warning is a convenience for Add with SeverityWarning.
func (b *Bag) Warning(code, message, typeID, memberID, scopeKey string) {
	b.Add(Diagnostic{Code: code, Severity: SeverityWarning, Message: message, TypeID: typeID, MemberID: memberID, ScopeKey: scopeKey})
}

// Info is a convenience for Add with SeverityInfo.
func (b *Bag) Info(code, message, typeID, memberID, scopeKey string) {
	b.Add(Diagnostic{Code: code, Severity: SeverityInfo, Message: message, TypeID: typeID, MemberID: memberID, ScopeKey: scopeKey})
}

// Snapshot returns the diagnostics recorded so far, in append order.
// Consumers must always iterate the snapshot taken at Phase Gate exit,
// never the live bag, so that later appends (there should be none after
// Phase Gate) can't be observed inconsistently.
func (b *Bag) Snapshot() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	return out
}

// HasErrors reports whether any SeverityError diagnostic has been recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CountsByCode returns, for the current snapshot, the number of
// diagnostics recorded per code — the machine-readable summary written to
// summary.json.
func (b *Bag) CountsByCode() map[string]int {
	counts := make(map[string]int)
	for _, d := range b.items {
		counts[d.Code]++
	}
	return counts
}

// Summary is the machine-readable form of summary.json.
type Summary struct {
	ErrorCount   int            `json:"errorCount"`
	WarningCount int            `json:"warningCount"`
	InfoCount    int            `json:"infoCount"`
	Counts       map[string]int `json:"countsByCode"`
}

// BuildSummary computes the deterministic machine-readable summary for the
// current snapshot.
func (b *Bag) BuildSummary() Summary {
	s := Summary{Counts: b.CountsByCode()}
	for _, d := range b.items {
		switch d.Severity {
		case SeverityError:
			s.ErrorCount++
		case SeverityWarning:
			s.WarningCount++
		case SeverityInfo:
			s.InfoCount++
		}
	}
	return s
}

// MarshalSummaryJSON renders BuildSummary() as deterministic indented JSON
// (sorted map keys, which encoding/json already guarantees for map[string]X).
func (b *Bag) MarshalSummaryJSON() ([]byte, error) {
	return json.MarshalIndent(b.BuildSummary(), "", "  ")
}

// SortedByFrequency returns diagnostic codes from the current snapshot
// ordered by descending frequency, then by code, for the human-readable
// failure summary.
func (b *Bag) SortedByFrequency() []string {
	counts := b.CountsByCode()
	codes := make([]string, 0, len(counts))
	for c := range counts {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool {
		if counts[codes[i]] != counts[codes[j]] {
			return counts[codes[i]] > counts[codes[j]]
		}
		return codes[i] < codes[j]
	})
	return codes
}

func dedupeKey(d Diagnostic) string {
	return d.Code + "\x00" + string(d.Severity) + "\x00" + d.Message + "\x00" + d.TypeID + "\x00" + d.MemberID + "\x00" + d.ScopeKey
}
