package emit

import (
	"strings"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
)

// RenderDiagnosticsReport renders the deterministic human-readable
// diagnostic file: one line per finding, grouped by code in descending
// frequency order.
func RenderDiagnosticsReport(bag *diagnostics.Bag) string {
	byCode := map[string][]diagnostics.Diagnostic{}
	for _, d := range bag.Snapshot() {
		byCode[d.Code] = append(byCode[d.Code], d)
	}
	var b strings.Builder
	for _, code := range bag.SortedByFrequency() {
		for _, d := range byCode[code] {
			b.WriteString(string(d.Severity))
			b.WriteString(" ")
			b.WriteString(d.Code)
			b.WriteString(": ")
			b.WriteString(d.Message)
			if d.TypeID != "" {
				b.WriteString(" [type=" + d.TypeID + "]")
			}
			if d.MemberID != "" {
				b.WriteString(" [member=" + d.MemberID + "]")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderSummaryJSON renders the machine-readable counts-by-code summary.
func RenderSummaryJSON(bag *diagnostics.Bag) ([]byte, error) {
	return bag.MarshalSummaryJSON()
}
