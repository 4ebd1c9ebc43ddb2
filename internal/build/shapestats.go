package build

import (
	"encoding/json"

	"github.com/tsbindgen/tsbindgen/internal/graph"
)

// NamespaceShapeStats summarizes what Shape did to one namespace's types,
// for regression-tracking a real runtime's surface across SDK versions.
type NamespaceShapeStats struct {
	Namespace          string `json:"namespace"`
	SynthesizedMembers int    `json:"synthesizedMembers"`
	DemotedMembers     int    `json:"demotedMembers"`
	Views              int    `json:"views"`
}

// BuildShapeStats walks the post-Shape graph and counts, per namespace,
// members Shape synthesized (ProvenanceSynthesized — never present on the
// reflected surface), members Shape demoted out of the class surface into
// a view (ScopeViewOnly), and how many views exist. It reads the final
// graph's own classification fields rather than instrumenting each pass,
// since every pass already records its decision on the member it touches.
func BuildShapeStats(g *graph.Graph) []NamespaceShapeStats {
	var stats []NamespaceShapeStats
	for _, ns := range g.Namespaces() {
		s := NamespaceShapeStats{Namespace: ns.Name}
		for _, t := range ns.Types {
			countShapeStats(t, &s)
		}
		stats = append(stats, s)
	}
	return stats
}

func countShapeStats(t *graph.Type, s *NamespaceShapeStats) {
	s.Views += len(t.Views)
	for _, m := range t.Members.All() {
		if m.Provenance == graph.ProvenanceSynthesized {
			s.SynthesizedMembers++
		}
		if m.EmitScope == graph.ScopeViewOnly {
			s.DemotedMembers++
		}
	}
	for _, n := range t.Nested {
		countShapeStats(n, s)
	}
}

// MarshalShapeStats renders stats as deterministic indented JSON — the
// `shape-stats.json` sidecar.
func MarshalShapeStats(stats []NamespaceShapeStats) ([]byte, error) {
	return json.MarshalIndent(stats, "", "  ")
}
