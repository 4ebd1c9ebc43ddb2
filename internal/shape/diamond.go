package shape

import (
	"fmt"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
)

// DiamondResolver detects the case where two parent interfaces supply the
// same simple method name with different signatures (a diamond). Runs
// after the Interface Inliner has flattened each type's own interfaces, so
// "two parent interfaces" here means two distinct entries in t.Interfaces.
//
// Policy-driven:
//   - overload-all: keep every signature (the inliner's by-signature dedupe
//     already does this; this pass takes no action).
//   - prefer-derived: emit an info-level finding; does not restructure the
//     graph (left as "only logs" pending a concrete test asserting a
//     specific surface — see DESIGN.md for the recorded decision).
//   - error: record an ERROR diagnostic, which blocks Emit at Phase Gate.
//
// This pass records findings; it never changes emit scope itself.
func DiamondResolver(g *graph.Graph, pol policy.Policy, bag *diagnostics.Bag) *graph.Graph {
	for _, t := range g.AllTypes() {
		if t.Kind != graph.KindClass && t.Kind != graph.KindStruct && t.Kind != graph.KindInterface {
			continue
		}
		diamonds := findDiamonds(g, t)
		for name, sigs := range diamonds {
			if len(sigs) < 2 {
				continue
			}
			switch pol.Interfaces.DiamondResolution {
			case graph.DiamondError:
				bag.Error(diagnostics.PolicyDiamondError,
					fmt.Sprintf("diamond conflict on %q across parent interfaces with %d distinct signatures", name, len(sigs)),
					t.StableID, "", "")
			case graph.DiamondPreferDerived:
				bag.Info(diagnostics.PolicyDiamondError,
					fmt.Sprintf("diamond conflict on %q; prefer-derived strategy does not restructure the graph", name),
					t.StableID, "", "")
			case graph.DiamondOverloadAll:
				// no-op: every signature is already preserved.
			}
		}
	}
	return g
}

// findDiamonds groups t's direct parent interfaces' method signatures by
// simple name, returning only names contributed by more than one distinct
// signature.
func findDiamonds(g *graph.Graph, t *graph.Type) map[string]map[string]bool {
	byName := make(map[string]map[string]bool)
	for _, ifaceRef := range t.Interfaces {
		iface, ok := g.TypeByStableID(ifaceRef.StableID())
		if !ok {
			continue
		}
		for _, m := range iface.Members.Methods {
			sigs, ok := byName[m.CLRName]
			if !ok {
				sigs = make(map[string]bool)
				byName[m.CLRName] = sigs
			}
			sigs[m.CanonicalSignature()] = true
		}
	}
	return byName
}
