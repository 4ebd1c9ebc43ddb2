// Package shape implements the fixed ordered sequence of pure symbol-graph
// rewrites that reshape reflected CLR types into a structurally-typed
// surface. Each pass consumes and returns a symbol graph, except
// HiddenMemberPlanner, FinalIndexerSweep and StaticSideAnalyser, which
// only record into the Renamer or the diagnostic bag; indexes are
// rebuilt whenever a pass mutates types structurally rather than patched
// incrementally.
package shape

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/index"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// Run drives every Shape pass in the fixed required order, threading the
// Renamer and diagnostic bag through the passes that need them. Ordering
// dependencies that must not be reordered:
//
//   - Conformance (4.2.2) needs the still-unflattened interface hierarchy,
//     but must run after the first index build.
//   - The inliner (4.2.3) runs before explicit-implementation synthesis
//     (4.2.5), which depends on flattened interfaces.
//   - View planning (4.2.11) runs after every source of view-only members
//     (4.2.2, 4.2.5) and before surface dedup (4.2.12), which demotes
//     rivals into views that must already exist.
//   - Indexer passes (4.2.14) bracket the other planners.
func Run(g *graph.Graph, pol policy.Policy, r *rename.Renamer, bag *diagnostics.Bag) *graph.Graph {
	memberStyle := rename.Style(pol.Naming.MemberStyle)

	idx := index.Build(g)
	g = StructuralConformance(g, idx, bag) // 4.2.2

	g = InterfaceInliner(g) // 4.2.3
	idx = index.Build(g)

	g = InternalInterfaceFilter(g) // 4.2.4

	g = ExplicitImplementationSynthesiser(g, idx) // 4.2.5, consults the Interface Resolver (4.2.6) internally
	idx = index.Build(g)

	g = DiamondResolver(g, pol, bag) // 4.2.7

	g = BaseOverloadAdder(g) // 4.2.8

	g = OverloadReturnConflictDetector(g, bag) // 4.2.9

	g = MemberDeduplicator(g) // 4.2.10

	g = ViewPlanner(g, bag) // 4.2.11

	g = ClassSurfaceDeduplicator(g, memberStyle) // 4.2.12

	HiddenMemberPlanner(g, r, pol, memberStyle) // 4.2.13, Renamer side effect only

	g = IndexerPlanner(g, pol) // 4.2.14
	FinalIndexerSweep(g, pol, bag)

	StaticSideAnalyser(g, r, pol, memberStyle, bag) // 4.2.15

	g = ConstraintCloser(g, pol, bag) // 4.2.16

	return g
}
