package reflectread

import (
	"fmt"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
)

// Read is Load's single entry point: walk the transitive closure from
// seeds, reflect over every assembly the closure keeps, and extract an
// initial symbol graph. The core-library-missing condition
// is the one fatal error this phase can return; everything else is
// recorded on bag and the build continues with whatever it has.
func Read(seeds []string, locate AssemblyLocator, probe func(path string) (ProbeResult, error), refl Reflector, pol policy.Policy, bag *diagnostics.Bag) (*graph.Graph, UnresolvedSet, error) {
	closure, err := BuildClosure(seeds, locate, probe, validationPolicy{StrictVersionChecks: pol.Validation.StrictVersionChecks}, bag)
	if err != nil {
		return nil, nil, err
	}

	assemblies := make([]ReflectedAssembly, 0, len(closure.Paths))
	for _, path := range closure.Paths {
		asm, err := refl.Reflect(path)
		if err != nil {
			bag.Warning(diagnostics.LoadCorruptMetadata, fmt.Sprintf("reflection failed for %s: %v", path, err), "", "", "")
			continue
		}
		assemblies = append(assemblies, asm)
	}

	g := Extract(assemblies, bag)
	return g, closure.Unresolved, nil
}
