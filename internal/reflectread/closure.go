package reflectread

import (
	"fmt"
	"sort"

	"github.com/tsbindgen/tsbindgen/internal/assemblykey"
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
)

// FatalError marks a Load-phase condition the build cannot recover from:
// the core library missing from the transitive closure.
type FatalError struct {
	Reason string
}

func (e *FatalError) Error() string { return "reflectread: " + e.Reason }

// AssemblyLocator resolves an assembly name to the candidate file paths
// Probe should try, in preference order — the seed set plus whatever
// reference search paths the caller configured. Returning an empty slice
// means the name is unresolved.
type AssemblyLocator func(name string) []string

// UnresolvedSet is the deferred set of assembly references the closure
// BFS could not locate, carried forward for later cross-assembly import
// planning.
type UnresolvedSet map[string]assemblykey.Key

// ClosureResult is the outcome of walking the transitive reference closure
// from a set of seed assembly paths.
type ClosureResult struct {
	// Paths is every resolved assembly path to reflect over, in
	// deterministic (name, then path) order.
	Paths []string
	// Identities maps a resolved path to the identity Probe reported for
	// it, the highest version seen for that simple name.
	Identities map[string]assemblykey.Key
	Unresolved UnresolvedSet
}

// coreLibraryName is the one assembly whose absence from the closure is
// fatal rather than diagnosed.
const coreLibraryName = "mscorlib"

// BuildClosure performs a transitive-closure BFS: probe every seed, follow
// its AssemblyRef edges, resolve each referenced name via locate, and keep
// the highest version seen whenever two paths report the same simple
// name. probe is injected so tests never need a real PE file on disk.
func BuildClosure(seeds []string, locate AssemblyLocator, probe func(path string) (ProbeResult, error), pol validationPolicy, bag *diagnostics.Bag) (ClosureResult, error) {
	result := ClosureResult{
		Identities: make(map[string]assemblykey.Key),
		Unresolved: make(UnresolvedSet),
	}

	visited := make(map[string]bool)
	bestByName := make(map[string]assemblykey.Key)
	queue := append([]string{}, seeds...)

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		if visited[path] {
			continue
		}
		visited[path] = true

		probed, err := probe(path)
		if err != nil {
			bag.Warning(diagnostics.LoadCorruptMetadata,
				fmt.Sprintf("could not read metadata from %s: %v", path, err), "", "", "")
			continue
		}

		recordIdentity(result, bestByName, path, probed.Identity, pol, bag)

		for _, ref := range probed.References {
			candidates := locate(ref.Name)
			if len(candidates) == 0 {
				result.Unresolved[ref.Name] = ref
				bag.Warning(diagnostics.LoadUnresolvedReference,
					fmt.Sprintf("could not locate assembly %q referenced from %s", ref.Name, path), "", "", "")
				continue
			}
			for _, c := range candidates {
				if !visited[c] {
					queue = append(queue, c)
				}
			}
		}
	}

	if _, ok := bestByName[coreLibraryName]; !ok {
		return result, &FatalError{Reason: fmt.Sprintf("core library %q not found in transitive closure", coreLibraryName)}
	}

	for path, id := range result.Identities {
		if id.Version.Less(bestByName[id.Name].Version) {
			delete(result.Identities, path)
		}
	}

	result.Paths = make([]string, 0, len(result.Identities))
	for path := range result.Identities {
		result.Paths = append(result.Paths, path)
	}
	sort.Slice(result.Paths, func(i, j int) bool {
		ni, nj := result.Identities[result.Paths[i]].Name, result.Identities[result.Paths[j]].Name
		if ni != nj {
			return ni < nj
		}
		return result.Paths[i] < result.Paths[j]
	})

	return result, nil
}

// validationPolicy is the subset of policy.Policy's validation knobs
// closure.go and identity.go need, kept narrow so this package does not
// import internal/policy just for one bool.
type validationPolicy struct {
	StrictVersionChecks bool
}

func recordIdentity(result ClosureResult, bestByName map[string]assemblykey.Key, path string, identity assemblykey.Key, pol validationPolicy, bag *diagnostics.Bag) {
	if prior, ok := bestByName[identity.Name]; ok {
		checkIdentity(prior, identity, pol, bag)
		if prior.Version.Less(identity.Version) {
			bestByName[identity.Name] = identity
		}
	} else {
		bestByName[identity.Name] = identity
	}
	result.Identities[path] = identity
}
