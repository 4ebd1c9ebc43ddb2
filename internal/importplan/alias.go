package importplan

import (
	"sort"

	"github.com/tsbindgen/tsbindgen/internal/graph"
)

// Aliases maps an importing namespace to the set of target type stable
// ids that must be imported under an alias within that namespace, and the
// alias to use.
type Aliases map[string]map[string]string

// AssignAliases scans every namespace's distinct imports and assigns
// `{TypeName}_{TargetNamespaceShort}` to any import whose final target
// name collides with another import from a different namespace.
func AssignAliases(g *graph.Graph, refs map[string][]CrossNamespaceRef) Aliases {
	out := make(Aliases)
	for ns, list := range refs {
		byName := make(map[string][]string)
		seen := make(map[string]bool)
		for _, ref := range list {
			if seen[ref.TargetTypeID] {
				continue
			}
			seen[ref.TargetTypeID] = true
			if _, ok := g.TypeByStableID(ref.TargetTypeID); !ok {
				continue
			}
			byName[targetEmitName(g, ref.TargetTypeID)] = append(byName[targetEmitName(g, ref.TargetTypeID)], ref.TargetTypeID)
		}
		aliasForNS := make(map[string]string)
		for name, ids := range byName {
			if len(ids) < 2 {
				continue
			}
			sort.Strings(ids)
			for _, id := range ids {
				targetNS, _ := g.NamespaceOwning(id)
				aliasForNS[id] = name + "_" + shortNamespace(targetNS)
			}
		}
		if len(aliasForNS) > 0 {
			out[ns] = aliasForNS
		}
	}
	return out
}

func targetEmitName(g *graph.Graph, id string) string {
	t, ok := g.TypeByStableID(id)
	if !ok {
		return id
	}
	return emitNameOf(t)
}

func emitNameOf(t *graph.Type) string {
	if t.EmitName != nil {
		return *t.EmitName
	}
	return t.CLRFullName
}

// shortNamespace returns the last dotted segment of namespace, or "Root"
// for the global namespace.
func shortNamespace(namespace string) string {
	if namespace == "" {
		return "Root"
	}
	lastDot := -1
	for i := 0; i < len(namespace); i++ {
		if namespace[i] == '.' {
			lastDot = i
		}
	}
	if lastDot < 0 {
		return namespace
	}
	return namespace[lastDot+1:]
}
