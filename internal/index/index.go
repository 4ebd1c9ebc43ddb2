// Package index builds the Normalize-phase lookup tables: namespace and
// type lookup, and the global interface signature indexes Shape consults
// repeatedly.
//
// Indexes are rebuilt whenever a pass mutates types structurally. Build
// is therefore cheap to call again after every structural Shape pass
// rather than something passes try to patch incrementally.
package index

import "github.com/tsbindgen/tsbindgen/internal/graph"

// Indexes bundles every lookup table a Shape pass might need.
type Indexes struct {
	g *graph.Graph

	// interfaceAllSignatures maps an interface stable id to every method
	// and property canonical signature it exposes, inherited or owned.
	interfaceAllSignatures map[string]map[string]*graph.Member
	// interfaceDeclaredOnly is interfaceAllSignatures with every ancestor's
	// contribution subtracted — "which interface along the chain
	// originally declared this member?".
	interfaceDeclaredOnly map[string]map[string]*graph.Member
}

// Build computes every index over g.
func Build(g *graph.Graph) Indexes {
	idx := Indexes{
		g:                      g,
		interfaceAllSignatures: make(map[string]map[string]*graph.Member),
		interfaceDeclaredOnly:  make(map[string]map[string]*graph.Member),
	}
	for _, t := range allInterfaces(g) {
		idx.interfaceAllSignatures[t.StableID] = collectAll(g, t, make(map[string]bool))
	}
	for _, t := range allInterfaces(g) {
		inherited := make(map[string]bool)
		for _, parentRef := range t.Interfaces {
			for sig := range idx.interfaceAllSignatures[parentInterfaceID(parentRef)] {
				inherited[sig] = true
			}
		}
		declaredOnly := make(map[string]*graph.Member)
		for sig, m := range ownedSignatures(t) {
			if !inherited[sig] {
				declaredOnly[sig] = m
			}
		}
		idx.interfaceDeclaredOnly[t.StableID] = declaredOnly
	}
	return idx
}

// Graph returns the graph this Indexes was built from.
func (idx Indexes) Graph() *graph.Graph { return idx.g }

// AllSignatures returns every canonical signature (inherited and owned)
// exposed by the interface with the given stable id, keyed by canonical
// signature for methods/properties. Returns nil if ifaceID is not a known
// interface.
func (idx Indexes) AllSignatures(ifaceID string) map[string]*graph.Member {
	return idx.interfaceAllSignatures[ifaceID]
}

// DeclaredOnly returns only the signatures the interface itself declares,
// with every ancestor's contribution subtracted.
func (idx Indexes) DeclaredOnly(ifaceID string) map[string]*graph.Member {
	return idx.interfaceDeclaredOnly[ifaceID]
}

// DeclaringInterface walks ifaceID's ancestor chain (via the declared-only
// index) and returns the most ancestral interface stable id that declares
// sig, picking the most ancestral interface when several qualify.
func (idx Indexes) DeclaringInterface(ifaceID, sig string) (string, bool) {
	t, ok := idx.g.TypeByStableID(ifaceID)
	if !ok {
		return "", false
	}
	best := ""
	found := false
	if _, declared := idx.DeclaredOnly(ifaceID)[sig]; declared {
		best, found = ifaceID, true
	}
	for _, parentRef := range t.Interfaces {
		if parentID := parentInterfaceID(parentRef); parentID != "" {
			if ancestor, ok := idx.DeclaringInterface(parentID, sig); ok {
				best, found = ancestor, true
			}
		}
	}
	return best, found
}

func allInterfaces(g *graph.Graph) []*graph.Type {
	var out []*graph.Type
	for _, t := range g.AllTypes() {
		collectInterfaces(t, &out)
	}
	return out
}

func collectInterfaces(t *graph.Type, out *[]*graph.Type) {
	if t.Kind == graph.KindInterface {
		*out = append(*out, t)
	}
	for _, n := range t.Nested {
		collectInterfaces(n, out)
	}
}

// parentInterfaceID is the stable id of an extended interface: the
// pre-stamped InterfaceStableID when present, else the ref's own StableID.
func parentInterfaceID(ref *graph.TypeRef) string {
	if ref.InterfaceStableID != "" {
		return ref.InterfaceStableID
	}
	return ref.StableID()
}

func ownedSignatures(t *graph.Type) map[string]*graph.Member {
	out := make(map[string]*graph.Member)
	for _, m := range t.AllMembers() {
		out[m.CanonicalSignature()] = m
	}
	return out
}

func collectAll(g *graph.Graph, t *graph.Type, visiting map[string]bool) map[string]*graph.Member {
	if visiting[t.StableID] {
		return map[string]*graph.Member{}
	}
	visiting[t.StableID] = true
	out := ownedSignatures(t)
	for _, parentRef := range t.Interfaces {
		parentID := parentInterfaceID(parentRef)
		parent, ok := g.TypeByStableID(parentID)
		if !ok {
			continue
		}
		for sig, m := range collectAll(g, parent, visiting) {
			if _, exists := out[sig]; !exists {
				out[sig] = m
			}
		}
	}
	return out
}
