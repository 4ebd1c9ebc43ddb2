// Package graph defines the symbol graph: the single immutable-by-
// convention data structure every build phase transforms. A Graph owns its
// namespaces exclusively; everything else (interfaces a type implements, a
// member's return type, a generic constraint) refers to other types by
// stable id, not by pointer into another Graph.
package graph

import "sort"

// Graph is a set of namespace symbols plus two derived indexes, rebuilt
// after any structural pass. Graph values are never mutated in place by a
// pass; every pass takes a *Graph and returns a new one built from With*
// helpers or New.
type Graph struct {
	namespaces       map[string]*Namespace
	namespaceOrder   []string // insertion order, for deterministic iteration fallback
	typeByStableID   map[string]*Type
}

// New builds a Graph from a set of namespaces. Namespaces are indexed by
// name; a later namespace with the same name overwrites an earlier one
// (callers are expected to have already merged same-named namespaces).
func New(namespaces []*Namespace) *Graph {
	g := &Graph{
		namespaces:     make(map[string]*Namespace, len(namespaces)),
		typeByStableID: make(map[string]*Type),
	}
	for _, ns := range namespaces {
		if _, exists := g.namespaces[ns.Name]; !exists {
			g.namespaceOrder = append(g.namespaceOrder, ns.Name)
		}
		g.namespaces[ns.Name] = ns
		for _, t := range ns.Types {
			g.typeByStableID[t.StableID] = t
			indexNested(g.typeByStableID, t)
		}
	}
	return g
}

func indexNested(idx map[string]*Type, t *Type) {
	for _, n := range t.Nested {
		idx[n.StableID] = n
		indexNested(idx, n)
	}
}

// Namespaces returns every namespace, sorted alphabetically by name (the
// global namespace, name "", sorts first) — the deterministic iteration
// order required throughout this pipeline.
func (g *Graph) Namespaces() []*Namespace {
	names := make([]string, 0, len(g.namespaces))
	for n := range g.namespaces {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*Namespace, len(names))
	for i, n := range names {
		out[i] = g.namespaces[n]
	}
	return out
}

// NamespaceByName looks up a namespace by its flat dotted name.
func (g *Graph) NamespaceByName(name string) (*Namespace, bool) {
	ns, ok := g.namespaces[name]
	return ns, ok
}

// TypeByStableID looks up any type (top-level or nested) by its stable id.
func (g *Graph) TypeByStableID(id string) (*Type, bool) {
	t, ok := g.typeByStableID[id]
	return t, ok
}

// AllTypes returns every top-level type across every namespace, in
// deterministic (namespace name, then declaration) order.
func (g *Graph) AllTypes() []*Type {
	var out []*Type
	for _, ns := range g.Namespaces() {
		out = append(out, ns.Types...)
	}
	return out
}

// WithNamespace returns a new Graph with ns inserted or replacing the
// namespace of the same name — the standard shape every structural Shape
// pass uses to "rewrite one namespace's types and produce a new graph".
func (g *Graph) WithNamespace(ns *Namespace) *Graph {
	namespaces := make([]*Namespace, 0, len(g.namespaces)+1)
	replaced := false
	for _, name := range g.namespaceOrder {
		if name == ns.Name {
			namespaces = append(namespaces, ns)
			replaced = true
		} else {
			namespaces = append(namespaces, g.namespaces[name])
		}
	}
	if !replaced {
		namespaces = append(namespaces, ns)
	}
	return New(namespaces)
}

// WithType returns a new Graph with t replacing the type of the same
// stable id within its namespace. namespaceName identifies which
// namespace owns t (a type never moves namespace across a pass).
func (g *Graph) WithType(namespaceName string, t *Type) *Graph {
	ns, ok := g.NamespaceByName(namespaceName)
	if !ok {
		return g
	}
	types := make([]*Type, len(ns.Types))
	found := false
	for i, existing := range ns.Types {
		if existing.StableID == t.StableID {
			types[i] = t
			found = true
		} else {
			types[i] = existing
		}
	}
	if !found {
		types = append(types, t)
	}
	return g.WithNamespace(ns.WithTypes(types))
}

// MapTypes returns a new Graph with every top-level type in every
// namespace replaced by fn's result — the standard "apply this rewrite
// everywhere" driver used by most Shape passes.
func (g *Graph) MapTypes(fn func(*Type) *Type) *Graph {
	var namespaces []*Namespace
	for _, ns := range g.Namespaces() {
		types := make([]*Type, len(ns.Types))
		for i, t := range ns.Types {
			types[i] = fn(t)
		}
		namespaces = append(namespaces, ns.WithTypes(types))
	}
	return New(namespaces)
}

// NamespaceOwning returns the name of the namespace that owns the type
// with the given stable id, and whether it was found.
func (g *Graph) NamespaceOwning(stableID string) (string, bool) {
	for _, ns := range g.Namespaces() {
		if _, ok := ns.TypeByStableID(stableID); ok {
			return ns.Name, true
		}
	}
	return "", false
}
