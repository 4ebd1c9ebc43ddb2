package graph

import "github.com/tsbindgen/tsbindgen/internal/assemblykey"

// Namespace is a flat dotted name (no nested-namespace relation) plus its
// ordered sequence of type symbols and the set of assemblies that
// contributed to it. The empty string names the global namespace, emitted
// under the fixed `_root` directory.
type Namespace struct {
	Name       string
	Types      []*Type
	Assemblies []assemblykey.Key
}

// IsGlobal reports whether ns is the global (unnamed) namespace.
func (ns *Namespace) IsGlobal() bool { return ns.Name == "" }

// Clone returns a shallow copy of ns.
func (ns *Namespace) Clone() *Namespace {
	c := *ns
	return &c
}

// WithTypes returns a clone of ns with Types replaced.
func (ns *Namespace) WithTypes(types []*Type) *Namespace {
	c := ns.Clone()
	c.Types = types
	return c
}

// TypeByStableID returns the type with the given stable id in ns, if any.
func (ns *Namespace) TypeByStableID(id string) (*Type, bool) {
	for _, t := range ns.Types {
		if t.StableID == id {
			return t, true
		}
	}
	return nil, false
}
