package shape

import "github.com/tsbindgen/tsbindgen/internal/index"

// InterfaceResolver answers "given a closed interface reference and a
// canonical member signature, which concrete interface instance along the
// inheritance chain first declared the signature?".
// Backed by the declared-only index; results are memoised per (interface
// stable id, signature) pair since the same question is asked repeatedly
// by the explicit-implementation synthesiser and the diamond resolver.
type InterfaceResolver struct {
	idx   index.Indexes
	cache map[string]string
}

// NewInterfaceResolver returns a resolver backed by idx.
func NewInterfaceResolver(idx index.Indexes) *InterfaceResolver {
	return &InterfaceResolver{idx: idx, cache: make(map[string]string)}
}

// Resolve returns the stable id of the most ancestral interface in
// ifaceID's chain that declares sig, and whether one was found.
func (r *InterfaceResolver) Resolve(ifaceID, sig string) (string, bool) {
	key := ifaceID + "\x00" + sig
	if cached, ok := r.cache[key]; ok {
		return cached, cached != ""
	}
	owner, found := r.idx.DeclaringInterface(ifaceID, sig)
	if found {
		r.cache[key] = owner
	} else {
		r.cache[key] = ""
	}
	return owner, found
}
