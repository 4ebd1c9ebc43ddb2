package shape

import (
	"strings"

	"github.com/tsbindgen/tsbindgen/internal/graph"
)

// internalInterfaceNames are well-known runtime-internal interfaces that
// never belong in an emitted `implements` clause — they exist for the CLR
// host's own bookkeeping (serialization callbacks, cloning, COM
// interop) and carry no structurally meaningful surface for the target
// language.
var internalInterfaceNames = map[string]bool{
	"System.Runtime.Serialization.ISerializable": true,
	"System.Runtime.Serialization.IDeserializationCallback": true,
	"System.ICloneable": true,
	"System.Runtime.InteropServices._Type": true,
	"System.Runtime.InteropServices.IReflect": true,
	"System.Runtime.InteropServices.IExpando": true,
}

var internalInterfaceNamePrefixes = []string{
	"System.Runtime.CompilerServices.",
	"System.Runtime.InteropServices.ComTypes.",
}

// InternalInterfaceFilter removes well-known runtime-internal interfaces
// (name-pattern and explicit lists) from every type's interface list
// before the index is consulted again, so they never appear in emitted
// `implements` clauses. Must run after conformance
// (4.2.2) synthesises any views those interfaces needed, and before the
// explicit-implementation synthesiser (4.2.5) re-derives its member list
// from each type's (now filtered) interface set.
func InternalInterfaceFilter(g *graph.Graph) *graph.Graph {
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		if len(t.Interfaces) == 0 {
			return t
		}
		var kept []*graph.TypeRef
		changed := false
		for _, ref := range t.Interfaces {
			if isInternalInterface(ref) {
				changed = true
				continue
			}
			kept = append(kept, ref)
		}
		if !changed {
			return t
		}
		return t.WithInterfaces(kept)
	})
}

func isInternalInterface(ref *graph.TypeRef) bool {
	name := graph.TypeName(ref)
	bare := name
	if i := strings.IndexByte(bare, '<'); i >= 0 {
		bare = bare[:i]
	}
	if internalInterfaceNames[bare] {
		return true
	}
	for _, prefix := range internalInterfaceNamePrefixes {
		if strings.HasPrefix(bare, prefix) {
			return true
		}
	}
	return false
}
