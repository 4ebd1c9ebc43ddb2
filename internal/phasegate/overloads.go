package phasegate

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// overloadRules confirm the Overload unifier actually left each erasure
// group with a single surviving surface member.
var overloadRules = []Rule{
	{Name: "overloads/unique-erasure-after-unification", Check: checkUniqueErasureAfterUnification},
}

func checkUniqueErasureAfterUnification(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		seen := map[string]string{}
		for _, m := range t.AllMembers() {
			if m.Kind != graph.MemberMethod {
				continue
			}
			if m.EmitScope != graph.ScopeClassSurface && m.EmitScope != graph.ScopeStaticSurface {
				continue
			}
			key := staticKey(m.IsStatic) + ":" + m.EmitName + "/" + itoaLocal(len(m.GenericParams)) + "/" + itoaLocal(len(m.Params))
			if other, ok := seen[key]; ok && other != m.StableID {
				bag.Error(diagnostics.OVNonUniqueErasure,
					"methods \""+other+"\" and \""+m.StableID+"\" of \""+t.CLRFullName+"\" still share erasure key \""+key+"\" after unification",
					t.StableID, m.StableID, "")
				continue
			}
			seen[key] = m.StableID
		}
	}
}

func itoaLocal(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
