package importplan

import (
	"sort"

	"github.com/tsbindgen/tsbindgen/internal/graph"
)

// OrderedNamespaces returns every namespace in emission order: alphabetic,
// global namespace (name "") first.
func OrderedNamespaces(g *graph.Graph) []*graph.Namespace {
	return g.Namespaces()
}

// OrderedTypes returns ns's types in forward-reference-safe emission
// order: kind rank (enums, delegates, interfaces, structs, classes,
// static namespaces), then final target name, then arity.
func OrderedTypes(ns *graph.Namespace) []*graph.Type {
	out := append([]*graph.Type{}, ns.Types...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := graph.EmitOrderRank(a.Kind), graph.EmitOrderRank(b.Kind); ra != rb {
			return ra < rb
		}
		if na, nb := emitNameOf(a), emitNameOf(b); na != nb {
			return na < nb
		}
		return len(a.GenericParams) < len(b.GenericParams)
	})
	return out
}

// OrderedMembers returns t's members in emission order: category
// (constructors, fields, properties, events, methods), instance before
// static, final target name, arity, canonical signature.
func OrderedMembers(t *graph.Type) []*graph.Member {
	if t.Members == nil {
		return nil
	}
	out := append([]*graph.Member{}, t.Members.All()...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := categoryRank(a.Kind), categoryRank(b.Kind); ra != rb {
			return ra < rb
		}
		if a.IsStatic != b.IsStatic {
			return !a.IsStatic
		}
		if na, nb := memberEmitName(a), memberEmitName(b); na != nb {
			return na < nb
		}
		if la, lb := len(a.GenericParams), len(b.GenericParams); la != lb {
			return la < lb
		}
		return a.CanonicalSignature() < b.CanonicalSignature()
	})
	return out
}

func categoryRank(k graph.MemberKind) int {
	switch k {
	case graph.MemberConstructor:
		return 0
	case graph.MemberField:
		return 1
	case graph.MemberProperty:
		return 2
	case graph.MemberEvent:
		return 3
	case graph.MemberMethod:
		return 4
	default:
		return 5
	}
}

func memberEmitName(m *graph.Member) string {
	if m.EmitName != "" {
		return m.EmitName
	}
	return m.CLRName
}
