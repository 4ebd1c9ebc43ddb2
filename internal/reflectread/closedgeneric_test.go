package reflectread

import (
	"testing"

	"github.com/tsbindgen/tsbindgen/internal/graph"
)

func TestComputeClosedInterfacesBuildsSubstitutionMap(t *testing.T) {
	widgetRef := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", Namespace: "Main", SimpleName: "Widget"}
	comparable := &graph.TypeRef{
		Kind: graph.RefNamed, Assembly: "app", Namespace: "System", SimpleName: "IComparable", Arity: 1,
		TypeArguments:      []*graph.TypeRef{widgetRef},
		InterfaceStableID:  "app:System.IComparable`1",
	}

	lookup := func(id string) []*graph.GenericParam {
		if id == "app:System.IComparable`1" {
			return []*graph.GenericParam{{Name: "T", Position: 0}}
		}
		return nil
	}

	closed := ComputeClosedInterfaces([]*graph.TypeRef{comparable}, lookup)
	if len(closed) != 1 {
		t.Fatalf("expected one closed interface, got %d", len(closed))
	}
	sub := closed[0].Substitution
	if sub["T"] != widgetRef {
		t.Fatalf("expected T to substitute to the Widget reference, got %+v", sub["T"])
	}
}

func TestComputeClosedInterfacesSkipsOpenGeneric(t *testing.T) {
	enumerable := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", Namespace: "System", SimpleName: "IEnumerable", Arity: 1}

	closed := ComputeClosedInterfaces([]*graph.TypeRef{enumerable}, func(string) []*graph.GenericParam { return nil })
	if len(closed) != 0 {
		t.Fatalf("expected no substitution for a non-generic-argument reference, got %+v", closed)
	}
}
