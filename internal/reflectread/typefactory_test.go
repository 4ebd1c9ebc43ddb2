package reflectread

import (
	"testing"

	"github.com/tsbindgen/tsbindgen/internal/graph"
)

func TestFactoryConvertMemoizesNamedReference(t *testing.T) {
	f := NewFactory()
	r := &ReflectedTypeRef{Kind: ReflectedRefNamed, Assembly: "app", Namespace: "Main", SimpleName: "Widget"}

	first := f.Convert(r)
	second := f.Convert(r)

	if first != second {
		t.Fatal("expected the same *graph.TypeRef pointer for the same named reference")
	}
	if first.Kind != graph.RefNamed || first.SimpleName != "Widget" {
		t.Fatalf("unexpected conversion: %+v", first)
	}
}

func TestFactoryConvertHandlesSelfReferentialGeneric(t *testing.T) {
	f := NewFactory()

	// Node<T> : IEnumerable<Node<T>> — converting Node's own interface
	// list requires converting a reference back to Node itself.
	self := &ReflectedTypeRef{Kind: ReflectedRefNamed, Assembly: "app", Namespace: "Main", SimpleName: "Node", Arity: 1}
	nodeRef := f.convertNamed(self)

	enumerableOfNode := &ReflectedTypeRef{
		Kind: ReflectedRefNamed, Assembly: "app", Namespace: "System.Collections.Generic",
		SimpleName: "IEnumerable", Arity: 1, IsInterface: true,
		TypeArguments: []ReflectedTypeRef{*self},
	}
	converted := f.Convert(enumerableOfNode)

	if len(converted.TypeArguments) != 1 {
		t.Fatalf("expected one type argument, got %d", len(converted.TypeArguments))
	}
	if converted.TypeArguments[0] != nodeRef {
		t.Fatal("expected the self-reference to resolve to the same cached Node TypeRef")
	}
}

func TestFactoryConvertArrayAndPointer(t *testing.T) {
	f := NewFactory()
	elem := &ReflectedTypeRef{Kind: ReflectedRefNamed, Assembly: "app", Namespace: "Main", SimpleName: "Widget"}
	arr := &ReflectedTypeRef{Kind: ReflectedRefArray, Element: elem, Rank: 1}

	converted := f.Convert(arr)
	if converted.Kind != graph.RefArray || converted.Element.SimpleName != "Widget" {
		t.Fatalf("unexpected array conversion: %+v", converted)
	}
}
