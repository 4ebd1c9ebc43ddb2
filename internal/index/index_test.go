package index

import (
	"testing"

	"github.com/tsbindgen/tsbindgen/internal/graph"
)

func method(name string) *graph.Member {
	return &graph.Member{
		StableID: "Asm:I::" + name,
		CLRName:  name,
		Kind:     graph.MemberMethod,
	}
}

func iface(id string, members []*graph.Member, extends ...*graph.TypeRef) *graph.Type {
	bundle := &graph.MemberBundle{Methods: members}
	return &graph.Type{StableID: id, CLRFullName: id, Kind: graph.KindInterface, Members: bundle, Interfaces: extends}
}

func TestDeclaredOnlySubtractsAncestors(t *testing.T) {
	base := iface("Asm:IBase", []*graph.Member{method("Get")})
	derivedRef := &graph.TypeRef{Kind: graph.RefNamed, SimpleName: "IBase", InterfaceStableID: "Asm:IBase"}
	set := method("Set")
	set.Params = []graph.Param{{Name: "value", Type: &graph.TypeRef{Kind: graph.RefNamed, Namespace: "System", SimpleName: "Int32"}}}
	derived := iface("Asm:IDerived", []*graph.Member{set}, derivedRef)

	g := graph.New([]*graph.Namespace{{Name: "N", Types: []*graph.Type{base, derived}}})
	idx := Build(g)

	all := idx.AllSignatures("Asm:IDerived")
	if len(all) != 2 {
		t.Fatalf("expected 2 signatures (inherited+owned), got %d: %v", len(all), all)
	}
	declared := idx.DeclaredOnly("Asm:IDerived")
	if len(declared) != 1 {
		t.Fatalf("expected 1 declared-only signature, got %d", len(declared))
	}
}

func TestDeclaringInterfacePicksMostAncestral(t *testing.T) {
	base := iface("Asm:IBase", []*graph.Member{method("Get")})
	baseRef := &graph.TypeRef{Kind: graph.RefNamed, SimpleName: "IBase", InterfaceStableID: "Asm:IBase"}
	mid := iface("Asm:IMid", nil, baseRef)
	midRef := &graph.TypeRef{Kind: graph.RefNamed, SimpleName: "IMid", InterfaceStableID: "Asm:IMid"}
	derived := iface("Asm:IDerived", nil, midRef)

	g := graph.New([]*graph.Namespace{{Name: "N", Types: []*graph.Type{base, mid, derived}}})
	idx := Build(g)

	sig := method("Get").CanonicalSignature()
	owner, ok := idx.DeclaringInterface("Asm:IDerived", sig)
	if !ok || owner != "Asm:IBase" {
		t.Fatalf("expected Asm:IBase as declaring interface, got %q, %v", owner, ok)
	}
}
