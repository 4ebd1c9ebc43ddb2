package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func sampleType(id, clrName string) *Type {
	return &Type{
		StableID:    id,
		CLRFullName: clrName,
		Assembly:    "TestAsm",
		Kind:        KindClass,
		Members:     &MemberBundle{},
	}
}

func TestGraphNamespaceOrdering(t *testing.T) {
	g := New([]*Namespace{
		{Name: "Z.Namespace"},
		{Name: ""},
		{Name: "A.Namespace"},
	})
	got := g.Namespaces()
	if len(got) != 3 || got[0].Name != "" || got[1].Name != "A.Namespace" || got[2].Name != "Z.Namespace" {
		var names []string
		for _, ns := range got {
			names = append(names, ns.Name)
		}
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestWithTypeReplacesInPlace(t *testing.T) {
	a := sampleType("TestAsm:A", "A")
	g := New([]*Namespace{{Name: "N", Types: []*Type{a}}})

	renamed := a.WithEmitName("ARenamed")
	g2 := g.WithType("N", renamed)

	got, ok := g2.TypeByStableID("TestAsm:A")
	if !ok || got.EmitName == nil || *got.EmitName != "ARenamed" {
		t.Fatalf("expected renamed type, got %+v", got)
	}
	// original graph must be untouched (immutability discipline)
	orig, _ := g.TypeByStableID("TestAsm:A")
	if orig.EmitName != nil {
		t.Fatalf("original graph was mutated")
	}
}

func TestMapTypesAppliesEverywhere(t *testing.T) {
	a := sampleType("TestAsm:A", "A")
	b := sampleType("TestAsm:B", "B")
	g := New([]*Namespace{{Name: "N", Types: []*Type{a, b}}})

	g2 := g.MapTypes(func(t *Type) *Type { return t.WithEmitName(t.CLRFullName + "_x") })
	for _, id := range []string{"TestAsm:A", "TestAsm:B"} {
		typ, ok := g2.TypeByStableID(id)
		if !ok || typ.EmitName == nil {
			t.Fatalf("expected emit name set for %s", id)
		}
	}
}

func TestTypeReferenceStampsInterfaceID(t *testing.T) {
	iface := sampleType("TestAsm:Ns.IFoo`1", "Ns.IFoo`1")
	iface.Kind = KindInterface
	ref := iface.Reference()

	want := &TypeRef{
		Kind:              RefNamed,
		Assembly:          "TestAsm",
		Namespace:         "Ns",
		SimpleName:        "IFoo",
		Arity:             1,
		InterfaceStableID: iface.StableID,
	}
	if diff := cmp.Diff(want, ref, cmpopts.IgnoreFields(TypeRef{}, "TypeArguments")); diff != "" {
		t.Fatalf("reference decomposition mismatch (-want +got):\n%s", diff)
	}
}

func TestCanonicalSignatureMethod(t *testing.T) {
	strRef := &TypeRef{Kind: RefNamed, Namespace: "System", SimpleName: "String"}
	intRef := &TypeRef{Kind: RefNamed, Namespace: "System", SimpleName: "Int32"}
	m := &Member{
		Kind:       MemberMethod,
		Params:     []Param{{Name: "start", Type: intRef}, {Name: "len", Type: intRef, Modifier: ParamRef}},
		ReturnType: strRef,
	}
	got := CanonicalSignature(m)
	want := "(System.Int32,System.Int32:ref)->System.String"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestErasedSignatureStripsByRef(t *testing.T) {
	intRef := &TypeRef{Kind: RefNamed, Namespace: "System", SimpleName: "Int32"}
	byRef := &TypeRef{Kind: RefByReference, Referent: intRef}
	plain := &Member{Kind: MemberMethod, Params: []Param{{Type: intRef}}, ReturnType: intRef}
	withRef := &Member{Kind: MemberMethod, Params: []Param{{Type: byRef}}, ReturnType: intRef}
	if ErasedSignature(plain) != ErasedSignature(withRef) {
		t.Fatalf("expected erased signatures to match: %q vs %q", ErasedSignature(plain), ErasedSignature(withRef))
	}
}

func TestPlaceholderNeverEqualsNamed(t *testing.T) {
	ph := &TypeRef{Kind: RefPlaceholder, PlaceholderForStableID: "X:Y"}
	if !ph.IsPlaceholder() {
		t.Fatalf("expected placeholder")
	}
	named := &TypeRef{Kind: RefNamed, SimpleName: "Y"}
	if named.IsPlaceholder() {
		t.Fatalf("named ref should not report as placeholder")
	}
}
