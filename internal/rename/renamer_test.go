package rename

import "testing"

func TestReserveIsIdempotent(t *testing.T) {
	r := New()
	scope := ClassScope("Ns.Foo", false)
	req := Request{StableID: "id1", Base: "ToString", Scope: scope, Style: StylePascal}
	a := r.Reserve(req)
	b := r.Reserve(req)
	if a != b {
		t.Fatalf("expected idempotent reservation, got %q then %q", a, b)
	}
}

func TestReserveCollisionNumericSuffix(t *testing.T) {
	r := New()
	scope := ClassScope("Ns.Foo", false)
	first := r.Reserve(Request{StableID: "id1", Base: "Value", Scope: scope, Style: StylePascal})
	second := r.Reserve(Request{StableID: "id2", Base: "Value", Scope: scope, Style: StylePascal})
	if first != "Value" {
		t.Fatalf("expected first reservation unchanged, got %q", first)
	}
	if second != "Value2" {
		t.Fatalf("expected numeric suffix, got %q", second)
	}
}

func TestReserveReservedWordGetsUnderscore(t *testing.T) {
	r := New()
	scope := ClassScope("Ns.Foo", false)
	got := r.Reserve(Request{StableID: "id1", Base: "delete", Scope: scope, Style: StyleCamel})
	if got != "delete_" {
		t.Fatalf("expected delete_, got %q", got)
	}
}

func TestReserveInterfaceSuffixBeforeNumeric(t *testing.T) {
	r := New()
	scope := ClassScope("Ns.Foo", false)
	r.Reserve(Request{StableID: "id1", Base: "ToBoolean", Scope: scope, Style: StyleCamel})
	got := r.Reserve(Request{StableID: "id2", Base: "ToBoolean", Scope: scope, Style: StyleCamel, InterfaceShortName: "IConvertible"})
	if got != "toBoolean_IConvertible" {
		t.Fatalf("expected interface-suffixed name, got %q", got)
	}
}

func TestLookupRequiresSurfaceScope(t *testing.T) {
	r := New()
	scope := ClassScope("Ns.Foo", false)
	r.Reserve(Request{StableID: "id1", Base: "Value", Scope: scope, Style: StylePascal})
	if _, ok := r.Lookup("id1", NamespaceScope("Ns", true)); ok {
		t.Fatalf("namespace scope lookup should fail, not a surface scope")
	}
	if _, ok := r.Lookup("id1", scope); !ok {
		t.Fatalf("expected lookup to succeed in the reservation's own scope")
	}
}

func TestDualScopeSameBaseResolvesIdentically(t *testing.T) {
	r := New()
	classScope := ClassScope("Ns.Foo", false)
	viewScope := ViewScope("Ns.Foo", "Ns.IFoo", false)
	r.Reserve(Request{StableID: "shared", Base: "Value", Scope: classScope, Style: StylePascal})
	r.Reserve(Request{StableID: "shared", Base: "Value", Scope: viewScope, Style: StylePascal})

	classFinal, _ := r.Lookup("shared", classScope)
	viewFinal, _ := r.Lookup("shared", viewScope)
	if classFinal != viewFinal {
		t.Fatalf("expected same base name to resolve identically when scopes don't collide: %q vs %q", classFinal, viewFinal)
	}
}

func TestScopeKeyRoundTrip(t *testing.T) {
	cases := []Scope{
		NamespaceScope("System.Collections", true),
		ClassScope("System.Collections.List", true),
		ViewScope("Asm:List`1", "Asm:IEnumerable`1", false),
	}
	for _, s := range cases {
		key := s.Key()
		parsed, ok := ParseScope(key)
		if !ok {
			t.Fatalf("failed to parse scope key %q", key)
		}
		if parsed.Key() != key {
			t.Fatalf("round trip mismatch: %q -> %+v -> %q", key, parsed, parsed.Key())
		}
	}
}
