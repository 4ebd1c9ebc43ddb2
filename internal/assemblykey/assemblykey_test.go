package assemblykey

import "testing"

func TestStringNormalisedForm(t *testing.T) {
	k := Key{Name: "mscorlib", PublicKeyToken: "b77a5c561934e089", Version: Version{4, 0, 0, 0}}
	want := "mscorlib, Version=4.0.0.0, Culture=neutral, PublicKeyToken=b77a5c561934e089"
	if got := k.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestVersionLess(t *testing.T) {
	if !(Version{1, 0, 0, 0}).Less(Version{2, 0, 0, 0}) {
		t.Fatalf("expected 1.0.0.0 < 2.0.0.0")
	}
	if (Version{2, 0, 0, 0}).Less(Version{1, 9, 9, 9}) {
		t.Fatalf("expected 2.0.0.0 not < 1.9.9.9")
	}
}

func TestIdentityConflict(t *testing.T) {
	a := Key{Name: "Foo", PublicKeyToken: "aaa"}
	b := Key{Name: "Foo", PublicKeyToken: "bbb"}
	if !IdentityConflict(a, b) {
		t.Fatalf("expected identity conflict")
	}
	c := Key{Name: "Bar", PublicKeyToken: "bbb"}
	if IdentityConflict(a, c) {
		t.Fatalf("different names should not conflict")
	}
}

func TestMajorVersionDrift(t *testing.T) {
	a := Key{Name: "Foo", PublicKeyToken: "aaa", Version: Version{1, 0, 0, 0}}
	b := Key{Name: "Foo", PublicKeyToken: "aaa", Version: Version{2, 0, 0, 0}}
	if !MajorVersionDrift(a, b) {
		t.Fatalf("expected major version drift")
	}
	c := Key{Name: "Foo", PublicKeyToken: "aaa", Version: Version{1, 5, 0, 0}}
	if MajorVersionDrift(a, c) {
		t.Fatalf("minor drift should not count as major drift")
	}
}
