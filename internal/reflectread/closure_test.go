package reflectread

import (
	"testing"

	"github.com/tsbindgen/tsbindgen/internal/assemblykey"
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
)

func keyFor(name string, major int) assemblykey.Key {
	return assemblykey.Key{Name: name, PublicKeyToken: "abc123", Version: assemblykey.Version{Major: major}}
}

func TestBuildClosureFollowsReferencesAndPicksHighestVersion(t *testing.T) {
	probed := map[string]ProbeResult{
		"/seeds/app.dll": {
			Identity:   keyFor("app", 1),
			References: []assemblykey.Key{keyFor("mscorlib", 4), keyFor("lib", 1)},
		},
		"/refs/mscorlib.dll": {Identity: mscorlibIdentity()},
		"/refs/lib.v1.dll":   {Identity: keyFor("lib", 1)},
		"/refs/lib.v2.dll":   {Identity: keyFor("lib", 2)},
	}
	probe := func(path string) (ProbeResult, error) { return probed[path], nil }
	locate := func(name string) []string {
		switch name {
		case "mscorlib":
			return []string{"/refs/mscorlib.dll"}
		case "lib":
			return []string{"/refs/lib.v1.dll", "/refs/lib.v2.dll"}
		}
		return nil
	}

	bag := diagnostics.NewBag()
	result, err := BuildClosure([]string{"/seeds/app.dll"}, locate, probe, validationPolicy{}, bag)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(result.Paths) != 3 {
		t.Fatalf("expected 3 resolved paths (lib v1 dropped for v2), got %d: %+v", len(result.Paths), result.Paths)
	}
	if got := result.Identities["/refs/lib.v2.dll"].Version.Major; got != 2 {
		t.Fatalf("expected lib v2 identity recorded, got major=%d", got)
	}
}

func TestBuildClosureFatalWhenCoreLibraryMissing(t *testing.T) {
	probed := map[string]ProbeResult{
		"/seeds/app.dll": {Identity: keyFor("app", 1)},
	}
	probe := func(path string) (ProbeResult, error) { return probed[path], nil }
	locate := func(string) []string { return nil }

	bag := diagnostics.NewBag()
	_, err := BuildClosure([]string{"/seeds/app.dll"}, locate, probe, validationPolicy{}, bag)
	if err == nil {
		t.Fatal("expected a fatal error when mscorlib is absent from the closure")
	}
	if _, ok := err.(*FatalError); !ok {
		t.Fatalf("expected *FatalError, got %T", err)
	}
}

func TestBuildClosureRecordsUnresolvedReference(t *testing.T) {
	probed := map[string]ProbeResult{
		"/seeds/app.dll":     {Identity: keyFor("app", 1), References: []assemblykey.Key{keyFor("mscorlib", 4), keyFor("missing", 1)}},
		"/refs/mscorlib.dll": {Identity: mscorlibIdentity()},
	}
	probe := func(path string) (ProbeResult, error) { return probed[path], nil }
	locate := func(name string) []string {
		if name == "mscorlib" {
			return []string{"/refs/mscorlib.dll"}
		}
		return nil
	}

	bag := diagnostics.NewBag()
	result, err := BuildClosure([]string{"/seeds/app.dll"}, locate, probe, validationPolicy{}, bag)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if _, ok := result.Unresolved["missing"]; !ok {
		t.Fatal("expected the unresolved reference to be recorded")
	}
	found := false
	for _, d := range bag.Snapshot() {
		if d.Code == diagnostics.LoadUnresolvedReference {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a LoadUnresolvedReference warning")
	}
}
