package build

import (
	"io"
	"testing"

	"github.com/tsbindgen/tsbindgen/internal/assemblykey"
	"github.com/tsbindgen/tsbindgen/internal/emit"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/reflectread"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type fakeReflector struct {
	byPath map[string]reflectread.ReflectedAssembly
}

func (f fakeReflector) Reflect(path string) (reflectread.ReflectedAssembly, error) {
	return f.byPath[path], nil
}

func mscorlibIdentity() assemblykey.Key {
	return assemblykey.Key{Name: "mscorlib", PublicKeyToken: "b77a5c561934e089", Version: assemblykey.Version{Major: 4}}
}

func newTestConfig(fs emit.FileSystem) Config {
	probed := map[string]reflectread.ProbeResult{
		"/seeds/app.dll":     {Identity: assemblykey.Key{Name: "app", Version: assemblykey.Version{Major: 1}}, References: []assemblykey.Key{mscorlibIdentity()}},
		"/refs/mscorlib.dll": {Identity: mscorlibIdentity()},
	}
	refl := fakeReflector{byPath: map[string]reflectread.ReflectedAssembly{
		"/seeds/app.dll": {
			Identity: probed["/seeds/app.dll"].Identity,
			Types: []reflectread.ReflectedType{
				{CLRFullName: "Main.Widget", Kind: reflectread.ReflectedClass, Accessibility: reflectread.ReflectedPublic},
			},
		},
		"/refs/mscorlib.dll": {Identity: mscorlibIdentity()},
	}}

	return Config{
		Seeds: []string{"/seeds/app.dll"},
		Locate: func(name string) []string {
			if name == "mscorlib" {
				return []string{"/refs/mscorlib.dll"}
			}
			return nil
		},
		Probe:            func(path string) (reflectread.ProbeResult, error) { return probed[path], nil },
		AcquireReflector: func() (reflectread.Reflector, io.Closer, error) { return refl, nopCloser{}, nil },
		Policy:           policy.Default(),
		FileSystem:       fs,
		Logger:           NewLogger(io.Discard, true),
	}
}

func TestRunEmitsNamespaceFilesForExtractedType(t *testing.T) {
	fs := emit.MapFileSystem{}
	cfg := newTestConfig(fs)

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.ErrorCount != 0 {
		t.Fatalf("expected no phase gate errors, got %+v", result.Summary)
	}

	wantSuffixes := []string{"Main/internal/index.ts", "Main/index.ts", "Main/internal/runtime.js", "Main/internal/bindings.json", "diagnostics.txt", "summary.json", "shape-stats.json"}
	for _, suffix := range wantSuffixes {
		if _, ok := fs[suffix]; !ok {
			t.Fatalf("expected %s to be written, got %v", suffix, result.WrittenPaths)
		}
	}
	for _, phase := range []string{"load", "shape", "reservation", "overload", "importplan", "phasegate", "emit"} {
		if _, ok := result.PhaseTimings[phase]; !ok {
			t.Fatalf("expected a PhaseTimings entry for %q, got %+v", phase, result.PhaseTimings)
		}
	}
}

func TestRunStopsBeforeEmitWhenCoreLibraryMissing(t *testing.T) {
	fs := emit.MapFileSystem{}
	cfg := newTestConfig(fs)
	cfg.Locate = func(string) []string { return nil }

	_, err := Run(cfg)
	if err == nil {
		t.Fatal("expected a fatal error when mscorlib cannot be located")
	}
	var fatal *FatalError
	if !asFatal(err, &fatal) {
		t.Fatalf("expected a *build.FatalError, got %T: %v", err, err)
	}
	if fatal.Phase != "load" {
		t.Fatalf("expected the load phase to report the fatal error, got %q", fatal.Phase)
	}
}

func TestRunDiagnosticsOnlySkipsEmit(t *testing.T) {
	fs := emit.MapFileSystem{}
	cfg := newTestConfig(fs)
	cfg.DiagnosticsOnly = true

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.WrittenPaths) != 0 {
		t.Fatalf("expected no files written in diagnostics-only mode, got %v", result.WrittenPaths)
	}
}

func asFatal(err error, target **FatalError) bool {
	fe, ok := err.(*FatalError)
	if !ok {
		return false
	}
	*target = fe
	return true
}
