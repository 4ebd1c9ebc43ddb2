package reflectread

import "github.com/tsbindgen/tsbindgen/internal/assemblykey"

// fakeReflector is a recording test double for Reflector: Load's tests
// never touch a real CLR host, only canned ReflectedAssembly values keyed
// by path, exactly mirroring how a production implementation (backed by a
// live reflection facility) would be called.
type fakeReflector struct {
	byPath map[string]ReflectedAssembly
	calls  []string
}

func newFakeReflector(assemblies map[string]ReflectedAssembly) *fakeReflector {
	return &fakeReflector{byPath: assemblies}
}

func (f *fakeReflector) Reflect(path string) (ReflectedAssembly, error) {
	f.calls = append(f.calls, path)
	asm, ok := f.byPath[path]
	if !ok {
		return ReflectedAssembly{}, errNotFound(path)
	}
	return asm, nil
}

type notFoundError string

func (e notFoundError) Error() string { return "reflectread: no fake assembly registered for " + string(e) }

func errNotFound(path string) error { return notFoundError(path) }

func mscorlibIdentity() assemblykey.Key {
	return assemblykey.Key{Name: "mscorlib", PublicKeyToken: "b77a5c561934e089", Version: assemblykey.Version{Major: 4}}
}
