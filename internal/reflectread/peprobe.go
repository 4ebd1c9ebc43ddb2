package reflectread

import (
	"fmt"

	"github.com/saferwall/pe"

	"github.com/tsbindgen/tsbindgen/internal/assemblykey"
)

// ProbeResult is the lightweight metadata read the transitive closure BFS
// needs from one candidate assembly file: its own identity and the
// identity of every assembly it references. Nothing else about the image
// is inspected — full type/member extraction is a Reflector's job, applied
// only to the assemblies the closure actually keeps.
type ProbeResult struct {
	Identity   assemblykey.Key
	References []assemblykey.Key
}

// Probe opens path, parses only far enough to reach the CLR directory and
// the Assembly/AssemblyRef metadata table rows, and returns the BFS edge
// set. A file with no CLR directory (a native PE, not a managed assembly)
// is reported via the returned error so the caller can treat it as
// LoadCorruptMetadata rather than a silent empty result.
func Probe(path string) (ProbeResult, error) {
	f, err := pe.New(path, &pe.Options{Fast: true})
	if err != nil {
		return ProbeResult{}, fmt.Errorf("reflectread: open %s: %w", path, err)
	}
	defer f.Close()

	if err := f.Parse(); err != nil {
		return ProbeResult{}, fmt.Errorf("reflectread: parse %s: %w", path, err)
	}
	if !f.HasCLR {
		return ProbeResult{}, fmt.Errorf("reflectread: %s has no CLR directory", path)
	}

	row, ok := decodeAssemblyRow(f)
	if !ok {
		return ProbeResult{}, fmt.Errorf("reflectread: %s has no Assembly table row", path)
	}
	identity := assemblykey.Key{
		Name:           row.Name,
		PublicKeyToken: row.PublicKeyToken,
		Culture:        row.Culture,
		Version: assemblykey.Version{
			Major: int(row.MajorVersion), Minor: int(row.MinorVersion),
			Build: int(row.BuildNumber), Revision: int(row.RevisionNumber),
		},
	}

	refRows := decodeAssemblyRefRows(f)
	refs := make([]assemblykey.Key, 0, len(refRows))
	for _, r := range refRows {
		refs = append(refs, assemblykey.Key{
			Name:           r.Name,
			PublicKeyToken: r.PublicKeyToken,
			Culture:        r.Culture,
			Version: assemblykey.Version{
				Major: int(r.MajorVersion), Minor: int(r.MinorVersion),
				Build: int(r.BuildNumber), Revision: int(r.RevisionNumber),
			},
		})
	}

	return ProbeResult{Identity: identity, References: refs}, nil
}
