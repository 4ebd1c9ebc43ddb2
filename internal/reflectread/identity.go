package reflectread

import (
	"fmt"

	"github.com/tsbindgen/tsbindgen/internal/assemblykey"
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
)

// checkIdentity compares two identities already known to share a simple
// assembly name and records the required identity-validation findings:
// a public-key-token mismatch is always an error; a major-version
// disagreement is an error under strict policy and a warning otherwise.
func checkIdentity(a, b assemblykey.Key, pol validationPolicy, bag *diagnostics.Bag) {
	if assemblykey.IdentityConflict(a, b) {
		bag.Error(diagnostics.LoadIdentityConflict,
			fmt.Sprintf("assembly %q resolves to conflicting identities: %s vs %s", a.Name, a.String(), b.String()),
			"", "", "")
		return
	}
	if assemblykey.MajorVersionDrift(a, b) {
		msg := fmt.Sprintf("assembly %q has major-version drift: %s vs %s", a.Name, a.String(), b.String())
		if pol.StrictVersionChecks {
			bag.Error(diagnostics.LoadVersionDrift, msg, "", "", "")
		} else {
			bag.Warning(diagnostics.LoadVersionDrift, msg, "", "", "")
		}
	}
}
