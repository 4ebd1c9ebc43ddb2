package rename

import "strings"

// SanitizeResult records both the sanitized string and whether
// sanitisation occurred, for auditing.
type SanitizeResult struct {
	Sanitized string
	Changed   bool
}

// Sanitize never fails — it transforms. A reserved word gets an
// underscore appended; an identifier starting with a digit (possible once
// numeric branding or positional synthesis is involved) gets a leading
// underscore; empty input becomes "_".
func Sanitize(name string) SanitizeResult {
	out := name
	changed := false

	if out == "" {
		return SanitizeResult{Sanitized: "_", Changed: true}
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
		changed = true
	}
	if IsReservedWord(out) {
		out = out + "_"
		changed = true
	}
	if strings.ContainsAny(out, ".<>`,+ ") {
		out = replaceInvalidRunes(out)
		changed = true
	}
	return SanitizeResult{Sanitized: out, Changed: changed}
}

func replaceInvalidRunes(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '.' || r == '<' || r == '>' || r == '`' || r == ',' || r == '+' || r == ' ':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
