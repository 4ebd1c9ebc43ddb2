package rename

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Style is the configured per-kind naming style (naming.typeStyle /
// naming.memberStyle in the policy document).
type Style string

const (
	StylePascal   Style = "pascal"
	StyleCamel    Style = "camel"
	StylePreserve Style = "preserve"
)

var (
	titleCaser = cases.Title(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// Transform applies the configured style to base, first-rune only —
// "ToString" stays "ToString" under Pascal, becomes "toString" under
// camel. Unicode-aware: uses golang.org/x/text/cases rather than an ASCII
// assumption, since CLR identifiers may contain non-ASCII letters.
func Transform(base string, style Style) string {
	if base == "" {
		return base
	}
	switch style {
	case StylePascal:
		return upperFirstRune(base)
	case StyleCamel:
		return lowerFirstRune(base)
	case StylePreserve:
		return base
	default:
		return base
	}
}

func upperFirstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	head := titleCaser.String(string(r))
	return head + s[size:]
}

func lowerFirstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	head := lowerCaser.String(string(r))
	return head + s[size:]
}
