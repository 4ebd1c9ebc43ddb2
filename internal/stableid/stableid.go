// Package stableid formats and parses the stable identifiers that key
// symbols across every phase of the pipeline.
//
// A stable id is deliberately a plain string, not a struct: it is used as a
// map key everywhere from here on (graph indexes, the Renamer's
// reservation tables, diagnostic locations). Equality on a member stable
// id excludes the source metadata token — two differently-tokened members
// with the same assembly, declaring type, name and canonical signature are
// the same member. Keeping it a string makes that equality exactly Go's
// `==`.
package stableid

import "strings"

// Type formats a type stable id: {assembly_name}:{clr_full_name}.
//
// clrFullName must already be in the runtime's backtick-arity convention
// for generics (e.g. `List`1`); this package does not compute arity, it
// only formats and parses the id shape.
func Type(assemblyName, clrFullName string) string {
	return assemblyName + ":" + clrFullName
}

// Member formats a member stable id:
// {assembly}:{declaring_clr_full_name}::{member_name}{canonical_signature}.
func Member(assemblyName, declaringClrFullName, memberName, canonicalSignature string) string {
	return assemblyName + ":" + declaringClrFullName + "::" + memberName + canonicalSignature
}

// SplitType reverses Type, returning (assemblyName, clrFullName).
// Returns ok=false if id is not a well-formed type stable id.
func SplitType(id string) (assemblyName, clrFullName string, ok bool) {
	i := strings.IndexByte(id, ':')
	if i < 0 {
		return "", "", false
	}
	return id[:i], id[i+1:], true
}

// DeclaringType returns the declaring type's stable id embedded in a member
// stable id, i.e. the portion before "::".
func DeclaringType(memberID string) (typeID string, ok bool) {
	i := strings.Index(memberID, "::")
	if i < 0 {
		return "", false
	}
	return memberID[:i], true
}

// BacktickArity returns the runtime backtick-arity form of a generic simple
// name, e.g. BacktickArity("List", 1) == "List`1". Arity 0 returns name
// unchanged.
func BacktickArity(simpleName string, arity int) string {
	if arity == 0 {
		return simpleName
	}
	var b strings.Builder
	b.WriteString(simpleName)
	b.WriteByte('`')
	writeInt(&b, arity)
	return b.String()
}

// StripArity returns the simple name and arity parsed out of a
// backtick-arity name. Returns arity 0, the name unchanged, when there is
// no backtick.
func StripArity(name string) (simpleName string, arity int) {
	i := strings.IndexByte(name, '`')
	if i < 0 {
		return name, 0
	}
	n := 0
	for _, r := range name[i+1:] {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return name[:i], n
}

func writeInt(b *strings.Builder, n int) {
	if n == 0 {
		b.WriteByte('0')
		return
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	b.Write(digits[i:])
}
