// Package rename implements the Renamer: the scope-keyed naming authority
// that assigns every symbol its final target-language identifier.
package rename

import "strings"

// ScopeKind distinguishes the three shapes of scope key the factory
// produces. Scope keys are always produced by the factory functions below,
// never formed by hand.
type ScopeKind string

const (
	ScopeNamespace ScopeKind = "ns"
	ScopeClass     ScopeKind = "type"
	ScopeView      ScopeKind = "view"
)

// Scope is a parsed scope key.
type Scope struct {
	Kind ScopeKind

	// ScopeNamespace
	Namespace string
	Public    bool // true: public; false: internal

	// ScopeClass
	TypeFullName string

	// ScopeView
	TypeStableID      string
	InterfaceStableID string

	// ScopeClass / ScopeView
	Static bool
}

// Key renders the canonical scope key string for s.
func (s Scope) Key() string {
	switch s.Kind {
	case ScopeNamespace:
		vis := "internal"
		if s.Public {
			vis = "public"
		}
		return "ns:" + s.Namespace + ":" + vis
	case ScopeClass:
		return "type:" + s.TypeFullName + "#" + staticSuffix(s.Static)
	case ScopeView:
		return "view:" + s.TypeStableID + ":" + s.InterfaceStableID + "#" + staticSuffix(s.Static)
	default:
		return ""
	}
}

// IsSurface reports whether s is a class or view scope — the two kinds a
// Lookup call must use.
func (s Scope) IsSurface() bool { return s.Kind == ScopeClass || s.Kind == ScopeView }

func staticSuffix(static bool) string {
	if static {
		return "static"
	}
	return "instance"
}

// NamespaceScope builds the namespace scope key: ns:{namespace}:{public|internal}.
func NamespaceScope(namespace string, public bool) Scope {
	return Scope{Kind: ScopeNamespace, Namespace: namespace, Public: public}
}

// ClassScope builds the class-surface scope key: type:{type_full_name}#{instance|static}.
// Separate scopes for instance and static members exist because the
// target language permits the same name in both spaces.
func ClassScope(typeFullName string, static bool) Scope {
	return Scope{Kind: ScopeClass, TypeFullName: typeFullName, Static: static}
}

// ViewScope builds the view-surface scope key:
// view:{type_stable_id}:{interface_stable_id}#{instance|static}.
func ViewScope(typeStableID, interfaceStableID string, static bool) Scope {
	return Scope{Kind: ScopeView, TypeStableID: typeStableID, InterfaceStableID: interfaceStableID, Static: static}
}

// ParseScope parses a scope key string produced by Key(). Returns ok=false
// for malformed keys (diagnostics.SCOPEMalformedKey territory).
func ParseScope(key string) (Scope, bool) {
	switch {
	case strings.HasPrefix(key, "ns:"):
		rest := key[len("ns:"):]
		i := strings.LastIndexByte(rest, ':')
		if i < 0 {
			return Scope{}, false
		}
		vis := rest[i+1:]
		if vis != "public" && vis != "internal" {
			return Scope{}, false
		}
		return Scope{Kind: ScopeNamespace, Namespace: rest[:i], Public: vis == "public"}, true
	case strings.HasPrefix(key, "type:"):
		rest := key[len("type:"):]
		name, static, ok := splitHashStatic(rest)
		if !ok {
			return Scope{}, false
		}
		return Scope{Kind: ScopeClass, TypeFullName: name, Static: static}, true
	case strings.HasPrefix(key, "view:"):
		rest := key[len("view:"):]
		body, static, ok := splitHashStatic(rest)
		if !ok {
			return Scope{}, false
		}
		i := strings.IndexByte(body, ':')
		if i < 0 {
			return Scope{}, false
		}
		return Scope{Kind: ScopeView, TypeStableID: body[:i], InterfaceStableID: body[i+1:], Static: static}, true
	default:
		return Scope{}, false
	}
}

func splitHashStatic(s string) (body string, static bool, ok bool) {
	i := strings.LastIndexByte(s, '#')
	if i < 0 {
		return "", false, false
	}
	switch s[i+1:] {
	case "static":
		return s[:i], true, true
	case "instance":
		return s[:i], false, true
	default:
		return "", false, false
	}
}
