package graph

// ExplicitView groups view-only members under the interface they belong
// to, attached to the owning type by the View Planner pass. The view property name is a deterministic function of the
// interface's short name and closed type arguments, e.g.
// `IEnumerable<string>` -> `As_IEnumerable_1_of_string`.
type ExplicitView struct {
	SourceInterfaceStableID string
	PropertyName            string
	Members                 []*Member
}

// ViewName derives the deterministic view property name for a closed
// interface reference: `As_{ShortName}_{Arity}[_of_{typeArg1}_..._]`.
// Non-alphanumeric characters in type argument names are flattened to
// underscores so the result is always a valid identifier seed (the
// Renamer still sanitises it like any other requested name).
func ViewName(iface *TypeRef) string {
	if iface == nil {
		return "As_Unknown"
	}
	name := "As_" + iface.SimpleName
	if iface.Arity > 0 {
		name += "_" + itoa(iface.Arity)
	}
	if len(iface.TypeArguments) > 0 {
		name += "_of"
		for _, a := range iface.TypeArguments {
			name += "_" + sanitizeForViewName(TypeName(a))
		}
	}
	return name
}

func sanitizeForViewName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
