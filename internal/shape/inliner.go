package shape

import "github.com/tsbindgen/tsbindgen/internal/graph"

// InterfaceInliner flattens interface inheritance: every ancestor's
// members are copied into each derived interface and the `extends` list is
// cleared. `extends` in the target introduces variance issues and
// contract drift that a flat declaration avoids.
//
// Deduplicates methods by canonical signature, properties by name (the
// target disallows property overloads), events by canonical signature.
// When a derived interface references a parameterised base
// (`IDerived : IBase<string>`), the base's generic parameters are
// substituted with the actual type arguments before copying; substitutions
// compose transitively through multi-level chains, excluding each method's
// own generic parameters from substitution so they are never captured.
func InterfaceInliner(g *graph.Graph) *graph.Graph {
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		if t.Kind != graph.KindInterface || len(t.Interfaces) == 0 {
			return t
		}
		flattened := flattenInterface(g, t, substitution{}, make(map[string]bool))
		return flattened.WithInterfaces(nil)
	})
}

// flattenInterface returns a clone of iface with every ancestor's members
// (substituted by subst, composed transitively) merged in, deduplicated.
func flattenInterface(g *graph.Graph, iface *graph.Type, subst substitution, visiting map[string]bool) *graph.Type {
	if visiting[iface.StableID] {
		return iface
	}
	visiting[iface.StableID] = true

	bundle := applySubstitutionToBundle(iface.Members, subst, iface.GenericParams)
	byMethodSig := make(map[string]bool)
	byPropertyName := make(map[string]bool)
	byEventSig := make(map[string]bool)
	for _, m := range bundle.Methods {
		byMethodSig[m.CanonicalSignature()] = true
	}
	for _, p := range bundle.Properties {
		byPropertyName[p.CLRName] = true
	}
	for _, e := range bundle.Events {
		byEventSig[e.CanonicalSignature()] = true
	}

	for _, parentRef := range iface.Interfaces {
		parentID := parentRef.StableID()
		parent, ok := g.TypeByStableID(parentID)
		if !ok {
			continue
		}
		parentSubst := compose(subst, buildSubstitution(parent.GenericParams, substituteTypeArgs(parentRef.TypeArguments, subst)))
		flatParent := flattenInterface(g, parent, parentSubst, visiting)
		for _, m := range flatParent.Members.Methods {
			sig := m.CanonicalSignature()
			if byMethodSig[sig] {
				continue
			}
			byMethodSig[sig] = true
			bundle.Methods = append(bundle.Methods, m)
		}
		for _, p := range flatParent.Members.Properties {
			if byPropertyName[p.CLRName] {
				continue
			}
			byPropertyName[p.CLRName] = true
			bundle.Properties = append(bundle.Properties, p)
		}
		for _, e := range flatParent.Members.Events {
			sig := e.CanonicalSignature()
			if byEventSig[sig] {
				continue
			}
			byEventSig[sig] = true
			bundle.Events = append(bundle.Events, e)
		}
	}

	return iface.WithMembers(bundle)
}

func substituteTypeArgs(args []*graph.TypeRef, s substitution) []*graph.TypeRef {
	if len(s) == 0 || len(args) == 0 {
		return args
	}
	out := make([]*graph.TypeRef, len(args))
	for i, a := range args {
		out[i] = substituteRef(a, s)
	}
	return out
}

func applySubstitutionToBundle(b *graph.MemberBundle, s substitution, ownGenerics []*graph.GenericParam) *graph.MemberBundle {
	if len(s) == 0 {
		out := *b
		return &out
	}
	// Exclude each method's own generic parameters from substitution.
	filtered := make(substitution, len(s))
	for k, v := range s {
		filtered[k] = v
	}
	out := &graph.MemberBundle{}
	for _, m := range b.Methods {
		local := withoutOwnGenerics(filtered, m.GenericParams)
		out.Methods = append(out.Methods, substituteMember(m, local))
	}
	for _, p := range b.Properties {
		out.Properties = append(out.Properties, substituteMember(p, filtered))
	}
	for _, f := range b.Fields {
		out.Fields = append(out.Fields, substituteMember(f, filtered))
	}
	for _, e := range b.Events {
		out.Events = append(out.Events, substituteMember(e, filtered))
	}
	for _, c := range b.Constructors {
		out.Constructors = append(out.Constructors, substituteMember(c, filtered))
	}
	return out
}

func withoutOwnGenerics(s substitution, own []*graph.GenericParam) substitution {
	if len(own) == 0 {
		return s
	}
	out := make(substitution, len(s))
	for k, v := range s {
		out[k] = v
	}
	for _, p := range own {
		delete(out, p.Name)
	}
	return out
}
