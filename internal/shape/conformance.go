package shape

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/index"
)

// StructuralConformance resolves the mismatch between nominal interface
// implementation (the source runtime: "this class says `: IFoo`") and
// structural satisfaction (the target: "does this class's surface actually
// have a compatible `Foo` member?"). For each class/struct and each
// interface it implements, it compares the class's class-surface members
// against the interface's substituted surface (the interface's members
// with its generic parameters replaced by the actual type arguments in
// the implements clause). Every interface member not satisfied by
// target-level assignability is synthesised as a view-only clone keeping
// the *interface's* member stable id, so later dedup passes see one copy.
//
// Must run before the Interface Inliner (4.2.3) so it still sees the
// un-flattened hierarchy, but after the indexes are built.
//
// Idempotent: a type already carrying a view-only clone for a given
// (interface, signature) pair is left alone rather than re-synthesised,
// so running this pass twice on its own output adds zero new members.
func StructuralConformance(g *graph.Graph, idx index.Indexes, bag *diagnostics.Bag) *graph.Graph {
	return g.MapTypes(func(t *graph.Type) *graph.Type {
		if t.Kind != graph.KindClass && t.Kind != graph.KindStruct {
			return t
		}
		classSurface := classSurfaceSignatures(t)
		existingViews := existingViewSignatures(t)
		haveStableID := make(map[string]bool)
		for _, m := range t.AllMembers() {
			haveStableID[m.StableID] = true
		}
		var synthesized []*graph.Member
		for _, ifaceRef := range t.Interfaces {
			ifaceID := ifaceRef.StableID()
			substituted := substitutedSurface(g, idx, ifaceRef)
			for sig, want := range substituted {
				if have, ok := classSurface[sig]; ok && assignable(have, want) {
					continue
				}
				if existingViews[viewSigKey(ifaceID, sig)] {
					continue
				}
				clone := cloneAsView(want, ifaceID)
				if haveStableID[clone.StableID] {
					bag.Error(diagnostics.INTSynthesisNotIdempotent,
						"structural conformance re-synthesised member \""+clone.StableID+"\" of \""+t.CLRFullName+"\" that already exists on the type",
						t.StableID, clone.StableID, "")
					continue
				}
				synthesized = append(synthesized, clone)
			}
		}
		if len(synthesized) == 0 {
			return t
		}
		bundle := t.Members
		for _, m := range synthesized {
			bundle = bundle.AppendByKind(m)
		}
		return t.WithMembers(bundle)
	})
}

func classSurfaceSignatures(t *graph.Type) map[string]*graph.Member {
	out := make(map[string]*graph.Member)
	for _, m := range t.AllMembers() {
		if m.EmitScope == graph.ScopeClassSurface || m.EmitScope == graph.ScopeUnspecified {
			out[m.CanonicalSignature()] = m
		}
	}
	return out
}

// existingViewSignatures indexes t's already-synthesised view-only
// members by (source interface, canonical signature), so a second
// StructuralConformance pass recognizes a clone it already produced
// instead of re-synthesising a duplicate.
func existingViewSignatures(t *graph.Type) map[string]bool {
	out := make(map[string]bool)
	for _, m := range t.AllMembers() {
		if m.EmitScope == graph.ScopeViewOnly && m.SourceInterface != nil {
			out[viewSigKey(m.SourceInterface.InterfaceStableID, m.CanonicalSignature())] = true
		}
	}
	return out
}

func viewSigKey(ifaceID, sig string) string {
	return ifaceID + "\x00" + sig
}

// substitutedSurface returns ifaceRef's interface members (inherited and
// owned, from the global interface index) with the interface's generic
// parameters replaced by ifaceRef's closed type arguments, keyed by the
// post-substitution canonical signature.
func substitutedSurface(g *graph.Graph, idx index.Indexes, ifaceRef *graph.TypeRef) map[string]*graph.Member {
	ifaceID := ifaceRef.StableID()
	iface, ok := g.TypeByStableID(ifaceID)
	if !ok {
		return nil
	}
	subst := buildSubstitution(iface.GenericParams, ifaceRef.TypeArguments)
	out := make(map[string]*graph.Member)
	for _, m := range idx.AllSignatures(ifaceID) {
		substituted := substituteMember(m, subst)
		out[substituted.CanonicalSignature()] = substituted
	}
	return out
}

func cloneAsView(m *graph.Member, ifaceID string) *graph.Member {
	clone := *m
	clone.Provenance = graph.ProvenanceExplicitView
	clone.EmitScope = graph.ScopeViewOnly
	clone.SourceInterface = &graph.TypeRef{Kind: graph.RefNamed, InterfaceStableID: ifaceID}
	return &clone
}
