package reservation

import (
	"testing"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

func classSurfaceMethod(id, name string) *graph.Member {
	return &graph.Member{
		StableID:   id,
		CLRName:    name,
		Kind:       graph.MemberMethod,
		Visibility: graph.AccessPublic,
		Provenance: graph.ProvenanceOriginal,
		EmitScope:  graph.ScopeClassSurface,
	}
}

func classSurfaceProperty(id, name string) *graph.Member {
	return &graph.Member{
		StableID:     id,
		CLRName:      name,
		Kind:         graph.MemberProperty,
		Visibility:   graph.AccessPublic,
		HasGetter:    true,
		Provenance:   graph.ProvenanceOriginal,
		EmitScope:    graph.ScopeClassSurface,
		PropertyType: namedRef("mscorlib", "System", "Int32"),
	}
}

func viewOnlyMethod(id, name, ifaceID string) *graph.Member {
	return &graph.Member{
		StableID:        id,
		CLRName:         name,
		Kind:            graph.MemberMethod,
		Visibility:      graph.AccessPublic,
		Provenance:      graph.ProvenanceExplicitView,
		EmitScope:       graph.ScopeViewOnly,
		SourceInterface: &graph.TypeRef{Kind: graph.RefNamed, InterfaceStableID: ifaceID},
	}
}

func namedRef(assembly, ns, name string) *graph.TypeRef {
	return &graph.TypeRef{Kind: graph.RefNamed, Assembly: assembly, Namespace: ns, SimpleName: name}
}

func simpleGraph(t *graph.Type) *graph.Graph {
	return graph.New([]*graph.Namespace{{Name: "App", Types: []*graph.Type{t}}})
}

func TestReserveAssignsTypeAndMemberEmitNames(t *testing.T) {
	cls := &graph.Type{
		StableID:      "app:App.Widget",
		CLRFullName:   "App.Widget",
		Assembly:      "app",
		Kind:          graph.KindClass,
		Accessibility: graph.AccessPublic,
		Members: &graph.MemberBundle{
			Methods: []*graph.Member{classSurfaceMethod("app:App.Widget::DoThing()", "DoThing")},
		},
	}
	g := simpleGraph(cls)
	r := rename.New()
	bag := diagnostics.NewBag()

	out := Reserve(g, r, policy.Default(), bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Snapshot())
	}

	updated, ok := out.TypeByStableID("app:App.Widget")
	if !ok {
		t.Fatal("widget missing")
	}
	if updated.EmitName == nil || *updated.EmitName != "Widget" {
		t.Fatalf("expected type EmitName Widget, got %+v", updated.EmitName)
	}
	if len(updated.Members.Methods) != 1 || updated.Members.Methods[0].EmitName != "doThing" {
		t.Fatalf("expected method EmitName doThing, got %+v", updated.Members.Methods)
	}
}

func TestReserveViewMemberCollidingWithClassSurfaceGetsViewSuffix(t *testing.T) {
	ifaceID := "app:App.IFoo"
	cls := &graph.Type{
		StableID:      "app:App.Widget",
		CLRFullName:   "App.Widget",
		Assembly:      "app",
		Kind:          graph.KindClass,
		Accessibility: graph.AccessPublic,
		Members: &graph.MemberBundle{
			Properties: []*graph.Member{classSurfaceProperty("app:App.Widget::Value", "Value")},
		},
		Views: []*graph.ExplicitView{
			{
				SourceInterfaceStableID: ifaceID,
				PropertyName:            "As_IFoo",
				Members:                 []*graph.Member{viewOnlyMethod("app:App.Widget::IFoo.Value()", "Value", ifaceID)},
			},
		},
	}
	g := simpleGraph(cls)
	r := rename.New()
	bag := diagnostics.NewBag()

	out := Reserve(g, r, policy.Default(), bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Snapshot())
	}

	updated, _ := out.TypeByStableID("app:App.Widget")
	if len(updated.Members.Properties) != 1 || updated.Members.Properties[0].EmitName != "value" {
		t.Fatalf("expected class-surface property EmitName value, got %+v", updated.Members.Properties)
	}
	if len(updated.Views) != 1 || len(updated.Views[0].Members) != 1 {
		t.Fatalf("expected one view with one member, got %+v", updated.Views)
	}
	gotName := updated.Views[0].Members[0].EmitName
	if gotName != "value$view" {
		t.Fatalf("expected view member suffixed value$view, got %q", gotName)
	}
}

func TestAuditFlagsUnspecifiedEmitScope(t *testing.T) {
	cls := &graph.Type{
		StableID:      "app:App.Widget",
		CLRFullName:   "App.Widget",
		Assembly:      "app",
		Kind:          graph.KindClass,
		Accessibility: graph.AccessPublic,
		Members: &graph.MemberBundle{
			Methods: []*graph.Member{
				{
					StableID:   "app:App.Widget::Stray()",
					CLRName:    "Stray",
					Kind:       graph.MemberMethod,
					Provenance: graph.ProvenanceOriginal,
					EmitScope:  graph.ScopeUnspecified,
				},
			},
		},
	}
	g := simpleGraph(cls)
	r := rename.New()
	bag := diagnostics.NewBag()

	Reserve(g, r, policy.Default(), bag)
	if !bag.HasErrors() {
		t.Fatal("expected an error for a member left with unspecified emit scope")
	}
}

func TestReserveIsIdempotentAcrossRepeatedCalls(t *testing.T) {
	cls := &graph.Type{
		StableID:      "app:App.Widget",
		CLRFullName:   "App.Widget",
		Assembly:      "app",
		Kind:          graph.KindClass,
		Accessibility: graph.AccessPublic,
		Members: &graph.MemberBundle{
			Methods: []*graph.Member{classSurfaceMethod("app:App.Widget::DoThing()", "DoThing")},
		},
	}
	g := simpleGraph(cls)
	r := rename.New()
	bag := diagnostics.NewBag()

	first := Reserve(g, r, policy.Default(), bag)
	second := Reserve(g, r, policy.Default(), bag)

	f, _ := first.TypeByStableID("app:App.Widget")
	s, _ := second.TypeByStableID("app:App.Widget")
	if *f.EmitName != *s.EmitName {
		t.Fatalf("expected idempotent type name, got %q then %q", *f.EmitName, *s.EmitName)
	}
}
