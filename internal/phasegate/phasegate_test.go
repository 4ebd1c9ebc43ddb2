package phasegate

import (
	"testing"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

func widgetWithMethod(m *graph.Member) *graph.Type {
	name := "Widget"
	return &graph.Type{
		StableID:      "app:Main.Widget",
		CLRFullName:   "Main.Widget",
		Assembly:      "app",
		Kind:          graph.KindClass,
		Accessibility: graph.AccessPublic,
		EmitName:      &name,
		Members:       &graph.MemberBundle{Methods: []*graph.Member{m}},
	}
}

func graphWith(t *graph.Type) *graph.Graph {
	return graph.New([]*graph.Namespace{{Name: "Main", Types: []*graph.Type{t}}})
}

func TestCheckEmitScopeSpecifiedFlagsUnspecified(t *testing.T) {
	m := &graph.Member{StableID: "app:Main.Widget::Go()", CLRName: "Go", Kind: graph.MemberMethod, Visibility: graph.AccessPublic, EmitScope: graph.ScopeUnspecified}
	g := graphWith(widgetWithMethod(m))
	bag := diagnostics.NewBag()
	Run(g, rename.New(), policy.Default(), bag)
	if !bag.HasErrors() {
		t.Fatal("expected an error for unspecified emit scope")
	}
}

func TestCheckRenameDecisionPresentPassesWhenReserved(t *testing.T) {
	m := &graph.Member{StableID: "app:Main.Widget::Go()", CLRName: "Go", EmitName: "go", Kind: graph.MemberMethod, Visibility: graph.AccessPublic, EmitScope: graph.ScopeClassSurface}
	typ := widgetWithMethod(m)
	g := graphWith(typ)

	rn := rename.New()
	rn.Reserve(rename.Request{StableID: typ.StableID, Base: "Widget", Scope: rename.NamespaceScope("Main", true), Style: rename.StylePreserve, Reason: rename.ReasonOriginal, Source: rename.SourceReflection})
	rn.Reserve(rename.Request{StableID: m.StableID, Base: "go", Scope: rename.ClassScope(typ.CLRFullName, false), Style: rename.StylePreserve, Reason: rename.ReasonOriginal, Source: rename.SourceReflection})

	bag := diagnostics.NewBag()
	Run(g, rn, policy.Default(), bag)
	for _, d := range bag.Snapshot() {
		if d.Code == diagnostics.FINMissingRenameDecision || d.Code == diagnostics.FINUnspecifiedEmitScope {
			t.Fatalf("unexpected finalisation error: %+v", d)
		}
	}
}

func TestCheckClassSurfaceUniquenessFlagsCollision(t *testing.T) {
	a := &graph.Member{StableID: "app:Main.Widget::A()", CLRName: "A", EmitName: "go", Kind: graph.MemberMethod, Visibility: graph.AccessPublic, EmitScope: graph.ScopeClassSurface}
	b := &graph.Member{StableID: "app:Main.Widget::B()", CLRName: "B", EmitName: "go", Kind: graph.MemberMethod, Visibility: graph.AccessPublic, EmitScope: graph.ScopeClassSurface}
	name := "Widget"
	typ := &graph.Type{
		StableID: "app:Main.Widget", CLRFullName: "Main.Widget", Assembly: "app",
		Kind: graph.KindClass, Accessibility: graph.AccessPublic, EmitName: &name,
		Members: &graph.MemberBundle{Methods: []*graph.Member{a, b}},
	}
	g := graphWith(typ)
	bag := diagnostics.NewBag()
	checkClassSurfaceUniqueness(g, rename.New(), policy.Default(), bag)
	found := false
	for _, d := range bag.Snapshot() {
		if d.Code == diagnostics.NameClassSurfaceCollision {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a class-surface collision finding")
	}
}

func TestCheckViewNonEmptyFlagsEmptyView(t *testing.T) {
	name := "Widget"
	typ := &graph.Type{
		StableID: "app:Main.Widget", CLRFullName: "Main.Widget", Assembly: "app",
		Kind: graph.KindClass, Accessibility: graph.AccessPublic, EmitName: &name,
		Members: &graph.MemberBundle{},
		Views:   []*graph.ExplicitView{{SourceInterfaceStableID: "app:Main.IFoo", PropertyName: "As_IFoo_0"}},
	}
	g := graphWith(typ)
	bag := diagnostics.NewBag()
	checkViewNonEmpty(g, rename.New(), policy.Default(), bag)
	if !bag.HasErrors() {
		t.Fatal("expected an error for an empty view")
	}
}

func TestCheckUniqueErasureAfterUnificationFlagsSurvivingDuplicate(t *testing.T) {
	a := &graph.Member{StableID: "app:Main.Widget::A()", CLRName: "A", EmitName: "go", Kind: graph.MemberMethod, Visibility: graph.AccessPublic, EmitScope: graph.ScopeClassSurface}
	b := &graph.Member{StableID: "app:Main.Widget::B()", CLRName: "B", EmitName: "go", Kind: graph.MemberMethod, Visibility: graph.AccessPublic, EmitScope: graph.ScopeClassSurface}
	name := "Widget"
	typ := &graph.Type{
		StableID: "app:Main.Widget", CLRFullName: "Main.Widget", Assembly: "app",
		Kind: graph.KindClass, Accessibility: graph.AccessPublic, EmitName: &name,
		Members: &graph.MemberBundle{Methods: []*graph.Member{a, b}},
	}
	g := graphWith(typ)
	bag := diagnostics.NewBag()
	checkUniqueErasureAfterUnification(g, rename.New(), policy.Default(), bag)
	found := false
	for _, d := range bag.Snapshot() {
		if d.Code == diagnostics.OVNonUniqueErasure {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a non-unique erasure finding")
	}
}

func TestCheckDiamondErrorStrategyFiresOnlyUnderErrorPolicy(t *testing.T) {
	m := &graph.Member{StableID: "app:Main.Widget::A()", CLRName: "A", EmitName: "a", Kind: graph.MemberMethod, Visibility: graph.AccessPublic, EmitScope: graph.ScopeClassSurface, Provenance: graph.ProvenanceDiamondResolved}
	g := graphWith(widgetWithMethod(m))

	lax := policy.Default()
	lax.Interfaces.DiamondResolution = graph.DiamondOverloadAll
	laxBag := diagnostics.NewBag()
	checkDiamondErrorStrategy(g, rename.New(), lax, laxBag)
	if laxBag.HasErrors() {
		t.Fatal("overload-all policy must not trigger the diamond error rule")
	}

	strict := policy.Default()
	strict.Interfaces.DiamondResolution = graph.DiamondError
	strictBag := diagnostics.NewBag()
	checkDiamondErrorStrategy(g, rename.New(), strict, strictBag)
	if !strictBag.HasErrors() {
		t.Fatal("error policy must trigger the diamond error rule for a diamond-resolved member")
	}
}

// TestCheckScopeMatchesEmitScopePassesForExplicitViewMember exercises a
// ScopeViewOnly member with a non-nil SourceInterface the way
// StructuralConformance/ExplicitImplSynthesiser actually produce one —
// the view scope lookup must key on SourceInterface.InterfaceStableID,
// matching what Name Reservation reserved, not TypeRef.StableID() (which
// is ":" for a TypeRef that only carries Kind and InterfaceStableID).
func TestCheckScopeMatchesEmitScopePassesForExplicitViewMember(t *testing.T) {
	iface := &graph.TypeRef{Kind: graph.RefNamed, InterfaceStableID: "app:Main.IWidget"}
	m := &graph.Member{
		StableID:        "app:Main.Widget::IWidget.Go()",
		CLRName:         "Go",
		EmitName:        "go",
		Kind:            graph.MemberMethod,
		Visibility:      graph.AccessPublic,
		EmitScope:       graph.ScopeViewOnly,
		SourceInterface: iface,
	}
	typ := widgetWithMethod(m)
	g := graphWith(typ)

	rn := rename.New()
	rn.Reserve(rename.Request{StableID: typ.StableID, Base: "Widget", Scope: rename.NamespaceScope("Main", true), Style: rename.StylePreserve, Reason: rename.ReasonOriginal, Source: rename.SourceReflection})
	viewScope := rename.ViewScope(typ.StableID, iface.InterfaceStableID, m.IsStatic)
	rn.Reserve(rename.Request{StableID: m.StableID, Base: "go", Scope: viewScope, Style: rename.StylePreserve, Reason: rename.ReasonOriginal, Source: rename.SourceReflection})

	bag := diagnostics.NewBag()
	Run(g, rn, policy.Default(), bag)
	for _, d := range bag.Snapshot() {
		if d.Code == diagnostics.SCOPELookupMismatch || d.Code == diagnostics.FINMissingRenameDecision {
			t.Fatalf("unexpected finding for a correctly-reserved explicit-interface view member: %+v", d)
		}
	}
}
