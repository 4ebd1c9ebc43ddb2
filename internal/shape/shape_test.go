package shape

import (
	"testing"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/index"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

func namedRef(assembly, ns, name string) *graph.TypeRef {
	return &graph.TypeRef{Kind: graph.RefNamed, Assembly: assembly, Namespace: ns, SimpleName: name}
}

func objectRef() *graph.TypeRef { return namedRef("mscorlib", "System", "Object") }

func methodMember(id, name string, ret *graph.TypeRef) *graph.Member {
	return &graph.Member{
		StableID:   id,
		CLRName:    name,
		Kind:       graph.MemberMethod,
		Visibility: graph.AccessPublic,
		ReturnType: ret,
		Provenance: graph.ProvenanceOriginal,
		EmitScope:  graph.ScopeClassSurface,
	}
}

func propertyMember(id, name string, typ *graph.TypeRef) *graph.Member {
	return &graph.Member{
		StableID:     id,
		CLRName:      name,
		Kind:         graph.MemberProperty,
		Visibility:   graph.AccessPublic,
		PropertyType: typ,
		HasGetter:    true,
		Provenance:   graph.ProvenanceOriginal,
		EmitScope:    graph.ScopeClassSurface,
	}
}

func ifaceType(stableID, name string, methods ...*graph.Member) *graph.Type {
	return &graph.Type{
		StableID:    stableID,
		CLRFullName: name,
		Assembly:    "app",
		Kind:        graph.KindInterface,
		Members:     &graph.MemberBundle{Methods: methods},
	}
}

func classType(stableID, name string, ifaces []*graph.TypeRef, bundle *graph.MemberBundle) *graph.Type {
	return &graph.Type{
		StableID:    stableID,
		CLRFullName: name,
		Assembly:    "app",
		Kind:        graph.KindClass,
		Interfaces:  ifaces,
		Members:     bundle,
	}
}

func TestStructuralConformanceSynthesizesMissingInterfaceMember(t *testing.T) {
	ifaceID := "app:IFoo"
	iface := ifaceType(ifaceID, "IFoo", methodMember("app:IFoo::Bar()->void", "Bar", nil))
	ifaceRef := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", SimpleName: "IFoo", InterfaceStableID: ifaceID}

	cls := classType("app:Widget", "Widget", []*graph.TypeRef{ifaceRef}, &graph.MemberBundle{})

	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{iface, cls}}})
	idx := index.Build(g)

	bag := diagnostics.NewBag()
	out := StructuralConformance(g, idx, bag)
	updated, ok := out.TypeByStableID("app:Widget")
	if !ok {
		t.Fatal("widget missing after conformance")
	}
	found := false
	for _, m := range updated.AllMembers() {
		if m.CLRName == "Bar" && m.EmitScope == graph.ScopeViewOnly {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a synthesised view-only Bar method")
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors on first synthesis: %+v", bag.Snapshot())
	}
}

// TestStructuralConformanceIsIdempotent runs the pass twice on its own
// output — the documented invariant that a second run adds zero new
// members and raises no INTSynthesisNotIdempotent finding.
func TestStructuralConformanceIsIdempotent(t *testing.T) {
	ifaceID := "app:IFoo"
	iface := ifaceType(ifaceID, "IFoo", methodMember("app:IFoo::Bar()->void", "Bar", nil))
	ifaceRef := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", SimpleName: "IFoo", InterfaceStableID: ifaceID}

	cls := classType("app:Widget", "Widget", []*graph.TypeRef{ifaceRef}, &graph.MemberBundle{})

	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{iface, cls}}})
	idx := index.Build(g)

	bag := diagnostics.NewBag()
	once := StructuralConformance(g, idx, bag)
	twice := StructuralConformance(once, idx, bag)

	if bag.HasErrors() {
		t.Fatalf("unexpected errors re-running conformance on its own output: %+v", bag.Snapshot())
	}

	widget, ok := twice.TypeByStableID("app:Widget")
	if !ok {
		t.Fatal("widget missing after second conformance pass")
	}
	count := 0
	for _, m := range widget.AllMembers() {
		if m.CLRName == "Bar" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one Bar clone after a second pass, got %d", count)
	}
}

func TestInterfaceInlinerFlattensAndDedupes(t *testing.T) {
	baseID := "app:IBase"
	base := ifaceType(baseID, "IBase", methodMember("app:IBase::M()->void", "M", nil))
	derivedID := "app:IDerived"
	baseRef := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", SimpleName: "IBase", InterfaceStableID: baseID}
	derived := ifaceType(derivedID, "IDerived", methodMember("app:IDerived::N()->System.Boolean", "N", namedRef("mscorlib", "System", "Boolean")))
	derived.Interfaces = []*graph.TypeRef{baseRef}

	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{base, derived}}})
	out := InterfaceInliner(g)

	updated, ok := out.TypeByStableID(derivedID)
	if !ok {
		t.Fatal("derived interface missing")
	}
	if len(updated.Interfaces) != 0 {
		t.Fatal("expected extends list cleared")
	}
	if len(updated.Members.Methods) != 2 {
		t.Fatalf("expected 2 flattened methods, got %d", len(updated.Members.Methods))
	}
}

func TestInternalInterfaceFilterRemovesKnownInternal(t *testing.T) {
	ref := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "mscorlib", Namespace: "System", SimpleName: "ICloneable"}
	cls := classType("app:Widget", "Widget", []*graph.TypeRef{ref}, &graph.MemberBundle{})
	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{cls}}})

	out := InternalInterfaceFilter(g)
	updated, _ := out.TypeByStableID("app:Widget")
	if len(updated.Interfaces) != 0 {
		t.Fatal("expected ICloneable filtered out")
	}
}

func TestDiamondResolverErrorPolicyRecordsError(t *testing.T) {
	iface1 := ifaceType("app:IA", "IA", methodMember("app:IA::M()->void", "M", nil))
	iface2 := ifaceType("app:IB", "IB", methodMember("app:IB::M()->bool", "M", namedRef("mscorlib", "System", "Boolean")))
	ref1 := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", SimpleName: "IA", InterfaceStableID: "app:IA"}
	ref2 := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", SimpleName: "IB", InterfaceStableID: "app:IB"}
	cls := classType("app:Widget", "Widget", []*graph.TypeRef{ref1, ref2}, &graph.MemberBundle{})

	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{iface1, iface2, cls}}})
	bag := diagnostics.NewBag()
	pol := policy.Default()
	pol.Interfaces.DiamondResolution = graph.DiamondError

	DiamondResolver(g, pol, bag)
	if !bag.HasErrors() {
		t.Fatal("expected diamond conflict to record an error under error policy")
	}
}

func TestDiamondResolverOverloadAllPolicyNoFinding(t *testing.T) {
	iface1 := ifaceType("app:IA", "IA", methodMember("app:IA::M()->void", "M", nil))
	iface2 := ifaceType("app:IB", "IB", methodMember("app:IB::M()->bool", "M", namedRef("mscorlib", "System", "Boolean")))
	ref1 := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", SimpleName: "IA", InterfaceStableID: "app:IA"}
	ref2 := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", SimpleName: "IB", InterfaceStableID: "app:IB"}
	cls := classType("app:Widget", "Widget", []*graph.TypeRef{ref1, ref2}, &graph.MemberBundle{})

	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{iface1, iface2, cls}}})
	bag := diagnostics.NewBag()
	pol := policy.Default() // overload-all default

	DiamondResolver(g, pol, bag)
	if bag.HasErrors() || len(bag.Snapshot()) != 0 {
		t.Fatal("overload-all policy should record no findings")
	}
}

func TestBaseOverloadAdderCopiesUnsharedOverload(t *testing.T) {
	intRef := namedRef("mscorlib", "System", "Int32")
	strRef := namedRef("mscorlib", "System", "String")
	base := classType("app:Base", "Base", nil, &graph.MemberBundle{Methods: []*graph.Member{
		{StableID: "app:Base::M(Int32)->void", CLRName: "M", Kind: graph.MemberMethod, Params: []graph.Param{{Name: "x", Type: intRef}}, Provenance: graph.ProvenanceOriginal, EmitScope: graph.ScopeClassSurface},
	}})
	baseRef := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", SimpleName: "Base"}
	derived := classType("app:Derived", "Derived", nil, &graph.MemberBundle{Methods: []*graph.Member{
		{StableID: "app:Derived::M(String)->void", CLRName: "M", Kind: graph.MemberMethod, Params: []graph.Param{{Name: "s", Type: strRef}}, Provenance: graph.ProvenanceOriginal, EmitScope: graph.ScopeClassSurface},
	}})
	derived.BaseType = baseRef

	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{base, derived}}})
	out := BaseOverloadAdder(g)
	updated, _ := out.TypeByStableID("app:Derived")
	if len(updated.Members.Methods) != 2 {
		t.Fatalf("expected base overload copied onto derived, got %d methods", len(updated.Members.Methods))
	}
}

func TestOverloadReturnConflictDetectorFlagsDifferentReturns(t *testing.T) {
	cls := classType("app:Widget", "Widget", nil, &graph.MemberBundle{Methods: []*graph.Member{
		methodMember("app:Widget::M()->void", "M", nil),
		methodMember("app:Widget::M()->bool", "M", namedRef("mscorlib", "System", "Boolean")),
	}})
	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{cls}}})
	bag := diagnostics.NewBag()

	out := OverloadReturnConflictDetector(g, bag)
	if len(bag.Snapshot()) == 0 {
		t.Fatal("expected an overload-return-conflict finding")
	}
	updated, _ := out.TypeByStableID("app:Widget")
	var flagged int
	for _, m := range updated.Members.Methods {
		if m.Provenance == graph.ProvenanceOverloadReturnConflict {
			flagged++
		}
	}
	if flagged != 1 {
		t.Fatalf("expected exactly one member flagged, got %d", flagged)
	}
}

func TestMemberDeduplicatorCollapsesDuplicateStableIDs(t *testing.T) {
	m := methodMember("app:Widget::M()->void", "M", nil)
	cls := classType("app:Widget", "Widget", nil, &graph.MemberBundle{Methods: []*graph.Member{m, m}})
	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{cls}}})

	out := MemberDeduplicator(g)
	updated, _ := out.TypeByStableID("app:Widget")
	if len(updated.Members.Methods) != 1 {
		t.Fatalf("expected duplicate collapsed to 1, got %d", len(updated.Members.Methods))
	}
}

func TestViewPlannerGroupsByInterface(t *testing.T) {
	ifaceID := "app:IFoo"
	viewMember := propertyMember("app:IFoo::Bar->Object", "Bar", objectRef())
	viewMember.EmitScope = graph.ScopeViewOnly
	viewMember.SourceInterface = &graph.TypeRef{Kind: graph.RefNamed, InterfaceStableID: ifaceID}

	cls := classType("app:Widget", "Widget", nil, &graph.MemberBundle{Properties: []*graph.Member{viewMember}})
	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{cls}}})
	bag := diagnostics.NewBag()

	out := ViewPlanner(g, bag)
	updated, _ := out.TypeByStableID("app:Widget")
	if len(updated.Views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(updated.Views))
	}
	if updated.Views[0].SourceInterfaceStableID != ifaceID {
		t.Fatal("view grouped under wrong interface")
	}
}

func TestClassSurfaceDeduplicatorDemotesConcreteLoserToView(t *testing.T) {
	tref := &graph.TypeRef{Kind: graph.RefGenericParam, ParamName: "T"}
	genericWinner := propertyMember("app:Widget::Current->T", "Current", tref)
	concreteLoser := propertyMember("app:Widget::Current->Object", "Current", objectRef())
	concreteLoser.SourceInterface = &graph.TypeRef{Kind: graph.RefNamed, InterfaceStableID: "app:IEnumerator"}

	cls := classType("app:Widget", "Widget", nil, &graph.MemberBundle{Properties: []*graph.Member{genericWinner, concreteLoser}})
	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{cls}}})

	out := ClassSurfaceDeduplicator(g, rename.StyleCamel)
	updated, _ := out.TypeByStableID("app:Widget")
	if len(updated.Members.Properties) != 1 {
		t.Fatalf("expected 1 surviving surface property, got %d", len(updated.Members.Properties))
	}
	if updated.Members.Properties[0].StableID != genericWinner.StableID {
		t.Fatal("expected generic-parameterised property to win")
	}
	if len(updated.Views) != 1 || len(updated.Views[0].Members) != 1 {
		t.Fatal("expected loser demoted into a view")
	}
}

func TestIndexerPlannerConvertsMultipleIndexersToMethods(t *testing.T) {
	intRef := namedRef("mscorlib", "System", "Int32")
	idx1 := propertyMember("app:Widget::Item(Int32)->Object", "Item", objectRef())
	idx1.IndexParams = []graph.Param{{Name: "i", Type: intRef}}
	idx2 := propertyMember("app:Widget::Item(String)->Object", "Item", objectRef())
	idx2.IndexParams = []graph.Param{{Name: "k", Type: namedRef("mscorlib", "System", "String")}}

	cls := classType("app:Widget", "Widget", nil, &graph.MemberBundle{Properties: []*graph.Member{idx1, idx2}})
	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{cls}}})
	pol := policy.Default()

	out := IndexerPlanner(g, pol)
	updated, _ := out.TypeByStableID("app:Widget")
	if len(updated.Members.Properties) != 0 {
		t.Fatal("expected indexer properties removed")
	}
	if len(updated.Members.Methods) != 2 {
		t.Fatalf("expected 2 synthesised get_Item methods, got %d", len(updated.Members.Methods))
	}
}

func TestIndexerPlannerKeepsSingleIndexerByDefault(t *testing.T) {
	intRef := namedRef("mscorlib", "System", "Int32")
	idx1 := propertyMember("app:Widget::Item(Int32)->Object", "Item", objectRef())
	idx1.IndexParams = []graph.Param{{Name: "i", Type: intRef}}

	cls := classType("app:Widget", "Widget", nil, &graph.MemberBundle{Properties: []*graph.Member{idx1}})
	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{cls}}})
	pol := policy.Default()

	out := IndexerPlanner(g, pol)
	updated, _ := out.TypeByStableID("app:Widget")
	if len(updated.Members.Properties) != 1 {
		t.Fatal("expected single indexer kept as property")
	}
}

func TestStaticSideAnalyserAutoRenamesCollision(t *testing.T) {
	base := classType("app:Base", "Base", nil, &graph.MemberBundle{Methods: []*graph.Member{
		{StableID: "app:Base::Create()->void", CLRName: "Create", Kind: graph.MemberMethod, IsStatic: true, EmitScope: graph.ScopeClassSurface},
	}})
	baseRef := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", SimpleName: "Base"}
	derived := classType("app:Derived", "Derived", nil, &graph.MemberBundle{Methods: []*graph.Member{
		{StableID: "app:Derived::Create()->void", CLRName: "Create", Kind: graph.MemberMethod, IsStatic: true, EmitScope: graph.ScopeClassSurface},
	}})
	derived.BaseType = baseRef

	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{base, derived}}})
	r := rename.New()
	bag := diagnostics.NewBag()
	pol := policy.Default()
	pol.StaticSide.Action = graph.StaticSideAutoRename

	StaticSideAnalyser(g, r, pol, rename.StyleCamel, bag)
	final, ok := r.Lookup("app:Derived::Create()->void", rename.ClassScope("Derived", true))
	if !ok {
		t.Fatal("expected a rename decision for the colliding static member")
	}
	if final == "create" {
		t.Fatal("expected a suffixed name, not the unmodified collision")
	}
}

func TestConstraintCloserResolvesRawConstraint(t *testing.T) {
	cls := &graph.Type{
		StableID:    "app:Box",
		CLRFullName: "Box",
		Assembly:    "app",
		Kind:        graph.KindClass,
		Members:     &graph.MemberBundle{},
		GenericParams: []*graph.GenericParam{
			{Name: "T", Raw: []graph.RawConstraint{{StableID: "mscorlib:System.IComparable"}}},
		},
	}
	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{cls}}})
	bag := diagnostics.NewBag()
	pol := policy.Default()

	out := ConstraintCloser(g, pol, bag)
	updated, _ := out.TypeByStableID("app:Box")
	if len(updated.GenericParams[0].Constraints) != 1 {
		t.Fatal("expected raw constraint resolved into a TypeRef")
	}
	if updated.GenericParams[0].Constraints[0].SimpleName != "IComparable" {
		t.Fatalf("unexpected resolved constraint name: %q", updated.GenericParams[0].Constraints[0].SimpleName)
	}
}

func TestRunEndToEndDoesNotPanic(t *testing.T) {
	iface := ifaceType("app:IFoo", "IFoo", methodMember("app:IFoo::Bar()->void", "Bar", nil))
	ifaceRef := &graph.TypeRef{Kind: graph.RefNamed, Assembly: "app", SimpleName: "IFoo", InterfaceStableID: "app:IFoo"}
	cls := classType("app:Widget", "Widget", []*graph.TypeRef{ifaceRef}, &graph.MemberBundle{})

	g := graph.New([]*graph.Namespace{{Name: "", Types: []*graph.Type{iface, cls}}})
	r := rename.New()
	bag := diagnostics.NewBag()
	pol := policy.Default()

	out := Run(g, pol, r, bag)
	if out == nil {
		t.Fatal("expected a non-nil graph from Run")
	}
}
