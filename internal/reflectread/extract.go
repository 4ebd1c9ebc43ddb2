package reflectread

import (
	"fmt"
	"strings"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/stableid"
)

// Extract turns a set of reflected assemblies into an initial *graph.Graph:
// one namespace per distinct CLR namespace across every assembly, types in
// deterministic (assembly name, then declaration) order, effective
// accessibility already intersected with every enclosing type, compiler-
// generated types skipped, and declared-only member filtering applied.
func Extract(assemblies []ReflectedAssembly, bag *diagnostics.Bag) *graph.Graph {
	byNamespace := make(map[string][]*graph.Type)
	var namespaceOrder []string

	for _, asm := range assemblies {
		for _, rt := range asm.Types {
			if isCompilerGenerated(rt.CLRFullName) {
				continue
			}
			ns, _ := splitNamespace(rt.CLRFullName)
			t := convertType(asm.Identity.Name, rt, graph.AccessPublic, bag)
			if _, ok := byNamespace[ns]; !ok {
				namespaceOrder = append(namespaceOrder, ns)
			}
			byNamespace[ns] = append(byNamespace[ns], t)
		}
	}

	namespaces := make([]*graph.Namespace, 0, len(namespaceOrder))
	for _, ns := range namespaceOrder {
		namespaces = append(namespaces, &graph.Namespace{Name: ns, Types: byNamespace[ns]})
	}
	return graph.New(namespaces)
}

// isCompilerGenerated reports whether a CLR simple name carries the '<' or
// '>' markers the runtime uses for closures, iterator state machines, and
// other generated types that must never surface in a binding.
func isCompilerGenerated(clrFullName string) bool {
	return strings.ContainsAny(clrFullName, "<>")
}

func splitNamespace(clrFullName string) (namespace, simpleName string) {
	lastDot := -1
	for i := 0; i < len(clrFullName); i++ {
		if clrFullName[i] == '.' {
			lastDot = i
		}
		if clrFullName[i] == '`' {
			break
		}
	}
	if lastDot < 0 {
		return "", clrFullName
	}
	return clrFullName[:lastDot], clrFullName[lastDot+1:]
}

func convertType(assembly string, rt ReflectedType, enclosing graph.Accessibility, bag *diagnostics.Bag) *graph.Type {
	factory := NewFactory()
	stableID := stableid.Type(assembly, rt.CLRFullName)

	effective := narrower(enclosing, convertAccessibility(rt.Accessibility))

	t := &graph.Type{
		StableID:      stableID,
		CLRFullName:   rt.CLRFullName,
		Assembly:      assembly,
		Kind:          convertKind(rt),
		Accessibility: effective,
		IsAbstract:    rt.IsAbstract,
		IsSealed:      rt.IsSealed,
		IsValueType:   rt.IsValueType,
		IsStatic:      rt.IsStatic,
	}

	for _, gp := range rt.GenericParams {
		t.GenericParams = append(t.GenericParams, convertGenericParam(gp))
	}
	if rt.BaseType != nil {
		t.BaseType = factory.Convert(rt.BaseType)
	}
	for i := range rt.Interfaces {
		t.Interfaces = append(t.Interfaces, factory.Convert(&rt.Interfaces[i]))
	}

	bundle := &graph.MemberBundle{}
	seen := make(map[string]bool)
	addMember := func(m *graph.Member) {
		if seen[m.StableID] {
			bag.Error(diagnostics.LoadDuplicateMember,
				fmt.Sprintf("duplicate member stable id %s", m.StableID), stableID, m.StableID, "")
			return
		}
		seen[m.StableID] = true
		bundle = bundle.AppendByKind(m)
	}

	for _, rm := range rt.Constructors {
		addMember(convertMember(factory, assembly, rt.CLRFullName, graph.MemberConstructor, rm))
	}
	for _, rm := range rt.Fields {
		addMember(convertMember(factory, assembly, rt.CLRFullName, graph.MemberField, rm))
	}
	for _, rm := range rt.Properties {
		addMember(convertMember(factory, assembly, rt.CLRFullName, graph.MemberProperty, rm))
	}
	for _, rm := range rt.Events {
		addMember(convertMember(factory, assembly, rt.CLRFullName, graph.MemberEvent, rm))
	}
	for _, rm := range rt.Methods {
		if rm.IsAccessor {
			continue
		}
		addMember(convertMember(factory, assembly, rt.CLRFullName, graph.MemberMethod, rm))
	}
	t.Members = bundle

	for _, nested := range rt.Nested {
		if isCompilerGenerated(nested.CLRFullName) {
			continue
		}
		t.Nested = append(t.Nested, convertType(assembly, nested, effective, bag))
	}

	return t
}

func convertKind(rt ReflectedType) graph.TypeKind {
	switch rt.Kind {
	case ReflectedClass:
		if rt.IsStatic {
			return graph.KindStaticNamespace
		}
		return graph.KindClass
	case ReflectedStruct:
		return graph.KindStruct
	case ReflectedInterface:
		return graph.KindInterface
	case ReflectedEnum:
		return graph.KindEnum
	case ReflectedDelegate:
		return graph.KindDelegate
	default:
		return graph.KindClass
	}
}

func convertAccessibility(a ReflectedAccessibility) graph.Accessibility {
	switch a {
	case ReflectedPublic:
		return graph.AccessPublic
	case ReflectedProtected, ReflectedProtectedInternal:
		return graph.AccessProtected
	case ReflectedInternal:
		return graph.AccessInternal
	default:
		return graph.AccessPrivate
	}
}

// accessRank orders accessibility from least to most restrictive, so
// narrower can pick whichever of two levels is more restrictive —
// effective accessibility is the intersection with every enclosing type.
var accessRank = map[graph.Accessibility]int{
	graph.AccessPublic:    0,
	graph.AccessInternal:  1,
	graph.AccessProtected: 2,
	graph.AccessPrivate:   3,
}

func narrower(a, b graph.Accessibility) graph.Accessibility {
	if accessRank[a] >= accessRank[b] {
		return a
	}
	return b
}

func convertGenericParam(rg ReflectedGenericParam) *graph.GenericParam {
	gp := &graph.GenericParam{
		Name:     rg.Name,
		Position: rg.Position,
		Variance: convertVariance(rg.Variance),
		Special:  convertSpecial(rg.Special),
	}
	for _, rc := range rg.RawConstraints {
		gp.Raw = append(gp.Raw, convertRawConstraint(rc))
	}
	return gp
}

func convertRawConstraint(rc ReflectedRawConstraint) graph.RawConstraint {
	out := graph.RawConstraint{StableID: rc.StableID}
	for _, arg := range rc.TypeArguments {
		out.TypeArguments = append(out.TypeArguments, convertRawConstraint(arg))
	}
	return out
}

func convertVariance(v ReflectedVariance) graph.Variance {
	switch v {
	case ReflectedVarianceCovariant:
		return graph.VarianceCovariant
	case ReflectedVarianceContravariant:
		return graph.VarianceContravariant
	default:
		return graph.VarianceNone
	}
}

func convertSpecial(s ReflectedSpecialConstraint) graph.SpecialConstraint {
	var out graph.SpecialConstraint
	if s.Has(ReflectedConstraintReferenceType) {
		out |= graph.ConstraintReferenceType
	}
	if s.Has(ReflectedConstraintValueType) {
		out |= graph.ConstraintValueType
	}
	if s.Has(ReflectedConstraintDefaultConstructor) {
		out |= graph.ConstraintDefaultConstructor
	}
	if s.Has(ReflectedConstraintNotNullable) {
		out |= graph.ConstraintNotNullable
	}
	return out
}

func convertMember(factory *Factory, assembly, declaringClrFullName string, kind graph.MemberKind, rm ReflectedMember) *graph.Member {
	m := &graph.Member{
		CLRName:    rm.CLRName,
		Kind:       kind,
		Visibility: convertAccessibility(rm.Visibility),
		IsStatic:   rm.IsStatic,
		Provenance: graph.ProvenanceOriginal,
		EmitScope:  graph.ScopeUnspecified,
	}

	for _, p := range rm.Params {
		m.Params = append(m.Params, graph.Param{Name: p.Name, Type: factory.Convert(&p.Type), Modifier: convertParamModifier(p.Modifier)})
	}
	if rm.ReturnType != nil {
		m.ReturnType = factory.Convert(rm.ReturnType)
	}
	for _, gp := range rm.GenericParams {
		m.GenericParams = append(m.GenericParams, convertGenericParam(gp))
	}
	if rm.PropertyType != nil {
		m.PropertyType = factory.Convert(rm.PropertyType)
	}
	for _, p := range rm.IndexParams {
		m.IndexParams = append(m.IndexParams, graph.Param{Name: p.Name, Type: factory.Convert(&p.Type), Modifier: convertParamModifier(p.Modifier)})
	}
	m.HasGetter = rm.HasGetter
	m.HasSetter = rm.HasSetter
	m.SetterReadonly = rm.SetterReadonly
	if rm.FieldType != nil {
		m.FieldType = factory.Convert(rm.FieldType)
	}
	if rm.EventHandlerType != nil {
		m.EventHandlerType = factory.Convert(rm.EventHandlerType)
	}

	m.StableID = stableid.Member(assembly, declaringClrFullName, rm.CLRName, m.CanonicalSignature())
	return m
}

func convertParamModifier(m ReflectedParamModifier) graph.ParamModifier {
	switch m {
	case ReflectedParamIn:
		return graph.ParamIn
	case ReflectedParamOut:
		return graph.ParamOut
	case ReflectedParamRef:
		return graph.ParamRef
	case ReflectedParamParams:
		return graph.ParamParams
	default:
		return graph.ParamNone
	}
}
