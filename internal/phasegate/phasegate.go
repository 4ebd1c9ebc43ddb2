// Package phasegate implements Phase Gate: the single
// validation step immediately before Emit. Its invariants are the contract
// Emit relies upon — if any rule records an ERROR-severity finding, the
// build reports failure and Emit never runs.
package phasegate

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// Rule is one named Phase Gate check. Rules are grouped into files by
// category and concatenated by Run in a fixed order.
type Rule struct {
	Name  string
	Check func(g *graph.Graph, rn *rename.Renamer, pol policy.Policy, bag *diagnostics.Bag)
}

// Run executes every rule family, in file order, against the fully
// Shaped, reserved, unified, and planned graph, and returns the
// machine-readable summary written alongside the human-readable
// diagnostic file.
func Run(g *graph.Graph, rn *rename.Renamer, pol policy.Policy, bag *diagnostics.Bag) diagnostics.Summary {
	for _, r := range allRules() {
		r.Check(g, rn, pol, bag)
	}
	return bag.BuildSummary()
}

func allRules() []Rule {
	var all []Rule
	all = append(all, finalisationRules...)
	all = append(all, namingRules...)
	all = append(all, viewRules...)
	all = append(all, scopeRules...)
	all = append(all, typerefRules...)
	all = append(all, importRules...)
	all = append(all, constraintRules...)
	all = append(all, overloadRules...)
	all = append(all, policyRules...)
	return all
}

// allTypesRecursive returns every type in g, including types nested inside
// other types — graph.Graph.AllTypes only returns top-level declarations.
func allTypesRecursive(g *graph.Graph) []*graph.Type {
	var out []*graph.Type
	for _, t := range g.AllTypes() {
		out = append(out, t)
		out = append(out, nestedRecursive(t)...)
	}
	return out
}

func nestedRecursive(t *graph.Type) []*graph.Type {
	var out []*graph.Type
	for _, n := range t.Nested {
		out = append(out, n)
		out = append(out, nestedRecursive(n)...)
	}
	return out
}

// memberLookupScope returns the surface scope a non-omitted member's
// rename decision lives in: view scope for view-only members, class scope
// otherwise.
func memberLookupScope(t *graph.Type, m *graph.Member) rename.Scope {
	if m.EmitScope == graph.ScopeViewOnly && m.SourceInterface != nil {
		return rename.ViewScope(t.StableID, m.SourceInterface.InterfaceStableID, m.IsStatic)
	}
	return rename.ClassScope(t.CLRFullName, m.IsStatic)
}

func staticKey(static bool) string {
	if static {
		return "static"
	}
	return "instance"
}

// walkMemberRefs applies fn to every type reference reachable from m's
// signature: parameters, return type, property/field/event-handler type,
// index parameters, and generic constraints.
func walkMemberRefs(m *graph.Member, fn func(*graph.TypeRef)) {
	for _, p := range m.Params {
		p.Type.WalkTypeArguments(fn)
	}
	if m.ReturnType != nil {
		m.ReturnType.WalkTypeArguments(fn)
	}
	if m.PropertyType != nil {
		m.PropertyType.WalkTypeArguments(fn)
	}
	if m.FieldType != nil {
		m.FieldType.WalkTypeArguments(fn)
	}
	if m.EventHandlerType != nil {
		m.EventHandlerType.WalkTypeArguments(fn)
	}
	for _, p := range m.IndexParams {
		p.Type.WalkTypeArguments(fn)
	}
	for _, gp := range m.GenericParams {
		for _, c := range gp.Constraints {
			c.WalkTypeArguments(fn)
		}
	}
}
