package phasegate

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/importplan"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/rename"
)

// constraintRules confirm the constraint auditor's findings actually made
// it into the bag, and flag any remaining unrepresentable or conflicting
// special constraint combination the Constraint Closer should already have
// resolved.
var constraintRules = []Rule{
	{Name: "constraints/constructor-constraint-audit-recorded", Check: checkConstructorConstraintAuditRecorded},
	{Name: "constraints/no-conflicting-special-constraints", Check: checkNoConflictingSpecialConstraints},
}

func checkConstructorConstraintAuditRecorded(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	importplan.AuditConstructorConstraintLoss(g, bag)
}

func checkNoConflictingSpecialConstraints(g *graph.Graph, _ *rename.Renamer, _ policy.Policy, bag *diagnostics.Bag) {
	for _, t := range allTypesRecursive(g) {
		checkGenericParams(t.StableID, t.CLRFullName, t.GenericParams, bag)
		for _, m := range t.AllMembers() {
			checkGenericParams(m.StableID, t.CLRFullName+"::"+m.CLRName, m.GenericParams, bag)
		}
	}
}

func checkGenericParams(stableID, owner string, params []*graph.GenericParam, bag *diagnostics.Bag) {
	for _, gp := range params {
		if gp.Special.Has(graph.ConstraintReferenceType) && gp.Special.Has(graph.ConstraintValueType) {
			bag.Error(diagnostics.CTConflictingSpecialConstraints,
				"generic parameter \""+gp.Name+"\" of \""+owner+"\" demands both class and struct",
				stableID, "", "")
		}
	}
}
