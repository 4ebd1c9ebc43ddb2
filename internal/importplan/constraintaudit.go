package importplan

import (
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/graph"
)

// AuditConstructorConstraintLoss records a finding for every
// (implementing-type, implemented-interface) pair where the interface
// carries a generic parameter with the default-constructor special
// constraint: the target cannot encode `new()`, and the binding sidecar
// must preserve the fact for the consumer.
func AuditConstructorConstraintLoss(g *graph.Graph, bag *diagnostics.Bag) {
	for _, t := range g.AllTypes() {
		auditOne(g, t, bag)
	}
}

func auditOne(g *graph.Graph, t *graph.Type, bag *diagnostics.Bag) {
	for _, ifaceRef := range t.Interfaces {
		iface, ok := g.TypeByStableID(ifaceRef.StableID())
		if !ok {
			continue
		}
		for _, gp := range iface.GenericParams {
			if gp.Special.Has(graph.ConstraintDefaultConstructor) {
				bag.Warning(diagnostics.CTConstructorConstraintLoss,
					"type \""+t.CLRFullName+"\" implements \""+iface.CLRFullName+"\" whose generic parameter \""+gp.Name+"\" carries a new() constraint the target cannot encode",
					t.StableID, "", "")
			}
		}
	}
	for _, n := range t.Nested {
		auditOne(g, n, bag)
	}
}
