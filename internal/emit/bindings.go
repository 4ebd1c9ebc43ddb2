package emit

import (
	"encoding/json"

	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/importplan"
)

// MemberBinding preserves one member's classification for the runtime
// binding sidecar — including omitted members, which do not appear in the
// declaration file but must still be reachable at runtime.
type MemberBinding struct {
	StableID   string `json:"stableId"`
	CLRName    string `json:"clrName"`
	EmitName   string `json:"emitName,omitempty"`
	Kind       string `json:"kind"`
	EmitScope  string `json:"emitScope"`
	Provenance string `json:"provenance"`
	IsStatic   bool   `json:"isStatic"`
}

// TypeBinding preserves one type's member bindings.
type TypeBinding struct {
	StableID    string          `json:"stableId"`
	CLRFullName string          `json:"clrFullName"`
	EmitName    string          `json:"emitName,omitempty"`
	Members     []MemberBinding `json:"members"`
}

// NamespaceBindings is the per-namespace binding sidecar document.
type NamespaceBindings struct {
	Namespace string        `json:"namespace"`
	Types     []TypeBinding `json:"types"`
}

// BuildNamespaceBindings walks ns's types (including nested types) in
// emission order and records every member's classification, regardless of
// emit scope.
func BuildNamespaceBindings(ns *graph.Namespace) NamespaceBindings {
	nb := NamespaceBindings{Namespace: ns.Name}
	for _, t := range importplan.OrderedTypes(ns) {
		appendTypeBindings(&nb, t)
	}
	return nb
}

func appendTypeBindings(nb *NamespaceBindings, t *graph.Type) {
	nb.Types = append(nb.Types, buildTypeBinding(t))
	for _, n := range t.Nested {
		appendTypeBindings(nb, n)
	}
}

func buildTypeBinding(t *graph.Type) TypeBinding {
	tb := TypeBinding{StableID: t.StableID, CLRFullName: t.CLRFullName}
	if t.EmitName != nil {
		tb.EmitName = *t.EmitName
	}
	for _, m := range importplan.OrderedMembers(t) {
		tb.Members = append(tb.Members, MemberBinding{
			StableID:   m.StableID,
			CLRName:    m.CLRName,
			EmitName:   m.EmitName,
			Kind:       string(m.Kind),
			EmitScope:  string(m.EmitScope),
			Provenance: string(m.Provenance),
			IsStatic:   m.IsStatic,
		})
	}
	for _, v := range t.Views {
		for _, m := range v.Members {
			tb.Members = append(tb.Members, MemberBinding{
				StableID:   m.StableID,
				CLRName:    m.CLRName,
				EmitName:   m.EmitName,
				Kind:       string(m.Kind),
				EmitScope:  string(m.EmitScope),
				Provenance: string(m.Provenance),
				IsStatic:   m.IsStatic,
			})
		}
	}
	return tb
}

// MarshalBindings renders nb as deterministic indented JSON.
func MarshalBindings(nb NamespaceBindings) ([]byte, error) {
	return json.MarshalIndent(nb, "", "  ")
}
