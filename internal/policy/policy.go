// Package policy defines the Policy data contract: the JSON document that
// parameterises every Shape rewrite. Reading a policy file from disk (flag
// parsing, file I/O) is an external collaborator — this package owns only
// the data shape and sane defaults.
package policy

import "github.com/tsbindgen/tsbindgen/internal/graph"

// Policy mirrors the documented JSON schema field-for-field.
type Policy struct {
	SkipNamespaces []string          `json:"skipNamespaces" yaml:"skipNamespaces"`
	TypeRenames    map[string]string `json:"typeRenames" yaml:"typeRenames"`
	SkipMembers    []string          `json:"skipMembers" yaml:"skipMembers"`

	Interfaces InterfacesPolicy `json:"interfaces" yaml:"interfaces"`
	Indexers   IndexersPolicy   `json:"indexers" yaml:"indexers"`
	Classes    ClassesPolicy    `json:"classes" yaml:"classes"`
	StaticSide StaticSidePolicy `json:"staticSide" yaml:"staticSide"`
	Constraints ConstraintsPolicy `json:"constraints" yaml:"constraints"`
	Modules    ModulesPolicy    `json:"modules" yaml:"modules"`
	Safety     SafetyPolicy     `json:"safety" yaml:"safety"`
	Validation ValidationPolicy `json:"validation" yaml:"validation"`
	Naming     NamingPolicy     `json:"naming" yaml:"naming"`
}

// InterfacesPolicy configures the diamond resolver.
type InterfacesPolicy struct {
	DiamondResolution graph.DiamondResolution `json:"diamondResolution" yaml:"diamondResolution"`
}

// IndexersPolicy configures the indexer planner.
type IndexersPolicy struct {
	EmitPropertyWhenSingle bool   `json:"emitPropertyWhenSingle" yaml:"emitPropertyWhenSingle"`
	MethodName             string `json:"methodName" yaml:"methodName"`
}

// ClassesPolicy configures the hidden-member planner.
type ClassesPolicy struct {
	HiddenMemberSuffix string `json:"hiddenMemberSuffix" yaml:"hiddenMemberSuffix"`
}

// StaticSidePolicy configures the static-side analyser.
type StaticSidePolicy struct {
	Action graph.StaticSideAction `json:"action" yaml:"action"`
}

// ConstraintsPolicy configures the constraint closer.
type ConstraintsPolicy struct {
	MergeStrategy graph.ConstraintMergeStrategy `json:"mergeStrategy" yaml:"mergeStrategy"`
}

// ModulesPolicy configures the import/emit-order planner.
type ModulesPolicy struct {
	AlwaysAliasImports bool `json:"alwaysAliasImports" yaml:"alwaysAliasImports"`
}

// SafetyPolicy configures unsafe-construct handling.
type SafetyPolicy struct {
	RequireUnsafeMarkers bool `json:"requireUnsafeMarkers" yaml:"requireUnsafeMarkers"`
}

// ValidationPolicy configures the reflection reader's identity validation.
type ValidationPolicy struct {
	StrictVersionChecks bool `json:"strictVersionChecks" yaml:"strictVersionChecks"`
}

// NamingPolicy configures the Renamer's style transform.
type NamingPolicy struct {
	TypeStyle   string `json:"typeStyle" yaml:"typeStyle"`     // pascal|preserve
	MemberStyle string `json:"memberStyle" yaml:"memberStyle"` // camel|preserve
}

// Default returns the policy this pipeline applies when no document is
// supplied: conservative, no renames or skips, intersection-merge
// constraints, Pascal type names, camel member names.
func Default() Policy {
	return Policy{
		SkipNamespaces: nil,
		TypeRenames:    map[string]string{},
		SkipMembers:    nil,
		Interfaces:     InterfacesPolicy{DiamondResolution: graph.DiamondOverloadAll},
		Indexers:       IndexersPolicy{EmitPropertyWhenSingle: true, MethodName: "Item"},
		Classes:        ClassesPolicy{HiddenMemberSuffix: "_new"},
		StaticSide:     StaticSidePolicy{Action: graph.StaticSideAnalyse},
		Constraints:    ConstraintsPolicy{MergeStrategy: graph.MergeIntersection},
		Modules:        ModulesPolicy{AlwaysAliasImports: false},
		Safety:         SafetyPolicy{RequireUnsafeMarkers: true},
		Validation:     ValidationPolicy{StrictVersionChecks: false},
		Naming:         NamingPolicy{TypeStyle: "pascal", MemberStyle: "camel"},
	}
}

// SkipsNamespace reports whether ns is configured to be skipped entirely.
func (p Policy) SkipsNamespace(ns string) bool {
	for _, s := range p.SkipNamespaces {
		if s == ns {
			return true
		}
	}
	return false
}

// SkipsMember reports whether a member stable id is configured to be
// skipped.
func (p Policy) SkipsMember(memberStableID string) bool {
	for _, s := range p.SkipMembers {
		if s == memberStableID {
			return true
		}
	}
	return false
}
