package emit

import (
	"strings"
	"testing"

	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/importplan"
)

func widget() *graph.Type {
	name := "Widget"
	return &graph.Type{
		StableID:      "app:Main.Widget",
		CLRFullName:   "Main.Widget",
		Assembly:      "app",
		Kind:          graph.KindClass,
		Accessibility: graph.AccessPublic,
		EmitName:      &name,
		Members: &graph.MemberBundle{
			Constructors: []*graph.Member{
				{StableID: "app:Main.Widget::.ctor()", CLRName: ".ctor", Kind: graph.MemberConstructor, Visibility: graph.AccessPublic, EmitScope: graph.ScopeClassSurface},
			},
			Methods: []*graph.Member{
				{
					StableID: "app:Main.Widget::Get()", CLRName: "Get", EmitName: "get", Kind: graph.MemberMethod,
					Visibility: graph.AccessPublic, EmitScope: graph.ScopeClassSurface,
					ReturnType: &graph.TypeRef{Kind: graph.RefNamed, Namespace: "", SimpleName: "string"},
				},
				{
					StableID: "app:Main.Widget::Hidden()", CLRName: "Hidden", EmitName: "hidden", Kind: graph.MemberMethod,
					Visibility: graph.AccessPublic, EmitScope: graph.ScopeOmitted,
				},
			},
		},
	}
}

func TestRenderInternalDeclRendersClassSurfaceButNotOmitted(t *testing.T) {
	g := graph.New([]*graph.Namespace{{Name: "Main", Types: []*graph.Type{widget()}}})
	rc := NewRenderContext(g, "Main", importplan.Aliases{})
	ns, _ := g.NamespaceByName("Main")
	out := RenderInternalDecl(rc, ns, nil)

	if !strings.Contains(out, "export declare class Widget") {
		t.Fatalf("expected class declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "get(): string;") {
		t.Fatalf("expected rendered method, got:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("omitted member must not appear in the declaration file, got:\n%s", out)
	}
}

func TestRenderFacadeReExportsInternalIndex(t *testing.T) {
	out := RenderFacade()
	if !strings.Contains(out, `export * from "./internal/index";`) {
		t.Fatalf("unexpected facade content: %q", out)
	}
}

func TestBuildNamespaceBindingsPreservesOmittedMembers(t *testing.T) {
	ns := &graph.Namespace{Name: "Main", Types: []*graph.Type{widget()}}
	nb := BuildNamespaceBindings(ns)
	if len(nb.Types) != 1 {
		t.Fatalf("expected 1 type binding, got %d", len(nb.Types))
	}
	found := false
	for _, m := range nb.Types[0].Members {
		if m.CLRName == "Hidden" {
			found = true
			if m.EmitScope != string(graph.ScopeOmitted) {
				t.Fatalf("expected omitted scope recorded, got %q", m.EmitScope)
			}
		}
	}
	if !found {
		t.Fatal("expected the omitted member to still be present in the binding sidecar")
	}
}

func TestMapFileSystemWriteFileRecordsContent(t *testing.T) {
	fs := MapFileSystem{}
	if err := fs.WriteFile("Main/internal/index.ts", []byte("export {}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(fs["Main/internal/index.ts"]) != "export {}" {
		t.Fatalf("unexpected content: %q", fs["Main/internal/index.ts"])
	}
	if got := fs.SortedPaths(); len(got) != 1 || got[0] != "Main/internal/index.ts" {
		t.Fatalf("unexpected sorted paths: %+v", got)
	}
}
