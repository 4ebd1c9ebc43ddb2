package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/emit"
	"github.com/tsbindgen/tsbindgen/internal/importplan"
)

// inspectState is the data a generate run leaves behind that inspect can
// browse: the diagnostic summary/report, plus every namespace's binding
// sidecar (stable ids, CLR names, emit names, rename provenance) — the
// graph itself is never persisted, so browsing it after the fact means
// reading back what Emit already wrote, not re-loading build.Result.
type inspectState struct {
	dir     string
	summary diagnostics.Summary
	report  string
}

// runInspect opens a small interactive browser over a generate run's
// output directory, with readline history the way internal/repl.REPL.Start
// uses liner for AILANG's own REPL.
func runInspect(args []string) {
	fset := flag.NewFlagSet("inspect", flag.ExitOnError)
	dir := fset.String("dir", "./generated", "directory a previous generate run wrote to")
	fset.Parse(args)

	summary, err := loadSummary(filepath.Join(*dir, "summary.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	report, err := os.ReadFile(filepath.Join(*dir, "diagnostics.txt"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	state := inspectState{dir: *dir, summary: summary, report: string(report)}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCompleter(func(partial string) (c []string) {
		for _, cmd := range []string{":namespaces", ":types", ":members", ":summary", ":diagnostics", ":code", ":help", ":quit"} {
			if strings.HasPrefix(cmd, partial) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Printf("%s %s\n", bold("tsbindgen inspect"), dim(*dir))
	fmt.Println(dim("Type :help for commands, :quit to exit"))

	for {
		input, err := line.Prompt("tsbindgen> ")
		if err == io.EOF {
			fmt.Println(green("\nGoodbye!"))
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		handleInspectCommand(state, input)
	}
}

func handleInspectCommand(state inspectState, input string) {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":help", ":h":
		fmt.Println("Commands:")
		fmt.Println("  :namespaces          List every emitted namespace")
		fmt.Println("  :types <ns>          List a namespace's types (CLR name -> emit name)")
		fmt.Println("  :members <ns> <id>   List a type's members by CLR or stable id")
		fmt.Println("  :summary             Show error/warning/info counts")
		fmt.Println("  :diagnostics         Show the full diagnostics report")
		fmt.Println("  :code <CODE>         Show how many diagnostics were raised under CODE")
		fmt.Println("  :quit, :q            Exit")

	case ":namespaces":
		for _, ns := range listNamespaces(state.dir) {
			fmt.Println(" ", ns)
		}

	case ":types":
		if len(fields) < 2 {
			fmt.Println("Usage: :types <namespace>")
			return
		}
		nb, err := loadNamespaceBindings(state.dir, fields[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			return
		}
		for _, t := range nb.Types {
			fmt.Printf("  %s -> %s  %s\n", t.CLRFullName, emitNameOrDash(t.EmitName), dim(t.StableID))
		}

	case ":members":
		if len(fields) < 3 {
			fmt.Println("Usage: :members <namespace> <type-clr-name-or-stable-id>")
			return
		}
		nb, err := loadNamespaceBindings(state.dir, fields[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			return
		}
		t, ok := findType(nb, fields[2])
		if !ok {
			fmt.Printf("no type %q in namespace %q\n", fields[2], fields[1])
			return
		}
		for _, m := range t.Members {
			fmt.Printf("  %-24s %-10s %-8s scope=%-9s provenance=%s\n",
				m.CLRName, emitNameOrDash(m.EmitName), m.Kind, m.EmitScope, m.Provenance)
		}

	case ":summary":
		fmt.Printf("%s %d  %s %d  %s %d\n",
			red("errors:"), state.summary.ErrorCount,
			yellow("warnings:"), state.summary.WarningCount,
			cyan("info:"), state.summary.InfoCount)

	case ":diagnostics":
		fmt.Print(state.report)

	case ":code":
		if len(fields) < 2 {
			fmt.Println("Usage: :code <CODE>")
			return
		}
		fmt.Printf("%s: %d\n", fields[1], state.summary.Counts[fields[1]])

	case ":quit", ":q":
		fmt.Println(green("Goodbye!"))
		os.Exit(0)

	default:
		fmt.Printf("Unknown command: %s (try :help)\n", fields[0])
	}
}

// listNamespaces finds every namespace a generate run emitted by walking
// for internal/bindings.json sidecars and inverting importplan.DirFor.
func listNamespaces(dir string) []string {
	var out []string
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Base(p) != "bindings.json" {
			return nil
		}
		rel, err := filepath.Rel(dir, filepath.Dir(filepath.Dir(p)))
		if err != nil {
			return nil
		}
		out = append(out, dirToNamespace(rel))
		return nil
	})
	return out
}

func dirToNamespace(rel string) string {
	if rel == importplan.GlobalNamespaceDir {
		return "<global>"
	}
	return strings.ReplaceAll(rel, string(filepath.Separator), ".")
}

func loadNamespaceBindings(dir, namespace string) (emit.NamespaceBindings, error) {
	nsDir := importplan.DirFor(namespaceFromDisplay(namespace))
	path := filepath.Join(dir, nsDir, "internal", "bindings.json")
	var nb emit.NamespaceBindings
	data, err := os.ReadFile(path)
	if err != nil {
		return nb, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &nb); err != nil {
		return nb, fmt.Errorf("parsing %s: %w", path, err)
	}
	return nb, nil
}

func namespaceFromDisplay(namespace string) string {
	if namespace == "<global>" {
		return ""
	}
	return namespace
}

func findType(nb emit.NamespaceBindings, idOrName string) (emit.TypeBinding, bool) {
	for _, t := range nb.Types {
		if t.StableID == idOrName || t.CLRFullName == idOrName {
			return t, true
		}
	}
	return emit.TypeBinding{}, false
}

func emitNameOrDash(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

func loadSummary(path string) (diagnostics.Summary, error) {
	var s diagnostics.Summary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}
