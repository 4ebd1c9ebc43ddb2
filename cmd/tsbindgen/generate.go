package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsbindgen/tsbindgen/internal/build"
	"github.com/tsbindgen/tsbindgen/internal/emit"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/reflectread"
	"gopkg.in/yaml.v3"
)

func runGenerate(args []string) {
	fset := flag.NewFlagSet("generate", flag.ExitOnError)
	out := fset.String("out", "./generated", "directory the TypeScript tree is written to")
	policyPath := fset.String("policy", "", "path to a policy YAML file (optional)")
	refsDir := fset.String("refs", "", "comma-separated directories to search for referenced assemblies")
	reflectCmd := fset.String("reflect-cmd", "", "executable that reflects over one assembly path per stdin line")
	diagnosticsOnly := fset.Bool("diagnostics-only", false, "stop after the phase gate, before emit")
	verbose := fset.Bool("verbose", false, "log debug-level build chatter")
	fset.Parse(args)

	if fset.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "%s: missing seed assembly path(s)\n", red("Error"))
		fmt.Println("Usage: tsbindgen generate [flags] <seed.dll> [more.dll ...]")
		fset.PrintDefaults()
		os.Exit(1)
	}
	if *reflectCmd == "" {
		fmt.Fprintf(os.Stderr, "%s: --reflect-cmd is required — tsbindgen does not read CLR metadata itself\n", red("Error"))
		os.Exit(1)
	}

	pol, err := loadPolicy(*policyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	var refDirs []string
	if *refsDir != "" {
		refDirs = strings.Split(*refsDir, ",")
	}

	log := build.NewLogger(os.Stderr, *verbose)
	cfg := build.Config{
		Seeds:  fset.Args(),
		Locate: locateInDirs(refDirs),
		Probe:  reflectread.Probe,
		AcquireReflector: func() (reflectread.Reflector, io.Closer, error) {
			return startSidecarReflector(*reflectCmd, nil)
		},
		Policy:          pol,
		FileSystem:      emit.OSFileSystem{Root: *out},
		Logger:          log,
		DiagnosticsOnly: *diagnosticsOnly,
	}

	fmt.Printf("%s Building closure and reflecting over %d seed assembl(ies)...\n", cyan("→"), len(cfg.Seeds))
	result, err := build.Run(cfg)
	if err != nil {
		var fatal *build.FatalError
		if errors.As(err, &fatal) {
			fmt.Fprintf(os.Stderr, "%s: %s phase stopped the build: %s\n", red("Error"), fatal.Phase, fatal.Reason)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		}
		if result.Summary.ErrorCount > 0 {
			fmt.Fprintf(os.Stderr, "%s %d error(s), %d warning(s) — see %s/diagnostics.txt\n",
				yellow("note:"), result.Summary.ErrorCount, result.Summary.WarningCount, *out)
		}
		os.Exit(1)
	}

	fmt.Printf("%s Wrote %d file(s) to %s\n", green("✓"), len(result.WrittenPaths), *out)
	if result.Summary.WarningCount > 0 {
		fmt.Printf("%s %d warning(s) — see %s/diagnostics.txt\n", yellow("note:"), result.Summary.WarningCount, *out)
	}
}

// loadPolicy reads a policy YAML file onto policy.Default(), so any field
// the file omits keeps its conservative default.
func loadPolicy(path string) (policy.Policy, error) {
	pol := policy.Default()
	if path == "" {
		return pol, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pol, fmt.Errorf("reading policy file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &pol); err != nil {
		return pol, fmt.Errorf("parsing policy file %s: %w", path, err)
	}
	return pol, nil
}

// locateInDirs returns an AssemblyLocator that walks dirs looking for a
// file named name.dll (case-insensitive), the way the BFS closure in
// internal/reflectread resolves an assembly name to candidate paths.
func locateInDirs(dirs []string) reflectread.AssemblyLocator {
	return func(name string) []string {
		var found []string
		want := strings.ToLower(name) + ".dll"
		for _, dir := range dirs {
			_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return nil
				}
				if strings.ToLower(d.Name()) == want {
					found = append(found, p)
				}
				return nil
			})
		}
		return found
	}
}
