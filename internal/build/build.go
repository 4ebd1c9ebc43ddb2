package build

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tsbindgen/tsbindgen/internal/diagnostics"
	"github.com/tsbindgen/tsbindgen/internal/emit"
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/importplan"
	"github.com/tsbindgen/tsbindgen/internal/overload"
	"github.com/tsbindgen/tsbindgen/internal/phasegate"
	"github.com/tsbindgen/tsbindgen/internal/policy"
	"github.com/tsbindgen/tsbindgen/internal/reflectread"
	"github.com/tsbindgen/tsbindgen/internal/rename"
	"github.com/tsbindgen/tsbindgen/internal/reservation"
	"github.com/tsbindgen/tsbindgen/internal/shape"
)

// ReflectorFactory acquires the Reflector resource — typically a handle
// onto a live CLR host process — and a closer to release it. Load never
// opens the resource itself; Run owns its lifetime end to end.
type ReflectorFactory func() (reflectread.Reflector, io.Closer, error)

// Config is everything Run needs to turn a set of seed assembly paths
// into a rendered TypeScript tree, a single Config-plus-Source-style
// entry point for the whole pipeline.
type Config struct {
	Seeds            []string
	Locate           reflectread.AssemblyLocator
	Probe            func(path string) (reflectread.ProbeResult, error)
	AcquireReflector ReflectorFactory
	Policy           policy.Policy
	FileSystem       emit.FileSystem
	Logger           *Logger

	// DiagnosticsOnly skips Emit entirely once the Phase Gate has run —
	// used by the CLI's dry-run mode.
	DiagnosticsOnly bool
}

// Result carries the artifacts a caller might want plus a PhaseTimings
// breakdown for profiling a run.
type Result struct {
	Graph        *graph.Graph
	Unresolved   reflectread.UnresolvedSet
	Diagnostics  *diagnostics.Bag
	Summary      diagnostics.Summary
	WrittenPaths []string
	PhaseTimings map[string]int64 // milliseconds
}

// FatalError reports a condition that stops the build before Emit:
// a missing core library (from Load), or any error-severity diagnostic
// in the bag once the Phase Gate has run (a placeholder type reference
// surviving to the Phase Gate is one such error).
type FatalError struct {
	Phase  string
	Reason string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Reason)
}

// Run executes the full pipeline: Load, Shape, Name Reservation, the
// overload unifier, the import graph & emit order planner, the Phase
// Gate, and Emit, in that order, short-circuiting on the first fatal
// condition.
//
// The Reflector resource is acquired before Load and released, via
// defer, after Emit runs or on any early return — single-entry/single-
// exit resource scoping for the one external collaborator Run owns.
func Run(cfg Config) (Result, error) {
	result := Result{PhaseTimings: map[string]int64{}}
	bag := diagnostics.NewBag()
	result.Diagnostics = bag
	log := cfg.Logger

	refl, closer, err := cfg.AcquireReflector()
	if err != nil {
		return result, fmt.Errorf("acquiring reflector: %w", err)
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			log.Warnf("releasing reflector: %v", cerr)
		}
	}()

	start := time.Now()
	log.Infof("load: probing %d seed assembl(ies)", len(cfg.Seeds))
	g, unresolved, err := reflectread.Read(cfg.Seeds, cfg.Locate, cfg.Probe, refl, cfg.Policy, bag)
	result.PhaseTimings["load"] = time.Since(start).Milliseconds()
	if err != nil {
		var fatal *reflectread.FatalError
		if errors.As(err, &fatal) {
			log.Errorf("load: %v", fatal)
			return result, &FatalError{Phase: "load", Reason: fatal.Error()}
		}
		return result, fmt.Errorf("load: %w", err)
	}
	result.Unresolved = unresolved
	for name := range unresolved {
		log.Debugf("load: unresolved reference %q", name)
	}

	rn := rename.New()

	start = time.Now()
	g = shape.Run(g, cfg.Policy, rn, bag)
	result.PhaseTimings["shape"] = time.Since(start).Milliseconds()
	log.Debugf("shape: %d namespace(s) after rewriting", len(g.Namespaces()))

	start = time.Now()
	g = reservation.Reserve(g, rn, cfg.Policy, bag)
	result.PhaseTimings["reservation"] = time.Since(start).Milliseconds()

	start = time.Now()
	g = overload.Unify(g, bag)
	result.PhaseTimings["overload"] = time.Since(start).Milliseconds()

	start = time.Now()
	refs := importplan.BuildReferenceGraph(g, bag)
	aliases := importplan.AssignAliases(g, refs)
	importplan.AuditConstructorConstraintLoss(g, bag)
	result.PhaseTimings["importplan"] = time.Since(start).Milliseconds()

	start = time.Now()
	result.Summary = phasegate.Run(g, rn, cfg.Policy, bag)
	result.PhaseTimings["phasegate"] = time.Since(start).Milliseconds()
	result.Graph = g

	if bag.HasErrors() {
		log.Errorf("phase gate: %d error(s), stopping before emit", result.Summary.ErrorCount)
		if cfg.FileSystem != nil {
			report := emit.RenderDiagnosticsReport(bag)
			summary, serr := emit.RenderSummaryJSON(bag)
			if err := cfg.FileSystem.WriteFile("diagnostics.txt", []byte(report)); err == nil {
				result.WrittenPaths = append(result.WrittenPaths, "diagnostics.txt")
			}
			if serr == nil && cfg.FileSystem.WriteFile("summary.json", summary) == nil {
				result.WrittenPaths = append(result.WrittenPaths, "summary.json")
			}
		}
		return result, &FatalError{Phase: "phasegate", Reason: "phase gate reported errors"}
	}

	if cfg.DiagnosticsOnly {
		log.Infof("diagnostics-only: skipping emit")
		return result, nil
	}

	start = time.Now()
	written, err := emitAll(g, refs, aliases, cfg.FileSystem, bag, log)
	result.PhaseTimings["emit"] = time.Since(start).Milliseconds()
	result.WrittenPaths = written
	if err != nil {
		return result, fmt.Errorf("emit: %w", err)
	}

	return result, nil
}

// emitAll renders and writes every namespace's internal declaration
// file, façade, runtime binding stub, and binding metadata, plus the
// build-wide diagnostics report and machine-readable summary.
func emitAll(g *graph.Graph, refs map[string][]importplan.CrossNamespaceRef, aliases importplan.Aliases, fs emit.FileSystem, bag *diagnostics.Bag, log *Logger) ([]string, error) {
	var written []string

	write := func(path string, content []byte) error {
		if err := fs.WriteFile(path, content); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	for _, ns := range importplan.OrderedNamespaces(g) {
		dir := importplan.DirFor(ns.Name)
		rc := emit.NewRenderContext(g, ns.Name, aliases)

		decl := emit.RenderInternalDecl(rc, ns, refs[ns.Name])
		if err := write(dir+"/internal/index.ts", []byte(decl)); err != nil {
			return written, err
		}

		facade := emit.RenderFacade()
		if err := write(dir+"/index.ts", []byte(facade)); err != nil {
			return written, err
		}

		stub := emit.RenderRuntimeStub(ns)
		if err := write(dir+"/internal/runtime.js", []byte(stub)); err != nil {
			return written, err
		}

		nb := emit.BuildNamespaceBindings(ns)
		blob, err := emit.MarshalBindings(nb)
		if err != nil {
			return written, fmt.Errorf("marshalling bindings for %s: %w", ns.Name, err)
		}
		if err := write(dir+"/internal/bindings.json", blob); err != nil {
			return written, err
		}

		log.Debugf("emit: wrote namespace %q to %s", ns.Name, dir)
	}

	report := emit.RenderDiagnosticsReport(bag)
	if err := write("diagnostics.txt", []byte(report)); err != nil {
		return written, err
	}

	summary, err := emit.RenderSummaryJSON(bag)
	if err != nil {
		return written, fmt.Errorf("rendering summary: %w", err)
	}
	if err := write("summary.json", summary); err != nil {
		return written, err
	}

	stats, err := MarshalShapeStats(BuildShapeStats(g))
	if err != nil {
		return written, fmt.Errorf("rendering shape stats: %w", err)
	}
	if err := write("shape-stats.json", stats); err != nil {
		return written, err
	}

	return written, nil
}
