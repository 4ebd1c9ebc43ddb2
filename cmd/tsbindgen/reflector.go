package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"

	"github.com/tsbindgen/tsbindgen/internal/reflectread"
)

// sidecarReflector implements reflectread.Reflector over a long-lived
// subprocess: write an assembly path on its stdin, read back one
// JSON-encoded line holding that assembly's reflected surface. This is
// the concrete shape the "reflection facility the host provides"
// takes here — a sidecar process kept alive for the whole
// run, not an in-process CLR host, so a reflector with real startup cost
// (loading the runtime, JIT warmup) pays it once rather than per
// assembly.
type sidecarReflector struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	reader *bufio.Reader
}

// startSidecarReflector starts command as a subprocess and returns a
// Reflector backed by it plus the io.Closer that shuts it down. This is
// Config.AcquireReflector's job: build.Run defers the Closer immediately
// after acquiring it.
func startSidecarReflector(command string, args []string) (reflectread.Reflector, io.Closer, error) {
	cmd := exec.Command(command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("starting reflector sidecar: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("starting reflector sidecar: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("starting reflector sidecar: %w", err)
	}
	r := &sidecarReflector{cmd: cmd, stdin: stdin, reader: bufio.NewReader(stdout)}
	return r, r, nil
}

func (r *sidecarReflector) Reflect(path string) (reflectread.ReflectedAssembly, error) {
	if _, err := fmt.Fprintln(r.stdin, path); err != nil {
		return reflectread.ReflectedAssembly{}, fmt.Errorf("requesting reflection for %s: %w", path, err)
	}
	line, err := r.reader.ReadBytes('\n')
	if err != nil {
		return reflectread.ReflectedAssembly{}, fmt.Errorf("reading reflection result for %s: %w", path, err)
	}
	var asm reflectread.ReflectedAssembly
	if err := json.Unmarshal(line, &asm); err != nil {
		return reflectread.ReflectedAssembly{}, fmt.Errorf("decoding reflection result for %s: %w", path, err)
	}
	return asm, nil
}

// Close closes the sidecar's stdin, which signals end-of-input, then
// waits for it to exit.
func (r *sidecarReflector) Close() error {
	_ = r.stdin.Close()
	return r.cmd.Wait()
}
