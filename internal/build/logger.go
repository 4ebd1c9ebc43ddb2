// Package build wires every phase of the pipeline — Load, Shape, Name
// Reservation, the overload unifier, the import graph & emit order
// planner, the Phase Gate, and Emit — into one entry point.
package build

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Level tags a log line's severity, mirroring the diagnostics package's
// own Severity vocabulary so Load-phase chatter and graph diagnostics
// read the same way in a terminal.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Logger is the build's own lightweight, level-tagged writer — the same
// shape cmd/ailang uses for its terminal output, generalised to take an
// io.Writer instead of hard-coding stdout so tests can capture it.
type Logger struct {
	w       io.Writer
	verbose bool

	debug *color.Color
	info  *color.Color
	warn  *color.Color
	errc  *color.Color
}

// NewLogger builds a Logger writing to w. Debug lines are only written
// when verbose is true; every other level always writes.
func NewLogger(w io.Writer, verbose bool) *Logger {
	return &Logger{
		w:       w,
		verbose: verbose,
		debug:   color.New(color.FgCyan),
		info:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		errc:    color.New(color.FgRed, color.Bold),
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.emit(l.debug, LevelDebug, format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.emit(l.info, LevelInfo, format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.emit(l.warn, LevelWarn, format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.emit(l.errc, LevelError, format, args...)
}

func (l *Logger) emit(c *color.Color, lvl Level, format string, args ...interface{}) {
	tag := c.Sprintf("[%s]", lvl)
	fmt.Fprintf(l.w, "%s %s\n", tag, fmt.Sprintf(format, args...))
}
