// Package diag collects and renders compiler diagnostics. It is the Go
// counterpart of original_source's ErrorHandler: an ordered, immutable-once-
// appended list of CompilerError-shaped entries, plus the same
// "severity in FILE at line L, column C: MESSAGE" rendering. Unlike the
// teacher's util/perror (a channel-and-mutex sink for a multi-threaded
// optimiser), the compiler described here is single-threaded end to end
// (spec §5), so Collector needs no synchronization of its own.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Severity classifies a diagnostic. Only Error and Fatal count toward
// hasErrors.
type Severity int

const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal Error"
	default:
		return "Unknown"
	}
}

// Location pinpoints where a diagnostic was raised.
type Location struct {
	Line     int
	Column   int
	Filename string
}

// Diagnostic is one immutable entry in a Collector, carrying a snapshot of
// the offending source line for context display.
type Diagnostic struct {
	Severity Severity
	Location Location
	Message  string
	Context  string // The source line the diagnostic refers to, or "".
}

// Collector accumulates Diagnostics in insertion order and renders them.
// It holds the split source lines of the file currently being diagnosed so
// Append can snapshot context without the caller re-slicing the source.
type Collector struct {
	Filename string
	lines    []string
	entries  []Diagnostic
}

// NewCollector returns a Collector for a source file, splitting the source
// into lines once up front for fast context lookups.
func NewCollector(filename, source string) *Collector {
	return &Collector{
		Filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

func (c *Collector) sourceLine(line int) string {
	if line >= 1 && line <= len(c.lines) {
		return c.lines[line-1]
	}
	return ""
}

// Append records a new diagnostic at the given severity and position.
func (c *Collector) Append(sev Severity, line, column int, message string) {
	c.entries = append(c.entries, Diagnostic{
		Severity: sev,
		Location: Location{Line: line, Column: column, Filename: c.Filename},
		Message:  message,
		Context:  c.sourceLine(line),
	})
}

// Warning records a Warning-severity diagnostic.
func (c *Collector) Warning(line, column int, message string) {
	c.Append(Warning, line, column, message)
}

// Error records an Error-severity diagnostic.
func (c *Collector) Error(line, column int, message string) {
	c.Append(Error, line, column, message)
}

// Fatal records a Fatal-severity diagnostic.
func (c *Collector) Fatal(line, column int, message string) {
	c.Append(Fatal, line, column, message)
}

// HasErrors reports whether any entry is Error severity or worse.
func (c *Collector) HasErrors() bool {
	for _, e := range c.entries {
		if e.Severity >= Error {
			return true
		}
	}
	return false
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	return len(c.entries)
}

// Entries returns the recorded diagnostics in insertion order.
func (c *Collector) Entries() []Diagnostic {
	return c.entries
}

// severityColor picks the fatih/color printer for a severity; disabled
// automatically by the color package when stderr isn't a terminal.
func severityColor(sev Severity) *color.Color {
	switch sev {
	case Warning:
		return color.New(color.FgYellow)
	case Fatal:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgRed)
	}
}

// PrintErrors writes every recorded diagnostic to w in the fixed format:
//
//	Severity in FILE at line L, column C: MESSAGE
//	  <source line>
//	  <spaces>^
func (c *Collector) PrintErrors(w io.Writer) {
	for _, e := range c.entries {
		c.printOne(w, e)
	}
}

func (c *Collector) printOne(w io.Writer, e Diagnostic) {
	label := severityColor(e.Severity).Sprint(e.Severity.String())
	if e.Location.Filename != "" {
		fmt.Fprintf(w, "%s in %s at line %d, column %d: %s\n", label, e.Location.Filename, e.Location.Line, e.Location.Column, e.Message)
	} else {
		fmt.Fprintf(w, "%s at line %d, column %d: %s\n", label, e.Location.Line, e.Location.Column, e.Message)
	}
	if e.Context != "" {
		fmt.Fprintf(w, "  %s\n", e.Context)
		col := e.Location.Column
		if col < 1 {
			col = 1
		}
		fmt.Fprintf(w, "  %s^\n", strings.Repeat(" ", col-1))
	}
}
