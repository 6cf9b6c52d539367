// Package util collects small helpers shared by the code generator and
// driver: a buffered text writer and a generic stack, both adapted from
// the teacher's util package by dropping the channel/mutex plumbing that
// existed there to synchronize concurrent worker goroutines — this
// compiler runs single-threaded end to end, so a plain strings.Builder and
// an unsynchronized slice do the same job with less ceremony.
package util

import (
	"fmt"
	"strings"
)

// Writer buffers emitted text. Unlike the teacher's Writer, which flushes
// through a channel to a listener goroutine, this one is handed to its
// caller directly via String once generation is done.
type Writer struct {
	sb strings.Builder
}

// Write appends a formatted line's worth of text to the buffer.
func (w *Writer) Write(format string, args ...interface{}) {
	fmt.Fprintf(&w.sb, format, args...)
}

// WriteString appends s verbatim.
func (w *Writer) WriteString(s string) {
	w.sb.WriteString(s)
}

// Label writes a one-line LLVM basic-block label.
func (w *Writer) Label(name string) {
	fmt.Fprintf(&w.sb, "%s:\n", name)
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.sb.String()
}

// Reset empties the buffer for reuse across functions.
func (w *Writer) Reset() {
	w.sb.Reset()
}
