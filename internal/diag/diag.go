// Package diag implements the compiler's single diagnostics sink.
//
// DESIGN PHILOSOPHY:
// Name analysis and type checking report problems the same way: a (line,
// column, message) triple appended to a shared sink, never an ad-hoc Go
// error value threaded back up the call stack. The parser does not use the
// sink; ParseProgram returns its syntax errors as a []error, which
// cmd/minic prints on its own path. This keeps the name analyzer and
// type checker free to keep walking sibling nodes after a fault instead of
// unwinding, which is what §4.2/§4.3 require ("the walk continues into
// siblings").
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Diagnostic is one fatal reported against a source position.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Sink collects diagnostics in report order. It is not safe for concurrent
// use — the whole pipeline is single-threaded per compilation unit.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Fatal records a diagnostic at the given position.
func (s *Sink) Fatal(line, col int, format string, args ...interface{}) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	})
}

// Errors returns every diagnostic recorded so far, in report order.
func (s *Sink) Errors() []Diagnostic {
	return s.diagnostics
}

// HasErrors reports whether any diagnostic has been recorded.
func (s *Sink) HasErrors() bool {
	return len(s.diagnostics) > 0
}

var fatalColor = color.New(color.FgRed, color.Bold)

// Render writes every diagnostic to w, one per line, bold red when the
// destination is a terminal (color.NoColor, which fatih/color sets
// automatically for non-tty output or $NO_COLOR, makes this plain text).
func (s *Sink) Render(w io.Writer) {
	for _, d := range s.diagnostics {
		fatalColor.Fprintf(w, "error: %s\n", d.String())
	}
}
