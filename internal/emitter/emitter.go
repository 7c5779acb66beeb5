// Package emitter implements the textual assembly output stage: label
// allocation, the string-literal pool, and final section assembly.
//
// Grounded on the smasonuk-sicpu reference generator's newLabel/
// newStringLabel monotonic counters and line()/comment() helpers, kept
// as a standalone package here since §4.5 treats emission as its own
// component, separate from the code generator that decides what to emit.
package emitter

import (
	"fmt"
	"strings"
)

// Emitter accumulates a MIPS-style assembly program: a .data segment
// (global variables and interned strings) and a .text segment (function
// bodies), assembled into one stream on demand.
type Emitter struct {
	text strings.Builder

	nextLabel int

	globals []string

	// stringPool dedups string literals on their exact value (§4.5); the
	// slice preserves first-seen order so output is deterministic.
	stringPool  map[string]string
	stringOrder []string
}

// New returns an empty emitter.
func New() *Emitter {
	return &Emitter{stringPool: make(map[string]string)}
}

// NewLabel returns the next monotonic label: L0, L1, L2, ...
func (e *Emitter) NewLabel() string {
	l := fmt.Sprintf("L%d", e.nextLabel)
	e.nextLabel++
	return l
}

// StringLabel interns s into the string pool, returning its label. A
// second call with the same exact value returns the label already
// assigned rather than emitting a duplicate .asciiz entry.
func (e *Emitter) StringLabel(s string) string {
	if label, ok := e.stringPool[s]; ok {
		return label
	}
	label := fmt.Sprintf("_str%d", len(e.stringPool))
	e.stringPool[s] = label
	e.stringOrder = append(e.stringOrder, s)
	return label
}

// Global declares a word-sized global in the .data segment — every type
// occupies a single word, per §4.4 ("structs are not lowered").
func (e *Emitter) Global(name string) {
	for _, g := range e.globals {
		if g == name {
			return
		}
	}
	e.globals = append(e.globals, name)
}

// Label writes a bare label line (no indentation) into the text segment.
func (e *Emitter) Label(name string) {
	fmt.Fprintf(&e.text, "%s:\n", name)
}

// Emit writes one indented instruction line into the text segment.
func (e *Emitter) Emit(format string, args ...interface{}) {
	fmt.Fprintf(&e.text, "\t%s\n", fmt.Sprintf(format, args...))
}

// EmitRaw appends pre-formatted text verbatim, used to flush a
// function's buffered body once its frame size is known.
func (e *Emitter) EmitRaw(s string) {
	e.text.WriteString(s)
}

// String assembles the final program: .data (globals, then interned
// strings) followed by .text.
func (e *Emitter) String() string {
	var out strings.Builder

	out.WriteString(".data\n")
	out.WriteString(".align 2\n")
	for _, g := range e.globals {
		fmt.Fprintf(&out, "_%s: .space 4\n", g)
	}
	for _, s := range e.stringOrder {
		fmt.Fprintf(&out, "%s: .asciiz %q\n", e.stringPool[s], s)
	}

	out.WriteString("\n.text\n")
	out.WriteString(".globl main\n")
	out.WriteString(e.text.String())

	return out.String()
}
