// Package symtab implements symbol table management for name resolution and
// frame-offset assignment.
//
// DESIGN PHILOSOPHY:
// The symbol table tracks every declared name and answers two questions for
// the rest of the compiler: "what does this identifier refer to" and "where
// does it live at runtime" (global slot, or frame offset from $fp). It is
// used by the name analyzer to bind identifiers and by the code generator to
// turn those bindings into load/store addressing.
//
// KEY DESIGN CHOICES:
// - The table is an explicit STACK of scopes, not a parent-pointer tree.
//   Name analysis only ever needs "innermost" and "innermost outward", never
//   an arbitrary scope's ancestry, so a stack is both simpler and a closer
//   match to the one-pass, enter/leave-block traversal that builds it.
// - Struct-definition symbols live in an arena with stable indices rather
//   than being referenced by pointer from struct-variable symbols. A
//   definition's field table can itself contain struct-variable symbols
//   referencing the very same definition; indices into a stable arena avoid
//   that reference cycle becoming an ownership cycle.
package symtab

import (
	"github.com/hassandahiru/minic/internal/lexer"
	"github.com/hassandahiru/minic/internal/semantic/types"
)

// Storage classifies where a symbol's value lives at runtime.
type Storage int

const (
	// Global symbols live in the .data segment, addressed by label.
	Global Storage = iota
	// Local symbols live in the current frame below the saved $fp.
	Local
	// Param symbols live in the caller's pushed-argument area above $fp.
	Param
)

func (s Storage) String() string {
	switch s {
	case Global:
		return "global"
	case Local:
		return "local"
	case Param:
		return "param"
	default:
		return "unknown"
	}
}

// Symbol is the compile-time record bound to a declared name.
//
// DESIGN CHOICE: one flat struct for every symbol rather than an interface
// with per-kind implementations, mirroring the teacher's "store everything
// in one struct" rationale — most consumers (the type checker in
// particular) only ever need Name/Type/Storage/Offset, and the function-
// and struct-specific extensions below are opt-in via plain fields rather
// than a type switch on every access.
type Symbol struct {
	Name    string
	Type    types.Type
	Storage Storage

	// Offset is signed, in bytes, from the frame pointer: negative for
	// locals, non-negative for params, unused (zero) for globals.
	Offset int

	// Pos is where this symbol was declared, for "already declared at"
	// style diagnostics and for stable test fixtures.
	Pos lexer.Position

	// Fn is non-nil when this symbol names a function.
	Fn *FunctionSymbol

	// StructDefIndex, when Struct is true, is the index into the
	// compilation's DefArena of the struct-definition symbol that this
	// variable's type refers to.
	Struct         bool
	StructDefIndex int
}

// FunctionSymbol carries the extra bookkeeping a function declaration
// needs beyond its symbol entry: the types of its formals (for call-site
// arity/type checking) and, once the body has been analyzed, the size in
// bytes of its local frame.
type FunctionSymbol struct {
	Params          []types.Type
	Ret             types.Type
	LocalFrameBytes int
}

// StructDefSymbol is the symbol bound to a struct's defining identifier —
// what `Foo` denotes as a type name, as opposed to what a `struct Foo x`
// variable denotes. It owns the nested table holding its fields.
type StructDefSymbol struct {
	Name   string
	Fields *Table
}

// DefArena stores struct-definition symbols with stable indices, so that
// a struct-variable symbol (Struct set) can reference its definition by index instead of by
// pointer (see the package doc comment for why).
type DefArena struct {
	defs []*StructDefSymbol
}

// NewDefArena returns an empty arena.
func NewDefArena() *DefArena {
	return &DefArena{}
}

// Add appends a definition and returns its stable index.
func (a *DefArena) Add(def *StructDefSymbol) int {
	a.defs = append(a.defs, def)
	return len(a.defs) - 1
}

// Get returns the definition at the given index. Panics on an
// out-of-range index, which would be an internal invariant violation
// (an index produced by this same arena should never go stale).
func (a *DefArena) Get(index int) *StructDefSymbol {
	return a.defs[index]
}

// String returns a human-readable representation of the symbol, in the
// shape "storage name: type at position".
func (s *Symbol) String() string {
	return s.Storage.String() + " " + s.Name + ": " + s.Type.String() + " at " + s.Pos.String()
}
