// Package types implements the type system for the compiler.
//
// DESIGN PHILOSOPHY:
// The source language has a small, fixed set of types: the primitives
// int/bool/void/string, struct values, struct type-names themselves, and
// function signatures. There is no inference, no conversion, no generics.
// The only job of this package is to give every expression a single
// canonical Type value and to answer equality/kind questions about it.
//
// KEY DESIGN CHOICES:
// - Struct VALUES and struct NAMES are different types (see StructValueType
//   vs StructDefType below) even though both originate from the same
//   `struct Foo { ... }` declaration. `Foo` used as a type annotation and
//   `x` declared `struct Foo` are not interchangeable.
// - Struct value equality is by defining-identifier IDENTITY, not by name
//   string — two different `struct Foo` declarations (which can't actually
//   coexist after name analysis rejects the duplicate, but the type system
//   must still not conflate them during error recovery) are different types.
// - ErrorType is unequal to everything, including itself: once an
//   expression's type is Error, no equality check involving it can ever
//   "pass" by accident. Silencing cascading diagnostics is done by the
//   type checker itself, which tests IsError before reporting.
package types

import (
	"fmt"
	"strings"
)

// Type is the interface every type value in the source language implements.
//
// DESIGN CHOICE: interface + concrete structs rather than a single struct
// with a "kind" enum field, so each case's Equals rule lives next to its
// data instead of in one big switch.
type Type interface {
	// String returns the type's diagnostic name, e.g. "int" or "struct Point".
	String() string

	// Equals reports whether this type and other denote the same type.
	// See the per-case doc comments for the exact rule; Error always
	// returns false, including Error.Equals(Error).
	Equals(other Type) bool

	// kind returns the discriminator used by the predicate helpers below.
	// Unexported so external packages go through the is* predicates, which
	// keeps the decision surface narrow and matches §3's predicate list.
	kind() kind
}

type kind int

const (
	kindError kind = iota
	kindInt
	kindBool
	kindVoid
	kindString
	kindStructValue
	kindStructDef
	kindFn
)

// IntType is the type of integer literals, arithmetic results, and `int`
// declarations.
type IntType struct{}

func (IntType) String() string         { return "int" }
func (IntType) Equals(other Type) bool { _, ok := other.(IntType); return ok }
func (IntType) kind() kind              { return kindInt }

// BoolType is the type of true/false, relational results, and `bool`
// declarations.
type BoolType struct{}

func (BoolType) String() string         { return "bool" }
func (BoolType) Equals(other Type) bool { _, ok := other.(BoolType); return ok }
func (BoolType) kind() kind              { return kindBool }

// VoidType is the return type of a function declared `void`. It has no
// values; it exists only to be compared against (e.g. rejecting
// `void == void`, rejecting `print` of a void-returning call).
type VoidType struct{}

func (VoidType) String() string         { return "void" }
func (VoidType) Equals(other Type) bool { _, ok := other.(VoidType); return ok }
func (VoidType) kind() kind              { return kindVoid }

// StringType is the type of string literals and `string` declarations.
type StringType struct{}

func (StringType) String() string         { return "string" }
func (StringType) Equals(other Type) bool { _, ok := other.(StringType); return ok }
func (StringType) kind() kind              { return kindString }

// ErrorType is the sentinel produced whenever a construct fails to type
// check. It is deliberately unequal to everything, itself included, so
// every downstream comparison against it fails closed rather than open.
type ErrorType struct{}

func (ErrorType) String() string      { return "<error>" }
func (ErrorType) Equals(Type) bool    { return false }
func (ErrorType) kind() kind           { return kindError }

// StructDefIdentity is whatever uniquely names a struct declaration's
// defining identifier token. The name analyzer supplies the declaration's
// *ast.Ident (or equivalent) here; the types package only needs it to be
// comparable (==), never to interpret it.
type StructDefIdentity interface{}

// StructValueType is the type of a variable declared `struct Foo x;` —
// i.e. a value of struct type. Two StructValueTypes are equal iff they
// carry the same defining-identifier identity, not the same name string:
// `struct Foo` in one (hypothetically re-declared) program fragment is
// never confused with `struct Foo` from another declaration.
type StructValueType struct {
	Name     string
	Identity StructDefIdentity
}

func (s StructValueType) String() string { return "struct " + s.Name }
func (s StructValueType) Equals(other Type) bool {
	o, ok := other.(StructValueType)
	if !ok {
		return false
	}
	return s.Identity == o.Identity
}
func (s StructValueType) kind() kind { return kindStructValue }

// StructDefType is the type of the struct's name itself — what `Foo`
// denotes as an identifier in `struct Foo x;`'s type position, as opposed
// to what `x` denotes. Equality here is structural on defining identity,
// same as StructValueType, but the two kinds never compare equal to each
// other (a struct name is not a struct value).
type StructDefType struct {
	Name     string
	Identity StructDefIdentity
}

func (s StructDefType) String() string { return "struct-name " + s.Name }
func (s StructDefType) Equals(other Type) bool {
	o, ok := other.(StructDefType)
	if !ok {
		return false
	}
	return s.Identity == o.Identity
}
func (s StructDefType) kind() kind { return kindStructDef }

// FnType is the type of a function declaration, used for both the
// identifier bound to the function and for call-site checking. Equality
// is structural (same parameter types in order, same return type) — two
// independently declared functions with identical signatures compare
// equal, which only matters for diagnostics since the language has no
// function values to assign.
type FnType struct {
	Params []Type
	Ret    Type
}

func (f FnType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) %s", strings.Join(parts, ", "), f.Ret.String())
}

func (f FnType) Equals(other Type) bool {
	o, ok := other.(FnType)
	if !ok {
		return false
	}
	if len(f.Params) != len(o.Params) {
		return false
	}
	for i, p := range f.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	return f.Ret.Equals(o.Ret)
}

func (f FnType) kind() kind { return kindFn }

// Singleton instances for the types with no data of their own. Using
// these avoids allocating a fresh IntType{} etc. at every call site.
var (
	Int    Type = IntType{}
	Bool   Type = BoolType{}
	Void   Type = VoidType{}
	String Type = StringType{}
	Error  Type = ErrorType{}
)

// Predicate helpers — the "primary decision surface" for the type
// checker. Kept as free functions rather than methods so call sites read
// like the spec's own rule tables (isInt(t), isBool(t), ...).

func IsInt(t Type) bool        { return t.kind() == kindInt }
func IsBool(t Type) bool       { return t.kind() == kindBool }
func IsString(t Type) bool     { return t.kind() == kindString }
func IsVoid(t Type) bool       { return t.kind() == kindVoid }
func IsStructValue(t Type) bool { return t.kind() == kindStructValue }
func IsStructDef(t Type) bool  { return t.kind() == kindStructDef }
func IsFn(t Type) bool         { return t.kind() == kindFn }
func IsError(t Type) bool      { return t.kind() == kindError }

// NewStructValue constructs the value-type for a struct declaration.
func NewStructValue(name string, identity StructDefIdentity) StructValueType {
	return StructValueType{Name: name, Identity: identity}
}

// NewStructDef constructs the name-type for a struct declaration.
func NewStructDef(name string, identity StructDefIdentity) StructDefType {
	return StructDefType{Name: name, Identity: identity}
}

// NewFn constructs a function type from its parameter types and return type.
func NewFn(params []Type, ret Type) FnType {
	return FnType{Params: params, Ret: ret}
}
