package ast

import "github.com/hassandahiru/minic/internal/lexer"

// IntType, BoolType, VoidType and StructType are the type-annotation
// nodes that appear wherever §3b's grammar production `type` does:
// var/formal/return-type/field declarations.

type IntType struct{ BaseNode }

func (*IntType) typeNode() {}

type BoolType struct{ BaseNode }

func (*BoolType) typeNode() {}

type VoidType struct{ BaseNode }

func (*VoidType) typeNode() {}

type StringTypeExpr struct{ BaseNode }

func (*StringTypeExpr) typeNode() {}

// StructType names a previously declared struct, e.g. `struct Point p;`.
// Id is the reference to the struct's name; name analysis resolves it
// against the global scope and links StructDef.
type StructType struct {
	BaseNode
	Id *Ident

	// StructDefIndex/HasStructDef are set by the name analyzer once Id
	// is resolved to a StructDefSymbol in the struct-definition arena.
	StructDefIndex int
	HasStructDef   bool
}

func (StructType) typeNode() {}

func (s *StructType) Pos() lexer.Position { return s.BaseNode.StartPos }
