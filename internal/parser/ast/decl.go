package ast

import (
	"github.com/hassandahiru/minic/internal/lexer"
	"github.com/hassandahiru/minic/internal/symtab"
)

// Ident is the leaf node for every identifier use: variable names,
// function names, struct-type names, and the right side of a dot access.
// After name analysis a successfully resolved Ident carries Sym.
type Ident struct {
	BaseNode
	Name string
	Sym  *symtab.Symbol // set by name analysis on successful resolution
}

func (i *Ident) Pos() lexer.Position { return i.BaseNode.StartPos }
func (i *Ident) exprNode()           {}
func (i *Ident) Accept(v Visitor) (interface{}, error) {
	return v.VisitIdent(i)
}

// VarDecl declares a variable: `type id;` or `type id[size];`. Size is 1
// for a plain declaration; the grammar accepts a bracketed size but, per
// the Non-goals, arrays are not given semantic meaning beyond accepting
// the syntax (see SPEC_FULL.md §3b).
type VarDecl struct {
	BaseNode
	Type TypeExpr
	Id   *Ident
	Size int

	Sym *symtab.Symbol // set by name analysis
}

func (d *VarDecl) declNode() {}
func (d *VarDecl) stmtNode() {}
func (d *VarDecl) Accept(v Visitor) error {
	return v.VisitVarDecl(d)
}

// FormalDecl declares one function parameter: `type id`.
type FormalDecl struct {
	BaseNode
	Type TypeExpr
	Id   *Ident

	Sym *symtab.Symbol
}

func (d *FormalDecl) declNode() {}
func (d *FormalDecl) stmtNode() {}
func (d *FormalDecl) Accept(v Visitor) error {
	return v.VisitFormalDecl(d)
}

// FnDecl declares a function: `retType id(formals) { body }`.
type FnDecl struct {
	BaseNode
	RetType TypeExpr
	Id      *Ident
	Formals []*FormalDecl
	Body    *FnBody

	Sym *symtab.Symbol // bound FunctionSymbol
}

func (d *FnDecl) declNode() {}
func (d *FnDecl) stmtNode() {}
func (d *FnDecl) Accept(v Visitor) error {
	return v.VisitFnDecl(d)
}

// StructDecl declares a struct type: `struct id { fieldDecls };`.
type StructDecl struct {
	BaseNode
	Id     *Ident
	Fields []*VarDecl

	DefIndex int // index into the struct-definition arena, once analyzed
}

func (d *StructDecl) declNode() {}
func (d *StructDecl) stmtNode() {}
func (d *StructDecl) Accept(v Visitor) error {
	return v.VisitStructDecl(d)
}
