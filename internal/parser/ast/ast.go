// Package ast defines the Abstract Syntax Tree node types for the source
// language's compiler.
//
// DESIGN PHILOSOPHY:
// The AST is a tree representation of the program's structure, built once
// by the parser and then walked independently by three passes (name
// analysis, type checking, code generation). It:
// 1. Preserves program semantics (but not surface syntax like parens)
// 2. Supports the visitor pattern for those three passes
// 3. Maintains position information on every leaf for diagnostics
// 4. Carries post-analysis annotations (symbol links, computed types)
//    as plain mutable fields rather than a side table, since each
//    annotation is owned by exactly one node and needed by exactly the
//    passes that run after the one that sets it.
//
// KEY DESIGN CHOICES:
// - Use interfaces (Expr, Stmt, Decl) for polymorphism, dispatched through
//   one Visitor interface — avoids type switches scattered across three
//   independent passes.
// - Model each AST category as a flat tagged variant (one struct per node
//   kind) rather than a deep inheritance hierarchy; this keeps each pass's
//   Visit method self-contained.
package ast

import (
	"github.com/hassandahiru/minic/internal/lexer"
)

// Node is the base interface for all AST nodes: every node can report
// where in the source it came from.
type Node interface {
	Pos() lexer.Position
}

// Expr is the interface for all expression nodes — anything that
// produces a value.
type Expr interface {
	Node
	Accept(v Visitor) (interface{}, error)
	exprNode()
}

// Stmt is the interface for all statement nodes — anything that performs
// an action. In this language statements never have values, only
// expressions do.
type Stmt interface {
	Node
	Accept(v Visitor) error
	stmtNode()
}

// Decl is the interface for declaration nodes. Declarations are also
// statements (they can appear in a function body's declaration list),
// but carry their own Accept dispatch for clarity at the call site.
type Decl interface {
	Stmt
	declNode()
}

// TypeExpr is the interface for the type-annotation nodes that appear in
// declarations: int, bool, void, string, or struct Name.
type TypeExpr interface {
	Node
	typeNode()
}

// Visitor is the interface every pass (name analyzer, type checker, code
// generator) implements to walk the tree. A single interface, rather than
// one per pass, keeps every node's Accept method identical regardless of
// which pass is driving the traversal; each pass simply ignores the
// return values it doesn't need.
type Visitor interface {
	VisitVarDecl(d *VarDecl) error
	VisitFnDecl(d *FnDecl) error
	VisitFormalDecl(d *FormalDecl) error
	VisitStructDecl(d *StructDecl) error

	VisitAssignStmt(s *AssignStmt) error
	VisitPreIncStmt(s *PreIncStmt) error
	VisitPreDecStmt(s *PreDecStmt) error
	VisitReceiveStmt(s *ReceiveStmt) error
	VisitPrintStmt(s *PrintStmt) error
	VisitIfStmt(s *IfStmt) error
	VisitIfElseStmt(s *IfElseStmt) error
	VisitWhileStmt(s *WhileStmt) error
	VisitRepeatStmt(s *RepeatStmt) error
	VisitCallStmt(s *CallStmt) error
	VisitReturnStmt(s *ReturnStmt) error

	VisitIntLit(e *IntLit) (interface{}, error)
	VisitStringLit(e *StringLit) (interface{}, error)
	VisitTrueLit(e *TrueLit) (interface{}, error)
	VisitFalseLit(e *FalseLit) (interface{}, error)
	VisitIdent(e *Ident) (interface{}, error)
	VisitDotAccess(e *DotAccess) (interface{}, error)
	VisitAssignExpr(e *AssignExpr) (interface{}, error)
	VisitCallExpr(e *CallExpr) (interface{}, error)
	VisitUnaryMinus(e *UnaryMinus) (interface{}, error)
	VisitNot(e *Not) (interface{}, error)
	VisitBinaryExpr(e *BinaryExpr) (interface{}, error)
}

// Program is the root of the tree: the whole of DeclList from §3.
type Program struct {
	Decls []Decl
}

// FnBody groups a declaration list and a statement list, the shape
// shared by function bodies and every block-carrying statement (if,
// if-else, while, repeat).
type FnBody struct {
	Decls []Decl
	Stmts []Stmt
}

// BaseNode gives every leaf node its position without repeating the
// Pos() boilerplate at each call site.
type BaseNode struct {
	StartPos lexer.Position
}

func (b BaseNode) Pos() lexer.Position { return b.StartPos }
