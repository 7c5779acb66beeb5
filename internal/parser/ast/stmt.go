package ast

import "github.com/hassandahiru/minic/internal/semantic/types"

// AssignStmt lowers an assignment used as a statement: `assignExp;`.
type AssignStmt struct {
	BaseNode
	Assign *AssignExpr
}

func (s *AssignStmt) stmtNode() {}
func (s *AssignStmt) Accept(v Visitor) error {
	return v.VisitAssignStmt(s)
}

// PreIncStmt and PreDecStmt represent `loc++;` / `loc--;`. The grammar
// only allows these as statements (no pre/post-inc expressions), unlike
// the teacher's general-purpose UnaryExpr which allows both positions.
type PreIncStmt struct {
	BaseNode
	Loc Expr
}

func (s *PreIncStmt) stmtNode() {}
func (s *PreIncStmt) Accept(v Visitor) error {
	return v.VisitPreIncStmt(s)
}

type PreDecStmt struct {
	BaseNode
	Loc Expr
}

func (s *PreDecStmt) stmtNode() {}
func (s *PreDecStmt) Accept(v Visitor) error {
	return v.VisitPreDecStmt(s)
}

// ReceiveStmt represents `receive loc;` — reads a value into loc.
type ReceiveStmt struct {
	BaseNode
	Loc Expr

	// LocType is recorded by the type checker for codegen dispatch
	// (receive needs no per-type dispatch today, but is kept symmetric
	// with PrintStmt since both share the operand-kind restrictions of
	// §4.3).
	LocType types.Type
}

func (s *ReceiveStmt) stmtNode() {}
func (s *ReceiveStmt) Accept(v Visitor) error {
	return v.VisitReceiveStmt(s)
}

// PrintStmt represents `print exp;`. ExpType is recorded by the type
// checker (not the parser) so the code generator can choose the syscall
// without re-deriving the type (§3's lifecycle note).
type PrintStmt struct {
	BaseNode
	Exp     Expr
	ExpType types.Type
}

func (s *PrintStmt) stmtNode() {}
func (s *PrintStmt) Accept(v Visitor) error {
	return v.VisitPrintStmt(s)
}

// IfStmt represents `if (cond) { body }`.
type IfStmt struct {
	BaseNode
	Cond Expr
	Body *FnBody
}

func (s *IfStmt) stmtNode() {}
func (s *IfStmt) Accept(v Visitor) error {
	return v.VisitIfStmt(s)
}

// IfElseStmt represents `if (cond) { then } else { else }`.
type IfElseStmt struct {
	BaseNode
	Cond Expr
	Then *FnBody
	Else *FnBody
}

func (s *IfElseStmt) stmtNode() {}
func (s *IfElseStmt) Accept(v Visitor) error {
	return v.VisitIfElseStmt(s)
}

// WhileStmt represents `while (cond) { body }`.
type WhileStmt struct {
	BaseNode
	Cond Expr
	Body *FnBody
}

func (s *WhileStmt) stmtNode() {}
func (s *WhileStmt) Accept(v Visitor) error {
	return v.VisitWhileStmt(s)
}

// RepeatStmt represents `repeat (cond) { body }`. Per §9/§4.4, this has
// no direct code-generation lowering in the source and is desugared by
// the code generator into a counted while loop.
type RepeatStmt struct {
	BaseNode
	Cond Expr
	Body *FnBody
}

func (s *RepeatStmt) stmtNode() {}
func (s *RepeatStmt) Accept(v Visitor) error {
	return v.VisitRepeatStmt(s)
}

// CallStmt represents a call used as a statement, discarding its result.
type CallStmt struct {
	BaseNode
	Call *CallExpr
}

func (s *CallStmt) stmtNode() {}
func (s *CallStmt) Accept(v Visitor) error {
	return v.VisitCallStmt(s)
}

// ReturnStmt represents `return exp?;`. Exp is nil for a bare `return;`.
type ReturnStmt struct {
	BaseNode
	Exp Expr
}

func (s *ReturnStmt) stmtNode() {}
func (s *ReturnStmt) Accept(v Visitor) error {
	return v.VisitReturnStmt(s)
}
