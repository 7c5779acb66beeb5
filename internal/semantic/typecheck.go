package semantic

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hassandahiru/minic/internal/diag"
	"github.com/hassandahiru/minic/internal/lexer"
	"github.com/hassandahiru/minic/internal/parser/ast"
	"github.com/hassandahiru/minic/internal/semantic/types"
)

// TypeChecker implements ast.Visitor for the second semantic pass. It
// runs after NameAnalyzer has bound every Ident/DotAccess to a symbol, so
// every expression's type is already reachable through those
// annotations — this pass's job is purely to synthesize and validate
// types, never to resolve names.
//
// DESIGN CHOICE: expression Visit methods return a types.Type boxed in
// the Visitor interface's interface{} return slot rather than a second
// side-table, mirroring the teacher's exprTypes map in spirit but
// threading the value through Accept's return instead — the type of a
// subexpression is only ever needed by its immediate parent, so there is
// no reason to keep it addressable by the whole tree.
type TypeChecker struct {
	sink *diag.Sink
	log  *zap.Logger

	currentRet types.Type
}

// CheckTypes runs the type checker over program, reporting diagnostics
// to sink. It assumes AnalyzeNames has already run over the same tree.
func CheckTypes(program *ast.Program, sink *diag.Sink, log *zap.Logger) {
	c := &TypeChecker{sink: sink, log: log, currentRet: types.Error}
	log.Debug("type check: start", zap.Int("decls", len(program.Decls)))
	for _, d := range program.Decls {
		if err := d.Accept(c); err != nil {
			log.Warn("type check: visitor returned error", zap.Error(err))
		}
	}
	log.Debug("type check: done", zap.Int("errors", len(sink.Errors())))
}

func (c *TypeChecker) error(pos lexer.Position, format string, args ...interface{}) {
	c.sink.Fatal(pos.Line, pos.Column, format, args...)
}

// exprType runs e through the visitor and unboxes the resulting type.
func (c *TypeChecker) exprType(e ast.Expr) (types.Type, error) {
	v, err := e.Accept(c)
	if err != nil {
		return types.Error, err
	}
	t, ok := v.(types.Type)
	if !ok {
		c.log.Panic("type check: visitor returned non-type value", zap.String("expr", fmt.Sprintf("%T", e)))
	}
	return t, nil
}

// checkBody type-checks a declaration+statement block. Declarations are
// visited too (a no-op for every decl kind) purely so every Decl in the
// tree goes through the same Accept dispatch as the rest of the pass.
func (c *TypeChecker) checkBody(body *ast.FnBody) error {
	for _, decl := range body.Decls {
		if err := decl.Accept(c); err != nil {
			return err
		}
	}
	for _, stmt := range body.Stmts {
		if err := stmt.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

// Declarations: §4.3 only checks function bodies against their declared
// return type; a VarDecl/FormalDecl/StructDecl has no expression to
// type, so these are no-ops.

func (c *TypeChecker) VisitVarDecl(d *ast.VarDecl) error       { return nil }
func (c *TypeChecker) VisitFormalDecl(d *ast.FormalDecl) error { return nil }
func (c *TypeChecker) VisitStructDecl(d *ast.StructDecl) error { return nil }

func (c *TypeChecker) VisitFnDecl(d *ast.FnDecl) error {
	saved := c.currentRet
	if d.Sym != nil && d.Sym.Fn != nil {
		c.currentRet = d.Sym.Fn.Ret
	} else {
		c.currentRet = types.Error
	}
	err := c.checkBody(d.Body)
	c.currentRet = saved
	return err
}

func (c *TypeChecker) VisitAssignStmt(s *ast.AssignStmt) error {
	_, err := s.Assign.Accept(c)
	return err
}

func (c *TypeChecker) VisitPreIncStmt(s *ast.PreIncStmt) error {
	return c.checkIncDecOperand(s.Loc)
}

func (c *TypeChecker) VisitPreDecStmt(s *ast.PreDecStmt) error {
	return c.checkIncDecOperand(s.Loc)
}

func (c *TypeChecker) checkIncDecOperand(loc ast.Expr) error {
	t, err := c.exprType(loc)
	if err != nil {
		return err
	}
	if !types.IsInt(t) && !types.IsError(t) {
		c.error(loc.Pos(), "Arithmetic operator applied to non-numeric operand")
	}
	return nil
}

func (c *TypeChecker) VisitReceiveStmt(s *ast.ReceiveStmt) error {
	t, err := c.exprType(s.Loc)
	if err != nil {
		return err
	}
	switch {
	case types.IsFn(t):
		c.error(s.Loc.Pos(), "Attempt to read a function")
	case types.IsStructDef(t):
		c.error(s.Loc.Pos(), "Attempt to read a struct name")
	case types.IsStructValue(t):
		c.error(s.Loc.Pos(), "Attempt to read a struct variable")
	}
	s.LocType = t
	return nil
}

func (c *TypeChecker) VisitPrintStmt(s *ast.PrintStmt) error {
	t, err := c.exprType(s.Exp)
	if err != nil {
		return err
	}
	switch {
	case types.IsFn(t):
		c.error(s.Exp.Pos(), "Attempt to write a function")
	case types.IsStructDef(t):
		c.error(s.Exp.Pos(), "Attempt to write a struct name")
	case types.IsStructValue(t):
		c.error(s.Exp.Pos(), "Attempt to write a struct variable")
	case types.IsVoid(t):
		c.error(s.Exp.Pos(), "Attempt to write void")
	}
	s.ExpType = t
	return nil
}

func (c *TypeChecker) checkBoolCond(cond ast.Expr) error {
	t, err := c.exprType(cond)
	if err != nil {
		return err
	}
	if !types.IsBool(t) && !types.IsError(t) {
		c.error(cond.Pos(), "Test expression must be bool")
	}
	return nil
}

func (c *TypeChecker) VisitIfStmt(s *ast.IfStmt) error {
	if err := c.checkBoolCond(s.Cond); err != nil {
		return err
	}
	return c.checkBody(s.Body)
}

func (c *TypeChecker) VisitIfElseStmt(s *ast.IfElseStmt) error {
	if err := c.checkBoolCond(s.Cond); err != nil {
		return err
	}
	if err := c.checkBody(s.Then); err != nil {
		return err
	}
	return c.checkBody(s.Else)
}

func (c *TypeChecker) VisitWhileStmt(s *ast.WhileStmt) error {
	if err := c.checkBoolCond(s.Cond); err != nil {
		return err
	}
	return c.checkBody(s.Body)
}

func (c *TypeChecker) VisitRepeatStmt(s *ast.RepeatStmt) error {
	t, err := c.exprType(s.Cond)
	if err != nil {
		return err
	}
	if !types.IsInt(t) && !types.IsError(t) {
		c.error(s.Cond.Pos(), "Repeat expression must be int")
	}
	return c.checkBody(s.Body)
}

func (c *TypeChecker) VisitCallStmt(s *ast.CallStmt) error {
	_, err := s.Call.Accept(c)
	return err
}

func (c *TypeChecker) VisitReturnStmt(s *ast.ReturnStmt) error {
	if types.IsVoid(c.currentRet) {
		if s.Exp != nil {
			c.error(s.Pos(), "Return with a value in a void function")
		}
		return nil
	}
	if s.Exp == nil {
		c.sink.Fatal(0, 0, "Missing return value")
		return nil
	}
	t, err := c.exprType(s.Exp)
	if err != nil {
		return err
	}
	if !types.IsError(t) && !t.Equals(c.currentRet) {
		c.error(s.Exp.Pos(), "Bad return value")
	}
	return nil
}

func (c *TypeChecker) VisitIntLit(e *ast.IntLit) (interface{}, error) {
	return types.Int, nil
}

func (c *TypeChecker) VisitStringLit(e *ast.StringLit) (interface{}, error) {
	return types.String, nil
}

func (c *TypeChecker) VisitTrueLit(e *ast.TrueLit) (interface{}, error) {
	return types.Bool, nil
}

func (c *TypeChecker) VisitFalseLit(e *ast.FalseLit) (interface{}, error) {
	return types.Bool, nil
}

func (c *TypeChecker) VisitIdent(e *ast.Ident) (interface{}, error) {
	if e.Sym == nil {
		return types.Error, nil
	}
	return e.Sym.Type, nil
}

func (c *TypeChecker) VisitDotAccess(e *ast.DotAccess) (interface{}, error) {
	if e.BadAccess || e.Id.Sym == nil {
		return types.Error, nil
	}
	return e.Id.Sym.Type, nil
}

func (c *TypeChecker) VisitAssignExpr(e *ast.AssignExpr) (interface{}, error) {
	switch e.Lhs.(type) {
	case *ast.Ident, *ast.DotAccess:
	default:
		c.error(e.Lhs.Pos(), "Assignment to a non-location expression")
		return types.Error, nil
	}

	lt, err := c.exprType(e.Lhs)
	if err != nil {
		return types.Error, err
	}
	rt, err := c.exprType(e.Rhs)
	if err != nil {
		return types.Error, err
	}
	if types.IsError(lt) || types.IsError(rt) {
		return types.Error, nil
	}
	switch {
	case types.IsFn(lt) && types.IsFn(rt):
		c.error(e.Lhs.Pos(), "Function assignment")
		return types.Error, nil
	case types.IsStructDef(lt) && types.IsStructDef(rt):
		c.error(e.Lhs.Pos(), "Struct name assignment")
		return types.Error, nil
	case types.IsStructValue(lt) && types.IsStructValue(rt):
		c.error(e.Lhs.Pos(), "Struct variable assignment")
		return types.Error, nil
	}
	if !lt.Equals(rt) {
		c.error(e.Lhs.Pos(), "Type mismatch")
		return types.Error, nil
	}
	return rt, nil
}

func (c *TypeChecker) VisitCallExpr(e *ast.CallExpr) (interface{}, error) {
	fnType, err := c.exprType(e.Fn)
	if err != nil {
		return types.Error, err
	}
	argTypes := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		t, err := c.exprType(arg)
		if err != nil {
			return types.Error, err
		}
		argTypes[i] = t
	}

	fn, ok := fnType.(types.FnType)
	if !ok {
		if !types.IsError(fnType) {
			c.error(e.Fn.Pos(), "Attempt to call a non-function")
		}
		return types.Error, nil
	}
	if len(argTypes) != len(fn.Params) {
		c.error(e.Pos(), "Function call with wrong number of args")
		return fn.Ret, nil
	}
	for i, at := range argTypes {
		if !types.IsError(at) && !at.Equals(fn.Params[i]) {
			c.error(e.Args[i].Pos(), "Type of actual does not match type of formal")
		}
	}
	return fn.Ret, nil
}

func (c *TypeChecker) VisitUnaryMinus(e *ast.UnaryMinus) (interface{}, error) {
	t, err := c.exprType(e.Exp)
	if err != nil {
		return types.Error, err
	}
	if types.IsError(t) {
		return types.Error, nil
	}
	if !types.IsInt(t) {
		c.error(e.Exp.Pos(), "Arithmetic operator applied to non-numeric operand")
		return types.Error, nil
	}
	return types.Int, nil
}

func (c *TypeChecker) VisitNot(e *ast.Not) (interface{}, error) {
	t, err := c.exprType(e.Exp)
	if err != nil {
		return types.Error, err
	}
	if types.IsError(t) {
		return types.Error, nil
	}
	if !types.IsBool(t) {
		c.error(e.Exp.Pos(), "Logical operator applied to non-bool operand")
		return types.Error, nil
	}
	return types.Bool, nil
}

func (c *TypeChecker) VisitBinaryExpr(e *ast.BinaryExpr) (interface{}, error) {
	lt, err := c.exprType(e.Left)
	if err != nil {
		return types.Error, err
	}
	rt, err := c.exprType(e.Right)
	if err != nil {
		return types.Error, err
	}

	switch e.Op {
	case ast.OpPlus, ast.OpMinus, ast.OpTimes, ast.OpDivide:
		return c.checkArith(e, lt, rt), nil
	case ast.OpAnd, ast.OpOr:
		return c.checkLogical(e, lt, rt), nil
	case ast.OpLess, ast.OpGreater, ast.OpLessEq, ast.OpGreaterEq:
		return c.checkRelational(e, lt, rt), nil
	case ast.OpEquals, ast.OpNotEquals:
		return c.checkEquality(e, lt, rt), nil
	default:
		c.log.Panic("type check: unknown binary operator", zap.Int("op", int(e.Op)))
		return types.Error, nil
	}
}

func (c *TypeChecker) checkArith(e *ast.BinaryExpr, lt, rt types.Type) types.Type {
	if types.IsError(lt) || types.IsError(rt) {
		return types.Error
	}
	bad := false
	if !types.IsInt(lt) {
		c.error(e.Left.Pos(), "Arithmetic operator applied to non-numeric operand")
		bad = true
	}
	if !types.IsInt(rt) {
		c.error(e.Right.Pos(), "Arithmetic operator applied to non-numeric operand")
		bad = true
	}
	if bad {
		return types.Error
	}
	return types.Int
}

func (c *TypeChecker) checkLogical(e *ast.BinaryExpr, lt, rt types.Type) types.Type {
	if types.IsError(lt) || types.IsError(rt) {
		return types.Error
	}
	bad := false
	if !types.IsBool(lt) {
		c.error(e.Left.Pos(), "Logical operator applied to non-bool operand")
		bad = true
	}
	if !types.IsBool(rt) {
		c.error(e.Right.Pos(), "Logical operator applied to non-bool operand")
		bad = true
	}
	if bad {
		return types.Error
	}
	return types.Bool
}

func (c *TypeChecker) checkRelational(e *ast.BinaryExpr, lt, rt types.Type) types.Type {
	if types.IsError(lt) || types.IsError(rt) {
		return types.Error
	}
	bad := false
	if !types.IsInt(lt) {
		c.error(e.Left.Pos(), "Relational operator applied to non-numeric operand")
		bad = true
	}
	if !types.IsInt(rt) {
		c.error(e.Right.Pos(), "Relational operator applied to non-numeric operand")
		bad = true
	}
	if bad {
		return types.Error
	}
	return types.Bool
}

func (c *TypeChecker) checkEquality(e *ast.BinaryExpr, lt, rt types.Type) types.Type {
	if types.IsError(lt) || types.IsError(rt) {
		return types.Error
	}
	switch {
	case types.IsVoid(lt) && types.IsVoid(rt):
		c.error(e.Pos(), "Equality operator applied to void functions")
		return types.Error
	case types.IsFn(lt) && types.IsFn(rt):
		c.error(e.Pos(), "Equality operator applied to functions")
		return types.Error
	case types.IsStructDef(lt) && types.IsStructDef(rt):
		c.error(e.Pos(), "Equality operator applied to struct names")
		return types.Error
	case types.IsStructValue(lt) && types.IsStructValue(rt):
		c.error(e.Pos(), "Equality operator applied to struct variables")
		return types.Error
	}
	if !lt.Equals(rt) {
		c.error(e.Pos(), "Type mismatch")
		return types.Error
	}
	return types.Bool
}
