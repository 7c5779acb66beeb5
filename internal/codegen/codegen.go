// Package codegen lowers a checked AST into MIPS-style stack-machine
// assembly (§4.4). It assumes AnalyzeNames and CheckTypes have already
// run with no diagnostics — it does not re-validate the tree, only
// translates it.
//
// DESIGN PHILOSOPHY: expression lowering is strictly push-style — every
// Expr's codegen Visit method leaves exactly one word on the runtime
// stack, regardless of its shape. This lets every consumer (an operand
// of a binary op, an argument to a call, the condition of an if) pop
// without caring what produced the value.
//
// Grounded on the smasonuk-sicpu reference generator's genExpr/genStmt
// type-switch dispatch and its separate genAddress helper for lvalue
// contexts — adapted here into Visitor methods (value contexts) plus one
// non-Visitor genAddress (address contexts), since Accept's signature
// has no room for an address-vs-value mode flag.
package codegen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hassandahiru/minic/internal/emitter"
	"github.com/hassandahiru/minic/internal/parser/ast"
	"github.com/hassandahiru/minic/internal/semantic/types"
	"github.com/hassandahiru/minic/internal/symtab"
)

// Generator implements ast.Visitor for code generation.
type Generator struct {
	em  *emitter.Emitter
	log *zap.Logger

	currentFn *ast.FnDecl
	frame     *Frame
	body      *instructionBlock
}

// Generate lowers every declaration in program and returns the assembled
// assembly text. Callers must not invoke this when the sink used during
// semantic analysis reported any diagnostics (§8 S1: "Code gen not
// attempted").
func Generate(program *ast.Program, log *zap.Logger) string {
	g := &Generator{em: emitter.New(), log: log}
	log.Debug("codegen: start", zap.Int("decls", len(program.Decls)))
	for _, d := range program.Decls {
		if err := d.Accept(g); err != nil {
			log.Warn("codegen: visitor returned error", zap.Error(err))
		}
	}
	log.Debug("codegen: done")
	return g.em.String()
}

func functionLabel(name string) string {
	if name == "main" {
		return "main"
	}
	return "_" + name
}

func (g *Generator) emit(format string, args ...interface{}) {
	g.body.emit(format, args...)
}

func (g *Generator) emitLabel(name string) {
	g.body.label(name)
}

func (g *Generator) comment(format string, args ...interface{}) {
	g.emit("# "+format, args...)
}

// push stores reg at the current top of stack and moves the stack
// pointer down, so the next push lands below it — paired with pop so
// the frame's saved $ra/$fp end up at the exact offsets §4.4's exit
// sequence reads them back from.
func (g *Generator) push(reg string) {
	g.emit("sw %s, 0($sp)", reg)
	g.emit("subu $sp, $sp, 4")
}

func (g *Generator) pop(reg string) {
	g.emit("addu $sp, $sp, 4")
	g.emit("lw %s, 0($sp)", reg)
}

func (g *Generator) operand(sym *symtab.Symbol) string {
	if sym.Storage == symtab.Global {
		return "_" + sym.Name
	}
	return fmt.Sprintf("%d($fp)", sym.Offset)
}

// genAddress computes the address of an lvalue expression and pushes it.
// Kept separate from the Visitor dispatch because Ident/DotAccess need
// entirely different code depending on whether they're read for their
// value (via Accept) or their address (here).
func (g *Generator) genAddress(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Ident:
		if n.Sym == nil {
			g.log.Panic("codegen: unresolved identifier reached address generation", zap.String("name", n.Name))
		}
		if n.Sym.Storage == symtab.Global {
			g.emit("la $t0, _%s", n.Sym.Name)
		} else {
			g.emit("addi $t0, $fp, %d", n.Sym.Offset)
		}
		g.push("$t0")
		return nil
	case *ast.DotAccess:
		// Non-goal: struct layout exists only at name-analysis level: the
		// generator deliberately emits no loads/stores for struct fields.
		g.comment("struct field access has no code generation")
		g.emit("li $t0, 0")
		g.push("$t0")
		return nil
	default:
		g.log.Panic("codegen: address requested of a non-addressable expression", zap.String("expr", fmt.Sprintf("%T", e)))
		return nil
	}
}

func (g *Generator) genBody(body *ast.FnBody) error {
	for _, decl := range body.Decls {
		if err := decl.Accept(g); err != nil {
			return err
		}
	}
	for _, stmt := range body.Stmts {
		if err := stmt.Accept(g); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) exitSequence() {
	g.emit("lw $ra, 0($fp)")
	g.emit("move $t0, $fp")
	g.emit("lw $fp, -4($fp)")
	g.emit("move $sp, $t0")
	if g.currentFn != nil && g.currentFn.Id.Name == "main" {
		g.emit("li $v0, 10")
		g.emit("syscall")
	} else {
		g.emit("jr $ra")
	}
}

// Declarations.

func (g *Generator) VisitVarDecl(d *ast.VarDecl) error {
	if d.Sym != nil && d.Sym.Storage == symtab.Global {
		g.em.Global(d.Id.Name)
	}
	return nil
}

func (g *Generator) VisitFormalDecl(d *ast.FormalDecl) error { return nil }
func (g *Generator) VisitStructDecl(d *ast.StructDecl) error { return nil }

func (g *Generator) VisitFnDecl(d *ast.FnDecl) error {
	g.currentFn = d
	frameBytes := 0
	if d.Sym != nil && d.Sym.Fn != nil {
		frameBytes = d.Sym.Fn.LocalFrameBytes
	}
	g.frame = newFrame(frameBytes)
	g.body = newInstructionBlock()

	if err := g.genBody(d.Body); err != nil {
		return err
	}
	// Fallback exit in case control falls off the end of the body
	// without an explicit return (e.g. a void function).
	g.exitSequence()

	label := functionLabel(d.Id.Name)
	g.em.Label(label)
	g.em.Emit("sw $ra, 0($sp)")
	g.em.Emit("subu $sp, $sp, 4")
	g.em.Emit("sw $fp, 0($sp)")
	g.em.Emit("subu $sp, $sp, 4")
	g.em.Emit("addu $fp, $sp, 8")
	if total := g.frame.totalBytes(); total > 0 {
		g.em.Emit("subu $sp, $sp, %d", total)
	}
	g.em.EmitRaw(g.body.String())

	g.currentFn = nil
	g.frame = nil
	g.body = nil
	return nil
}

// Statements.

func (g *Generator) VisitAssignStmt(s *ast.AssignStmt) error {
	if _, err := s.Assign.Accept(g); err != nil {
		return err
	}
	g.pop("$t0")
	return nil
}

func (g *Generator) VisitPreIncStmt(s *ast.PreIncStmt) error {
	return g.genIncDec(s.Loc, 1)
}

func (g *Generator) VisitPreDecStmt(s *ast.PreDecStmt) error {
	return g.genIncDec(s.Loc, -1)
}

func (g *Generator) genIncDec(loc ast.Expr, delta int) error {
	if err := g.genAddress(loc); err != nil {
		return err
	}
	g.pop("$t0")
	g.emit("lw $t1, 0($t0)")
	g.emit("addi $t1, $t1, %d", delta)
	g.emit("sw $t1, 0($t0)")
	return nil
}

func (g *Generator) VisitReceiveStmt(s *ast.ReceiveStmt) error {
	g.emit("li $v0, 5")
	g.emit("syscall")
	if err := g.genAddress(s.Loc); err != nil {
		return err
	}
	g.pop("$t0")
	g.emit("sw $v0, 0($t0)")
	return nil
}

func (g *Generator) VisitPrintStmt(s *ast.PrintStmt) error {
	if _, err := s.Exp.Accept(g); err != nil {
		return err
	}
	g.pop("$a0")
	if types.IsString(s.ExpType) {
		g.emit("li $v0, 4")
	} else {
		g.emit("li $v0, 1")
	}
	g.emit("syscall")
	return nil
}

func (g *Generator) VisitIfStmt(s *ast.IfStmt) error {
	if _, err := s.Cond.Accept(g); err != nil {
		return err
	}
	g.pop("$t0")
	end := g.em.NewLabel()
	g.emit("beq $t0, $zero, %s", end)
	if err := g.genBody(s.Body); err != nil {
		return err
	}
	g.emitLabel(end)
	return nil
}

func (g *Generator) VisitIfElseStmt(s *ast.IfElseStmt) error {
	if _, err := s.Cond.Accept(g); err != nil {
		return err
	}
	g.pop("$t0")
	elseLabel := g.em.NewLabel()
	exitLabel := g.em.NewLabel()
	g.emit("beq $t0, $zero, %s", elseLabel)
	if err := g.genBody(s.Then); err != nil {
		return err
	}
	g.emit("j %s", exitLabel)
	g.emitLabel(elseLabel)
	if err := g.genBody(s.Else); err != nil {
		return err
	}
	g.emitLabel(exitLabel)
	return nil
}

func (g *Generator) VisitWhileStmt(s *ast.WhileStmt) error {
	top := g.em.NewLabel()
	end := g.em.NewLabel()
	g.emitLabel(top)
	if _, err := s.Cond.Accept(g); err != nil {
		return err
	}
	g.pop("$t0")
	g.emit("beq $t0, $zero, %s", end)
	if err := g.genBody(s.Body); err != nil {
		return err
	}
	g.emit("j %s", top)
	g.emitLabel(end)
	return nil
}

// VisitRepeatStmt desugars `repeat (cond) { body }` into a counted while
// loop (§9's first resolution option), using a codegen-private frame
// slot for the counter.
func (g *Generator) VisitRepeatStmt(s *ast.RepeatStmt) error {
	counterOffset := g.frame.allocSynthetic()
	if _, err := s.Cond.Accept(g); err != nil {
		return err
	}
	g.pop("$t0")
	g.emit("sw $t0, %d($fp)", counterOffset)

	top := g.em.NewLabel()
	end := g.em.NewLabel()
	g.emitLabel(top)
	g.emit("lw $t0, %d($fp)", counterOffset)
	g.emit("blez $t0, %s", end)
	if err := g.genBody(s.Body); err != nil {
		return err
	}
	g.emit("lw $t0, %d($fp)", counterOffset)
	g.emit("addi $t0, $t0, -1")
	g.emit("sw $t0, %d($fp)", counterOffset)
	g.emit("j %s", top)
	g.emitLabel(end)
	return nil
}

func (g *Generator) VisitCallStmt(s *ast.CallStmt) error {
	if _, err := s.Call.Accept(g); err != nil {
		return err
	}
	g.pop("$t0")
	return nil
}

func (g *Generator) VisitReturnStmt(s *ast.ReturnStmt) error {
	if s.Exp != nil {
		if _, err := s.Exp.Accept(g); err != nil {
			return err
		}
		g.pop("$v0")
	}
	g.exitSequence()
	return nil
}

// Expressions.

func (g *Generator) VisitIntLit(e *ast.IntLit) (interface{}, error) {
	g.emit("li $t0, %d", e.Value)
	g.push("$t0")
	return nil, nil
}

func (g *Generator) VisitStringLit(e *ast.StringLit) (interface{}, error) {
	label := g.em.StringLabel(e.Value)
	g.emit("la $t0, %s", label)
	g.push("$t0")
	return nil, nil
}

func (g *Generator) VisitTrueLit(e *ast.TrueLit) (interface{}, error) {
	g.emit("li $t0, 1")
	g.push("$t0")
	return nil, nil
}

func (g *Generator) VisitFalseLit(e *ast.FalseLit) (interface{}, error) {
	g.emit("li $t0, 0")
	g.push("$t0")
	return nil, nil
}

func (g *Generator) VisitIdent(e *ast.Ident) (interface{}, error) {
	if e.Sym == nil {
		g.log.Panic("codegen: unresolved identifier reached value generation", zap.String("name", e.Name))
	}
	g.emit("lw $t0, %s", g.operand(e.Sym))
	g.push("$t0")
	return nil, nil
}

func (g *Generator) VisitDotAccess(e *ast.DotAccess) (interface{}, error) {
	g.comment("struct field access has no code generation")
	g.emit("li $t0, 0")
	g.push("$t0")
	return nil, nil
}

func (g *Generator) VisitAssignExpr(e *ast.AssignExpr) (interface{}, error) {
	if _, err := e.Rhs.Accept(g); err != nil {
		return nil, err
	}
	if err := g.genAddress(e.Lhs); err != nil {
		return nil, err
	}
	g.pop("$t0") // address
	g.pop("$t1") // value
	g.emit("sw $t1, 0($t0)")
	g.push("$t1")
	return nil, nil
}

func (g *Generator) VisitCallExpr(e *ast.CallExpr) (interface{}, error) {
	for _, arg := range e.Args {
		if _, err := arg.Accept(g); err != nil {
			return nil, err
		}
	}
	g.emit("jal %s", functionLabel(e.Fn.Name))
	if n := len(e.Args); n > 0 {
		g.emit("addu $sp, $sp, %d", 4*n)
	}
	g.push("$v0")
	return nil, nil
}

func (g *Generator) VisitUnaryMinus(e *ast.UnaryMinus) (interface{}, error) {
	if _, err := e.Exp.Accept(g); err != nil {
		return nil, err
	}
	g.pop("$t0")
	g.emit("sub $t0, $zero, $t0")
	g.push("$t0")
	return nil, nil
}

// VisitNot lowers `!x` as negate-then-increment (0-x, then +1), which is
// only correct for x in {0,1} — faithfully reproducing the documented
// behavior for other operand values rather than "fixing" it (§9).
func (g *Generator) VisitNot(e *ast.Not) (interface{}, error) {
	if _, err := e.Exp.Accept(g); err != nil {
		return nil, err
	}
	g.pop("$t0")
	g.emit("sub $t0, $zero, $t0")
	g.emit("addi $t0, $t0, 1")
	g.push("$t0")
	return nil, nil
}

func mnemonicFor(op ast.BinOp) string {
	switch op {
	case ast.OpPlus:
		return "add"
	case ast.OpMinus:
		return "sub"
	case ast.OpTimes:
		return "mul"
	case ast.OpDivide:
		return "div"
	case ast.OpEquals:
		return "seq"
	case ast.OpNotEquals:
		return "sne"
	case ast.OpLess:
		return "slt"
	case ast.OpGreater:
		return "sgt"
	case ast.OpLessEq:
		return "sle"
	case ast.OpGreaterEq:
		return "sge"
	default:
		return "?"
	}
}

func (g *Generator) VisitBinaryExpr(e *ast.BinaryExpr) (interface{}, error) {
	switch e.Op {
	case ast.OpAnd:
		return nil, g.genShortCircuitAnd(e)
	case ast.OpOr:
		return nil, g.genShortCircuitOr(e)
	}

	// Right is evaluated before left, but left is pushed last, so popping
	// in push order yields left first.
	if _, err := e.Right.Accept(g); err != nil {
		return nil, err
	}
	if _, err := e.Left.Accept(g); err != nil {
		return nil, err
	}
	g.pop("$t0") // left
	g.pop("$t1") // right
	g.emit("%s $t0, $t0, $t1", mnemonicFor(e.Op))
	g.push("$t0")
	return nil, nil
}

func (g *Generator) genShortCircuitAnd(e *ast.BinaryExpr) error {
	if _, err := e.Left.Accept(g); err != nil {
		return err
	}
	g.pop("$t0")
	end := g.em.NewLabel()
	g.emit("beq $t0, $zero, %s", end)
	if _, err := e.Right.Accept(g); err != nil {
		return err
	}
	g.pop("$t1")
	g.emit("and $t0, $t0, $t1")
	g.emitLabel(end)
	g.push("$t0")
	return nil
}

func (g *Generator) genShortCircuitOr(e *ast.BinaryExpr) error {
	if _, err := e.Left.Accept(g); err != nil {
		return err
	}
	g.pop("$t0")
	end := g.em.NewLabel()
	g.emit("bne $t0, $zero, %s", end)
	if _, err := e.Right.Accept(g); err != nil {
		return err
	}
	g.pop("$t1")
	g.emit("or $t0, $t0, $t1")
	g.emitLabel(end)
	g.push("$t0")
	return nil
}
