package parser

import (
	"testing"

	"github.com/hassandahiru/minic/internal/lexer"
	"github.com/hassandahiru/minic/internal/parser/ast"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src, "test.src")
	p := New(l)
	prog, errs := p.ParseProgram()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return prog
}

func TestParser_VarDecl(t *testing.T) {
	prog := parse(t, "int x;")
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(prog.Decls))
	}
	v, ok := prog.Decls[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Decls[0])
	}
	if v.Id.Name != "x" {
		t.Errorf("expected name x, got %s", v.Id.Name)
	}
	if _, ok := v.Type.(*ast.IntType); !ok {
		t.Errorf("expected int type, got %T", v.Type)
	}
	if v.Size != 1 {
		t.Errorf("expected size 1, got %d", v.Size)
	}
}

func TestParser_ArrayVarDecl(t *testing.T) {
	prog := parse(t, "int xs[10];")
	v := prog.Decls[0].(*ast.VarDecl)
	if v.Size != 10 {
		t.Errorf("expected size 10, got %d", v.Size)
	}
}

func TestParser_StructDecl(t *testing.T) {
	prog := parse(t, "struct Point { int x; int y; };")
	s, ok := prog.Decls[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("expected *ast.StructDecl, got %T", prog.Decls[0])
	}
	if s.Id.Name != "Point" {
		t.Errorf("expected name Point, got %s", s.Id.Name)
	}
	if len(s.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(s.Fields))
	}
}

func TestParser_StructVarVsStructDecl(t *testing.T) {
	prog := parse(t, "struct Point p;")
	v, ok := prog.Decls[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Decls[0])
	}
	st, ok := v.Type.(*ast.StructType)
	if !ok {
		t.Fatalf("expected *ast.StructType, got %T", v.Type)
	}
	if st.Id.Name != "Point" {
		t.Errorf("expected struct name Point, got %s", st.Id.Name)
	}
}

func TestParser_FnDecl(t *testing.T) {
	prog := parse(t, `
int add(int a, int b) {
	return a + b;
}
`)
	f, ok := prog.Decls[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("expected *ast.FnDecl, got %T", prog.Decls[0])
	}
	if f.Id.Name != "add" {
		t.Errorf("expected name add, got %s", f.Id.Name)
	}
	if len(f.Formals) != 2 {
		t.Fatalf("expected 2 formals, got %d", len(f.Formals))
	}
	if len(f.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(f.Body.Stmts))
	}
	ret, ok := f.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", f.Body.Stmts[0])
	}
	bin, ok := ret.Exp.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", ret.Exp)
	}
	if bin.Op != ast.OpPlus {
		t.Errorf("expected OpPlus, got %v", bin.Op)
	}
}

func TestParser_FnBodyLocals(t *testing.T) {
	prog := parse(t, `
void main() {
	int x;
	x = 1;
}
`)
	f := prog.Decls[0].(*ast.FnDecl)
	if len(f.Body.Decls) != 1 {
		t.Fatalf("expected 1 local decl, got %d", len(f.Body.Decls))
	}
	if len(f.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(f.Body.Stmts))
	}
}

func TestParser_IfElse(t *testing.T) {
	prog := parse(t, `
void main() {
	if (1 == 1) {
		print 1;
	} else {
		print 0;
	}
}
`)
	f := prog.Decls[0].(*ast.FnDecl)
	ie, ok := f.Body.Stmts[0].(*ast.IfElseStmt)
	if !ok {
		t.Fatalf("expected *ast.IfElseStmt, got %T", f.Body.Stmts[0])
	}
	if len(ie.Then.Stmts) != 1 || len(ie.Else.Stmts) != 1 {
		t.Fatalf("expected one statement per branch")
	}
}

func TestParser_While(t *testing.T) {
	prog := parse(t, `
void main() {
	int i;
	while (i < 10) {
		i++;
	}
}
`)
	f := prog.Decls[0].(*ast.FnDecl)
	w, ok := f.Body.Stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected *ast.WhileStmt, got %T", f.Body.Stmts[0])
	}
	if len(w.Body.Stmts) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(w.Body.Stmts))
	}
	if _, ok := w.Body.Stmts[0].(*ast.PreIncStmt); !ok {
		t.Errorf("expected *ast.PreIncStmt, got %T", w.Body.Stmts[0])
	}
}

func TestParser_Repeat(t *testing.T) {
	prog := parse(t, `
void main() {
	repeat (5) {
		print 1;
	}
}
`)
	f := prog.Decls[0].(*ast.FnDecl)
	if _, ok := f.Body.Stmts[0].(*ast.RepeatStmt); !ok {
		t.Fatalf("expected *ast.RepeatStmt, got %T", f.Body.Stmts[0])
	}
}

func TestParser_DotAccessChain(t *testing.T) {
	prog := parse(t, `
void main() {
	a.b.c = 1;
}
`)
	f := prog.Decls[0].(*ast.FnDecl)
	assign, ok := f.Body.Stmts[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected *ast.AssignStmt, got %T", f.Body.Stmts[0])
	}
	outer, ok := assign.Assign.Lhs.(*ast.DotAccess)
	if !ok {
		t.Fatalf("expected outer *ast.DotAccess, got %T", assign.Assign.Lhs)
	}
	if outer.Id.Name != "c" {
		t.Errorf("expected outer field c, got %s", outer.Id.Name)
	}
	inner, ok := outer.Loc.(*ast.DotAccess)
	if !ok {
		t.Fatalf("expected inner *ast.DotAccess, got %T", outer.Loc)
	}
	if inner.Id.Name != "b" {
		t.Errorf("expected inner field b, got %s", inner.Id.Name)
	}
}

func TestParser_CallExprAndStmt(t *testing.T) {
	prog := parse(t, `
void main() {
	int x;
	x = call add(1, 2);
	call print_stuff();
}
`)
	f := prog.Decls[0].(*ast.FnDecl)

	assign := f.Body.Stmts[0].(*ast.AssignStmt)
	call, ok := assign.Assign.Rhs.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr, got %T", assign.Assign.Rhs)
	}
	if call.Fn.Name != "add" || len(call.Args) != 2 {
		t.Errorf("unexpected call: %+v", call)
	}

	if _, ok := f.Body.Stmts[1].(*ast.CallStmt); !ok {
		t.Fatalf("expected *ast.CallStmt, got %T", f.Body.Stmts[1])
	}
}

func TestParser_OperatorPrecedence(t *testing.T) {
	prog := parse(t, `
void main() {
	int x;
	x = 1 + 2 * 3;
}
`)
	f := prog.Decls[0].(*ast.FnDecl)
	assign := f.Body.Stmts[0].(*ast.AssignStmt)
	top, ok := assign.Assign.Rhs.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", assign.Assign.Rhs)
	}
	if top.Op != ast.OpPlus {
		t.Fatalf("expected top-level OpPlus, got %v", top.Op)
	}
	if _, ok := top.Left.(*ast.IntLit); !ok {
		t.Errorf("expected left operand to be a literal, got %T", top.Left)
	}
	right, ok := top.Right.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected right operand to be *ast.BinaryExpr, got %T", top.Right)
	}
	if right.Op != ast.OpTimes {
		t.Errorf("expected nested OpTimes, got %v", right.Op)
	}
}

func TestParser_ShortCircuitPrecedence(t *testing.T) {
	prog := parse(t, `
void main() {
	bool b;
	b = true || false && false;
}
`)
	f := prog.Decls[0].(*ast.FnDecl)
	assign := f.Body.Stmts[0].(*ast.AssignStmt)
	top := assign.Assign.Rhs.(*ast.BinaryExpr)
	if top.Op != ast.OpOr {
		t.Fatalf("expected top-level OpOr (&& binds tighter), got %v", top.Op)
	}
	if _, ok := top.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("expected right side to be the nested && expression, got %T", top.Right)
	}
}

func TestParser_UnaryChain(t *testing.T) {
	prog := parse(t, `
void main() {
	int x;
	x = - -1;
}
`)
	f := prog.Decls[0].(*ast.FnDecl)
	assign := f.Body.Stmts[0].(*ast.AssignStmt)
	outer, ok := assign.Assign.Rhs.(*ast.UnaryMinus)
	if !ok {
		t.Fatalf("expected *ast.UnaryMinus, got %T", assign.Assign.Rhs)
	}
	if _, ok := outer.Exp.(*ast.UnaryMinus); !ok {
		t.Errorf("expected nested unary minus, got %T", outer.Exp)
	}
}

func TestParser_StringLiteralEscapes(t *testing.T) {
	prog := parse(t, `void main() { print "a\nb"; }`)
	f := prog.Decls[0].(*ast.FnDecl)
	print := f.Body.Stmts[0].(*ast.PrintStmt)
	lit, ok := print.Exp.(*ast.StringLit)
	if !ok {
		t.Fatalf("expected *ast.StringLit, got %T", print.Exp)
	}
	if lit.Value != "a\nb" {
		t.Errorf("expected %q, got %q", "a\nb", lit.Value)
	}
}

func TestParser_SyntaxErrorIsReported(t *testing.T) {
	l := lexer.New("int x", "test.src") // missing ';'
	p := New(l)
	_, errs := p.ParseProgram()
	if len(errs) == 0 {
		t.Fatal("expected at least one parse error for a missing ';'")
	}
}
