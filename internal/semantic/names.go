package semantic

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hassandahiru/minic/internal/diag"
	"github.com/hassandahiru/minic/internal/lexer"
	"github.com/hassandahiru/minic/internal/parser/ast"
	"github.com/hassandahiru/minic/internal/semantic/types"
	"github.com/hassandahiru/minic/internal/symtab"
)

// NameAnalyzer implements ast.Visitor for the first of the two semantic
// passes: it binds every identifier use to a symbol, builds the struct-
// definition arena, and assigns frame offsets. It never computes a value
// type for an expression — that is CheckTypes's job, run afterward over
// the same annotated tree.
//
// DESIGN CHOICE: one flat counter (localOffset) per function rather than
// one per block. if/while/repeat bodies each get their own scope (so a
// sibling branch can reuse a local's name without colliding), but the
// frame-offset counter is reset only at FnDecl entry, so nested blocks
// still draw fresh slots from the same function-wide sequence rather
// than reusing them across sibling branches.
type NameAnalyzer struct {
	table *symtab.Table
	arena *symtab.DefArena
	sink  *diag.Sink
	log   *zap.Logger

	localOffset int
	inFunction  bool
}

// AnalyzeNames runs name analysis over program, reporting diagnostics to
// sink, and returns the struct-definition arena built along the way.
// CheckTypes and Generate do not take the arena; they read the symbol
// links this pass leaves on the tree.
func AnalyzeNames(program *ast.Program, sink *diag.Sink, log *zap.Logger) *symtab.DefArena {
	a := &NameAnalyzer{
		table: symtab.New(),
		arena: symtab.NewDefArena(),
		sink:  sink,
		log:   log,
	}
	log.Debug("name analysis: start", zap.Int("decls", len(program.Decls)))
	a.table.PushScope()
	for _, d := range program.Decls {
		if err := d.Accept(a); err != nil {
			log.Warn("name analysis: visitor returned error", zap.Error(err))
		}
	}
	if sym, ok := a.table.LookupLocal("main"); !ok || sym.Fn == nil {
		sink.Fatal(0, 0, "No main function")
	}
	a.table.PopScope()
	log.Debug("name analysis: done", zap.Int("errors", len(sink.Errors())))
	return a.arena
}

func (a *NameAnalyzer) error(pos lexer.Position, format string, args ...interface{}) {
	a.sink.Fatal(pos.Line, pos.Column, format, args...)
}

// resolveType turns a type-annotation node into a Type value, reporting
// "Non-function declared void" for VoidType and "Invalid name of struct
// type" for an unresolvable StructType, both at errPos per §4.2. It
// returns whether the type is struct-valued and, if so, its def index —
// VoidType is rejected here; FnDecl's return type goes through
// resolveRetType instead, which allows it.
func (a *NameAnalyzer) resolveType(t ast.TypeExpr, errPos lexer.Position) (typ types.Type, isStruct bool, defIndex int) {
	switch tt := t.(type) {
	case *ast.IntType:
		return types.Int, false, 0
	case *ast.BoolType:
		return types.Bool, false, 0
	case *ast.StringTypeExpr:
		return types.String, false, 0
	case *ast.VoidType:
		a.error(errPos, "Non-function declared void")
		return types.Error, false, 0
	case *ast.StructType:
		sym, ok := a.table.LookupGlobal(tt.Id.Name)
		if !ok {
			a.error(errPos, "Invalid name of struct type")
			return types.Error, false, 0
		}
		defType, ok := sym.Type.(types.StructDefType)
		if !ok {
			a.error(errPos, "Invalid name of struct type")
			return types.Error, false, 0
		}
		tt.Id.Sym = sym
		tt.HasStructDef = true
		tt.StructDefIndex = sym.StructDefIndex
		return types.NewStructValue(defType.Name, defType.Identity), true, sym.StructDefIndex
	default:
		a.log.Panic("name analysis: unknown type expression", zap.String("type", fmt.Sprintf("%T", t)))
		return types.Error, false, 0
	}
}

// resolveRetType is resolveType's counterpart for FnDecl.RetType, which
// is the one type position where void is legal.
func (a *NameAnalyzer) resolveRetType(t ast.TypeExpr) types.Type {
	if _, ok := t.(*ast.VoidType); ok {
		return types.Void
	}
	typ, _, _ := a.resolveType(t, t.Pos())
	return typ
}

func (a *NameAnalyzer) VisitVarDecl(d *ast.VarDecl) error {
	typ, isStruct, defIndex := a.resolveType(d.Type, d.Id.Pos())

	if _, exists := a.table.LookupLocal(d.Id.Name); exists {
		a.error(d.Id.Pos(), "Multiply declared identifier")
		return nil
	}
	if types.IsError(typ) {
		return nil
	}

	sym := &symtab.Symbol{
		Name:           d.Id.Name,
		Type:           typ,
		Pos:            d.Id.Pos(),
		Struct:         isStruct,
		StructDefIndex: defIndex,
	}
	if a.inFunction {
		sym.Storage = symtab.Local
		sym.Offset = -8 - 4*a.localOffset
		a.localOffset++
	} else {
		sym.Storage = symtab.Global
	}
	if err := a.table.InsertLocal(d.Id.Name, sym); err != nil {
		return err
	}
	d.Sym = sym
	d.Id.Sym = sym
	return nil
}

func (a *NameAnalyzer) VisitFormalDecl(d *ast.FormalDecl) error {
	typ, isStruct, defIndex := a.resolveType(d.Type, d.Id.Pos())

	if _, exists := a.table.LookupLocal(d.Id.Name); exists {
		a.error(d.Id.Pos(), "Multiply declared identifier")
		return nil
	}
	if types.IsError(typ) {
		return nil
	}

	sym := &symtab.Symbol{
		Name:           d.Id.Name,
		Type:           typ,
		Storage:        symtab.Param,
		Pos:            d.Id.Pos(),
		Struct:         isStruct,
		StructDefIndex: defIndex,
	}
	if err := a.table.InsertLocal(d.Id.Name, sym); err != nil {
		return err
	}
	d.Sym = sym
	d.Id.Sym = sym
	return nil
}

func (a *NameAnalyzer) VisitFnDecl(d *ast.FnDecl) error {
	retType := a.resolveRetType(d.RetType)

	dup := false
	if _, exists := a.table.LookupLocal(d.Id.Name); exists {
		a.error(d.Id.Pos(), "Multiply declared identifier")
		dup = true
	}

	fn := &symtab.FunctionSymbol{Ret: retType}
	sym := &symtab.Symbol{Name: d.Id.Name, Storage: symtab.Global, Pos: d.Id.Pos(), Fn: fn}
	// Inserted before the body is analyzed (rather than after, as a plain
	// VarDecl would be) so a function can call itself.
	if !dup {
		_ = a.table.InsertLocal(d.Id.Name, sym)
	}
	d.Sym = sym
	d.Id.Sym = sym

	savedOffset, savedInFunction := a.localOffset, a.inFunction
	a.localOffset = 0
	a.inFunction = true
	a.table.PushScope()

	for _, f := range d.Formals {
		if err := f.Accept(a); err != nil {
			a.log.Warn("name analysis: formal visit error", zap.Error(err))
		}
	}
	n := len(d.Formals)
	params := make([]types.Type, n)
	for i, f := range d.Formals {
		if f.Sym != nil {
			f.Sym.Offset = 4 * (n - i)
			params[i] = f.Sym.Type
		} else {
			params[i] = types.Error
		}
	}
	fn.Params = params
	sym.Type = types.NewFn(params, retType)

	a.analyzeFnBody(d.Body)

	fn.LocalFrameBytes = 4 * a.localOffset
	if _, err := a.table.PopScope(); err != nil {
		a.log.Warn("name analysis: pop scope", zap.Error(err))
	}
	a.localOffset, a.inFunction = savedOffset, savedInFunction
	return nil
}

func (a *NameAnalyzer) VisitStructDecl(d *ast.StructDecl) error {
	_, dup := a.table.LookupLocal(d.Id.Name)
	if dup {
		a.error(d.Id.Pos(), "Multiply declared identifier")
	}

	fieldsTable := symtab.New()
	fieldsTable.PushScope()
	for _, f := range d.Fields {
		a.analyzeStructField(f, fieldsTable)
	}

	if dup {
		return nil
	}
	idx := a.arena.Add(&symtab.StructDefSymbol{Name: d.Id.Name, Fields: fieldsTable})
	d.DefIndex = idx
	sym := &symtab.Symbol{
		Name:           d.Id.Name,
		Type:           types.NewStructDef(d.Id.Name, d.Id),
		Pos:            d.Id.Pos(),
		StructDefIndex: idx,
	}
	_ = a.table.InsertLocal(d.Id.Name, sym)
	d.Id.Sym = sym
	return nil
}

// analyzeStructField resolves and inserts one field, per §4.2's "analyze
// the field list against [the nested table] (using the outer table as
// the global lookup context for struct-type references)". fieldsTable
// only receives the field's own insertion; type name lookups still run
// against a.table, which is untouched here (no scope is pushed onto it
// for struct bodies).
func (a *NameAnalyzer) analyzeStructField(f *ast.VarDecl, fieldsTable *symtab.Table) {
	typ, isStruct, defIndex := a.resolveType(f.Type, f.Id.Pos())

	if _, exists := fieldsTable.LookupLocal(f.Id.Name); exists {
		a.error(f.Id.Pos(), "Multiply declared identifier")
		return
	}
	if types.IsError(typ) {
		return
	}
	sym := &symtab.Symbol{
		Name:           f.Id.Name,
		Type:           typ,
		Pos:            f.Id.Pos(),
		Struct:         isStruct,
		StructDefIndex: defIndex,
	}
	_ = fieldsTable.InsertLocal(f.Id.Name, sym)
	f.Sym = sym
	f.Id.Sym = sym
}

// analyzeFnBody walks a declaration+statement block against the current
// innermost scope without pushing a new one — used for a function's own
// top-level body, which shares the scope FnDecl already pushed.
func (a *NameAnalyzer) analyzeFnBody(body *ast.FnBody) {
	for _, decl := range body.Decls {
		if err := decl.Accept(a); err != nil {
			a.log.Warn("name analysis: decl visit error", zap.Error(err))
		}
	}
	for _, stmt := range body.Stmts {
		if err := stmt.Accept(a); err != nil {
			a.log.Warn("name analysis: stmt visit error", zap.Error(err))
		}
	}
}

// analyzeBlock is analyzeFnBody's counterpart for if/while/repeat bodies,
// which per the glossary ("Scope ... entered on function, if, while,
// repeat, and struct declaration") each get their own scope — so a local
// declared in one branch doesn't collide with a same-named local in a
// sibling branch. The frame-offset counter is deliberately NOT reset
// here: it is a per-function counter (§4.2), only reset at FnDecl entry,
// so nested blocks still consume fresh slots rather than reusing them.
func (a *NameAnalyzer) analyzeBlock(body *ast.FnBody) {
	a.table.PushScope()
	a.analyzeFnBody(body)
	if _, err := a.table.PopScope(); err != nil {
		a.log.Warn("name analysis: pop scope", zap.Error(err))
	}
}

func (a *NameAnalyzer) VisitAssignStmt(s *ast.AssignStmt) error {
	_, err := s.Assign.Accept(a)
	return err
}

func (a *NameAnalyzer) VisitPreIncStmt(s *ast.PreIncStmt) error {
	_, err := s.Loc.Accept(a)
	return err
}

func (a *NameAnalyzer) VisitPreDecStmt(s *ast.PreDecStmt) error {
	_, err := s.Loc.Accept(a)
	return err
}

func (a *NameAnalyzer) VisitReceiveStmt(s *ast.ReceiveStmt) error {
	_, err := s.Loc.Accept(a)
	return err
}

func (a *NameAnalyzer) VisitPrintStmt(s *ast.PrintStmt) error {
	_, err := s.Exp.Accept(a)
	return err
}

func (a *NameAnalyzer) VisitIfStmt(s *ast.IfStmt) error {
	if _, err := s.Cond.Accept(a); err != nil {
		return err
	}
	a.analyzeBlock(s.Body)
	return nil
}

func (a *NameAnalyzer) VisitIfElseStmt(s *ast.IfElseStmt) error {
	if _, err := s.Cond.Accept(a); err != nil {
		return err
	}
	a.analyzeBlock(s.Then)
	a.analyzeBlock(s.Else)
	return nil
}

func (a *NameAnalyzer) VisitWhileStmt(s *ast.WhileStmt) error {
	if _, err := s.Cond.Accept(a); err != nil {
		return err
	}
	a.analyzeBlock(s.Body)
	return nil
}

func (a *NameAnalyzer) VisitRepeatStmt(s *ast.RepeatStmt) error {
	if _, err := s.Cond.Accept(a); err != nil {
		return err
	}
	a.analyzeBlock(s.Body)
	return nil
}

func (a *NameAnalyzer) VisitCallStmt(s *ast.CallStmt) error {
	_, err := s.Call.Accept(a)
	return err
}

func (a *NameAnalyzer) VisitReturnStmt(s *ast.ReturnStmt) error {
	if s.Exp == nil {
		return nil
	}
	_, err := s.Exp.Accept(a)
	return err
}

func (a *NameAnalyzer) VisitIntLit(e *ast.IntLit) (interface{}, error)     { return nil, nil }
func (a *NameAnalyzer) VisitStringLit(e *ast.StringLit) (interface{}, error) { return nil, nil }
func (a *NameAnalyzer) VisitTrueLit(e *ast.TrueLit) (interface{}, error)   { return nil, nil }
func (a *NameAnalyzer) VisitFalseLit(e *ast.FalseLit) (interface{}, error) { return nil, nil }

func (a *NameAnalyzer) VisitIdent(e *ast.Ident) (interface{}, error) {
	sym, ok := a.table.LookupGlobal(e.Name)
	if !ok {
		a.error(e.Pos(), "Undeclared identifier")
		return nil, nil
	}
	e.Sym = sym
	return nil, nil
}

func (a *NameAnalyzer) VisitDotAccess(e *ast.DotAccess) (interface{}, error) {
	var defIndex int

	switch loc := e.Loc.(type) {
	case *ast.Ident:
		if _, err := loc.Accept(a); err != nil {
			return nil, err
		}
		if loc.Sym == nil {
			e.BadAccess = true
			return nil, nil
		}
		if !loc.Sym.Struct {
			a.error(loc.Pos(), "Dot-access of non-struct type")
			e.BadAccess = true
			return nil, nil
		}
		defIndex = loc.Sym.StructDefIndex
	case *ast.DotAccess:
		if _, err := loc.Accept(a); err != nil {
			return nil, err
		}
		if loc.BadAccess {
			e.BadAccess = true
			return nil, nil
		}
		if !loc.HasStructDef {
			a.error(loc.Pos(), "Dot-access of non-struct type")
			e.BadAccess = true
			return nil, nil
		}
		defIndex = loc.StructDefIndex
	default:
		a.log.Panic("name analysis: unexpected dot-access location", zap.String("type", fmt.Sprintf("%T", e.Loc)))
	}

	def := a.arena.Get(defIndex)
	fieldSym, found := def.Fields.LookupLocal(e.Id.Name)
	if !found {
		a.error(e.Id.Pos(), "Invalid struct field name")
		e.BadAccess = true
		return nil, nil
	}
	e.Id.Sym = fieldSym
	if fieldSym.Struct {
		e.StructDefIndex = fieldSym.StructDefIndex
		e.HasStructDef = true
	}
	return nil, nil
}

func (a *NameAnalyzer) VisitAssignExpr(e *ast.AssignExpr) (interface{}, error) {
	if _, err := e.Lhs.Accept(a); err != nil {
		return nil, err
	}
	if _, err := e.Rhs.Accept(a); err != nil {
		return nil, err
	}
	return nil, nil
}

func (a *NameAnalyzer) VisitCallExpr(e *ast.CallExpr) (interface{}, error) {
	if _, err := e.Fn.Accept(a); err != nil {
		return nil, err
	}
	for _, arg := range e.Args {
		if _, err := arg.Accept(a); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (a *NameAnalyzer) VisitUnaryMinus(e *ast.UnaryMinus) (interface{}, error) {
	_, err := e.Exp.Accept(a)
	return nil, err
}

func (a *NameAnalyzer) VisitNot(e *ast.Not) (interface{}, error) {
	_, err := e.Exp.Accept(a)
	return nil, err
}

func (a *NameAnalyzer) VisitBinaryExpr(e *ast.BinaryExpr) (interface{}, error) {
	if _, err := e.Left.Accept(a); err != nil {
		return nil, err
	}
	_, err := e.Right.Accept(a)
	return nil, err
}
