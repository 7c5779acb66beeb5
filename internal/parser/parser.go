// Package parser implements a recursive descent parser for the compiler.
//
// PARSING STRATEGY:
// Plain recursive descent, one function per grammar production. The
// expression grammar is already broken into precedence levels (exp9
// down to exp2) by the language's own grammar, so there's no need for
// a Pratt/precedence-climbing layer on top — each level's parse
// function simply calls the next-tighter level and loops on its own
// operator set.
//
// ERROR HANDLING STRATEGY:
// - Report errors but continue parsing (find multiple errors in one pass)
// - Use panic/recover for error recovery at declaration boundaries
// - Return errors to caller for fine-grained control
package parser

import (
	"fmt"
	"strconv"

	"github.com/hassandahiru/minic/internal/lexer"
	"github.com/hassandahiru/minic/internal/parser/ast"
)

// Parser converts a stream of tokens into an Abstract Syntax Tree.
type Parser struct {
	lexer *lexer.Lexer

	current  lexer.Token
	previous lexer.Token

	// errors accumulates all parsing errors. Accumulating rather than
	// stopping at the first error gives a caller every syntax mistake in
	// one pass, matching how the rest of the pipeline reports diagnostics.
	errors []error

	panicMode bool
}

// New creates a new parser for the given lexer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		errors: make([]error, 0),
	}
	p.advance()
	return p
}

// ParseProgram parses a complete source file: a sequence of declarations.
//
//	program = decl* EOF
func (p *Parser) ParseProgram() (*ast.Program, []error) {
	prog := &ast.Program{Decls: make([]ast.Decl, 0)}

	for !p.isAtEnd() {
		decl := p.parseDecl()
		if decl != nil {
			prog.Decls = append(prog.Decls, decl)
		}
	}

	return prog, p.errors
}

// parseDecl parses a top-level declaration.
//
//	decl = varDecl | fnDecl | structDecl
//
// Disambiguating fnDecl from varDecl requires lookahead past the type and
// identifier: both start the same way, and only a following '(' marks a
// function.
func (p *Parser) parseDecl() (decl ast.Decl) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
			decl = nil
		}
	}()

	if p.check(lexer.TokenStruct) && p.peekIsStructDecl() {
		return p.parseStructDecl()
	}

	typeExpr := p.parseType()
	if !p.check(lexer.TokenIdentifier) {
		p.error(fmt.Sprintf("expected identifier, got %s", p.current.Type))
		panic("invalid declaration")
	}
	id := p.parseIdent()

	if p.check(lexer.TokenLeftParen) {
		return p.parseFnDecl(typeExpr, id)
	}
	return p.parseVarDeclTail(typeExpr, id)
}

// peekIsStructDecl distinguishes `struct Name { ... };` (a struct
// definition) from `struct Name v;` (a variable of struct type) by
// looking at the token after the struct's name.
func (p *Parser) peekIsStructDecl() bool {
	// current is 'struct'; we need one token of lookahead past the name.
	// The lexer has no backtracking API, so we clone it at this offset.
	save := *p.lexer
	savedCur, savedPrev, savedPanic := p.current, p.previous, p.panicMode

	p.advance() // consume 'struct'
	if !p.check(lexer.TokenIdentifier) {
		*p.lexer, p.current, p.previous, p.panicMode = save, savedCur, savedPrev, savedPanic
		return false
	}
	p.advance() // consume the name
	isDecl := p.check(lexer.TokenLeftBrace)

	*p.lexer, p.current, p.previous, p.panicMode = save, savedCur, savedPrev, savedPanic
	return isDecl
}

// parseType parses a type annotation.
//
//	type = 'int' | 'bool' | 'void' | 'string' | 'struct' id
func (p *Parser) parseType() ast.TypeExpr {
	pos := p.current.Position
	switch {
	case p.match(lexer.TokenInt):
		return &ast.IntType{BaseNode: ast.BaseNode{StartPos: pos}}
	case p.match(lexer.TokenBool):
		return &ast.BoolType{BaseNode: ast.BaseNode{StartPos: pos}}
	case p.match(lexer.TokenVoid):
		return &ast.VoidType{BaseNode: ast.BaseNode{StartPos: pos}}
	case p.match(lexer.TokenStringKw):
		return &ast.StringTypeExpr{BaseNode: ast.BaseNode{StartPos: pos}}
	case p.match(lexer.TokenStruct):
		if !p.check(lexer.TokenIdentifier) {
			p.error("expected struct name after 'struct'")
			panic("invalid type")
		}
		id := p.parseIdent()
		return &ast.StructType{BaseNode: ast.BaseNode{StartPos: pos}, Id: id}
	default:
		p.error(fmt.Sprintf("expected a type, got %s", p.current.Type))
		panic("invalid type")
	}
}

// parseVarDeclTail parses the remainder of a variable declaration after
// its type and identifier have already been consumed:
//
//	varDecl = type id ('[' number ']')? ';'
func (p *Parser) parseVarDeclTail(typeExpr ast.TypeExpr, id *ast.Ident) *ast.VarDecl {
	pos := typeExpr.Pos()
	size := 1
	if p.match(lexer.TokenLeftBracket) {
		if !p.check(lexer.TokenNumber) {
			p.error("expected array size")
			panic("invalid variable declaration")
		}
		n, err := strconv.Atoi(p.current.Lexeme)
		if err != nil {
			p.error(fmt.Sprintf("invalid array size: %s", p.current.Lexeme))
		}
		size = n
		p.advance()
		p.consume(lexer.TokenRightBracket, "expected ']' after array size")
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")

	return &ast.VarDecl{
		BaseNode: ast.BaseNode{StartPos: pos},
		Type:     typeExpr,
		Id:       id,
		Size:     size,
	}
}

// parseFnDecl parses the remainder of a function declaration after its
// return type and name have already been consumed:
//
//	fnDecl = type id '(' formals? ')' '{' fnBody '}'
func (p *Parser) parseFnDecl(retType ast.TypeExpr, id *ast.Ident) *ast.FnDecl {
	pos := retType.Pos()
	p.consume(lexer.TokenLeftParen, "expected '(' after function name")
	formals := p.parseFormals()
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")

	p.consume(lexer.TokenLeftBrace, "expected '{' before function body")
	body := p.parseFnBody()
	p.consume(lexer.TokenRightBrace, "expected '}' after function body")

	return &ast.FnDecl{
		BaseNode: ast.BaseNode{StartPos: pos},
		RetType:  retType,
		Id:       id,
		Formals:  formals,
		Body:     body,
	}
}

// parseFormals parses a (possibly empty) formal parameter list.
//
//	formals = formalDecl (',' formalDecl)*
//	formalDecl = type id
func (p *Parser) parseFormals() []*ast.FormalDecl {
	formals := make([]*ast.FormalDecl, 0)
	if p.check(lexer.TokenRightParen) {
		return formals
	}
	for {
		pos := p.current.Position
		typeExpr := p.parseType()
		if !p.check(lexer.TokenIdentifier) {
			p.error("expected parameter name")
			break
		}
		id := p.parseIdent()
		formals = append(formals, &ast.FormalDecl{
			BaseNode: ast.BaseNode{StartPos: pos},
			Type:     typeExpr,
			Id:       id,
		})
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	return formals
}

// parseStructDecl parses a struct type definition.
//
//	structDecl = 'struct' id '{' varDecl* '}' ';'
func (p *Parser) parseStructDecl() *ast.StructDecl {
	pos := p.current.Position
	p.consume(lexer.TokenStruct, "expected 'struct'")
	if !p.check(lexer.TokenIdentifier) {
		p.error("expected struct name")
		panic("invalid struct declaration")
	}
	id := p.parseIdent()

	p.consume(lexer.TokenLeftBrace, "expected '{' before struct body")
	fields := make([]*ast.VarDecl, 0)
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		fieldType := p.parseType()
		if !p.check(lexer.TokenIdentifier) {
			p.error("expected field name")
			break
		}
		fieldId := p.parseIdent()
		fields = append(fields, p.parseVarDeclTail(fieldType, fieldId))
	}
	p.consume(lexer.TokenRightBrace, "expected '}' after struct body")
	p.consume(lexer.TokenSemicolon, "expected ';' after struct declaration")

	return &ast.StructDecl{
		BaseNode: ast.BaseNode{StartPos: pos},
		Id:       id,
		Fields:   fields,
	}
}

// parseFnBody parses the declaration list followed by the statement list
// that make up a function body or any block-carrying statement.
//
//	fnBody = varDecl* stmt*
func (p *Parser) parseFnBody() *ast.FnBody {
	body := &ast.FnBody{Decls: make([]ast.Decl, 0), Stmts: make([]ast.Stmt, 0)}

	for p.startsVarDecl() {
		typeExpr := p.parseType()
		if !p.check(lexer.TokenIdentifier) {
			p.error("expected variable name")
			break
		}
		id := p.parseIdent()
		body.Decls = append(body.Decls, p.parseVarDeclTail(typeExpr, id))
	}

	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		stmt := p.parseStmt()
		if stmt != nil {
			body.Stmts = append(body.Stmts, stmt)
		}
	}

	return body
}

// startsVarDecl reports whether the current token begins a type
// annotation, i.e. a local variable declaration rather than a statement.
func (p *Parser) startsVarDecl() bool {
	switch p.current.Type {
	case lexer.TokenInt, lexer.TokenBool, lexer.TokenVoid, lexer.TokenStringKw, lexer.TokenStruct:
		return true
	default:
		return false
	}
}

// parseBlock parses `{ fnBody }`, the shape used by if/while/repeat
// bodies.
func (p *Parser) parseBlock() *ast.FnBody {
	p.consume(lexer.TokenLeftBrace, "expected '{'")
	body := p.parseFnBody()
	p.consume(lexer.TokenRightBrace, "expected '}'")
	return body
}

// parseStmt parses a single statement.
//
//	stmt = assignStmt ';' | preIncStmt ';' | preDecStmt ';'
//	     | receiveStmt ';' | printStmt ';' | callStmt ';' | returnStmt ';'
//	     | ifStmt | ifElseStmt | whileStmt | repeatStmt
func (p *Parser) parseStmt() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(lexer.TokenIf):
		return p.parseIfStmt()
	case p.match(lexer.TokenWhile):
		return p.parseWhileStmt()
	case p.match(lexer.TokenRepeat):
		return p.parseRepeatStmt()
	case p.match(lexer.TokenReceive):
		return p.parseReceiveStmt()
	case p.match(lexer.TokenPrint):
		return p.parsePrintStmt()
	case p.match(lexer.TokenReturn):
		return p.parseReturnStmt()
	case p.match(lexer.TokenCall):
		return p.parseCallStmt()
	default:
		return p.parseLocStmt()
	}
}

// parseIfStmt parses `if (cond) { body }` with an optional `else`.
func (p *Parser) parseIfStmt() ast.Stmt {
	pos := p.previous.Position
	p.consume(lexer.TokenLeftParen, "expected '(' after 'if'")
	cond := p.parseExpr()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")
	then := p.parseBlock()

	if p.match(lexer.TokenElse) {
		elseBody := p.parseBlock()
		return &ast.IfElseStmt{BaseNode: ast.BaseNode{StartPos: pos}, Cond: cond, Then: then, Else: elseBody}
	}
	return &ast.IfStmt{BaseNode: ast.BaseNode{StartPos: pos}, Cond: cond, Body: then}
}

// parseWhileStmt parses `while (cond) { body }`.
func (p *Parser) parseWhileStmt() ast.Stmt {
	pos := p.previous.Position
	p.consume(lexer.TokenLeftParen, "expected '(' after 'while'")
	cond := p.parseExpr()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")
	body := p.parseBlock()
	return &ast.WhileStmt{BaseNode: ast.BaseNode{StartPos: pos}, Cond: cond, Body: body}
}

// parseRepeatStmt parses `repeat (count) { body }`.
func (p *Parser) parseRepeatStmt() ast.Stmt {
	pos := p.previous.Position
	p.consume(lexer.TokenLeftParen, "expected '(' after 'repeat'")
	cond := p.parseExpr()
	p.consume(lexer.TokenRightParen, "expected ')' after repeat count")
	body := p.parseBlock()
	return &ast.RepeatStmt{BaseNode: ast.BaseNode{StartPos: pos}, Cond: cond, Body: body}
}

// parseReceiveStmt parses `receive loc;`.
func (p *Parser) parseReceiveStmt() ast.Stmt {
	pos := p.previous.Position
	loc := p.parseLoc()
	p.consume(lexer.TokenSemicolon, "expected ';' after receive statement")
	return &ast.ReceiveStmt{BaseNode: ast.BaseNode{StartPos: pos}, Loc: loc}
}

// parsePrintStmt parses `print exp;`.
func (p *Parser) parsePrintStmt() ast.Stmt {
	pos := p.previous.Position
	exp := p.parseExpr()
	p.consume(lexer.TokenSemicolon, "expected ';' after print statement")
	return &ast.PrintStmt{BaseNode: ast.BaseNode{StartPos: pos}, Exp: exp}
}

// parseReturnStmt parses `return exp?;`.
func (p *Parser) parseReturnStmt() ast.Stmt {
	pos := p.previous.Position
	var exp ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		exp = p.parseExpr()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after return statement")
	return &ast.ReturnStmt{BaseNode: ast.BaseNode{StartPos: pos}, Exp: exp}
}

// parseCallStmt parses a call used as a statement: `call id(actuals);`.
func (p *Parser) parseCallStmt() ast.Stmt {
	pos := p.previous.Position
	call := p.parseCallExpr(pos)
	p.consume(lexer.TokenSemicolon, "expected ';' after call statement")
	return &ast.CallStmt{BaseNode: ast.BaseNode{StartPos: pos}, Call: call}
}

// parseLocStmt parses a statement that starts with a location: either
// `loc = exp;`, `loc++;`, or `loc--;`.
func (p *Parser) parseLocStmt() ast.Stmt {
	pos := p.current.Position
	loc := p.parseLoc()

	switch {
	case p.match(lexer.TokenAssign):
		rhs := p.parseExpr()
		p.consume(lexer.TokenSemicolon, "expected ';' after assignment")
		return &ast.AssignStmt{
			BaseNode: ast.BaseNode{StartPos: pos},
			Assign:   &ast.AssignExpr{BaseNode: ast.BaseNode{StartPos: pos}, Lhs: loc, Rhs: rhs},
		}
	case p.match(lexer.TokenPlusPlus):
		p.consume(lexer.TokenSemicolon, "expected ';' after '++'")
		return &ast.PreIncStmt{BaseNode: ast.BaseNode{StartPos: pos}, Loc: loc}
	case p.match(lexer.TokenMinusMinus):
		p.consume(lexer.TokenSemicolon, "expected ';' after '--'")
		return &ast.PreDecStmt{BaseNode: ast.BaseNode{StartPos: pos}, Loc: loc}
	default:
		p.error(fmt.Sprintf("expected '=', '++' or '--', got %s", p.current.Type))
		panic("invalid statement")
	}
}

// parseLoc parses a location: `id` or a chain of dot accesses.
//
//	loc = id ('.' id)*
func (p *Parser) parseLoc() ast.Expr {
	id := p.parseIdent()
	var loc ast.Expr = id
	for p.match(lexer.TokenDot) {
		pos := p.previous.Position
		if !p.check(lexer.TokenIdentifier) {
			p.error("expected field name after '.'")
			panic("invalid location")
		}
		field := p.parseIdent()
		loc = &ast.DotAccess{BaseNode: ast.BaseNode{StartPos: pos}, Loc: loc, Id: field}
	}
	return loc
}

// parseIdent consumes the current identifier token and returns an Ident
// node for it.
func (p *Parser) parseIdent() *ast.Ident {
	tok := p.current
	p.consume(lexer.TokenIdentifier, "expected identifier")
	return &ast.Ident{BaseNode: ast.BaseNode{StartPos: tok.Position}, Name: tok.Lexeme}
}

// Expression grammar, one function per precedence level.
//
//	exp      = assignExp
//	assignExp = loc '=' assignExp | exp9
//	exp9 = exp8 ('||' exp8)*
//	exp8 = exp7 ('&&' exp7)*
//	exp7 = exp6 (('==' | '!=') exp6)*
//	exp6 = exp5 (('<' | '>' | '<=' | '>=') exp5)*
//	exp5 = exp4 (('+' | '-') exp4)*
//	exp4 = exp3 (('*' | '/') exp3)*
//	exp3 = '-' exp3 | '!' exp3 | exp2
//	exp2 = term

// parseExpr is the entry point for expression parsing.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignExp()
}

// parseAssignExp handles `loc = assignExp`. No lookahead or backtracking
// is needed: parseOr descends through every tighter level down to
// parseTerm without any of them consuming '=', so if the parsed
// expression is followed by '=' it must have been a bare location.
// Semantic analysis, not the grammar, is what rejects a non-location
// left-hand side (e.g. `a + b = c`).
func (p *Parser) parseAssignExp() ast.Expr {
	pos := p.current.Position
	left := p.parseOr()
	if p.match(lexer.TokenAssign) {
		rhs := p.parseAssignExp()
		return &ast.AssignExpr{BaseNode: ast.BaseNode{StartPos: pos}, Lhs: left, Rhs: rhs}
	}
	return left
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.match(lexer.TokenOr) {
		pos := p.previous.Position
		right := p.parseAnd()
		left = &ast.BinaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: ast.OpOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.match(lexer.TokenAnd) {
		pos := p.previous.Position
		right := p.parseEquality()
		left = &ast.BinaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: ast.OpAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.check(lexer.TokenEqualEqual) || p.check(lexer.TokenNotEqual) {
		op := ast.OpEquals
		if p.current.Type == lexer.TokenNotEqual {
			op = ast.OpNotEquals
		}
		pos := p.current.Position
		p.advance()
		right := p.parseRelational()
		left = &ast.BinaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for {
		var op ast.BinOp
		switch p.current.Type {
		case lexer.TokenLess:
			op = ast.OpLess
		case lexer.TokenGreater:
			op = ast.OpGreater
		case lexer.TokenLessEqual:
			op = ast.OpLessEq
		case lexer.TokenGreaterEqual:
			op = ast.OpGreaterEq
		default:
			return left
		}
		pos := p.current.Position
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		var op ast.BinOp
		switch p.current.Type {
		case lexer.TokenPlus:
			op = ast.OpPlus
		case lexer.TokenMinus:
			op = ast.OpMinus
		default:
			return left
		}
		pos := p.current.Position
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for {
		var op ast.BinOp
		switch p.current.Type {
		case lexer.TokenStar:
			op = ast.OpTimes
		case lexer.TokenSlash:
			op = ast.OpDivide
		default:
			return left
		}
		pos := p.current.Position
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{BaseNode: ast.BaseNode{StartPos: pos}, Op: op, Left: left, Right: right}
	}
}

// parseUnary handles exp3: `-exp3`, `!exp3`, or a plain term.
func (p *Parser) parseUnary() ast.Expr {
	switch {
	case p.match(lexer.TokenMinus):
		pos := p.previous.Position
		return &ast.UnaryMinus{BaseNode: ast.BaseNode{StartPos: pos}, Exp: p.parseUnary()}
	case p.match(lexer.TokenNot):
		pos := p.previous.Position
		return &ast.Not{BaseNode: ast.BaseNode{StartPos: pos}, Exp: p.parseUnary()}
	default:
		return p.parseTerm()
	}
}

// parseTerm parses a terminal expression: a literal, a location, a call,
// or a parenthesized expression.
//
//	term = number | string | 'true' | 'false' | loc | fncall | '(' exp ')'
func (p *Parser) parseTerm() ast.Expr {
	pos := p.current.Position
	switch {
	case p.check(lexer.TokenNumber):
		return p.parseIntLit()
	case p.check(lexer.TokenString):
		return p.parseStringLit()
	case p.match(lexer.TokenTrue):
		return &ast.TrueLit{BaseNode: ast.BaseNode{StartPos: pos}}
	case p.match(lexer.TokenFalse):
		return &ast.FalseLit{BaseNode: ast.BaseNode{StartPos: pos}}
	case p.match(lexer.TokenCall):
		return p.parseCallExpr(pos)
	case p.match(lexer.TokenLeftParen):
		exp := p.parseExpr()
		p.consume(lexer.TokenRightParen, "expected ')' after expression")
		return exp
	case p.check(lexer.TokenIdentifier):
		return p.parseLoc()
	default:
		p.error(fmt.Sprintf("expected an expression, got %s", p.current.Type))
		panic("invalid expression")
	}
}

func (p *Parser) parseIntLit() ast.Expr {
	tok := p.current
	p.advance()
	value, err := strconv.Atoi(tok.Lexeme)
	if err != nil {
		p.error(fmt.Sprintf("invalid integer literal: %s", tok.Lexeme))
	}
	return &ast.IntLit{BaseNode: ast.BaseNode{StartPos: tok.Position}, Value: value}
}

func (p *Parser) parseStringLit() ast.Expr {
	tok := p.current
	p.advance()
	return &ast.StringLit{
		BaseNode: ast.BaseNode{StartPos: tok.Position},
		Value:    unescapeString(tok.Lexeme),
	}
}

// unescapeString strips the surrounding quotes from a string lexeme and
// resolves the escapes the lexer grammar allows (§3a): \n \t \" \\.
func unescapeString(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	s := lexeme[1 : len(lexeme)-1]

	var out []byte
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				out = append(out, s[i+1])
			}
			i++
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

// parseCallExpr parses `call id(actuals?)`. pos is the position of the
// 'call' keyword, already consumed.
//
//	fncall  = 'call' id '(' actuals? ')'
//	actuals = exp (',' exp)*
func (p *Parser) parseCallExpr(pos lexer.Position) *ast.CallExpr {
	if !p.check(lexer.TokenIdentifier) {
		p.error("expected function name after 'call'")
		panic("invalid call expression")
	}
	fn := p.parseIdent()

	p.consume(lexer.TokenLeftParen, "expected '(' after function name")
	args := make([]ast.Expr, 0)
	if !p.check(lexer.TokenRightParen) {
		for {
			args = append(args, p.parseExpr())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after arguments")

	return &ast.CallExpr{BaseNode: ast.BaseNode{StartPos: pos}, Fn: fn, Args: args}
}

// Helper methods

func (p *Parser) advance() {
	p.previous = p.current
	token, err := p.lexer.NextToken()
	if err != nil {
		p.error(err.Error())
		p.current = lexer.Token{Type: lexer.TokenInvalid}
	} else {
		p.current = token
	}
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.current.Type == tokenType
}

func (p *Parser) match(tokenTypes ...lexer.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tokenType lexer.TokenType, message string) {
	if p.check(tokenType) {
		p.advance()
		return
	}
	p.error(message)
	panic(message)
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

func (p *Parser) error(message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	err := fmt.Errorf("%s: %s", p.current.Position.String(), message)
	p.errors = append(p.errors, err)
}

// synchronize skips tokens until we reach a declaration or statement
// boundary, used for error recovery.
func (p *Parser) synchronize() {
	p.panicMode = false

	for !p.isAtEnd() {
		if p.previous.Type == lexer.TokenSemicolon || p.previous.Type == lexer.TokenRightBrace {
			return
		}

		switch p.current.Type {
		case lexer.TokenInt, lexer.TokenBool, lexer.TokenVoid, lexer.TokenStringKw, lexer.TokenStruct,
			lexer.TokenIf, lexer.TokenWhile, lexer.TokenRepeat, lexer.TokenReturn,
			lexer.TokenReceive, lexer.TokenPrint, lexer.TokenCall:
			return
		}

		p.advance()
	}
}
