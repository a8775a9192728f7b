package parser

import (
	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/lexer"
)

func (p *Parser) parseBlock() *ast.Block {
	lbrace := p.consume(lexer.TokenLeftBrace, "expected '{'").Position
	var stmts []ast.Stmt
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		st := p.parseStmt()
		if st != nil {
			stmts = append(stmts, st)
		}
	}
	rbrace := p.consume(lexer.TokenRightBrace, "expected '}'").Position
	return &ast.Block{LBrace: lbrace, Stmts: stmts, RBrace: rbrace}
}

func (p *Parser) parseStmt() (result ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronizeToStmt()
			result = nil
		}
	}()

	switch p.cur().Type {
	case lexer.TokenLeftBrace:
		return p.parseBlock()
	case lexer.TokenIf:
		return p.parseIfStmt()
	case lexer.TokenWhile:
		return p.parseWhileStmt()
	case lexer.TokenFor:
		return p.parseForStmt()
	case lexer.TokenBreak:
		return p.parseBreakStmt()
	case lexer.TokenReturn:
		return p.parseReturnStmt()
	case lexer.TokenPrint:
		return p.parsePrintStmt()
	case lexer.TokenVar:
		st := p.parseVarDecl()
		p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")
		return st
	case lexer.TokenIntType, lexer.TokenBoolType, lexer.TokenStringType, lexer.TokenVoid:
		st := p.parseTypedVarDecl()
		p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")
		return st
	default:
		if p.check(lexer.TokenIdentifier) && p.startsTypedDecl() {
			st := p.parseTypedVarDecl()
			p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")
			return st
		}
		st := p.parseSimpleStmt()
		p.consume(lexer.TokenSemicolon, "expected ';' after statement")
		return st
	}
}

// startsTypedDecl reports whether the current identifier begins a
// class-typed local declaration (`Foo x;`, `Foo[] xs;`) rather than an
// expression statement (`foo.bar();`, `foo = 1;`). It looks past any
// `[]` array suffixes for a second identifier — the variable name.
func (p *Parser) startsTypedDecl() bool {
	i := 1
	for p.peekAt(i).Type == lexer.TokenLeftBracket && p.peekAt(i+1).Type == lexer.TokenRightBracket {
		i += 2
	}
	return p.peekAt(i).Type == lexer.TokenIdentifier
}

func (p *Parser) parseVarDecl() *ast.LocalVarDef {
	kwPos := p.consume(lexer.TokenVar, "expected 'var'").Position
	namePos := p.cur().Position
	name := p.consume(lexer.TokenIdentifier, "expected variable name").Lexeme
	p.consume(lexer.TokenAssign, "'var' declarations require an initializer")
	init := p.parseExpression()
	return &ast.LocalVarDef{TypePos: kwPos, NamePos: namePos, Name: name, Init: init}
}

func (p *Parser) parseTypedVarDecl() *ast.LocalVarDef {
	typePos := p.cur().Position
	typ := p.parseType()
	namePos := p.cur().Position
	name := p.consume(lexer.TokenIdentifier, "expected variable name").Lexeme
	var init ast.Expr
	if p.match(lexer.TokenAssign) {
		init = p.parseExpression()
	}
	return &ast.LocalVarDef{TypePos: typePos, Type: typ, NamePos: namePos, Name: name, Init: init}
}

// parseSimpleStmt parses an assignment or a bare expression statement
// (`lhs = rhs` or `expr`), without consuming the trailing separator —
// shared between full statements and for-loop clauses.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	expr := p.parseExpression()
	if p.match(lexer.TokenAssign) {
		rhs := p.parseExpression()
		return &ast.AssignStmt{LHS: expr, RHS: rhs}
	}
	return &ast.ExprStmt{X: expr}
}

// parseForClause parses an init or post clause of a for loop: a typed or
// var declaration, or a simple statement, without a trailing separator.
func (p *Parser) parseForClause() ast.Stmt {
	switch p.cur().Type {
	case lexer.TokenVar:
		return p.parseVarDecl()
	case lexer.TokenIntType, lexer.TokenBoolType, lexer.TokenStringType, lexer.TokenVoid:
		return p.parseTypedVarDecl()
	default:
		if p.check(lexer.TokenIdentifier) && p.startsTypedDecl() {
			return p.parseTypedVarDecl()
		}
		return p.parseSimpleStmt()
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	kwPos := p.consume(lexer.TokenIf, "expected 'if'").Position
	p.consume(lexer.TokenLeftParen, "expected '(' after 'if'")
	cond := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")
	then := p.parseStmt()
	var elseStmt ast.Stmt
	if p.match(lexer.TokenElse) {
		elseStmt = p.parseStmt()
	}
	return &ast.IfStmt{KwPos: kwPos, Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	kwPos := p.consume(lexer.TokenWhile, "expected 'while'").Position
	p.consume(lexer.TokenLeftParen, "expected '(' after 'while'")
	cond := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after condition")
	body := p.parseStmt()
	return &ast.WhileStmt{KwPos: kwPos, Cond: cond, Body: body}
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	kwPos := p.consume(lexer.TokenFor, "expected 'for'").Position
	p.consume(lexer.TokenLeftParen, "expected '(' after 'for'")

	var init ast.Stmt
	if !p.check(lexer.TokenSemicolon) {
		init = p.parseForClause()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after for-loop initializer")

	var cond ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		cond = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after for-loop condition")

	var post ast.Stmt
	if !p.check(lexer.TokenRightParen) {
		post = p.parseForClause()
	}
	p.consume(lexer.TokenRightParen, "expected ')' after for-loop post-statement")

	body := p.parseStmt()
	return &ast.ForStmt{KwPos: kwPos, Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseBreakStmt() *ast.BreakStmt {
	kwPos := p.consume(lexer.TokenBreak, "expected 'break'").Position
	p.consume(lexer.TokenSemicolon, "expected ';' after 'break'")
	return &ast.BreakStmt{KwPos: kwPos}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	kwPos := p.consume(lexer.TokenReturn, "expected 'return'").Position
	var val ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		val = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after 'return'")
	return &ast.ReturnStmt{KwPos: kwPos, Value: val}
}

func (p *Parser) parsePrintStmt() *ast.PrintStmt {
	kwPos := p.consume(lexer.TokenPrint, "expected 'Print'").Position
	p.consume(lexer.TokenLeftParen, "expected '(' after 'Print'")
	var args []ast.Expr
	if !p.check(lexer.TokenRightParen) {
		args = append(args, p.parseExpression())
		for p.match(lexer.TokenComma) {
			args = append(args, p.parseExpression())
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after 'Print' arguments")
	p.consume(lexer.TokenSemicolon, "expected ';' after 'Print' statement")
	return &ast.PrintStmt{KwPos: kwPos, Args: args}
}
