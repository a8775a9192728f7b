// Package parser implements a recursive-descent parser for Decaf.
//
// PARSING STRATEGY:
// 1. Recursive descent for classes, members, and statements.
// 2. Pratt parsing (precedence climbing) for expressions.
//
// ERROR HANDLING STRATEGY:
// - Report an error but keep parsing, so one pass surfaces every syntax
//   error instead of just the first.
// - Use panic/recover for error recovery at class- and statement-boundary
//   granularity, synchronizing to the next likely-safe token on the way
//   back out.
package parser

import (
	"fmt"

	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/lexer"
)

// Parser converts a token stream into an *ast.TopLevel.
//
// DESIGN CHOICE: the whole token stream is buffered up front (Lexer.Tokenize)
// rather than pulled one token at a time, so the parser can look arbitrarily
// far ahead by index — needed to tell a typed local declaration (`Foo x;`)
// apart from an expression statement (`foo.bar();`) without backtracking.
type Parser struct {
	tokens []lexer.Token
	pos    int

	errors []error

	// panicMode suppresses cascading errors between a panic and the next
	// successful synchronize, mirroring the teacher's recovery strategy.
	panicMode bool
}

// New creates a Parser over every token l produces.
func New(l *lexer.Lexer) *Parser {
	return &Parser{tokens: l.Tokenize()}
}

// ParseProgram parses a complete Decaf source file: a sequence of class
// definitions. Returns the partial AST along with every error encountered;
// a non-empty error list means the AST may be incomplete.
func (p *Parser) ParseProgram() (*ast.TopLevel, []error) {
	top := &ast.TopLevel{}
	for !p.isAtEnd() {
		cd := p.parseClassDef()
		if cd != nil {
			top.Classes = append(top.Classes, cd)
		}
	}
	return top, p.errors
}

func (p *Parser) parseClassDef() (cd *ast.ClassDef) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronizeToClass()
			cd = nil
		}
	}()

	abstract := p.match(lexer.TokenAbstract)
	p.consume(lexer.TokenClass, "expected 'class'")
	namePos := p.cur().Position
	name := p.consume(lexer.TokenIdentifier, "expected class name").Lexeme

	var superName string
	var superPos lexer.Position
	if p.match(lexer.TokenExtends) {
		superPos = p.cur().Position
		superName = p.consume(lexer.TokenIdentifier, "expected superclass name").Lexeme
	}

	p.consume(lexer.TokenLeftBrace, "expected '{' to begin class body")
	var members []ast.Member
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		m := p.parseMember()
		if m != nil {
			members = append(members, m)
		}
	}
	p.consume(lexer.TokenRightBrace, "expected '}' to end class body")

	return &ast.ClassDef{
		NamePos:   namePos,
		Name:      name,
		Abstract:  abstract,
		SuperName: superName,
		SuperPos:  superPos,
		Members:   members,
	}
}

func (p *Parser) parseMember() (m ast.Member) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronizeToMember()
			m = nil
		}
	}()

	abstract := false
	static := false
	for {
		if p.match(lexer.TokenAbstract) {
			abstract = true
			continue
		}
		if p.match(lexer.TokenStatic) {
			static = true
			continue
		}
		break
	}

	typePos := p.cur().Position
	typ := p.parseType()
	namePos := p.cur().Position
	name := p.consume(lexer.TokenIdentifier, "expected member name").Lexeme

	if p.check(lexer.TokenLeftParen) {
		p.advance()
		var params []*ast.Param
		if !p.check(lexer.TokenRightParen) {
			params = p.parseParams()
		}
		p.consume(lexer.TokenRightParen, "expected ')' after parameters")

		method := &ast.MethodDef{
			StaticPos:  typePos,
			Static:     static,
			Abstract:   abstract,
			ReturnType: typ,
			NamePos:    namePos,
			Name:       name,
			Params:     params,
		}
		if abstract {
			p.consume(lexer.TokenSemicolon, "expected ';' after abstract method declaration")
		} else {
			method.Body = p.parseBlock()
		}
		return method
	}

	if abstract {
		p.error("a field cannot be declared abstract")
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after field declaration")
	return &ast.FieldDef{TypePos: typePos, Type: typ, NamePos: namePos, Name: name}
}

// parseParams parses a non-empty comma-separated formal parameter list,
// shared by method declarations and lambda literals.
func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param
	for {
		t := p.parseType()
		namePos := p.cur().Position
		name := p.consume(lexer.TokenIdentifier, "expected parameter name").Lexeme
		params = append(params, &ast.Param{Type: t, NamePos: namePos, Name: name})
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	return params
}

// parseType parses a type literal: a base/class name, optionally followed
// by one or more `[]` array suffixes, or a function type `(T1, T2) => Tret`.
func (p *Parser) parseType() ast.TypeLit {
	var base ast.TypeLit
	pos := p.cur().Position
	switch p.cur().Type {
	case lexer.TokenIntType:
		p.advance()
		base = &ast.TIntLit{TypeLitBase: ast.TypeLitBase{P: pos}}
	case lexer.TokenBoolType:
		p.advance()
		base = &ast.TBoolLit{TypeLitBase: ast.TypeLitBase{P: pos}}
	case lexer.TokenStringType:
		p.advance()
		base = &ast.TStringLit{TypeLitBase: ast.TypeLitBase{P: pos}}
	case lexer.TokenVoid:
		p.advance()
		base = &ast.TVoidLit{TypeLitBase: ast.TypeLitBase{P: pos}}
	case lexer.TokenIdentifier:
		name := p.cur().Lexeme
		p.advance()
		base = &ast.TClassLit{TypeLitBase: ast.TypeLitBase{P: pos}, Name: name}
	case lexer.TokenLeftParen:
		base = p.parseFunctionTypeLit()
	default:
		p.error(fmt.Sprintf("expected a type, got %s", p.cur().Type))
		panic("invalid type")
	}

	for p.check(lexer.TokenLeftBracket) && p.peekAt(1).Type == lexer.TokenRightBracket {
		lb := p.cur().Position
		p.advance()
		p.advance()
		base = &ast.TArrayLit{TypeLitBase: ast.TypeLitBase{P: lb}, Elem: base}
	}
	return base
}

func (p *Parser) parseFunctionTypeLit() ast.TypeLit {
	lparen := p.cur().Position
	p.advance() // '('
	var params []ast.TypeLit
	if !p.check(lexer.TokenRightParen) {
		params = append(params, p.parseType())
		for p.match(lexer.TokenComma) {
			params = append(params, p.parseType())
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' in function type")
	p.consume(lexer.TokenArrow, "expected '=>' in function type")
	ret := p.parseType()
	return &ast.TLambdaLit{TypeLitBase: ast.TypeLitBase{P: lparen}, Params: params, Ret: ret}
}

// Token-stream helpers.

func (p *Parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		idx = len(p.tokens) - 1
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.cur().Type == t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t lexer.TokenType, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(message)
	panic(message)
}

func (p *Parser) isAtEnd() bool {
	return p.cur().Type == lexer.TokenEOF
}

func (p *Parser) error(message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.errors = append(p.errors, fmt.Errorf("%s: %s", p.cur().Position.String(), message))
}

// synchronizeToClass skips tokens until the start of the next class
// definition, for recovery after a malformed class.
func (p *Parser) synchronizeToClass() {
	p.panicMode = false
	for !p.isAtEnd() {
		if p.check(lexer.TokenClass) || p.check(lexer.TokenAbstract) {
			return
		}
		p.advance()
	}
}

// synchronizeToMember skips tokens until a likely member start or the end
// of the enclosing class body.
func (p *Parser) synchronizeToMember() {
	p.panicMode = false
	for !p.isAtEnd() && !p.check(lexer.TokenRightBrace) {
		if p.tokens[p.pos-1].Type == lexer.TokenSemicolon || p.tokens[p.pos-1].Type == lexer.TokenRightBrace {
			return
		}
		p.advance()
	}
}

// synchronizeToStmt skips tokens until a statement boundary, for recovery
// inside a method or lambda body.
func (p *Parser) synchronizeToStmt() {
	p.panicMode = false
	for !p.isAtEnd() {
		if p.pos > 0 && p.tokens[p.pos-1].Type == lexer.TokenSemicolon {
			return
		}
		switch p.cur().Type {
		case lexer.TokenIf, lexer.TokenWhile, lexer.TokenFor, lexer.TokenReturn,
			lexer.TokenBreak, lexer.TokenPrint, lexer.TokenVar, lexer.TokenRightBrace:
			return
		}
		p.advance()
	}
}
