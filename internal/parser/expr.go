package parser

import (
	"fmt"

	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/lexer"
)

func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecOr)
}

// parsePrecedence is the core of Pratt parsing: parse a prefix expression,
// then keep consuming infix operators at least as strong as minPrec.
func (p *Parser) parsePrecedence(minPrec Precedence) ast.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	for minPrec <= getPrecedence(p.cur().Type) {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	switch p.cur().Type {
	case lexer.TokenIntLit:
		tok := p.advance()
		return &ast.IntLit{ValuePos: tok.Position, Value: tok.IntValue}
	case lexer.TokenStringLit:
		tok := p.advance()
		return &ast.StringLit{ValuePos: tok.Position, Value: tok.Lexeme}
	case lexer.TokenTrue, lexer.TokenFalse:
		tok := p.advance()
		return &ast.BoolLit{ValuePos: tok.Position, Value: tok.Type == lexer.TokenTrue}
	case lexer.TokenNull:
		tok := p.advance()
		return &ast.NullLit{ValuePos: tok.Position}
	case lexer.TokenThis:
		tok := p.advance()
		return &ast.ThisExpr{KwPos: tok.Position}
	case lexer.TokenNew:
		return p.parseNew()
	case lexer.TokenFun:
		return p.parseLambda()
	case lexer.TokenMinus, lexer.TokenNot:
		return p.parseUnary()
	case lexer.TokenLeftParen:
		if p.looksLikeCast() {
			return p.parseCast()
		}
		return p.parseGrouping()
	case lexer.TokenIdentifier:
		return p.parseIdentifierPrimary()
	default:
		p.error(fmt.Sprintf("expected expression, got %s", p.cur().Type))
		panic("invalid expression")
	}
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.cur().Type {
	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent,
		lexer.TokenEqual, lexer.TokenNotEqual,
		lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual,
		lexer.TokenAnd, lexer.TokenOr:
		return p.parseBinary(left)
	case lexer.TokenInstanceof:
		return p.parseInstanceOf(left)
	case lexer.TokenDot:
		return p.parseMemberAccess(left)
	case lexer.TokenLeftParen:
		return p.parseCall(left)
	case lexer.TokenLeftBracket:
		return p.parseIndexExpr(left)
	default:
		return left
	}
}

// parseBinary is left-associative: the recursive call demands one level of
// precedence higher than the operator just consumed.
func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	op := p.cur().Type
	opPos := p.cur().Position
	prec := getPrecedence(op)
	p.advance()
	right := p.parsePrecedence(prec + 1)
	return &ast.BinaryExpr{Left: left, OpPos: opPos, Op: op, Right: right}
}

func (p *Parser) parseInstanceOf(left ast.Expr) ast.Expr {
	kwPos := p.consume(lexer.TokenInstanceof, "expected 'instanceof'").Position
	namePos := p.cur().Position
	name := p.consume(lexer.TokenIdentifier, "expected class name after 'instanceof'").Lexeme
	return &ast.InstanceOfExpr{Operand: left, KwPos: kwPos, ClassName: name, NamePos: namePos}
}

func (p *Parser) parseMemberAccess(left ast.Expr) ast.Expr {
	dotPos := p.consume(lexer.TokenDot, "expected '.'").Position
	namePos := p.cur().Position
	name := p.consume(lexer.TokenIdentifier, "expected member name after '.'").Lexeme
	return &ast.VarSel{Recv: left, DotPos: dotPos, NamePos: namePos, Name: name}
}

// parseCall turns a just-parsed VarSel into a CallExpr sharing its receiver
// and name — a call's callee is always a bare or receiver-qualified name,
// never an arbitrary expression.
func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	vs, ok := left.(*ast.VarSel)
	if !ok {
		p.error("only a name can be called")
		panic("invalid call target")
	}
	p.advance() // '('
	var args []ast.Expr
	if !p.check(lexer.TokenRightParen) {
		args = append(args, p.parseExpression())
		for p.match(lexer.TokenComma) {
			args = append(args, p.parseExpression())
		}
	}
	rparen := p.consume(lexer.TokenRightParen, "expected ')' after call arguments")
	return &ast.CallExpr{Recv: vs.Recv, DotPos: vs.DotPos, NamePos: vs.NamePos, Name: vs.Name, Args: args, RParen: rparen.Position}
}

func (p *Parser) parseIndexExpr(left ast.Expr) ast.Expr {
	p.advance() // '['
	idx := p.parseExpression()
	rbrack := p.consume(lexer.TokenRightBracket, "expected ']' after array index")
	return &ast.IndexExpr{Array: left, Index: idx, RBrack: rbrack.Position}
}

func (p *Parser) parseUnary() ast.Expr {
	opPos := p.cur().Position
	op := p.cur().Type
	p.advance()
	operand := p.parsePrecedence(PrecCall)
	return &ast.UnaryExpr{OpPos: opPos, Op: op, Operand: operand}
}

func (p *Parser) parseGrouping() ast.Expr {
	p.advance() // '('
	inner := p.parseExpression()
	p.consume(lexer.TokenRightParen, "expected ')' after expression")
	return inner
}

// looksLikeCast reports whether `(` Identifier `)` is immediately followed
// by something that can only start a new operand, which is the signature
// of a cast `(ClassName) expr` rather than a parenthesized name. Minus is
// deliberately excluded from the follow set: `(a) - b` is read as grouping
// followed by subtraction, matching the overwhelmingly common usage.
func (p *Parser) looksLikeCast() bool {
	if p.peekAt(1).Type != lexer.TokenIdentifier || p.peekAt(2).Type != lexer.TokenRightParen {
		return false
	}
	switch p.peekAt(3).Type {
	case lexer.TokenIdentifier, lexer.TokenIntLit, lexer.TokenStringLit,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNull,
		lexer.TokenThis, lexer.TokenNew, lexer.TokenFun,
		lexer.TokenLeftParen, lexer.TokenNot:
		return true
	default:
		return false
	}
}

func (p *Parser) parseCast() ast.Expr {
	lparen := p.cur().Position
	p.advance() // '('
	namePos := p.cur().Position
	name := p.consume(lexer.TokenIdentifier, "expected class name in cast").Lexeme
	p.consume(lexer.TokenRightParen, "expected ')' after cast type")
	operand := p.parsePrecedence(PrecCall)
	return &ast.ClassCastExpr{LParen: lparen, ClassName: name, NamePos: namePos, Operand: operand}
}

func (p *Parser) parseIdentifierPrimary() ast.Expr {
	tok := p.cur()
	if tok.Lexeme == "ReadInteger" && p.peekAt(1).Type == lexer.TokenLeftParen && p.peekAt(2).Type == lexer.TokenRightParen {
		p.advance()
		p.advance()
		p.advance()
		return &ast.ReadIntExpr{KwPos: tok.Position}
	}
	if tok.Lexeme == "ReadLine" && p.peekAt(1).Type == lexer.TokenLeftParen && p.peekAt(2).Type == lexer.TokenRightParen {
		p.advance()
		p.advance()
		p.advance()
		return &ast.ReadLineExpr{KwPos: tok.Position}
	}
	p.advance()
	return &ast.VarSel{NamePos: tok.Position, Name: tok.Lexeme}
}

func (p *Parser) parseNew() ast.Expr {
	kwPos := p.consume(lexer.TokenNew, "expected 'new'").Position

	if p.check(lexer.TokenIdentifier) && p.peekAt(1).Type == lexer.TokenLeftParen {
		name := p.cur().Lexeme
		p.advance()
		p.advance() // '('
		rparen := p.consume(lexer.TokenRightParen, "expected ')' after 'new ClassName('")
		return &ast.NewExpr{KwPos: kwPos, ClassName: name, RParen: rparen.Position}
	}

	elemType := p.parseNewArrayElemType()
	p.consume(lexer.TokenLeftBracket, "expected '[' in array creation")
	length := p.parseExpression()
	rbrack := p.consume(lexer.TokenRightBracket, "expected ']' in array creation")
	return &ast.NewArrayExpr{KwPos: kwPos, ElemType: elemType, Length: length, RBrack: rbrack.Position}
}

// parseNewArrayElemType parses the element type of `new T[n]`: a base or
// class type name with no trailing `[]` of its own (those belong to the
// array-creation syntax, not the element type literal).
func (p *Parser) parseNewArrayElemType() ast.TypeLit {
	pos := p.cur().Position
	switch p.cur().Type {
	case lexer.TokenIntType:
		p.advance()
		return &ast.TIntLit{TypeLitBase: ast.TypeLitBase{P: pos}}
	case lexer.TokenBoolType:
		p.advance()
		return &ast.TBoolLit{TypeLitBase: ast.TypeLitBase{P: pos}}
	case lexer.TokenStringType:
		p.advance()
		return &ast.TStringLit{TypeLitBase: ast.TypeLitBase{P: pos}}
	case lexer.TokenVoid:
		p.advance()
		return &ast.TVoidLit{TypeLitBase: ast.TypeLitBase{P: pos}}
	case lexer.TokenIdentifier:
		name := p.cur().Lexeme
		p.advance()
		return &ast.TClassLit{TypeLitBase: ast.TypeLitBase{P: pos}, Name: name}
	default:
		p.error(fmt.Sprintf("expected an array element type, got %s", p.cur().Type))
		panic("invalid array element type")
	}
}

func (p *Parser) parseLambda() ast.Expr {
	kwPos := p.consume(lexer.TokenFun, "expected 'fun'").Position
	p.consume(lexer.TokenLeftParen, "expected '(' after 'fun'")
	var params []*ast.Param
	if !p.check(lexer.TokenRightParen) {
		params = p.parseParams()
	}
	p.consume(lexer.TokenRightParen, "expected ')' after lambda parameters")

	if p.match(lexer.TokenArrow) {
		body := p.parseExpression()
		return &ast.Lambda{KwPos: kwPos, Params: params, BodyKind: ast.LambdaExprBody, ExprBody: body}
	}
	block := p.parseBlock()
	return &ast.Lambda{KwPos: kwPos, Params: params, BodyKind: ast.LambdaBlockBody, BlockBody: block}
}
