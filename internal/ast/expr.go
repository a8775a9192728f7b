package ast

import (
	"github.com/hdahiru/decafc/internal/lexer"
	"github.com/hdahiru/decafc/internal/symtab"
)

// IntLit is an integer literal.
type IntLit struct {
	ExprBase
	ValuePos lexer.Position
	Value    int64
}

func (e *IntLit) Pos() lexer.Position { return e.ValuePos }

// BoolLit is `true` or `false`.
type BoolLit struct {
	ExprBase
	ValuePos lexer.Position
	Value    bool
}

func (e *BoolLit) Pos() lexer.Position { return e.ValuePos }

// StringLit is a string literal.
type StringLit struct {
	ExprBase
	ValuePos lexer.Position
	Value    string
}

func (e *StringLit) Pos() lexer.Position { return e.ValuePos }

// NullLit is the `null` literal.
type NullLit struct {
	ExprBase
	ValuePos lexer.Position
}

func (e *NullLit) Pos() lexer.Position { return e.ValuePos }

// ThisExpr is `this`, valid only inside a non-static method.
type ThisExpr struct {
	ExprBase
	KwPos lexer.Position
}

func (e *ThisExpr) Pos() lexer.Position { return e.KwPos }

// ReadIntExpr and ReadLineExpr are the two builtin I/O expressions.
type ReadIntExpr struct {
	ExprBase
	KwPos lexer.Position
}

func (e *ReadIntExpr) Pos() lexer.Position { return e.KwPos }

type ReadLineExpr struct {
	ExprBase
	KwPos lexer.Position
}

func (e *ReadLineExpr) Pos() lexer.Position { return e.KwPos }

// VarSel is an identifier reference, optionally qualified by a receiver
// expression (`recv.name`). Recv is nil for a bare `name`.
//
// IsClassName, IsArrayLength and IsMemberMethodName are filled by the Typer
// as it disambiguates the four readings a bare/qualified identifier can have
// (local/field variable, class name used as the receiver of a `.`
// selection such as `C.m()`, the synthetic `length` pseudo-field on arrays,
// or a method name used as a value rather than called; calls themselves
// are CallExpr nodes).
type VarSel struct {
	ExprBase
	Recv    Expr // nil if unqualified
	DotPos  lexer.Position
	NamePos lexer.Position
	Name    string

	IsClassName        bool
	IsArrayLength       bool
	IsMemberMethodName bool

	// Sym is the resolved variable symbol, when this VarSel denotes a
	// variable (not a class name or bare method name).
	Sym *symtab.VarSymbol
}

func (e *VarSel) Pos() lexer.Position {
	if e.Recv != nil {
		return e.Recv.Pos()
	}
	return e.NamePos
}

// CallExpr is `recv.method(args)` or `method(args)` (recv nil, implicit this
// or static context).
type CallExpr struct {
	ExprBase
	Recv    Expr // nil if unqualified
	DotPos  lexer.Position
	NamePos lexer.Position
	Name    string
	Args    []Expr
	RParen  lexer.Position

	Method *symtab.MethodSymbol
}

func (e *CallExpr) Pos() lexer.Position {
	if e.Recv != nil {
		return e.Recv.Pos()
	}
	return e.NamePos
}

// IndexExpr is `array[index]`.
type IndexExpr struct {
	ExprBase
	Array  Expr
	Index  Expr
	RBrack lexer.Position
}

func (e *IndexExpr) Pos() lexer.Position { return e.Array.Pos() }

// UnaryExpr is a prefix operator (`-`, `!`) applied to an operand.
type UnaryExpr struct {
	ExprBase
	OpPos   lexer.Position
	Op      lexer.TokenType
	Operand Expr
}

func (e *UnaryExpr) Pos() lexer.Position { return e.OpPos }

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	ExprBase
	Left  Expr
	OpPos lexer.Position
	Op    lexer.TokenType
	Right Expr
}

func (e *BinaryExpr) Pos() lexer.Position { return e.Left.Pos() }

// NewExpr is `new ClassName()`.
type NewExpr struct {
	ExprBase
	KwPos     lexer.Position
	ClassName string
	RParen    lexer.Position

	Class *symtab.ClassSymbol
}

func (e *NewExpr) Pos() lexer.Position { return e.KwPos }

// NewArrayExpr is `new Type[length]`.
type NewArrayExpr struct {
	ExprBase
	KwPos    lexer.Position
	ElemType TypeLit
	Length   Expr
	RBrack   lexer.Position
}

func (e *NewArrayExpr) Pos() lexer.Position { return e.KwPos }

// InstanceOfExpr is `expr instanceof ClassName`.
type InstanceOfExpr struct {
	ExprBase
	Operand   Expr
	KwPos     lexer.Position
	ClassName string
	NamePos   lexer.Position
}

func (e *InstanceOfExpr) Pos() lexer.Position { return e.Operand.Pos() }

// ClassCastExpr is `(ClassName) expr`.
type ClassCastExpr struct {
	ExprBase
	LParen    lexer.Position
	ClassName string
	NamePos   lexer.Position
	Operand   Expr
}

func (e *ClassCastExpr) Pos() lexer.Position { return e.LParen }

// LambdaBodyKind marks how a Lambda's body was written.
type LambdaBodyKind int

const (
	LambdaExprBody LambdaBodyKind = iota
	LambdaBlockBody
)

// Lambda is `fun(params) => expr` or `fun(params) { block }`.
//
// Capture is populated by the Typer while resolving identifiers inside the
// lambda body: every outer local or parameter variable the body reads or
// writes that is not itself declared inside the lambda is recorded there,
// in first-use order. Fields are reached through an implicit `this` and are
// not recorded.
type Lambda struct {
	ExprBase
	KwPos      lexer.Position
	Params     []*Param
	BodyKind   LambdaBodyKind
	ExprBody   Expr  // set when BodyKind == LambdaExprBody
	BlockBody  *Block // set when BodyKind == LambdaBlockBody

	Sym     *symtab.LambdaSymbol
	Capture []*symtab.VarSymbol
}

func (e *Lambda) Pos() lexer.Position { return e.KwPos }
