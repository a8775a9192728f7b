// Package ast defines the Decaf abstract syntax tree.
//
// DESIGN CHOICE: nodes are plain structs behind thin marker interfaces
// (Node/Expr/Stmt), not a visitor-dispatch hierarchy. The two semantic
// passes (Namer, Typer) each do their own type switch over concrete node
// types rather than implementing a shared Visitor interface twice — this
// mirrors the teacher's Node/Expr/Stmt split and Pos()/End() discipline,
// but swaps its double-dispatch Accept/Visitor machinery (built for one
// pass operating on a C-like language with no name-resolution/type-pass
// split) for a tagged-sum traversal, since Decaf's two passes need
// pass-specific state (scope stack, lambda stack, capture sets) that a
// generic Visitor interface would have to smuggle in through type
// assertions anyway.
package ast

import (
	"github.com/hdahiru/decafc/internal/lexer"
	"github.com/hdahiru/decafc/internal/symtab"
	"github.com/hdahiru/decafc/internal/types"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	Pos() lexer.Position
}

// Expr is any node that produces a value. Every Expr accumulates a Type
// once the Typer has visited it; Type() returns nil until then.
type Expr interface {
	Node
	Type() types.Type
	SetType(types.Type)
	exprNode()
}

// Stmt is any node that performs an action.
type Stmt interface {
	Node
	stmtNode()
}

// ExprBase factors out the type annotation shared by every expression node.
//
// DESIGN CHOICE: the type is a field on the node itself (not a side table
// keyed by node identity, as the teacher's Analyzer.exprTypes does) because
// the spec requires every Expr to carry its type as an AST annotation that
// downstream code generation reads directly off the tree.
type ExprBase struct {
	T types.Type
}

func (e *ExprBase) Type() types.Type     { return e.T }
func (e *ExprBase) SetType(t types.Type) { e.T = t }
func (e *ExprBase) exprNode()            {}

// TopLevel is the root of a Decaf program: a set of class definitions.
type TopLevel struct {
	Classes []*ClassDef
}

// ClassDef declares a class, its superclass name (if any), and its members
// in source order (fields and methods interleaved, as the grammar allows).
type ClassDef struct {
	NamePos   lexer.Position
	Name      string
	Abstract  bool
	SuperName string // "" if no extends clause
	SuperPos  lexer.Position
	Members   []Member

	// Symbol is filled by the Namer once the class symbol exists.
	Symbol *symtab.ClassSymbol
}

func (c *ClassDef) Pos() lexer.Position { return c.NamePos }

// Member is a field or method declared inside a class body, in source order.
type Member interface {
	Node
	memberNode()
}

// FieldDef is `Type name;` inside a class body.
type FieldDef struct {
	TypePos lexer.Position
	Type    TypeLit
	NamePos lexer.Position
	Name    string
}

func (f *FieldDef) Pos() lexer.Position { return f.TypePos }
func (f *FieldDef) memberNode()         {}

// MethodDef is a (possibly static, possibly abstract) method declaration.
// Body is nil exactly when Abstract is true.
type MethodDef struct {
	StaticPos   lexer.Position
	Static      bool
	Abstract    bool
	ReturnType  TypeLit
	NamePos     lexer.Position
	Name        string
	Params      []*Param
	Body        *Block

	Symbol *symtab.MethodSymbol
}

func (m *MethodDef) Pos() lexer.Position { return m.NamePos }
func (m *MethodDef) memberNode()         {}

// Param is one formal parameter of a method or lambda.
type Param struct {
	Type    TypeLit
	NamePos lexer.Position
	Name    string

	Symbol *symtab.VarSymbol
}

func (p *Param) Pos() lexer.Position { return p.NamePos }

// TypeLit is the syntactic form of a type as written in source, before the
// type-literal resolver (module C) turns it into a semantic types.Type.
type TypeLit interface {
	Node
	typeLitNode()
}

type TypeLitBase struct{ P lexer.Position }

func (t TypeLitBase) Pos() lexer.Position { return t.P }
func (TypeLitBase) typeLitNode()          {}

type TIntLit struct{ TypeLitBase }
type TBoolLit struct{ TypeLitBase }
type TStringLit struct{ TypeLitBase }
type TVoidLit struct{ TypeLitBase }

// TClassLit names a (possibly undeclared) class type, e.g. `Animal`.
type TClassLit struct {
	TypeLitBase
	Name string
}

// TArrayLit is `Elem[]`.
type TArrayLit struct {
	TypeLitBase
	Elem TypeLit
}

// TLambdaLit is a function type literal `(T1, T2) => Tret`.
type TLambdaLit struct {
	TypeLitBase
	Params []TypeLit
	Ret    TypeLit
}
