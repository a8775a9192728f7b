package ast

import (
	"github.com/hdahiru/decafc/internal/lexer"
	"github.com/hdahiru/decafc/internal/symtab"
)

type stmtBase struct{}

func (stmtBase) stmtNode() {}

// Block is `{ stmts... }`.
//
// Returns and IsClose are filled by the Typer. Returns records whether this
// block's last statement returns. IsClose records whether any statement in
// the block is a "closed" path — one that is guaranteed to exit the
// enclosing lambda via return — which lets a later statement's missing-
// return check short-circuit instead of walking dead code.
type Block struct {
	stmtBase
	LBrace lexer.Position
	Stmts  []Stmt
	RBrace lexer.Position

	Scope   *symtab.Scope
	Returns bool
	IsClose bool
}

func (s *Block) Pos() lexer.Position { return s.LBrace }

// LocalVarDef is a local variable declaration, with or without an explicit
// type. Type is nil for `var name = init;`, in which case Init is required
// and its type (once known) becomes the variable's declared type.
type LocalVarDef struct {
	stmtBase
	TypePos lexer.Position
	Type    TypeLit // nil when declared with `var`
	NamePos lexer.Position
	Name    string
	Init    Expr // nil if no initializer

	Sym *symtab.VarSymbol
}

func (s *LocalVarDef) Pos() lexer.Position { return s.TypePos }

// AssignStmt is `lhs = rhs;`.
type AssignStmt struct {
	stmtBase
	LHS Expr
	RHS Expr
}

func (s *AssignStmt) Pos() lexer.Position { return s.LHS.Pos() }

// ExprStmt is an expression evaluated for effect, e.g. a bare call.
type ExprStmt struct {
	stmtBase
	X Expr
}

func (s *ExprStmt) Pos() lexer.Position { return s.X.Pos() }

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	stmtBase
	KwPos lexer.Position
	Cond  Expr
	Then  Stmt
	Else  Stmt // nil if no else clause

	Returns bool
	IsClose bool
}

func (s *IfStmt) Pos() lexer.Position { return s.KwPos }

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	stmtBase
	KwPos lexer.Position
	Cond  Expr
	Body  Stmt

	Returns bool
	IsClose bool
}

func (s *WhileStmt) Pos() lexer.Position { return s.KwPos }

// ForStmt is `for (init; cond; post) body`. Init and Post may be nil.
type ForStmt struct {
	stmtBase
	KwPos lexer.Position
	Init  Stmt
	Cond  Expr // nil means "always true"
	Post  Stmt
	Body  Stmt

	// Scope holds Init's declaration (if Init is a LocalVarDef), so it is
	// visible to Cond, Post and Body but to nothing outside the loop.
	Scope *symtab.Scope

	Returns bool
	IsClose bool
}

func (s *ForStmt) Pos() lexer.Position { return s.KwPos }

// BreakStmt is `break;`.
type BreakStmt struct {
	stmtBase
	KwPos lexer.Position
}

func (s *BreakStmt) Pos() lexer.Position { return s.KwPos }

// ReturnStmt is `return;` or `return expr;`.
type ReturnStmt struct {
	stmtBase
	KwPos lexer.Position
	Value Expr // nil for a bare return

	Returns bool // always true once typed
	IsClose bool // always true once typed
}

func (s *ReturnStmt) Pos() lexer.Position { return s.KwPos }

// PrintStmt is `Print(args...);`.
type PrintStmt struct {
	stmtBase
	KwPos lexer.Position
	Args  []Expr
}

func (s *PrintStmt) Pos() lexer.Position { return s.KwPos }
