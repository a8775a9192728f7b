package symtab

import (
	"github.com/hdahiru/decafc/internal/lexer"
	"github.com/hdahiru/decafc/internal/types"
)

// Symbol is anything that can occupy a slot in a Scope.
type Symbol interface {
	SymbolName() string
	SymbolPos() lexer.Position
}

// ClassSymbol describes a declared class.
type ClassSymbol struct {
	Name     string
	Pos      lexer.Position
	Abstract bool
	Type     *types.Class
	Scope    *Scope // member scope; Parent chains to Base's Scope
	Base     *ClassSymbol

	// NotOverride is the set of abstract method names inherited from an
	// ancestor that no concrete method in this class (or an ancestor closer
	// to this class) has implemented yet.
	NotOverride map[string]bool

	IsMain bool
}

func (c *ClassSymbol) SymbolName() string        { return c.Name }
func (c *ClassSymbol) SymbolPos() lexer.Position { return c.Pos }

// MethodSymbol describes a declared method.
type MethodSymbol struct {
	Name        string
	Pos         lexer.Position
	Type        *types.Function
	Owner       *ClassSymbol
	Static      bool
	Abstract    bool
	FormalScope *Scope
}

func (m *MethodSymbol) SymbolName() string        { return m.Name }
func (m *MethodSymbol) SymbolPos() lexer.Position { return m.Pos }

// VarKind classifies a VarSymbol by where it lives, derived from its Owner
// scope's kind.
type VarKind int

const (
	VarMember VarKind = iota
	VarParameter
	VarLocal
)

// VarSymbol describes a field, parameter, or local variable.
type VarSymbol struct {
	Name    string
	Pos     lexer.Position
	Type    types.Type // nil ("None") until inferred, for a `var` local
	Owner   *Scope
}

func (v *VarSymbol) SymbolName() string        { return v.Name }
func (v *VarSymbol) SymbolPos() lexer.Position { return v.Pos }

// Kind classifies v by its owning scope.
func (v *VarSymbol) Kind() VarKind {
	if v.Owner == nil {
		return VarLocal
	}
	switch v.Owner.Kind {
	case ScopeClass:
		return VarMember
	case ScopeFormal:
		return VarParameter
	default:
		return VarLocal
	}
}

// LambdaSymbol describes a lambda expression.
type LambdaSymbol struct {
	Name  string // synthetic "lambda@<pos>"
	Pos   lexer.Position
	Type  *types.Function // Ret is nil until the Typer infers it
	Scope *Scope          // ScopeLambda frame holding the parameters
	// Local is the ScopeLocal frame holding the body; for an expression
	// bodied lambda this scope never gains any declarations of its own; for
	// a block bodied lambda it is the Block's own scope.
	Local   *Scope
	Capture []*VarSymbol
}

func (l *LambdaSymbol) SymbolName() string        { return l.Name }
func (l *LambdaSymbol) SymbolPos() lexer.Position { return l.Pos }
