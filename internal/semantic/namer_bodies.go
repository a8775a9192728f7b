package semantic

import (
	"fmt"

	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/symtab"
	"github.com/hdahiru/decafc/internal/types"
)

// declareMethodBody pre-walks a concrete method's body, creating the local
// and lambda scopes (and capture-less lambda symbols) that the Typer will
// later open by AST-node identity. No expression or statement is typed
// here; only the scope tree and the pending local-variable symbols it holds
// are built.
func (n *Namer) declareMethodBody(m *ast.MethodDef, formalScope *symtab.Scope) {
	n.Stack.Open(formalScope)
	n.declareBlock(m.Body)
	n.Stack.Close()
}

func (n *Namer) declareBlock(b *ast.Block) {
	parent := n.Stack.Top()
	scope := symtab.NewScope(symtab.ScopeLocal, parent)
	parent.AddChild(scope)
	b.Scope = scope
	n.Stack.Open(scope)
	for _, stmt := range b.Stmts {
		n.declareStmt(stmt)
	}
	n.Stack.Close()
}

func (n *Namer) declareStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Block:
		n.declareBlock(st)
	case *ast.LocalVarDef:
		n.declareLambdasInExpr(st.Init)
		sym := &symtab.VarSymbol{Name: st.Name, Pos: st.NamePos, Owner: n.Stack.Top()}
		if !n.Stack.Declare(sym) {
			n.sink.Addf(st.NamePos, DeclConflict, "variable '%s' already declared in this scope", st.Name)
			return
		}
		st.Sym = sym
	case *ast.AssignStmt:
		n.declareLambdasInExpr(st.LHS)
		n.declareLambdasInExpr(st.RHS)
	case *ast.ExprStmt:
		n.declareLambdasInExpr(st.X)
	case *ast.IfStmt:
		n.declareLambdasInExpr(st.Cond)
		n.declareStmt(st.Then)
		if st.Else != nil {
			n.declareStmt(st.Else)
		}
	case *ast.WhileStmt:
		n.declareLambdasInExpr(st.Cond)
		n.declareStmt(st.Body)
	case *ast.ForStmt:
		parent := n.Stack.Top()
		scope := symtab.NewScope(symtab.ScopeLocal, parent)
		parent.AddChild(scope)
		st.Scope = scope
		n.Stack.Open(scope)
		if st.Init != nil {
			n.declareStmt(st.Init)
		}
		if st.Cond != nil {
			n.declareLambdasInExpr(st.Cond)
		}
		if st.Post != nil {
			n.declareStmt(st.Post)
		}
		n.declareStmt(st.Body)
		n.Stack.Close()
	case *ast.ReturnStmt:
		if st.Value != nil {
			n.declareLambdasInExpr(st.Value)
		}
	case *ast.PrintStmt:
		for _, a := range st.Args {
			n.declareLambdasInExpr(a)
		}
	case *ast.BreakStmt:
		// no nested expressions
	}
}

// declareLambdasInExpr walks an expression tree purely to find Lambda
// literals, since a lambda can appear nested arbitrarily deep inside an
// expression the statement-level walk above never looks inside otherwise.
func (n *Namer) declareLambdasInExpr(e ast.Expr) {
	switch ex := e.(type) {
	case nil:
	case *ast.Lambda:
		n.declareLambda(ex)
	case *ast.BinaryExpr:
		n.declareLambdasInExpr(ex.Left)
		n.declareLambdasInExpr(ex.Right)
	case *ast.UnaryExpr:
		n.declareLambdasInExpr(ex.Operand)
	case *ast.CallExpr:
		n.declareLambdasInExpr(ex.Recv)
		for _, a := range ex.Args {
			n.declareLambdasInExpr(a)
		}
	case *ast.IndexExpr:
		n.declareLambdasInExpr(ex.Array)
		n.declareLambdasInExpr(ex.Index)
	case *ast.VarSel:
		n.declareLambdasInExpr(ex.Recv)
	case *ast.NewArrayExpr:
		n.declareLambdasInExpr(ex.Length)
	case *ast.InstanceOfExpr:
		n.declareLambdasInExpr(ex.Operand)
	case *ast.ClassCastExpr:
		n.declareLambdasInExpr(ex.Operand)
	default:
		// literals, this, new C(), readInteger/readLine: no sub-expressions.
	}
}

func (n *Namer) declareLambda(lam *ast.Lambda) {
	parent := n.Stack.Top()
	lambdaScope := symtab.NewScope(symtab.ScopeLambda, parent)
	parent.AddChild(lambdaScope)

	sym := &symtab.LambdaSymbol{Name: fmt.Sprintf("lambda@%s", lam.KwPos), Pos: lam.KwPos, Scope: lambdaScope}
	lambdaScope.Owner = sym
	lam.Sym = sym

	n.Stack.Open(lambdaScope)
	argTypes := make([]types.Type, len(lam.Params))
	for i, p := range lam.Params {
		pt := resolveType(p.Type, n.Stack.Classes, n.sink)
		argTypes[i] = pt
		psym := &symtab.VarSymbol{Name: p.Name, Pos: p.NamePos, Type: pt, Owner: lambdaScope}
		if !n.Stack.Declare(psym) {
			n.sink.Addf(p.NamePos, DeclConflict, "parameter '%s' already declared", p.Name)
		} else {
			p.Symbol = psym
		}
	}
	sym.Type = types.NewFunction(nil, argTypes) // Ret filled in by the Typer

	if lam.BodyKind == ast.LambdaExprBody {
		local := symtab.NewScope(symtab.ScopeLocal, lambdaScope)
		lambdaScope.AddChild(local)
		sym.Local = local
		n.Stack.Open(local)
		n.declareLambdasInExpr(lam.ExprBody)
		n.Stack.Close()
	} else {
		n.declareBlock(lam.BlockBody)
		sym.Local = lam.BlockBody.Scope
	}
	n.Stack.Close()
}
