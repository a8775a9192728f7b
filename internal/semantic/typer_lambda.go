package semantic

import (
	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/lexer"
	"github.com/hdahiru/decafc/internal/types"
)

// typeLambda types a lambda literal: an expression-bodied lambda's type is
// simply its expression's type; a block-bodied lambda's return type is
// inferred from every `return` it contains via inferLambdaReturn.
func (t *Typer) typeLambda(lam *ast.Lambda) types.Type {
	t.lambdaStack = append(t.lambdaStack, lam.Sym)
	t.Stack.Open(lam.Sym.Scope)

	var ret types.Type
	if lam.BodyKind == ast.LambdaExprBody {
		t.Stack.Open(lam.Sym.Local)
		ret = t.typeExpr(lam.ExprBody)
		t.Stack.Close()
	} else {
		t.retTypeStack = append(t.retTypeStack, nil)
		t.typeBlock(lam.BlockBody)
		top := len(t.retTypeStack) - 1
		rets := t.retTypeStack[top]
		t.retTypeStack = t.retTypeStack[:top]
		ret = t.inferLambdaReturn(lam.BlockBody, rets, lam.Pos())
	}

	t.Stack.Close()
	t.lambdaStack = t.lambdaStack[:len(t.lambdaStack)-1]

	lam.Sym.Type.Ret = ret
	lam.Capture = lam.Sym.Capture
	lam.SetType(lam.Sym.Type)
	return lam.Sym.Type
}

// inferLambdaReturn implements the join-of-returns algorithm: no returns
// means Void; an open (non-closed) path mixed with a non-void return is a
// missing return; otherwise the result is the least upper bound of every
// collected return type.
func (t *Typer) inferLambdaReturn(block *ast.Block, rets []types.Type, pos lexer.Position) types.Type {
	if len(rets) == 0 {
		return types.Void
	}
	if !block.IsClose {
		for _, rt := range rets {
			if rt != types.Void {
				t.sink.Addf(pos, MissingReturn, "missing return statement: not every path of this lambda returns a value")
				return types.Error
			}
		}
	}
	joined := types.Join(rets)
	if joined == types.Error {
		t.sink.Addf(pos, IncompatRetType, "incompatible return types in blocked expression")
		return types.Error
	}
	return joined
}
