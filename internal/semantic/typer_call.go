package semantic

import (
	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/symtab"
	"github.com/hdahiru/decafc/internal/types"
)

// typeCallExpr resolves the callee (mirroring the VarSel rules, since a
// call's callee is always either a bare name or a `.`-qualified name), then
// checks arity and argument types against the resulting function type.
func (t *Typer) typeCallExpr(call *ast.CallExpr) types.Type {
	calleeType, isArrayLength := t.resolveCallee(call)

	if calleeType == types.Error {
		for _, a := range call.Args {
			t.typeExpr(a)
		}
		return types.Error
	}

	fn, ok := calleeType.(*types.Function)
	if !ok {
		t.sink.Addf(call.Pos(), NotCallable, "'%s' is not callable", call.Name)
		for _, a := range call.Args {
			t.typeExpr(a)
		}
		return types.Error
	}

	if isArrayLength {
		if len(call.Args) != 0 {
			t.sink.Addf(call.Pos(), BadLengthArg, "function 'length' expects 0 argument(s) but %d given", len(call.Args))
		}
		return types.Int
	}

	if len(call.Args) != len(fn.Args) {
		if name := calleeDisplayName(call); name != "" {
			t.sink.Addf(call.Pos(), BadArgCount, "function '%s' expects %d argument(s) but %d given", name, len(fn.Args), len(call.Args))
		} else {
			t.sink.Addf(call.Pos(), BadArgCount, "function expects %d argument(s) but %d given", len(fn.Args), len(call.Args))
		}
	}

	n := len(call.Args)
	if len(fn.Args) < n {
		n = len(fn.Args)
	}
	for i := 0; i < n; i++ {
		at := t.typeExpr(call.Args[i])
		if at != types.Error && !types.Subtype(at, fn.Args[i]) {
			t.sink.Addf(call.Args[i].Pos(), BadArgType, "incompatible argument %d: %s given, %s expected", i+1, at, fn.Args[i])
		}
	}
	for i := n; i < len(call.Args); i++ {
		t.typeExpr(call.Args[i])
	}

	return fn.Ret
}

// resolveCallee types the callee half of a call expression exactly the way
// VarSel would, but additionally records the resolved MethodSymbol (when
// there is one) on the CallExpr for codegen's dispatch decision.
func (t *Typer) resolveCallee(call *ast.CallExpr) (types.Type, bool) {
	if call.Recv == nil {
		for _, name := range t.varStack {
			if name == call.Name {
				t.sink.Addf(call.NamePos, UndeclVar, "undeclared variable '%s'", call.Name)
				return types.Error, false
			}
		}
		switch sym := t.Stack.LookupBefore(call.Name, call.NamePos).(type) {
		case *symtab.MethodSymbol:
			call.Method = sym
			if !sym.Static {
				method := t.Stack.CurrentMethod()
				if method != nil && method.Static {
					t.sink.Addf(call.NamePos, RefNonStatic, "can't reference non-static method '%s' inside a static method", call.Name)
					return types.Error, false
				}
				call.Recv = &ast.ThisExpr{KwPos: call.NamePos}
			}
			return sym.Type, false
		case *symtab.VarSymbol:
			vs := &ast.VarSel{NamePos: call.NamePos, Name: call.Name}
			t.typeExpr(vs)
			call.Recv = vs.Recv
			return vs.Type(), false
		default:
			t.sink.Addf(call.NamePos, UndeclVar, "undeclared variable '%s'", call.Name)
			return types.Error, false
		}
	}

	recvType := t.typeReceiver(call.Recv)
	if recvType == types.Error {
		return types.Error, false
	}
	if arr, ok := recvType.(*types.Array); ok && call.Name == "length" {
		_ = arr
		return types.NewFunction(types.Int, nil), true
	}
	cls, ok := recvType.(*types.Class)
	if !ok {
		t.sink.Addf(call.Recv.Pos(), NotClassField, "'%s' is not a class instance", recvType)
		return types.Error, false
	}
	recvIsClassName := false
	if recvVs, ok := call.Recv.(*ast.VarSel); ok {
		recvIsClassName = recvVs.IsClassName
	}
	vs := &ast.VarSel{NamePos: call.NamePos, Name: call.Name}
	result := t.resolveFieldAccess(cls, recvIsClassName, vs)
	if classScope := t.lookupClassScope(cls); classScope != nil {
		if m, ok := lookupInScope(classScope, call.Name).(*symtab.MethodSymbol); ok {
			call.Method = m
		}
	}
	return result, false
}

func (t *Typer) lookupClassScope(cls *types.Class) *symtab.Scope {
	sym, ok := t.Stack.LookupClass(cls.Name)
	if !ok {
		return nil
	}
	return sym.Scope
}

// calleeDisplayName returns the name to mention in an arity-mismatch
// message, or "" when the callee isn't a simple name the user actually
// wrote (an implicit or already-synthesized `this` still counts as simple).
func calleeDisplayName(call *ast.CallExpr) string {
	if call.Recv == nil {
		return call.Name
	}
	if _, ok := call.Recv.(*ast.ThisExpr); ok {
		return call.Name
	}
	return ""
}
