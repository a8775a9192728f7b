package semantic

import (
	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/symtab"
	"github.com/hdahiru/decafc/internal/types"
)

// typeVarSel types a (possibly receiver-qualified) identifier reference.
// allowClassName is true only for one step: while typing the receiver of a
// `.` selection, a bare class name is a legal (if unusual) expression.
func (t *Typer) typeVarSel(vs *ast.VarSel, allowClassName bool) types.Type {
	if vs.Recv != nil {
		return t.typeVarSelWithReceiver(vs)
	}
	return t.typeVarSelNoReceiver(vs, allowClassName)
}

func (t *Typer) typeVarSelNoReceiver(vs *ast.VarSel, allowClassName bool) types.Type {
	for _, name := range t.varStack {
		if name == vs.Name {
			t.sink.Addf(vs.NamePos, UndeclVar, "undeclared variable '%s'", vs.Name)
			return types.Error
		}
	}
	switch sym := t.Stack.LookupBefore(vs.Name, vs.NamePos).(type) {
	case *symtab.VarSymbol:
		vs.Sym = sym
		return t.useVarSymbol(vs, sym)
	case *symtab.ClassSymbol:
		if allowClassName {
			vs.IsClassName = true
			return sym.Type
		}
		t.sink.Addf(vs.NamePos, UndeclVar, "undeclared variable '%s'", vs.Name)
		return types.Error
	case *symtab.MethodSymbol:
		vs.IsMemberMethodName = true
		return t.useMethodAsValue(vs, sym)
	default:
		// Class names live in the ClassTable, not in any Scope, so a
		// class-name receiver is found here rather than by LookupBefore.
		if allowClassName {
			if cls, ok := t.Stack.LookupClass(vs.Name); ok {
				vs.IsClassName = true
				return cls.Type
			}
		}
		t.sink.Addf(vs.NamePos, UndeclVar, "undeclared variable '%s'", vs.Name)
		return types.Error
	}
}

// useVarSymbol applies the static/this rules a bare member-variable
// reference is subject to, synthesizes an implicit `this` receiver when it
// resolves to a field, and records a lambda capture when it resolves to an
// outer local or parameter.
func (t *Typer) useVarSymbol(vs *ast.VarSel, sym *symtab.VarSymbol) types.Type {
	if sym.Kind() == symtab.VarMember {
		method := t.Stack.CurrentMethod()
		if method != nil && method.Static {
			t.sink.Addf(vs.NamePos, RefNonStatic, "can't reference non-static variable '%s' inside a static method", vs.Name)
			return types.Error
		}
		vs.Recv = &ast.ThisExpr{KwPos: vs.NamePos}
	} else {
		t.recordCapture(sym)
	}
	if sym.Type == nil {
		return types.Error
	}
	return sym.Type
}

func (t *Typer) useMethodAsValue(vs *ast.VarSel, sym *symtab.MethodSymbol) types.Type {
	if sym.Static {
		return sym.Type
	}
	method := t.Stack.CurrentMethod()
	if method != nil && method.Static {
		t.sink.Addf(vs.NamePos, RefNonStatic, "can't reference non-static method '%s' inside a static method", vs.Name)
		return types.Error
	}
	vs.Recv = &ast.ThisExpr{KwPos: vs.NamePos}
	return sym.Type
}

// recordCapture adds sym to the innermost enclosing lambda's capture set
// when sym's declaring scope lies strictly outside that lambda and is not a
// class scope (a member variable is reached via `this`, never captured).
//
// The search walks outward from the lambda's own frame, not inward from
// sym: sym.Owner is always an ancestor of the lambda's frame for a real
// outer reference, so looking for sym.Owner along that ascent is the only
// direction that can ever find it. Starting at inner.Parent rather than
// inner itself keeps the lambda's own parameters from matching themselves.
func (t *Typer) recordCapture(sym *symtab.VarSymbol) {
	if len(t.lambdaStack) == 0 || sym.Owner == nil {
		return
	}
	inner := t.Stack.FormalOrLambdaScope()
	if inner == nil || inner.Kind != symtab.ScopeLambda {
		return
	}
	found := false
	for sc := inner.Parent; sc != nil; sc = sc.Parent {
		if sc.Kind == symtab.ScopeClass {
			break
		}
		if sc == sym.Owner {
			found = true
			break
		}
	}
	if !found {
		return
	}
	lam := t.lambdaStack[len(t.lambdaStack)-1]
	for _, c := range lam.Capture {
		if c == sym {
			return
		}
	}
	lam.Capture = append(lam.Capture, sym)
}

func (t *Typer) typeVarSelWithReceiver(vs *ast.VarSel) types.Type {
	recvType := t.typeReceiver(vs.Recv)
	if recvType == types.Error {
		return types.Error
	}
	if arr, ok := recvType.(*types.Array); ok {
		if vs.Name == "length" {
			vs.IsArrayLength = true
			return types.NewFunction(types.Int, nil)
		}
		_ = arr
		t.sink.Addf(vs.NamePos, FieldNotFound, "field '%s' not found on array type", vs.Name)
		return types.Error
	}
	cls, ok := recvType.(*types.Class)
	if !ok {
		t.sink.Addf(vs.Recv.Pos(), NotClassField, "'%s' is not a class instance", recvType)
		return types.Error
	}
	recvIsClassName := false
	if recvVs, ok := vs.Recv.(*ast.VarSel); ok {
		recvIsClassName = recvVs.IsClassName
	}
	return t.resolveFieldAccess(cls, recvIsClassName, vs)
}

// resolveFieldAccess looks `name` up through cls's member scope (which
// chains through every ancestor) and applies the static/accessibility
// rules for the symbol it finds.
func (t *Typer) resolveFieldAccess(cls *types.Class, recvIsClassName bool, vs *ast.VarSel) types.Type {
	clsSym, ok := t.Stack.LookupClass(cls.Name)
	if !ok {
		return types.Error
	}
	sym := lookupInScope(clsSym.Scope, vs.Name)
	if sym == nil {
		t.sink.Addf(vs.NamePos, FieldNotFound, "field '%s' not found in class '%s'", vs.Name, cls.Name)
		return types.Error
	}
	switch s := sym.(type) {
	case *symtab.VarSymbol:
		if recvIsClassName {
			t.sink.Addf(vs.NamePos, NotClassField, "'%s' is not a static field of class '%s'", vs.Name, cls.Name)
			return types.Error
		}
		owner, _ := s.Owner.Owner.(*symtab.ClassSymbol)
		current := t.Stack.CurrentClass()
		if owner == nil || current == nil || !types.Subtype(current.Type, owner.Type) {
			t.sink.Addf(vs.NamePos, FieldNotAccess, "field '%s' of class '%s' is not accessible here", vs.Name, cls.Name)
			return types.Error
		}
		vs.Sym = s
		return s.Type
	case *symtab.MethodSymbol:
		if recvIsClassName && !s.Static {
			t.sink.Addf(vs.NamePos, NotClassField, "method '%s' is not a static member of class '%s'", vs.Name, cls.Name)
			return types.Error
		}
		vs.IsMemberMethodName = true
		return s.Type
	default:
		return types.Error
	}
}

// lookupInScope searches scope and its ancestors (a class scope's parent
// chain runs through its superclasses) for name.
func lookupInScope(scope *symtab.Scope, name string) symtab.Symbol {
	for sc := scope; sc != nil; sc = sc.Parent {
		if sym, ok := sc.Get(name); ok {
			return sym
		}
	}
	return nil
}
