package semantic

import (
	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/symtab"
	"github.com/hdahiru/decafc/internal/types"
)

// Typer is the second analysis pass: bidirectional expression typing,
// statement checks, lambda type inference by join/meet, and closure
// capture analysis. It consumes the scope tree the Namer already built and
// never creates new scopes of its own — it only opens the ones already
// attached to Block and Lambda nodes.
type Typer struct {
	Stack *symtab.Stack
	sink  *Sink

	loopLevel int

	// lambdaStack holds the innermost-first chain of lambdas currently
	// being typed, so VarSel can both find "the current lambda" for return
	// type collection and decide whether a reference is a capture.
	lambdaStack []*symtab.LambdaSymbol

	// varStack holds the names of `var` locals whose own initializer is
	// currently being typed. LookupBefore is called with the reference's
	// position, which follows the `var` name, so it does not exclude the
	// variable being defined; instead a bare reference to one of these
	// names is always rejected outright, regardless of the scope shape
	// between the reference and the declaration (e.g. a lambda nested
	// inside the initializer).
	varStack []string

	// retTypeStack holds, for each block-bodied lambda currently open, the
	// list of types collected from its `return` statements so far.
	retTypeStack [][]types.Type
}

// NewTyper creates a Typer sharing stack (already populated by a Namer) and
// reporting into sink.
func NewTyper(stack *symtab.Stack, sink *Sink) *Typer {
	return &Typer{Stack: stack, sink: sink}
}

// Check walks every concrete method and lambda body in top, typing every
// expression and statement it contains.
func (t *Typer) Check(top *ast.TopLevel) {
	for _, cd := range top.Classes {
		t.Stack.Open(cd.Symbol.Scope)
		for _, m := range cd.Members {
			if md, ok := m.(*ast.MethodDef); ok && !md.Abstract {
				t.checkMethod(md)
			}
		}
		t.Stack.Close()
	}
}

func (t *Typer) checkMethod(m *ast.MethodDef) {
	t.Stack.Open(m.Symbol.FormalScope)
	t.typeBlock(m.Body)
	t.Stack.Close()

	if m.Symbol.Type.Ret != types.Void && !m.Body.Returns {
		t.sink.Addf(m.Pos(), BadReturnType, "missing return statement: control reaches end of non-void method '%s'", m.Name)
	}
}

// typeBlock types every statement in b under its already-namer-created
// scope and computes Returns/IsClose.
func (t *Typer) typeBlock(b *ast.Block) {
	t.Stack.Open(b.Scope)
	returns := false
	closed := false
	for _, s := range b.Stmts {
		t.typeStmt(s)
		returns = stmtReturns(s)
		if stmtIsClose(s) {
			closed = true
		}
	}
	b.Returns = returns
	b.IsClose = closed
	t.Stack.Close()
}

func (t *Typer) typeStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Block:
		t.typeBlock(st)
	case *ast.LocalVarDef:
		t.typeLocalVarDef(st)
	case *ast.AssignStmt:
		t.typeAssign(st)
	case *ast.ExprStmt:
		t.typeExpr(st.X)
	case *ast.IfStmt:
		t.typeIf(st)
	case *ast.WhileStmt:
		t.typeWhile(st)
	case *ast.ForStmt:
		t.typeFor(st)
	case *ast.BreakStmt:
		if t.loopLevel == 0 {
			t.sink.Addf(st.Pos(), BreakOutOfLoop, "'break' is only allowed inside a loop")
		}
	case *ast.ReturnStmt:
		t.typeReturn(st)
	case *ast.PrintStmt:
		for _, a := range st.Args {
			at := t.typeExpr(a)
			if at != types.Error && !types.IsBase(at) {
				t.sink.Addf(a.Pos(), BadPrintArg, "'Print' accepts base-typed arguments only, got %s", at)
			}
		}
	}
}

func (t *Typer) typeLocalVarDef(st *ast.LocalVarDef) {
	if st.Type == nil {
		t.varStack = append(t.varStack, st.Name)
		initType := t.typeExpr(st.Init)
		t.varStack = t.varStack[:len(t.varStack)-1]
		if initType == types.Void {
			t.sink.Addf(st.Init.Pos(), BadVarType, "variable declared with 'var' cannot have void initializer type")
			initType = types.Error
		}
		st.Sym.Type = initType
		return
	}
	declared := resolveType(st.Type, t.Stack.Classes, t.sink)
	st.Sym.Type = declared
	if st.Init != nil {
		initType := t.typeExpr(st.Init)
		if !types.Subtype(initType, declared) {
			t.sink.Addf(st.Init.Pos(), BadVarType, "incompatible initializer: %s given, %s expected", initType, declared)
		}
	}
}

func (t *Typer) typeAssign(st *ast.AssignStmt) {
	leftType := t.typeExpr(st.LHS)
	rightType := t.typeExpr(st.RHS)

	if vs, ok := st.LHS.(*ast.VarSel); ok {
		if vs.IsMemberMethodName {
			t.sink.Addf(st.Pos(), AssignToMemberMethod, "cannot assign value to class member method '%s'", vs.Name)
			return
		}
		if vs.Recv == nil && t.isCapturedReference(vs.Sym) {
			t.sink.Addf(st.Pos(), AssignToCapturedVar, "cannot assign value to captured variable '%s' in a lambda", vs.Name)
			return
		}
	}

	if leftType == types.Error || rightType == types.Error {
		return
	}
	if !types.Subtype(rightType, leftType) {
		t.sink.Addf(st.Pos(), BadArgType, "incompatible assignment: %s given, %s expected", rightType, leftType)
	}
}

// isCapturedReference reports whether sym (a bare-name reference's
// resolved variable) is declared outside the innermost enclosing
// function/lambda frame in a non-class scope — i.e. it is captured.
//
// Mirrors recordCapture's walk: ascend from the lambda's own frame looking
// for sym.Owner, since sym.Owner can only ever be an ancestor of that frame,
// never be found by searching in the other direction.
func (t *Typer) isCapturedReference(sym *symtab.VarSymbol) bool {
	if sym == nil || len(t.lambdaStack) == 0 {
		return false
	}
	inner := t.Stack.FormalOrLambdaScope()
	if inner == nil || inner.Kind != symtab.ScopeLambda {
		return false
	}
	for sc := inner.Parent; sc != nil; sc = sc.Parent {
		if sc.Kind == symtab.ScopeClass {
			return false
		}
		if sc == sym.Owner {
			return true
		}
	}
	return false
}

func (t *Typer) typeIf(st *ast.IfStmt) {
	condType := t.typeExpr(st.Cond)
	if condType != types.Error && condType != types.Bool {
		t.sink.Addf(st.Cond.Pos(), BadTestExpr, "condition of 'if' must be bool")
	}
	t.typeStmt(st.Then)
	if st.Else != nil {
		t.typeStmt(st.Else)
	}
	st.Returns = st.Else != nil && stmtReturns(st.Then) && stmtReturns(st.Else)
	if len(t.lambdaStack) > 0 {
		st.IsClose = st.Else != nil && stmtIsClose(st.Then) && stmtIsClose(st.Else)
	}
}

func (t *Typer) typeWhile(st *ast.WhileStmt) {
	condType := t.typeExpr(st.Cond)
	if condType != types.Error && condType != types.Bool {
		t.sink.Addf(st.Cond.Pos(), BadTestExpr, "condition of 'while' must be bool")
	}
	t.loopLevel++
	t.typeStmt(st.Body)
	t.loopLevel--
}

func (t *Typer) typeFor(st *ast.ForStmt) {
	if st.Scope != nil {
		t.Stack.Open(st.Scope)
		defer t.Stack.Close()
	}
	if st.Init != nil {
		t.typeStmt(st.Init)
	}
	if st.Cond != nil {
		condType := t.typeExpr(st.Cond)
		if condType != types.Error && condType != types.Bool {
			t.sink.Addf(st.Cond.Pos(), BadTestExpr, "condition of 'for' must be bool")
		}
	}
	if st.Post != nil {
		t.typeStmt(st.Post)
	}
	t.loopLevel++
	t.typeStmt(st.Body)
	t.loopLevel--
}

func (t *Typer) typeReturn(st *ast.ReturnStmt) {
	st.Returns = true
	st.IsClose = true
	var actual types.Type = types.Void
	if st.Value != nil {
		actual = t.typeExpr(st.Value)
	}
	if len(t.retTypeStack) > 0 {
		top := len(t.retTypeStack) - 1
		t.retTypeStack[top] = append(t.retTypeStack[top], actual)
		return
	}
	method := t.Stack.CurrentMethod()
	if method == nil {
		return
	}
	if !types.Subtype(actual, method.Type.Ret) {
		t.sink.Addf(st.Pos(), BadReturnType, "incompatible return type: %s given, %s expected", actual, method.Type.Ret)
	}
}
