// Package codegen is the downstream collaborator that would consume the
// annotated AST to emit three-address code and hand it to an optimizer and
// backend. Those stages are out of scope here; this package only proves out
// the interface boundary by walking a fully Namer/Typer-annotated program
// and reporting the two pieces of information a real code generator would
// need first: each lambda's capture list (to size its closure record) and
// every implicit-`this` reference a method body makes (to know where a
// receiver load has to be inserted).
package codegen

import (
	"fmt"
	"sort"

	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/lexer"
	"github.com/hdahiru/decafc/internal/symtab"
)

// Report is the result of walking one program: one line of prose per
// lambda and per implicit-this reference found, in source order by class
// then by method.
type Report struct {
	Lines []string
}

func (r *Report) add(format string, args ...interface{}) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// Generate walks top, which must already have been through Namer.Resolve
// and Typer.Check, and produces a Report. It does no diagnostics of its
// own: a program with unresolved types or symbols is simply skipped over
// wherever the missing annotation would be needed.
func Generate(top *ast.TopLevel) *Report {
	r := &Report{}
	for _, cd := range top.Classes {
		for _, m := range cd.Members {
			md, ok := m.(*ast.MethodDef)
			if !ok || md.Body == nil {
				continue
			}
			w := &walker{report: r, class: cd.Name, method: md.Name}
			w.walkBlock(md.Body)
		}
	}
	return r
}

type walker struct {
	report *Report
	class  string
	method string
}

func (w *walker) walkBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		w.walkStmt(s)
	}
}

func (w *walker) walkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Block:
		w.walkBlock(st)
	case *ast.LocalVarDef:
		w.walkExpr(st.Init)
	case *ast.AssignStmt:
		w.walkExpr(st.LHS)
		w.walkExpr(st.RHS)
	case *ast.ExprStmt:
		w.walkExpr(st.X)
	case *ast.IfStmt:
		w.walkExpr(st.Cond)
		w.walkStmt(st.Then)
		if st.Else != nil {
			w.walkStmt(st.Else)
		}
	case *ast.WhileStmt:
		w.walkExpr(st.Cond)
		w.walkStmt(st.Body)
	case *ast.ForStmt:
		if st.Init != nil {
			w.walkStmt(st.Init)
		}
		if st.Cond != nil {
			w.walkExpr(st.Cond)
		}
		if st.Post != nil {
			w.walkStmt(st.Post)
		}
		w.walkStmt(st.Body)
	case *ast.ReturnStmt:
		if st.Value != nil {
			w.walkExpr(st.Value)
		}
	case *ast.PrintStmt:
		for _, a := range st.Args {
			w.walkExpr(a)
		}
	}
}

func (w *walker) walkExpr(e ast.Expr) {
	switch ex := e.(type) {
	case nil:
		return
	case *ast.VarSel:
		if ex.Sym != nil && ex.Sym.Kind() == symtab.VarMember && isImplicitThis(ex.Recv, ex.NamePos) {
			w.report.add("%s.%s: implicit this.%s", w.class, w.method, ex.Name)
		}
		w.walkExpr(ex.Recv)
	case *ast.CallExpr:
		if ex.Method != nil && !ex.Method.Static && isImplicitThis(ex.Recv, ex.NamePos) {
			w.report.add("%s.%s: implicit this.%s(...)", w.class, w.method, ex.Name)
		}
		w.walkExpr(ex.Recv)
		for _, a := range ex.Args {
			w.walkExpr(a)
		}
	case *ast.IndexExpr:
		w.walkExpr(ex.Array)
		w.walkExpr(ex.Index)
	case *ast.UnaryExpr:
		w.walkExpr(ex.Operand)
	case *ast.BinaryExpr:
		w.walkExpr(ex.Left)
		w.walkExpr(ex.Right)
	case *ast.NewArrayExpr:
		w.walkExpr(ex.Length)
	case *ast.InstanceOfExpr:
		w.walkExpr(ex.Operand)
	case *ast.ClassCastExpr:
		w.walkExpr(ex.Operand)
	case *ast.Lambda:
		w.report.add("%s.%s: lambda at %s captures %s", w.class, w.method, ex.Pos(), captureNames(ex.Capture))
		switch ex.BodyKind {
		case ast.LambdaExprBody:
			w.walkExpr(ex.ExprBody)
		case ast.LambdaBlockBody:
			w.walkBlock(ex.BlockBody)
		}
	}
}

// isImplicitThis reports whether recv is the synthetic `this` the Typer
// inserts for a bare member reference: a real `this.x` carries the position
// of the actual `this` keyword, which can never coincide with namePos (the
// member name's own position), while the synthesized receiver is stamped
// with namePos exactly.
func isImplicitThis(recv ast.Expr, namePos lexer.Position) bool {
	th, ok := recv.(*ast.ThisExpr)
	return ok && th.KwPos == namePos
}

func captureNames(capture []*symtab.VarSymbol) string {
	if len(capture) == 0 {
		return "[]"
	}
	names := make([]string, len(capture))
	for i, v := range capture {
		names[i] = v.Name
	}
	sort.Strings(names)
	return fmt.Sprintf("%v", names)
}
