package semantic

import "github.com/hdahiru/decafc/internal/ast"

// stmtReturns reports the "returns" annotation of a statement the Typer has
// already visited: whether every control path through it ends in a return.
func stmtReturns(s ast.Stmt) bool {
	switch st := s.(type) {
	case *ast.Block:
		return st.Returns
	case *ast.IfStmt:
		return st.Returns
	case *ast.ReturnStmt:
		return st.Returns
	default:
		return false
	}
}

// stmtIsClose reports whether s is a "closed" path: one that definitely
// exits the enclosing lambda via return. Used only while typing lambda
// bodies, to short-circuit the missing-return check.
func stmtIsClose(s ast.Stmt) bool {
	switch st := s.(type) {
	case *ast.Block:
		return st.IsClose
	case *ast.IfStmt:
		return st.IsClose
	case *ast.ReturnStmt:
		return st.IsClose
	default:
		return false
	}
}
