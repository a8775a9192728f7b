package semantic

import (
	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/symtab"
	"github.com/hdahiru/decafc/internal/types"
)

// resolveType turns the syntactic form of a type into a semantic types.Type.
// It is shared, verbatim, by the Namer (resolving field/parameter/return
// type syntax while it builds scopes) and the Typer (resolving declared
// local variable types and `new T[n]` element types), so it never consults
// per-pass state — only the class table and the diagnostic sink.
func resolveType(t ast.TypeLit, classes *symtab.ClassTable, sink *Sink) types.Type {
	switch lit := t.(type) {
	case *ast.TIntLit:
		return types.Int
	case *ast.TBoolLit:
		return types.Bool
	case *ast.TStringLit:
		return types.String
	case *ast.TVoidLit:
		return types.Void
	case *ast.TClassLit:
		cls, ok := classes.Lookup(lit.Name)
		if !ok {
			sink.Addf(lit.Pos(), ClassNotFound, "class '%s' not found", lit.Name)
			return types.Error
		}
		return cls.Type
	case *ast.TArrayLit:
		elem := resolveType(lit.Elem, classes, sink)
		if elem == types.Error {
			return types.Error
		}
		if elem == types.Void {
			sink.Addf(lit.Pos(), BadArrElement, "array element type must not be void")
			return types.Error
		}
		return types.NewArray(elem)
	case *ast.TLambdaLit:
		ret := resolveType(lit.Ret, classes, sink)
		errored := ret == types.Error
		voidArg := false
		args := make([]types.Type, len(lit.Params))
		for i, p := range lit.Params {
			pt := resolveType(p, classes, sink)
			if pt == types.Error {
				errored = true
			} else if pt == types.Void {
				voidArg = true
			}
			args[i] = pt
		}
		if voidArg {
			sink.Addf(lit.Pos(), VoidArgs, "arguments in function type must be non-void known type")
			return types.Error
		}
		if errored {
			return types.Error
		}
		return types.NewFunction(ret, args)
	default:
		return types.Error
	}
}
