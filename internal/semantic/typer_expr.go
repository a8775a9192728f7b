package semantic

import (
	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/lexer"
	"github.com/hdahiru/decafc/internal/types"
)

// typeExpr types e, stores the result on e itself, and returns it.
func (t *Typer) typeExpr(e ast.Expr) types.Type {
	if e == nil {
		return types.Error
	}
	result := t.typeExprKind(e)
	e.SetType(result)
	return result
}

func (t *Typer) typeExprKind(e ast.Expr) types.Type {
	switch ex := e.(type) {
	case *ast.IntLit:
		return types.Int
	case *ast.BoolLit:
		return types.Bool
	case *ast.StringLit:
		return types.String
	case *ast.NullLit:
		return types.Null
	case *ast.ReadIntExpr:
		return types.Int
	case *ast.ReadLineExpr:
		return types.String
	case *ast.ThisExpr:
		return t.typeThis(ex)
	case *ast.UnaryExpr:
		return t.typeUnary(ex)
	case *ast.BinaryExpr:
		return t.typeBinary(ex)
	case *ast.IndexExpr:
		return t.typeIndex(ex)
	case *ast.NewExpr:
		return t.typeNew(ex)
	case *ast.NewArrayExpr:
		return t.typeNewArray(ex)
	case *ast.InstanceOfExpr:
		return t.typeInstanceOf(ex)
	case *ast.ClassCastExpr:
		return t.typeCast(ex)
	case *ast.VarSel:
		return t.typeVarSel(ex, false)
	case *ast.CallExpr:
		return t.typeCallExpr(ex)
	case *ast.Lambda:
		return t.typeLambda(ex)
	default:
		return types.Error
	}
}

// typeReceiver types e as the receiver of a `.` selection, temporarily
// allowing a bare class name to type-check (VarSel is the only expression
// kind that can denote a class name).
func (t *Typer) typeReceiver(e ast.Expr) types.Type {
	if e == nil {
		return types.Error
	}
	var result types.Type
	if vs, ok := e.(*ast.VarSel); ok && vs.Recv == nil {
		result = t.typeVarSel(vs, true)
	} else {
		result = t.typeExprKind(e)
	}
	e.SetType(result)
	return result
}

func (t *Typer) typeThis(ex *ast.ThisExpr) types.Type {
	method := t.Stack.CurrentMethod()
	if method != nil && method.Static {
		t.sink.Addf(ex.Pos(), RefNonStatic, "'this' cannot be used inside a static method")
		return types.Error
	}
	cls := t.Stack.CurrentClass()
	if cls == nil {
		return types.Error
	}
	return cls.Type
}

func (t *Typer) typeUnary(ex *ast.UnaryExpr) types.Type {
	operandType := t.typeExpr(ex.Operand)
	switch ex.Op {
	case lexer.TokenMinus:
		if operandType != types.Error && operandType != types.Int {
			t.sink.Addf(ex.Pos(), IncompatUnary, "incompatible operand type %s for operator '-'", operandType)
		}
		return types.Int
	case lexer.TokenNot:
		if operandType != types.Error && operandType != types.Bool {
			t.sink.Addf(ex.Pos(), IncompatUnary, "incompatible operand type %s for operator '!'", operandType)
		}
		return types.Bool
	default:
		return types.Error
	}
}

func (t *Typer) typeBinary(ex *ast.BinaryExpr) types.Type {
	left := t.typeExpr(ex.Left)
	right := t.typeExpr(ex.Right)
	bothOK := left != types.Error && right != types.Error

	switch ex.Op {
	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		if bothOK && (left != types.Int || right != types.Int) {
			t.sink.Addf(ex.Pos(), IncompatBinary, "incompatible operand types %s, %s for operator '%s'", left, right, ex.Op)
		}
		return types.Int
	case lexer.TokenAnd, lexer.TokenOr:
		if bothOK && (left != types.Bool || right != types.Bool) {
			t.sink.Addf(ex.Pos(), IncompatBinary, "incompatible operand types %s, %s for operator '%s'", left, right, ex.Op)
		}
		return types.Bool
	case lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual:
		if bothOK && (left != types.Int || right != types.Int) {
			t.sink.Addf(ex.Pos(), IncompatBinary, "incompatible operand types %s, %s for operator '%s'", left, right, ex.Op)
		}
		return types.Bool
	case lexer.TokenEqual, lexer.TokenNotEqual:
		if bothOK && !types.Subtype(left, right) && !types.Subtype(right, left) {
			t.sink.Addf(ex.Pos(), IncompatBinary, "incompatible operand types %s, %s for operator '%s'", left, right, ex.Op)
		}
		return types.Bool
	default:
		return types.Error
	}
}

func (t *Typer) typeIndex(ex *ast.IndexExpr) types.Type {
	arrType := t.typeExpr(ex.Array)
	idxType := t.typeExpr(ex.Index)
	if idxType != types.Error && idxType != types.Int {
		t.sink.Addf(ex.Index.Pos(), SubNotInt, "array subscript must be int")
	}
	if arrType == types.Error {
		return types.Error
	}
	arr, ok := arrType.(*types.Array)
	if !ok {
		t.sink.Addf(ex.Array.Pos(), NotArray, "'%s' is not an array", arrType)
		return types.Error
	}
	return arr.Elem
}

func (t *Typer) typeNew(ex *ast.NewExpr) types.Type {
	cls, ok := t.Stack.LookupClass(ex.ClassName)
	if !ok {
		t.sink.Addf(ex.Pos(), ClassNotFound, "class '%s' not found", ex.ClassName)
		return types.Error
	}
	ex.Class = cls
	if cls.Abstract {
		t.sink.Addf(ex.Pos(), BadInstantiate, "cannot instantiate abstract class '%s'", ex.ClassName)
		return types.Error
	}
	return cls.Type
}

func (t *Typer) typeNewArray(ex *ast.NewArrayExpr) types.Type {
	elem := resolveType(ex.ElemType, t.Stack.Classes, t.sink)
	lenType := t.typeExpr(ex.Length)
	if lenType != types.Error && lenType != types.Int {
		t.sink.Addf(ex.Length.Pos(), SubNotInt, "array length must be int")
	}
	if elem == types.Error {
		return types.Error
	}
	if elem == types.Void {
		t.sink.Addf(ex.Pos(), BadArrElement, "array element type must not be void")
		return types.Error
	}
	return types.NewArray(elem)
}

func (t *Typer) typeInstanceOf(ex *ast.InstanceOfExpr) types.Type {
	operandType := t.typeExpr(ex.Operand)
	if operandType != types.Error {
		if _, ok := operandType.(*types.Class); !ok && operandType != types.Null {
			t.sink.Addf(ex.Operand.Pos(), NotClassField, "'instanceof' requires an object operand")
		}
	}
	if _, ok := t.Stack.LookupClass(ex.ClassName); !ok {
		t.sink.Addf(ex.NamePos, ClassNotFound, "class '%s' not found", ex.ClassName)
	}
	return types.Bool
}

func (t *Typer) typeCast(ex *ast.ClassCastExpr) types.Type {
	operandType := t.typeExpr(ex.Operand)
	cls, ok := t.Stack.LookupClass(ex.ClassName)
	if !ok {
		t.sink.Addf(ex.NamePos, ClassNotFound, "class '%s' not found", ex.ClassName)
		return types.Error
	}
	if operandType != types.Error {
		if _, isClass := operandType.(*types.Class); !isClass && operandType != types.Null {
			t.sink.Addf(ex.Operand.Pos(), NotClassField, "cannot cast a non-object value")
			return types.Error
		}
	}
	return cls.Type
}
