// Package types implements the Decaf type lattice: built-in types, arrays,
// classes and function types, plus the subtype/equality/join/meet relations
// the Typer needs to check expressions and infer lambda signatures.
package types

import "strings"

// Type is any value a Decaf expression can have.
//
// DESIGN CHOICE: Error is a sentinel that is both top and bottom of the
// lattice rather than a separate Option-like wrapper around Type — every
// helper in this package treats Error as "already reported, stop cascading"
// without a second nil-check layer.
type Type interface {
	String() string
	kind() kind
}

type kind int

const (
	kInvalid kind = iota
	kInt
	kBool
	kString
	kVoid
	kNull
	kError
	kArray
	kClass
	kFunction
)

type baseType struct {
	k    kind
	name string
}

func (b *baseType) String() string { return b.name }
func (b *baseType) kind() kind     { return b.k }

// Built-in singletons. Every base-typed expression shares one of these
// pointers, so identity comparison (==) is sufficient for Eq on base types.
var (
	Int    Type = &baseType{kInt, "int"}
	Bool   Type = &baseType{kBool, "bool"}
	String Type = &baseType{kString, "string"}
	Void   Type = &baseType{kVoid, "void"}
	Null   Type = &baseType{kNull, "null"}
	Error  Type = &baseType{kError, "error"}
)

// Array is `elem[]`. Subtyping on arrays is invariant: Array(a) <= Array(b)
// only when a and b are equal.
type Array struct {
	Elem Type
}

func (a *Array) String() string { return a.Elem.String() + "[]" }
func (a *Array) kind() kind     { return kArray }

// NewArray constructs an array type.
func NewArray(elem Type) *Array { return &Array{Elem: elem} }

// Class is a nominal type identified by Name; Super is nil for a class with
// no declared `extends` clause.
type Class struct {
	Name  string
	Super *Class
}

func (c *Class) String() string { return c.Name }
func (c *Class) kind() kind     { return kClass }

// NewClass constructs a class type.
func NewClass(name string, super *Class) *Class { return &Class{Name: name, Super: super} }

// Function is `(args...) -> ret`, contravariant in Args and covariant in Ret.
type Function struct {
	Ret  Type
	Args []Type
}

func (f *Function) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range f.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(") => ")
	b.WriteString(f.Ret.String())
	return b.String()
}
func (f *Function) kind() kind { return kFunction }

// NewFunction constructs a function type.
func NewFunction(ret Type, args []Type) *Function { return &Function{Ret: ret, Args: args} }

// IsBase reports whether t is one of the built-in scalar types (not Void,
// Null or Error).
func IsBase(t Type) bool {
	switch t {
	case Int, Bool, String:
		return true
	default:
		return false
	}
}

// Eq reports structural equality: nominal for classes, structural for
// arrays and functions, identity for built-ins.
func Eq(a, b Type) bool {
	if a == b {
		return true
	}
	if a.kind() != b.kind() {
		return false
	}
	switch a.kind() {
	case kArray:
		return Eq(a.(*Array).Elem, b.(*Array).Elem)
	case kClass:
		return a.(*Class).Name == b.(*Class).Name
	case kFunction:
		fa, fb := a.(*Function), b.(*Function)
		if len(fa.Args) != len(fb.Args) || !Eq(fa.Ret, fb.Ret) {
			return false
		}
		for i := range fa.Args {
			if !Eq(fa.Args[i], fb.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Subtype reports whether a can be used wherever b is expected.
func Subtype(a, b Type) bool {
	if a == Error || b == Error {
		return true
	}
	if a == Null {
		if b == Null {
			return true
		}
		_, isClass := b.(*Class)
		return isClass
	}
	switch a.kind() {
	case kInt, kBool, kString, kVoid:
		return a == b
	case kArray:
		ab, ok := b.(*Array)
		return ok && Eq(a.(*Array).Elem, ab.Elem)
	case kClass:
		cb, ok := b.(*Class)
		if !ok {
			return false
		}
		for c := a.(*Class); c != nil; c = c.Super {
			if c.Name == cb.Name {
				return true
			}
		}
		return false
	case kFunction:
		fb, ok := b.(*Function)
		if !ok {
			return false
		}
		fa := a.(*Function)
		if len(fa.Args) != len(fb.Args) || !Subtype(fa.Ret, fb.Ret) {
			return false
		}
		for i := range fa.Args {
			// contravariant: the wider (super) parameter type must accept
			// what the narrower one does.
			if !Subtype(fb.Args[i], fa.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// nonNullPivot returns the first non-Null type in ts, or nil if every
// element is Null (join/meet skip Null when picking a representative kind).
func nonNullPivot(ts []Type) Type {
	for _, t := range ts {
		if t != Null {
			return t
		}
	}
	return nil
}

// Join computes the least upper bound of a non-empty list of types.
func Join(ts []Type) Type {
	pivot := nonNullPivot(ts)
	if pivot == nil {
		return Null
	}
	switch pivot.kind() {
	case kClass:
		return joinClasses(ts, pivot.(*Class))
	case kFunction:
		return joinFunctions(ts)
	case kArray:
		return joinEqualOrError(ts, pivot)
	default:
		return joinEqualOrError(ts, pivot)
	}
}

// Meet computes the greatest lower bound of a non-empty list of types.
func Meet(ts []Type) Type {
	pivot := nonNullPivot(ts)
	if pivot == nil {
		return Null
	}
	switch pivot.kind() {
	case kClass:
		return meetClasses(ts, pivot.(*Class))
	case kFunction:
		return meetFunctions(ts)
	case kArray:
		return joinEqualOrError(ts, pivot)
	default:
		return joinEqualOrError(ts, pivot)
	}
}

// joinEqualOrError handles base/void/array types: join and meet coincide
// and require every input to equal the pivot, else Error. A Null input is
// accepted only when the pivot is an array type; with any other pivot it
// makes the result Error.
func joinEqualOrError(ts []Type, pivot Type) Type {
	for _, t := range ts {
		if t == Null {
			if pivot.kind() == kArray {
				continue // Null has no array shape to compare
			}
			return Error
		}
		if !Eq(t, pivot) {
			return Error
		}
	}
	return pivot
}

func classAncestors(c *Class) []*Class {
	var chain []*Class
	for ; c != nil; c = c.Super {
		chain = append(chain, c)
	}
	return chain
}

// joinClasses walks up pivot's super chain until every non-Null input is a
// subtype of the candidate; Null inputs are always satisfied.
func joinClasses(ts []Type, pivot *Class) Type {
	for _, candidate := range classAncestors(pivot) {
		ok := true
		for _, t := range ts {
			if t == Null {
				continue
			}
			if !Subtype(t, candidate) {
				ok = false
				break
			}
		}
		if ok {
			return candidate
		}
	}
	return Error
}

// meetClasses picks the deepest class that every non-Null input is a
// supertype of: the unique candidate c such that c <= every t, preferring
// the most specific such c among the candidates appearing in ts.
func meetClasses(ts []Type, pivot *Class) Type {
	var classes []*Class
	for _, t := range ts {
		if t == Null {
			continue
		}
		c, ok := t.(*Class)
		if !ok {
			return Error
		}
		classes = append(classes, c)
	}
	if len(classes) == 0 {
		return pivot
	}
	// Candidate set: the input classes themselves; the meet, when it
	// exists, is the one that is a subtype of every other input.
	for _, candidate := range classes {
		ok := true
		for _, c := range classes {
			if !Subtype(candidate, c) {
				ok = false
				break
			}
		}
		if ok {
			return candidate
		}
	}
	return Error
}

func joinFunctions(ts []Type) Type {
	fns, ok := asFunctions(ts)
	if !ok {
		return Error
	}
	rets := make([]Type, len(fns))
	for i, f := range fns {
		rets[i] = f.Ret
	}
	ret := Join(rets)
	if ret == Error {
		return Error
	}
	args, ok := meetArgsPointwise(fns)
	if !ok {
		return Error
	}
	return NewFunction(ret, args)
}

func meetFunctions(ts []Type) Type {
	fns, ok := asFunctions(ts)
	if !ok {
		return Error
	}
	rets := make([]Type, len(fns))
	for i, f := range fns {
		rets[i] = f.Ret
	}
	ret := Meet(rets)
	if ret == Error {
		return Error
	}
	args, ok := joinArgsPointwise(fns)
	if !ok {
		return Error
	}
	return NewFunction(ret, args)
}

func asFunctions(ts []Type) ([]*Function, bool) {
	var fns []*Function
	var arity = -1
	for _, t := range ts {
		if t == Null {
			continue
		}
		f, ok := t.(*Function)
		if !ok {
			return nil, false
		}
		if arity == -1 {
			arity = len(f.Args)
		} else if len(f.Args) != arity {
			return nil, false
		}
		fns = append(fns, f)
	}
	return fns, true
}

// meetArgsPointwise/joinArgsPointwise flip the variance: a function join's
// argument list is the pointwise meet of the inputs' argument lists
// (contravariance), and a meet's argument list is the pointwise join.
func meetArgsPointwise(fns []*Function) ([]Type, bool) {
	return combineArgsPointwise(fns, Meet)
}

func joinArgsPointwise(fns []*Function) ([]Type, bool) {
	return combineArgsPointwise(fns, Join)
}

func combineArgsPointwise(fns []*Function, combine func([]Type) Type) ([]Type, bool) {
	if len(fns) == 0 {
		return nil, true
	}
	arity := len(fns[0].Args)
	args := make([]Type, arity)
	for i := 0; i < arity; i++ {
		col := make([]Type, len(fns))
		for j, f := range fns {
			col[j] = f.Args[i]
		}
		t := combine(col)
		if t == Error {
			return nil, false
		}
		args[i] = t
	}
	return args, true
}
