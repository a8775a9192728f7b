package semantic

import (
	"fmt"

	"github.com/hdahiru/decafc/internal/lexer"
)

// Code identifies the category of a Diagnostic. The set is fixed: every
// value the Namer or Typer can report is named here so tests can assert on
// the kind of failure rather than scraping message text.
type Code int

const (
	DeclConflict Code = iota
	ClassNotFound
	BadInheritance
	BadArrElement
	BadFieldType
	VoidArgs
	BadOverride
	OverridingVar
	NoAbstract
	NoMainClass
	UndeclVar
	RefNonStatic
	NotClassField
	FieldNotAccess
	FieldNotFound
	NotCallable
	BadLengthArg
	BadArgCount
	BadArgType
	BreakOutOfLoop
	BadReturnType
	MissingReturn
	IncompatRetType
	BadVarType
	AssignToMemberMethod
	AssignToCapturedVar
	NotArray
	SubNotInt
	BadInstantiate
	BadPrintArg
	BadTestExpr
	IncompatUnary
	IncompatBinary
)

// Diagnostic is one reported problem: a position, a stable Code, and a
// human-readable message.
type Diagnostic struct {
	Pos     lexer.Position
	Code    Code
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// Sink accumulates diagnostics in the order they are discovered. Analysis
// never stops at the first error: the affected expression is assigned
// types.Error and later checks skip when either operand is already Error,
// so diagnostics naturally appear in source-position order as a consequence
// of the deterministic top-to-bottom traversal.
type Sink struct {
	diags []Diagnostic
}

// Addf appends a diagnostic at pos with the given code and formatted message.
func (s *Sink) Addf(pos lexer.Position, code Code, format string, args ...interface{}) {
	s.diags = append(s.diags, Diagnostic{Pos: pos, Code: code, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any diagnostic has been recorded.
func (s *Sink) HasErrors() bool { return len(s.diags) > 0 }

// Diagnostics returns every recorded diagnostic, in report order.
func (s *Sink) Diagnostics() []Diagnostic { return s.diags }
