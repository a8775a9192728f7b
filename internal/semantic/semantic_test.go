package semantic

import (
	"testing"

	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/lexer"
	"github.com/hdahiru/decafc/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// analyze parses src, then runs the Namer and (if the Namer finds the
// program safe to continue) the Typer over it, returning every diagnostic
// gathered by both passes together with the namer itself for scope/symbol
// inspection.
func analyze(t *testing.T, src string) ([]Diagnostic, *Namer) {
	t.Helper()
	l := lexer.New(src, "test.decaf")
	p := parser.New(l)
	top, parseErrs := p.ParseProgram()
	require.Empty(t, parseErrs, "source must parse cleanly for a semantic test")

	sink := &Sink{}
	namer := NewNamer(sink)
	if namer.Resolve(top) {
		typer := NewTyper(namer.Stack, sink)
		typer.Check(top)
	}
	return sink.Diagnostics(), namer
}

func codesOf(diags []Diagnostic) []Code {
	out := make([]Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestNamer_ValidClassHierarchy_NoDiagnostics(t *testing.T) {
	src := `
class Animal {
  string name;
  void speak() {
    Print("...");
  }
}
class Dog extends Animal {
  void speak() {
    Print("Woof");
  }
}
class Main {
  static void main() {
    Dog d;
    d = new Dog();
    d.speak();
  }
}
`
	diags, _ := analyze(t, src)
	assert.Empty(t, diags, "a well-formed class hierarchy should produce no diagnostics")
}

func TestNamer_InheritanceCycle_SingleDiagnostic(t *testing.T) {
	src := `
class A extends B {}
class B extends A {}
class Main {
  static void main() {}
}
`
	diags, _ := analyze(t, src)
	require.Len(t, diags, 1, "a cycle should be reported exactly once, not once per class in the cycle")
	assert.Equal(t, BadInheritance, diags[0].Code)
}

func TestNamer_ConcreteClassMissingOverride_NoAbstract(t *testing.T) {
	src := `
abstract class Shape {
  abstract int area();
}
class Square extends Shape {
  int side;
}
class Main {
  static void main() {}
}
`
	diags, _ := analyze(t, src)
	require.NotEmpty(t, diags)
	assert.Contains(t, codesOf(diags), NoAbstract)
}

func TestNamer_AbstractSubclassNeedNotOverride(t *testing.T) {
	src := `
abstract class Shape {
  abstract int area();
}
abstract class PartialShape extends Shape {
  int helper() {
    return 0;
  }
}
class Main {
  static void main() {}
}
`
	diags, _ := analyze(t, src)
	assert.NotContains(t, codesOf(diags), NoAbstract, "an abstract subclass is not required to implement inherited abstract methods")
}

func TestTyper_SelfReferentialVarInit_UndeclVar(t *testing.T) {
	src := `
class Main {
  static void main() {
    var x = x + 1;
  }
}
`
	diags, _ := analyze(t, src)
	require.NotEmpty(t, diags)
	assert.Equal(t, UndeclVar, diags[0].Code)
}

func TestTyper_LambdaInference_EmptyCapture(t *testing.T) {
	src := `
class Main {
  static void main() {
    var f = fun(int n) => n + 1;
  }
}
`
	diags, _ := analyze(t, src)
	assert.Empty(t, diags, "a lambda capturing nothing should type-check cleanly")
}

func TestTyper_AssignToCapturedVar(t *testing.T) {
	src := `
class Main {
  static void main() {
    int total = 0;
    var f = fun(int n) {
      total = total + n;
    };
  }
}
`
	diags, _ := analyze(t, src)
	require.NotEmpty(t, diags)
	assert.Contains(t, codesOf(diags), AssignToCapturedVar)
}

func TestTyper_ReadingCapturedVar_NoDiagnostics(t *testing.T) {
	src := `
class Main {
  static void main() {
    int total = 0;
    var f = fun(int n) => total + n;
  }
}
`
	diags, _ := analyze(t, src)
	assert.Empty(t, diags, "reading (not assigning) a captured variable is legal")
}

func TestTyper_OverrideWithIncompatibleSignature(t *testing.T) {
	src := `
class Animal {
  int legs() {
    return 4;
  }
}
class Bird extends Animal {
  string legs() {
    return "2";
  }
}
class Main {
  static void main() {}
}
`
	diags, _ := analyze(t, src)
	assert.Contains(t, codesOf(diags), BadOverride)
}

func TestTyper_MissingReturnInNonVoidMethod(t *testing.T) {
	src := `
class C {
  int f() {
    Print("no return");
  }
}
class Main {
  static void main() {}
}
`
	diags, _ := analyze(t, src)
	require.NotEmpty(t, diags)
	assert.Equal(t, BadReturnType, diags[0].Code)
}

func TestNamer_NoMainClass(t *testing.T) {
	src := `
class Utility {
  void helper() {}
}
`
	diags, _ := analyze(t, src)
	require.NotEmpty(t, diags)
	assert.Contains(t, codesOf(diags), NoMainClass)
}

func TestTyper_FieldShadowOfAncestorVar_OverridingVar(t *testing.T) {
	src := `
class Animal {
  int legs;
}
class Dog extends Animal {
  int legs;
}
class Main {
  static void main() {}
}
`
	diags, _ := analyze(t, src)
	assert.Contains(t, codesOf(diags), OverridingVar)
}

func TestTyper_ArrayLengthCall(t *testing.T) {
	src := `
class Main {
  static void main() {
    int[] xs;
    xs = new int[10];
    int n = xs.length();
    Print(n);
  }
}
`
	diags, _ := analyze(t, src)
	assert.Empty(t, diags, "array.length() should type-check as an int-returning call")
}

func TestTyper_NewArrayOfVoid_BadArrElement(t *testing.T) {
	src := `
class Main {
  static void main() {
    var xs = new void[5];
  }
}
`
	diags, _ := analyze(t, src)
	require.NotEmpty(t, diags)
	assert.Equal(t, BadArrElement, diags[0].Code)
}

func TestTyper_DiagnosticsAreDeterministicAcrossRuns(t *testing.T) {
	src := `
class A extends Missing {}
class Main {
  static void main() {
    undeclared = 1;
  }
}
`
	first, _ := analyze(t, src)
	second, _ := analyze(t, src)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Code, second[i].Code)
		assert.Equal(t, first[i].Pos, second[i].Pos)
	}
}

// Every Expr node in a clean program must carry a concrete type once the
// Typer has run: never the unset zero value of types.Type (nil).
func TestTyper_AnnotatesEveryExprWithAType(t *testing.T) {
	src := `
class Main {
  static void main() {
    int x = 1 + 2;
    bool b = x > 0;
    Print(x, b);
  }
}
`
	l := lexer.New(src, "test.decaf")
	p := parser.New(l)
	top, parseErrs := p.ParseProgram()
	require.Empty(t, parseErrs)

	sink := &Sink{}
	namer := NewNamer(sink)
	require.True(t, namer.Resolve(top))
	typer := NewTyper(namer.Stack, sink)
	typer.Check(top)
	require.Empty(t, sink.Diagnostics())

	main := top.Classes[0].Members[0].(*ast.MethodDef)
	for _, stmt := range main.Body.Stmts {
		if lvd, ok := stmt.(*ast.LocalVarDef); ok {
			assert.NotNil(t, lvd.Init.Type(), "every initializer expression must be annotated with a type")
		}
	}
}
