package codegen

import (
	"strings"
	"testing"

	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/lexer"
	"github.com/hdahiru/decafc/internal/parser"
	"github.com/hdahiru/decafc/internal/semantic"
)

// annotate runs the full front end over src and fails the test unless it
// comes out clean, returning the fully Namer/Typer-annotated program.
func annotate(t *testing.T, src string) *ast.TopLevel {
	t.Helper()
	l := lexer.New(src, "test.decaf")
	p := parser.New(l)
	top, parseErrs := p.ParseProgram()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	sink := &semantic.Sink{}
	namer := semantic.NewNamer(sink)
	if !namer.Resolve(top) {
		t.Fatalf("namer reported a fatal error: %v", sink.Diagnostics())
	}
	typer := semantic.NewTyper(namer.Stack, sink)
	typer.Check(top)
	if diags := sink.Diagnostics(); len(diags) != 0 {
		t.Fatalf("unexpected semantic diagnostics: %v", diags)
	}
	return top
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestGenerate_ImplicitThisFieldAccess(t *testing.T) {
	src := `
class Counter {
  int total;
  void bump() {
    total = total + 1;
  }
}
class Main {
  static void main() {}
}
`
	report := Generate(annotate(t, src))
	if !containsLine(report.Lines, "Counter.bump: implicit this.total") {
		t.Errorf("report = %v, want a line reporting implicit this.total", report.Lines)
	}
}

func TestGenerate_ExplicitThisIsNotReportedAsImplicit(t *testing.T) {
	src := `
class Counter {
  int total;
  void bump() {
    this.total = this.total + 1;
  }
}
class Main {
  static void main() {}
}
`
	report := Generate(annotate(t, src))
	if containsLine(report.Lines, "implicit this.total") {
		t.Errorf("report = %v, an explicit this.total should not be reported as implicit", report.Lines)
	}
}

func TestGenerate_ImplicitThisMethodCall(t *testing.T) {
	src := `
class Greeter {
  void hello() {
    Print("hi");
  }
  void greet() {
    hello();
  }
}
class Main {
  static void main() {}
}
`
	report := Generate(annotate(t, src))
	if !containsLine(report.Lines, "Greeter.greet: implicit this.hello(...)") {
		t.Errorf("report = %v, want a line reporting implicit this.hello(...)", report.Lines)
	}
}

func TestGenerate_StaticMethodCallIsNotImplicitThis(t *testing.T) {
	src := `
class Util {
  static int id(int n) {
    return n;
  }
}
class Main {
  static void main() {
    int x;
    x = Util.id(1);
  }
}
`
	report := Generate(annotate(t, src))
	for _, line := range report.Lines {
		if strings.Contains(line, "implicit this") {
			t.Errorf("a static call through a class name should never be reported as implicit this, got %q", line)
		}
	}
}

func TestGenerate_LambdaCaptureReported(t *testing.T) {
	src := `
class Counter {
  void run() {
    int total;
    total = 0;
    var f = fun(int n) => total + n;
  }
}
class Main {
  static void main() {}
}
`
	report := Generate(annotate(t, src))
	found := false
	for _, line := range report.Lines {
		if strings.Contains(line, "captures") {
			found = true
			if !strings.Contains(line, "total") {
				t.Errorf("capture line = %q, want it to mention total", line)
			}
		}
	}
	if !found {
		t.Errorf("report = %v, want a line reporting the lambda's capture set", report.Lines)
	}
}

func TestGenerate_LambdaWithEmptyCapture(t *testing.T) {
	src := `
class C {
  void run() {
    var f = fun(int n) => n + 1;
  }
}
class Main {
  static void main() {}
}
`
	report := Generate(annotate(t, src))
	if !containsLine(report.Lines, "captures []") {
		t.Errorf("report = %v, want a lambda line reporting an empty capture set", report.Lines)
	}
}

func TestGenerate_AbstractMethodHasNoBodyToWalk(t *testing.T) {
	src := `
abstract class Shape {
  abstract int area();
}
class Main {
  static void main() {}
}
`
	// Must not panic on a method with a nil Body.
	report := Generate(annotate(t, src))
	if report == nil {
		t.Fatal("Generate returned nil")
	}
}
