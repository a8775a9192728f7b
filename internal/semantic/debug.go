package semantic

import (
	"fmt"
	"strings"

	"github.com/hdahiru/decafc/internal/symtab"
)

// DumpScopeTree pretty-prints the scope tree rooted at global in the fixed
// indented form the driver's debug flag emits: one header line per scope
// naming its kind and owner, followed by its declared symbols, followed by
// its nested scopes at one further indent.
func DumpScopeTree(global *symtab.Scope) string {
	var b strings.Builder
	b.WriteString("GLOBAL SCOPE:\n")
	for _, sym := range global.OrderedSymbols() {
		writeSymbolLine(&b, 1, sym)
	}
	for _, child := range global.Children {
		dumpScope(&b, child, 1)
	}
	return b.String()
}

func dumpScope(b *strings.Builder, s *symtab.Scope, depth int) {
	writeIndent(b, depth)
	b.WriteString(scopeHeader(s))
	b.WriteString("\n")
	for _, sym := range s.OrderedSymbols() {
		writeSymbolLine(b, depth+1, sym)
	}
	for _, child := range s.Children {
		dumpScope(b, child, depth+1)
	}
}

func scopeHeader(s *symtab.Scope) string {
	switch s.Kind {
	case symtab.ScopeClass:
		cs := s.Owner.(*symtab.ClassSymbol)
		return fmt.Sprintf("CLASS SCOPE OF '%s':", cs.Name)
	case symtab.ScopeFormal:
		ms := s.Owner.(*symtab.MethodSymbol)
		return fmt.Sprintf("FORMAL SCOPE OF '%s':", ms.Name)
	case symtab.ScopeLambda:
		ls := s.Owner.(*symtab.LambdaSymbol)
		return fmt.Sprintf("LAMBDA SCOPE AT '%s':", ls.Pos)
	case symtab.ScopeLocal:
		return "LOCAL SCOPE:"
	default:
		return "SCOPE:"
	}
}

func writeSymbolLine(b *strings.Builder, depth int, sym symtab.Symbol) {
	writeIndent(b, depth)
	switch s := sym.(type) {
	case *symtab.VarSymbol:
		typeName := "<pending>"
		if s.Type != nil {
			typeName = s.Type.String()
		}
		fmt.Fprintf(b, "VARIABLE: %s %s\n", typeName, s.Name)
	case *symtab.MethodSymbol:
		fmt.Fprintf(b, "FUNCTION: %s %s\n", s.Type, s.Name)
	case *symtab.ClassSymbol:
		fmt.Fprintf(b, "CLASS: %s\n", s.Name)
	case *symtab.LambdaSymbol:
		fmt.Fprintf(b, "LAMBDA: %s\n", s.Name)
	}
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("    ")
	}
}
