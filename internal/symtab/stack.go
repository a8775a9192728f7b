package symtab

import "github.com/hdahiru/decafc/internal/lexer"

// Stack is the single scope stack shared by the Namer and the Typer.
// Both passes push and pop frames as they descend the AST; class-name
// resolution goes through the attached ClassTable instead of the frame
// chain, since class names are not lexically scoped.
type Stack struct {
	Global  *Scope
	Classes *ClassTable

	current *Scope
	history []*Scope
}

// NewStack creates a stack rooted at a fresh global scope.
func NewStack() *Stack {
	global := NewScope(ScopeGlobal, nil)
	return &Stack{Global: global, Classes: NewClassTable(), current: global}
}

// Top returns the innermost currently open scope.
func (s *Stack) Top() *Scope { return s.current }

// Open pushes sc as the new innermost scope.
func (s *Stack) Open(sc *Scope) *Scope {
	s.history = append(s.history, s.current)
	s.current = sc
	return sc
}

// Close pops the innermost scope, restoring the previous one, and returns
// the scope that was popped.
func (s *Stack) Close() *Scope {
	popped := s.current
	n := len(s.history)
	s.current = s.history[n-1]
	s.history = s.history[:n-1]
	return popped
}

// Declare binds sym in the current scope. It returns false if the name is
// already bound there.
func (s *Stack) Declare(sym Symbol) bool { return s.current.Declare(sym) }

// FindConflict searches outward from the current scope for an existing
// symbol named name, stopping only when the chain is exhausted — callers
// classify the result themselves (same-scope redeclaration vs. a member
// variable being shadowed by a local, vs. no conflict at all).
func (s *Stack) FindConflict(name string) Symbol {
	for sc := s.current; sc != nil; sc = sc.Parent {
		if sym, ok := sc.Get(name); ok {
			return sym
		}
	}
	return nil
}

// Lookup searches the current scope and its ancestors for name.
func (s *Stack) Lookup(name string) Symbol {
	for sc := s.current; sc != nil; sc = sc.Parent {
		if sym, ok := sc.Get(name); ok {
			return sym
		}
	}
	return nil
}

// LookupBefore is Lookup, except that in the innermost ScopeLocal frame
// encountered while ascending, a symbol declared at or after pos is
// skipped, so a reference never resolves to a local declared later in the
// same block. The Typer passes the reference's own position; in
// `var x = x + 1` the declared name comes before the right-hand `x`, so the
// Typer's varStack, not this check, rejects that reference.
func (s *Stack) LookupBefore(name string, pos lexer.Position) Symbol {
	sawLocal := false
	for sc := s.current; sc != nil; sc = sc.Parent {
		if sym, ok := sc.Get(name); ok {
			if sc.Kind == ScopeLocal && !sawLocal {
				if !sym.SymbolPos().Before(pos) {
					continue
				}
			}
			return sym
		}
		if sc.Kind == ScopeLocal {
			sawLocal = true
		}
	}
	return nil
}

// LookupClass resolves a class name through the attached ClassTable.
func (s *Stack) LookupClass(name string) (*ClassSymbol, bool) {
	return s.Classes.Lookup(name)
}

// CurrentClass returns the ClassSymbol of the nearest enclosing class scope.
func (s *Stack) CurrentClass() *ClassSymbol {
	for sc := s.current; sc != nil; sc = sc.Parent {
		if sc.Kind == ScopeClass {
			return sc.Owner.(*ClassSymbol)
		}
	}
	return nil
}

// CurrentMethod returns the MethodSymbol of the nearest enclosing formal
// scope, or nil outside any method.
func (s *Stack) CurrentMethod() *MethodSymbol {
	for sc := s.current; sc != nil; sc = sc.Parent {
		if sc.Kind == ScopeFormal {
			return sc.Owner.(*MethodSymbol)
		}
		if sc.Kind == ScopeClass {
			return nil
		}
	}
	return nil
}

// FormalOrLambdaScope returns the nearest enclosing function-like frame
// (a method's formal scope or a lambda's parameter scope).
func (s *Stack) FormalOrLambdaScope() *Scope {
	for sc := s.current; sc != nil; sc = sc.Parent {
		if sc.Kind == ScopeFormal || sc.Kind == ScopeLambda {
			return sc
		}
	}
	return nil
}
