package semantic

import (
	"github.com/hdahiru/decafc/internal/ast"
	"github.com/hdahiru/decafc/internal/lexer"
	"github.com/hdahiru/decafc/internal/symtab"
	"github.com/hdahiru/decafc/internal/types"
)

// Namer is the first of the two analysis passes: it builds the scope tree,
// resolves class inheritance, detects cycles, resolves method overrides,
// and enforces the rule that a concrete class implements every abstract
// method it inherits. It also pre-creates local and lambda scopes (without
// types) so the Typer can open them by AST-node identity on its own walk.
type Namer struct {
	Stack *symtab.Stack
	sink  *Sink

	defs map[string]*ast.ClassDef
}

// NewNamer creates a Namer reporting into sink.
func NewNamer(sink *Sink) *Namer {
	return &Namer{Stack: symtab.NewStack(), sink: sink, defs: make(map[string]*ast.ClassDef)}
}

// Resolve runs the full name-resolution pass over top. It returns false if
// a fatal structural error (an inheritance cycle) makes the Typer pass
// unsafe to run.
func (n *Namer) Resolve(top *ast.TopLevel) bool {
	n.collectClassDefs(top)
	n.resolveSupers()
	if n.checkCycles() {
		return false
	}
	n.buildClassScopes()
	n.resolveMembers()
	n.locateMain()
	return true
}

func (n *Namer) collectClassDefs(top *ast.TopLevel) {
	for _, cd := range top.Classes {
		if existing, ok := n.defs[cd.Name]; ok {
			n.sink.Addf(cd.NamePos, DeclConflict, "class '%s' already declared at %s", cd.Name, existing.NamePos)
			continue
		}
		n.defs[cd.Name] = cd
		sym := &symtab.ClassSymbol{Name: cd.Name, Pos: cd.NamePos, Abstract: cd.Abstract, NotOverride: map[string]bool{}}
		n.Stack.Classes.Declare(sym)
		cd.Symbol = sym
	}
}

func (n *Namer) resolveSupers() {
	for _, cd := range n.defs {
		if cd.SuperName == "" {
			continue
		}
		super, ok := n.Stack.Classes.Lookup(cd.SuperName)
		if !ok {
			n.sink.Addf(cd.SuperPos, ClassNotFound, "class '%s' not found", cd.SuperName)
			continue
		}
		cd.Symbol.Base = super
	}
}

// checkCycles runs a timestamp-based DFS over the super-class graph. Every
// node visited in the current walk is stamped with the walk's generation;
// meeting a node already stamped with that same generation means its
// ancestor chain loops back on itself. Reports at most one BadInheritance.
func (n *Namer) checkCycles() bool {
	generation := map[string]int{}
	gen := 0
	found := false
	for _, cd := range n.defs {
		if _, seen := generation[cd.Name]; seen {
			continue
		}
		gen++
		cur := cd
		for cur != nil {
			if g, ok := generation[cur.Name]; ok {
				if g == gen {
					if !found {
						n.sink.Addf(cur.NamePos, BadInheritance, "illegal class inheritance (class '%s' involved in an inheritance cycle)", cur.Name)
						found = true
					}
					break
				}
				break // reached a node from an earlier, already-resolved walk
			}
			generation[cur.Name] = gen
			if cur.Symbol.Base == nil {
				break
			}
			next, ok := n.defs[cur.SuperName]
			if !ok {
				break
			}
			cur = next
		}
	}
	return found
}

// buildClassScopes creates each class's member scope and Class type in
// supers-first (topological) order, so a subclass's scope can chain its
// Parent straight to its superclass's already-built scope.
func (n *Namer) buildClassScopes() {
	built := map[string]bool{}
	var build func(cd *ast.ClassDef)
	build = func(cd *ast.ClassDef) {
		if built[cd.Name] {
			return
		}
		var superScope *symtab.Scope
		var superType *types.Class
		if cd.Symbol.Base != nil {
			superDef := n.defs[cd.SuperName]
			build(superDef)
			superScope = superDef.Symbol.Scope
			superType = superDef.Symbol.Type
		}
		scope := symtab.NewScope(symtab.ScopeClass, superScope)
		scope.Owner = cd.Symbol
		cd.Symbol.Scope = scope
		cd.Symbol.Type = types.NewClass(cd.Name, superType)
		n.Stack.Global.AddChild(scope)
		built[cd.Name] = true
	}
	for _, cd := range n.defs {
		build(cd)
	}
}

func (n *Namer) resolveMembers() {
	resolved := map[string]bool{}
	var resolve func(cd *ast.ClassDef)
	resolve = func(cd *ast.ClassDef) {
		if resolved[cd.Name] {
			return
		}
		if cd.Symbol.Base != nil {
			resolve(n.defs[cd.SuperName])
			for name := range cd.Symbol.Base.NotOverride {
				cd.Symbol.NotOverride[name] = true
			}
		}
		n.Stack.Open(cd.Symbol.Scope)
		for _, m := range cd.Members {
			switch member := m.(type) {
			case *ast.FieldDef:
				n.resolveField(cd, member)
			case *ast.MethodDef:
				n.resolveMethod(cd, member)
			}
		}
		n.Stack.Close()
		if !cd.Abstract && len(cd.Symbol.NotOverride) > 0 {
			n.sink.Addf(cd.NamePos, NoAbstract, "'%s' is not abstract and does not override all abstract methods", cd.Name)
		}
		resolved[cd.Name] = true
	}
	for _, cd := range n.defs {
		resolve(cd)
	}
}

func (n *Namer) resolveField(cd *ast.ClassDef, f *ast.FieldDef) {
	ft := resolveType(f.Type, n.Stack.Classes, n.sink)
	if ft == types.Void {
		n.sink.Addf(f.Pos(), BadFieldType, "field '%s' must not have type void", f.Name)
		ft = types.Error
	}
	if _, sameScope := cd.Symbol.Scope.Get(f.Name); sameScope {
		n.sink.Addf(f.NamePos, DeclConflict, "field '%s' already declared in class '%s'", f.Name, cd.Name)
		return
	}
	if ancestor := n.Stack.FindConflict(f.Name); ancestor != nil {
		if _, isVar := ancestor.(*symtab.VarSymbol); isVar {
			n.sink.Addf(f.NamePos, OverridingVar, "field '%s' shadows a member variable declared in an ancestor class", f.Name)
			return
		}
		n.sink.Addf(f.NamePos, DeclConflict, "field '%s' conflicts with an inherited member", f.Name)
		return
	}
	sym := &symtab.VarSymbol{Name: f.Name, Pos: f.NamePos, Type: ft, Owner: cd.Symbol.Scope}
	cd.Symbol.Scope.Declare(sym)
}

func (n *Namer) resolveMethod(cd *ast.ClassDef, m *ast.MethodDef) {
	if _, sameScope := cd.Symbol.Scope.Get(m.Name); sameScope {
		n.sink.Addf(m.NamePos, DeclConflict, "method '%s' already declared in class '%s'", m.Name, cd.Name)
		return
	}

	formalScope := symtab.NewScope(symtab.ScopeFormal, cd.Symbol.Scope)
	cd.Symbol.Scope.AddChild(formalScope)
	retType := resolveType(m.ReturnType, n.Stack.Classes, n.sink)
	argTypes := make([]types.Type, len(m.Params))
	n.Stack.Open(formalScope)
	for i, p := range m.Params {
		pt := resolveType(p.Type, n.Stack.Classes, n.sink)
		argTypes[i] = pt
		psym := &symtab.VarSymbol{Name: p.Name, Pos: p.NamePos, Type: pt, Owner: formalScope}
		if !n.Stack.Declare(psym) {
			n.sink.Addf(p.NamePos, DeclConflict, "parameter '%s' already declared", p.Name)
		} else {
			p.Symbol = psym
		}
	}
	n.Stack.Close()

	fnType := types.NewFunction(retType, argTypes)
	sym := &symtab.MethodSymbol{Name: m.Name, Pos: m.NamePos, Type: fnType, Owner: cd.Symbol, Static: m.Static, Abstract: m.Abstract, FormalScope: formalScope}
	formalScope.Owner = sym
	m.Symbol = sym

	if ancestor := n.Stack.FindConflict(m.Name); ancestor != nil {
		oldMethod, ok := ancestor.(*symtab.MethodSymbol)
		if ok && !oldMethod.Static && !m.Static {
			if !types.Subtype(fnType, oldMethod.Type) {
				n.sink.Addf(m.NamePos, BadOverride, "'%s' overrides ancestor method with a different signature", m.Name)
			} else if m.Abstract && !oldMethod.Abstract {
				n.sink.Addf(m.NamePos, DeclConflict, "abstract method '%s' cannot override a concrete method", m.Name)
			} else if !m.Abstract {
				delete(cd.Symbol.NotOverride, m.Name)
			} else {
				cd.Symbol.NotOverride[m.Name] = true
			}
		} else {
			n.sink.Addf(m.NamePos, DeclConflict, "method '%s' conflicts with an inherited member", m.Name)
		}
	} else if m.Abstract {
		cd.Symbol.NotOverride[m.Name] = true
	}

	cd.Symbol.Scope.Declare(sym)
	if !m.Abstract {
		n.declareMethodBody(m, formalScope)
	}
}

func (n *Namer) locateMain() {
	main, ok := n.Stack.Classes.Lookup("Main")
	if ok && !main.Abstract {
		if sym, ok := main.Scope.Get("main"); ok {
			if ms, ok := sym.(*symtab.MethodSymbol); ok && ms.Static {
				if ms.Type.Ret == types.Void && len(ms.Type.Args) == 0 {
					main.IsMain = true
					return
				}
			}
		}
	}
	var pos lexer.Position
	if ok {
		pos = main.Pos
	}
	n.sink.Addf(pos, NoMainClass, "no legal Main class named 'Main' was found")
}
