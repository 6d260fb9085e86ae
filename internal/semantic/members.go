package semantic

import (
	"olang/internal/parser/ast"
	"olang/internal/semantic/types"
	"olang/internal/symtab"
)

// Member registration and per-class checking.
//
// Registration computes every method and constructor signature on a class
// before any body is analyzed, so bodies may freely call methods declared
// later in the class. Fields are not registered here: a field's type comes
// from its initializer expression, so fields are created during the
// checking phase, in declaration order.

// registerMembers registers method and constructor signatures for a class.
func (a *Analyzer) registerMembers(cls *symtab.ClassSymbol) error {
	for _, member := range cls.Decl.Members {
		switch m := member.(type) {
		case *ast.MethodDecl:
			if err := a.registerMethod(cls, m); err != nil {
				return err
			}
		case *ast.ConstructorDecl:
			if err := a.registerConstructor(cls, m); err != nil {
				return err
			}
		case *ast.VarDecl:
			// Fields are handled by checkClass.
		}
	}
	return nil
}

// registerMethod registers one method header. A header whose signature
// matches an already-registered overload merges into it: that is how a
// forward declaration pairs up with its implementation. The pairing rules
// are strict — one declaration, at most one implementation, identical
// parameter types and return type.
func (a *Analyzer) registerMethod(cls *symtab.ClassSymbol, m *ast.MethodDecl) error {
	params, err := a.resolveParams(m.Params)
	if err != nil {
		return err
	}

	ret := types.Void
	if m.Return != nil {
		ret, err = a.resolveTypeName(m.Return.Name, m.Return)
		if err != nil {
			return err
		}
	}

	paramTypes := make([]types.Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type
	}

	existing := cls.FindMethod(m.Name.Name, paramTypes)
	if existing == nil {
		sym := &symtab.MethodSymbol{
			Name:   m.Name.Name,
			Params: params,
			Return: ret,
			Decl:   m,
		}
		if m.HasBody() {
			sym.Impl = m
		}
		cls.AddMethod(sym)
		a.methods[m] = sym
		return nil
	}

	// Same parameter-type tuple: this header must be the implementation
	// of a forward declaration, and the return types must agree exactly.
	if !existing.Return.Equal(ret) {
		return errorAt(m.Name, "method %s%s redeclared with return type %s, was %s",
			existing.Name, existing.Signature(), ret, existing.Return)
	}
	if !m.HasBody() {
		return errorAt(m.Name, "method %s%s is already declared in class %s",
			existing.Name, existing.Signature(), cls.Name)
	}
	if existing.Impl != nil {
		return errorAt(m.Name, "method %s%s is already implemented in class %s",
			existing.Name, existing.Signature(), cls.Name)
	}

	existing.Impl = m
	a.methods[m] = existing
	return nil
}

// registerConstructor registers one constructor. Constructors have no
// forward-declaration form, so a duplicate signature is an error outright.
func (a *Analyzer) registerConstructor(cls *symtab.ClassSymbol, m *ast.ConstructorDecl) error {
	params, err := a.resolveParams(m.Params)
	if err != nil {
		return err
	}

	paramTypes := make([]types.Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type
	}

	if existing := cls.FindConstructor(paramTypes); existing != nil {
		return errorAt(m, "class %s already declares a constructor %s",
			cls.Name, existing.Signature())
	}

	cls.Constructors = append(cls.Constructors, &symtab.ConstructorSymbol{
		Params: params,
		Decl:   m,
	})
	return nil
}

// resolveParams resolves a parameter list's type names.
func (a *Analyzer) resolveParams(params []*ast.Param) ([]symtab.Param, error) {
	resolved := make([]symtab.Param, len(params))
	for i, p := range params {
		t, err := a.resolveTypeName(p.Type.Name, p.Type)
		if err != nil {
			return nil, err
		}
		resolved[i] = symtab.Param{Name: p.Name.Name, Type: t}
	}
	return resolved, nil
}

// checkClass analyzes a class's member bodies, in declaration order.
// Field symbols are created as their declarations are encountered, so a
// field initializer can see the fields declared before it (and everything
// inherited), but not the ones after.
func (a *Analyzer) checkClass(cls *symtab.ClassSymbol) error {
	for _, member := range cls.Decl.Members {
		switch m := member.(type) {
		case *ast.VarDecl:
			if err := a.checkField(cls, m); err != nil {
				return err
			}
		case *ast.MethodDecl:
			if m.HasBody() {
				if err := a.checkMethod(cls, m); err != nil {
					return err
				}
			}
		case *ast.ConstructorDecl:
			if err := a.checkConstructor(cls, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkField types a field declaration and creates its symbol.
//
// The initializer runs in an empty scope with return forbidden: fields can
// reference other fields, but there are no locals or parameters to see.
// The initializer is fully checked even if the field is later discarded as
// unused.
func (a *Analyzer) checkField(cls *symtab.ClassSymbol, m *ast.VarDecl) error {
	name := m.Name.Name
	if cls.LookupField(name) != nil {
		return errorAt(m.Name, "field %s is already declared in class %s", name, cls.Name)
	}

	scope := symtab.NewScope(nil)
	t, err := a.checkExpr(cls, scope, m.Init)
	if err != nil {
		return err
	}
	if t.IsVoid() {
		return errorAt(m.Init, "initializer of %s has no value", name)
	}

	sym := &symtab.VariableSymbol{
		Name: name,
		Type: t,
		Kind: symtab.Field,
		Pos:  m.Name.Pos(),
	}
	cls.Fields[name] = sym
	a.decls[m] = sym
	return nil
}

// checkMethod analyzes a method implementation against the signature
// registered for it.
func (a *Analyzer) checkMethod(cls *symtab.ClassSymbol, m *ast.MethodDecl) error {
	sym := a.methods[m]

	scope := symtab.NewScope(nil)
	if err := a.defineParams(scope, sym.Params, m.Params); err != nil {
		return err
	}

	ctx := MethodContext{Return: sym.Return, AllowReturn: true}

	// Expression-bodied form: the expression is the returned value.
	if m.Expr != nil {
		t, err := a.checkExpr(cls, scope, m.Expr)
		if err != nil {
			return err
		}
		if ctx.Return.IsVoid() {
			return errorAt(m.Expr,
				"method %s declares no return type but its body returns a value", sym.Name)
		}
		if !types.Compatible(t, ctx.Return) {
			return errorAt(m.Expr, "cannot return %s from method %s returning %s",
				t, sym.Name, ctx.Return)
		}
		return nil
	}

	return a.checkBody(cls, scope, ctx, 0, m.Body)
}

// checkConstructor analyzes a constructor body. Return is not permitted
// inside constructors.
func (a *Analyzer) checkConstructor(cls *symtab.ClassSymbol, m *ast.ConstructorDecl) error {
	params, err := a.resolveParams(m.Params)
	if err != nil {
		return err
	}

	scope := symtab.NewScope(nil)
	if err := a.defineParams(scope, params, m.Params); err != nil {
		return err
	}

	ctx := MethodContext{Return: types.Void, AllowReturn: false}
	return a.checkBody(cls, scope, ctx, 0, m.Body)
}

// defineParams binds parameter symbols in a body's root frame.
func (a *Analyzer) defineParams(scope *symtab.Scope, params []symtab.Param, decls []*ast.Param) error {
	for i, p := range params {
		sym := &symtab.VariableSymbol{
			Name: p.Name,
			Type: p.Type,
			Kind: symtab.Parameter,
			Pos:  decls[i].Name.Pos(),
		}
		if err := scope.Define(sym); err != nil {
			return errorAt(decls[i].Name, "parameter %s is already declared", p.Name)
		}
	}
	return nil
}
