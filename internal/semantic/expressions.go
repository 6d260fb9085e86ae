package semantic

import (
	"strings"

	"olang/internal/parser/ast"
	"olang/internal/semantic/types"
	"olang/internal/symtab"
)

// Expression typing and body checking.
//
// checkExpr types one expression; checkBody walks one statement list. Both
// stop at the first error. Name resolution order for a bare identifier is
// scope chain first (locals and parameters, innermost frame wins), then the
// field chain of the enclosing class (own fields before inherited).

// checkExpr determines the static type of an expression, resolving every
// name it contains and marking the resolved symbols used.
func (a *Analyzer) checkExpr(cls *symtab.ClassSymbol, scope *symtab.Scope, expr ast.Expr) (types.Type, error) {
	switch e := expr.(type) {
	case *ast.IntegerLit:
		return types.Integer, nil

	case *ast.RealLit:
		return types.Real, nil

	case *ast.BooleanLit:
		return types.Boolean, nil

	case *ast.ThisExpr:
		return cls.Type(), nil

	case *ast.Ident:
		if sym := scope.Lookup(e.Name); sym != nil {
			return sym.Type, nil
		}
		if sym := a.lookupField(cls, e.Name); sym != nil {
			return sym.Type, nil
		}
		return types.Type{}, errorAt(e, "identifier %s is not declared", e.Name)

	case *ast.MemberExpr:
		return a.checkFieldAccess(cls, scope, e)

	case *ast.CallExpr:
		return a.checkCall(cls, scope, e)

	default:
		return types.Type{}, errorAt(expr, "invalid expression")
	}
}

// checkFieldAccess types object.name outside call position: a field read.
func (a *Analyzer) checkFieldAccess(cls *symtab.ClassSymbol, scope *symtab.Scope, e *ast.MemberExpr) (types.Type, error) {
	objType, err := a.checkExpr(cls, scope, e.Object)
	if err != nil {
		return types.Type{}, err
	}

	if target := a.lookupClass(objType.Name()); target != nil {
		if sym := a.lookupField(target, e.Member.Name); sym != nil {
			return sym.Type, nil
		}
		return types.Type{}, errorAt(e.Member,
			"class %s has no field %s", objType, e.Member.Name)
	}

	// Built-in receivers are opaque; whatever they hold comes back
	// Unknown. Void never has members.
	if objType.IsVoid() {
		return types.Type{}, errorAt(e.Object, "expression has no value")
	}
	return types.Unknown, nil
}

// checkCall types a call expression. The callee decides the call form:
//
//   - name(args) where name is a type: a constructor call producing that
//     type.
//   - name(args) otherwise: a method call on the current class.
//   - object.name(args): a method call on the object's class.
func (a *Analyzer) checkCall(cls *symtab.ClassSymbol, scope *symtab.Scope, e *ast.CallExpr) (types.Type, error) {
	argTypes, err := a.checkArgs(cls, scope, e.Args)
	if err != nil {
		return types.Type{}, err
	}

	switch callee := e.Callee.(type) {
	case *ast.Ident:
		if a.isTypeName(callee.Name) {
			return a.checkConstructorCall(callee, argTypes, e)
		}
		sym, err := a.resolveMethod(cls, callee.Name, argTypes, callee)
		if err != nil {
			return types.Type{}, err
		}
		return sym.Return, nil

	case *ast.MemberExpr:
		objType, err := a.checkExpr(cls, scope, callee.Object)
		if err != nil {
			return types.Type{}, err
		}
		if target := a.lookupClass(objType.Name()); target != nil {
			sym, err := a.resolveMethod(target, callee.Member.Name, argTypes, callee.Member)
			if err != nil {
				return types.Type{}, err
			}
			return sym.Return, nil
		}
		if objType.IsVoid() {
			return types.Type{}, errorAt(callee.Object, "expression has no value")
		}
		// Built-in receiver: the call is accepted and its result is
		// statically Unknown. Integer.Plus, Array.Get and the rest live
		// in the runtime, not in the class registry.
		return types.Unknown, nil

	default:
		return types.Type{}, errorAt(e.Callee, "expression is not callable")
	}
}

// checkConstructorCall types name(args) where name denotes a type.
func (a *Analyzer) checkConstructorCall(callee *ast.Ident, argTypes []types.Type, e *ast.CallExpr) (types.Type, error) {
	if target := a.lookupClass(callee.Name); target != nil {
		if err := a.resolveConstructor(target, argTypes, e); err != nil {
			return types.Type{}, err
		}
		return target.Type(), nil
	}
	// Built-in constructors accept whatever the runtime defines; the
	// arguments were already typed above.
	return types.Named(callee.Name), nil
}

// checkArgs types an argument list. Every argument must produce a value.
func (a *Analyzer) checkArgs(cls *symtab.ClassSymbol, scope *symtab.Scope, args []ast.Expr) ([]types.Type, error) {
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		t, err := a.checkExpr(cls, scope, arg)
		if err != nil {
			return nil, err
		}
		if t.IsVoid() {
			return nil, errorAt(arg, "argument expression has no value")
		}
		argTypes[i] = t
	}
	return argTypes, nil
}

// resolveMethod picks the method overload for a call.
//
// CANDIDATE ORDER: the receiver class's own overloads in registration
// order, then each base class's, walking up the chain. The first candidate
// whose parameter count matches and whose parameter types are pairwise
// compatible with the argument types wins. There is no ambiguity check and
// no best-match ranking; order decides.
func (a *Analyzer) resolveMethod(cls *symtab.ClassSymbol, name string, argTypes []types.Type, node ast.Node) (*symtab.MethodSymbol, error) {
	var candidates []*symtab.MethodSymbol
	for c := cls; c != nil; c = a.classes[c.Base] {
		candidates = append(candidates, c.Overloads(name)...)
	}
	if len(candidates) == 0 {
		return nil, errorAt(node, "class %s has no method %s", cls.Name, name)
	}

	arityMatched := false
	for _, cand := range candidates {
		if len(cand.Params) != len(argTypes) {
			continue
		}
		arityMatched = true
		if paramsCompatible(cand.Params, argTypes) {
			return cand, nil
		}
	}

	if !arityMatched {
		if len(candidates) == 1 {
			return nil, errorAt(node, "method %s expects %d arguments, found %d",
				name, len(candidates[0].Params), len(argTypes))
		}
		return nil, errorAt(node, "no overload of method %s takes %d arguments",
			name, len(argTypes))
	}
	return nil, errorAt(node, "no overload of method %s matches argument types %s",
		name, formatArgTypes(argTypes))
}

// resolveConstructor picks the constructor for a constructor call. A class
// with no declared constructors still accepts the zero-argument call.
func (a *Analyzer) resolveConstructor(cls *symtab.ClassSymbol, argTypes []types.Type, node ast.Node) error {
	if len(cls.Constructors) == 0 {
		if len(argTypes) == 0 {
			return nil
		}
		return errorAt(node, "class %s has no constructor taking %d arguments",
			cls.Name, len(argTypes))
	}

	arityMatched := false
	for _, cand := range cls.Constructors {
		if len(cand.Params) != len(argTypes) {
			continue
		}
		arityMatched = true
		if paramsCompatible(cand.Params, argTypes) {
			return nil
		}
	}

	if !arityMatched {
		return errorAt(node, "class %s has no constructor taking %d arguments",
			cls.Name, len(argTypes))
	}
	return errorAt(node, "no constructor of class %s matches argument types %s",
		cls.Name, formatArgTypes(argTypes))
}

// paramsCompatible reports whether the argument types fit the parameter
// list pairwise. Lengths are the caller's concern.
func paramsCompatible(params []symtab.Param, argTypes []types.Type) bool {
	for i, p := range params {
		if !types.Compatible(p.Type, argTypes[i]) {
			return false
		}
	}
	return true
}

func formatArgTypes(argTypes []types.Type) string {
	names := make([]string, len(argTypes))
	for i, t := range argTypes {
		names[i] = t.Name()
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// checkBody checks one statement list in the given scope. depth counts
// enclosing loops.
//
// Statements after a return in the same list are unreachable; they are left
// unchecked here and removed by the dead-code pass afterwards.
func (a *Analyzer) checkBody(cls *symtab.ClassSymbol, scope *symtab.Scope, ctx MethodContext, depth int, body []ast.Stmt) error {
	for _, stmt := range body {
		if err := a.checkStmt(cls, scope, ctx, depth, stmt); err != nil {
			return err
		}
		if _, ok := stmt.(*ast.ReturnStmt); ok {
			break
		}
	}
	return nil
}

// checkStmt checks a single statement.
func (a *Analyzer) checkStmt(cls *symtab.ClassSymbol, scope *symtab.Scope, ctx MethodContext, depth int, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return a.checkLocal(cls, scope, s)

	case *ast.AssignStmt:
		return a.checkAssign(cls, scope, s)

	case *ast.WhileStmt:
		t, err := a.checkExpr(cls, scope, s.Cond)
		if err != nil {
			return err
		}
		if !types.Compatible(t, types.Boolean) {
			return errorAt(s.Cond, "loop condition must be Boolean, found %s", t)
		}
		return a.checkBody(cls, symtab.NewScope(scope), ctx, depth+1, s.Body)

	case *ast.IfStmt:
		t, err := a.checkExpr(cls, scope, s.Cond)
		if err != nil {
			return err
		}
		if !types.Compatible(t, types.Boolean) {
			return errorAt(s.Cond, "if condition must be Boolean, found %s", t)
		}
		if err := a.checkBody(cls, symtab.NewScope(scope), ctx, depth, s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return a.checkBody(cls, symtab.NewScope(scope), ctx, depth, s.Else)
		}
		return nil

	case *ast.ReturnStmt:
		return a.checkReturn(cls, scope, ctx, s)

	default:
		return errorAt(stmt, "invalid statement")
	}
}

// checkLocal types a local variable declaration and binds it in the
// current frame. Shadowing an outer frame's binding, a parameter, or a
// field is legal; only a duplicate within the same frame is not.
func (a *Analyzer) checkLocal(cls *symtab.ClassSymbol, scope *symtab.Scope, s *ast.VarDecl) error {
	name := s.Name.Name
	if existing := scope.LookupLocal(name); existing != nil {
		return errorAt(s.Name, "%s %s is already declared", existing.Kind, name)
	}

	t, err := a.checkExpr(cls, scope, s.Init)
	if err != nil {
		return err
	}
	if t.IsVoid() {
		return errorAt(s.Init, "initializer of %s has no value", name)
	}

	sym := &symtab.VariableSymbol{
		Name: name,
		Type: t,
		Kind: symtab.Local,
		Pos:  s.Name.Pos(),
	}
	if err := scope.Define(sym); err != nil {
		return errorAt(s.Name, "%s", err)
	}
	a.decls[s] = sym
	return nil
}

// checkAssign checks target := value. The target must be a variable or a
// field access, and the value's type must be compatible with the target's.
func (a *Analyzer) checkAssign(cls *symtab.ClassSymbol, scope *symtab.Scope, s *ast.AssignStmt) error {
	switch s.Target.(type) {
	case *ast.Ident, *ast.MemberExpr:
	default:
		return errorAt(s.Target, "cannot assign to this expression")
	}

	targetType, err := a.checkExpr(cls, scope, s.Target)
	if err != nil {
		return err
	}

	valueType, err := a.checkExpr(cls, scope, s.Value)
	if err != nil {
		return err
	}
	if valueType.IsVoid() {
		return errorAt(s.Value, "expression has no value")
	}

	if !types.Compatible(valueType, targetType) {
		return errorAt(s.Value, "cannot assign %s to %s", valueType, targetType)
	}
	return nil
}

// checkReturn checks a return statement against the enclosing context.
func (a *Analyzer) checkReturn(cls *symtab.ClassSymbol, scope *symtab.Scope, ctx MethodContext, s *ast.ReturnStmt) error {
	if !ctx.AllowReturn {
		return errorAt(s, "return is not allowed here")
	}

	if s.Value == nil {
		if !ctx.Return.IsVoid() {
			return errorAt(s, "return must carry a value of type %s", ctx.Return)
		}
		return nil
	}

	t, err := a.checkExpr(cls, scope, s.Value)
	if err != nil {
		return err
	}
	if ctx.Return.IsVoid() {
		return errorAt(s.Value, "method declares no return type but returns a value")
	}
	if t.IsVoid() {
		return errorAt(s.Value, "expression has no value")
	}
	if !types.Compatible(t, ctx.Return) {
		return errorAt(s.Value, "cannot return %s from a method returning %s",
			t, ctx.Return)
	}
	return nil
}
