package symtab

import (
	"strings"

	"olang/internal/parser/ast"
	"olang/internal/semantic/types"
)

// ClassSymbol is the analyzer's record of one declared class: its own
// fields, its method overload sets, and its constructors.
//
// Base is a name, not a pointer: inherited lookups re-resolve it through
// the class registry every time. That keeps the symbol independent of
// registry rebuilds and lets the fixed-point inheritance ordering work on
// names alone.
//
// A ClassSymbol is created during registration, filled in during member
// registration and analysis, and read-only afterwards — except that the
// optimizer removes never-used entries from Fields.
type ClassSymbol struct {
	// Name is the class name, unique across the program.
	Name string

	// Base is the declared base class name, "" when the class has none.
	Base string

	// Fields maps field names to their symbols. Only the class's own
	// fields appear here; inherited fields are found by walking Base.
	Fields map[string]*VariableSymbol

	// Methods maps method names to their overload lists. Overloads keep
	// registration order; overload resolution depends on it.
	Methods map[string][]*MethodSymbol

	// Constructors lists the declared constructors in registration order.
	Constructors []*ConstructorSymbol

	// Decl is the declaration this symbol was built from, kept for
	// diagnostics and for the optimizer's member pruning.
	Decl *ast.ClassDecl
}

// NewClassSymbol creates the symbol for a class declaration.
func NewClassSymbol(decl *ast.ClassDecl) *ClassSymbol {
	base := ""
	if decl.Base != nil {
		base = decl.Base.Name
	}
	return &ClassSymbol{
		Name:    decl.Name.Name,
		Base:    base,
		Fields:  make(map[string]*VariableSymbol),
		Methods: make(map[string][]*MethodSymbol),
		Decl:    decl,
	}
}

// Type returns the type descriptor this class defines.
func (c *ClassSymbol) Type() types.Type {
	return types.Named(c.Name)
}

// LookupField resolves a field declared by this class itself. Inherited
// fields are the caller's concern (walk the base chain).
func (c *ClassSymbol) LookupField(name string) *VariableSymbol {
	return c.Fields[name]
}

// Overloads returns the overload list registered under name, in
// registration order. Nil if the class declares no method with that name.
func (c *ClassSymbol) Overloads(name string) []*MethodSymbol {
	return c.Methods[name]
}

// AddMethod appends a new overload to the method's overload list.
func (c *ClassSymbol) AddMethod(m *MethodSymbol) {
	c.Methods[m.Name] = append(c.Methods[m.Name], m)
}

// FindMethod returns the overload of name with exactly the given parameter
// types, or nil. Overload identity is the ordered parameter-type tuple.
func (c *ClassSymbol) FindMethod(name string, params []types.Type) *MethodSymbol {
	for _, m := range c.Methods[name] {
		if sameSignature(m.Params, params) {
			return m
		}
	}
	return nil
}

// FindConstructor returns the constructor with exactly the given parameter
// types, or nil.
func (c *ClassSymbol) FindConstructor(params []types.Type) *ConstructorSymbol {
	for _, ctor := range c.Constructors {
		if sameSignature(ctor.Params, params) {
			return ctor
		}
	}
	return nil
}

// Param is one entry of a method or constructor parameter list.
type Param struct {
	Name string
	Type types.Type
}

// MethodSymbol is one method overload: a name plus an ordered parameter
// list and return type, with back-references into the AST.
//
// A method may be declared once as a forward declaration (Decl only) and
// implemented at most once (Impl set); declaration and implementation must
// agree exactly on parameter types and return type.
type MethodSymbol struct {
	Name   string
	Params []Param

	// Return is the declared return type, types.Void when none.
	Return types.Type

	// Decl is the first-seen header for this signature.
	Decl *ast.MethodDecl

	// Impl is the header that carries the body, nil while the method is
	// only forward-declared.
	Impl *ast.MethodDecl
}

// Signature renders the parameter-type tuple, e.g. "(Integer, Boolean)".
func (m *MethodSymbol) Signature() string {
	return formatSignature(m.Params)
}

// ConstructorSymbol is one declared constructor. Identity is the ordered
// parameter-type tuple; duplicates are rejected at registration.
type ConstructorSymbol struct {
	Params []Param
	Decl   *ast.ConstructorDecl
}

// Signature renders the parameter-type tuple.
func (c *ConstructorSymbol) Signature() string {
	return formatSignature(c.Params)
}

// sameSignature reports whether a parameter list has exactly the given
// ordered parameter types. This is identity, not compatibility: Unknown
// does not wildcard here.
func sameSignature(params []Param, argTypes []types.Type) bool {
	if len(params) != len(argTypes) {
		return false
	}
	for i, p := range params {
		if !p.Type.Equal(argTypes[i]) {
			return false
		}
	}
	return true
}

func formatSignature(params []Param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Type.Name()
	}
	return "(" + strings.Join(names, ", ") + ")"
}
