package symtab

import (
	"testing"

	"olang/internal/lexer"
	"olang/internal/parser/ast"
	"olang/internal/semantic/types"
)

// Test VariableSymbol

func TestVariableSymbol_String(t *testing.T) {
	symbol := &VariableSymbol{
		Name: "width",
		Type: types.Integer,
		Kind: Field,
		Pos:  lexer.Position{Filename: "test.o", Line: 2, Column: 9},
	}

	expected := "field width: Integer"
	if got := symbol.String(); got != expected {
		t.Errorf("VariableSymbol.String() = %q, want %q", got, expected)
	}
}

func TestVariableSymbol_MarkUsed(t *testing.T) {
	symbol := &VariableSymbol{Name: "x", Type: types.Integer, Kind: Local}

	if symbol.Used {
		t.Error("expected a fresh symbol to be unused")
	}
	symbol.MarkUsed()
	if !symbol.Used {
		t.Error("expected MarkUsed to set the flag")
	}
}

func TestVarKind_String(t *testing.T) {
	tests := []struct {
		kind     VarKind
		expected string
	}{
		{Field, "field"},
		{Local, "local"},
		{Parameter, "parameter"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("VarKind.String() = %q, want %q", got, tt.expected)
		}
	}
}

// Test Scope

func TestScope_DefineAndLookup(t *testing.T) {
	scope := NewScope(nil)
	symbol := &VariableSymbol{Name: "x", Type: types.Integer, Kind: Local}

	if err := scope.Define(symbol); err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	found := scope.Lookup("x")
	if found != symbol {
		t.Fatal("Lookup did not return the defined symbol")
	}
	if !found.Used {
		t.Error("expected Lookup to mark the symbol used")
	}

	if scope.Lookup("y") != nil {
		t.Error("expected Lookup of an unknown name to return nil")
	}
}

func TestScope_DuplicateDefine(t *testing.T) {
	scope := NewScope(nil)

	if err := scope.Define(&VariableSymbol{Name: "x", Kind: Local}); err != nil {
		t.Fatalf("first Define failed: %v", err)
	}
	if err := scope.Define(&VariableSymbol{Name: "x", Kind: Local}); err == nil {
		t.Error("expected duplicate Define in the same frame to fail")
	}
}

func TestScope_Shadowing(t *testing.T) {
	outer := NewScope(nil)
	inner := NewScope(outer)

	outerSym := &VariableSymbol{Name: "x", Type: types.Integer, Kind: Parameter}
	innerSym := &VariableSymbol{Name: "x", Type: types.Boolean, Kind: Local}

	if err := outer.Define(outerSym); err != nil {
		t.Fatalf("outer Define failed: %v", err)
	}
	// Shadowing an outer frame's binding is not a conflict.
	if err := inner.Define(innerSym); err != nil {
		t.Fatalf("inner Define failed: %v", err)
	}

	if got := inner.Lookup("x"); got != innerSym {
		t.Error("expected the inner binding to shadow the outer one")
	}
	if got := outer.Lookup("x"); got != outerSym {
		t.Error("expected the outer frame to still see its own binding")
	}
}

func TestScope_LookupWalksToParent(t *testing.T) {
	outer := NewScope(nil)
	inner := NewScope(outer)

	symbol := &VariableSymbol{Name: "n", Type: types.Integer, Kind: Parameter}
	if err := outer.Define(symbol); err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	if got := inner.Lookup("n"); got != symbol {
		t.Error("expected Lookup to find the binding in the enclosing frame")
	}
	if inner.LookupLocal("n") != nil {
		t.Error("expected LookupLocal to stay within the current frame")
	}
}

func TestScope_LookupLocalDoesNotMarkUsed(t *testing.T) {
	scope := NewScope(nil)
	symbol := &VariableSymbol{Name: "x", Kind: Local}
	if err := scope.Define(symbol); err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	scope.LookupLocal("x")
	if symbol.Used {
		t.Error("expected LookupLocal to leave the used flag alone")
	}
}

// Test ClassSymbol

func classDecl(name, base string) *ast.ClassDecl {
	decl := &ast.ClassDecl{Name: &ast.Ident{Name: name}}
	if base != "" {
		decl.Base = &ast.Ident{Name: base}
	}
	return decl
}

func TestNewClassSymbol(t *testing.T) {
	sym := NewClassSymbol(classDecl("Circle", "Shape"))

	if sym.Name != "Circle" {
		t.Errorf("Name = %q, want %q", sym.Name, "Circle")
	}
	if sym.Base != "Shape" {
		t.Errorf("Base = %q, want %q", sym.Base, "Shape")
	}
	if sym.Type().Name() != "Circle" {
		t.Errorf("Type() = %v, want Circle", sym.Type())
	}

	root := NewClassSymbol(classDecl("Shape", ""))
	if root.Base != "" {
		t.Errorf("expected no base, got %q", root.Base)
	}
}

func TestClassSymbol_FindMethod(t *testing.T) {
	sym := NewClassSymbol(classDecl("Calc", ""))

	intOverload := &MethodSymbol{
		Name:   "Add",
		Params: []Param{{Name: "x", Type: types.Integer}},
		Return: types.Integer,
	}
	realOverload := &MethodSymbol{
		Name:   "Add",
		Params: []Param{{Name: "x", Type: types.Real}},
		Return: types.Real,
	}
	sym.AddMethod(intOverload)
	sym.AddMethod(realOverload)

	if got := sym.FindMethod("Add", []types.Type{types.Integer}); got != intOverload {
		t.Error("expected the Integer overload")
	}
	if got := sym.FindMethod("Add", []types.Type{types.Real}); got != realOverload {
		t.Error("expected the Real overload")
	}
	if sym.FindMethod("Add", []types.Type{types.Boolean}) != nil {
		t.Error("expected no overload for Boolean")
	}
	if sym.FindMethod("Sub", []types.Type{types.Integer}) != nil {
		t.Error("expected no overload for an unknown name")
	}

	// Signature identity is exact: Unknown does not wildcard here.
	if sym.FindMethod("Add", []types.Type{types.Unknown}) != nil {
		t.Error("expected Unknown not to match a declared signature")
	}
}

func TestClassSymbol_Overloads(t *testing.T) {
	sym := NewClassSymbol(classDecl("Calc", ""))

	first := &MethodSymbol{Name: "Add", Params: []Param{{Name: "x", Type: types.Integer}}}
	second := &MethodSymbol{Name: "Add", Params: []Param{{Name: "x", Type: types.Real}}}
	sym.AddMethod(first)
	sym.AddMethod(second)

	overloads := sym.Overloads("Add")
	if len(overloads) != 2 || overloads[0] != first || overloads[1] != second {
		t.Error("expected overloads in registration order")
	}
	if sym.Overloads("Sub") != nil {
		t.Error("expected nil for an unknown method name")
	}
}

func TestClassSymbol_FindConstructor(t *testing.T) {
	sym := NewClassSymbol(classDecl("Rect", ""))

	ctor := &ConstructorSymbol{
		Params: []Param{{Name: "w", Type: types.Integer}, {Name: "h", Type: types.Integer}},
	}
	sym.Constructors = append(sym.Constructors, ctor)

	if got := sym.FindConstructor([]types.Type{types.Integer, types.Integer}); got != ctor {
		t.Error("expected the declared constructor")
	}
	if sym.FindConstructor([]types.Type{types.Integer}) != nil {
		t.Error("expected no match for a different arity")
	}
	if sym.FindConstructor(nil) != nil {
		t.Error("expected no match for zero arguments")
	}
}

func TestMethodSymbol_Signature(t *testing.T) {
	m := &MethodSymbol{
		Name: "Resize",
		Params: []Param{
			{Name: "w", Type: types.Integer},
			{Name: "keep", Type: types.Boolean},
		},
	}

	expected := "(Integer, Boolean)"
	if got := m.Signature(); got != expected {
		t.Errorf("Signature() = %q, want %q", got, expected)
	}

	empty := &MethodSymbol{Name: "Reset"}
	if got := empty.Signature(); got != "()" {
		t.Errorf("Signature() = %q, want %q", got, "()")
	}
}

func TestClassSymbol_LookupField(t *testing.T) {
	sym := NewClassSymbol(classDecl("Rect", ""))
	field := &VariableSymbol{Name: "width", Type: types.Integer, Kind: Field}
	sym.Fields["width"] = field

	if got := sym.LookupField("width"); got != field {
		t.Error("expected the declared field")
	}
	if sym.LookupField("height") != nil {
		t.Error("expected nil for an undeclared field")
	}
}
