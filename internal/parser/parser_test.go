package parser

import (
	"testing"

	"github.com/go-test/deep"

	"olang/internal/lexer"
	"olang/internal/parser/ast"
)

// parseProgram parses source and fails the test on any syntax error.
func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	p := New(lexer.New(source, "test.o"))
	program, errors := p.Parse()
	if len(errors) > 0 {
		t.Fatalf("unexpected syntax errors: %v", errors)
	}
	return program
}

// parseErrors parses source and returns the recorded syntax errors.
func parseErrors(t *testing.T, source string) []error {
	t.Helper()
	p := New(lexer.New(source, "test.o"))
	_, errors := p.Parse()
	return errors
}

func TestParser_EmptyClass(t *testing.T) {
	program := parseProgram(t, "class Empty is end")

	if len(program.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(program.Classes))
	}
	class := program.Classes[0]
	if class.Name.Name != "Empty" {
		t.Errorf("class name = %q, want %q", class.Name.Name, "Empty")
	}
	if class.Base != nil {
		t.Error("expected no base class")
	}
	if len(class.Members) != 0 {
		t.Errorf("expected no members, got %d", len(class.Members))
	}
}

func TestParser_Extends(t *testing.T) {
	program := parseProgram(t, "class Circle extends Shape is end")

	class := program.Classes[0]
	if class.Base == nil || class.Base.Name != "Shape" {
		t.Errorf("expected base class Shape, got %v", class.Base)
	}
}

func TestParser_FieldDeclaration(t *testing.T) {
	program := parseProgram(t, `
class Counter is
    var count : Integer(0)
end`)

	class := program.Classes[0]
	if len(class.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(class.Members))
	}

	field, ok := class.Members[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", class.Members[0])
	}
	if field.Name.Name != "count" {
		t.Errorf("field name = %q, want %q", field.Name.Name, "count")
	}

	call, ok := field.Init.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected initializer to be a call, got %T", field.Init)
	}
	callee, ok := call.Callee.(*ast.Ident)
	if !ok || callee.Name != "Integer" {
		t.Errorf("expected callee Integer, got %v", call.Callee)
	}
	if len(call.Args) != 1 {
		t.Errorf("expected 1 argument, got %d", len(call.Args))
	}
}

func TestParser_MethodForms(t *testing.T) {
	program := parseProgram(t, `
class Forms is
    method Block(x : Integer) : Integer is return x end
    method Arrow(x : Integer) : Integer => x
    method Forward(x : Integer) : Integer
    method Empty is end
end`)

	class := program.Classes[0]
	if len(class.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(class.Members))
	}

	block := class.Members[0].(*ast.MethodDecl)
	if block.Body == nil || block.Expr != nil || !block.HasBody() {
		t.Error("expected a block-bodied method")
	}

	arrow := class.Members[1].(*ast.MethodDecl)
	if arrow.Expr == nil || arrow.Body != nil || !arrow.HasBody() {
		t.Error("expected an expression-bodied method")
	}

	forward := class.Members[2].(*ast.MethodDecl)
	if forward.HasBody() {
		t.Error("expected a forward declaration")
	}

	// An empty 'is end' body is an implementation, not a forward
	// declaration.
	empty := class.Members[3].(*ast.MethodDecl)
	if !empty.HasBody() {
		t.Error("expected an empty block body to count as a body")
	}
	if empty.Return != nil {
		t.Error("expected no declared return type")
	}
}

func TestParser_Parameters(t *testing.T) {
	program := parseProgram(t, `
class Rect is
    method Resize(w : Integer, h : Integer, units : Array[Real]) is end
end`)

	method := program.Classes[0].Members[0].(*ast.MethodDecl)

	type param struct {
		Name string
		Type string
	}
	got := make([]param, len(method.Params))
	for i, p := range method.Params {
		got[i] = param{p.Name.Name, p.Type.Name}
	}

	want := []param{
		{"w", "Integer"},
		{"h", "Integer"},
		{"units", "Array[Real]"},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestParser_Constructor(t *testing.T) {
	program := parseProgram(t, `
class Rect is
    var width : Integer(0)
    this(w : Integer) is
        width := w
    end
end`)

	ctor, ok := program.Classes[0].Members[1].(*ast.ConstructorDecl)
	if !ok {
		t.Fatalf("expected *ast.ConstructorDecl, got %T", program.Classes[0].Members[1])
	}
	if len(ctor.Params) != 1 || ctor.Params[0].Name.Name != "w" {
		t.Error("expected one parameter w")
	}
	if len(ctor.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(ctor.Body))
	}
	if _, ok := ctor.Body[0].(*ast.AssignStmt); !ok {
		t.Errorf("expected an assignment, got %T", ctor.Body[0])
	}
}

func TestParser_WhileStatement(t *testing.T) {
	program := parseProgram(t, `
class Loop is
    method Count(n : Integer) is
        var i : Integer(0)
        while i.Less(n) loop
            i := i.Plus(Integer(1))
        end
    end
end`)

	method := program.Classes[0].Members[0].(*ast.MethodDecl)
	if len(method.Body) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(method.Body))
	}

	while, ok := method.Body[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected *ast.WhileStmt, got %T", method.Body[1])
	}
	if _, ok := while.Cond.(*ast.CallExpr); !ok {
		t.Errorf("expected the condition to be a call, got %T", while.Cond)
	}
	if len(while.Body) != 1 {
		t.Errorf("expected 1 loop body statement, got %d", len(while.Body))
	}
}

func TestParser_IfElse(t *testing.T) {
	program := parseProgram(t, `
class Branch is
    method Pick(flag : Boolean) : Integer is
        if flag then
            return Integer(1)
        else
            return Integer(2)
        end
    end
    method Bare(flag : Boolean) is
        if flag then
            return
        end
    end
end`)

	pick := program.Classes[0].Members[0].(*ast.MethodDecl)
	ifStmt := pick.Body[0].(*ast.IfStmt)
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Error("expected one statement in each branch")
	}

	bare := program.Classes[0].Members[1].(*ast.MethodDecl)
	bareIf := bare.Body[0].(*ast.IfStmt)
	if bareIf.Else != nil {
		t.Error("expected no else branch")
	}
	ret := bareIf.Then[0].(*ast.ReturnStmt)
	if ret.Value != nil {
		t.Error("expected a bare return")
	}
}

func TestParser_MemberChain(t *testing.T) {
	program := parseProgram(t, `
class Chain is
    method Get(p : Point) : Integer => p.origin.x.Plus(Integer(1))
end`)

	method := program.Classes[0].Members[0].(*ast.MethodDecl)

	call, ok := method.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected the body to be a call, got %T", method.Expr)
	}
	plus, ok := call.Callee.(*ast.MemberExpr)
	if !ok || plus.Member.Name != "Plus" {
		t.Fatal("expected a member call to Plus")
	}
	x, ok := plus.Object.(*ast.MemberExpr)
	if !ok || x.Member.Name != "x" {
		t.Fatal("expected member access .x")
	}
	origin, ok := x.Object.(*ast.MemberExpr)
	if !ok || origin.Member.Name != "origin" {
		t.Fatal("expected member access .origin")
	}
	if p, ok := origin.Object.(*ast.Ident); !ok || p.Name != "p" {
		t.Fatal("expected the chain to start at identifier p")
	}
}

func TestParser_ContainerApplication(t *testing.T) {
	program := parseProgram(t, `
class Store is
    var items : Array[Integer](10)
end`)

	field := program.Classes[0].Members[0].(*ast.VarDecl)
	call := field.Init.(*ast.CallExpr)
	callee := call.Callee.(*ast.Ident)
	if callee.Name != "Array[Integer]" {
		t.Errorf("expected synthesized name %q, got %q", "Array[Integer]", callee.Name)
	}
}

func TestParser_Literals(t *testing.T) {
	program := parseProgram(t, `
class Lit is
    var i : Integer(42)
    var r : Real(3.14)
    var b : Boolean(true)
end`)

	members := program.Classes[0].Members

	intArg := members[0].(*ast.VarDecl).Init.(*ast.CallExpr).Args[0].(*ast.IntegerLit)
	if intArg.Value != 42 {
		t.Errorf("integer literal = %d, want 42", intArg.Value)
	}

	realArg := members[1].(*ast.VarDecl).Init.(*ast.CallExpr).Args[0].(*ast.RealLit)
	if realArg.Value != 3.14 {
		t.Errorf("real literal = %v, want 3.14", realArg.Value)
	}

	boolArg := members[2].(*ast.VarDecl).Init.(*ast.CallExpr).Args[0].(*ast.BooleanLit)
	if !boolArg.Value {
		t.Error("boolean literal = false, want true")
	}
}

func TestParser_This(t *testing.T) {
	program := parseProgram(t, `
class Node is
    method Self : Node => this
end`)

	method := program.Classes[0].Members[0].(*ast.MethodDecl)
	if _, ok := method.Expr.(*ast.ThisExpr); !ok {
		t.Errorf("expected *ast.ThisExpr, got %T", method.Expr)
	}
}

func TestParser_CommentsIgnored(t *testing.T) {
	program := parseProgram(t, `
// a counter class
class Counter is
    var count : Integer(0) // starts at zero
end`)

	if len(program.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(program.Classes))
	}
	if len(program.Classes[0].Members) != 1 {
		t.Errorf("expected 1 member, got %d", len(program.Classes[0].Members))
	}
}

func TestParser_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"missing is", "class A end"},
		{"missing end", "class A is"},
		{"missing class keyword", "A is end"},
		{"bad member", "class A is 42 end"},
		{"missing assign operator", "class A is method M is x end end"},
		{"illegal character", "class A @ is end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errors := parseErrors(t, tt.source); len(errors) == 0 {
				t.Error("expected syntax errors")
			}
		})
	}
}

// One malformed class must not poison the next one.
func TestParser_RecoversAtNextClass(t *testing.T) {
	source := `
class Broken is 42 end
class Fine is end`

	p := New(lexer.New(source, "test.o"))
	program, errors := p.Parse()

	if len(errors) == 0 {
		t.Fatal("expected syntax errors from the broken class")
	}

	for _, class := range program.Classes {
		if class.Name.Name == "Fine" {
			return
		}
	}
	t.Error("expected the class after the broken one to parse")
}
