package ast

import (
	"olang/internal/lexer"
)

// Statement and member nodes.

// VarDecl represents a variable declaration: var name : Init.
//
// The initializer expression doubles as the type source: the variable's
// static type is the initializer's type. At class level a VarDecl declares
// a field (it is a Member); inside a body it declares a local (it is a
// Stmt). The same node type serves both, matching the grammar.
type VarDecl struct {
	VarPos lexer.Position // position of the 'var' keyword
	Name   *Ident
	Init   Expr
}

func (d *VarDecl) Pos() lexer.Position { return d.VarPos }
func (d *VarDecl) End() lexer.Position { return d.Init.End() }
func (d *VarDecl) stmtNode()           {}
func (d *VarDecl) memberNode()         {}

// MethodDecl represents a method declaration in one of three forms:
//
//	method name(params) : Type is Body end    block-bodied
//	method name(params) : Type => Expr        expression-bodied
//	method name(params) : Type                forward declaration
//
// Return is nil when the method declares no return type (void). Exactly one
// of Body and Expr is set for an implemented method; both are nil for a
// forward declaration.
type MethodDecl struct {
	MethodPos lexer.Position // position of the 'method' keyword
	Name      *Ident
	Params    []*Param
	Return    *TypeRef // nil means no declared return type
	Body      []Stmt   // block body, nil unless the 'is ... end' form
	Expr      Expr     // expression body, nil unless the '=>' form
	EndPos    lexer.Position
}

func (d *MethodDecl) Pos() lexer.Position { return d.MethodPos }
func (d *MethodDecl) End() lexer.Position { return d.EndPos }
func (d *MethodDecl) memberNode()         {}

// HasBody reports whether this declaration carries an implementation
// (either body form). A declaration without one is a forward declaration.
func (d *MethodDecl) HasBody() bool {
	return d.Body != nil || d.Expr != nil
}

// ConstructorDecl represents a constructor: this(params) is Body end.
// Constructors have no return type and no forward-declaration form.
type ConstructorDecl struct {
	ThisPos lexer.Position // position of the 'this' keyword
	Params  []*Param
	Body    []Stmt
	EndPos  lexer.Position
}

func (d *ConstructorDecl) Pos() lexer.Position { return d.ThisPos }
func (d *ConstructorDecl) End() lexer.Position { return d.EndPos }
func (d *ConstructorDecl) memberNode()         {}

// AssignStmt represents an assignment: target := value.
// The target is an identifier or a member access.
type AssignStmt struct {
	Target Expr
	Assign lexer.Token // the ':=' token
	Value  Expr
}

func (s *AssignStmt) Pos() lexer.Position { return s.Target.Pos() }
func (s *AssignStmt) End() lexer.Position { return s.Value.End() }
func (s *AssignStmt) stmtNode()           {}

// WhileStmt represents a loop: while Cond loop Body end.
type WhileStmt struct {
	WhilePos lexer.Position
	Cond     Expr
	Body     []Stmt
	EndPos   lexer.Position
}

func (s *WhileStmt) Pos() lexer.Position { return s.WhilePos }
func (s *WhileStmt) End() lexer.Position { return s.EndPos }
func (s *WhileStmt) stmtNode()           {}

// IfStmt represents a conditional: if Cond then Then [else Else] end.
// Else is nil when there is no else branch.
type IfStmt struct {
	IfPos  lexer.Position
	Cond   Expr
	Then   []Stmt
	Else   []Stmt // nil if absent
	EndPos lexer.Position
}

func (s *IfStmt) Pos() lexer.Position { return s.IfPos }
func (s *IfStmt) End() lexer.Position { return s.EndPos }
func (s *IfStmt) stmtNode()           {}

// ReturnStmt represents a return: return [Expr].
// Value is nil for a bare return.
type ReturnStmt struct {
	ReturnPos lexer.Position
	Value     Expr // nil for a bare return
}

func (s *ReturnStmt) Pos() lexer.Position { return s.ReturnPos }
func (s *ReturnStmt) End() lexer.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return lexer.Position{
		Filename: s.ReturnPos.Filename,
		Line:     s.ReturnPos.Line,
		Column:   s.ReturnPos.Column + len("return"),
		Offset:   s.ReturnPos.Offset + len("return"),
	}
}
func (s *ReturnStmt) stmtNode() {}
