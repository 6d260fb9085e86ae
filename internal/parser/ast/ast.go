// Package ast defines the abstract syntax tree node types for O programs.
//
// The node set is closed: every expression, statement, and member kind is
// declared in this package, tagged through the marker methods on Expr, Stmt,
// and Member. Operations over the tree (analysis, pruning) dispatch with
// type switches over that closed set.
//
// Every node carries the position of its leading token for diagnostics.
// The tree is owned by whoever parsed it; the semantic analyzer annotates
// and prunes it in place but never takes ownership.
package ast

import (
	"olang/internal/lexer"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the starting position of this node in the source.
	Pos() lexer.Position

	// End returns the position just past the node's last token.
	End() lexer.Position
}

// Expr is the interface for all expression nodes: constructs that produce
// a value. Examples: Integer(5), x, this, a.Plus(b).
type Expr interface {
	Node
	exprNode() // marker, keeps the expression set closed
}

// Stmt is the interface for all statement and body-item nodes: constructs
// that perform an action. A method or constructor body is a []Stmt; local
// variable declarations appear in bodies, so *VarDecl is a Stmt too.
type Stmt interface {
	Node
	stmtNode() // marker
}

// Member is the interface for class member declarations: fields, methods,
// and constructors.
type Member interface {
	Node
	memberNode() // marker
}

// Program is the root of the tree: an ordered sequence of class
// declarations, analyzed as one unit.
type Program struct {
	Classes []*ClassDecl
}

func (p *Program) Pos() lexer.Position {
	if len(p.Classes) > 0 {
		return p.Classes[0].Pos()
	}
	return lexer.Position{}
}

func (p *Program) End() lexer.Position {
	if len(p.Classes) > 0 {
		return p.Classes[len(p.Classes)-1].End()
	}
	return lexer.Position{}
}

// ClassDecl represents a class declaration:
//
//	class Name [extends Base] is Members end
//
// Base is nil when the class has no declared parent. The base class is
// recorded by name only; the analyzer resolves it through its registry.
type ClassDecl struct {
	ClassPos lexer.Position // position of the 'class' keyword
	Name     *Ident
	Base     *Ident // optional, nil if no 'extends' clause
	Members  []Member
	EndPos   lexer.Position // position of the closing 'end'
}

func (c *ClassDecl) Pos() lexer.Position { return c.ClassPos }
func (c *ClassDecl) End() lexer.Position { return c.EndPos }

// TypeRef is a type name appearing in a parameter list or return position.
// Name is the resolved spelling, including synthesized container names such
// as "Array[Integer]" for parametrized built-ins.
type TypeRef struct {
	Name    string
	NamePos lexer.Position
	EndPos  lexer.Position
}

func (t *TypeRef) Pos() lexer.Position { return t.NamePos }
func (t *TypeRef) End() lexer.Position { return t.EndPos }

// Param is a single parameter declaration: name : Type.
type Param struct {
	Name *Ident
	Type *TypeRef
}

func (p *Param) Pos() lexer.Position { return p.Name.Pos() }
func (p *Param) End() lexer.Position { return p.Type.End() }
