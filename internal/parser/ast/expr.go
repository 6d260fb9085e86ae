package ast

import (
	"olang/internal/lexer"
)

// Expression nodes.
//
// O has no infix operators: arithmetic and comparison are ordinary method
// calls (a.Plus(b), i.Less(n)), so the expression grammar is literals,
// names, 'this', calls, and member-access chains.

// IntegerLit represents an integer literal: 42.
type IntegerLit struct {
	Token lexer.Token
	Value int64
}

func (e *IntegerLit) Pos() lexer.Position { return e.Token.Position }
func (e *IntegerLit) End() lexer.Position { return tokenEnd(e.Token) }
func (e *IntegerLit) exprNode()           {}

// RealLit represents a real literal: 3.14.
type RealLit struct {
	Token lexer.Token
	Value float64
}

func (e *RealLit) Pos() lexer.Position { return e.Token.Position }
func (e *RealLit) End() lexer.Position { return tokenEnd(e.Token) }
func (e *RealLit) exprNode()           {}

// BooleanLit represents a boolean literal: true or false.
type BooleanLit struct {
	Token lexer.Token
	Value bool
}

func (e *BooleanLit) Pos() lexer.Position { return e.Token.Position }
func (e *BooleanLit) End() lexer.Position { return tokenEnd(e.Token) }
func (e *BooleanLit) exprNode()           {}

// Ident represents a name: a variable, parameter, field, method, or type
// name, depending on context. Which one it is gets decided during semantic
// analysis, not here.
//
// Name may be a synthesized container name such as "Array[Integer]" when a
// parametrized built-in appears in call position.
type Ident struct {
	Token lexer.Token
	Name  string
}

func (e *Ident) Pos() lexer.Position { return e.Token.Position }
func (e *Ident) End() lexer.Position { return tokenEnd(e.Token) }
func (e *Ident) exprNode()           {}

// ThisExpr represents the 'this' expression: the current object, typed as
// the enclosing class.
type ThisExpr struct {
	Token lexer.Token
}

func (e *ThisExpr) Pos() lexer.Position { return e.Token.Position }
func (e *ThisExpr) End() lexer.Position { return tokenEnd(e.Token) }
func (e *ThisExpr) exprNode()           {}

// CallExpr represents a call: callee(args).
//
// The callee is an *Ident for a unified call — resolved during analysis as
// either a constructor call (the name is a type) or a method call on the
// current class — and a *MemberExpr for a method call on another object.
type CallExpr struct {
	Callee     Expr
	LeftParen  lexer.Token
	Args       []Expr
	RightParen lexer.Token
}

func (e *CallExpr) Pos() lexer.Position { return e.Callee.Pos() }
func (e *CallExpr) End() lexer.Position { return tokenEnd(e.RightParen) }
func (e *CallExpr) exprNode()           {}

// MemberExpr represents member access: object.name.
// Without a surrounding call this resolves to a field; as the callee of a
// CallExpr it names a method.
type MemberExpr struct {
	Object Expr
	Dot    lexer.Token
	Member *Ident
}

func (e *MemberExpr) Pos() lexer.Position { return e.Object.Pos() }
func (e *MemberExpr) End() lexer.Position { return e.Member.End() }
func (e *MemberExpr) exprNode()           {}

// tokenEnd computes the position just past a token.
func tokenEnd(t lexer.Token) lexer.Position {
	return lexer.Position{
		Filename: t.Position.Filename,
		Line:     t.Position.Line,
		Column:   t.Position.Column + len(t.Lexeme),
		Offset:   t.Position.Offset + t.Length,
	}
}
