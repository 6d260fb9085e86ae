// Package symtab implements the symbol layer for the O semantic analyzer:
// variable symbols with usage tracking, lexical scope chains, and the
// per-class tables of fields, method overloads, and constructors.
//
// Name resolution follows lexical scoping: inner frames shadow outer ones,
// and declaration conflicts are checked only within a single frame. Symbols
// record whether they were ever read; the optimizer uses that flag to prune
// unused fields and locals after analysis.
package symtab

import (
	"olang/internal/lexer"
	"olang/internal/semantic/types"
)

// VarKind classifies a variable symbol by where it was declared.
type VarKind int

const (
	// Field is a class-level variable.
	Field VarKind = iota

	// Local is a variable declared inside a method or constructor body.
	Local

	// Parameter is a method or constructor parameter.
	Parameter
)

// String returns the display name of the kind, used in diagnostics.
func (k VarKind) String() string {
	switch k {
	case Field:
		return "field"
	case Local:
		return "local"
	case Parameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// VariableSymbol represents one declared variable: a field, local, or
// parameter. A symbol is created once at its declaration point and never
// reused across scopes.
type VariableSymbol struct {
	// Name is the variable's identifier.
	Name string

	// Type is the variable's static type, taken from the initializer for
	// fields and locals and from the declared type for parameters.
	Type types.Type

	// Kind is where the variable was declared.
	Kind VarKind

	// Pos is the declaration position, for diagnostics.
	Pos lexer.Position

	// Used records whether the symbol was ever read through identifier or
	// member-access resolution. Never-used fields and locals are pruned
	// from the AST after analysis.
	Used bool
}

// MarkUsed records that the symbol has been referenced.
func (s *VariableSymbol) MarkUsed() {
	s.Used = true
}

// String renders the symbol as "kind name: type" for debugging.
func (s *VariableSymbol) String() string {
	return s.Kind.String() + " " + s.Name + ": " + s.Type.String()
}
