package symtab

import (
	"fmt"
)

// Scope is one lexical frame of variable bindings, chained to an enclosing
// frame. The root frame of a method holds its parameters; while and if
// bodies open child frames.
//
// LOOKUP: walks from the innermost frame toward the root and stops at the
// first hit, so an inner declaration shadows an outer one of the same name.
//
// DECLARATION: conflicts are checked only within the current frame; a child
// frame may legally redeclare a name bound in a parent.
type Scope struct {
	// Parent is the enclosing frame, nil for a method's root frame.
	// The reference is non-owning: parents never see their children.
	Parent *Scope

	// symbols maps names to the symbols declared in this frame.
	symbols map[string]*VariableSymbol
}

// NewScope creates a frame chained to parent (nil for a root frame).
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent:  parent,
		symbols: make(map[string]*VariableSymbol),
	}
}

// Define binds a symbol in this frame. It fails if the name is already
// bound in this same frame; shadowing an outer frame's binding is fine.
func (s *Scope) Define(sym *VariableSymbol) error {
	if existing, ok := s.symbols[sym.Name]; ok {
		return fmt.Errorf("%s %s already declared", existing.Kind, sym.Name)
	}
	s.symbols[sym.Name] = sym
	return nil
}

// Lookup resolves a name in this frame or any enclosing frame, innermost
// first. The resolved symbol is marked used; resolution is the single place
// usage is recorded. Returns nil if the name is not bound anywhere.
func (s *Scope) Lookup(name string) *VariableSymbol {
	if sym, ok := s.symbols[name]; ok {
		sym.MarkUsed()
		return sym
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil
}

// LookupLocal resolves a name in this frame only, without touching the
// used flag. Used for redeclaration checks.
func (s *Scope) LookupLocal(name string) *VariableSymbol {
	return s.symbols[name]
}
