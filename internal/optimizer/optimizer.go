// Package optimizer prunes analyzed O classes in place.
//
// The passes run per class, immediately after the class has been fully
// checked, and consume the usage facts the analyzer recorded: which fields
// and locals were ever read, and where each body's first return sits.
// Pruning only removes code; it never changes the meaning of what remains,
// so running a pass twice leaves the tree unchanged.
package optimizer

import (
	"olang/internal/parser/ast"
	"olang/internal/symtab"
)

// Pass is one pruning pass over a checked class.
type Pass interface {
	// Name identifies the pass.
	Name() string

	// Run prunes the class declaration in place. sym is the class's
	// symbol, decls maps variable declaration nodes to their symbols.
	Run(class *ast.ClassDecl, sym *symtab.ClassSymbol, decls map[*ast.VarDecl]*symtab.VariableSymbol)
}

// Optimizer runs a fixed pipeline of passes over each class.
type Optimizer struct {
	passes []Pass
}

// New creates an optimizer with the standard pipeline: unused-field
// removal, then dead-code elimination.
func New() *Optimizer {
	return &Optimizer{
		passes: []Pass{
			&UnusedFields{},
			&DeadCode{},
		},
	}
}

// Run applies every pass to the class, in order.
func (o *Optimizer) Run(class *ast.ClassDecl, sym *symtab.ClassSymbol, decls map[*ast.VarDecl]*symtab.VariableSymbol) {
	for _, pass := range o.passes {
		pass.Run(class, sym, decls)
	}
}
