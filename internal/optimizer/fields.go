package optimizer

import (
	"olang/internal/parser/ast"
	"olang/internal/symtab"
)

// UnusedFields removes field declarations that were never referenced
// anywhere in the program. A field counts as referenced when any identifier
// or member access resolved to it during analysis, including assignment
// targets and accesses from other classes.
type UnusedFields struct{}

func (p *UnusedFields) Name() string { return "unused-fields" }

func (p *UnusedFields) Run(class *ast.ClassDecl, sym *symtab.ClassSymbol, decls map[*ast.VarDecl]*symtab.VariableSymbol) {
	kept := class.Members[:0]
	for _, member := range class.Members {
		if decl, ok := member.(*ast.VarDecl); ok {
			varSym := decls[decl]
			if varSym != nil && !varSym.Used {
				delete(sym.Fields, varSym.Name)
				continue
			}
		}
		kept = append(kept, member)
	}
	class.Members = kept
}
