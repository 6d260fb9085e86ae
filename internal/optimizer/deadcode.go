package optimizer

import (
	"olang/internal/parser/ast"
	"olang/internal/symtab"
)

// DeadCode prunes method and constructor bodies: statements after a return
// in the same list are unreachable and removed, and local declarations
// whose variable was never referenced are dropped. The walk recurses into loop
// and conditional bodies.
type DeadCode struct{}

func (p *DeadCode) Name() string { return "dead-code" }

func (p *DeadCode) Run(class *ast.ClassDecl, sym *symtab.ClassSymbol, decls map[*ast.VarDecl]*symtab.VariableSymbol) {
	for _, member := range class.Members {
		switch m := member.(type) {
		case *ast.MethodDecl:
			if m.Body != nil {
				m.Body = p.pruneBody(m.Body, decls)
			}
		case *ast.ConstructorDecl:
			m.Body = p.pruneBody(m.Body, decls)
		}
	}
}

// pruneBody rewrites one statement list. The return that ends the list is
// kept; everything after it goes.
func (p *DeadCode) pruneBody(body []ast.Stmt, decls map[*ast.VarDecl]*symtab.VariableSymbol) []ast.Stmt {
	kept := body[:0]
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.VarDecl:
			varSym := decls[s]
			if varSym != nil && !varSym.Used {
				continue
			}

		case *ast.WhileStmt:
			s.Body = p.pruneBody(s.Body, decls)

		case *ast.IfStmt:
			s.Then = p.pruneBody(s.Then, decls)
			if s.Else != nil {
				s.Else = p.pruneBody(s.Else, decls)
			}

		case *ast.ReturnStmt:
			kept = append(kept, s)
			return kept
		}
		kept = append(kept, stmt)
	}
	return kept
}
