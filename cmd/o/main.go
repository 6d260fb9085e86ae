// Package main provides the O front-end entry point.
//
// The pipeline runs:
// 1. Lexical Analysis (tokenization)
// 2. Syntax Analysis (parsing)
// 3. Semantic Analysis (name resolution, type checking, pruning)
//
// A program either passes all three stages or is rejected; semantic
// analysis stops at the first error.
package main

import (
	"fmt"
	"os"

	"olang/internal/lexer"
	"olang/internal/parser"
	"olang/internal/parser/ast"
	"olang/internal/semantic"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <source-file>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	lex := lexer.New(string(source), filename)
	p := parser.New(lex)

	program, errors := p.Parse()
	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "Parsing errors:\n")
		for _, err := range errors {
			fmt.Fprintf(os.Stderr, "  %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("✓ Parsing successful\n")

	analyzer := semantic.New()
	if err := analyzer.Analyze(program); err != nil {
		fmt.Fprintf(os.Stderr, "Semantic error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Semantic analysis successful\n")

	fmt.Printf("\n=== Compilation Summary ===\n")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Classes: %d\n", len(program.Classes))

	fmt.Println("\nClasses:")
	for i, class := range program.Classes {
		fields, methods, ctors := 0, 0, 0
		for _, member := range class.Members {
			switch member.(type) {
			case *ast.VarDecl:
				fields++
			case *ast.MethodDecl:
				methods++
			case *ast.ConstructorDecl:
				ctors++
			}
		}
		fmt.Printf("  %d. %s (%d fields, %d methods, %d constructors)\n",
			i+1, class.Name.Name, fields, methods, ctors)
	}
}
