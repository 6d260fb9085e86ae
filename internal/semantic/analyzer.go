// Package semantic implements semantic analysis for O programs.
//
// The analyzer turns a syntactically valid but otherwise unchecked AST into
// a verified, fully-typed program, or rejects it with a single positioned
// diagnostic. It performs, in order:
//
//  1. Class registration — one symbol per declared class, duplicate names
//     rejected.
//  2. Inheritance resolution — a fixed-point pass that orders classes so
//     every base is analyzed before its derived classes, detecting cycles
//     and undeclared bases.
//  3. Per class, in that order: member registration (method and
//     constructor signatures, before any body is looked at, so bodies may
//     call methods declared later in the same class), then body checking
//     (scoped name resolution, expression typing, overload resolution,
//     reachability), then the optimizer passes (unused-field and dead-code
//     pruning).
//
// The whole program is accepted atomically: the first error anywhere
// aborts the Analyze call. There is no error aggregation and no recovery;
// callers fix the program and re-invoke.
//
// All analysis state is rebuilt at the start of each Analyze call. One
// analyzer must not be used from overlapping calls; concurrent analyses
// need separate Analyzer values.
package semantic

import (
	"strings"

	"olang/internal/optimizer"
	"olang/internal/parser/ast"
	"olang/internal/semantic/types"
	"olang/internal/symtab"
)

// Analyzer performs semantic analysis on O programs.
type Analyzer struct {
	// classes is the class registry: one symbol per declared class,
	// keyed by name. Base-class links are resolved through this table by
	// name on every inherited lookup.
	classes map[string]*symtab.ClassSymbol

	// methods maps each method declaration node to the symbol its
	// signature was registered under, so body checking can find the
	// signature computed during registration.
	methods map[*ast.MethodDecl]*symtab.MethodSymbol

	// decls maps each variable declaration node to its symbol. The
	// optimizer consults it to decide which fields and locals were never
	// used.
	decls map[*ast.VarDecl]*symtab.VariableSymbol

	// opt prunes each class after it has been fully checked.
	opt *optimizer.Optimizer
}

// MethodContext carries what a body is allowed to do with 'return': the
// enclosing declared return type, and whether return is permitted at all
// (it is not inside constructors or field initializers).
type MethodContext struct {
	Return      types.Type
	AllowReturn bool
}

// New creates an analyzer.
func New() *Analyzer {
	return &Analyzer{opt: optimizer.New()}
}

// Analyze verifies the program, annotating and pruning the AST in place.
// On success the tree is fully typed and optimized; on failure the first
// error encountered is returned and the program must be considered
// rejected as a whole.
func (a *Analyzer) Analyze(program *ast.Program) error {
	// Fresh state per call.
	a.classes = make(map[string]*symtab.ClassSymbol)
	a.methods = make(map[*ast.MethodDecl]*symtab.MethodSymbol)
	a.decls = make(map[*ast.VarDecl]*symtab.VariableSymbol)

	if err := a.registerClasses(program); err != nil {
		return err
	}

	order, err := a.resolveOrder(program)
	if err != nil {
		return err
	}

	// Classes are fully processed one at a time, in inheritance order:
	// signatures first so bodies may forward-reference members within the
	// class, then every member body, then pruning. A body may therefore
	// reference members of its own class, its bases, and any class
	// processed earlier in the order.
	for _, cls := range order {
		if err := a.registerMembers(cls); err != nil {
			return err
		}
		if err := a.checkClass(cls); err != nil {
			return err
		}
		a.opt.Run(cls.Decl, cls, a.decls)
	}

	return nil
}

// registerClasses fills the class registry, one linear pass. The only
// check here is class-name uniqueness across the program.
func (a *Analyzer) registerClasses(program *ast.Program) error {
	for _, decl := range program.Classes {
		name := decl.Name.Name
		if _, ok := a.classes[name]; ok {
			return errorAt(decl.Name, "class %s is already declared", name)
		}
		a.classes[name] = symtab.NewClassSymbol(decl)
	}
	return nil
}

// resolveOrder produces a processing order consistent with inheritance:
// base classes strictly before derived ones.
//
// ALGORITHM: fixed point over a pending set. Each pass schedules every
// pending class whose base is absent, a built-in type name, or already
// scheduled. A full pass that schedules nothing while classes remain
// pending means the remaining bases can never resolve — a cycle.
//
// Base-class names that are neither built-ins nor registered classes are
// rejected up front, in declaration order, independent of the fixed point.
func (a *Analyzer) resolveOrder(program *ast.Program) ([]*symtab.ClassSymbol, error) {
	pending := make([]*symtab.ClassSymbol, 0, len(program.Classes))
	for _, decl := range program.Classes {
		cls := a.classes[decl.Name.Name]
		if cls.Base != "" && !types.IsBuiltinName(cls.Base) {
			if _, ok := a.classes[cls.Base]; !ok {
				return nil, errorAt(decl.Base, "base class %s is not declared", cls.Base)
			}
		}
		pending = append(pending, cls)
	}

	order := make([]*symtab.ClassSymbol, 0, len(pending))
	analyzed := make(map[string]bool)

	for len(pending) > 0 {
		progress := false
		remaining := pending[:0]

		for _, cls := range pending {
			ready := cls.Base == "" ||
				types.IsBuiltinName(cls.Base) ||
				analyzed[cls.Base]
			if ready {
				order = append(order, cls)
				analyzed[cls.Name] = true
				progress = true
			} else {
				remaining = append(remaining, cls)
			}
		}

		if !progress {
			names := make([]string, len(remaining))
			for i, cls := range remaining {
				names[i] = cls.Name
			}
			return nil, errorAt(remaining[0].Decl,
				"cyclic inheritance involving %s", strings.Join(names, ", "))
		}
		pending = remaining
	}

	return order, nil
}

// lookupClass resolves a registered class by name. Built-in type names are
// not classes and return nil.
func (a *Analyzer) lookupClass(name string) *symtab.ClassSymbol {
	return a.classes[name]
}

// lookupField resolves a field by name, starting at cls and walking the
// base chain. The walk stops at the first match, so a derived class's
// field shadows a base field of the same name. The resolved symbol is
// marked used.
func (a *Analyzer) lookupField(cls *symtab.ClassSymbol, name string) *symtab.VariableSymbol {
	for c := cls; c != nil; c = a.classes[c.Base] {
		if sym := c.LookupField(name); sym != nil {
			sym.MarkUsed()
			return sym
		}
	}
	return nil
}

// isTypeName reports whether name denotes a type in this program: a
// built-in (including container applications) or a registered class. This
// is what disambiguates a unified call — Integer(5) constructs, f(5)
// calls a method.
func (a *Analyzer) isTypeName(name string) bool {
	if types.IsBuiltinName(name) {
		return true
	}
	_, ok := a.classes[name]
	return ok
}

// resolveTypeName resolves a type name appearing in a parameter list,
// return position, or container application. node supplies the position
// for the diagnostic.
func (a *Analyzer) resolveTypeName(name string, node ast.Node) (types.Type, error) {
	if types.IsBuiltin(name) || types.IsContainer(name) {
		return types.Named(name), nil
	}
	if _, ok := a.classes[name]; ok {
		return types.Named(name), nil
	}

	// Container application Base[Elem]: the base must be a container and
	// the element must itself resolve.
	if i := strings.IndexByte(name, '['); i > 0 && strings.HasSuffix(name, "]") {
		if types.IsContainer(name[:i]) {
			if _, err := a.resolveTypeName(name[i+1:len(name)-1], node); err != nil {
				return types.Type{}, err
			}
			return types.Named(name), nil
		}
	}

	return types.Type{}, errorAt(node, "type %s is not declared", name)
}
