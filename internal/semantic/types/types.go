// Package types implements the type system for the O semantic analyzer.
//
// O's type identity is purely by name: a type is a named descriptor, and
// two types are the same type exactly when their names are equal. Built-in
// value types (Integer, Real, Boolean), declared classes, and parametrized
// container applications (Array[Integer], List[Rect]) all fit that shape,
// so the whole system is one value type plus two sentinels:
//
//   - Void marks the absence of a value (a method without a return type).
//     It is compatible with nothing and may not be assigned, returned as a
//     value, or used as an operand.
//   - Unknown marks a type the analyzer could not pin down statically, such
//     as the result of a call through an opaque built-in container. It is a
//     wildcard: compatible with everything.
//
// There is no numeric widening and no subtype assignability; the class
// hierarchy affects member lookup, never compatibility.
package types

// Type is a value-typed descriptor identified by name.
// The zero value is not a valid type; construct with Named or use the
// predeclared descriptors.
type Type struct {
	name string
}

// Named returns the type descriptor for the given type name.
func Named(name string) Type {
	return Type{name: name}
}

// Predeclared descriptors. Built-in value types plus the two sentinels.
var (
	Integer = Type{name: "Integer"}
	Real    = Type{name: "Real"}
	Boolean = Type{name: "Boolean"}

	Void    = Type{name: "Void"}
	Unknown = Type{name: "Unknown"}
)

// Name returns the type's name, including synthesized container names such
// as "Array[Integer]".
func (t Type) Name() string { return t.name }

// String returns the type's name for diagnostics.
func (t Type) String() string { return t.name }

// Equal reports whether two descriptors name the same type.
func (t Type) Equal(other Type) bool { return t.name == other.name }

// IsVoid reports whether this is the Void sentinel.
func (t Type) IsVoid() bool { return t.name == Void.name }

// IsUnknown reports whether this is the Unknown sentinel.
func (t Type) IsUnknown() bool { return t.name == Unknown.name }

// Compatible reports whether a value of type b can appear where type a is
// expected (and vice versa — the relation is symmetric).
//
// RULES:
//   - Unknown on either side always matches.
//   - Void matches nothing, not even itself.
//   - Otherwise the names must be identical.
func Compatible(a, b Type) bool {
	if a.IsUnknown() || b.IsUnknown() {
		return true
	}
	if a.IsVoid() || b.IsVoid() {
		return false
	}
	return a.name == b.name
}

// IsBuiltin reports whether name is one of the built-in value types.
func IsBuiltin(name string) bool {
	switch name {
	case Integer.name, Real.name, Boolean.name:
		return true
	}
	return false
}

// IsContainer reports whether name is one of the parametrized built-in
// container types, which take one element type argument.
func IsContainer(name string) bool {
	switch name {
	case "Array", "List":
		return true
	}
	return false
}

// Apply synthesizes the name of a container application: Apply("Array",
// "Integer") is the type named "Array[Integer]".
func Apply(base, elem string) Type {
	return Type{name: base + "[" + elem + "]"}
}

// IsBuiltinName reports whether name denotes any built-in type: a built-in
// value type, a container, or a container application. Used both for
// resolving type names and for accepting built-ins as base classes.
func IsBuiltinName(name string) bool {
	if IsBuiltin(name) || IsContainer(name) {
		return true
	}
	// Container application: Base[Elem].
	for i := 0; i < len(name); i++ {
		if name[i] == '[' {
			return IsContainer(name[:i]) && name[len(name)-1] == ']'
		}
	}
	return false
}
