// Package lexer provides lexical analysis for O source code.
// It transforms raw source text into a stream of tokens consumed by the parser.
package lexer

// Position represents a location in the source code.
//
// Position is a value type: it is small, immutable once created, and the
// zero value naturally represents "no position". Every token and AST node
// carries one so that diagnostics can point at the exact offending spot.
type Position struct {
	// Filename is the name of the source file.
	Filename string

	// Line is the 1-based line number. Zero means the position is unknown.
	Line int

	// Column is the 1-based column number, counted in runes, not bytes.
	Column int

	// Offset is the 0-based byte offset from the start of the file.
	Offset int
}

// String renders the position in the conventional file:line:column format.
func (p Position) String() string {
	return p.Filename + ":" + itoa(p.Line) + ":" + itoa(p.Column)
}

// IsValid reports whether the position carries real location information.
// A position is valid once it has a line number; Position{} is invalid.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether this position comes before the other position.
// Positions are compared by byte offset.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// After reports whether this position comes after the other position.
func (p Position) After(other Position) bool {
	return p.Offset > other.Offset
}

// itoa converts a small integer to decimal ASCII.
// Line and column numbers are the only inputs, so the negative branch is
// never taken in practice.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := false
	if n < 0 {
		negative = true
		n = -n
	}

	buf := make([]byte, 0, 12)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}

	if negative {
		buf = append(buf, '-')
	}

	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf)
}
