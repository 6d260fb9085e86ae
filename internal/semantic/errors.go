package semantic

import (
	"fmt"

	"olang/internal/lexer"
	"olang/internal/parser/ast"
)

// Error is the single semantic diagnostic type: a human-readable message
// plus the source position of the offending node. Analysis is fail-fast,
// so one Analyze call surfaces at most one Error.
type Error struct {
	// Msg is the diagnostic text, presented to the user verbatim.
	Msg string

	// Pos is the position of the offending node, taken from the node the
	// parser attached it to. May be invalid when no node applies.
	Pos lexer.Position
}

// Error renders "file:line:col: message", or just the message when the
// position is unknown.
func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// errorAt builds a semantic Error positioned at the given node.
func errorAt(node ast.Node, format string, args ...interface{}) error {
	e := &Error{Msg: fmt.Sprintf(format, args...)}
	if node != nil {
		e.Pos = node.Pos()
	}
	return e
}
