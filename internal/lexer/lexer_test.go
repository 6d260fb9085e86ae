package lexer

import (
	"testing"

	"github.com/go-test/deep"
)

func TestLexer_Keywords(t *testing.T) {
	source := "class extends is end var method this while loop if then else return"
	l := New(source, "test.o")

	expectedTypes := []TokenType{
		TokenClass,
		TokenExtends,
		TokenIs,
		TokenEnd,
		TokenVar,
		TokenMethod,
		TokenThis,
		TokenWhile,
		TokenLoop,
		TokenIf,
		TokenThen,
		TokenElse,
		TokenReturn,
		TokenEOF,
	}

	for i, expected := range expectedTypes {
		token := l.NextToken()
		if token.Type != expected {
			t.Errorf("token %d: expected %v, got %v", i, expected, token.Type)
		}
	}
}

func TestLexer_Identifiers(t *testing.T) {
	source := "counter _temp Rect value123"
	l := New(source, "test.o")

	expected := []string{"counter", "_temp", "Rect", "value123"}

	for i, expectedName := range expected {
		token := l.NextToken()
		if token.Type != TokenIdentifier {
			t.Errorf("token %d: expected TokenIdentifier, got %v", i, token.Type)
		}
		if token.Lexeme != expectedName {
			t.Errorf("token %d: expected %q, got %q", i, expectedName, token.Lexeme)
		}
	}
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		source string
		want   TokenType
	}{
		{"42", TokenInteger},
		{"0", TokenInteger},
		{"3.14", TokenReal},
		{"0.5", TokenReal},
	}

	for _, tt := range tests {
		l := New(tt.source, "test.o")
		token := l.NextToken()
		if token.Type != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.source, tt.want, token.Type)
		}
		if token.Lexeme != tt.source {
			t.Errorf("%q: expected lexeme %q, got %q", tt.source, tt.source, token.Lexeme)
		}
	}
}

// A '.' after an integer followed by a letter is member access, not a
// malformed real. "1.Plus(2)" must lex as INTEGER DOT IDENTIFIER ...
func TestLexer_IntegerMemberAccess(t *testing.T) {
	l := New("1.Plus(2)", "test.o")

	got := tokenTypes(l.Tokenize())
	want := []TokenType{
		TokenInteger,
		TokenDot,
		TokenIdentifier,
		TokenLeftParen,
		TokenInteger,
		TokenRightParen,
		TokenEOF,
	}

	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestLexer_Operators(t *testing.T) {
	l := New(":= => : . , ( ) [ ]", "test.o")

	got := tokenTypes(l.Tokenize())
	want := []TokenType{
		TokenAssign,
		TokenArrow,
		TokenColon,
		TokenDot,
		TokenComma,
		TokenLeftParen,
		TokenRightParen,
		TokenLeftBracket,
		TokenRightBracket,
		TokenEOF,
	}

	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestLexer_BooleanLiterals(t *testing.T) {
	l := New("true false", "test.o")

	if tok := l.NextToken(); tok.Type != TokenTrue {
		t.Errorf("expected TokenTrue, got %v", tok.Type)
	}
	if tok := l.NextToken(); tok.Type != TokenFalse {
		t.Errorf("expected TokenFalse, got %v", tok.Type)
	}
}

func TestLexer_LineComment(t *testing.T) {
	l := New("var x // the counter\nvar y", "test.o")

	got := tokenTypes(l.Tokenize())
	want := []TokenType{
		TokenVar,
		TokenIdentifier,
		TokenComment,
		TokenVar,
		TokenIdentifier,
		TokenEOF,
	}

	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestLexer_IllegalCharacter(t *testing.T) {
	tests := []struct {
		source string
		lexeme string
	}{
		{"@", "@"},
		{"=", "="},
		{"/", "/"},
	}

	for _, tt := range tests {
		l := New(tt.source, "test.o")
		token := l.NextToken()
		if token.Type != TokenIllegal {
			t.Errorf("%q: expected TokenIllegal, got %v", tt.source, token.Type)
		}
		if token.Lexeme != tt.lexeme {
			t.Errorf("%q: expected lexeme %q, got %q", tt.source, tt.lexeme, token.Lexeme)
		}
	}
}

func TestLexer_Positions(t *testing.T) {
	source := "class A\n  var x"
	l := New(source, "test.o")

	tests := []struct {
		line   int
		column int
	}{
		{1, 1}, // class
		{1, 7}, // A
		{2, 3}, // var
		{2, 7}, // x
	}

	for i, tt := range tests {
		token := l.NextToken()
		if token.Position.Line != tt.line || token.Position.Column != tt.column {
			t.Errorf("token %d: expected %d:%d, got %d:%d",
				i, tt.line, tt.column, token.Position.Line, token.Position.Column)
		}
	}
}

func TestLexer_TokenizeEndsWithEOF(t *testing.T) {
	l := New("", "test.o")

	tokens := l.Tokenize()
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
	if tokens[0].Type != TokenEOF {
		t.Errorf("expected TokenEOF, got %v", tokens[0].Type)
	}
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}
