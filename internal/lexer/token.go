package lexer

// TokenType identifies the lexical class of a token.
//
// The enumeration is grouped the way the grammar consumes it: special
// tokens first, then literals, the identifier class, keywords, and finally
// operators and delimiters. The IsKeyword/IsLiteral range checks below rely
// on this grouping.
type TokenType int

const (
	// Special tokens

	// TokenEOF marks the end of the input. It is a real token with a
	// position so "unexpected end of file" diagnostics can point somewhere.
	TokenEOF TokenType = iota

	// TokenIllegal represents a character the scanner does not recognize.
	// The scanner emits it and keeps going rather than failing outright;
	// the offending text is in the token's Lexeme.
	TokenIllegal

	// TokenComment represents a // line comment. The parser skips these.
	TokenComment

	// Literals

	// TokenInteger is an integer literal such as 42.
	TokenInteger

	// TokenReal is a real literal such as 3.14.
	TokenReal

	// TokenTrue and TokenFalse are the boolean literals.
	TokenTrue
	TokenFalse

	// TokenIdentifier is a class, member, or variable name.
	// The actual name is in the token's Lexeme.
	TokenIdentifier

	// Keywords

	TokenClass
	TokenExtends
	TokenIs
	TokenEnd
	TokenVar
	TokenMethod
	TokenThis
	TokenWhile
	TokenLoop
	TokenIf
	TokenThen
	TokenElse
	TokenReturn

	// Operators and delimiters

	TokenAssign       // :=
	TokenArrow        // =>
	TokenColon        // :
	TokenDot          // .
	TokenComma        // ,
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBracket  // [
	TokenRightBracket // ]
)

// Token represents a single lexical token.
//
// Token is a value type: tokens are small, created once, and never shared
// or mutated afterwards.
type Token struct {
	// Type is the token type.
	Type TokenType

	// Lexeme is the actual text from the source code. For identifiers and
	// literals this is the payload; for keywords and operators it is the
	// expected spelling.
	Lexeme string

	// Position is where this token appears in the source.
	Position Position

	// Length is the length of the token in bytes.
	Length int
}

// String renders the token as "TYPE(lexeme) at position", for debugging
// and error messages.
func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Position.String()
}

// String returns the display name of a token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenComment:
		return "COMMENT"
	case TokenInteger:
		return "INTEGER"
	case TokenReal:
		return "REAL"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenClass:
		return "CLASS"
	case TokenExtends:
		return "EXTENDS"
	case TokenIs:
		return "IS"
	case TokenEnd:
		return "END"
	case TokenVar:
		return "VAR"
	case TokenMethod:
		return "METHOD"
	case TokenThis:
		return "THIS"
	case TokenWhile:
		return "WHILE"
	case TokenLoop:
		return "LOOP"
	case TokenIf:
		return "IF"
	case TokenThen:
		return "THEN"
	case TokenElse:
		return "ELSE"
	case TokenReturn:
		return "RETURN"
	case TokenAssign:
		return "ASSIGN"
	case TokenArrow:
		return "ARROW"
	case TokenColon:
		return "COLON"
	case TokenDot:
		return "DOT"
	case TokenComma:
		return "COMMA"
	case TokenLeftParen:
		return "LPAREN"
	case TokenRightParen:
		return "RPAREN"
	case TokenLeftBracket:
		return "LBRACKET"
	case TokenRightBracket:
		return "RBRACKET"
	default:
		return "UNKNOWN"
	}
}

// keywords maps keyword spellings to their token types.
// The map is initialized once and never modified.
var keywords = map[string]TokenType{
	"class":   TokenClass,
	"extends": TokenExtends,
	"is":      TokenIs,
	"end":     TokenEnd,
	"var":     TokenVar,
	"method":  TokenMethod,
	"this":    TokenThis,
	"while":   TokenWhile,
	"loop":    TokenLoop,
	"if":      TokenIf,
	"then":    TokenThen,
	"else":    TokenElse,
	"return":  TokenReturn,
	"true":    TokenTrue,
	"false":   TokenFalse,
}

// LookupKeyword checks whether an identifier spelling is actually a keyword
// or boolean literal. Returns the reserved token type if it is, or
// TokenIdentifier if not.
func LookupKeyword(identifier string) TokenType {
	if tokenType, ok := keywords[identifier]; ok {
		return tokenType
	}
	return TokenIdentifier
}

// IsKeyword reports whether the token type is a reserved word.
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenClass && tt <= TokenReturn
}

// IsLiteral reports whether the token type is a literal value.
func (tt TokenType) IsLiteral() bool {
	return tt >= TokenInteger && tt <= TokenFalse
}
