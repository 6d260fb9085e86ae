package lexer

import (
	"unicode"
	"unicode/utf8"
)

// Lexer performs lexical analysis on O source code, converting it into a
// stream of tokens.
//
// The lexer breaks the source into tokens, tracks position information for
// error reporting, strips whitespace, and recognizes keywords, identifiers,
// numeric literals, and the language's operators. It does not parse syntax
// or attach any meaning to the tokens; that is the parser's and the semantic
// analyzer's job.
//
// An unrecognized character produces a TokenIllegal token rather than an
// error, so the caller always receives a complete stream ending in TokenEOF.
type Lexer struct {
	// source is the complete source text being lexed. Keeping the whole
	// file in memory makes lookahead and position tracking trivial.
	source string

	// filename is the name of the source file, for positions.
	filename string

	// start is the byte offset of the token currently being scanned.
	// The token's lexeme is source[start:current].
	start int

	// current is the byte offset the scanner is examining next.
	current int

	// line is the current 1-based line number.
	line int

	// lineStart is the byte offset where the current line began.
	// Columns are computed on demand as current - lineStart + 1.
	lineStart int
}

// New creates a Lexer for the given source code.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
	}
}

// Tokenize consumes the entire source and returns the full token stream.
// Comment tokens are included; the last token is always TokenEOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// NextToken scans and returns the next token from the source.
// The parser calls this repeatedly until it sees TokenEOF.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	l.start = l.current

	if l.isAtEnd() {
		return l.makeToken(TokenEOF, "")
	}

	ch, _ := l.advance()

	if isLetter(ch) {
		return l.scanIdentifier()
	}

	if isDigit(ch) {
		return l.scanNumber()
	}

	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen, "(")
	case ')':
		return l.makeToken(TokenRightParen, ")")
	case '[':
		return l.makeToken(TokenLeftBracket, "[")
	case ']':
		return l.makeToken(TokenRightBracket, "]")
	case ',':
		return l.makeToken(TokenComma, ",")
	case '.':
		return l.makeToken(TokenDot, ".")

	case ':':
		// ':=' is assignment, a bare ':' introduces a type or initializer.
		if l.match('=') {
			return l.makeToken(TokenAssign, ":=")
		}
		return l.makeToken(TokenColon, ":")

	case '=':
		// '=' only occurs as part of '=>'; a bare '=' is not part of the
		// language (assignment is ':=').
		if l.match('>') {
			return l.makeToken(TokenArrow, "=>")
		}
		return l.makeToken(TokenIllegal, "=")

	case '/':
		if l.match('/') {
			return l.scanLineComment()
		}
		return l.makeToken(TokenIllegal, "/")

	default:
		return l.makeToken(TokenIllegal, string(ch))
	}
}

// advance reads and returns the next character, advancing the current
// position. Returns both the rune and its byte size so multi-byte UTF-8
// characters keep offsets accurate.
func (l *Lexer) advance() (rune, int) {
	if l.isAtEnd() {
		return 0, 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	return ch, size
}

// peek returns the current character without advancing.
// Returns 0 at end of file.
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return ch
}

// peekNext returns the character after the current one without advancing.
// Used for the one case of two-character lookahead: deciding whether a '.'
// after digits starts a fraction or a member access.
func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	ch, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return ch
}

// match advances over the current character if it equals expected.
func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	if ch != expected {
		return false
	}
	l.current += size
	return true
}

// isAtEnd reports whether all source has been consumed.
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// skipWhitespace skips spaces, tabs, carriage returns, and newlines,
// updating line tracking as it crosses newlines.
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\r', '\t':
			l.advance()
		case '\n':
			l.advance()
			l.line++
			l.lineStart = l.current
		default:
			return
		}
	}
}

// scanIdentifier scans an identifier or keyword: a letter or underscore
// followed by letters, digits, or underscores.
func (l *Lexer) scanIdentifier() Token {
	for !l.isAtEnd() {
		ch := l.peek()
		if isLetter(ch) || isDigit(ch) {
			l.advance()
		} else {
			break
		}
	}

	text := l.source[l.start:l.current]
	return l.makeToken(LookupKeyword(text), text)
}

// scanNumber scans an integer or real literal.
//
// A '.' after the digits only starts the fractional part when it is itself
// followed by a digit; otherwise it is left for member access, so that
// "1.Plus(2)" lexes as INTEGER DOT IDENTIFIER and not as a real.
func (l *Lexer) scanNumber() Token {
	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}

	tokenType := TokenInteger

	if !l.isAtEnd() && l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // consume '.'
		for !l.isAtEnd() && isDigit(l.peek()) {
			l.advance()
		}
		tokenType = TokenReal
	}

	text := l.source[l.start:l.current]
	return l.makeToken(tokenType, text)
}

// scanLineComment scans a // comment through the end of the line.
// The comment is emitted as a token; the parser discards it.
func (l *Lexer) scanLineComment() Token {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}

	text := l.source[l.start:l.current]
	return l.makeToken(TokenComment, text)
}

// makeToken creates a token carrying the current position information.
func (l *Lexer) makeToken(tokenType TokenType, lexeme string) Token {
	return Token{
		Type:     tokenType,
		Lexeme:   lexeme,
		Position: l.currentPosition(),
		Length:   l.current - l.start,
	}
}

// currentPosition returns the position at the start of the current token.
func (l *Lexer) currentPosition() Position {
	return Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.start - l.lineStart + 1,
		Offset:   l.start,
	}
}

// isLetter reports whether the rune can start or continue an identifier.
// Unicode letters are accepted, as are underscores.
func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

// isDigit reports whether the rune is an ASCII decimal digit.
// Numeric literals are ASCII only.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
