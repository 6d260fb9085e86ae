// Package parser implements syntax analysis for O source code.
//
// The parser is a hand-written recursive descent over the token stream. It
// produces the AST defined in the ast package, attaching the position of
// each node's leading token, and collects syntax errors as it goes. It
// enforces syntax only; everything about names, types, and members is the
// semantic analyzer's job.
//
// GRAMMAR (informally):
//
//	Program     = { ClassDecl } .
//	ClassDecl   = "class" Name [ "extends" Name ] "is" { Member } "end" .
//	Member      = VarDecl | MethodDecl | ConstructorDecl .
//	VarDecl     = "var" Name ":" Expression .
//	MethodDecl  = "method" Name [ Params ] [ ":" TypeName ]
//	              ( "is" Body "end" | "=>" Expression | ) .
//	ConstructorDecl = "this" [ Params ] "is" Body "end" .
//	Params      = "(" Param { "," Param } ")" .
//	Param       = Name ":" TypeName .
//	TypeName    = Name [ "[" TypeName "]" ] .
//	Body        = { VarDecl | Statement } .
//	Statement   = WhileStmt | IfStmt | ReturnStmt | AssignStmt .
//	WhileStmt   = "while" Expression "loop" Body "end" .
//	IfStmt      = "if" Expression "then" Body [ "else" Body ] "end" .
//	ReturnStmt  = "return" [ Expression ] .
//	AssignStmt  = Expression ":=" Expression .
//	Expression  = Primary { "." Name [ Args ] } .
//	Primary     = INTEGER | REAL | "true" | "false" | "this"
//	            | Name [ "[" TypeName "]" ] [ Args ] .
//	Args        = "(" [ Expression { "," Expression } ] ")" .
package parser

import (
	"fmt"
	"strconv"

	"olang/internal/lexer"
	"olang/internal/parser/ast"
)

// Parser holds the token stream and parsing state.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []error
}

// New creates a parser over the given lexer's output. Comment tokens are
// filtered out here; illegal characters are reported as syntax errors.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{}
	for _, tok := range l.Tokenize() {
		switch tok.Type {
		case lexer.TokenComment:
			// Comments carry no syntax.
		case lexer.TokenIllegal:
			p.errors = append(p.errors,
				fmt.Errorf("%s: illegal character %q", tok.Position, tok.Lexeme))
		default:
			p.tokens = append(p.tokens, tok)
		}
	}
	return p
}

// Parse parses the whole token stream into a Program. The returned error
// list is empty for syntactically valid input; on errors the returned tree
// covers whatever parsed cleanly.
func (p *Parser) Parse() (*ast.Program, []error) {
	program := &ast.Program{}

	for !p.check(lexer.TokenEOF) {
		if !p.check(lexer.TokenClass) {
			p.errorf(p.current(), "expected 'class', found %s", p.current().Type)
			p.synchronize()
			continue
		}
		if class := p.parseClass(); class != nil {
			program.Classes = append(program.Classes, class)
		}
	}

	return program, p.errors
}

// parseClass parses: class Name [extends Name] is { Member } end
func (p *Parser) parseClass() *ast.ClassDecl {
	classTok := p.advance() // 'class'

	name, ok := p.expectIdent("class name")
	if !ok {
		p.synchronize()
		return nil
	}

	class := &ast.ClassDecl{
		ClassPos: classTok.Position,
		Name:     name,
	}

	if p.match(lexer.TokenExtends) {
		base, ok := p.expectIdent("base class name")
		if !ok {
			p.synchronize()
			return nil
		}
		class.Base = base
	}

	if !p.expect(lexer.TokenIs, "'is'") {
		p.synchronize()
		return nil
	}

	for !p.check(lexer.TokenEnd) && !p.check(lexer.TokenEOF) {
		member := p.parseMember()
		if member == nil {
			p.synchronize()
			break
		}
		class.Members = append(class.Members, member)
	}

	endTok := p.current()
	if p.expect(lexer.TokenEnd, "'end'") {
		class.EndPos = endTok.Position
	}

	return class
}

// parseMember dispatches on the leading keyword of a class member.
func (p *Parser) parseMember() ast.Member {
	switch p.current().Type {
	case lexer.TokenVar:
		return p.parseVarDecl()
	case lexer.TokenMethod:
		return p.parseMethod()
	case lexer.TokenThis:
		return p.parseConstructor()
	default:
		p.errorf(p.current(), "expected class member, found %s", p.current().Type)
		return nil
	}
}

// parseVarDecl parses: var Name ':' Expression
// Used for both fields and locals; the initializer expression is also the
// variable's type source.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	varTok := p.advance() // 'var'

	name, ok := p.expectIdent("variable name")
	if !ok {
		return nil
	}
	if !p.expect(lexer.TokenColon, "':'") {
		return nil
	}
	init := p.parseExpression()
	if init == nil {
		return nil
	}

	return &ast.VarDecl{VarPos: varTok.Position, Name: name, Init: init}
}

// parseMethod parses the three method forms: block-bodied, expression-
// bodied, and forward declaration (header only).
func (p *Parser) parseMethod() *ast.MethodDecl {
	methodTok := p.advance() // 'method'

	name, ok := p.expectIdent("method name")
	if !ok {
		return nil
	}

	method := &ast.MethodDecl{MethodPos: methodTok.Position, Name: name}

	if p.check(lexer.TokenLeftParen) {
		params, ok := p.parseParams()
		if !ok {
			return nil
		}
		method.Params = params
	}

	if p.match(lexer.TokenColon) {
		ret := p.parseTypeRef()
		if ret == nil {
			return nil
		}
		method.Return = ret
	}

	switch {
	case p.check(lexer.TokenIs):
		p.advance()
		body, endTok, ok := p.parseBody("'end'", lexer.TokenEnd)
		if !ok {
			return nil
		}
		if body == nil {
			// An empty block body is still a body, not a forward
			// declaration.
			body = []ast.Stmt{}
		}
		method.Body = body
		method.EndPos = endTok.Position

	case p.check(lexer.TokenArrow):
		p.advance()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		method.Expr = expr
		method.EndPos = expr.End()

	default:
		// Forward declaration: header only.
		method.EndPos = p.previous().Position
	}

	return method
}

// parseConstructor parses: this [Params] is Body end
func (p *Parser) parseConstructor() *ast.ConstructorDecl {
	thisTok := p.advance() // 'this'

	ctor := &ast.ConstructorDecl{ThisPos: thisTok.Position}

	if p.check(lexer.TokenLeftParen) {
		params, ok := p.parseParams()
		if !ok {
			return nil
		}
		ctor.Params = params
	}

	if !p.expect(lexer.TokenIs, "'is'") {
		return nil
	}
	body, endTok, ok := p.parseBody("'end'", lexer.TokenEnd)
	if !ok {
		return nil
	}
	if body == nil {
		body = []ast.Stmt{}
	}
	ctor.Body = body
	ctor.EndPos = endTok.Position

	return ctor
}

// parseParams parses a parenthesized parameter list.
func (p *Parser) parseParams() ([]*ast.Param, bool) {
	p.advance() // '('

	var params []*ast.Param
	if !p.check(lexer.TokenRightParen) {
		for {
			name, ok := p.expectIdent("parameter name")
			if !ok {
				return nil, false
			}
			if !p.expect(lexer.TokenColon, "':'") {
				return nil, false
			}
			typ := p.parseTypeRef()
			if typ == nil {
				return nil, false
			}
			params = append(params, &ast.Param{Name: name, Type: typ})
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}

	if !p.expect(lexer.TokenRightParen, "')'") {
		return nil, false
	}
	return params, true
}

// parseTypeRef parses a type name, including parametrized container
// applications. The application's name is synthesized into a single
// spelling: Array [ Integer ] becomes "Array[Integer]".
func (p *Parser) parseTypeRef() *ast.TypeRef {
	nameTok := p.current()
	if nameTok.Type != lexer.TokenIdentifier {
		p.errorf(nameTok, "expected type name, found %s", nameTok.Type)
		return nil
	}
	p.advance()

	ref := &ast.TypeRef{
		Name:    nameTok.Lexeme,
		NamePos: nameTok.Position,
		EndPos:  tokenEnd(nameTok),
	}

	if p.check(lexer.TokenLeftBracket) {
		p.advance()
		elem := p.parseTypeRef()
		if elem == nil {
			return nil
		}
		closeTok := p.current()
		if !p.expect(lexer.TokenRightBracket, "']'") {
			return nil
		}
		ref.Name = ref.Name + "[" + elem.Name + "]"
		ref.EndPos = tokenEnd(closeTok)
	}

	return ref
}

// parseBody parses body items until the given terminator ('end', or 'else'
// inside an if). The terminator token is returned but, for 'else', not
// consumed; the caller decides.
func (p *Parser) parseBody(what string, terminators ...lexer.TokenType) ([]ast.Stmt, lexer.Token, bool) {
	var body []ast.Stmt

	for {
		if p.check(lexer.TokenEOF) {
			p.errorf(p.current(), "expected %s, found end of file", what)
			return nil, p.current(), false
		}
		for _, term := range terminators {
			if p.check(term) {
				tok := p.current()
				if term == lexer.TokenEnd {
					p.advance()
				}
				return body, tok, true
			}
		}

		item := p.parseBodyItem()
		if item == nil {
			return nil, p.current(), false
		}
		body = append(body, item)
	}
}

// parseBodyItem parses one body item: a local declaration or a statement.
func (p *Parser) parseBodyItem() ast.Stmt {
	switch p.current().Type {
	case lexer.TokenVar:
		decl := p.parseVarDecl()
		if decl == nil {
			return nil
		}
		return decl

	case lexer.TokenWhile:
		return p.parseWhile()

	case lexer.TokenIf:
		return p.parseIf()

	case lexer.TokenReturn:
		return p.parseReturn()

	default:
		return p.parseAssign()
	}
}

// parseWhile parses: while Expression loop Body end
func (p *Parser) parseWhile() ast.Stmt {
	whileTok := p.advance()

	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if !p.expect(lexer.TokenLoop, "'loop'") {
		return nil
	}
	body, endTok, ok := p.parseBody("'end'", lexer.TokenEnd)
	if !ok {
		return nil
	}

	return &ast.WhileStmt{
		WhilePos: whileTok.Position,
		Cond:     cond,
		Body:     body,
		EndPos:   endTok.Position,
	}
}

// parseIf parses: if Expression then Body [else Body] end
func (p *Parser) parseIf() ast.Stmt {
	ifTok := p.advance()

	cond := p.parseExpression()
	if cond == nil {
		return nil
	}
	if !p.expect(lexer.TokenThen, "'then'") {
		return nil
	}

	thenBody, tok, ok := p.parseBody("'else' or 'end'", lexer.TokenEnd, lexer.TokenElse)
	if !ok {
		return nil
	}

	stmt := &ast.IfStmt{IfPos: ifTok.Position, Cond: cond, Then: thenBody}

	if tok.Type == lexer.TokenElse {
		p.advance() // 'else'
		elseBody, endTok, ok := p.parseBody("'end'", lexer.TokenEnd)
		if !ok {
			return nil
		}
		stmt.Else = elseBody
		stmt.EndPos = endTok.Position
	} else {
		stmt.EndPos = tok.Position
	}

	return stmt
}

// parseReturn parses: return [Expression]
// The return value is optional; a body terminator or the start of the next
// statement means a bare return. Since every expression starts with a
// literal, a name, or 'this', and 'this' also starts a constructor member
// but never a body item, checking the next token's class is enough.
func (p *Parser) parseReturn() ast.Stmt {
	returnTok := p.advance()

	stmt := &ast.ReturnStmt{ReturnPos: returnTok.Position}

	switch p.current().Type {
	case lexer.TokenInteger, lexer.TokenReal, lexer.TokenTrue, lexer.TokenFalse,
		lexer.TokenIdentifier, lexer.TokenThis:
		stmt.Value = p.parseExpression()
		if stmt.Value == nil {
			return nil
		}
	}

	return stmt
}

// parseAssign parses: Expression ':=' Expression
// Assignment is the only statement that starts with an expression; the
// target must syntactically be a name or member access, which is checked
// semantically.
func (p *Parser) parseAssign() ast.Stmt {
	target := p.parseExpression()
	if target == nil {
		return nil
	}

	assignTok := p.current()
	if !p.expect(lexer.TokenAssign, "':='") {
		return nil
	}

	value := p.parseExpression()
	if value == nil {
		return nil
	}

	return &ast.AssignStmt{Target: target, Assign: assignTok, Value: value}
}

// parseExpression parses a primary followed by a chain of member accesses
// and member calls.
func (p *Parser) parseExpression() ast.Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for p.check(lexer.TokenDot) {
		dotTok := p.advance()
		member, ok := p.expectIdent("member name")
		if !ok {
			return nil
		}

		access := &ast.MemberExpr{Object: expr, Dot: dotTok, Member: member}

		if p.check(lexer.TokenLeftParen) {
			call := p.parseCall(access)
			if call == nil {
				return nil
			}
			expr = call
		} else {
			expr = access
		}
	}

	return expr
}

// parsePrimary parses the leaf expressions: literals, 'this', and names
// with optional type arguments and call arguments.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.current()

	switch tok.Type {
	case lexer.TokenInteger:
		p.advance()
		value, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.errorf(tok, "invalid integer literal %q", tok.Lexeme)
			return nil
		}
		return &ast.IntegerLit{Token: tok, Value: value}

	case lexer.TokenReal:
		p.advance()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.errorf(tok, "invalid real literal %q", tok.Lexeme)
			return nil
		}
		return &ast.RealLit{Token: tok, Value: value}

	case lexer.TokenTrue, lexer.TokenFalse:
		p.advance()
		return &ast.BooleanLit{Token: tok, Value: tok.Type == lexer.TokenTrue}

	case lexer.TokenThis:
		p.advance()
		return &ast.ThisExpr{Token: tok}

	case lexer.TokenIdentifier:
		p.advance()
		ident := &ast.Ident{Token: tok, Name: tok.Lexeme}

		// A '[' directly after a name is a container type application:
		// Array[Integer](...). There is no indexing syntax to collide
		// with, so the bracket is unambiguous.
		if p.check(lexer.TokenLeftBracket) {
			p.advance()
			elem := p.parseTypeRef()
			if elem == nil {
				return nil
			}
			if !p.expect(lexer.TokenRightBracket, "']'") {
				return nil
			}
			ident.Name = ident.Name + "[" + elem.Name + "]"
		}

		if p.check(lexer.TokenLeftParen) {
			return p.parseCall(ident)
		}
		return ident

	default:
		p.errorf(tok, "expected expression, found %s", tok.Type)
		return nil
	}
}

// parseCall parses the argument list of a call whose callee has already
// been parsed.
func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	lparen := p.advance() // '('

	call := &ast.CallExpr{Callee: callee, LeftParen: lparen}

	if !p.check(lexer.TokenRightParen) {
		for {
			arg := p.parseExpression()
			if arg == nil {
				return nil
			}
			call.Args = append(call.Args, arg)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}

	rparen := p.current()
	if !p.expect(lexer.TokenRightParen, "')'") {
		return nil
	}
	call.RightParen = rparen

	return call
}

// Token stream helpers.

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) previous() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

// match consumes the current token if it has the given type.
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given type or records a syntax error.
func (p *Parser) expect(tt lexer.TokenType, what string) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	p.errorf(p.current(), "expected %s, found %s", what, p.current().Type)
	return false
}

// expectIdent consumes an identifier token and wraps it in an Ident node.
func (p *Parser) expectIdent(what string) (*ast.Ident, bool) {
	tok := p.current()
	if tok.Type != lexer.TokenIdentifier {
		p.errorf(tok, "expected %s, found %s", what, tok.Type)
		return nil, false
	}
	p.advance()
	return &ast.Ident{Token: tok, Name: tok.Lexeme}, true
}

// errorf records a syntax error at the given token.
func (p *Parser) errorf(tok lexer.Token, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Errorf("%s: %s", tok.Position, msg))
}

// synchronize skips tokens until the start of the next class declaration,
// so one malformed class does not cascade into errors for the rest of the
// file.
func (p *Parser) synchronize() {
	for !p.check(lexer.TokenEOF) && !p.check(lexer.TokenClass) {
		p.advance()
	}
}

// tokenEnd computes the position just past a token.
func tokenEnd(t lexer.Token) lexer.Position {
	return lexer.Position{
		Filename: t.Position.Filename,
		Line:     t.Position.Line,
		Column:   t.Position.Column + len(t.Lexeme),
		Offset:   t.Position.Offset + t.Length,
	}
}
