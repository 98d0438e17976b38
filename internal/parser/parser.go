// Package parser builds an ast.Program from a token stream.
//
// Statements are parsed by recursive descent and expressions by precedence
// climbing (see precedence.go). Parsing stops at the first grammar error,
// which is returned as a *SyntaxError.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hassan/tacc/internal/lexer"
	"github.com/hassan/tacc/internal/parser/ast"
)

// SyntaxError describes the first grammar violation in the input.
type SyntaxError struct {
	Expected string
	Found    string
	Pos      lexer.Position

	// EOF is set when the input ended in the middle of a construct.
	EOF bool
}

func (e *SyntaxError) Error() string {
	if e.EOF {
		return fmt.Sprintf("%s: unexpected end of input, expected %s", e.Pos, e.Expected)
	}
	return fmt.Sprintf("%s: syntax error: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// Line returns the 1-based line of the offending token.
func (e *SyntaxError) Line() int { return e.Pos.Line }

// Column returns the 1-based column of the offending token.
func (e *SyntaxError) Column() int { return e.Pos.Column }

// bailout unwinds the recursive descent after a SyntaxError is recorded.
type bailout struct{}

// Parser consumes a token slice. A Parser is single-use.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	current lexer.Token
	err     *SyntaxError
}

// New creates a parser over tokens. The slice need not end with TokenEOF;
// running off the end behaves as if it did.
func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens}
	p.current = p.at(0)
	return p
}

// ParseSource tokenizes and parses source in one step. Lexical errors are
// not fatal and are not returned; use lexer.Tokenize and New to see them.
func ParseSource(source, filename string) (*ast.Program, error) {
	tokens, _ := lexer.Tokenize(source, filename)
	return New(tokens).Parse()
}

// Parse parses a whole program.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			prog, err = nil, p.err
		}
	}()

	prog = &ast.Program{}
	for !p.isAtEnd() {
		if p.match(lexer.TokenSemicolon) {
			continue
		}
		prog.Statements = append(prog.Statements, p.parseStmt())
	}
	return prog, nil
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.current.Type {
	case lexer.TokenIf:
		return p.parseIfStmt()
	case lexer.TokenWhile:
		return p.parseWhileStmt()
	case lexer.TokenFor:
		return p.parseForStmt()
	case lexer.TokenFunction:
		return p.parseFunctionDef()
	case lexer.TokenReturn:
		return p.parseReturnStmt()
	}

	expr := p.parseExpression()
	if assign, ok := expr.(*ast.Assignment); ok {
		return assign
	}
	return &ast.ExprStmt{X: expr}
}

// parseBlock parses statements up to, but not including, one of the
// terminator keywords.
func (p *Parser) parseBlock(terminators ...lexer.TokenType) *ast.Block {
	block := &ast.Block{Position: p.current.Position}
	for !p.isAtEnd() && !p.check(terminators...) {
		if p.match(lexer.TokenSemicolon) {
			continue
		}
		block.Statements = append(block.Statements, p.parseStmt())
	}
	return block
}

// if COND block (elseif COND block)* (else block)? end
func (p *Parser) parseIfStmt() *ast.IfStatement {
	stmt := &ast.IfStatement{Position: p.current.Position}
	p.advance()

	stmt.Cond = p.parseExpression()
	stmt.Then = p.parseBlock(lexer.TokenElseIf, lexer.TokenElse, lexer.TokenEnd)

	for p.check(lexer.TokenElseIf) {
		clause := &ast.ElseIf{Position: p.current.Position}
		p.advance()
		clause.Cond = p.parseExpression()
		clause.Body = p.parseBlock(lexer.TokenElseIf, lexer.TokenElse, lexer.TokenEnd)
		stmt.ElseIfs = append(stmt.ElseIfs, clause)
	}

	if p.match(lexer.TokenElse) {
		stmt.Else = p.parseBlock(lexer.TokenEnd)
	}

	p.consume(lexer.TokenEnd, "'end' to close if")
	return stmt
}

// while COND block end
func (p *Parser) parseWhileStmt() *ast.WhileLoop {
	stmt := &ast.WhileLoop{Position: p.current.Position}
	p.advance()

	stmt.Cond = p.parseExpression()
	stmt.Body = p.parseBlock(lexer.TokenEnd)
	p.consume(lexer.TokenEnd, "'end' to close while")
	return stmt
}

// for ID in EXPR : EXPR block end
func (p *Parser) parseForStmt() *ast.ForLoop {
	stmt := &ast.ForLoop{Position: p.current.Position}
	p.advance()

	stmt.Var = p.parseName("loop variable")
	p.consume(lexer.TokenIn, "'in'")
	stmt.Start = p.parseExpression()
	p.consume(lexer.TokenColon, "':' between range bounds")
	stmt.End = p.parseExpression()
	stmt.Body = p.parseBlock(lexer.TokenEnd)
	p.consume(lexer.TokenEnd, "'end' to close for")
	return stmt
}

// function ID ( params ) block end
func (p *Parser) parseFunctionDef() *ast.FunctionDef {
	def := &ast.FunctionDef{Position: p.current.Position}
	p.advance()

	def.Name = p.parseName("function name")
	p.consume(lexer.TokenLeftParen, "'(' after function name")
	if !p.check(lexer.TokenRightParen) {
		for {
			def.Params = append(def.Params, p.parseName("parameter name"))
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "')' after parameters")

	def.Body = p.parseBlock(lexer.TokenEnd)
	p.consume(lexer.TokenEnd, "'end' to close function")
	return def
}

// return EXPR?
func (p *Parser) parseReturnStmt() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Position: p.current.Position}
	p.advance()

	if startsExpression(p.current.Type) {
		stmt.Value = p.parseExpression()
	}
	return stmt
}

func (p *Parser) parseName(what string) *ast.Identifier {
	tok := p.current
	p.consume(lexer.TokenIdentifier, what)
	return &ast.Identifier{Position: tok.Position, Name: tok.Lexeme}
}

func startsExpression(tt lexer.TokenType) bool {
	switch tt {
	case lexer.TokenIdentifier, lexer.TokenLeftParen, lexer.TokenMinus, lexer.TokenNot:
		return true
	}
	return tt.IsLiteral()
}

// Expressions

func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecAssignment)
}

// parsePrecedence parses an expression whose infix operators all bind at
// least as tightly as precedence.
func (p *Parser) parsePrecedence(precedence Precedence) ast.Expr {
	left := p.parsePrefix()
	for precedence <= getPrecedence(p.current.Type) {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	tok := p.current
	switch tok.Type {
	case lexer.TokenInteger:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.failAt(tok, "integer literal that fits in 64 bits")
		}
		return &ast.Literal{Position: tok.Position, Type: ast.LitInteger, Value: v}
	case lexer.TokenFloat:
		p.advance()
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.failAt(tok, "finite float literal")
		}
		return &ast.Literal{Position: tok.Position, Type: ast.LitFloat, Value: v}
	case lexer.TokenString:
		p.advance()
		return &ast.Literal{Position: tok.Position, Type: ast.LitString, Value: unquote(tok.Lexeme)}
	case lexer.TokenTrue, lexer.TokenFalse:
		p.advance()
		return &ast.Literal{Position: tok.Position, Type: ast.LitBool, Value: tok.Type == lexer.TokenTrue}
	case lexer.TokenIdentifier:
		p.advance()
		if p.check(lexer.TokenLeftParen) {
			return p.parseCall(tok)
		}
		return &ast.Identifier{Position: tok.Position, Name: tok.Lexeme}
	case lexer.TokenLeftParen:
		p.advance()
		expr := p.parseExpression()
		p.consume(lexer.TokenRightParen, "')' after expression")
		return expr
	case lexer.TokenMinus, lexer.TokenNot:
		p.advance()
		operand := p.parsePrecedence(PrecUnary)
		return &ast.UnaryOp{Position: tok.Position, Op: tok.Lexeme, Operand: operand}
	}
	p.fail("expression")
	return nil
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	if p.current.Type.IsAssignment() {
		return p.parseAssignment(left)
	}
	return p.parseBinary(left)
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	operator := p.current
	precedence := getPrecedence(operator.Type)
	p.advance()

	right := p.parsePrecedence(precedence + 1)
	if isNonAssociative(operator.Type) && isNonAssociative(p.current.Type) {
		p.fail("parentheses around chained comparison")
	}

	return &ast.BinaryOp{Op: operator.Lexeme, Left: left, Right: right}
}

func (p *Parser) parseAssignment(left ast.Expr) ast.Expr {
	operator := p.current
	target, ok := left.(*ast.Identifier)
	if !ok {
		p.fail("identifier before " + operator.Lexeme)
	}
	p.advance()

	precedence := getPrecedence(operator.Type)
	if isRightAssociative(operator.Type) {
		precedence--
	}
	value := p.parsePrecedence(precedence + 1)

	return &ast.Assignment{Target: target, Op: operator.Lexeme, Value: value}
}

// parseCall parses the argument list after a function name.
func (p *Parser) parseCall(name lexer.Token) ast.Expr {
	call := &ast.FunctionCall{Position: name.Position, Name: name.Lexeme}
	p.advance() // (

	if !p.check(lexer.TokenRightParen) {
		for {
			call.Args = append(call.Args, p.parseExpression())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "')' after arguments")
	return call
}

// unquote strips the quotes from a string lexeme and resolves \n \t \r
// \\ and \". Any other escape is kept as written.
func unquote(lexeme string) string {
	body := lexeme[1 : len(lexeme)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

// Token helpers

func (p *Parser) at(i int) lexer.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	eof := lexer.Token{Type: lexer.TokenEOF}
	if n := len(p.tokens); n > 0 {
		eof.Position = p.tokens[n-1].Position
	}
	return eof
}

func (p *Parser) advance() {
	if !p.isAtEnd() {
		p.pos++
	}
	p.current = p.at(p.pos)
}

func (p *Parser) check(tokenTypes ...lexer.TokenType) bool {
	for _, tt := range tokenTypes {
		if p.current.Type == tt {
			return true
		}
	}
	return false
}

func (p *Parser) match(tokenTypes ...lexer.TokenType) bool {
	if p.check(tokenTypes...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(tokenType lexer.TokenType, expected string) {
	if p.check(tokenType) {
		p.advance()
		return
	}
	p.fail(expected)
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

// fail records a SyntaxError at the current token and unwinds to Parse.
func (p *Parser) fail(expected string) {
	p.failAt(p.current, expected)
}

func (p *Parser) failAt(tok lexer.Token, expected string) {
	p.err = &SyntaxError{
		Expected: expected,
		Found:    tok.Describe(),
		Pos:      tok.Position,
		EOF:      tok.Type == lexer.TokenEOF,
	}
	panic(bailout{})
}
