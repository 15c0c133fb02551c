// Package parser builds streamlang ASTs from the token stream.
//
// Expressions are parsed with a Pratt parser; the precedence table (low to
// high) is comparison < additive < multiplicative < unary minus, with the
// additive and multiplicative operators left-associative. Statements are
// parsed by recursive descent, which resolves the dangling-else ambiguity
// naturally: after the then-branch a trailing else is always consumed by the
// innermost if. The first malformed construct aborts the parse; no partial
// AST is ever returned.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zurustar/streamlang/pkg/compiler/ast"
	"github.com/zurustar/streamlang/pkg/compiler/lexer"
	"github.com/zurustar/streamlang/pkg/compiler/token"
)

// Precedence levels for operators.
const (
	_ int = iota
	LOWEST
	COMPARISON // == != < <= > >=
	SUM        // + -
	PRODUCT    // * /
	PREFIX     // -X
)

var precedences = map[token.Type]int{
	token.EQ:       COMPARISON,
	token.NOT_EQ:   COMPARISON,
	token.LT:       COMPARISON,
	token.LTE:      COMPARISON,
	token.GT:       COMPARISON,
	token.GTE:      COMPARISON,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
}

// Parser parses streamlang source code into an AST.
type Parser struct {
	l      *lexer.Lexer
	source []string // source lines for error context
	err    error    // first error wins, everything after is ignored

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// New creates a new Parser.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		source: strings.Split(l.GetSource(), "\n"),
	}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT_LIT, p.parseIntegerLiteral)
	p.registerPrefix(token.STRING_LIT, p.parseStringLiteral)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.POSITION, p.parseQueryExpression)
	p.registerPrefix(token.DURATION, p.parseQueryExpression)
	p.registerPrefix(token.ENDED, p.parseQueryExpression)
	p.registerPrefix(token.IS_PLAYING, p.parseQueryExpression)

	p.infixParseFns = make(map[token.Type]infixParseFn)
	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.ASTERISK, p.parseInfixExpression)
	p.registerInfix(token.SLASH, p.parseInfixExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.LTE, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)
	p.registerInfix(token.GTE, p.parseInfixExpression)

	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// ParseProgram parses the entire program. It returns a nil program and the
// first lexical or syntax error encountered, if any.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	program.Statements = []ast.Statement{}

	for !p.curTokenIs(token.EOF) && p.err == nil {
		// Tolerate stray statement separators
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}

		stmt := p.parseStatement()
		if p.err != nil {
			return nil, p.err
		}
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	if p.err != nil {
		return nil, p.err
	}
	return program, nil
}

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curTokenIs(token.LBRACE):
		return p.parseBlockStatement()
	case p.curTokenIs(token.IF):
		return p.parseIfStatement()
	case p.curTokenIs(token.WHILE):
		return p.parseWhileStatement()
	case p.curTokenIs(token.PRINT):
		return p.parsePrintStatement()
	case token.IsCommand(p.curToken.Type):
		return p.parseCommandStatement()
	case p.curTokenIs(token.IDENT):
		return p.parseAssignStatement()
	default:
		p.errorf(p.curToken, "expected a statement, got %s", describeToken(p.curToken))
		return nil
	}
}

// parseBlockStatement parses { stmt* }. curToken is on '{' on entry and on
// '}' on exit.
func (p *Parser) parseBlockStatement() ast.Statement {
	block := &ast.BlockStatement{Token: p.curToken}
	block.Statements = []ast.Statement{}

	p.nextToken()

	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.errorf(p.curToken, "expected '}' to close block, got end of input")
			return nil
		}
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}

		stmt := p.parseStatement()
		if p.err != nil {
			return nil
		}
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}

// parseIfStatement parses if (COND) STMT [else STMT]. A trailing else is
// always consumed here, binding it to the nearest enclosing if.
func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Consequence = p.parseStatement()
	if stmt.Consequence == nil {
		return nil
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken() // consume else
		p.nextToken()
		stmt.Alternative = p.parseStatement()
		if stmt.Alternative == nil {
			return nil
		}
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}

	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	return stmt
}

func (p *Parser) parseAssignStatement() ast.Statement {
	stmt := &ast.AssignStatement{Token: p.curToken}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	return stmt
}

// parseCommandStatement parses the media commands. open/seek/forward/rewind/
// wait take exactly one parenthesized argument; play/pause/stop take none,
// with an optional empty pair of parens.
func (p *Parser) parseCommandStatement() ast.Statement {
	kind, ok := ast.CommandKindOf(p.curToken.Type)
	if !ok {
		p.errorf(p.curToken, "expected a media command, got %s", describeToken(p.curToken))
		return nil
	}
	stmt := &ast.CommandStatement{Token: p.curToken, Kind: kind}

	if kind.TakesArgument() {
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		p.nextToken()
		stmt.Arg = p.parseExpression(LOWEST)
		if stmt.Arg == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	} else if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	return stmt
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken, "expected an expression, got %s", describeToken(p.curToken))
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}

	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.errorf(p.curToken, "integer literal %q out of range", p.curToken.Literal)
		return nil
	}

	lit.Value = value
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}

	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return exp
}

// parseQueryExpression parses a media state query, with or without an empty
// pair of parens: position and position() are equivalent.
func (p *Parser) parseQueryExpression() ast.Expression {
	kind, ok := ast.QueryKindOf(p.curToken.Type)
	if !ok {
		p.errorf(p.curToken, "expected a media query, got %s", describeToken(p.curToken))
		return nil
	}
	exp := &ast.QueryExpression{Token: p.curToken, Kind: kind}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}

	return exp
}

// Helper functions

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

// nextToken advances the token window, discarding comments and trapping
// lexical errors. A lexical error aborts the parse immediately.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()

	for p.curToken.Type == token.COMMENT {
		p.curToken = p.peekToken
		p.peekToken = p.l.NextToken()
	}
	for p.peekToken.Type == token.COMMENT {
		p.peekToken = p.l.NextToken()
	}

	if p.err == nil {
		if p.curToken.Type == token.ILLEGAL {
			p.err = p.lexicalError(p.curToken)
		} else if p.peekToken.Type == token.ILLEGAL {
			p.err = p.lexicalError(p.peekToken)
		}
	}
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekError(t token.Type) {
	p.errorf(p.peekToken, "expected next token to be %s, got %s", t, describeToken(p.peekToken))
}

// errorf records the first syntax error; later errors are dropped because
// parsing stops at the first malformed construct.
func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = &SyntaxError{
		Message:    fmt.Sprintf(format, args...),
		Line:       tok.Line,
		Column:     tok.Column,
		Context:    p.sourceContext(tok.Line, tok.Column),
		Incomplete: tok.Type == token.EOF,
	}
}

func (p *Parser) lexicalError(tok token.Token) error {
	msg := fmt.Sprintf("unrecognized character %q", tok.Literal)
	incomplete := false
	if strings.HasPrefix(tok.Literal, `"`) {
		// An unterminated string runs to the end of the input, so more
		// input could still close it.
		msg = "unterminated string literal"
		incomplete = true
	}
	return &LexicalError{
		Message:    msg,
		Line:       tok.Line,
		Column:     tok.Column,
		Context:    p.sourceContext(tok.Line, tok.Column),
		Incomplete: incomplete,
	}
}

func describeToken(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	default:
		return fmt.Sprintf("%q", tok.Literal)
	}
}

// sourceContext renders the source lines around an error with a column
// pointer, the same layout the rest of the toolchain prints.
func (p *Parser) sourceContext(line, column int) string {
	if len(p.source) == 0 {
		return ""
	}

	var out strings.Builder

	start := line - 3
	if start < 1 {
		start = 1
	}
	end := line + 2
	if end > len(p.source) {
		end = len(p.source)
	}

	for i := start; i <= end; i++ {
		sourceLine := ""
		if i > 0 && i <= len(p.source) {
			sourceLine = p.source[i-1]
		}

		if i == line {
			fmt.Fprintf(&out, "  > %4d | %s\n", i, sourceLine)
			if column > 0 {
				out.WriteString(strings.Repeat(" ", column+8) + "^\n")
			}
		} else {
			fmt.Fprintf(&out, "    %4d | %s\n", i, sourceLine)
		}
	}

	return out.String()
}

func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}
