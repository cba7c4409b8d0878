/*
File   : lattice/parser/parser.go
*/

// Package parser implements a Pratt parser (top-down operator-precedence
// parsing) that turns a token stream into an AST. It performs no
// evaluation of any kind: every node it produces is inert data, handed
// to the evaluator package as the next stage in the one-way pipeline.
package parser

import (
	"strconv"

	"github.com/monkeylang/lattice/ast"
	"github.com/monkeylang/lattice/internal/gmlog"
	"github.com/monkeylang/lattice/lexer"
	"github.com/monkeylang/lattice/token"
)

type (
	prefixParseFn func() (ast.Expression, *Error)
	infixParseFn  func(ast.Expression) (ast.Expression, *Error)
)

// Parser holds a two-token lookahead window over the lexer's token stream
// plus the prefix/infix dispatch tables that drive precedence climbing.
type Parser struct {
	l lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	log *gmlog.Logger
}

// SetLogger overrides the default stderr logger, used by the REPL to route
// parse diagnostics through its own colorized writer.
func (p *Parser) SetLogger(l *gmlog.Logger) { p.log = l }

// logError emits a structured diagnostic at the point an Error is raised,
// then returns the same Error unchanged so call sites can wrap a single
// expression: `return nil, p.logError(&Error{...})`.
func (p *Parser) logError(err *Error) *Error {
	p.log.Errorf("%v", err)
	return err
}

// Parse tokenizes and parses source in one call, returning the resulting
// Program or the first error encountered. Unlike parsers that accumulate
// every error found and keep going, this parser aborts on the first
// failure: there is exactly one error value per parse, so continuing
// would have nowhere to put a second one.
func Parse(source string) (*ast.Program, *Error) {
	p := New(lexer.New(source))
	return p.ParseProgram()
}

// New constructs a Parser over an already-initialized Lexer and registers
// every prefix/infix parse function, establishing the grammar this parser
// accepts.
func New(l lexer.Lexer) *Parser {
	p := &Parser{l: l, log: gmlog.Default()}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.FUNCTION, p.parseFunctionLiteral)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.SLASH, p.parseInfixExpression)
	p.registerInfix(token.ASTERISK, p.parseInfixExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)

	// Prime the two-token lookahead.
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tt token.TokenType, fn prefixParseFn) { p.prefixParseFns[tt] = fn }
func (p *Parser) registerInfix(tt token.TokenType, fn infixParseFn)   { p.infixParseFns[tt] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(tt token.TokenType) bool  { return p.curToken.Type == tt }
func (p *Parser) peekTokenIs(tt token.TokenType) bool { return p.peekToken.Type == tt }

// expectPeek checks peekToken against expected; on a match it advances and
// returns true, otherwise it returns false with no side effect, leaving
// the caller to build the Error with full context.
func (p *Parser) expectPeek(expected token.TokenType) bool {
	if !p.peekTokenIs(expected) {
		return false
	}
	p.nextToken()
	return true
}

func (p *Parser) unexpectedPeek(expected token.TokenType) *Error {
	return p.logError(&Error{Kind: ErrUnexpectedToken, Token: p.peekToken, Expected: expected})
}

// ParseProgram parses statements until EOF. On any error it returns
// (nil, err), never a partially populated Program, so a caller never
// has to guard against a half-built tree.
func (p *Parser) ParseProgram() (*ast.Program, *Error) {
	program := &ast.Program{Statements: []ast.Statement{}}

	for !p.curTokenIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
		p.nextToken()
	}

	return program, nil
}

func (p *Parser) parseStatement() (ast.Statement, *Error) {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() (ast.Statement, *Error) {
	stmt := &ast.LetStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil, p.unexpectedPeek(token.IDENT)
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}

	if !p.expectPeek(token.ASSIGN) {
		return nil, p.unexpectedPeek(token.ASSIGN)
	}
	p.nextToken()

	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	stmt.Value = value

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, *Error) {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	p.nextToken()

	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	stmt.Value = value

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, *Error) {
	stmt := &ast.ExpressionStatement{Token: p.curToken}

	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	stmt.Expression = expr

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt, nil
}

func (p *Parser) parseExpression(precedence int) (ast.Expression, *Error) {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		return nil, p.logError(&Error{Kind: ErrNotAnExpression, Token: p.curToken})
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for !p.peekTokenIs(token.SEMICOLON) && precedence < precedenceOf(p.peekToken.Type) {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left, nil
		}
		p.nextToken()
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (p *Parser) parseIdentifier() (ast.Expression, *Error) {
	return &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}, nil
}

func (p *Parser) parseIntegerLiteral() (ast.Expression, *Error) {
	lit := &ast.IntegerLiteral{Token: p.curToken}

	value, convErr := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if convErr != nil {
		return nil, p.logError(&Error{Kind: ErrNotANumber, Token: p.curToken})
	}
	lit.Value = value

	return lit, nil
}

func (p *Parser) parseBooleanLiteral() (ast.Expression, *Error) {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}, nil
}

func (p *Parser) parsePrefixExpression() (ast.Expression, *Error) {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()

	right, err := p.parseExpression(PREFIX)
	if err != nil {
		return nil, err
	}
	expr.Right = right

	return expr, nil
}

func (p *Parser) parseInfixExpression(left ast.Expression) (ast.Expression, *Error) {
	expr := &ast.InfixExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}

	precedence := precedenceOf(p.curToken.Type)
	p.nextToken()

	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}
	expr.Right = right

	return expr, nil
}

func (p *Parser) parseGroupedExpression() (ast.Expression, *Error) {
	p.nextToken()

	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, p.unexpectedPeek(token.RPAREN)
	}

	return expr, nil
}

func (p *Parser) parseIfExpression() (ast.Expression, *Error) {
	expr := &ast.IfExpression{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil, p.unexpectedPeek(token.LPAREN)
	}
	p.nextToken()

	condition, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	expr.Condition = condition

	if !p.expectPeek(token.RPAREN) {
		return nil, p.unexpectedPeek(token.RPAREN)
	}
	if !p.expectPeek(token.LBRACE) {
		return nil, p.unexpectedPeek(token.LBRACE)
	}

	consequence, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	expr.Consequence = consequence

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil, p.unexpectedPeek(token.LBRACE)
		}
		alternative, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		expr.Alternative = alternative
	} else {
		// Missing else: structurally present but empty, so the evaluator
		// never has to special-case a nil alternative.
		expr.Alternative = &ast.BlockStatement{Statements: []ast.Statement{}}
	}

	return expr, nil
}

// parseBlockStatement consumes statements up to and including the
// matching `}`. Reaching EOF first is a parse error (ErrUnexpectedToken)
// rather than a silent truncation of the block.
func (p *Parser) parseBlockStatement() (*ast.BlockStatement, *Error) {
	block := &ast.BlockStatement{Token: p.curToken, Statements: []ast.Statement{}}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			return nil, p.logError(&Error{Kind: ErrUnexpectedToken, Token: p.curToken, Expected: token.RBRACE})
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
	}

	return block, nil
}

func (p *Parser) parseFunctionLiteral() (ast.Expression, *Error) {
	lit := &ast.FunctionLiteral{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil, p.unexpectedPeek(token.LPAREN)
	}

	params, err := p.parseFunctionParameters()
	if err != nil {
		return nil, err
	}
	lit.Parameters = params

	if !p.expectPeek(token.LBRACE) {
		return nil, p.unexpectedPeek(token.LBRACE)
	}

	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	lit.Body = body

	return lit, nil
}

func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, *Error) {
	identifiers := []*ast.Identifier{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return identifiers, nil
	}

	p.nextToken()
	identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal})

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal})
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, p.unexpectedPeek(token.RPAREN)
	}

	return identifiers, nil
}

func (p *Parser) parseCallExpression(function ast.Expression) (ast.Expression, *Error) {
	expr := &ast.CallExpression{Token: p.curToken, Function: function}

	args, err := p.parseCallArguments()
	if err != nil {
		return nil, err
	}
	expr.Arguments = args

	return expr, nil
}

func (p *Parser) parseCallArguments() ([]ast.Expression, *Error) {
	args := []ast.Expression{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args, nil
	}

	p.nextToken()
	arg, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	args = append(args, arg)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		arg, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, p.unexpectedPeek(token.RPAREN)
	}

	return args, nil
}
