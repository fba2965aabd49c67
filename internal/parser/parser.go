// Package parser implements Vela's Pratt parser: two parslet dictionaries
// keyed by token kind (prefix, infix) drive parseExpression, while a
// conventional recursive-descent layer handles statements and
// declarations. Errors are collected rather than raised; parsing
// continues after each one so a single source file can be diagnosed in
// one pass.
package parser

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	verrors "github.com/vela-lang/vela/internal/errors"
	"github.com/vela-lang/vela/internal/lexer"
	"github.com/vela-lang/vela/internal/symtab"
	"github.com/vela-lang/vela/internal/token"
)

// Precedence levels, named after the ladder they implement. Values mirror
// the relative ordering; gaps are left for levels that are only reachable
// through the corresponding prefix parslet.
const (
	LOWEST     = 0
	ASSIGN     = 2
	OR         = 70
	AND        = 80
	EQUALITY   = 90
	RANGE      = 95
	SUM        = 100
	PRODUCT    = 200
	PREFIX     = 300
	POWER      = 350
	BITOR      = 390
	BITAND     = 400
	BITNOT     = 500
	CALL       = 1200
	INDEX      = 1250
	ENUMVALUE  = 1300
)

const maxFunctionArgs = 63
const maxErrorsPerBlock = 10

var precedences = map[token.Kind]int{
	token.ASSIGN: ASSIGN, token.PLUS_EQ: ASSIGN, token.MINUS_EQ: ASSIGN,
	token.STAR_EQ: ASSIGN, token.SLASH_EQ: ASSIGN, token.PERCENT_EQ: ASSIGN,
	token.AMP_EQ: ASSIGN, token.PIPE_EQ: ASSIGN, token.CARET_EQ: ASSIGN,

	token.OR:  OR,
	token.AND: AND,

	token.EQ: EQUALITY, token.NOT_EQ: EQUALITY,
	token.LT: EQUALITY, token.LE: EQUALITY, token.GT: EQUALITY, token.GE: EQUALITY,

	token.DOTDOT: RANGE, token.DOTDOTEQ: RANGE,

	token.PLUS: SUM, token.MINUS: SUM,

	token.STAR: PRODUCT, token.SLASH: PRODUCT, token.PERCENT: PRODUCT,

	token.CARET: POWER,

	token.PIPE: BITOR,
	token.AMP:  BITAND,

	token.DOT: CALL, token.LPAREN: CALL, token.COLONCOLON: CALL,
	token.LBRACK: INDEX,
	token.COLON:  ENUMVALUE,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Error is a single collected parse diagnostic.
type Error struct {
	Message string
	Code    string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// Error codes, referenced by the evaluator/CLI for programmatic handling.
const (
	ErrUnexpectedToken     = "UnexpectedToken"
	ErrExpected            = "Expected"
	ErrIdentifierExpected  = "IdentifierExpected"
	ErrDuplicateDefinition = "DuplicateDefinition"
	ErrInvalidLhs          = "InvalidLhs"
	ErrBreakContinueNoLoop = "BreakContinueNoLoop"
	ErrTooManyFunctionArgs = "TooManyFunctionArgs"
	ErrNoPrefixParseFn     = "NoPrefixParseFn"
)

// Parser turns a token stream into an AST, collecting errors along the way.
type Parser struct {
	l *lexer.Lexer

	curTok  token.Token
	peekTok token.Token

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn

	errors []*Error

	scope     *symtab.Table
	loopDepth int
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, scope: symtab.New()}

	p.prefixFns = map[token.Kind]prefixParseFn{
		token.IDENT:    p.parseIdent,
		token.INTEGER:  p.parseIntegerLiteral,
		token.REAL:     p.parseRealLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBoolLiteral,
		token.FALSE:    p.parseBoolLiteral,
		token.EMPTY:    p.parseEmptyLiteral,
		token.MINUS:    p.parsePrefixExpression,
		token.NOT:      p.parsePrefixExpression,
		token.TILDE:    p.parsePrefixExpression,
		token.TYPEOF:   p.parseTypeofExpression,
		token.LPAREN:   p.parseGroupedExpression,
		token.LBRACK:   p.parseArrayLiteral,
		token.NEW:      p.parseNewExpression,
		token.THIS:     p.parseThisExpression,
		token.IF:       p.parseIfExpression,
		token.MATCH:    p.parseMatchExpression,
		token.FN:       p.parseAnonymousFunction,
	}

	p.infixFns = map[token.Kind]infixParseFn{
		token.PLUS: p.parseBinaryExpression, token.MINUS: p.parseBinaryExpression,
		token.STAR: p.parseBinaryExpression, token.SLASH: p.parseBinaryExpression,
		token.PERCENT: p.parseBinaryExpression, token.CARET: p.parseBinaryExpression,
		token.AMP: p.parseBinaryExpression, token.PIPE: p.parseBinaryExpression,
		token.EQ: p.parseBinaryExpression, token.NOT_EQ: p.parseBinaryExpression,
		token.LT: p.parseBinaryExpression, token.LE: p.parseBinaryExpression,
		token.GT: p.parseBinaryExpression, token.GE: p.parseBinaryExpression,
		token.AND: p.parseBinaryExpression, token.OR: p.parseBinaryExpression,

		token.DOTDOT: p.parseRangeExpression, token.DOTDOTEQ: p.parseRangeExpression,

		token.ASSIGN: p.parseAssignExpression, token.PLUS_EQ: p.parseAssignExpression,
		token.MINUS_EQ: p.parseAssignExpression, token.STAR_EQ: p.parseAssignExpression,
		token.SLASH_EQ: p.parseAssignExpression, token.PERCENT_EQ: p.parseAssignExpression,
		token.AMP_EQ: p.parseAssignExpression, token.PIPE_EQ: p.parseAssignExpression,
		token.CARET_EQ: p.parseAssignExpression,

		token.DOT:        p.parseGetMember,
		token.COLONCOLON: p.parseGetMemberStatic,
		token.LPAREN:     p.parseCallExpression,
		token.LBRACK:     p.parseIndexExpression,
	}

	p.next()
	p.next()
	return p
}

// Errors returns every diagnostic collected so far.
func (p *Parser) Errors() []*Error { return p.errors }

// SourceErrors renders every collected diagnostic as a verrors.SourceError,
// attaching source and file context for display.
func (p *Parser) SourceErrors(source, file string) []*verrors.SourceError {
	out := make([]*verrors.SourceError, len(p.errors))
	for i, e := range p.errors {
		out[i] = verrors.New(e.Pos, e.Code, e.Message, source, file)
	}
	return out
}

func (p *Parser) next() {
	p.curTok = p.peekTok
	p.peekTok = p.l.Next()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curTok.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peekTok.Kind == k }

func (p *Parser) precedence(k token.Kind) int {
	if prec, ok := precedences[k]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) expect(k token.Kind, what string) bool {
	if p.curIs(k) {
		return true
	}
	p.errorf(p.curTok.Pos, ErrExpected, "expected %s, got %s", what, p.curTok.Kind)
	return false
}

func (p *Parser) expectAndAdvance(k token.Kind, what string) bool {
	if !p.expect(k, what) {
		return false
	}
	p.next()
	return true
}

// expectPeek checks that the upcoming token matches k and, if so, advances
// so curTok becomes that token. Used after parsing a sub-expression, where
// the expected delimiter is still one token ahead.
func (p *Parser) expectPeek(k token.Kind, what string) bool {
	if p.peekIs(k) {
		p.next()
		return true
	}
	p.errorf(p.peekTok.Pos, ErrExpected, "expected %s, got %s", what, p.peekTok.Kind)
	return false
}

func (p *Parser) errorf(pos token.Position, code, format string, args ...any) {
	p.errors = append(p.errors, &Error{Message: fmt.Sprintf(format, args...), Code: code, Pos: pos})
}

func (p *Parser) noPrefixParseFnError() {
	p.errorf(p.curTok.Pos, ErrNoPrefixParseFn, "no prefix parse rule for %s", p.curTok.Kind)
}

// Parse reads the entire token stream and returns the resulting Program,
// along with every lexer and parser error collected.
func Parse(src string) (*ast.Program, []*Error, []string) {
	l := lexer.New(src)
	p := New(l)
	prog := p.ParseProgram()
	return prog, p.Errors(), l.Errors()
}

// ParseProgram parses a full source unit: a sequence of statements up to
// end-of-input. Every statement parser leaves curTok on its own last
// token; this loop always advances one token past that before parsing the
// next statement, which is what lets a nested block's closing brace be
// told apart from whatever encloses it.
func (p *Parser) ParseProgram() *ast.Program {
	var stmts []ast.Statement
	for !p.curIs(token.END) {
		before := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
			p.next()
		} else if len(p.errors) == before {
			// No progress was made and no error was recorded; force advance
			// to avoid an infinite loop on unhandled tokens.
			p.next()
		}
		if len(p.errors)-before > maxErrorsPerBlock {
			p.synchronize()
		}
	}
	return ast.NewProgram(stmts)
}

// tooManyErrorsInBlock is a crude per-call-site counter: more than
// maxErrorsPerBlock new errors recorded since `since` signals runaway
// cascading failures worth synchronizing past.
func (p *Parser) tooManyErrorsInBlock(since int) bool {
	return len(p.errors)-since > maxErrorsPerBlock
}

// synchronize skips tokens until a safe resumption point: a statement
// starter keyword, a block delimiter, or end of input.
func (p *Parser) synchronize() {
	for !p.curIs(token.END) {
		switch p.curTok.Kind {
		case token.SEMICOLON:
			p.next()
			return
		case token.VAR, token.VAL, token.FN, token.CLASS, token.ENUM, token.INTERFACE,
			token.IF, token.WHILE, token.FOR, token.FOREACH, token.REPEAT,
			token.RETURN, token.BREAK, token.CONTINUE, token.BREAKOUT, token.USE,
			token.RBRACE:
			return
		}
		p.next()
	}
}
