package parser

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/token"
)

// parseExpression is the Pratt engine: read a prefix parslet for the
// current token, then repeatedly fold in infix parslets whose precedence
// exceeds minPrec. Right-associative operators lower the recursive call's
// minimum precedence by one so an equal-precedence operator to the right
// binds first.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	prefix, ok := p.prefixFns[p.curTok.Kind]
	if !ok {
		p.noPrefixParseFnError()
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMICOLON) && minPrec < p.precedence(p.peekTok.Kind) {
		infix, ok := p.infixFns[p.peekTok.Kind]
		if !ok {
			break
		}
		p.next()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdent() ast.Expression {
	n := ast.NewName(p.curTok.Pos, p.curTok.Lexeme)
	return n
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := ast.NewLiteral(p.curTok.Pos, ast.LitInteger)
	lit.Int = p.curTok.IntVal
	return lit
}

func (p *Parser) parseRealLiteral() ast.Expression {
	lit := ast.NewLiteral(p.curTok.Pos, ast.LitReal)
	lit.Real = p.curTok.RealVal
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	lit := ast.NewLiteral(p.curTok.Pos, ast.LitString)
	lit.Str = p.curTok.Lexeme
	return lit
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	lit := ast.NewLiteral(p.curTok.Pos, ast.LitBoolean)
	lit.Bool = p.curIs(token.TRUE)
	return lit
}

func (p *Parser) parseEmptyLiteral() ast.Expression {
	return ast.NewLiteral(p.curTok.Pos, ast.LitEmpty)
}

func (p *Parser) parseThisExpression() ast.Expression {
	return ast.NewName(p.curTok.Pos, "this")
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	op := p.curTok
	p.next()
	operand := p.parseExpression(p.prefixPrecedenceFor(op.Kind))
	return ast.NewUnary(op.Pos, op.Kind, operand)
}

func (p *Parser) prefixPrecedenceFor(k token.Kind) int {
	if k == token.TILDE {
		return BITNOT
	}
	return PREFIX
}

func (p *Parser) parseTypeofExpression() ast.Expression {
	op := p.curTok
	p.next()
	// `typeof(x)` binds like a call: the parenthesized operand is complete,
	// so a following `.member` applies to the resulting type.
	var operand ast.Expression
	if p.curIs(token.LPAREN) {
		operand = p.parseGroupedExpression()
	} else {
		operand = p.parseExpression(PREFIX)
	}
	return ast.NewUnary(op.Pos, token.TYPEOF, operand)
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.next() // consume '('
	exp := p.parseExpression(LOWEST)
	p.expectPeek(token.RPAREN, "')'")
	return exp
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	op := p.curTok
	prec := p.precedence(op.Kind)
	p.next()
	// '^' (power) is right-associative; every other binary operator is left.
	rightMin := prec
	if op.Kind == token.CARET {
		rightMin--
	}
	right := p.parseExpression(rightMin)
	return ast.NewBinary(op.Pos, op.Kind, left, right)
}

func (p *Parser) parseRangeExpression(left ast.Expression) ast.Expression {
	op := p.curTok
	inclusive := op.Kind == token.DOTDOTEQ
	p.next()
	right := p.parseExpression(RANGE)
	return ast.NewRange(op.Pos, left, right, inclusive)
}

// parseAssignExpression turns `<lvalue> <op> <rhs>` into the matching
// AssignName/AssignField/AssignIndex node, rejecting non-lvalue left sides.
func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	op := p.curTok
	p.next()
	rhs := p.parseExpression(ASSIGN - 1) // right-associative
	switch lv := left.(type) {
	case *ast.Name:
		return ast.NewAssignName(op.Pos, lv.Value, op.Kind, rhs)
	case *ast.GetMember:
		return ast.NewAssignField(op.Pos, lv.Target, lv.Member, lv.Static, op.Kind, rhs)
	case *ast.AccessArray:
		return ast.NewAssignIndex(op.Pos, lv.Target, lv.Index, op.Kind, rhs)
	default:
		p.errorf(op.Pos, ErrInvalidLhs, "invalid assignment target")
		return rhs
	}
}

func (p *Parser) parseGetMember(left ast.Expression) ast.Expression {
	pos := p.curTok.Pos
	p.next() // consume '.'
	if !p.curIs(token.IDENT) {
		p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected member name after '.'")
		return left
	}
	return ast.NewGetMember(pos, left, p.curTok.Lexeme, false)
}

func (p *Parser) parseGetMemberStatic(left ast.Expression) ast.Expression {
	pos := p.curTok.Pos
	p.next() // consume '::'
	if !p.curIs(token.IDENT) {
		p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected identifier after '::'")
		return left
	}
	return ast.NewGetMember(pos, left, p.curTok.Lexeme, true)
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	pos := p.curTok.Pos
	p.next() // consume '['
	idx := p.parseExpression(LOWEST)
	p.expectPeek(token.RBRACK, "']'")
	return ast.NewAccessArray(pos, left, idx)
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	pos := p.curTok.Pos
	args := p.parseExpressionList(token.LPAREN, token.RPAREN)
	if len(args) > maxFunctionArgs {
		p.errorf(pos, ErrTooManyFunctionArgs, "function call has more than %d arguments", maxFunctionArgs)
	}
	return ast.NewInvokeFunction(pos, callee, args)
}

// parseExpressionList parses `open expr, expr, ... close`, with curTok
// positioned at open on entry and at close on return.
func (p *Parser) parseExpressionList(open, close token.Kind) []ast.Expression {
	var list []ast.Expression
	p.next() // consume open
	if p.curIs(close) {
		return list
	}
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.next()
		p.next()
		list = append(list, p.parseExpression(LOWEST))
	}
	p.expectPeek(close, close.String())
	return list
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	pos := p.curTok.Pos
	elems := p.parseExpressionList(token.LBRACK, token.RBRACK)
	return ast.NewArrayLiteral(pos, elems)
}

func (p *Parser) parseNewExpression() ast.Expression {
	pos := p.curTok.Pos
	p.next() // consume 'new'
	if !p.curIs(token.IDENT) {
		p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected class name after 'new'")
		return nil
	}
	className := p.curTok.Lexeme
	var args []ast.Expression
	if p.peekIs(token.LPAREN) {
		p.next()
		args = p.parseExpressionList(token.LPAREN, token.RPAREN)
	}
	var inits []ast.FieldInit
	if p.peekIs(token.LBRACE) {
		p.next()
		inits = p.parseFieldInits()
	}
	return ast.NewNewObject(pos, className, args, inits)
}

func (p *Parser) parseFieldInits() []ast.FieldInit {
	var inits []ast.FieldInit
	p.next() // consume '{'
	for !p.curIs(token.RBRACE) && !p.curIs(token.END) {
		if !p.curIs(token.DOT) {
			p.errorf(p.curTok.Pos, ErrExpected, "expected '.' before field initializer name")
			p.next()
			continue
		}
		pos := p.curTok.Pos
		p.next()
		if !p.curIs(token.IDENT) {
			p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected field name")
			break
		}
		name := p.curTok.Lexeme
		p.next()
		if !p.expectAndAdvance(token.ASSIGN, "'='") {
			break
		}
		val := p.parseExpression(LOWEST)
		inits = append(inits, ast.FieldInit{Name: name, Pos: pos, Expr: val})
		if p.peekIs(token.COMMA) {
			p.next()
		}
		p.next()
	}
	return inits
}

func (p *Parser) parseIfExpression() ast.Expression {
	pos := p.curTok.Pos
	p.next() // consume 'if'
	if !p.expectAndAdvance(token.LPAREN, "'('") {
		return nil
	}
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN, "')'") {
		return nil
	}
	p.next() // move onto the '{' opening the then-block
	then := p.parseBraceBlockAsExpression()
	var els ast.Expression
	if p.peekIs(token.ELSE) {
		p.next()
		p.next()
		if p.curIs(token.IF) {
			els = p.parseIfExpression()
		} else {
			els = p.parseBraceBlockAsExpression()
		}
	}
	return ast.NewIfThenElse(pos, cond, then, els)
}

// parseBraceBlockAsExpression parses a `{ ... }` block with curTok on
// entry, returning it as an Expression (Statements implements both).
func (p *Parser) parseBraceBlockAsExpression() ast.Expression {
	block := p.parseBlockStatement()
	if block == nil {
		return nil
	}
	return block.(*ast.Statements)
}

func (p *Parser) parseMatchExpression() ast.Expression {
	pos := p.curTok.Pos
	p.next() // consume 'match'
	subject := p.parseExpression(LOWEST)
	if !p.expectPeek(token.LBRACE, "'{'") {
		return nil
	}
	p.next() // move past '{' onto the first case (or '}')
	var cases []ast.MatchCase
	for !p.curIs(token.RBRACE) && !p.curIs(token.END) {
		if p.curIs(token.DEFAULT) {
			p.next()
			if !p.expectAndAdvance(token.COLON, "':'") {
				break
			}
			body := p.parseExpression(LOWEST)
			cases = append(cases, ast.MatchCase{Body: body, IsDefault: true})
		} else {
			expr := p.parseExpression(LOWEST)
			if !p.expectPeek(token.COLON, "':'") {
				break
			}
			p.next() // move past ':' onto the case body
			body := p.parseExpression(LOWEST)
			if fn, ok := expr.(*ast.AnonymousFunction); ok && len(fn.Params) == 1 {
				cases = append(cases, ast.MatchCase{Predicate: fn, Body: body})
			} else {
				cases = append(cases, ast.MatchCase{Value: expr, Body: body})
			}
		}
		if p.peekIs(token.COMMA) {
			p.next()
		}
		p.next()
	}
	if !p.curIs(token.RBRACE) {
		p.errorf(p.curTok.Pos, ErrExpected, "expected '}' to close match")
	}
	return ast.NewMatch(pos, subject, cases)
}

func (p *Parser) parseAnonymousFunction() ast.Expression {
	pos := p.curTok.Pos
	p.next() // consume 'fn'
	params := p.parseParamList()
	p.next() // move past ')' onto '=>' or '{'
	var body ast.Statement
	switch {
	case p.curIs(token.ARROW):
		p.next()
		expr := p.parseExpression(LOWEST)
		body = ast.NewExpressionStatement(expr.Pos(), expr, false)
	case p.curIs(token.LBRACE):
		body = p.parseBlockStatement()
	default:
		p.errorf(p.curTok.Pos, ErrExpected, "expected '=>' or '{' in anonymous function")
	}
	return ast.NewAnonymousFunction(pos, params, body)
}

// parseParamList parses `(a, b, c)` with curTok on the opening paren on
// entry, leaving curTok on the closing paren.
func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if !p.expect(token.LPAREN, "'('") {
		return params
	}
	p.next()
	if p.curIs(token.RPAREN) {
		return params
	}
	params = append(params, ast.Param{Name: p.curTok.Lexeme, Pos: p.curTok.Pos})
	for p.peekIs(token.COMMA) {
		p.next()
		p.next()
		params = append(params, ast.Param{Name: p.curTok.Lexeme, Pos: p.curTok.Pos})
	}
	p.next()
	if len(params) > maxFunctionArgs {
		p.errorf(params[0].Pos, ErrTooManyFunctionArgs, "function has more than %d parameters", maxFunctionArgs)
	}
	return params
}
