package parser

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/symtab"
	"github.com/vela-lang/vela/internal/token"
)

// parseStatement dispatches on the current token's kind to the matching
// statement or declaration parser. Returns nil (with an error recorded)
// when no statement starts at curTok.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Kind {
	case token.VAR, token.VAL:
		return p.parseVarVal()
	case token.FN:
		return p.parseFunctionDeclaration()
	case token.CLASS:
		return p.parseClassDeclaration()
	case token.ENUM:
		return p.parseEnumDeclaration()
	case token.INTERFACE:
		return p.parseInterfaceDeclaration()
	case token.USE:
		return p.parseUseStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.REPEAT:
		return p.parseRepeatStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.FOREACH:
		return p.parseForEachStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakOrContinue(ast.KBreak)
	case token.CONTINUE:
		return p.parseBreakOrContinue(ast.KContinue)
	case token.BREAKOUT:
		return p.parseBreakOrContinue(ast.KBreakout)
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMICOLON:
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

// parseBlockStatement parses `{ stmt... }`, with curTok on the opening
// brace on entry; it pushes a child symbol frame for the duration of the
// block and pops it on return, leaving curTok on the closing brace.
func (p *Parser) parseBlockStatement() ast.Statement {
	pos := p.curTok.Pos
	p.next() // consume '{'

	outer := p.scope
	p.scope = outer.Child()
	defer func() { p.scope = outer }()

	var items []ast.Statement
	for !p.curIs(token.RBRACE) && !p.curIs(token.END) {
		before := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			items = append(items, stmt)
			p.next()
		} else if len(p.errors) == before {
			p.next()
		}
		if len(p.errors)-before > maxErrorsPerBlock {
			p.synchronize()
		}
	}
	if !p.curIs(token.RBRACE) {
		p.errorf(p.curTok.Pos, ErrExpected, "expected '}' to close block")
	}
	return ast.NewStatements(pos, items)
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.curTok.Pos
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		p.next()
		return nil
	}
	semi := false
	if p.peekIs(token.SEMICOLON) {
		p.next()
		semi = true
	}
	return ast.NewExpressionStatement(pos, expr, semi)
}

// parseVarVal parses `var a = 1, b;` or `val a = 1;`.
func (p *Parser) parseVarVal() ast.Statement {
	pos := p.curTok.Pos
	isConst := p.curIs(token.VAL)
	p.next() // consume 'var'/'val'

	var decls []ast.Declarator
	for {
		if !p.curIs(token.IDENT) {
			p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected identifier in declaration")
			break
		}
		name := p.curTok.Lexeme
		namePos := p.curTok.Pos
		if p.scope.HasLocal(name) {
			p.errorf(namePos, ErrDuplicateDefinition, "%q is already declared in this scope", name)
		}

		var init ast.Expression
		if p.peekIs(token.ASSIGN) {
			p.next()
			p.next()
			init = p.parseExpression(LOWEST)
		} else if isConst {
			p.errorf(namePos, ErrExpected, "val %q requires an initializer", name)
		}
		decls = append(decls, ast.Declarator{Name: name, Pos: namePos, Init: init})
		p.scope.Declare(&symtab.Symbol{Name: name, Category: symtab.Variable})

		if !p.peekIs(token.COMMA) {
			break
		}
		p.next()
		p.next()
	}
	if p.peekIs(token.SEMICOLON) {
		p.next()
	}
	return ast.NewVarVal(pos, isConst, decls)
}

func (p *Parser) parseUseStatement() ast.Statement {
	pos := p.curTok.Pos
	p.next() // consume 'use'
	if !p.curIs(token.IDENT) {
		p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected class name after 'use'")
		return nil
	}
	name := p.curTok.Lexeme
	if p.peekIs(token.SEMICOLON) {
		p.next()
	}
	return ast.NewUseStatement(pos, name)
}

func (p *Parser) parseWhileStatement() ast.Statement {
	pos := p.curTok.Pos
	p.next() // consume 'while'
	if !p.expectAndAdvance(token.LPAREN, "'('") {
		return nil
	}
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN, "')'") {
		return nil
	}
	p.next()
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	return ast.NewWhile(pos, cond, body)
}

func (p *Parser) parseRepeatStatement() ast.Statement {
	pos := p.curTok.Pos
	p.next() // consume 'repeat'
	var count ast.Expression
	if !p.curIs(token.LBRACE) {
		count = p.parseExpression(LOWEST)
		p.next()
	}
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	return ast.NewRepeat(pos, count, body)
}

func (p *Parser) parseForStatement() ast.Statement {
	pos := p.curTok.Pos
	p.next() // consume 'for'
	if !p.expectAndAdvance(token.LPAREN, "'('") {
		return nil
	}

	outer := p.scope
	p.scope = outer.Child()
	defer func() { p.scope = outer }()

	var init ast.Statement
	if !p.curIs(token.SEMICOLON) {
		init = p.parseSimpleStatement()
		p.next() // move past the clause's last token onto ';'
	}
	if !p.curIs(token.SEMICOLON) {
		p.errorf(p.curTok.Pos, ErrExpected, "expected ';' after for-init")
	} else {
		p.next()
	}

	var cond ast.Expression
	if !p.curIs(token.SEMICOLON) {
		cond = p.parseExpression(LOWEST)
		p.next() // move past the condition's last token onto ';'
	}
	if !p.curIs(token.SEMICOLON) {
		p.errorf(p.curTok.Pos, ErrExpected, "expected ';' after for-condition")
	} else {
		p.next()
	}

	var inc ast.Statement
	if !p.curIs(token.RPAREN) {
		inc = p.parseSimpleStatement()
		p.next() // move past the clause's last token onto ')'
	}
	if !p.expectAndAdvance(token.RPAREN, "')'") {
		return nil
	}

	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	return ast.NewFor(pos, init, cond, inc, body)
}

// parseSimpleStatement parses a var-declaration or bare expression used in
// a for-loop clause, without consuming a trailing ';'.
func (p *Parser) parseSimpleStatement() ast.Statement {
	if p.curIs(token.VAR) || p.curIs(token.VAL) {
		pos := p.curTok.Pos
		isConst := p.curIs(token.VAL)
		p.next()
		name := p.curTok.Lexeme
		namePos := p.curTok.Pos
		var init ast.Expression
		if p.peekIs(token.ASSIGN) {
			p.next()
			p.next()
			init = p.parseExpression(LOWEST)
		}
		p.scope.Declare(&symtab.Symbol{Name: name, Category: symtab.Variable})
		return ast.NewVarVal(pos, isConst, []ast.Declarator{{Name: name, Pos: namePos, Init: init}})
	}
	pos := p.curTok.Pos
	expr := p.parseExpression(LOWEST)
	return ast.NewExpressionStatement(pos, expr, false)
}

func (p *Parser) parseForEachStatement() ast.Statement {
	pos := p.curTok.Pos
	p.next() // consume 'foreach'
	if !p.expectAndAdvance(token.LPAREN, "'('") {
		return nil
	}
	if !p.curIs(token.IDENT) {
		p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected identifier after 'foreach('")
		return nil
	}
	name := p.curTok.Lexeme
	if !p.expectPeek(token.IN, "'in'") {
		return nil
	}
	p.next()
	collection := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN, "')'") {
		return nil
	}
	p.next()
	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	return ast.NewForEach(pos, name, collection, body)
}

func (p *Parser) parseReturnStatement() ast.Statement {
	pos := p.curTok.Pos
	p.next() // consume 'return'
	var val ast.Expression
	if !p.curIs(token.SEMICOLON) {
		val = p.parseExpression(LOWEST)
	}
	if p.peekIs(token.SEMICOLON) {
		p.next()
	}
	return ast.NewReturn(pos, val)
}

func (p *Parser) parseBreakOrContinue(which ast.BreakKind) ast.Statement {
	pos := p.curTok.Pos
	if p.loopDepth == 0 {
		p.errorf(pos, ErrBreakContinueNoLoop, "%s outside of any loop", p.curTok.Kind)
	}
	if p.peekIs(token.SEMICOLON) {
		p.next()
	}
	return ast.NewBreakOrContinue(pos, which)
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	pos := p.curTok.Pos
	p.next() // consume 'fn'
	if !p.curIs(token.IDENT) {
		p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected function name after 'fn'")
		return nil
	}
	name := p.curTok.Lexeme
	namePos := p.curTok.Pos
	p.next()
	params := p.parseParamList()
	if !p.scope.Declare(&symtab.Symbol{Name: name, Category: symtab.Function, Arity: len(params)}) {
		p.errorf(namePos, ErrDuplicateDefinition, "%q is already declared with %d parameters in this scope", name, len(params))
	}
	p.next() // move past ')' onto '=>' or '{'

	var body ast.Statement
	switch {
	case p.curIs(token.ARROW):
		p.next()
		expr := p.parseExpression(LOWEST)
		if p.peekIs(token.SEMICOLON) {
			p.next()
		}
		body = ast.NewExpressionStatement(expr.Pos(), expr, true)
	case p.curIs(token.LBRACE):
		body = p.parseBlockStatement()
	default:
		p.errorf(p.curTok.Pos, ErrExpected, "expected '=>' or '{' in function declaration")
	}
	return ast.NewFunctionDeclaration(pos, name, params, body)
}
