package parser

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/symtab"
	"github.com/vela-lang/vela/internal/token"
)

// parseClassDeclaration parses `class Name [: Base] { members }`. Members
// are fields, methods (including `new`/`class new` constructors), and
// nested class declarations; a leading `class` keyword on a member marks
// it static.
func (p *Parser) parseClassDeclaration() ast.Statement {
	pos := p.curTok.Pos
	p.next() // consume 'class'
	if !p.curIs(token.IDENT) {
		p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected class name")
		return nil
	}
	name := p.curTok.Lexeme
	p.scope.Declare(&symtab.Symbol{Name: name, Category: symtab.Class, Arity: -1})

	var baseName string
	if p.peekIs(token.COLON) {
		p.next()
		if !p.expectPeek(token.IDENT, "base class name") {
			return nil
		}
		baseName = p.curTok.Lexeme
	}
	if !p.expectPeek(token.LBRACE, "'{'") {
		return nil
	}
	p.next() // consume '{'

	outer := p.scope
	p.scope = outer.Child()
	defer func() { p.scope = outer }()

	var fields []ast.FieldDecl
	var methods []ast.MethodDecl
	var nested []*ast.ClassDeclaration

	for !p.curIs(token.RBRACE) && !p.curIs(token.END) {
		before := len(p.errors)
		static := false
		if p.curIs(token.CLASS) {
			if p.peekIs(token.IDENT) {
				if decl, ok := p.parseClassDeclaration().(*ast.ClassDeclaration); ok {
					nested = append(nested, decl)
				}
				p.next()
				continue
			}
			static = true
			p.next() // consume the static-modifier 'class' keyword
		}
		switch p.curTok.Kind {
		case token.FN:
			methods = append(methods, p.parseMethodDecl(static))
			p.next()
		case token.VAR, token.VAL:
			fields = append(fields, p.parseFieldDecl(static))
			p.next()
		default:
			p.errorf(p.curTok.Pos, ErrExpected, "expected field, method, or nested class in class body")
			if len(p.errors) == before {
				p.next()
			}
		}
		if len(p.errors)-before > maxErrorsPerBlock {
			p.synchronize()
		}
	}
	if !p.curIs(token.RBRACE) {
		p.errorf(p.curTok.Pos, ErrExpected, "expected '}' to close class %q", name)
	}
	return ast.NewClassDeclaration(pos, name, baseName, fields, methods, nested)
}

func (p *Parser) parseFieldDecl(static bool) ast.FieldDecl {
	isConst := p.curIs(token.VAL)
	p.next() // consume 'var'/'val'
	pos := p.curTok.Pos
	name := p.curTok.Lexeme
	var def ast.Expression
	if p.peekIs(token.ASSIGN) {
		p.next()
		p.next()
		def = p.parseExpression(LOWEST)
	}
	if p.peekIs(token.SEMICOLON) {
		p.next()
	}
	return ast.FieldDecl{Name: name, Pos: pos, Const: isConst, Static: static, Default: def}
}

func (p *Parser) parseMethodDecl(static bool) ast.MethodDecl {
	pos := p.curTok.Pos
	p.next() // consume 'fn'
	ctor := p.curIs(token.NEW)
	name := p.curTok.Lexeme
	p.next()
	params := p.parseParamList()
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
		p.errorf(p.curTok.Pos, ErrExpected, "expected '=>' or '{' in method %q", name)
	}

	return ast.MethodDecl{Name: name, Pos: pos, Params: params, Body: body, Static: static, Ctor: ctor}
}

// parseEnumDeclaration parses `enum Name { Ident [= int], ... }`; values
// auto-increment from 0 except where overridden by a literal Integer.
func (p *Parser) parseEnumDeclaration() ast.Statement {
	pos := p.curTok.Pos
	p.next() // consume 'enum'
	if !p.curIs(token.IDENT) {
		p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected enum name")
		return nil
	}
	name := p.curTok.Lexeme
	p.scope.Declare(&symtab.Symbol{Name: name, Category: symtab.Enum, Arity: -1})
	if !p.expectPeek(token.LBRACE, "'{'") {
		return nil
	}
	p.next() // consume '{'

	var members []ast.EnumMember
	next := int64(0)
	for !p.curIs(token.RBRACE) && !p.curIs(token.END) {
		if !p.curIs(token.IDENT) {
			p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected enum member name")
			p.next()
			continue
		}
		memberPos := p.curTok.Pos
		memberName := p.curTok.Lexeme
		value := next
		if p.peekIs(token.ASSIGN) {
			p.next()
			p.next()
			if p.curIs(token.INTEGER) {
				value = p.curTok.IntVal
			} else {
				p.errorf(p.curTok.Pos, ErrExpected, "expected integer constant for enum member %q", memberName)
			}
		}
		members = append(members, ast.EnumMember{Name: memberName, Value: value, Pos: memberPos})
		next = value + 1
		if p.peekIs(token.COMMA) {
			p.next()
		}
		p.next()
	}
	if !p.curIs(token.RBRACE) {
		p.errorf(p.curTok.Pos, ErrExpected, "expected '}' to close enum %q", name)
	}
	return ast.NewEnumDeclaration(pos, name, members)
}

// parseInterfaceDeclaration accepts `interface Name { ... }` syntactically
// and discards the body; the evaluator treats interfaces as a no-op.
func (p *Parser) parseInterfaceDeclaration() ast.Statement {
	pos := p.curTok.Pos
	p.next() // consume 'interface'
	if !p.curIs(token.IDENT) {
		p.errorf(p.curTok.Pos, ErrIdentifierExpected, "expected interface name")
		return nil
	}
	name := p.curTok.Lexeme
	p.scope.Declare(&symtab.Symbol{Name: name, Category: symtab.Class, Arity: -1})
	if p.peekIs(token.LBRACE) {
		p.next()
		p.next() // consume '{'
		depth := 1
		for depth > 0 && !p.curIs(token.END) {
			if p.curIs(token.LBRACE) {
				depth++
			} else if p.curIs(token.RBRACE) {
				depth--
				if depth == 0 {
					break
				}
			}
			p.next()
		}
	}
	return ast.NewInterfaceDeclaration(pos, name)
}
