// Package ast defines Vela's abstract syntax tree: a strict, immutable tree
// of expression and statement nodes. Every node owns its children and
// carries a non-owning parent back-reference established at construction.
package ast

import (
	"github.com/vela-lang/vela/internal/symtab"
	"github.com/vela-lang/vela/internal/token"
)

// Kind tags every concrete node type in the closed AST node set.
type Kind int

const (
	KLiteral Kind = iota
	KName
	KUnary
	KBinary
	KAssignName
	KAssignField
	KAssignIndex
	KGetMember
	KAccessArray
	KInvokeFunction
	KAnonymousFunction
	KNewObject
	KRange
	KArrayLiteral
	KIfThenElse
	KMatch

	KExpressionStatement
	KStatements
	KVarVal
	KWhile
	KRepeat
	KFor
	KForEach
	KReturn
	KBreakOrContinue
	KFunctionDeclaration
	KClassDeclaration
	KEnumDeclaration
	KInterfaceDeclaration
	KUseStatement
)

// Node is the base interface every AST node satisfies.
type Node interface {
	Kind() Kind
	Pos() token.Position
	Parent() Node
	setParent(Node)
}

// Expression is a Node that produces a Value when evaluated.
type Expression interface {
	Node
	expr()
}

// Statement is a Node that performs an action.
type Statement interface {
	Node
	stmt()
}

// base is embedded by every concrete node; it stores position, the
// non-owning parent link, and (for blocks/declarations) the symbol-table
// frame the parser attached.
type base struct {
	pos    token.Position
	parent Node
	scope  *symtab.Table
}

func (b *base) Pos() token.Position { return b.pos }
func (b *base) Parent() Node        { return b.parent }
func (b *base) setParent(p Node)    { b.parent = p }

// Scope returns the symbol-table frame attached to this node, or nil.
func (b *base) Scope() *symtab.Table { return b.scope }

// SetScope attaches a symbol-table frame, used by the parser for blocks
// and declarations.
func (b *base) SetScope(t *symtab.Table) { b.scope = t }

// Attach establishes the parent back-reference from child to parent. The
// parser calls this immediately after constructing every composite node so
// that every child's Parent() is always valid once the node escapes the
// parser.
func Attach(parent Node, children ...Node) {
	for _, c := range children {
		if c != nil {
			c.setParent(parent)
		}
	}
}

// Param is a value-typed record describing one function/method parameter.
type Param struct {
	Name string
	Pos  token.Position
}

// FieldInit is a value-typed record for a `{ .field = expr, ... }`
// object-initializer entry attached to NewObject.
type FieldInit struct {
	Name string
	Pos  token.Position
	Expr Expression
}

// MatchCase is a value-typed record for one arm of a Match expression.
// Either Predicate (an AnonymousFunction of arity 1) or Value is set,
// never both; IsDefault marks the trailing `default:` arm.
type MatchCase struct {
	Value     Expression
	Predicate Expression
	Body      Expression
	IsDefault bool
}

// Program is the root of a parsed compilation unit.
type Program struct {
	base
	Statements []Statement
}

func NewProgram(stmts []Statement) *Program {
	p := &Program{Statements: stmts}
	for _, s := range stmts {
		Attach(p, s)
	}
	return p
}

func (p *Program) Kind() Kind { return KStatements }
