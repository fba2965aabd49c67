package ast

import "github.com/vela-lang/vela/internal/token"

// LiteralKind distinguishes which primitive a Literal node carries.
type LiteralKind int

const (
	LitInteger LiteralKind = iota
	LitReal
	LitString
	LitBoolean
	LitEmpty
)

// Literal is a constant value baked into the source: an integer, real,
// string, boolean, or the `empty` literal.
type Literal struct {
	base
	LitKind LiteralKind
	Int     int64
	Real    float64
	Str     string
	Bool    bool
}

func NewLiteral(pos token.Position, kind LiteralKind) *Literal {
	return &Literal{base: base{pos: pos}, LitKind: kind}
}

func (*Literal) Kind() Kind { return KLiteral }
func (*Literal) expr()      {}

// Name is a bare identifier reference, resolved against the scope chain at
// evaluation time.
type Name struct {
	base
	Value string
}

func NewName(pos token.Position, value string) *Name {
	return &Name{base: base{pos: pos}, Value: value}
}

func (*Name) Kind() Kind { return KName }
func (*Name) expr()      {}

// Unary is a prefix operator application: `-x`, `not x`, `~x`, `typeof x`.
type Unary struct {
	base
	Operator token.Kind
	Operand  Expression
}

func NewUnary(pos token.Position, op token.Kind, operand Expression) *Unary {
	u := &Unary{base: base{pos: pos}, Operator: op, Operand: operand}
	Attach(u, operand)
	return u
}

func (*Unary) Kind() Kind { return KUnary }
func (*Unary) expr()      {}

// Binary is an infix operator application.
type Binary struct {
	base
	Operator token.Kind
	Left     Expression
	Right    Expression
}

func NewBinary(pos token.Position, op token.Kind, left, right Expression) *Binary {
	b := &Binary{base: base{pos: pos}, Operator: op, Left: left, Right: right}
	Attach(b, left, right)
	return b
}

func (*Binary) Kind() Kind { return KBinary }
func (*Binary) expr()      {}

// AssignName assigns (optionally via a compound operator) to a bare name.
type AssignName struct {
	base
	Name     string
	Operator token.Kind // token.ASSIGN for plain `=`, else the compound op
	Value    Expression
}

func NewAssignName(pos token.Position, name string, op token.Kind, value Expression) *AssignName {
	a := &AssignName{base: base{pos: pos}, Name: name, Operator: op, Value: value}
	Attach(a, value)
	return a
}

func (*AssignName) Kind() Kind { return KAssignName }
func (*AssignName) expr()      {}

// AssignField assigns to `target.field` (or `target::field` for static).
type AssignField struct {
	base
	Target   Expression
	Field    string
	Static   bool
	Operator token.Kind
	Value    Expression
}

func NewAssignField(pos token.Position, target Expression, field string, static bool, op token.Kind, value Expression) *AssignField {
	a := &AssignField{base: base{pos: pos}, Target: target, Field: field, Static: static, Operator: op, Value: value}
	Attach(a, target, value)
	return a
}

func (*AssignField) Kind() Kind { return KAssignField }
func (*AssignField) expr()      {}

// AssignIndex assigns to `target[index]`.
type AssignIndex struct {
	base
	Target   Expression
	Index    Expression
	Operator token.Kind
	Value    Expression
}

func NewAssignIndex(pos token.Position, target, index Expression, op token.Kind, value Expression) *AssignIndex {
	a := &AssignIndex{base: base{pos: pos}, Target: target, Index: index, Operator: op, Value: value}
	Attach(a, target, index, value)
	return a
}

func (*AssignIndex) Kind() Kind { return KAssignIndex }
func (*AssignIndex) expr()      {}

// GetMember is `target.member` or `target::member` (Static=true for `::`).
type GetMember struct {
	base
	Target Expression
	Member string
	Static bool
}

func NewGetMember(pos token.Position, target Expression, member string, static bool) *GetMember {
	g := &GetMember{base: base{pos: pos}, Target: target, Member: member, Static: static}
	Attach(g, target)
	return g
}

func (*GetMember) Kind() Kind { return KGetMember }
func (*GetMember) expr()      {}

// AccessArray is `target[index]` in expression (read) position.
type AccessArray struct {
	base
	Target Expression
	Index  Expression
}

func NewAccessArray(pos token.Position, target, index Expression) *AccessArray {
	a := &AccessArray{base: base{pos: pos}, Target: target, Index: index}
	Attach(a, target, index)
	return a
}

func (*AccessArray) Kind() Kind { return KAccessArray }
func (*AccessArray) expr()      {}

// InvokeFunction is a call expression `callee(args...)`.
type InvokeFunction struct {
	base
	Callee Expression
	Args   []Expression
}

func NewInvokeFunction(pos token.Position, callee Expression, args []Expression) *InvokeFunction {
	i := &InvokeFunction{base: base{pos: pos}, Callee: callee, Args: args}
	Attach(i, callee)
	for _, a := range args {
		Attach(i, a)
	}
	return i
}

func (*InvokeFunction) Kind() Kind { return KInvokeFunction }
func (*InvokeFunction) expr()      {}

// AnonymousFunction is a first-class `fn(params) => expr` or
// `fn(params) { ... }` literal.
type AnonymousFunction struct {
	base
	Params []Param
	Body   Statement // *Statements for a block body, an ExpressionStatement-wrapped expr for `=> expr`
}

func NewAnonymousFunction(pos token.Position, params []Param, body Statement) *AnonymousFunction {
	a := &AnonymousFunction{base: base{pos: pos}, Params: params, Body: body}
	Attach(a, body)
	return a
}

func (*AnonymousFunction) Kind() Kind { return KAnonymousFunction }
func (*AnonymousFunction) expr()      {}

// NewObject is `new ClassName(args) { .field = expr, ... }`.
type NewObject struct {
	base
	ClassName string
	Args      []Expression
	Inits     []FieldInit
}

func NewNewObject(pos token.Position, className string, args []Expression, inits []FieldInit) *NewObject {
	n := &NewObject{base: base{pos: pos}, ClassName: className, Args: args, Inits: inits}
	for _, a := range args {
		Attach(n, a)
	}
	for _, in := range inits {
		Attach(n, in.Expr)
	}
	return n
}

func (*NewObject) Kind() Kind { return KNewObject }
func (*NewObject) expr()      {}

// Range is `start..end` or `start..=end` (inclusive).
type Range struct {
	base
	Start     Expression
	End       Expression
	Inclusive bool
}

func NewRange(pos token.Position, start, end Expression, inclusive bool) *Range {
	r := &Range{base: base{pos: pos}, Start: start, End: end, Inclusive: inclusive}
	Attach(r, start, end)
	return r
}

func (*Range) Kind() Kind { return KRange }
func (*Range) expr()      {}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	base
	Elements []Expression
}

func NewArrayLiteral(pos token.Position, elems []Expression) *ArrayLiteral {
	a := &ArrayLiteral{base: base{pos: pos}, Elements: elems}
	for _, e := range elems {
		Attach(a, e)
	}
	return a
}

func (*ArrayLiteral) Kind() Kind { return KArrayLiteral }
func (*ArrayLiteral) expr()      {}

// IfThenElse is usable in expression position (as well as being the
// expression wrapped by an if-statement rendering in statement position).
type IfThenElse struct {
	base
	Condition Expression
	Then      Expression
	Else      Expression // nil when there is no else branch
}

func NewIfThenElse(pos token.Position, cond, then, els Expression) *IfThenElse {
	n := &IfThenElse{base: base{pos: pos}, Condition: cond, Then: then, Else: els}
	Attach(n, cond, then, els)
	return n
}

func (*IfThenElse) Kind() Kind { return KIfThenElse }
func (*IfThenElse) expr()      {}

// Match is a `match subject { case1 : body1, ... default: bodyN }` expression.
type Match struct {
	base
	Subject Expression
	Cases   []MatchCase
}

func NewMatch(pos token.Position, subject Expression, cases []MatchCase) *Match {
	m := &Match{base: base{pos: pos}, Subject: subject, Cases: cases}
	Attach(m, subject)
	for _, c := range cases {
		if c.Value != nil {
			Attach(m, c.Value)
		}
		if c.Predicate != nil {
			Attach(m, c.Predicate)
		}
		Attach(m, c.Body)
	}
	return m
}

func (*Match) Kind() Kind { return KMatch }
func (*Match) expr()      {}
