package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/token"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs, lexErrs := Parse(src)
	require.Empty(t, lexErrs)
	require.Empty(t, errs)
	return prog
}

func TestParseVarDeclaration(t *testing.T) {
	prog := parseOK(t, `var x = 1, y;`)
	require.Len(t, prog.Statements, 1)
	v := prog.Statements[0].(*ast.VarVal)
	assert.False(t, v.Const)
	require.Len(t, v.Declarators, 2)
	assert.Equal(t, "x", v.Declarators[0].Name)
	assert.NotNil(t, v.Declarators[0].Init)
	assert.Equal(t, "y", v.Declarators[1].Name)
	assert.Nil(t, v.Declarators[1].Init)
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parseOK(t, `1 + 2 * 3;`)
	es := prog.Statements[0].(*ast.ExpressionStatement)
	bin := es.Expression.(*ast.Binary)
	assert.Equal(t, token.PLUS, bin.Operator)
	_, ok := bin.Left.(*ast.Literal)
	require.True(t, ok)
	rhs := bin.Right.(*ast.Binary)
	assert.Equal(t, token.STAR, rhs.Operator)
}

func TestParseRepeatWithoutCount(t *testing.T) {
	prog := parseOK(t, `repeat { break; }`)
	r := prog.Statements[0].(*ast.Repeat)
	assert.Nil(t, r.Count)
}

func TestParseRepeatWithCount(t *testing.T) {
	prog := parseOK(t, `repeat 3 { break; }`)
	r := prog.Statements[0].(*ast.Repeat)
	require.NotNil(t, r.Count)
}

func TestParseForEach(t *testing.T) {
	prog := parseOK(t, `foreach (item in things) { use item; }`)
	fe := prog.Statements[0].(*ast.ForEach)
	assert.Equal(t, "item", fe.Name)
	_, ok := fe.Collection.(*ast.Name)
	assert.True(t, ok)
}

func TestParseClassForward(t *testing.T) {
	prog := parseOK(t, `
		class Animal {
			var name;
			fn Speak() { return "..."; }
		}
	`)
	c := prog.Statements[0].(*ast.ClassDeclaration)
	assert.Equal(t, "Animal", c.Name)
	require.Len(t, c.Fields, 1)
	assert.Equal(t, "name", c.Fields[0].Name)
	require.Len(t, c.Methods, 1)
	assert.Equal(t, "Speak", c.Methods[0].Name)
}

func TestParseRangeInclusiveAndExclusive(t *testing.T) {
	prog := parseOK(t, `1..5;`)
	r := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.Range)
	assert.False(t, r.Inclusive)

	prog = parseOK(t, `1..=5;`)
	r = prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.Range)
	assert.True(t, r.Inclusive)
}

func TestParseStaticMemberAccess(t *testing.T) {
	prog := parseOK(t, `Color::Red;`)
	g := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.GetMember)
	assert.True(t, g.Static)
	assert.Equal(t, "Red", g.Member)
}

func TestParseMatchWithPredicateArm(t *testing.T) {
	prog := parseOK(t, `
		match n {
			fn (x) => x > 0 : "pos",
			default: "other"
		};
	`)
	m := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.Match)
	require.Len(t, m.Cases, 2)
	_, ok := m.Cases[0].Predicate.(*ast.AnonymousFunction)
	assert.True(t, ok)
	assert.False(t, m.Cases[0].IsDefault)
	assert.True(t, m.Cases[1].IsDefault)
}

func TestParseAnonymousFunctionArrowBody(t *testing.T) {
	prog := parseOK(t, `var f = fn (x) => x + 1;`)
	v := prog.Statements[0].(*ast.VarVal)
	fn := v.Declarators[0].Init.(*ast.AnonymousFunction)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "x", fn.Params[0].Name)
}

func TestParseNewWithFieldInits(t *testing.T) {
	prog := parseOK(t, `new Point(1, 2) { .label = "origin" };`)
	n := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.NewObject)
	assert.Equal(t, "Point", n.ClassName)
	require.Len(t, n.Args, 2)
	require.Len(t, n.Inits, 1)
	assert.Equal(t, "label", n.Inits[0].Name)
}

func TestParseArrayLiteral(t *testing.T) {
	prog := parseOK(t, `[1, 2, 3];`)
	a := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.ArrayLiteral)
	assert.Len(t, a.Elements, 3)
}

func TestParseUnknownTokenProducesError(t *testing.T) {
	_, errs, _ := Parse(`var x = ;`)
	assert.NotEmpty(t, errs)
}

func TestParseMissingClosingParenProducesError(t *testing.T) {
	_, errs, _ := Parse(`foo(1, 2;`)
	assert.NotEmpty(t, errs)
}

func TestParseEnumWithExplicitValues(t *testing.T) {
	prog := parseOK(t, `enum Color { Red, Green = 2, Blue }`)
	e := prog.Statements[0].(*ast.EnumDeclaration)
	require.Len(t, e.Members, 3)
	assert.EqualValues(t, 0, e.Members[0].Value)
	assert.EqualValues(t, 2, e.Members[1].Value)
	assert.EqualValues(t, 3, e.Members[2].Value)
}

func TestParseForClassic(t *testing.T) {
	prog := parseOK(t, `for (var i = 0; i < 10; i = i + 1) { break; }`)
	f := prog.Statements[0].(*ast.For)
	require.NotNil(t, f.Init)
	require.NotNil(t, f.Cond)
	require.NotNil(t, f.Inc)
}
