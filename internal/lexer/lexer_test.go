package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vela-lang/vela/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var x = 5;
	x += 10;`

	tests := []struct {
		kind   token.Kind
		lexeme string
	}{
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INTEGER, "5"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "x"},
		{token.PLUS_EQ, "+="},
		{token.INTEGER, "10"},
		{token.SEMICOLON, ";"},
		{token.END, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		assert.Equalf(t, tt.kind, tok.Kind, "token %d", i)
		assert.Equalf(t, tt.lexeme, tok.Lexeme, "token %d", i)
	}
}

func TestKeywords(t *testing.T) {
	input := "if else fn var val const return while for foreach in repeat break continue breakout class enum struct interface new this match default and or not use true false typeof empty"
	expected := []token.Kind{
		token.IF, token.ELSE, token.FN, token.VAR, token.VAL, token.CONST, token.RETURN,
		token.WHILE, token.FOR, token.FOREACH, token.IN, token.REPEAT, token.BREAK,
		token.CONTINUE, token.BREAKOUT, token.CLASS, token.ENUM, token.STRUCT,
		token.INTERFACE, token.NEW, token.THIS, token.MATCH, token.DEFAULT, token.AND,
		token.OR, token.NOT, token.USE, token.TRUE, token.FALSE, token.TYPEOF, token.EMPTY,
	}
	l := New(input)
	for i, want := range expected {
		tok := l.Next()
		assert.Equalf(t, want, tok.Kind, "keyword %d (%s)", i, tok.Lexeme)
	}
}

func TestNumberBases(t *testing.T) {
	l := New("0xFF 0b1010 0o17 123 1.5 2.5e3")
	tok := l.Next()
	assert.Equal(t, token.INTEGER, tok.Kind)
	assert.EqualValues(t, 255, tok.IntVal)

	tok = l.Next()
	assert.Equal(t, token.INTEGER, tok.Kind)
	assert.EqualValues(t, 10, tok.IntVal)

	tok = l.Next()
	assert.Equal(t, token.INTEGER, tok.Kind)
	assert.EqualValues(t, 15, tok.IntVal)

	tok = l.Next()
	assert.Equal(t, token.INTEGER, tok.Kind)
	assert.EqualValues(t, 123, tok.IntVal)

	tok = l.Next()
	assert.Equal(t, token.REAL, tok.Kind)
	assert.InDelta(t, 1.5, tok.RealVal, 1e-9)

	tok = l.Next()
	assert.Equal(t, token.REAL, tok.Kind)
	assert.InDelta(t, 2500.0, tok.RealVal, 1e-9)
}

func TestStrings(t *testing.T) {
	l := New(`"hello\nworld" @"raw\nstring"`)
	tok := l.Next()
	assert.Equal(t, token.STRING, tok.Kind)
	assert.Equal(t, "hello\nworld", tok.Lexeme)

	tok = l.Next()
	assert.Equal(t, token.STRING, tok.Kind)
	assert.Equal(t, `raw\nstring`, tok.Lexeme)
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	tok := l.Next()
	assert.Equal(t, token.ERROR, tok.Kind)
	assert.NotEmpty(t, l.Errors())
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("a b")
	first := l.Peek()
	second := l.Peek()
	assert.Equal(t, first, second)
	consumed := l.Next()
	assert.Equal(t, first, consumed)
	next := l.Next()
	assert.Equal(t, "b", next.Lexeme)
}

func TestMetaCommand(t *testing.T) {
	l := New("$loadfile foo.vl")
	tok := l.Next()
	assert.Equal(t, token.META, tok.Kind)
	assert.Equal(t, "$loadfile", tok.Lexeme)
}

func TestCommentsAreSkipped(t *testing.T) {
	l := New("1 // a comment\n2 /* block */ 3")
	for _, want := range []int64{1, 2, 3} {
		tok := l.Next()
		assert.Equal(t, token.INTEGER, tok.Kind)
		assert.EqualValues(t, want, tok.IntVal)
	}
}
