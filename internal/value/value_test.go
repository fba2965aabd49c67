package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "Integer", KInteger.String())
	assert.Equal(t, "?", Kind(99).String())
}

func TestConstructorHelpers(t *testing.T) {
	assert.Equal(t, Integer{Value: 5}, Int(5))
	assert.Equal(t, Real{Value: 1.5}, Flt(1.5))
	assert.Equal(t, Boolean{Value: true}, Bool(true))
	assert.Equal(t, String{Value: "hi"}, Str("hi"))
}

func TestToIntegerTruncatesTowardZero(t *testing.T) {
	i, err := ToInteger(Flt(3.9))
	require.NoError(t, err)
	assert.EqualValues(t, 3, i)

	i, err = ToInteger(Flt(-3.9))
	require.NoError(t, err)
	assert.EqualValues(t, -3, i)
}

func TestToIntegerRejectsString(t *testing.T) {
	_, err := ToInteger(Str("x"))
	require.Error(t, err)
	var convErr *ConvError
	assert.ErrorAs(t, err, &convErr)
	assert.Equal(t, "Integer", convErr.Kind)
}

func TestToBooleanTruthiness(t *testing.T) {
	truthy := []Value{Int(1), Int(-1), Flt(0.1), Bool(true), Str("x")}
	for _, v := range truthy {
		b, err := ToBoolean(v)
		require.NoError(t, err)
		assert.Truef(t, b, "%v should be truthy", v)
	}

	falsy := []Value{Int(0), Flt(0), Bool(false), Str(""), NullValue}
	for _, v := range falsy {
		b, err := ToBoolean(v)
		require.NoError(t, err)
		assert.Falsef(t, b, "%v should be falsy", v)
	}
}

func TestPromoteToReal(t *testing.T) {
	_, af, _, bf, asReal, ok := Promote(Int(3), Flt(1.5))
	require.True(t, ok)
	assert.True(t, asReal)
	assert.Equal(t, 3.0, af)
	assert.Equal(t, 1.5, bf)
}

func TestPromoteToInteger(t *testing.T) {
	ai, _, bi, _, asReal, ok := Promote(Int(3), Int(4))
	require.True(t, ok)
	assert.False(t, asReal)
	assert.EqualValues(t, 3, ai)
	assert.EqualValues(t, 4, bi)
}

func TestPromoteRejectsNonNumeric(t *testing.T) {
	_, _, _, _, _, ok := Promote(Int(3), Str("x"))
	assert.False(t, ok)
}

func TestIsCollectionEnd(t *testing.T) {
	assert.True(t, IsCollectionEnd(NewError(ErrCollectionEnd, "done")))
	assert.False(t, IsCollectionEnd(NewError(ErrTypeMismatch, "nope")))
	assert.False(t, IsCollectionEnd(Int(1)))
}

func TestToDisplayStringUsesValueString(t *testing.T) {
	assert.Equal(t, "42", ToDisplayString(Int(42)))
	assert.Equal(t, "<empty>", ToDisplayString(nil))
}
