package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/value"
)

func TestMathStaticMethods(t *testing.T) {
	result, err := run(t, `Math::Sqrt(16.0)`)
	require.NoError(t, err)
	assert.Equal(t, value.Flt(4), result)

	result, err = run(t, `Math::Abs(-5)`)
	require.NoError(t, err)
	assert.Equal(t, value.Int(5), result)
}

func TestComplexArithmetic(t *testing.T) {
	result, err := run(t, `
		var a = new Complex(1, 2);
		var b = new Complex(3, -1);
		(a + b).ToString()
	`)
	require.NoError(t, err)
	assert.Equal(t, value.Str("(4,1*i)"), result)

	result, err = run(t, `new Complex(3, 4).Length()`)
	require.NoError(t, err)
	assert.Equal(t, value.Flt(5), result)
}

func TestComplexDivisionByZero(t *testing.T) {
	_, err := run(t, `new Complex(1, 1) / new Complex(0, 0)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DivisionByZero")
}

func TestArraySliceWindow(t *testing.T) {
	result, err := run(t, `
		var a = [10, 20, 30, 40, 50];
		var s = a.Slice(1, 3);
		[s.get(0), s.get(1), s.get(2), s.Count()]
	`)
	require.NoError(t, err)
	items, ok := freshInterp(t).ArrayItems(result)
	require.True(t, ok)
	assert.Equal(t, []value.Value{value.Int(20), value.Int(30), value.Int(40), value.Int(3)}, items)
}

func TestSliceTracksOpenEndedTarget(t *testing.T) {
	result, err := run(t, `
		var a = [1, 2, 3];
		var s = a.Slice(1, -1);
		a.Add(4);
		s.Count()
	`)
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), result)
}

func TestStringSplitAndJoin(t *testing.T) {
	result, err := run(t, `String::Join(String::Split("a,b,c", ","), "-")`)
	require.NoError(t, err)
	assert.Equal(t, value.Str("a-b-c"), result)
}

func TestStringInstanceMethods(t *testing.T) {
	result, err := run(t, `"  Hello  ".trim().upper()`)
	require.NoError(t, err)
	assert.Equal(t, value.Str("HELLO"), result)

	result, err = run(t, `"hello".Slice(1, 3)`)
	require.NoError(t, err)
	assert.Equal(t, value.Str("ell"), result)
}

func TestQueryServiceCapabilities(t *testing.T) {
	result, err := run(t, `
		class Box { fn Clone() { return new Box(); } }
		new Box().QueryService("Cloneable")
	`)
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), result)

	result, err = run(t, `
		class Box { }
		new Box().QueryService("Cloneable")
	`)
	require.NoError(t, err)
	assert.Equal(t, value.Bool(false), result)
}

func TestTypeofReflection(t *testing.T) {
	result, err := run(t, `
		class Foo { }
		typeof(Foo).Name
	`)
	require.NoError(t, err)
	assert.Equal(t, value.Str("Foo"), result)
}

func TestDebugAssertRaisesOnFalsyCondition(t *testing.T) {
	_, err := run(t, `Debug::Assert(1 > 2);`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AssertFailed")

	_, err = run(t, `Debug::Assert(1 < 2);`)
	require.NoError(t, err)
}
