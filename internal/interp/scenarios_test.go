package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/intrinsics"
	"github.com/vela-lang/vela/internal/parser"
	"github.com/vela-lang/vela/internal/value"
)

// run parses and evaluates src against a fresh interpreter, failing the
// test on any parse error and returning the evaluated result and any
// runtime error.
func run(t *testing.T, src string) (value.Value, error) {
	t.Helper()
	prog, errs, lexErrs := parser.Parse(src)
	require.Empty(t, lexErrs)
	require.Empty(t, errs)
	var out, errOut bytes.Buffer
	ip := New(&out, &errOut, strings.NewReader(""), intrinsics.Register)
	return ip.Run(prog, src, "<test>")
}

func TestObjectCensusReleasedAfterRepeat(t *testing.T) {
	result, err := run(t, `
		class Foo { }
		repeat 10000 { new Foo(); }
		typeof(Foo).ObjectCount()
	`)
	require.NoError(t, err)
	assert.Equal(t, value.Int(0), result)
}

func TestObjectCensusRetainedByBinding(t *testing.T) {
	result, err := run(t, `
		class Foo { }
		var x = new Foo();
		typeof(Foo).ObjectCount()
	`)
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), result)
}

func TestRecursiveFactorial(t *testing.T) {
	result, err := run(t, `
		fn fact(n) { if (n == 0) { return 1; } return n * fact(n - 1); }
		fact(5)
	`)
	require.NoError(t, err)
	assert.Equal(t, value.Int(120), result)
}

func TestForEachAccumulate(t *testing.T) {
	result, err := run(t, `
		var sum = 0;
		foreach (item in [1, 2, 3, 4]) { sum = sum + item; }
		sum
	`)
	require.NoError(t, err)
	assert.Equal(t, value.Int(10), result)
}

func TestEnumMemberValues(t *testing.T) {
	result, err := run(t, `
		enum Color { Red, Green = 2, Blue }
		[Color::Red, Color::Green, Color::Blue]
	`)
	require.NoError(t, err)
	items, ok := freshInterp(t).ArrayItems(result)
	require.True(t, ok)
	require.Len(t, items, 3)
	assert.Equal(t, value.Int(0), items[0])
	assert.Equal(t, value.Int(2), items[1])
	assert.Equal(t, value.Int(3), items[2])
}

// freshInterp builds a scratch interpreter purely to reach the
// ArrayItems helper, which only inspects its argument's own backing state
// and needs no interpreter of its own.
func freshInterp(t *testing.T) *Interpreter {
	t.Helper()
	var out, errOut bytes.Buffer
	return New(&out, &errOut, strings.NewReader(""), intrinsics.Register)
}

func TestMatchPredicateArm(t *testing.T) {
	result, err := run(t, `
		match 5 {
			fn (x) => x > 0 : "positive",
			default: "other"
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, value.Str("positive"), result)

	result, err = run(t, `
		match -5 {
			fn (x) => x > 0 : "positive",
			default: "other"
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, value.Str("other"), result)
}

func TestExpressionStatementSemicolonYieldsNull(t *testing.T) {
	result, err := run(t, `1 + 1;`)
	require.NoError(t, err)
	assert.Equal(t, value.KNull, result.Kind())
}

func TestRangeExclusiveAndInclusive(t *testing.T) {
	result, err := run(t, `
		var items = [];
		foreach (i in 2..5) { items.Add(i); }
		items
	`)
	require.NoError(t, err)
	items, ok := freshInterp(t).ArrayItems(result)
	require.True(t, ok)
	assert.Len(t, items, 3)
	assert.Equal(t, []value.Value{value.Int(2), value.Int(3), value.Int(4)}, items)

	result, err = run(t, `
		var items = [];
		foreach (i in 2..=5) { items.Add(i); }
		items
	`)
	require.NoError(t, err)
	items, ok = freshInterp(t).ArrayItems(result)
	require.True(t, ok)
	assert.Equal(t, []value.Value{value.Int(2), value.Int(3), value.Int(4), value.Int(5)}, items)
}

func TestDivisionByZero(t *testing.T) {
	_, err := run(t, `1 / 0`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DivisionByZero")
}

func TestArrayIndexOutOfRange(t *testing.T) {
	_, err := run(t, `var a = [1, 2, 3]; a[-1]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IndexOutOfRange")

	_, err = run(t, `var a = [1, 2, 3]; a[3]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IndexOutOfRange")
}

func TestStackOverflow(t *testing.T) {
	_, err := run(t, `fn loop(n) { return loop(n + 1); } loop(0)`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "StackOverflow")
}
