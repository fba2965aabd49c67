package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/value"
)

func TestFindWalksParentChain(t *testing.T) {
	root := New()
	root.Add("x", &Binding{Value: value.Int(1), Arity: -1})

	child := root.Child()
	b, ok := child.Find("x", -1, false)
	require.True(t, ok)
	assert.Equal(t, value.Int(1), b.Value)

	_, ok = child.Find("x", -1, true)
	assert.False(t, ok, "localOnly must not see the parent's binding")
}

func TestFindPicksMatchingArityOverWildcard(t *testing.T) {
	s := New()
	s.Add("f", &Binding{Value: value.Int(0), Arity: -1})
	s.Add("f", &Binding{Value: value.Int(2), Arity: 2})

	b, ok := s.Find("f", 2, false)
	require.True(t, ok)
	assert.Equal(t, value.Int(2), b.Value)

	b, ok = s.Find("f", 3, false)
	require.True(t, ok)
	assert.Equal(t, value.Int(0), b.Value, "falls back to the wildcard when no exact arity matches")
}

func TestSetMutatesExistingBindingInPlace(t *testing.T) {
	root := New()
	root.Add("x", &Binding{Value: value.Int(1), Arity: -1})
	child := root.Child()

	ok := child.Set("x", value.Int(42))
	require.True(t, ok)

	b, _ := root.Find("x", -1, true)
	assert.Equal(t, value.Int(42), b.Value)
}

func TestSetReportsMissingBinding(t *testing.T) {
	s := New()
	assert.False(t, s.Set("nope", value.Int(1)))
}

func TestHasLocalIgnoresParentFrame(t *testing.T) {
	root := New()
	root.Add("x", &Binding{Value: value.Int(1), Arity: -1})
	child := root.Child()

	assert.True(t, root.HasLocal("x"))
	assert.False(t, child.HasLocal("x"))
}

func TestFindAllCollectsUseImportedMembers(t *testing.T) {
	root := New()
	root.AddUse("Helpers")

	classMember := func(className, name string) (*Binding, bool) {
		if className == "Helpers" && name == "Assist" {
			return &Binding{Value: value.Int(7), Arity: -1}, true
		}
		return nil, false
	}

	got := root.FindAll("Assist", false, true, classMember)
	require.Len(t, got, 1)
	assert.Equal(t, value.Int(7), got[0].Value)

	none := root.FindAll("Assist", false, false, classMember)
	assert.Empty(t, none)
}
