package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasMethodWalksBaseChain(t *testing.T) {
	base := NewType("Animal", nil)
	base.AddMethod(&Method{Name: "Speak", Arity: 0})
	derived := NewType("Dog", base)

	assert.True(t, derived.HasMethod("Speak"))
	assert.False(t, derived.HasMethod("Fly"))
}

func TestGetMethodPrefersExactArityOverWildcard(t *testing.T) {
	ty := NewType("Thing", nil)
	ty.AddMethod(&Method{Name: "Do", Arity: -1})
	ty.AddMethod(&Method{Name: "Do", Arity: 1})

	m, ok := ty.GetMethod("Do", 1)
	require.True(t, ok)
	assert.Equal(t, 1, m.Arity)

	m, ok = ty.GetMethod("Do", 2)
	require.True(t, ok)
	assert.Equal(t, -1, m.Arity, "falls back to the wildcard overload")
}

func TestGetMethodStopsAtFirstDeclaringLevel(t *testing.T) {
	base := NewType("Base", nil)
	base.AddMethod(&Method{Name: "M", Arity: 1})
	derived := NewType("Derived", base)
	derived.AddMethod(&Method{Name: "M", Arity: 2})

	// Derived declares M/2 but not M/1; base's M/1 must not be reached,
	// since Derived's own overload set shadows the base once any overload
	// of that name exists at the derived level.
	_, ok := derived.GetMethod("M", 1)
	assert.False(t, ok)

	m, ok := derived.GetMethod("M", 2)
	require.True(t, ok)
	assert.Equal(t, 2, m.Arity)
}

func TestGetFieldWalksBaseChain(t *testing.T) {
	base := NewType("Base", nil)
	base.Fields["x"] = &Field{Name: "x"}
	derived := NewType("Derived", base)

	f, owner := derived.GetField("x")
	require.NotNil(t, f)
	assert.Equal(t, base, owner)

	f, _ = derived.GetField("missing")
	assert.Nil(t, f)
}

func TestInheritsFrom(t *testing.T) {
	base := NewType("Base", nil)
	derived := NewType("Derived", base)
	unrelated := NewType("Other", nil)

	assert.True(t, derived.InheritsFrom(base))
	assert.True(t, derived.InheritsFrom(derived))
	assert.False(t, derived.InheritsFrom(unrelated))
}

func TestObjectCensusTracksLiveInstances(t *testing.T) {
	ty := NewType("Foo", nil)
	o1 := NewObject(ty)
	assert.Equal(t, 1, ty.ObjectCount())

	o2 := NewObject(ty)
	assert.Equal(t, 2, ty.ObjectCount())

	o1.Release()
	assert.Equal(t, 1, ty.ObjectCount())

	o2.Release()
	assert.Equal(t, 0, ty.ObjectCount())
}

func TestObjectRetainIncrementsRefCount(t *testing.T) {
	ty := NewType("Foo", nil)
	o := NewObject(ty)
	assert.Equal(t, 1, o.RefCount())

	o.Retain()
	assert.Equal(t, 2, o.RefCount())

	o.Release()
	assert.Equal(t, 1, ty.ObjectCount(), "still alive after one of two references is released")

	o.Release()
	assert.Equal(t, 0, ty.ObjectCount())
}

func TestIsInstanceOf(t *testing.T) {
	base := NewType("Base", nil)
	derived := NewType("Derived", base)
	o := NewObject(derived)

	assert.True(t, o.IsInstanceOf(base))
	assert.True(t, o.IsInstanceOf(derived))
	assert.False(t, (*Object)(nil).IsInstanceOf(base))
}

func TestRegistryLazilyBuildsFromFactory(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	reg.RegisterFactory("Array", func() *Type {
		calls++
		return NewType("Array", nil)
	})

	ty, ok := reg.Get("Array")
	require.True(t, ok)
	assert.True(t, ty.Intrinsic)
	assert.Equal(t, 1, calls)

	_, ok = reg.Get("Array")
	require.True(t, ok)
	assert.Equal(t, 1, calls, "factory only runs once; the built type is cached")
}

func TestRegistryGetUnknownType(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Get("Nope")
	assert.False(t, ok)
}

func TestRegistryDefineAndAll(t *testing.T) {
	reg := NewRegistry()
	ty := NewType("Foo", nil)
	reg.Define(ty)

	got, ok := reg.Get("Foo")
	require.True(t, ok)
	assert.Same(t, ty, got)
	assert.Len(t, reg.All(), 1)
}
