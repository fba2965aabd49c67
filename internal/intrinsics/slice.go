package intrinsics

import (
	"strings"

	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/value"
)

// SliceState is the Go-side backing store for a Slice instance: a window
// onto another indexable object, identified only by a start offset and a
// length (Count < 0 means "to the end of Target", re-evaluated on every
// probe rather than captured once, so a Slice stays valid across a target
// that grows or shrinks).
type SliceState struct {
	Target *object.Object
	Start  int64
	Count  int64
	cursor int64
}

// registerSlice installs the Slice intrinsic: a 3-arg constructor
// (target, start, count), indexing and mutation delegated to the target's
// own get/1 and set/2 methods, and the usual Enumerable/Cloneable surface.
func registerSlice(reg *object.Registry) {
	reg.RegisterFactory("Slice", func() *object.Type {
		t := object.NewType("Slice", nil)
		t.AddConstructor(&object.Method{Name: "new", Arity: 3, Native: sliceNew})
		t.AddMethod(&object.Method{Name: "Count", Arity: 0, Native: sliceCount})
		t.AddMethod(&object.Method{Name: "get", Arity: 1, Native: sliceGet})
		t.AddMethod(&object.Method{Name: "set", Arity: 2, Native: sliceSet})
		t.AddMethod(&object.Method{Name: "Clone", Arity: 0, Native: sliceClone})
		t.AddMethod(&object.Method{Name: "next", Arity: 0, Native: sliceNext})
		t.AddMethod(&object.Method{Name: "get_enumerator", Arity: 0, Native: nativeIdentityEnumerator})
		t.AddMethod(&object.Method{Name: "ToString", Arity: 0, Native: sliceToString})
		return t
	})
}

func nativeIdentityEnumerator(rt value.Runtime, args []value.Value) value.Value {
	return args[0]
}

func sliceNew(rt value.Runtime, args []value.Value) value.Value {
	target, ok := args[1].(*object.Object)
	if !ok {
		rt.Raise("TypeMismatch", "Slice requires an Object target")
	}
	start, err1 := value.ToInteger(args[2])
	count, err2 := value.ToInteger(args[3])
	if err1 != nil || err2 != nil {
		rt.Raise("CannotConvertToInteger", "Slice requires integer start and count")
	}
	args[0].(*object.Object).Extra = &SliceState{Target: target, Start: start, Count: count}
	return value.NullValue
}

func targetCount(rt value.Runtime, target *object.Object) int64 {
	n, err := value.ToInteger(rt.Invoke(value.Callable{Instance: target, Name: "Count"}, nil))
	if err != nil {
		rt.Raise("TypeMismatch", "slice target has no usable Count")
	}
	return n
}

// effectiveCount resolves Count<0 ("open", to the end of Target) against
// the target's current length, re-read on every call so a Slice tracks a
// growing or shrinking target rather than freezing its length at creation.
func effectiveCount(rt value.Runtime, st *SliceState) int64 {
	if st.Count >= 0 {
		return st.Count
	}
	n := targetCount(rt, st.Target) - st.Start
	if n < 0 {
		return 0
	}
	return n
}

func sliceCount(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*SliceState)
	return value.Int(effectiveCount(rt, st))
}

func sliceGet(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*SliceState)
	i, err := value.ToInteger(args[1])
	if err != nil {
		rt.Raise("CannotConvertToInteger", "%s", err)
	}
	if i < 0 || i >= effectiveCount(rt, st) {
		rt.Raise("IndexOutOfRange", "index %d out of range in slice", i)
	}
	return rt.Invoke(value.Callable{Instance: st.Target, Name: "get"}, []value.Value{value.Int(st.Start + i)})
}

func sliceSet(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*SliceState)
	i, err := value.ToInteger(args[1])
	if err != nil {
		rt.Raise("CannotConvertToInteger", "%s", err)
	}
	if i < 0 || i >= effectiveCount(rt, st) {
		rt.Raise("IndexOutOfRange", "index %d out of range in slice", i)
	}
	rt.Invoke(value.Callable{Instance: st.Target, Name: "set"}, []value.Value{value.Int(st.Start + i), args[2]})
	return value.NullValue
}

func sliceClone(rt value.Runtime, args []value.Value) value.Value {
	obj := args[0].(*object.Object)
	st := obj.Extra.(*SliceState)
	clone := object.NewObject(obj.Type)
	clone.Extra = &SliceState{Target: st.Target, Start: st.Start, Count: st.Count}
	return clone
}

func sliceNext(rt value.Runtime, args []value.Value) value.Value {
	obj := args[0].(*object.Object)
	st := obj.Extra.(*SliceState)
	if st.cursor >= effectiveCount(rt, st) {
		return value.NewError(value.ErrCollectionEnd, "end of slice")
	}
	v := rt.Invoke(value.Callable{Instance: st.Target, Name: "get"}, []value.Value{value.Int(st.Start + st.cursor)})
	st.cursor++
	return v
}

func sliceToString(rt value.Runtime, args []value.Value) value.Value {
	obj := args[0].(*object.Object)
	st := obj.Extra.(*SliceState)
	var sb strings.Builder
	sb.WriteString("[ ")
	n := effectiveCount(rt, st)
	for i := int64(0); i < n; i++ {
		v := rt.Invoke(value.Callable{Instance: st.Target, Name: "get"}, []value.Value{value.Int(st.Start + i)})
		sb.WriteString(rt.Display(v))
		sb.WriteString(", ")
	}
	text := sb.String()
	if n > 0 {
		text = text[:len(text)-2]
	}
	return value.Str(text + " ]")
}
