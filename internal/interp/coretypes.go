package interp

import (
	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/value"
)

// ArrayState is the Go-side backing store for an Array instance, held in
// its object.Object.Extra field. Indexing and iteration operate on Items
// directly; the native methods below exist so scripts can call
// .Count()/.Add() like any other method.
type ArrayState struct {
	Items  []value.Value
	cursor int
}

// RangeState is the Go-side backing store for a Range instance.
type RangeState struct {
	Start, End int64
	Inclusive  bool
	cursor     int64
	started    bool
}

// registerCoreTypes installs the Array and Range intrinsic types every
// script needs regardless of which optional modules a host registers; Slice,
// Console, Math, Debug, Runtime, and String live in internal/intrinsics and
// are wired in through the host's register callback instead, since they are
// not referenced by any grammar production the way array/range literals are.
func (ip *Interpreter) registerCoreTypes() {
	ip.Registry.RegisterFactory("Array", func() *object.Type {
		t := object.NewType("Array", nil)
		t.AddMethod(&object.Method{Name: "Count", Arity: 0, Native: nativeArrayCount})
		t.AddMethod(&object.Method{Name: "IsEmpty", Arity: 0, Native: nativeArrayIsEmpty})
		t.AddMethod(&object.Method{Name: "Clear", Arity: 0, Native: nativeArrayClear})
		t.AddMethod(&object.Method{Name: "Clone", Arity: 0, Native: nativeArrayClone})
		t.AddMethod(&object.Method{Name: "Reverse", Arity: 0, Native: nativeArrayReverse})
		t.AddMethod(&object.Method{Name: "Add", Arity: 1, Native: nativeArrayAdd})
		t.AddMethod(&object.Method{Name: "Append", Arity: 1, Native: nativeArrayAppend})
		t.AddMethod(&object.Method{Name: "Insert", Arity: 2, Native: nativeArrayInsert})
		t.AddMethod(&object.Method{Name: "RemoveAt", Arity: 1, Native: nativeArrayRemoveAt})
		t.AddMethod(&object.Method{Name: "Resize", Arity: 1, Native: nativeArrayResize})
		t.AddMethod(&object.Method{Name: "Slice", Arity: 2, Native: nativeArraySlice})
		t.AddMethod(&object.Method{Name: "get", Arity: 1, Native: nativeArrayGet})
		t.AddMethod(&object.Method{Name: "set", Arity: 2, Native: nativeArraySet})
		t.AddMethod(&object.Method{Name: "next", Arity: 0, Native: nativeArrayNext})
		t.AddMethod(&object.Method{Name: "get_enumerator", Arity: 0, Native: nativeIdentityEnumerator})
		return t
	})
	ip.Registry.RegisterFactory("Range", func() *object.Type {
		t := object.NewType("Range", nil)
		t.AddMethod(&object.Method{Name: "Count", Arity: 0, Native: nativeRangeCount})
		t.AddMethod(&object.Method{Name: "Size", Arity: 0, Native: nativeRangeCount})
		t.AddMethod(&object.Method{Name: "Start", Arity: 0, Native: nativeRangeStart})
		t.AddMethod(&object.Method{Name: "End", Arity: 0, Native: nativeRangeEnd})
		t.AddMethod(&object.Method{Name: "Shift", Arity: 1, Native: nativeRangeShift})
		t.AddMethod(&object.Method{Name: "IsInRange", Arity: 1, Native: nativeRangeIsInRange})
		t.AddMethod(&object.Method{Name: "next", Arity: 0, Native: nativeRangeNext})
		t.AddMethod(&object.Method{Name: "get_enumerator", Arity: 0, Native: nativeIdentityEnumerator})
		return t
	})
}

func nativeIdentityEnumerator(rt value.Runtime, args []value.Value) value.Value {
	return args[0]
}

func nativeArrayCount(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*ArrayState)
	return value.Int(int64(len(st.Items)))
}

func nativeArrayIsEmpty(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*ArrayState)
	return value.Bool(len(st.Items) == 0)
}

func nativeArrayClear(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*ArrayState)
	st.Items = nil
	st.cursor = 0
	return value.NullValue
}

func nativeArrayClone(rt value.Runtime, args []value.Value) value.Value {
	obj := args[0].(*object.Object)
	st := obj.Extra.(*ArrayState)
	items := make([]value.Value, len(st.Items))
	copy(items, st.Items)
	clone := object.NewObject(obj.Type)
	clone.Extra = &ArrayState{Items: items}
	return clone
}

func nativeArrayReverse(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*ArrayState)
	for i, j := 0, len(st.Items)-1; i < j; i, j = i+1, j-1 {
		st.Items[i], st.Items[j] = st.Items[j], st.Items[i]
	}
	return value.NullValue
}

func nativeArrayAdd(rt value.Runtime, args []value.Value) value.Value {
	obj := args[0].(*object.Object)
	st := obj.Extra.(*ArrayState)
	st.Items = append(st.Items, args[1])
	return value.NullValue
}

func nativeArrayAppend(rt value.Runtime, args []value.Value) value.Value {
	obj := args[0].(*object.Object)
	st := obj.Extra.(*ArrayState)
	other, ok := args[1].(*object.Object)
	if !ok {
		return value.NullValue
	}
	ost, ok := other.Extra.(*ArrayState)
	if !ok {
		return value.NullValue
	}
	st.Items = append(st.Items, ost.Items...)
	return value.NullValue
}

func nativeArrayInsert(rt value.Runtime, args []value.Value) value.Value {
	obj := args[0].(*object.Object)
	st := obj.Extra.(*ArrayState)
	i, err := value.ToInteger(args[1])
	if err != nil || i < 0 || int(i) > len(st.Items) {
		rt.Raise("IndexOutOfRange", "Insert index %d out of range for array of length %d", i, len(st.Items))
	}
	st.Items = append(st.Items, value.NullValue)
	copy(st.Items[i+1:], st.Items[i:])
	st.Items[i] = args[2]
	return value.NullValue
}

func nativeArrayRemoveAt(rt value.Runtime, args []value.Value) value.Value {
	obj := args[0].(*object.Object)
	st := obj.Extra.(*ArrayState)
	i, err := value.ToInteger(args[1])
	if err != nil || i < 0 || int(i) >= len(st.Items) {
		rt.Raise("IndexOutOfRange", "RemoveAt index %d out of range for array of length %d", i, len(st.Items))
	}
	st.Items = append(st.Items[:i], st.Items[i+1:]...)
	return value.NullValue
}

func nativeArrayResize(rt value.Runtime, args []value.Value) value.Value {
	obj := args[0].(*object.Object)
	st := obj.Extra.(*ArrayState)
	n, err := value.ToInteger(args[1])
	if err != nil || n < 0 {
		rt.Raise("TypeMismatch", "Resize requires a non-negative integer")
	}
	switch {
	case int(n) < len(st.Items):
		st.Items = st.Items[:n]
	case int(n) > len(st.Items):
		grown := make([]value.Value, n)
		copy(grown, st.Items)
		for i := len(st.Items); i < int(n); i++ {
			grown[i] = value.NullValue
		}
		st.Items = grown
	}
	return value.NullValue
}

// sliceFactory is implemented by *Interpreter; nativeArraySlice type-asserts
// to it rather than widening value.Runtime, since slice construction is an
// Array/Slice-intrinsic concern, not a general evaluator service.
type sliceFactory interface {
	NewSlice(target *object.Object, start, count int64) value.Value
}

func nativeArraySlice(rt value.Runtime, args []value.Value) value.Value {
	obj := args[0].(*object.Object)
	start, err1 := value.ToInteger(args[1])
	count, err2 := value.ToInteger(args[2])
	if err1 != nil || err2 != nil {
		rt.Raise("CannotConvertToInteger", "Slice requires integer start and count")
	}
	return rt.(sliceFactory).NewSlice(obj, start, count)
}

func nativeArrayGet(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*ArrayState)
	i, err := value.ToInteger(args[1])
	if err != nil || i < 0 || int(i) >= len(st.Items) {
		rt.Raise("IndexOutOfRange", "index %d out of range for array of length %d", i, len(st.Items))
	}
	return st.Items[i]
}

func nativeArraySet(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*ArrayState)
	i, err := value.ToInteger(args[1])
	if err != nil || i < 0 || int(i) >= len(st.Items) {
		rt.Raise("IndexOutOfRange", "index %d out of range for array of length %d", i, len(st.Items))
	}
	st.Items[i] = args[2]
	return value.NullValue
}

func nativeArrayNext(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*ArrayState)
	if st.cursor >= len(st.Items) {
		return value.NewError(value.ErrCollectionEnd, "end of array")
	}
	v := st.Items[st.cursor]
	st.cursor++
	return v
}

func nativeRangeCount(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*RangeState)
	n := st.End - st.Start
	if st.Inclusive {
		n++
	}
	if n < 0 {
		n = 0
	}
	return value.Int(n)
}

func nativeRangeStart(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*RangeState)
	return value.Int(st.Start)
}

func nativeRangeEnd(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*RangeState)
	return value.Int(st.End)
}

// nativeRangeShift returns a new Range translated by n, preserving
// inclusivity and leaving the receiver's own cursor untouched.
func nativeRangeShift(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*RangeState)
	n, err := value.ToInteger(args[1])
	if err != nil {
		rt.Raise("CannotConvertToInteger", "%s", err)
	}
	obj := args[0].(*object.Object)
	clone := object.NewObject(obj.Type)
	clone.Extra = &RangeState{Start: st.Start + n, End: st.End + n, Inclusive: st.Inclusive}
	return clone
}

func nativeRangeIsInRange(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*RangeState)
	v, err := value.ToInteger(args[1])
	if err != nil {
		rt.Raise("CannotConvertToInteger", "%s", err)
	}
	if v < st.Start {
		return value.Bool(false)
	}
	if st.Inclusive {
		return value.Bool(v <= st.End)
	}
	return value.Bool(v < st.End)
}

func nativeRangeNext(rt value.Runtime, args []value.Value) value.Value {
	st := args[0].(*object.Object).Extra.(*RangeState)
	if !st.started {
		st.started = true
		st.cursor = st.Start
	}
	if st.Inclusive {
		if st.cursor > st.End {
			return value.NewError(value.ErrCollectionEnd, "end of range")
		}
	} else if st.cursor >= st.End {
		return value.NewError(value.ErrCollectionEnd, "end of range")
	}
	v := value.Int(st.cursor)
	st.cursor++
	return v
}

func (ip *Interpreter) newArrayObject(elems []value.Value) value.Value {
	t, ok := ip.Registry.Get("Array")
	if !ok {
		ip.raise("Unimplemented", "Array type is not registered")
	}
	obj := object.NewObject(t)
	obj.Extra = &ArrayState{Items: elems}
	return obj
}

// NewArray implements the extension interface intrinsics arrayFactory needs
// to build Arrays (e.g. String.Split's result) without intrinsics importing
// internal/interp.
func (ip *Interpreter) NewArray(elems []value.Value) value.Value {
	return ip.newArrayObject(elems)
}

// ArrayItems reports the backing elements of v if it is an Array, for
// intrinsics that accept an Array argument (e.g. String.Join) without
// reaching into ArrayState directly.
func (ip *Interpreter) ArrayItems(v value.Value) ([]value.Value, bool) {
	obj, ok := v.(*object.Object)
	if !ok {
		return nil, false
	}
	st, ok := obj.Extra.(*ArrayState)
	if !ok {
		return nil, false
	}
	return st.Items, true
}

func (ip *Interpreter) newRangeObject(start, end int64, inclusive bool) value.Value {
	t, ok := ip.Registry.Get("Range")
	if !ok {
		ip.raise("Unimplemented", "Range type is not registered")
	}
	obj := object.NewObject(t)
	obj.Extra = &RangeState{Start: start, End: end, Inclusive: inclusive}
	return obj
}

// NewSlice implements the sliceFactory extension interface needed
// to build a Slice over an Array without interp importing internal/intrinsics:
// it resolves the Slice type through the registry (populated by the host's
// register callback) and runs its native constructor.
func (ip *Interpreter) NewSlice(target *object.Object, start, count int64) value.Value {
	t, ok := ip.Registry.Get("Slice")
	if !ok {
		ip.raise("Unimplemented", "Slice type is not registered")
	}
	ctor, ok := t.GetConstructor(3)
	if !ok {
		ip.raise("Unimplemented", "Slice has no constructor")
	}
	obj := object.NewObject(t)
	ip.invokeMethod(t, obj, ctor, []value.Value{target, value.Int(start), value.Int(count)})
	return obj
}

// indexGet implements `target[index]` for strings (returning the integer
// byte code at that index), Arrays (direct Go-slice access, or a Slice when
// index is itself a Range), and any other Object whose type defines a
// `get/1` method.
func (ip *Interpreter) indexGet(target, index value.Value) value.Value {
	switch t := target.(type) {
	case value.String:
		i, err := value.ToInteger(index)
		if err != nil {
			ip.raise("CannotConvertToInteger", "%s", err)
		}
		if i < 0 || int(i) >= len(t.Value) {
			ip.raise("IndexOutOfRange", "index %d out of range for string of length %d", i, len(t.Value))
		}
		return value.Int(int64(t.Value[i]))
	case *object.Object:
		if st, ok := t.Extra.(*ArrayState); ok {
			if ro, ok := index.(*object.Object); ok {
				if rst, ok := ro.Extra.(*RangeState); ok {
					end := rst.End
					if rst.Inclusive {
						end++
					}
					return ip.NewSlice(t, rst.Start, end-rst.Start)
				}
			}
			i, err := value.ToInteger(index)
			if err != nil {
				ip.raise("CannotConvertToInteger", "%s", err)
			}
			if i < 0 || int(i) >= len(st.Items) {
				ip.raise("IndexOutOfRange", "index %d out of range for array of length %d", i, len(st.Items))
			}
			return retain(st.Items[i])
		}
		if m, ok := t.Type.GetMethod("get", 1); ok {
			return ip.invokeMethod(t.Type, t, m, []value.Value{index})
		}
	}
	ip.raise("TypeMismatch", "%s does not support indexing", target.Kind())
	return value.NullValue
}

// indexSet implements `target[index] = value` for Arrays and any other
// Object whose type defines a `set/2` method.
func (ip *Interpreter) indexSet(target, index, v value.Value) {
	obj, ok := target.(*object.Object)
	if !ok {
		ip.raise("TypeMismatch", "%s does not support index assignment", target.Kind())
	}
	if st, ok := obj.Extra.(*ArrayState); ok {
		i, err := value.ToInteger(index)
		if err != nil {
			ip.raise("CannotConvertToInteger", "%s", err)
		}
		if i < 0 || int(i) >= len(st.Items) {
			ip.raise("IndexOutOfRange", "index %d out of range for array of length %d", i, len(st.Items))
		}
		st.Items[i] = v
		return
	}
	if m, ok := obj.Type.GetMethod("set", 2); ok {
		ip.invokeMethod(obj.Type, obj, m, []value.Value{index, v})
		return
	}
	ip.raise("TypeMismatch", "%s does not support index assignment", obj.Type.Name)
}

// enumerator produces a pull-based iterator for foreach: Array/Range get a
// dedicated, side-effect-free cursor local to this call so concurrent
// foreach loops over the same collection don't interfere with each other;
// String is enumerated byte-by-byte, each byte as an Integer; any other Object enumerates
// through its own `next/0` method, which signals exhaustion with the
// Error(CollectionEnd) sentinel.
func (ip *Interpreter) enumerator(v value.Value) func() (value.Value, bool) {
	if s, ok := v.(value.String); ok {
		i := 0
		return func() (value.Value, bool) {
			if i >= len(s.Value) {
				return value.NullValue, false
			}
			item := value.Int(int64(s.Value[i]))
			i++
			return item, true
		}
	}
	if obj, ok := v.(*object.Object); ok {
		switch st := obj.Extra.(type) {
		case *ArrayState:
			i := 0
			return func() (value.Value, bool) {
				if i >= len(st.Items) {
					return value.NullValue, false
				}
				item := st.Items[i]
				i++
				return retain(item), true
			}
		case *RangeState:
			cur := st.Start
			return func() (value.Value, bool) {
				if st.Inclusive {
					if cur > st.End {
						return value.NullValue, false
					}
				} else if cur >= st.End {
					return value.NullValue, false
				}
				out := value.Int(cur)
				cur++
				return out, true
			}
		}
		if m, ok := obj.Type.GetMethod("next", 0); ok {
			return func() (value.Value, bool) {
				// obj is the single collection reference evalForEach holds,
				// reused on every pull; invokeMethod consumes "this" once
				// per call, so each call needs its own retained copy.
				obj.Retain()
				res := ip.invokeMethod(obj.Type, obj, m, nil)
				if value.IsCollectionEnd(res) {
					return value.NullValue, false
				}
				return res, true
			}
		}
	}
	ip.raise("NotEnumerable", "%s is not enumerable", v.Kind())
	return nil
}
