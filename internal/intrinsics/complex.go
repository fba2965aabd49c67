package intrinsics

import (
	"fmt"
	"math"

	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/value"
)

// ComplexState is the Go-side backing store for a Complex instance.
type ComplexState struct {
	Real, Image float64
}

// registerComplex installs the Complex intrinsic: a 0/1/2-arg constructor
// (missing components default to 0), Real/Image as overloaded getter/setter
// method pairs, Length/LengthSquared, and the four arithmetic operators
// against another Complex or a plain Integer/Real (treated as (x, 0)).
func registerComplex(reg *object.Registry) {
	reg.RegisterFactory("Complex", func() *object.Type {
		t := object.NewType("Complex", nil)
		t.AddConstructor(&object.Method{Name: "new", Arity: 0, Native: complexNew0})
		t.AddConstructor(&object.Method{Name: "new", Arity: 1, Native: complexNew1})
		t.AddConstructor(&object.Method{Name: "new", Arity: 2, Native: complexNew2})
		t.AddMethod(&object.Method{Name: "Real", Arity: 0, Native: complexRealGet})
		t.AddMethod(&object.Method{Name: "Real", Arity: 1, Native: complexRealSet})
		t.AddMethod(&object.Method{Name: "Image", Arity: 0, Native: complexImageGet})
		t.AddMethod(&object.Method{Name: "Image", Arity: 1, Native: complexImageSet})
		t.AddMethod(&object.Method{Name: "Length", Arity: 0, Native: complexLength})
		t.AddMethod(&object.Method{Name: "LengthSquared", Arity: 0, Native: complexLengthSquared})
		t.AddMethod(&object.Method{Name: "+", Arity: 1, Native: complexAdd})
		t.AddMethod(&object.Method{Name: "-", Arity: 1, Native: complexSub})
		t.AddMethod(&object.Method{Name: "*", Arity: 1, Native: complexMul})
		t.AddMethod(&object.Method{Name: "/", Arity: 1, Native: complexDiv})
		t.AddMethod(&object.Method{Name: "ToString", Arity: 0, Native: complexToString})
		return t
	})
}

func complexState(v value.Value) *ComplexState {
	return v.(*object.Object).Extra.(*ComplexState)
}

func complexNew0(rt value.Runtime, args []value.Value) value.Value {
	args[0].(*object.Object).Extra = &ComplexState{}
	return value.NullValue
}

func complexNew1(rt value.Runtime, args []value.Value) value.Value {
	re, err := value.ToReal(args[1])
	if err != nil {
		rt.Raise("CannotConvertToReal", "Complex: %s", err)
	}
	args[0].(*object.Object).Extra = &ComplexState{Real: re}
	return value.NullValue
}

func complexNew2(rt value.Runtime, args []value.Value) value.Value {
	re, err1 := value.ToReal(args[1])
	im, err2 := value.ToReal(args[2])
	if err1 != nil || err2 != nil {
		rt.Raise("CannotConvertToReal", "Complex requires two real arguments")
	}
	args[0].(*object.Object).Extra = &ComplexState{Real: re, Image: im}
	return value.NullValue
}

func complexRealGet(rt value.Runtime, args []value.Value) value.Value {
	return value.Flt(complexState(args[0]).Real)
}

func complexRealSet(rt value.Runtime, args []value.Value) value.Value {
	re, err := value.ToReal(args[1])
	if err != nil {
		rt.Raise("CannotConvertToReal", "Complex.Real: %s", err)
	}
	complexState(args[0]).Real = re
	return args[0]
}

func complexImageGet(rt value.Runtime, args []value.Value) value.Value {
	return value.Flt(complexState(args[0]).Image)
}

func complexImageSet(rt value.Runtime, args []value.Value) value.Value {
	im, err := value.ToReal(args[1])
	if err != nil {
		rt.Raise("CannotConvertToReal", "Complex.Image: %s", err)
	}
	complexState(args[0]).Image = im
	return args[0]
}

func complexLengthSquared(rt value.Runtime, args []value.Value) value.Value {
	st := complexState(args[0])
	return value.Flt(st.Real*st.Real + st.Image*st.Image)
}

func complexLength(rt value.Runtime, args []value.Value) value.Value {
	st := complexState(args[0])
	return value.Flt(math.Sqrt(st.Real*st.Real + st.Image*st.Image))
}

// asComplex treats args[1] as a Complex operand, or as a scalar Integer/Real
// promoted to (x, 0), matching the host operator's mixed Complex-scalar rules.
func asComplex(rt value.Runtime, v value.Value) (ComplexState, bool) {
	if obj, ok := v.(*object.Object); ok {
		if st, ok := obj.Extra.(*ComplexState); ok {
			return *st, true
		}
		return ComplexState{}, false
	}
	if x, err := value.ToReal(v); err == nil {
		return ComplexState{Real: x}, true
	}
	return ComplexState{}, false
}

func complexAdd(rt value.Runtime, args []value.Value) value.Value {
	a := complexState(args[0])
	b, ok := asComplex(rt, args[1])
	if !ok {
		rt.Raise("TypeMismatch", "cannot add %s to Complex", args[1].Kind())
	}
	return newComplex(rt, a.Real+b.Real, a.Image+b.Image)
}

func complexSub(rt value.Runtime, args []value.Value) value.Value {
	a := complexState(args[0])
	b, ok := asComplex(rt, args[1])
	if !ok {
		rt.Raise("TypeMismatch", "cannot subtract %s from Complex", args[1].Kind())
	}
	return newComplex(rt, a.Real-b.Real, a.Image-b.Image)
}

func complexMul(rt value.Runtime, args []value.Value) value.Value {
	a := complexState(args[0])
	b, ok := asComplex(rt, args[1])
	if !ok {
		rt.Raise("TypeMismatch", "cannot multiply Complex by %s", args[1].Kind())
	}
	return newComplex(rt, a.Real*b.Real-a.Image*b.Image, a.Real*b.Image+a.Image*b.Real)
}

func complexDiv(rt value.Runtime, args []value.Value) value.Value {
	a := complexState(args[0])
	b, ok := asComplex(rt, args[1])
	if !ok {
		rt.Raise("TypeMismatch", "cannot divide Complex by %s", args[1].Kind())
	}
	denom := b.Real*b.Real + b.Image*b.Image
	if denom == 0 {
		rt.Raise("DivisionByZero", "division by zero Complex")
	}
	return newComplex(rt, (a.Real*b.Real+a.Image*b.Image)/denom, (a.Image*b.Real-a.Real*b.Image)/denom)
}

func complexToString(rt value.Runtime, args []value.Value) value.Value {
	st := complexState(args[0])
	return value.Str(fmt.Sprintf("(%s,%s*i)", value.Flt(st.Real).String(), value.Flt(st.Image).String()))
}

// newComplex allocates a fresh Complex instance with the given components,
// reusing the registered type so operator results are first-class Complex
// values like any constructed with `new Complex(...)`.
func newComplex(rt value.Runtime, re, im float64) value.Value {
	obj := rt.NewInstance("Complex", nil).(*object.Object)
	obj.Extra = &ComplexState{Real: re, Image: im}
	return obj
}

