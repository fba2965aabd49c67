package intrinsics

import (
	"math"

	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/value"
)

// registerMath installs the Math intrinsic: static constants plus static
// trig/rounding/power methods, all operating on Real arguments (Abs is the
// one method that preserves an Integer argument's kind).
func registerMath(reg *object.Registry) {
	reg.RegisterFactory("Math", func() *object.Type {
		t := object.NewType("Math", nil)
		t.StaticFields["PI"] = value.Flt(math.Pi)
		t.StaticFields["E"] = value.Flt(math.E)
		t.StaticFields["OneOverPI"] = value.Flt(1 / math.Pi)
		t.StaticFields["Sqr2"] = value.Flt(math.Sqrt2)
		t.StaticFields["Sqr3"] = value.Flt(math.Sqrt(3))
		t.StaticFields["Ln2"] = value.Flt(math.Ln2)
		t.StaticFields["Phi"] = value.Flt((1 + math.Sqrt(5)) / 2)
		t.StaticFields["Ln10"] = value.Flt(math.Log(10))

		unary := func(name string, fn func(float64) float64) {
			t.AddMethod(&object.Method{Name: name, Arity: 1, Static: true, Native: mathUnary(name, fn)})
		}
		unary("Sin", math.Sin)
		unary("Cos", math.Cos)
		unary("Tan", math.Tan)
		unary("Sinh", math.Sinh)
		unary("Cosh", math.Cosh)
		unary("Tanh", math.Tanh)
		unary("ASin", math.Asin)
		unary("ACos", math.Acos)
		unary("ATan", math.Atan)
		unary("Exp", math.Exp)
		unary("Log", math.Log10)
		unary("Ln", math.Log)
		unary("Floor", math.Floor)
		unary("Trunc", math.Trunc)
		unary("Round", math.Round)
		unary("ASinh", math.Asinh)
		unary("ACosh", math.Acosh)
		unary("ATanh", math.Atanh)
		unary("Sqrt", math.Sqrt)

		t.AddMethod(&object.Method{Name: "ATan2", Arity: 2, Static: true, Native: mathBinary("ATan2", math.Atan2)})
		t.AddMethod(&object.Method{Name: "Power", Arity: 2, Static: true, Native: mathBinary("Power", math.Pow)})
		t.AddMethod(&object.Method{Name: "Beta", Arity: 2, Static: true, Native: mathBinary("Beta", mathBeta)})
		t.AddMethod(&object.Method{Name: "Abs", Arity: 1, Static: true, Native: mathAbs})
		t.AddMethod(&object.Method{Name: "Gamma", Arity: 1, Static: true, Native: mathUnary("Gamma", math.Gamma)})
		return t
	})
}

func mathBeta(a, b float64) float64 {
	return math.Gamma(a) * math.Gamma(b) / math.Gamma(a+b)
}

func mathUnary(name string, fn func(float64) float64) value.NativeFn {
	return func(rt value.Runtime, args []value.Value) value.Value {
		x, err := value.ToReal(args[0])
		if err != nil {
			rt.Raise("CannotConvertToReal", "Math.%s: %s", name, err)
		}
		return value.Flt(fn(x))
	}
}

func mathBinary(name string, fn func(float64, float64) float64) value.NativeFn {
	return func(rt value.Runtime, args []value.Value) value.Value {
		x, err1 := value.ToReal(args[0])
		y, err2 := value.ToReal(args[1])
		if err1 != nil || err2 != nil {
			rt.Raise("CannotConvertToReal", "Math.%s requires two real arguments", name)
		}
		return value.Flt(fn(x, y))
	}
}

func mathAbs(rt value.Runtime, args []value.Value) value.Value {
	if i, ok := args[0].(value.Integer); ok {
		if i.Value < 0 {
			return value.Int(-i.Value)
		}
		return i
	}
	x, err := value.ToReal(args[0])
	if err != nil {
		rt.Raise("CannotConvertToReal", "Math.Abs: %s", err)
	}
	return value.Flt(math.Abs(x))
}
