package intrinsics

import (
	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/value"
)

// registerDebug installs the Debug intrinsic: Assert raises AssertFailed on
// a falsy expression, Break is a host breakpoint hook with no portable Go
// equivalent and is a no-op here.
func registerDebug(reg *object.Registry) {
	reg.RegisterFactory("Debug", func() *object.Type {
		t := object.NewType("Debug", nil)
		t.AddMethod(&object.Method{Name: "Assert", Arity: 1, Static: true, Native: debugAssert})
		t.AddMethod(&object.Method{Name: "Break", Arity: 0, Static: true, Native: debugBreak})
		return t
	})
}

func debugAssert(rt value.Runtime, args []value.Value) value.Value {
	ok, err := value.ToBoolean(args[0])
	if err != nil {
		rt.Raise("CannotConvertToBoolean", "%s", err)
	}
	if !ok {
		rt.Raise("AssertFailed", "assertion failed: %s", rt.Display(args[0]))
	}
	return value.Bool(true)
}

func debugBreak(rt value.Runtime, args []value.Value) value.Value {
	return value.NullValue
}
