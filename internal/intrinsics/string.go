package intrinsics

import (
	"strings"

	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/value"
)

// arrayFactory is implemented by *interp.Interpreter; String.Split/Join
// type-assert to it rather than widening value.Runtime, since building or
// reading an Array is an Array-intrinsic concern owned by internal/interp.
type arrayFactory interface {
	NewArray(elems []value.Value) value.Value
	ArrayItems(v value.Value) ([]value.Value, bool)
}

// registerString installs the String intrinsic's static surface: Length,
// upper/lower/trim/contains/Clone/Slice already live directly on the
// primitive (see internal/interp's stringMember), so this only carries the
// free-standing helpers that operate across multiple strings.
func registerString(reg *object.Registry) {
	reg.RegisterFactory("String", func() *object.Type {
		t := object.NewType("String", nil)
		t.AddMethod(&object.Method{Name: "Split", Arity: 2, Static: true, Native: stringSplit})
		t.AddMethod(&object.Method{Name: "Join", Arity: -1, Static: true, Native: stringJoin})
		t.AddMethod(&object.Method{Name: "Format", Arity: -1, Static: true, Native: stringFormat})
		return t
	})
}

func stringSplit(rt value.Runtime, args []value.Value) value.Value {
	s, ok := args[0].(value.String)
	if !ok {
		rt.Raise("TypeMismatch", "String.Split expects a String argument")
	}
	sep, ok := args[1].(value.String)
	if !ok {
		rt.Raise("TypeMismatch", "String.Split expects a String separator")
	}
	parts := strings.Split(s.Value, sep.Value)
	items := make([]value.Value, len(parts))
	for i, p := range parts {
		items[i] = value.Str(p)
	}
	return rt.(arrayFactory).NewArray(items)
}

func stringJoin(rt value.Runtime, args []value.Value) value.Value {
	if len(args) == 0 {
		rt.Raise("TooFewArguments", "String.Join requires at least an array of parts")
	}
	items, ok := rt.(arrayFactory).ArrayItems(args[0])
	if !ok {
		rt.Raise("TypeMismatch", "String.Join expects an Array argument")
	}
	sep := ""
	if len(args) > 1 {
		s, ok := args[1].(value.String)
		if !ok {
			rt.Raise("TypeMismatch", "String.Join expects a String separator")
		}
		sep = s.Value
	}
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = rt.Display(v)
	}
	return value.Str(strings.Join(parts, sep))
}

func stringFormat(rt value.Runtime, args []value.Value) value.Value {
	return value.Str(formatCall(rt, args))
}
