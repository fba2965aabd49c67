package intrinsics

import (
	"fmt"

	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/value"
)

// typesProvider is implemented by *interp.Interpreter; Runtime::DumpStats
// type-asserts to it rather than widening value.Runtime, since a type
// census dump is a Runtime-intrinsic concern, not a general evaluator
// service.
type typesProvider interface {
	AllTypes() map[string]*object.Type
}

// registerRuntime installs the Runtime intrinsic: Sleep/Eval/Ticks mirror
// the matching value.Runtime services, DumpStats prints the live object
// census per type, and CreateObject is a thin wrapper over NewInstance.
func registerRuntime(reg *object.Registry) {
	reg.RegisterFactory("Runtime", func() *object.Type {
		t := object.NewType("Runtime", nil)
		t.AddMethod(&object.Method{Name: "Sleep", Arity: 1, Static: true, Native: runtimeSleep})
		t.AddMethod(&object.Method{Name: "Eval", Arity: 1, Static: true, Native: runtimeEval})
		t.AddMethod(&object.Method{Name: "Ticks", Arity: 0, Static: true, Native: runtimeTicks})
		t.AddMethod(&object.Method{Name: "DumpStats", Arity: 0, Static: true, Native: runtimeDumpStats})
		t.AddMethod(&object.Method{Name: "CreateObject", Arity: -1, Static: true, Native: runtimeCreateObject})
		return t
	})
}

func runtimeSleep(rt value.Runtime, args []value.Value) value.Value {
	ms, err := value.ToInteger(args[0])
	if err != nil {
		rt.Raise("CannotConvertToInteger", "%s", err)
	}
	rt.SleepMillis(ms)
	return value.NullValue
}

func runtimeEval(rt value.Runtime, args []value.Value) value.Value {
	src, ok := args[0].(value.String)
	if !ok {
		rt.Raise("TypeMismatch", "Eval expects a String argument")
	}
	return rt.EvalSource(src.Value)
}

func runtimeTicks(rt value.Runtime, args []value.Value) value.Value {
	return value.Int(rt.Ticks())
}

func runtimeDumpStats(rt value.Runtime, args []value.Value) value.Value {
	tp, ok := rt.(typesProvider)
	if !ok {
		return value.NullValue
	}
	types := tp.AllTypes()
	rt.Write(fmt.Sprintf("Types: %d\n", len(types)))
	for name, t := range types {
		rt.Write(fmt.Sprintf(" Name: %s, Objects: %d\n", name, t.ObjectCount()))
	}
	return value.NullValue
}

func runtimeCreateObject(rt value.Runtime, args []value.Value) value.Value {
	if len(args) == 0 {
		rt.Raise("TooFewArguments", "CreateObject requires a type name")
	}
	name, ok := args[0].(value.String)
	if !ok {
		rt.Raise("TypeMismatch", "CreateObject expects a String type name")
	}
	return rt.NewInstance(name.Value, args[1:])
}
