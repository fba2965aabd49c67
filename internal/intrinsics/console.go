package intrinsics

import (
	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/value"
)

// registerConsole installs the Console intrinsic: a type with no instances,
// accessed only through its static methods (`Console::WriteLine(...)`).
func registerConsole(reg *object.Registry) {
	reg.RegisterFactory("Console", func() *object.Type {
		t := object.NewType("Console", nil)
		t.AddMethod(&object.Method{Name: "Write", Arity: -1, Static: true, Native: consoleWrite})
		t.AddMethod(&object.Method{Name: "WriteLine", Arity: -1, Static: true, Native: consoleWriteLine})
		t.AddMethod(&object.Method{Name: "Error", Arity: -1, Static: true, Native: consoleError})
		t.AddMethod(&object.Method{Name: "ErrorLine", Arity: -1, Static: true, Native: consoleErrorLine})
		t.AddMethod(&object.Method{Name: "ReadLine", Arity: 0, Static: true, Native: consoleReadLine})
		return t
	})
}

// Write/WriteLine/Error/ErrorLine return the length of the formatted text
// written, mirroring the host's original Console type.
func consoleWrite(rt value.Runtime, args []value.Value) value.Value {
	text := formatCall(rt, args)
	rt.Write(text)
	return value.Int(int64(len(text)))
}

func consoleWriteLine(rt value.Runtime, args []value.Value) value.Value {
	text := formatCall(rt, args)
	rt.Write(text + "\n")
	return value.Int(int64(len(text)))
}

func consoleError(rt value.Runtime, args []value.Value) value.Value {
	text := formatCall(rt, args)
	rt.WriteErr(text)
	return value.Int(int64(len(text)))
}

func consoleErrorLine(rt value.Runtime, args []value.Value) value.Value {
	text := formatCall(rt, args)
	rt.WriteErr(text + "\n")
	return value.Int(int64(len(text)))
}

func consoleReadLine(rt value.Runtime, args []value.Value) value.Value {
	line, ok := rt.ReadLine()
	if !ok {
		return value.NullValue
	}
	return value.Str(line)
}
