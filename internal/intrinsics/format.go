package intrinsics

import (
	"strings"

	"github.com/vela-lang/vela/internal/scope"
	"github.com/vela-lang/vela/internal/value"
)

// maxFormatArgs caps the extra arguments a single `{…}` format string can
// consume, matching the fixed six-slot positional substitution of the
// original print/Console formatter.
const maxFormatArgs = 6

// formatPlaceholders walks format left to right; each `{...}` run consumes
// the next not-yet-used extra argument in order (not a numbered index) and
// is replaced with its display string. A brace run past the sixth extra
// argument, or with no matching `}`, is left untouched.
func formatPlaceholders(rt value.Runtime, format string, args []value.Value) string {
	if len(args) > maxFormatArgs {
		args = args[:maxFormatArgs]
	}
	var sb strings.Builder
	next := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '{' {
			sb.WriteByte(c)
			continue
		}
		j := strings.IndexByte(format[i:], '}')
		if j < 0 {
			sb.WriteByte(c)
			continue
		}
		j += i
		if next >= len(args) {
			sb.WriteString(format[i : j+1])
			i = j
			continue
		}
		sb.WriteString(rt.Display(args[next]))
		next++
		i = j
	}
	return sb.String()
}

func formatCall(rt value.Runtime, args []value.Value) string {
	if len(args) == 0 {
		return ""
	}
	format, ok := args[0].(value.String)
	if !ok {
		return rt.Display(args[0])
	}
	return formatPlaceholders(rt, format.Value, args[1:])
}

// registerFreeFunctions installs the global free functions: print/println/
// eprint/eprintln are any-arity and take a `{…}` format string and up to six
// extra positional arguments; ReadLine takes none; sleep and eval take one.
func registerFreeFunctions(global *scope.Scope) {
	addFunc(global, "print", -1, func(rt value.Runtime, args []value.Value) value.Value {
		rt.Write(formatCall(rt, args))
		return value.NullValue
	})
	addFunc(global, "println", -1, func(rt value.Runtime, args []value.Value) value.Value {
		rt.Write(formatCall(rt, args) + "\n")
		return value.NullValue
	})
	addFunc(global, "eprint", -1, func(rt value.Runtime, args []value.Value) value.Value {
		rt.WriteErr(formatCall(rt, args))
		return value.NullValue
	})
	addFunc(global, "eprintln", -1, func(rt value.Runtime, args []value.Value) value.Value {
		rt.WriteErr(formatCall(rt, args) + "\n")
		return value.NullValue
	})
	addFunc(global, "ReadLine", 0, func(rt value.Runtime, args []value.Value) value.Value {
		line, ok := rt.ReadLine()
		if !ok {
			return value.NullValue
		}
		return value.Str(line)
	})
	addFunc(global, "sleep", 1, func(rt value.Runtime, args []value.Value) value.Value {
		ms, err := value.ToInteger(args[0])
		if err != nil {
			rt.Raise("CannotConvertToInteger", "%s", err)
		}
		rt.SleepMillis(ms)
		return value.NullValue
	})
	addFunc(global, "eval", 1, func(rt value.Runtime, args []value.Value) value.Value {
		src, ok := args[0].(value.String)
		if !ok {
			rt.Raise("TypeMismatch", "eval expects a String argument")
		}
		return rt.EvalSource(src.Value)
	})
}
