// Package intrinsics registers the optional built-in types and free
// functions a hosting program wires into a fresh interpreter: Slice,
// String, Complex, Console, Math, Debug, and Runtime, plus the free
// functions print/println/eprint/eprintln/sleep/eval. Array and Range are
// registered directly by internal/interp instead, since array literals and
// range expressions are core grammar productions rather than optional
// modules.
package intrinsics

import (
	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/scope"
	"github.com/vela-lang/vela/internal/value"
)

// Register is the callback passed as interp.New's register parameter: it
// installs every intrinsic type factory into the registry and every free
// function into the global scope.
func Register(reg *object.Registry, global *scope.Scope) {
	registerSlice(reg)
	registerString(reg)
	registerComplex(reg)
	registerConsole(reg)
	registerMath(reg)
	registerDebug(reg)
	registerRuntime(reg)
	registerFreeFunctions(global)
}

// addFunc binds a free function under name/arity in the global scope.
func addFunc(global *scope.Scope, name string, arity int, fn value.NativeFn) {
	global.Add(name, &scope.Binding{
		Value: value.NativeFunction{Name: name, Fn: fn},
		Flags: scope.Function | scope.NativeFunction,
		Arity: arity,
	})
}
