package interp

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	verrors "github.com/vela-lang/vela/internal/errors"
	"github.com/vela-lang/vela/internal/value"
)

// The four control-flow unwinds are modeled as distinct panic payload
// types, each recovered at the construct able to handle it: returnSignal
// and breakoutSignal at call dispatch, breakSignal/continueSignal at the
// nearest loop. A RuntimeError is a *verrors.SourceError panic, recovered
// only at Run; EvalSource lets it propagate to its caller.
type returnSignal struct{ value value.Value }
type breakSignal struct{}
type continueSignal struct{}
type breakoutSignal struct{}

// raise aborts the current evaluation with a RuntimeError unwind,
// attaching the position of the node most recently visited.
func (ip *Interpreter) raise(kind, format string, args ...any) {
	panic(verrors.New(ip.pos(), kind, fmt.Sprintf(format, args...), ip.source, ip.file))
}

// Raise implements value.Runtime.Raise for intrinsics.
func (ip *Interpreter) Raise(kind string, format string, args ...any) {
	ip.raise(kind, format, args...)
}

// runBody evaluates a call/method body, catching ReturnUnwind and
// BreakoutUnwind: the former supplies the call's result, the latter acts
// as a non-valued return. Any other panic (BreakUnwind, ContinueUnwind
// escaping their loop, or a RuntimeError) propagates unchanged.
func (ip *Interpreter) runBody(body ast.Statement) (result value.Value) {
	result = value.NullValue
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch sig := r.(type) {
		case returnSignal:
			result = sig.value
		case breakoutSignal:
			result = value.NullValue
		default:
			panic(r)
		}
	}()
	if body != nil {
		result = ip.evalStatement(body)
	}
	return result
}

// runLoopBody evaluates one iteration of a loop body, catching
// BreakUnwind (stop signal returned true) and ContinueUnwind (iteration
// ends early, loop continues). Other panics propagate.
func (ip *Interpreter) runLoopBody(body ast.Statement) (stop bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch r.(type) {
		case breakSignal:
			stop = true
		case continueSignal:
			stop = false
		default:
			panic(r)
		}
	}()
	if body != nil {
		ip.evalStatement(body)
	}
	return false
}
