// Package interp implements Vela's tree-walking evaluator: a visitor over
// internal/ast that reads and writes internal/value values, allocates
// internal/object instances, and dispatches to internal/intrinsics.
// Control flow (return/break/continue/breakout) and runtime errors are
// both modeled as typed panics, recovered at the nearest construct able to
// handle them — a call, a loop, or the top-level Run.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/vela-lang/vela/internal/ast"
	verrors "github.com/vela-lang/vela/internal/errors"
	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/parser"
	"github.com/vela-lang/vela/internal/scope"
	"github.com/vela-lang/vela/internal/token"
	"github.com/vela-lang/vela/internal/value"
)

// Interpreter holds everything a running script shares: the type
// registry, the scope chain, and the host I/O streams intrinsics read
// and write through.
type Interpreter struct {
	Registry *object.Registry

	global *scope.Scope
	scope  *scope.Scope

	depth    int
	maxDepth int

	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader

	rnd   *rand.Rand
	start time.Time

	source      string
	file        string
	currentNode ast.Node
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithMaxDepth overrides the scope stack cap (default 100, per the spec's
// StackOverflow guarantee).
func WithMaxDepth(n int) Option {
	return func(ip *Interpreter) { ip.maxDepth = n }
}

// WithSeed seeds the RNG used by Math/Runtime intrinsics.
func WithSeed(seed int64) Option {
	return func(ip *Interpreter) { ip.rnd = rand.New(rand.NewSource(seed)) }
}

// New creates an Interpreter writing to out/errOut and reading from in,
// with a fresh global scope populated by the register callback (e.g.
// intrinsics.Register).
func New(out, errOut io.Writer, in io.Reader, register func(*object.Registry, *scope.Scope), opts ...Option) *Interpreter {
	ip := &Interpreter{
		Registry: object.NewRegistry(),
		global:   scope.New(),
		maxDepth: 100,
		out:      out,
		errOut:   errOut,
		in:       bufio.NewReader(in),
		rnd:      rand.New(rand.NewSource(1)),
		start:    time.Now(),
	}
	ip.scope = ip.global
	for _, opt := range opts {
		opt(ip)
	}
	ip.registerCoreTypes()
	if register != nil {
		register(ip.Registry, ip.global)
	}
	return ip
}

// Run evaluates a full program against the interpreter's global scope,
// translating any RuntimeError unwind into a returned error rather than
// letting it escape as a panic.
func (ip *Interpreter) Run(prog *ast.Program, source, file string) (result value.Value, err error) {
	ip.source, ip.file = source, file
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*verrors.SourceError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	result = value.NullValue
	for _, stmt := range prog.Statements {
		result = ip.evalStatement(stmt)
	}
	return result, nil
}

// EvalSource implements value.Runtime.EvalSource: a fresh lexer/parser
// pair produces an AST which is then interpreted on the *current*
// evaluator stack, so variables visible to the caller remain visible to
// the evaluated text.
func (ip *Interpreter) EvalSource(src string) value.Value {
	prog, errs, lexErrs := parser.Parse(src)
	if len(errs) > 0 || len(lexErrs) > 0 {
		msg := "parse error"
		if len(errs) > 0 {
			msg = errs[0].Message
		} else if len(lexErrs) > 0 {
			msg = lexErrs[0]
		}
		ip.raise("Parse", "%s", msg)
	}
	var result value.Value = value.NullValue
	for _, stmt := range prog.Statements {
		result = ip.evalStatement(stmt)
	}
	return result
}

// pushScope enters a new child frame, raising StackOverflow if the depth
// cap is exceeded; callers restore with popScope via defer.
func (ip *Interpreter) pushScope() *scope.Scope {
	outer := ip.scope
	ip.depth++
	if ip.depth > ip.maxDepth {
		ip.depth--
		ip.raise("StackOverflow", "scope stack exceeded %d frames", ip.maxDepth)
	}
	ip.scope = outer.Child()
	return outer
}

func (ip *Interpreter) popScope(outer *scope.Scope) {
	for _, v := range ip.scope.LocalValues() {
		release(v)
	}
	ip.scope = outer
	ip.depth--
}

// retain returns v, bumping its refcount first when it's a heap Object. It
// converts a borrowed read (a variable, a field) into a fresh owned copy
// for the caller, matching the owned-reference contract every
// evalExpression call honors: release is always safe to call later.
func retain(v value.Value) value.Value {
	if o, ok := v.(*object.Object); ok {
		o.Retain()
	}
	return v
}

// release drops the caller's claim on v when it's a heap Object, balancing
// a prior retain/NewObject. No-op for every other value kind.
func release(v value.Value) {
	if o, ok := v.(*object.Object); ok {
		o.Release()
	}
}

func (ip *Interpreter) note(n ast.Node) {
	if n != nil {
		ip.currentNode = n
	}
}

func (ip *Interpreter) pos() token.Position {
	if ip.currentNode != nil {
		return ip.currentNode.Pos()
	}
	return token.Position{}
}

// Write and WriteErr implement value.Runtime for Console/print intrinsics.
func (ip *Interpreter) Write(s string)    { fmt.Fprint(ip.out, s) }
func (ip *Interpreter) WriteErr(s string) { fmt.Fprint(ip.errOut, s) }

// ReadLine implements value.Runtime.
func (ip *Interpreter) ReadLine() (string, bool) {
	line, err := ip.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, true
}

// SleepMillis implements value.Runtime.
func (ip *Interpreter) SleepMillis(ms int64) { time.Sleep(time.Duration(ms) * time.Millisecond) }

// Ticks implements value.Runtime: milliseconds since interpreter creation.
func (ip *Interpreter) Ticks() int64 { return time.Since(ip.start).Milliseconds() }

// Rand exposes the interpreter's seeded RNG to Math/Runtime intrinsics.
func (ip *Interpreter) Rand() *rand.Rand { return ip.rnd }

// AllTypes exposes every type instantiated so far, for Runtime::DumpStats.
func (ip *Interpreter) AllTypes() map[string]*object.Type { return ip.Registry.All() }

// GlobalScope exposes the outermost scope, for a host program registering
// an optional module's bindings alongside the core intrinsics callback.
func (ip *Interpreter) GlobalScope() *scope.Scope { return ip.global }
