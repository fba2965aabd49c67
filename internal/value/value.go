// Package value implements Vela's runtime value model: a small tagged
// union of primitive and heap values, plus the coercion rules operators
// rely on. Object/Callable/NativeFunction values are deliberately described
// here only through interfaces so that this package has no dependency on
// the object registry or the evaluator (they depend on it).
package value

import (
	"fmt"
	"strconv"

	"github.com/vela-lang/vela/internal/ast"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	KNull Kind = iota
	KInteger
	KReal
	KBoolean
	KString
	KObject
	KAstNode
	KNativeFunction
	KCallable
	KError
)

func (k Kind) String() string {
	switch k {
	case KNull:
		return "Null"
	case KInteger:
		return "Integer"
	case KReal:
		return "Real"
	case KBoolean:
		return "Boolean"
	case KString:
		return "String"
	case KObject:
		return "Object"
	case KAstNode:
		return "AstNode"
	case KNativeFunction:
		return "NativeFunction"
	case KCallable:
		return "Callable"
	case KError:
		return "Error"
	}
	return "?"
}

// Value is the interface every runtime value satisfies.
type Value interface {
	Kind() Kind
	String() string
}

// Runtime is the set of evaluator services a NativeFunction or an
// object-backed Value needs — defined here (the consumer) rather than in
// the evaluator package, so intrinsics and the object registry can depend
// on it without importing the evaluator.
type Runtime interface {
	// Invoke calls a Callable/NativeFunction/AstNode-function value with
	// the given positional arguments and returns its result.
	Invoke(callee Value, args []Value) Value
	// Raise aborts the current evaluation with a RuntimeError unwind of
	// the given kind.
	Raise(kind string, format string, args ...any)
	// NewInstance constructs a new object of the named type.
	NewInstance(typeName string, args []Value) Value
	// TypeOf returns the Type value (itself a Value) describing v.
	TypeOf(v Value) Value
	Write(s string)
	WriteErr(s string)
	ReadLine() (string, bool)
	SleepMillis(ms int64)
	EvalSource(src string) Value
	Ticks() int64
	// Display renders v the way print/string-concatenation do, calling a
	// user-defined ToString/0 method when v is an Object that has one.
	Display(v Value) string
}

// ---- Null ----

type Null struct{}

func (Null) Kind() Kind     { return KNull }
func (Null) String() string { return "<empty>" }

var NullValue = Null{}

// ---- Integer ----

type Integer struct{ Value int64 }

func (Integer) Kind() Kind       { return KInteger }
func (i Integer) String() string { return strconv.FormatInt(i.Value, 10) }

// ---- Real ----

type Real struct{ Value float64 }

func (Real) Kind() Kind       { return KReal }
func (r Real) String() string { return strconv.FormatFloat(r.Value, 'g', -1, 64) }

// ---- Boolean ----

type Boolean struct{ Value bool }

func (Boolean) Kind() Kind { return KBoolean }
func (b Boolean) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// ---- String ----

type String struct{ Value string }

func (String) Kind() Kind       { return KString }
func (s String) String() string { return s.Value }

// ---- AstNode: a non-owning reference to a parser-owned node, used to
// carry function declarations/anonymous functions as first-class values.

type AstNode struct {
	Node   ast.Node
	Params []ast.Param
}

func (AstNode) Kind() Kind       { return KAstNode }
func (AstNode) String() string   { return "<function>" }

// ---- NativeFunction: a host-side callable.

type NativeFn func(rt Runtime, args []Value) Value

type NativeFunction struct {
	Name string
	Fn   NativeFn
}

func (NativeFunction) Kind() Kind         { return KNativeFunction }
func (n NativeFunction) String() string   { return "<native " + n.Name + ">" }
func (n NativeFunction) Call(rt Runtime, args []Value) Value {
	return n.Fn(rt, args)
}

// ---- Callable: a bound call target.

type Callable struct {
	Instance  Value // optional: the bound `this`, nil for free functions
	Node      *AstNode
	Native    *NativeFunction
	Name      string
	Static    bool
	ClassName string // set for a static method reached via Static=true, no Instance
}

func (Callable) Kind() Kind     { return KCallable }
func (c Callable) String() string {
	return "<callable " + c.Name + ">"
}

// ---- Error: a value-level sentinel/soft-failure carrier.

type ErrorKind string

const (
	ErrOutOfMemory    ErrorKind = "OutOfMemory"
	ErrDivideByZero   ErrorKind = "DivideByZero"
	ErrTypeMismatch   ErrorKind = "TypeMismatch"
	ErrDuplicateName  ErrorKind = "DuplicateName"
	ErrUndefinedSym   ErrorKind = "UndefinedSymbol"
	ErrParse          ErrorKind = "Parse"
	ErrCollectionEnd  ErrorKind = "CollectionEnd"
	ErrUnspecified    ErrorKind = "Unspecified"
)

type Error struct {
	ErrKind ErrorKind
	Message string
}

func (Error) Kind() Kind     { return KError }
func (Error) String() string { return "<Error>" }

// NewError constructs a value-level Error sentinel.
func NewError(kind ErrorKind, format string, args ...any) Error {
	return Error{ErrKind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsCollectionEnd reports whether v is the Error(CollectionEnd) sentinel
// used to terminate enumeration.
func IsCollectionEnd(v Value) bool {
	e, ok := v.(Error)
	return ok && e.ErrKind == ErrCollectionEnd
}

func Bool(b bool) Boolean { return Boolean{Value: b} }
func Int(i int64) Integer { return Integer{Value: i} }
func Flt(f float64) Real  { return Real{Value: f} }
func Str(s string) String { return String{Value: s} }
