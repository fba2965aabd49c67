// Package object implements the object/type registry: runtime class
// metadata, reference-counted instances, and the intrinsic type singleton
// registry.
package object

import (
	"fmt"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/value"
)

// Method is a resolvable class member: either an AST method body or a
// native implementation. Exactly one of Node/Native is set.
type Method struct {
	Name   string
	Arity  int // -1 for vararg/any-arity
	Params []ast.Param
	Node   ast.Statement // method body, nil for native methods
	Native value.NativeFn
	Static bool
}

// Field describes a declared instance or static field.
type Field struct {
	Name    string
	Const   bool
	Static  bool
	Default ast.Expression // nil => defaults to Null
}

// Type is runtime class/type metadata. Both user-defined classes and
// intrinsic types (Array, Range, ...) are represented as a *Type; intrinsic
// types are created lazily as process-wide singletons (see Registry).
type Type struct {
	Name         string
	Base         *Type
	Fields       map[string]*Field
	Methods      map[string][]*Method // keyed by bare name; overloads differentiated by arity within the slice
	Constructors map[string][]*Method // keyed by "new"; class-level (static) ctor under its own flag
	NestedTypes  map[string]*Type
	StaticFields map[string]value.Value
	ClassCtor    *Method // static "class new" constructor, run once per type
	ClassCtorRan bool
	Intrinsic    bool

	objectCount int
}

// NewType creates an empty Type named name, optionally inheriting from base.
func NewType(name string, base *Type) *Type {
	return &Type{
		Name:         name,
		Base:         base,
		Fields:       make(map[string]*Field),
		Methods:      make(map[string][]*Method),
		Constructors: make(map[string][]*Method),
		NestedTypes:  make(map[string]*Type),
		StaticFields: make(map[string]value.Value),
	}
}

func (t *Type) Kind() value.Kind { return value.KObject }
func (t *Type) String() string   { return "type " + t.Name }

// ObjectCount returns this type's live-instance census.
func (t *Type) ObjectCount() int { return t.objectCount }

// AddMethod registers a method, appending to the overload list for its name.
func (t *Type) AddMethod(m *Method) {
	t.Methods[m.Name] = append(t.Methods[m.Name], m)
}

// AddConstructor registers a constructor overload.
func (t *Type) AddConstructor(m *Method) {
	t.Constructors["new"] = append(t.Constructors["new"], m)
}

// GetField looks up a field declaration by name, walking the base chain.
func (t *Type) GetField(name string) (*Field, *Type) {
	for cur := t; cur != nil; cur = cur.Base {
		if f, ok := cur.Fields[name]; ok {
			return f, cur
		}
	}
	return nil, nil
}

// GetMethod resolves a method by name and arity: an exact-arity overload
// at a given level in the base chain wins; a vararg overload at that same
// level is only used when no exact match exists there.
func (t *Type) GetMethod(name string, arity int) (*Method, bool) {
	for cur := t; cur != nil; cur = cur.Base {
		overloads, ok := cur.Methods[name]
		if !ok {
			continue
		}
		var wildcard *Method
		for _, m := range overloads {
			if m.Arity == arity {
				return m, true
			}
			if m.Arity < 0 {
				wildcard = m
			}
		}
		if wildcard != nil {
			return wildcard, true
		}
		return nil, false
	}
	return nil, false
}

// GetConstructor resolves a constructor by arity, preferring an exact
// match and falling back to a vararg overload. The nearest type in the base
// chain that declares any constructor decides, so a derived class with no
// constructor of its own uses its base's.
func (t *Type) GetConstructor(arity int) (*Method, bool) {
	for cur := t; cur != nil; cur = cur.Base {
		overloads, ok := cur.Constructors["new"]
		if !ok {
			continue
		}
		var wildcard *Method
		for _, m := range overloads {
			if m.Arity == arity {
				return m, true
			}
			if m.Arity < 0 {
				wildcard = m
			}
		}
		if wildcard != nil {
			return wildcard, true
		}
		return nil, false
	}
	return nil, false
}

// HasMethod reports whether a method named name is declared anywhere in t's
// base chain, regardless of arity — used to decide whether a bare member
// access like `obj.Count` should resolve to a deferred Callable, before the
// call site's argument count is known to pick an overload with GetMethod.
func (t *Type) HasMethod(name string) bool {
	for cur := t; cur != nil; cur = cur.Base {
		if len(cur.Methods[name]) > 0 {
			return true
		}
	}
	return false
}

// InheritsFrom reports whether t is target or derives from it.
func (t *Type) InheritsFrom(target *Type) bool {
	for cur := t; cur != nil; cur = cur.Base {
		if cur == target || cur.Name == target.Name {
			return true
		}
	}
	return false
}

// Object is a reference-counted runtime instance of a Type.
type Object struct {
	Type     *Type
	refCount int
	Fields   map[string]value.Value
	// Extra holds host-side state for intrinsic objects (e.g. the backing
	// slice for Array, the enumerator cursor for Range, ...). Opaque to the
	// evaluator; intrinsics type-assert it to their own state struct.
	Extra any
}

// NewObject allocates a fresh instance with refcount 1, incrementing t's
// per-type object census.
func NewObject(t *Type) *Object {
	t.objectCount++
	return &Object{Type: t, refCount: 1, Fields: make(map[string]value.Value)}
}

func (o *Object) Kind() value.Kind { return value.KObject }
func (o *Object) String() string   { return fmt.Sprintf("%s instance", o.Type.Name) }

// Retain increments the reference count, called whenever a Value copy of
// this Object is produced (assignment, parameter passing, return).
func (o *Object) Retain() *Object {
	o.refCount++
	return o
}

// Release decrements the reference count; at zero the object self-destructs
// and the per-type census is decremented. Releasing an already-dead object
// is a no-op, so a stray double-release cannot drive the census negative.
func (o *Object) Release() {
	if o == nil || o.refCount <= 0 {
		return
	}
	o.refCount--
	if o.refCount <= 0 {
		o.Type.objectCount--
	}
}

// RefCount returns the current strong-reference count, exposed for tests.
func (o *Object) RefCount() int { return o.refCount }

// IsInstanceOf reports whether o's type is or derives from target.
func (o *Object) IsInstanceOf(target *Type) bool {
	return o != nil && o.Type.InheritsFrom(target)
}
