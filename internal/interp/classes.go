package interp

import (
	"strings"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/scope"
	"github.com/vela-lang/vela/internal/value"
)

// evalClassDeclaration builds an object.Type from a class body and
// registers it under its name, both in the type registry (for `new`/
// static access) and as a Class-flagged scope binding (for `use`).
func (ip *Interpreter) evalClassDeclaration(c *ast.ClassDeclaration) value.Value {
	var base *object.Type
	if c.Base != "" {
		b, ok := ip.Registry.Get(c.Base)
		if !ok {
			ip.raise("UnknownIdentifier", "undefined base class %q", c.Base)
		}
		base = b
	}
	t := object.NewType(c.Name, base)

	for _, f := range c.Fields {
		t.Fields[f.Name] = &object.Field{Name: f.Name, Const: f.Const, Static: f.Static, Default: f.Default}
		if f.Static {
			if f.Default != nil {
				t.StaticFields[f.Name] = ip.evalExpression(f.Default)
			} else {
				t.StaticFields[f.Name] = value.NullValue
			}
		}
	}

	for _, m := range c.Methods {
		method := &object.Method{Name: m.Name, Arity: len(m.Params), Params: m.Params, Node: m.Body, Static: m.Static}
		switch {
		case m.Ctor && m.Static:
			t.ClassCtor = method
		case m.Ctor:
			t.AddConstructor(method)
		default:
			t.AddMethod(method)
		}
	}

	for _, n := range c.Nested {
		ip.evalClassDeclaration(n)
		nt, _ := ip.Registry.Get(n.Name)
		t.NestedTypes[n.Name] = nt
	}

	ip.Registry.Define(t)
	ip.scope.Add(c.Name, &scope.Binding{Value: t, Flags: scope.Class, Arity: -1})
	return value.NullValue
}

// evalEnumDeclaration represents an enum as a Type whose only members are
// auto-incrementing Integer static fields, reachable via `Name::Member`.
func (ip *Interpreter) evalEnumDeclaration(e *ast.EnumDeclaration) value.Value {
	t := object.NewType(e.Name, nil)
	for _, m := range e.Members {
		t.StaticFields[m.Name] = value.Int(m.Value)
	}
	ip.Registry.Define(t)
	ip.scope.Add(e.Name, &scope.Binding{Value: t, Flags: scope.Class | scope.Enum, Arity: -1})
	return value.NullValue
}

// evalNewObject constructs an instance: the class-level constructor runs
// once per type, then field defaults are evaluated down the base chain,
// then the instance constructor matching the argument count runs (a missing
// one is an error only when args were given), and finally each `{ .field = expr }` initializer overwrites the
// named field.
func (ip *Interpreter) evalNewObject(n *ast.NewObject) value.Value {
	t, ok := ip.Registry.Get(n.ClassName)
	if !ok {
		ip.raise("UnknownIdentifier", "undefined class %q", n.ClassName)
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = ip.evalExpression(a)
	}
	obj := ip.createObject(t, args)
	for _, init := range n.Inits {
		f, _ := t.GetField(init.Name)
		if f == nil {
			ip.raise("UnknownMember", "%s has no field %q", t.Name, init.Name)
		}
		old := obj.Fields[init.Name]
		obj.Fields[init.Name] = ip.evalExpression(init.Expr)
		release(old)
	}
	return obj
}

func (ip *Interpreter) createObject(t *object.Type, args []value.Value) *object.Object {
	ip.runClassCtorOnce(t)
	obj := object.NewObject(t)
	ip.initFields(t, obj)
	if ctor, ok := t.GetConstructor(len(args)); ok {
		ip.invokeMethod(t, obj, ctor, args)
	} else if len(args) > 0 {
		ip.raise("NoMatchingConstructor", "no constructor on %s accepts %d argument(s)", t.Name, len(args))
	}
	return obj
}

// initFields walks the base chain from root to t, evaluating each
// non-static field's default expression; a derived class's own field of
// the same name (none, since fields aren't shadowed here) would otherwise
// be skipped, so the walk always proceeds outermost-first.
func (ip *Interpreter) initFields(t *object.Type, obj *object.Object) {
	var chain []*object.Type
	for cur := t; cur != nil; cur = cur.Base {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for name, f := range chain[i].Fields {
			if f.Static {
				continue
			}
			if f.Default != nil {
				obj.Fields[name] = ip.evalExpression(f.Default)
			} else {
				obj.Fields[name] = value.NullValue
			}
		}
	}
}

func (ip *Interpreter) runClassCtorOnce(t *object.Type) {
	if t.ClassCtorRan {
		return
	}
	t.ClassCtorRan = true
	if t.ClassCtor != nil {
		ip.invokeMethod(t, nil, t.ClassCtor, nil)
	}
}

// evalGetMember dispatches `.` (instance) and `::` (static) member access.
func (ip *Interpreter) evalGetMember(g *ast.GetMember) value.Value {
	if g.Static {
		name, ok := g.Target.(*ast.Name)
		if !ok {
			ip.raise("UnknownMember", "static member access requires a class name")
		}
		return ip.staticMember(name.Value, g.Member)
	}
	target := ip.evalExpression(g.Target)
	return ip.instanceMember(target, g.Member)
}

func (ip *Interpreter) staticMember(className, member string) value.Value {
	t, ok := ip.Registry.Get(className)
	if !ok {
		ip.raise("UnknownIdentifier", "undefined class %q", className)
	}
	ip.runClassCtorOnce(t)
	if v, ok := t.StaticFields[member]; ok {
		return retain(v)
	}
	if t.HasMethod(member) {
		return value.Callable{ClassName: className, Name: member, Static: true}
	}
	ip.raise("UnknownMember", "class %q has no static member %q", className, member)
	return value.NullValue
}

// instanceMember resolves `.member` against an evaluated target. target is
// an owned reference: a field read or an unresolved/QueryService access
// consumes it (released here, with the field value retained for the
// caller); a method access hands target onward as the resulting Callable's
// receiver instead of releasing it, since invoking that Callable will
// consume it as the method's "this" binding.
func (ip *Interpreter) instanceMember(target value.Value, member string) value.Value {
	if s, ok := target.(value.String); ok {
		return ip.stringMember(s, member)
	}
	if t, ok := target.(*object.Type); ok {
		return ip.typeMember(t, member)
	}
	obj, ok := target.(*object.Object)
	if !ok {
		ip.raise("UnknownMember", "%s has no member %q", target.Kind(), member)
	}
	if member == "QueryService" {
		release(target)
		return value.NativeFunction{Name: "QueryService", Fn: func(rt value.Runtime, args []value.Value) value.Value {
			if len(args) != 1 {
				ip.raise("WrongNumberArguments", "QueryService expects 1 argument, got %d", len(args))
			}
			id, ok := args[0].(value.String)
			if !ok {
				ip.raise("TypeMismatch", "QueryService expects a String argument")
			}
			return value.Bool(hasCapability(obj.Type, id.Value))
		}}
	}
	if f, _ := obj.Type.GetField(member); f != nil {
		release(target)
		if v, ok := obj.Fields[member]; ok {
			return retain(v)
		}
		return value.NullValue
	}
	if obj.Type.HasMethod(member) {
		return value.Callable{Instance: obj, Name: member}
	}
	release(target)
	ip.raise("UnknownMember", "%s has no member %q", obj.Type.Name, member)
	return value.NullValue
}

// typeMember gives scripts holding a bare Type (as returned by typeof) a
// small reflective surface: ObjectCount() and the type's own name.
func (ip *Interpreter) typeMember(t *object.Type, member string) value.Value {
	switch member {
	case "ObjectCount":
		return value.NativeFunction{Name: "ObjectCount", Fn: func(rt value.Runtime, args []value.Value) value.Value {
			return value.Int(int64(t.ObjectCount()))
		}}
	case "Name":
		return value.Str(t.Name)
	}
	ip.raise("UnknownMember", "type %q has no member %q", t.Name, member)
	return value.NullValue
}

// hasCapability answers a QueryService probe by checking for the canonical
// method each named capability is built on, rather than tracking a separate
// flag set per type.
func hasCapability(t *object.Type, id string) bool {
	switch id {
	case "Enumerable":
		if _, ok := t.GetMethod("next", 0); ok {
			return true
		}
		_, ok := t.GetMethod("get_enumerator", 0)
		return ok
	case "Cloneable":
		_, ok := t.GetMethod("Clone", 0)
		return ok
	case "Sliceable":
		if _, ok := t.GetMethod("Slice", 1); ok {
			return true
		}
		_, ok := t.GetMethod("Slice", 2)
		return ok
	}
	return false
}

// stringMember provides the handful of methods Strings expose directly,
// since a String is a primitive Value rather than an *object.Object and so
// cannot carry a Type to dispatch through.
func (ip *Interpreter) stringMember(s value.String, member string) value.Value {
	switch member {
	case "length", "Length":
		return value.NativeFunction{Name: "length", Fn: func(rt value.Runtime, args []value.Value) value.Value {
			return value.Int(int64(len(s.Value)))
		}}
	case "upper":
		return value.NativeFunction{Name: "upper", Fn: func(rt value.Runtime, args []value.Value) value.Value {
			return value.Str(strings.ToUpper(s.Value))
		}}
	case "lower":
		return value.NativeFunction{Name: "lower", Fn: func(rt value.Runtime, args []value.Value) value.Value {
			return value.Str(strings.ToLower(s.Value))
		}}
	case "trim":
		return value.NativeFunction{Name: "trim", Fn: func(rt value.Runtime, args []value.Value) value.Value {
			return value.Str(strings.TrimSpace(s.Value))
		}}
	case "contains":
		return value.NativeFunction{Name: "contains", Fn: func(rt value.Runtime, args []value.Value) value.Value {
			if len(args) != 1 {
				ip.raise("WrongNumberArguments", "contains expects 1 argument, got %d", len(args))
			}
			needle, ok := args[0].(value.String)
			if !ok {
				ip.raise("TypeMismatch", "contains expects a String argument")
			}
			return value.Bool(strings.Contains(s.Value, needle.Value))
		}}
	case "Clone":
		// Strings are immutable value types in this model, so cloning one
		// just hands back an equal copy rather than any kind of reference.
		return value.NativeFunction{Name: "Clone", Fn: func(rt value.Runtime, args []value.Value) value.Value {
			return value.Str(s.Value)
		}}
	case "Slice":
		return value.NativeFunction{Name: "Slice", Fn: func(rt value.Runtime, args []value.Value) value.Value {
			if len(args) != 2 {
				ip.raise("WrongNumberArguments", "Slice expects 2 arguments, got %d", len(args))
			}
			start, err1 := value.ToInteger(args[0])
			length, err2 := value.ToInteger(args[1])
			if err1 != nil || err2 != nil {
				ip.raise("CannotConvertToInteger", "Slice requires integer start and length")
			}
			if length < 0 {
				length = int64(len(s.Value)) - start
			}
			if start < 0 || length < 0 || start+length > int64(len(s.Value)) {
				ip.raise("IndexOutOfRange", "Slice(%d, %d) out of range for string of length %d", start, length, len(s.Value))
			}
			return value.Str(s.Value[start : start+length])
		}}
	}
	ip.raise("UnknownMember", "String has no member %q", member)
	return value.NullValue
}

// evalInvoke evaluates a call expression. A direct `name(args)` call
// resolves the callee by name and call-site arity first, which is how
// overloaded top-level functions are distinguished; any other callee
// expression (a member access, an array element, a parenthesized
// anonymous function) is evaluated generically and dispatched by value.
func (ip *Interpreter) evalInvoke(inv *ast.InvokeFunction) value.Value {
	args := make([]value.Value, len(inv.Args))
	for i, a := range inv.Args {
		args[i] = ip.evalExpression(a)
	}
	if name, ok := inv.Callee.(*ast.Name); ok {
		if b, ok := ip.scope.Find(name.Value, len(args), false); ok {
			return ip.invokeValue(b.Value, args)
		}
		ip.raise("UnknownIdentifier", "undefined function %q/%d", name.Value, len(args))
	}
	callee := ip.evalExpression(inv.Callee)
	return ip.invokeValue(callee, args)
}

// invokeValue dispatches a call target by its concrete value kind: a
// NativeFunction runs directly, a Callable resolves against its bound
// instance or static class, an AstNode runs as a free function, and a
// String (the ambiguous-overload sentinel evalName returns) re-resolves by
// name and the caller's argument count.
func (ip *Interpreter) invokeValue(callee value.Value, args []value.Value) value.Value {
	switch f := callee.(type) {
	case value.NativeFunction:
		return f.Call(ip, args)
	case value.Callable:
		return ip.invokeCallable(f, args)
	case value.AstNode:
		return ip.invokeAstFunction(f, nil, args)
	case value.String:
		if b, ok := ip.scope.Find(f.Value, len(args), false); ok {
			return ip.invokeValue(b.Value, args)
		}
		ip.raise("UnknownIdentifier", "undefined function %q/%d", f.Value, len(args))
	default:
		ip.raise("TypeMismatch", "%s is not callable", callee.Kind())
	}
	return value.NullValue
}

func (ip *Interpreter) invokeCallable(c value.Callable, args []value.Value) value.Value {
	var t *object.Type
	var instance *object.Object
	switch {
	case c.Instance != nil:
		instance, _ = c.Instance.(*object.Object)
		if instance != nil {
			t = instance.Type
		}
	case c.ClassName != "":
		var ok bool
		t, ok = ip.Registry.Get(c.ClassName)
		if !ok {
			ip.raise("UnknownIdentifier", "undefined class %q", c.ClassName)
		}
	}
	if t == nil {
		ip.raise("MethodNotFound", "cannot resolve method %q", c.Name)
	}
	m, ok := t.GetMethod(c.Name, len(args))
	if !ok {
		ip.raise("MethodNotFound", "%s has no method %s/%d", t.Name, c.Name, len(args))
	}
	return ip.invokeMethod(t, instance, m, args)
}

// invokeAstFunction runs a plain (non-method) function/anonymous-function
// value: a fresh child scope binds `this` (if any) and the parameters
// positionally, then the body runs under runBody's return/breakout catch.
func (ip *Interpreter) invokeAstFunction(f value.AstNode, this value.Value, args []value.Value) value.Value {
	if len(f.Params) != len(args) {
		ip.raise("WrongNumberArguments", "expected %d argument(s), got %d", len(f.Params), len(args))
	}
	outer := ip.pushScope()
	defer ip.popScope(outer)
	if this != nil {
		ip.scope.Add("this", &scope.Binding{Value: this, Arity: -1})
	}
	for i, p := range f.Params {
		ip.scope.Add(p.Name, &scope.Binding{Value: args[i], Arity: -1})
	}
	var body ast.Statement
	switch n := f.Node.(type) {
	case *ast.FunctionDeclaration:
		body = n.Body
	case *ast.AnonymousFunction:
		body = n.Body
	}
	return ip.runBody(body)
}

// invokeMethod runs a resolved method: Native methods receive the
// receiver (if any) prepended to args; AST methods get a fresh scope with
// `this`, the type's static fields (so a method body can read them
// unqualified), and positional parameters bound.
func (ip *Interpreter) invokeMethod(t *object.Type, instance *object.Object, m *object.Method, args []value.Value) value.Value {
	if m.Native != nil {
		callArgs := args
		if instance != nil {
			callArgs = append([]value.Value{instance}, args...)
		}
		return m.Native(ip, callArgs)
	}
	if m.Arity >= 0 && len(args) != m.Arity {
		ip.raise("WrongNumberArguments", "expected %d argument(s), got %d", m.Arity, len(args))
	}
	outer := ip.pushScope()
	defer ip.popScope(outer)
	if instance != nil {
		ip.scope.Add("this", &scope.Binding{Value: instance, Arity: -1})
	}
	for name, v := range t.StaticFields {
		// Borrowed from the type's own storage, so the fresh local binding
		// needs its own retained copy for popScope to release.
		ip.scope.Add(name, &scope.Binding{Value: retain(v), Flags: scope.Static, Arity: -1})
	}
	for i, p := range m.Params {
		ip.scope.Add(p.Name, &scope.Binding{Value: args[i], Arity: -1})
	}
	return ip.runBody(m.Node)
}

// Invoke implements value.Runtime.Invoke for intrinsics that receive a
// callback value (e.g. a sort comparator or a Match predicate built
// programmatically).
func (ip *Interpreter) Invoke(callee value.Value, args []value.Value) value.Value {
	return ip.invokeValue(callee, args)
}

// NewInstance implements value.Runtime.NewInstance.
func (ip *Interpreter) NewInstance(typeName string, args []value.Value) value.Value {
	t, ok := ip.Registry.Get(typeName)
	if !ok {
		ip.raise("UnknownIdentifier", "undefined type %q", typeName)
	}
	return ip.createObject(t, args)
}

// TypeOf implements value.Runtime.TypeOf: classes/objects return their own
// Type, and every primitive Kind gets a lazily-created, method-less
// pseudo-type so `typeof(x).ObjectCount()`-style code never panics on a
// primitive operand (ObjectCount is simply always 0 for those).
func (ip *Interpreter) TypeOf(v value.Value) value.Value {
	switch x := v.(type) {
	case *object.Type:
		return x
	case *object.Object:
		return x.Type
	default:
		name := v.Kind().String()
		t, ok := ip.Registry.Get(name)
		if !ok {
			t = object.NewType(name, nil)
			t.Intrinsic = true
			ip.Registry.Define(t)
		}
		return t
	}
}

// Display implements value.Runtime.Display: an Object with a ToString/0
// method is rendered through it, so user classes can customize how they
// print and concatenate; every other value falls back to value.ToDisplayString.
// v is borrowed (the caller keeps using it afterward), so the receiver is
// retained before invokeMethod consumes it as "this".
func (ip *Interpreter) Display(v value.Value) string {
	if obj, ok := v.(*object.Object); ok {
		if m, ok := obj.Type.GetMethod("ToString", 0); ok {
			obj.Retain()
			return value.ToDisplayString(ip.invokeMethod(obj.Type, obj, m, nil))
		}
	}
	return value.ToDisplayString(v)
}
