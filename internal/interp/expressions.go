package interp

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/scope"
	"github.com/vela-lang/vela/internal/token"
	"github.com/vela-lang/vela/internal/value"
)

// compoundBaseOp maps a compound assignment operator to the binary
// operator folded into the current value: `x += y` applies PLUS to x's
// current value and y's, then assigns the result back to x.
var compoundBaseOp = map[token.Kind]token.Kind{
	token.PLUS_EQ:    token.PLUS,
	token.MINUS_EQ:   token.MINUS,
	token.STAR_EQ:    token.STAR,
	token.SLASH_EQ:   token.SLASH,
	token.PERCENT_EQ: token.PERCENT,
	token.AMP_EQ:     token.AMP,
	token.PIPE_EQ:    token.PIPE,
	token.CARET_EQ:   token.CARET,
}

// evalExpression dispatches on the concrete expression type, mirroring the
// closed node set in internal/ast.
func (ip *Interpreter) evalExpression(expr ast.Expression) value.Value {
	ip.note(expr)
	switch e := expr.(type) {
	case *ast.Literal:
		return ip.evalLiteral(e)
	case *ast.Name:
		return ip.evalName(e)
	case *ast.Unary:
		return ip.evalUnary(e)
	case *ast.Binary:
		return ip.evalBinary(e)
	case *ast.AssignName:
		return ip.evalAssignName(e)
	case *ast.AssignField:
		return ip.evalAssignField(e)
	case *ast.AssignIndex:
		return ip.evalAssignIndex(e)
	case *ast.GetMember:
		return ip.evalGetMember(e)
	case *ast.AccessArray:
		return ip.evalAccessArray(e)
	case *ast.InvokeFunction:
		return ip.evalInvoke(e)
	case *ast.AnonymousFunction:
		return value.AstNode{Node: e, Params: e.Params}
	case *ast.NewObject:
		return ip.evalNewObject(e)
	case *ast.Range:
		return ip.evalRange(e)
	case *ast.ArrayLiteral:
		return ip.evalArrayLiteral(e)
	case *ast.IfThenElse:
		return ip.evalIfThenElse(e)
	case *ast.Match:
		return ip.evalMatch(e)
	case *ast.Statements:
		return ip.evalBlock(e)
	}
	ip.raise("Unimplemented", "no evaluation rule for expression kind %v", expr.Kind())
	return value.NullValue
}

func (ip *Interpreter) evalLiteral(l *ast.Literal) value.Value {
	switch l.LitKind {
	case ast.LitInteger:
		return value.Int(l.Int)
	case ast.LitReal:
		return value.Flt(l.Real)
	case ast.LitString:
		return value.Str(l.Str)
	case ast.LitBoolean:
		return value.Bool(l.Bool)
	case ast.LitEmpty:
		return value.NullValue
	}
	return value.NullValue
}

// evalName resolves a bare identifier against the scope chain, including
// `use`-imported class members. An unambiguous binding returns its value
// directly; several bindings for an overloaded function name collapse to
// the bare name as a String, deferred to call-site arity resolution in
// evalInvoke.
func (ip *Interpreter) evalName(n *ast.Name) value.Value {
	bindings := ip.scope.FindAll(n.Value, false, true, ip.classMemberBinding)
	switch len(bindings) {
	case 0:
		ip.raise("UnknownIdentifier", "undefined identifier %q", n.Value)
	case 1:
		return retain(bindings[0].Value)
	default:
		if bindings[0].Flags.Has(scope.Function) {
			return value.Str(n.Value)
		}
		ip.raise("MultipleSymbols", "%q is ambiguous in this scope", n.Value)
	}
	return value.NullValue
}

// classMemberBinding resolves a `use`-imported static member: a static
// field's current value, or a bound Callable for a static method.
func (ip *Interpreter) classMemberBinding(className, name string) (*scope.Binding, bool) {
	t, ok := ip.Registry.Get(className)
	if !ok {
		return nil, false
	}
	if v, ok := t.StaticFields[name]; ok {
		return &scope.Binding{Value: v, Arity: -1}, true
	}
	if t.HasMethod(name) {
		return &scope.Binding{
			Value: value.Callable{ClassName: className, Name: name, Static: true},
			Flags: scope.Function,
			Arity: -1,
		}, true
	}
	return nil, false
}

func (ip *Interpreter) evalIfThenElse(n *ast.IfThenElse) value.Value {
	cond := ip.evalExpression(n.Condition)
	b, err := value.ToBoolean(cond)
	release(cond)
	if err != nil {
		ip.raise("CannotConvertToBoolean", "%s", err)
	}
	if b {
		return ip.evalExpression(n.Then)
	}
	if n.Else != nil {
		return ip.evalExpression(n.Else)
	}
	return value.NullValue
}

// evalMatch walks case arms in source order: a Value arm matches by
// equality with the subject, a Predicate arm (an arity-1 function) matches
// when calling it on the subject is truthy. The trailing default arm, if
// any, always matches.
func (ip *Interpreter) evalMatch(m *ast.Match) value.Value {
	subject := ip.evalExpression(m.Subject)
	defer release(subject)
	for _, c := range m.Cases {
		if c.IsDefault {
			return ip.evalExpression(c.Body)
		}
		if c.Value != nil {
			candidate := ip.evalExpression(c.Value)
			matched := ip.equal(subject, candidate)
			release(candidate)
			if matched {
				return ip.evalExpression(c.Body)
			}
			continue
		}
		pred := ip.evalExpression(c.Predicate)
		// subject is reused across every predicate arm, so each call gets
		// its own retained copy for the predicate's parameter binding.
		result := ip.invokeValue(pred, []value.Value{retain(subject)})
		ok, err := value.ToBoolean(result)
		if err != nil {
			ip.raise("CannotConvertToBoolean", "%s", err)
		}
		if ok {
			return ip.evalExpression(c.Body)
		}
	}
	ip.raise("NoMatchingCase", "no match arm (including default) matched the subject")
	return value.NullValue
}

func (ip *Interpreter) evalRange(r *ast.Range) value.Value {
	start := ip.evalExpression(r.Start)
	end := ip.evalExpression(r.End)
	si, err := value.ToInteger(start)
	if err != nil {
		ip.raise("CannotConvertToInteger", "%s", err)
	}
	ei, err := value.ToInteger(end)
	if err != nil {
		ip.raise("CannotConvertToInteger", "%s", err)
	}
	return ip.newRangeObject(si, ei, r.Inclusive)
}

func (ip *Interpreter) evalArrayLiteral(a *ast.ArrayLiteral) value.Value {
	elems := make([]value.Value, len(a.Elements))
	for i, e := range a.Elements {
		elems[i] = ip.evalExpression(e)
	}
	return ip.newArrayObject(elems)
}

func (ip *Interpreter) evalAccessArray(a *ast.AccessArray) value.Value {
	target := ip.evalExpression(a.Target)
	defer release(target)
	index := ip.evalExpression(a.Index)
	defer release(index)
	return ip.indexGet(target, index)
}

func (ip *Interpreter) evalAssignName(a *ast.AssignName) value.Value {
	b, ok := ip.scope.Find(a.Name, -1, false)
	if !ok {
		ip.raise("UnknownIdentifier", "undefined identifier %q", a.Name)
	}
	if b.Flags.Has(scope.Const) {
		ip.raise("AssignToConst", "cannot assign to constant %q", a.Name)
	}
	old := b.Value
	v := ip.resolveAssignValue(a.Operator, old, a.Value)
	ip.scope.Set(a.Name, v)
	release(old)
	return retain(v)
}

func (ip *Interpreter) evalAssignField(a *ast.AssignField) value.Value {
	if a.Static {
		name, ok := a.Target.(*ast.Name)
		if !ok {
			ip.raise("UnknownMember", "static member assignment requires a class name")
		}
		t, ok := ip.Registry.Get(name.Value)
		if !ok {
			ip.raise("UnknownIdentifier", "undefined class %q", name.Value)
		}
		cur := t.StaticFields[a.Field]
		v := ip.resolveAssignValue(a.Operator, cur, a.Value)
		t.StaticFields[a.Field] = v
		release(cur)
		return retain(v)
	}
	target := ip.evalExpression(a.Target)
	defer release(target)
	obj, ok := target.(*object.Object)
	if !ok {
		ip.raise("UnknownMember", "%s has no member %q", target.Kind(), a.Field)
	}
	f, _ := obj.Type.GetField(a.Field)
	if f == nil {
		ip.raise("UnknownMember", "%s has no field %q", obj.Type.Name, a.Field)
	}
	if f.Const {
		ip.raise("AssignToConst", "cannot assign to constant field %q", a.Field)
	}
	old := obj.Fields[a.Field]
	v := ip.resolveAssignValue(a.Operator, old, a.Value)
	obj.Fields[a.Field] = v
	release(old)
	return retain(v)
}

func (ip *Interpreter) evalAssignIndex(a *ast.AssignIndex) value.Value {
	target := ip.evalExpression(a.Target)
	defer release(target)
	index := ip.evalExpression(a.Index)
	defer release(index)
	cur := ip.indexGet(target, index)
	v := ip.resolveAssignValue(a.Operator, cur, a.Value)
	ip.indexSet(target, index, v)
	return v
}

// resolveAssignValue evaluates the right-hand side and, for a compound
// operator, folds it with the current value through the matching binary
// operator before returning.
func (ip *Interpreter) resolveAssignValue(op token.Kind, cur value.Value, rhs ast.Expression) value.Value {
	rv := ip.evalExpression(rhs)
	if op == token.ASSIGN {
		return rv
	}
	base, ok := compoundBaseOp[op]
	if !ok {
		ip.raise("UnknownOperator", "unsupported assignment operator %s", op)
	}
	return ip.applyBinary(base, cur, rv)
}
