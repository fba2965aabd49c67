package interp

import (
	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/scope"
	"github.com/vela-lang/vela/internal/value"
)

// evalStatement dispatches on the concrete statement type, mirroring the
// closed node set in internal/ast. Every case returns the value the
// statement contributes when it sits at the tail of a block (Statements
// yields its last item's value; most statement kinds yield Null).
func (ip *Interpreter) evalStatement(stmt ast.Statement) value.Value {
	ip.note(stmt)
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return ip.evalExpressionStatement(s)
	case *ast.Statements:
		return ip.evalBlock(s)
	case *ast.VarVal:
		return ip.evalVarVal(s)
	case *ast.While:
		return ip.evalWhile(s)
	case *ast.Repeat:
		return ip.evalRepeat(s)
	case *ast.For:
		return ip.evalFor(s)
	case *ast.ForEach:
		return ip.evalForEach(s)
	case *ast.Return:
		var v value.Value = value.NullValue
		if s.Value != nil {
			v = ip.evalExpression(s.Value)
		}
		panic(returnSignal{value: v})
	case *ast.BreakOrContinue:
		switch s.Which {
		case ast.KBreak:
			panic(breakSignal{})
		case ast.KContinue:
			panic(continueSignal{})
		case ast.KBreakout:
			panic(breakoutSignal{})
		}
	case *ast.FunctionDeclaration:
		ip.scope.Add(s.Name, &scope.Binding{
			Value: value.AstNode{Node: s, Params: s.Params},
			Flags: scope.Function,
			Arity: len(s.Params),
		})
		return value.NullValue
	case *ast.ClassDeclaration:
		return ip.evalClassDeclaration(s)
	case *ast.EnumDeclaration:
		return ip.evalEnumDeclaration(s)
	case *ast.InterfaceDeclaration:
		return value.NullValue
	case *ast.UseStatement:
		if b, ok := ip.scope.Find(s.Name, -1, false); !ok || !b.Flags.Has(scope.Class) {
			ip.raise("UnknownIdentifier", "use requires a class name, got %q", s.Name)
		}
		ip.scope.AddUse(s.Name)
		return value.NullValue
	}
	ip.raise("Unimplemented", "no evaluation rule for statement kind %v", stmt.Kind())
	return value.NullValue
}

func (ip *Interpreter) evalExpressionStatement(s *ast.ExpressionStatement) value.Value {
	v := ip.evalExpression(s.Expression)
	if s.Semicolon {
		release(v)
		return value.NullValue
	}
	return v
}

// evalBlock runs a `{ ... }` body in its own child scope, yielding the
// value of its last statement (Null for an empty block).
func (ip *Interpreter) evalBlock(s *ast.Statements) value.Value {
	outer := ip.pushScope()
	defer ip.popScope(outer)
	var result value.Value = value.NullValue
	for _, item := range s.Items {
		result = ip.evalStatement(item)
	}
	return result
}

func (ip *Interpreter) evalVarVal(s *ast.VarVal) value.Value {
	for _, d := range s.Declarators {
		if ip.scope.HasLocal(d.Name) {
			ip.raise("DuplicateName", "%q is already declared in this scope", d.Name)
		}
		var v value.Value = value.NullValue
		if d.Init != nil {
			v = ip.evalExpression(d.Init)
		}
		flags := scope.Flag(0)
		if s.Const {
			flags |= scope.Const
		}
		ip.scope.Add(d.Name, &scope.Binding{Value: v, Flags: flags, Arity: -1})
	}
	return value.NullValue
}

func (ip *Interpreter) evalWhile(s *ast.While) value.Value {
	for {
		cond := ip.evalExpression(s.Condition)
		b, err := value.ToBoolean(cond)
		release(cond)
		if err != nil {
			ip.raise("CannotConvertToBoolean", "%s", err)
		}
		if !b {
			return value.NullValue
		}
		if ip.runLoopBody(s.Body) {
			return value.NullValue
		}
	}
}

func (ip *Interpreter) evalRepeat(s *ast.Repeat) value.Value {
	if s.Count == nil {
		for {
			if ip.runLoopBody(s.Body) {
				return value.NullValue
			}
		}
	}
	countVal := ip.evalExpression(s.Count)
	count, err := value.ToInteger(countVal)
	release(countVal)
	if err != nil {
		ip.raise("CannotConvertToInteger", "%s", err)
	}
	for i := int64(0); i < count; i++ {
		if ip.runLoopBody(s.Body) {
			return value.NullValue
		}
	}
	return value.NullValue
}

func (ip *Interpreter) evalFor(s *ast.For) value.Value {
	outer := ip.pushScope()
	defer ip.popScope(outer)
	if s.Init != nil {
		ip.evalStatement(s.Init)
	}
	for {
		if s.Cond != nil {
			cond := ip.evalExpression(s.Cond)
			b, err := value.ToBoolean(cond)
			release(cond)
			if err != nil {
				ip.raise("CannotConvertToBoolean", "%s", err)
			}
			if !b {
				return value.NullValue
			}
		}
		if ip.runLoopBody(s.Body) {
			return value.NullValue
		}
		if s.Inc != nil {
			ip.evalStatement(s.Inc)
		}
	}
}

func (ip *Interpreter) evalForEach(s *ast.ForEach) value.Value {
	collection := ip.evalExpression(s.Collection)
	defer release(collection)
	iter := ip.enumerator(collection)
	outer := ip.pushScope()
	defer ip.popScope(outer)
	ip.scope.Add(s.Name, &scope.Binding{Value: value.NullValue, Arity: -1})
	for {
		item, ok := iter()
		if !ok {
			return value.NullValue
		}
		if b, ok := ip.scope.Find(s.Name, -1, true); ok {
			release(b.Value)
		}
		ip.scope.Set(s.Name, item)
		if ip.runLoopBody(s.Body) {
			return value.NullValue
		}
	}
}
