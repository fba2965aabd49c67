package interp

import (
	"math"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/object"
	"github.com/vela-lang/vela/internal/token"
	"github.com/vela-lang/vela/internal/value"
)

// operatorMethodNames maps a binary token to the operator-overload method
// name an Object's type may define for it; Objects get first refusal on
// every binary operator before the built-in numeric/string rules apply.
var operatorMethodNames = map[token.Kind]string{
	token.PLUS:   "+",
	token.MINUS:  "-",
	token.STAR:   "*",
	token.SLASH:  "/",
	token.EQ:     "==",
	token.NOT_EQ: "!=",
	token.LT:     "<",
	token.LE:     "<=",
	token.GT:     ">",
	token.GE:     ">=",
}

func (ip *Interpreter) evalUnary(u *ast.Unary) value.Value {
	if u.Operator == token.TYPEOF {
		operand := ip.evalExpression(u.Operand)
		t := ip.TypeOf(operand)
		release(operand)
		return t
	}
	operand := ip.evalExpression(u.Operand)
	defer release(operand)
	switch u.Operator {
	case token.MINUS:
		switch x := operand.(type) {
		case value.Integer:
			return value.Int(-x.Value)
		case value.Real:
			return value.Flt(-x.Value)
		}
		ip.raise("TypeMismatch", "cannot negate %s", operand.Kind())
	case token.NOT:
		b, err := value.ToBoolean(operand)
		if err != nil {
			ip.raise("CannotConvertToBoolean", "%s", err)
		}
		return value.Bool(!b)
	case token.TILDE:
		i, err := value.ToInteger(operand)
		if err != nil {
			ip.raise("CannotConvertToInteger", "%s", err)
		}
		return value.Int(^i)
	default:
		ip.raise("UnknownOperator", "unsupported unary operator %s", u.Operator)
	}
	return value.NullValue
}

func (ip *Interpreter) evalBinary(b *ast.Binary) value.Value {
	if b.Operator == token.AND || b.Operator == token.OR {
		return ip.evalShortCircuit(b)
	}
	left := ip.evalExpression(b.Left)
	right := ip.evalExpression(b.Right)
	return ip.applyBinary(b.Operator, left, right)
}

func (ip *Interpreter) evalShortCircuit(b *ast.Binary) value.Value {
	left := ip.evalExpression(b.Left)
	lb, err := value.ToBoolean(left)
	release(left)
	if err != nil {
		ip.raise("CannotConvertToBoolean", "%s", err)
	}
	if b.Operator == token.AND && !lb {
		return value.Bool(false)
	}
	if b.Operator == token.OR && lb {
		return value.Bool(true)
	}
	right := ip.evalExpression(b.Right)
	rb, err := value.ToBoolean(right)
	release(right)
	if err != nil {
		ip.raise("CannotConvertToBoolean", "%s", err)
	}
	return value.Bool(rb)
}

// applyBinary is the shared entry point for both Binary expressions and
// compound-assignment folding. An Object operand gets first refusal via
// its type's operator-overload method, which consumes both operands as
// its "this" and sole parameter; otherwise the built-in numeric, string,
// and structural-equality rules apply and own operands are released once
// the result is computed.
func (ip *Interpreter) applyBinary(op token.Kind, left, right value.Value) value.Value {
	if obj, ok := left.(*object.Object); ok {
		if name, ok := operatorMethodNames[op]; ok {
			if m, ok := obj.Type.GetMethod(name, 1); ok {
				return ip.invokeMethod(obj.Type, obj, m, []value.Value{right})
			}
		}
		if _, isObj := right.(*object.Object); isObj {
			release(left)
			release(right)
			ip.raise("UnknownOperator", "%s defines no operator %s", obj.Type.Name, op)
		}
	}
	defer release(left)
	defer release(right)
	switch op {
	case token.PLUS:
		return ip.add(left, right)
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		return ip.arith(op, left, right)
	case token.CARET:
		return ip.power(left, right)
	case token.AMP, token.PIPE:
		return ip.bitwise(op, left, right)
	case token.EQ:
		return value.Bool(ip.equal(left, right))
	case token.NOT_EQ:
		return value.Bool(!ip.equal(left, right))
	case token.LT, token.LE, token.GT, token.GE:
		return ip.compare(op, left, right)
	}
	ip.raise("UnknownOperator", "unsupported operator %s", op)
	return value.NullValue
}

func (ip *Interpreter) add(left, right value.Value) value.Value {
	if ls, ok := left.(value.String); ok {
		return value.Str(ls.Value + ip.Display(right))
	}
	if rs, ok := right.(value.String); ok {
		return value.Str(ip.Display(left) + rs.Value)
	}
	return ip.arith(token.PLUS, left, right)
}

// arith implements the numeric-tower promotion rules for +, -, *, /, %:
// if either operand is Real the operation is done in float64, otherwise in
// int64. Integer division by zero raises DivisionByZero; integer modulo by
// zero and Real division/modulo by zero yield an Error(DivideByZero) value
// instead.
func (ip *Interpreter) arith(op token.Kind, left, right value.Value) value.Value {
	ai, af, bi, bf, asReal, ok := value.Promote(left, right)
	if !ok {
		ip.raise("TypeMismatch", "cannot apply %s to %s and %s", op, left.Kind(), right.Kind())
	}
	if asReal {
		switch op {
		case token.PLUS:
			return value.Flt(af + bf)
		case token.MINUS:
			return value.Flt(af - bf)
		case token.STAR:
			return value.Flt(af * bf)
		case token.SLASH:
			if bf == 0 {
				return value.NewError(value.ErrDivideByZero, "division by zero")
			}
			return value.Flt(af / bf)
		case token.PERCENT:
			if bf == 0 {
				return value.NewError(value.ErrDivideByZero, "division by zero")
			}
			return value.Flt(math.Mod(af, bf))
		}
	}
	switch op {
	case token.PLUS:
		return value.Int(ai + bi)
	case token.MINUS:
		return value.Int(ai - bi)
	case token.STAR:
		return value.Int(ai * bi)
	case token.SLASH:
		if bi == 0 {
			ip.raise("DivisionByZero", "integer division by zero")
		}
		return value.Int(ai / bi)
	case token.PERCENT:
		if bi == 0 {
			return value.NewError(value.ErrDivideByZero, "integer modulo by zero")
		}
		return value.Int(ai % bi)
	}
	ip.raise("UnknownOperator", "unsupported operator %s", op)
	return value.NullValue
}

// power implements `^`: always right-associative at the parser level, and
// producing an Integer result when both operands are Integer and the
// mathematical result is exact, Real otherwise.
func (ip *Interpreter) power(left, right value.Value) value.Value {
	af, erra := value.ToReal(left)
	bf, errb := value.ToReal(right)
	if erra != nil || errb != nil {
		ip.raise("TypeMismatch", "cannot apply ^ to %s and %s", left.Kind(), right.Kind())
	}
	result := math.Pow(af, bf)
	_, lReal := left.(value.Real)
	_, rReal := right.(value.Real)
	if !lReal && !rReal && result == math.Trunc(result) {
		return value.Int(int64(result))
	}
	return value.Flt(result)
}

func (ip *Interpreter) bitwise(op token.Kind, left, right value.Value) value.Value {
	li, erra := value.ToInteger(left)
	ri, errb := value.ToInteger(right)
	if erra != nil || errb != nil {
		ip.raise("TypeMismatch", "bitwise operator requires integers, got %s and %s", left.Kind(), right.Kind())
	}
	switch op {
	case token.AMP:
		return value.Int(li & ri)
	case token.PIPE:
		return value.Int(li | ri)
	}
	return value.NullValue
}

// equal implements structural equality: Objects compare by identity (an
// overload on "==" is tried earlier in applyBinary), Null only equals
// Null, String compares byte-wise, and numeric/boolean operands go
// through the same promotion rule as arithmetic.
func (ip *Interpreter) equal(left, right value.Value) bool {
	if lo, ok := left.(*object.Object); ok {
		if ro, ok := right.(*object.Object); ok {
			return lo == ro
		}
		if _, isNull := right.(value.Null); isNull {
			return false
		}
		ip.raise("TypeMismatch", "cannot compare %s and %s", left.Kind(), right.Kind())
	}
	if _, ok := left.(value.Null); ok {
		_, ok2 := right.(value.Null)
		return ok2
	}
	if ls, ok := left.(value.String); ok {
		rs, ok2 := right.(value.String)
		if !ok2 {
			ip.raise("TypeMismatch", "cannot compare String and %s", right.Kind())
		}
		return ls.Value == rs.Value
	}
	ai, af, bi, bf, asReal, ok := value.Promote(left, right)
	if !ok {
		ip.raise("TypeMismatch", "cannot compare %s and %s", left.Kind(), right.Kind())
	}
	if asReal {
		return af == bf
	}
	return ai == bi
}

func (ip *Interpreter) compare(op token.Kind, left, right value.Value) value.Value {
	if ls, ok := left.(value.String); ok {
		rs, ok2 := right.(value.String)
		if !ok2 {
			ip.raise("TypeMismatch", "cannot compare String and %s", right.Kind())
		}
		switch op {
		case token.LT:
			return value.Bool(ls.Value < rs.Value)
		case token.LE:
			return value.Bool(ls.Value <= rs.Value)
		case token.GT:
			return value.Bool(ls.Value > rs.Value)
		case token.GE:
			return value.Bool(ls.Value >= rs.Value)
		}
	}
	ai, af, bi, bf, asReal, ok := value.Promote(left, right)
	if !ok {
		ip.raise("TypeMismatch", "cannot compare %s and %s", left.Kind(), right.Kind())
	}
	if asReal {
		switch op {
		case token.LT:
			return value.Bool(af < bf)
		case token.LE:
			return value.Bool(af <= bf)
		case token.GT:
			return value.Bool(af > bf)
		case token.GE:
			return value.Bool(af >= bf)
		}
	}
	switch op {
	case token.LT:
		return value.Bool(ai < bi)
	case token.LE:
		return value.Bool(ai <= bi)
	case token.GT:
		return value.Bool(ai > bi)
	case token.GE:
		return value.Bool(ai >= bi)
	}
	return value.NullValue
}
