package value

import (
	"fmt"
	"math"
)

// ConvError is returned by the coercion helpers when a Value cannot be
// converted; evaluator code translates it into the matching RuntimeError
// kind (CannotConvertToInteger / CannotConvertToBoolean / CannotConvertToReal).
type ConvError struct {
	Kind string
	From Value
}

func (c *ConvError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s", c.From.Kind(), c.Kind)
}

// ToInteger converts v to an Integer, truncating Real values toward zero.
func ToInteger(v Value) (int64, error) {
	switch x := v.(type) {
	case Integer:
		return x.Value, nil
	case Real:
		return int64(math.Trunc(x.Value)), nil // truncation toward zero
	case Boolean:
		if x.Value {
			return 1, nil
		}
		return 0, nil
	}
	return 0, &ConvError{Kind: "Integer", From: v}
}

// ToReal converts v to a Real.
func ToReal(v Value) (float64, error) {
	switch x := v.(type) {
	case Integer:
		return float64(x.Value), nil
	case Real:
		return x.Value, nil
	case Boolean:
		if x.Value {
			return 1, nil
		}
		return 0, nil
	}
	return 0, &ConvError{Kind: "Real", From: v}
}

// ToBoolean converts v to a Boolean using truthiness rules: nonzero numbers,
// true, and nonempty strings are truthy; Null and empty string are not.
func ToBoolean(v Value) (bool, error) {
	switch x := v.(type) {
	case Integer:
		return x.Value != 0, nil
	case Real:
		return x.Value != 0, nil
	case Boolean:
		return x.Value, nil
	case Null:
		return false, nil
	case String:
		return x.Value != "", nil
	}
	return false, &ConvError{Kind: "Boolean", From: v}
}

// ToDisplayString renders v using its own String() method, well defined for
// every variant but blind to any user-defined ToString override on an
// Object — callers with a Runtime in scope should prefer Runtime.Display,
// which checks for that override first and falls back to this.
func ToDisplayString(v Value) string {
	if v == nil {
		return "<empty>"
	}
	return v.String()
}

func isNumeric(v Value) bool {
	switch v.(type) {
	case Integer, Real, Boolean:
		return true
	}
	return false
}

// Promote promotes two numeric-ish values to a common representation: if
// either is Real, both are treated as Real; otherwise both as Integer.
// Returns ok=false if either operand is not numeric.
func Promote(a, b Value) (ai int64, af float64, bi int64, bf float64, asReal bool, ok bool) {
	if !isNumeric(a) || !isNumeric(b) {
		return 0, 0, 0, 0, false, false
	}
	_, aReal := a.(Real)
	_, bReal := b.(Real)
	asReal = aReal || bReal
	if asReal {
		af, _ = ToReal(a)
		bf, _ = ToReal(b)
		return 0, af, 0, bf, true, true
	}
	ai, _ = ToInteger(a)
	bi, _ = ToInteger(b)
	return ai, 0, bi, 0, false, true
}
