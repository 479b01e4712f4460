package calculator

import (
	"math"
	"strings"
)

// MaxTextLen is the longest text, in bytes, that repetition or concatenation
// may produce.
const MaxTextLen = 1 << 24

// Add returns l + r. Two Integers give an Integer, an Integer and a Real give
// a Real, and anything involving Text concatenates the textual forms of the
// operands. Concatenation longer than MaxTextLen is an error of type
// *ConcatError; numbers never fail.
func Add(l, r Value) (Value, error) {
	if l.kind == Text || r.kind == Text {
		a, b := l.text(), r.text()
		if len(a)+len(b) > MaxTextLen {
			return Value{}, &ConcatError{Len: len(a) + len(b)}
		}
		return Str(a + b), nil
	}
	v, _ := arith(l, r,
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b },
	)
	return v, nil
}

// Sub returns l - r. It is defined only for numbers.
func Sub(l, r Value) (Value, error) {
	v, ok := arith(l, r,
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b },
	)
	if !ok {
		return Value{}, &OperandError{Op: "-", Left: l.kind, Right: r.kind}
	}
	return v, nil
}

// Mul returns l * r. Besides numbers, a Text and an Integer in either order
// repeat the text.
func Mul(l, r Value) (Value, error) {
	switch {
	case l.kind == Text && r.kind == Integer:
		return repeat(l.s, r.i)
	case l.kind == Integer && r.kind == Text:
		return repeat(r.s, l.i)
	}
	v, ok := arith(l, r,
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b },
	)
	if !ok {
		return Value{}, &OperandError{Op: "*", Left: l.kind, Right: r.kind}
	}
	return v, nil
}

// Div returns l / r. Integer division truncates toward zero. A zero divisor
// is an error of type *ZeroDivisionError.
func Div(l, r Value) (Value, error) {
	if l.kind == Text || r.kind == Text {
		return Value{}, &OperandError{Op: "/", Left: l.kind, Right: r.kind}
	}
	if isZero(r) {
		return Value{}, &ZeroDivisionError{Op: "/"}
	}
	v, _ := arith(l, r,
		func(a, b int64) int64 { return a / b },
		func(a, b float64) float64 { return a / b },
	)
	return v, nil
}

// Mod returns the remainder of l / r, with the sign of l. A zero divisor is
// an error of type *ZeroDivisionError.
func Mod(l, r Value) (Value, error) {
	if l.kind == Text || r.kind == Text {
		return Value{}, &OperandError{Op: "%", Left: l.kind, Right: r.kind}
	}
	if isZero(r) {
		return Value{}, &ZeroDivisionError{Op: "%"}
	}
	v, _ := arith(l, r,
		func(a, b int64) int64 { return a % b },
		math.Mod,
	)
	return v, nil
}

// arith applies fi to two Integers or ff to any other pair of numbers,
// promoting an Integer operand to Real. The result is false if either operand
// is Text.
func arith(l, r Value, fi func(a, b int64) int64, ff func(a, b float64) float64) (Value, bool) {
	switch {
	case l.kind == Text || r.kind == Text:
		return Value{}, false
	case l.kind == Integer && r.kind == Integer:
		return Int(fi(l.i, r.i)), true
	default:
		return Float(ff(l.float(), r.float())), true
	}
}

func isZero(v Value) bool {
	switch v.kind {
	case Integer:
		return v.i == 0
	case Real:
		return v.f == 0
	default:
		return false
	}
}

func repeat(s string, n int64) (Value, error) {
	if n < 0 || (len(s) > 0 && n > int64(MaxTextLen/len(s))) {
		return Value{}, &RepeatError{Len: len(s), Count: n}
	}
	return Str(strings.Repeat(s, int(n))), nil
}

// Apply applies the binary operator op, one of the runes in Operators, to l
// and r. Panics if op is not an operator.
func Apply(op rune, l, r Value) (Value, error) {
	return binop(string(op)).op(l, r)
}
