package calculator

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the type tag of a Value.
type Kind int8

const (
	// Integer is a signed 64-bit integer. It is the kind of the zero Value.
	Integer Kind = iota
	// Real is a 64-bit floating-point number.
	Real
	// Text is a string.
	Text
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case Text:
		return "Text"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable Integer, Real, or Text. The zero Value is the
// Integer 0.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int creates an Integer value.
func Int(i int64) Value {
	return Value{kind: Integer, i: i}
}

// Float creates a Real value.
func Float(f float64) Value {
	return Value{kind: Real, f: f}
}

// Str creates a Text value.
func Str(s string) Value {
	return Value{kind: Text, s: s}
}

// Kind returns the type tag of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Int returns v's integer and whether v is an Integer.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == Integer
}

// Float returns v's real and whether v is a Real.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == Real
}

// Str returns v's text and whether v is a Text.
func (v Value) Str() (string, bool) {
	return v.s, v.kind == Text
}

// String formats v for display. Text is quoted. A Real always shows a decimal
// point or an exponent, so ParseLiteral reads it back as a Real.
func (v Value) String() string {
	switch v.kind {
	case Text:
		return strconv.Quote(v.s)
	case Real:
		return formatReal(v.f)
	default:
		return v.text()
	}
}

// text is the textual form of v used in concatenation. Text is unquoted, and
// Reals are plain decimals without exponent or forced fraction, so 2.0 gives
// "2".
func (v Value) text() string {
	switch v.kind {
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Real:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case Text:
		return v.s
	default:
		panic("calculator: invalid value kind " + v.kind.String())
	}
}

func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}

// float returns a numeric v as a float64. Integers are promoted.
func (v Value) float() float64 {
	if v.kind == Integer {
		return float64(v.i)
	}
	return v.f
}
