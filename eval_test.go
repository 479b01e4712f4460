package calculator_test

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calculator"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want calculator.Value
	}{
		{"int", "1", i(1)},
		{"real", "1.5", f(1.5)},
		{"text", "hi", tx("hi")},
		{"add", "4+5+6", i(15)},
		{"sub", "4-5-6", i(-7)},
		{"mul", "4*5*6", i(120)},
		{"div", "100/5/2", i(10)},
		{"mod", "100%7%3", i(2)},
		{"prec", "2 + 3 * 4", i(14)},
		{"prec-sub", "2 - 3 * 4 + 5", i(-5)},
		{"prec-div", "12 / 2 * 3", i(18)},
		{"prec-mod", "1 + 7 % 4 * 2", i(7)},
		{"group", "(2 + 3) * 4", i(20)},
		{"group-nested", "((((1))))", i(1)},
		{"group-right", "2 * (3 + 4)", i(14)},
		{"group-sub", "10 - (4 - 3)", i(9)},
		{"spaces", " \t1 +\n2 ", i(3)},
		{"joined", "1 000 + 1", i(1001)},
		{"comma", "1,5 * 2", f(3)},
		{"empty-group", "()2", i(2)},
		{"empty-group-after", "2()", i(2)},
		{"empty-group-joins", "2()3", i(23)},
		{"empty-group-joins-spaced", "2 () 3 + 1", i(24)},
		{"empty-group-joins-text", "h()i * 2", tx("hihi")},
		{"promote", "1 + 0.5", f(1.5)},
		{"int-div", "7 / 2", i(3)},
		{"real-div", "7 / 2.0", f(3.5)},
		{"concat", "hi + 5", tx("hi5")},
		{"concat-real", "2.0 + hi", tx("2hi")},
		{"concat-real-frac", "hi + 1,5", tx("hi1.5")},
		{"concat-text", "a + b", tx("ab")},
		{"repeat", "hi * 5", tx("hihihihihi")},
		{"repeat-left", "3 * ab", tx("ababab")},
		{"repeat-zero", "hi * 0", tx("")},
		{"repeat-group", "(ab + c) * 2", tx("abcabc")},
		{"neg", "-3", i(-3)},
		{"neg-real", "-0.5", f(-0.5)},
		{"neg-rhs", "2 * -3", i(-6)},
		{"neg-sub", "2 - -3", i(5)},
		{"neg-sub-tight", "2--3", i(5)},
		{"neg-group", "-(2 + 3)", i(-5)},
		{"neg-neg-group", "--(2)", i(2)},
		{"neg-group-rhs", "4 * -(1 + 1)", i(-8)},
		{"neg-text", "-x", tx("-x")},
		{"neg-neg", "--3", tx("--3")},
		{"neg-trailing", "5 + -", i(-5)},
		{"neg-trailing-mul", "5 * -", i(-5)},
		{"neg-trailing-group", "(5 + -) * 2", i(-10)},
		{"neg-alone", "-", i(-1)},
		{"neg-alone-group", "(-)", i(-1)},
		{"neg-only", "--", tx("--")},
		{"wrap", "9223372036854775807 + 1", i(math.MinInt64)},
		{"overflow-literal", "9223372036854775808", f(9223372036854775808)},
		{"inf", "1e400 - 1", f(math.Inf(1))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := calculator.EvalString(c.src, nil)
			require.NoError(t, err, "evaluating %q", c.src)
			assert.Equal(t, c.want, got, "evaluating %q", c.src)
		})
	}
}

func TestEvalArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		kind calculator.Kind
		want float64
	}{
		{"5 * 1.5 / (44.0 / (2*2*2*2))", calculator.Real, 2.727272727272727},
		{"555 * 22 + ()212 + 21 * 6 / 2.0 + 5", calculator.Real, 12490},
		{"5.0 / 5 / 5 * 5", calculator.Real, 1},
		{"(2 * (777 / 12))", calculator.Integer, 128},
		{"(((12 * 3) - 24) / 6.0) + ((18 % 5) * 2)", calculator.Real, 8},
		{"(15 + 4.0) / (3 - 1) * (10 % 7)", calculator.Real, 28.5},
		{"((7 + 2) * 3 - (4 / 2.0)) + (5 % 3)", calculator.Real, 27},
		{"-2 + (-3) * 0.5", calculator.Real, -3.5},
		{"(-0.5) * (0.2 - 0.4) + (-0.1)", calculator.Real, 0},
		{"(-1) / 4.0 + (-0.25) * 2", calculator.Real, -0.75},
		{"(2 * (9 - 5) + 12) % 7 / 3.0", calculator.Real, 2},
		{"((8 - 3) / (2.0 * 4)) - (7 + 1) * 5", calculator.Real, -39.375},
		{"((10 - 3) / 2.0 + 9) - (5 * 2 - 7)", calculator.Real, 9.5},
		{"(6 * 7 - 12) / ((4 + 2) / 3.0)", calculator.Real, 15},
		{"((2 * (9 - 5) + 12) / 7.0) * ((3 + 6) - (8 * 2)) + ((5 - 1) / (2.0 + 3))", calculator.Real, -19.2},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got, err := calculator.EvalString(c.src, nil)
			require.NoError(t, err)
			require.Equal(t, c.kind, got.Kind(), "result %v", got)
			var r float64
			if c.kind == calculator.Integer {
				n, _ := got.Int()
				r = float64(n)
			} else {
				r, _ = got.Float()
			}
			assert.InDelta(t, c.want, r, 1e-9)
		})
	}
}

func TestEvalIntDivision(t *testing.T) {
	nums := []int64{-17, -9, -3, -1, 0, 1, 2, 5, 8, 1000003}
	for _, a := range nums {
		for _, b := range nums {
			if b == 0 {
				continue
			}
			src := fmt.Sprintf("%d / %d", a, b)
			got, err := calculator.EvalString(src, nil)
			require.NoError(t, err, src)
			assert.Equal(t, i(a/b), got, src)
		}
	}
}

func TestEvalNativeArithmetic(t *testing.T) {
	nums := []string{"-4", "0", "3", "7", "-2.5", "0.125", "6.0"}
	for _, a := range nums {
		for _, b := range nums {
			l, r := calculator.ParseLiteral(a), calculator.ParseLiteral(b)
			for _, op := range "+-*" {
				src := a + " " + string(op) + " " + b
				want, err := calculator.Apply(op, l, r)
				require.NoError(t, err, src)
				got, err := calculator.EvalString(src, nil)
				require.NoError(t, err, src)
				assert.Equal(t, want, got, src)
			}
		}
	}
}

func TestEvalDistributive(t *testing.T) {
	nums := []string{"-3", "0", "2", "11", "0.5", "-1.25"}
	for _, a := range nums {
		for _, b := range nums {
			for _, c := range nums {
				grouped := fmt.Sprintf("(%s + %s) * %s", a, b, c)
				spread := fmt.Sprintf("%s*%s + %s*%s", a, c, b, c)
				x, err := calculator.EvalString(grouped, nil)
				require.NoError(t, err, grouped)
				y, err := calculator.EvalString(spread, nil)
				require.NoError(t, err, spread)
				require.Equal(t, x.Kind(), y.Kind(), "%s vs %s", grouped, spread)
				if x.Kind() == calculator.Integer {
					assert.Equal(t, x, y, "%s vs %s", grouped, spread)
					continue
				}
				xf, _ := x.Float()
				yf, _ := y.Float()
				assert.InDelta(t, xf, yf, 1e-12, "%s vs %s", grouped, spread)
			}
		}
	}
}

func TestEvalVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars calculator.Vars
		want calculator.Value
	}{
		{"bound", "a * 3", calculator.Vars{"a": i(2)}, i(6)},
		{"unbound", "a * 3", nil, tx("aaa")},
		{"unbound-empty", "a * 3", calculator.Vars{}, tx("aaa")},
		{"real", "x + 1", calculator.Vars{"x": f(0.5)}, f(1.5)},
		{"text", "x + x", calculator.Vars{"x": tx("ab")}, tx("abab")},
		{"numeric-name", "12 + 1", calculator.Vars{"12": i(5)}, i(6)},
		{"joined-name", "big cat * 2", calculator.Vars{"bigcat": i(4)}, i(8)},
		{"neg-name", "-x", calculator.Vars{"x": i(4)}, tx("-x")},
		{"neg-bound", "-x", calculator.Vars{"-x": i(4)}, i(4)},
		{"neg-group", "-(x)", calculator.Vars{"x": i(4)}, i(-4)},
		{"nested", "(y - (x * 2))", calculator.Vars{"x": i(3), "y": i(10)}, i(4)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := calculator.EvalString(c.src, c.vars)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind calculator.ErrorKind
		pos  int
	}{
		{"empty", "", calculator.EmptyExpression, 1},
		{"spaces", "   ", calculator.EmptyExpression, 4},
		{"empty-group", "()", calculator.EmptyExpression, 3},
		{"space-group", "( )", calculator.EmptyExpression, 3},
		{"nested-group", "(())", calculator.EmptyExpression, 4},
		{"inner-empty", "2 * ( )", calculator.EmptyExpression, 7},
		{"op-op", "2 + + 3", calculator.UnexpectedOperator, 5},
		{"lead-op", "* 3", calculator.UnexpectedOperator, 1},
		{"trail-op", "2 +", calculator.UnexpectedOperator, 3},
		{"trail-op-group", "(2 *) + 1", calculator.UnexpectedOperator, 4},
		{"minus-op", "2 - * 3", calculator.UnexpectedOperator, 5},
		{"neg-op", "2 * - * 3", calculator.UnexpectedOperator, 7},
		{"unclosed", "(2 + 3", calculator.UnbalancedParentheses, 1},
		{"unclosed-inner", "(1 + (2)", calculator.UnbalancedParentheses, 1},
		{"unclosed-late", "1 + (2", calculator.UnbalancedParentheses, 5},
		{"unclosed-zero", "(1 / 0", calculator.UnbalancedParentheses, 1},
		{"unopened", "2 + 3)", calculator.UnbalancedParentheses, 6},
		{"unopened-alone", ")", calculator.UnbalancedParentheses, 1},
		{"unopened-neg", "-)", calculator.UnbalancedParentheses, 2},
		{"unopened-rhs", "2 + )", calculator.UnbalancedParentheses, 5},
		{"group-lit", "(2)3", calculator.MissingOperator, 4},
		{"lit-group", "2 (3)", calculator.MissingOperator, 3},
		{"group-group", "(2)(3)", calculator.MissingOperator, 4},
		{"div-zero", "1 / 0", calculator.DivisionByZero, 3},
		{"div-zero-real", "1 / 0.0", calculator.DivisionByZero, 3},
		{"mod-zero", "1 % 0", calculator.DivisionByZero, 3},
		{"div-zero-group", "1 / (2 - 2)", calculator.DivisionByZero, 3},
		{"div-zero-deep", "2 + (3 * (4 / (1 - 1)))", calculator.DivisionByZero, 13},
		{"div-zero-var", "1 / z", calculator.DivisionByZero, 3},
		{"sub-text", "hi - 1", calculator.UnsupportedOperand, 4},
		{"div-text-zero", "hi / 0", calculator.UnsupportedOperand, 4},
		{"mul-text-real", "hi * 1.5", calculator.UnsupportedOperand, 4},
		{"mul-text-text", "a * b", calculator.UnsupportedOperand, 3},
		{"neg-text-group", "-(hi)", calculator.RepeatOverflow, 1},
		{"repeat-neg", "hi * -1", calculator.RepeatOverflow, 4},
		{"concat-long", "x*16777216 + x", calculator.RepeatOverflow, 12},
		{"concat-long-chain", "x*16777216 + (x*16777216 + x*16777216)", calculator.RepeatOverflow, 26},
		{"bad-utf8", "\xff * 2", calculator.InvalidEncoding, 1},
		{"bad-utf8-later", "2 + a\xffb", calculator.InvalidEncoding, 6},
	}
	vars := calculator.Vars{"z": i(0)}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := calculator.EvalString(c.src, vars)
			require.Error(t, err, "evaluating %q gave %v", c.src, got)
			assert.Equal(t, calculator.Value{}, got)
			assert.Equal(t, c.kind, calculator.KindOf(err), "error: %v", err)
			var ie calculator.InputError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, c.pos, ie.Pos(), "error: %v", err)
		})
	}
}

func TestEvalErrorMessages(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"", "1: empty expression"},
		{"2 + + 3", "5: + can't be followed by +"},
		{"(2 + 3", "1: open bracket ( with no close bracket"},
		{"hi * 1.5", "4: unable to multiply Text with Real"},
		{"1 / (2 - 2)", "3: division by zero"},
		{"(2)3", `4: missing operator before "3"`},
	}
	for _, c := range cases {
		_, err := calculator.EvalString(c.src, nil)
		assert.EqualError(t, err, c.want, "evaluating %q", c.src)
	}
}

func TestEvalReadError(t *testing.T) {
	bad := errors.New("bad read")
	_, err := calculator.Eval(bufio.NewReader(iotest.ErrReader(bad)), nil)
	assert.ErrorIs(t, err, bad)
	assert.Equal(t, calculator.NoError, calculator.KindOf(err))
}

func BenchmarkEval(b *testing.B) {
	vars := calculator.Vars{
		"x": i(2),
		"y": f(3),
		"z": tx("z"),
	}
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		for n := 0; n < b.N; n++ {
			calculator.EvalString("2+3*4-(5%3)", nil)
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		for n := 0; n < b.N; n++ {
			calculator.EvalString("x+y*(z*x)", vars)
		}
	})
	b.Run("long", func(b *testing.B) {
		src := strings.Repeat("1 + 2 * 3 - ", 100) + "4"
		b.ReportAllocs()
		for n := 0; n < b.N; n++ {
			calculator.EvalString(src, nil)
		}
	})
}
