package calculator

import (
	"io"
	"strings"
)

// Vars maps variable names to values. A literal that is a key in Vars takes
// the mapped value, even if the literal would otherwise read as a number.
type Vars map[string]Value

// Eval evaluates an expression read to the end of src. vars may be nil.
// Evaluation either succeeds completely or returns the first error it finds;
// errors caused by the input implement InputError.
func Eval(src io.RuneScanner, vars Vars) (Value, error) {
	toks, err := lex(src).all()
	if err != nil {
		return Value{}, err
	}
	// The lexer always ends with EOF.
	e := evaluator{
		toks: toks[:len(toks)-1],
		end:  toks[len(toks)-1],
		vars: vars,
	}
	return e.run()
}

// EvalString is a shortcut to evaluate a string expression.
func EvalString(src string, vars Vars) (Value, error) {
	return Eval(strings.NewReader(src), vars)
}

// evaluator evaluates a list of tokens, either a whole input or the inside of
// a bracketed group.
type evaluator struct {
	toks []lexToken
	// end is the token that follows toks: EOF for the whole input, or the
	// close bracket of a group recast as EOF.
	end  lexToken
	i    int
	vars Vars
}

// yield describes what an operand or term produced.
type yield int8

const (
	// yieldNone means there was nothing to evaluate.
	yieldNone yield = iota
	// yieldValue means a value was produced.
	yieldValue
	// yieldNegate means a lone unary minus ended the expression. It negates
	// the left operand of the operator before it.
	yieldNegate
)

// next scans the next token. Past the end, it returns e.end.
func (e *evaluator) next() lexToken {
	k := e.i
	e.i++
	if k >= len(e.toks) {
		return e.end
	}
	return e.toks[k]
}

// back unscans the last token returned from next.
func (e *evaluator) back() {
	e.i--
}

// run evaluates all of e's tokens.
func (e *evaluator) run() (Value, error) {
	v, y, err := e.term(exprprec, lexToken{})
	if err != nil {
		return Value{}, err
	}
	switch y {
	case yieldNone:
		return Value{}, &EmptyExpressionError{Col: e.end.pos, End: e.end.text}
	case yieldNegate:
		// "-" alone.
		return Int(-1), nil
	}
	return v, nil
}

// term evaluates operands joined by operators more binding than until. prev is
// the operator token before the term, or a zero token at the start of an
// expression. If there is no error, then term leaves the token that ended it
// unscanned.
func (e *evaluator) term(until operator, prev lexToken) (Value, yield, error) {
	lhs, y, err := e.operand(prev)
	if err != nil || y != yieldValue {
		return lhs, y, err
	}
	for {
		tok := e.next()
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if !prec.moreBinding(until) {
				e.back()
				return lhs, yieldValue, nil
			}
			rhs, y, err := e.term(prec, tok)
			if err != nil {
				return Value{}, yieldNone, err
			}
			switch y {
			case yieldNone:
				return Value{}, yieldNone, &OperatorError{Col: tok.pos, Prev: tok.text}
			case yieldNegate:
				// 5 * - -> 5 * -1; 5 + - -> 5 * -1 as well.
				lhs, err = Mul(lhs, Int(-1))
			default:
				lhs, err = prec.op(lhs, rhs)
			}
			if err != nil {
				return Value{}, yieldNone, atpos(err, tok.pos)
			}
		case tokenEOF:
			e.back()
			return lhs, yieldValue, nil
		case tokenClose:
			return Value{}, yieldNone, &BracketError{Col: tok.pos, Right: tok.text}
		case tokenLit, tokenOpen:
			return Value{}, yieldNone, &MissingOperatorError{Col: tok.pos, Token: tok.text}
		default:
			panic("calculator: unknown token: " + tok.String())
		}
	}
}

// operand evaluates a single operand: a literal, a bracketed group, or either
// with a unary minus.
func (e *evaluator) operand(prev lexToken) (Value, yield, error) {
	tok := e.next()
	switch tok.kind {
	case tokenLit:
		return e.resolve(tok.text), yieldValue, nil
	case tokenOpen:
		v, err := e.group(tok)
		if err != nil {
			return Value{}, yieldNone, err
		}
		return v, yieldValue, nil
	case tokenOp:
		if tok.text != "-" {
			return Value{}, yieldNone, &OperatorError{Col: tok.pos, Operator: tok.text, Prev: prev.text}
		}
		return e.negation(tok)
	case tokenClose:
		return Value{}, yieldNone, &BracketError{Col: tok.pos, Right: tok.text}
	case tokenEOF:
		e.back()
		return Value{}, yieldNone, nil
	default:
		panic("calculator: unknown token: " + tok.String())
	}
}

// negation evaluates an operand following a unary minus. Minus signs before
// a literal become part of the literal, so "-3" is the Integer -3 and "-x" is
// the variable or text "-x". Each minus sign before a group negates it.
func (e *evaluator) negation(first lexToken) (Value, yield, error) {
	prefix := first.text
	for {
		tok := e.next()
		switch tok.kind {
		case tokenOp:
			if tok.text != "-" {
				return Value{}, yieldNone, &OperatorError{Col: tok.pos, Operator: tok.text, Prev: "-"}
			}
			prefix += tok.text
		case tokenLit:
			return e.resolve(prefix + tok.text), yieldValue, nil
		case tokenOpen:
			v, err := e.group(tok)
			if err != nil {
				return Value{}, yieldNone, err
			}
			for range prefix {
				v, err = Mul(v, Int(-1))
				if err != nil {
					return Value{}, yieldNone, atpos(err, first.pos)
				}
			}
			return v, yieldValue, nil
		case tokenEOF:
			e.back()
			if prefix == "-" {
				return Value{}, yieldNegate, nil
			}
			return e.resolve(prefix), yieldValue, nil
		case tokenClose:
			return Value{}, yieldNone, &BracketError{Col: tok.pos, Right: tok.text}
		default:
			panic("calculator: unknown token: " + tok.String())
		}
	}
}

// group evaluates the bracketed group opened by open, which e has just
// scanned.
func (e *evaluator) group(open lexToken) (Value, error) {
	depth := 0
	for k := e.i; k < len(e.toks); k++ {
		switch e.toks[k].kind {
		case tokenOpen:
			depth++
		case tokenClose:
			if depth > 0 {
				depth--
				continue
			}
			rb := e.toks[k]
			g := evaluator{
				toks: e.toks[e.i:k],
				end:  lexToken{text: rb.text, kind: tokenEOF, pos: rb.pos},
				vars: e.vars,
			}
			e.i = k + 1
			return g.run()
		}
	}
	return Value{}, &BracketError{Col: open.pos, Left: open.text}
}

// resolve gets the value of a literal, looking it up as a variable first.
func (e *evaluator) resolve(lit string) Value {
	if v, ok := e.vars[lit]; ok {
		return v
	}
	return ParseLiteral(lit)
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// op applies the operator.
	op func(l, r Value) (Value, error)
}

// moreBinding returns whether p binds more tightly than than. All operators
// are left-associative.
func (p operator) moreBinding(than operator) bool {
	return p.prec > than.prec
}

// binop gets the binary operator for a token string. Panics if there is no
// such operator.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, Add}
	case "-":
		return operator{1, Sub}
	case "*":
		return operator{5, Mul}
	case "/":
		return operator{5, Div}
	case "%":
		return operator{5, Mod}
	default:
		panic("calculator: unknown operator " + text)
	}
}

// exprprec is the precedence required to evaluate an entire expression.
var exprprec = operator{prec: -128}
