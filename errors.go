package calculator

import (
	"errors"
	"strconv"
)

// ErrorKind classifies the errors that evaluation can produce.
type ErrorKind int8

const (
	// NoError is the kind of a nil error or of an error this package didn't
	// produce.
	NoError ErrorKind = iota
	// EmptyExpression means there was no operand to evaluate.
	EmptyExpression
	// UnbalancedParentheses means a close bracket with no open bracket, or an
	// open bracket that is never closed.
	UnbalancedParentheses
	// UnexpectedOperator means an operator where an operand was expected.
	UnexpectedOperator
	// MissingOperator means two operands with no operator between them.
	MissingOperator
	// UnsupportedOperand means an operator applied to kinds it doesn't
	// support.
	UnsupportedOperand
	// DivisionByZero means division or remainder by a zero divisor.
	DivisionByZero
	// RepeatOverflow means text repetition by a negative count, or text
	// repetition or concatenation to a length over MaxTextLen.
	RepeatOverflow
	// InvalidEncoding means the input is not valid UTF-8.
	InvalidEncoding
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "NoError"
	case EmptyExpression:
		return "EmptyExpression"
	case UnbalancedParentheses:
		return "UnbalancedParentheses"
	case UnexpectedOperator:
		return "UnexpectedOperator"
	case MissingOperator:
		return "MissingOperator"
	case UnsupportedOperand:
		return "UnsupportedOperand"
	case DivisionByZero:
		return "DivisionByZero"
	case RepeatOverflow:
		return "RepeatOverflow"
	case InvalidEncoding:
		return "InvalidEncoding"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// KindOf returns the kind of err, looking through wrapped errors.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return NoError
}

// EmptyExpressionError is an error indicating an expression or group with no
// operands.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the expression.
	Col int
	// End is the token that ended the expression, or the empty string for the
	// end of input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "empty expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Kind() ErrorKind {
	return EmptyExpression
}

// BracketError is an error indicating unbalanced brackets.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the open bracket that is never closed, or the empty string.
	Left string
	// Right is the close bracket with no open bracket, or the empty string.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Kind() ErrorKind {
	return UnbalancedParentheses
}

// OperatorError is an error indicating an operator where an operand belongs.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the misplaced operator, or the empty string if Prev ended
	// the input.
	Operator string
	// Prev is the operator immediately before, or the empty string if
	// Operator begins the expression.
	Prev string
}

func (err *OperatorError) Error() string {
	switch {
	case err.Operator == "":
		return errpos(err.Col, "operator "+err.Prev+" has no right operand")
	case err.Prev == "":
		return errpos(err.Col, "operator "+err.Operator+" has no left operand")
	default:
		return errpos(err.Col, err.Prev+" can't be followed by "+err.Operator)
	}
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Kind() ErrorKind {
	return UnexpectedOperator
}

// MissingOperatorError is an error indicating an operand directly following
// another operand, e.g. "(2) 3".
type MissingOperatorError struct {
	// Col is the position of the second operand.
	Col int
	// Token is the token that begins the second operand.
	Token string
}

func (err *MissingOperatorError) Error() string {
	return errpos(err.Col, "missing operator before "+strconv.Quote(err.Token))
}

func (err *MissingOperatorError) Pos() int {
	return err.Col
}

func (err *MissingOperatorError) Kind() ErrorKind {
	return MissingOperator
}

// OperandError is an error indicating an operator applied to kinds it does not
// support.
type OperandError struct {
	// Col is the position of the operator, or 0 if the operator was not
	// applied within an expression.
	Col int
	// Op is the operator.
	Op string
	// Left and Right are the kinds of the operands.
	Left, Right Kind
}

func (err *OperandError) Error() string {
	l, r := err.Left.String(), err.Right.String()
	var msg string
	switch err.Op {
	case "+":
		msg = "unable to add " + l + " and " + r
	case "-":
		msg = "unable to subtract " + r + " from " + l
	case "*":
		msg = "unable to multiply " + l + " with " + r
	case "/":
		msg = "unable to divide " + l + " by " + r
	case "%":
		msg = "unable to take the remainder of " + l + " by " + r
	default:
		msg = "unable to apply " + strconv.Quote(err.Op) + " to " + l + " and " + r
	}
	return errpos(err.Col, msg)
}

func (err *OperandError) Pos() int {
	return err.Col
}

func (err *OperandError) Kind() ErrorKind {
	return UnsupportedOperand
}

// ZeroDivisionError is an error indicating division or remainder by zero.
type ZeroDivisionError struct {
	// Col is the position of the operator, or 0 if the operator was not
	// applied within an expression.
	Col int
	// Op is "/" or "%".
	Op string
}

func (err *ZeroDivisionError) Error() string {
	if err.Op == "%" {
		return errpos(err.Col, "remainder by zero")
	}
	return errpos(err.Col, "division by zero")
}

func (err *ZeroDivisionError) Pos() int {
	return err.Col
}

func (err *ZeroDivisionError) Kind() ErrorKind {
	return DivisionByZero
}

// RepeatError is an error indicating text repetition that is negative or
// would exceed MaxTextLen.
type RepeatError struct {
	// Col is the position of the operator, or 0 if the operator was not
	// applied within an expression.
	Col int
	// Len is the length of the text in bytes.
	Len int
	// Count is the repetition count.
	Count int64
}

func (err *RepeatError) Error() string {
	if err.Count < 0 {
		return errpos(err.Col, "cannot repeat text a negative number of times ("+strconv.FormatInt(err.Count, 10)+")")
	}
	return errpos(err.Col, "repeating text of length "+strconv.Itoa(err.Len)+" "+strconv.FormatInt(err.Count, 10)+" times is too long")
}

func (err *RepeatError) Pos() int {
	return err.Col
}

func (err *RepeatError) Kind() ErrorKind {
	return RepeatOverflow
}

// ConcatError is an error indicating concatenation that would exceed
// MaxTextLen.
type ConcatError struct {
	// Col is the position of the operator, or 0 if the operator was not
	// applied within an expression.
	Col int
	// Len is the length in bytes the result would have.
	Len int
}

func (err *ConcatError) Error() string {
	return errpos(err.Col, "concatenating text to length "+strconv.Itoa(err.Len)+" is too long")
}

func (err *ConcatError) Pos() int {
	return err.Col
}

func (err *ConcatError) Kind() ErrorKind {
	return RepeatOverflow
}

// EncodingError is an error indicating input that is not valid UTF-8.
type EncodingError struct {
	// Col is the position of the invalid byte.
	Col int
}

func (err *EncodingError) Error() string {
	return errpos(err.Col, "invalid UTF-8")
}

func (err *EncodingError) Pos() int {
	return err.Col
}

func (err *EncodingError) Kind() ErrorKind {
	return InvalidEncoding
}

// errpos is a shortcut to create an error message with a position. A position
// of 0 means none.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// atpos sets the position of an operator error that has none.
func atpos(err error, pos int) error {
	switch err := err.(type) {
	case *OperandError:
		if err.Col == 0 {
			err.Col = pos
		}
	case *ZeroDivisionError:
		if err.Col == 0 {
			err.Col = pos
		}
	case *RepeatError:
		if err.Col == 0 {
			err.Col = pos
		}
	case *ConcatError:
		if err.Col == 0 {
			err.Col = pos
		}
	}
	return err
}

// InputError is an error with position information. Every error resulting from
// invalid input or from an operator implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
	// Kind classifies the error.
	Kind() ErrorKind
}

var (
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*MissingOperatorError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*ZeroDivisionError)(nil)
	_ InputError = (*RepeatError)(nil)
	_ InputError = (*ConcatError)(nil)
	_ InputError = (*EncodingError)(nil)
)
