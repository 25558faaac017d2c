package rpn

import (
	"errors"
	"strconv"
)

// ErrorKind classifies an evaluation failure. Each kind is itself an error, so
// callers can test for a kind with errors.Is(err, rpn.ErrDivisionByZero).
type ErrorKind int8

const (
	errNone ErrorKind = iota
	// ErrSyntax is an unknown character or unbalanced parentheses.
	ErrSyntax
	// ErrUnknownToken is a token that is not a number, operator, unary
	// operator, or registered function.
	ErrUnknownToken
	// ErrUnknownFunction is a call to a function name that is not registered.
	ErrUnknownFunction
	// ErrInsufficientOperands is an operator or unary operator applied to too
	// few values.
	ErrInsufficientOperands
	// ErrInsufficientArguments is a function called with fewer arguments
	// than it requires.
	ErrInsufficientArguments
	// ErrTooManyArguments is a function called with more arguments than it
	// allows.
	ErrTooManyArguments
	// ErrType is a non-integer operand to an integer-only operator.
	ErrType
	// ErrDivisionByZero is a zero divisor.
	ErrDivisionByZero
	// ErrArithmetic is a domain error, e.g. the square root of a negative.
	ErrArithmetic
	// ErrMalformedExpression is an expression that does not reduce to
	// exactly one value.
	ErrMalformedExpression
	// ErrFunctionExecution is a failure inside a built-in function.
	ErrFunctionExecution
	// ErrEvaluation is any other failure during evaluation, e.g. a result
	// too large to represent.
	ErrEvaluation
	// ErrNestingTooDeep is an expression whose parenthesized groups nest
	// deeper than the evaluator allows.
	ErrNestingTooDeep
)

var kindNames = [...]string{
	errNone:                  "none",
	ErrSyntax:                "syntax error",
	ErrUnknownToken:          "unknown token",
	ErrUnknownFunction:       "unknown function",
	ErrInsufficientOperands:  "insufficient operands",
	ErrInsufficientArguments: "insufficient arguments",
	ErrTooManyArguments:      "too many arguments",
	ErrType:                  "type error",
	ErrDivisionByZero:        "division by zero",
	ErrArithmetic:            "arithmetic error",
	ErrMalformedExpression:   "malformed expression",
	ErrFunctionExecution:     "function execution error",
	ErrEvaluation:            "evaluation error",
	ErrNestingTooDeep:        "nesting too deep",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

func (k ErrorKind) Error() string {
	return k.String()
}

// Error is the error returned for every failure to evaluate an expression.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind
	// Col is the 1-based rune column in the evaluated input of the token
	// that caused the error, or 0 if the error has no single position.
	Col int
	// Token is the text of the offending token, if any.
	Token string
	// Func is the name of the function involved, if any.
	Func string
	// Msg describes the failure.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (err *Error) Error() string {
	if err.Col <= 0 {
		return err.Msg
	}
	return errpos(err.Col, err.Msg)
}

// Unwrap returns the cause of the error.
func (err *Error) Unwrap() error {
	return err.Err
}

// Is reports whether target is the error's kind.
func (err *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == err.Kind
}

// Pos returns the column of the error, or 0 if it has none.
func (err *Error) Pos() int {
	return err.Col
}

// KindOf returns the kind of the first *Error in err's chain, or 0 if there is
// none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return errNone
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// at attaches a token's position to an error that does not yet have one.
func at(err error, tok Token) error {
	var e *Error
	if errors.As(err, &e) && e.Col == 0 {
		e.Col = tok.Col
		if e.Token == "" {
			e.Token = tok.Text
		}
	}
	return err
}

func unbalanced(col int, paren string) *Error {
	msg := "unbalanced parentheses: ( with no matching )"
	if paren == ")" {
		msg = "unbalanced parentheses: ) with no matching ("
	}
	return &Error{Kind: ErrSyntax, Col: col, Token: paren, Msg: msg}
}

func unknownSymbol(col int, r rune) *Error {
	return &Error{Kind: ErrSyntax, Col: col, Token: string(r), Msg: "unknown symbol " + strconv.QuoteRune(r)}
}

func unknownToken(tok Token) *Error {
	return &Error{Kind: ErrUnknownToken, Col: tok.Col, Token: tok.Text, Msg: "unknown token " + strconv.Quote(tok.Text)}
}

func insufficientOperands(tok Token, need, have int) *Error {
	return &Error{
		Kind:  ErrInsufficientOperands,
		Col:   tok.Col,
		Token: tok.Text,
		Msg:   "not enough operands for " + strconv.Quote(tok.Text) + ": need " + strconv.Itoa(need) + ", have " + strconv.Itoa(have),
	}
}

func argCountError(name string, min, max, have int) *Error {
	if have < min {
		return &Error{
			Kind: ErrInsufficientArguments,
			Func: name,
			Msg:  "not enough arguments for " + name + ": need at least " + strconv.Itoa(min) + ", have " + strconv.Itoa(have),
		}
	}
	return &Error{
		Kind: ErrTooManyArguments,
		Func: name,
		Msg:  "too many arguments for " + name + ": accepts at most " + strconv.Itoa(max) + ", got " + strconv.Itoa(have),
	}
}

func typeError(op string) *Error {
	return newError(ErrType, op+" requires integer operands")
}

func divisionByZero() *Error {
	return newError(ErrDivisionByZero, "division by zero")
}

func tooLarge() *Error {
	return newError(ErrEvaluation, "result too large")
}

func malformed(n int) *Error {
	if n == 0 {
		return newError(ErrMalformedExpression, "malformed expression: no value")
	}
	return newError(ErrMalformedExpression, "malformed expression: "+strconv.Itoa(n)+" values left on the stack")
}

// InputError is an error with position information. Every *Error implements
// InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*Error)(nil)
	_ error      = ErrorKind(0)
)
