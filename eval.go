package rpn

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// Evaluator evaluates expressions. An Evaluator holds only its configuration,
// so it is safe to use concurrently.
type Evaluator struct {
	maxDepth int
}

// New creates an evaluator. Without options, nesting is limited to
// DefaultMaxDepth.
func New(opts ...Option) *Evaluator {
	ev := Evaluator{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&ev)
	}
	return &ev
}

// MaxDepth returns the deepest nesting the evaluator accepts.
func (ev *Evaluator) MaxDepth() int {
	return ev.maxDepth
}

// Eval evaluates an expression. The expression is trimmed and wrapped in
// parentheses if it is not already a single parenthesized group. Every
// failure is an *Error.
func (ev *Evaluator) Eval(expr string) (r Value, err error) {
	defer recoverNaN(&err)
	r, err = ev.eval(expr, 0, 1)
	if err != nil {
		glog.V(1).Infof("rpn: %q: %v", expr, err)
		return Value{}, err
	}
	glog.V(1).Infof("rpn: %q = %v", expr, r)
	return r, nil
}

// EvalTokens evaluates a token sequence as the contents of one parenthesized
// group.
func (ev *Evaluator) EvalTokens(toks []Token) (r Value, err error) {
	defer recoverNaN(&err)
	return ev.reduce(toks, 1)
}

// recoverNaN turns a big.ErrNaN panic from math/big into an ErrEvaluation.
func recoverNaN(err *error) {
	p := recover()
	if p == nil {
		return
	}
	nan, ok := p.(big.ErrNaN)
	if !ok {
		panic(p)
	}
	*err = &Error{Kind: ErrEvaluation, Msg: "evaluation error: " + nan.Error(), Err: nan}
}

// eval parses and evaluates src at the given nesting depth. base is the
// number of runes preceding src in the input.
func (ev *Evaluator) eval(src string, base, depth int) (Value, error) {
	if depth > ev.maxDepth {
		return Value{}, newError(ErrNestingTooDeep, "expression nested deeper than "+strconv.Itoa(ev.maxDepth)+" levels")
	}
	inner, ibase := unwrap(src, base)
	toks, err := tokenize(inner, ibase)
	if err != nil {
		return Value{}, err
	}
	return ev.reduce(toks, depth)
}

// reduce evaluates tokens on a fresh stack.
func (ev *Evaluator) reduce(toks []Token, depth int) (Value, error) {
	stack := make([]Value, 0, len(toks))
	for _, tok := range toks {
		v, err := ev.step(stack, tok, depth)
		if err != nil {
			return Value{}, at(err, tok)
		}
		stack = v
		if glog.V(2) {
			glog.Infof("rpn: %v -> %v", tok, stackString(stack))
		}
	}
	if len(stack) != 1 {
		return Value{}, malformed(len(stack))
	}
	return stack[0], nil
}

// step applies one token to the stack and returns the new stack.
func (ev *Evaluator) step(stack []Value, tok Token, depth int) ([]Value, error) {
	switch tok.Kind {
	case TokenNested:
		v, err := ev.eval(tok.Text, tok.Col-1, depth+1)
		if err != nil {
			return nil, err
		}
		return append(stack, v), nil
	case TokenNumber:
		v, err := parseNum(tok)
		if err != nil {
			return nil, err
		}
		return append(stack, v), nil
	case TokenUnary:
		f := unaryOps[tok.Text]
		if f == nil {
			return nil, unknownToken(tok)
		}
		return applyUnary(stack, tok, f)
	case TokenOperator:
		f := binaryOps[tok.Text]
		if f == nil {
			return nil, unknownToken(tok)
		}
		if len(stack) < 2 {
			return nil, insufficientOperands(tok, 2, len(stack))
		}
		n := len(stack)
		v, err := f(stack[n-2], stack[n-1])
		if err != nil {
			return nil, err
		}
		stack[n-2] = v
		return stack[:n-1], nil
	case TokenIdent:
		if f := unaryOps[tok.Text]; f != nil {
			return applyUnary(stack, tok, f)
		}
		name, f, limit, err := resolve(tok.Text)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, unknownToken(tok)
		}
		k := len(stack)
		if k > limit {
			k = limit
		}
		if k < f.Min {
			return nil, argCountError(name, f.Min, limit, len(stack))
		}
		n := len(stack) - k
		args := make([]Value, k)
		copy(args, stack[n:])
		v, err := callFunc(name, f, args)
		if err != nil {
			return nil, err
		}
		return append(stack[:n], v), nil
	default:
		return nil, unknownToken(tok)
	}
}

func applyUnary(stack []Value, tok Token, f unaryOp) ([]Value, error) {
	if len(stack) < 1 {
		return nil, insufficientOperands(tok, 1, 0)
	}
	n := len(stack) - 1
	stack[n] = f(stack[n])
	return stack, nil
}

// parseNum parses a number token. Numbers with a decimal point are Floats.
func parseNum(tok Token) (Value, error) {
	if strings.ContainsRune(tok.Text, '.') {
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !isRangeErr(err) {
			return Value{}, unknownToken(tok)
		}
		return FloatValue(f), nil
	}
	i, ok := new(big.Int).SetString(tok.Text, 10)
	if !ok {
		return Value{}, unknownToken(tok)
	}
	return intv(i), nil
}

// isRangeErr reports whether err is a strconv range error. ParseFloat returns
// ±Inf along with it, which is the value we want.
func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

func stackString(stack []Value) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range stack {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}

var std = New()

// Eval is a shortcut to evaluate an expression with a new Evaluator. With no
// options, it uses a shared default Evaluator.
func Eval(expr string, opts ...Option) (Value, error) {
	if len(opts) == 0 {
		return std.Eval(expr)
	}
	return New(opts...).Eval(expr)
}
