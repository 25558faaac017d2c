package rpn

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// MaxVariadic is the most arguments a variadic built-in accepts.
const MaxVariadic = 256

// Func is a built-in function.
type Func struct {
	// Min and Max are the least and most arguments the function accepts.
	Min, Max int
	// call evaluates the function. len(args) is between Min and Max.
	call func(args []Value) (Value, error)
}

// Variadic reports whether the function accepts a range of argument counts.
func (f *Func) Variadic() bool {
	return f.Max > f.Min
}

var builtins = map[string]*Func{
	"abs":  {Min: 1, Max: 1, call: absf},
	"sqrt": {Min: 1, Max: 1, call: sqrtf},
	"pow":  {Min: 2, Max: 2, call: powf},
	"max":  {Min: 1, Max: MaxVariadic, call: extremum(1)},
	"min":  {Min: 1, Max: MaxVariadic, call: extremum(-1)},
}

// Funcs returns the names of the built-in functions, sorted.
func Funcs() []string {
	return sortedKeys(builtins)
}

// LookupFunc returns the built-in function with the given name, or nil if
// there is none.
func LookupFunc(name string) *Func {
	return builtins[name]
}

// Call calls a built-in function by name.
func Call(name string, args ...Value) (Value, error) {
	f := builtins[name]
	if f == nil {
		return Value{}, &Error{Kind: ErrUnknownFunction, Func: name, Msg: "unknown function " + strconv.Quote(name)}
	}
	if len(args) < f.Min || len(args) > f.Max {
		return Value{}, argCountError(name, f.Min, f.Max, len(args))
	}
	return callFunc(name, f, args)
}

// resolve finds the function named by an identifier. A variadic function may
// be named with a decimal argument count suffix, as in max3, which limits how
// many values the call consumes. limit is the most arguments the call may
// consume. If the identifier names no function, f is nil and err is nil.
func resolve(ident string) (name string, f *Func, limit int, err error) {
	if f := builtins[ident]; f != nil {
		return ident, f, f.Max, nil
	}
	name = strings.TrimRight(ident, "0123456789")
	if name == ident || name == "" {
		return ident, nil, 0, nil
	}
	f = builtins[name]
	if f == nil || !f.Variadic() {
		return ident, nil, 0, nil
	}
	n, err := strconv.Atoi(ident[len(name):])
	if err != nil {
		// Too many digits for an int.
		n = math.MaxInt
	}
	if n < f.Min || n > f.Max {
		return name, nil, 0, argCountError(name, f.Min, f.Max, n)
	}
	return name, f, n, nil
}

// callFunc calls f. Failures other than domain errors are reported as
// ErrFunctionExecution.
func callFunc(name string, f *Func, args []Value) (r Value, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		nan, ok := p.(big.ErrNaN)
		if !ok {
			panic(p)
		}
		err = funcError(name, nan)
	}()
	r, err = f.call(args)
	if err != nil && !errors.Is(err, ErrArithmetic) {
		err = funcError(name, err)
	}
	return r, err
}

func funcError(name string, err error) *Error {
	return &Error{
		Kind: ErrFunctionExecution,
		Func: name,
		Msg:  "error executing " + name + ": " + err.Error(),
		Err:  err,
	}
}

func absf(args []Value) (Value, error) {
	x := args[0]
	if x.kind == Int {
		return intv(new(big.Int).Abs(x.i)), nil
	}
	return FloatValue(math.Abs(x.f)), nil
}

func sqrtf(args []Value) (Value, error) {
	x := args[0]
	if x.sign() < 0 {
		return Value{}, &Error{Kind: ErrArithmetic, Func: "sqrt", Msg: "sqrt of negative number " + x.String()}
	}
	if x.kind == Float {
		return FloatValue(math.Sqrt(x.f)), nil
	}
	if f, err := x.toFloat(); err == nil {
		return FloatValue(math.Sqrt(f)), nil
	}
	r, _ := new(big.Float).Sqrt(new(big.Float).SetInt(x.i)).Float64()
	return FloatValue(r), nil
}

func powf(args []Value) (Value, error) {
	return power(args[0], args[1])
}

// extremum returns a function selecting the greatest argument if dir is 1 or
// the least if dir is -1. Ties keep the earliest argument, and NaN never
// replaces the current choice.
func extremum(dir int) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		r := args[0]
		for _, x := range args[1:] {
			if c, ok := compare(x, r); ok && c == dir {
				r = x
			}
		}
		return r, nil
	}
}
