package rpn

import (
	"math"
	"math/big"
	"sort"

	"github.com/zephyrtronium/bigfloat"
)

// binaryOp applies an operator to its left and right operands.
type binaryOp func(a, b Value) (Value, error)

// unaryOp applies a unary operator.
type unaryOp func(a Value) Value

var binaryOps = map[string]binaryOp{
	"+":  add,
	"-":  sub,
	"*":  mul,
	"/":  quo,
	"//": floorQuo,
	"%":  mod,
	"**": power,
}

// unaryOps includes u+ and u- as spellings of $ and ~.
var unaryOps = map[string]unaryOp{
	"$":  pos,
	"~":  neg,
	"u+": pos,
	"u-": neg,
}

// Operators returns the binary operator symbols, sorted.
func Operators() []string {
	return sortedKeys(binaryOps)
}

// UnaryOperators returns the unary operator symbols, sorted.
func UnaryOperators() []string {
	return sortedKeys(unaryOps)
}

func sortedKeys[V any](m map[string]V) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// maxIntBits bounds the size of integer powers. Products may be up to twice
// as large.
const maxIntBits = 1 << 22

// bigPowPrec is the precision of powers of integers too large for a float64.
const bigPowPrec = 256

var one = big.NewInt(1)

func arith(a, b Value, ints func(z, x, y *big.Int) *big.Int, floats func(x, y float64) float64) (Value, error) {
	if Promote(a, b) == Int {
		return intv(ints(new(big.Int), a.i, b.i)), nil
	}
	x, err := a.toFloat()
	if err != nil {
		return Value{}, err
	}
	y, err := b.toFloat()
	if err != nil {
		return Value{}, err
	}
	return FloatValue(floats(x, y)), nil
}

func add(a, b Value) (Value, error) {
	return arith(a, b, (*big.Int).Add, func(x, y float64) float64 { return x + y })
}

func sub(a, b Value) (Value, error) {
	return arith(a, b, (*big.Int).Sub, func(x, y float64) float64 { return x - y })
}

func mul(a, b Value) (Value, error) {
	if Promote(a, b) == Int && a.i.BitLen()+b.i.BitLen() > 2*maxIntBits {
		return Value{}, tooLarge()
	}
	return arith(a, b, (*big.Int).Mul, func(x, y float64) float64 { return x * y })
}

// quo is true division. The result is always a Float.
func quo(a, b Value) (Value, error) {
	if b.isZero() {
		return Value{}, divisionByZero()
	}
	if Promote(a, b) == Int {
		// Divide exactly, then round once.
		f, _ := new(big.Rat).SetFrac(a.i, b.i).Float64()
		if math.IsInf(f, 0) {
			return Value{}, newError(ErrEvaluation, "integer division result too large for a float")
		}
		return FloatValue(f), nil
	}
	return arith(a, b, nil, func(x, y float64) float64 { return x / y })
}

// floorDivMod returns the quotient rounded toward negative infinity and the
// remainder with the sign of y.
func floorDivMod(x, y *big.Int) (q, m *big.Int) {
	q, m = new(big.Int).QuoRem(x, y, new(big.Int))
	if m.Sign() != 0 && m.Sign() != y.Sign() {
		q.Sub(q, one)
		m.Add(m, y)
	}
	return q, m
}

func floorQuo(a, b Value) (Value, error) {
	if Promote(a, b) != Int {
		return Value{}, typeError("//")
	}
	if b.isZero() {
		return Value{}, divisionByZero()
	}
	q, _ := floorDivMod(a.i, b.i)
	return intv(q), nil
}

func mod(a, b Value) (Value, error) {
	if Promote(a, b) != Int {
		return Value{}, typeError("%")
	}
	if b.isZero() {
		return Value{}, divisionByZero()
	}
	_, m := floorDivMod(a.i, b.i)
	return intv(m), nil
}

// power raises a to the power b. Int to a non-negative Int power is an Int;
// everything else is a Float.
func power(a, b Value) (Value, error) {
	if Promote(a, b) == Int {
		if b.i.Sign() >= 0 {
			return intPow(a.i, b.i)
		}
		if a.i.Sign() == 0 {
			return Value{}, newError(ErrDivisionByZero, "0 cannot be raised to a negative power")
		}
	}
	y, err := b.toFloat()
	if err != nil {
		return Value{}, err
	}
	x, err := a.toFloat()
	if err != nil {
		return bigPow(a.i, y)
	}
	switch {
	case math.IsInf(x, 0), math.IsInf(y, 0), math.IsNaN(y):
		// math.Pow handles the special values.
	case x == 0 && y < 0:
		return Value{}, newError(ErrDivisionByZero, "0 cannot be raised to a negative power")
	case x < 0 && y != math.Trunc(y):
		return Value{}, newError(ErrArithmetic, "negative number cannot be raised to a fractional power")
	}
	r := math.Pow(x, y)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return Value{}, tooLarge()
	}
	return FloatValue(r), nil
}

func intPow(x, y *big.Int) (Value, error) {
	switch {
	case x.Sign() == 0, x.Cmp(one) == 0, y.Sign() == 0:
		return intv(new(big.Int).Exp(x, y, nil)), nil
	case x.CmpAbs(one) == 0:
		// -1
		if y.Bit(0) == 0 {
			return IntValue(1), nil
		}
		return IntValue(-1), nil
	}
	if !y.IsInt64() || y.Int64() > maxIntBits || int64(x.BitLen()-1)*y.Int64() > maxIntBits {
		return Value{}, tooLarge()
	}
	return intv(new(big.Int).Exp(x, y, nil)), nil
}

// bigPow raises an integer too large for a float64 to a power, rounding the
// result to a float64.
func bigPow(x *big.Int, y float64) (Value, error) {
	switch {
	case math.IsNaN(y):
		return FloatValue(math.NaN()), nil
	case y == 0:
		return FloatValue(1), nil
	case math.IsInf(y, 1):
		return Value{}, tooLarge()
	case math.IsInf(y, -1):
		return FloatValue(0), nil
	}
	odd := false
	if x.Sign() < 0 {
		if y != math.Trunc(y) {
			return Value{}, newError(ErrArithmetic, "negative number cannot be raised to a fractional power")
		}
		odd = math.Mod(y, 2) != 0
	}
	bx := new(big.Float).SetPrec(bigPowPrec).SetInt(x)
	bx.Abs(bx)
	by := new(big.Float).SetPrec(bigPowPrec).SetFloat64(y)
	r := bigfloat.Pow(new(big.Float).SetPrec(bigPowPrec), bx, by)
	if odd {
		r.Neg(r)
	}
	f, _ := r.Float64()
	if math.IsInf(f, 0) {
		return Value{}, tooLarge()
	}
	return FloatValue(f), nil
}

func pos(a Value) Value {
	return a
}

func neg(a Value) Value {
	if a.kind == Int {
		return intv(new(big.Int).Neg(a.i))
	}
	return FloatValue(-a.f)
}
