package rpn

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind is the numeric type of a Value.
type Kind int8

const (
	// Int is an integer of arbitrary width.
	Int Kind = iota + 1
	// Float is a double-precision floating-point number.
	Float
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a number produced by evaluating an expression. The zero Value is
// not valid. Values are immutable.
type Value struct {
	kind Kind
	i    *big.Int
	f    float64
}

// IntValue returns an Int value.
func IntValue(x int64) Value {
	return Value{kind: Int, i: big.NewInt(x)}
}

// BigIntValue returns an Int value holding a copy of x.
func BigIntValue(x *big.Int) Value {
	return Value{kind: Int, i: new(big.Int).Set(x)}
}

// FloatValue returns a Float value.
func FloatValue(x float64) Value {
	return Value{kind: Float, f: x}
}

func intv(x *big.Int) Value {
	return Value{kind: Int, i: x}
}

// Kind returns the numeric type of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsInt is a shortcut for v.Kind() == Int.
func (v Value) IsInt() bool {
	return v.kind == Int
}

// Int returns a copy of the integer held by v, or nil if v is not an Int.
func (v Value) Int() *big.Int {
	if v.kind != Int {
		return nil
	}
	return new(big.Int).Set(v.i)
}

// Float returns v as a float64. An Int too large for a float64 becomes an
// infinity of the same sign.
func (v Value) Float() float64 {
	if v.kind == Float {
		return v.f
	}
	if v.i == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.i).Float64()
	return f
}

// toFloat converts v to a float64, failing if v is an Int too large to
// represent.
func (v Value) toFloat() (float64, error) {
	f := v.Float()
	if v.kind == Int && math.IsInf(f, 0) {
		return 0, newError(ErrEvaluation, "integer too large to convert to float")
	}
	return f, nil
}

// sign returns -1, 0, or +1 according to the sign of v. NaN has sign 0.
func (v Value) sign() int {
	switch {
	case v.kind == Int:
		return v.i.Sign()
	case v.f < 0:
		return -1
	case v.f > 0:
		return 1
	default:
		return 0
	}
}

func (v Value) isZero() bool {
	if v.kind == Int {
		return v.i.Sign() == 0
	}
	return v.f == 0
}

// String formats v. Ints are written in decimal. Floats are written in the
// shortest form that reads back as the same value and always show that they
// are floats, e.g. 3.0 rather than 3.
func (v Value) String() string {
	switch v.kind {
	case Int:
		return v.i.String()
	case Float:
		return formatFloat(v.f)
	default:
		return "<invalid>"
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return s
	}
	s = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Promote returns the kind of the result of a binary arithmetic operation on a
// and b: Int if both are Int, otherwise Float.
func Promote(a, b Value) Kind {
	if a.kind == Int && b.kind == Int {
		return Int
	}
	return Float
}

// compare compares a and b exactly, even across kinds. ok is false if either
// is NaN.
func compare(a, b Value) (c int, ok bool) {
	if Promote(a, b) == Int {
		return a.i.Cmp(b.i), true
	}
	if a.kind == Float && b.kind == Float {
		switch {
		case math.IsNaN(a.f), math.IsNaN(b.f):
			return 0, false
		case a.f < b.f:
			return -1, true
		case a.f > b.f:
			return 1, true
		default:
			return 0, true
		}
	}
	x, okx := a.exact()
	y, oky := b.exact()
	if !okx || !oky {
		return 0, false
	}
	return x.Cmp(y), true
}

// exact returns v as a big.Float without rounding. ok is false if v is NaN.
func (v Value) exact() (*big.Float, bool) {
	if v.kind == Int {
		return new(big.Float).SetInt(v.i), true
	}
	if math.IsNaN(v.f) {
		return nil, false
	}
	return new(big.Float).SetFloat64(v.f), true
}
