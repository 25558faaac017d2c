package rpn

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		ident string
		name  string
		found bool
		limit int
		kind  ErrorKind
	}{
		{"abs", "abs", true, 1, errNone},
		{"pow", "pow", true, 2, errNone},
		{"max", "max", true, MaxVariadic, errNone},
		{"min", "min", true, MaxVariadic, errNone},
		{"max3", "max", true, 3, errNone},
		{"min1", "min", true, 1, errNone},
		{"max256", "max", true, 256, errNone},
		{"max03", "max", true, 3, errNone},
		{"max0", "max", false, 0, ErrInsufficientArguments},
		{"max257", "max", false, 0, ErrTooManyArguments},
		{"min10000", "min", false, 0, ErrTooManyArguments},
		{"sqrt2", "sqrt2", false, 0, errNone},
		{"foo", "foo", false, 0, errNone},
		{"foo3", "foo3", false, 0, errNone},
		{"3", "3", false, 0, errNone},
	}
	for _, c := range cases {
		t.Run(c.ident, func(t *testing.T) {
			name, f, limit, err := resolve(c.ident)
			assert.Equal(t, c.name, name)
			assert.Equal(t, c.found, f != nil)
			assert.Equal(t, c.limit, limit)
			if c.kind == errNone {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, c.kind)
			}
		})
	}
}

func TestCall(t *testing.T) {
	r, err := Call("abs", IntValue(-3))
	require.NoError(t, err)
	assert.Equal(t, "3", r.String())

	r, err = Call("max", IntValue(1), FloatValue(7.5), IntValue(3))
	require.NoError(t, err)
	assert.Equal(t, "7.5", r.String())

	r, err = Call("min", FloatValue(2), IntValue(2))
	require.NoError(t, err)
	assert.Equal(t, Float, r.Kind(), "ties keep the first argument")

	r, err = Call("pow", IntValue(3), IntValue(4))
	require.NoError(t, err)
	assert.Equal(t, "81", r.String())

	_, err = Call("nope", IntValue(1))
	assert.ErrorIs(t, err, ErrUnknownFunction)

	_, err = Call("sqrt")
	assert.ErrorIs(t, err, ErrInsufficientArguments)

	_, err = Call("pow", IntValue(1), IntValue(2), IntValue(3))
	assert.ErrorIs(t, err, ErrTooManyArguments)

	args := make([]Value, MaxVariadic+1)
	for i := range args {
		args[i] = IntValue(int64(i))
	}
	_, err = Call("max", args...)
	assert.ErrorIs(t, err, ErrTooManyArguments)
	r, err = Call("max", args[:MaxVariadic]...)
	require.NoError(t, err)
	assert.Equal(t, "255", r.String())
}

func TestCallErrors(t *testing.T) {
	_, err := Call("sqrt", IntValue(-1))
	require.Error(t, err)
	assert.Equal(t, ErrArithmetic, KindOf(err))

	_, err = Call("pow", IntValue(0), IntValue(-2))
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrFunctionExecution, e.Kind)
	assert.Equal(t, "pow", e.Func)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestCallRecoversNaN(t *testing.T) {
	f := &Func{Min: 1, Max: 1, call: func(args []Value) (Value, error) {
		var z big.Float
		z.Sub(new(big.Float).SetInf(false), new(big.Float).SetInf(false))
		return Value{}, nil
	}}
	_, err := callFunc("bad", f, []Value{IntValue(1)})
	assert.ErrorIs(t, err, ErrFunctionExecution)
	assert.ErrorAs(t, err, new(big.ErrNaN))

	g := &Func{Min: 1, Max: 1, call: func(args []Value) (Value, error) {
		panic("not a NaN")
	}}
	assert.PanicsWithValue(t, "not a NaN", func() { callFunc("worse", g, []Value{IntValue(1)}) })
}

func TestSqrtBig(t *testing.T) {
	x := new(big.Int).Exp(big.NewInt(10), big.NewInt(400), nil)
	r, err := Call("sqrt", BigIntValue(x))
	require.NoError(t, err)
	assert.InEpsilon(t, 1e200, r.Float(), 1e-15)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"abs", "max", "min", "pow", "sqrt"}, Funcs())
	assert.Equal(t, []string{"%", "*", "**", "+", "-", "/", "//"}, Operators())
	assert.Equal(t, []string{"$", "u+", "u-", "~"}, UnaryOperators())
	assert.True(t, LookupFunc("max").Variadic())
	assert.False(t, LookupFunc("sqrt").Variadic())
	assert.Nil(t, LookupFunc("nope"))
}
