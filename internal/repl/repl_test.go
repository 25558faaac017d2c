package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/rpn"
)

var testConfig = Config{Prompt: "> ", ResultPrefix: "= ", ErrorPrefix: "error: "}

func TestRun(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "eof",
			in:   "3 4 +\n",
			out:  "> = 7\n> \n",
		},
		{
			name: "exit",
			in:   "2 3 **\nEXIT\n1 1 +\n",
			out:  "> = 8\n> ",
		},
		{
			name: "quit",
			in:   "quit\n",
			out:  "> ",
		},
		{
			name: "blank",
			in:   "1 2 /\n   \n5\n",
			out:  "> = 0.5\n> ",
		},
		{
			name: "errors",
			in:   "1 0 /\n1 +\n(1 2) 3 +\n7 2 //\n",
			out: "> error: 5: division by zero\n" +
				"> error: 3: not enough operands for \"+\": need 2, have 1\n" +
				"> error: 1: malformed expression: 2 values left on the stack\n" +
				"> = 3\n" +
				"> \n",
		},
		{
			name: "unterminated",
			in:   "  10 max  ",
			out:  "> = 10\n> \n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Run(context.Background(), rpn.New(), strings.NewReader(c.in), &out, testConfig)
			require.NoError(t, err)
			assert.Equal(t, Banner+"\n"+c.out, out.String())
		})
	}
}

func TestRunMaxDepth(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), rpn.New(rpn.MaxDepth(2)), strings.NewReader("(((1)))\n(1)\n"), &out, testConfig)
	require.NoError(t, err)
	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "error: ")
	assert.Contains(t, lines[1], "nested deeper than 2")
	assert.Equal(t, "> = 1", lines[2])
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), rpn.New(), strings.NewReader("help\n"), &out, testConfig)
	require.NoError(t, err)
	s := out.String()
	assert.Contains(t, s, "operators: % * ** + - / //\n")
	assert.Contains(t, s, "unary operators: $ u+ u- ~\n")
	assert.Contains(t, s, "abs (1 arg)")
	assert.Contains(t, s, "max[N] (1 to 256 args)")
	assert.Contains(t, s, "pow (2 args)")
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := Run(ctx, rpn.New(), strings.NewReader("1 1 +\n"), &out, testConfig)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Banner+"\n", out.String())
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func TestRunReadError(t *testing.T) {
	bad := errors.New("disk on fire")
	var out bytes.Buffer
	err := Run(context.Background(), rpn.New(), errReader{bad}, &out, testConfig)
	assert.ErrorIs(t, err, bad)
}
