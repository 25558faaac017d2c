// Package repl implements the interactive loop of the rpn command.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/zephyrtronium/rpn"
)

// Banner is printed when the loop starts.
const Banner = "RPN REPL. Enter an expression in reverse Polish notation. 'exit' to quit, 'help' for operators."

// Config holds the strings the loop prints around results.
type Config struct {
	Prompt       string
	ResultPrefix string
	ErrorPrefix  string
}

// lineReader reads one line of input at a time without its line terminator.
type lineReader interface {
	ReadLine() (string, error)
}

// Run reads expressions from in one line at a time and writes their results
// to out until EOF, a blank line, exit, or quit. Calculator errors are printed
// and the loop continues. Other errors end the loop and are returned.
//
// If in is a terminal, it is put into raw mode for line editing and history
// for the duration of the loop.
func Run(ctx context.Context, ev *rpn.Evaluator, in io.Reader, out io.Writer, cfg Config) error {
	lr, w, restore, err := open(in, out, cfg.Prompt)
	if err != nil {
		return err
	}
	defer restore()
	fmt.Fprintln(w, Banner)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := lr.ReadLine()
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(w)
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "", "exit", "quit":
			return nil
		case "help":
			help(w)
			continue
		}
		r, err := ev.Eval(line)
		if err != nil {
			var e rpn.InputError
			if !errors.As(err, &e) {
				return err
			}
			glog.V(1).Infof("%q: %v", line, err)
			fmt.Fprintf(w, "%s%v\n", cfg.ErrorPrefix, err)
			continue
		}
		fmt.Fprintf(w, "%s%v\n", cfg.ResultPrefix, r)
	}
}

// open selects the line reader for in. The returned writer is where output
// must go, and restore must be called when the loop is done.
func open(in io.Reader, out io.Writer, prompt string) (lineReader, io.Writer, func(), error) {
	if f, ok := in.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		old, err := term.MakeRaw(fd)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "couldn't set terminal to raw mode")
		}
		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{in, out}, prompt)
		return t, t, func() { term.Restore(fd, old) }, nil
	}
	return &scanner{s: bufio.NewScanner(in), w: out, prompt: prompt}, out, func() {}, nil
}

// scanner reads lines from a non-terminal input, printing the prompt before
// each.
type scanner struct {
	s      *bufio.Scanner
	w      io.Writer
	prompt string
}

func (s *scanner) ReadLine() (string, error) {
	if _, err := io.WriteString(s.w, s.prompt); err != nil {
		return "", err
	}
	if !s.s.Scan() {
		if err := s.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.s.Text(), nil
}

func help(w io.Writer) {
	fmt.Fprintf(w, "operators: %s\n", strings.Join(rpn.Operators(), " "))
	fmt.Fprintf(w, "unary operators: %s\n", strings.Join(rpn.UnaryOperators(), " "))
	var fns []string
	for _, name := range rpn.Funcs() {
		f := rpn.LookupFunc(name)
		switch {
		case f.Variadic():
			fns = append(fns, fmt.Sprintf("%s[N] (1 to %d args)", name, f.Max))
		case f.Min == 1:
			fns = append(fns, fmt.Sprintf("%s (1 arg)", name))
		default:
			fns = append(fns, fmt.Sprintf("%s (%d args)", name, f.Min))
		}
	}
	fmt.Fprintf(w, "functions: %s\n", strings.Join(fns, ", "))
}
