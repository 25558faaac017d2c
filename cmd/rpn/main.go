// Command rpn evaluates reverse Polish notation expressions.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/zephyrtronium/rpn"
	"github.com/zephyrtronium/rpn/internal/config"
	"github.com/zephyrtronium/rpn/internal/repl"
)

// flag names
const (
	exprFlagName      = "expr"
	inFlagName        = "in"
	verbosityFlagName = "v"
)

// errFailed is returned when an expression fails to evaluate. The failure has
// already been printed.
var errFailed = errors.New("evaluation failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	glog.Flush()
	if err != nil {
		if err != errFailed {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg := config.Default()
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:    exprFlagName,
			Aliases: []string{"e"},
			Usage:   "expression to evaluate",
		},
		&cli.StringFlag{
			Name:  inFlagName,
			Usage: "file of expressions, one per line (- for stdin)",
		},
		&cli.IntFlag{
			Name:  verbosityFlagName,
			Usage: "log verbosity; 1 logs each evaluation, 2 traces the stack",
		},
	}, cfg.AsCliFlags()...)
	app := &cli.App{
		Name:            "rpn",
		Usage:           "reverse Polish notation calculator",
		UsageText:       "rpn [options] [expression ...]",
		Description:     "rpn evaluates each expression given by -e, -in, or as an argument and prints its result. With no expressions, it starts an interactive loop.",
		Flags:           flags,
		Reader:          stdin,
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if err := setupLogging(c.Int(verbosityFlagName)); err != nil {
				return err
			}
			if cfg.Filename != "" {
				if err := cfg.Load(cfg.Filename); err != nil {
					return err
				}
			}
			if c.IsSet("max-depth") {
				cfg.MaxDepth = c.Int("max-depth")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ev := rpn.New(cfg.Options()...)

			var exprs []string
			if c.IsSet(exprFlagName) {
				exprs = append(exprs, c.String(exprFlagName))
			}
			exprs = append(exprs, c.Args().Slice()...)
			if name := c.String(inFlagName); name != "" {
				lines, err := readLines(name, stdin)
				if err != nil {
					return err
				}
				exprs = append(exprs, lines...)
			}
			if len(exprs) == 0 && !c.IsSet(inFlagName) {
				rc := repl.Config{
					Prompt:       cfg.Prompt,
					ResultPrefix: cfg.ResultPrefix,
					ErrorPrefix:  cfg.ErrorPrefix,
				}
				return repl.Run(c.Context, ev, stdin, stdout, rc)
			}
			return evalAll(ev, exprs, stdout, cfg.ErrorPrefix)
		},
	}
	return app.RunContext(ctx, args)
}

// evalAll evaluates each expression in turn and prints its result. If any
// fails, the rest are still evaluated and the result is errFailed.
func evalAll(ev *rpn.Evaluator, exprs []string, w io.Writer, errPrefix string) error {
	var failed bool
	for _, expr := range exprs {
		r, err := ev.Eval(expr)
		if err != nil {
			fmt.Fprintf(w, "%s%v\n", errPrefix, err)
			failed = true
			continue
		}
		fmt.Fprintln(w, r)
	}
	if failed {
		return errFailed
	}
	return nil
}

// readLines reads the non-blank lines of the named file, or of stdin if the
// name is "-".
func readLines(name string, stdin io.Reader) ([]string, error) {
	in := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrapf(err, "opening input")
		}
		defer f.Close()
		in = f
	}
	var lines []string
	s := bufio.NewScanner(in)
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return lines, nil
}

// setupLogging sends glog output to stderr at the given verbosity.
func setupLogging(v int) error {
	if err := flag.Set("logtostderr", "true"); err != nil {
		return errors.Wrap(err, "configuring logging")
	}
	if err := flag.Set("v", strconv.Itoa(v)); err != nil {
		return errors.Wrap(err, "configuring logging")
	}
	return nil
}
