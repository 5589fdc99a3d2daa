package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/govalues/rational"
	"github.com/govalues/rational/internal/config"
	"github.com/govalues/rational/internal/rpn"
	"github.com/urfave/cli/v2"
)

func (x *calc) evalCmd(c *cli.Context) error {
	tokens := rpn.Tokenize(strings.Join(c.Args().Slice(), " "))
	e := rpn.Evaluator{Logger: x.log.Logger()}
	r, err := e.Eval(tokens)
	if err != nil {
		x.log.Err().
			Err(err).
			Int("tokens", len(tokens)).
			Log("evaluation failed")
		return err
	}
	x.log.Info().
		Int("tokens", len(tokens)).
		Stringer("result", r).
		Log("evaluated")
	return x.print(r)
}

func (x *calc) floatCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("float expects 1 argument, got %v", c.Args().Len())
	}
	f, err := strconv.ParseFloat(c.Args().First(), 64)
	if err != nil {
		return err
	}
	r, err := rational.NewFromFloat64(f)
	if err != nil {
		return err
	}
	x.log.Info().
		Str("input", c.Args().First()).
		Int("den_bits", r.Denom().BitLen()).
		Log("converted")
	_, err = fmt.Fprintln(x.out, r)
	return err
}

func (x *calc) cmpCmd(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("cmp expects 2 arguments, got %v", c.Args().Len())
	}
	a, err := rpn.ParseOperand(c.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := rpn.ParseOperand(c.Args().Get(1))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(x.out, a.Cmp(b))
	return err
}

// print writes r in the configured output mode.
func (x *calc) print(r rational.Rational) error {
	var err error
	switch x.custom.Output.Mode {
	case config.ModeFloat:
		_, err = fmt.Fprintf(x.out, "%g\n", r)
	case config.ModeDecimal:
		_, err = fmt.Fprintf(x.out, "%.*f\n", x.custom.Output.Scale, r)
	default:
		_, err = fmt.Fprintf(x.out, "%v\n", r)
	}
	return err
}
