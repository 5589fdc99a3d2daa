// Ratcalc is an exact calculator for rational numbers.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/govalues/rational/internal/config"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/urfave/cli/v2"
)

// BuildVersion is reported by the --version flag.
const BuildVersion = "v0.1.0"

type calc struct {
	out    io.Writer
	errOut io.Writer
	custom *config.Custom
	log    *logiface.Logger[*stumpy.Event]
}

func newApp(out, errOut io.Writer) *cli.App {
	x := &calc{out: out, errOut: errOut}

	app := cli.NewApp()
	app.Name = "ratcalc"
	app.Usage = "An exact calculator for rational numbers."
	app.Version = BuildVersion
	app.Writer = out
	app.ErrWriter = errOut
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "the TOML configuration `FILE`",
		},
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   "the output mode: fraction, float or decimal",
		},
		&cli.IntFlag{
			Name:    "scale",
			Aliases: []string{"s"},
			Usage:   "the number of digits after the decimal point in decimal mode",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "the log level: off, err, warning, notice, info, debug or trace",
		},
	}
	app.Before = x.before
	app.Commands = []*cli.Command{
		{
			Name:      "eval",
			Aliases:   []string{"e"},
			Usage:     "Evaluate an expression in reverse Polish notation",
			ArgsUsage: "[--] TOKEN...",
			Action:    x.evalCmd,
		},
		{
			Name:      "float",
			Aliases:   []string{"f"},
			Usage:     "Print the exact value of a float64 literal",
			ArgsUsage: "VALUE",
			Action:    x.floatCmd,
		},
		{
			Name:      "cmp",
			Usage:     "Compare two values and print -1, 0 or 1",
			ArgsUsage: "A B",
			Action:    x.cmpCmd,
		},
	}
	return app
}

// before loads the configuration file and applies the command-line
// overrides on top of it.
func (x *calc) before(c *cli.Context) error {
	custom := config.Default()
	if file := c.String("config"); file != "" {
		var err error
		custom, err = config.Initialize(file)
		if err != nil {
			return err
		}
	}
	if c.IsSet("mode") {
		custom.Output.Mode = c.String("mode")
	}
	if c.IsSet("scale") {
		custom.Output.Scale = c.Int("scale")
	}
	if c.IsSet("log-level") {
		custom.Log.Level = c.String("log-level")
	}
	err := custom.Validate()
	if err != nil {
		return err
	}

	x.custom = custom
	x.log = stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(x.errOut)),
		stumpy.L.WithLevel(custom.LogLevel()),
	)
	x.log.Debug().
		Str("mode", custom.Output.Mode).
		Int("scale", custom.Output.Scale).
		Log("configured")
	return nil
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
