//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/markkurossi/qsim"
	"github.com/markkurossi/qsim/adder"
	"github.com/markkurossi/qsim/circuit"
	"github.com/markkurossi/qsim/qerr"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var addCommand = &cli.Command{
	Name:         "add",
	Usage:        "add two integers with the ripple-carry adder circuit",
	ArgsUsage:    "A B",
	OnUsageError: negativeOperand,
	Flags: append([]cli.Flag{
		&cli.IntFlag{
			Name:  "width",
			Usage: "operand width in bits (default: derived from operands)",
		},
		&cli.BoolFlag{
			Name:  "qasm",
			Usage: "print the circuit in OpenQASM",
		},
		&cli.BoolFlag{
			Name:  "dot",
			Usage: "print the circuit in graphviz dot",
		},
	}, runFlags...),
	Action: func(c *cli.Context) error {
		a, b, err := operands(c)
		if err != nil {
			return err
		}
		result, err := adder.Run(config, a, b, c.Int("width"), c.Int("shots"),
			seedFlag(c))
		if err != nil {
			return err
		}
		circ := result.Circuit
		if c.Bool("qasm") {
			if err := circ.MarshalQASM(c.App.Writer); err != nil {
				return err
			}
		}
		if c.Bool("dot") {
			circ.Dot(c.App.Writer)
		}
		fmt.Fprintf(c.App.Writer, "The result of %d + %d is %d\n",
			a, b, result.MostFrequent())
		result.Print(c.App.Writer)
		if c.Bool("profile") {
			result.Timing.Print(c.App.Writer)
		}
		return nil
	},
}

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "run an OpenQASM circuit",
	ArgsUsage: "FILE.qasm",
	Flags:     runFlags,
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("expected one circuit file, got %d", c.NArg())
		}
		f, err := os.Open(c.Args().First())
		if err != nil {
			return err
		}
		defer f.Close()

		circ, err := circuit.ParseQASM(f)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Args().First(), err)
		}
		if config.GetLogger().Core().Enabled(zap.DebugLevel) {
			circ.Dump(c.App.ErrWriter)
		}
		result, err := qsim.Run(config, circ, c.Int("shots"), seedFlag(c))
		if err != nil {
			return err
		}
		result.Print(c.App.Writer)
		if c.Bool("profile") {
			result.Timing.Print(c.App.Writer)
		}
		return nil
	},
}

var exportCommand = &cli.Command{
	Name:         "export",
	Usage:        "write the adder circuit",
	ArgsUsage:    "A B",
	OnUsageError: negativeOperand,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "output format: qasm, dot, svg, or qsc",
			Value:   "qasm",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file (default: standard output)",
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "operand width in bits (default: derived from operands)",
		},
	},
	Action: func(c *cli.Context) error {
		a, b, err := operands(c)
		if err != nil {
			return err
		}
		circ, err := buildAdder(c, a, b)
		if err != nil {
			return err
		}
		out := c.App.Writer
		if name := c.String("output"); len(name) > 0 {
			f, err := os.Create(name)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return circ.MarshalFormat(out, c.String("format"))
	},
}

// reNegative matches the flag error for a negative number operand,
// which the flag parser takes for an undefined flag.
var reNegative = regexp.MustCompile(`flag provided but not defined: -(\d+)$`)

func negativeOperand(c *cli.Context, err error, isSubcommand bool) error {
	if m := reNegative.FindStringSubmatch(err.Error()); m != nil {
		return fmt.Errorf("%w: -%s", qerr.ErrNegativeOperand, m[1])
	}
	return err
}

func buildAdder(c *cli.Context, a, b int) (*circuit.Circuit, error) {
	if a < 0 || b < 0 {
		return nil, fmt.Errorf("%w: %d+%d", qerr.ErrNegativeOperand, a, b)
	}
	if c.IsSet("width") {
		return adder.BuildWidth(uint64(a), uint64(b), c.Int("width"))
	}
	return adder.Build(uint64(a), uint64(b))
}
