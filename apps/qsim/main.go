//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/markkurossi/qsim/env"
	"github.com/markkurossi/qsim/sampler"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	config = &env.Config{}
	logger = zap.NewNop()
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "qsim: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "qsim",
		Usage: "state vector quantum circuit simulator",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose output",
				EnvVars: []string{"QSIM_VERBOSE"},
			},
			&cli.IntFlag{
				Name:    "workers",
				Usage:   "number of parallel workers (0 for GOMAXPROCS)",
				EnvVars: []string{"QSIM_WORKERS"},
			},
			&cli.Int64Flag{
				Name:    "memory",
				Usage:   "maximum amplitude vector size in bytes",
				Value:   env.DefaultMemoryBudget,
				EnvVars: []string{"QSIM_MEMORY"},
			},
		},
		Before: setup,
		After: func(c *cli.Context) error {
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			addCommand,
			runCommand,
			exportCommand,
		},
	}
}

func setup(c *cli.Context) error {
	var err error
	if c.Bool("verbose") {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	config = &env.Config{
		Logger:       logger,
		MemoryBudget: c.Int64("memory"),
		Workers:      c.Int("workers"),
	}
	logger.Debug("config",
		zap.Int("workers", config.GetWorkers()),
		zap.Int64("memory", config.GetMemoryBudget()),
		zap.Int("max-qubits", config.MaxQubits()))
	return nil
}

var runFlags = []cli.Flag{
	&cli.IntFlag{
		Name:    "shots",
		Aliases: []string{"s"},
		Usage:   "number of measurement shots",
		Value:   1024,
		EnvVars: []string{"QSIM_SHOTS"},
	},
	&cli.Uint64Flag{
		Name:    "seed",
		Usage:   "sampling seed (random if unset)",
		EnvVars: []string{"QSIM_SEED"},
	},
	&cli.BoolFlag{
		Name:  "profile",
		Usage: "print timing profile",
	},
}

func seedFlag(c *cli.Context) sampler.Seed {
	if c.IsSet("seed") {
		return sampler.FixedSeed(c.Uint64("seed"))
	}
	return sampler.Seed{}
}

func operands(c *cli.Context) (int, int, error) {
	if c.NArg() != 2 {
		return 0, 0, fmt.Errorf("expected two operands, got %d", c.NArg())
	}
	var result [2]int
	for i := range result {
		v, err := strconv.Atoi(c.Args().Get(i))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid operand '%s': %w",
				c.Args().Get(i), err)
		}
		result[i] = v
	}
	return result[0], result[1], nil
}
