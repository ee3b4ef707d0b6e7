//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package qsim runs quantum circuits on the state vector
// simulator. Run builds a fresh amplitude register for the circuit,
// applies all gates in order, and samples the measured qubits.
package qsim

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/markkurossi/qsim/circuit"
	"github.com/markkurossi/qsim/engine"
	"github.com/markkurossi/qsim/env"
	"github.com/markkurossi/qsim/qerr"
	"github.com/markkurossi/qsim/register"
	"github.com/markkurossi/qsim/sampler"
	"go.uber.org/zap"
)

// applyFunc applies one gate to the register.
type applyFunc func(reg *register.Register, g circuit.Gate) error

// Run executes the finalized circuit and samples its measured qubits
// shots times. The normalization of the register is verified after
// every gate; a violation fails the run with an error wrapping
// qerr.ErrInvariant. No result is returned on error.
func Run(config *env.Config, circ *circuit.Circuit, shots int,
	seed sampler.Seed) (*Result, error) {

	return execute(config, circ, shots, seed, engine.Apply)
}

func execute(config *env.Config, circ *circuit.Circuit, shots int,
	seed sampler.Seed, apply applyFunc) (*Result, error) {

	if !circ.Frozen() {
		return nil, fmt.Errorf("%w: run", qerr.ErrNotFinalized)
	}
	if shots <= 0 {
		return nil, fmt.Errorf("%w: %d", qerr.ErrEmptyShotCount, shots)
	}
	seedValue, err := seed.Resolve(config.GetRandom())
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	log := config.GetLogger().With(zap.String("run", id.String()))
	log.Debug("run",
		zap.Int("qubits", circ.NumQubits()),
		zap.Int("gates", circ.NumGates()),
		zap.Int("shots", shots),
		zap.Uint64("seed", seedValue),
		zap.Bool("fixed", seed.Fixed()))

	timing := NewTiming()
	reg, err := simulate(config, circ, apply, timing, log)
	if err != nil {
		return nil, err
	}

	hist, err := sampler.Sample(reg, circ.Measured(), shots, seedValue,
		config.GetWorkers())
	if err != nil {
		return nil, err
	}
	timing.Sample("Sample", []string{fmt.Sprintf("%d", shots)})
	log.Debug("sampled",
		zap.Int("outcomes", hist.Len()),
		zap.Duration("elapsed", timing.Total()))

	return &Result{
		ID:        id,
		Seed:      seedValue,
		Shots:     shots,
		Circuit:   circ,
		Histogram: hist,
		Timing:    timing,
	}, nil
}

// Simulate applies the circuit gates to a fresh register and returns
// the final state. The circuit does not need to be finalized.
func Simulate(config *env.Config, circ *circuit.Circuit) (
	*register.Register, error) {

	return simulate(config, circ, engine.Apply, NewTiming(),
		config.GetLogger())
}

func simulate(config *env.Config, circ *circuit.Circuit, apply applyFunc,
	timing *Timing, log *zap.Logger) (*register.Register, error) {

	reg, err := register.New(circ.NumQubits(), config.GetMemoryBudget())
	if err != nil {
		return nil, err
	}
	reg.SetWorkers(config.GetWorkers())
	timing.Memory = FileSize(reg.Len() * env.AmplitudeSize)
	timing.Sample("Register", []string{reg.String()})

	var perOp [circuit.Count]time.Duration
	for idx, g := range circ.Gates() {
		start := time.Now()
		if err := apply(reg, g); err != nil {
			return nil, fmt.Errorf("gate %04d %s: %w", idx, g, err)
		}
		if err := reg.Check(); err != nil {
			log.Debug("normalization lost",
				zap.Int("gate", idx), zap.Stringer("op", g.Op), zap.Error(err))
			return nil, fmt.Errorf("gate %04d %s: %w", idx, g, err)
		}
		perOp[g.Op] += time.Since(start)
	}
	sample := timing.Sample("Gates", []string{
		fmt.Sprintf("%d", circ.NumGates()),
	})
	for op, d := range perOp {
		if d > 0 {
			sample.AbsSubSample(circuit.Op(op).String(), d)
		}
	}
	log.Debug("gates applied", zap.Int("gates", circ.NumGates()),
		zap.Float64("norm", reg.Norm()))

	return reg, nil
}
