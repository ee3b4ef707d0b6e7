//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package register implements the amplitude register of the state
// vector simulator. A register of n qubits holds 2^n complex
// amplitudes indexed by the integer value of the basis state: bit i
// of the index is the value of qubit i.
package register

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/markkurossi/qsim/env"
	"github.com/markkurossi/qsim/qerr"
	"github.com/markkurossi/text/superscript"
)

// Tolerance is the allowed deviation of the total probability from 1.
const Tolerance = 1e-9

// Register holds the state vector of n qubits.
type Register struct {
	numQubits int
	amps      []complex128
	workers   int
}

// New creates a register of n qubits in the all-zero basis state. The
// function fails with qerr.ErrInvalidSize if n is not positive or if
// the amplitude vector would exceed budget bytes.
func New(n int, budget int64) (*Register, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d qubits", qerr.ErrInvalidSize, n)
	}
	limit := env.MaxQubits(budget)
	if n > limit {
		return nil, fmt.Errorf("%w: %d qubits exceeds memory budget of %d bytes (max %d qubits)",
			qerr.ErrInvalidSize, n, budget, limit)
	}
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &Register{
		numQubits: n,
		amps:      amps,
		workers:   1,
	}, nil
}

// SetWorkers sets the number of parallel workers the gate kernels
// may use on large registers.
func (r *Register) SetWorkers(workers int) {
	if workers < 1 {
		workers = 1
	}
	r.workers = workers
}

// NumQubits returns the number of qubits in the register.
func (r *Register) NumQubits() int {
	return r.numQubits
}

// Len returns the number of amplitudes, 2^NumQubits.
func (r *Register) Len() int {
	return len(r.amps)
}

// Amplitude returns the amplitude of the basis state index.
func (r *Register) Amplitude(index int) complex128 {
	return r.amps[index]
}

// Amplitudes returns a copy of the state vector.
func (r *Register) Amplitudes() []complex128 {
	result := make([]complex128, len(r.amps))
	copy(result, r.amps)
	return result
}

// Clone creates an independent copy of the register.
func (r *Register) Clone() *Register {
	return &Register{
		numQubits: r.numQubits,
		amps:      r.Amplitudes(),
		workers:   r.workers,
	}
}

// Probabilities returns the measurement probability |a|^2 of each
// basis state.
func (r *Register) Probabilities() []float64 {
	result := make([]float64, len(r.amps))
	for i, a := range r.amps {
		result[i] = probability(a)
	}
	return result
}

// Norm returns the total probability of the register.
func (r *Register) Norm() float64 {
	var sum float64
	for _, a := range r.amps {
		sum += probability(a)
	}
	return sum
}

// Check verifies the normalization invariant. The register is never
// renormalized: a violation means a gate produced a wrong state and
// the error wraps qerr.ErrInvariant.
func (r *Register) Check() error {
	norm := r.Norm()
	if !(math.Abs(norm-1) <= Tolerance) {
		return fmt.Errorf("%w: total probability %v", qerr.ErrInvariant, norm)
	}
	return nil
}

func (r *Register) String() string {
	return fmt.Sprintf("register{q=%d, 2%s amplitudes}",
		r.numQubits, superscript.Itoa(r.numQubits))
}

func probability(a complex128) float64 {
	return real(a * cmplx.Conj(a))
}
