//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package adder builds ripple-carry adder circuits. The operands a
// and b are encoded into two w qubit ranges; the circuit adds a into
// b in place with MAJ and UMA blocks of CNOT and Toffoli gates and
// measures the sum from the b range.
package adder

import (
	"fmt"

	"github.com/markkurossi/qsim"
	"github.com/markkurossi/qsim/circuit"
	"github.com/markkurossi/qsim/env"
	"github.com/markkurossi/qsim/qerr"
	"github.com/markkurossi/qsim/register"
	"github.com/markkurossi/qsim/sampler"
	"go.uber.org/zap"
)

// Range names of the adder circuits.
const (
	RangeA   = "a"
	RangeB   = "b"
	RangeSum = "sum"
)

// Width returns the operand width in bits for adding a and b. The
// width has one bit more than the larger operand so the sum always
// fits.
func Width(a, b uint64) int {
	return max(1, register.BitLength(max(a, b))+1)
}

// Build creates the adder circuit for a+b with the width Width(a, b).
func Build(a, b uint64) (*circuit.Circuit, error) {
	return BuildWidth(a, b, Width(a, b))
}

// BuildWidth creates the adder circuit for a+b with w bit operand
// ranges. The circuit has 2w qubits: a is in qubits [0, w) and b in
// [w, 2w). The operands must fit in w-1 bits; the top qubit of the a
// range is the carry-in ancilla and the top qubit of the b range
// receives the carry-out. The returned circuit is finalized and
// measures the sum from qubits [w, 2w).
func BuildWidth(a, b uint64, w int) (*circuit.Circuit, error) {
	if w < 1 || 2*w > env.HardMaxQubits {
		return nil, fmt.Errorf("%w: width %d", qerr.ErrInvalidSize, w)
	}
	n := w - 1
	if register.BitLength(a) > n || register.BitLength(b) > n {
		return nil, fmt.Errorf("%w: %d+%d does not fit in width %d",
			qerr.ErrInvalidSize, a, b, w)
	}
	c, err := circuit.New(2 * w)
	if err != nil {
		return nil, err
	}
	ra := circuit.Range{Name: RangeA, Offset: 0, Size: w}
	rb := circuit.Range{Name: RangeB, Offset: w, Size: w}
	for _, r := range []circuit.Range{ra, rb} {
		if err := c.AddRange(r.Name, r.Offset, r.Size); err != nil {
			return nil, err
		}
	}
	if err := c.AddRange(RangeSum, w, w); err != nil {
		return nil, err
	}

	bld := &builder{
		circ: c,
	}
	bld.append(ra.Encode(a)...)
	bld.append(rb.Encode(b)...)

	if n > 0 {
		qa := func(i int) int { return i }
		qb := func(i int) int { return w + i }
		carry := w - 1
		carryOut := 2*w - 1

		bld.maj(carry, qb(0), qa(0))
		for i := 1; i < n; i++ {
			bld.maj(qa(i-1), qb(i), qa(i))
		}
		bld.append(circuit.CNOT(qa(n-1), carryOut))
		for i := n - 1; i > 0; i-- {
			bld.uma(qa(i-1), qb(i), qa(i))
		}
		bld.uma(carry, qb(0), qa(0))
	}
	if bld.err != nil {
		return nil, bld.err
	}

	measured := make([]int, w)
	for i := range measured {
		measured[i] = w + i
	}
	if err := c.SetMeasurement(measured...); err != nil {
		return nil, err
	}
	c.Finalize()

	return c, nil
}

type builder struct {
	circ *circuit.Circuit
	err  error
}

func (b *builder) append(gates ...circuit.Gate) {
	for _, g := range gates {
		if b.err != nil {
			return
		}
		b.err = b.circ.Append(g)
	}
}

// maj computes the majority of c, b, and a into a, leaving a^c in c
// and a^b in b.
func (b *builder) maj(c, bq, a int) {
	b.append(
		circuit.CNOT(a, bq),
		circuit.CNOT(a, c),
		circuit.Toffoli(c, bq, a))
}

// uma undoes maj and writes the sum bit into b.
func (b *builder) uma(c, bq, a int) {
	b.append(
		circuit.Toffoli(c, bq, a),
		circuit.CNOT(a, c),
		circuit.CNOT(c, bq))
}

// Add computes a+b by building and running the adder circuit. It
// returns the most frequent measurement outcome and the outcome
// histogram.
func Add(config *env.Config, a, b int, shots int, seed sampler.Seed) (
	int, *sampler.Histogram, error) {

	result, err := Run(config, a, b, 0, shots, seed)
	if err != nil {
		return 0, nil, err
	}
	return int(result.MostFrequent()), result.Histogram, nil
}

// Run builds the adder circuit for a+b and runs it. If width is 0,
// the width is derived from the operands.
func Run(config *env.Config, a, b, width int, shots int, seed sampler.Seed) (
	*qsim.Result, error) {

	if a < 0 || b < 0 {
		return nil, fmt.Errorf("%w: %d+%d", qerr.ErrNegativeOperand, a, b)
	}
	var circ *circuit.Circuit
	var err error
	if width == 0 {
		circ, err = Build(uint64(a), uint64(b))
	} else {
		circ, err = BuildWidth(uint64(a), uint64(b), width)
	}
	if err != nil {
		return nil, err
	}
	config.GetLogger().Debug("adder",
		zap.Int("a", a), zap.Int("b", b),
		zap.Int("width", circ.NumQubits()/2),
		zap.Int("gates", circ.NumGates()))

	return qsim.Run(config, circ, shots, seed)
}
