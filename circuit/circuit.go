//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package circuit implements quantum circuits: an ordered list of
// gate operations over a qubit register and the list of measured
// qubits. A circuit is built with Append and SetMeasurement
// and frozen with Finalize. Execution is done by the simulator; the
// circuit is never modified by a run.
package circuit

import (
	"fmt"
	"io"

	"github.com/markkurossi/qsim/env"
	"github.com/markkurossi/qsim/qerr"
	"github.com/markkurossi/qsim/register"
	"github.com/markkurossi/text/superscript"
)

// Stats holds statistics about circuit operations.
type Stats [Count]int

func (s Stats) String() string {
	var result string
	for op := X; op < Count; op++ {
		if s[op] == 0 {
			continue
		}
		if len(result) > 0 {
			result += " "
		}
		result += fmt.Sprintf("%s=%d", op, s[op])
	}
	return result
}

// Circuit specifies a quantum circuit.
type Circuit struct {
	numQubits int
	gates     []Gate
	measured  []int
	ranges    []Range
	frozen    bool
}

// New creates a new circuit over n qubits.
func New(n int) (*Circuit, error) {
	if n <= 0 || n > env.HardMaxQubits {
		return nil, fmt.Errorf("%w: %d qubits", qerr.ErrInvalidSize, n)
	}
	return &Circuit{
		numQubits: n,
	}, nil
}

// Append appends the gate to the circuit. The gate is copied so later
// modifications of the argument do not affect the circuit.
func (c *Circuit) Append(g Gate) error {
	if c.frozen {
		return fmt.Errorf("%w: append %s", qerr.ErrFrozenCircuit, g)
	}
	if err := g.Validate(c.numQubits); err != nil {
		return err
	}
	c.gates = append(c.gates, g.clone())
	return nil
}

// SetMeasurement sets the measured qubits. The first qubit is read
// into the least significant bit of the measurement outcome.
func (c *Circuit) SetMeasurement(qubits ...int) error {
	if c.frozen {
		return fmt.Errorf("%w: set measurement", qerr.ErrFrozenCircuit)
	}
	if err := validateMeasurement(c.numQubits, qubits); err != nil {
		return err
	}
	c.measured = append([]int{}, qubits...)
	return nil
}

func validateMeasurement(n int, qubits []int) error {
	if len(qubits) == 0 {
		return fmt.Errorf("%w: no qubits", qerr.ErrInvalidQubitSet)
	}
	if err := register.ValidateQubits(n, qubits); err != nil {
		return fmt.Errorf("%w: %s", qerr.ErrInvalidQubitSet, err)
	}
	return nil
}

// Finalize freezes the circuit. If no measurement was set, all qubits
// are measured in order. Finalize can be called multiple times.
func (c *Circuit) Finalize() {
	if c.frozen {
		return
	}
	if len(c.measured) == 0 {
		c.measured = make([]int, c.numQubits)
		for i := range c.measured {
			c.measured[i] = i
		}
	}
	c.frozen = true
}

// Frozen tests if the circuit is finalized.
func (c *Circuit) Frozen() bool {
	return c.frozen
}

// NumQubits returns the number of qubits in the circuit.
func (c *Circuit) NumQubits() int {
	return c.numQubits
}

// NumGates returns the number of gates in the circuit.
func (c *Circuit) NumGates() int {
	return len(c.gates)
}

// Gate returns the gate at index idx.
func (c *Circuit) Gate(idx int) Gate {
	return c.gates[idx].clone()
}

// Gates returns a copy of the gate sequence.
func (c *Circuit) Gates() []Gate {
	result := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		result[i] = g.clone()
	}
	return result
}

// Measured returns the measured qubits in classical bit order.
func (c *Circuit) Measured() []int {
	return append([]int{}, c.measured...)
}

// Stats returns the operation counts of the circuit.
func (c *Circuit) Stats() Stats {
	var stats Stats
	for _, g := range c.gates {
		stats[g.Op]++
	}
	return stats
}

// Equal tests if the circuits have identical qubit counts, gate
// sequences, and measurements.
func (c *Circuit) Equal(o *Circuit) bool {
	if c.numQubits != o.numQubits || len(c.gates) != len(o.gates) ||
		len(c.measured) != len(o.measured) {
		return false
	}
	for i, g := range c.gates {
		if !g.Equal(o.gates[i]) {
			return false
		}
	}
	for i, q := range c.measured {
		if q != o.measured[i] {
			return false
		}
	}
	return true
}

func (c *Circuit) String() string {
	return fmt.Sprintf("#qubits=%d (2%s amplitudes) #gates=%d (%s) depth=%d measure=%v",
		c.numQubits, superscript.Itoa(c.numQubits), len(c.gates), c.Stats(),
		c.Depth(), c.measured)
}

// Dump prints a debug dump of the circuit.
func (c *Circuit) Dump(out io.Writer) {
	fmt.Fprintf(out, "circuit %s\n", c)
	for _, r := range c.ranges {
		fmt.Fprintf(out, "range\t%s\n", r)
	}
	for id, gate := range c.gates {
		fmt.Fprintf(out, "%04d\t%s\n", id, gate)
	}
	for bit, q := range c.measured {
		fmt.Fprintf(out, "measure\tq[%d] -> c[%d]\n", q, bit)
	}
}
