//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"

	"github.com/markkurossi/qsim/qerr"
)

// Range names a contiguous range of qubits holding an integer encoded
// least significant bit first.
type Range struct {
	Name   string
	Offset int
	Size   int
}

func (r Range) String() string {
	return fmt.Sprintf("%s:q[%d..%d]", r.Name, r.Offset, r.Offset+r.Size-1)
}

// Encode returns the gates that set the range qubits from the
// all-zero state to the basis state encoding v.
func (r Range) Encode(v uint64) []Gate {
	var result []Gate
	for i := 0; i < r.Size; i++ {
		if v&(1<<i) != 0 {
			result = append(result, NOT(r.Offset+i))
		}
	}
	return result
}

// Decode extracts the range value from a register basis state.
func (r Range) Decode(state uint64) uint64 {
	return (state >> r.Offset) & (1<<r.Size - 1)
}

// AddRange adds a named qubit range to the circuit.
func (c *Circuit) AddRange(name string, offset, size int) error {
	if c.frozen {
		return fmt.Errorf("%w: add range %s", qerr.ErrFrozenCircuit, name)
	}
	if size <= 0 || offset < 0 || offset+size > c.numQubits {
		return fmt.Errorf("%w: range %s q[%d..%d] in %d qubits",
			qerr.ErrIndexOutOfRange, name, offset, offset+size-1, c.numQubits)
	}
	for _, r := range c.ranges {
		if r.Name == name {
			return fmt.Errorf("%w: range %s already defined",
				qerr.ErrInvalidQubitSet, name)
		}
	}
	c.ranges = append(c.ranges, Range{
		Name:   name,
		Offset: offset,
		Size:   size,
	})
	return nil
}

// Ranges returns the named qubit ranges of the circuit.
func (c *Circuit) Ranges() []Range {
	return append([]Range{}, c.ranges...)
}

// Range returns the named qubit range.
func (c *Circuit) Range(name string) (Range, bool) {
	for _, r := range c.ranges {
		if r.Name == name {
			return r, true
		}
	}
	return Range{}, false
}

// Expand maps a measurement outcome back to a register basis state:
// bit i of the outcome becomes the value of the i-th measured qubit.
// Unmeasured qubits are 0.
func (c *Circuit) Expand(outcome uint64) uint64 {
	var state uint64
	for bit, q := range c.measured {
		if outcome&(1<<bit) != 0 {
			state |= 1 << q
		}
	}
	return state
}

// Split splits the measurement outcome into the values of the ranges
// whose qubits are all measured.
func (c *Circuit) Split(outcome uint64) map[string]uint64 {
	measured := make(map[int]bool)
	for _, q := range c.measured {
		measured[q] = true
	}
	state := c.Expand(outcome)

	result := make(map[string]uint64)
	for _, r := range c.ranges {
		complete := true
		for q := r.Offset; q < r.Offset+r.Size; q++ {
			if !measured[q] {
				complete = false
				break
			}
		}
		if complete {
			result[r.Name] = r.Decode(state)
		}
	}
	return result
}
