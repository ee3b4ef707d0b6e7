//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"

	"github.com/markkurossi/qsim/qerr"
)

// Compute evaluates a permutation circuit classically. The input is
// the initial basis state of the register and the result is the
// final basis state. Only X, CX, CCX, and SWAP gates are supported.
func (c *Circuit) Compute(input uint64) (uint64, error) {
	if c.numQubits > 64 {
		return 0, fmt.Errorf("%w: %d qubits", qerr.ErrInvalidSize, c.numQubits)
	}
	wires := input

	for idx, gate := range c.gates {
		switch gate.Op {
		case X, CX, CCX:
			fire := true
			for _, ctrl := range gate.Controls() {
				if wires&(1<<ctrl) == 0 {
					fire = false
					break
				}
			}
			if fire {
				wires ^= 1 << gate.Target()
			}

		case SWAP:
			q0 := gate.Qubits[0]
			q1 := gate.Qubits[1]
			b0 := (wires >> q0) & 1
			b1 := (wires >> q1) & 1
			if b0 != b1 {
				wires ^= 1<<q0 | 1<<q1
			}

		default:
			return 0, fmt.Errorf("%w: gate %04d %s is not a permutation",
				qerr.ErrInvalidGate, idx, gate)
		}
	}

	return wires, nil
}

// Outcome projects the basis state onto the measured qubits.
func (c *Circuit) Outcome(state uint64) uint64 {
	var result uint64
	for bit, q := range c.measured {
		if state&(1<<q) != 0 {
			result |= 1 << bit
		}
	}
	return result
}
