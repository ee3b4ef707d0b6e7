//
// Copyright (c) 2021-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

// Layers assigns each gate to a layer. A gate is placed one layer
// after the latest gate acting on any of its qubits, so gates in the
// same layer act on disjoint qubits. The function returns the layer
// of each gate, numbered from 0.
func (c *Circuit) Layers() []int {
	level := make([]int, c.numQubits)
	result := make([]int, len(c.gates))

	for idx, g := range c.gates {
		var l int
		for _, q := range g.Qubits {
			if level[q] > l {
				l = level[q]
			}
		}
		result[idx] = l
		for _, q := range g.Qubits {
			level[q] = l + 1
		}
	}
	return result
}

// Depth returns the number of gate layers in the circuit.
func (c *Circuit) Depth() int {
	var depth int
	for _, l := range c.Layers() {
		if l+1 > depth {
			depth = l + 1
		}
	}
	return depth
}
