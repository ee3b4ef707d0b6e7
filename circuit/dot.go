//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
)

// Dot creates graphviz dot output of the circuit. Each qubit is a
// chain of edges from its input node through the gates acting on it
// to its output node.
func (c *Circuit) Dot(out io.Writer) {
	fmt.Fprintf(out, "digraph circuit\n{\n")
	fmt.Fprintf(out, "  rankdir=LR;\n")
	fmt.Fprintf(out, "  node\t[fontname=\"Helvetica\"];\n")
	fmt.Fprintf(out, "  {\n    node [shape=plaintext];\n")
	for q := 0; q < c.numQubits; q++ {
		fmt.Fprintf(out, "    q%d\t[label=\"q%d\"];\n", q, q)
	}
	for bit := range c.measured {
		fmt.Fprintf(out, "    c%d\t[label=\"c%d\"];\n", bit, bit)
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {\n    node [shape=box];\n")
	for idx, gate := range c.gates {
		fmt.Fprintf(out, "    g%d\t[label=\"%s\"];\n", idx, gate.Op)
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {  rank=same")
	for q := 0; q < c.numQubits; q++ {
		fmt.Fprintf(out, "; q%d", q)
	}
	fmt.Fprintf(out, ";}\n")

	last := make([]string, c.numQubits)
	for q := range last {
		last[q] = fmt.Sprintf("q%d", q)
	}
	for idx, gate := range c.gates {
		node := fmt.Sprintf("g%d", idx)
		for i, q := range gate.Qubits {
			var label string
			if i+1 == len(gate.Qubits) && len(gate.Controls()) > 0 {
				label = " [style=bold]"
			}
			fmt.Fprintf(out, "  %s -> %s%s;\n", last[q], node, label)
			last[q] = node
		}
	}
	for bit, q := range c.measured {
		fmt.Fprintf(out, "  %s -> c%d;\n", last[q], bit)
	}
	fmt.Fprintf(out, "}\n")
}
