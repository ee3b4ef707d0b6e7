//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package register

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/markkurossi/qsim/qerr"
)

// BitLength returns the number of bits needed to represent the
// non-negative value v. BitLength(0) is 0.
func BitLength(v uint64) int {
	return bits.Len64(v)
}

// ValidateQubits checks that all qubits are in the range [0, n) and
// that no qubit is listed twice.
func ValidateQubits(n int, qubits []int) error {
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if q < 0 || q >= n {
			return fmt.Errorf("%w: qubit %d, register has %d qubits",
				qerr.ErrIndexOutOfRange, q, n)
		}
		if seen[q] {
			return fmt.Errorf("%w: qubit %d", qerr.ErrDuplicateQubit, q)
		}
		seen[q] = true
	}
	return nil
}

// insertZeros expands the compressed index x by inserting a zero bit
// at each of the positions. The positions must be sorted in
// ascending order.
func insertZeros(x int, positions []int) int {
	for _, p := range positions {
		low := x & (1<<p - 1)
		x = (x^low)<<1 | low
	}
	return x
}

func sortedCopy(qubits []int) []int {
	result := make([]int, len(qubits))
	copy(result, qubits)
	sort.Ints(result)
	return result
}
