//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package register

import (
	"fmt"

	"github.com/markkurossi/qsim/qerr"
	"golang.org/x/sync/errgroup"
)

const (
	// ParallelThreshold is the register length from which the gate
	// kernels split their work across workers.
	ParallelThreshold = 1 << 14

	chunksPerWorker = 4
)

// ApplyControlledFlip flips the target qubit of every basis state
// whose control qubits are all 1. With no controls this is the Pauli
// X gate, with one control CNOT, and with two controls Toffoli. The
// update is a permutation of the amplitudes and is done in place.
func (r *Register) ApplyControlledFlip(controls []int, target int) error {
	qubits := append(append([]int{}, controls...), target)
	if err := ValidateQubits(r.numQubits, qubits); err != nil {
		return err
	}
	var cmask int
	for _, c := range controls {
		cmask |= 1 << c
	}
	tbit := 1 << target
	positions := []int{target}

	r.forEach(len(r.amps)>>1, func(lo, hi int) {
		for b := lo; b < hi; b++ {
			i := insertZeros(b, positions)
			if i&cmask != cmask {
				continue
			}
			j := i | tbit
			r.amps[i], r.amps[j] = r.amps[j], r.amps[i]
		}
	})
	return nil
}

// ApplyPermutation moves the amplitude of each basis state i to the
// basis state p(i). The mapping must be a bijection on [0, Len());
// other mappings wrap qerr.ErrInvariant and leave the register
// unmodified.
func (r *Register) ApplyPermutation(p func(int) int) error {
	n := len(r.amps)
	dst := make([]complex128, n)
	seen := make([]bool, n)
	for i := 0; i < n; i++ {
		j := p(i)
		if j < 0 || j >= n || seen[j] {
			return fmt.Errorf("%w: permutation maps %d to %d",
				qerr.ErrInvariant, i, j)
		}
		seen[j] = true
		dst[j] = r.amps[i]
	}
	r.amps = dst
	return nil
}

// ApplyUnitary applies the 2^k x 2^k unitary matrix m to the qubits.
// The first listed qubit is the least significant bit of the matrix
// row and column index. All basis states that differ only in the
// listed qubits are updated jointly; the other qubits are independent
// tensor factors.
func (r *Register) ApplyUnitary(m Matrix, qubits []int) error {
	k := len(qubits)
	if k == 0 {
		return fmt.Errorf("%w: no qubits", qerr.ErrInvalidGate)
	}
	if err := ValidateQubits(r.numQubits, qubits); err != nil {
		return err
	}
	dim := 1 << k
	if m.Dim() != dim {
		return fmt.Errorf("%w: %d qubits need a %dx%d matrix, got %d rows",
			qerr.ErrInvalidGate, k, dim, dim, len(m))
	}
	if !m.IsUnitary(Tolerance) {
		return fmt.Errorf("%w: matrix is not unitary", qerr.ErrInvalidGate)
	}

	offsets := make([]int, dim)
	for s := 0; s < dim; s++ {
		for t := 0; t < k; t++ {
			if s&(1<<t) != 0 {
				offsets[s] |= 1 << qubits[t]
			}
		}
	}
	positions := sortedCopy(qubits)

	r.forEach(len(r.amps)>>k, func(lo, hi int) {
		in := make([]complex128, dim)
		out := make([]complex128, dim)
		for b := lo; b < hi; b++ {
			base := insertZeros(b, positions)
			for s, ofs := range offsets {
				in[s] = r.amps[base|ofs]
			}
			for row := 0; row < dim; row++ {
				var sum complex128
				for col, v := range m[row] {
					sum += v * in[col]
				}
				out[row] = sum
			}
			for s, ofs := range offsets {
				r.amps[base|ofs] = out[s]
			}
		}
	})
	return nil
}

// forEach calls fn over the range [0, count). Large ranges are split
// into disjoint chunks processed by parallel workers.
func (r *Register) forEach(count int, fn func(lo, hi int)) {
	if r.workers <= 1 || len(r.amps) < ParallelThreshold {
		fn(0, count)
		return
	}
	chunks := r.workers * chunksPerWorker
	size := (count + chunks - 1) / chunks

	var g errgroup.Group
	g.SetLimit(r.workers)
	for lo := 0; lo < count; lo += size {
		hi := lo + size
		if hi > count {
			hi = count
		}
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	g.Wait()
}
