//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package sampler implements measurement sampling of amplitude
// registers. Each shot selects a basis state with its Born rule
// probability and projects it onto the measured qubits. Sampling
// never modifies the register.
package sampler

import (
	"fmt"
	"sort"

	"github.com/markkurossi/qsim/qerr"
	"github.com/markkurossi/qsim/register"
	"golang.org/x/sync/errgroup"
)

// ChunkSize is the number of shots drawn from one random stream. The
// shots of chunk k always use stream k so the histogram of a seed does
// not depend on the number of workers.
const ChunkSize = 8192

// Sample draws shots measurement outcomes of the qubits from the
// register. The first listed qubit is the least significant bit of
// the outcome.
func Sample(reg *register.Register, qubits []int, shots int, seed uint64,
	workers int) (*Histogram, error) {

	if shots <= 0 {
		return nil, fmt.Errorf("%w: %d", qerr.ErrEmptyShotCount, shots)
	}
	if len(qubits) == 0 {
		return nil, fmt.Errorf("%w: no qubits", qerr.ErrInvalidQubitSet)
	}
	if err := register.ValidateQubits(reg.NumQubits(), qubits); err != nil {
		return nil, fmt.Errorf("%w: %s", qerr.ErrInvalidQubitSet, err)
	}
	if workers < 1 {
		workers = 1
	}

	cdf := cumulative(reg.Probabilities())
	numChunks := (shots + ChunkSize - 1) / ChunkSize
	partial := make([]map[uint64]int, numChunks)

	var g errgroup.Group
	g.SetLimit(workers)
	for chunk := 0; chunk < numChunks; chunk++ {
		count := ChunkSize
		if chunk == numChunks-1 {
			count = shots - chunk*ChunkSize
		}
		g.Go(func() error {
			rng := newPRG(seed, uint64(chunk))
			counts := make(map[uint64]int)
			for i := 0; i < count; i++ {
				index := search(cdf, rng.Float64())
				counts[project(index, qubits)]++
			}
			partial[chunk] = counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hist := NewHistogram(len(qubits))
	for _, counts := range partial {
		for v, c := range counts {
			hist.add(v, c)
		}
	}
	return hist, nil
}

// cumulative returns the cumulative distribution of the
// probabilities. The last value is the total probability.
func cumulative(probs []float64) []float64 {
	cdf := make([]float64, len(probs))
	var sum float64
	for i, p := range probs {
		sum += p
		cdf[i] = sum
	}
	return cdf
}

// search selects the basis state for the uniform value u in [0, 1).
// The value is scaled by the total probability so rounding never
// moves u past the last state. States with zero probability are never
// selected.
func search(cdf []float64, u float64) int {
	target := u * cdf[len(cdf)-1]
	idx := sort.Search(len(cdf), func(i int) bool {
		return cdf[i] > target
	})
	if idx == len(cdf) {
		// Only reachable with rounding at the upper edge; pick the
		// last state with non-zero probability.
		idx = len(cdf) - 1
		for idx > 0 && cdf[idx] == cdf[idx-1] {
			idx--
		}
	}
	return idx
}

func project(index int, qubits []int) uint64 {
	var result uint64
	for bit, q := range qubits {
		if index&(1<<q) != 0 {
			result |= 1 << bit
		}
	}
	return result
}
