//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package register

import (
	"math"
	"testing"

	"github.com/markkurossi/qsim/env"
	"github.com/markkurossi/qsim/qerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hadamard = Matrix{
	{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
	{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
}

func TestNew(t *testing.T) {
	r, err := New(3, env.DefaultMemoryBudget)
	require.NoError(t, err)
	assert.Equal(t, 3, r.NumQubits())
	assert.Equal(t, 8, r.Len())
	assert.Equal(t, complex128(1), r.Amplitude(0))
	for i := 1; i < r.Len(); i++ {
		assert.Equal(t, complex128(0), r.Amplitude(i))
	}
	assert.NoError(t, r.Check())
	assert.Equal(t, "register{q=3, 2³ amplitudes}", r.String())
}

func TestNewInvalidSize(t *testing.T) {
	tests := []struct {
		n      int
		budget int64
	}{
		{0, env.DefaultMemoryBudget},
		{-1, env.DefaultMemoryBudget},
		{4, 16 * 8},
		{41, 1 << 62},
	}
	for _, test := range tests {
		_, err := New(test.n, test.budget)
		assert.ErrorIs(t, err, qerr.ErrInvalidSize, "n=%d", test.n)
	}
	_, err := New(4, 16*16)
	assert.NoError(t, err)
}

func TestCheck(t *testing.T) {
	r, err := New(2, env.DefaultMemoryBudget)
	require.NoError(t, err)
	r.amps[3] = 0.5

	err = r.Check()
	require.Error(t, err)
	assert.True(t, qerr.IsFatal(err))
	assert.InDelta(t, 1.25, r.Norm(), 1e-12)

	// Never renormalized.
	assert.Equal(t, complex128(0.5), r.Amplitude(3))

	r.amps[3] = complex(math.NaN(), 0)
	assert.Error(t, r.Check())
}

func TestControlledFlip(t *testing.T) {
	r, err := New(3, env.DefaultMemoryBudget)
	require.NoError(t, err)

	require.NoError(t, r.ApplyControlledFlip(nil, 0))
	assert.Equal(t, complex128(1), r.Amplitude(0b001))

	// Control 1 is 0, no flip.
	require.NoError(t, r.ApplyControlledFlip([]int{1}, 2))
	assert.Equal(t, complex128(1), r.Amplitude(0b001))

	require.NoError(t, r.ApplyControlledFlip([]int{0}, 1))
	assert.Equal(t, complex128(1), r.Amplitude(0b011))

	require.NoError(t, r.ApplyControlledFlip([]int{0, 1}, 2))
	assert.Equal(t, complex128(1), r.Amplitude(0b111))
	assert.NoError(t, r.Check())

	assert.ErrorIs(t, r.ApplyControlledFlip([]int{3}, 0),
		qerr.ErrIndexOutOfRange)
	assert.ErrorIs(t, r.ApplyControlledFlip([]int{1}, 1),
		qerr.ErrDuplicateQubit)
	assert.ErrorIs(t, r.ApplyControlledFlip([]int{0, 0}, 2),
		qerr.ErrDuplicateQubit)
}

func TestApplyUnitary(t *testing.T) {
	r, err := New(2, env.DefaultMemoryBudget)
	require.NoError(t, err)

	require.NoError(t, r.ApplyUnitary(hadamard, []int{1}))
	probs := r.Probabilities()
	assert.InDelta(t, 0.5, probs[0b00], 1e-12)
	assert.InDelta(t, 0.5, probs[0b10], 1e-12)
	assert.InDelta(t, 0, probs[0b01], 1e-12)
	assert.NoError(t, r.Check())

	// H is self-inverse.
	require.NoError(t, r.ApplyUnitary(hadamard, []int{1}))
	assert.InDelta(t, 1, real(r.Amplitude(0)), 1e-12)
}

func TestApplyUnitaryQubitOrder(t *testing.T) {
	// CNOT with the control as the first (least significant) matrix
	// qubit.
	cnot := Matrix{
		{1, 0, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
	}
	r, err := New(3, env.DefaultMemoryBudget)
	require.NoError(t, err)
	require.NoError(t, r.ApplyControlledFlip(nil, 2))
	require.NoError(t, r.ApplyUnitary(cnot, []int{2, 0}))
	assert.Equal(t, complex128(1), r.Amplitude(0b101))
}

func TestApplyUnitaryErrors(t *testing.T) {
	r, err := New(2, env.DefaultMemoryBudget)
	require.NoError(t, err)

	assert.ErrorIs(t, r.ApplyUnitary(hadamard, nil), qerr.ErrInvalidGate)
	assert.ErrorIs(t, r.ApplyUnitary(hadamard, []int{2}),
		qerr.ErrIndexOutOfRange)
	assert.ErrorIs(t, r.ApplyUnitary(Identity(4), []int{1, 1}),
		qerr.ErrDuplicateQubit)
	assert.ErrorIs(t, r.ApplyUnitary(Identity(4), []int{0}),
		qerr.ErrInvalidGate)
	assert.ErrorIs(t, r.ApplyUnitary(Matrix{{1, 1}, {0, 1}}, []int{0}),
		qerr.ErrInvalidGate)

	assert.NoError(t, r.Check())
	assert.Equal(t, complex128(1), r.Amplitude(0))
}

func TestApplyPermutation(t *testing.T) {
	r, err := New(2, env.DefaultMemoryBudget)
	require.NoError(t, err)
	require.NoError(t, r.ApplyUnitary(hadamard, []int{0}))

	require.NoError(t, r.ApplyPermutation(func(i int) int {
		return (i + 1) % 4
	}))
	probs := r.Probabilities()
	assert.InDelta(t, 0.5, probs[1], 1e-12)
	assert.InDelta(t, 0.5, probs[2], 1e-12)

	before := r.Amplitudes()
	err = r.ApplyPermutation(func(i int) int {
		return 0
	})
	assert.True(t, qerr.IsFatal(err))
	assert.Equal(t, before, r.Amplitudes())
}

func TestParallelKernels(t *testing.T) {
	const n = 15

	serial, err := New(n, env.DefaultMemoryBudget)
	require.NoError(t, err)
	parallel := serial.Clone()
	parallel.SetWorkers(4)

	for _, r := range []*Register{serial, parallel} {
		for q := 0; q < n; q += 2 {
			require.NoError(t, r.ApplyUnitary(hadamard, []int{q}))
		}
		require.NoError(t, r.ApplyControlledFlip([]int{0, 2}, 13))
		require.NoError(t, r.ApplyControlledFlip([]int{4}, 1))
		require.NoError(t, r.ApplyUnitary(hadamard, []int{13}))
	}
	assert.Equal(t, serial.Amplitudes(), parallel.Amplitudes())
	assert.NoError(t, parallel.Check())
}

func TestClone(t *testing.T) {
	r, err := New(1, env.DefaultMemoryBudget)
	require.NoError(t, err)
	c := r.Clone()
	require.NoError(t, c.ApplyControlledFlip(nil, 0))
	assert.Equal(t, complex128(1), r.Amplitude(0))
	assert.Equal(t, complex128(1), c.Amplitude(1))
}
