//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package engine

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/markkurossi/qsim/circuit"
	"github.com/markkurossi/qsim/env"
	"github.com/markkurossi/qsim/qerr"
	"github.com/markkurossi/qsim/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegister(t *testing.T, n int) *register.Register {
	reg, err := register.New(n, env.DefaultMemoryBudget)
	require.NoError(t, err)
	return reg
}

func TestMatrixUnitary(t *testing.T) {
	for op := circuit.X; op < circuit.U; op++ {
		qubits := make([]int, op.NumQubits())
		for i := range qubits {
			qubits[i] = i
		}
		params := make([]float64, op.NumParams())
		for i := range params {
			params[i] = 0.3
		}
		m, err := Matrix(circuit.NewGate(op, qubits, params...))
		require.NoError(t, err, op.String())
		assert.Equal(t, 1<<op.NumQubits(), m.Dim(), op.String())
		assert.True(t, m.IsUnitary(register.Tolerance), op.String())
	}
	_, err := Matrix(circuit.NewGate(circuit.RX, []int{0}))
	assert.ErrorIs(t, err, qerr.ErrInvalidGate)
}

func TestMatrixIdentities(t *testing.T) {
	mat := func(op circuit.Op, params ...float64) register.Matrix {
		m, err := Matrix(circuit.NewGate(op, []int{0}, params...))
		require.NoError(t, err)
		return m
	}
	const tol = 1e-12

	// S² = Z, T² = S, S·S† = I.
	assert.True(t, mat(circuit.S).Mul(mat(circuit.S)).Equal(mat(circuit.Z), tol))
	assert.True(t, mat(circuit.T).Mul(mat(circuit.T)).Equal(mat(circuit.S), tol))
	assert.True(t, mat(circuit.S).Mul(mat(circuit.SDG)).
		Equal(register.Identity(2), tol))
	assert.True(t, mat(circuit.TDG).Equal(mat(circuit.T).Dagger(), tol))

	// HZH = X.
	h := mat(circuit.H)
	assert.True(t, h.Mul(mat(circuit.Z)).Mul(h).Equal(mat(circuit.X), tol))

	// RX(pi) = -iX, P(pi/2) = S.
	rx := mat(circuit.RX, math.Pi)
	x := mat(circuit.X)
	for i := range rx {
		for j := range rx[i] {
			assert.InDelta(t, 0, real(rx[i][j]+1i*x[i][j]), tol)
			assert.InDelta(t, 0, imag(rx[i][j]+1i*x[i][j]), tol)
		}
	}
	assert.True(t, mat(circuit.P, math.Pi/2).Equal(mat(circuit.S), tol))
}

func TestHadamard(t *testing.T) {
	reg := newRegister(t, 1)
	require.NoError(t, Apply(reg, circuit.Hadamard(0)))
	probs := reg.Probabilities()
	assert.InDelta(t, 0.5, probs[0], 1e-12)
	assert.InDelta(t, 0.5, probs[1], 1e-12)
	assert.NoError(t, reg.Check())
}

func TestBell(t *testing.T) {
	reg := newRegister(t, 2)
	require.NoError(t, ApplyAll(reg, []circuit.Gate{
		circuit.Hadamard(0),
		circuit.CNOT(0, 1),
	}, nil))
	probs := reg.Probabilities()
	assert.InDelta(t, 0.5, probs[0b00], 1e-12)
	assert.InDelta(t, 0.5, probs[0b11], 1e-12)
	assert.InDelta(t, 0, probs[0b01], 1e-12)
	assert.InDelta(t, 0, probs[0b10], 1e-12)
}

func TestPermutationMatchesMatrix(t *testing.T) {
	gates := []circuit.Gate{
		circuit.NOT(1),
		circuit.CNOT(2, 0),
		circuit.Toffoli(0, 1, 3),
		circuit.Swap(3, 0),
	}
	prep := []circuit.Gate{
		circuit.Hadamard(0),
		circuit.NewGate(circuit.RY, []int{1}, 0.7),
		circuit.Hadamard(2),
		circuit.NewGate(circuit.RX, []int{3}, 1.1),
	}
	for _, g := range gates {
		fast := newRegister(t, 4)
		require.NoError(t, ApplyAll(fast, prep, nil))
		slow := fast.Clone()

		require.NoError(t, Apply(fast, g))
		m, err := Matrix(g)
		require.NoError(t, err)
		require.NoError(t, slow.ApplyUnitary(m, g.Qubits))

		a := fast.Amplitudes()
		b := slow.Amplitudes()
		for i := range a {
			assert.InDelta(t, real(a[i]), real(b[i]), 1e-12, "%s", g)
			assert.InDelta(t, imag(a[i]), imag(b[i]), 1e-12, "%s", g)
		}
	}
}

func TestMatchesCompute(t *testing.T) {
	const n = 6
	rnd := rand.New(rand.NewSource(42))

	c, err := circuit.New(n)
	require.NoError(t, err)
	for i := 0; i < 40; i++ {
		perm := rnd.Perm(n)
		var g circuit.Gate
		switch rnd.Intn(4) {
		case 0:
			g = circuit.NOT(perm[0])
		case 1:
			g = circuit.CNOT(perm[0], perm[1])
		case 2:
			g = circuit.Toffoli(perm[0], perm[1], perm[2])
		default:
			g = circuit.Swap(perm[0], perm[1])
		}
		require.NoError(t, c.Append(g))
	}

	for input := uint64(0); input < 1<<n; input++ {
		expected, err := c.Compute(input)
		require.NoError(t, err)

		reg := newRegister(t, n)
		for q := 0; q < n; q++ {
			if input&(1<<q) != 0 {
				require.NoError(t, Apply(reg, circuit.NOT(q)))
			}
		}
		require.NoError(t, ApplyAll(reg, c.Gates(), nil))
		assert.Equal(t, complex128(1), reg.Amplitude(int(expected)),
			"input %06b", input)
	}
}

func TestNormalizationAfterEveryGate(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	const n = 5

	var gates []circuit.Gate
	for i := 0; i < 200; i++ {
		op := circuit.Op(rnd.Intn(int(circuit.U)))
		qubits := rnd.Perm(n)[:op.NumQubits()]
		params := make([]float64, op.NumParams())
		for j := range params {
			params[j] = rnd.Float64() * 2 * math.Pi
		}
		gates = append(gates, circuit.NewGate(op, qubits, params...))
	}

	reg := newRegister(t, n)
	var checked int
	err := ApplyAll(reg, gates, func(idx int) error {
		checked++
		return reg.Check()
	})
	require.NoError(t, err)
	assert.Equal(t, len(gates), checked)
}

func TestApplyErrors(t *testing.T) {
	reg := newRegister(t, 2)

	assert.ErrorIs(t, Apply(reg, circuit.NOT(2)), qerr.ErrIndexOutOfRange)
	assert.ErrorIs(t, Apply(reg, circuit.CNOT(0, 0)), qerr.ErrDuplicateQubit)
	assert.ErrorIs(t, Apply(reg, circuit.Hadamard(-1)), qerr.ErrIndexOutOfRange)
	assert.ErrorIs(t, Apply(reg,
		circuit.Unitary(register.Matrix{{1, 1}, {1, 1}}, 0)),
		qerr.ErrInvalidGate)

	errStop := errors.New("stop")
	err := ApplyAll(reg, []circuit.Gate{circuit.NOT(0), circuit.NOT(1)},
		func(idx int) error {
			return errStop
		})
	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, complex128(1), reg.Amplitude(0b01))
}

func TestUnitaryGate(t *testing.T) {
	reg := newRegister(t, 2)
	m, err := Matrix(circuit.CNOT(0, 1))
	require.NoError(t, err)

	require.NoError(t, Apply(reg, circuit.NOT(1)))
	// Control qubit 1, target qubit 0.
	require.NoError(t, Apply(reg, circuit.Unitary(m, 1, 0)))
	assert.Equal(t, complex128(1), reg.Amplitude(0b11))
}
