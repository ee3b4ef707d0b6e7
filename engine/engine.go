//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package engine applies circuit gates to amplitude registers. The
// classical reversible gates X, CX, and CCX are applied as in-place
// basis state permutations; all other gates are applied with their
// unitary matrices.
package engine

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/markkurossi/qsim/circuit"
	"github.com/markkurossi/qsim/qerr"
	"github.com/markkurossi/qsim/register"
)

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)
)

// Apply applies the gate to the register.
func Apply(reg *register.Register, g circuit.Gate) error {
	if err := g.Validate(reg.NumQubits()); err != nil {
		return err
	}
	switch g.Op {
	case circuit.X, circuit.CX, circuit.CCX:
		return reg.ApplyControlledFlip(g.Controls(), g.Target())

	case circuit.SWAP:
		b0 := 1 << g.Qubits[0]
		b1 := 1 << g.Qubits[1]
		return reg.ApplyPermutation(func(i int) int {
			if (i&b0 == 0) != (i&b1 == 0) {
				return i ^ (b0 | b1)
			}
			return i
		})

	default:
		m, err := Matrix(g)
		if err != nil {
			return err
		}
		return reg.ApplyUnitary(m, g.Qubits)
	}
}

// ApplyAll applies the gates in order. If check is not nil, it is
// called after each gate with the gate index; a non-nil error from
// check stops the application.
func ApplyAll(reg *register.Register, gates []circuit.Gate,
	check func(idx int) error) error {

	for idx, g := range gates {
		if err := Apply(reg, g); err != nil {
			return fmt.Errorf("gate %04d %s: %w", idx, g, err)
		}
		if check != nil {
			if err := check(idx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Matrix returns the unitary matrix of the gate. For multi-qubit
// gates the first gate qubit is the least significant bit of the
// matrix index.
func Matrix(g circuit.Gate) (register.Matrix, error) {
	if len(g.Params) != g.Op.NumParams() {
		return nil, fmt.Errorf("%w: %s takes %d parameters, got %d",
			qerr.ErrInvalidGate, g.Op, g.Op.NumParams(), len(g.Params))
	}
	switch g.Op {
	case circuit.X:
		return register.Matrix{
			{0, 1},
			{1, 0},
		}, nil

	case circuit.Y:
		return register.Matrix{
			{0, -1i},
			{1i, 0},
		}, nil

	case circuit.Z:
		return phase(-1), nil

	case circuit.H:
		return register.Matrix{
			{invSqrt2, invSqrt2},
			{invSqrt2, -invSqrt2},
		}, nil

	case circuit.S:
		return phase(1i), nil

	case circuit.SDG:
		return phase(-1i), nil

	case circuit.T:
		return phase(cmplx.Exp(complex(0, math.Pi/4))), nil

	case circuit.TDG:
		return phase(cmplx.Exp(complex(0, -math.Pi/4))), nil

	case circuit.RX:
		c, s := halfAngle(g.Params[0])
		return register.Matrix{
			{complex(c, 0), complex(0, -s)},
			{complex(0, -s), complex(c, 0)},
		}, nil

	case circuit.RY:
		c, s := halfAngle(g.Params[0])
		return register.Matrix{
			{complex(c, 0), complex(-s, 0)},
			{complex(s, 0), complex(c, 0)},
		}, nil

	case circuit.RZ:
		theta := g.Params[0]
		return register.Matrix{
			{cmplx.Exp(complex(0, -theta/2)), 0},
			{0, cmplx.Exp(complex(0, theta/2))},
		}, nil

	case circuit.P:
		return phase(cmplx.Exp(complex(0, g.Params[0]))), nil

	case circuit.CX:
		// Control is qubit 0 (LSB), target qubit 1.
		return register.Matrix{
			{1, 0, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
		}, nil

	case circuit.CZ:
		return register.Matrix{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, -1},
		}, nil

	case circuit.SWAP:
		return register.Matrix{
			{1, 0, 0, 0},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
		}, nil

	case circuit.CCX:
		m := register.Identity(8)
		m[3][3], m[3][7] = 0, 1
		m[7][7], m[7][3] = 0, 1
		return m, nil

	case circuit.U:
		if g.Matrix.Dim() != 1<<len(g.Qubits) {
			return nil, fmt.Errorf("%w: %s on %d qubits needs a %dx%d matrix",
				qerr.ErrInvalidGate, g.Op, len(g.Qubits),
				1<<len(g.Qubits), 1<<len(g.Qubits))
		}
		m := register.NewMatrix(len(g.Matrix))
		for i, row := range g.Matrix {
			copy(m[i], row)
		}
		return m, nil

	default:
		return nil, fmt.Errorf("%w: unknown operation %s",
			qerr.ErrInvalidGate, g.Op)
	}
}

// phase returns the diagonal matrix diag(1, p).
func phase(p complex128) register.Matrix {
	return register.Matrix{
		{1, 0},
		{0, p},
	}
}

func halfAngle(theta float64) (float64, float64) {
	return math.Cos(theta / 2), math.Sin(theta / 2)
}
