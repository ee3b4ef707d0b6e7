//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"strings"

	"github.com/markkurossi/qsim/qerr"
	"github.com/markkurossi/qsim/register"
)

// Op specifies gate function.
type Op byte

// Gate functions.
const (
	X Op = iota
	Y
	Z
	H
	S
	SDG
	T
	TDG
	RX
	RY
	RZ
	P
	CX
	CZ
	SWAP
	CCX
	U
	Count
)

type opInfo struct {
	name      string
	numQubits int
	numParams int
}

// opInfos describes the operations. The U operation takes any number
// of qubits and its matrix comes with the gate.
var opInfos = [Count]opInfo{
	X:    {"x", 1, 0},
	Y:    {"y", 1, 0},
	Z:    {"z", 1, 0},
	H:    {"h", 1, 0},
	S:    {"s", 1, 0},
	SDG:  {"sdg", 1, 0},
	T:    {"t", 1, 0},
	TDG:  {"tdg", 1, 0},
	RX:   {"rx", 1, 1},
	RY:   {"ry", 1, 1},
	RZ:   {"rz", 1, 1},
	P:    {"p", 1, 1},
	CX:   {"cx", 2, 0},
	CZ:   {"cz", 2, 0},
	SWAP: {"swap", 2, 0},
	CCX:  {"ccx", 3, 0},
	U:    {"u", 0, 0},
}

func (op Op) String() string {
	if op < Count {
		return strings.ToUpper(opInfos[op].name)
	}
	return fmt.Sprintf("{Op %d}", op)
}

// Name returns the OpenQASM name of the operation.
func (op Op) Name() string {
	if op < Count {
		return opInfos[op].name
	}
	return op.String()
}

// NumQubits returns the number of qubits the operation acts on. It
// returns 0 for operations taking any number of qubits.
func (op Op) NumQubits() int {
	if op < Count {
		return opInfos[op].numQubits
	}
	return 0
}

// NumParams returns the number of parameters the operation takes.
func (op Op) NumParams() int {
	if op < Count {
		return opInfos[op].numParams
	}
	return 0
}

// Permutation tests if the operation maps basis states to basis
// states without changing amplitudes.
func (op Op) Permutation() bool {
	switch op {
	case X, CX, CCX, SWAP:
		return true
	default:
		return false
	}
}

// OpByName returns the operation with the OpenQASM name.
func OpByName(name string) (Op, bool) {
	name = strings.ToLower(name)
	switch name {
	case "u1":
		return P, true
	case "cnot":
		return CX, true
	case "toffoli":
		return CCX, true
	}
	for op := X; op < U; op++ {
		if opInfos[op].name == name {
			return op, true
		}
	}
	return 0, false
}

// Gate specifies a gate operation. The Qubits list the controls
// first and the target last.
type Gate struct {
	Op     Op
	Qubits []int
	Params []float64
	Matrix register.Matrix
}

// NewGate creates a gate for the operation.
func NewGate(op Op, qubits []int, params ...float64) Gate {
	return Gate{
		Op:     op,
		Qubits: append([]int{}, qubits...),
		Params: append([]float64(nil), params...),
	}
}

// NOT creates the Pauli X gate on the target qubit.
func NOT(target int) Gate {
	return NewGate(X, []int{target})
}

// CNOT creates the controlled NOT gate.
func CNOT(control, target int) Gate {
	return NewGate(CX, []int{control, target})
}

// Toffoli creates the controlled-controlled NOT gate.
func Toffoli(control1, control2, target int) Gate {
	return NewGate(CCX, []int{control1, control2, target})
}

// Hadamard creates the Hadamard gate on the target qubit.
func Hadamard(target int) Gate {
	return NewGate(H, []int{target})
}

// Swap creates the gate exchanging two qubits.
func Swap(q0, q1 int) Gate {
	return NewGate(SWAP, []int{q0, q1})
}

// MaxUnitaryQubits is the maximum number of qubits of a U gate.
const MaxUnitaryQubits = 10

// Unitary creates a gate applying the 2^k x 2^k matrix m to the k
// qubits. The first qubit is the least significant bit of the matrix
// index.
func Unitary(m register.Matrix, qubits ...int) Gate {
	g := NewGate(U, qubits)
	g.Matrix = make(register.Matrix, len(m))
	for i, row := range m {
		g.Matrix[i] = append([]complex128{}, row...)
	}
	return g
}

// Target returns the target qubit of the gate.
func (g Gate) Target() int {
	return g.Qubits[len(g.Qubits)-1]
}

// Controls returns the control qubits of controlled gates.
func (g Gate) Controls() []int {
	switch g.Op {
	case CX, CZ, CCX:
		return g.Qubits[:len(g.Qubits)-1]
	default:
		return nil
	}
}

// Validate checks that the gate is well formed for a register of n
// qubits.
func (g Gate) Validate(n int) error {
	if g.Op >= Count {
		return fmt.Errorf("%w: unknown operation %s", qerr.ErrInvalidGate, g.Op)
	}
	if g.Op == U {
		if len(g.Qubits) == 0 {
			return fmt.Errorf("%w: %s without qubits", qerr.ErrInvalidGate, g.Op)
		}
		if len(g.Qubits) > MaxUnitaryQubits {
			return fmt.Errorf("%w: %s on %d qubits, maximum is %d",
				qerr.ErrInvalidGate, g.Op, len(g.Qubits), MaxUnitaryQubits)
		}
		if g.Matrix.Dim() != 1<<len(g.Qubits) {
			return fmt.Errorf("%w: %s on %d qubits needs a %dx%d matrix",
				qerr.ErrInvalidGate, g.Op, len(g.Qubits),
				1<<len(g.Qubits), 1<<len(g.Qubits))
		}
	} else if g.Matrix != nil {
		return fmt.Errorf("%w: %s with a matrix", qerr.ErrInvalidGate, g.Op)
	} else if len(g.Qubits) != g.Op.NumQubits() {
		return fmt.Errorf("%w: %s takes %d qubits, got %d",
			qerr.ErrInvalidGate, g.Op, g.Op.NumQubits(), len(g.Qubits))
	}
	if len(g.Params) != g.Op.NumParams() {
		return fmt.Errorf("%w: %s takes %d parameters, got %d",
			qerr.ErrInvalidGate, g.Op, g.Op.NumParams(), len(g.Params))
	}
	return register.ValidateQubits(n, g.Qubits)
}

// Equal tests if the gates are identical.
func (g Gate) Equal(o Gate) bool {
	if g.Op != o.Op || len(g.Qubits) != len(o.Qubits) ||
		len(g.Params) != len(o.Params) {
		return false
	}
	for i, q := range g.Qubits {
		if q != o.Qubits[i] {
			return false
		}
	}
	for i, p := range g.Params {
		if p != o.Params[i] {
			return false
		}
	}
	if g.Op == U {
		return g.Matrix.Equal(o.Matrix, 0)
	}
	return true
}

func (g Gate) clone() Gate {
	result := NewGate(g.Op, g.Qubits, g.Params...)
	if g.Matrix != nil {
		result.Matrix = make(register.Matrix, len(g.Matrix))
		for i, row := range g.Matrix {
			result.Matrix[i] = append([]complex128{}, row...)
		}
	}
	return result
}

func (g Gate) String() string {
	var sb strings.Builder
	sb.WriteString(g.Op.Name())
	if len(g.Params) > 0 {
		sb.WriteRune('(')
		for i, p := range g.Params {
			if i > 0 {
				sb.WriteRune(',')
			}
			sb.WriteString(formatParam(p))
		}
		sb.WriteRune(')')
	}
	for i, q := range g.Qubits {
		if i == 0 {
			sb.WriteRune(' ')
		} else {
			sb.WriteRune(',')
		}
		fmt.Fprintf(&sb, "q[%d]", q)
	}
	return sb.String()
}
