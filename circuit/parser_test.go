//
// parser_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/markkurossi/qsim/qerr"
	"github.com/markkurossi/qsim/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var data = `OPENQASM 2.0;
include "qelib1.inc";

// Bell pair with a phase.
qreg q[3];
creg c[2];
// range pair 0 2

h q[0];
cx q[0], q[1];   // entangle
rz(pi/2) q[1];
barrier q;
u1(0.5) q[2]; cnot q[1],q[2];
measure q[1] -> c[0];
measure q[0] -> c[1];
`

func TestParseQASM(t *testing.T) {
	c, err := ParseQASM(strings.NewReader(data))
	require.NoError(t, err)
	assert.True(t, c.Frozen())
	assert.Equal(t, 3, c.NumQubits())
	assert.Equal(t, []int{1, 0}, c.Measured())

	expected := []Gate{
		Hadamard(0),
		CNOT(0, 1),
		NewGate(RZ, []int{1}, math.Pi/2),
		NewGate(P, []int{2}, 0.5),
		CNOT(1, 2),
	}
	require.Equal(t, len(expected), c.NumGates())
	for i, g := range expected {
		assert.True(t, g.Equal(c.Gate(i)), "gate %d: %s != %s", i, g, c.Gate(i))
	}
	r, ok := c.Range("pair")
	require.True(t, ok)
	assert.Equal(t, Range{Name: "pair", Offset: 0, Size: 2}, r)
}

func TestParseQASMDefaultMeasurement(t *testing.T) {
	c, err := ParseQASM(strings.NewReader("qreg q[2]; x q[1];"))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, c.Measured())

	c, err = ParseQASM(strings.NewReader(
		"qreg q[2]; creg m[2]; x q[1]; measure q -> m;"))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, c.Measured())
}

func TestParseQASMErrors(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{"", qerr.ErrInvalidSize},
		{"qreg q[0];", qerr.ErrInvalidSize},
		{"qreg q[2]; x q[2];", qerr.ErrIndexOutOfRange},
		{"qreg q[2]; cx q[1],q[1];", qerr.ErrDuplicateQubit},
		{"qreg q[2]; foo q[0];", qerr.ErrInvalidGate},
		{"qreg q[2]; rx(bar) q[0];", qerr.ErrInvalidGate},
		{"qreg q[2]; x r[0];", qerr.ErrInvalidGate},
		{"qreg q[2]; x q[0]", qerr.ErrInvalidGate},
		{"OPENQASM 3.0; qreg q[2];", qerr.ErrInvalidGate},
		{"qreg q[2]; qreg r[2];", qerr.ErrInvalidGate},
		{"qreg q[2]; creg c[2]; measure q[0] -> c[0];",
			qerr.ErrInvalidQubitSet},
		{"qreg q[2]; creg c[2]; measure q[0] -> c[0]; measure q[1] -> c[0];",
			qerr.ErrInvalidQubitSet},
		{"qreg q[2]; creg c[1]; measure q[0] -> c[0]; x q[1];",
			qerr.ErrInvalidGate},
		{"qreg q[2]; creg c[1]; measure q[0] -> c[1];",
			qerr.ErrIndexOutOfRange},
	}
	for _, test := range tests {
		_, err := ParseQASM(strings.NewReader(test.input))
		assert.ErrorIs(t, err, test.err, "input: %s", test.input)
	}
}

func TestQASMRoundTrip(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)
	require.NoError(t, c.AddRange("in", 0, 2))
	gates := []Gate{
		NOT(0),
		Hadamard(1),
		NewGate(Y, []int{2}),
		NewGate(SDG, []int{3}),
		NewGate(T, []int{0}),
		NewGate(RX, []int{1}, 3*math.Pi/4),
		NewGate(RY, []int{2}, 0.125),
		NewGate(RZ, []int{3}, -math.Pi/8),
		NewGate(CZ, []int{0, 3}),
		Swap(1, 2),
		Toffoli(3, 2, 0),
	}
	for _, g := range gates {
		require.NoError(t, c.Append(g))
	}
	require.NoError(t, c.SetMeasurement(3, 1))
	c.Finalize()

	var buf bytes.Buffer
	require.NoError(t, c.MarshalFormat(&buf, "qasm"))

	parsed, err := ParseQASM(&buf)
	require.NoError(t, err)
	assert.True(t, c.Equal(parsed))
	assert.Equal(t, c.Ranges(), parsed.Ranges())
}

func TestQASMUnitary(t *testing.T) {
	c, err := New(1)
	require.NoError(t, err)
	require.NoError(t, c.Append(Unitary(register.Identity(2), 0)))
	var buf bytes.Buffer
	assert.ErrorIs(t, c.MarshalQASM(&buf), qerr.ErrInvalidGate)
}

func TestParseParam(t *testing.T) {
	tests := []struct {
		input  string
		result float64
	}{
		{"0.5", 0.5},
		{"pi", math.Pi},
		{"-pi/2", -math.Pi / 2},
		{"2*pi", 2 * math.Pi},
		{"3pi/4", 3 * math.Pi / 4},
		{" PI / 8 ", math.Pi / 8},
	}
	for _, test := range tests {
		v, ok := parseParam(test.input)
		require.True(t, ok, test.input)
		assert.InDelta(t, test.result, v, 1e-15, test.input)
	}
	for _, input := range []string{"", "tau", "pi/0", "pi*2"} {
		_, ok := parseParam(input)
		assert.False(t, ok, input)
	}
}
