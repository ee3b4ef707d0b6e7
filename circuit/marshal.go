//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/markkurossi/qsim/qerr"
	"github.com/markkurossi/qsim/register"
)

const (
	// MAGIC is a magic number for the qsim circuit format version 0.
	MAGIC = 0x71736330 // qsc0

	maxNameLen = 1024
)

var (
	bo = binary.BigEndian
)

// MarshalFormat marshals circuit in the specified format.
func (c *Circuit) MarshalFormat(out io.Writer, format string) error {
	switch format {
	case "qsc":
		return c.Marshal(out)
	case "qasm":
		return c.MarshalQASM(out)
	case "dot":
		c.Dot(out)
		return nil
	case "svg":
		c.Svg(out)
		return nil
	default:
		return fmt.Errorf("unsupported circuit format: %s", format)
	}
}

// Marshal marshals circuit in the qsim circuit format.
func (c *Circuit) Marshal(out io.Writer) error {
	var data = []interface{}{
		uint32(MAGIC),
		uint32(c.numQubits),
		uint32(len(c.gates)),
		uint32(len(c.measured)),
		uint32(len(c.ranges)),
	}
	for _, v := range data {
		if err := binary.Write(out, bo, v); err != nil {
			return err
		}
	}
	for _, r := range c.ranges {
		if err := marshalString(out, r.Name); err != nil {
			return err
		}
		data = []interface{}{uint32(r.Offset), uint32(r.Size)}
		for _, v := range data {
			if err := binary.Write(out, bo, v); err != nil {
				return err
			}
		}
	}
	for _, q := range c.measured {
		if err := binary.Write(out, bo, uint32(q)); err != nil {
			return err
		}
	}

	for _, g := range c.gates {
		data = []interface{}{
			byte(g.Op),
			uint32(len(g.Qubits)),
		}
		for _, q := range g.Qubits {
			data = append(data, uint32(q))
		}
		for _, p := range g.Params {
			data = append(data, math.Float64bits(p))
		}
		if g.Op == U {
			for _, row := range g.Matrix {
				for _, v := range row {
					data = append(data,
						math.Float64bits(real(v)), math.Float64bits(imag(v)))
				}
			}
		}
		for _, v := range data {
			if err := binary.Write(out, bo, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func marshalString(out io.Writer, val string) error {
	bytes := []byte(val)
	if err := binary.Write(out, bo, uint32(len(bytes))); err != nil {
		return err
	}
	_, err := out.Write(bytes)
	return err
}

// Unmarshal parses a circuit in the qsim circuit format. The returned
// circuit is finalized.
func Unmarshal(in io.Reader) (*Circuit, error) {
	var hdr [5]uint32
	if err := binary.Read(in, bo, &hdr); err != nil {
		return nil, err
	}
	if hdr[0] != MAGIC {
		return nil, fmt.Errorf("invalid circuit magic 0x%08x", hdr[0])
	}
	c, err := New(int(hdr[1]))
	if err != nil {
		return nil, err
	}
	numGates := int(hdr[2])
	numMeasured := int(hdr[3])
	numRanges := int(hdr[4])

	for i := 0; i < numRanges; i++ {
		name, err := unmarshalString(in)
		if err != nil {
			return nil, err
		}
		var pos [2]uint32
		if err := binary.Read(in, bo, &pos); err != nil {
			return nil, err
		}
		if err := c.AddRange(name, int(pos[0]), int(pos[1])); err != nil {
			return nil, err
		}
	}
	if numMeasured > c.numQubits {
		return nil, fmt.Errorf("%w: %d measured qubits", qerr.ErrInvalidQubitSet,
			numMeasured)
	}
	measured := make([]int, numMeasured)
	for i := range measured {
		var q uint32
		if err := binary.Read(in, bo, &q); err != nil {
			return nil, err
		}
		measured[i] = int(q)
	}

	for i := 0; i < numGates; i++ {
		g, err := unmarshalGate(in, c.numQubits)
		if err != nil {
			return nil, err
		}
		if err := c.Append(g); err != nil {
			return nil, err
		}
	}
	if numMeasured > 0 {
		if err := c.SetMeasurement(measured...); err != nil {
			return nil, err
		}
	}
	c.Finalize()

	return c, nil
}

func unmarshalGate(in io.Reader, numQubits int) (Gate, error) {
	var op byte
	if err := binary.Read(in, bo, &op); err != nil {
		return Gate{}, err
	}
	if Op(op) >= Count {
		return Gate{}, fmt.Errorf("%w: unknown operation %d",
			qerr.ErrInvalidGate, op)
	}
	var nq uint32
	if err := binary.Read(in, bo, &nq); err != nil {
		return Gate{}, err
	}
	if int(nq) > numQubits {
		return Gate{}, fmt.Errorf("%w: %s with %d qubits",
			qerr.ErrInvalidGate, Op(op), nq)
	}
	if Op(op) == U && (nq == 0 || nq > MaxUnitaryQubits) {
		return Gate{}, fmt.Errorf("%w: %s with %d qubits, maximum is %d",
			qerr.ErrInvalidGate, Op(op), nq, MaxUnitaryQubits)
	}
	qubits := make([]uint32, nq)
	if err := binary.Read(in, bo, qubits); err != nil {
		return Gate{}, err
	}
	g := Gate{
		Op:     Op(op),
		Qubits: make([]int, nq),
	}
	for i, q := range qubits {
		g.Qubits[i] = int(q)
	}
	if n := g.Op.NumParams(); n > 0 {
		params := make([]uint64, n)
		if err := binary.Read(in, bo, params); err != nil {
			return Gate{}, err
		}
		for _, p := range params {
			g.Params = append(g.Params, math.Float64frombits(p))
		}
	}
	if g.Op == U {
		dim := 1 << nq
		values := make([]uint64, 2*dim*dim)
		if err := binary.Read(in, bo, values); err != nil {
			return Gate{}, err
		}
		g.Matrix = register.NewMatrix(dim)
		for i := 0; i < dim*dim; i++ {
			g.Matrix[i/dim][i%dim] = complex(
				math.Float64frombits(values[2*i]),
				math.Float64frombits(values[2*i+1]))
		}
	}
	return g, nil
}

func unmarshalString(in io.Reader) (string, error) {
	var l uint32
	if err := binary.Read(in, bo, &l); err != nil {
		return "", err
	}
	if l > maxNameLen {
		return "", fmt.Errorf("string too long: %d", l)
	}
	buf := make([]byte, l)
	if _, err := io.ReadFull(in, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// MarshalQASM marshals the circuit in the OpenQASM 2.0 format. Named
// ranges are written as "// range" comment directives that ParseQASM
// understands. Circuits with U gates can't be expressed in OpenQASM.
func (c *Circuit) MarshalQASM(out io.Writer) error {
	for idx, g := range c.gates {
		if g.Op == U {
			return fmt.Errorf("%w: gate %04d: %s has no OpenQASM form",
				qerr.ErrInvalidGate, idx, g.Op)
		}
	}
	measured := c.measured
	if len(measured) == 0 {
		measured = make([]int, c.numQubits)
		for i := range measured {
			measured[i] = i
		}
	}

	fmt.Fprintf(out, "OPENQASM 2.0;\n")
	fmt.Fprintf(out, "include \"qelib1.inc\";\n\n")
	fmt.Fprintf(out, "qreg q[%d];\n", c.numQubits)
	fmt.Fprintf(out, "creg c[%d];\n", len(measured))
	for _, r := range c.ranges {
		fmt.Fprintf(out, "// range %s %d %d\n", r.Name, r.Offset, r.Size)
	}
	fmt.Fprintln(out)

	for _, g := range c.gates {
		fmt.Fprintf(out, "%s;\n", g)
	}
	for bit, q := range measured {
		fmt.Fprintf(out, "measure q[%d] -> c[%d];\n", q, bit)
	}
	return nil
}
