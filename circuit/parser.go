//
// parser.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/markkurossi/qsim/qerr"
)

var (
	reHeader  = regexp.MustCompile(`^OPENQASM\s+(\d+(?:\.\d+)?)$`)
	reInclude = regexp.MustCompile(`^include\s+"([^"]+)"$`)
	reReg     = regexp.MustCompile(`^(qreg|creg)\s+([a-zA-Z_]\w*)\s*\[\s*(\d+)\s*\]$`)
	reMeasure = regexp.MustCompile(
		`^measure\s+([a-zA-Z_]\w*)(?:\s*\[\s*(\d+)\s*\])?\s*->\s*([a-zA-Z_]\w*)(?:\s*\[\s*(\d+)\s*\])?$`)
	reGate  = regexp.MustCompile(`^([a-zA-Z_]\w*)\s*(?:\(([^)]*)\))?\s*(.*)$`)
	reArg   = regexp.MustCompile(`^([a-zA-Z_]\w*)\s*\[\s*(\d+)\s*\]$`)
	reRange = regexp.MustCompile(`^//\s*range\s+([a-zA-Z_]\w*)\s+(\d+)\s+(\d+)\s*$`)
)

type parser struct {
	circ      *Circuit
	qreg      string
	creg      string
	cregSize  int
	measured  []int
	assigned  []bool
	measuring bool
	ranges    []Range
	line      int
}

func (p *parser) errf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: line %d: %s", qerr.ErrInvalidGate, p.line,
		fmt.Sprintf(format, a...))
}

// ParseQASM parses a circuit from its OpenQASM 2.0 representation. The
// parser accepts one quantum and one classical register, the gates of
// this package, final measurements, and ignores barriers. The "//
// range NAME OFFSET SIZE" comment directive defines named qubit
// ranges. The returned circuit is finalized.
func ParseQASM(in io.Reader) (*Circuit, error) {
	p := new(parser)

	var stmt strings.Builder
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		p.line++
		line := strings.TrimSpace(scanner.Text())
		if idx := strings.Index(line, "//"); idx >= 0 {
			if m := reRange.FindStringSubmatch(line[idx:]); m != nil {
				offset, _ := strconv.Atoi(m[2])
				size, _ := strconv.Atoi(m[3])
				p.ranges = append(p.ranges, Range{
					Name:   m[1],
					Offset: offset,
					Size:   size,
				})
			}
			line = line[:idx]
		}
		for {
			idx := strings.IndexByte(line, ';')
			if idx < 0 {
				stmt.WriteString(line)
				stmt.WriteRune(' ')
				break
			}
			stmt.WriteString(line[:idx])
			if err := p.statement(strings.TrimSpace(stmt.String())); err != nil {
				return nil, err
			}
			stmt.Reset()
			line = line[idx+1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(stmt.String())) > 0 {
		return nil, p.errf("unterminated statement '%s'",
			strings.TrimSpace(stmt.String()))
	}
	if p.circ == nil {
		return nil, fmt.Errorf("%w: no qreg declaration", qerr.ErrInvalidSize)
	}
	for _, r := range p.ranges {
		if err := p.circ.AddRange(r.Name, r.Offset, r.Size); err != nil {
			return nil, err
		}
	}
	if p.measuring {
		for bit, ok := range p.assigned {
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] is not measured",
					qerr.ErrInvalidQubitSet, p.creg, bit)
			}
		}
		if err := p.circ.SetMeasurement(p.measured...); err != nil {
			return nil, err
		}
	}
	p.circ.Finalize()

	return p.circ, nil
}

func (p *parser) statement(stmt string) error {
	if len(stmt) == 0 {
		return nil
	}
	if m := reHeader.FindStringSubmatch(stmt); m != nil {
		if !strings.HasPrefix(m[1], "2") {
			return p.errf("unsupported OpenQASM version %s", m[1])
		}
		return nil
	}
	if reInclude.MatchString(stmt) {
		return nil
	}
	if m := reReg.FindStringSubmatch(stmt); m != nil {
		size, err := strconv.Atoi(m[3])
		if err != nil {
			return p.errf("invalid register size: %s", m[3])
		}
		if m[1] == "qreg" {
			if p.circ != nil {
				return p.errf("multiple qreg declarations")
			}
			p.circ, err = New(size)
			if err != nil {
				return err
			}
			p.qreg = m[2]
		} else {
			if p.creg != "" {
				return p.errf("multiple creg declarations")
			}
			if size <= 0 {
				return fmt.Errorf("%w: creg %s[%d]", qerr.ErrInvalidSize,
					m[2], size)
			}
			p.creg = m[2]
			p.cregSize = size
			p.measured = make([]int, size)
			p.assigned = make([]bool, size)
		}
		return nil
	}
	if strings.HasPrefix(stmt, "barrier") {
		return nil
	}
	if m := reMeasure.FindStringSubmatch(stmt); m != nil {
		return p.measure(m)
	}
	if m := reGate.FindStringSubmatch(stmt); m != nil {
		return p.gate(m)
	}
	return p.errf("syntax error: %s", stmt)
}

func (p *parser) measure(m []string) error {
	if p.circ == nil {
		return p.errf("measure before qreg")
	}
	if p.creg == "" {
		return p.errf("measure without creg")
	}
	if m[1] != p.qreg {
		return p.errf("unknown quantum register %s", m[1])
	}
	if m[3] != p.creg {
		return p.errf("unknown classical register %s", m[3])
	}
	p.measuring = true

	if m[2] == "" && m[4] == "" {
		if p.cregSize != p.circ.NumQubits() {
			return fmt.Errorf("%w: measure %s -> %s: size mismatch",
				qerr.ErrInvalidQubitSet, p.qreg, p.creg)
		}
		for i := 0; i < p.cregSize; i++ {
			if err := p.assign(i, i); err != nil {
				return err
			}
		}
		return nil
	}
	if m[2] == "" || m[4] == "" {
		return p.errf("measure: mixed register and bit operands")
	}
	q, err := strconv.Atoi(m[2])
	if err != nil {
		return p.errf("invalid qubit index: %s", m[2])
	}
	bit, err := strconv.Atoi(m[4])
	if err != nil {
		return p.errf("invalid bit index: %s", m[4])
	}
	return p.assign(q, bit)
}

func (p *parser) assign(q, bit int) error {
	if q < 0 || q >= p.circ.NumQubits() {
		return fmt.Errorf("%w: measure %s[%d]", qerr.ErrIndexOutOfRange,
			p.qreg, q)
	}
	if bit < 0 || bit >= p.cregSize {
		return fmt.Errorf("%w: measure into %s[%d]", qerr.ErrIndexOutOfRange,
			p.creg, bit)
	}
	if p.assigned[bit] {
		return fmt.Errorf("%w: %s[%d] measured twice",
			qerr.ErrInvalidQubitSet, p.creg, bit)
	}
	p.assigned[bit] = true
	p.measured[bit] = q
	return nil
}

func (p *parser) gate(m []string) error {
	if p.circ == nil {
		return p.errf("gate before qreg")
	}
	if p.measuring {
		return p.errf("gate %s after measurement", m[1])
	}
	op, ok := OpByName(m[1])
	if !ok {
		return p.errf("unknown gate %s", m[1])
	}
	var params []float64
	if len(strings.TrimSpace(m[2])) > 0 {
		for _, arg := range strings.Split(m[2], ",") {
			val, ok := parseParam(arg)
			if !ok {
				return p.errf("invalid parameter '%s'", strings.TrimSpace(arg))
			}
			params = append(params, val)
		}
	}
	var qubits []int
	for _, arg := range strings.Split(m[3], ",") {
		am := reArg.FindStringSubmatch(strings.TrimSpace(arg))
		if am == nil {
			return p.errf("invalid gate argument '%s'", strings.TrimSpace(arg))
		}
		if am[1] != p.qreg {
			return p.errf("unknown quantum register %s", am[1])
		}
		q, err := strconv.Atoi(am[2])
		if err != nil {
			return p.errf("invalid qubit index: %s", am[2])
		}
		qubits = append(qubits, q)
	}
	return p.circ.Append(NewGate(op, qubits, params...))
}
