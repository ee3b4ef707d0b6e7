//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
)

const (
	cellSize = 40
	padLeft  = 48
	padRight = 16
	padY     = 16
)

type tile struct {
	gate *Gate
	col  int
}

type point struct {
	x, y float64
}

var (
	tmplBox = MustTemplate(`<rect x="{{10}}" y="{{10}}" width="{{80}}" height="{{80}}" fill="#fff" />
  <text x="{{50}}" y="{{58}}" text-anchor="middle" font-size="{{28}}" stroke="none" fill="#000">{s{label}}</text>
  <text x="{{50}}" y="{{84}}" text-anchor="middle" font-size="{{16}}" stroke="none" fill="#000">{s{param}}</text>
`)
	tmplControl = MustTemplate(`<circle cx="{{50}}" cy="{{50}}" r="{{8}}" fill="#000" />
`)
	tmplTarget = MustTemplate(`<circle cx="{{50}}" cy="{{50}}" r="{{22}}" fill="#fff" />
  <path d="M {{28}} {{50}} h {{44}} M {{50}} {{28}} v {{44}}" />
`)
	tmplSwap = MustTemplate(`<path d="M {{38}} {{38}} l {{24}} {{24}} M {{62}} {{38}} l {{-24}} {{24}}" />
`)
	tmplMeasure = MustTemplate(`<rect x="{{10}}" y="{{10}}" width="{{80}}" height="{{80}}" fill="#fff" />
  <path d="M {{22}} {{70}} a {{28}} {{28}} 0 0 1 {{56}} 0 M {{50}} {{70}} l {{20}} {{-36}}" />
  <text x="{{50}}" y="{{108}}" text-anchor="middle" font-size="{{20}}" stroke="none" fill="#000">{s{label}}</text>
`)
)

func init() {
	for _, tmpl := range []*Template{
		tmplBox, tmplControl, tmplTarget, tmplSwap, tmplMeasure,
	} {
		tmpl.IntCvt = scale
	}
}

func scale(in int) float64 {
	return float64(in) * cellSize / 100
}

// Svg renders the circuit diagram as SVG. Qubits are horizontal
// wires and gates are placed in columns by their layer.
func (c *Circuit) Svg(out io.Writer) {
	layers := c.Layers()
	depth := c.Depth()

	tiles := make([]tile, len(c.gates))
	for idx := range c.gates {
		tiles[idx] = tile{
			gate: &c.gates[idx],
			col:  layers[idx],
		}
	}
	cols := depth
	if len(c.measured) > 0 {
		cols++
	}
	width := padLeft + cols*cellSize + padRight
	height := 2*padY + c.numQubits*cellSize

	fmt.Fprintf(out,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">
  <g fill="none" stroke="#000" stroke-width="1" font-family="Helvetica">
`,
		width, height)

	// Qubit wires.
	for q := 0; q < c.numQubits; q++ {
		y := wireY(q)
		fmt.Fprintf(out,
			`  <text x="4" y="%v" stroke="none" fill="#000" font-size="12">q[%d]</text>
  <path d="M %d %v H %d" />
`,
			y+4, q, padLeft-8, y, width-padRight)
	}

	for _, t := range tiles {
		t.gate.svg(out, cellOrigin(t.col, 0).x)
	}
	for bit, q := range c.measured {
		drawTemplate(out, tmplMeasure, cellOrigin(depth, q), map[string]string{
			"label": fmt.Sprintf("c[%d]", bit),
		})
	}

	fmt.Fprintln(out, "  </g>\n</svg>")
}

func (g *Gate) svg(out io.Writer, x float64) {
	if len(g.Qubits) > 1 {
		lo, hi := g.Qubits[0], g.Qubits[0]
		for _, q := range g.Qubits {
			lo = min(lo, q)
			hi = max(hi, q)
		}
		fmt.Fprintf(out, "  <path d=\"M %v %v V %v\" />\n",
			x+cellSize/2, wireY(lo), wireY(hi))
	}

	switch g.Op {
	case CX, CCX:
		for _, q := range g.Controls() {
			drawTemplate(out, tmplControl, point{x, cellOrigin(0, q).y}, nil)
		}
		drawTemplate(out, tmplTarget, point{x, cellOrigin(0, g.Target()).y}, nil)

	case CZ:
		for _, q := range g.Qubits {
			drawTemplate(out, tmplControl, point{x, cellOrigin(0, q).y}, nil)
		}

	case SWAP:
		for _, q := range g.Qubits {
			drawTemplate(out, tmplSwap, point{x, cellOrigin(0, q).y}, nil)
		}

	default:
		vars := map[string]string{
			"label": g.Op.String(),
		}
		if len(g.Params) > 0 {
			vars["param"] = formatParam(g.Params[0])
		}
		for _, q := range g.Qubits {
			drawTemplate(out, tmplBox, point{x, cellOrigin(0, q).y}, vars)
		}
	}
}

func drawTemplate(out io.Writer, tmpl *Template, at point,
	vars map[string]string) {

	fmt.Fprintf(out, "  <g transform=\"translate(%v %v)\">\n  ", at.x, at.y)
	io.WriteString(out, tmpl.Expand(vars))
	fmt.Fprintln(out, "  </g>")
}

func cellOrigin(col, q int) point {
	return point{
		x: float64(padLeft + col*cellSize),
		y: float64(padY + q*cellSize),
	}
}

func wireY(q int) float64 {
	return float64(padY+q*cellSize) + cellSize/2
}
