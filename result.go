//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package qsim

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/markkurossi/qsim/circuit"
	"github.com/markkurossi/qsim/sampler"
	"github.com/markkurossi/tabulate"
)

// Result holds the outcome of a circuit run.
type Result struct {
	ID        uuid.UUID
	Seed      uint64
	Shots     int
	Circuit   *circuit.Circuit
	Histogram *sampler.Histogram
	Timing    *Timing
}

// MostFrequent returns the most frequent measurement outcome.
func (r *Result) MostFrequent() uint64 {
	e, _ := r.Histogram.MostFrequent()
	return e.Value
}

// Values returns the values of the named ranges of the circuit for
// the measurement outcome.
func (r *Result) Values(outcome uint64) map[string]uint64 {
	return r.Circuit.Split(outcome)
}

// Print prints the result histogram. Outcomes are listed as bit
// strings, most significant bit first, followed by the values of the
// fully measured named ranges. The most frequent outcome is printed
// in bold.
func (r *Result) Print(out io.Writer) {
	fmt.Fprintf(out, "run %s: seed=%d, shots=%d\n", r.ID, r.Seed, r.Shots)

	var names []string
	for _, rng := range r.Circuit.Ranges() {
		if _, ok := r.Values(0)[rng.Name]; ok {
			names = append(names, rng.Name)
		}
	}

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Outcome").SetAlign(tabulate.ML)
	tab.Header("Value").SetAlign(tabulate.MR)
	for _, name := range names {
		tab.Header(name).SetAlign(tabulate.MR)
	}
	tab.Header("Count").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)

	best, _ := r.Histogram.MostFrequent()
	for _, e := range r.Histogram.Entries() {
		cols := []string{
			e.Bits(r.Histogram.Width),
			strconv.FormatUint(e.Value, 10),
		}
		values := r.Values(e.Value)
		for _, name := range names {
			cols = append(cols, strconv.FormatUint(values[name], 10))
		}
		cols = append(cols, strconv.Itoa(e.Count),
			fmt.Sprintf("%.2f%%", r.Histogram.Frequency(e.Value)*100))

		row := tab.Row()
		for _, col := range cols {
			c := row.Column(col)
			if e.Value == best.Value {
				c.SetFormat(tabulate.FmtBold)
			}
		}
	}
	tab.Print(out)
}
