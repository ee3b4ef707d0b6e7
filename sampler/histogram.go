//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package sampler

import (
	"fmt"
	"sort"
	"strings"
)

// Histogram holds the measurement outcome counts of a sampling run.
// Outcomes are Width bit values; outcome bit i is the i-th measured
// qubit.
type Histogram struct {
	Width  int
	Shots  int
	counts map[uint64]int
}

// Entry is one histogram bucket.
type Entry struct {
	Value uint64
	Count int
}

// Bits returns the entry value as a bit string of width bits, most
// significant bit first.
func (e Entry) Bits(width int) string {
	return FormatBits(e.Value, width)
}

// NewHistogram creates an empty histogram of width bit outcomes.
func NewHistogram(width int) *Histogram {
	return &Histogram{
		Width:  width,
		counts: make(map[uint64]int),
	}
}

func (h *Histogram) add(v uint64, count int) {
	h.counts[v] += count
	h.Shots += count
}

// Count returns the number of shots with the outcome v.
func (h *Histogram) Count(v uint64) int {
	return h.counts[v]
}

// Frequency returns the relative frequency of the outcome v.
func (h *Histogram) Frequency(v uint64) float64 {
	if h.Shots == 0 {
		return 0
	}
	return float64(h.counts[v]) / float64(h.Shots)
}

// Len returns the number of distinct outcomes.
func (h *Histogram) Len() int {
	return len(h.counts)
}

// Counts returns the outcome counts keyed by the outcome bit strings,
// most significant bit first and zero padded to the histogram width.
func (h *Histogram) Counts() map[string]int {
	result := make(map[string]int, len(h.counts))
	for v, c := range h.counts {
		result[FormatBits(v, h.Width)] = c
	}
	return result
}

// Entries returns the histogram buckets in ascending outcome order.
func (h *Histogram) Entries() []Entry {
	result := make([]Entry, 0, len(h.counts))
	for v, c := range h.counts {
		result = append(result, Entry{
			Value: v,
			Count: c,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Value < result[j].Value
	})
	return result
}

// MostFrequent returns the outcome with the highest count. Ties are
// resolved to the smallest outcome. The second return value is false
// for an empty histogram.
func (h *Histogram) MostFrequent() (Entry, bool) {
	var best Entry
	var found bool
	for v, c := range h.counts {
		if !found || c > best.Count || (c == best.Count && v < best.Value) {
			best = Entry{
				Value: v,
				Count: c,
			}
			found = true
		}
	}
	return best, found
}

// Merge adds the counts of the histogram o into h.
func (h *Histogram) Merge(o *Histogram) error {
	if h.Width != o.Width {
		return fmt.Errorf("sampler: merge width %d with width %d",
			o.Width, h.Width)
	}
	for v, c := range o.counts {
		h.add(v, c)
	}
	return nil
}

func (h *Histogram) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	for idx, e := range h.Entries() {
		if idx > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s:%d", e.Bits(h.Width), e.Count)
	}
	sb.WriteRune('}')
	return sb.String()
}

// FormatBits formats v as a bit string of width bits, most
// significant bit first.
func FormatBits(v uint64, width int) string {
	s := fmt.Sprintf("%b", v)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}
