//
// Copyright (c) 2022-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// reVar matches template variables {{N}} and {c{NAME}} where c is a
// conversion character.
var reVar = regexp.MustCompilePOSIX(`{(.?){([^\}]+)}}`)

// Template defines an expandable text template. Numeric variables are
// converted with the FloatCvt and IntCvt functions. String variables
// {s{NAME}} are expanded from the variables given to Expand and are
// escaped for XML.
type Template struct {
	parts    []*part
	FloatCvt FloatCvt
	IntCvt   IntCvt
}

// FloatCvt converts a float64 value to float64 value.
type FloatCvt func(v float64) float64

// IntCvt converts an integer value to float64 value.
type IntCvt func(v int) float64

const (
	partFloat = iota
	partInt
	partString
	partVar
)

type part struct {
	t  int
	fv float64
	iv int
	sv string
}

func (p part) String() string {
	switch p.t {
	case partFloat:
		return fmt.Sprintf("float64:%v", p.fv)
	case partInt:
		return fmt.Sprintf("int:%v", p.iv)
	case partString:
		return p.sv
	case partVar:
		return fmt.Sprintf("var:%s", p.sv)
	default:
		return fmt.Sprintf("{part %d}", p.t)
	}
}

// NewTemplate parses the input string and returns the parsed
// Template.
func NewTemplate(input string) (*Template, error) {
	t := &Template{
		FloatCvt: func(v float64) float64 { return v },
		IntCvt:   func(v int) float64 { return float64(v) },
	}
	var start int
	for _, m := range reVar.FindAllStringSubmatchIndex(input, -1) {
		if m[0] > start {
			t.parts = append(t.parts, &part{
				t:  partString,
				sv: input[start:m[0]],
			})
		}
		start = m[1]
		content := input[m[4]:m[5]]

		if m[2] != m[3] {
			switch input[m[2]:m[3]] {
			case "s":
				t.parts = append(t.parts, &part{
					t:  partVar,
					sv: content,
				})
			default:
				return nil, fmt.Errorf("unknown template conversion: %s",
					input[m[2]:m[3]])
			}
			continue
		}
		if iv, err := strconv.Atoi(content); err == nil {
			t.parts = append(t.parts, &part{
				t:  partInt,
				iv: iv,
			})
		} else if fv, err := strconv.ParseFloat(content, 64); err == nil {
			t.parts = append(t.parts, &part{
				t:  partFloat,
				fv: fv,
			})
		} else {
			return nil, fmt.Errorf("invalid template value: %s", content)
		}
	}
	if start < len(input) {
		t.parts = append(t.parts, &part{
			t:  partString,
			sv: input[start:],
		})
	}
	return t, nil
}

// MustTemplate is like NewTemplate but panics if the template can't
// be parsed.
func MustTemplate(input string) *Template {
	t, err := NewTemplate(input)
	if err != nil {
		panic(err)
	}
	return t
}

// Expand expands the template with the string variables.
func (t *Template) Expand(vars map[string]string) string {
	var b strings.Builder

	for _, part := range t.parts {
		switch part.t {
		case partFloat:
			fmt.Fprintf(&b, "%v", t.FloatCvt(part.fv))
		case partInt:
			fmt.Fprintf(&b, "%v", t.IntCvt(part.iv))
		case partString:
			b.WriteString(part.sv)
		case partVar:
			b.WriteString(html.EscapeString(vars[part.sv]))
		}
	}

	return b.String()
}
