//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3*pi/4,
// -pi/2.
var piExprRegex = regexp.MustCompile(
	`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// piForms lists the parameter values printed in pi notation. The
// values are computed the same way parseParam evaluates the notation
// so that formatting and parsing round trip exactly.
var piForms = []struct {
	value   float64
	display string
}{
	{piValue(2, 1), "2*pi"},
	{piValue(1, 1), "pi"},
	{piValue(1, 2), "pi/2"},
	{piValue(1, 3), "pi/3"},
	{piValue(1, 4), "pi/4"},
	{piValue(1, 6), "pi/6"},
	{piValue(1, 8), "pi/8"},
	{piValue(3, 4), "3*pi/4"},
	{piValue(3, 2), "3*pi/2"},
	{piValue(2, 3), "2*pi/3"},
}

func piValue(coeff, denom float64) float64 {
	result := coeff * math.Pi
	return result / denom
}

// parseParam parses a parameter expression: a plain number or a pi
// expression.
func parseParam(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	m := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	coeff := 1.0
	if m[2] != "" {
		var err error
		coeff, err = strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
	}
	denom := 1.0
	if m[3] != "" {
		var err error
		denom, err = strconv.ParseFloat(m[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
	}
	result := piValue(coeff, denom)
	if m[1] == "-" {
		result = -result
	}
	return result, true
}

// formatParam formats a parameter value, using pi notation for the
// common fractions of pi.
func formatParam(val float64) string {
	for _, pf := range piForms {
		if val == pf.value {
			return pf.display
		}
		if val == -pf.value {
			return "-" + pf.display
		}
	}
	return strconv.FormatFloat(val, 'g', -1, 64)
}
