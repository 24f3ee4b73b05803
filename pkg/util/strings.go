package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var decimalRe = regexp.MustCompile(`-?\d+\.\d+`)

// ParseFloat parses a provider value, ignoring thousands separators.
// Blank strings and the "." placeholder report as missing, as do NaN and Inf.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FirstDecimal returns the first number with a fractional part found in s.
func FirstDecimal(s string) (float64, bool) {
	m := decimalRe.FindString(s)
	if m == "" {
		return 0, false
	}
	return ParseFloat(m)
}
