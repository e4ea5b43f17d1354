package utils

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatNumber inserts a comma every three digits from the right.
// 1234567 -> "1,234,567", -1234 -> "-1,234".
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatFloat renders f with a fixed number of decimals, grouping only
// the integer part.
func FormatFloat(f float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	s := strconv.FormatFloat(f, 'f', decimals, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// out of int64 range; leave the digits alone
		return sign + s
	}
	out := sign + humanize.Comma(n)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// FormatPercent renders a percentage with two decimals, e.g. "12.34%".
func FormatPercent(p float64) string {
	return FormatFloat(p, 2) + "%"
}
