package viewmodel

import (
	"sort"
	"strconv"
)

// Filter transforms a column's raw cell value before display. "always"
// filters run unconditionally; "ondemand" filters only run once the
// unfiltered value overruns the column width (§4.6).
type Filter func(raw string) string

// Prefix sets for the three human_* filters. All big numeric values are
// prefixed with the metric set; byte counts use the binary set; durations
// use the time set. A value that fits unprefixed is left alone.
var prefixBinary = map[int64]string{
	1024:               "K",
	1024 * 1024:        "M",
}

var prefixMetric = map[int64]string{
	1000:               "k",
	1000 * 1000:        "M",
	1000 * 1000 * 1000: "G",
}

var prefixTime = map[int64]string{
	60:          "m",
	60 * 60:     "h",
	60 * 60 * 24: "d",
}

func sortedPrefixesDesc(m map[int64]string) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })
	return keys
}

func parseNumeric(raw string) (int64, bool) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// HumanSeconds renders a second count using the largest time prefix whose
// integer quotient is nonzero, dropping the remainder, e.g. "3600" -> "1h",
// "90" -> "1m".
func HumanSeconds(raw string) string {
	v, ok := parseNumeric(raw)
	if !ok {
		return raw
	}
	for _, minval := range sortedPrefixesDesc(prefixTime) {
		if v/minval != 0 {
			return strconv.FormatInt(v/minval, 10) + prefixTime[minval]
		}
	}
	return strconv.FormatInt(v, 10) + "s"
}

// HumanMetric renders a count using the largest metric prefix whose integer
// quotient is nonzero, dropping the remainder, e.g. "1500000" -> "1M".
func HumanMetric(raw string) string {
	v, ok := parseNumeric(raw)
	if !ok {
		return raw
	}
	for _, minval := range sortedPrefixesDesc(prefixMetric) {
		if v/minval != 0 {
			return strconv.FormatInt(v/minval, 10) + prefixMetric[minval]
		}
	}
	return strconv.FormatInt(v, 10)
}

// HumanBinary renders a byte count using the largest binary prefix whose
// integer quotient is nonzero, as a quotient with two decimal places,
// e.g. "2097152" -> "2.00M", "1536" -> "1.50K".
func HumanBinary(raw string) string {
	v, ok := parseNumeric(raw)
	if !ok {
		return raw
	}
	for _, minval := range sortedPrefixesDesc(prefixBinary) {
		if v/minval != 0 {
			return strconv.FormatFloat(float64(v)/float64(minval), 'f', 2, 64) + prefixBinary[minval]
		}
	}
	return strconv.FormatInt(v, 10) + "B"
}

// Trim shortens a string to fit length, preferring a leading ".." ellipsis
// that keeps the tail of the string visible (server names and status codes
// are more readable from the right), per the original's `trim`.
func Trim(s string, length int) string {
	if len(s) <= length {
		return s
	}
	if length == 1 {
		return s[:1]
	}
	if length > 5 {
		return ".." + s[len(s)-(length-2):]
	}
	return "..."
}
