package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Currency-like ("$ 1,234.50") or plain numeric tokens in free text.
	numberPattern = regexp.MustCompile(`[-+]?\$\s?[\d,]+(?:\.\d+)?|[-+]?\d[\d,]*(?:\.\d+)?`)
	// Bare signed number used as a last resort inside a single cell.
	digitsPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// CleanNumber normalizes a raw cell string into a float value. It strips
// thousands separators and dollar signs, converts accounting parentheses to a
// negative sign, and falls back to the first numeric substring when the
// cleaned string still fails to parse. The second return value is false when
// the cell carries no usable number; CleanNumber never panics.
func CleanNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(raw, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "(", "-")
	s = strings.ReplaceAll(s, ")", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	}

	m := digitsPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractNumbers scans free text for currency-like or plain numeric tokens
// and returns the values that survive cleaning, in order of appearance.
func ExtractNumbers(text string) []float64 {
	var out []float64
	for _, tok := range numberPattern.FindAllString(text, -1) {
		if v, ok := CleanNumber(tok); ok {
			out = append(out, v)
		}
	}
	return out
}
