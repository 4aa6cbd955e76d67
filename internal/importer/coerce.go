package importer

import (
	"strconv"
	"strings"
	"unicode"
)

// CoerceNumber converts a raw cell value into a float64, best-effort.
// Absent or unparseable input yields 0 — never an error, never NaN.
// This loses the distinction between an explicit zero and garbage input;
// that ambiguity is accepted import policy, not a bug to fix here.
//
// Cleanup order: drop all whitespace (thousand separators), comma to period
// (locale decimal separator), drop percent signs, then drop anything that is
// not a digit, period, or minus.
func CoerceNumber(raw string) float64 {
	if raw == "" {
		return 0
	}
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		if r == ',' {
			r = '.'
		}
		if r == '%' {
			continue
		}
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// CoerceString trims a raw cell value. Empty or whitespace-only input is
// reported as absent (ok=false) rather than as an empty string.
func CoerceString(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	return s, true
}
