package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1 234,56", 1234.56},
		{"12%", 12},
		{"", 0},
		{"abc", 0},
		{"42", 42},
		{"-3,5", -3.5},
		{" 7 ", 7},
		{"1.234,56", 0}, // double separator after comma swap — unparseable, defaults
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CoerceNumber(tc.in), "input %q", tc.in)
	}
}

func TestCoerceString(t *testing.T) {
	v, ok := CoerceString("  ")
	assert.False(t, ok)
	assert.Empty(t, v)

	v, ok = CoerceString(" Acme AB ")
	assert.True(t, ok)
	assert.Equal(t, "Acme AB", v)
}

func TestNormalizeHeaderIdempotent(t *testing.T) {
	inputs := []string{"\uFEFFLevNr", "  Namn  ", "Omsätt\u200Bning", "TOTAL SCORE"}
	for _, h := range inputs {
		once := NormalizeHeader(h)
		assert.Equal(t, once, NormalizeHeader(once), "normalize must be idempotent for %q", h)
	}
}

func TestNormalizeHeaderStripsInvisibles(t *testing.T) {
	cases := []string{
		"\uFEFFlevnr",
		"lev\u200Bnr",
		"lev\u200Cnr",
		"lev\u200Dnr",
	}
	for _, h := range cases {
		assert.Equal(t, "levnr", NormalizeHeader(h), "input %q", h)
	}
}
