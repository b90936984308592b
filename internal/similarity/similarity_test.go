package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "hello", b: "hello", want: 1},
		{name: "case insensitive", a: "HELLO", b: "hello", want: 1},
		{name: "classic overlap", a: "abcd", b: "bcde", want: 0.75},
		{name: "disjoint", a: "abc", b: "xyz", want: 0},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "abc", b: "", want: 0},
		{name: "surrounding whitespace", a: "  dune  ", b: "dune", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 0.0001)
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	assert.InDelta(t, Ratio("suç ve ceza", "savaş ve barış"), Ratio("savaş ve barış", "suç ve ceza"), 0.0001)
}

func TestRatioTurkishCasing(t *testing.T) {
	// Dotted capital İ must fold to i, not remain distinct.
	assert.InDelta(t, 1.0, Ratio("İstanbul Hatırası", "istanbul hatırası"), 0.0001)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Dune Messiah", "dune"))
	assert.True(t, Contains("dune", "Dune Messiah"))
	assert.False(t, Contains("Dune", "Foundation"))
	assert.False(t, Contains("", "Dune"))
}
