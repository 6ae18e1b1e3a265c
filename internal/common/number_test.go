package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumberLoose(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.234,56", 1234.56},
		{"  2500 ", 2500},
		{"0,5", 0.5},
		{"-10,25", -10.25},
		{"1.000.000", 1000000},
	}
	for _, tt := range tests {
		got, err := ParseNumberLoose(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

func TestParseNumberLoose_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1,2,3", "Inf", "NaN"} {
		_, err := ParseNumberLoose(in)
		assert.ErrorIs(t, err, ErrInvalidNumber, in)
	}
}
