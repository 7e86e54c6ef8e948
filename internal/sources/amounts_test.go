package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmountValue(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"Ksh 50,000 per year", 50000},
		{"KES 120,000", 120000},
		{"up to Sh. 1,500,000", 1500000},
		{"25000/=", 25000},
		{"$1,200.50", 1200.50},
		{"Full tuition", 0},
		{"", 0},
		{"varies by need", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmountValue(tt.input))
		})
	}
}
