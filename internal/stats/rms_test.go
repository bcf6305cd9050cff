package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRMS(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"unit", []float64{1, 1, 1, 1}, 1},
		{"pythagorean", []float64{3, 4}, math.Sqrt(12.5)},
		{"sign independent", []float64{3, -4}, math.Sqrt(12.5)},
		{"single sample", []float64{2}, 2},
		{"zeros", []float64{0, 0, 0}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, RMS(tc.signal), 1e-12)
		})
	}
}
