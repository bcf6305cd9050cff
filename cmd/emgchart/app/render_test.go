package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmplitudeBounds(t *testing.T) {
	values := []float64{-1, 0, 1}

	min, max, err := amplitudeBounds(values, 0)
	require.NoError(t, err)
	assert.Less(t, min, -1.0, "bounds are padded below the smallest sample")
	assert.Greater(t, max, 1.0, "bounds are padded above the largest sample")
}

func TestAmplitudeBounds_ConstantSignal(t *testing.T) {
	min, max, err := amplitudeBounds([]float64{2, 2, 2}, 0)
	require.NoError(t, err)
	assert.Less(t, min, max, "a flat signal still gets a non-degenerate range")
}

func TestAmplitudeBounds_ClipPercentile(t *testing.T) {
	values := make([]float64, 0, 101)
	for i := 0; i <= 99; i++ {
		values = append(values, 1)
	}
	values = append(values, 1000) // outlier spike

	_, maxClipped, err := amplitudeBounds(values, 95)
	require.NoError(t, err)

	_, maxFull, err := amplitudeBounds(values, 0)
	require.NoError(t, err)

	assert.Less(t, maxClipped, maxFull, "clipping trims the outlier spike")
}

func TestAmplitudeBounds_EmptyInput(t *testing.T) {
	_, _, err := amplitudeBounds(nil, 0)
	assert.Error(t, err)
}

func TestChartRenderer_Render(t *testing.T) {
	rec := &Recording{
		Duration: 1.0,
		Raw: Series{
			Times:  []float64{0.1, 0.3, 0.5, 0.7, 0.9},
			Values: []float64{0.5, -0.5, 1, -1, 0},
		},
		ShortTerm: Series{
			Times:  []float64{0.3, 0.5},
			Values: []float64{0.6, 0.9},
		},
	}

	renderer, err := NewChartRenderer(RenderConfig{
		Width:        400,
		Height:       200,
		AmplitudeMin: -1.2,
		AmplitudeMax: 1.2,
	})
	require.NoError(t, err)

	img, err := renderer.Render(rec)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 400+defaultLeftBorder+defaultRightBorder, bounds.Dx())
	assert.Equal(t, 200+defaultTopBorder+defaultBottomBorder, bounds.Dy())
}

func TestNewChartRenderer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config RenderConfig
	}{
		{"zero plot area", RenderConfig{AmplitudeMin: -1, AmplitudeMax: 1}},
		{"inverted amplitude bounds", RenderConfig{Width: 100, Height: 100, AmplitudeMin: 1, AmplitudeMax: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewChartRenderer(tc.config)
			assert.Error(t, err)
		})
	}
}
