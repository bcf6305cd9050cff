package app

import (
	"context"
	"fmt"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"

	"github.com/montanaflynn/stats"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	rec, err := LoadRecording(config.InputFile)
	if err != nil {
		return err
	}

	amplitudeMin, amplitudeMax, err := amplitudeBounds(rec.Raw.Values, config.ClipPercentile)
	if err != nil {
		return fmt.Errorf("computing amplitude bounds: %w", err)
	}

	logger.Info("recording loaded",
		slog.Group("stats",
			slog.String("duration", formatSeconds(rec.Duration)),
			slog.Int("samples", rec.Raw.Len()),
			slog.Int("shortTermRMS", rec.ShortTerm.Len()),
			slog.Int("mediumTermRMS", rec.MediumTerm.Len()),
			slog.Int("maxRMS", rec.MaxRMS.Len()),
			slog.String("amplitudeMin", formatAmplitude(amplitudeMin)),
			slog.String("amplitudeMax", formatAmplitude(amplitudeMax)),
		))

	renderer, err := NewChartRenderer(RenderConfig{
		Width:        config.Width,
		Height:       config.Height,
		AmplitudeMin: amplitudeMin,
		AmplitudeMax: amplitudeMax,
	})
	if err != nil {
		return fmt.Errorf("creating chart renderer: %w", err)
	}

	logger.Info("rendering recording",
		slog.Group("image",
			slog.String("destination", config.OutputFile),
			slog.String("format", string(config.Format)),
			slog.Int("width", config.Width),
			slog.Int("height", config.Height),
		))

	img, err := renderer.Render(rec)
	if err != nil {
		return fmt.Errorf("rendering recording: %w", err)
	}

	out, err := os.Create(config.OutputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	switch config.Format {
	case ImagePNG:
		err = png.Encode(out, img)

	case ImageJPEG:
		err = jpeg.Encode(out, img, &jpeg.Options{
			Quality: 98,
		})
	}
	return err
}

// amplitudeBounds derives the plot's amplitude range from the raw
// samples. A clip percentile trims outlier spikes; the range is padded
// so the waveform never touches the frame.
func amplitudeBounds(values []float64, clip float64) (float64, float64, error) {
	var amplitudeMin, amplitudeMax float64
	var err error

	if clip > 0 && clip < 100 {
		if amplitudeMax, err = stats.Percentile(values, clip); err != nil {
			return 0, 0, err
		}
		if amplitudeMin, err = stats.Percentile(values, 100-clip); err != nil {
			return 0, 0, err
		}
		if amplitudeMin > amplitudeMax {
			amplitudeMin, amplitudeMax = amplitudeMax, amplitudeMin
		}
	} else {
		if amplitudeMax, err = stats.Max(values); err != nil {
			return 0, 0, err
		}
		if amplitudeMin, err = stats.Min(values); err != nil {
			return 0, 0, err
		}
	}

	if amplitudeMin == amplitudeMax {
		amplitudeMin -= 0.5
		amplitudeMax += 0.5
	}

	pad := (amplitudeMax - amplitudeMin) * 0.05
	return amplitudeMin - pad, amplitudeMax + pad, nil
}
