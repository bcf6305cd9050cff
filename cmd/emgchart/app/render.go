package app

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	dpi            = 120.0
	fontSize       = 10.0
	tickMarkLength = 5
	pixelsPerLabel = 120.0

	// Default border sizes in pixels
	defaultTopBorder    = 40
	defaultLeftBorder   = 90
	defaultBottomBorder = 40
	defaultRightBorder  = 40
)

var (
	axisColor       = color.RGBA{A: 0xff}
	rawColor        = color.RGBA{R: 0xb0, G: 0xc4, B: 0xde, A: 0xff}
	shortTermColor  = color.RGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff}
	mediumTermColor = color.RGBA{R: 0xff, G: 0x8c, B: 0x00, A: 0xff}
	maxRMSColor     = color.RGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff}
)

// BorderConfig defines the sizes of white space around the plot area
type BorderConfig struct {
	Top    int // Space for the legend
	Left   int // Space for the amplitude scale
	Bottom int // Space for the information bar
	Right  int // Right padding
}

// RenderConfig holds all configuration options for recording visualization
type RenderConfig struct {
	Width  int // Plot area width in pixels
	Height int // Plot area height in pixels

	// Amplitude bounds of the plot, in sample units
	AmplitudeMin float64
	AmplitudeMax float64

	FontSize float64 // Font size in points
	Borders  BorderConfig
}

// ChartRenderer draws an exported recording as a time-series chart: the
// raw waveform with the three RMS sequences overlaid.
type ChartRenderer struct {
	config RenderConfig
}

// NewChartRenderer creates a new chart renderer with the given configuration
func NewChartRenderer(config RenderConfig) (*ChartRenderer, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("invalid plot area: %dx%d", config.Width, config.Height)
	}
	if config.AmplitudeMin >= config.AmplitudeMax {
		return nil, fmt.Errorf("invalid amplitude bounds: min=%f, max=%f", config.AmplitudeMin, config.AmplitudeMax)
	}

	// Set defaults for zero values
	if config.FontSize == 0 {
		config.FontSize = fontSize
	}
	if config.Borders.Top == 0 {
		config.Borders.Top = defaultTopBorder
	}
	if config.Borders.Left == 0 {
		config.Borders.Left = defaultLeftBorder
	}
	if config.Borders.Bottom == 0 {
		config.Borders.Bottom = defaultBottomBorder
	}
	if config.Borders.Right == 0 {
		config.Borders.Right = defaultRightBorder
	}

	return &ChartRenderer{config: config}, nil
}

// Render creates an image of the recording with annotations
func (r *ChartRenderer) Render(rec *Recording) (*image.RGBA, error) {
	fullWidth := r.config.Width + r.config.Borders.Left + r.config.Borders.Right
	fullHeight := r.config.Height + r.config.Borders.Top + r.config.Borders.Bottom
	img := image.NewRGBA(image.Rect(0, 0, fullWidth, fullHeight))

	// Fill with white background
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	plotArea := image.Rect(
		r.config.Borders.Left,
		r.config.Borders.Top,
		r.config.Borders.Left+r.config.Width,
		r.config.Borders.Top+r.config.Height,
	)

	ann, err := newAnnotator(annotatorConfig{
		FontSize: r.config.FontSize,
		Borders:  r.config.Borders,
	})
	if err != nil {
		return nil, fmt.Errorf("creating annotator: %w", err)
	}
	defer ann.Close()

	if err = ann.annotate(img, plotArea, r.config, rec); err != nil {
		return nil, fmt.Errorf("drawing annotations: %w", err)
	}

	r.drawFrame(img, plotArea)
	r.renderSeries(img, plotArea, rec)

	return img, nil
}

// drawFrame outlines the plot area
func (r *ChartRenderer) drawFrame(img *image.RGBA, area image.Rectangle) {
	for x := area.Min.X; x <= area.Max.X; x++ {
		img.Set(x, area.Min.Y, axisColor)
		img.Set(x, area.Max.Y, axisColor)
	}
	for y := area.Min.Y; y <= area.Max.Y; y++ {
		img.Set(area.Min.X, y, axisColor)
		img.Set(area.Max.X, y, axisColor)
	}
}

// renderSeries draws the raw waveform first so the statistic overlays
// stay visible on top of it
func (r *ChartRenderer) renderSeries(img *image.RGBA, area image.Rectangle, rec *Recording) {
	r.drawPolyline(img, area, rec, &rec.Raw, rawColor)
	r.drawPolyline(img, area, rec, &rec.ShortTerm, shortTermColor)
	r.drawPolyline(img, area, rec, &rec.MediumTerm, mediumTermColor)
	r.drawPolyline(img, area, rec, &rec.MaxRMS, maxRMSColor)
}

func (r *ChartRenderer) drawPolyline(img *image.RGBA, area image.Rectangle, rec *Recording, s *Series, c color.Color) {
	if s.Len() == 0 {
		return
	}

	prevX, prevY := r.toPixel(area, rec, s.Times[0], s.Values[0])
	if s.Len() == 1 {
		img.Set(prevX, prevY, c)
		return
	}

	for i := 1; i < s.Len(); i++ {
		x, y := r.toPixel(area, rec, s.Times[i], s.Values[i])
		drawLine(img, prevX, prevY, x, y, c)
		prevX, prevY = x, y
	}
}

// toPixel maps a (time, amplitude) point into the plot area, clamping
// amplitudes outside the configured bounds onto the frame
func (r *ChartRenderer) toPixel(area image.Rectangle, rec *Recording, t, v float64) (int, int) {
	duration := rec.Duration
	if duration <= 0 {
		duration = 1
	}

	xRatio := t / duration
	yRatio := (v - r.config.AmplitudeMin) / (r.config.AmplitudeMax - r.config.AmplitudeMin)

	xRatio = math.Max(0, math.Min(1, xRatio))
	yRatio = math.Max(0, math.Min(1, yRatio))

	x := area.Min.X + int(xRatio*float64(area.Dx()))
	y := area.Max.Y - int(yRatio*float64(area.Dy()))
	return x, y
}

// drawLine draws a straight segment between two pixels (Bresenham)
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)

	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Internal annotator implementation

type annotatorConfig struct {
	FontSize float64
	Borders  BorderConfig
}

type annotator struct {
	context  *freetype.Context
	config   annotatorConfig
	fontFace font.Face
}

func newAnnotator(config annotatorConfig) (*annotator, error) {
	parsedFont, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsedFont)
	ctx.SetFontSize(config.FontSize)
	ctx.SetHinting(font.HintingNone)
	ctx.SetSrc(image.Black)

	return &annotator{
		context: ctx,
		config:  config,
		fontFace: truetype.NewFace(parsedFont, &truetype.Options{
			Size:    config.FontSize,
			DPI:     dpi,
			Hinting: font.HintingNone,
		}),
	}, nil
}

func (a *annotator) Close() error {
	if a.fontFace != nil {
		return a.fontFace.Close()
	}
	return nil
}

func (a *annotator) annotate(img *image.RGBA, plotArea image.Rectangle, config RenderConfig, rec *Recording) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	if err := a.drawTimeScale(img, plotArea, rec); err != nil {
		return fmt.Errorf("drawing time scale: %w", err)
	}
	if err := a.drawAmplitudeScale(img, plotArea, config); err != nil {
		return fmt.Errorf("drawing amplitude scale: %w", err)
	}
	if err := a.drawLegend(img, plotArea); err != nil {
		return fmt.Errorf("drawing legend: %w", err)
	}
	if err := a.drawInfoBar(img, plotArea, config, rec); err != nil {
		return fmt.Errorf("drawing info bar: %w", err)
	}

	return nil
}

func (a *annotator) drawTimeScale(img *image.RGBA, area image.Rectangle, rec *Recording) error {
	duration := rec.Duration
	if duration <= 0 {
		duration = 1
	}
	step := calculateNiceTimeStep(duration, area.Dx())

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()
	textY := area.Max.Y + tickMarkLength + fontHeight

	for t := 0.0; t <= duration; t += step {
		x := area.Min.X + int(t/duration*float64(area.Dx()))

		// Draw tick mark
		for y := area.Max.Y; y < area.Max.Y+tickMarkLength; y++ {
			img.Set(x, y, axisColor)
		}

		label := formatSeconds(t)
		width := font.MeasureString(a.fontFace, label)
		pt := freetype.Pt(x-(width.Round()/2), textY)
		if _, err := a.context.DrawString(label, pt); err != nil {
			return fmt.Errorf("drawing time label: %w", err)
		}
	}
	return nil
}

func (a *annotator) drawAmplitudeScale(img *image.RGBA, area image.Rectangle, config RenderConfig) error {
	amplitudeRange := config.AmplitudeMax - config.AmplitudeMin
	step := calculateNiceAmplitudeStep(amplitudeRange, area.Dy())
	start := math.Ceil(config.AmplitudeMin/step) * step

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()

	for v := start; v <= config.AmplitudeMax; v += step {
		yRatio := (v - config.AmplitudeMin) / amplitudeRange
		y := area.Max.Y - int(yRatio*float64(area.Dy()))

		// Draw tick mark
		for x := area.Min.X - tickMarkLength; x < area.Min.X; x++ {
			img.Set(x, y, axisColor)
		}

		label := formatAmplitude(v)
		width := font.MeasureString(a.fontFace, label)
		textY := y + fontHeight/2 - metrics.Descent.Round()
		pt := freetype.Pt(area.Min.X-tickMarkLength-width.Round()-3, textY)
		if _, err := a.context.DrawString(label, pt); err != nil {
			return fmt.Errorf("drawing amplitude label: %w", err)
		}
	}
	return nil
}

func (a *annotator) drawLegend(img *image.RGBA, area image.Rectangle) error {
	entries := []struct {
		label string
		color color.Color
	}{
		{"EMG (raw)", rawColor},
		{"0.1s RMS", shortTermColor},
		{"1s RMS", mediumTermColor},
		{"10s Max RMS", maxRMSColor},
	}

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()
	textY := a.config.Borders.Top - fontHeight/2

	x := area.Min.X
	for _, entry := range entries {
		// Color swatch in front of the label
		for sx := x; sx < x+14; sx++ {
			img.Set(sx, textY-3, entry.color)
			img.Set(sx, textY-4, entry.color)
		}
		x += 18

		pt := freetype.Pt(x, textY)
		if _, err := a.context.DrawString(entry.label, pt); err != nil {
			return fmt.Errorf("drawing legend label: %w", err)
		}
		x += font.MeasureString(a.fontFace, entry.label).Round() + 24
	}
	return nil
}

func (a *annotator) drawInfoBar(img *image.RGBA, area image.Rectangle, config RenderConfig, rec *Recording) error {
	perPixelTime := rec.Duration / float64(area.Dx())
	perPixelAmplitude := (config.AmplitudeMax - config.AmplitudeMin) / float64(area.Dy())

	info := fmt.Sprintf("Duration: %s; Samples: %d; RMS points: %d / %d / %d; 1px = %s x %s",
		formatSeconds(rec.Duration),
		rec.Raw.Len(),
		rec.ShortTerm.Len(), rec.MediumTerm.Len(), rec.MaxRMS.Len(),
		formatSeconds(perPixelTime),
		formatAmplitude(perPixelAmplitude))

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()
	textY := img.Bounds().Max.Y - (a.config.Borders.Bottom-fontHeight)/2 - metrics.Descent.Round()

	pt := freetype.Pt(a.config.Borders.Left, textY)
	if _, err := a.context.DrawString(info, pt); err != nil {
		return fmt.Errorf("drawing info text: %w", err)
	}

	return nil
}

// Helper functions

func calculateNiceTimeStep(duration float64, width int) float64 {
	// Standard step sizes in seconds
	steps := []float64{
		0.1, 0.2, 0.5,
		1, 2, 5, 10, 15, 30,
		60, 120, 300, 600, 1800, 3600,
	}

	desiredSteps := float64(width) / pixelsPerLabel
	targetStep := duration / desiredSteps

	for _, step := range steps {
		if step >= targetStep {
			if duration/step >= 2 {
				return step
			}
			break
		}
	}

	return duration / 2
}

func calculateNiceAmplitudeStep(amplitudeRange float64, height int) float64 {
	desiredSteps := math.Max(2, float64(height)/60)
	targetStep := amplitudeRange / desiredSteps

	// Snap to a 1/2/5 decade step
	magnitude := math.Pow(10, math.Floor(math.Log10(targetStep)))
	for _, mult := range []float64{1, 2, 5, 10} {
		if step := magnitude * mult; step >= targetStep {
			return step
		}
	}

	return amplitudeRange / 2
}

func formatSeconds(s float64) string {
	switch {
	case s >= 3600:
		return fmt.Sprintf("%.1fh", s/3600)
	case s >= 60:
		return fmt.Sprintf("%.1fm", s/60)
	case s >= 1:
		return fmt.Sprintf("%.1fs", s)
	default:
		return fmt.Sprintf("%.0fms", s*1000)
	}
}

func formatAmplitude(v float64) string {
	if v == 0 {
		return "0 V"
	}
	fract, suffix := humanize.ComputeSI(v)
	return fmt.Sprintf("%.3g %sV", fract, suffix)
}
