package app

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

const (
	ImagePNG  = "png"
	ImageJPEG = "jpeg"
)

type ImageFormat string

type Config struct {
	InputFile      string
	OutputFile     string
	Format         ImageFormat
	Width          int
	Height         int
	ClipPercentile float64
}

var validImageFormats = map[ImageFormat]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
}

func NewConfig() *Config {
	return &Config{
		Format: ImagePNG,
		Width:  1200,
		Height: 480,
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var imageFormat string
	flag.StringVar(&c.InputFile, "i", "", "Path to the exported recording CSV")
	flag.StringVar(&c.OutputFile, "o", "", "Path to the output file")
	flag.StringVar(&imageFormat, "f", string(ImagePNG), "Output image format. [png, jpeg]")
	flag.IntVar(&c.Width, "width", c.Width, "Plot area width in pixels")
	flag.IntVar(&c.Height, "height", c.Height, "Plot area height in pixels")
	flag.Float64Var(&c.ClipPercentile, "clip", 0, "Clip amplitude scale at this percentile (0 disables clipping)")
	flag.Parse()

	imageFormat = strings.ToLower(imageFormat)

	var err error
	if c.InputFile == "" {
		err = errors.New("input file is required")
	} else if c.OutputFile == "" {
		err = errors.New("output file is required")
	} else if _, ok := validImageFormats[ImageFormat(imageFormat)]; !ok {
		err = fmt.Errorf("invalid image format: %s", imageFormat)
	} else if c.Width < 300 || c.Height < 200 {
		err = fmt.Errorf("plot area too small: %dx%d", c.Width, c.Height)
	} else if c.ClipPercentile < 0 || c.ClipPercentile > 100 {
		err = fmt.Errorf("invalid clip percentile: %f", c.ClipPercentile)
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}

	c.Format = ImageFormat(imageFormat)
	c.OutputFile = fmt.Sprintf("%s.%s", c.OutputFile, c.Format)
	return c, nil
}
