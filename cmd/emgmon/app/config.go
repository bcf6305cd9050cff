package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the main application configuration
type Config struct {
	Settings Settings      `yaml:"settings"`
	Device   DeviceConfig  `yaml:"device"`
	Export   ExportConfig  `yaml:"export"`
	Display  DisplayConfig `yaml:"display"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// Level maps the configured log level onto slog levels, defaulting to Info.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DeviceConfig represents the EMG capture source configuration
type DeviceConfig struct {
	Command              string   `yaml:"command"`
	Args                 []string `yaml:"args"`
	ParseErrorsThreshold uint8    `yaml:"parseErrorsThreshold"`
}

// ExportConfig represents export artifact storage settings
type ExportConfig struct {
	Directory string `yaml:"directory"`
}

// DisplayConfig represents live display settings
type DisplayConfig struct {
	Capacity int `yaml:"capacity"`
}

// LoadConfig reads and validates the YAML configuration at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening configuration file: %w", err)
	}
	defer f.Close()

	var config Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	if config.Device.Command == "" {
		return nil, errors.New("device command is required")
	}
	if config.Display.Capacity < 0 {
		return nil, fmt.Errorf("invalid display capacity: %d", config.Display.Capacity)
	}

	return &config, nil
}
