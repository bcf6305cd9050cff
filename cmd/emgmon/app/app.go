package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/johannasoldis1/EMG-ANR/internal/emg"
	"github.com/johannasoldis1/EMG-ANR/internal/session"
	"github.com/johannasoldis1/EMG-ANR/internal/storage"
)

const exportDir = "exports"

// Run wires the capture device to a recording session and serves the
// interactive control surface until the context is cancelled, the device
// stops or the operator quits.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	store, err := createStorage(&config.Export)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}

	options := []func(*session.Session){session.WithLogger(logger)}
	if config.Display.Capacity > 0 {
		options = append(options, session.WithDisplayCapacity(config.Display.Capacity))
	}

	sess := session.New(store, options...)
	defer sess.Close()

	handler, err := emg.NewLineHandler(config.Device.Command, config.Device.Args...)
	if err != nil {
		return fmt.Errorf("failed to create capture handler: %w", err)
	}

	deviceOptions := []func(*emg.Device){emg.WithLogger(logger)}
	if config.Device.ParseErrorsThreshold > 0 {
		deviceOptions = append(deviceOptions, emg.WithParseErrorsThreshold(config.Device.ParseErrorsThreshold))
	}

	device := emg.NewDevice(handler, deviceOptions...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	batches := make(chan emg.Batch, 16)
	done, err := device.BeginSampling(ctx, batches)
	if err != nil {
		return fmt.Errorf("starting capture: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for batch := range batches {
			sess.Append(batch)
		}
	}()

	quit := startControl(ctx, sess, logger)

	select {
	case <-ctx.Done():
	case err = <-done:
	case <-quit:
	}

	device.Stop()
	close(batches)
	wg.Wait()

	if sess.IsRecording() {
		sess.StopAndExport()
	}

	return err
}

func createStorage(config *ExportConfig) (*storage.FileStore, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	dir := config.Directory
	if dir == "" {
		dir = exportDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(wd, dir)
	}

	store, err := storage.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("creating storage: %w", err)
	}

	return store, nil
}
