// Package session owns the live EMG recording lifecycle: the recorded
// sample log, the three derived RMS sequences and the bounded display
// buffer read by the rendering layer.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/johannasoldis1/EMG-ANR/internal/export"
	"github.com/johannasoldis1/EMG-ANR/internal/stats"
	"github.com/johannasoldis1/EMG-ANR/internal/storage"
)

const (
	// DisplayCapacity bounds the live raw-value buffer.
	DisplayCapacity = 1000

	shortTermInterval  = 0.1
	mediumTermInterval = 1.0
	maxWindowSize      = 10
)

// WithLogger sets the logger for the session.
func WithLogger(logger *slog.Logger) func(*Session) {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithClock overrides the session time source.
func WithClock(now func() time.Time) func(*Session) {
	return func(s *Session) {
		s.now = now
	}
}

// WithDisplayCapacity overrides the live display buffer capacity.
func WithDisplayCapacity(capacity int) func(*Session) {
	return func(s *Session) {
		if display, err := NewDisplayBuffer(capacity); err == nil {
			s.display = display
		}
	}
}

// Session is the recording state machine. A session is either idle or
// recording; starting a recording discards all state from the previous
// one. All sample batches flow through Append in arrival order from a
// single producer, while the display snapshots may be read concurrently
// from other goroutines.
type Session struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time

	recording atomic.Bool

	mu         sync.Mutex
	startTime  time.Time
	times      []float64 // elapsed seconds, parallel to values
	values     []float64
	shortTerm  *stats.WindowAccumulator
	mediumTerm *stats.WindowAccumulator
	maxWindow  *stats.MaxWindowReducer
	shortHist  []float64
	mediumHist []float64
	maxHist    []float64

	display *DisplayBuffer
	writes  sync.WaitGroup
}

// New creates an idle session persisting export artifacts to store.
func New(store storage.Store, options ...func(*Session)) *Session {
	display, _ := NewDisplayBuffer(DisplayCapacity)

	s := Session{
		store:      store,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)), // nil logger
		now:        time.Now,
		shortTerm:  stats.NewWindowAccumulator(shortTermInterval),
		mediumTerm: stats.NewWindowAccumulator(mediumTermInterval),
		maxWindow:  stats.NewMaxWindowReducer(maxWindowSize),
		display:    display,
	}

	for _, option := range options {
		option(&s)
	}

	return &s
}

// Record starts a new recording, unconditionally discarding the sample
// log, derived histories and display buffer of any previous session.
func (s *Session) Record() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.startTime = s.now()
	s.times = s.times[:0]
	s.values = s.values[:0]
	s.shortHist = s.shortHist[:0]
	s.mediumHist = s.mediumHist[:0]
	s.maxHist = s.maxHist[:0]

	s.shortTerm.Start()
	s.mediumTerm.Start()
	s.maxWindow.Reset()
	s.display.Clear()

	s.recording.Store(true)
	s.logger.Info("recording started")
}

// Append ingests a batch of newly captured samples. The display buffer
// tracks the live feed on every call regardless of recording state; the
// sample log and window statistics advance only while recording.
func (s *Session) Append(batch []float64) {
	if len(batch) == 0 {
		return
	}

	s.display.Append(batch)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recording.Load() {
		return
	}

	elapsed := s.now().Sub(s.startTime).Seconds()
	for _, v := range batch {
		s.times = append(s.times, elapsed)
		s.values = append(s.values, v)
	}

	if rms, ok := s.shortTerm.Add(batch, elapsed); ok {
		s.shortHist = append(s.shortHist, rms)
	}
	if rms, ok := s.mediumTerm.Add(batch, elapsed); ok {
		s.mediumHist = append(s.mediumHist, rms)
		if max, ok := s.maxWindow.Push(rms); ok {
			s.maxHist = append(s.maxHist, max)
		}
	}
}

// StopAndExport ends the recording, builds the CSV artifact and returns
// it. The artifact is handed to the store on a background goroutine;
// a failed write is logged and never surfaced to the caller.
//
// Calling StopAndExport on an idle session is a no-op returning the
// empty string. The recorded histories remain readable until the next
// Record.
func (s *Session) StopAndExport() string {
	s.mu.Lock()
	if !s.recording.Load() {
		s.mu.Unlock()
		s.logger.Warn("stop requested with no active recording")
		return ""
	}
	s.recording.Store(false)

	now := s.now()
	rec := export.Recording{
		Duration:   now.Sub(s.startTime).Seconds(),
		Times:      slices.Clone(s.times),
		Values:     slices.Clone(s.values),
		ShortTerm:  slices.Clone(s.shortHist),
		MediumTerm: slices.Clone(s.mediumHist),
		MaxRMS:     slices.Clone(s.maxHist),
	}
	s.mu.Unlock()

	artifact := export.Serialize(rec)
	name := storage.ExportFilename(now)

	s.writes.Add(1)
	go func() {
		defer s.writes.Done()

		if err := s.store.Write(name, []byte(artifact)); err != nil {
			s.logger.Error(fmt.Sprintf("writing export artifact: %s", err.Error()), slog.String("file", name))
			return
		}
		s.logger.Info("export artifact written", slog.String("file", name), slog.Int("bytes", len(artifact)))
	}()

	s.logger.Info("recording stopped",
		slog.Int("samples", len(rec.Values)),
		slog.String("duration", fmt.Sprintf("%.3fs", rec.Duration)))

	return artifact
}

// Close waits for in-flight export writes to finish.
func (s *Session) Close() {
	s.writes.Wait()
}

// IsRecording returns true while a recording is active.
func (s *Session) IsRecording() bool {
	return s.recording.Load()
}

// Values returns a snapshot of the live display buffer, oldest first.
func (s *Session) Values() []float64 {
	return s.display.Values()
}

// ShortTermRMS returns a snapshot of the 0.1s RMS history.
func (s *Session) ShortTermRMS() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.shortHist)
}

// MediumTermRMS returns a snapshot of the 1s RMS history.
func (s *Session) MediumTermRMS() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.mediumHist)
}

// MaxRMS returns a snapshot of the max-of-ten 1s RMS history.
func (s *Session) MaxRMS() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.maxHist)
}
