package session

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johannasoldis1/EMG-ANR/internal/export"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type fakeStore struct {
	mu    sync.Mutex
	names []string
	data  []string
}

func (s *fakeStore) Write(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, name)
	s.data = append(s.data, string(data))
	return nil
}

func (s *fakeStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.names)
}

func newTestSession(t *testing.T) (*Session, *fakeClock, *fakeStore) {
	t.Helper()

	clock := newFakeClock()
	store := &fakeStore{}
	sess := New(store, WithClock(clock.Now))
	t.Cleanup(sess.Close)
	return sess, clock, store
}

func TestSession_RecordResetsState(t *testing.T) {
	sess, clock, _ := newTestSession(t)

	sess.Record()
	for i := 0; i < 20; i++ {
		clock.Advance(100 * time.Millisecond)
		sess.Append([]float64{1, 2})
	}
	require.NotEmpty(t, sess.ShortTermRMS())
	require.NotEmpty(t, sess.Values())

	sess.Record()

	assert.True(t, sess.IsRecording())
	assert.Empty(t, sess.Values())
	assert.Empty(t, sess.ShortTermRMS())
	assert.Empty(t, sess.MediumTermRMS())
	assert.Empty(t, sess.MaxRMS())
}

func TestSession_AppendWhileIdle(t *testing.T) {
	sess, _, store := newTestSession(t)

	sess.Append([]float64{1, 2, 3})

	assert.False(t, sess.IsRecording())
	assert.Equal(t, []float64{1, 2, 3}, sess.Values(), "display tracks the live feed while idle")
	assert.Empty(t, sess.ShortTermRMS(), "no statistics accumulate while idle")

	artifact := sess.StopAndExport()
	sess.Close()
	assert.Empty(t, artifact, "stopping an idle session is a no-op")
	assert.Zero(t, store.writes())
}

func TestSession_OneEmissionPerAppend(t *testing.T) {
	sess, clock, _ := newTestSession(t)
	sess.Record()

	// Every batch lands 150ms after the previous one, crossing at least
	// one 0.1s boundary per call; each call emits exactly one value.
	const appends = 8
	for i := 0; i < appends; i++ {
		clock.Advance(150 * time.Millisecond)
		sess.Append([]float64{1, 1, 1})
	}

	assert.Len(t, sess.ShortTermRMS(), appends)
	assert.Len(t, sess.MediumTermRMS(), 1, "only the call past the 1s boundary emits")
}

func TestSession_MaxWindowEmissions(t *testing.T) {
	sess, clock, _ := newTestSession(t)
	sess.Record()

	for i := 1; i <= 10; i++ {
		clock.Advance(time.Second)
		sess.Append([]float64{float64(i)})
	}

	require.Len(t, sess.MediumTermRMS(), 10)
	require.Len(t, sess.MaxRMS(), 1, "max emits on the 10th medium-term value")
	assert.Equal(t, 10.0, sess.MaxRMS()[0])

	clock.Advance(time.Second)
	sess.Append([]float64{11})

	require.Len(t, sess.MaxRMS(), 2)
	assert.Equal(t, 11.0, sess.MaxRMS()[1], "11th value rolls the window forward")
}

func TestSession_StopAndExport(t *testing.T) {
	sess, clock, store := newTestSession(t)

	sess.Record()
	clock.Advance(120 * time.Millisecond)
	sess.Append([]float64{3, -4})
	clock.Advance(130 * time.Millisecond)

	artifact := sess.StopAndExport()
	sess.Close()

	assert.False(t, sess.IsRecording())
	require.NotEmpty(t, artifact)

	lines := strings.Split(strings.TrimSuffix(artifact, "\n"), "\n")
	require.Len(t, lines, 4, "duration line, header line, one row per sample")
	assert.Equal(t, export.DurationPrefix+",0.25", lines[0])
	assert.Equal(t, export.Header, lines[1])

	require.Equal(t, 1, store.writes())
	assert.Equal(t, "EMG_Recording_2025-03-14T09_26_53.csv", store.names[0])
	assert.Equal(t, artifact, store.data[0], "the stored payload is the returned artifact")

	assert.NotEmpty(t, sess.ShortTermRMS(), "histories stay readable until the next Record")
}

func TestSession_DoubleStop(t *testing.T) {
	sess, clock, store := newTestSession(t)

	sess.Record()
	clock.Advance(200 * time.Millisecond)
	sess.Append([]float64{1})

	first := sess.StopAndExport()
	second := sess.StopAndExport()
	sess.Close()

	assert.NotEmpty(t, first)
	assert.Empty(t, second, "a second stop without a new recording is rejected")
	assert.Equal(t, 1, store.writes())
}

func TestSession_AppendAfterStopIsIgnored(t *testing.T) {
	sess, clock, _ := newTestSession(t)

	sess.Record()
	clock.Advance(100 * time.Millisecond)
	sess.Append([]float64{1})
	sess.StopAndExport()

	clock.Advance(100 * time.Millisecond)
	sess.Append([]float64{2})

	assert.Len(t, sess.ShortTermRMS(), 1, "statistics freeze once the recording stops")
	assert.Equal(t, []float64{1, 2}, sess.Values(), "the display buffer keeps following the feed")
}

func TestSession_ConcurrentSnapshotReads(t *testing.T) {
	sess, clock, _ := newTestSession(t)
	sess.Record()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			sess.Values()
			sess.ShortTermRMS()
			sess.MediumTermRMS()
			sess.MaxRMS()
			sess.IsRecording()
		}
	}()

	for i := 0; i < 200; i++ {
		clock.Advance(10 * time.Millisecond)
		sess.Append([]float64{float64(i)})
	}
	<-done

	sess.StopAndExport()
}
