package session

import (
	"fmt"
	"sync"
)

// DisplayBuffer implements a thread-safe bounded buffer holding the most
// recent raw samples for live display. The producer appends batches while
// a rendering consumer reads snapshots from another goroutine; when the
// buffer is full, the oldest samples are trimmed from the front.
type DisplayBuffer struct {
	mu    sync.Mutex
	data  []float64
	pos   int // next write position once the buffer has wrapped
	count int
}

// NewDisplayBuffer creates a display buffer holding up to capacity
// samples. Returns an error if capacity is not positive.
func NewDisplayBuffer(capacity int) (*DisplayBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("invalid display buffer capacity: %d", capacity)
	}
	return &DisplayBuffer{data: make([]float64, capacity)}, nil
}

// Append adds a batch of samples, evicting the oldest when full.
func (b *DisplayBuffer) Append(batch []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, v := range batch {
		b.data[b.pos] = v
		b.pos = (b.pos + 1) % len(b.data)
		if b.count < len(b.data) {
			b.count++
		}
	}
}

// Values returns a snapshot of the buffered samples, oldest first.
// Returns nil if the buffer is empty.
func (b *DisplayBuffer) Values() []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 {
		return nil
	}

	out := make([]float64, b.count)
	if b.count < len(b.data) {
		copy(out, b.data[:b.count])
	} else {
		n := copy(out, b.data[b.pos:])
		copy(out[n:], b.data[:b.pos])
	}
	return out
}

// Size returns the current number of buffered samples.
func (b *DisplayBuffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Clear removes all samples from the buffer.
func (b *DisplayBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pos = 0
	b.count = 0
}
