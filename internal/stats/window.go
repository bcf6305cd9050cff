package stats

// WindowAccumulator converts a continuous sample stream into discrete
// fixed-interval RMS values. Samples are buffered until the elapsed time
// crosses the next interval boundary, at which point the RMS over the
// whole buffer is emitted and the buffer is reset.
//
// Flushing is lazy: it happens on arrival of new samples, never on a
// background clock, and at most one value is emitted per Add call even
// when more than one interval has elapsed since the previous flush.
type WindowAccumulator struct {
	interval  float64 // seconds
	buffer    []float64
	lastFlush float64 // elapsed seconds at the previous flush
}

// NewWindowAccumulator creates an accumulator emitting one RMS value per
// interval (in seconds) of elapsed recording time.
func NewWindowAccumulator(interval float64) *WindowAccumulator {
	return &WindowAccumulator{interval: interval}
}

// Start resets the accumulator for a new recording. Elapsed time is
// measured from the start of the recording, so the flush origin is zero.
func (w *WindowAccumulator) Start() {
	w.buffer = w.buffer[:0]
	w.lastFlush = 0
}

// Add appends a batch of samples captured at the given elapsed time.
// When the elapsed time since the previous flush reaches the interval,
// Add returns the RMS of every sample buffered since that flush and true.
func (w *WindowAccumulator) Add(batch []float64, elapsed float64) (float64, bool) {
	w.buffer = append(w.buffer, batch...)

	if elapsed-w.lastFlush < w.interval {
		return 0, false
	}

	rms := RMS(w.buffer)
	w.buffer = w.buffer[:0]
	w.lastFlush = elapsed
	return rms, true
}
