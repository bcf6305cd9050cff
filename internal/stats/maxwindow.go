package stats

// MaxWindowReducer keeps a trailing window of per-interval statistics and
// emits the window maximum once the window is full. The window advances
// one slot per Push, evicting the oldest value, so the reducer emits on
// the Nth push and on every push thereafter, never before.
type MaxWindowReducer struct {
	values []float64
	pos    int
	count  int
}

// NewMaxWindowReducer creates a reducer over a trailing window of size
// values. Size must be positive.
func NewMaxWindowReducer(size int) *MaxWindowReducer {
	if size <= 0 {
		size = 1
	}
	return &MaxWindowReducer{values: make([]float64, size)}
}

// Reset empties the trailing window.
func (m *MaxWindowReducer) Reset() {
	m.pos = 0
	m.count = 0
}

// Push adds a value to the trailing window. Once the window holds exactly
// len(window) values, Push returns their maximum and true.
func (m *MaxWindowReducer) Push(v float64) (float64, bool) {
	m.values[m.pos] = v
	m.pos = (m.pos + 1) % len(m.values)
	if m.count < len(m.values) {
		m.count++
	}

	if m.count < len(m.values) {
		return 0, false
	}

	max := m.values[0]
	for _, x := range m.values[1:] {
		if x > max {
			max = x
		}
	}
	return max, true
}
