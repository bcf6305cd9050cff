// Package stats implements the streaming window statistics behind a live
// EMG recording: root-mean-square aggregation over fixed time windows and
// a rolling maximum over completed windows.
package stats

import "math"

// RMS returns the root-mean-square of the signal.
// An empty signal has an RMS of 0.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}
