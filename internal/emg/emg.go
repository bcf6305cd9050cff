// Package emg acquires raw electromyography amplitude samples from an
// external capture process and delivers them as ordered batches.
package emg

// Batch is an ordered group of amplitude samples captured together.
// Samples always arrive in batches, never individually.
type Batch []float64
