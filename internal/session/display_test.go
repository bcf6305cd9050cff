package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayBuffer_TrimsOldestOnOverflow(t *testing.T) {
	b, err := NewDisplayBuffer(5)
	require.NoError(t, err)

	b.Append([]float64{1, 2, 3, 4})
	assert.Equal(t, []float64{1, 2, 3, 4}, b.Values())

	b.Append([]float64{5, 6, 7})
	assert.Equal(t, []float64{3, 4, 5, 6, 7}, b.Values(), "oldest samples trimmed from the front")
	assert.Equal(t, 5, b.Size())
}

func TestDisplayBuffer_BatchLargerThanCapacity(t *testing.T) {
	b, err := NewDisplayBuffer(3)
	require.NoError(t, err)

	b.Append([]float64{1, 2, 3, 4, 5, 6, 7})
	assert.Equal(t, []float64{5, 6, 7}, b.Values())
}

func TestDisplayBuffer_Clear(t *testing.T) {
	b, err := NewDisplayBuffer(4)
	require.NoError(t, err)

	b.Append([]float64{1, 2})
	b.Clear()

	assert.Zero(t, b.Size())
	assert.Nil(t, b.Values())

	b.Append([]float64{9})
	assert.Equal(t, []float64{9}, b.Values())
}

func TestDisplayBuffer_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := NewDisplayBuffer(capacity)
		assert.Error(t, err, "capacity %d", capacity)
	}
}
