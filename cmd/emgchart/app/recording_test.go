package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johannasoldis1/EMG-ANR/internal/export"
)

func writeRecording(t *testing.T, artifact string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "recording.csv")
	require.NoError(t, os.WriteFile(path, []byte(artifact), 0o644))
	return path
}

func TestLoadRecording_RoundTrip(t *testing.T) {
	artifact := export.Serialize(export.Recording{
		Duration:   1.3,
		Times:      []float64{0.05, 0.12, 0.23, 1.05},
		Values:     []float64{1, -2, 3, -4},
		ShortTerm:  []float64{2.5},
		MediumTerm: []float64{1.5},
	})

	rec, err := LoadRecording(writeRecording(t, artifact))
	require.NoError(t, err)

	assert.Equal(t, 1.3, rec.Duration)
	assert.Equal(t, []float64{0.05, 0.12, 0.23, 1.05}, rec.Raw.Times)
	assert.Equal(t, []float64{1, -2, 3, -4}, rec.Raw.Values)

	require.Equal(t, 1, rec.ShortTerm.Len())
	assert.Equal(t, 0.12, rec.ShortTerm.Times[0], "statistic carries the time of its completing row")
	assert.Equal(t, 2.5, rec.ShortTerm.Values[0])

	require.Equal(t, 1, rec.MediumTerm.Len())
	assert.Equal(t, 1.05, rec.MediumTerm.Times[0])

	assert.Zero(t, rec.MaxRMS.Len())
}

func TestLoadRecording_Errors(t *testing.T) {
	tests := []struct {
		name     string
		artifact string
	}{
		{"empty file", ""},
		{"missing header", "Recording Duration (s):,1\n"},
		{"wrong header", "Recording Duration (s):,1\nTime,Value\n"},
		{"bad duration", "Recording Duration (s):,abc\n" + export.Header + "\n"},
		{"no samples", "Recording Duration (s):,1\n" + export.Header + "\n"},
		{"bad value", "Recording Duration (s):,1\n" + export.Header + "\n0.1,oops,,,\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadRecording(writeRecording(t, tc.artifact))
			assert.Error(t, err)
		})
	}
}

func TestLoadRecording_MissingFile(t *testing.T) {
	_, err := LoadRecording(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
