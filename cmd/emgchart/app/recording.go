package app

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/johannasoldis1/EMG-ANR/internal/export"
)

// Series is one plottable sequence of (time, value) points.
type Series struct {
	Times  []float64
	Values []float64
}

func (s *Series) append(t, v float64) {
	s.Times = append(s.Times, t)
	s.Values = append(s.Values, v)
}

// Len returns the number of points in the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Recording is an exported recording parsed back into plottable series.
// The statistic series carry the row time at which each window completed.
type Recording struct {
	Duration   float64
	Raw        Series
	ShortTerm  Series
	MediumTerm Series
	MaxRMS     Series
}

// LoadRecording parses the CSV export artifact at path. Statistic fields
// are blank on rows where no window completed; those are skipped.
func LoadRecording(path string) (rec *Recording, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading recording: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("recording has %d lines, expected a duration line and a header line", len(records))
	}

	if len(records[0]) != 2 || records[0][0] != export.DurationPrefix {
		return nil, fmt.Errorf("unexpected duration line: %q", strings.Join(records[0], ","))
	}
	if strings.Join(records[1], ",") != export.Header {
		return nil, fmt.Errorf("unexpected header line: %q", strings.Join(records[1], ","))
	}

	rec = &Recording{}
	if rec.Duration, err = strconv.ParseFloat(records[0][1], 64); err != nil {
		return nil, fmt.Errorf("parsing recording duration: %w", err)
	}

	for i, row := range records[2:] {
		if len(row) != 5 {
			return nil, fmt.Errorf("row %d has %d fields, expected 5", i+1, len(row))
		}

		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing time on row %d: %w", i+1, err)
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing value on row %d: %w", i+1, err)
		}
		rec.Raw.append(t, v)

		for fieldIdx, series := range map[int]*Series{2: &rec.ShortTerm, 3: &rec.MediumTerm, 4: &rec.MaxRMS} {
			if row[fieldIdx] == "" {
				continue
			}
			sv, err := strconv.ParseFloat(row[fieldIdx], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing statistic field %d on row %d: %w", fieldIdx, i+1, err)
			}
			series.append(t, sv)
		}
	}

	if rec.Raw.Len() == 0 {
		return nil, fmt.Errorf("recording contains no samples")
	}

	return rec, nil
}
