// Package export renders a finished recording into the flat CSV artifact
// used for download and offline analysis.
package export

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DurationPrefix opens the first line of every export artifact.
	DurationPrefix = "Recording Duration (s):"

	// Header is the column header row of the export artifact.
	Header = "Time (s),EMG (Raw Data),0.1s RMS,1s RMS,10s Max RMS"

	shortTermInterval  = 0.1
	mediumTermInterval = 1.0
	maxWindowRows      = 10
)

// Recording carries the raw sample log of one finished session together
// with its derived per-window statistic sequences. Times and Values are
// parallel and index-aligned; the statistic sequences are in emission
// order.
type Recording struct {
	Duration   float64
	Times      []float64
	Values     []float64
	ShortTerm  []float64
	MediumTerm []float64
	MaxRMS     []float64
}

// Serialize renders the recording as CSV text: a duration line, a column
// header line, then one row per recorded sample in chronological order.
//
// The statistic columns are populated on the row that completes the
// corresponding window and left blank everywhere else. Each statistic
// sequence is consumed through a monotonic cursor: the short-term column
// fills on the first row whose time reaches (cursor+1)*0.1s, the
// medium-term column does the same with a 1s interval, and the max column
// fills on every 10th row. Earlier rows are never revisited.
func Serialize(r Recording) string {
	var sb strings.Builder

	sb.WriteString(DurationPrefix)
	sb.WriteByte(',')
	sb.WriteString(formatValue(r.Duration))
	sb.WriteByte('\n')
	sb.WriteString(Header)
	sb.WriteByte('\n')

	var shortIdx, mediumIdx, maxIdx int
	for i, t := range r.Times {
		var shortField, mediumField, maxField string

		if shortIdx < len(r.ShortTerm) && t >= float64(shortIdx+1)*shortTermInterval {
			shortField = formatValue(r.ShortTerm[shortIdx])
			shortIdx++
		}
		if mediumIdx < len(r.MediumTerm) && t >= float64(mediumIdx+1)*mediumTermInterval {
			mediumField = formatValue(r.MediumTerm[mediumIdx])
			mediumIdx++
		}
		if (i+1)%maxWindowRows == 0 && maxIdx < len(r.MaxRMS) {
			maxField = formatValue(r.MaxRMS[maxIdx])
			maxIdx++
		}

		fmt.Fprintf(&sb, "%s,%s,%s,%s,%s\n",
			formatValue(t), formatValue(r.Values[i]), shortField, mediumField, maxField)
	}

	return sb.String()
}

// formatValue renders a float with the shortest representation that
// round-trips, keeping rows compact and parseable.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
