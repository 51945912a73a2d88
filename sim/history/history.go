// Package history keeps per-day population counts and writes them as CSV.
package history

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/inference-sim/evogame/sim"
)

// DayStats holds the population counts at the end of one day.
type DayStats struct {
	Day        int `csv:"day" json:"day"`
	Hawks      int `csv:"hawks" json:"hawks"`
	Doves      int `csv:"doves" json:"doves"`
	Grudges    int `csv:"grudges" json:"grudges"`
	Detectives int `csv:"detectives" json:"detectives"`
	Population int `csv:"population" json:"population"`
}

// FromSnapshot extracts the counters of a snapshot.
func FromSnapshot(s sim.Snapshot) DayStats {
	return DayStats{
		Day:        s.Day,
		Hawks:      s.Hawks,
		Doves:      s.Doves,
		Grudges:    s.Grudges,
		Detectives: s.Detectives,
		Population: s.Total(),
	}
}

// Writer streams DayStats rows to CSV, writing the header with the first row.
type Writer struct {
	out           io.Writer
	headerWritten bool
}

// NewWriter creates a Writer on out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write appends one row.
func (w *Writer) Write(stats DayStats) error {
	records := []DayStats{stats}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.out); err != nil {
			return fmt.Errorf("writing history: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.out); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// WriteCSV writes all rows with a header.
func WriteCSV(out io.Writer, rows []DayStats) error {
	if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// ReadCSV parses rows written by Writer or WriteCSV.
func ReadCSV(in io.Reader) ([]DayStats, error) {
	var rows []DayStats
	if err := gocsv.Unmarshal(in, &rows); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return rows, nil
}
