package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// ScoreRow is one rendered line of a score report.
type ScoreRow struct {
	Label      string
	Seeking    int
	Avoiding   int
	Total      int
	Percentage float64
}

// Report is the fixed five-column score table: one row per sensory domain
// in report order, plus an overall roll-up row rendered last.
type Report struct {
	Title   string
	Rows    []ScoreRow
	Overall ScoreRow
}

var columns = []string{"Domain", "Seeking", "Avoiding", "Total", "Percentage"}

func (r ScoreRow) record() []string {
	return []string{
		r.Label,
		strconv.Itoa(r.Seeking),
		strconv.Itoa(r.Avoiding),
		strconv.Itoa(r.Total),
		fmt.Sprintf("%.1f", r.Percentage),
	}
}

// CSVExporter renders score reports into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the report.
func (e *CSVExporter) Render(report Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range report.Rows {
		if err := writer.Write(row.record()); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	if err := writer.Write(report.Overall.record()); err != nil {
		return nil, fmt.Errorf("write csv overall row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
