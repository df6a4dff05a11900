package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-scripts/shortlist/internal/types"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// FormatFor picks the format from the file extension; anything unknown is CSV
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// Column is one exported column
type Column struct {
	Header string
	Value  func(types.ScrapeRecord) string
}

func fieldColumn(header string, f types.Field) Column {
	return Column{Header: header, Value: func(r types.ScrapeRecord) string { return r.Value(f) }}
}

// Columns returns the fixed column order. extended adds the requirement summaries,
// presence adds the keyword-presence flags.
func Columns(extended, presence bool) []Column {
	cols := []Column{
		{Header: "Course Name", Value: func(r types.ScrapeRecord) string { return r.Name }},
		{Header: "University", Value: func(r types.ScrapeRecord) string { return r.Organization }},
		{Header: "City", Value: func(r types.ScrapeRecord) string { return r.Location }},
		fieldColumn("Tuition/Fees", types.FieldTuition),
		fieldColumn("Teaching Language", types.FieldTeachingLanguage),
		fieldColumn("Deadline", types.FieldDeadline),
	}
	if extended {
		cols = append(cols,
			fieldColumn("Admission Requirements (Summary)", types.FieldRequirements),
			fieldColumn("Language Requirements", types.FieldLanguageScore),
		)
	}
	if presence {
		cols = append(cols,
			fieldColumn("GRE/GMAT Mentioned", types.FieldStandardizedTest),
			fieldColumn("uni-assist/VPD Mentioned", types.FieldEvaluationService),
		)
	}
	return append(cols, Column{Header: "Link", Value: func(r types.ScrapeRecord) string { return r.Link }})
}

// Rows renders records into string rows, header first. Empty values become types.NotAvailable.
func Rows(columns []Column, records []types.ScrapeRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Header
	}
	rows = append(rows, header)

	for _, rec := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			v := c.Value(rec)
			if v == "" {
				v = types.NotAvailable
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows
}

// Exporter writes the final record set to a file
type Exporter struct {
	columns []Column
}

// New creates a new Exporter
func New(columns []Column) *Exporter {
	return &Exporter{columns: columns}
}

// Export serializes records in the format implied by path and writes the file
func (e *Exporter) Export(path string, records []types.ScrapeRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	rows := Rows(e.columns, records)

	switch FormatFor(path) {
	case FormatXLSX:
		return writeXLSX(path, rows)
	case FormatJSON:
		data, err := EncodeJSON(rows)
		if err != nil {
			return err
		}
		return writeFile(path, data)
	default:
		return writeFile(path, EncodeCSV(rows))
	}
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
