// Package sheet supplies form rows to the ingester. The transport behind
// the rows is deliberately out of scope; the only contract is row-oriented:
// first row header, every following row one report, positional text fields.
package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Source yields a form export as rows. The first row is the header.
type Source interface {
	Fetch(ctx context.Context) ([][]string, error)
}

// CSVSource reads a form export from a local CSV file, the shape produced
// by downloading the response sheet as CSV.
type CSVSource struct {
	path string
}

// NewCSVSource creates a source over the given file.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Fetch reads the whole export. Rows may be ragged: trailing rating columns
// are sometimes dropped by the exporter when empty, and the ingester decides
// what to do about that per row.
func (s *CSVSource) Fetch(_ context.Context) ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open form export: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read form export %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("form export %s is empty", s.path)
	}

	// Spreadsheet exports often lead with a UTF-8 BOM.
	rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")
	return rows, nil
}

// StaticSource serves rows from memory. Handy for tests and for callers
// that already fetched the export by other means.
type StaticSource struct {
	Rows [][]string
}

func (s *StaticSource) Fetch(_ context.Context) ([][]string, error) {
	if len(s.Rows) == 0 {
		return nil, fmt.Errorf("static source has no rows")
	}
	return s.Rows, nil
}
