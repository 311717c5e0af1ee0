package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Structural problems with a form export. Dirty field values are tolerated;
// these errors are reserved for rows and headers the ingester cannot safely
// interpret at all.
var (
	// ErrNoRatingColumns means no header cell carries the bracket marker that
	// starts the rating-column region.
	ErrNoRatingColumns = errors.New("no bracketed rating columns in header")

	// ErrColumnMismatch means a report row and the header disagree on column
	// count. Truncating silently would misalign ratings with call signs, so
	// the row is rejected instead.
	ErrColumnMismatch = errors.New("report column count does not match header")

	// ErrShortRow means a report row ends before the fixed fields do.
	ErrShortRow = errors.New("report row shorter than fixed field region")
)

// Fixed column positions in a form export row. Everything at
// RatingColumnIndex and beyond is a per-station rating.
const (
	colSubmittedAt = iota
	colCall
	colNetDate
	colFrequency
	colPower
	colHeight
	colLatitude
	colLongitude
	colComment

	// NumFixedColumns is how many fixed report fields precede the rating
	// region.
	NumFixedColumns
)

// RatingColumnIndex returns the index of the first rating column: the first
// header cell containing both '[' and ']'. Returns ErrNoRatingColumns when
// the marker is absent, which makes the whole export uningestible.
func RatingColumnIndex(header []string) (int, error) {
	for i, cell := range header {
		if strings.Contains(cell, "[") && strings.Contains(cell, "]") {
			return i, nil
		}
	}
	return 0, ErrNoRatingColumns
}

// ExtractRatings pairs each rating column of a report row with its
// bracket-stripped call sign, preserving column order. The returned index is
// the first rating column.
func ExtractRatings(header, row []string) ([]Rating, int, error) {
	idx, err := RatingColumnIndex(header)
	if err != nil {
		return nil, 0, err
	}
	if len(row) != len(header) {
		return nil, idx, fmt.Errorf("%w: header has %d columns, row has %d", ErrColumnMismatch, len(header), len(row))
	}

	ratings := make([]Rating, 0, len(header)-idx)
	for i := idx; i < len(header); i++ {
		call := strings.NewReplacer(" ", "", "[", "", "]", "").Replace(header[i])
		ratings = append(ratings, Rating{Call: call, Quality: row[i]})
	}
	return ratings, idx, nil
}

// ParseReportRow converts one positional form row into a named RawReport.
// This is the only place column positions are interpreted; everything
// downstream works with named fields.
func ParseReportRow(header, row []string) (RawReport, error) {
	ratings, idx, err := ExtractRatings(header, row)
	if err != nil {
		return RawReport{}, err
	}
	if len(row) < NumFixedColumns || idx < NumFixedColumns {
		return RawReport{}, fmt.Errorf("%w: need %d fixed columns, rating region starts at %d", ErrShortRow, NumFixedColumns, idx)
	}

	return RawReport{
		SubmittedAt: row[colSubmittedAt],
		Call:        row[colCall],
		NetDate:     row[colNetDate],
		Frequency:   row[colFrequency],
		Power:       row[colPower],
		Height:      row[colHeight],
		Latitude:    row[colLatitude],
		Longitude:   row[colLongitude],
		Comment:     row[colComment],
		Ratings:     ratings,
	}, nil
}

// ParseFrequencyMHz parses a frequency field as float64 MHz, returning 0 for
// blank or unparseable text.
func ParseFrequencyMHz(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseCoordinate parses a cleaned latitude or longitude field. The second
// return is false for blank or unparseable text.
func ParseCoordinate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
