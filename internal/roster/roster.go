// Package roster loads and serves the reference list of known stations and
// their fixed home locations.
package roster

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/m-martini/simplex-reports/internal/domain"
)

// StationWriter persists roster changes as they happen. Upserts write
// through immediately; volumes are far too small to batch.
type StationWriter interface {
	UpsertStation(ctx context.Context, st domain.Station) error
}

// Roster is the in-memory station list, keyed by normalized call sign.
type Roster struct {
	stations map[string]domain.Station
	order    []string // call signs in load/insert order
	writer   StationWriter
}

// New builds a roster from a station list. writer may be nil for read-only
// use; Upsert then changes only the in-memory copy.
func New(stations []domain.Station, writer StationWriter) *Roster {
	r := &Roster{
		stations: make(map[string]domain.Station, len(stations)),
		writer:   writer,
	}
	for _, st := range stations {
		key := normalizeCall(st.Call)
		if _, seen := r.stations[key]; !seen {
			r.order = append(r.order, key)
		}
		st.Call = key
		r.stations[key] = st
	}
	return r
}

// LoadStations parses a roster file: one header line (possibly two), then
// one "call,latitude,longitude" line per station. Non-printable control
// characters are stripped from every line before splitting. A data line
// whose coordinates are not numeric is a parse error naming the line.
func LoadStations(path string) ([]domain.Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	var stations []domain.Station
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := stripControl(scanner.Text())
		if strings.TrimSpace(line) == "" {
			continue
		}
		if lineNum == 1 {
			continue // header
		}

		st, err := parseStationLine(line)
		if err != nil {
			// Some exports carry a second header line.
			if lineNum == 2 && len(stations) == 0 {
				continue
			}
			return nil, fmt.Errorf("roster line %d: %w", lineNum, err)
		}
		stations = append(stations, st)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return stations, nil
}

func parseStationLine(line string) (domain.Station, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return domain.Station{}, fmt.Errorf("want call,latitude,longitude, got %d fields", len(fields))
	}

	call := normalizeCall(fields[0])
	if call == "" {
		return domain.Station{}, fmt.Errorf("empty call sign")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return domain.Station{}, fmt.Errorf("latitude %q is not numeric", fields[1])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return domain.Station{}, fmt.Errorf("longitude %q is not numeric", fields[2])
	}
	if err := validateCoords(lat, lon); err != nil {
		return domain.Station{}, err
	}
	return domain.Station{Call: call, Lat: lat, Lon: lon}, nil
}

// Lookup finds a station by call sign, exact match after normalization.
func (r *Roster) Lookup(call string) (domain.Station, bool) {
	st, ok := r.stations[normalizeCall(call)]
	return st, ok
}

// Upsert inserts a new station or updates the coordinates of an existing
// one, writing through to persistent storage when a writer is attached.
func (r *Roster) Upsert(ctx context.Context, call string, lat, lon float64) error {
	key := normalizeCall(call)
	if key == "" {
		return fmt.Errorf("upsert station: empty call sign")
	}
	if err := validateCoords(lat, lon); err != nil {
		return fmt.Errorf("upsert station %s: %w", key, err)
	}

	if _, seen := r.stations[key]; !seen {
		r.order = append(r.order, key)
	}
	st := domain.Station{Call: key, Lat: lat, Lon: lon}
	r.stations[key] = st

	if r.writer == nil {
		return nil
	}
	if err := r.writer.UpsertStation(ctx, st); err != nil {
		return fmt.Errorf("persist station %s: %w", key, err)
	}
	return nil
}

// Stations returns all entries in load/insert order.
func (r *Roster) Stations() []domain.Station {
	out := make([]domain.Station, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.stations[key])
	}
	return out
}

// Len reports the number of known stations.
func (r *Roster) Len() int { return len(r.stations) }

func normalizeCall(call string) string {
	return strings.ToUpper(strings.TrimSpace(call))
}

func validateCoords(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range", lon)
	}
	return nil
}

// stripControl drops non-printable control characters, which sneak into
// exports as stray carriage returns and form feeds.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
