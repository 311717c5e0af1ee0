// Command checkform verifies a form export before ingestion: header shape,
// per-row column counts, field sanity, and (optionally) that every rated
// call sign resolves against the station roster. It never touches the
// database, so the operator can run it on a fresh download without risk.
//
// Usage:
//
//	go run ./cmd/checkform -form responses.csv
//	go run ./cmd/checkform -form responses.csv -roster CallSignLocations.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/m-martini/simplex-reports/internal/domain"
	"github.com/m-martini/simplex-reports/internal/roster"
	"github.com/m-martini/simplex-reports/internal/sheet"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	formPath := flag.String("form", "", "form export CSV to check")
	rosterPath := flag.String("roster", "", "station roster for cross-checking rated calls (optional)")
	flag.Parse()

	if *formPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*formPath, *rosterPath); code != 0 {
		os.Exit(code)
	}
}

func run(formPath, rosterPath string) int {
	fmt.Println("=== Form Export Validation ===")
	fmt.Println()

	rows, err := sheet.NewCSVSource(formPath).Fetch(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	header := rows[0]
	reports := rows[1:]

	var r *roster.Roster
	if rosterPath != "" {
		stations, err := roster.LoadStations(rosterPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load roster: %v\n", err)
			return 1
		}
		r = roster.New(stations, nil)
	}

	phases := []*phase{
		checkHeader(header),
		checkRowShape(header, reports),
		checkFields(header, reports),
	}
	if r != nil {
		phases = append(phases, checkRosterCoverage(header, reports, r))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d reports, %d header columns\n", len(reports), len(header))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nForm export looks ingestable.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// checkHeader verifies the header carries the bracketed rating-column
// marker and enough fixed columns before it.
func checkHeader(header []string) *phase {
	p := &phase{name: "header structure"}

	idx, err := domain.RatingColumnIndex(header)
	if err != nil {
		p.errorf("no rating-column marker (a header cell containing both '[' and ']') found")
		return p
	}
	if idx < domain.NumFixedColumns {
		p.errorf("rating columns start at column %d, before the %d fixed report fields",
			idx+1, domain.NumFixedColumns)
	}
	for i, cell := range header[idx:] {
		if strings.TrimSpace(cell) == "" {
			p.errorf("rating column %d has an empty header cell", idx+i+1)
		}
	}
	return p
}

// checkRowShape flags rows whose column count does not match the header.
// The ingester rejects these outright, so they surface here first.
func checkRowShape(header []string, reports [][]string) *phase {
	p := &phase{name: "row column counts"}
	for i, row := range reports {
		if len(row) != len(header) {
			p.errorf("row %d has %d columns, header has %d", i+2, len(row), len(header))
		}
	}
	return p
}

// checkFields dry-runs the parse-and-clean path over every row and sanity
// checks the fields ingestion depends on.
func checkFields(header []string, reports [][]string) *phase {
	p := &phase{name: "field sanity"}
	for i, row := range reports {
		rep, err := domain.ParseReportRow(header, row)
		if err != nil {
			// Already reported by the row-shape phase.
			continue
		}
		domain.CleanReport(&rep)
		line := i + 2

		if rep.Call == "" {
			p.errorf("row %d: empty reporting call sign", line)
		}
		if strings.Count(rep.NetDate, "/") != 2 {
			p.errorf("row %d: net date %q is not M/D/YYYY", line, rep.NetDate)
		}
		if f := domain.ParseFrequencyMHz(rep.Frequency); f == 0 {
			p.errorf("row %d: frequency %q does not parse", line, rep.Frequency)
		}
		if rep.Latitude != "" {
			if _, ok := domain.ParseCoordinate(rep.Latitude); !ok {
				p.errorf("row %d: latitude %q does not parse", line, rep.Latitude)
			}
		}
		if rep.Longitude != "" {
			if _, ok := domain.ParseCoordinate(rep.Longitude); !ok {
				p.errorf("row %d: longitude %q does not parse", line, rep.Longitude)
			}
		}
		for _, rating := range rep.Ratings {
			switch rating.Quality {
			case "", domain.QualityNotApplicable, domain.QualityGoodReadable, domain.QualityWeakReadable, domain.QualityNoCopy:
			default:
				p.errorf("row %d: unknown quality %q for %s", line, rating.Quality, rating.Call)
			}
		}
	}
	return p
}

// checkRosterCoverage reports rated call signs the roster cannot place.
// These ingest with null transmit locations, which usually means a stale
// roster file rather than a bad form.
func checkRosterCoverage(header []string, reports [][]string, r *roster.Roster) *phase {
	p := &phase{name: "roster coverage"}
	missing := make(map[string]bool)
	for _, row := range reports {
		rep, err := domain.ParseReportRow(header, row)
		if err != nil {
			continue
		}
		domain.CleanReport(&rep)
		for _, rating := range rep.Ratings {
			if _, ok := r.Lookup(rating.Call); !ok && !missing[rating.Call] {
				missing[rating.Call] = true
				p.errorf("rated call %s is not in the roster", rating.Call)
			}
		}
	}
	return p
}
