// Command report generates the reception map projections from an already
// ingested database: one JSON file per station per frequency aggregated over
// every net, one per station per individual net, and an index page linking
// them all. It only reads the database; re-running it is always safe.
//
// Usage:
//
//	go run ./cmd/report -config simplex.yaml
//	go run ./cmd/report -db 2mreports.db -out public
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-martini/simplex-reports/internal/config"
	"github.com/m-martini/simplex-reports/internal/domain"
	"github.com/m-martini/simplex-reports/internal/observability"
	"github.com/m-martini/simplex-reports/internal/render"
	"github.com/m-martini/simplex-reports/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "report:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file (optional)")
	dbPath := flag.String("db", "", "report database path (overrides config)")
	outDir := flag.String("out", "", "output directory (overrides config)")
	scale := flag.Float64("scale", render.DefaultScale, "plot radius per quality point, in projected meters")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}
	if *outDir != "" {
		cfg.ReportDir = *outDir
	}

	logger := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	ctx := context.Background()

	if _, err := os.Stat(cfg.DatabasePath); err != nil {
		return fmt.Errorf("report database %s: %w (run ingest first)", cfg.DatabasePath, err)
	}
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	stations, err := st.Stations(ctx)
	if err != nil {
		return err
	}
	if len(stations) == 0 {
		return fmt.Errorf("no stations in %s", cfg.DatabasePath)
	}
	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		return fmt.Errorf("ensure report dir: %w", err)
	}

	var entries []render.IndexEntry
	for _, freq := range cfg.Frequencies {
		netDates, err := st.NetDates(ctx, freq)
		if err != nil {
			return err
		}
		if len(netDates) == 0 {
			logger.Info("no records for frequency, skipping", "frequency_mhz", freq)
			continue
		}

		for _, station := range stations {
			records, err := st.ReceptionByTransmitter(ctx, station.Call, freq, "")
			if err != nil {
				return err
			}

			// Aggregate map over every net on this frequency.
			entry, err := writeMap(cfg.ReportDir, station, freq, "", records, *scale)
			if err != nil {
				return err
			}
			entries = append(entries, entry)

			// One map per net. A station that missed a net still gets a map
			// with no reception points; the index page explains that.
			byNet := groupByNetDate(records)
			for _, netDate := range netDates {
				entry, err := writeMap(cfg.ReportDir, station, freq, netDate, byNet[netDate], *scale)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
			}
		}
		logger.Info("maps generated", "frequency_mhz", freq, "nets", len(netDates), "stations", len(stations))
	}

	indexPath := filepath.Join(cfg.ReportDir, "index.html")
	f, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("create index page: %w", err)
	}
	defer f.Close()
	if err := render.WriteIndex(f, entries); err != nil {
		return fmt.Errorf("render index page: %w", err)
	}

	logger.Info("report complete", "dir", cfg.ReportDir, "files", len(entries)+1)
	return nil
}

// writeMap builds and writes one station map projection, returning its index
// entry.
func writeMap(dir string, station domain.Station, freq float64, netDate string, records []domain.ReceptionRecord, scale float64) (render.IndexEntry, error) {
	sm := render.BuildStationMap(station, freq, netDate, records, scale)
	name := render.ProjectionFileName(station.Call, freq, netDate)

	data, err := json.MarshalIndent(sm, "", "  ")
	if err != nil {
		return render.IndexEntry{}, fmt.Errorf("encode map for %s: %w", station.Call, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return render.IndexEntry{}, fmt.Errorf("write map file %s: %w", name, err)
	}
	return render.IndexEntry{
		File:         name,
		TransmitCall: station.Call,
		FrequencyMHz: freq,
		NetDate:      netDate,
	}, nil
}

func groupByNetDate(records []domain.ReceptionRecord) map[string][]domain.ReceptionRecord {
	out := make(map[string][]domain.ReceptionRecord)
	for _, rec := range records {
		out[rec.NetDate] = append(out[rec.NetDate], rec)
	}
	return out
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
