// Command ingest rebuilds the reception report database from a station
// roster file and a form-export CSV. It runs the full two-pass ingestion:
// pass one inserts one reception record per rated station per report, pass
// two backfills transmitter power, height, and plausibility-checked
// location once every report is known.
//
// Usage:
//
//	go run ./cmd/ingest -config simplex.yaml
//	go run ./cmd/ingest -roster CallSignLocations.txt -form responses.csv -db 2mreports.db
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-martini/simplex-reports/internal/config"
	"github.com/m-martini/simplex-reports/internal/observability"
	"github.com/m-martini/simplex-reports/internal/pipeline"
	"github.com/m-martini/simplex-reports/internal/roster"
	"github.com/m-martini/simplex-reports/internal/sheet"
	"github.com/m-martini/simplex-reports/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ingest:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file (optional)")
	rosterPath := flag.String("roster", "", "station roster file (overrides config)")
	formPath := flag.String("form", "", "form export CSV (overrides config)")
	dbPath := flag.String("db", "", "report database path (overrides config)")
	keep := flag.Bool("keep-db", false, "ingest into the existing database instead of rebuilding it")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *rosterPath != "" {
		cfg.RosterPath = *rosterPath
	}
	if *formPath != "" {
		cfg.FormExportPath = *formPath
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}
	if cfg.RosterPath == "" || cfg.FormExportPath == "" {
		return errors.New("a roster file and a form export are required (flags or config)")
	}

	logger := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One-shot batch semantics: by default each run rebuilds the database
	// from scratch, the way the operator re-runs after a failure.
	if !*keep {
		if err := os.Remove(cfg.DatabasePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove old database: %w", err)
		}
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	stations, err := roster.LoadStations(cfg.RosterPath)
	if err != nil {
		return err
	}
	r := roster.New(stations, st)
	if err := st.ReplaceStations(ctx, r.Stations()); err != nil {
		return fmt.Errorf("seed stations: %w", err)
	}
	logger.Info("roster loaded", "path", cfg.RosterPath, "stations", r.Len())

	if cfg.MetricsAddr != "" {
		srv := observability.NewServer(cfg.MetricsAddr, metrics, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown error", "error", err)
			}
		}()
	}

	source := sheet.NewCSVSource(cfg.FormExportPath)
	ingestor := pipeline.New(source, r, st, logger, metrics, cfg.PortableThresholdMeters)
	if err := ingestor.Run(ctx); err != nil {
		return err
	}

	total, err := st.CountRecords(ctx)
	if err != nil {
		return err
	}
	logger.Info("database ready", "path", cfg.DatabasePath, "records", total)
	metrics.LogSummary(logger)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
