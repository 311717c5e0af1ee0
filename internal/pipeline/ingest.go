// Package pipeline drives the two-pass ingestion of form reports into the
// reception database.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m-martini/simplex-reports/internal/domain"
	"github.com/m-martini/simplex-reports/internal/observability"
	"github.com/m-martini/simplex-reports/internal/roster"
	"github.com/m-martini/simplex-reports/internal/sheet"
)

// Phase is where the ingestor currently is. The two passes are strictly
// sequential: the backfill pass assumes every record from the insert pass
// already exists, so they are phases of one Run, never separately invokable.
type Phase int

const (
	PhaseInsert Phase = iota
	PhaseBackfill
	PhaseDone
)

// RecordStore is the persistence surface ingestion writes through.
type RecordStore interface {
	InsertRecord(ctx context.Context, rec domain.ReceptionRecord) error
	UpdateTransmitDetails(ctx context.Context, call, netDate string, freqMHz float64, power, height string, lat, lon *float64) (int64, error)
}

// Ingestor runs the two-pass ingestion: pass one inserts one reception
// record per rated station per report; pass two backfills transmitter
// power, height, and plausibility-checked location once every report is in.
//
// Ingestion is best-effort per row: a dirty report or a failed write is
// logged and skipped, never fatal for the batch. Structurally broken input
// (no rating marker in the header) is fatal.
type Ingestor struct {
	source          sheet.Source
	roster          *roster.Roster
	store           RecordStore
	logger          *slog.Logger
	metrics         *observability.Metrics
	thresholdMeters float64

	phase Phase
}

// New creates an Ingestor. thresholdMeters tunes the portable-station
// plausibility check (see domain.ResolveTransmitLocation).
func New(source sheet.Source, r *roster.Roster, store RecordStore, logger *slog.Logger, metrics *observability.Metrics, thresholdMeters float64) *Ingestor {
	return &Ingestor{
		source:          source,
		roster:          r,
		store:           store,
		logger:          logger,
		metrics:         metrics,
		thresholdMeters: thresholdMeters,
		phase:           PhaseInsert,
	}
}

// Phase reports where the ingestor is.
func (in *Ingestor) Phase() Phase {
	return in.phase
}

// Run executes both passes. It returns an error only for structural
// failures: an unreadable source, an empty export, or a header without the
// bracketed rating-column marker.
func (in *Ingestor) Run(ctx context.Context) error {
	rows, err := in.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch form rows: %w", err)
	}
	header := rows[0]
	reports := rows[1:]

	// The rating marker lives in the shared header; without it no report in
	// the export can be interpreted.
	if _, err := domain.RatingColumnIndex(header); err != nil {
		return fmt.Errorf("form header: %w", err)
	}

	in.logger.Info("ingestion starting", "reports", len(reports), "stations", in.roster.Len())

	cleaned := in.insertPass(ctx, header, reports)
	in.phase = PhaseBackfill
	in.backfillPass(ctx, cleaned)
	in.phase = PhaseDone

	in.logger.Info("ingestion complete")
	return nil
}

// insertPass parses, cleans, and stores every report, returning the cleaned
// reports in original input order for the backfill pass.
func (in *Ingestor) insertPass(ctx context.Context, header []string, reports [][]string) []domain.RawReport {
	cleaned := make([]domain.RawReport, 0, len(reports))

	for i, row := range reports {
		rep, err := domain.ParseReportRow(header, row)
		if err != nil {
			in.logger.Warn("skipping uninterpretable report row", "row", i+2, "error", err)
			in.metrics.MalformedReports.Inc()
			continue
		}

		domain.CleanReport(&rep)
		in.learnStation(ctx, &rep)
		in.insertReportRecords(ctx, &rep)

		cleaned = append(cleaned, rep)
		in.metrics.ReportsIngested.Inc()
	}
	return cleaned
}

// learnStation adds a self-located but unrostered reporting station to the
// roster, so later lookups (including this report's own) resolve.
func (in *Ingestor) learnStation(ctx context.Context, rep *domain.RawReport) {
	if _, ok := in.roster.Lookup(rep.Call); ok {
		return
	}
	lat, okLat := domain.ParseCoordinate(rep.Latitude)
	lon, okLon := domain.ParseCoordinate(rep.Longitude)
	if !okLat || !okLon {
		return
	}
	if err := in.roster.Upsert(ctx, rep.Call, lat, lon); err != nil {
		in.logger.Warn("could not add station from report", "call", rep.Call, "error", err)
		return
	}
	in.logger.Info("station added to roster from self-reported location",
		"call", rep.Call, "lat", lat, "lon", lon)
}

// insertReportRecords writes one reception record per rated station. A
// failed insert is logged and skipped; the rest of the report still lands.
func (in *Ingestor) insertReportRecords(ctx context.Context, rep *domain.RawReport) {
	id := domain.BuildRecordID(rep.NetDate, rep.Call, rep.Frequency)
	freq := domain.ParseFrequencyMHz(rep.Frequency)
	rxLat, rxLon := domain.ResolveReceiveLocation(rep, in.roster, in.logger)

	for _, rating := range rep.Ratings {
		txLat, txLon := domain.ResolveTransmitCoords(rating.Call, in.roster)
		if txLat == nil {
			in.logger.Warn("rated station missing from roster, null transmit location",
				"call", rating.Call, "report", id)
			in.metrics.RosterMisses.Inc()
		}

		rec := domain.ReceptionRecord{
			ID:            id,
			SubmittedAt:   rep.SubmittedAt,
			ReportingCall: rep.Call,
			NetDate:       rep.NetDate,
			FrequencyMHz:  freq,
			TransmitCall:  rating.Call,
			TransmitLat:   txLat,
			TransmitLon:   txLon,
			ReceiveHeight: rep.Height,
			ReceiveLat:    rxLat,
			ReceiveLon:    rxLon,
			Quality:       rating.Quality,
			IngestedAt:    domain.Now(),
		}
		if err := in.store.InsertRecord(ctx, rec); err != nil {
			in.logger.Error("record insert failed, continuing",
				"id", id, "transmit_call", rating.Call, "error", err)
			in.metrics.PersistenceErrors.Inc()
			continue
		}
		in.metrics.RecordsInserted.Inc()
	}
}

// backfillPass resolves each reporting station's plausibility-checked
// transmit location and stamps power, height, and that location onto every
// record where the station was the rated transmitter for the same net.
func (in *Ingestor) backfillPass(ctx context.Context, reports []domain.RawReport) {
	for i := range reports {
		rep := &reports[i]

		home, ok := in.roster.Lookup(rep.Call)
		if !ok {
			in.logger.Warn("backfill skipped, reporting call not in roster", "call", rep.Call)
			in.metrics.BackfillsSkipped.Inc()
			continue
		}

		lat, okLat := domain.ParseCoordinate(rep.Latitude)
		lon, okLon := domain.ParseCoordinate(rep.Longitude)
		reported := domain.Geo{Lat: lat, Lon: lon}
		loc, source := domain.ResolveTransmitLocation(reported, okLat && okLon, home, in.thresholdMeters)
		if source == domain.SourceReported {
			in.logger.Info("station treated as portable for this net",
				"call", rep.Call, "net_date", rep.NetDate, "lat", loc.Lat, "lon", loc.Lon)
			in.metrics.PortableStations.Inc()
		}

		freq := domain.ParseFrequencyMHz(rep.Frequency)
		n, err := in.store.UpdateTransmitDetails(ctx, rep.Call, rep.NetDate, freq,
			rep.Power, rep.Height, &loc.Lat, &loc.Lon)
		if err != nil {
			in.logger.Error("backfill update failed, continuing", "call", rep.Call, "error", err)
			in.metrics.PersistenceErrors.Inc()
			continue
		}
		in.logger.Debug("backfilled transmit details",
			"call", rep.Call, "net_date", rep.NetDate, "records", n, "location_source", source)
		in.metrics.BackfillsApplied.Inc()
	}
}
