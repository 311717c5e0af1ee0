package observability

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Metrics counts what happened during an ingestion run. The counters live on
// a private registry so repeated runs in one process (and tests) never trip
// duplicate-registration panics.
type Metrics struct {
	ReportsIngested   prometheus.Counter
	RecordsInserted   prometheus.Counter
	MalformedReports  prometheus.Counter
	PersistenceErrors prometheus.Counter
	RosterMisses      prometheus.Counter
	BackfillsApplied  prometheus.Counter
	BackfillsSkipped  prometheus.Counter
	PortableStations  prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates and registers all ingestion metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReportsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "simplex_ingest",
			Name:      "reports_ingested_total",
			Help:      "Form reports processed by the insert pass.",
		}),
		RecordsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "simplex_ingest",
			Name:      "records_inserted_total",
			Help:      "Reception records written to the database.",
		}),
		MalformedReports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "simplex_ingest",
			Name:      "malformed_reports_total",
			Help:      "Reports skipped because their structure could not be interpreted.",
		}),
		PersistenceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "simplex_ingest",
			Name:      "persistence_errors_total",
			Help:      "Individual writes that failed and were skipped.",
		}),
		RosterMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "simplex_ingest",
			Name:      "roster_misses_total",
			Help:      "Lookups of call signs absent from the station roster.",
		}),
		BackfillsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "simplex_ingest",
			Name:      "backfills_applied_total",
			Help:      "Reports whose transmit details were backfilled in pass two.",
		}),
		BackfillsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "simplex_ingest",
			Name:      "backfills_skipped_total",
			Help:      "Backfills skipped because the reporting call is not rostered.",
		}),
		PortableStations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "simplex_ingest",
			Name:      "portable_stations_total",
			Help:      "Reports resolved to a self-reported (portable) transmit location.",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.ReportsIngested,
		m.RecordsInserted,
		m.MalformedReports,
		m.PersistenceErrors,
		m.RosterMisses,
		m.BackfillsApplied,
		m.BackfillsSkipped,
		m.PortableStations,
	)
	return m
}

// Registry exposes the private registry for the optional /metrics listener.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// LogSummary writes every counter's final value through the logger, giving
// the operator an end-of-run accounting without needing a scrape.
func (m *Metrics) LogSummary(logger *slog.Logger) {
	families, err := m.registry.Gather()
	if err != nil {
		logger.Warn("gather metrics for summary", "error", err)
		return
	}

	attrs := make([]any, 0, len(families)*2)
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		var total float64
		for _, pm := range mf.GetMetric() {
			total += pm.GetCounter().GetValue()
		}
		attrs = append(attrs, mf.GetName(), total)
	}
	logger.Info("ingestion summary", attrs...)
}
