package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	t.Run("independent instances never collide", func(t *testing.T) {
		// Two runs in one process each build their own registry; a shared
		// default registry would panic on the second MustRegister.
		a := NewMetrics()
		b := NewMetrics()
		a.ReportsIngested.Inc()
		assert.Equal(t, 1.0, testutil.ToFloat64(a.ReportsIngested))
		assert.Equal(t, 0.0, testutil.ToFloat64(b.ReportsIngested))
	})

	t.Run("counters gather through the registry", func(t *testing.T) {
		m := NewMetrics()
		m.RecordsInserted.Inc()
		m.RecordsInserted.Inc()
		m.RosterMisses.Inc()

		families, err := m.Registry().Gather()
		require.NoError(t, err)
		assert.Len(t, families, 8)
	})
}

func TestLogSummary(t *testing.T) {
	m := NewMetrics()
	m.ReportsIngested.Inc()
	m.BackfillsApplied.Inc()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m.LogSummary(logger)

	out := buf.String()
	assert.Contains(t, out, "ingestion summary")
	assert.Contains(t, out, "simplex_ingest_reports_ingested_total=1")
	assert.Contains(t, out, "simplex_ingest_backfills_applied_total=1")
}
