package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simplex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "reports.db", cfg.DatabasePath)
	assert.Equal(t, "public", cfg.ReportDir)
	assert.Equal(t, []float64{146.58, 446.25}, cfg.Frequencies)
	assert.Equal(t, 100.0, cfg.PortableThresholdMeters)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad(t *testing.T) {
	t.Run("values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
database_path: 2mreports.db
roster_path: CallSignLocations.txt
form_export_path: responses.csv
frequencies: [146.58]
portable_threshold_meters: 250
logging:
  level: debug
  format: json
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "2mreports.db", cfg.DatabasePath)
		assert.Equal(t, "CallSignLocations.txt", cfg.RosterPath)
		assert.Equal(t, []float64{146.58}, cfg.Frequencies)
		assert.Equal(t, 250.0, cfg.PortableThresholdMeters)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("unset fields keep defaults", func(t *testing.T) {
		path := writeConfig(t, "roster_path: CallSignLocations.txt\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "reports.db", cfg.DatabasePath)
		assert.Equal(t, 100.0, cfg.PortableThresholdMeters)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "frequencies: [146.58\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		path := writeConfig(t, "portable_threshold_meters: -5\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "portable_threshold_meters")
	})

	t.Run("invalid log level", func(t *testing.T) {
		path := writeConfig(t, "logging:\n  level: loud\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logging.level")
	})

	t.Run("invalid log format", func(t *testing.T) {
		path := writeConfig(t, "logging:\n  format: xml\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logging.format")
	})
}
