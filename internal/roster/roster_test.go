package roster

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-martini/simplex-reports/internal/domain"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadStations(t *testing.T) {
	t.Run("single header line", func(t *testing.T) {
		path := writeRoster(t, "Call,Lat,Lon\nW1FX,42.50,-71.20\nKX1C,42.46,-71.10\n")
		stations, err := LoadStations(path)
		require.NoError(t, err)

		want := []domain.Station{
			{Call: "W1FX", Lat: 42.50, Lon: -71.20},
			{Call: "KX1C", Lat: 42.46, Lon: -71.10},
		}
		if diff := cmp.Diff(want, stations); diff != "" {
			t.Errorf("stations mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("second header line is tolerated", func(t *testing.T) {
		path := writeRoster(t, "Station Roster\nCall,Lat,Lon\nW1FX,42.50,-71.20\n")
		stations, err := LoadStations(path)
		require.NoError(t, err)
		require.Len(t, stations, 1)
		assert.Equal(t, "W1FX", stations[0].Call)
	})

	t.Run("control characters are stripped", func(t *testing.T) {
		path := writeRoster(t, "Call,Lat,Lon\nW1FX,42.50,-71.20\r\nKX1C\x0c,42.46,-71.10\n")
		stations, err := LoadStations(path)
		require.NoError(t, err)
		require.Len(t, stations, 2)
		assert.Equal(t, "KX1C", stations[1].Call)
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		path := writeRoster(t, "Call,Lat,Lon\n\nW1FX,42.50,-71.20\n\n")
		stations, err := LoadStations(path)
		require.NoError(t, err)
		assert.Len(t, stations, 1)
	})

	t.Run("bad coordinate after data lines is an error naming the line", func(t *testing.T) {
		path := writeRoster(t, "Call,Lat,Lon\nW1FX,42.50,-71.20\nKX1C,forty-two,-71.10\n")
		_, err := LoadStations(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "roster line 3")
	})

	t.Run("out-of-range latitude is an error", func(t *testing.T) {
		path := writeRoster(t, "Call,Lat,Lon\nW1FX,92.00,-71.20\n")
		_, err := LoadStations(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadStations(filepath.Join(t.TempDir(), "absent.txt"))
		assert.Error(t, err)
	})
}

// recordingWriter captures write-through upserts.
type recordingWriter struct {
	upserts []domain.Station
	err     error
}

func (w *recordingWriter) UpsertStation(_ context.Context, st domain.Station) error {
	if w.err != nil {
		return w.err
	}
	w.upserts = append(w.upserts, st)
	return nil
}

func TestRoster(t *testing.T) {
	seed := []domain.Station{
		{Call: "w1fx", Lat: 42.50, Lon: -71.20},
		{Call: "KX1C", Lat: 42.46, Lon: -71.10},
	}

	t.Run("lookup normalizes the query and the stored call", func(t *testing.T) {
		r := New(seed, nil)
		st, ok := r.Lookup(" kx1c ")
		require.True(t, ok)
		assert.Equal(t, "KX1C", st.Call)

		st, ok = r.Lookup("W1FX")
		require.True(t, ok)
		assert.Equal(t, 42.50, st.Lat)
	})

	t.Run("stations preserves load order with normalized calls", func(t *testing.T) {
		r := New(seed, nil)
		calls := []string{}
		for _, st := range r.Stations() {
			calls = append(calls, st.Call)
		}
		assert.Equal(t, []string{"W1FX", "KX1C"}, calls)
	})

	t.Run("upsert writes through", func(t *testing.T) {
		w := &recordingWriter{}
		r := New(seed, w)
		require.NoError(t, r.Upsert(context.Background(), "n1ab", 42.40, -71.00))

		st, ok := r.Lookup("N1AB")
		require.True(t, ok)
		assert.Equal(t, 42.40, st.Lat)
		require.Len(t, w.upserts, 1)
		assert.Equal(t, domain.Station{Call: "N1AB", Lat: 42.40, Lon: -71.00}, w.upserts[0])
		assert.Equal(t, 3, r.Len())
	})

	t.Run("upsert rejects invalid coordinates", func(t *testing.T) {
		r := New(seed, nil)
		assert.Error(t, r.Upsert(context.Background(), "N1AB", 95.0, 0))
		assert.Error(t, r.Upsert(context.Background(), "", 42.0, -71.0))
	})

	t.Run("upsert without a writer changes memory only", func(t *testing.T) {
		r := New(nil, nil)
		require.NoError(t, r.Upsert(context.Background(), "N1AB", 42.40, -71.00))
		assert.Equal(t, 1, r.Len())
	})

	t.Run("duplicate calls keep the later coordinates", func(t *testing.T) {
		r := New([]domain.Station{
			{Call: "W1FX", Lat: 1, Lon: 1},
			{Call: "w1fx", Lat: 2, Lon: 2},
		}, nil)
		assert.Equal(t, 1, r.Len())
		st, _ := r.Lookup("W1FX")
		assert.Equal(t, 2.0, st.Lat)
	})
}
