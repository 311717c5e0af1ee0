package domain

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapRoster is a RosterLookup over a plain map, for tests.
type mapRoster map[string]Station

func (m mapRoster) Lookup(call string) (Station, bool) {
	st, ok := m[call]
	return st, ok
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveReceiveLocation(t *testing.T) {
	roster := mapRoster{"KX1C": {Call: "KX1C", Lat: 42.46, Lon: -71.10}}

	t.Run("self-reported location wins when both fields parse", func(t *testing.T) {
		r := RawReport{Call: "KX1C", Latitude: "43.00", Longitude: "-72.00"}
		lat, lon := ResolveReceiveLocation(&r, roster, discardLogger())
		require.NotNil(t, lat)
		require.NotNil(t, lon)
		assert.Equal(t, 43.00, *lat)
		assert.Equal(t, -72.00, *lon)
	})

	t.Run("roster fills in when only one coordinate parses", func(t *testing.T) {
		r := RawReport{Call: "KX1C", Latitude: "43.00", Longitude: ""}
		lat, lon := ResolveReceiveLocation(&r, roster, discardLogger())
		require.NotNil(t, lat)
		assert.Equal(t, 42.46, *lat)
		assert.Equal(t, -71.10, *lon)
	})

	t.Run("unknown call yields nil coordinates", func(t *testing.T) {
		r := RawReport{Call: "N0PE"}
		lat, lon := ResolveReceiveLocation(&r, roster, discardLogger())
		assert.Nil(t, lat)
		assert.Nil(t, lon)
	})
}

func TestResolveTransmitCoords(t *testing.T) {
	roster := mapRoster{"W1FX": {Call: "W1FX", Lat: 42.50, Lon: -71.20}}

	lat, lon := ResolveTransmitCoords("W1FX", roster)
	require.NotNil(t, lat)
	assert.Equal(t, 42.50, *lat)
	assert.Equal(t, -71.20, *lon)

	lat, lon = ResolveTransmitCoords("N0PE", roster)
	assert.Nil(t, lat)
	assert.Nil(t, lon)
}

func TestResolveTransmitLocation(t *testing.T) {
	home := Station{Call: "W1FX", Lat: 42.50, Lon: -71.20}
	const threshold = 100.0

	t.Run("no reported location resolves to roster", func(t *testing.T) {
		loc, source := ResolveTransmitLocation(Geo{}, false, home, threshold)
		assert.Equal(t, SourceRoster, source)
		assert.Equal(t, Geo{Lat: 42.50, Lon: -71.20}, loc)
	})

	t.Run("reported location at home resolves to roster", func(t *testing.T) {
		loc, source := ResolveTransmitLocation(Geo{Lat: 42.50, Lon: -71.20}, true, home, threshold)
		assert.Equal(t, SourceRoster, source)
		assert.Equal(t, Geo{Lat: 42.50, Lon: -71.20}, loc)
	})

	t.Run("reported location far from home is trusted as portable", func(t *testing.T) {
		// Roughly a kilometer north of the roster entry.
		portable := Geo{Lat: 42.51, Lon: -71.20}
		loc, source := ResolveTransmitLocation(portable, true, home, threshold)
		assert.Equal(t, SourceReported, source)
		assert.Equal(t, portable, loc)
	})
}
