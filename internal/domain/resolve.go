package domain

import (
	"log/slog"

	"github.com/m-martini/simplex-reports/internal/geo"
)

// RosterLookup is the roster view location resolution needs.
type RosterLookup interface {
	Lookup(call string) (Station, bool)
}

// ResolveReceiveLocation determines the reporting station's coordinates for
// a cleaned report. A self-reported location wins when both fields parse;
// otherwise the roster entry for the reporting call fills in. An unknown
// call is logged, not failed; the record simply carries no coordinates.
func ResolveReceiveLocation(r *RawReport, roster RosterLookup, logger *slog.Logger) (lat, lon *float64) {
	rlat, okLat := ParseCoordinate(r.Latitude)
	rlon, okLon := ParseCoordinate(r.Longitude)
	if okLat && okLon {
		return &rlat, &rlon
	}

	home, ok := roster.Lookup(r.Call)
	if !ok {
		logger.Warn("reporting station missing from roster, no receive location",
			"call", r.Call, "net_date", r.NetDate)
		return nil, nil
	}
	return &home.Lat, &home.Lon
}

// ResolveTransmitCoords looks up a rated transmitting call in the roster.
// Absence yields nil coordinates, never an error.
func ResolveTransmitCoords(call string, roster RosterLookup) (lat, lon *float64) {
	st, ok := roster.Lookup(call)
	if !ok {
		return nil, nil
	}
	return &st.Lat, &st.Lon
}

// TransmitLocationSource says which coordinate won the plausibility check.
type TransmitLocationSource string

const (
	SourceRoster   TransmitLocationSource = "roster"
	SourceReported TransmitLocationSource = "reported"
)

// ResolveTransmitLocation picks the final transmit coordinate for the
// backfill pass. When the self-reported coordinate sits further than
// thresholdMeters (great-circle) from the station's roster location, the
// station is assumed to be operating portably and the reported coordinate is
// trusted; otherwise the roster location wins. Reports without a parseable
// self-location always resolve to the roster location.
//
// thresholdMeters is a calibration parameter, not a constant: the inherited
// default of 100 m is almost certainly too tight to separate "home station"
// from "portable operation" and needs domain input before being relied on.
func ResolveTransmitLocation(reported Geo, hasReported bool, home Station, thresholdMeters float64) (Geo, TransmitLocationSource) {
	if !hasReported {
		return Geo{Lat: home.Lat, Lon: home.Lon}, SourceRoster
	}
	d := geo.Haversine(reported.Lat, reported.Lon, home.Lat, home.Lon)
	if d > thresholdMeters {
		return reported, SourceReported
	}
	return Geo{Lat: home.Lat, Lon: home.Lon}, SourceRoster
}
