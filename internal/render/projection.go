// Package render builds the read-only projections the reception map pages
// consume, and assembles the index page linking them. Actual map drawing
// (tiles, glyphs) happens client-side and is not this tool's business.
package render

import (
	"github.com/m-martini/simplex-reports/internal/domain"
	"github.com/m-martini/simplex-reports/internal/geo"
)

// DefaultScale multiplies quality values into plot radii that read well at
// regional zoom.
const DefaultScale = 500

// MapPoint is one receiving station's reception of the transmitter, placed
// in Web Mercator meters. Radius is nil when the station did not rate the
// contact (quality "N/A" or blank).
type MapPoint struct {
	Call    string   `json:"call"`
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Quality string   `json:"quality"`
	Radius  *float64 `json:"radius,omitempty"`
}

// StationMap is everything a map page needs to show where one transmitter
// was heard: the transmitter's own placement plus one point per report that
// carried a receive location.
type StationMap struct {
	TransmitCall string     `json:"transmit_call"`
	FrequencyMHz float64    `json:"frequency_mhz"`
	NetDate      string     `json:"net_date,omitempty"`
	Transmitter  *MapPoint  `json:"transmitter,omitempty"`
	Points       []MapPoint `json:"points"`
}

// BuildStationMap projects reception records for one transmitter into map
// space. Records without a receive location are dropped; there is nothing
// to plot. scale <= 0 uses DefaultScale.
func BuildStationMap(transmitter domain.Station, freqMHz float64, netDate string, records []domain.ReceptionRecord, scale float64) StationMap {
	if scale <= 0 {
		scale = DefaultScale
	}

	x, y := geo.WebMercator(transmitter.Lat, transmitter.Lon)
	sm := StationMap{
		TransmitCall: transmitter.Call,
		FrequencyMHz: freqMHz,
		NetDate:      netDate,
		Transmitter: &MapPoint{
			Call: transmitter.Call,
			Lat:  transmitter.Lat,
			Lon:  transmitter.Lon,
			X:    x,
			Y:    y,
		},
	}

	for _, rec := range records {
		if rec.ReceiveLat == nil || rec.ReceiveLon == nil {
			continue
		}
		px, py := geo.WebMercator(*rec.ReceiveLat, *rec.ReceiveLon)
		pt := MapPoint{
			Call:    rec.ReportingCall,
			Lat:     *rec.ReceiveLat,
			Lon:     *rec.ReceiveLon,
			X:       px,
			Y:       py,
			Quality: rec.Quality,
		}
		if v := domain.QualityValue(rec.Quality); v != nil {
			r := *v * scale
			pt.Radius = &r
		}
		sm.Points = append(sm.Points, pt)
	}
	return sm
}
