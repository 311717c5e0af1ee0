package domain

import "time"

// Reception quality codes as they appear on the net report form.
const (
	QualityNotApplicable = "N/A"
	QualityGoodReadable  = "G/R"
	QualityWeakReadable  = "W/R"
	QualityNoCopy        = "N/C"
)

// Station is a roster entry: a known call sign at its fixed home location.
type Station struct {
	Call string
	Lat  float64 // decimal degrees, WGS-84
	Lon  float64
}

// Geo is a WGS-84 coordinate pair.
type Geo struct {
	Lat float64
	Lon float64
}

// Rating pairs a rated transmitting call with the submitted quality code.
type Rating struct {
	Call    string
	Quality string
}

// RawReport is one submitted form row, addressed by field name rather than
// column position. Fields hold the text exactly as submitted until
// CleanReport runs.
type RawReport struct {
	SubmittedAt string // form submission timestamp, kept verbatim
	Call        string // reporting station call sign
	NetDate     string // M/D/YYYY as entered on the form
	Frequency   string // net frequency in MHz, verbatim text
	Power       string // claimed transmit power, free text
	Height      string // claimed antenna height, free text
	Latitude    string // self-reported latitude, free text
	Longitude   string // self-reported longitude, free text
	Comment     string
	Ratings     []Rating // one per bracketed header column, in column order
}

// ReceptionRecord is the persisted unit: one rated contact between the
// reporting (receiving) station and one transmitting station on one net.
// Transmit power, height, and coordinates are backfilled by the second
// ingestion pass once the transmitter's own report is known.
type ReceptionRecord struct {
	ID            string
	SubmittedAt   string
	ReportingCall string
	NetDate       string
	FrequencyMHz  float64
	TransmitCall  string

	TransmitPower  string
	TransmitHeight string
	TransmitLat    *float64
	TransmitLon    *float64

	ReceiveHeight string
	ReceiveLat    *float64
	ReceiveLon    *float64

	Quality    string
	IngestedAt time.Time
}

// QualityValue maps a reception code to a numeric value for map scaling.
// "N/A" and blank mean the station did not rate that contact; they map to nil.
func QualityValue(quality string) *float64 {
	var v float64
	switch quality {
	case QualityGoodReadable:
		v = 4
	case QualityWeakReadable:
		v = 2
	case QualityNoCopy:
		v = 0
	default:
		return nil
	}
	return &v
}
