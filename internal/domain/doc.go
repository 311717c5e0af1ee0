// Package domain models ARES simplex net reception reports.
//
// # Data Source
//
// Net participants submit one form response per net session. The form export
// is row oriented: the first row is the header, every following row is one
// report. The leading columns are fixed:
//
//	Timestamp | Call | Date of net | Frequency | Power | Height | Lat | Lon | Comment
//
// after which comes one column per rostered station, header-labelled with the
// call sign in brackets, e.g. "[KX1C]". The bracket marker is how the rating
// region is located: the first header cell containing both '[' and ']' starts
// the per-station rating columns, and everything after it is a rating column.
//
// # Field Conventions
//
//	Date of net:  M/D/YYYY as typed, e.g. "11/5/2020". Not calendar-validated.
//	Frequency:    MHz, e.g. "146.58".
//	Power/Height: free text ("5W", "30ft", "30'"). A trailing foot or inch
//	              mark is rewritten to " ft" / " in" during cleanup.
//	Lat/Lon:      decimal degrees, WGS-84, optionally with directional
//	              letters ("42.50 N") which cleanup strips. Blank when the
//	              operator did not self-report a location.
//	Rating:       one of "N/A", "G/R" (good/readable), "W/R" (weak/readable),
//	              "N/C" (no copy), or blank.
//
// Operators type what they like; cleanup tolerates and coerces everything
// short of a structurally broken row. A common foible is extra words after
// the call sign ("W1FX on the hill"), which cleanup splits off into the
// comment field.
//
// # Record Identity
//
// Each report gets a deterministic identifier built from net date, reporting
// call, and frequency, so a resubmitted report produces the same identifier.
// See [BuildRecordID].
package domain
