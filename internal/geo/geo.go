// Package geo holds the small amount of spherical geometry the reporting
// tools need: great-circle distance for the portable-station plausibility
// check, and the Web Mercator projection map pages plot in.
package geo

import "math"

const (
	// earthRadiusMeters is the mean Earth radius used by Haversine.
	earthRadiusMeters = 6372800.0

	// mercatorK is the WGS-84 semi-major axis, the Web Mercator scale factor.
	mercatorK = 6378137.0
)

// Haversine returns the great-circle distance in meters between two WGS-84
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}

// WebMercator converts a WGS-84 coordinate in decimal degrees to Web
// Mercator x/y meters (EPSG:3857).
func WebMercator(lat, lon float64) (x, y float64) {
	x = lon * mercatorK * math.Pi / 180
	y = math.Log(math.Tan((90+lat)*math.Pi/360)) * mercatorK
	return x, y
}
