// Package mathutil holds small numeric helpers shared by the stats
// packages and the CLI.
package mathutil

import "math"

// EarthRadiusKm is the IUGG mean Earth radius.
const EarthRadiusKm = 6371.0087714

// LogBase returns the logarithm of x in the given base. Returns NaN for
// non-positive x, non-positive base, or base 1.
func LogBase(x, base float64) float64 {
	if x <= 0 || base <= 0 || base == 1 {
		return math.NaN()
	}
	return math.Log(x) / math.Log(base)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees, over a spherical Earth.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := Radians(lat1)
	phi2 := Radians(lat2)
	dPhi := Radians(lat2 - lat1)
	dLambda := Radians(lon2 - lon1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}
