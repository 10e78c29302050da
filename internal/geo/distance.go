// Package geo implements the distance calculations behind the nearby
// providers lookup.
package geo

import (
	"fmt"
	"math"
)

// earthRadiusKM is the mean Earth radius used by the haversine formula.
const earthRadiusKM = 6371

// ValidCoordinate reports whether lat/lng form a usable geographic point.
func ValidCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Distance returns the haversine distance between two points in kilometers,
// rounded to two decimals. Invalid coordinates yield +Inf so the point never
// ranks as nearby.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	if !ValidCoordinate(lat1, lng1) || !ValidCoordinate(lat2, lng2) {
		return math.Inf(1)
	}

	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKM*c*100) / 100
}

// FormatDistance renders a distance for display: meters below one
// kilometer, one decimal of kilometers above.
func FormatDistance(distance float64) string {
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return "N/A"
	}

	if distance < 1 {
		return fmt.Sprintf("%d m", int(math.Round(distance*1000)))
	}
	return fmt.Sprintf("%.1f km", distance)
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
