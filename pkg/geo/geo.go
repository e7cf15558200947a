// Package geo provides great-circle distance helpers shared by the
// provider and service layers.
package geo

import (
	"fmt"
	"math"

	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
)

// earthRadiusM is the mean Earth radius in meters.
const earthRadiusM = 6371000.0

// Haversine returns the great-circle distance between two points in
// meters.
func Haversine(from, to models.LatLng) float64 {
	latFrom := toRadians(from.Lat)
	latTo := toRadians(to.Lat)
	dLat := toRadians(to.Lat - from.Lat)
	dLng := toRadians(to.Lng - from.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latFrom)*math.Cos(latTo)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// FormatDistance renders a distance in meters for display: whole
// meters below one kilometer, otherwise kilometers with one decimal.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
