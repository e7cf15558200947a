// Package services orchestrates queries across the response cache,
// the record store and the provider chains.
package services

import (
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
)

var tracer = otel.Tracer("github.com/YCN-AFS/LandmarkNavigator/internal/services")

// Cache keys must be byte-equal for equal queries, so floats render
// in strconv's shortest form and text normalizes to trimmed lower
// case.

// LandmarksKey builds the cache key for a viewport query.
func LandmarksKey(b models.Bounds) string {
	return "landmarks:" + formatFloat(b.SW.Lat) + "," + formatFloat(b.SW.Lng) + "," +
		formatFloat(b.NE.Lat) + "," + formatFloat(b.NE.Lng)
}

// RoadsKey builds the cache key for an area query.
func RoadsKey(area string) string {
	return "roads:" + NormalizeText(area)
}

// SearchKey builds the cache key for a free-text query.
func SearchKey(query string) string {
	return "search:" + NormalizeText(query)
}

// NormalizeText lowercases and trims a query term.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
