// Package provider fetches landmarks, roads and search results from
// upstream data sources. Sources are composed into chains that try
// each source in order and absorb individual failures, so a flaky
// upstream degrades responses instead of breaking them.
package provider

import (
	"context"
	"time"

	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
)

// requestTimeout bounds a single MediaWiki request.
const requestTimeout = 10 * time.Second

// LandmarkSource fetches landmarks for a map viewport.
type LandmarkSource interface {
	Name() string
	FetchLandmarks(ctx context.Context, bounds models.Bounds) ([]models.Landmark, error)
}

// RoadSource fetches roads for a named area.
type RoadSource interface {
	Name() string
	FetchRoads(ctx context.Context, area string) ([]models.Road, error)
}

// SearchSource runs a free-text search.
type SearchSource interface {
	Name() string
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}
