package provider

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/YCN-AFS/LandmarkNavigator/internal/logger"
	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
)

// The chains walk their sources in order and return the first
// non-empty result. A source error is logged and absorbed, never
// surfaced, so callers always get a usable (possibly empty) list.
// Each source attempt runs in its own span under the request span.

var tracer = otel.Tracer("github.com/YCN-AFS/LandmarkNavigator/internal/provider")

// LandmarkChain resolves landmark fetches across its sources.
type LandmarkChain struct {
	name    string
	sources []LandmarkSource
}

// NewLandmarkChain builds a chain trying sources in the given order.
func NewLandmarkChain(sources ...LandmarkSource) *LandmarkChain {
	return &LandmarkChain{name: "landmarks", sources: sources}
}

// FetchLandmarks returns the first non-empty result, or an empty list
// when every source fails or has nothing.
func (c *LandmarkChain) FetchLandmarks(ctx context.Context, bounds models.Bounds) []models.Landmark {
	log := logger.GetLogger("provider")

	for _, source := range c.sources {
		sctx, span := tracer.Start(ctx, "fetch "+source.Name(),
			trace.WithAttributes(attribute.String("chain", c.name)))
		landmarks, err := source.FetchLandmarks(sctx, bounds)
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		if err != nil {
			fetchErrors.WithLabelValues(source.Name(), "landmarks").Inc()
			log.Warnw("landmark source failed, trying next",
				"source", source.Name(), "error", err)
			continue
		}
		if len(landmarks) == 0 {
			log.Infow("landmark source returned nothing, trying next",
				"source", source.Name())
			continue
		}
		chainServed.WithLabelValues(c.name, source.Name()).Inc()
		return landmarks
	}
	return []models.Landmark{}
}

// RoadChain resolves road fetches across its sources. With a fixture
// source as the last stage the chain always yields data.
type RoadChain struct {
	name    string
	sources []RoadSource
}

// NewRoadChain builds a chain trying sources in the given order.
func NewRoadChain(sources ...RoadSource) *RoadChain {
	return &RoadChain{name: "roads", sources: sources}
}

// FetchRoads returns the first non-empty result, or an empty list
// when every source fails or has nothing.
func (c *RoadChain) FetchRoads(ctx context.Context, area string) []models.Road {
	log := logger.GetLogger("provider")

	for _, source := range c.sources {
		sctx, span := tracer.Start(ctx, "fetch "+source.Name(),
			trace.WithAttributes(attribute.String("chain", c.name)))
		roads, err := source.FetchRoads(sctx, area)
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		if err != nil {
			fetchErrors.WithLabelValues(source.Name(), "roads").Inc()
			log.Warnw("road source failed, trying next",
				"source", source.Name(), "area", area, "error", err)
			continue
		}
		if len(roads) == 0 {
			log.Infow("road source returned nothing, trying next",
				"source", source.Name(), "area", area)
			continue
		}
		chainServed.WithLabelValues(c.name, source.Name()).Inc()
		return roads
	}
	return []models.Road{}
}

// SourceNames lists the chain's sources in try order.
func (c *RoadChain) SourceNames() []string {
	names := make([]string, 0, len(c.sources))
	for _, source := range c.sources {
		names = append(names, source.Name())
	}
	return names
}

// SearchChain resolves free-text searches across its sources.
type SearchChain struct {
	name    string
	sources []SearchSource
}

// NewSearchChain builds a chain trying sources in the given order.
func NewSearchChain(sources ...SearchSource) *SearchChain {
	return &SearchChain{name: "search", sources: sources}
}

// Search returns the first non-empty result, or an empty list when
// every source fails or has nothing.
func (c *SearchChain) Search(ctx context.Context, query string) []models.SearchResult {
	log := logger.GetLogger("provider")

	for _, source := range c.sources {
		sctx, span := tracer.Start(ctx, "fetch "+source.Name(),
			trace.WithAttributes(attribute.String("chain", c.name)))
		results, err := source.Search(sctx, query)
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		if err != nil {
			fetchErrors.WithLabelValues(source.Name(), "search").Inc()
			log.Warnw("search source failed, trying next",
				"source", source.Name(), "error", err)
			continue
		}
		if len(results) == 0 {
			log.Infow("search source returned nothing, trying next",
				"source", source.Name())
			continue
		}
		chainServed.WithLabelValues(c.name, source.Name()).Inc()
		return results
	}
	return []models.SearchResult{}
}
