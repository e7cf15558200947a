package services

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/YCN-AFS/LandmarkNavigator/internal/cache"
	"github.com/YCN-AFS/LandmarkNavigator/internal/config"
	"github.com/YCN-AFS/LandmarkNavigator/internal/logger"
	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
	"github.com/YCN-AFS/LandmarkNavigator/internal/provider"
	"github.com/YCN-AFS/LandmarkNavigator/internal/store"
)

// RoadService answers area queries. The caller's spelling of the area
// normalizes to trimmed lower case for cache keys and stored records,
// while the provider chain receives the cartographic name from the
// alias table.
type RoadService struct {
	cache    *cache.Cache
	store    *store.Store
	chain    *provider.RoadChain
	registry *config.Registry
	group    singleflight.Group
}

// NewRoadService wires the service to its cache, store, chain and
// settings registry.
func NewRoadService(c *cache.Cache, s *store.Store, chain *provider.RoadChain, registry *config.Registry) *RoadService {
	return &RoadService{cache: c, store: s, chain: chain, registry: registry}
}

// ByArea returns the roads of a named area. With the fixture source
// terminating the chain the result is non-empty for any area that has
// fixture coverage.
func (s *RoadService) ByArea(ctx context.Context, area string) ([]models.Road, error) {
	key := RoadsKey(area)

	result, err, _ := s.group.Do(key, func() (any, error) {
		return s.lookupByArea(ctx, area, key), nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Road), nil
}

func (s *RoadService) lookupByArea(ctx context.Context, area, key string) []models.Road {
	ctx, span := tracer.Start(ctx, "roads.lookup")
	defer span.End()

	log := logger.GetLogger("services")

	norm := NormalizeText(area)

	if payload, ok := s.cache.Get(key); ok && payload.Kind == models.PayloadRoads {
		return payload.Roads
	}

	if stored := s.store.RoadsInArea(norm); len(stored) > 0 {
		s.cache.Set(key, models.RoadsPayload(stored))
		return stored
	}

	fetched := s.chain.FetchRoads(ctx, s.registry.Current().Alias(area))
	if len(fetched) == 0 {
		log.Infow("no roads available for area", "area", norm)
		return []models.Road{}
	}

	persisted := make([]models.Road, 0, len(fetched))
	for _, r := range fetched {
		// file under the caller's normalized spelling, not the
		// cartographic name the provider was queried with
		r.Area = norm
		persisted = append(persisted, s.store.InsertRoad(r))
	}
	s.cache.Set(key, models.RoadsPayload(persisted))

	log.Infow("roads fetched and persisted", "area", norm, "count", len(persisted))
	return persisted
}

// ByID returns a stored road by id.
func (s *RoadService) ByID(id int) (models.Road, bool) {
	return s.store.GetRoad(id)
}
