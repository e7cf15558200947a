package services

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/YCN-AFS/LandmarkNavigator/internal/cache"
	"github.com/YCN-AFS/LandmarkNavigator/internal/logger"
	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
	"github.com/YCN-AFS/LandmarkNavigator/internal/provider"
	"github.com/YCN-AFS/LandmarkNavigator/internal/store"
)

// LandmarkService answers viewport queries. It checks the response
// cache, then the record store, then the provider chain; fetched
// records persist to the store before the assembled response is
// cached. Concurrent identical queries share one lookup.
type LandmarkService struct {
	cache *cache.Cache
	store *store.Store
	chain *provider.LandmarkChain
	group singleflight.Group
}

// NewLandmarkService wires the service to its cache, store and chain.
func NewLandmarkService(c *cache.Cache, s *store.Store, chain *provider.LandmarkChain) *LandmarkService {
	return &LandmarkService{cache: c, store: s, chain: chain}
}

// ByBounds returns the landmarks visible in a viewport. An exhausted
// provider chain yields an empty list, not an error.
func (s *LandmarkService) ByBounds(ctx context.Context, bounds models.Bounds) ([]models.Landmark, error) {
	key := LandmarksKey(bounds)

	result, err, _ := s.group.Do(key, func() (any, error) {
		return s.lookupByBounds(ctx, bounds, key), nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Landmark), nil
}

func (s *LandmarkService) lookupByBounds(ctx context.Context, bounds models.Bounds, key string) []models.Landmark {
	ctx, span := tracer.Start(ctx, "landmarks.lookup")
	defer span.End()

	log := logger.GetLogger("services")

	if payload, ok := s.cache.Get(key); ok && payload.Kind == models.PayloadLandmarks {
		return payload.Landmarks
	}

	if stored := s.store.LandmarksInBounds(bounds); len(stored) > 0 {
		s.cache.Set(key, models.LandmarksPayload(stored))
		return stored
	}

	fetched := s.chain.FetchLandmarks(ctx, bounds)
	if len(fetched) == 0 {
		// nothing to persist and nothing worth caching, the next
		// query retries the chain
		log.Infow("no landmarks available for viewport", "key", key)
		return []models.Landmark{}
	}

	persisted := make([]models.Landmark, 0, len(fetched))
	for _, l := range fetched {
		persisted = append(persisted, s.store.InsertLandmark(l))
	}
	s.cache.Set(key, models.LandmarksPayload(persisted))

	log.Infow("landmarks fetched and persisted", "key", key, "count", len(persisted))
	return persisted
}

// ByID returns a stored landmark by id.
func (s *LandmarkService) ByID(id int) (models.Landmark, bool) {
	return s.store.GetLandmark(id)
}
