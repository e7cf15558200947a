package services

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/YCN-AFS/LandmarkNavigator/internal/cache"
	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
	"github.com/YCN-AFS/LandmarkNavigator/internal/provider"
)

// SearchService answers free-text queries. Results are cached but
// never persisted to the record store, since hits carry no
// coordinates to place on the map.
type SearchService struct {
	cache *cache.Cache
	chain *provider.SearchChain
	group singleflight.Group
}

// NewSearchService wires the service to its cache and chain.
func NewSearchService(c *cache.Cache, chain *provider.SearchChain) *SearchService {
	return &SearchService{cache: c, chain: chain}
}

// Query returns search hits for a term. An exhausted provider chain
// yields an empty list, not an error.
func (s *SearchService) Query(ctx context.Context, term string) ([]models.SearchResult, error) {
	key := SearchKey(term)

	result, err, _ := s.group.Do(key, func() (any, error) {
		return s.lookup(ctx, term, key), nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.SearchResult), nil
}

func (s *SearchService) lookup(ctx context.Context, term, key string) []models.SearchResult {
	ctx, span := tracer.Start(ctx, "search.lookup")
	defer span.End()

	if payload, ok := s.cache.Get(key); ok && payload.Kind == models.PayloadSearch {
		return payload.Results
	}

	results := s.chain.Search(ctx, term)
	if len(results) == 0 {
		return []models.SearchResult{}
	}

	s.cache.Set(key, models.SearchPayload(results))
	return results
}
