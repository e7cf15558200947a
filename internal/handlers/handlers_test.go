package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/YCN-AFS/LandmarkNavigator/internal/cache"
	"github.com/YCN-AFS/LandmarkNavigator/internal/config"
	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
	"github.com/YCN-AFS/LandmarkNavigator/internal/provider"
	"github.com/YCN-AFS/LandmarkNavigator/internal/services"
	"github.com/YCN-AFS/LandmarkNavigator/internal/store"
)

type stubLandmarkSource struct {
	landmarks []models.Landmark
	err       error
	calls     int
}

func (s *stubLandmarkSource) Name() string { return "stub" }

func (s *stubLandmarkSource) FetchLandmarks(context.Context, models.Bounds) ([]models.Landmark, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.landmarks, nil
}

type stubRoadSource struct {
	roads []models.Road
	err   error
	calls int
}

func (s *stubRoadSource) Name() string { return "stub" }

func (s *stubRoadSource) FetchRoads(context.Context, string) ([]models.Road, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.roads, nil
}

type stubSearchSource struct {
	results []models.SearchResult
	err     error
	calls   int
}

func (s *stubSearchSource) Name() string { return "stub" }

func (s *stubSearchSource) Search(context.Context, string) ([]models.SearchResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

// env assembles the app the way main does, with stubbed upstream
// sources.
type env struct {
	app            *fiber.App
	store          *store.Store
	cache          *cache.Cache
	landmarkSource *stubLandmarkSource
	roadSource     *stubRoadSource
	searchSource   *stubSearchSource
}

func newEnv(t *testing.T, ttl time.Duration) *env {
	t.Helper()

	e := &env{
		store:          store.New(),
		cache:          cache.New(ttl),
		landmarkSource: &stubLandmarkSource{},
		roadSource:     &stubRoadSource{},
		searchSource:   &stubSearchSource{},
	}

	registry := config.NewRegistry(config.DefaultProviders(&config.Config{
		WikiAPIURL:     "http://example.invalid",
		OverpassAPIURL: "http://example.invalid",
	}))

	landmarkSvc := services.NewLandmarkService(e.cache, e.store, provider.NewLandmarkChain(e.landmarkSource))
	roadSvc := services.NewRoadService(e.cache, e.store, provider.NewRoadChain(e.roadSource), registry)
	searchSvc := services.NewSearchService(e.cache, provider.NewSearchChain(e.searchSource))

	cfg := &config.Config{ServerEnv: "test", InternalAPIKey: "secret"}

	e.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	v1 := e.app.Group("/v1")
	SetupLandmarkRoutes(v1, landmarkSvc)
	SetupRoadRoutes(v1, roadSvc)
	SetupSearchRoutes(v1, searchSvc)
	SetupStatusRoutes(v1, NewStatusHandler("test-instance", "test", e.store, e.cache, []string{"stub"}))
	SetupAdminRoutes(v1, cfg, e.cache)
	SetupHealthRoutes(e.app, e.store, e.cache)

	return e
}

func (e *env) get(t *testing.T, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (e *env) getWithHeader(t *testing.T, path, header, value string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(header, value)
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (e *env) post(t *testing.T, path, apiKey, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPost, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
