package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverpassFetchRoads(t *testing.T) {
	var data, agent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		data = r.PostForm.Get("data")
		agent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"elements":[
			{"type":"way","id":100,"tags":{"name":"Huỳnh Văn Nghệ","highway":"primary","surface":"asphalt"},"geometry":[{"lat":10.9577,"lon":106.798},{"lat":10.9601,"lon":106.8045}]},
			{"type":"node","id":200},
			{"type":"way","id":300,"tags":{"highway":"residential"},"geometry":[{"lat":10.95,"lon":106.8}]}
		]}`))
	}))
	defer server.Close()

	source := NewOverpassSource(testRegistry("", server.URL, ""), "test-agent")
	roads, err := source.FetchRoads(context.Background(), "Bửu Long")
	require.NoError(t, err)

	// the node and the unnamed way are dropped
	require.Len(t, roads, 1)
	road := roads[0]
	assert.Zero(t, road.ID)
	assert.Equal(t, "Huỳnh Văn Nghệ", road.Name)
	assert.Equal(t, "Bửu Long", road.Area)
	assert.Equal(t, "primary", road.RoadType)
	assert.Equal(t, "asphalt", road.Tags["surface"])
	require.Len(t, road.Coordinates, 2)
	assert.InDelta(t, 10.9577, road.Coordinates[0].Lat, 1e-9)
	assert.InDelta(t, 106.798, road.Coordinates[0].Lng, 1e-9)

	assert.Equal(t, "test-agent", agent)
	assert.Contains(t, data, `area["name"="Bửu Long"]`)
	assert.Contains(t, data, "[timeout:25]")
	assert.Contains(t, data, `["highway"]["name"]`)
	assert.Contains(t, data, "out geom;")
}

func TestOverpassEndpointSelection(t *testing.T) {
	empty := []byte(`{"elements":[]}`)
	var primaryHits, fallbackHits int
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryHits++
		w.Write(empty)
	}))
	defer primary.Close()
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallbackHits++
		w.Write(empty)
	}))
	defer fallback.Close()

	registry := testRegistry("", primary.URL, fallback.URL)

	_, err := NewOverpassSource(registry, "test-agent").FetchRoads(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, 1, primaryHits)
	assert.Equal(t, 0, fallbackHits)

	_, err = NewOverpassFallbackSource(registry, "test-agent").FetchRoads(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, 1, primaryHits)
	assert.Equal(t, 1, fallbackHits)
}

func TestOverpassFallbackUsesPrimaryWhenUnset(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"elements":[]}`))
	}))
	defer server.Close()

	source := NewOverpassFallbackSource(testRegistry("", server.URL, ""), "test-agent")
	_, err := source.FetchRoads(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestOverpassServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	source := NewOverpassSource(testRegistry("", server.URL, ""), "test-agent")
	_, err := source.FetchRoads(context.Background(), "Bửu Long")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestBuildRoadQuery(t *testing.T) {
	want := "[out:json][timeout:25];\n" +
		"area[\"name\"=\"Bửu Long\"]->.searchArea;\n" +
		"way(area.searchArea)[\"highway\"][\"name\"];\n" +
		"out geom;"
	assert.Equal(t, want, buildRoadQuery("Bửu Long", 25))
}

func TestSourceNames(t *testing.T) {
	registry := testRegistry("", "http://example.invalid", "")

	assert.Equal(t, "overpass", NewOverpassSource(registry, "a").Name())
	assert.Equal(t, "overpass-fallback", NewOverpassFallbackSource(registry, "a").Name())
	assert.Equal(t, "wikipedia", NewWikiSource(registry, "a").Name())
	assert.Equal(t, "fixture", NewFixtureSource().Name())
}
