package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
	"github.com/YCN-AFS/LandmarkNavigator/internal/services"
)

func TestAdminRequiresAPIKey(t *testing.T) {
	e := newEnv(t, time.Hour)

	for _, path := range []string{"/v1/internal/cache/invalidate", "/v1/internal/cache/sweep"} {
		resp := e.post(t, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)

		resp = e.post(t, path, "wrong-key", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	e := newEnv(t, time.Hour)
	e.landmarkSource.landmarks = []models.Landmark{
		{Title: "Bửu Long Pagoda", Coordinates: models.LatLng{Lat: 10.9553, Lng: 106.8011}},
	}

	resp := e.get(t, "/v1/landmarks?"+validBoundsQuery)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.Equal(t, 1, e.landmarkSource.calls)

	// cached, no new fetch
	resp = e.get(t, "/v1/landmarks?"+validBoundsQuery)
	resp.Body.Close()
	require.Equal(t, 1, e.landmarkSource.calls)

	key := services.LandmarksKey(models.Bounds{
		SW: models.LatLng{Lat: 10.93, Lng: 106.79},
		NE: models.LatLng{Lat: 10.97, Lng: 106.83},
	})
	resp = e.post(t, "/v1/internal/cache/invalidate", "secret", fmt.Sprintf(`{"key":%q}`, key))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, true, body["removed"])

	// the records persisted in the store still answer the query, but
	// the cached response itself had to be rebuilt
	resp = e.get(t, "/v1/landmarks?"+validBoundsQuery)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, 1, e.landmarkSource.calls)
	assert.Equal(t, 1, e.cache.Len())
}

func TestInvalidateWithoutKeyPurges(t *testing.T) {
	e := newEnv(t, time.Hour)
	e.cache.Set("search:a", models.SearchPayload(nil))
	e.cache.Set("search:b", models.SearchPayload(nil))

	resp := e.post(t, "/v1/internal/cache/invalidate", "secret", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, float64(2), body["removed"])
	assert.Zero(t, e.cache.Len())
}

func TestInvalidateAbsentKeyIsNoOp(t *testing.T) {
	e := newEnv(t, time.Hour)

	resp := e.post(t, "/v1/internal/cache/invalidate", "secret", `{"key":"search:missing"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, false, body["removed"])
}

func TestSweepRemovesExpiredEntries(t *testing.T) {
	// entries born expired
	e := newEnv(t, -time.Second)
	e.cache.Set("search:a", models.SearchPayload(nil))
	e.cache.Set("search:b", models.SearchPayload(nil))

	resp := e.post(t, "/v1/internal/cache/sweep", "secret", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeJSON(t, resp, &body)
	assert.Equal(t, float64(2), body["removed"])
	assert.Zero(t, e.cache.Len())

	// a second sweep has nothing left to remove
	resp = e.post(t, "/v1/internal/cache/sweep", "secret", "")
	decodeJSON(t, resp, &body)
	assert.Equal(t, float64(0), body["removed"])
}
