package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
)

func TestGetMiss(t *testing.T) {
	c := New(time.Hour)

	_, ok := c.Get("landmarks:missing")
	assert.False(t, ok)
}

func TestSetGet(t *testing.T) {
	c := New(time.Hour)
	payload := models.LandmarksPayload([]models.Landmark{
		{ID: 1, Title: "Bửu Long Pagoda"},
	})

	c.Set("landmarks:10,106,11,107", payload)

	got, ok := c.Get("landmarks:10,106,11,107")
	require.True(t, ok)
	assert.Equal(t, models.PayloadLandmarks, got.Kind)
	require.Len(t, got.Landmarks, 1)
	assert.Equal(t, "Bửu Long Pagoda", got.Landmarks[0].Title)
}

func TestSetReplaces(t *testing.T) {
	c := New(time.Hour)
	key := "search:pagoda"

	c.Set(key, models.SearchPayload([]models.SearchResult{{Title: "first"}}))
	c.Set(key, models.SearchPayload([]models.SearchResult{{Title: "second"}}))

	got, ok := c.Get(key)
	require.True(t, ok)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "second", got.Results[0].Title)
	assert.Equal(t, 1, c.Len())
}

func TestGetExpiresLazily(t *testing.T) {
	c := New(time.Hour)
	now := time.Unix(1_000_000, 0)
	c.now = func() time.Time { return now }

	c.Set("roads:buu long", models.RoadsPayload([]models.Road{{ID: 1}}))

	// one second before expiry the entry is live
	now = time.Unix(1_000_000+3599, 0)
	_, ok := c.Get("roads:buu long")
	assert.True(t, ok)

	// at the expiry instant it is a miss
	now = time.Unix(1_000_000+3600, 0)
	_, ok = c.Get("roads:buu long")
	assert.False(t, ok)

	// and the read removed it, not just hid it
	assert.Zero(t, c.Len())
}

func TestInvalidate(t *testing.T) {
	c := New(time.Hour)
	c.Set("search:pagoda", models.SearchPayload(nil))

	assert.True(t, c.Invalidate("search:pagoda"))
	_, ok := c.Get("search:pagoda")
	assert.False(t, ok)

	// absent key is a no-op
	assert.False(t, c.Invalidate("search:pagoda"))
}

func TestPurge(t *testing.T) {
	c := New(time.Hour)
	c.Set("a", models.SearchPayload(nil))
	c.Set("b", models.SearchPayload(nil))

	assert.Equal(t, 2, c.Purge())
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Purge())
}

func TestSweepExpired(t *testing.T) {
	c := New(time.Hour)
	now := time.Unix(1_000_000, 0)
	c.now = func() time.Time { return now }

	c.Set("old:a", models.SearchPayload(nil))
	c.Set("old:b", models.SearchPayload(nil))

	now = now.Add(30 * time.Minute)
	c.Set("fresh", models.SearchPayload(nil))

	now = time.Unix(1_000_000+3600, 0)
	assert.Equal(t, 2, c.SweepExpired())
	assert.Equal(t, 1, c.Len())

	// a second sweep finds nothing new
	assert.Zero(t, c.SweepExpired())

	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestRunStopsOnCancel(t *testing.T) {
	c := New(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		c.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestRunSweepsInBackground(t *testing.T) {
	// a negative lifetime makes entries expired the moment they land
	c := New(-time.Second)
	c.Set("a", models.SearchPayload(nil))
	c.Set("b", models.SearchPayload(nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool { return c.Len() == 0 },
		time.Second, 10*time.Millisecond)
}
