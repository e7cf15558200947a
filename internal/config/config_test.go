package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// unsetenv clears keys for the duration of the test, restoring the
// original values afterwards via t.Setenv's cleanup.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetenv(t,
		"SERVER_PORT", "SERVER_ENV",
		"CACHE_TTL_SECONDS", "CACHE_SWEEP_INTERVAL_SECONDS",
		"SIGNOZ_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"WIKI_API_URL", "OVERPASS_API_URL",
	)

	cfg := Load()

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "development", cfg.ServerEnv)
	assert.Equal(t, 3600, cfg.CacheTTLSeconds)
	assert.Equal(t, 600, cfg.CacheSweepIntervalSeconds)
	assert.Equal(t, time.Hour, cfg.CacheTTL())
	assert.Equal(t, 10*time.Minute, cfg.SweepInterval())
	assert.Empty(t, cfg.SignozEndpoint)
	assert.Equal(t, "https://en.wikipedia.org/w/api.php", cfg.WikiAPIURL)
	assert.Equal(t, "https://overpass-api.de/api/interpreter", cfg.OverpassAPIURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CACHE_TTL_SECONDS", "120")
	t.Setenv("WIKI_API_URL", "https://vi.wikipedia.org/w/api.php")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 120, cfg.CacheTTLSeconds)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL())
	assert.Equal(t, "https://vi.wikipedia.org/w/api.php", cfg.WikiAPIURL)
}

func TestLoadInvalidIntKeepsDefault(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, 3600, cfg.CacheTTLSeconds)
}

func TestSignozEndpointFallback(t *testing.T) {
	unsetenv(t, "SIGNOZ_ENDPOINT")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")

	cfg := Load()
	assert.Equal(t, "collector:4318", cfg.SignozEndpoint)

	t.Setenv("SIGNOZ_ENDPOINT", "signoz:4318")
	cfg = Load()
	assert.Equal(t, "signoz:4318", cfg.SignozEndpoint)
}
