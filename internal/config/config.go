package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the process configuration, populated from environment
// variables with sensible defaults for local development.
type Config struct {
	ServerPort string
	ServerEnv  string

	CacheTTLSeconds           int
	CacheSweepIntervalSeconds int

	InternalAPIKey string
	SignozEndpoint string

	ProvidersFile string

	WikiAPIURL          string
	OverpassAPIURL      string
	OverpassFallbackURL string
	HTTPUserAgent       string
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "3000"),
		ServerEnv:  getEnv("SERVER_ENV", "development"),

		CacheTTLSeconds:           getEnvAsInt("CACHE_TTL_SECONDS", 3600),
		CacheSweepIntervalSeconds: getEnvAsInt("CACHE_SWEEP_INTERVAL_SECONDS", 600),

		InternalAPIKey: getEnv("INTERNAL_API_KEY", ""),
		SignozEndpoint: getEnvWithFallback("SIGNOZ_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		ProvidersFile: getEnv("PROVIDERS_FILE", ""),

		WikiAPIURL:          getEnv("WIKI_API_URL", "https://en.wikipedia.org/w/api.php"),
		OverpassAPIURL:      getEnv("OVERPASS_API_URL", "https://overpass-api.de/api/interpreter"),
		OverpassFallbackURL: getEnv("OVERPASS_FALLBACK_URL", "https://overpass.kumi.systems/api/interpreter"),
		HTTPUserAgent:       getEnv("HTTP_USER_AGENT", "LandmarkNavigator/1.0 (+https://github.com/YCN-AFS/LandmarkNavigator)"),
	}
}

// CacheTTL returns the cache entry lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// SweepInterval returns the period of the background cache sweeper.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.CacheSweepIntervalSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvWithFallback(primary, fallback, defaultValue string) string {
	if value, ok := os.LookupEnv(primary); ok {
		return value
	}
	if value, ok := os.LookupEnv(fallback); ok {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
