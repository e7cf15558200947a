package config

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// WikiConfig tunes the MediaWiki queries used for landmarks and
// free-text search.
type WikiConfig struct {
	// APIURL is the MediaWiki api.php endpoint.
	APIURL string `yaml:"api_url"`
	// GeosearchLimit caps pages per geosearch request, 1 to 500.
	GeosearchLimit int `yaml:"geosearch_limit"`
	// SearchLimit caps hits per free-text search request, 1 to 500.
	SearchLimit int `yaml:"search_limit"`
	// ThumbnailPx is the requested thumbnail width in pixels.
	ThumbnailPx int `yaml:"thumbnail_px"`
}

// OverpassConfig tunes the Overpass road queries.
type OverpassConfig struct {
	// APIURL is the primary Overpass interpreter endpoint.
	APIURL string `yaml:"api_url"`
	// FallbackURL is tried when the primary endpoint fails or
	// returns nothing.
	FallbackURL string `yaml:"fallback_url"`
	// TimeoutSeconds is the server-side Overpass query timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// AreaConfig maps caller-supplied area names to the names carto
// databases know them by.
type AreaConfig struct {
	Aliases map[string]string `yaml:"aliases"`
}

// Providers bundles the upstream data source settings. It can be
// reloaded at runtime from a YAML file without restarting the server.
type Providers struct {
	Wiki     WikiConfig     `yaml:"wiki"`
	Overpass OverpassConfig `yaml:"overpass"`
	Areas    AreaConfig     `yaml:"areas"`
}

// DefaultProviders builds provider settings from the environment
// configuration.
func DefaultProviders(cfg *Config) *Providers {
	return &Providers{
		Wiki: WikiConfig{
			APIURL:         cfg.WikiAPIURL,
			GeosearchLimit: 50,
			SearchLimit:    20,
			ThumbnailPx:    240,
		},
		Overpass: OverpassConfig{
			APIURL:         cfg.OverpassAPIURL,
			FallbackURL:    cfg.OverpassFallbackURL,
			TimeoutSeconds: 25,
		},
		Areas: AreaConfig{Aliases: map[string]string{}},
	}
}

// LoadProviders reads a provider settings file and overlays it on the
// given defaults. Fields absent from the file keep their default
// values.
func LoadProviders(path string, defaults *Providers) (*Providers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("providers: read %s: %w", path, err)
	}

	p := *defaults
	p.Areas.Aliases = make(map[string]string, len(defaults.Areas.Aliases))
	for k, v := range defaults.Areas.Aliases {
		p.Areas.Aliases[k] = v
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("providers: parse %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("providers: %s: %w", path, err)
	}
	p.normalize()

	return &p, nil
}

// Alias resolves a caller-supplied area name to the name the
// providers should query. Lookup is case-insensitive; unknown areas
// pass through trimmed but otherwise unchanged.
func (p *Providers) Alias(area string) string {
	trimmed := strings.TrimSpace(area)
	if name, ok := p.Areas.Aliases[strings.ToLower(trimmed)]; ok {
		return name
	}
	return trimmed
}

func (p *Providers) validate() error {
	if p.Wiki.APIURL == "" {
		return fmt.Errorf("wiki.api_url must not be empty")
	}
	if p.Wiki.GeosearchLimit < 1 || p.Wiki.GeosearchLimit > 500 {
		return fmt.Errorf("wiki.geosearch_limit must be between 1 and 500, got %d", p.Wiki.GeosearchLimit)
	}
	if p.Wiki.SearchLimit < 1 || p.Wiki.SearchLimit > 500 {
		return fmt.Errorf("wiki.search_limit must be between 1 and 500, got %d", p.Wiki.SearchLimit)
	}
	if p.Wiki.ThumbnailPx < 1 {
		return fmt.Errorf("wiki.thumbnail_px must be positive, got %d", p.Wiki.ThumbnailPx)
	}
	if p.Overpass.APIURL == "" {
		return fmt.Errorf("overpass.api_url must not be empty")
	}
	if p.Overpass.TimeoutSeconds < 1 {
		return fmt.Errorf("overpass.timeout_seconds must be positive, got %d", p.Overpass.TimeoutSeconds)
	}
	return nil
}

// normalize lowercases alias keys so lookups are case-insensitive.
func (p *Providers) normalize() {
	if len(p.Areas.Aliases) == 0 {
		return
	}
	aliases := make(map[string]string, len(p.Areas.Aliases))
	for k, v := range p.Areas.Aliases {
		aliases[strings.ToLower(strings.TrimSpace(k))] = v
	}
	p.Areas.Aliases = aliases
}

// Registry holds the active provider settings and lets the file
// watcher swap them without interrupting in-flight requests.
type Registry struct {
	p atomic.Pointer[Providers]
}

// NewRegistry returns a registry seeded with the given settings.
func NewRegistry(p *Providers) *Registry {
	r := &Registry{}
	r.p.Store(p)
	return r
}

// Current returns the active settings. Callers must not mutate the
// returned value.
func (r *Registry) Current() *Providers {
	return r.p.Load()
}

// Swap atomically replaces the active settings.
func (r *Registry) Swap(p *Providers) {
	r.p.Store(p)
}
