package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/YCN-AFS/LandmarkNavigator/internal/config"
	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
)

const (
	overpassSourceName         = "overpass"
	overpassFallbackSourceName = "overpass-fallback"
)

// OverpassSource fetches named roads from an Overpass API
// interpreter. The same implementation backs the primary and the
// fallback endpoint; they differ only in which URL they read from the
// settings registry.
type OverpassSource struct {
	name      string
	registry  *config.Registry
	fallback  bool
	userAgent string
	client    *http.Client
}

// NewOverpassSource queries the primary interpreter endpoint.
func NewOverpassSource(registry *config.Registry, userAgent string) *OverpassSource {
	return newOverpassSource(overpassSourceName, registry, false, userAgent)
}

// NewOverpassFallbackSource queries the fallback interpreter endpoint
// with the same query shape.
func NewOverpassFallbackSource(registry *config.Registry, userAgent string) *OverpassSource {
	return newOverpassSource(overpassFallbackSourceName, registry, true, userAgent)
}

func newOverpassSource(name string, registry *config.Registry, fallback bool, userAgent string) *OverpassSource {
	return &OverpassSource{
		name:      name,
		registry:  registry,
		fallback:  fallback,
		userAgent: userAgent,
		// outer guard only, the per-request context carries the
		// settings-derived deadline
		client: &http.Client{Timeout: time.Minute},
	}
}

// Name identifies the source in logs and metrics.
func (o *OverpassSource) Name() string {
	return o.name
}

type overpassPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassElement struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags"`
	Geometry []overpassPoint   `json:"geometry"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// FetchRoads queries every named highway inside the administrative
// area. Elements that are not ways, carry no geometry or have no name
// are skipped.
func (o *OverpassSource) FetchRoads(ctx context.Context, area string) ([]models.Road, error) {
	defer observe(o.name, "roads", time.Now())

	settings := o.registry.Current()

	// give the client slightly longer than the server-side query timeout
	timeout := time.Duration(settings.Overpass.TimeoutSeconds)*time.Second + 5*time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	form := url.Values{}
	form.Set("data", buildRoadQuery(area, settings.Overpass.TimeoutSeconds))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint(settings), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", o.userAgent)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", o.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", o.name, resp.StatusCode)
	}

	var decoded overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", o.name, err)
	}

	roads := make([]models.Road, 0, len(decoded.Elements))
	for _, el := range decoded.Elements {
		if el.Type != "way" || len(el.Geometry) == 0 || el.Tags["name"] == "" {
			continue
		}
		coords := make([]models.LatLng, 0, len(el.Geometry))
		for _, pt := range el.Geometry {
			coords = append(coords, models.LatLng{Lat: pt.Lat, Lng: pt.Lon})
		}
		roads = append(roads, models.Road{
			Name:        el.Tags["name"],
			Area:        area,
			RoadType:    el.Tags["highway"],
			Coordinates: coords,
			Tags:        el.Tags,
		})
	}
	return roads, nil
}

func (o *OverpassSource) endpoint(p *config.Providers) string {
	if o.fallback && p.Overpass.FallbackURL != "" {
		return p.Overpass.FallbackURL
	}
	return p.Overpass.APIURL
}

// buildRoadQuery renders the Overpass QL for all named highways
// inside an administrative area.
func buildRoadQuery(area string, timeoutSeconds int) string {
	return fmt.Sprintf("[out:json][timeout:%d];\narea[\"name\"=%q]->.searchArea;\nway(area.searchArea)[\"highway\"][\"name\"];\nout geom;",
		timeoutSeconds, area)
}
