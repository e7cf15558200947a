package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/YCN-AFS/LandmarkNavigator/internal/config"
	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
	"github.com/YCN-AFS/LandmarkNavigator/pkg/geo"
)

const wikiSourceName = "wikipedia"

// maxGeosearchRadiusM is the largest radius the MediaWiki geosearch
// generator accepts.
const maxGeosearchRadiusM = 10000

// WikiSource queries a MediaWiki instance for geo-tagged pages and
// free-text search results.
type WikiSource struct {
	registry  *config.Registry
	userAgent string
	client    *http.Client
}

// NewWikiSource returns a source that reads its endpoint and limits
// from registry on every call, so settings reloads apply to the next
// request.
func NewWikiSource(registry *config.Registry, userAgent string) *WikiSource {
	return &WikiSource{
		registry:  registry,
		userAgent: userAgent,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

// Name identifies the source in logs and metrics.
func (w *WikiSource) Name() string {
	return wikiSourceName
}

type wikiThumbnail struct {
	Source string `json:"source"`
}

type wikiCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type wikiPage struct {
	PageID      int              `json:"pageid"`
	Title       string           `json:"title"`
	Extract     string           `json:"extract"`
	FullURL     string           `json:"fullurl"`
	Thumbnail   *wikiThumbnail   `json:"thumbnail"`
	Coordinates []wikiCoordinate `json:"coordinates"`
}

type wikiQueryResponse struct {
	Query struct {
		Pages []wikiPage `json:"pages"`
	} `json:"query"`
}

// FetchLandmarks runs a geosearch around the viewport center. The
// search radius reaches the viewport corners, capped at the 10 km
// maximum the API allows. Pages without coordinates are skipped.
func (w *WikiSource) FetchLandmarks(ctx context.Context, bounds models.Bounds) ([]models.Landmark, error) {
	defer observe(wikiSourceName, "landmarks", time.Now())

	settings := w.registry.Current()
	center := bounds.Center()

	radius := int(geo.Haversine(center, bounds.NE)) + 1
	if radius > maxGeosearchRadiusM {
		radius = maxGeosearchRadiusM
	}
	if radius < 10 {
		radius = 10
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("generator", "geosearch")
	params.Set("ggscoord", formatCoord(center))
	params.Set("ggsradius", strconv.Itoa(radius))
	params.Set("ggslimit", strconv.Itoa(settings.Wiki.GeosearchLimit))
	params.Set("prop", "coordinates|pageimages|extracts|info")
	params.Set("piprop", "thumbnail")
	params.Set("pithumbsize", strconv.Itoa(settings.Wiki.ThumbnailPx))
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("exlimit", "max")
	params.Set("inprop", "url")

	var decoded wikiQueryResponse
	if err := w.getJSON(ctx, settings.Wiki.APIURL, params, &decoded); err != nil {
		return nil, err
	}

	landmarks := make([]models.Landmark, 0, len(decoded.Query.Pages))
	for _, page := range decoded.Query.Pages {
		if len(page.Coordinates) == 0 {
			continue
		}
		coord := models.LatLng{Lat: page.Coordinates[0].Lat, Lng: page.Coordinates[0].Lon}
		landmark := models.Landmark{
			PageID:      page.PageID,
			Title:       page.Title,
			Extract:     page.Extract,
			Coordinates: coord,
			Distance:    geo.FormatDistance(geo.Haversine(center, coord)),
			URL:         page.FullURL,
		}
		if page.Thumbnail != nil {
			landmark.Thumbnail = page.Thumbnail.Source
		}
		landmarks = append(landmarks, landmark)
	}
	return landmarks, nil
}

type wikiSearchHit struct {
	PageID  int    `json:"pageid"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type wikiSearchResponse struct {
	Query struct {
		Search []wikiSearchHit `json:"search"`
	} `json:"query"`
}

// Search runs a full-text search over page titles and bodies.
func (w *WikiSource) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	defer observe(wikiSourceName, "search", time.Now())

	settings := w.registry.Current()

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(settings.Wiki.SearchLimit))

	var decoded wikiSearchResponse
	if err := w.getJSON(ctx, settings.Wiki.APIURL, params, &decoded); err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(decoded.Query.Search))
	for _, hit := range decoded.Query.Search {
		results = append(results, models.SearchResult{
			PageID:  hit.PageID,
			Title:   hit.Title,
			Snippet: stripMarkup(hit.Snippet),
			URL:     articleURL(settings.Wiki.APIURL, hit.Title),
		})
	}
	return results, nil
}

func (w *WikiSource) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch from %s: %w", wikiSourceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", wikiSourceName, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", wikiSourceName, err)
	}
	return nil
}

func formatCoord(p models.LatLng) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "|" + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// stripMarkup drops the highlight tags MediaWiki embeds in search
// snippets and decodes the remaining entities.
func stripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return html.UnescapeString(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}

// articleURL derives a page link from the api.php endpoint.
func articleURL(apiURL, title string) string {
	base := strings.TrimSuffix(apiURL, "/w/api.php")
	if base == apiURL {
		// non-standard install layout, link from the host root
		if u, err := url.Parse(apiURL); err == nil {
			base = u.Scheme + "://" + u.Host
		}
	}
	return base + "/wiki/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}
