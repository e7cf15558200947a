package models

// PayloadKind discriminates the variants of CachePayload.
type PayloadKind string

const (
	PayloadLandmarks PayloadKind = "landmarks"
	PayloadRoads     PayloadKind = "roads"
	PayloadSearch    PayloadKind = "search"
)

// CachePayload is a tagged union of the three response shapes the
// query layer caches. Exactly one of the slice fields is set,
// indicated by Kind.
type CachePayload struct {
	Kind      PayloadKind    `json:"kind"`
	Landmarks []Landmark     `json:"landmarks,omitempty"`
	Roads     []Road         `json:"roads,omitempty"`
	Results   []SearchResult `json:"results,omitempty"`
}

// LandmarksPayload wraps a landmark list for caching.
func LandmarksPayload(landmarks []Landmark) CachePayload {
	return CachePayload{Kind: PayloadLandmarks, Landmarks: landmarks}
}

// RoadsPayload wraps a road list for caching.
func RoadsPayload(roads []Road) CachePayload {
	return CachePayload{Kind: PayloadRoads, Roads: roads}
}

// SearchPayload wraps a search result list for caching.
func SearchPayload(results []SearchResult) CachePayload {
	return CachePayload{Kind: PayloadSearch, Results: results}
}

// CacheEntry is a cached response with its absolute expiry time in
// Unix seconds. An entry whose ExpiresAt is not in the future is
// treated as absent.
type CacheEntry struct {
	Key       string       `json:"key"`
	Data      CachePayload `json:"data"`
	ExpiresAt int64        `json:"expires_at"`
}
