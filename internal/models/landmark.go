package models

// Landmark is a notable place with a Wikipedia article, positioned on
// the map.
type Landmark struct {
	ID          int    `json:"id"`
	PageID      int    `json:"page_id"`
	Title       string `json:"title"`
	Extract     string `json:"extract,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Coordinates LatLng `json:"coordinates"`
	Distance    string `json:"distance,omitempty"`
	URL         string `json:"url,omitempty"`
}
