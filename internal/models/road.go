package models

// Road is a street polyline inside a named area, as returned by the
// Overpass API or the built-in fixture set.
type Road struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Area        string            `json:"area"`
	RoadType    string            `json:"road_type,omitempty"`
	Coordinates []LatLng          `json:"coordinates"`
	Tags        map[string]string `json:"tags,omitempty"`
}
