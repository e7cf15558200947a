// Package store keeps fetched landmarks and roads in memory for the
// process lifetime. Records get monotonically increasing ids, one
// sequence per kind, starting at 1. Ids are never reused.
package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/YCN-AFS/LandmarkNavigator/internal/models"
)

// Store is an in-memory record store safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	landmarks      map[int]models.Landmark
	roads          map[int]models.Road
	nextLandmarkID int
	nextRoadID     int
}

// New returns an empty store.
func New() *Store {
	return &Store{
		landmarks:      make(map[int]models.Landmark),
		roads:          make(map[int]models.Road),
		nextLandmarkID: 1,
		nextRoadID:     1,
	}
}

// InsertLandmark assigns the next landmark id and stores the record.
// Returns the stored record with its id set.
func (s *Store) InsertLandmark(l models.Landmark) models.Landmark {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = s.nextLandmarkID
	s.nextLandmarkID++
	s.landmarks[l.ID] = l
	return l
}

// GetLandmark looks a landmark up by id.
func (s *Store) GetLandmark(id int) (models.Landmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.landmarks[id]
	return l, ok
}

// ListLandmarks returns all stored landmarks ordered by id.
func (s *Store) ListLandmarks() []models.Landmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Landmark, 0, len(s.landmarks))
	for _, l := range s.landmarks {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LandmarksInBounds returns the landmarks inside the viewport,
// ordered by id. Points on the viewport edges count as inside.
func (s *Store) LandmarksInBounds(b models.Bounds) []models.Landmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Landmark, 0)
	for _, l := range s.landmarks {
		if b.Contains(l.Coordinates) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// InsertRoad assigns the next road id and stores the record. Returns
// the stored record with its id set.
func (s *Store) InsertRoad(r models.Road) models.Road {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextRoadID
	s.nextRoadID++
	s.roads[r.ID] = r
	return r
}

// GetRoad looks a road up by id.
func (s *Store) GetRoad(id int) (models.Road, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.roads[id]
	return r, ok
}

// ListRoads returns all stored roads ordered by id.
func (s *Store) ListRoads() []models.Road {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Road, 0, len(s.roads))
	for _, r := range s.roads {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RoadsInArea returns the roads whose area matches, ignoring case and
// surrounding whitespace, ordered by id.
func (s *Store) RoadsInArea(area string) []models.Road {
	norm := strings.ToLower(strings.TrimSpace(area))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Road, 0)
	for _, r := range s.roads {
		if strings.ToLower(strings.TrimSpace(r.Area)) == norm {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Counts reports how many landmarks and roads are stored.
func (s *Store) Counts() (landmarks, roads int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.landmarks), len(s.roads)
}
