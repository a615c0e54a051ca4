package dataset

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

// Store holds the raw immutable list of geographic features, populated once
// after the initial load completes (or left empty with an error flag on
// failure).
//
// A Store is not safe for concurrent mutation; the session serializes
// access to it.
type Store struct {
	features []Feature
	byID     map[string]int
	loading  bool
	loadErr  error
}

// NewStore returns an empty store in the loading state.
func NewStore() *Store {
	return &Store{
		byID:    make(map[string]int),
		loading: true,
	}
}

// LoadFeatures decodes a JSON array of GeoJSON Feature objects and
// populates the store. Each feature is assigned a session-stable ID.
//
// A malformed body is a hard failure for the initial load: the store stays
// empty, the loading flag clears, and an *ErrLoadFailure is recorded and
// returned.
func (s *Store) LoadFeatures(data []byte) error {
	s.loading = false

	var raw []*geojson.Feature
	if err := json.Unmarshal(data, &raw); err != nil {
		s.loadErr = &ErrLoadFailure{Reason: "response is not a feature array", Err: err}
		return s.loadErr
	}

	features := make([]Feature, 0, len(raw))
	byID := make(map[string]int, len(raw))
	for _, rf := range raw {
		if rf == nil {
			continue
		}
		f := newFeature(uuid.NewString(), rf)
		byID[f.ID()] = len(features)
		features = append(features, f)
	}

	s.features = features
	s.byID = byID
	s.loadErr = nil
	return nil
}

// Features returns all features in load order. Callers must not mutate the
// returned slice.
func (s *Store) Features() []Feature { return s.features }

// Len returns the number of loaded features.
func (s *Store) Len() int { return len(s.features) }

// ByID returns the feature with the given session ID.
func (s *Store) ByID(id string) (Feature, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Feature{}, false
	}
	return s.features[i], true
}

// Position returns a feature's index in load order, used to keep overlap
// groups in dataset order.
func (s *Store) Position(id string) (int, bool) {
	i, ok := s.byID[id]
	return i, ok
}

// Loading reports whether the initial load is still pending.
func (s *Store) Loading() bool { return s.loading }

// Err returns the load error, if the initial load failed.
func (s *Store) Err() error { return s.loadErr }

// MarshalFeatures re-encodes the snapshot as a JSON array of GeoJSON
// features, for serving to the renderer.
func (s *Store) MarshalFeatures() ([]byte, error) {
	raw := make([]*geojson.Feature, len(s.features))
	for i, f := range s.features {
		raw[i] = f.raw
	}
	return json.Marshal(raw)
}
