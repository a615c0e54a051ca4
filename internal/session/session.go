// Package session implements the dashboard's state core: one mutable view
// over the immutable feature snapshot, kept consistent across filter
// selections, derived facets, marker selection with overlap disambiguation,
// and viewport geometry.
//
// Every derived value (facets, filtered view, viewport) is a pure
// recomputation from current inputs, rerun synchronously after each
// mutation, so the consistency invariants hold after every state change -
// including programmatic data reloads.
package session

import (
	"log/slog"
	"sync"

	"github.com/artsmap/artsmap/internal/dataset"
	"github.com/artsmap/artsmap/internal/geo"
	"github.com/artsmap/artsmap/internal/refdata"
)

// Session is the dashboard state core. All exported methods are safe for
// concurrent use; mutators recompute all derived state before returning.
type Session struct {
	mu  sync.RWMutex
	log *slog.Logger

	// Inputs.
	store  *dataset.Store
	ref    *refdata.ReferenceData
	filter dataset.FilterSelection

	// Selection state (Idle when selected is nil).
	selected   *dataset.Feature
	overlap    []dataset.Feature
	overlapIdx int

	// Derived state.
	index         *anchorIndex
	filtered      []dataset.Feature
	cities        []string
	neighborhoods []string
	view          geo.ViewState
	hasView       bool
}

// New returns an empty session in the loading state. A nil logger falls
// back to slog.Default.
func New(log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	s := &Session{
		log:   log,
		store: dataset.NewStore(),
	}
	s.mu.Lock()
	s.recomputeLocked()
	s.mu.Unlock()
	return s
}

// LoadFeatures populates the feature store from a JSON array of GeoJSON
// features and recomputes all derived state. A malformed body leaves the
// store empty with the error flag set; the session stays usable.
//
// Loading replaces the snapshot wholesale, so any active selection refers
// to a feature that no longer exists and is cleared.
func (s *Session) LoadFeatures(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.LoadFeatures(data)
	if err != nil {
		s.log.Error("feature snapshot rejected", "error", err)
	}

	s.index = buildAnchorIndex(s.store.Features())
	s.selected = nil
	s.overlap = nil
	s.overlapIdx = 0
	s.recomputeLocked()
	return err
}

// SetReferenceData installs whatever boundary layers loaded and recomputes
// derived state. Any layer may be nil.
func (s *Session) SetReferenceData(ref *refdata.ReferenceData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ref = ref
	s.recomputeLocked()
}

// SetFilter replaces the filter selection. The neighborhood consistency
// rule runs as part of recomputation: a neighborhood not present in the
// facet derived from the new city is cleared.
func (s *Session) SetFilter(filter dataset.FilterSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
	s.recomputeLocked()
}

// SelectCity sets the city filter, keeping the other predicates.
func (s *Session) SelectCity(city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.City = city
	s.recomputeLocked()
}

// SelectNeighborhood sets the neighborhood filter, keeping the other
// predicates. An invalid value is cleared by the consistency rule.
func (s *Session) SelectNeighborhood(neighborhood string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Neighborhood = neighborhood
	s.recomputeLocked()
}

// SelectType sets the space-type filter, keeping the other predicates.
func (s *Session) SelectType(t dataset.SpaceType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Type = t
	s.recomputeLocked()
}

// Filter returns the current filter selection.
func (s *Session) Filter() dataset.FilterSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Filtered returns the currently visible subset in dataset order.
func (s *Session) Filtered() []dataset.Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered
}

// Cities returns the sorted city facet of the full dataset.
func (s *Session) Cities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cities
}

// Neighborhoods returns the sorted neighborhood facet conditioned on the
// selected city.
func (s *Session) Neighborhoods() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.neighborhoods
}

// Viewport returns the current view state, and false if no coordinates
// have ever been available to derive one.
func (s *Session) Viewport() (geo.ViewState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view, s.hasView
}

// Loading reports whether the initial feature load is still pending.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Loading()
}

// LoadErr returns the feature load error, if the initial load failed.
func (s *Session) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Err()
}

// FeatureByID resolves a feature in the current snapshot.
func (s *Session) FeatureByID(id string) (dataset.Feature, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.ByID(id)
}

// MarshalFeatures re-encodes the snapshot for the renderer.
func (s *Session) MarshalFeatures() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.MarshalFeatures()
}

// recomputeLocked reruns the whole derivation pipeline: facets, the
// neighborhood consistency rule, the filtered view, and the viewport.
func (s *Session) recomputeLocked() {
	features := s.store.Features()

	s.cities = dataset.CitiesOf(features)
	s.neighborhoods = dataset.NeighborhoodsOf(features, s.filter.City)

	// Consistency rule: a selected neighborhood must belong to the freshly
	// derived set or be cleared. Runs on every recompute so data reloads
	// re-validate the selection too.
	if s.filter.Neighborhood != "" && !dataset.ContainsFold(s.neighborhoods, s.filter.Neighborhood) {
		s.filter.Neighborhood = ""
	}

	s.filtered = dataset.ApplyFilters(features, s.filter)
	s.computeViewportLocked()
}
