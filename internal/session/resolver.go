package session

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"github.com/artsmap/artsmap/internal/dataset"
	"github.com/artsmap/artsmap/internal/geo"
)

// Selection & overlap resolver. Two states: Idle (no selection) and Active
// (one selected feature, possibly with an overlap group of co-located
// features). The overlap group is owned here; viewport and renderer only
// read it.

// Activate selects the feature with the given ID, as a marker click or an
// external table-row click would. The overlap group is re-derived from
// scratch: the full dataset is scanned for features whose anchor equals the
// activated feature's within tolerance.
//
// Reports false when the ID is not in the current snapshot.
func (s *Session) Activate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.store.ByID(id)
	if !ok {
		return false
	}
	s.activateLocked(f)
	s.recomputeLocked()
	return true
}

// CycleNext advances the overlap group's current index by one, wrapping to
// the start; the feature at the new index becomes the selected feature.
// A no-op when there is no overlap group.
func (s *Session) CycleNext() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.overlap) == 0 {
		return
	}
	s.overlapIdx = (s.overlapIdx + 1) % len(s.overlap)
	f := s.overlap[s.overlapIdx]
	s.selected = &f
	s.recomputeLocked()
}

// Deselect returns the resolver to Idle: clears the selection, the overlap
// group, and the index.
func (s *Session) Deselect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = nil
	s.overlap = nil
	s.overlapIdx = 0
	s.recomputeLocked()
}

// Selected returns the currently selected feature, if any.
func (s *Session) Selected() (dataset.Feature, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return dataset.Feature{}, false
	}
	return *s.selected, true
}

// Overlap returns the current overlap group, the current index within it,
// and its size. The renderer uses these for popup content and the
// "i / N, next" control. Empty unless more than one feature shares the
// selected feature's anchor.
func (s *Session) Overlap() (group []dataset.Feature, index, size int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlap, s.overlapIdx, len(s.overlap)
}

func (s *Session) activateLocked(f dataset.Feature) {
	s.selected = &f
	s.overlap = nil
	s.overlapIdx = 0

	anchor, ok := f.Anchor()
	if !ok {
		return
	}

	group := s.index.coLocated(anchor)
	if len(group) <= 1 {
		return
	}

	s.overlap = group
	for i, g := range group {
		if g.ID() == f.ID() {
			s.overlapIdx = i
			break
		}
	}
}

// anchorIndex accelerates co-location scans. Features are stored under
// tolerance-sized rects so a box query yields every candidate; the exact
// coordinate-equality check then decides membership, preserving the scan's
// semantics.
type anchorIndex struct {
	rtree *rtreego.Rtree
}

// indexedAnchor wraps a feature for R-tree storage.
type indexedAnchor struct {
	feature  dataset.Feature
	position int
	anchor   orb.Point
}

// Bounds implements rtreego.Spatial. R-tree rects need non-zero extents, so
// anchors are stored as tolerance-sized boxes centered on the coordinate.
func (a *indexedAnchor) Bounds() rtreego.Rect {
	origin := rtreego.Point{
		a.anchor[0] - geo.DefaultTolerance,
		a.anchor[1] - geo.DefaultTolerance,
	}
	rect, _ := rtreego.NewRect(origin, []float64{2 * geo.DefaultTolerance, 2 * geo.DefaultTolerance})
	return rect
}

func buildAnchorIndex(features []dataset.Feature) *anchorIndex {
	if len(features) == 0 {
		return nil
	}
	rtree := rtreego.NewTree(2, 25, 50)
	for i, f := range features {
		anchor, ok := f.Anchor()
		if !ok {
			continue
		}
		rtree.Insert(&indexedAnchor{feature: f, position: i, anchor: anchor})
	}
	return &anchorIndex{rtree: rtree}
}

// coLocated returns every feature whose anchor equals the given coordinate
// within tolerance, in dataset order.
func (idx *anchorIndex) coLocated(anchor orb.Point) []dataset.Feature {
	if idx == nil || idx.rtree == nil {
		return nil
	}

	origin := rtreego.Point{
		anchor[0] - geo.DefaultTolerance,
		anchor[1] - geo.DefaultTolerance,
	}
	queryRect, _ := rtreego.NewRect(origin, []float64{2 * geo.DefaultTolerance, 2 * geo.DefaultTolerance})

	spatials := idx.rtree.SearchIntersect(queryRect)

	matches := make([]*indexedAnchor, 0, len(spatials))
	for _, spatial := range spatials {
		entry := spatial.(*indexedAnchor)
		if geo.CoordinatesEqual(anchor, entry.anchor, geo.DefaultTolerance) {
			matches = append(matches, entry)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].position < matches[j].position
	})

	group := make([]dataset.Feature, len(matches))
	for i, m := range matches {
		group[i] = m.feature
	}
	return group
}
