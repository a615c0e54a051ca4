package session

import (
	"github.com/paulmach/orb"

	"github.com/artsmap/artsmap/internal/geo"
)

// selectionZoomFloor is the minimum zoom once a neighborhood polygon or a
// single feature is focused.
const selectionZoomFloor = 14

// computeViewportLocked derives the next viewport from the priority chain:
//
//  1. selected neighborhood's polygon (zoom floored at 14)
//  2. selected city's boundary polygon
//  3. highlighted regions - region polygons named after a city present in
//     the dataset
//  4. all currently visible point features
//  5. nothing available: the previous view stands (no-op)
//
// A selected feature then overlays the result: the view pans to its anchor
// and zoom rises to at least 14. The overlay always runs last, after the
// bounds computation - this is a design contract, not incidental ordering.
func (s *Session) computeViewportLocked() {
	var coords []orb.Point
	zoomFloor := 0

	if s.filter.Neighborhood != "" {
		if b, ok := s.ref.ResolveNeighborhood(s.filter.Neighborhood); ok {
			coords = geo.ExtractAllCoordinates(b.Geometry)
			zoomFloor = selectionZoomFloor
		}
	}

	if len(coords) == 0 && s.filter.City != "" {
		if b, ok := s.ref.ResolveRegion(s.filter.City); ok {
			coords = geo.ExtractAllCoordinates(b.Geometry)
			zoomFloor = 0
		}
	}

	if len(coords) == 0 {
		for _, city := range s.cities {
			if b, ok := s.ref.ResolveRegion(city); ok {
				coords = append(coords, geo.ExtractAllCoordinates(b.Geometry)...)
			}
		}
	}

	if len(coords) == 0 {
		for _, f := range s.filtered {
			if !f.IsPoint() {
				continue
			}
			if a, ok := f.Anchor(); ok {
				coords = append(coords, a)
			}
		}
	}

	if vs, ok := geo.ComputeBounds(coords); ok {
		if vs.Zoom < zoomFloor {
			vs.Zoom = zoomFloor
		}
		s.view = vs
		s.hasView = true
	}

	// Selection pan wins over whatever the rules above produced.
	if s.selected != nil {
		if a, ok := s.selected.Anchor(); ok {
			s.view.Lon = a[0]
			s.view.Lat = a[1]
			if s.view.Zoom < selectionZoomFloor {
				s.view.Zoom = selectionZoomFloor
			}
			s.hasView = true
		}
	}
}
