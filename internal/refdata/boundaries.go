// Package refdata loads the optional reference layers: administrative
// region (town) boundaries from a local GeoJSON file and per-city
// neighborhood polygon sets from fixed external endpoints.
//
// Every layer is independently optional. A failed fetch leaves its slot nil,
// which degrades viewport layering gracefully without blocking anything
// else.
package refdata

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Name key fallback chains for boundary features. The neighborhood chain
// order is fixed by the upstream services' inconsistent schemas; lookups are
// case-insensitive exact matches against the selection.
var (
	neighborhoodNameKeys = []string{"name", "neighborhood", "NAME", "NEIGHBORHOOD", "Neighborhood", "Name"}
	townNameKeys         = []string{"town", "Town", "TOWN"}
)

// Boundary is one named administrative polygon. Immutable after load.
type Boundary struct {
	Name     string
	Geometry orb.Geometry
}

// BoundarySet is a named collection of boundaries from one source, keyed by
// case-folded name.
type BoundarySet struct {
	source     string
	boundaries []Boundary
	byName     map[string]int
}

// ParseRegionBoundaries decodes a GeoJSON FeatureCollection of town
// boundaries, keyed by the town property.
func ParseRegionBoundaries(source string, data []byte) (*BoundarySet, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, &ErrReferenceData{Source: source, Err: err}
	}
	return newBoundarySet(source, fc, townNameKeys), nil
}

// ParseNeighborhoodBoundaries decodes a GeoJSON FeatureCollection of
// neighborhood polygons, keyed by the name fallback chain.
func ParseNeighborhoodBoundaries(source string, data []byte) (*BoundarySet, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, &ErrReferenceData{Source: source, Err: err}
	}
	return newBoundarySet(source, fc, neighborhoodNameKeys), nil
}

func newBoundarySet(source string, fc *geojson.FeatureCollection, nameKeys []string) *BoundarySet {
	s := &BoundarySet{
		source: source,
		byName: make(map[string]int),
	}
	if fc == nil {
		return s
	}
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		name := lookupName(f.Properties, nameKeys)
		if name == "" {
			continue
		}
		key := fold(name)
		if _, ok := s.byName[key]; ok {
			continue // first record wins for duplicate names
		}
		s.byName[key] = len(s.boundaries)
		s.boundaries = append(s.boundaries, Boundary{Name: name, Geometry: f.Geometry})
	}
	return s
}

// Source returns the set's source label (endpoint name or file path).
func (s *BoundarySet) Source() string { return s.source }

// Boundaries returns all boundaries in load order.
func (s *BoundarySet) Boundaries() []Boundary {
	if s == nil {
		return nil
	}
	return s.boundaries
}

// ByName resolves a boundary by name, case-insensitively and trimmed.
func (s *BoundarySet) ByName(name string) (Boundary, bool) {
	if s == nil {
		return Boundary{}, false
	}
	i, ok := s.byName[fold(name)]
	if !ok {
		return Boundary{}, false
	}
	return s.boundaries[i], true
}

// ReferenceData bundles whatever reference layers loaded successfully.
// Either field (and any neighborhood slot) may be nil.
type ReferenceData struct {
	// Regions holds town boundary polygons keyed by the town property.
	Regions *BoundarySet
	// Neighborhoods holds the per-city neighborhood polygon sets.
	Neighborhoods []*BoundarySet
}

// ResolveNeighborhood finds a neighborhood polygon by name across all
// loaded neighborhood sets, in set order.
func (r *ReferenceData) ResolveNeighborhood(name string) (Boundary, bool) {
	if r == nil || name == "" {
		return Boundary{}, false
	}
	for _, set := range r.Neighborhoods {
		if b, ok := set.ByName(name); ok {
			return b, true
		}
	}
	return Boundary{}, false
}

// ResolveRegion finds a town boundary polygon by name.
func (r *ReferenceData) ResolveRegion(name string) (Boundary, bool) {
	if r == nil || name == "" {
		return Boundary{}, false
	}
	return r.Regions.ByName(name)
}

func lookupName(props geojson.Properties, candidates []string) string {
	if props == nil {
		return ""
	}
	for _, key := range candidates {
		if v, ok := props[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, key := range candidates {
		for k, v := range props {
			if strings.EqualFold(k, key) {
				if s, ok := v.(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
