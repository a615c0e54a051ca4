// Package dataset holds the immutable feature snapshot and the pure
// derivations over it: property access with fallback chains, space-type
// classification, filtering, and facet sets.
package dataset

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/artsmap/artsmap/internal/geo"
)

// SpaceType classifies a space by what happens in it, derived from the
// free-text type property.
type SpaceType string

const (
	// TypeAny matches every space; the zero filter value.
	TypeAny SpaceType = ""
	// TypeProduction marks spaces where work is made.
	TypeProduction SpaceType = "production"
	// TypePresentation marks spaces where work is shown.
	TypePresentation SpaceType = "presentation"
	// TypeBoth marks spaces that do both.
	TypeBoth SpaceType = "both"
	// TypeUnknown marks spaces whose type text matched neither term.
	TypeUnknown SpaceType = "unknown"
)

// Property key fallback chains. The upstream dataset is inconsistently
// cased across records, so lookups try an ordered list of candidates and
// fall back to a case-insensitive sweep. Do not assume a canonical schema.
var (
	cityKeys         = []string{"city", "City", "CITY"}
	neighborhoodKeys = []string{"neighborhood", "Neighborhood", "NEIGHBORHOOD", "neighbourhood"}
	typeKeys         = []string{"type", "Type", "TYPE"}
	nameKeys         = []string{"name", "Name", "NAME"}
	urlKeys          = []string{"url", "URL", "Url", "website", "Website"}
)

// Feature is one arts/cultural space: an immutable GeoJSON feature plus a
// session-stable identifier and a precomputed anchor coordinate.
//
// The geometry is never mutated after load; only membership in filtered
// views changes.
type Feature struct {
	id        string
	raw       *geojson.Feature
	anchor    orb.Point
	hasAnchor bool
}

// ID returns the session-stable feature identifier.
//
// IDs are assigned at load time and let external callers (a table row, a
// marker) refer to the same feature across views.
func (f Feature) ID() string { return f.id }

// Geometry returns the feature's geometry. Callers must not mutate it.
func (f Feature) Geometry() orb.Geometry {
	if f.raw == nil {
		return nil
	}
	return f.raw.Geometry
}

// Anchor returns the feature's anchor coordinate (the point it is rendered
// at) and whether one could be derived from its geometry.
func (f Feature) Anchor() (orb.Point, bool) {
	return f.anchor, f.hasAnchor
}

// IsPoint reports whether the feature has Point geometry.
func (f Feature) IsPoint() bool {
	if f.raw == nil {
		return false
	}
	_, ok := f.raw.Geometry.(orb.Point)
	return ok
}

// City returns the feature's city value, or "" if absent.
func (f Feature) City() string { return f.property(cityKeys) }

// Neighborhood returns the feature's neighborhood value, or "" if absent.
func (f Feature) Neighborhood() string { return f.property(neighborhoodKeys) }

// Name returns the feature's display name, or "" if absent.
func (f Feature) Name() string { return f.property(nameKeys) }

// URL returns the feature's website value, or "" if absent.
func (f Feature) URL() string { return f.property(urlKeys) }

// TypeText returns the raw free-text type property, or "" if absent.
func (f Feature) TypeText() string { return f.property(typeKeys) }

// Class returns the space type derived from the type property.
func (f Feature) Class() SpaceType { return ClassifyType(f.TypeText()) }

// Properties returns the open property map. Callers must not mutate it.
func (f Feature) Properties() geojson.Properties {
	if f.raw == nil {
		return nil
	}
	return f.raw.Properties
}

// property tries candidate keys in order; exact matches win, then a
// case-insensitive sweep. Non-string and absent values read as "".
func (f Feature) property(candidates []string) string {
	if f.raw == nil || f.raw.Properties == nil {
		return ""
	}
	props := f.raw.Properties
	for _, key := range candidates {
		if v, ok := props[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	for _, key := range candidates {
		for k, v := range props {
			if strings.EqualFold(k, key) {
				if s, ok := v.(string); ok {
					return s
				}
			}
		}
	}
	return ""
}

// ClassifyType derives a SpaceType from free-text like
// "Production and Presentation space" or "Presentation only".
func ClassifyType(text string) SpaceType {
	folded := strings.ToLower(text)
	production := strings.Contains(folded, "production")
	presentation := strings.Contains(folded, "presentation")
	switch {
	case production && presentation:
		return TypeBoth
	case production:
		return TypeProduction
	case presentation:
		return TypePresentation
	default:
		return TypeUnknown
	}
}

// newFeature wraps a decoded GeoJSON feature, assigning identity and
// precomputing the anchor coordinate.
func newFeature(id string, raw *geojson.Feature) Feature {
	f := Feature{id: id, raw: raw}
	if raw != nil && raw.Geometry != nil {
		f.anchor, f.hasAnchor = geo.CentroidOrPoint(raw.Geometry)
	}
	return f
}

// Fold normalizes a property or filter value for comparison: trimmed and
// case-folded.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
