// Package geo provides pure coordinate math for the dashboard core:
// coordinate extraction from GeoJSON geometries, anchor-point computation,
// bounding-box view derivation, and tolerance-based coordinate equality.
//
// All coordinates follow the GeoJSON convention: [longitude, latitude] in
// WGS-84 decimal degrees.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// DefaultTolerance is the coordinate-equality tolerance in degrees (~11m at
// city latitudes). Used for grouping markers rendered at the same point.
// This is a flat-coordinate approximation, not a geodesic distance, and is
// only valid at city scale. Tunable; changing it changes which markers are
// considered co-located.
const DefaultTolerance = 0.0001

// ViewState describes a map viewport: center coordinate and zoom level.
//
// A ViewState is always derived from the current data and selection; it is
// never independently authoritative.
type ViewState struct {
	// Lon is the center longitude in decimal degrees.
	Lon float64 `json:"lon"`
	// Lat is the center latitude in decimal degrees.
	Lat float64 `json:"lat"`
	// Zoom is the map zoom level (larger = closer).
	Zoom int `json:"zoom"`
}

// ExtractAllCoordinates flattens a geometry into its coordinate pairs.
//
// Point yields a single coordinate, Polygon yields every vertex of every
// ring, and MultiPolygon yields every vertex of every ring of every part.
// Any other geometry type yields an empty sequence, not an error.
func ExtractAllCoordinates(g orb.Geometry) []orb.Point {
	switch geom := g.(type) {
	case orb.Point:
		return []orb.Point{geom}
	case orb.Polygon:
		var coords []orb.Point
		for _, ring := range geom {
			coords = append(coords, ring...)
		}
		return coords
	case orb.MultiPolygon:
		var coords []orb.Point
		for _, poly := range geom {
			for _, ring := range poly {
				coords = append(coords, ring...)
			}
		}
		return coords
	default:
		return nil
	}
}

// CentroidOrPoint returns the anchor coordinate for a geometry.
//
// A Point returns its own coordinate. Polygon and MultiPolygon return the
// arithmetic mean of all extracted coordinates, falling back to the first
// coordinate when averaging produces no usable value. Any other geometry
// reports ok=false.
//
// The mean is an approximation, not a true polygon centroid - markers are
// visual anchors, not precise geometric centers.
func CentroidOrPoint(g orb.Geometry) (orb.Point, bool) {
	switch geom := g.(type) {
	case orb.Point:
		return geom, true
	case orb.Polygon, orb.MultiPolygon:
		coords := ExtractAllCoordinates(g)
		if len(coords) == 0 {
			return orb.Point{}, false
		}
		var sumLon, sumLat float64
		for _, c := range coords {
			sumLon += c[0]
			sumLat += c[1]
		}
		n := float64(len(coords))
		mean := orb.Point{sumLon / n, sumLat / n}
		if math.IsNaN(mean[0]) || math.IsNaN(mean[1]) {
			return coords[0], true
		}
		return mean, true
	default:
		return orb.Point{}, false
	}
}

// ComputeBounds derives a viewport from a coordinate set.
//
// The center is the midpoint of the min/max longitude and latitude taken
// independently (bounding-box center, not a centroid). Zoom is chosen by
// thresholding the larger of the two spans; the checks run in a fixed
// overwrite order so the tightest matching threshold wins.
//
// Reports ok=false on empty input.
func ComputeBounds(coords []orb.Point) (ViewState, bool) {
	if len(coords) == 0 {
		return ViewState{}, false
	}

	minLon, maxLon := coords[0][0], coords[0][0]
	minLat, maxLat := coords[0][1], coords[0][1]
	for _, c := range coords[1:] {
		if c[0] < minLon {
			minLon = c[0]
		}
		if c[0] > maxLon {
			maxLon = c[0]
		}
		if c[1] < minLat {
			minLat = c[1]
		}
		if c[1] > maxLat {
			maxLat = c[1]
		}
	}

	span := maxLon - minLon
	if latSpan := maxLat - minLat; latSpan > span {
		span = latSpan
	}

	// Threshold overwrite order is load-bearing: start at 12, widen for
	// large spans, then tighten for small ones so a zero span lands on 14.
	zoom := 12
	if span > 0.2 {
		zoom = 11
	}
	if span > 0.4 {
		zoom = 10
	}
	if span > 0.8 {
		zoom = 9
	}
	if span < 0.05 {
		zoom = 13
	}
	if span < 0.02 {
		zoom = 14
	}

	return ViewState{
		Lon:  (minLon + maxLon) / 2,
		Lat:  (minLat + maxLat) / 2,
		Zoom: zoom,
	}, true
}

// CoordinatesEqual reports whether two coordinates are equal within the
// given tolerance on both axes independently.
func CoordinatesEqual(a, b orb.Point, tolerance float64) bool {
	return math.Abs(a[0]-b[0]) < tolerance && math.Abs(a[1]-b[1]) < tolerance
}
