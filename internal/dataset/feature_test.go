package dataset

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func testFeature(id string, geom orb.Geometry, props geojson.Properties) Feature {
	raw := geojson.NewFeature(geom)
	if props != nil {
		raw.Properties = props
	}
	return newFeature(id, raw)
}

// TestPropertyFallbackChains tests lookup across inconsistently cased keys
func TestPropertyFallbackChains(t *testing.T) {
	tests := []struct {
		name     string
		props    geojson.Properties
		getter   func(Feature) string
		expected string
	}{
		{
			name:     "lowercase city",
			props:    geojson.Properties{"city": "Boston"},
			getter:   Feature.City,
			expected: "Boston",
		},
		{
			name:     "titlecase city",
			props:    geojson.Properties{"City": "Cambridge"},
			getter:   Feature.City,
			expected: "Cambridge",
		},
		{
			name:     "uppercase neighborhood",
			props:    geojson.Properties{"NEIGHBORHOOD": "Fenway"},
			getter:   Feature.Neighborhood,
			expected: "Fenway",
		},
		{
			name:     "british spelling neighborhood",
			props:    geojson.Properties{"neighbourhood": "Inman Square"},
			getter:   Feature.Neighborhood,
			expected: "Inman Square",
		},
		{
			name:     "unlisted case variant found by sweep",
			props:    geojson.Properties{"cItY": "Somerville"},
			getter:   Feature.City,
			expected: "Somerville",
		},
		{
			name:     "exact match wins over sweep",
			props:    geojson.Properties{"city": "Boston", "CiTy": "Cambridge"},
			getter:   Feature.City,
			expected: "Boston",
		},
		{
			name:     "absent reads as empty",
			props:    geojson.Properties{"name": "Loft 27"},
			getter:   Feature.City,
			expected: "",
		},
		{
			name:     "non-string value reads as empty",
			props:    geojson.Properties{"city": 42.0},
			getter:   Feature.City,
			expected: "",
		},
		{
			name:     "website fallback for url",
			props:    geojson.Properties{"Website": "https://example.org"},
			getter:   Feature.URL,
			expected: "https://example.org",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFeature("f1", orb.Point{-71, 42}, tt.props)
			if got := tt.getter(f); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestClassifyType tests space-type derivation from free text
func TestClassifyType(t *testing.T) {
	tests := []struct {
		text     string
		expected SpaceType
	}{
		{"Production and Presentation space", TypeBoth},
		{"Presentation only", TypePresentation},
		{"Production studio", TypeProduction},
		{"PRODUCTION / PRESENTATION", TypeBoth},
		{"Gallery", TypeUnknown},
		{"", TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ClassifyType(tt.text); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestFeatureAnchor tests anchor precomputation per geometry shape
func TestFeatureAnchor(t *testing.T) {
	t.Run("point anchor", func(t *testing.T) {
		f := testFeature("f1", orb.Point{-71.06, 42.36}, nil)
		a, ok := f.Anchor()
		if !ok {
			t.Fatal("Expected anchor for point feature")
		}
		if a[0] != -71.06 || a[1] != 42.36 {
			t.Errorf("Expected [-71.06 42.36], got %v", a)
		}
		if !f.IsPoint() {
			t.Error("Expected IsPoint for point geometry")
		}
	})

	t.Run("polygon anchor is vertex mean", func(t *testing.T) {
		f := testFeature("f2", orb.Polygon{{{0, 0}, {2, 0}, {2, 2}, {0, 2}}}, nil)
		a, ok := f.Anchor()
		if !ok {
			t.Fatal("Expected anchor for polygon feature")
		}
		if a[0] != 1 || a[1] != 1 {
			t.Errorf("Expected [1 1], got %v", a)
		}
		if f.IsPoint() {
			t.Error("Expected not IsPoint for polygon geometry")
		}
	})
}
