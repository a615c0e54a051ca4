package dataset

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func testSet() []Feature {
	return []Feature{
		testFeature("a", orb.Point{-71.06, 42.36}, geojson.Properties{
			"city": "Boston", "neighborhood": "Fenway", "type": "Production and Presentation space",
		}),
		testFeature("b", orb.Point{-71.10, 42.37}, geojson.Properties{
			"City": " boston ", "Neighborhood": "Allston", "Type": "Presentation only",
		}),
		testFeature("c", orb.Point{-71.10, 42.37}, geojson.Properties{
			"city": "Cambridge", "neighborhood": "Inman Square", "type": "Production studio",
		}),
		testFeature("d", orb.Point{-71.08, 42.39}, geojson.Properties{
			"city": "Somerville", "type": "Rehearsal hall",
		}),
		testFeature("e", orb.Point{-71.07, 42.35}, geojson.Properties{
			"name": "No city on record",
		}),
	}
}

func ids(features []Feature) []string {
	out := make([]string, len(features))
	for i, f := range features {
		out[i] = f.ID()
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestApplyFilters tests predicate combinations and order preservation
func TestApplyFilters(t *testing.T) {
	features := testSet()

	tests := []struct {
		name     string
		sel      FilterSelection
		expected []string
	}{
		{"no filter returns all", FilterSelection{}, []string{"a", "b", "c", "d", "e"}},
		{"city is case and whitespace insensitive", FilterSelection{City: "BOSTON"}, []string{"a", "b"}},
		{"neighborhood filter", FilterSelection{Neighborhood: "inman square"}, []string{"c"}},
		{"type both", FilterSelection{Type: TypeBoth}, []string{"a"}},
		{"type presentation", FilterSelection{Type: TypePresentation}, []string{"b"}},
		{"type unknown", FilterSelection{Type: TypeUnknown}, []string{"d", "e"}},
		{"city and type combined", FilterSelection{City: "Boston", Type: TypePresentation}, []string{"b"}},
		{"missing city excluded under active city filter", FilterSelection{City: "Cambridge"}, []string{"c"}},
		{"no match", FilterSelection{City: "Medford"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(ApplyFilters(features, tt.sel))
			if !equalIDs(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestApplyFiltersIdempotent tests that re-filtering a filtered set with the
// same selection yields the same subsequence
func TestApplyFiltersIdempotent(t *testing.T) {
	features := testSet()
	sel := FilterSelection{City: "Boston"}

	once := ApplyFilters(features, sel)
	twice := ApplyFilters(once, sel)

	if !equalIDs(ids(once), ids(twice)) {
		t.Errorf("Expected idempotent filter, got %v then %v", ids(once), ids(twice))
	}
}

// TestApplyFiltersIsSubsequence tests order-preserving subset output
func TestApplyFiltersIsSubsequence(t *testing.T) {
	features := testSet()
	sel := FilterSelection{Type: TypeUnknown}

	got := ApplyFilters(features, sel)

	// Walk the input once; every output feature must appear in input order.
	i := 0
	for _, f := range got {
		found := false
		for ; i < len(features); i++ {
			if features[i].ID() == f.ID() {
				found = true
				i++
				break
			}
		}
		if !found {
			t.Fatalf("Output feature %s out of input order", f.ID())
		}
	}
}
