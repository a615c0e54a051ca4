package dataset

import (
	"testing"
)

// TestCitiesOf tests distinct, sorted, non-empty facet derivation
func TestCitiesOf(t *testing.T) {
	features := testSet()

	got := CitiesOf(features)
	expected := []string{" boston ", "Boston", "Cambridge", "Somerville"}

	if !equalIDs(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// TestNeighborhoodsOf tests city-conditioned neighborhood facets
func TestNeighborhoodsOf(t *testing.T) {
	features := testSet()

	tests := []struct {
		name     string
		city     string
		expected []string
	}{
		{"all features", "", []string{"Allston", "Fenway", "Inman Square"}},
		{"boston case folded", "BOSTON", []string{"Allston", "Fenway"}},
		{"cambridge", "Cambridge", []string{"Inman Square"}},
		{"city without neighborhoods", "Somerville", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NeighborhoodsOf(features, tt.city)
			if !equalIDs(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestNeighborhoodsSubsetProperty tests that a city-conditioned facet is a
// subset of the unconditioned one
func TestNeighborhoodsSubsetProperty(t *testing.T) {
	features := testSet()
	all := NeighborhoodsOf(features, "")

	for _, city := range CitiesOf(features) {
		for _, n := range NeighborhoodsOf(features, city) {
			if !ContainsFold(all, n) {
				t.Errorf("Neighborhood %q of city %q missing from unconditioned facet", n, city)
			}
		}
	}
}

// TestContainsFold tests case-insensitive membership
func TestContainsFold(t *testing.T) {
	values := []string{"Fenway", "Inman Square"}

	if !ContainsFold(values, "inman square") {
		t.Error("Expected case-insensitive match")
	}
	if !ContainsFold(values, " FENWAY ") {
		t.Error("Expected trimmed match")
	}
	if ContainsFold(values, "Allston") {
		t.Error("Expected no match for absent value")
	}
}
