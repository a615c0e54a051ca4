package artsmap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const fixture = `[
	{"type":"Feature","geometry":{"type":"Point","coordinates":[-71.0600,42.3600]},
	 "properties":{"name":"Studio B","city":"Boston","neighborhood":"Fenway","type":"Production and Presentation space"}},
	{"type":"Feature","geometry":{"type":"Point","coordinates":[-71.06003,42.36002]},
	 "properties":{"name":"Loft B","city":"Boston","neighborhood":"Fenway","type":"Presentation only"}},
	{"type":"Feature","geometry":{"type":"Point","coordinates":[-71.1095,42.3730]},
	 "properties":{"name":"Inman Stage","city":"Cambridge","neighborhood":"Inman Square","type":"Presentation only"}}
]`

func openFixture(t *testing.T) *Dashboard {
	t.Helper()
	path := filepath.Join(t.TempDir(), "features.json")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("Expected fixture write to succeed, got %v", err)
	}
	dash, err := Open(context.Background(), Options{FeaturesFile: path})
	if err != nil {
		t.Fatalf("Expected Open to succeed, got %v", err)
	}
	if dash.Err() != nil {
		t.Fatalf("Expected clean load, got %v", dash.Err())
	}
	return dash
}

// TestDashboardFlow tests the facade end to end: facets, filter, selection
func TestDashboardFlow(t *testing.T) {
	dash := openFixture(t)

	cities := dash.Cities()
	if len(cities) != 2 || cities[0] != "Boston" || cities[1] != "Cambridge" {
		t.Fatalf("Expected [Boston Cambridge], got %v", cities)
	}

	dash.SetFilter(Filter{City: "Boston"})
	visible := dash.Visible()
	if len(visible) != 2 {
		t.Fatalf("Expected 2 visible features, got %d", len(visible))
	}

	if !dash.Select(visible[0].ID) {
		t.Fatal("Expected selection to succeed")
	}
	group, index, size := dash.Overlap()
	if size != 2 || index != 0 || len(group) != 2 {
		t.Errorf("Expected overlap 0/2, got %d/%d", index, size)
	}

	dash.CycleNext()
	selected, ok := dash.Selected()
	if !ok || selected.Name != "Loft B" {
		t.Errorf("Expected Loft B after cycle, got %q", selected.Name)
	}

	vs, ok := dash.Viewport()
	if !ok || vs.Zoom < 14 {
		t.Errorf("Expected selection pan with zoom >= 14, got %+v", vs)
	}

	dash.Deselect()
	if _, ok := dash.Selected(); ok {
		t.Error("Expected selection cleared")
	}
}

// TestDashboardConsistencyRule tests neighborhood clearing via the facade
func TestDashboardConsistencyRule(t *testing.T) {
	dash := openFixture(t)

	dash.SetFilter(Filter{City: "Cambridge", Neighborhood: "Inman Square"})
	if got := dash.Filter().Neighborhood; got != "Inman Square" {
		t.Fatalf("Expected Inman Square, got %q", got)
	}

	dash.SetFilter(Filter{City: "Boston", Neighborhood: "Inman Square"})
	if got := dash.Filter().Neighborhood; got != "" {
		t.Errorf("Expected neighborhood cleared for Boston, got %q", got)
	}
}

// TestDashboardMissingSnapshot tests the non-fatal empty-with-error state
func TestDashboardMissingSnapshot(t *testing.T) {
	dash, err := Open(context.Background(), Options{
		FeaturesFile: filepath.Join(t.TempDir(), "absent.json"),
	})
	if err != nil {
		t.Fatalf("Expected Open to succeed despite missing snapshot, got %v", err)
	}
	if dash.Err() == nil {
		t.Error("Expected load error to be reported")
	}
	if len(dash.Visible()) != 0 {
		t.Error("Expected empty dataset")
	}
}
