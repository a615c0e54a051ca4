// Package artsmap provides a clean public API for the arts-space map
// dashboard core: an immutable feature snapshot with filtering, facet
// derivation, marker selection with overlap disambiguation, and viewport
// control. The renderer (map tiles, charts, table) is an external
// collaborator that reads this package's plain-data outputs and feeds user
// events back in.
package artsmap

import (
	"context"
	"log/slog"
	"os"

	"github.com/artsmap/artsmap/internal/dataset"
	"github.com/artsmap/artsmap/internal/refdata"
	"github.com/artsmap/artsmap/internal/session"
)

// Endpoint names one external neighborhood polygon service.
type Endpoint struct {
	Name string
	URL  string
}

// Options configures Open.
type Options struct {
	// FeaturesURL is the upstream feature snapshot endpoint.
	FeaturesURL string
	// FeaturesFile loads the snapshot from a local file instead.
	// Takes precedence over FeaturesURL when both are set.
	FeaturesFile string
	// BoundaryFile is the local town-boundary GeoJSON document. Optional.
	BoundaryFile string
	// NeighborhoodEndpoints are the external neighborhood polygon
	// services. Each is independently optional.
	NeighborhoodEndpoints []Endpoint
	// Logger receives load and fetch diagnostics. Defaults to
	// slog.Default.
	Logger *slog.Logger
}

// Dashboard is one single-user dashboard session over one feature
// snapshot.
//
// All methods are safe for concurrent use. Mutators (SetFilter, Select,
// CycleNext, Deselect) synchronously recompute every derived value, so
// reads issued afterwards always observe a consistent state.
type Dashboard struct {
	session *session.Session
}

// Open loads the feature snapshot and the optional reference layers, and
// returns a ready dashboard.
//
// A failed or malformed feature load is not fatal: the dashboard opens
// with an empty dataset and Err reports the failure, matching the
// renderer's empty-with-error display state. Reference layer failures are
// logged and degrade only the viewport layering.
//
// Example:
//
//	dash, err := artsmap.Open(ctx, artsmap.Options{
//	    FeaturesURL: "https://spaces.example.org/api/features",
//	    BoundaryFile: "data/town-boundaries.geojson",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, city := range dash.Cities() {
//	    fmt.Println(city)
//	}
func Open(ctx context.Context, opts Options) (*Dashboard, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	sess := session.New(log)
	client := refdata.NewClient(log)

	switch {
	case opts.FeaturesFile != "":
		data, err := os.ReadFile(opts.FeaturesFile)
		if err != nil {
			log.Error("feature snapshot unavailable", "path", opts.FeaturesFile, "error", err)
			sess.LoadFeatures(nil)
		} else {
			sess.LoadFeatures(data)
		}
	case opts.FeaturesURL != "":
		data, err := client.FetchFeatures(ctx, opts.FeaturesURL)
		if err != nil {
			log.Error("feature snapshot unavailable", "url", opts.FeaturesURL, "error", err)
			sess.LoadFeatures(nil)
		} else {
			sess.LoadFeatures(data)
		}
	}

	endpoints := make([]refdata.Endpoint, len(opts.NeighborhoodEndpoints))
	for i, ep := range opts.NeighborhoodEndpoints {
		endpoints[i] = refdata.Endpoint{Name: ep.Name, URL: ep.URL}
	}
	if opts.BoundaryFile != "" || len(endpoints) > 0 {
		sess.SetReferenceData(client.FetchAll(ctx, opts.BoundaryFile, endpoints))
	}

	return &Dashboard{session: sess}, nil
}

// Err returns the feature load error, if the initial load failed.
func (d *Dashboard) Err() error { return d.session.LoadErr() }

// Cities returns the sorted city facet of the full dataset.
func (d *Dashboard) Cities() []string { return d.session.Cities() }

// Neighborhoods returns the sorted neighborhood facet conditioned on the
// currently selected city.
func (d *Dashboard) Neighborhoods() []string { return d.session.Neighborhoods() }

// SetFilter replaces the filter selection. A neighborhood that does not
// belong to the new city's facet is cleared automatically.
func (d *Dashboard) SetFilter(f Filter) {
	d.session.SetFilter(dataset.FilterSelection{
		City:         f.City,
		Neighborhood: f.Neighborhood,
		Type:         dataset.SpaceType(f.Type),
	})
}

// Filter returns the current filter selection, after consistency rules.
func (d *Dashboard) Filter() Filter {
	sel := d.session.Filter()
	return Filter{
		City:         sel.City,
		Neighborhood: sel.Neighborhood,
		Type:         string(sel.Type),
	}
}

// Visible returns the filtered features in dataset order.
func (d *Dashboard) Visible() []Feature {
	return convertFeatures(d.session.Filtered())
}

// Select activates the feature with the given ID, as a marker or table-row
// click would, deriving its overlap group afresh. Reports false for an
// unknown ID.
func (d *Dashboard) Select(id string) bool { return d.session.Activate(id) }

// CycleNext advances through the overlap group, wrapping to the start.
func (d *Dashboard) CycleNext() { d.session.CycleNext() }

// Deselect clears the selection and its overlap group.
func (d *Dashboard) Deselect() { d.session.Deselect() }

// Selected returns the currently selected feature, if any.
func (d *Dashboard) Selected() (Feature, bool) {
	f, ok := d.session.Selected()
	if !ok {
		return Feature{}, false
	}
	return convertFeature(f), true
}

// Overlap returns the co-located feature group for the current selection,
// the index of the reported feature within it, and the group size.
func (d *Dashboard) Overlap() (group []Feature, index, size int) {
	g, index, size := d.session.Overlap()
	return convertFeatures(g), index, size
}

// Viewport returns the current view state, and false if no coordinates
// have ever been available to derive one.
func (d *Dashboard) Viewport() (ViewState, bool) {
	vs, ok := d.session.Viewport()
	return ViewState{Lon: vs.Lon, Lat: vs.Lat, Zoom: vs.Zoom}, ok
}

// Filter is the user's filter state. Empty fields are inactive. Type is
// one of "production", "presentation", "both", "unknown", or "" for all.
type Filter struct {
	City         string
	Neighborhood string
	Type         string
}

// ViewState is a map viewport: center coordinate and zoom level.
type ViewState struct {
	Lon  float64
	Lat  float64
	Zoom int
}

// Feature is one arts/cultural space as plain data.
type Feature struct {
	// ID is the session-stable identifier used with Select.
	ID string
	// Name is the space's display name.
	Name string
	// City and Neighborhood locate the space administratively.
	City         string
	Neighborhood string
	// Type is the derived space class: production, presentation, both,
	// or unknown.
	Type string
	// URL is the space's website, when known.
	URL string
	// Lon, Lat is the anchor coordinate the space is rendered at.
	Lon, Lat float64
}

func convertFeature(f dataset.Feature) Feature {
	out := Feature{
		ID:           f.ID(),
		Name:         f.Name(),
		City:         f.City(),
		Neighborhood: f.Neighborhood(),
		Type:         string(f.Class()),
		URL:          f.URL(),
	}
	if a, ok := f.Anchor(); ok {
		out.Lon = a[0]
		out.Lat = a[1]
	}
	return out
}

func convertFeatures(features []dataset.Feature) []Feature {
	if features == nil {
		return nil
	}
	out := make([]Feature, len(features))
	for i, f := range features {
		out[i] = convertFeature(f)
	}
	return out
}
