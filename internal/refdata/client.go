package refdata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/artsmap/artsmap/internal/dataset"
)

// Endpoint names one external neighborhood polygon service.
type Endpoint struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Client fetches the feature snapshot and reference layers over HTTP.
type Client struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient returns a client using the given logger. A nil logger falls
// back to slog.Default.
func NewClient(log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// FetchFeatures retrieves the feature snapshot body. A transport error or
// non-200 status is a hard failure for the initial load.
func (c *Client) FetchFeatures(ctx context.Context, featuresURL string) ([]byte, error) {
	body, err := c.get(ctx, featuresURL)
	if err != nil {
		return nil, &dataset.ErrLoadFailure{Reason: "fetching features", Err: err}
	}
	return body, nil
}

// FetchNeighborhoods queries one neighborhood polygon endpoint. All
// endpoints are queried with identical parameters: every record, every
// field, WGS-84 output, GeoJSON format.
func (c *Client) FetchNeighborhoods(ctx context.Context, ep Endpoint) (*BoundarySet, error) {
	u, err := url.Parse(ep.URL)
	if err != nil {
		return nil, &ErrReferenceData{Source: ep.Name, Err: err}
	}
	q := u.Query()
	q.Set("where", "1=1")
	q.Set("outFields", "*")
	q.Set("outSR", "4326")
	q.Set("f", "geojson")
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, &ErrReferenceData{Source: ep.Name, Err: err}
	}

	return ParseNeighborhoodBoundaries(ep.Name, body)
}

// LoadRegionFile reads the local town-boundary GeoJSON document, keyed by
// the town property.
func LoadRegionFile(path string) (*BoundarySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrReferenceData{Source: path, Err: err}
	}
	return ParseRegionBoundaries(path, data)
}

// FetchAll loads the region boundary file and every neighborhood endpoint
// concurrently. Each layer is independently optional: a failed load is
// logged and leaves its slot nil. There is no cancellation beyond ctx; a
// slow source only delays its own slot.
func (c *Client) FetchAll(ctx context.Context, regionPath string, endpoints []Endpoint) *ReferenceData {
	ref := &ReferenceData{
		Neighborhoods: make([]*BoundarySet, len(endpoints)),
	}

	var wg sync.WaitGroup

	if regionPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set, err := LoadRegionFile(regionPath)
			if err != nil {
				c.log.Warn("region boundaries unavailable", "source", regionPath, "error", err)
				return
			}
			ref.Regions = set
		}()
	}

	for i, ep := range endpoints {
		wg.Add(1)
		go func(i int, ep Endpoint) {
			defer wg.Done()
			set, err := c.FetchNeighborhoods(ctx, ep)
			if err != nil {
				c.log.Warn("neighborhood polygons unavailable", "source", ep.Name, "error", err)
				return
			}
			ref.Neighborhoods[i] = set
		}(i, ep)
	}

	wg.Wait()
	return ref
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	return io.ReadAll(resp.Body)
}
