// Package config loads dashboard configuration from a YAML file with
// environment overrides, and resolves the map token from its fallback
// chain.
package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/artsmap/artsmap/internal/refdata"
)

// Configuration is the dashboard's static configuration.
type Configuration struct {
	// Listen is the HTTP listen address, e.g. ":8080".
	Listen string `yaml:"listen"`

	// FeaturesURL is the upstream source of the feature snapshot.
	// A file path may be used instead via FeaturesFile.
	FeaturesURL  string `yaml:"features_url"`
	FeaturesFile string `yaml:"features_file"`

	// BoundaryFile is the local GeoJSON document of town boundaries.
	BoundaryFile string `yaml:"boundary_file"`

	// NeighborhoodEndpoints are the external neighborhood polygon services,
	// each independently optional.
	NeighborhoodEndpoints []refdata.Endpoint `yaml:"neighborhood_endpoints"`

	// TokenURL is an optional upstream token endpoint.
	TokenURL string `yaml:"token_url"`
	// MapboxToken is the build-time/env token fallback.
	MapboxToken string `yaml:"mapbox_token"`
}

// Load reads the YAML file at path, then applies environment overrides:
// PORT, FEATURES_URL, and MAPBOX_TOKEN. A missing file is not an error;
// the configuration is then environment-only.
func Load(path string) (Configuration, error) {
	var cfg Configuration

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Configuration{}, err
			}
		} else if !os.IsNotExist(err) {
			return Configuration{}, err
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Listen = ":" + port
	}
	if u := os.Getenv("FEATURES_URL"); u != "" {
		cfg.FeaturesURL = u
	}
	if tok := os.Getenv("MAPBOX_TOKEN"); tok != "" {
		cfg.MapboxToken = tok
	}

	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	return cfg, nil
}
