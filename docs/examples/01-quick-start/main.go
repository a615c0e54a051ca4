package main

import (
	"context"
	"fmt"
	"log"

	"github.com/artsmap/artsmap/pkg/artsmap"
)

func main() {
	// Open a dashboard from a local feature snapshot
	dash, err := artsmap.Open(context.Background(), artsmap.Options{
		FeaturesFile: "features.json",
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := dash.Err(); err != nil {
		log.Fatal(err)
	}

	// Print the derived facets
	fmt.Printf("Cities: %v\n", dash.Cities())
	fmt.Printf("Spaces: %d\n", len(dash.Visible()))

	// Frame the map
	if vs, ok := dash.Viewport(); ok {
		fmt.Printf("Viewport: [%.4f,%.4f] zoom %d\n", vs.Lon, vs.Lat, vs.Zoom)
	}
}
