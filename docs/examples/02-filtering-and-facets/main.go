package main

import (
	"context"
	"fmt"
	"log"

	"github.com/artsmap/artsmap/pkg/artsmap"
)

func main() {
	dash, err := artsmap.Open(context.Background(), artsmap.Options{
		FeaturesFile: "features.json",
	})
	if err != nil {
		log.Fatal(err)
	}

	// Narrow to one city; the neighborhood facet follows the city
	dash.SetFilter(artsmap.Filter{City: "Cambridge"})
	fmt.Printf("Cambridge neighborhoods: %v\n", dash.Neighborhoods())

	// Then to presentation spaces in one neighborhood
	dash.SetFilter(artsmap.Filter{
		City:         "Cambridge",
		Neighborhood: "Inman Square",
		Type:         "presentation",
	})
	for _, f := range dash.Visible() {
		fmt.Printf("%s (%s) at [%.4f,%.4f]\n", f.Name, f.Type, f.Lon, f.Lat)
	}

	// Switching city re-validates the neighborhood: an Inman Square
	// selection does not survive a move to Boston.
	dash.SetFilter(artsmap.Filter{City: "Boston", Neighborhood: "Inman Square"})
	fmt.Printf("After city switch, neighborhood = %q\n", dash.Filter().Neighborhood)
}
