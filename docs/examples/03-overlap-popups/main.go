package main

import (
	"context"
	"fmt"
	"log"

	"github.com/artsmap/artsmap/pkg/artsmap"
)

// Demonstrates popup disambiguation for markers rendered at the same
// coordinate: click one, then cycle through its co-located neighbors.
func main() {
	dash, err := artsmap.Open(context.Background(), artsmap.Options{
		FeaturesFile: "features.json",
	})
	if err != nil {
		log.Fatal(err)
	}

	visible := dash.Visible()
	if len(visible) == 0 {
		log.Fatal("no features loaded")
	}

	// Simulate a marker click on the first visible feature
	dash.Select(visible[0].ID)

	group, index, size := dash.Overlap()
	if size == 0 {
		fmt.Println("No co-located features at this marker")
		return
	}

	fmt.Printf("%d features share this point:\n", size)
	for i, f := range group {
		marker := " "
		if i == index {
			marker = ">"
		}
		fmt.Printf("%s %d/%d %s\n", marker, i+1, size, f.Name)
	}

	// The popup's "next" control
	for i := 0; i < size; i++ {
		dash.CycleNext()
		if f, ok := dash.Selected(); ok {
			fmt.Printf("next -> %s\n", f.Name)
		}
	}
}
