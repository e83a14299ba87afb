// mkicon writes a single coffee-cart icon PNG from the procedural drawing.
// Usage: go run ./cmd/mkicon <output.png> [size]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Mavwarf/appicon/internal/manifest"
	"github.com/Mavwarf/appicon/internal/raster"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "Usage: mkicon <output.png> [size]\n")
		os.Exit(1)
	}
	size := 256
	if len(os.Args) == 3 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n < 1 || n > manifest.MaxSize {
			fmt.Fprintf(os.Stderr, "Error: size must be a number between 1 and %d\n", manifest.MaxSize)
			os.Exit(1)
		}
		size = n
	}
	if err := (raster.Procedural{}).Render(size, os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created %s (%dx%d)\n", os.Args[1], size, size)
}
