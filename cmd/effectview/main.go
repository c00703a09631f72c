// Command effectview renders an image through the shape, blur and progress
// effects and writes the result as PNG.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/effectview/cmd/effectview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
