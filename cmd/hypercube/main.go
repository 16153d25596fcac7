// Hypercube - terminal 2x2x2x2 twisty puzzle with a solve timer.
package main

import (
	"github.com/SeamusWaldron/hypercube/internal/cli"
)

func main() {
	cli.Execute()
}
