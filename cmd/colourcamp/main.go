// colourcamp converts colours between representations and manages camps:
// named collections of colours, palettes, scales and maps saved on disk.
package main

import (
	"github.com/jmylchreest/colourcamp/internal/cli"
)

func main() {
	cli.Execute()
}
