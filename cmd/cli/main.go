// chatretro - Chat Export Statistics
//
// chatretro parses a plain-text chat export and reports per-author activity,
// podiums, vocabulary, bursts and a weekday/hour heatmap.
package main

import (
	"os"

	"github.com/ccollicutt/chatretro/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
