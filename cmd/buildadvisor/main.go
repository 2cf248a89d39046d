// buildadvisor - item build recommendations learned from ranked matches.
package main

import (
	"runtime/debug"

	"github.com/buildadvisor/internal/cmd"
)

func init() {
	// Training holds the whole table set in memory; collect a bit more
	// eagerly than the default.
	debug.SetGCPercent(50)
}

func main() {
	cmd.Execute()
}
