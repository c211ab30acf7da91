// Command spiritlands is a terminal travel guide to famous aircraft and
// volcanoes.
package main

import (
	"context"
	"os"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	AppName string = "spiritlands"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		os.Exit(1)
	}
}
