package main

import (
	"os"

	"github.com/runnerr0/linkpad/internal/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	// go-flags prints parse and command errors itself (goflags.Default).
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
