package main

import (
	"os"

	"github.com/gzhole/threatlens/internal/cli"
)

func main() {
	// cobra has already printed the error.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
