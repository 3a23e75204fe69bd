package main

import (
	"os"

	"github.com/wesleyorama2/parley/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
