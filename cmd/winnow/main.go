package main

import (
	"os"

	"github.com/veldt-labs/winnow-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
