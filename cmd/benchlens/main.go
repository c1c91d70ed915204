package main

import (
	"os"

	"benchlens/cmd/benchlens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
