package main

import (
	"os"

	"github.com/rustyeddy/decade/cmd/decade/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
