package main

import (
	"os"

	"github.com/nuckecy/sidekick/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
