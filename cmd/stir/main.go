package main

import (
	"os"

	"github.com/meenmo/stirfutures/cmd/stir/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
