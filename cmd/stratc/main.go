package main

import (
	"os"

	"github.com/Carnage203/nl-to-dsl-strategy-compiler/cmd/stratc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
