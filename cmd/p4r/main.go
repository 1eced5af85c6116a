package main

import (
	"os"

	"github.com/bnema/p4runner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
