// Package main is the entry point for the journalfmt CLI.
package main

import (
	"os"

	"github.com/pigeonworks-llc/journalfmt/cmd/journalfmt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
