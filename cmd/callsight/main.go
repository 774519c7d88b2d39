// Package main is the entry point for the callsight CLI.
package main

import (
	"os"

	"github.com/callsight/callsight/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
