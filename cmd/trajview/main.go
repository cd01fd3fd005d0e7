// Package main is the entry point for the trajview CLI.
package main

import (
	"os"

	"github.com/trajview-io/trajview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
