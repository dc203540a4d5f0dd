// Package main is the entry point for the ipoctl console.
package main

import (
	"os"

	"github.com/iWorld-y/ipo_radar/app/console/cmd/ipoctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
