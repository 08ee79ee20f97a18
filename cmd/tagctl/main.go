// Package main is the entry point for tagctl, the tag engine's operator CLI.
package main

import (
	"os"

	"github.com/pkordes/tagengine/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
