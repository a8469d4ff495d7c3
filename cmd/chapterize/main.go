// Package main is the entry point for the chapterize CLI.
package main

import (
	"os"

	"github.com/chapterkit/chapterize/cmd/chapterize/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
