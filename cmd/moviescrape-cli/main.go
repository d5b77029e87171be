// Package main is the entry point for the moviescrape CLI.
package main

import (
	"os"

	"github.com/ChaitanyaVootla/movie-browser-api/cmd/moviescrape-cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
