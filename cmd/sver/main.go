// Package main is the entry point for the sver CLI.
package main

import (
	"os"

	"github.com/sver/sver/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
