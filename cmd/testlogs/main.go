// Package main is the entry point for the testlogs CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/testlogs/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
