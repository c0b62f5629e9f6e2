// Package main is the entry point for the phantomhand CLI.
package main

import (
	"os"

	"github.com/oh-yeah-zzy/PhantomHand/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
