// Package main is the single-binary entrypoint for TimeScore.
package main

import "github.com/timescore-labs/timescore/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
