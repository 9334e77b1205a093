// Package main provides the entry point for the woosync CLI tool.
package main

import (
	"os"

	"github.com/prowebkong/woosync/cmd/woosync/cmd"
	"github.com/prowebkong/woosync/pkg/logging"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cmd.Execute(version, commit, date); err != nil {
		logging.Err(err).Msg("woosync failed")
		os.Exit(1)
	}
}
