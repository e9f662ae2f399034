// Package main is the entry point for the event-handler binary.
package main

import (
	"os"

	"github.com/bcwilsondotcom/nx-monorepo-template-sub001/cmd/event-handler/cmd"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
