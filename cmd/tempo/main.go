// Package main provides the entry point for the tempo CLI.
package main

import (
	"context"
	"os"

	"github.com/focusfoundry/tempo/internal/cli"
	"github.com/focusfoundry/tempo/internal/signal"
)

// Build metadata injected via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	h := signal.NewHandler(context.Background())
	defer h.Stop()

	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(h.Context(), info); err != nil {
		os.Exit(1)
	}
}
