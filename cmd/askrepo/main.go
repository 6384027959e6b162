// Package main is the entry point for the askrepo CLI.
//
// askrepo provisions one TSBX sandbox per social media mention so an agent
// can answer the question asked in it. Provisioning is idempotent per
// mention: a mention that already has a sandbox is left alone.
//
// Commands: exists, create, ensure, version.
//
// For detailed usage information, run:
//
//	askrepo --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/askrepo/askrepo/cmd/askrepo/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
