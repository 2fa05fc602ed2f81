// Package main provides the entry point for the tasksync CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tasksync/tasksync/internal/cli"
)

// Build information set via ldflags.
var (
	version = "" //nolint:gochecknoglobals // set by ldflags
	commit  = "" //nolint:gochecknoglobals // set by ldflags
	date    = "" //nolint:gochecknoglobals // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cli.Execute(ctx, cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	cli.CloseLogFile()
	if err != nil {
		cli.RenderError(os.Stderr, err)
		os.Exit(cli.ExitCodeForError(err))
	}
}
