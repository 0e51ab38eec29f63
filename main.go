package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/msomdec/recipe-api/internal/cli"
)

func main() {
	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := cli.New().Run(ctx, os.Args)
	stop()
	if err != nil {
		slog.Error("recipes", "error", err)
		os.Exit(1)
	}
}
