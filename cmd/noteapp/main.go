package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/reishandy/noteapp/internal/cli"
	"github.com/reishandy/noteapp/internal/config"
	"github.com/reishandy/noteapp/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		os.Exit(1)
	}
	defer app.Close()

	app.Run(ctx)
}
