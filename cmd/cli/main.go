package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/vrmarket/vrmarket/internal/client/cli"
	"github.com/vrmarket/vrmarket/internal/client/config"
	"github.com/vrmarket/vrmarket/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app := cli.NewApp(cfg, logger)
	app.Run(ctx)
}
