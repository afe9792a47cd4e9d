package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/agentsynergy/internal/client/cli"
	"github.com/dmitrijs2005/agentsynergy/internal/client/config"
	"github.com/dmitrijs2005/agentsynergy/internal/logging"
	"github.com/dmitrijs2005/agentsynergy/internal/telemetry"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)

	if cfg.Tracing {
		shutdown := telemetry.Setup(ctx, "agentsynergy-cli", logger)
		defer func() { _ = shutdown(context.Background()) }()
	}

	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
