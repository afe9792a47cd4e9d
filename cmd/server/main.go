package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/agentsynergy/internal/buildinfo"
	"github.com/dmitrijs2005/agentsynergy/internal/logging"
	"github.com/dmitrijs2005/agentsynergy/internal/server"
	"github.com/dmitrijs2005/agentsynergy/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stdout)

	app := server.NewApp(cfg, logger)
	app.Run(ctx)

}
