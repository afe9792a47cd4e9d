// Package server wires the development backend: in-memory repositories,
// the user service and the HTTP API, with graceful shutdown on signals.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/agentsynergy/internal/buildinfo"
	"github.com/dmitrijs2005/agentsynergy/internal/logging"
	"github.com/dmitrijs2005/agentsynergy/internal/server/config"
	"github.com/dmitrijs2005/agentsynergy/internal/server/httpserver"
	"github.com/dmitrijs2005/agentsynergy/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/agentsynergy/internal/server/repositories/users"
	"github.com/dmitrijs2005/agentsynergy/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *services.UserService
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	us := services.NewUserService(users.NewMemoryRepository(), refreshtokens.NewMemoryRepository(), c)
	return &App{config: c, logger: logger, userService: us}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpserver.NewHTTPServer(app.config.ListenAddr, app.logger, app.userService, buildinfo.Version)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
