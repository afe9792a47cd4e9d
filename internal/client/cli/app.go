package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/agentsynergy/internal/buildinfo"
	"github.com/dmitrijs2005/agentsynergy/internal/client/client"
	"github.com/dmitrijs2005/agentsynergy/internal/client/config"
	"github.com/dmitrijs2005/agentsynergy/internal/client/credentials"
	"github.com/dmitrijs2005/agentsynergy/internal/client/models"
	"github.com/dmitrijs2005/agentsynergy/internal/client/services"
	"github.com/dmitrijs2005/agentsynergy/internal/client/storage"
	"github.com/dmitrijs2005/agentsynergy/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	authService   services.AuthService
	agents        services.AgentService
	conversations services.ConversationService
	analytics     services.AnalyticsService
	integrations  services.IntegrationService
	creds         *credentials.Store
	repo          storage.Repository
	metrics       prometheus.Gatherer

	mu      sync.Mutex
	Mode    Mode
	session models.Session

	unsubscribe func()
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp opens local storage and wires the client and services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repo, err := storage.Open(ctx, c.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing storage: %w", err)
	}
	creds := credentials.NewStore(repo)

	reg := prometheus.NewRegistry()
	opts := []client.Option{
		client.WithAPIPrefix(c.APIPrefix),
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger.With("component", "http")),
		client.WithMetrics(client.NewMetrics(reg)),
	}
	if c.Tracing {
		opts = append(opts, client.WithTracing())
	}

	apiClient, err := client.New(c.APIBaseURL, creds, opts...)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, creds,
		services.WithCurrentUserPath(c.CurrentUserPath),
		services.WithAuthLogger(logger.With("component", "auth")))

	a := &App{
		config:        c,
		logger:        logger,
		authService:   as,
		agents:        services.NewAgentService(apiClient),
		conversations: services.NewConversationService(apiClient),
		analytics:     services.NewAnalyticsService(apiClient),
		integrations:  services.NewIntegrationService(apiClient),
		creds:         creds,
		repo:          repo,
		metrics:       reg,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}
	a.watchSession()
	return a, nil
}

// watchSession keeps a copy of the session for the prompt.
func (a *App) watchSession() {
	a.session = a.authService.Session()
	a.unsubscribe = a.authService.Subscribe(func(s models.Session) {
		a.mu.Lock()
		prev := a.session
		a.session = s
		a.mu.Unlock()

		if prev.CurrentUser != nil && s.CurrentUser == nil && s.Status == models.StatusUnauthenticated && !s.IsLoading {
			fmt.Fprintln(a.out, "You are logged out.")
		}
	})
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.CurrentUser != nil
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if u := a.session.CurrentUser; u != nil {
		s = u.Email + " "
	} else if a.session.Status != models.StatusUnauthenticated {
		s = string(a.session.Status) + " "
	}
	s += string(a.Mode)
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run restores the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	buildinfo.PrintBanner(a.out, "Agent Synergy")
	fmt.Fprintln(a.out, "Welcome to Agent Synergy CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	a.authService.Initialize(ctx)
	if s := a.authService.Session(); s.CurrentUser != nil {
		fmt.Fprintf(a.out, "Welcome back, %s\n", s.CurrentUser.DisplayName())
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.logger.Warn(context.Background(), "failed to close storage", "error", err)
		}
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// report prints a user-facing message for err.
func (a *App) report(err error) {
	var (
		expired *client.AuthExpiredError
		httpErr *client.HTTPError
	)
	switch {
	case errors.Is(err, services.ErrNotInitialized):
		fmt.Fprintln(a.out, "Still starting up, try again.")
	case errors.As(err, &expired):
		fmt.Fprintln(a.out, "Session expired, please log in again.")
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable.")
	case errors.As(err, &httpErr) && httpErr.Detail != "":
		fmt.Fprintln(a.out, "Error:", httpErr.Detail)
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}
