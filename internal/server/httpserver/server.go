// Package httpserver exposes the dev backend's REST API: health, auth and
// the current user's profile, mounted under common.APIPrefix.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/agentsynergy/internal/common"
	"github.com/dmitrijs2005/agentsynergy/internal/logging"
	"github.com/dmitrijs2005/agentsynergy/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ServiceName     = "agentsynergy-dev"
	shutdownTimeout = 5 * time.Second
)

type HTTPServer struct {
	address  string
	users    *services.UserService
	logger   logging.Logger
	version  string
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, version string) *HTTPServer {
	reg := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentsynergy_dev_http_requests_total",
		Help: "HTTP requests served by the dev backend",
	}, []string{"code", "method"})
	reg.MustRegister(requests)

	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		users:    us,
		version:  version,
		registry: reg,
		requests: requests,
	}
}

// Router builds the chi route tree.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(func(next http.Handler) http.Handler {
		return promhttp.InstrumentHandlerCounter(s.requests, next)
	})

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route(common.APIPrefix, func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/refresh", s.handleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/auth/logout", s.handleLogout)
			r.Get("/auth/me", s.handleMe)
			r.Get("/users/me", s.handleMe)
			r.Put("/users/me", s.handleUpdateMe)
			r.Delete("/users/me", s.handleDeleteMe)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
