// Package httpserver wires the demo service's handlers, middleware, and
// lifecycle around a single net/http server.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"git.home.luguber.info/inful/demoapi/internal/config"
	derrors "git.home.luguber.info/inful/demoapi/internal/errors"
	"git.home.luguber.info/inful/demoapi/internal/metrics"
	"git.home.luguber.info/inful/demoapi/internal/server/handlers"
	smw "git.home.luguber.info/inful/demoapi/internal/server/middleware"
)

// Server manages the demo service's HTTP endpoints.
type Server struct {
	srv    *http.Server
	cfg    *config.Config
	logger *slog.Logger

	monitoringHandlers *handlers.MonitoringHandlers
	businessHandlers   *handlers.BusinessHandlers
	simulationHandlers *handlers.SimulationHandlers

	mchain func(http.Handler) http.Handler
}

// New constructs the HTTP server wiring. sim may be nil, in which case the
// production RandomSimulator is used.
func New(cfg *config.Config, app *metrics.App, logger *slog.Logger, sim handlers.Simulator) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if sim == nil {
		sim = handlers.RandomSimulator{}
	}

	s := &Server{
		cfg:                cfg,
		logger:             logger,
		monitoringHandlers: handlers.NewMonitoringHandlers(app, logger),
		businessHandlers:   handlers.NewBusinessHandlers(app, sim, logger),
		simulationHandlers: handlers.NewSimulationHandlers(app, sim, logger),
		mchain:             smw.Chain(logger, derrors.NewHTTPErrorAdapter(logger), app),
	}

	s.srv = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}
	return s
}

// Handler returns the fully wired route tree, middleware included.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.monitoringHandlers.HandleRoot)
	mux.HandleFunc("/health", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("/metrics", s.monitoringHandlers.HandleMetrics)
	mux.HandleFunc("/analytics/metrics", s.monitoringHandlers.HandleAnalytics)
	mux.HandleFunc("/users/register", s.businessHandlers.HandleRegisterUser)
	mux.HandleFunc("/orders", s.businessHandlers.HandleProcessOrder)
	mux.HandleFunc("/simulate/load", s.simulationHandlers.HandleSimulateLoad)
	mux.HandleFunc("/simulate/error", s.simulationHandlers.HandleSimulateError)
	return s.mchain(mux)
}

// Start binds the listen address and serves in a background goroutine.
// Binding happens up front so an occupied port fails here rather than
// surfacing later as a goroutine log line.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.srv.Addr, err)
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	s.logger.Info("HTTP server started", slog.String("addr", s.srv.Addr))
	return nil
}

// Stop gracefully shuts the server down, waiting for in-flight requests
// up to the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
