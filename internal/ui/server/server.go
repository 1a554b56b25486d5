package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jub0bs/cors"

	"github.com/ecosort/ecosort/internal/logger"
	"github.com/ecosort/ecosort/internal/metrics"
	"github.com/ecosort/ecosort/internal/ui/config"
	"github.com/ecosort/ecosort/internal/ui/routes"
)

// ErrorPages renders the page shown when a view fails
type ErrorPages interface {
	ErrorPage(message string) templ.Component
}

type Server struct {
	router  *chi.Mux
	config  *config.Config
	logger  *slog.Logger
	table   *routes.Table
	pages   ErrorPages
	metrics *metrics.Manager
	cors    *cors.Middleware
}

// NewServer creates the UI server. Every path not claimed by the health, version and metrics endpoints is resolved against table.
func NewServer(cfg *config.Config, logger *slog.Logger, table *routes.Table, pages ErrorPages, m *metrics.Manager) (*Server, error) {
	corsMiddleware, err := config.NewCORSMiddleware(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		table:   table,
		pages:   pages,
		metrics: m,
		cors:    corsMiddleware,
	}

	s.setupMiddleware()
	s.registerRoutes()
	return s, nil
}

// Router returns the UI server's router
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(config.RequestTimeout))
	s.router.Use(SecurityHeaders(s.config.Environment))
	s.router.Use(RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
	s.router.Use(CORS(s.cors))
}

func (s *Server) registerRoutes() {
	s.router.Get("/health/live", s.handleLiveness)
	s.router.Get("/version", s.handleVersion)
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}

	// page navigation, the route table decides what is served
	s.router.Get("/*", s.handleNavigate)
	s.router.Head("/*", s.handleNavigate)
}

// Start the UI server and block until ctx is cancelled or the listener fails
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("UI server listening",
			slog.String("address", addr),
			slog.String("environment", s.config.Environment),
			slog.String("api_base_url", s.config.APIBaseURL),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down UI server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
