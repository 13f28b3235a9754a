// Package httpapi is the HTTP boundary: a chi router that authenticates bearer
// tokens, decodes and validates request bodies and maps service errors onto
// status codes.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/thenoetrevino/tally/internal/app"
	"github.com/thenoetrevino/tally/internal/config"
)

const shutdownTimeout = 30 * time.Second

// Server wires the application services to HTTP routes
type Server struct {
	app        *app.App
	cfg        config.ServerConfig
	pagination config.PaginationConfig
	metrics    *Metrics
	validate   *validator.Validate
	logger     *slog.Logger
	heartbeat  time.Duration
	handler    http.Handler
}

// NewServer builds the router for a
func NewServer(a *app.App, cfg *config.Config) *Server {
	s := &Server{
		app:        a,
		cfg:        cfg.Server,
		pagination: cfg.Pagination,
		metrics:    NewMetrics(),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     a.Logger,
		heartbeat:  15 * time.Second,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics returns the live request counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.cfg.RequestTimeout))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", s.handleRegister)
				r.Post("/login", s.handleLogin)
			})

			r.Group(func(r chi.Router) {
				r.Use(s.authenticate)

				r.Route("/projects", func(r chi.Router) {
					r.Get("/user/{username}", s.handleListProjects)
					r.Post("/", s.handleCreateProject)
					r.Put("/", s.handleUpdateProject)
					r.Delete("/{id}", s.handleDeleteProject)
				})

				r.Route("/tasks", func(r chi.Router) {
					r.Get("/project/{projectId}", s.handleListTasks)
					r.Post("/", s.handleCreateTask)
					r.Put("/", s.handleUpdateTask)
					r.Delete("/{id}", s.handleDeleteTask)
				})

				r.Route("/analytics", func(r chi.Router) {
					r.Get("/totalTasks/{projectId}", s.handleTotalTasks)
					r.Get("/totalCompletdTasks/{projectId}", s.handleCompletedTasks)
					r.Get("/progression/{projectId}", s.handleProgression)
					r.Get("/summary/{projectId}", s.handleSummary)
				})

				r.Get("/metrics", s.handleMetrics)
			})
		})

		// Streams outlive the request timeout
		r.With(s.authenticate).Get("/events", s.handleEvents)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Closing the broker ends open event streams so Shutdown can finish
	if s.app.Broker != nil {
		_ = s.app.Broker.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped gracefully")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot(s.app.Broker))
}
