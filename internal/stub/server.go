// Package stub serves the learning-journal backend API from memory, for local
// development and tests.
package stub

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/internai/internal/config"
	"go.uber.org/zap"
)

// AppName is reported by the health route.
const AppName = "internai-stub"

// Server is the HTTP server for the stub backend.
type Server struct {
	store   *Store
	config  *config.StubConfig
	logger  *zap.Logger
	version string
	server  *http.Server
}

// NewServer creates a server backed by store.
func NewServer(store *Store, cfg *config.StubConfig, logger *zap.Logger, version string) *Server {
	return &Server{
		store:   store,
		config:  cfg,
		logger:  logger,
		version: version,
	}
}

// Handler returns the router with every backend route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/logs/daily", s.handleCreateLog)
		r.Get("/logs/daily", s.handleListLogs)
		r.Get("/logs/daily/{date}", s.handleGetLog)
		r.Post("/reasoning/summarize", s.handleSummarize)
		r.Post("/reasoning/explain", s.handleExplain)
		r.Post("/reasoning/search", s.handleSearch)
		r.Get("/reasoning/guidance", s.handleGuidance)
	})
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Mount("/", s.Handler())

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting stub backend", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
