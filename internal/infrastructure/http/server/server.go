// Package server provides the HTTP surface: a single interactive page plus a
// small JSON API over the query assistant.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/recipeql/v1/internal/domain/recipe"
	"github.com/recipeql/v1/internal/infrastructure/config"
	"github.com/recipeql/v1/internal/ports/inbound"
	"github.com/recipeql/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

//go:embed templates/*
var templatesFS embed.FS

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	logger      *zap.Logger
	router      *chi.Mux
	server      *http.Server
	templates   *template.Template
	assistant   inbound.QueryAssistant
	dataset     *recipe.Dataset
	completions outbound.CompletionService
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	assistant inbound.QueryAssistant,
	dataset *recipe.Dataset,
	completions outbound.CompletionService,
) *Server {
	s := &Server{
		config:      cfg,
		logger:      logger.Named("http"),
		assistant:   assistant,
		dataset:     dataset,
		completions: completions,
	}

	s.templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRouter configures all routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Post("/query", s.handleQueryPage)
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/query", s.handleQueryAPI)
	})

	return r
}

// requestLogger logs each request with zap.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())))
	})
}

// Start begins listening for requests.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}

// Router exposes the router for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
