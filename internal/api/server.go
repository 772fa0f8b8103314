// Package api exposes the credibility pipeline over HTTP. It is thin
// I/O plumbing: request validation and serialization only, no scoring
// logic.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/pipeline"
)

// Server routes HTTP requests to the analyzer.
type Server struct {
	router   *chi.Mux
	analyzer *pipeline.Analyzer
	history  *History
	log      *slog.Logger
}

// NewServer builds the HTTP server around an analyzer.
func NewServer(analyzer *pipeline.Analyzer, cfg model.ServerConfig, log *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s := &Server{
		router:   r,
		analyzer: analyzer,
		history:  NewHistory(cfg.HistorySize, time.Duration(cfg.HistoryTTL)*time.Second),
		log:      log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/history", s.handleHistory)
	})
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
