// Package server exposes the HTTP surface: feedback intake, listing,
// semantic search, analytics, and a health probe.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/poiesic/pulse/ingestion"
	"github.com/poiesic/pulse/search"
	"github.com/poiesic/pulse/storage"
)

// DefaultSearchTimeout bounds a single search request.
const DefaultSearchTimeout = 30 * time.Second

// Server holds the handler dependencies for the HTTP API.
type Server struct {
	pipeline      *ingestion.Pipeline
	searcher      *search.Searcher
	repository    storage.FeedbackRepository
	logger        *slog.Logger
	searchTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// WithSearchTimeout bounds each search request.
// Default is DefaultSearchTimeout.
func WithSearchTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.searchTimeout = timeout
		}
	}
}

// NewServer creates the HTTP server facade.
func NewServer(
	pipeline *ingestion.Pipeline,
	searcher *search.Searcher,
	repository storage.FeedbackRepository,
	opts ...Option,
) *Server {
	s := &Server{
		pipeline:      pipeline,
		searcher:      searcher,
		repository:    repository,
		logger:        slog.Default(),
		searchTimeout: DefaultSearchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/ingest", s.handleIngest)
	r.Get("/all", s.handleListAll)
	r.Get("/search", s.handleSearch)
	r.Get("/analytics", s.handleAnalytics)
	r.Get("/health", s.handleHealth)

	return r
}
