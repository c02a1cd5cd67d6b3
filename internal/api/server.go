// Package api provides the HTTP API server and handlers for the PostDesk application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/postdeskapp/postdesk-server/internal/contacts"
	"github.com/postdeskapp/postdesk-server/internal/service"
	"github.com/postdeskapp/postdesk-server/internal/store/sqlite"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store            *sqlite.Store
	gateway          contacts.Gateway
	posts            *service.PostService
	router           *chi.Mux
	api              huma.API
	logger           *slog.Logger
	writeRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store *sqlite.Store, gateway contacts.Gateway, posts *service.PostService, writeRateLimiter *RateLimiter, logger *slog.Logger) *Server {
	s := &Server{
		store:            store,
		gateway:          gateway,
		posts:            posts,
		router:           chi.NewRouter(),
		logger:           logger,
		writeRateLimiter: writeRateLimiter,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("PostDesk API", "1.0.0")
	// Response bodies go out exactly as declared, without the $schema link
	// field the default transformer injects.
	humaConfig.Transformers = nil
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerPostRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if s.writeRateLimiter != nil {
		s.router.Use(WriteRateLimitMiddleware(s.writeRateLimiter, s.logger))
	}
}
