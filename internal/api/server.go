// Copyright (c) 2026 Vicinio. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vicinio/vicinio/internal/auth"
	"github.com/vicinio/vicinio/internal/community"
	"github.com/vicinio/vicinio/internal/platform/apperr"
	"github.com/vicinio/vicinio/internal/platform/config"
	"github.com/vicinio/vicinio/internal/platform/constants"
	"github.com/vicinio/vicinio/internal/platform/middleware"
	"github.com/vicinio/vicinio/internal/platform/respond"
	"github.com/vicinio/vicinio/internal/post"
	"github.com/vicinio/vicinio/internal/user"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the public entry routes (signup, login, recovery).
	Auth *auth.Handler

	// User handles member profile routes.
	User *user.Handler

	// Community handles membership protocol routes.
	Community *community.Handler

	// Post handles post routes, nested under a community.
	Post *post.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// Route layout: the entry routes are public; everything under /users and
// /communities requires a verified bearer token in the `token` header.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// Unknown paths and methods answer with the catalog envelope, not chi's
	// plain-text default. Set before mounting so subrouters inherit them.
	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under the versioned prefix.
	r.Route("/api/v2", func(api chi.Router) {

		// Protected groups first: their literal prefixes win over the
		// entry router's root mount.
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticate(verifier))

			protected.Mount("/users", h.User.Routes())

			communityRouter := h.Community.Routes()
			communityRouter.Mount("/{communityID}/posts", h.Post.Routes())
			protected.Mount("/communities", communityRouter)
		})

		// Entry routes live directly at the base path (/signup, /login, ...).
		api.Mount("/", h.Auth.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// notFoundHandler answers 404 with wire code 2001 for routes outside the
// contract.
func notFoundHandler(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.PageNotFound())
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
