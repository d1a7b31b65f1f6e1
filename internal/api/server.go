// Copyright (c) 2026 Cinelog Authors. All rights reserved.

// Package api assembles the HTTP surface: router, middleware chain, health
// probes, and server lifecycle.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmtan/cinelog/internal/core/movie"
	"github.com/nmtan/cinelog/internal/core/rating"
	"github.com/nmtan/cinelog/internal/platform/config"
	"github.com/nmtan/cinelog/internal/platform/constants"
	"github.com/nmtan/cinelog/internal/platform/middleware"
)

// Dependencies bundles everything the server needs, wired in main.
type Dependencies struct {
	Config   *config.Config
	Logger   *slog.Logger
	Pool     *pgxpool.Pool
	Verifier middleware.TokenVerifier
	Movies   *movie.Handler
	Ratings  *rating.Handler
}

// Server wraps the HTTP server with its configured router.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New builds the router and the HTTP server around it. The context bounds the
// lifetime of background middleware work (rate limiter cleanup).
func New(ctx context.Context, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + deps.Config.ServerPort,
			Handler:           newRouter(ctx, deps),
			ReadTimeout:       constants.DefaultReadTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
		logger: deps.Logger,
	}
}

// newRouter mounts the middleware chain and the versioned API routes.
//
// Chain order matters: tracing and logging first so every later stage is
// correlated, then the guards, then authentication so handlers below see the
// caller's claims.
func newRouter(ctx context.Context, deps Dependencies) chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.CleanPath)
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(deps.Logger))
	router.Use(chimiddleware.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(ctx))
	router.Use(middleware.PanicRecovery(deps.Logger))
	router.Use(middleware.CORS(deps.Config))
	router.Use(middleware.Authenticate(deps.Verifier))

	router.Get("/healthz", handleLiveness)
	router.Get("/readyz", handleReadiness(deps.Pool))

	router.Route("/api/v1", func(apiRouter chi.Router) {
		apiRouter.Route("/movies", func(moviesRouter chi.Router) {
			deps.Movies.Register(moviesRouter)
			deps.Ratings.RegisterMovieRoutes(moviesRouter)
		})
		apiRouter.Route("/ratings", deps.Ratings.Register)
	})

	return router
}

// Start runs the server until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
