// Copyright (c) 2026 Cinelog Authors. All rights reserved.

// Command api runs the Cinelog HTTP server: a movie catalog with per-user
// ratings backed by PostgreSQL.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nmtan/cinelog/internal/api"
	"github.com/nmtan/cinelog/internal/core/movie"
	"github.com/nmtan/cinelog/internal/core/rating"
	"github.com/nmtan/cinelog/internal/platform/config"
	"github.com/nmtan/cinelog/internal/platform/constants"
	"github.com/nmtan/cinelog/internal/platform/migration"
	"github.com/nmtan/cinelog/internal/platform/postgres"
	"github.com/nmtan/cinelog/internal/platform/sec"
)

func main() {
	if err := run(); err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})).
		With("app", constants.AppName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	tokenService, err := sec.NewTokenService(cfg.TokenSecret, constants.AuthIssuer)
	if err != nil {
		return err
	}

	movieRepo := movie.NewPostgresRepository(pool)
	movieService := movie.NewService(movieRepo)

	ratingRepo := rating.NewPostgresRepository(pool)
	ratingService := rating.NewService(ratingRepo, movieRepo)

	server := api.New(ctx, api.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Pool:     pool,
		Verifier: tokenService,
		Movies:   movie.NewHandler(movieService),
		Ratings:  rating.NewHandler(ratingService),
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
