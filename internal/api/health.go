// Copyright (c) 2026 Cinelog Authors. All rights reserved.

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmtan/cinelog/internal/platform/apperr"
	"github.com/nmtan/cinelog/internal/platform/constants"
	"github.com/nmtan/cinelog/internal/platform/respond"
)

const readinessProbeTimeout = 2 * time.Second

// handleLiveness reports that the process is up. It never touches a
// dependency, so orchestrators can tell a hung process from a degraded one.
func handleLiveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		"status":  "ok",
		"version": constants.AppVersion,
	})
}

// handleReadiness reports whether the server can do useful work, which for
// this service means the database answers a ping.
func handleReadiness(pool *pgxpool.Pool) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ctx, cancel := context.WithTimeout(request.Context(), readinessProbeTimeout)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			respond.Error(writer, request, apperr.ServiceUnavailable("Database unreachable"))
			return
		}

		respond.OK(writer, map[string]string{"status": "ready"})
	}
}
