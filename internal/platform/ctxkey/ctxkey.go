// Copyright (c) 2026 Cinelog Authors. All rights reserved.

// Package ctxkey defines the private key types used for [context.Context] values.
//
// Keys live in their own package so that ctxutil, middleware, and respond can
// share them without import cycles.
package ctxkey

type contextKey string

const (
	// KeyRequestID stores the correlation ID for the current request.
	KeyRequestID contextKey = "request_id"

	// KeyLogger stores the request-scoped *slog.Logger.
	KeyLogger contextKey = "logger"

	// KeyUser stores the authenticated caller's claims, when present.
	KeyUser contextKey = "auth_user"
)
