// Copyright (c) 2026 Cinelog Authors. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Classification
//
// Three outcomes matter to callers and must stay distinguishable:
//
//   - Absence (no rows) — a normal outcome, mapped to [ErrNotFound].
//   - Unique-constraint violations — mapped to an apperr Conflict so the
//     caller can react specifically (duplicate slug, duplicate rating key).
//   - Everything else — wrapped as an internal error with the cause retained
//     for logging.
//
// Context cancellation passes through untouched: a cancelled operation must
// propagate as a cancellation, never be masked as a storage failure.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nmtan/cinelog/internal/platform/apperr"
)

// ErrNotFound is the sentinel returned when a queried row doesn't exist.
// Callers distinguish absence from failure via errors.Is(err, ErrNotFound).
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action string names the failed operation for server-side diagnostics.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Cancellation is not a storage failure. The repository guarantees the
	// enclosing transaction rolled back before this propagates.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// The original PgError stays on the cause chain so callers can tell
		// the two constraint classes apart and map them to their own
		// semantics (duplicate slug vs. vanished parent row).
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			conflict := apperr.Conflict("A record with the same unique key already exists")
			conflict.Cause = err
			return conflict
		case pgerrcode.ForeignKeyViolation:
			conflict := apperr.Conflict("The referenced record does not exist")
			conflict.Cause = err
			return conflict
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsConflict reports whether err classifies as a unique- or foreign-key
// constraint violation.
func IsConflict(err error) bool {
	ae := apperr.As(err)
	return ae != nil && ae.Code == "CONFLICT"
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505: a duplicate
// value on a unique index, such as an already-taken movie slug.
func IsUniqueViolation(err error) bool {
	return hasSQLState(err, pgerrcode.UniqueViolation)
}

// IsForeignKeyViolation reports whether err carries SQLSTATE 23503: a write
// referencing a row that does not exist, which under an existence-probe
// pattern means the parent vanished between the probe and the write.
func IsForeignKeyViolation(err error) bool {
	return hasSQLState(err, pgerrcode.ForeignKeyViolation)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
