// Copyright (c) 2026 Cinelog Authors. All rights reserved.

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps the standard UUID library to specifically generate Version 7 values,
which are optimized for database performance.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Friendly: Prevents index fragmentation in PostgreSQL (B-tree optimal).
  - Compact: 128-bit storage, compatible with standard 'uuid' types.

This is the ID type for all movie primary keys.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// # Inspection

// IsValid reports whether s parses as a UUID of any version.
//
// Lookup endpoints accept either a UUID or a slug in the same path segment;
// IsValid decides which lookup strategy applies.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
