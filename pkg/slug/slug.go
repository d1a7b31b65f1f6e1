// Copyright (c) 2026 Cinelog Authors. All rights reserved.

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are the human-readable identifiers for movies (e.g.,
// "the-matrix-1999"). This package handles normalization, accent removal,
// and character sanitization; uniqueness is enforced at storage.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// multiHyphen collapses multiple consecutive hyphens into one.
var multiHyphen = regexp.MustCompile(`-{2,}`)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Replaces non-alphanumeric characters with hyphens.
// 5. Collapses multiple hyphens and trims leading/trailing hyphens.
func From(s string) string {
	// Normalize and strip accents.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = strings.ToLower(result)

	// Replace anything outside [a-z0-9] with hyphens. Non-ASCII letters that
	// survived normalization (e.g. CJK) are replaced too; a slug is ASCII.
	result = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, result)

	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// ForMovie derives the canonical movie slug from a title and release year,
// e.g. ("The Matrix", 1999) → "the-matrix-1999".
func ForMovie(title string, yearOfRelease int) string {
	return From(fmt.Sprintf("%s %d", title, yearOfRelease))
}
