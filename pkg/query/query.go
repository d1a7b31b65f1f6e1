package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Get returns the trimmed value of a query parameter, or "" when absent.
func Get(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// OptionalInt parses an integer query parameter, distinguishing absence from
// zero: a missing or malformed value yields nil.
//
// List filters need this distinction — filtering by year 0 and not filtering
// by year are different queries.
func OptionalInt(values url.Values, key string) *int {
	raw := Get(values, key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
