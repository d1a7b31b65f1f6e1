// Copyright (c) 2026 Cinelog Authors. All rights reserved.

package query_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtan/cinelog/pkg/query"
)

/*
TestGet verifies trimming and absence handling.
*/
func TestGet(t *testing.T) {
	values := url.Values{"title": {"  matrix  "}}

	assert.Equal(t, "matrix", query.Get(values, "title"))
	assert.Empty(t, query.Get(values, "missing"))
}

/*
TestOptionalInt verifies that absence, presence, and malformed input stay
distinguishable. Filtering by year 0 and not filtering at all are different
queries.
*/
func TestOptionalInt(t *testing.T) {
	values := url.Values{
		"year":    {"1999"},
		"zero":    {"0"},
		"garbage": {"abc"},
	}

	year := query.OptionalInt(values, "year")
	require.NotNil(t, year)
	assert.Equal(t, 1999, *year)

	zero := query.OptionalInt(values, "zero")
	require.NotNil(t, zero)
	assert.Equal(t, 0, *zero)

	assert.Nil(t, query.OptionalInt(values, "garbage"))
	assert.Nil(t, query.OptionalInt(values, "missing"))
}
