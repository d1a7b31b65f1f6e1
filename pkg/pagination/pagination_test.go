// Copyright (c) 2026 Cinelog Authors. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nmtan/cinelog/pkg/pagination"
)

/*
TestFromRequest verifies query parsing with clamping of invalid or excessive
values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/movies", 1, 10},
		{"explicit", "/movies?page=3&limit=20", 3, 20},
		{"max_limit", "/movies?limit=25", 1, 25},
		{"over_limit_clamped", "/movies?limit=9000", 1, 10},
		{"zero_page_clamped", "/movies?page=0", 1, 10},
		{"garbage_clamped", "/movies?page=abc&limit=-5", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", tt.url, nil))
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestNewMeta verifies the total-pages arithmetic, including the partial last
page.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 10, 42)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, 42, meta.Total)
	assert.Equal(t, 5, meta.TotalPages)

	empty := pagination.NewMeta(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

/*
TestParams_Offset verifies the page-to-offset mapping.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 30, pagination.Params{Page: 4, Limit: 10}.Offset())
}
