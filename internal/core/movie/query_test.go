package movie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestOrderByFragment verifies that ORDER BY text is only ever produced from
the static column table.
*/
func TestOrderByFragment(t *testing.T) {
	tests := []struct {
		name  string
		field SortField
		order SortOrder
		want  string
	}{
		{"none", SortFieldNone, SortOrderUnsorted, ""},
		{"title_asc", SortFieldTitle, SortOrderAscending, " ORDER BY m.title ASC, m.id ASC"},
		{"title_desc", SortFieldTitle, SortOrderDescending, " ORDER BY m.title DESC, m.id ASC"},
		{"year_asc", SortFieldYear, SortOrderAscending, " ORDER BY m.yearofrelease ASC, m.id ASC"},
		{"year_unsorted_defaults_asc", SortFieldYear, SortOrderUnsorted, " ORDER BY m.yearofrelease ASC, m.id ASC"},
		{"unknown_field_yields_nothing", SortField("rating"), SortOrderAscending, ""},
		{"hostile_field_yields_nothing", SortField("title; --"), SortOrderDescending, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderByFragment(tt.field, tt.order))
		})
	}
}

/*
TestEscapeLike verifies that caller text is neutralized before it becomes an
ILIKE pattern: wildcards match literally, and the escape character cannot be
used to smuggle one through.
*/
func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "matrix", "matrix"},
		{"percent", "100%", `100\%`},
		{"underscore", "blade_runner", `blade\_runner`},
		{"backslash", `back\slash`, `back\\slash`},
		{"escaped_wildcard", `\%`, `\\\%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.input))
		})
	}
}

/*
TestNullableID verifies the anonymous-caller argument mapping.
*/
func TestNullableID(t *testing.T) {
	assert.Nil(t, nullableID(""))
	assert.Equal(t, "user-123", nullableID("user-123"))
}

/*
TestParseSort verifies direction prefixes and case folding on the sort query
parameter.
*/
func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantField SortField
		wantOrder SortOrder
	}{
		{"empty", "", SortFieldNone, SortOrderUnsorted},
		{"plain_ascending", "title", SortFieldTitle, SortOrderAscending},
		{"explicit_plus", "+title", SortFieldTitle, SortOrderAscending},
		{"descending", "-yearofrelease", SortFieldYear, SortOrderDescending},
		{"mixed_case", "TITLE", SortFieldTitle, SortOrderAscending},
		{"unknown_field_passes_through", "rating", SortField("rating"), SortOrderAscending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, order := parseSort(tt.raw)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}
