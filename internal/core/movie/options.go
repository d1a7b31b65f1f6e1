package movie

import (
	"github.com/nmtan/cinelog/internal/platform/validate"
	"github.com/nmtan/cinelog/pkg/pagination"
)

// GetAllOptions is the query descriptor for listing movies. It is not a
// persisted entity: handlers construct it from query parameters, the service
// validates it, and the repository composes the final query from it.
type GetAllOptions struct {
	// Title filters by case-insensitive substring match when non-empty.
	Title string
	// Year filters by exact release year when non-nil.
	Year *int

	SortField SortField
	SortOrder SortOrder

	// Page is 1-indexed.
	Page     int
	PageSize int

	// UserID is the acting caller's id, attached after construction.
	// Empty means anonymous: listed movies then carry no user rating.
	UserID string
}

// Validate checks the options before they reach the repository, collecting
// every violation into one aggregated validation error rather than failing
// on the first.
//
// The sort field check is a security boundary: it ultimately participates in
// a query fragment and must never admit arbitrary caller-controlled text.
func (o GetAllOptions) Validate() error {
	v := &validate.Validator{}

	v.Min(FieldPage, o.Page, 1)
	v.Range(FieldPageSize, o.PageSize, 1, pagination.MaxLimit)

	if o.SortField != SortFieldNone {
		v.OneOf(FieldSort, string(o.SortField),
			string(SortFieldTitle),
			string(SortFieldYear),
		)
	}

	return v.Err()
}

// Offset returns the SQL OFFSET derived from Page and PageSize.
func (o GetAllOptions) Offset() int {
	if o.Page <= 1 {
		return 0
	}
	return (o.Page - 1) * o.PageSize
}
