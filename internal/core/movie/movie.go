package movie

// Movie is the catalog's central entity: scalar fields stored on the movies
// row, genres stored as owned child rows, and two read-time enrichments
// computed from the ratings relation.
type Movie struct {
	// ID is the UUID primary key.
	ID string `json:"id"`
	// Slug is the unique human-readable identifier ("the-matrix-1999").
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	YearOfRelease int    `json:"yearOfRelease"`
	// Genres is a set: no duplicates, order not significant.
	Genres []string `json:"genres"`

	// Rating is the mean of all stored ratings, nil when none exist.
	Rating *float64 `json:"rating,omitempty"`
	// UserRating is the calling user's own rating. It is populated only when
	// a caller id was supplied for the read, nil otherwise.
	UserRating *int `json:"userRating,omitempty"`
}

// JSON field identifiers shared by validation messages and handlers.
const (
	FieldTitle    = "title"
	FieldYear     = "yearOfRelease"
	FieldGenres   = "genres"
	FieldSlug     = "slug"
	FieldPage     = "page"
	FieldPageSize = "pageSize"
	FieldSort     = "sortField"
)

// SortField identifies a column the listing may be ordered by.
//
// The set of values is closed: anything a caller sends is matched against
// [SortFieldTitle] and [SortFieldYear] during validation, and only the
// matched constant — never caller text — participates in query composition.
type SortField string

const (
	// SortFieldNone means no ORDER BY is applied; result order is then
	// storage-defined and not guaranteed.
	SortFieldNone  SortField = ""
	SortFieldTitle SortField = "title"
	SortFieldYear  SortField = "yearofrelease"
)

// SortOrder is the direction applied to a sort field.
type SortOrder int

const (
	SortOrderUnsorted SortOrder = iota
	SortOrderAscending
	SortOrderDescending
)
