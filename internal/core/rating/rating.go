// Package rating implements per-user movie ratings: a single integer vote per
// (user, movie) pair, aggregated into the catalog's average scores.
package rating

// Bounds for a single vote, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// FieldRating is the JSON field identifier used in validation messages.
const FieldRating = "rating"

// Rating is one user's vote for one movie. The (UserID, MovieID) pair is the
// identity: rating the same movie twice overwrites, it never duplicates.
type Rating struct {
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
	Value   int    `json:"rating"`
}

// MovieRating is one row of a user's rating history, carrying the movie's
// slug so clients can link back to the catalog without a second lookup.
type MovieRating struct {
	MovieID string `json:"movieId"`
	Slug    string `json:"slug"`
	Rating  int    `json:"rating"`
}
