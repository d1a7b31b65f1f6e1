package rating

import "context"

// Repository is the storage contract for the ratings relation.
type Repository interface {
	// Rate stores or overwrites the user's vote for a movie in one statement.
	Rate(ctx context.Context, movieID, userID string, value int) error

	// Delete removes the user's vote for a movie. It reports whether a row
	// was affected; false means no such vote existed.
	Delete(ctx context.Context, movieID, userID string) (bool, error)

	// GetAggregate returns the rounded mean of all votes for a movie, nil
	// when the movie has no votes.
	GetAggregate(ctx context.Context, movieID string) (*float64, error)

	// GetAggregateForUser returns the aggregate plus the given user's own
	// vote. Either value is nil when absent.
	GetAggregateForUser(ctx context.Context, movieID, userID string) (*float64, *int, error)

	// ListForUser returns every vote the user has cast, joined with the
	// movie slugs.
	ListForUser(ctx context.Context, userID string) ([]MovieRating, error)
}
