package rating

import (
	"context"

	"github.com/nmtan/cinelog/internal/platform/ctxutil"
	"github.com/nmtan/cinelog/internal/platform/dberr"
	"github.com/nmtan/cinelog/internal/platform/validate"
)

// MovieCatalog is the slice of the movie domain this service needs: an
// existence probe, so a vote for an unknown movie is rejected as not-found
// instead of failing on the foreign key.
type MovieCatalog interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// Service implements the rating business logic.
type Service struct {
	repo   Repository
	movies MovieCatalog
}

// NewService constructs a rating service.
func NewService(repo Repository, movies MovieCatalog) *Service {
	return &Service{repo: repo, movies: movies}
}

// Rate records the user's vote for a movie, overwriting any previous vote.
// The value must lie in [MinRating, MaxRating] and the movie must exist.
func (s *Service) Rate(ctx context.Context, movieID, userID string, value int) error {
	v := &validate.Validator{}
	v.Range(FieldRating, value, MinRating, MaxRating)
	if err := v.Err(); err != nil {
		return err
	}

	exists, err := s.movies.ExistsByID(ctx, movieID)
	if err != nil {
		return err
	}
	if !exists {
		return dberr.ErrNotFound
	}

	if err := s.repo.Rate(ctx, movieID, userID, value); err != nil {
		// The movie was deleted between the existence probe and the upsert.
		if dberr.IsForeignKeyViolation(err) {
			return dberr.ErrNotFound
		}
		return err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "movie rated",
		"movie_id", movieID, "rating", value)

	return nil
}

// Delete removes the user's vote for a movie. Deleting a vote that does not
// exist returns not-found.
func (s *Service) Delete(ctx context.Context, movieID, userID string) error {
	deleted, err := s.repo.Delete(ctx, movieID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return dberr.ErrNotFound
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "rating deleted", "movie_id", movieID)

	return nil
}

// Aggregate returns the mean vote for a movie and, for authenticated callers,
// their own vote. The movie must exist; a movie with no votes yields nil
// values, not zeros.
func (s *Service) Aggregate(ctx context.Context, movieID, userID string) (*float64, *int, error) {
	exists, err := s.movies.ExistsByID(ctx, movieID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, dberr.ErrNotFound
	}

	if userID == "" {
		aggregate, err := s.repo.GetAggregate(ctx, movieID)
		return aggregate, nil, err
	}

	return s.repo.GetAggregateForUser(ctx, movieID, userID)
}

// ListForUser returns every vote the user has cast.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]MovieRating, error) {
	return s.repo.ListForUser(ctx, userID)
}
