package movie_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmtan/cinelog/internal/core/movie"
	"github.com/nmtan/cinelog/internal/platform/apperr"
	"github.com/nmtan/cinelog/internal/platform/dberr"
	"github.com/nmtan/cinelog/pkg/pointer"
	"github.com/nmtan/cinelog/pkg/uuid"
)

// repoStub is a hand-rolled movie.Repository. Unset functions fall back to
// permissive defaults so each test only wires the calls it cares about.
type repoStub struct {
	createFn  func(ctx context.Context, m *movie.Movie) (bool, error)
	getByIDFn func(ctx context.Context, id, userID string) (*movie.Movie, error)
	getAllFn  func(ctx context.Context, options movie.GetAllOptions) ([]movie.Movie, error)
	countFn   func(ctx context.Context, title string, year *int) (int, error)
	updateFn  func(ctx context.Context, m *movie.Movie) (bool, error)
	deleteFn  func(ctx context.Context, id string) (bool, error)
	existsFn  func(ctx context.Context, id string) (bool, error)
}

func (s *repoStub) Create(ctx context.Context, m *movie.Movie) (bool, error) {
	if s.createFn != nil {
		return s.createFn(ctx, m)
	}
	return true, nil
}

func (s *repoStub) GetByID(ctx context.Context, id, userID string) (*movie.Movie, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id, userID)
	}
	return &movie.Movie{ID: id}, nil
}

func (s *repoStub) GetBySlug(ctx context.Context, slug, userID string) (*movie.Movie, error) {
	return &movie.Movie{Slug: slug}, nil
}

func (s *repoStub) GetAll(ctx context.Context, options movie.GetAllOptions) ([]movie.Movie, error) {
	if s.getAllFn != nil {
		return s.getAllFn(ctx, options)
	}
	return []movie.Movie{}, nil
}

func (s *repoStub) Count(ctx context.Context, title string, year *int) (int, error) {
	if s.countFn != nil {
		return s.countFn(ctx, title, year)
	}
	return 0, nil
}

func (s *repoStub) Update(ctx context.Context, m *movie.Movie) (bool, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, m)
	}
	return true, nil
}

func (s *repoStub) Delete(ctx context.Context, id string) (bool, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return true, nil
}

func (s *repoStub) ExistsByID(ctx context.Context, id string) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, id)
	}
	return true, nil
}

/*
TestService_Create_AssignsIdentifiers verifies that a movie submitted with
only content fields leaves the service with a generated id, a derived slug,
and a deduplicated genre set.
*/
func TestService_Create_AssignsIdentifiers(t *testing.T) {
	var persisted *movie.Movie
	repo := &repoStub{
		createFn: func(_ context.Context, m *movie.Movie) (bool, error) {
			persisted = m
			return true, nil
		},
	}
	service := movie.NewService(repo)

	m := &movie.Movie{
		Title:         "The Matrix",
		YearOfRelease: 1999,
		Genres:        []string{"Action", " Sci-Fi ", "Action"},
	}

	err := service.Create(context.Background(), m)
	require.NoError(t, err)

	assert.True(t, uuid.IsValid(m.ID))
	assert.Equal(t, "the-matrix-1999", m.Slug)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, m.Genres)
	assert.Same(t, m, persisted)
}

/*
TestService_Create_ValidationAggregates verifies that an invalid movie is
rejected with every violation reported, before any storage call.
*/
func TestService_Create_ValidationAggregates(t *testing.T) {
	var storageTouched bool
	repo := &repoStub{
		createFn: func(_ context.Context, _ *movie.Movie) (bool, error) {
			storageTouched = true
			return true, nil
		},
	}
	service := movie.NewService(repo)

	err := service.Create(context.Background(), &movie.Movie{})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	// Missing title, out-of-range year, empty genre set.
	assert.Len(t, ae.Details, 3)
	assert.False(t, storageTouched)
}

/*
TestService_Create_DuplicateSlug verifies that a storage-level unique
violation is translated into a conflict naming the contested slug.
*/
func TestService_Create_DuplicateSlug(t *testing.T) {
	repo := &repoStub{
		createFn: func(_ context.Context, _ *movie.Movie) (bool, error) {
			return false, dberr.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "create_movie")
		},
	}
	service := movie.NewService(repo)

	err := service.Create(context.Background(), &movie.Movie{
		Title:         "Heat",
		YearOfRelease: 1995,
		Genres:        []string{"Crime"},
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Contains(t, ae.Message, "heat-1995")
}

/*
TestService_Create_PreservesCommaGenres verifies that a genre name containing
a comma is a single legal set element all the way through: it survives
validation and reaches storage unsplit.
*/
func TestService_Create_PreservesCommaGenres(t *testing.T) {
	var persisted *movie.Movie
	repo := &repoStub{
		createFn: func(_ context.Context, m *movie.Movie) (bool, error) {
			persisted = m
			return true, nil
		},
	}
	service := movie.NewService(repo)

	err := service.Create(context.Background(), &movie.Movie{
		Title:         "True Romance",
		YearOfRelease: 1993,
		Genres:        []string{"Action, Adventure", "Crime"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Action, Adventure", "Crime"}, persisted.Genres)
}

/*
TestService_Update_NotFound verifies that the existence probe rejects an
unknown movie before any write is attempted.
*/
func TestService_Update_NotFound(t *testing.T) {
	var writeAttempted bool
	repo := &repoStub{
		existsFn: func(_ context.Context, _ string) (bool, error) {
			return false, nil
		},
		updateFn: func(_ context.Context, _ *movie.Movie) (bool, error) {
			writeAttempted = true
			return true, nil
		},
	}
	service := movie.NewService(repo)

	_, err := service.Update(context.Background(), &movie.Movie{
		ID:            "11111111-1111-1111-1111-111111111111",
		Title:         "Heat",
		YearOfRelease: 1995,
		Genres:        []string{"Crime"},
	}, "")

	assert.True(t, errors.Is(err, dberr.ErrNotFound))
	assert.False(t, writeAttempted)
}

/*
TestService_Update_DeletedBetweenProbeAndWrite verifies the race mapping: when
the movie vanishes after the existence probe, the genre insert's foreign-key
violation surfaces as not-found, never as a slug conflict.
*/
func TestService_Update_DeletedBetweenProbeAndWrite(t *testing.T) {
	repo := &repoStub{
		updateFn: func(_ context.Context, _ *movie.Movie) (bool, error) {
			return false, dberr.Wrap(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "insert_genres")
		},
	}
	service := movie.NewService(repo)

	_, err := service.Update(context.Background(), &movie.Movie{
		ID:            "11111111-1111-1111-1111-111111111111",
		Title:         "Heat",
		YearOfRelease: 1995,
		Genres:        []string{"Crime"},
	}, "")

	assert.True(t, errors.Is(err, dberr.ErrNotFound))
	assert.False(t, dberr.IsConflict(err))
}

/*
TestService_Update_ReturnsEnrichedRead verifies that a successful update is
answered with a fresh read carrying the rating enrichments for the caller.
*/
func TestService_Update_ReturnsEnrichedRead(t *testing.T) {
	const movieID = "11111111-1111-1111-1111-111111111111"

	repo := &repoStub{
		getByIDFn: func(_ context.Context, id, userID string) (*movie.Movie, error) {
			assert.Equal(t, movieID, id)
			assert.Equal(t, "user-123", userID)
			return &movie.Movie{
				ID:         id,
				Rating:     pointer.To(4.5),
				UserRating: pointer.To(5),
			}, nil
		},
	}
	service := movie.NewService(repo)

	updated, err := service.Update(context.Background(), &movie.Movie{
		ID:            movieID,
		Title:         "Heat",
		YearOfRelease: 1995,
		Genres:        []string{"Crime"},
	}, "user-123")
	require.NoError(t, err)

	assert.Equal(t, 4.5, pointer.Val(updated.Rating))
	assert.Equal(t, 5, pointer.Val(updated.UserRating))
}

/*
TestService_Delete_NotFound verifies that deleting a missing movie reports
not-found instead of silently succeeding.
*/
func TestService_Delete_NotFound(t *testing.T) {
	repo := &repoStub{
		deleteFn: func(_ context.Context, _ string) (bool, error) {
			return false, nil
		},
	}
	service := movie.NewService(repo)

	err := service.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, dberr.ErrNotFound))
}

/*
TestService_GetAll_RejectsInvalidOptions verifies that listing options are
validated before the repository is consulted.
*/
func TestService_GetAll_RejectsInvalidOptions(t *testing.T) {
	var storageTouched bool
	repo := &repoStub{
		getAllFn: func(_ context.Context, _ movie.GetAllOptions) ([]movie.Movie, error) {
			storageTouched = true
			return nil, nil
		},
	}
	service := movie.NewService(repo)

	_, _, err := service.GetAll(context.Background(), movie.GetAllOptions{Page: 0, PageSize: 10})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.False(t, storageTouched)
}

/*
TestService_GetAll_ReturnsPageAndTotal verifies that a listing returns the
page from GetAll alongside the filter-wide total from Count.
*/
func TestService_GetAll_ReturnsPageAndTotal(t *testing.T) {
	repo := &repoStub{
		getAllFn: func(_ context.Context, options movie.GetAllOptions) ([]movie.Movie, error) {
			assert.Equal(t, "matrix", options.Title)
			return []movie.Movie{{Title: "The Matrix"}, {Title: "The Matrix Reloaded"}}, nil
		},
		countFn: func(_ context.Context, title string, year *int) (int, error) {
			assert.Equal(t, "matrix", title)
			assert.Nil(t, year)
			return 42, nil
		},
	}
	service := movie.NewService(repo)

	movies, total, err := service.GetAll(context.Background(), movie.GetAllOptions{
		Title:    "matrix",
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)

	assert.Len(t, movies, 2)
	assert.Equal(t, 42, total)
}
