package movie

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nmtan/cinelog/internal/platform/apperr"
	"github.com/nmtan/cinelog/internal/platform/ctxutil"
	"github.com/nmtan/cinelog/internal/platform/dberr"
	"github.com/nmtan/cinelog/internal/platform/validate"
	"github.com/nmtan/cinelog/pkg/slice"
	"github.com/nmtan/cinelog/pkg/slug"
	"github.com/nmtan/cinelog/pkg/uuid"
)

const (
	maxTitleLength = 255
	maxGenreLength = 64

	// firstFilmYear bounds the release year from below. The Roundhay Garden
	// Scene, 1888, is the earliest surviving film.
	firstFilmYear = 1888
)

// Rule inspects one movie and records violations on the validator. Rules are
// pluggable so callers can extend or replace the default set without touching
// the service.
type Rule func(v *validate.Validator, m *Movie)

// DefaultRules returns the standard validation set. The now function is
// injected so the release-year upper bound is testable.
func DefaultRules(now func() time.Time) []Rule {
	return []Rule{
		func(v *validate.Validator, m *Movie) {
			v.Required(FieldTitle, m.Title)
			v.MaxLen(FieldTitle, m.Title, maxTitleLength)
		},
		func(v *validate.Validator, m *Movie) {
			// One year of slack for announced releases.
			v.Range(FieldYear, m.YearOfRelease, firstFilmYear, now().Year()+1)
		},
		func(v *validate.Validator, m *Movie) {
			v.Custom(FieldGenres, len(m.Genres) == 0, "At least one genre is required")
			for _, genre := range m.Genres {
				if strings.TrimSpace(genre) == "" {
					v.Custom(FieldGenres, true, "Genres must not be blank")
					break
				}
				v.MaxLen(FieldGenres, genre, maxGenreLength)
			}
		},
		func(v *validate.Validator, m *Movie) {
			if m.Slug != "" {
				v.Slug(FieldSlug, m.Slug)
			}
		},
	}
}

// Service implements the movie business logic on top of a [Repository].
//
// Validation runs before any storage I/O: a movie rejected here is guaranteed
// to have touched no rows.
type Service struct {
	repo  Repository
	rules []Rule
}

// NewService constructs a movie service. When no rules are supplied the
// default set applies.
func NewService(repo Repository, rules ...Rule) *Service {
	if len(rules) == 0 {
		rules = DefaultRules(time.Now)
	}
	return &Service{repo: repo, rules: rules}
}

// Create validates and persists a new movie together with its genre rows.
//
// A zero ID is assigned a fresh UUID and an empty slug is derived from the
// title and release year, so callers may submit just the content fields. The
// movie argument is updated in place with the assigned identifiers.
func (s *Service) Create(ctx context.Context, m *Movie) error {
	s.normalize(m)

	if err := s.validate(m); err != nil {
		return err
	}

	if m.ID == "" {
		m.ID = uuid.New()
	}
	if m.Slug == "" {
		m.Slug = slug.ForMovie(m.Title, m.YearOfRelease)
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		// The only unique constraint a create can trip is the slug index.
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict(fmt.Sprintf("A movie with slug %q already exists", m.Slug))
		}
		return err
	}
	if !created {
		return apperr.Internal(errors.New("movie insert affected no rows"))
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "movie created",
		"movie_id", m.ID, "slug", m.Slug)

	return nil
}

// GetByID loads one movie. A non-empty userID attaches that user's own rating
// to the result.
func (s *Service) GetByID(ctx context.Context, id, userID string) (*Movie, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// GetBySlug is the same read keyed by slug.
func (s *Service) GetBySlug(ctx context.Context, slugValue, userID string) (*Movie, error) {
	return s.repo.GetBySlug(ctx, slugValue, userID)
}

// GetAll validates the listing options, then returns one page of movies plus
// the total count matching the same filters.
func (s *Service) GetAll(ctx context.Context, options GetAllOptions) ([]Movie, int, error) {
	if err := options.Validate(); err != nil {
		return nil, 0, err
	}

	movies, err := s.repo.GetAll(ctx, options)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, options.Title, options.Year)
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

// Update validates and fully replaces an existing movie's content, including
// its genre set. It checks existence up front so a missing movie surfaces as
// not-found before any write is attempted, then returns the movie re-read
// with its rating enrichments for the given caller.
func (s *Service) Update(ctx context.Context, m *Movie, userID string) (*Movie, error) {
	s.normalize(m)

	if err := s.validate(m); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, dberr.ErrNotFound
	}

	if m.Slug == "" {
		m.Slug = slug.ForMovie(m.Title, m.YearOfRelease)
	}

	updated, err := s.repo.Update(ctx, m)
	if err != nil {
		// A genre insert referencing a vanished movie row means the movie
		// was deleted between the existence probe and the write.
		if dberr.IsForeignKeyViolation(err) {
			return nil, dberr.ErrNotFound
		}
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict(fmt.Sprintf("A movie with slug %q already exists", m.Slug))
		}
		return nil, err
	}
	if !updated {
		// Deleted between the existence probe and the write.
		return nil, dberr.ErrNotFound
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "movie updated", "movie_id", m.ID)

	return s.repo.GetByID(ctx, m.ID, userID)
}

// Delete removes a movie and its genre rows. Deleting a movie that does not
// exist returns not-found.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return dberr.ErrNotFound
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "movie deleted", "movie_id", id)

	return nil
}

// validate runs every configured rule, aggregating all violations into one
// error.
func (s *Service) validate(m *Movie) error {
	v := &validate.Validator{}
	for _, rule := range s.rules {
		rule(v, m)
	}
	return v.Err()
}

// normalize trims genre whitespace and collapses duplicates. Genres are a
// set; ["Action", "action ", "Action"] stores two rows, not three.
func (s *Service) normalize(m *Movie) {
	m.Genres = slice.Unique(slice.Map(m.Genres, strings.TrimSpace))
}
