package movie

import "context"

// Repository is the storage contract for the movies and genres relations.
//
// # Contracts
//
// Absence is a normal outcome, not an error: lookups return a sentinel
// satisfying errors.Is(err, dberr.ErrNotFound), and mutations report whether
// a row was affected. Every operation touching both relations executes inside
// one transaction — a movie and its genre rows are never partially visible.
type Repository interface {
	// Create inserts the movie row and one row per genre as a single atomic
	// unit. It reports whether the movie insert affected exactly one row.
	Create(ctx context.Context, m *Movie) (bool, error)

	// GetByID loads one movie with its aggregate rating and, when userID is
	// non-empty, that user's own rating.
	GetByID(ctx context.Context, id, userID string) (*Movie, error)

	// GetBySlug is the same contract keyed by slug.
	GetBySlug(ctx context.Context, slug, userID string) (*Movie, error)

	// GetAll returns one page of movies matching the options' filters,
	// ordered only when the options carry a validated sort field.
	GetAll(ctx context.Context, options GetAllOptions) ([]Movie, error)

	// Count returns the total matching the same filter predicate as GetAll,
	// independent of paging. A nil year means no year filter.
	Count(ctx context.Context, title string, year *int) (int, error)

	// Update replaces the genre set and overwrites scalar columns in one
	// atomic unit. It reports whether the scalar update affected a row.
	Update(ctx context.Context, m *Movie) (bool, error)

	// Delete removes the genre rows and then the movie row in one atomic
	// unit. It reports whether the movie row deletion affected a row.
	Delete(ctx context.Context, id string) (bool, error)

	// ExistsByID is a lightweight existence probe.
	ExistsByID(ctx context.Context, id string) (bool, error)
}
