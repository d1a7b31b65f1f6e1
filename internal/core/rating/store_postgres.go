package rating

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmtan/cinelog/internal/platform/database/schema"
	"github.com/nmtan/cinelog/internal/platform/dberr"
)

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed rating store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Rate upserts the user's vote in a single statement. The composite primary
// key (userid, movieid) drives the conflict target, so concurrent votes from
// the same user settle on last-write-wins without a read-modify-write race.
func (repository *PostgresRepository) Rate(ctx context.Context, movieID, userID string, value int) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
	`,
		schema.Ratings.Table, schema.Ratings.UserID, schema.Ratings.MovieID, schema.Ratings.Rating,
		schema.Ratings.UserID, schema.Ratings.MovieID, schema.Ratings.Rating, schema.Ratings.Rating,
	)

	if _, err := repository.pool.Exec(ctx, query, userID, movieID, value); err != nil {
		return dberr.Wrap(err, "rate_movie")
	}

	return nil
}

// Delete removes the user's vote for a movie.
func (repository *PostgresRepository) Delete(ctx context.Context, movieID, userID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Ratings.Table, schema.Ratings.UserID, schema.Ratings.MovieID)

	commandTag, err := repository.pool.Exec(ctx, query, userID, movieID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_rating")
	}

	return commandTag.RowsAffected() > 0, nil
}

// GetAggregate returns the rounded mean vote for a movie. AVG over zero rows
// is NULL, which scans into a nil pointer rather than a misleading zero.
func (repository *PostgresRepository) GetAggregate(ctx context.Context, movieID string) (*float64, error) {
	query := fmt.Sprintf(`SELECT ROUND(AVG(%s), 1)::float8 FROM %s WHERE %s = $1`,
		schema.Ratings.Rating, schema.Ratings.Table, schema.Ratings.MovieID)

	var aggregate *float64
	if err := repository.pool.QueryRow(ctx, query, movieID).Scan(&aggregate); err != nil {
		return nil, dberr.Wrap(err, "get_rating_aggregate")
	}

	return aggregate, nil
}

// GetAggregateForUser returns the aggregate together with the user's own vote
// in one round-trip.
func (repository *PostgresRepository) GetAggregateForUser(ctx context.Context, movieID, userID string) (*float64, *int, error) {
	query := fmt.Sprintf(`
		SELECT ROUND(AVG(%s), 1)::float8,
		       (SELECT %s FROM %s WHERE %s = $1 AND %s = $2)
		FROM %s
		WHERE %s = $1
	`,
		schema.Ratings.Rating,
		schema.Ratings.Rating, schema.Ratings.Table, schema.Ratings.MovieID, schema.Ratings.UserID,
		schema.Ratings.Table,
		schema.Ratings.MovieID,
	)

	var (
		aggregate  *float64
		userRating *int
	)
	if err := repository.pool.QueryRow(ctx, query, movieID, userID).Scan(&aggregate, &userRating); err != nil {
		return nil, nil, dberr.Wrap(err, "get_rating_aggregate_for_user")
	}

	return aggregate, userRating, nil
}

// ListForUser returns the user's full rating history joined with the movie
// slugs, ordered by slug for stable output.
func (repository *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]MovieRating, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, m.%s, r.%s
		FROM %s r
		INNER JOIN %s m ON r.%s = m.%s
		WHERE r.%s = $1
		ORDER BY m.%s ASC
	`,
		schema.Ratings.MovieID, schema.Movies.Slug, schema.Ratings.Rating,
		schema.Ratings.Table,
		schema.Movies.Table, schema.Ratings.MovieID, schema.Movies.ID,
		schema.Ratings.UserID,
		schema.Movies.Slug,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_user_ratings")
	}
	defer rows.Close()

	ratings := make([]MovieRating, 0)
	for rows.Next() {
		var mr MovieRating
		if err := rows.Scan(&mr.MovieID, &mr.Slug, &mr.Rating); err != nil {
			return nil, dberr.Wrap(err, "scan_user_rating")
		}
		ratings = append(ratings, mr)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "read_user_ratings")
	}

	return ratings, nil
}
