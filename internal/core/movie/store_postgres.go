/*
Package movie provides the PostgreSQL implementation for the catalog's data access.

Storage notes:

  - Aggregation: The listing query collects genre rows into an array
    (ARRAY_AGG) and averages ratings in a single round-trip, avoiding N+1
    lookups. Arrays scan straight into string slices, so genre names carry
    no delimiter restrictions.
  - Dynamic Composition: Filters are appended as parameterized predicates with
    positional arguments; sort columns come from a closed static table so no
    caller-controlled text ever reaches a query fragment.
  - ACID Transactions: Every operation touching both the movies and genres
    relations runs in one transaction; a movie and its genre rows commit
    together or not at all.
*/
package movie

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmtan/cinelog/internal/platform/database/schema"
	"github.com/nmtan/cinelog/internal/platform/dberr"
)

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed movie store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// sortColumns maps validated sort fields to physical column names. The map is
// the only source of ORDER BY text: an unknown field produces no fragment.
var sortColumns = map[SortField]string{
	SortFieldTitle: schema.Movies.Title,
	SortFieldYear:  schema.Movies.YearOfRelease,
}

// Create persists a new movie and its genre rows as a single atomic unit.
//
// If any genre insert fails — a constraint violation, a network fault, a
// cancellation — the movie row is rolled back with it; no partial movie ever
// becomes visible. A duplicate slug surfaces as a conflict, not a generic
// failure. Reports whether the movie insert affected exactly one row.
func (repository *PostgresRepository) Create(ctx context.Context, m *Movie) (bool, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return false, dberr.Wrap(err, "begin_create_movie")
	}
	// Rollback is a no-op after a successful commit.
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.Movies.Table,
		schema.Movies.ID, schema.Movies.Slug, schema.Movies.Title, schema.Movies.YearOfRelease,
	)

	commandTag, err := transaction.Exec(ctx, query, m.ID, m.Slug, m.Title, m.YearOfRelease)
	if err != nil {
		return false, dberr.Wrap(err, "create_movie")
	}

	if err := repository.replaceGenres(ctx, transaction, m.ID, m.Genres); err != nil {
		return false, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return false, dberr.Wrap(err, "commit_create_movie")
	}

	return commandTag.RowsAffected() == 1, nil
}

// GetByID retrieves one movie by primary key.
//
// A single query returns the scalar fields joined with the aggregate rating
// and, when userID is non-empty, that user's own rating; a second query
// fetches the genre names. Absence maps to [dberr.ErrNotFound].
func (repository *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*Movie, error) {
	return repository.getOne(ctx, schema.Movies.ID, id, userID)
}

// GetBySlug is the identical contract keyed by the unique slug.
func (repository *PostgresRepository) GetBySlug(ctx context.Context, slug, userID string) (*Movie, error) {
	return repository.getOne(ctx, schema.Movies.Slug, slug, userID)
}

// getOne is the shared single-row lookup behind GetByID and GetBySlug.
// keyColumn is always one of the schema constants, never caller input.
func (repository *PostgresRepository) getOne(ctx context.Context, keyColumn, keyValue, userID string) (*Movie, error) {
	query := fmt.Sprintf(`
		SELECT m.%s, m.%s, m.%s, m.%s,
		       (SELECT ROUND(AVG(r.%s), 1)::float8 FROM %s r WHERE r.%s = m.%s) AS rating,
		       (SELECT ur.%s FROM %s ur WHERE ur.%s = m.%s AND ur.%s = $2) AS userrating
		FROM %s m
		WHERE m.%s = $1
	`,
		schema.Movies.ID, schema.Movies.Slug, schema.Movies.Title, schema.Movies.YearOfRelease,
		schema.Ratings.Rating, schema.Ratings.Table, schema.Ratings.MovieID, schema.Movies.ID,
		schema.Ratings.Rating, schema.Ratings.Table, schema.Ratings.MovieID, schema.Movies.ID, schema.Ratings.UserID,
		schema.Movies.Table,
		keyColumn,
	)

	m := &Movie{}
	err := repository.pool.QueryRow(ctx, query, keyValue, nullableID(userID)).Scan(
		&m.ID,
		&m.Slug,
		&m.Title,
		&m.YearOfRelease,
		&m.Rating,
		&m.UserRating,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_movie")
	}

	genresQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.Genres.Name, schema.Genres.Table, schema.Genres.MovieID)

	rows, err := repository.pool.Query(ctx, genresQuery, m.ID)
	if err != nil {
		return nil, dberr.Wrap(err, "get_movie_genres")
	}
	defer rows.Close()

	m.Genres = make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, dberr.Wrap(err, "scan_movie_genre")
		}
		m.Genres = append(m.Genres, name)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "read_movie_genres")
	}

	return m, nil
}

// GetAll returns one page of movies matching the options.
//
// One composed query joins movies with an aggregated genre array, the
// aggregate rating across all users, and (left-joined, nullable) the caller's
// own rating. The title filter matches as a case-insensitive substring, the
// year filter exactly. ORDER BY is emitted only for a validated sort field;
// with none, result order is storage-defined.
func (repository *PostgresRepository) GetAll(ctx context.Context, options GetAllOptions) ([]Movie, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	// The caller's rating join binds the (possibly NULL) user id first; with
	// a NULL argument the join matches nothing and userrating scans as nil.
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT m.%s, m.%s, m.%s, m.%s,
		       COALESCE(ARRAY_AGG(DISTINCT g.%s) FILTER (WHERE g.%s IS NOT NULL), '{}') AS genres,
		       ROUND(AVG(r.%s), 1)::float8 AS rating,
		       myr.%s AS userrating
		FROM %s m
		LEFT JOIN %s g ON m.%s = g.%s
		LEFT JOIN %s r ON m.%s = r.%s
		LEFT JOIN %s myr ON m.%s = myr.%s AND myr.%s = $%d
		WHERE TRUE
	`,
		schema.Movies.ID, schema.Movies.Slug, schema.Movies.Title, schema.Movies.YearOfRelease,
		schema.Genres.Name, schema.Genres.Name,
		schema.Ratings.Rating,
		schema.Ratings.Rating,
		schema.Movies.Table,
		schema.Genres.Table, schema.Movies.ID, schema.Genres.MovieID,
		schema.Ratings.Table, schema.Movies.ID, schema.Ratings.MovieID,
		schema.Ratings.Table, schema.Movies.ID, schema.Ratings.MovieID, schema.Ratings.UserID, argID,
	))
	args = append(args, nullableID(options.UserID))
	argID++

	// Dynamic WHERE clause construction.
	if options.Title != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.%s ILIKE $%d", schema.Movies.Title, argID))
		args = append(args, "%"+escapeLike(options.Title)+"%")
		argID++
	}

	if options.Year != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.%s = $%d", schema.Movies.YearOfRelease, argID))
		args = append(args, *options.Year)
		argID++
	}

	// Grouping by the primary key covers every movies column; the caller's
	// rating is not functionally dependent and must be listed.
	queryBuilder.WriteString(fmt.Sprintf(" GROUP BY m.%s, myr.%s", schema.Movies.ID, schema.Ratings.Rating))

	queryBuilder.WriteString(orderByFragment(options.SortField, options.SortOrder))

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, options.PageSize, options.Offset())

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_movies")
	}
	defer rows.Close()

	movies := make([]Movie, 0)
	for rows.Next() {
		var m Movie

		err := rows.Scan(
			&m.ID,
			&m.Slug,
			&m.Title,
			&m.YearOfRelease,
			&m.Genres,
			&m.Rating,
			&m.UserRating,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_movie")
		}

		if m.Genres == nil {
			m.Genres = []string{}
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "read_movies")
	}

	return movies, nil
}

// Count returns the total number of movies matching the same filter predicate
// as GetAll, with no join, sort, or paging overhead. It backs the pagination
// metadata independently of the current page.
func (repository *PostgresRepository) Count(ctx context.Context, title string, year *int) (int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf("SELECT COUNT(%s) FROM %s WHERE TRUE",
		schema.Movies.ID, schema.Movies.Table))

	if title != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", schema.Movies.Title, argID))
		args = append(args, "%"+escapeLike(title)+"%")
		argID++
	}

	if year != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Movies.YearOfRelease, argID))
		args = append(args, *year)
	}

	var total int
	if err := repository.pool.QueryRow(ctx, queryBuilder.String(), args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_movies")
	}

	return total, nil
}

// Update overwrites a movie's scalar columns and fully replaces its genre set.
//
// All three steps — genre delete, genre insert, scalar update — share one
// transaction: a failure in any step rolls back the genre replacement that
// already "succeeded" within the same unit. Reports whether the scalar update
// affected a row.
func (repository *PostgresRepository) Update(ctx context.Context, m *Movie) (bool, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return false, dberr.Wrap(err, "begin_update_movie")
	}
	defer transaction.Rollback(ctx)

	if err := repository.replaceGenres(ctx, transaction, m.ID, m.Genres); err != nil {
		return false, err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4`,
		schema.Movies.Table,
		schema.Movies.Slug, schema.Movies.Title, schema.Movies.YearOfRelease,
		schema.Movies.ID,
	)

	commandTag, err := transaction.Exec(ctx, query, m.Slug, m.Title, m.YearOfRelease, m.ID)
	if err != nil {
		return false, dberr.Wrap(err, "update_movie")
	}

	if err := transaction.Commit(ctx); err != nil {
		return false, dberr.Wrap(err, "commit_update_movie")
	}

	return commandTag.RowsAffected() > 0, nil
}

// Delete removes a movie and its genre rows in one atomic unit.
// Reports whether the movie row deletion affected a row; false implies the
// movie did not exist.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return false, dberr.Wrap(err, "begin_delete_movie")
	}
	defer transaction.Rollback(ctx)

	genresQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Genres.Table, schema.Genres.MovieID)
	if _, err := transaction.Exec(ctx, genresQuery, id); err != nil {
		return false, dberr.Wrap(err, "delete_movie_genres")
	}

	movieQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Movies.Table, schema.Movies.ID)
	commandTag, err := transaction.Exec(ctx, movieQuery, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_movie")
	}

	if err := transaction.Commit(ctx); err != nil {
		return false, dberr.Wrap(err, "commit_delete_movie")
	}

	return commandTag.RowsAffected() > 0, nil
}

// ExistsByID probes for a movie row without loading it. The service uses it
// to distinguish "no such movie" from other update-rejection reasons before
// attempting a full update.
func (repository *PostgresRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)",
		schema.Movies.Table, schema.Movies.ID)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "movie_exists")
	}

	return exists, nil
}

// replaceGenres synchronizes the owned genre rows for one movie.
//
// It implements a "clear and insert" strategy: all rows for the movie are
// flushed, then the new set is queued through a single [pgx.Batch] to bound
// the operation to one network round-trip. Always called inside the caller's
// transaction so the replacement shares the movie row's fate.
func (repository *PostgresRepository) replaceGenres(ctx context.Context, transaction pgx.Tx, movieID string, genres []string) error {
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Genres.Table, schema.Genres.MovieID)
	if _, err := transaction.Exec(ctx, deleteQuery, movieID); err != nil {
		return dberr.Wrap(err, "clear_genres")
	}

	if len(genres) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.Genres.Table, schema.Genres.MovieID, schema.Genres.Name)

	batch := &pgx.Batch{}
	for _, name := range genres {
		batch.Queue(insertQuery, movieID, name)
	}

	results := transaction.SendBatch(ctx, batch)
	if err := results.Close(); err != nil {
		return dberr.Wrap(err, "insert_genres")
	}

	return nil
}

// orderByFragment maps a validated sort field to an ORDER BY clause.
//
// The column name comes from the static sortColumns table; an unknown or
// unset field yields the empty string and the query carries no ORDER BY.
// The primary key is appended as a tiebreaker for stable pages.
func orderByFragment(field SortField, order SortOrder) string {
	column, ok := sortColumns[field]
	if !ok {
		return ""
	}

	direction := "ASC"
	if order == SortOrderDescending {
		direction = "DESC"
	}

	return fmt.Sprintf(" ORDER BY m.%s %s, m.%s ASC", column, direction, schema.Movies.ID)
}

// likeEscaper neutralizes the ILIKE metacharacters in one pass, the escape
// character included.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes pattern metacharacters in caller text so a title filter
// like "100%" matches the literal substring instead of acting as a wildcard.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// nullableID converts an optional caller id into a query argument: the empty
// string becomes NULL, so anonymous reads join no rating row.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
