package schema

// MoviesTable represents the 'movies' table
type MoviesTable struct {
	Table         string
	ID            string
	Slug          string
	Title         string
	YearOfRelease string
}

// Movies is the schema definition for movies
var Movies = MoviesTable{
	Table:         "movies",
	ID:            "id",
	Slug:          "slug",
	Title:         "title",
	YearOfRelease: "yearofrelease",
}

func (t MoviesTable) Columns() []string {
	return []string{t.ID, t.Slug, t.Title, t.YearOfRelease}
}
