package schema

// GenresTable represents the 'genres' table
type GenresTable struct {
	Table   string
	MovieID string
	Name    string
}

// Genres is the schema definition for genres.
//
// Genre rows are owned by exactly one movie and are always written inside
// the same transaction as their parent movie row.
var Genres = GenresTable{
	Table:   "genres",
	MovieID: "movieid",
	Name:    "name",
}
