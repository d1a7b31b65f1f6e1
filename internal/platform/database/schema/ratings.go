package schema

// RatingsTable represents the 'ratings' table
type RatingsTable struct {
	Table   string
	UserID  string
	MovieID string
	Rating  string
}

// Ratings is the schema definition for ratings.
//
// The composite primary key (userid, movieid) is the serialization point for
// concurrent rating writes by the same user.
var Ratings = RatingsTable{
	Table:   "ratings",
	UserID:  "userid",
	MovieID: "movieid",
	Rating:  "rating",
}
