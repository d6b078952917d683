package models

import "time"

// SentinelReleaseDate is stored when the remote catalog omits a release
// date, keeping the column non-null.
const SentinelReleaseDate = "0001-01-01"

// Movie represents a cached movie from the remote catalog. ID is the
// remote catalog id, not a local surrogate key: the cache holds exactly
// one row per remote id and upserts are keyed on it.
type Movie struct {
	ID            int64     `db:"id" json:"id"`
	OriginalTitle string    `db:"original_title" json:"original_title"`
	PosterPath    string    `db:"poster_path" json:"poster_path"`
	ReleaseDate   string    `db:"release_date" json:"release_date"`
	VoteAverage   float64   `db:"vote_average" json:"vote_average"`
	Overview      string    `db:"overview" json:"overview"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Trailer is a child row of a movie, replaced wholesale on each detail
// fetch. Key identifies the video on the remote video source.
type Trailer struct {
	ID      int64  `db:"id" json:"id"`
	MovieID int64  `db:"movie_id" json:"movie_id"`
	Key     string `db:"trailer_key" json:"key"`
}

// Review is a child row of a movie, replaced wholesale on each detail
// fetch.
type Review struct {
	ID      int64  `db:"id" json:"id"`
	MovieID int64  `db:"movie_id" json:"movie_id"`
	Author  string `db:"author" json:"author"`
	Content string `db:"content" json:"content"`
}
