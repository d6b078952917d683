package models

// RefreshStatus tells the presentation layer how a result was obtained.
type RefreshStatus string

const (
	// StatusFresh means the list was just reconciled with the remote catalog.
	StatusFresh RefreshStatus = "fresh"
	// StatusStale means connectivity was unavailable and the cached list was
	// served without a network attempt.
	StatusStale RefreshStatus = "stale"
	// StatusFailed means the network attempt failed; the cached list is
	// served untouched alongside the cause.
	StatusFailed RefreshStatus = "failed"
)

// MovieList is the result of a movie-list refresh.
type MovieList struct {
	Status RefreshStatus `json:"status"`
	Movies []Movie       `json:"movies"`
	Cause  string        `json:"cause,omitempty"`
}

// TrailerList is the result of a trailer detail refresh.
type TrailerList struct {
	Status   RefreshStatus `json:"status"`
	Trailers []Trailer     `json:"trailers"`
	Cause    string        `json:"cause,omitempty"`
}

// ReviewList is the result of a review detail refresh.
type ReviewList struct {
	Status  RefreshStatus `json:"status"`
	Reviews []Review      `json:"reviews"`
	Cause   string        `json:"cause,omitempty"`
}

// SyncEntry records the outcome of one refresh pass.
type SyncEntry struct {
	ID         int64  `db:"id" json:"id"`
	SortOrder  string `db:"sort_order" json:"sort_order"`
	Outcome    string `db:"outcome" json:"outcome"`
	MovieCount int    `db:"movie_count" json:"movie_count"`
	Detail     string `db:"detail" json:"detail,omitempty"`
	CreatedAt  string `db:"created_at" json:"created_at"`
}
