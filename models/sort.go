package models

// SortOrder selects the remote ranking criterion for a movie list fetch.
type SortOrder string

const (
	SortMostPopular SortOrder = "most_popular"
	SortTopRated    SortOrder = "top_rated"
)

// ParseSortOrder maps a persisted or user-supplied string to a SortOrder,
// defaulting to most popular for unset or unrecognized values.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortMostPopular, SortTopRated:
		return SortOrder(s)
	default:
		return SortMostPopular
	}
}

// QueryValue returns the token the remote catalog service expects in its
// list endpoint path.
func (s SortOrder) QueryValue() string {
	if s == SortTopRated {
		return "top_rated"
	}
	return "popular"
}
