// Package services provides external service integrations.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"catalog/models"
)

// TMDBService is the remote catalog client. It performs network I/O only,
// never local mutation, and normalizes every failure (transport error,
// non-success status, malformed payload) to models.NetworkError.
type TMDBService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// tmdbMovie represents a movie entry in a TMDB list response
type tmdbMovie struct {
	ID            int64   `json:"id"`
	OriginalTitle string  `json:"original_title"`
	PosterPath    string  `json:"poster_path"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	Overview      string  `json:"overview"`
}

type tmdbMoviesResponse struct {
	Results []tmdbMovie `json:"results"`
}

type tmdbVideo struct {
	Key string `json:"key"`
}

type tmdbVideosResponse struct {
	Results []tmdbVideo `json:"results"`
}

type tmdbReview struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

type tmdbReviewsResponse struct {
	Results []tmdbReview `json:"results"`
}

// NewTMDBService creates a new TMDB service instance
func NewTMDBService(apiKey, baseURL string) *TMDBService {
	return &TMDBService{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchMovies fetches the ranked movie list for a sort order. The order of
// the returned slice is the remote service's ranking and is authoritative.
func (t *TMDBService) FetchMovies(ctx context.Context, sortOrder models.SortOrder) ([]models.Movie, error) {
	endpoint := fmt.Sprintf("%s/movie/%s", t.baseURL, sortOrder.QueryValue())

	var response tmdbMoviesResponse
	if err := t.getJSON(ctx, "fetch movies", endpoint, &response); err != nil {
		return nil, err
	}

	movies := make([]models.Movie, 0, len(response.Results))
	for _, record := range response.Results {
		movie := models.Movie{
			ID:            record.ID,
			OriginalTitle: record.OriginalTitle,
			PosterPath:    record.PosterPath,
			ReleaseDate:   record.ReleaseDate,
			VoteAverage:   record.VoteAverage,
			Overview:      record.Overview,
		}
		// Absent optional fields normalize to documented defaults instead
		// of crashing the synchronizer downstream.
		if movie.ReleaseDate == "" {
			movie.ReleaseDate = models.SentinelReleaseDate
		}
		if movie.ID == 0 || movie.OriginalTitle == "" || movie.PosterPath == "" {
			continue
		}
		movies = append(movies, movie)
	}

	return movies, nil
}

// FetchTrailers fetches the trailer set for a movie id.
func (t *TMDBService) FetchTrailers(ctx context.Context, movieID int64) ([]models.Trailer, error) {
	endpoint := fmt.Sprintf("%s/movie/%d/videos", t.baseURL, movieID)

	var response tmdbVideosResponse
	if err := t.getJSON(ctx, "fetch trailers", endpoint, &response); err != nil {
		return nil, err
	}

	trailers := make([]models.Trailer, 0, len(response.Results))
	for _, record := range response.Results {
		if record.Key == "" {
			continue
		}
		trailers = append(trailers, models.Trailer{MovieID: movieID, Key: record.Key})
	}

	return trailers, nil
}

// FetchReviews fetches the review set for a movie id.
func (t *TMDBService) FetchReviews(ctx context.Context, movieID int64) ([]models.Review, error) {
	endpoint := fmt.Sprintf("%s/movie/%d/reviews", t.baseURL, movieID)

	var response tmdbReviewsResponse
	if err := t.getJSON(ctx, "fetch reviews", endpoint, &response); err != nil {
		return nil, err
	}

	reviews := make([]models.Review, 0, len(response.Results))
	for _, record := range response.Results {
		if record.Author == "" {
			continue
		}
		reviews = append(reviews, models.Review{MovieID: movieID, Author: record.Author, Content: record.Content})
	}

	return reviews, nil
}

// getJSON performs one GET against the API and decodes the body into out,
// normalizing every failure mode to models.NetworkError.
func (t *TMDBService) getJSON(ctx context.Context, op, endpoint string, out interface{}) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return &models.NetworkError{Op: op, Cause: err}
	}
	q := u.Query()
	q.Set("api_key", t.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &models.NetworkError{Op: op, Cause: err}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return &models.NetworkError{Op: op, Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return &models.NetworkError{Op: op, Cause: fmt.Errorf("tmdb status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.NetworkError{Op: op, Cause: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}
