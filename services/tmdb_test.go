package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog/models"

	"github.com/stretchr/testify/assert"
)

func TestTMDBService_FetchMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"id": 1, "original_title": "A", "poster_path": "/a.jpg", "release_date": "2023-06-01", "vote_average": 8.1, "overview": "first"},
				{"id": 2, "original_title": "B", "poster_path": "/b.jpg", "release_date": "", "vote_average": 7.2},
				{"id": 3, "original_title": "", "poster_path": "/c.jpg", "release_date": "2023-01-01", "vote_average": 5.0}
			]
		}`))
	}))
	defer server.Close()

	service := NewTMDBService("test-key", server.URL)
	movies, err := service.FetchMovies(context.Background(), models.SortMostPopular)
	assert.NoError(t, err)

	// The malformed third record is dropped, not fatal.
	assert.Len(t, movies, 2)
	assert.Equal(t, "A", movies[0].OriginalTitle)
	assert.Equal(t, "first", movies[0].Overview)

	// Absent release date normalizes to the sentinel.
	assert.Equal(t, models.SentinelReleaseDate, movies[1].ReleaseDate)
	assert.Equal(t, "", movies[1].Overview)
}

func TestTMDBService_FetchMovies_TopRatedPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/top_rated", r.URL.Path)
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	service := NewTMDBService("test-key", server.URL)
	movies, err := service.FetchMovies(context.Background(), models.SortTopRated)
	assert.NoError(t, err)
	assert.Empty(t, movies)
}

func TestTMDBService_FetchMovies_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	service := NewTMDBService("bad-key", server.URL)
	_, err := service.FetchMovies(context.Background(), models.SortMostPopular)
	assert.Error(t, err)
	assert.True(t, models.IsNetworkError(err))
	assert.Contains(t, err.Error(), "401")
}

func TestTMDBService_FetchMovies_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	}))
	defer server.Close()

	service := NewTMDBService("test-key", server.URL)
	_, err := service.FetchMovies(context.Background(), models.SortMostPopular)
	assert.Error(t, err)
	assert.True(t, models.IsNetworkError(err))
}

func TestTMDBService_FetchMovies_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // Refuse connections

	service := NewTMDBService("test-key", server.URL)
	_, err := service.FetchMovies(context.Background(), models.SortMostPopular)
	assert.Error(t, err)
	assert.True(t, models.IsNetworkError(err))
}

func TestTMDBService_FetchTrailers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/42/videos", r.URL.Path)
		_, _ = w.Write([]byte(`{"results": [{"key": "dQw4w9WgXcQ"}, {"key": ""}, {"key": "abc123"}]}`))
	}))
	defer server.Close()

	service := NewTMDBService("test-key", server.URL)
	trailers, err := service.FetchTrailers(context.Background(), 42)
	assert.NoError(t, err)

	// Empty keys are dropped to keep the non-empty invariant.
	assert.Len(t, trailers, 2)
	assert.Equal(t, "dQw4w9WgXcQ", trailers[0].Key)
	assert.Equal(t, int64(42), trailers[0].MovieID)
}

func TestTMDBService_FetchReviews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/42/reviews", r.URL.Path)
		_, _ = w.Write([]byte(`{"results": [{"author": "alice", "content": "loved it"}, {"author": "", "content": "anon"}]}`))
	}))
	defer server.Close()

	service := NewTMDBService("test-key", server.URL)
	reviews, err := service.FetchReviews(context.Background(), 42)
	assert.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, "alice", reviews[0].Author)
	assert.Equal(t, "loved it", reviews[0].Content)
}

func TestTMDBService_FetchMovies_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewTMDBService("test-key", server.URL)
	_, err := service.FetchMovies(ctx, models.SortMostPopular)
	assert.Error(t, err)
	assert.True(t, models.IsNetworkError(err))
}
