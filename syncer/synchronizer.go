// Package syncer reconciles the remote movie catalog with the local cache
// and serves cached reads to the presentation layer.
package syncer

import (
	"context"
	"log"

	"catalog/models"
	"catalog/repository"

	"golang.org/x/sync/singleflight"
)

// CatalogClient is the remote catalog boundary the synchronizer needs.
// Implemented by services.TMDBService; tests inject fakes.
type CatalogClient interface {
	FetchMovies(ctx context.Context, sortOrder models.SortOrder) ([]models.Movie, error)
	FetchTrailers(ctx context.Context, movieID int64) ([]models.Trailer, error)
	FetchReviews(ctx context.Context, movieID int64) ([]models.Review, error)
}

// Gate is the connectivity boundary: a single boolean capability.
type Gate interface {
	Online() bool
}

// Synchronizer orchestrates refresh passes: connectivity check, remote
// fetch, transactional reconciliation into the store, and a consistent
// result set read back for the caller.
type Synchronizer struct {
	catalog CatalogClient
	gate    Gate
	movies  *repository.MovieRepository
	details *repository.DetailRepository
	syncLog *repository.SyncLogRepository

	// One in-flight fetch+upsert per sort order; concurrent callers for
	// the same order share the first caller's result. Different orders
	// write disjoint ranking partitions and run independently.
	group singleflight.Group
}

// NewSynchronizer creates a synchronizer with injected dependencies.
func NewSynchronizer(catalog CatalogClient, gate Gate, movies *repository.MovieRepository,
	details *repository.DetailRepository, syncLog *repository.SyncLogRepository) *Synchronizer {
	return &Synchronizer{
		catalog: catalog,
		gate:    gate,
		movies:  movies,
		details: details,
		syncLog: syncLog,
	}
}

// RefreshMovies reconciles one sort order with the remote catalog.
//
// Offline → Stale with the cached list, no network attempt.
// Network failure → Failed with the untouched cached list and the cause.
// Store failure → terminal error; no partial list reaches the caller.
// Success → Fresh with the ranked list read back from the store.
func (s *Synchronizer) RefreshMovies(ctx context.Context, sortOrder models.SortOrder) (*models.MovieList, error) {
	result, err, _ := s.group.Do(string(sortOrder), func() (interface{}, error) {
		return s.refreshMovies(ctx, sortOrder)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.MovieList), nil
}

func (s *Synchronizer) refreshMovies(ctx context.Context, sortOrder models.SortOrder) (*models.MovieList, error) {
	if !s.gate.Online() {
		cached, err := s.movies.MoviesBySortOrder(sortOrder)
		if err != nil {
			return nil, err
		}
		log.Printf("No connectivity; serving stale %s list (%d movies)", sortOrder, len(cached))
		s.record(sortOrder, models.StatusStale, len(cached), "")
		return &models.MovieList{Status: models.StatusStale, Movies: cached}, nil
	}

	fetched, err := s.catalog.FetchMovies(ctx, sortOrder)
	if err != nil {
		if !models.IsNetworkError(err) {
			return nil, err
		}
		// The previously cached list stays untouched; no partial eviction.
		cached, cacheErr := s.movies.MoviesBySortOrder(sortOrder)
		if cacheErr != nil {
			return nil, cacheErr
		}
		log.Printf("Fetch for %s failed, falling back to %d cached movies: %v", sortOrder, len(cached), err)
		s.record(sortOrder, models.StatusFailed, len(cached), err.Error())
		return &models.MovieList{Status: models.StatusFailed, Movies: cached, Cause: err.Error()}, nil
	}

	if err := s.movies.UpsertMovies(sortOrder, fetched); err != nil {
		return nil, err
	}

	movies, err := s.movies.MoviesBySortOrder(sortOrder)
	if err != nil {
		return nil, err
	}

	log.Printf("Refreshed %s list: %d movies", sortOrder, len(movies))
	s.record(sortOrder, models.StatusFresh, len(movies), "")
	return &models.MovieList{Status: models.StatusFresh, Movies: movies}, nil
}

// RefreshTrailers fetches and wholesale-replaces the trailer set for a
// movie id, falling back to whatever is already cached (possibly nothing)
// when the device is offline or the fetch fails.
func (s *Synchronizer) RefreshTrailers(ctx context.Context, movieID int64) (*models.TrailerList, error) {
	if !s.gate.Online() {
		cached, err := s.details.Trailers(movieID)
		if err != nil {
			return nil, err
		}
		return &models.TrailerList{Status: models.StatusStale, Trailers: cached}, nil
	}

	fetched, err := s.catalog.FetchTrailers(ctx, movieID)
	if err != nil {
		if !models.IsNetworkError(err) {
			return nil, err
		}
		cached, cacheErr := s.details.Trailers(movieID)
		if cacheErr != nil {
			return nil, cacheErr
		}
		log.Printf("Trailer fetch for movie %d failed, serving %d cached: %v", movieID, len(cached), err)
		return &models.TrailerList{Status: models.StatusFailed, Trailers: cached, Cause: err.Error()}, nil
	}

	if err := s.details.ReplaceTrailers(movieID, fetched); err != nil {
		return nil, err
	}

	trailers, err := s.details.Trailers(movieID)
	if err != nil {
		return nil, err
	}

	return &models.TrailerList{Status: models.StatusFresh, Trailers: trailers}, nil
}

// RefreshReviews fetches and wholesale-replaces the review set for a
// movie id, with the same fallback behavior as RefreshTrailers.
func (s *Synchronizer) RefreshReviews(ctx context.Context, movieID int64) (*models.ReviewList, error) {
	if !s.gate.Online() {
		cached, err := s.details.Reviews(movieID)
		if err != nil {
			return nil, err
		}
		return &models.ReviewList{Status: models.StatusStale, Reviews: cached}, nil
	}

	fetched, err := s.catalog.FetchReviews(ctx, movieID)
	if err != nil {
		if !models.IsNetworkError(err) {
			return nil, err
		}
		cached, cacheErr := s.details.Reviews(movieID)
		if cacheErr != nil {
			return nil, cacheErr
		}
		log.Printf("Review fetch for movie %d failed, serving %d cached: %v", movieID, len(cached), err)
		return &models.ReviewList{Status: models.StatusFailed, Reviews: cached, Cause: err.Error()}, nil
	}

	if err := s.details.ReplaceReviews(movieID, fetched); err != nil {
		return nil, err
	}

	reviews, err := s.details.Reviews(movieID)
	if err != nil {
		return nil, err
	}

	return &models.ReviewList{Status: models.StatusFresh, Reviews: reviews}, nil
}

// record appends to the sync log. Logging must never fail a refresh, so
// errors are only printed.
func (s *Synchronizer) record(sortOrder models.SortOrder, outcome models.RefreshStatus, count int, detail string) {
	if s.syncLog == nil {
		return
	}
	if err := s.syncLog.Record(sortOrder, outcome, count, detail); err != nil {
		log.Printf("Failed to record sync outcome: %v", err)
	}
}
