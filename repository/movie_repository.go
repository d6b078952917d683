// Package repository provides the data access layer for the movie cache.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"catalog/database"
	"catalog/models"
)

// MovieRepository handles cached movie rows and their per-sort-order
// rankings.
type MovieRepository struct {
	db *database.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *database.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// UpsertMovies reconciles one sort order's remote result with the cache in
// a single transaction: every movie is inserted or updated in place keyed
// on its remote id, then the sort order's ranking is replaced wholesale in
// the order the remote service returned. Either all records land or none
// do. Rankings for other sort orders and trailer/review rows are untouched.
func (r *MovieRepository) UpsertMovies(sortOrder models.SortOrder, movies []models.Movie) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return &models.StoreError{Op: "upsert movies", Cause: err}
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("Failed to roll back upsert transaction: %v", err)
		}
	}()

	now := time.Now().UTC()
	upsert := `
		INSERT INTO movies (id, original_title, poster_path, release_date, vote_average, overview, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			original_title = excluded.original_title,
			poster_path = excluded.poster_path,
			release_date = excluded.release_date,
			vote_average = excluded.vote_average,
			overview = excluded.overview,
			updated_at = excluded.updated_at
	`

	for _, movie := range movies {
		if _, err := tx.Exec(upsert,
			movie.ID, movie.OriginalTitle, movie.PosterPath, movie.ReleaseDate,
			movie.VoteAverage, movie.Overview, now, now,
		); err != nil {
			return &models.StoreError{Op: fmt.Sprintf("upsert movie %d", movie.ID), Cause: err}
		}
	}

	// Replace this sort order's ranking with the remote ordering. Movies
	// ranked in the previous refresh but absent now keep their row; they
	// just drop out of this list.
	if _, err := tx.Exec(`DELETE FROM movie_rankings WHERE sort_order = ?`, string(sortOrder)); err != nil {
		return &models.StoreError{Op: "clear rankings", Cause: err}
	}
	for i, movie := range movies {
		if _, err := tx.Exec(
			`INSERT INTO movie_rankings (sort_order, position, movie_id) VALUES (?, ?, ?)`,
			string(sortOrder), i+1, movie.ID,
		); err != nil {
			return &models.StoreError{Op: fmt.Sprintf("rank movie %d", movie.ID), Cause: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &models.StoreError{Op: "commit upsert", Cause: err}
	}

	return nil
}

// MoviesBySortOrder returns the movies ranked by the most recent refresh
// for that sort order, in remote ranking order. Cached movies that were
// not part of the latest refresh are not listed; they stay reachable by
// id and under any sort order that still ranks them.
func (r *MovieRepository) MoviesBySortOrder(sortOrder models.SortOrder) ([]models.Movie, error) {
	query := `
		SELECT m.id, m.original_title, m.poster_path, m.release_date,
		       m.vote_average, m.overview, m.created_at, m.updated_at
		FROM movies m
		JOIN movie_rankings r ON r.movie_id = m.id
		WHERE r.sort_order = ?
		ORDER BY r.position ASC
	`

	movies := []models.Movie{}
	if err := r.db.Select(&movies, query, string(sortOrder)); err != nil {
		return nil, &models.StoreError{Op: "query ranked movies", Cause: err}
	}

	return movies, nil
}

// GetByID retrieves a cached movie by its remote catalog id. A missing row
// surfaces as models.ErrMovieNotFound, which is a normal state, not a
// store failure.
func (r *MovieRepository) GetByID(remoteID int64) (*models.Movie, error) {
	query := `
		SELECT id, original_title, poster_path, release_date,
		       vote_average, overview, created_at, updated_at
		FROM movies
		WHERE id = ?
	`

	var movie models.Movie
	if err := r.db.Get(&movie, query, remoteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("movie %d: %w", remoteID, models.ErrMovieNotFound)
		}
		return nil, &models.StoreError{Op: "get movie", Cause: err}
	}

	return &movie, nil
}

// CountMovies returns the number of cached movie rows across all sort
// orders.
func (r *MovieRepository) CountMovies() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM movies`); err != nil {
		return 0, &models.StoreError{Op: "count movies", Cause: err}
	}
	return count, nil
}
