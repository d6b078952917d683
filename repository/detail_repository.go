package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"catalog/database"
	"catalog/models"
)

// DetailRepository handles the trailer and review child collections of a
// movie. Both are replaced wholesale per movie on each detail fetch; a
// partial merge never happens.
type DetailRepository struct {
	db *database.DB
}

// NewDetailRepository creates a new detail repository
func NewDetailRepository(db *database.DB) *DetailRepository {
	return &DetailRepository{db: db}
}

// ReplaceTrailers atomically deletes all trailer rows for the movie and
// inserts the new set. Inserting for a movie id with no cached movie row
// fails the whole transaction (foreign key enforcement).
func (r *DetailRepository) ReplaceTrailers(movieID int64, trailers []models.Trailer) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return &models.StoreError{Op: "replace trailers", Cause: err}
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("Failed to roll back trailer transaction: %v", err)
		}
	}()

	if _, err := tx.Exec(`DELETE FROM trailers WHERE movie_id = ?`, movieID); err != nil {
		return &models.StoreError{Op: "delete trailers", Cause: err}
	}
	for _, trailer := range trailers {
		if _, err := tx.Exec(
			`INSERT INTO trailers (movie_id, trailer_key) VALUES (?, ?)`,
			movieID, trailer.Key,
		); err != nil {
			return &models.StoreError{Op: fmt.Sprintf("insert trailer for movie %d", movieID), Cause: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &models.StoreError{Op: "commit trailers", Cause: err}
	}

	return nil
}

// ReplaceReviews atomically deletes all review rows for the movie and
// inserts the new set.
func (r *DetailRepository) ReplaceReviews(movieID int64, reviews []models.Review) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return &models.StoreError{Op: "replace reviews", Cause: err}
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("Failed to roll back review transaction: %v", err)
		}
	}()

	if _, err := tx.Exec(`DELETE FROM reviews WHERE movie_id = ?`, movieID); err != nil {
		return &models.StoreError{Op: "delete reviews", Cause: err}
	}
	for _, review := range reviews {
		if _, err := tx.Exec(
			`INSERT INTO reviews (movie_id, author, content) VALUES (?, ?, ?)`,
			movieID, review.Author, review.Content,
		); err != nil {
			return &models.StoreError{Op: fmt.Sprintf("insert review for movie %d", movieID), Cause: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &models.StoreError{Op: "commit reviews", Cause: err}
	}

	return nil
}

// Trailers returns the cached trailers for a movie. An unfetched movie id
// yields an empty slice, not an error.
func (r *DetailRepository) Trailers(movieID int64) ([]models.Trailer, error) {
	trailers := []models.Trailer{}
	query := `SELECT id, movie_id, trailer_key FROM trailers WHERE movie_id = ? ORDER BY id ASC`
	if err := r.db.Select(&trailers, query, movieID); err != nil {
		return nil, &models.StoreError{Op: "query trailers", Cause: err}
	}
	return trailers, nil
}

// Reviews returns the cached reviews for a movie.
func (r *DetailRepository) Reviews(movieID int64) ([]models.Review, error) {
	reviews := []models.Review{}
	query := `SELECT id, movie_id, author, content FROM reviews WHERE movie_id = ? ORDER BY id ASC`
	if err := r.db.Select(&reviews, query, movieID); err != nil {
		return nil, &models.StoreError{Op: "query reviews", Cause: err}
	}
	return reviews, nil
}
