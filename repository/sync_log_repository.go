package repository

import (
	"catalog/database"
	"catalog/models"
)

// SyncLogRepository records the outcome of each refresh pass so operators
// can see when the cache last reconciled and why a pass fell back to
// cached data.
type SyncLogRepository struct {
	db *database.DB
}

// NewSyncLogRepository creates a new sync log repository
func NewSyncLogRepository(db *database.DB) *SyncLogRepository {
	return &SyncLogRepository{db: db}
}

// Record appends a refresh outcome. Detail carries the presentable cause
// for failed passes and is empty otherwise.
func (r *SyncLogRepository) Record(sortOrder models.SortOrder, outcome models.RefreshStatus, movieCount int, detail string) error {
	query := `INSERT INTO sync_log (sort_order, outcome, movie_count, detail) VALUES (?, ?, ?, ?)`
	if _, err := r.db.Exec(query, string(sortOrder), string(outcome), movieCount, detail); err != nil {
		return &models.StoreError{Op: "record sync outcome", Cause: err}
	}
	return nil
}

// Recent returns the latest refresh outcomes, newest first.
func (r *SyncLogRepository) Recent(limit int) ([]models.SyncEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	entries := []models.SyncEntry{}
	query := `
		SELECT id, sort_order, outcome, movie_count, COALESCE(detail, '') AS detail, created_at
		FROM sync_log
		ORDER BY id DESC
		LIMIT ?
	`
	if err := r.db.Select(&entries, query, limit); err != nil {
		return nil, &models.StoreError{Op: "query sync log", Cause: err}
	}

	return entries, nil
}
