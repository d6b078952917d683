package repository

import (
	"database/sql"
	"errors"

	"catalog/database"
	"catalog/models"
)

const sortPreferenceKey = "sort_order"

// PreferenceRepository persists small key/value settings, currently just
// the chosen sort order.
type PreferenceRepository struct {
	db *database.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *database.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// SortPreference returns the persisted sort order. Unset or unrecognized
// values default to most popular.
func (r *PreferenceRepository) SortPreference() (models.SortOrder, error) {
	var value string
	err := r.db.Get(&value, `SELECT value FROM preferences WHERE key = ?`, sortPreferenceKey)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SortMostPopular, nil
	}
	if err != nil {
		return models.SortMostPopular, &models.StoreError{Op: "read sort preference", Cause: err}
	}
	return models.ParseSortOrder(value), nil
}

// SetSortPreference persists the chosen sort order.
func (r *PreferenceRepository) SetSortPreference(sortOrder models.SortOrder) error {
	query := `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := r.db.Exec(query, sortPreferenceKey, string(sortOrder)); err != nil {
		return &models.StoreError{Op: "write sort preference", Cause: err}
	}
	return nil
}
