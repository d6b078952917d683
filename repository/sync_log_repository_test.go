package repository

import (
	"testing"

	"catalog/models"

	"github.com/stretchr/testify/assert"
)

func TestSyncLogRepository_RecordAndRecent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	syncLog := NewSyncLogRepository(db)

	assert.NoError(t, syncLog.Record(models.SortMostPopular, models.StatusFresh, 20, ""))
	assert.NoError(t, syncLog.Record(models.SortTopRated, models.StatusFailed, 0, "tmdb status 500"))

	entries, err := syncLog.Recent(10)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, string(models.SortTopRated), entries[0].SortOrder)
	assert.Equal(t, string(models.StatusFailed), entries[0].Outcome)
	assert.Equal(t, "tmdb status 500", entries[0].Detail)
	assert.Equal(t, string(models.StatusFresh), entries[1].Outcome)
	assert.Equal(t, 20, entries[1].MovieCount)
}

func TestSyncLogRepository_RecentLimit(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	syncLog := NewSyncLogRepository(db)

	for i := 0; i < 5; i++ {
		assert.NoError(t, syncLog.Record(models.SortMostPopular, models.StatusFresh, i, ""))
	}

	entries, err := syncLog.Recent(3)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)

	// A non-positive limit falls back to the default window.
	entries, err = syncLog.Recent(0)
	assert.NoError(t, err)
	assert.Len(t, entries, 5)
}
