package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitSchema_CreatesTables(t *testing.T) {
	db, err := NewDB(":memory:")
	assert.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.NoError(t, db.InitSchema())

	// Idempotent on a current-version database.
	assert.NoError(t, db.InitSchema())

	var name string
	err = db.Get(&name, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'movies'`)
	assert.NoError(t, err)
	assert.Equal(t, "movies", name)

	var version int
	assert.NoError(t, db.Get(&version, "PRAGMA user_version"))
	assert.Equal(t, SchemaVersion, version)
}

func TestInitSchema_ForeignKeysEnforced(t *testing.T) {
	db, err := NewDB(":memory:")
	assert.NoError(t, err)
	defer func() { _ = db.Close() }()
	assert.NoError(t, db.InitSchema())

	_, err = db.Exec(`INSERT INTO trailers (movie_id, trailer_key) VALUES (999, 'orphan')`)
	assert.Error(t, err)
}

// Upgrading from an older schema version drops and recreates all tables.
// The database is a pure cache, so the data loss is acceptable.
func TestInitSchema_VersionMismatchRecreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.db")

	db, err := NewDB(path)
	assert.NoError(t, err)
	assert.NoError(t, db.InitSchema())

	_, err = db.Exec(`
		INSERT INTO movies (id, original_title, poster_path, release_date, vote_average)
		VALUES (1, 'Old Movie', '/p.jpg', '2020-01-01', 6.0)
	`)
	assert.NoError(t, err)

	// Pretend the rows were written by a different schema version.
	_, err = db.Exec("PRAGMA user_version = 99")
	assert.NoError(t, err)
	assert.NoError(t, db.Close())

	db, err = NewDB(path)
	assert.NoError(t, err)
	defer func() { _ = db.Close() }()
	assert.NoError(t, db.InitSchema())

	var count int
	assert.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM movies`))
	assert.Equal(t, 0, count)

	var version int
	assert.NoError(t, db.Get(&version, "PRAGMA user_version"))
	assert.Equal(t, SchemaVersion, version)
}
