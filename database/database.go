// Package database provides database connectivity and schema management.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Import sqlite3 driver
)

// SchemaVersion is the current schema version, stamped into the database
// via PRAGMA user_version. Increment on any schema change.
const SchemaVersion = 1

// DB wraps the sqlx database handle.
type DB struct {
	*sqlx.DB
}

// NewDB opens a SQLite database at the given path (":memory:" for tests)
// with foreign key enforcement enabled.
func NewDB(dataSourceName string) (*DB, error) {
	db, err := sqlx.Connect("sqlite3", dataSourceName+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite serializes writers; a single connection avoids table-lock
	// errors between concurrent transactions.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// InitSchema creates the cache schema, dropping and recreating all tables
// when the stored version differs from SchemaVersion. The database is a
// pure cache of remote state, so losing rows on upgrade is an accepted
// trade-off in exchange for never running ALTER migrations.
func (db *DB) InitSchema() error {
	var version int
	if err := db.Get(&version, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version != 0 && version != SchemaVersion {
		log.Printf("Schema version %d found, want %d; dropping cache tables", version, SchemaVersion)
		drop := `
		DROP TABLE IF EXISTS sync_log;
		DROP TABLE IF EXISTS preferences;
		DROP TABLE IF EXISTS reviews;
		DROP TABLE IF EXISTS trailers;
		DROP TABLE IF EXISTS movie_rankings;
		DROP TABLE IF EXISTS movies;
		`
		if _, err := db.Exec(drop); err != nil {
			return fmt.Errorf("failed to drop outdated schema: %w", err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS movies (
		id INTEGER PRIMARY KEY,
		original_title TEXT NOT NULL CHECK (original_title <> ''),
		poster_path TEXT NOT NULL CHECK (poster_path <> ''),
		release_date TEXT NOT NULL,
		vote_average REAL NOT NULL CHECK (vote_average >= 0.0 AND vote_average <= 10.0),
		overview TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS movie_rankings (
		sort_order TEXT NOT NULL,
		position INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		PRIMARY KEY (sort_order, position),
		FOREIGN KEY (movie_id) REFERENCES movies (id)
	);

	CREATE INDEX IF NOT EXISTS idx_movie_rankings_movie_id ON movie_rankings(movie_id);

	CREATE TABLE IF NOT EXISTS trailers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		movie_id INTEGER NOT NULL,
		trailer_key TEXT NOT NULL CHECK (trailer_key <> ''),
		FOREIGN KEY (movie_id) REFERENCES movies (id)
	);

	CREATE INDEX IF NOT EXISTS idx_trailers_movie_id ON trailers(movie_id);

	CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		movie_id INTEGER NOT NULL,
		author TEXT NOT NULL CHECK (author <> ''),
		content TEXT NOT NULL,
		FOREIGN KEY (movie_id) REFERENCES movies (id)
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_movie_id ON reviews(movie_id);

	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sync_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sort_order TEXT NOT NULL,
		outcome TEXT NOT NULL,
		movie_count INTEGER NOT NULL DEFAULT 0,
		detail TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sync_log_created_at ON sync_log(created_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("failed to stamp schema version: %w", err)
	}

	log.Println("Database schema initialized")
	return nil
}
