// ABOUTME: Database connection management and initialization
// ABOUTME: Handles SQLite connection and schema creation for the feed cache

package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// InitDB initializes the database connection and creates schema.
func InitDB(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// GetDefaultDBPath returns the default database path following XDG standards.
func GetDefaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "cldrforum", "forum.db")
}

func createSchema(db *sql.DB) error {
	// feed is a cache of the last fetched batch per locale, in server
	// order; the server stays authoritative. outbox holds composed posts
	// not yet accepted by the server.
	schema := `
	CREATE TABLE IF NOT EXISTS feed (
		fetched_locale TEXT NOT NULL,
		position INTEGER NOT NULL,
		id INTEGER NOT NULL,
		parent INTEGER NOT NULL,
		locale TEXT NOT NULL,
		xpath TEXT DEFAULT '',
		subject TEXT DEFAULT '',
		body TEXT DEFAULT '',
		date_millis INTEGER NOT NULL,
		poster_json TEXT,
		forum_status TEXT DEFAULT '',
		version TEXT DEFAULT '',
		PRIMARY KEY (fetched_locale, id)
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		locale TEXT NOT NULL,
		xpath TEXT DEFAULT '',
		parent INTEGER NOT NULL,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		forum_status TEXT DEFAULT '',
		queued_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_feed_locale_position ON feed(fetched_locale, position);
	`

	_, err := db.Exec(schema)
	return err
}
