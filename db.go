package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer at a time; serialize connections to avoid busy/locked storms.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func initSchema(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS feeds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			site_url TEXT UNIQUE,
			feed_url TEXT UNIQUE,
			config_url TEXT NOT NULL,
			title TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			feed_id INTEGER NOT NULL REFERENCES feeds(id) ON DELETE CASCADE,
			title TEXT,
			link TEXT NOT NULL UNIQUE,
			published DATETIME,
			content TEXT,
			content_type TEXT,
			content_hash TEXT NOT NULL UNIQUE,
			author TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_feeds_config_url ON feeds(config_url);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_title ON entries(title);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_content ON entries(content);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_published ON entries(published DESC);`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS docs USING fts5(
			link UNINDEXED,
			content
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
