package main

import (
	"context"
	"database/sql"
	"errors"
)

const entryColumns = `
	e.id, e.feed_id, e.title, e.link, e.published,
	e.content, e.content_type, e.content_hash, e.author,
	f.title AS feed_title, f.feed_url AS feed_link
`

// InsertEntry normalizes the entry's content and stores it unless its link or
// content fingerprint is already present. Entries that stay empty after the
// fallback scrape are skipped without error. Returns whether a row was
// actually inserted.
func (s *Store) InsertEntry(ctx context.Context, feedID int64, entry ParsedEntry) (bool, error) {
	text, hash, err := NormalizeContent(entry.Content)
	if errors.Is(err, ErrEmptyContent) {
		s.logger.Info("entry has no feed content, scraping article", "link", entry.Link)
		scraped := s.scraper.FetchContent(ctx, entry.Link)
		text, hash, err = NormalizeContent(scraped)
	}
	if errors.Is(err, ErrEmptyContent) {
		s.logger.Warn("entry still empty after scrape, skipping", "link", entry.Link, "title", entry.Title)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM entries WHERE content_hash = ?`, hash).Scan(&existingID)
	switch {
	case err == nil:
		// Same content seen before, possibly under a different link.
		s.logger.Info("duplicate content, skipping entry", "link", entry.Link)
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO entries (feed_id, title, link, published, content, content_type, content_hash, author)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		feedID,
		entry.Title,
		entry.Link,
		timeToDBString(entry.Published),
		text,
		nullIfEmpty(entry.ContentType),
		hash,
		nullIfEmpty(entry.Author),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		s.logger.Info("duplicate link, skipping entry", "link", entry.Link)
		return false, nil
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// ListEntries returns entries joined with their feed's title and URL, newest
// first with unknown publish dates last. A feedID of 0 means all feeds.
func (s *Store) ListEntries(ctx context.Context, feedID int64) ([]Entry, error) {
	query := `SELECT ` + entryColumns + `
		FROM entries e
		JOIN feeds f ON f.id = e.feed_id`
	args := make([]any, 0, 1)
	if feedID > 0 {
		query += ` WHERE e.feed_id = ?`
		args = append(args, feedID)
	}
	query += ` ORDER BY CASE WHEN e.published IS NULL THEN 1 ELSE 0 END, e.published DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		entry, err := scanEntryRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}
