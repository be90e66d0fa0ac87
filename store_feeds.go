package main

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strings"
)

const feedColumns = `id, site_url, feed_url, config_url, title`

// UpsertFeed finds the feed registered under configURL or inserts a new row
// derived from the fetched descriptor. The second return value reports
// whether the feed already existed.
func (s *Store) UpsertFeed(ctx context.Context, desc FeedDescriptor, configURL string) (int64, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM feeds WHERE config_url = ?`, configURL).Scan(&id)
	switch {
	case err == nil:
		return id, true, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, false, err
	}

	feedURL := fallback(desc.SelfURL, desc.SiteURL)
	title := desc.Title
	if strings.TrimSpace(title) == "" {
		if u, parseErr := url.Parse(desc.SiteURL); parseErr == nil {
			title = u.Host
		}
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO feeds (site_url, feed_url, config_url, title) VALUES (?, ?, ?, ?)`,
		desc.SiteURL, feedURL, configURL, title,
	)
	if err != nil {
		// A concurrent upsert with the same configURL may have won the
		// insert race; the row it wrote is identical, so adopt it.
		var existingID int64
		if retryErr := s.db.QueryRowContext(ctx, `SELECT id FROM feeds WHERE config_url = ?`, configURL).Scan(&existingID); retryErr == nil {
			return existingID, true, nil
		}
		return 0, false, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	s.logger.Info("feed registered", "config_url", configURL, "title", title)
	return id, false, nil
}

func (s *Store) ListFeeds(ctx context.Context) ([]Feed, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+feedColumns+` FROM feeds ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feeds := make([]Feed, 0)
	for rows.Next() {
		feed, err := scanFeedRow(rows)
		if err != nil {
			return nil, err
		}
		feeds = append(feeds, feed)
	}
	return feeds, rows.Err()
}

// RemoveFeedsNotIn deletes feeds whose config URL no longer appears in the
// configuration, cascading to their entries.
func (s *Store) RemoveFeedsNotIn(ctx context.Context, configured []string) (int, error) {
	keep := make(map[string]struct{}, len(configured))
	for _, u := range configured {
		keep[u] = struct{}{}
	}

	feeds, err := s.ListFeeds(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, feed := range feeds {
		if _, ok := keep[feed.ConfigURL]; ok {
			continue
		}
		if _, err := s.db.ExecContext(ctx, `DELETE FROM feeds WHERE id = ?`, feed.ID); err != nil {
			return removed, err
		}
		removed++
		s.logger.Info("feed removed", "config_url", feed.ConfigURL, "title", feed.Title)
	}
	return removed, nil
}
