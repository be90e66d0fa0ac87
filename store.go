package main

import (
	"context"
	"database/sql"
	"log/slog"
)

// ContentFetcher retrieves article text for entries whose feed content is
// empty after normalization.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) string
}

type Store struct {
	db      *sql.DB
	scraper ContentFetcher
	logger  *slog.Logger
}

func NewStore(db *sql.DB, scraper ContentFetcher, logger *slog.Logger) *Store {
	return &Store{db: db, scraper: scraper, logger: logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedRow(scanner rowScanner) (Feed, error) {
	var f Feed
	var siteURL, feedURL, title sql.NullString
	if err := scanner.Scan(
		&f.ID,
		&siteURL,
		&feedURL,
		&f.ConfigURL,
		&title,
	); err != nil {
		return Feed{}, err
	}
	f.SiteURL = siteURL.String
	f.FeedURL = feedURL.String
	f.Title = title.String
	return f, nil
}

func scanEntryRow(scanner rowScanner) (Entry, error) {
	var e Entry
	var title, published, content, contentType, author, feedTitle, feedLink sql.NullString
	if err := scanner.Scan(
		&e.ID,
		&e.FeedID,
		&title,
		&e.Link,
		&published,
		&content,
		&contentType,
		&e.ContentHash,
		&author,
		&feedTitle,
		&feedLink,
	); err != nil {
		return Entry{}, err
	}
	e.Title = title.String
	e.Content = content.String
	e.ContentType = contentType.String
	e.Author = author.String
	e.FeedTitle = feedTitle.String
	e.FeedLink = feedLink.String
	if published.Valid {
		if t, err := parseDBTime(published.String); err == nil {
			e.Published = &t
		}
	}
	return e, nil
}
