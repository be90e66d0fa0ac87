package main

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"
	"time"
)

type stubScraper struct {
	content string
	calls   int
}

func (s *stubScraper) FetchContent(ctx context.Context, url string) string {
	s.calls++
	return s.content
}

type stubEngine struct {
	scores   map[string]float64
	searches int
	indexed  []Document
}

func (e *stubEngine) BulkIndex(ctx context.Context, docs []Document) error {
	e.indexed = docs
	return nil
}

func (e *stubEngine) Search(ctx context.Context, query string) (map[string]float64, error) {
	e.searches++
	return e.scores, nil
}

func testConfig(t *testing.T, feeds ...string) Config {
	t.Helper()
	if len(feeds) == 0 {
		feeds = []string{"https://example.com/feed.xml"}
	}
	return Config{
		Feeds:            feeds,
		ScoreThreshold:   0,
		DBPath:           filepath.Join(t.TempDir(), "index.db"),
		CrawlInterval:    15 * time.Minute,
		CacheTTL:         time.Hour,
		FetchConcurrency: 4,
		HTTPTimeout:      5 * time.Second,
		UserAgent:        "feedseek-test/1.0",
	}
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := openDB(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func newTestStore(t *testing.T, scraper ContentFetcher) *Store {
	t.Helper()
	if scraper == nil {
		scraper = &stubScraper{}
	}
	return NewStore(newTestDB(t), scraper, newLogger(io.Discard))
}

func mustUpsertFeed(t *testing.T, store *Store, configURL string) int64 {
	t.Helper()
	desc := FeedDescriptor{
		Title:   "Test Feed",
		SiteURL: configURL + "/site",
		SelfURL: configURL,
	}
	id, _, err := store.UpsertFeed(context.Background(), desc, configURL)
	if err != nil {
		t.Fatalf("upsert feed: %v", err)
	}
	return id
}

func timePtr(t time.Time) *time.Time {
	return &t
}
