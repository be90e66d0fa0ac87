package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Crawler reconciles the configured feed set against storage: it decides
// whether a crawl is due, fetches every configured feed concurrently, stores
// new entries, reindexes the scoring engine and invalidates the query cache.
type Crawler struct {
	cfg        Config
	store      *Store
	fetcher    *Fetcher
	engine     SearchEngine
	state      *CrawlState
	queryCache *QueryCache
	logger     *slog.Logger
}

func NewCrawler(cfg Config, store *Store, fetcher *Fetcher, engine SearchEngine, state *CrawlState, queryCache *QueryCache, logger *slog.Logger) *Crawler {
	return &Crawler{
		cfg:        cfg,
		store:      store,
		fetcher:    fetcher,
		engine:     engine,
		state:      state,
		queryCache: queryCache,
		logger:     logger,
	}
}

// Run executes one crawl cycle. Unless force is set, the cycle is skipped
// entirely when the previous one started less than the configured interval
// ago. Report.Ran tells whether reconciliation actually happened.
//
// The global timestamp is claimed before any work starts. That bounds
// concurrent triggers to roughly one effective crawl per interval without
// being a mutex: two callers racing through the gate both run, and the
// dedup keys absorb the duplicate inserts.
func (c *Crawler) Run(ctx context.Context, force bool) (CrawlReport, error) {
	now := time.Now()
	report := CrawlReport{StartedAt: now}

	if !force {
		if last, ok := c.state.Get(lastCrawlKey); ok && now.Sub(last) < c.cfg.CrawlInterval {
			c.logger.Info("crawl skipped, too soon",
				"last_crawl", last,
				"interval", c.cfg.CrawlInterval.String(),
			)
			report.EndedAt = time.Now()
			return report, nil
		}
	}
	c.state.Set(lastCrawlKey, now)

	if _, err := c.store.RemoveFeedsNotIn(ctx, c.cfg.Feeds); err != nil {
		return report, err
	}

	results := c.fetcher.FetchAll(ctx, c.cfg.Feeds)
	for _, res := range results {
		c.reconcileFeed(ctx, res, now, &report)
	}

	if err := c.reindex(ctx, &report); err != nil {
		return report, err
	}

	report.Ran = true
	report.EndedAt = time.Now()
	return report, nil
}

// Trigger starts a crawl in the background and returns immediately. The
// returned channel delivers the report when the cycle finishes; callers that
// only want to fire the crawl can ignore it.
func (c *Crawler) Trigger(force bool) <-chan CrawlReport {
	done := make(chan CrawlReport, 1)
	go func() {
		report, err := c.Run(context.Background(), force)
		if err != nil {
			c.logger.Error("background crawl failed", "error", err.Error())
		}
		done <- report
	}()
	return done
}

func (c *Crawler) reconcileFeed(ctx context.Context, res FetchResult, now time.Time, report *CrawlReport) {
	if strings.TrimSpace(res.Body) == "" {
		c.logger.Warn("empty feed body, skipping", "url", res.URL)
		report.FeedsSkipped++
		return
	}

	parsed, err := gofeed.NewParser().ParseString(res.Body)
	if err != nil {
		c.logger.Warn("feed parse failed, skipping", "url", res.URL, "error", err.Error())
		report.FeedsSkipped++
		return
	}

	feedID, existed, err := c.store.UpsertFeed(ctx, descriptorOf(parsed), res.URL)
	if err != nil {
		c.logger.Error("feed upsert failed, skipping", "url", res.URL, "error", err.Error())
		report.FeedsSkipped++
		return
	}

	if existed {
		// Incremental refresh: when the feed says it has not changed since
		// our last visit, there is nothing new to parse or dedup.
		if updated := feedLastUpdated(parsed); !updated.IsZero() {
			if hint, ok := c.state.Get(feedCrawlKey(feedID)); ok && updated.Before(hint) {
				c.logger.Info("feed unchanged, skipping entries", "url", res.URL, "updated", updated)
				report.FeedsSkipped++
				return
			}
		}
	}

	c.state.Set(feedCrawlKey(feedID), now)
	report.FeedsFetched++

	for _, item := range parsed.Items {
		if item == nil || strings.TrimSpace(item.Link) == "" {
			continue
		}
		inserted, err := c.store.InsertEntry(ctx, feedID, convertItem(item))
		if err != nil {
			// A failed write poisons only the rest of this feed's batch;
			// the other feeds in the cycle still proceed.
			c.logger.Error("entry insert failed, aborting feed batch",
				"url", res.URL, "link", item.Link, "error", err.Error())
			break
		}
		if inserted {
			report.NewEntries++
		}
	}
}

func (c *Crawler) reindex(ctx context.Context, report *CrawlReport) error {
	entries, err := c.store.ListEntries(ctx, 0)
	if err != nil {
		return err
	}
	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, Document{Link: entry.Link, Content: entry.Content})
	}
	if err := c.engine.BulkIndex(ctx, docs); err != nil {
		return err
	}
	report.Indexed = len(docs)

	c.queryCache.InvalidateAll()
	c.logger.Info("query cache invalidated", "indexed", len(docs))
	return nil
}

func descriptorOf(parsed *gofeed.Feed) FeedDescriptor {
	desc := FeedDescriptor{
		Title:   strings.TrimSpace(parsed.Title),
		SiteURL: strings.TrimSpace(parsed.Link),
		SelfURL: strings.TrimSpace(parsed.FeedLink),
		Updated: parsed.UpdatedParsed,
	}
	return desc
}

// feedLastUpdated is the feed's own report of when it last changed: the
// feed-level updated time when present, else the newest entry publish time.
// The zero time means the feed gives no usable signal.
func feedLastUpdated(parsed *gofeed.Feed) time.Time {
	if parsed.UpdatedParsed != nil {
		return *parsed.UpdatedParsed
	}
	var latest time.Time
	for _, item := range parsed.Items {
		if item != nil && item.PublishedParsed != nil && item.PublishedParsed.After(latest) {
			latest = *item.PublishedParsed
		}
	}
	return latest
}

func convertItem(item *gofeed.Item) ParsedEntry {
	entry := ParsedEntry{
		Title: strings.TrimSpace(item.Title),
		Link:  strings.TrimSpace(item.Link),
	}

	if item.Content != "" {
		entry.Content = item.Content
		entry.ContentType = "html"
	} else {
		entry.Content = item.Description
	}

	if item.Author != nil {
		entry.Author = strings.TrimSpace(item.Author.Name)
	}
	if entry.Author == "" && len(item.Authors) > 0 && item.Authors[0] != nil {
		entry.Author = strings.TrimSpace(item.Authors[0].Name)
	}

	if item.PublishedParsed != nil {
		t := *item.PublishedParsed
		entry.Published = &t
	} else if item.UpdatedParsed != nil {
		t := *item.UpdatedParsed
		entry.Published = &t
	}

	return entry
}
