package main

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"
)

const maxQueryLen = 80

const (
	SortRelevance = "relevance"
	SortDate      = "date"
)

// Searcher turns a raw query into a displayable, ordered result list: it
// consults the query cache, asks the scoring engine on a miss, joins the
// scores with stored entries and applies sort and threshold.
type Searcher struct {
	cfg        Config
	store      *Store
	engine     SearchEngine
	queryCache *QueryCache
	state      *CrawlState
	logger     *slog.Logger
}

func NewSearcher(cfg Config, store *Store, engine SearchEngine, queryCache *QueryCache, state *CrawlState, logger *slog.Logger) *Searcher {
	return &Searcher{
		cfg:        cfg,
		store:      store,
		engine:     engine,
		queryCache: queryCache,
		state:      state,
		logger:     logger,
	}
}

func (s *Searcher) Search(ctx context.Context, rawQuery, sortKey string) (*SearchResponse, error) {
	query := strings.TrimSpace(truncate(strings.TrimSpace(rawQuery), maxQueryLen))
	sortKey = normalizeSortKey(sortKey)

	resp := &SearchResponse{
		Query:   query,
		Sort:    sortKey,
		Results: []Result{},
	}
	if last, ok := s.state.Get(lastCrawlKey); ok {
		resp.LastCrawl = &last
	}
	if query == "" {
		return resp, nil
	}

	scores, hit := s.queryCache.Get(query)
	if hit {
		s.logger.Info("query cache hit", "query", query)
		resp.Cached = true
	} else {
		s.logger.Info("query cache miss", "query", query)
		var err error
		scores, err = s.engine.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		s.queryCache.Put(query, scores)
	}

	entries, err := s.store.ListEntries(ctx, 0)
	if err != nil {
		return nil, err
	}
	byLink := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		byLink[entry.Link] = entry
	}

	results := make([]Result, 0, len(scores))
	for link, score := range scores {
		entry, ok := byLink[link]
		if !ok {
			// Stale score for an entry that has since been removed.
			continue
		}
		published := time.Now()
		formatted := ""
		if entry.Published != nil {
			published = *entry.Published
			formatted = formatDate(entry.Published)
		}
		results = append(results, Result{
			Title:              entry.Title,
			Link:               entry.Link,
			Score:              score,
			Author:             entry.Author,
			Published:          published,
			PublishedFormatted: formatted,
			FeedTitle:          entry.FeedTitle,
			FeedLink:           entry.FeedLink,
		})
	}

	sortResults(results, sortKey)

	filtered := results[:0]
	for _, r := range results {
		if r.Score > s.cfg.ScoreThreshold {
			filtered = append(filtered, r)
		}
	}
	resp.Results = filtered
	return resp, nil
}

func normalizeSortKey(sortKey string) string {
	switch strings.ToLower(strings.TrimSpace(sortKey)) {
	case SortDate:
		return SortDate
	default:
		return SortRelevance
	}
}

func sortResults(results []Result, sortKey string) {
	switch sortKey {
	case SortDate:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Published.After(results[j].Published)
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	}
}
