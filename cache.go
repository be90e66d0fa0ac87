package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const queryCacheSize = 512

// QueryCache keeps recently computed score mappings for a fixed TTL, keyed by
// the fingerprint of the trimmed query. A nil cache is valid and behaves as
// permanently missing, so a search still works when the cache is gone.
type QueryCache struct {
	lru *expirable.LRU[string, map[string]float64]
}

func NewQueryCache(ttl time.Duration) *QueryCache {
	return &QueryCache{
		lru: expirable.NewLRU[string, map[string]float64](queryCacheSize, nil, ttl),
	}
}

func (c *QueryCache) Get(query string) (map[string]float64, bool) {
	if c == nil || c.lru == nil {
		return nil, false
	}
	return c.lru.Get("query:" + fingerprint(query))
}

func (c *QueryCache) Put(query string, scores map[string]float64) {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Add("query:"+fingerprint(query), scores)
}

// InvalidateAll drops every cached result. Called after a crawl ingests new
// content, since any previously computed scores may be stale.
func (c *QueryCache) InvalidateAll() {
	if c == nil || c.lru == nil {
		return
	}
	c.lru.Purge()
}

// CrawlState holds the global and per-feed last-crawl timestamps. These are
// liveness hints: losing them costs redundant work, never wrong results.
type CrawlState struct {
	mu sync.Mutex
	m  map[string]time.Time
}

func NewCrawlState() *CrawlState {
	return &CrawlState{m: make(map[string]time.Time)}
}

func (s *CrawlState) Get(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.m[key]
	return t, ok
}

func (s *CrawlState) Set(key string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = t
}

const lastCrawlKey = "lastCrawl"

func feedCrawlKey(feedID int64) string {
	return fmt.Sprintf("%s:%d", lastCrawlKey, feedID)
}
