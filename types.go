package main

import "time"

type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputWide  OutputFormat = "wide"
)

type Feed struct {
	ID        int64  `json:"id"`
	SiteURL   string `json:"site_url,omitempty"`
	FeedURL   string `json:"feed_url"`
	ConfigURL string `json:"config_url"`
	Title     string `json:"title,omitempty"`
}

type Entry struct {
	ID          int64      `json:"id"`
	FeedID      int64      `json:"feed_id"`
	Title       string     `json:"title,omitempty"`
	Link        string     `json:"link"`
	Published   *time.Time `json:"published,omitempty"`
	Content     string     `json:"content,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
	ContentHash string     `json:"content_hash"`
	Author      string     `json:"author,omitempty"`
	FeedTitle   string     `json:"feed_title,omitempty"`
	FeedLink    string     `json:"feed_link,omitempty"`
}

// ParsedEntry is one item from a fetched feed document before it is
// normalized and stored.
type ParsedEntry struct {
	Title       string
	Link        string
	Content     string
	ContentType string
	Author      string
	Published   *time.Time
}

// FeedDescriptor is the feed-level metadata from a fetched feed document.
type FeedDescriptor struct {
	Title   string
	SiteURL string
	SelfURL string
	Updated *time.Time
}

type FetchResult struct {
	URL  string
	Body string
}

type CrawlReport struct {
	Ran          bool      `json:"ran"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
	FeedsFetched int       `json:"feeds_fetched"`
	FeedsSkipped int       `json:"feeds_skipped"`
	NewEntries   int       `json:"new_entries"`
	Indexed      int       `json:"indexed"`
}

type Result struct {
	Title              string    `json:"title"`
	Link               string    `json:"link"`
	Score              float64   `json:"score"`
	Author             string    `json:"author,omitempty"`
	Published          time.Time `json:"published"`
	PublishedFormatted string    `json:"published_formatted,omitempty"`
	FeedTitle          string    `json:"feed_title,omitempty"`
	FeedLink           string    `json:"feed_link,omitempty"`
}

type SearchResponse struct {
	Query     string     `json:"query"`
	Sort      string     `json:"sort"`
	Cached    bool       `json:"cached"`
	LastCrawl *time.Time `json:"last_crawl,omitempty"`
	Results   []Result   `json:"results"`
}

// Document is one unit handed to the scoring engine: the entry link as the
// document ID and its normalized text as the body.
type Document struct {
	Link    string
	Content string
}
