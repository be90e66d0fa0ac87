package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `feeds = ["https://example.com/feed.xml"]`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Feeds) != 1 || cfg.Feeds[0] != "https://example.com/feed.xml" {
		t.Fatalf("unexpected feeds: %v", cfg.Feeds)
	}
	if cfg.CrawlInterval != 15*time.Minute {
		t.Fatalf("unexpected crawl interval: %v", cfg.CrawlInterval)
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("unexpected cache ttl: %v", cfg.CacheTTL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected http timeout: %v", cfg.HTTPTimeout)
	}
	if cfg.FetchConcurrency != 10 {
		t.Fatalf("unexpected concurrency: %d", cfg.FetchConcurrency)
	}
	if cfg.ScoreThreshold != 0 {
		t.Fatalf("unexpected threshold: %f", cfg.ScoreThreshold)
	}
	if cfg.DBPath != "data/index.db" {
		t.Fatalf("unexpected db path: %q", cfg.DBPath)
	}
}

func TestLoadConfigFullFile(t *testing.T) {
	path := writeConfigFile(t, `
feeds = ["https://a.example.com/feed", "https://b.example.com/feed"]
score_threshold = 1.5
db_path = "/tmp/feedseek.db"
crawl_interval_minutes = 30
cache_ttl_minutes = 10
fetch_concurrency = 3
http_timeout_seconds = 20
user_agent = "custom/2.0"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Feeds) != 2 {
		t.Fatalf("unexpected feeds: %v", cfg.Feeds)
	}
	if cfg.ScoreThreshold != 1.5 {
		t.Fatalf("unexpected threshold: %f", cfg.ScoreThreshold)
	}
	if cfg.DBPath != "/tmp/feedseek.db" {
		t.Fatalf("unexpected db path: %q", cfg.DBPath)
	}
	if cfg.CrawlInterval != 30*time.Minute || cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("unexpected durations: %v %v", cfg.CrawlInterval, cfg.CacheTTL)
	}
	if cfg.FetchConcurrency != 3 || cfg.HTTPTimeout != 20*time.Second {
		t.Fatalf("unexpected fetch settings: %d %v", cfg.FetchConcurrency, cfg.HTTPTimeout)
	}
	if cfg.UserAgent != "custom/2.0" {
		t.Fatalf("unexpected user agent: %q", cfg.UserAgent)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfigFile(t, `
feeds = ["https://example.com/feed.xml"]
crawl_intervall_minutes = 30
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "crawl_intervall_minutes") {
		t.Fatalf("error should name the unknown key, got: %v", err)
	}
}

func TestLoadConfigRequiresFeeds(t *testing.T) {
	path := writeConfigFile(t, `db_path = "/tmp/x.db"`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for empty feed list")
	}

	path = writeConfigFile(t, `feeds = ["https://ok.example.com", "  "]`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for blank feed URL")
	}
}

func TestLoadConfigValidatesRanges(t *testing.T) {
	cases := map[string]string{
		"negative threshold": `feeds = ["https://x"]` + "\n" + `score_threshold = -1.0`,
		"zero interval":      `feeds = ["https://x"]` + "\n" + `crawl_interval_minutes = 0`,
		"zero ttl":           `feeds = ["https://x"]` + "\n" + `cache_ttl_minutes = 0`,
		"zero concurrency":   `feeds = ["https://x"]` + "\n" + `fetch_concurrency = 0`,
		"zero timeout":       `feeds = ["https://x"]` + "\n" + `http_timeout_seconds = 0`,
	}
	for name, body := range cases {
		path := writeConfigFile(t, body)
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
feeds = ["https://example.com/feed.xml"]
db_path = "/tmp/from-file.db"
crawl_interval_minutes = 30
`)

	t.Setenv("FEEDSEEK_DB_PATH", "/tmp/from-env.db")
	t.Setenv("FEEDSEEK_CRAWL_INTERVAL_MINUTES", "5")
	t.Setenv("FEEDSEEK_USER_AGENT", "env-agent/1.0")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/from-env.db" {
		t.Fatalf("expected env override for db path, got %q", cfg.DBPath)
	}
	if cfg.CrawlInterval != 5*time.Minute {
		t.Fatalf("expected env override for interval, got %v", cfg.CrawlInterval)
	}
	if cfg.UserAgent != "env-agent/1.0" {
		t.Fatalf("expected env override for user agent, got %q", cfg.UserAgent)
	}
}
