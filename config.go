package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultCrawlIntervalMin = 15
	defaultCacheTTLMin      = 60
	defaultFetchConcurrent  = 10
	defaultHTTPTimeoutSec   = 10
	defaultUserAgent        = "feedseek/0.1"
	defaultDBPath           = "data/index.db"
)

type Config struct {
	Feeds            []string
	ScoreThreshold   float64
	DBPath           string
	CrawlInterval    time.Duration
	CacheTTL         time.Duration
	FetchConcurrency int
	HTTPTimeout      time.Duration
	UserAgent        string
}

type fileConfig struct {
	Feeds            []string `toml:"feeds"`
	ScoreThreshold   *float64 `toml:"score_threshold"`
	DBPath           *string  `toml:"db_path"`
	CrawlIntervalMin *int     `toml:"crawl_interval_minutes"`
	CacheTTLMin      *int     `toml:"cache_ttl_minutes"`
	FetchConcurrency *int     `toml:"fetch_concurrency"`
	HTTPTimeoutSec   *int     `toml:"http_timeout_seconds"`
	UserAgent        *string  `toml:"user_agent"`
}

// LoadConfig reads the TOML config at path. The file is required: without a
// feed list there is nothing to crawl, so a missing or unreadable file is a
// startup error rather than a silent empty default.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		DBPath:           defaultDBPath,
		CrawlInterval:    defaultCrawlIntervalMin * time.Minute,
		CacheTTL:         defaultCacheTTLMin * time.Minute,
		FetchConcurrency: defaultFetchConcurrent,
		HTTPTimeout:      defaultHTTPTimeoutSec * time.Second,
		UserAgent:        defaultUserAgent,
	}

	fileCfg, err := loadFileConfig(path)
	if err != nil {
		return Config{}, err
	}
	applyFileConfig(&cfg, fileCfg)
	applyEnvOverrides(&cfg)

	if len(cfg.Feeds) == 0 {
		return Config{}, fmt.Errorf("invalid config file %q: feeds must list at least one feed URL", path)
	}
	if cfg.FetchConcurrency < 1 {
		cfg.FetchConcurrency = defaultFetchConcurrent
	}
	if cfg.CrawlInterval <= 0 {
		cfg.CrawlInterval = defaultCrawlIntervalMin * time.Minute
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTLMin * time.Minute
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeoutSec * time.Second
	}
	return cfg, nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, fmt.Errorf("config file %q not found; create one with a feeds list", path)
		}
		return fileConfig{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		unknown := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		sort.Strings(unknown)
		return fileConfig{}, fmt.Errorf("invalid config file %q: unknown key(s): %s", path, strings.Join(unknown, ", "))
	}
	if err := validateFileConfig(path, cfg); err != nil {
		return fileConfig{}, err
	}
	return cfg, nil
}

func validateFileConfig(path string, cfg fileConfig) error {
	for _, u := range cfg.Feeds {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("invalid config file %q: feeds must not contain empty URLs", path)
		}
	}
	if cfg.ScoreThreshold != nil && *cfg.ScoreThreshold < 0 {
		return fmt.Errorf("invalid config file %q: score_threshold must be >= 0", path)
	}
	if cfg.DBPath != nil && strings.TrimSpace(*cfg.DBPath) == "" {
		return fmt.Errorf("invalid config file %q: db_path must be non-empty when provided", path)
	}
	if cfg.CrawlIntervalMin != nil && *cfg.CrawlIntervalMin <= 0 {
		return fmt.Errorf("invalid config file %q: crawl_interval_minutes must be > 0", path)
	}
	if cfg.CacheTTLMin != nil && *cfg.CacheTTLMin <= 0 {
		return fmt.Errorf("invalid config file %q: cache_ttl_minutes must be > 0", path)
	}
	if cfg.FetchConcurrency != nil && *cfg.FetchConcurrency < 1 {
		return fmt.Errorf("invalid config file %q: fetch_concurrency must be >= 1", path)
	}
	if cfg.HTTPTimeoutSec != nil && *cfg.HTTPTimeoutSec <= 0 {
		return fmt.Errorf("invalid config file %q: http_timeout_seconds must be > 0", path)
	}
	return nil
}

func applyFileConfig(cfg *Config, fileCfg fileConfig) {
	for _, u := range fileCfg.Feeds {
		cfg.Feeds = append(cfg.Feeds, strings.TrimSpace(u))
	}
	if fileCfg.ScoreThreshold != nil {
		cfg.ScoreThreshold = *fileCfg.ScoreThreshold
	}
	if fileCfg.DBPath != nil {
		cfg.DBPath = *fileCfg.DBPath
	}
	if fileCfg.CrawlIntervalMin != nil {
		cfg.CrawlInterval = time.Duration(*fileCfg.CrawlIntervalMin) * time.Minute
	}
	if fileCfg.CacheTTLMin != nil {
		cfg.CacheTTL = time.Duration(*fileCfg.CacheTTLMin) * time.Minute
	}
	if fileCfg.FetchConcurrency != nil {
		cfg.FetchConcurrency = *fileCfg.FetchConcurrency
	}
	if fileCfg.HTTPTimeoutSec != nil {
		cfg.HTTPTimeout = time.Duration(*fileCfg.HTTPTimeoutSec) * time.Second
	}
	if fileCfg.UserAgent != nil && strings.TrimSpace(*fileCfg.UserAgent) != "" {
		cfg.UserAgent = *fileCfg.UserAgent
	}
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("FEEDSEEK_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("FEEDSEEK_CRAWL_INTERVAL_MINUTES"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CrawlInterval = time.Duration(n) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("FEEDSEEK_CACHE_TTL_MINUTES"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTL = time.Duration(n) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("FEEDSEEK_FETCH_CONCURRENCY"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.FetchConcurrency = n
		}
	}
	if v, ok := os.LookupEnv("FEEDSEEK_HTTP_TIMEOUT_SECONDS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeout = time.Duration(n) * time.Second
		}
	}
	if v, ok := os.LookupEnv("FEEDSEEK_USER_AGENT"); ok && v != "" {
		cfg.UserAgent = v
	}
}
