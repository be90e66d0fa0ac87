package main

import (
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"net/http"
	"time"

	markdown "github.com/JohannesKaufmann/html-to-markdown"
)

// Scraper fetches an article page and reduces it to readable text. It is the
// fallback for entries whose feed body normalizes to nothing; any failure
// yields an empty string and the caller decides whether to drop the entry.
type Scraper struct {
	client    *http.Client
	converter *markdown.Converter
	userAgent string
	logger    *slog.Logger
}

func NewScraper(cfg Config, logger *slog.Logger) *Scraper {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeoutSec * time.Second
	}
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	return &Scraper{
		client:    client,
		converter: markdown.NewConverter("", true, nil),
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

func (s *Scraper) FetchContent(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.logger.Warn("error fetching content", "url", url, "error", err.Error())
		return ""
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("error fetching content", "url", url, "error", err.Error())
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("error fetching content", "url", url, "status", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		s.logger.Warn("error reading content body", "url", url, "error", err.Error())
		return ""
	}

	// Markdown conversion drops the page chrome tags while keeping the
	// article text; the normalizer flattens what is left.
	text, err := s.converter.ConvertString(string(body))
	if err != nil {
		return CleanText(string(body))
	}
	return text
}
