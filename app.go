package main

import (
	"database/sql"
	"io"
	"log/slog"
)

type App struct {
	cfg        Config
	db         *sql.DB
	store      *Store
	engine     SearchEngine
	state      *CrawlState
	queryCache *QueryCache
	fetcher    *Fetcher
	scraper    *Scraper
	crawler    *Crawler
	searcher   *Searcher
	logger     *slog.Logger
}

func NewApp(cfg Config, logWriter io.Writer) (*App, error) {
	logger := newLogger(logWriter)

	db, err := openDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	scraper := NewScraper(cfg, logger)
	store := NewStore(db, scraper, logger)
	engine := NewFTSEngine(db)
	state := NewCrawlState()
	queryCache := NewQueryCache(cfg.CacheTTL)
	fetcher := NewFetcher(cfg, logger)
	crawler := NewCrawler(cfg, store, fetcher, engine, state, queryCache, logger)
	searcher := NewSearcher(cfg, store, engine, queryCache, state, logger)

	return &App{
		cfg:        cfg,
		db:         db,
		store:      store,
		engine:     engine,
		state:      state,
		queryCache: queryCache,
		fetcher:    fetcher,
		scraper:    scraper,
		crawler:    crawler,
		searcher:   searcher,
		logger:     logger,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}
