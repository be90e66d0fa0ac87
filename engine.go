package main

import (
	"context"
	"database/sql"
	"strings"
)

// SearchEngine is the scoring collaborator: it indexes documents keyed by
// link and maps a query to per-link relevance scores.
type SearchEngine interface {
	BulkIndex(ctx context.Context, docs []Document) error
	Search(ctx context.Context, query string) (map[string]float64, error)
}

// FTSEngine scores documents with SQLite FTS5. bm25() reports lower values
// for better matches, so scores are negated to make higher mean more
// relevant.
type FTSEngine struct {
	db *sql.DB
}

func NewFTSEngine(db *sql.DB) *FTSEngine {
	return &FTSEngine{db: db}
}

// BulkIndex replaces the whole corpus in one transaction.
func (e *FTSEngine) BulkIndex(ctx context.Context, docs []Document) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM docs`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO docs (link, content) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, doc := range docs {
		if _, err := stmt.ExecContext(ctx, doc.Link, doc.Content); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (e *FTSEngine) Search(ctx context.Context, query string) (map[string]float64, error) {
	match := ftsMatchExpr(query)
	if match == "" {
		return map[string]float64{}, nil
	}

	rows, err := e.db.QueryContext(ctx, `SELECT link, bm25(docs) FROM docs WHERE docs MATCH ?`, match)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[string]float64)
	for rows.Next() {
		var link string
		var rank float64
		if err := rows.Scan(&link, &rank); err != nil {
			return nil, err
		}
		scores[link] = -rank
	}
	return scores, rows.Err()
}

// ftsMatchExpr quotes each query term so user input cannot be misread as
// FTS5 operator syntax. Terms are ORed: a document matching any term gets
// scored.
func ftsMatchExpr(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " OR ")
}
