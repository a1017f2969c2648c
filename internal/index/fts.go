// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/pdiddy/docsearch/pkg/types"
)

// FTS is an in-memory SQLite FTS5 index. Each text field is one FTS5
// column; the rowid is the chunk's position plus one.
type FTS struct {
	db     *sql.DB
	fields []string
	chunks []types.Chunk
}

// NewFTS opens an in-memory database with an FTS5 table over fields.
func NewFTS(fields []string) (*FTS, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("at least one text field is required")
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	columns := make([]string, len(fields))
	for i := range fields {
		columns[i] = column(i)
	}
	stmt := fmt.Sprintf(
		`CREATE VIRTUAL TABLE chunks_fts USING fts5(%s, tokenize='unicode61')`,
		strings.Join(columns, ", "))
	if _, err := db.Exec(stmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating FTS table: %w", err)
	}

	return &FTS{db: db, fields: fields}, nil
}

func column(i int) string {
	return fmt.Sprintf("f%d", i)
}

// Build inserts chunks in a single transaction.
func (x *FTS) Build(ctx context.Context, chunks []types.Chunk) error {
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(x.fields)+1), ", ")
	columns := []string{"rowid"}
	for i := range x.fields {
		columns = append(columns, column(i))
	}
	insert, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO chunks_fts(%s) VALUES (%s)`, strings.Join(columns, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	args := make([]any, len(x.fields)+1)
	for i, c := range chunks {
		args[0] = i + 1
		for j, f := range x.fields {
			args[j+1] = c.Text(f)
		}
		if _, err := insert.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("indexing chunk %d of %s: %w", c.Start, c.Filename(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	x.chunks = chunks
	return nil
}

// Search matches any query term. Results are ordered by bm25 rank, then by
// chunk position so equal scores are stable.
func (x *FTS) Search(ctx context.Context, query string, numResults int) ([]types.Chunk, error) {
	match := matchExpr(query)
	if match == "" || numResults <= 0 {
		return []types.Chunk{}, nil
	}

	rows, err := x.db.QueryContext(ctx,
		`SELECT rowid FROM chunks_fts WHERE chunks_fts MATCH ? ORDER BY rank, rowid LIMIT ?`,
		match, numResults)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	results := []types.Chunk{}
	for rows.Next() {
		var rowid int
		if err := rows.Scan(&rowid); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, x.chunks[rowid-1])
	}
	return results, rows.Err()
}

// Close releases the database.
func (x *FTS) Close() error {
	return x.db.Close()
}

// matchExpr turns free text into an FTS5 expression OR-ing quoted terms, so
// punctuation in the query never reaches the FTS5 parser.
func matchExpr(query string) string {
	terms := Terms(query)
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + t + `"`
	}
	return strings.Join(quoted, " OR ")
}
