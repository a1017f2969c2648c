// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds an in-memory full-text index over chunks and answers
// ranked queries. Two engines are available: SQLite FTS5 with bm25 ranking
// and Bleve. Neither persists anything; an index lives for one run.
package index

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/docsearch/pkg/types"
)

const defaultNumResults = 5

// Index is a full-text index over chunks.
type Index interface {
	// Build indexes chunks. It is called once per index.
	Build(ctx context.Context, chunks []types.Chunk) error

	// Search returns up to numResults chunks ranked most relevant first.
	Search(ctx context.Context, query string, numResults int) ([]types.Chunk, error)

	// Close releases the index.
	Close() error
}

// New returns an empty index for cfg.Backend. An empty backend selects FTS5.
func New(cfg types.IndexConfig) (Index, error) {
	fields := TextFields(cfg)
	switch cfg.Backend {
	case types.BackendFTS5, "":
		return NewFTS(fields)
	case types.BackendBleve:
		return NewBleve(fields)
	default:
		return nil, fmt.Errorf("unsupported index backend %q: use fts5 or bleve", cfg.Backend)
	}
}

// TextFields returns the searched fields of cfg, defaulting to content.
func TextFields(cfg types.IndexConfig) []string {
	if len(cfg.TextFields) == 0 {
		return []string{types.KeyContent}
	}
	return cfg.TextFields
}

// NumResults returns the configured result count, defaulting to 5.
func NumResults(cfg types.IndexConfig) int {
	if cfg.NumResults <= 0 {
		return defaultNumResults
	}
	return cfg.NumResults
}

// BuildAndSearch indexes chunks with a fresh index, runs one query, and
// closes the index.
func BuildAndSearch(ctx context.Context, cfg types.IndexConfig, chunks []types.Chunk, query string) ([]types.Chunk, error) {
	idx, err := New(cfg)
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	if err := idx.Build(ctx, chunks); err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	results, err := idx.Search(ctx, query, NumResults(cfg))
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	return results, nil
}

var termPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Terms lower-cases query and splits it into letter and digit runs.
func Terms(query string) []string {
	return termPattern.FindAllString(strings.ToLower(query), -1)
}
