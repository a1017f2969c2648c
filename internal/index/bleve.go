// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/pdiddy/docsearch/pkg/types"
)

// Bleve is an in-memory Bleve index using the standard analyzer.
type Bleve struct {
	index  bleve.Index
	fields []string
	chunks []types.Chunk
}

// NewBleve creates an empty in-memory Bleve index over fields.
func NewBleve(fields []string) (*Bleve, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("at least one text field is required")
	}
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}
	return &Bleve{index: idx, fields: fields}, nil
}

// docID is zero-padded so sorting by ID follows chunk order.
func docID(i int) string {
	return fmt.Sprintf("%09d", i)
}

// Build indexes chunks in one batch.
func (x *Bleve) Build(ctx context.Context, chunks []types.Chunk) error {
	x.chunks = chunks
	if len(chunks) == 0 {
		return nil
	}
	batch := x.index.NewBatch()
	for i, c := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc := make(map[string]any, len(x.fields))
		for j, f := range x.fields {
			doc[column(j)] = c.Text(f)
		}
		if err := batch.Index(docID(i), doc); err != nil {
			return fmt.Errorf("indexing chunk %d of %s: %w", c.Start, c.Filename(), err)
		}
	}
	if err := x.index.Batch(batch); err != nil {
		return fmt.Errorf("executing batch: %w", err)
	}
	return nil
}

// Search matches any query term in any text field, ordered by score and
// then by chunk position.
func (x *Bleve) Search(ctx context.Context, q string, numResults int) ([]types.Chunk, error) {
	terms := Terms(q)
	if len(terms) == 0 || numResults <= 0 {
		return []types.Chunk{}, nil
	}
	text := strings.Join(terms, " ")

	disjuncts := make([]query.Query, len(x.fields))
	for j := range x.fields {
		m := bleve.NewMatchQuery(text)
		m.SetField(column(j))
		disjuncts[j] = m
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(disjuncts...), numResults, 0, false)
	req.SortBy([]string{"-_score", "_id"})

	res, err := x.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]types.Chunk, 0, len(res.Hits))
	for _, hit := range res.Hits {
		i, err := strconv.Atoi(hit.ID)
		if err != nil || i < 0 || i >= len(x.chunks) {
			return nil, fmt.Errorf("unexpected document id %q", hit.ID)
		}
		results = append(results, x.chunks[i])
	}
	return results, nil
}

// Close releases the index.
func (x *Bleve) Close() error {
	return x.index.Close()
}
