// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one batch over a repository snapshot: load the
// archive, extract files, parse front matter, chunk, and search. Item
// failures are collected in the Report; anything else stops the run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/docsearch/internal/archive"
	"github.com/pdiddy/docsearch/internal/chunk"
	"github.com/pdiddy/docsearch/internal/extract"
	"github.com/pdiddy/docsearch/internal/index"
	"github.com/pdiddy/docsearch/internal/parse"
	"github.com/pdiddy/docsearch/pkg/types"
)

// Stage names the last stage a run executes.
type Stage string

const (
	StageExtract Stage = "extract"
	StageChunk   Stage = "chunk"
	StageSearch  Stage = "search"
)

// Source supplies the archive bytes for a run.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

// Report holds the outcome of a run. Slices for stages that did not run
// are nil.
type Report struct {
	Files     []types.RawRepositoryFile
	Documents []types.ParsedDocument
	Chunks    []types.Chunk
	Results   []types.Chunk

	// Failures lists skipped items from every stage, in stage order.
	Failures []types.Failure
}

// Run executes the stages up to and including through.
func Run(ctx context.Context, cfg types.PipelineConfig, src Source, through Stage, log zerolog.Logger) (*Report, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching archive: %w", err)
	}
	entries, err := archive.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding archive: %w", err)
	}
	return RunEntries(ctx, cfg, entries, through, log)
}

// RunEntries executes the stages after archive decoding.
func RunEntries(ctx context.Context, cfg types.PipelineConfig, entries []archive.Entry, through Stage, log zerolog.Logger) (*Report, error) {
	report := &Report{}

	extracted := extract.Extract(entries, extract.NewFilter(cfg.Filter), log)
	report.Files = extracted.Files
	report.Failures = append(report.Failures, extracted.Failures...)
	if through == StageExtract {
		return report, nil
	}

	parsed := parse.ParseAll(report.Files, log)
	report.Documents = parsed.Documents
	report.Failures = append(report.Failures, parsed.Failures...)

	chunks, err := chunk.Documents(report.Documents, chunk.OptionsFromConfig(cfg.Chunk))
	if err != nil {
		return nil, fmt.Errorf("chunking documents: %w", err)
	}
	report.Chunks = chunks
	log.Info().Str("stage", "chunk").Int("chunks", len(chunks)).Msg("chunked documents")
	if through == StageChunk {
		return report, nil
	}

	results, err := index.BuildAndSearch(ctx, cfg.Index, report.Chunks, cfg.Query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	report.Results = results
	log.Info().Str("stage", "search").Str("query", cfg.Query).Int("results", len(results)).Msg("searched chunks")
	return report, nil
}
