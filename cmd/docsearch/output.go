// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docsearch/internal/pipeline"
	"github.com/pdiddy/docsearch/pkg/types"
)

const (
	previewLen    = 200
	reportFiles   = 5
	reportResults = 3
)

// preview collapses whitespace in s and truncates it to n runes.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func writeChunks(w io.Writer, chunks []types.Chunk, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(chunks)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(chunks); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}

	fmt.Fprintf(w, "%-50s  %-6s  %s\n", "File", "Start", "Content")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, c := range chunks {
		fmt.Fprintf(w, "%-50s  %-6d  %s\n", c.Filename(), c.Start, preview(c.Content, 50))
	}
	fmt.Fprintf(w, "\n%d chunks\n", len(chunks))
	return nil
}

func writeResults(w io.Writer, results []types.Chunk, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if results == nil {
			results = []types.Chunk{}
		}
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}
	for i, c := range results {
		writeResult(w, i+1, c)
	}
	fmt.Fprintf(w, "%d results\n", len(results))
	return nil
}

func writeResult(w io.Writer, rank int, c types.Chunk) {
	fmt.Fprintf(w, "%d. %s (start %d)\n", rank, c.Filename(), c.Start)
	if title := c.Fields.String("title"); title != "" {
		fmt.Fprintf(w, "   %s\n", title)
	}
	fmt.Fprintf(w, "   %s\n\n", preview(c.Content, previewLen))
}

// writeReport prints the example summary of a full run.
func writeReport(w io.Writer, r *pipeline.Report, query string) {
	fmt.Fprintf(w, "Extracted %d files\n", len(r.Files))
	for _, f := range r.Files[:min(reportFiles, len(r.Files))] {
		fmt.Fprintf(w, "  %s\n", f.Filename)
	}

	fmt.Fprintf(w, "\nParsed %d documents into %d chunks\n", len(r.Documents), len(r.Chunks))
	if len(r.Chunks) > 0 {
		c := r.Chunks[0]
		fmt.Fprintf(w, "Example chunk: %s (start %d)\n  %s\n", c.Filename(), c.Start, preview(c.Content, previewLen))
	}

	fmt.Fprintf(w, "\nTop results for %q:\n", query)
	if len(r.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	for i, c := range r.Results[:min(reportResults, len(r.Results))] {
		writeResult(w, i+1, c)
	}
}

// reportFailures summarizes skipped items. Each one was already logged.
func reportFailures(w io.Writer, failures []types.Failure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(w, "skipped %d file(s)\n", len(failures))
	for _, f := range failures {
		fmt.Fprintf(w, "failed  %s: %v\n", f.Item, f.Err)
	}
}
