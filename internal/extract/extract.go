// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns repository archive entries into text files.
// Paths are normalized by dropping the archive's root directory, filtered
// by prefix, extension and visibility, and decoded as UTF-8. A member that
// cannot be read is reported and skipped; it never aborts the batch.
package extract

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/docsearch/internal/archive"
	"github.com/pdiddy/docsearch/pkg/types"
)

// Stage is the stage name recorded on extraction failures.
const Stage = "extract"

// KindRead categorizes members whose content could not be read.
const KindRead = "read"

// Result holds the outcome of an extraction run.
type Result struct {
	Files    []types.RawRepositoryFile
	Failures []types.Failure
}

// HasFailures reports whether any member was skipped because of an error.
func (r Result) HasFailures() bool {
	return len(r.Failures) > 0
}

// Extract reads every entry that passes f, in archive order. Read errors
// are logged at warn level and collected in Result.Failures.
func Extract(entries []archive.Entry, f Filter, log zerolog.Logger) Result {
	var result Result
	for _, e := range entries {
		path := NormalizePath(e.Name())
		if !f.Include(path) {
			continue
		}

		data, err := archive.Read(e)
		if err != nil {
			log.Warn().Str("file", e.Name()).Err(err).Msg("skipping unreadable file")
			result.Failures = append(result.Failures, types.Failure{
				Item:  e.Name(),
				Stage: Stage,
				Kind:  KindRead,
				Err:   err,
			})
			continue
		}

		result.Files = append(result.Files, types.RawRepositoryFile{
			Filename: path,
			Content:  Decode(data),
		})
	}

	log.Info().
		Str("stage", Stage).
		Int("files", len(result.Files)).
		Int("failed", len(result.Failures)).
		Msg("extracted repository files")
	return result
}

// Decode converts raw bytes to trimmed UTF-8 text, dropping byte sequences
// that are not valid UTF-8.
func Decode(data []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(data), ""))
}
