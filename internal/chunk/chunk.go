// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chunk

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docsearch/pkg/types"
)

// Default window parameters.
const (
	DefaultSize = 30
	DefaultStep = 15
)

// Options controls document chunking.
type Options struct {
	// Size is the number of paragraphs per chunk.
	Size int

	// Step is the number of paragraphs between consecutive chunk starts.
	Step int

	// ContentField names the record field that holds the text to chunk.
	// Empty means types.KeyContent.
	ContentField string
}

// DefaultOptions returns 30-paragraph chunks that overlap by 15.
func DefaultOptions() Options {
	return Options{Size: DefaultSize, Step: DefaultStep, ContentField: types.KeyContent}
}

// OptionsFromConfig maps configuration to Options. Zero Size and Step take
// the defaults; negative values are passed through and rejected later.
func OptionsFromConfig(cfg types.ChunkConfig) Options {
	opts := DefaultOptions()
	if cfg.Size != 0 {
		opts.Size = cfg.Size
	}
	if cfg.Step != 0 {
		opts.Step = cfg.Step
	}
	if cfg.ContentField != "" {
		opts.ContentField = cfg.ContentField
	}
	return opts
}

// Paragraphs splits text on blank lines, trims each paragraph, and drops
// the ones left empty.
func Paragraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, Separator) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// Documents chunks every document in order. The content field is removed
// from each document's record and the remaining fields are copied onto
// every chunk of that document; a chunk's own start and content take
// precedence over fields of the same name. Documents with an empty or
// missing content field produce no chunks.
func Documents(docs []types.ParsedDocument, opts Options) ([]types.Chunk, error) {
	field := opts.ContentField
	if field == "" {
		field = types.KeyContent
	}
	if opts.Size <= 0 || opts.Step <= 0 {
		return nil, fmt.Errorf("%w: size and step must be positive (size=%d, step=%d)", ErrInvalidArgument, opts.Size, opts.Step)
	}

	var chunks []types.Chunk
	for _, doc := range docs {
		fields := doc.Record()
		value, _ := fields.Pop(field)
		text := bodyText(value)
		if text == "" {
			continue
		}
		fields.Delete(types.KeyStart)
		fields.Delete(types.KeyContent)

		windows, err := SlidingWindow(Paragraphs(text), opts.Size, opts.Step)
		if err != nil {
			return nil, fmt.Errorf("chunking %s: %w", doc.Filename, err)
		}
		for _, w := range windows {
			chunks = append(chunks, types.Chunk{
				Start:   w.Start,
				Content: w.Content,
				Fields:  fields.Clone(),
			})
		}
	}
	return chunks, nil
}

// bodyText renders a content field value as text. Front matter may hold
// non-string values when ContentField names a metadata key.
func bodyText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
