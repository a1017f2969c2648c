// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the docsearch pipeline:
// archive entries, extracted repository files, parsed documents, chunks,
// item-level failures, and stage configuration.
package types

import (
	"bytes"
	"fmt"
	"io"
)

// RawEntry is one member of a repository archive, held in memory.
type RawEntry struct {
	// Path is the member path as stored in the archive, including the
	// archive's synthetic root directory (e.g. "repo-main/_podcast/a.md").
	Path string `json:"path" yaml:"path"`

	// Content is the member's uncompressed bytes.
	Content []byte `json:"-" yaml:"-"`
}

// Name returns the archive path of the entry.
func (e RawEntry) Name() string { return e.Path }

// Open returns a reader over the entry content.
func (e RawEntry) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(e.Content)), nil
}

// RawRepositoryFile is a text file extracted from a repository archive.
type RawRepositoryFile struct {
	// Filename is the normalized path, without the archive root directory.
	Filename string `json:"filename" yaml:"filename"`

	// Content is the UTF-8 text of the file with surrounding whitespace
	// trimmed. It may be empty.
	Content string `json:"content" yaml:"content"`
}

// ParsedDocument is a repository file split into front matter and body.
type ParsedDocument struct {
	// Filename is the normalized repository path of the source file.
	Filename string `json:"filename" yaml:"filename"`

	// Metadata holds the front-matter fields in source order, plus
	// KeyFilename.
	Metadata *Metadata `json:"metadata" yaml:"metadata"`

	// Body is the text following the front matter.
	Body string `json:"body" yaml:"body"`
}

// Record returns a new Metadata holding the document's fields with the body
// stored under KeyContent. Mutating the record does not affect the document.
func (d ParsedDocument) Record() *Metadata {
	rec := d.Metadata.Clone()
	rec.Set(KeyContent, d.Body)
	return rec
}

// Window is one span emitted by the sliding-window chunker.
type Window struct {
	// Start is the index of the first element in the window.
	Start int `json:"start" yaml:"start"`

	// Content is the window's elements joined with a blank line.
	Content string `json:"content" yaml:"content"`
}

// Chunk is an indexable span of a document's paragraphs together with the
// document's metadata.
type Chunk struct {
	// Start is the index of the chunk's first paragraph.
	Start int

	// Content is the chunk's paragraphs joined with a blank line.
	Content string

	// Fields are the document's fields other than the body. They never
	// contain KeyStart or KeyContent. Chunks of the same document share
	// equal copies.
	Fields *Metadata
}

// Filename returns the source filename carried by the chunk.
func (c Chunk) Filename() string {
	return c.Fields.String(KeyFilename)
}

// Record returns the chunk as a flat ordered record: KeyStart, KeyContent,
// then the carried fields.
func (c Chunk) Record() *Metadata {
	rec := NewMetadata(c.Fields.Len() + 2)
	rec.Set(KeyStart, c.Start)
	rec.Set(KeyContent, c.Content)
	c.Fields.Range(func(k string, v any) bool {
		rec.Set(k, v)
		return true
	})
	return rec
}

// Text returns the value of field as indexable text. KeyContent and
// KeyStart resolve to the chunk's own values; other fields are formatted
// with fmt unless they are strings.
func (c Chunk) Text(field string) string {
	switch field {
	case KeyContent:
		return c.Content
	case KeyStart:
		return fmt.Sprint(c.Start)
	}
	v, ok := c.Fields.Get(field)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// MarshalJSON encodes the chunk as its flat record.
func (c Chunk) MarshalJSON() ([]byte, error) {
	return c.Record().MarshalJSON()
}

// MarshalYAML encodes the chunk as its flat record.
func (c Chunk) MarshalYAML() (any, error) {
	return c.Record().MarshalYAML()
}

// Failure records an item that a stage skipped.
type Failure struct {
	// Item identifies the skipped item, usually a file path.
	Item string `json:"item" yaml:"item"`

	// Stage names the pipeline stage that skipped the item.
	Stage string `json:"stage" yaml:"stage"`

	// Kind is a short failure category (e.g. "read", "yaml").
	Kind string `json:"kind" yaml:"kind"`

	// Err is the underlying error.
	Err error `json:"-" yaml:"-"`
}

// Error formats the failure as a diagnostic line.
func (f Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s %s: %s", f.Stage, f.Item, f.Kind)
	}
	return fmt.Sprintf("%s %s: %s: %v", f.Stage, f.Item, f.Kind, f.Err)
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error { return f.Err }
