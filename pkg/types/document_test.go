// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawEntry_Open(t *testing.T) {
	e := RawEntry{Path: "repo-main/a.md", Content: []byte("hello")}
	assert.Equal(t, "repo-main/a.md", e.Name())

	rc, err := e.Open()
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestParsedDocument_Record(t *testing.T) {
	md := NewMetadata(2)
	md.Set("title", "T")
	md.Set(KeyFilename, "a.md")
	doc := ParsedDocument{Filename: "a.md", Metadata: md, Body: "body"}

	rec := doc.Record()
	assert.Equal(t, []string{"title", KeyFilename, KeyContent}, rec.Keys())
	assert.Equal(t, "body", rec.String(KeyContent))

	rec.Set("title", "changed")
	assert.Equal(t, "T", doc.Metadata.String("title"))
	assert.False(t, doc.Metadata.Has(KeyContent))
}

func TestChunk_Text(t *testing.T) {
	fields := NewMetadata(3)
	fields.Set("title", "Money")
	fields.Set("season", 13)
	fields.Set("nothing", nil)
	c := Chunk{Start: 15, Content: "paragraphs", Fields: fields}

	tests := []struct {
		field string
		want  string
	}{
		{KeyContent, "paragraphs"},
		{KeyStart, "15"},
		{"title", "Money"},
		{"season", "13"},
		{"nothing", ""},
		{"missing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Text(tt.field))
		})
	}
}

func TestChunk_Record(t *testing.T) {
	fields := NewMetadata(1)
	fields.Set(KeyFilename, "a.md")
	c := Chunk{Start: 0, Content: "x", Fields: fields}

	assert.Equal(t, "a.md", c.Filename())
	assert.Equal(t, []string{KeyStart, KeyContent, KeyFilename}, c.Record().Keys())
	assert.Equal(t, "", Chunk{}.Filename())
}

func TestFailure(t *testing.T) {
	cause := errors.New("boom")
	f := Failure{Item: "a.md", Stage: "parse", Kind: "yaml", Err: cause}
	assert.Equal(t, "parse a.md: yaml: boom", f.Error())
	assert.ErrorIs(t, f, cause)

	assert.Equal(t, "extract b.md: read", Failure{Item: "b.md", Stage: "extract", Kind: "read"}.Error())
}
