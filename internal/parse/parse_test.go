// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsearch/pkg/types"
)

const episodeMarkdown = `---
title: "Secret Sauce of Data Science Management"
season: 13
episode: 6
guests:
- Shir Meir Lador
filename: ignored.md
---

Links:

* [LinkedIn](https://example.com)

The full transcript follows.`

func TestParse_YAMLFrontMatter(t *testing.T) {
	doc, err := Parse(types.RawRepositoryFile{Filename: "_podcast/s13e06.md", Content: episodeMarkdown})
	require.NoError(t, err)

	assert.Equal(t, "_podcast/s13e06.md", doc.Filename)
	assert.Equal(t, []string{"title", "season", "episode", "guests", "filename"}, doc.Metadata.Keys())
	assert.Equal(t, "Secret Sauce of Data Science Management", doc.Metadata.String("title"))

	season, _ := doc.Metadata.Get("season")
	assert.Equal(t, 13, season)

	guests, _ := doc.Metadata.Get("guests")
	assert.Equal(t, []any{"Shir Meir Lador"}, guests)

	assert.Equal(t, "_podcast/s13e06.md", doc.Metadata.String(types.KeyFilename), "filename overrides front matter")
	assert.True(t, strings.HasPrefix(doc.Body, "Links:"))
	assert.True(t, strings.HasSuffix(doc.Body, "The full transcript follows."))
}

func TestParse_TOMLFrontMatter(t *testing.T) {
	content := "+++\ntitle = \"Episode\"\nauthor = \"A\"\n+++\nBody text."

	doc, err := Parse(types.RawRepositoryFile{Filename: "a.md", Content: content})
	require.NoError(t, err)

	assert.Equal(t, []string{"author", "title", "filename"}, doc.Metadata.Keys())
	assert.Equal(t, "Episode", doc.Metadata.String("title"))
	assert.Equal(t, "Body text.", doc.Body)
}

func TestParse_NoFrontMatter(t *testing.T) {
	doc, err := Parse(types.RawRepositoryFile{Filename: "README.md", Content: "# Title\n\nPlain text."})
	require.NoError(t, err)

	assert.Equal(t, []string{types.KeyFilename}, doc.Metadata.Keys())
	assert.Equal(t, "# Title\n\nPlain text.", doc.Body)
}

func TestParse_EmptyFile(t *testing.T) {
	doc, err := Parse(types.RawRepositoryFile{Filename: "empty.md"})
	require.NoError(t, err)
	assert.Equal(t, "", doc.Body)
	assert.Equal(t, "empty.md", doc.Metadata.String(types.KeyFilename))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantKind string
	}{
		{
			name:     "malformed yaml",
			content:  "---\ntitle: [unclosed\n---\nbody",
			wantKind: KindYAML,
		},
		{
			name:     "tab indentation",
			content:  "---\ntitle: A\n\tseason: 1\n---\nbody",
			wantKind: KindYAML,
		},
		{
			name:     "sequence front matter",
			content:  "---\n- one\n- two\n---\nbody",
			wantKind: KindNotMapping,
		},
		{
			name:     "malformed toml",
			content:  "+++\ntitle = \n+++\nbody",
			wantKind: KindTOML,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(types.RawRepositoryFile{Filename: "bad.md", Content: tt.content})
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantKind, pe.Kind)
		})
	}
}

func TestParseAll_PartialFailure(t *testing.T) {
	files := []types.RawRepositoryFile{
		{Filename: "_podcast/a.md", Content: "---\ntitle: A\n---\nBody A"},
		{Filename: "_podcast/_template.md", Content: "---\ntitle: [unclosed\n---\nBody"},
		{Filename: "_podcast/b.md", Content: "---\ntitle: B\n---\nBody B"},
	}

	var logBuf bytes.Buffer
	result := ParseAll(files, zerolog.New(&logBuf))

	require.Len(t, result.Documents, 2)
	assert.Equal(t, "_podcast/a.md", result.Documents[0].Filename)
	assert.Equal(t, "_podcast/b.md", result.Documents[1].Filename)

	require.Len(t, result.Failures, 1)
	assert.True(t, result.HasFailures())
	assert.Equal(t, "_podcast/_template.md", result.Failures[0].Item)
	assert.Equal(t, Stage, result.Failures[0].Stage)
	assert.Equal(t, KindYAML, result.Failures[0].Kind)

	logged := logBuf.String()
	assert.Contains(t, logged, `"file":"_podcast/_template.md"`)
	assert.Contains(t, logged, `"kind":"yaml"`)
	assert.Equal(t, 1, strings.Count(logged, `"level":"warn"`))
}

func TestParseAll_DoesNotShareMetadata(t *testing.T) {
	files := []types.RawRepositoryFile{
		{Filename: "a.md", Content: "plain"},
		{Filename: "b.md", Content: "plain"},
	}

	result := ParseAll(files, zerolog.Nop())
	require.Len(t, result.Documents, 2)

	result.Documents[0].Metadata.Set("extra", true)
	assert.False(t, result.Documents[1].Metadata.Has("extra"))
}
