// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docsearch/internal/archive"
	"github.com/pdiddy/docsearch/pkg/types"
)

// failingEntry is an archive member whose content cannot be read.
type failingEntry struct {
	name string
	err  error
}

func (e failingEntry) Name() string { return e.name }

func (e failingEntry) Open() (io.ReadCloser, error) { return nil, e.err }

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"repo-main/_podcast/a.md", "_podcast/a.md"},
		{"repo-main/README.md", "README.md"},
		{"repo-main/", ""},
		{"repo-main/docs/", "docs/"},
		{"README.md", "README.md"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"_podcast/a.md", "md"},
		{"_podcast/A.MD", "md"},
		{"archive.tar.gz", "gz"},
		{"Makefile", ""},
		{"v1.2/notes", ""},
		{"dir/trailing.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.path))
		})
	}
}

func TestFilterInclude(t *testing.T) {
	tests := []struct {
		name   string
		cfg    types.FilterConfig
		path   string
		wantIn bool
	}{
		{"plain file", types.FilterConfig{}, "_podcast/a.md", true},
		{"directory entry", types.FilterConfig{}, "_podcast/", false},
		{"hidden file", types.FilterConfig{}, "_podcast/.hidden.md", false},
		{"hidden at root", types.FilterConfig{}, ".gitignore", false},
		{"hidden directory is not a hidden file", types.FilterConfig{}, ".github/workflow.yml", true},
		{"prefix match", types.FilterConfig{PathPrefix: "_podcast"}, "_podcast/a.md", true},
		{"prefix mismatch", types.FilterConfig{PathPrefix: "_podcast"}, "_other/b.md", false},
		{"prefix is a plain string prefix", types.FilterConfig{PathPrefix: "_pod"}, "_podcast/a.md", true},
		{"extension allowed", types.FilterConfig{Extensions: []string{"md"}}, "docs/a.md", true},
		{"extension case-insensitive", types.FilterConfig{Extensions: []string{"md"}}, "docs/A.MD", true},
		{"configured extension with dot", types.FilterConfig{Extensions: []string{".MD"}}, "docs/a.md", true},
		{"extension rejected", types.FilterConfig{Extensions: []string{"md"}}, "docs/a.txt", false},
		{"no extension rejected", types.FilterConfig{Extensions: []string{"md"}}, "docs/LICENSE", false},
		{"empty extension set admits all", types.FilterConfig{Extensions: []string{}}, "docs/LICENSE", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.cfg)
			assert.Equal(t, tt.wantIn, f.Include(tt.path))
		})
	}
}

func TestFilterIncludeIdempotent(t *testing.T) {
	f := NewFilter(types.FilterConfig{PathPrefix: "_podcast", Extensions: []string{"md"}})
	for _, p := range []string{"_podcast/a.md", "_podcast/.x.md", "_other/b.md", "_podcast/", "_podcast/c.txt"} {
		first := f.Include(p)
		assert.Equal(t, first, f.Include(p), p)
	}
}

func TestExtract_PodcastPrefix(t *testing.T) {
	entries := archive.FromRaw(
		types.RawEntry{Path: "repo/_podcast/a.md", Content: []byte("  episode a \n")},
		types.RawEntry{Path: "repo/_other/b.md", Content: []byte("other")},
		types.RawEntry{Path: "repo/_podcast/.hidden.md", Content: []byte("hidden")},
	)

	result := Extract(entries, NewFilter(types.FilterConfig{PathPrefix: "_podcast"}), zerolog.Nop())

	require.Len(t, result.Files, 1)
	assert.Equal(t, "_podcast/a.md", result.Files[0].Filename)
	assert.Equal(t, "episode a", result.Files[0].Content)
	assert.False(t, result.HasFailures())
}

func TestExtract_PreservesOrderAndSkipsDirectories(t *testing.T) {
	entries := archive.FromRaw(
		types.RawEntry{Path: "repo-main/"},
		types.RawEntry{Path: "repo-main/z.md", Content: []byte("z")},
		types.RawEntry{Path: "repo-main/docs/"},
		types.RawEntry{Path: "repo-main/docs/a.md", Content: []byte("a")},
		types.RawEntry{Path: "repo-main/empty.md", Content: []byte(" \n\t ")},
	)

	result := Extract(entries, Filter{}, zerolog.Nop())

	var names []string
	for _, f := range result.Files {
		names = append(names, f.Filename)
	}
	assert.Equal(t, []string{"z.md", "docs/a.md", "empty.md"}, names)
	assert.Equal(t, "", result.Files[2].Content, "empty content is kept")
}

func TestExtract_InvalidUTF8IsDropped(t *testing.T) {
	entries := archive.FromRaw(
		types.RawEntry{Path: "repo/a.md", Content: []byte("caf\xc3\xa9 \xff\xfeok\x80")},
	)

	result := Extract(entries, Filter{}, zerolog.Nop())

	require.Len(t, result.Files, 1)
	assert.Equal(t, "café ok", result.Files[0].Content)
}

func TestExtract_UnreadableEntryIsReportedAndSkipped(t *testing.T) {
	readErr := errors.New("flate: corrupt input")
	entries := []archive.Entry{
		types.RawEntry{Path: "repo/a.md", Content: []byte("a")},
		failingEntry{name: "repo/b.md", err: readErr},
		types.RawEntry{Path: "repo/c.md", Content: []byte("c")},
	}

	var logBuf bytes.Buffer
	result := Extract(entries, Filter{}, zerolog.New(&logBuf))

	require.Len(t, result.Files, 2)
	assert.Equal(t, "a.md", result.Files[0].Filename)
	assert.Equal(t, "c.md", result.Files[1].Filename)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "repo/b.md", result.Failures[0].Item)
	assert.Equal(t, KindRead, result.Failures[0].Kind)
	assert.ErrorIs(t, result.Failures[0], readErr)

	logged := logBuf.String()
	assert.Contains(t, logged, `"file":"repo/b.md"`)
	assert.Contains(t, logged, "flate: corrupt input")
}

func TestExtract_FilteredEntriesAreNeverOpened(t *testing.T) {
	entries := []archive.Entry{
		failingEntry{name: "repo/_other/b.md", err: errors.New("must not be read")},
	}

	result := Extract(entries, Filter{Prefix: "_podcast"}, zerolog.Nop())

	assert.Empty(t, result.Files)
	assert.Empty(t, result.Failures)
}

func TestDecode(t *testing.T) {
	assert.Equal(t, "text", Decode([]byte("\n\n  text \r\n")))
	assert.Equal(t, "", Decode(nil))
	assert.False(t, strings.ContainsRune(Decode([]byte("a\xffb")), '�'))
}
