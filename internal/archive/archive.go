// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive decodes repository snapshots delivered as ZIP archives.
// Entries are listed eagerly and opened lazily, so a damaged member only
// fails when it is read.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"

	"github.com/pdiddy/docsearch/pkg/types"
)

// ErrInvalidArchive is returned when the archive container cannot be read.
var ErrInvalidArchive = errors.New("invalid archive")

// Entry is one member of an archive.
type Entry interface {
	// Name returns the member path as stored in the archive.
	Name() string

	// Open returns a reader over the member's uncompressed content.
	Open() (io.ReadCloser, error)
}

// zipEntry adapts a ZIP member to Entry.
type zipEntry struct {
	f *zip.File
}

func (e zipEntry) Name() string { return e.f.Name }

func (e zipEntry) Open() (io.ReadCloser, error) { return e.f.Open() }

// Decode opens ZIP data and returns its members in central-directory order.
// Directory members are included; callers filter them by their trailing
// slash. A truncated or corrupt container fails with ErrInvalidArchive.
func Decode(data []byte) ([]Entry, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, zipEntry{f: f})
	}
	return entries, nil
}

// FromRaw returns in-memory entries as a list of Entry.
func FromRaw(raw ...types.RawEntry) []Entry {
	entries := make([]Entry, len(raw))
	for i, e := range raw {
		entries[i] = e
	}
	return entries
}

// Read returns the full content of one member.
func Read(e Entry) ([]byte, error) {
	rc, err := e.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
