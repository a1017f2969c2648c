// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/docsearch/pkg/types"
)

// Filter decides which normalized archive paths are extracted.
type Filter struct {
	// Prefix admits only paths that start with it. Empty admits all.
	Prefix string

	// Extensions admits only files whose extension is a member. Nil or
	// empty admits all.
	Extensions map[string]struct{}
}

// NewFilter builds a Filter from configuration. Extensions are lower-cased
// and a leading dot is dropped, so ".MD" and "md" are equivalent.
func NewFilter(cfg types.FilterConfig) Filter {
	f := Filter{Prefix: cfg.PathPrefix}
	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		if f.Extensions == nil {
			f.Extensions = make(map[string]struct{})
		}
		f.Extensions[ext] = struct{}{}
	}
	return f
}

// Include reports whether path passes the filter. Rules apply in order and
// the first failing rule excludes: directory entries, hidden files, the
// prefix, then the extension set.
func (f Filter) Include(path string) bool {
	if strings.HasSuffix(path, "/") {
		return false
	}
	if strings.HasPrefix(baseName(path), ".") {
		return false
	}
	if f.Prefix != "" && !strings.HasPrefix(path, f.Prefix) {
		return false
	}
	if len(f.Extensions) > 0 {
		if _, ok := f.Extensions[Extension(path)]; !ok {
			return false
		}
	}
	return true
}

// Extension returns the lower-cased text after the last dot of the final
// path segment, or "" when the segment has no dot.
func Extension(path string) string {
	name := strings.ToLower(baseName(path))
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// NormalizePath strips the archive's root directory: everything up to and
// including the first slash. Paths without a slash are returned unchanged.
func NormalizePath(path string) string {
	if _, rest, ok := strings.Cut(path, "/"); ok {
		return rest
	}
	return path
}

func baseName(path string) string {
	return path[strings.LastIndexByte(path, '/')+1:]
}
