// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "docsearch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig identifies the repository snapshot to process.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// Owner is the repository owner or organization (e.g. "DataTalksClub").
	Owner string `json:"owner" yaml:"owner"`

	// Repo is the repository name (e.g. "datatalksclub.github.io").
	Repo string `json:"repo" yaml:"repo"`

	// Ref is the branch to download. When empty the repository's default
	// branch is looked up through the GitHub API.
	Ref string `json:"ref" yaml:"ref"`

	// CodeloadURL is the base URL for archive downloads
	// (default https://codeload.github.com).
	CodeloadURL string `json:"codeload_url" yaml:"codeload_url"`

	// APIURL is the base URL of the GitHub REST API. Empty uses go-github's default.
	APIURL string `json:"api_url,omitempty" yaml:"api_url,omitempty"`

	// Token is an optional GitHub API token for the default-branch lookup.
	Token string `json:"-" yaml:"-"`

	// ArchivePath reads the archive from a local ZIP file instead of downloading it.
	ArchivePath string `json:"archive_path,omitempty" yaml:"archive_path,omitempty"`
}

// FilterConfig selects which archive entries are extracted.
type FilterConfig struct {
	// PathPrefix admits only normalized paths starting with this string (e.g. "_podcast").
	PathPrefix string `json:"path_prefix" yaml:"path_prefix"`

	// Extensions admits only files with one of these extensions, without
	// the dot (e.g. "md"). Empty admits every extension.
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// ChunkConfig holds the sliding-window parameters.
type ChunkConfig struct {
	// Size is the number of paragraphs per chunk (default 30).
	Size int `json:"size" yaml:"size"`

	// Step is the number of paragraphs between chunk starts (default 15).
	Step int `json:"step" yaml:"step"`

	// ContentField is the record field holding the text to chunk (default "content").
	ContentField string `json:"content_field" yaml:"content_field"`
}

// IndexBackend identifies the full-text search engine.
type IndexBackend string

const (
	BackendFTS5  IndexBackend = "fts5"
	BackendBleve IndexBackend = "bleve"
)

// IndexConfig holds settings for the search stage.
type IndexConfig struct {
	// Backend selects the engine: fts5 or bleve.
	Backend IndexBackend `json:"backend" yaml:"backend"`

	// TextFields lists the chunk fields that are searched (default ["content"]).
	TextFields []string `json:"text_fields" yaml:"text_fields"`

	// NumResults is the number of results returned (default 5).
	NumResults int `json:"num_results" yaml:"num_results"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Source SourceConfig `json:"source" yaml:"source"`
	Filter FilterConfig `json:"filter" yaml:"filter"`
	Chunk  ChunkConfig  `json:"chunk" yaml:"chunk"`
	Index  IndexConfig  `json:"index" yaml:"index"`

	// Query is the full-text query answered by the run.
	Query string `json:"query" yaml:"query"`
}
