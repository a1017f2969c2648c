// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads repository snapshots as ZIP archives from GitHub's
// codeload service, or reads them from a local file. When no branch is
// configured the repository's default branch is looked up through the
// GitHub REST API.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v80/github"
	"github.com/rs/zerolog"

	"github.com/pdiddy/docsearch/internal/httputil"
	"github.com/pdiddy/docsearch/pkg/types"
)

// DefaultCodeloadURL is the base URL for GitHub archive downloads.
const DefaultCodeloadURL = "https://codeload.github.com"

// StatusError reports a download that returned a status other than 200.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.Code, e.URL)
}

// Fetcher retrieves the archive described by a SourceConfig.
type Fetcher struct {
	cfg    types.SourceConfig
	client *http.Client
	gh     *github.Client
	log    zerolog.Logger
}

// New returns a Fetcher using client for downloads and API calls. A nil
// client gets one with cfg.Timeout.
func New(cfg types.SourceConfig, client *http.Client, log zerolog.Logger) (*Fetcher, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	gh := github.NewClient(client)
	if cfg.Token != "" {
		gh = gh.WithAuthToken(cfg.Token)
	}
	if cfg.UserAgent != "" {
		gh.UserAgent = cfg.UserAgent
	}
	if cfg.APIURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing API URL %q: %w", cfg.APIURL, err)
		}
		gh.BaseURL = base
	}

	return &Fetcher{cfg: cfg, client: client, gh: gh, log: log}, nil
}

// ArchiveURL returns the codeload URL of a branch archive.
func ArchiveURL(base, owner, repo, ref string) string {
	if base == "" {
		base = DefaultCodeloadURL
	}
	return fmt.Sprintf("%s/%s/%s/zip/refs/heads/%s",
		strings.TrimSuffix(base, "/"), url.PathEscape(owner), url.PathEscape(repo), ref)
}

// ResolveRef returns the configured branch, or the repository's default
// branch when none is configured.
func (f *Fetcher) ResolveRef(ctx context.Context) (string, error) {
	if f.cfg.Ref != "" {
		return f.cfg.Ref, nil
	}
	repo, _, err := f.gh.Repositories.Get(ctx, f.cfg.Owner, f.cfg.Repo)
	if err != nil {
		return "", fmt.Errorf("looking up default branch of %s/%s: %w", f.cfg.Owner, f.cfg.Repo, err)
	}
	branch := repo.GetDefaultBranch()
	if branch == "" {
		return "", fmt.Errorf("repository %s/%s reports no default branch", f.cfg.Owner, f.cfg.Repo)
	}
	f.log.Debug().Str("branch", branch).Msg("resolved default branch")
	return branch, nil
}

// Download fetches the archive over HTTP. Throttled responses are retried
// with backoff; any other status than 200 is a *StatusError.
func (f *Fetcher) Download(ctx context.Context) ([]byte, error) {
	if f.cfg.Owner == "" || f.cfg.Repo == "" {
		return nil, fmt.Errorf("repository owner and name are required")
	}
	ref, err := f.ResolveRef(ctx)
	if err != nil {
		return nil, err
	}
	archiveURL := ArchiveURL(f.cfg.CodeloadURL, f.cfg.Owner, f.cfg.Repo, ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}
	req.Header.Set("Accept", "application/zip")

	f.log.Info().Str("url", archiveURL).Msg("downloading repository archive")
	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0, f.log)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, URL: archiveURL}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading archive body: %w", err)
	}
	f.log.Info().Int("bytes", len(data)).Msg("downloaded repository archive")
	return data, nil
}

// Load reads the archive from cfg.ArchivePath when set, and downloads it
// otherwise.
func (f *Fetcher) Load(ctx context.Context) ([]byte, error) {
	if f.cfg.ArchivePath == "" {
		return f.Download(ctx)
	}
	data, err := os.ReadFile(f.cfg.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("reading archive file: %w", err)
	}
	f.log.Info().Str("path", f.cfg.ArchivePath).Int("bytes", len(data)).Msg("read local repository archive")
	return data, nil
}
