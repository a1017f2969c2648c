// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docsearch/internal/chunk"
	"github.com/pdiddy/docsearch/internal/fetch"
	"github.com/pdiddy/docsearch/internal/secrets"
	"github.com/pdiddy/docsearch/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "docsearch/0.1"
	defaultOwner     = "DataTalksClub"
	defaultRepo      = "datatalksclub.github.io"
	defaultRef       = "main"
	defaultPrefix    = "_podcast"
	defaultQuery     = "how do I make money with AI?"
	defaultResults   = 5
)

// addSourceFlags registers the flags that identify the repository snapshot.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("owner", defaultOwner, "repository owner or organization")
	cmd.Flags().String("repo", defaultRepo, "repository name")
	cmd.Flags().String("ref", defaultRef, "branch to download (empty: the repository's default branch)")
	cmd.Flags().String("codeload-url", fetch.DefaultCodeloadURL, "base URL for archive downloads")
	cmd.Flags().String("api-url", "", "base URL of the GitHub REST API (default: api.github.com)")
	cmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
}

// addPipelineFlags registers source, filter, and chunking flags.
func addPipelineFlags(cmd *cobra.Command) {
	addSourceFlags(cmd)
	cmd.Flags().String("archive", "", "read the repository archive from a local ZIP file instead of downloading it")
	cmd.Flags().String("prefix", defaultPrefix, "only extract files whose repository path starts with this prefix")
	cmd.Flags().StringSlice("extensions", []string{"md"}, "only extract files with these extensions (empty: all)")
	cmd.Flags().Int("size", chunk.DefaultSize, "paragraphs per chunk")
	cmd.Flags().Int("step", chunk.DefaultStep, "paragraphs between chunk starts")
	cmd.Flags().String("content-field", types.KeyContent, "record field holding the text to chunk")
}

// addIndexFlags registers search flags.
func addIndexFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", string(types.BackendFTS5), "full-text engine: fts5 or bleve")
	cmd.Flags().StringSlice("text-fields", []string{types.KeyContent}, "chunk fields to search")
	cmd.Flags().Int("results", defaultResults, "number of results to return")
}

// sourceConfig builds the source configuration from flags, environment,
// config file, and secrets.
func sourceConfig() types.SourceConfig {
	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return types.SourceConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Owner:       viper.GetString("owner"),
		Repo:        viper.GetString("repo"),
		Ref:         viper.GetString("ref"),
		CodeloadURL: viper.GetString("codeload-url"),
		APIURL:      viper.GetString("api-url"),
		Token:       secrets.Lookup(loadedSecrets, secrets.GitHubToken, secrets.GitHubTokenEnv),
		ArchivePath: viper.GetString("archive"),
	}
}

// pipelineConfig builds the configuration of a run answering query.
func pipelineConfig(query string) types.PipelineConfig {
	return types.PipelineConfig{
		Source: sourceConfig(),
		Filter: types.FilterConfig{
			PathPrefix: viper.GetString("prefix"),
			Extensions: viper.GetStringSlice("extensions"),
		},
		Chunk: types.ChunkConfig{
			Size:         viper.GetInt("size"),
			Step:         viper.GetInt("step"),
			ContentField: viper.GetString("content-field"),
		},
		Index: types.IndexConfig{
			Backend:    types.IndexBackend(viper.GetString("backend")),
			TextFields: viper.GetStringSlice("text-fields"),
			NumResults: viper.GetInt("results"),
		},
		Query: query,
	}
}

// newFetcher returns a fetcher for cfg with an HTTP client honoring its timeout.
func newFetcher(cfg types.SourceConfig) (*fetch.Fetcher, error) {
	client := &http.Client{
		Timeout: cfg.Timeout,
	}
	return fetch.New(cfg, client, logger)
}
