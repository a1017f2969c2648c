package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsearch/internal/pipeline"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the chunked documents of a repository snapshot",
	Long: `Search runs the full pipeline and prints the chunks that best match the
query, most relevant first. The index is built in memory for each invocation
with either SQLite FTS5 or Bleve.`,
	RunE: runSearch,
}

func init() {
	addPipelineFlags(searchCmd)
	addIndexFlags(searchCmd)
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("provide a search query")
	}

	cfg := pipelineConfig(query)
	f, err := newFetcher(cfg.Source)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(cmd.Context(), cfg, f, pipeline.StageSearch, logger)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if err := writeResults(cmd.OutOrStdout(), report.Results, jsonOutput); err != nil {
		return err
	}
	reportFailures(cmd.ErrOrStderr(), report.Failures)
	return nil
}
