package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docsearch/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the whole pipeline and print an example report",
	Long: `Run downloads the repository snapshot, extracts and chunks its documents,
indexes the chunks, and answers one query. It prints the number of files,
the first filenames, a preview of the first chunk, and the top results.

With no flags it searches the DataTalksClub podcast transcripts for
"how do I make money with AI?".`,
	RunE: runRun,
}

func init() {
	addPipelineFlags(runCmd)
	addIndexFlags(runCmd)
	runCmd.Flags().String("query", defaultQuery, "query to answer")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	query := viper.GetString("query")
	cfg := pipelineConfig(query)
	f, err := newFetcher(cfg.Source)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(cmd.Context(), cfg, f, pipeline.StageSearch, logger)
	if err != nil {
		return err
	}

	writeReport(cmd.OutOrStdout(), report, query)
	reportFailures(cmd.ErrOrStderr(), report.Failures)
	return nil
}
