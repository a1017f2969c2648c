package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/docsearch/internal/pipeline"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Extract, parse, and chunk the documents of a repository snapshot",
	Long: `Chunk runs the pipeline up to the chunking stage and prints the chunks.
Each chunk carries its start paragraph, its content, and the front-matter
fields of its document. Files that cannot be read or parsed are skipped and
reported on stderr.`,
	RunE: runChunk,
}

func init() {
	addPipelineFlags(chunkCmd)
	chunkCmd.Flags().String("format", "text", "output format: text, json, or yaml")

	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig("")
	f, err := newFetcher(cfg.Source)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(cmd.Context(), cfg, f, pipeline.StageChunk, logger)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if err := writeChunks(cmd.OutOrStdout(), report.Chunks, format); err != nil {
		return err
	}
	reportFailures(cmd.ErrOrStderr(), report.Failures)
	return nil
}
