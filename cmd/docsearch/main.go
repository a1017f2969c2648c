// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docsearch CLI. It downloads a
// GitHub repository snapshot, extracts markdown documents with front
// matter, splits them into overlapping chunks, and answers full-text
// queries over the chunks.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docsearch/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is configured from --verbose and --quiet before any command runs.
var logger = zerolog.Nop()

// rootCmd is the base command for the docsearch CLI.
var rootCmd = &cobra.Command{
	Use:   "docsearch",
	Short: "Full-text search over the markdown documents of a GitHub repository",
	Long: `docsearch downloads a snapshot of a GitHub repository, extracts the markdown
files under a path prefix, parses their front matter, splits each body into
overlapping windows of paragraphs, and searches the windows with an in-memory
full-text index.

Each stage is a subcommand: fetch, chunk, and search. The run command executes
the whole pipeline and prints an example report.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		quiet, _ := cmd.Flags().GetBool("quiet")
		logger = newLogger(os.Stderr, verbose, quiet)
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug().Str("path", f).Msg("using config file")
		}

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docsearch.yaml or ~/.config/docsearch/docsearch.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug messages")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "log errors only")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docsearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docsearch"))
		}
	}

	viper.SetEnvPrefix("DOCSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Ignoring config file:", err)
		}
	}
}

// newLogger writes to w, as console text when w is a terminal and as JSON
// lines otherwise.
func newLogger(w *os.File, verbose, quiet bool) zerolog.Logger {
	var out io.Writer = w
	if isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd()) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(logLevel(verbose, quiet)).With().Timestamp().Logger()
}

func logLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case quiet:
		return zerolog.ErrorLevel
	case verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
