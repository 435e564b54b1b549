// Package cmd provides CLI commands for citeproc.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "citeproc",
	Short: "Render CSL citations and bibliographies",
	Long: `citeproc drives a CSL citation processor over a style, a set of
references, and a document's cluster stream.

Examples:
  citeproc render --style apa.yaml --refs refs.yaml --clusters clusters.yaml
  citeproc bibliography --style apa.yaml --refs refs.yaml --clusters clusters.yaml
  citeproc preview --style apa.yaml --refs refs.yaml --clusters clusters.yaml --ref smith2020
  citeproc diff --style apa.yaml --refs refs.yaml --clusters clusters.yaml`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger()
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(bibliographyCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(diffCmd)
}
