// Package cmd provides CLI commands for litingest.
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
	Use:   "litingest",
	Short: "Ingest biomedical literature XML into canonical JSON",
	Long: `Litingest parses biomedical article XML and normalizes it into one
canonical JSON document shape.

Two source schemas are supported: JATS article XML (PMC-style, one article
per file) and PubMed citation-database XML (many records per file).

Examples:
  litingest convert jats -i article.nxml -o article.json
  cat citations.xml | litingest convert pubmed
  litingest batch jats ./articles ./parsed --workers 8
  litingest batch pubmed ./baselines ./parsed --resume`,
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
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(formatsCmd)
}
