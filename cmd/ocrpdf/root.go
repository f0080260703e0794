package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/ocrpdf/internal/output"
	"github.com/jackzampolin/ocrpdf/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "ocrpdf",
	Short: "Batch OCR for PDF documents using local or remote vision models",
	Long: `ocrpdf rasterizes a page range of a PDF and sends each page image to an
OCR backend, assembling the per-page results into a single annotated
text file.

Backends:
  - ollama: a local model run as a subprocess (default)
  - openai: any OpenAI-compatible vision endpoint
  - mock:   canned responses for offline smoke runs`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.ocrpdf/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "ocrpdf home directory (default: ~/.ocrpdf)",
	)
	rootCmd.PersistentFlags().StringVar(
		&outputFormat, "format", "yaml", "report output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	// Set output format and logger before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		output.SetFormat(outputFormat)

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
