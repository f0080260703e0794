package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/ocrpdf/internal/config"
	"github.com/jackzampolin/ocrpdf/internal/home"
	"github.com/jackzampolin/ocrpdf/internal/ocr"
	"github.com/jackzampolin/ocrpdf/internal/output"
	"github.com/jackzampolin/ocrpdf/internal/pdf"
	"github.com/jackzampolin/ocrpdf/internal/pipeline"
	"github.com/jackzampolin/ocrpdf/internal/prompts"
)

var (
	runOutput   string
	runDPI      int
	runDelay    int
	runStart    int
	runEnd      int
	runPrompt   string
	runModel    string
	runEngine   string
	runMaxPages int
	runTimeout  int
)

var runCmd = &cobra.Command{
	Use:   "run <input.pdf>",
	Short: "OCR a page range of a PDF into a single text file",
	Long: `Rasterize the requested page range and send each page image to the
configured OCR backend. Per-page failures are recorded in the output
and do not fail the run.

Examples:
  ocrpdf run scan.pdf
  ocrpdf run scan.pdf --start-page 10 --end-page 25 -o chapter2.txt
  ocrpdf run scan.pdf --prompt markdown --delay 2
  ocrpdf run scan.pdf --engine openai --model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cm, err := config.NewManager(cfgFile, h.Path())
		if err != nil {
			return err
		}
		cfg := cm.Get()

		// Flags beat config file values; config beats built-in defaults.
		flags := cmd.Flags()
		engineName := runEngine
		if !flags.Changed("engine") {
			engineName = cfg.Engine
		}
		model := runModel
		if !flags.Changed("model") {
			model = cfg.Model
		}
		promptName := runPrompt
		if !flags.Changed("prompt") {
			promptName = cfg.Prompt
		}
		dpi := runDPI
		if !flags.Changed("dpi") {
			dpi = cfg.DPI
		}
		delay := runDelay
		if !flags.Changed("delay") {
			delay = cfg.DelaySeconds
		}
		maxPages := runMaxPages
		if !flags.Changed("max-pages") {
			maxPages = cfg.MaxPages
		}
		timeout := runTimeout
		if !flags.Changed("timeout") {
			timeout = cfg.TimeoutSeconds
		}

		variant, err := prompts.Parse(promptName)
		if err != nil {
			return err
		}

		engine, err := ocr.New(engineName, ocr.EngineConfig{
			Model:        model,
			OllamaBinary: cfg.Ollama.Binary,
			BaseURL:      cfg.OpenAI.BaseURL,
			APIKey:       cfg.ResolveAPIKey(),
			Timeout:      time.Duration(timeout) * time.Second,
		})
		if err != nil {
			return err
		}

		req := pipeline.Request{
			Input:          args[0],
			Output:         runOutput,
			DPI:            dpi,
			Delay:          time.Duration(delay) * time.Second,
			StartPage:      runStart,
			EndPage:        runEnd,
			Prompt:         variant,
			Model:          model,
			MaxPages:       maxPages,
			MaxInputSizeMB: cfg.MaxInputSizeMB,
			Timeout:        time.Duration(timeout) * time.Second,
		}

		runner := pipeline.NewRunner(pdf.NewConverter(logger), engine, h, logger)
		report, err := runner.Run(cmd.Context(), req)
		if err != nil {
			return err
		}

		return output.Print(report)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "output.txt", "output text file")
	runCmd.Flags().IntVar(&runDPI, "dpi", 300, "render resolution in DPI (minimum 72)")
	runCmd.Flags().IntVar(&runDelay, "delay", 0, "seconds to wait between pages")
	runCmd.Flags().IntVar(&runStart, "start-page", 1, "first page to process (1-indexed)")
	runCmd.Flags().IntVar(&runEnd, "end-page", 0, "last page to process, inclusive (default: last page)")
	runCmd.Flags().StringVar(&runPrompt, "prompt", "free", "prompt variant: free, layout, markdown, extract, figure")
	runCmd.Flags().StringVar(&runModel, "model", "deepseek-ocr", "backend model identifier")
	runCmd.Flags().StringVar(&runEngine, "engine", "ollama", "OCR engine: ollama, openai, mock")
	runCmd.Flags().IntVar(&runMaxPages, "max-pages", 500, "maximum pages per run")
	runCmd.Flags().IntVar(&runTimeout, "timeout", 120, "per-page OCR timeout in seconds (0 disables)")
}
