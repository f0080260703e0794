// Package pipeline implements the page-range OCR batch pipeline: window
// resolution, resource guarding, the sequential page loop, and output
// assembly.
package pipeline

import (
	"fmt"
	"time"

	"github.com/jackzampolin/ocrpdf/internal/pdf"
	"github.com/jackzampolin/ocrpdf/internal/prompts"
)

// Request is the immutable configuration for one run. It is validated once
// up front and read-only afterwards.
type Request struct {
	Input  string // Source PDF path
	Output string // Output artifact path

	DPI   int           // Render resolution
	Delay time.Duration // Pause between pages (not after the last)

	StartPage int // 1-indexed, inclusive
	EndPage   int // Inclusive; 0 means through the last page

	Prompt prompts.Variant
	Model  string // Backend model identifier, recorded in the header

	MaxPages       int           // Per-run page ceiling
	MaxInputSizeMB int64         // Input size ceiling
	Timeout        time.Duration // Per-page OCR timeout; 0 disables it
}

// Validate checks the request invariants. All failures here are fatal and
// happen before any file is touched.
func (r Request) Validate() error {
	if r.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if r.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if r.DPI < pdf.MinDPI {
		return fmt.Errorf("dpi %d is below the minimum %d", r.DPI, pdf.MinDPI)
	}
	if r.Delay < 0 {
		return fmt.Errorf("delay must be non-negative")
	}
	if r.StartPage < 1 {
		return fmt.Errorf("%w: start page must be >= 1, got %d", ErrInvalidPageRange, r.StartPage)
	}
	if r.EndPage != 0 && r.EndPage < r.StartPage {
		return fmt.Errorf("%w: end page %d is before start page %d", ErrInvalidPageRange, r.EndPage, r.StartPage)
	}
	if r.MaxPages < 1 {
		return fmt.Errorf("max pages must be >= 1, got %d", r.MaxPages)
	}
	if r.MaxInputSizeMB < 1 {
		return fmt.Errorf("max input size must be >= 1 MB, got %d", r.MaxInputSizeMB)
	}
	if r.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}
