// Package ocr defines the OCR backend engines a run can invoke, one call
// per page image.
package ocr

import (
	"context"
	"time"
)

// Result is the response from a single page recognition call.
type Result struct {
	// Success/content
	Success bool   `json:"success"`
	Text    string `json:"text"` // Recognized text, verbatim from the backend

	// Timing
	ExecutionTime time.Duration `json:"execution_time"`

	// Error info
	ErrorMessage string `json:"error_message,omitempty"`
}

// Engine recognizes text in page images.
// Engines are invoked strictly sequentially, exactly once per page; a
// failed call is recorded against that page and never retried.
type Engine interface {
	// Name returns the engine identifier (e.g., "ollama", "openai").
	Name() string

	// Ready reports whether the backend can accept requests. Called once
	// before the page loop so a dead backend fails the run up front
	// instead of producing one failure outcome per page.
	Ready(ctx context.Context) error

	// Recognize extracts text from the page image at imagePath using the
	// given prompt. pageNum is 1-indexed and informational only.
	Recognize(ctx context.Context, imagePath, prompt string, pageNum int) (*Result, error)
}
