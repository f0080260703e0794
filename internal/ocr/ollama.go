package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const OllamaEngineName = "ollama"

// OllamaConfig holds configuration for the ollama subprocess engine.
type OllamaConfig struct {
	Binary string // Path to the ollama binary (default "ollama")
	Model  string // Model to run, e.g. "deepseek-ocr"
}

// OllamaEngine invokes a local ollama model as a subprocess, one
// `ollama run` per page. The model receives the absolute image path and
// the prompt on separate lines.
type OllamaEngine struct {
	binary string
	model  string
}

// NewOllamaEngine creates a new ollama engine.
func NewOllamaEngine(cfg OllamaConfig) *OllamaEngine {
	if cfg.Binary == "" {
		cfg.Binary = "ollama"
	}
	return &OllamaEngine{
		binary: cfg.Binary,
		model:  cfg.Model,
	}
}

// Name returns the engine identifier.
func (e *OllamaEngine) Name() string {
	return OllamaEngineName
}

// Ready checks that the ollama binary is present and the server answers.
func (e *OllamaEngine) Ready(ctx context.Context) error {
	if _, err := exec.LookPath(e.binary); err != nil {
		return fmt.Errorf("ollama binary not found: %w", err)
	}

	out, err := exec.CommandContext(ctx, e.binary, "list").CombinedOutput()
	if err != nil {
		return fmt.Errorf("ollama not responding: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Recognize runs the model against one page image.
func (e *OllamaEngine) Recognize(ctx context.Context, imagePath, prompt string, pageNum int) (*Result, error) {
	start := time.Now()

	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		return &Result{
			Success:       false,
			ErrorMessage:  err.Error(),
			ExecutionTime: time.Since(start),
		}, fmt.Errorf("failed to resolve image path: %w", err)
	}

	// The model reads the image from the path given in the prompt text.
	payload := absPath + "\n" + prompt
	cmd := exec.CommandContext(ctx, e.binary, "run", e.model, payload)

	// The recognized text arrives on stdout; ollama writes progress and
	// diagnostics to stderr, which must stay out of the artifact.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		result := &Result{
			Success:       false,
			ErrorMessage:  fmt.Sprintf("%v (stderr: %s)", err, strings.TrimSpace(stderr.String())),
			ExecutionTime: time.Since(start),
		}
		return result, fmt.Errorf("ollama run failed for page %d: %w", pageNum, err)
	}

	return &Result{
		Success:       true,
		Text:          stdout.String(),
		ExecutionTime: time.Since(start),
	}, nil
}

// Verify interface
var _ Engine = (*OllamaEngine)(nil)
