package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Assemble concatenates page outcomes into the output artifact: a
// provenance header followed by one section per page in ascending order.
// The outcomes must cover the window exactly, in order, with no gaps or
// duplicates; anything else means the page loop is broken and assembly
// refuses to produce a misleading artifact.
func Assemble(req Request, w Window, outcomes []PageOutcome) (string, error) {
	if len(outcomes) != w.Pages() {
		return "", fmt.Errorf("expected %d page outcomes for window %s, got %d", w.Pages(), w, len(outcomes))
	}
	for i, o := range outcomes {
		if want := w.First + i; o.Page != want {
			return "", fmt.Errorf("page outcomes out of order: expected page %d at position %d, got %d", want, i, o.Page)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# OCR Results: %s\n", filepath.Base(req.Input))
	fmt.Fprintf(&b, "# Pages: %s\n", w)
	fmt.Fprintf(&b, "# Prompt: %s\n", req.Prompt)
	fmt.Fprintf(&b, "# Model: %s\n", req.Model)
	b.WriteString("\n")

	for _, o := range outcomes {
		fmt.Fprintf(&b, "=== Page %d ===\n\n", o.Page)
		if o.Success {
			b.WriteString(o.Text)
		} else {
			b.WriteString(FailureMarker)
		}
		b.WriteString("\n\n")
	}

	return b.String(), nil
}

// WriteArtifact writes the assembled artifact atomically: the content
// lands in a temp file in the destination directory and is renamed into
// place, so a crash mid-write never leaves a partial artifact.
func WriteArtifact(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ocrpdf-*")
	if err != nil {
		return fmt.Errorf("failed to create temp output file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close output: %w", err)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
