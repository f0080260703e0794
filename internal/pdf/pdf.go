// Package pdf rasterizes PDF pages to PNG images using pdftoppm
// (poppler-utils), with page counts from pdfcpu metadata.
package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// MinDPI is the lowest render resolution accepted.
const MinDPI = 72

// Page is one rasterized page on disk.
type Page struct {
	Number int    // 1-indexed page number in the document
	Path   string // Full path to the PNG
}

// ConversionError wraps a rasterization failure. It is fatal for the
// whole run: no output is salvageable without a page image.
type ConversionError struct {
	Cause  error
	Output string // Combined stdout/stderr from pdftoppm, if any
}

func (e *ConversionError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("pdf conversion failed: %v (output: %s)", e.Cause, e.Output)
	}
	return fmt.Sprintf("pdf conversion failed: %v", e.Cause)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// PageImagePath returns the scratch path for a page image.
// Page numbers are 1-indexed.
func PageImagePath(dir string, pageNum int) string {
	return filepath.Join(dir, fmt.Sprintf("page_%04d.png", pageNum))
}

// Converter rasterizes PDFs by shelling out to pdftoppm.
type Converter struct {
	logger *slog.Logger
}

// NewConverter creates a Converter. A nil logger falls back to slog.Default.
func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{logger: logger}
}

// PageCount returns the document's page count from PDF metadata without
// rendering anything. Callers treat any error as "cheap count unavailable"
// and fall back to RenderAll.
func (c *Converter) PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	return count, nil
}

// RenderRange rasterizes pages first through last (1-indexed, inclusive)
// into dir, one invocation per page so only the requested window is ever
// materialized. Pages are returned in ascending order.
func (c *Converter) RenderRange(ctx context.Context, path string, dpi, first, last int, dir string) ([]Page, error) {
	pages := make([]Page, 0, last-first+1)
	for n := first; n <= last; n++ {
		p, err := c.renderPage(ctx, path, dpi, n, dir)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, nil
}

// renderPage rasterizes a single page with pdftoppm.
func (c *Converter) renderPage(ctx context.Context, path string, dpi, pageNum int, dir string) (Page, error) {
	dst := PageImagePath(dir, pageNum)
	// -singlefile drops the page number suffix, so the output lands
	// directly at <prefix>.png.
	prefix := dst[:len(dst)-len(".png")]

	pageStr := strconv.Itoa(pageNum)
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", strconv.Itoa(dpi),
		"-singlefile",
		path,
		prefix,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return Page{}, &ConversionError{Cause: fmt.Errorf("pdftoppm page %d: %w", pageNum, err), Output: string(out)}
	}
	if _, err := os.Stat(dst); err != nil {
		return Page{}, &ConversionError{Cause: fmt.Errorf("pdftoppm did not create expected output for page %d: %w", pageNum, err)}
	}

	c.logger.Debug("rendered page", "page", pageNum, "path", dst)
	return Page{Number: pageNum, Path: dst}, nil
}

// RenderAll rasterizes the whole document into dir with a single pdftoppm
// invocation and returns all pages in ascending order. Used only when the
// cheap page count is unavailable; it materializes every page regardless of
// the requested window.
func (c *Converter) RenderAll(ctx context.Context, path string, dpi int, dir string) ([]Page, error) {
	prefix := filepath.Join(dir, "full")
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-r", strconv.Itoa(dpi),
		path,
		prefix,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &ConversionError{Cause: fmt.Errorf("pdftoppm full render: %w", err), Output: string(out)}
	}

	pages, err := collectRendered(dir, "full")
	if err != nil {
		return nil, &ConversionError{Cause: err}
	}
	if len(pages) == 0 {
		return nil, &ConversionError{Cause: fmt.Errorf("pdftoppm produced no pages")}
	}
	return pages, nil
}

var renderedPageRe = regexp.MustCompile(`-(\d+)\.png$`)

// collectRendered finds <prefix>-N.png files written by pdftoppm and
// renames them to the page_%04d.png scratch layout. Poppler pads the page
// number differently across versions, so the suffix is parsed numerically.
func collectRendered(dir, prefix string) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read render directory: %w", err)
	}

	var pages []Page
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		m := renderedPageRe.FindStringSubmatch(name)
		if m == nil || name[:len(name)-len(m[0])] != prefix {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		dst := PageImagePath(dir, num)
		if err := os.Rename(filepath.Join(dir, name), dst); err != nil {
			return nil, fmt.Errorf("failed to rename page %d image: %w", num, err)
		}
		pages = append(pages, Page{Number: num, Path: dst})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })
	return pages, nil
}
