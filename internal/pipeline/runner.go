package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/ocrpdf/internal/home"
	"github.com/jackzampolin/ocrpdf/internal/ocr"
	"github.com/jackzampolin/ocrpdf/internal/pdf"
)

// Rasterizer converts document pages into page images. Implemented by
// pdf.Converter; narrowed to what the runner needs so tests can fake it.
type Rasterizer interface {
	// PageCount returns the document's page count from metadata alone.
	// Any error means the cheap count is unavailable and the caller
	// falls back to RenderAll.
	PageCount(path string) (int, error)

	// RenderRange rasterizes pages first..last (1-indexed, inclusive)
	// into dir, in ascending order.
	RenderRange(ctx context.Context, path string, dpi, first, last int, dir string) ([]pdf.Page, error)

	// RenderAll rasterizes the whole document into dir, in ascending order.
	RenderAll(ctx context.Context, path string, dpi int, dir string) ([]pdf.Page, error)
}

// Runner executes one batch OCR run: guard, resolve, render, the
// sequential page loop, and artifact assembly.
type Runner struct {
	rasterizer Rasterizer
	engine     ocr.Engine
	home       *home.Dir
	logger     *slog.Logger
}

// NewRunner creates a Runner. A nil logger falls back to slog.Default.
func NewRunner(rasterizer Rasterizer, engine ocr.Engine, homeDir *home.Dir, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		rasterizer: rasterizer,
		engine:     engine,
		home:       homeDir,
		logger:     logger,
	}
}

// Run processes the requested page window and writes the output artifact.
// Fatal errors (bad request, oversized input, dead backend, rasterization
// failure, window violations) return before anything is written. Per-page
// OCR failures are recorded in the artifact and do not fail the run.
func (r *Runner) Run(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := CheckInputSize(req.Input, req.MaxInputSizeMB); err != nil {
		return nil, err
	}
	if err := ocr.WaitReady(ctx, r.engine, r.logger); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	scratch := r.home.RunScratchPath(runID)
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	r.logger.Info("starting run",
		"run_id", runID, "input", req.Input,
		"engine", r.engine.Name(), "model", req.Model, "prompt", req.Prompt.String())

	window, pages, total, err := r.preparePages(ctx, req, scratch)
	if err != nil {
		return nil, err
	}
	r.logger.Info("resolved page window", "pages", window.String(), "total_pages", total)

	outcomes, err := r.processPages(ctx, req, pages)
	if err != nil {
		return nil, err
	}

	content, err := Assemble(req, window, outcomes)
	if err != nil {
		return nil, err
	}
	if err := WriteArtifact(req.Output, content); err != nil {
		return nil, err
	}

	failed := 0
	for _, o := range outcomes {
		if !o.Success {
			failed++
		}
	}
	elapsed := time.Since(start)
	r.logger.Info("run complete",
		"run_id", runID, "output", req.Output,
		"processed", len(outcomes), "failed", failed,
		"elapsed", elapsed.Round(time.Millisecond))

	return &Report{
		RunID:          runID,
		Input:          req.Input,
		Output:         req.Output,
		Engine:         r.engine.Name(),
		Model:          req.Model,
		Prompt:         req.Prompt.String(),
		TotalPages:     total,
		Pages:          window.String(),
		Processed:      len(outcomes),
		Failed:         failed,
		ElapsedSeconds: elapsed.Seconds(),
		AvgPageSeconds: elapsed.Seconds() / float64(len(outcomes)),
	}, nil
}

// preparePages discovers the page count, resolves the window, and
// rasterizes exactly the pages in it. The cheap metadata count is
// preferred so only the window is ever rendered; when it is unavailable
// the whole document is rendered once and sliced, which costs a full
// render pass and is flagged in the log.
func (r *Runner) preparePages(ctx context.Context, req Request, scratch string) (Window, []pdf.Page, int, error) {
	total, err := r.rasterizer.PageCount(req.Input)
	if err == nil {
		window, err := ResolveWindow(req.StartPage, req.EndPage, total, req.MaxPages)
		if err != nil {
			return Window{}, nil, 0, err
		}
		pages, err := r.rasterizer.RenderRange(ctx, req.Input, req.DPI, window.First, window.Last, scratch)
		if err != nil {
			return Window{}, nil, 0, err
		}
		return window, pages, total, nil
	}

	r.logger.Warn("cheap page count unavailable, falling back to full render", "error", err)

	all, err := r.rasterizer.RenderAll(ctx, req.Input, req.DPI, scratch)
	if err != nil {
		return Window{}, nil, 0, err
	}
	total = len(all)

	window, err := ResolveWindow(req.StartPage, req.EndPage, total, req.MaxPages)
	if err != nil {
		return Window{}, nil, 0, err
	}

	pages := make([]pdf.Page, 0, window.Pages())
	for _, p := range all {
		if window.Contains(p.Number) {
			pages = append(pages, p)
		}
	}
	if len(pages) != window.Pages() {
		return Window{}, nil, 0, fmt.Errorf("full render produced %d pages in window %s, expected %d",
			len(pages), window, window.Pages())
	}
	return window, pages, total, nil
}

// processPages is the sequential page loop. Pages are processed in
// strictly ascending order, one blocking OCR call each, with the optional
// inter-page delay between calls. Cancellation of the run context is
// fatal: the failure marker is reserved for backend failures, so an
// interrupted run aborts without writing anything rather than recording
// the remaining pages as OCR failures.
func (r *Runner) processPages(ctx context.Context, req Request, pages []pdf.Page) ([]PageOutcome, error) {
	prompt := req.Prompt.Text()
	outcomes := make([]PageOutcome, 0, len(pages))

	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled before page %d: %w", page.Number, err)
		}

		r.logger.Info("processing page", "page", page.Number, "of", len(pages))

		result := r.recognizePage(ctx, page, prompt, req.Timeout)

		// A per-page timeout expires callCtx only; ctx.Err() here means
		// the caller cancelled the whole run mid-call.
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled at page %d: %w", page.Number, err)
		}

		outcome := PageOutcome{
			Page:    page.Number,
			Success: result.Success,
			Elapsed: result.ExecutionTime,
		}
		if result.Success {
			outcome.Text = result.Text
			r.logger.Debug("page done", "page", page.Number,
				"elapsed", result.ExecutionTime.Round(time.Millisecond),
				"chars", len(result.Text))
		} else {
			outcome.Error = result.ErrorMessage
			r.logger.Warn("page failed", "page", page.Number,
				"elapsed", result.ExecutionTime.Round(time.Millisecond),
				"error", result.ErrorMessage)
		}
		outcomes = append(outcomes, outcome)

		if req.Delay > 0 && i < len(pages)-1 {
			time.Sleep(req.Delay)
		}
	}

	return outcomes, nil
}

// recognizePage invokes the engine once for a page under the per-call
// timeout. A timeout or failure is returned as a failure result; the
// caller records it and moves on.
func (r *Runner) recognizePage(ctx context.Context, page pdf.Page, prompt string, timeout time.Duration) *ocr.Result {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := r.engine.Recognize(callCtx, page.Path, prompt, page.Number)
	if result == nil {
		result = &ocr.Result{
			Success:      false,
			ErrorMessage: fmt.Sprintf("engine returned no result: %v", err),
		}
	}
	return result
}
