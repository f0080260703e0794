package ocr

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockEngineName = "mock"

// MockEngine is an Engine for testing and offline smoke runs.
type MockEngine struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool         // Fail every call
	FailPages    map[int]bool // Fail specific page numbers
	NotReady     bool         // Ready returns an error
	ResponseText string       // Returned for every page; page number appended when PerPage is set
	PerPage      bool

	// State
	requestCount atomic.Int64
}

// NewMockEngine creates a mock engine with sensible defaults.
func NewMockEngine() *MockEngine {
	return &MockEngine{
		ResponseText: "mock OCR text",
		PerPage:      true,
	}
}

// Name returns the engine identifier.
func (e *MockEngine) Name() string {
	return MockEngineName
}

// Ready reports the configured readiness.
func (e *MockEngine) Ready(ctx context.Context) error {
	if e.NotReady {
		return fmt.Errorf("mock engine configured as not ready")
	}
	return nil
}

// Recognize returns the configured response.
func (e *MockEngine) Recognize(ctx context.Context, imagePath, prompt string, pageNum int) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if e.Latency > 0 {
		select {
		case <-time.After(e.Latency):
		case <-ctx.Done():
			return &Result{
				Success:       false,
				ErrorMessage:  ctx.Err().Error(),
				ExecutionTime: time.Since(start),
			}, ctx.Err()
		}
	}

	if e.ShouldFail || e.FailPages[pageNum] {
		return &Result{
			Success:       false,
			ErrorMessage:  fmt.Sprintf("mock engine configured to fail page %d", pageNum),
			ExecutionTime: time.Since(start),
		}, fmt.Errorf("mock engine configured to fail page %d", pageNum)
	}

	text := e.ResponseText
	if e.PerPage {
		text = fmt.Sprintf("%s (page %d)", e.ResponseText, pageNum)
	}

	return &Result{
		Success:       true,
		Text:          text,
		ExecutionTime: time.Since(start),
	}, nil
}

// RequestCount returns the number of Recognize calls made.
func (e *MockEngine) RequestCount() int64 {
	return e.requestCount.Load()
}

// Verify interface
var _ Engine = (*MockEngine)(nil)
