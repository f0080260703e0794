package ocr

import (
	"context"
	"testing"
	"time"
)

func TestWaitReady(t *testing.T) {
	orig := readyDelay
	readyDelay = time.Millisecond
	t.Cleanup(func() { readyDelay = orig })

	t.Run("ready engine passes immediately", func(t *testing.T) {
		e := NewMockEngine()
		if err := WaitReady(context.Background(), e, nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("dead engine exhausts attempts", func(t *testing.T) {
		e := NewMockEngine()
		e.NotReady = true
		err := WaitReady(context.Background(), e, nil)
		if err == nil {
			t.Fatal("expected error for dead engine")
		}
	})

	t.Run("cancelled context aborts the probe", func(t *testing.T) {
		e := NewMockEngine()
		e.NotReady = true

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := WaitReady(ctx, e, nil); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestMockEngine(t *testing.T) {
	t.Run("per-page response text", func(t *testing.T) {
		e := NewMockEngine()
		result, err := e.Recognize(context.Background(), "page_0001.png", "Free OCR.", 1)
		if err != nil {
			t.Fatalf("Recognize failed: %v", err)
		}
		if result.Text != "mock OCR text (page 1)" {
			t.Errorf("unexpected text: %q", result.Text)
		}
	})

	t.Run("fails configured pages only", func(t *testing.T) {
		e := NewMockEngine()
		e.FailPages = map[int]bool{2: true}

		if _, err := e.Recognize(context.Background(), "p", "x", 1); err != nil {
			t.Errorf("page 1 should succeed: %v", err)
		}
		if _, err := e.Recognize(context.Background(), "p", "x", 2); err == nil {
			t.Error("page 2 should fail")
		}
		if _, err := e.Recognize(context.Background(), "p", "x", 3); err != nil {
			t.Errorf("page 3 should succeed: %v", err)
		}
		if e.RequestCount() != 3 {
			t.Errorf("expected 3 requests, got %d", e.RequestCount())
		}
	})
}
