package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveWindow(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		end      int
		total    int
		maxPages int
		want     Window
		wantErr  error
	}{
		{name: "full document", start: 1, end: 0, total: 10, maxPages: 500, want: Window{1, 10}},
		{name: "exact window", start: 3, end: 7, total: 10, maxPages: 500, want: Window{3, 7}},
		{name: "single page", start: 5, end: 5, total: 10, maxPages: 500, want: Window{5, 5}},
		{name: "first page only", start: 1, end: 1, total: 10, maxPages: 500, want: Window{1, 1}},
		{name: "last page only", start: 10, end: 10, total: 10, maxPages: 500, want: Window{10, 10}},
		{name: "start equals total", start: 10, end: 0, total: 10, maxPages: 500, want: Window{10, 10}},
		{name: "end clamps to total", start: 8, end: 99, total: 10, maxPages: 500, want: Window{8, 10}},
		{name: "end equals total", start: 1, end: 10, total: 10, maxPages: 500, want: Window{1, 10}},
		{name: "one page document", start: 1, end: 0, total: 1, maxPages: 500, want: Window{1, 1}},
		{name: "window at ceiling", start: 1, end: 5, total: 10, maxPages: 5, want: Window{1, 5}},

		{name: "start past total", start: 11, end: 0, total: 10, maxPages: 500, wantErr: ErrStartPageOutOfRange},
		{name: "start far past total", start: 100, end: 200, total: 10, maxPages: 500, wantErr: ErrStartPageOutOfRange},
		{name: "window over ceiling", start: 1, end: 6, total: 10, maxPages: 5, wantErr: ErrTooManyPages},
		{name: "clamped window over ceiling", start: 1, end: 0, total: 10, maxPages: 5, wantErr: ErrTooManyPages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveWindow(tt.start, tt.end, tt.total, tt.maxPages)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("empty document", func(t *testing.T) {
		if _, err := ResolveWindow(1, 0, 0, 500); err == nil {
			t.Error("expected error for zero-page document")
		}
	})

	t.Run("ceiling error mentions the flag", func(t *testing.T) {
		_, err := ResolveWindow(1, 0, 100, 10)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "--max-pages") {
			t.Errorf("error should point at the adjustable ceiling: %v", err)
		}
	})
}

func TestWindow(t *testing.T) {
	w := Window{First: 3, Last: 7}

	if w.Pages() != 5 {
		t.Errorf("expected 5 pages, got %d", w.Pages())
	}
	if w.String() != "3-7" {
		t.Errorf("expected 3-7, got %s", w)
	}

	for n, want := range map[int]bool{2: false, 3: true, 5: true, 7: true, 8: false} {
		if w.Contains(n) != want {
			t.Errorf("Contains(%d) = %v, want %v", n, !want, want)
		}
	}
}
