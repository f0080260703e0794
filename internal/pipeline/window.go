package pipeline

import "fmt"

// Window is the resolved page range for one run: 1-indexed, inclusive on
// both ends, within [1, total].
type Window struct {
	First int
	Last  int
}

// Pages returns the number of pages in the window.
func (w Window) Pages() int {
	return w.Last - w.First + 1
}

// Contains reports whether page n falls inside the window.
func (w Window) Contains(n int) bool {
	return n >= w.First && n <= w.Last
}

// String renders the window as "first-last".
func (w Window) String() string {
	return fmt.Sprintf("%d-%d", w.First, w.Last)
}

// ResolveWindow computes the validated page window. start is 1-indexed;
// end is inclusive, with 0 meaning through the last page. The start page
// is validated against the total BEFORE any clamping, so a start past the
// document end always fails rather than silently clamping. An end past
// the document end clamps to the last page.
func ResolveWindow(start, end, total, maxPages int) (Window, error) {
	if total < 1 {
		return Window{}, fmt.Errorf("document has no pages")
	}
	if start > total {
		return Window{}, fmt.Errorf("%w: start page %d, document has %d pages",
			ErrStartPageOutOfRange, start, total)
	}

	last := total
	if end != 0 && end < total {
		last = end
	}

	w := Window{First: start, Last: last}
	if w.Pages() > maxPages {
		return Window{}, fmt.Errorf("%w: window %s is %d pages, limit is %d (raise --max-pages to allow more)",
			ErrTooManyPages, w, w.Pages(), maxPages)
	}
	return w, nil
}
