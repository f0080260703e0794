package pipeline

import "errors"

// Fatal errors. Each aborts the run before any output is written.
var (
	// ErrInputTooLarge means the input document exceeds the size ceiling.
	ErrInputTooLarge = errors.New("input file too large")

	// ErrStartPageOutOfRange means the requested start page is past the
	// end of the document.
	ErrStartPageOutOfRange = errors.New("start page out of range")

	// ErrTooManyPages means the resolved window exceeds the per-run
	// page ceiling.
	ErrTooManyPages = errors.New("too many pages")

	// ErrInvalidPageRange means the requested start/end pages are not a
	// valid range.
	ErrInvalidPageRange = errors.New("invalid page range")
)
