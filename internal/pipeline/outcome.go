package pipeline

import "time"

// FailureMarker is the literal text written to the artifact for a page
// whose OCR call failed.
const FailureMarker = "*OCR failed*"

// PageOutcome records the result of one page's OCR invocation. Outcomes
// are appended during the page loop and never mutated afterwards.
type PageOutcome struct {
	Page    int           // 1-indexed page number
	Success bool
	Text    string        // Recognized text, verbatim; empty on failure
	Error   string        // Diagnostic detail on failure; never written to the artifact
	Elapsed time.Duration // Duration of the OCR invocation
}
