// Package prompts defines the OCR prompt variants the backend is invoked with.
package prompts

import (
	"fmt"
	"sort"
	"strings"
)

// Variant selects the prompt text sent to the OCR backend alongside each
// page image.
type Variant string

const (
	// Free is free-form text extraction, the default.
	Free Variant = "free"
	// Layout preserves the page layout in the output.
	Layout Variant = "layout"
	// Markdown converts the page to markdown structure.
	Markdown Variant = "markdown"
	// Extract is plain text extraction without grounding.
	Extract Variant = "extract"
	// Figure parses figures and diagrams.
	Figure Variant = "figure"
)

// DefaultVariant is used when no prompt is configured.
const DefaultVariant = Free

var texts = map[Variant]string{
	Free:     "Free OCR.",
	Layout:   "<|grounding|>Given the layout of the image.",
	Markdown: "<|grounding|>Convert the document to markdown.",
	Extract:  "Extract the text in the image.",
	Figure:   "Parse the figure.",
}

// Parse validates a prompt variant name. Unknown names are rejected rather
// than silently mapped to the default.
func Parse(name string) (Variant, error) {
	if name == "" {
		return DefaultVariant, nil
	}
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := texts[v]; !ok {
		return "", fmt.Errorf("unknown prompt variant %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return v, nil
}

// Text returns the prompt text for the variant. Unknown variants return the
// default variant's text; Parse is the place to reject them.
func (v Variant) Text() string {
	if t, ok := texts[v]; ok {
		return t
	}
	return texts[DefaultVariant]
}

// String returns the variant name.
func (v Variant) String() string {
	return string(v)
}

// Names returns all valid variant names, sorted.
func Names() []string {
	names := make([]string, 0, len(texts))
	for v := range texts {
		names = append(names, string(v))
	}
	sort.Strings(names)
	return names
}
