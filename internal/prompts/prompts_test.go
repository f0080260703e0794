package prompts

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("valid variants", func(t *testing.T) {
		for _, name := range Names() {
			v, err := Parse(name)
			if err != nil {
				t.Errorf("Parse(%q) returned error: %v", name, err)
			}
			if string(v) != name {
				t.Errorf("Parse(%q) = %q", name, v)
			}
		}
	})

	t.Run("empty uses default", func(t *testing.T) {
		v, err := Parse("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != DefaultVariant {
			t.Errorf("expected %q, got %q", DefaultVariant, v)
		}
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		v, err := Parse("  Markdown ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != Markdown {
			t.Errorf("expected %q, got %q", Markdown, v)
		}
	})

	t.Run("unknown variant rejected", func(t *testing.T) {
		_, err := Parse("handwriting")
		if err == nil {
			t.Fatal("expected error for unknown variant")
		}
		if !strings.Contains(err.Error(), "handwriting") {
			t.Errorf("error should name the bad variant: %v", err)
		}
	})
}

func TestText(t *testing.T) {
	if Free.Text() != "Free OCR." {
		t.Errorf("unexpected free prompt: %q", Free.Text())
	}
	if !strings.Contains(Markdown.Text(), "markdown") {
		t.Errorf("unexpected markdown prompt: %q", Markdown.Text())
	}
	for _, name := range Names() {
		if Variant(name).Text() == "" {
			t.Errorf("variant %q has empty prompt text", name)
		}
	}
}
