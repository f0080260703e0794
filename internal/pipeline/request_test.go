package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/jackzampolin/ocrpdf/internal/prompts"
)

func validRequest() Request {
	return Request{
		Input:          "scan.pdf",
		Output:         "output.txt",
		DPI:            300,
		StartPage:      1,
		Prompt:         prompts.Free,
		Model:          "deepseek-ocr",
		MaxPages:       500,
		MaxInputSizeMB: 500,
		Timeout:        120 * time.Second,
	}
}

func TestRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		if err := validRequest().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		req := validRequest()
		req.StartPage = 5
		req.EndPage = 3
		if err := req.Validate(); !errors.Is(err, ErrInvalidPageRange) {
			t.Errorf("expected ErrInvalidPageRange, got %v", err)
		}
	})

	t.Run("zero start page", func(t *testing.T) {
		req := validRequest()
		req.StartPage = 0
		if err := req.Validate(); !errors.Is(err, ErrInvalidPageRange) {
			t.Errorf("expected ErrInvalidPageRange, got %v", err)
		}
	})

	t.Run("end equal to start is valid", func(t *testing.T) {
		req := validRequest()
		req.StartPage = 3
		req.EndPage = 3
		if err := req.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing input", func(r *Request) { r.Input = "" }},
		{"missing output", func(r *Request) { r.Output = "" }},
		{"dpi below floor", func(r *Request) { r.DPI = 71 }},
		{"negative delay", func(r *Request) { r.Delay = -time.Second }},
		{"zero max pages", func(r *Request) { r.MaxPages = 0 }},
		{"zero max input size", func(r *Request) { r.MaxInputSizeMB = 0 }},
		{"negative timeout", func(r *Request) { r.Timeout = -time.Second }},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			if err := req.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	t.Run("dpi at floor is valid", func(t *testing.T) {
		req := validRequest()
		req.DPI = 72
		if err := req.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
