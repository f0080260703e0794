package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page_0001.png")
	if err := os.WriteFile(path, []byte("fake png bytes"), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}

func chatCompletionJSON(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-vlm",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func TestOpenAIEngine_Recognize(t *testing.T) {
	t.Run("successful recognition", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
				t.Errorf("unexpected authorization: %s", auth)
			}

			// The request must carry the prompt and a data URL image part.
			var req map[string]any
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			if req["model"] != "test-vlm" {
				t.Errorf("unexpected model: %v", req["model"])
			}
			body, _ := json.Marshal(req)
			if !strings.Contains(string(body), "Free OCR.") {
				t.Error("request should contain the prompt text")
			}
			if !strings.Contains(string(body), "data:image/png;base64,") {
				t.Error("request should contain a base64 image data URL")
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(chatCompletionJSON("Recognized page text."))
		}))
		defer server.Close()

		e := NewOpenAIEngine(OpenAIConfig{
			APIKey:  "test-key",
			BaseURL: server.URL,
			Model:   "test-vlm",
		})

		result, err := e.Recognize(context.Background(), writeTestImage(t), "Free OCR.", 1)
		if err != nil {
			t.Fatalf("Recognize failed: %v", err)
		}
		if !result.Success {
			t.Fatal("expected success")
		}
		if result.Text != "Recognized page text." {
			t.Errorf("unexpected text: %q", result.Text)
		}
		if result.ExecutionTime <= 0 {
			t.Error("expected nonzero execution time")
		}
	})

	t.Run("server error is a failure result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"model overloaded"}}`, http.StatusInternalServerError)
		}))
		defer server.Close()

		e := NewOpenAIEngine(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL, Model: "test-vlm"})

		result, err := e.Recognize(context.Background(), writeTestImage(t), "Free OCR.", 1)
		if err == nil {
			t.Fatal("expected error")
		}
		if result.Success {
			t.Error("expected failure result")
		}
		if result.ErrorMessage == "" {
			t.Error("expected error message")
		}
	})

	t.Run("missing image file", func(t *testing.T) {
		e := NewOpenAIEngine(OpenAIConfig{APIKey: "test-key", Model: "test-vlm"})

		result, err := e.Recognize(context.Background(), "/nonexistent/page.png", "Free OCR.", 1)
		if err == nil {
			t.Fatal("expected error")
		}
		if result.Success {
			t.Error("expected failure result")
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"id": "chatcmpl-test", "object": "chat.completion",
				"model": "test-vlm", "choices": []any{},
			})
		}))
		defer server.Close()

		e := NewOpenAIEngine(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL, Model: "test-vlm"})

		result, err := e.Recognize(context.Background(), writeTestImage(t), "Free OCR.", 1)
		if err == nil {
			t.Fatal("expected error for empty choices")
		}
		if result.Success {
			t.Error("expected failure result")
		}
	})
}

func TestOpenAIEngine_Ready(t *testing.T) {
	t.Run("reachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"object": "list",
				"data":   []map[string]any{{"id": "test-vlm", "object": "model"}},
			})
		}))
		defer server.Close()

		e := NewOpenAIEngine(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL, Model: "test-vlm"})
		if err := e.Ready(context.Background()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unauthorized endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
		}))
		defer server.Close()

		e := NewOpenAIEngine(OpenAIConfig{APIKey: "bad-key", BaseURL: server.URL, Model: "test-vlm"})
		if err := e.Ready(context.Background()); err == nil {
			t.Error("expected error for unauthorized endpoint")
		}
	})
}
