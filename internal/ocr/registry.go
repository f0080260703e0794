package ocr

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// EngineConfig carries everything needed to construct any engine.
type EngineConfig struct {
	Model string

	// ollama
	OllamaBinary string

	// openai
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional (tests)
}

// New constructs an engine by name. Unknown names are rejected.
func New(name string, cfg EngineConfig) (Engine, error) {
	switch name {
	case OllamaEngineName:
		return NewOllamaEngine(OllamaConfig{
			Binary: cfg.OllamaBinary,
			Model:  cfg.Model,
		}), nil
	case OpenAIEngineName:
		return NewOpenAIEngine(OpenAIConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout,
			HTTPClient: cfg.HTTPClient,
		}), nil
	case MockEngineName:
		return NewMockEngine(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (valid: %s)", name, strings.Join(Engines(), ", "))
	}
}

// Engines returns all constructible engine names, sorted.
func Engines() []string {
	names := []string{OllamaEngineName, OpenAIEngineName, MockEngineName}
	sort.Strings(names)
	return names
}
