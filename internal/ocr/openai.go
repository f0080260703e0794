package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIEngineName = "openai"

	openAIDefaultMaxTokens   = 8000
	openAIDefaultTemperature = 0.1
	openAIDefaultTimeout     = 300 * time.Second
)

// OpenAIConfig holds configuration for the OpenAI-compatible HTTP engine.
// Any OpenAI-compatible endpoint works: api.openai.com, Ollama's /v1,
// DeepInfra, and so on.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string // Optional; SDK default is api.openai.com
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	HTTPClient  *http.Client // Optional (tests)
}

// OpenAIEngine sends page images to a vision chat completion endpoint
// using the official OpenAI SDK.
type OpenAIEngine struct {
	model       string
	temperature float64
	maxTokens   int
	client      openai.Client
}

// NewOpenAIEngine creates a new OpenAI-compatible engine.
func NewOpenAIEngine(cfg OpenAIConfig) *OpenAIEngine {
	if cfg.Temperature == 0 {
		cfg.Temperature = openAIDefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = openAIDefaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = openAIDefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0), // failed pages are recorded, not retried
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIEngine{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      openai.NewClient(opts...),
	}
}

// Name returns the engine identifier.
func (e *OpenAIEngine) Name() string {
	return OpenAIEngineName
}

// Ready verifies the endpoint is reachable and the API key is valid.
func (e *OpenAIEngine) Ready(ctx context.Context) error {
	page, err := e.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("openai models list failed: %w", err)
	}
	if page == nil {
		return fmt.Errorf("openai models list returned nil response")
	}
	return nil
}

// Recognize extracts text from one page image via a vision chat completion.
func (e *OpenAIEngine) Recognize(ctx context.Context, imagePath, prompt string, pageNum int) (*Result, error) {
	start := time.Now()

	image, err := os.ReadFile(imagePath)
	if err != nil {
		return &Result{
			Success:       false,
			ErrorMessage:  err.Error(),
			ExecutionTime: time.Since(start),
		}, fmt.Errorf("failed to read page image: %w", err)
	}

	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: "data:image/png;base64," + imageBase64,
				}),
			}),
		},
		Temperature: openai.Float(e.temperature),
		MaxTokens:   openai.Int(int64(e.maxTokens)),
	})
	if err != nil {
		result := &Result{
			Success:       false,
			ErrorMessage:  err.Error(),
			ExecutionTime: time.Since(start),
		}
		return result, fmt.Errorf("chat completion failed for page %d: %w", pageNum, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no response choices from model")
		return &Result{
			Success:       false,
			ErrorMessage:  err.Error(),
			ExecutionTime: time.Since(start),
		}, err
	}

	return &Result{
		Success:       true,
		Text:          resp.Choices[0].Message.Content,
		ExecutionTime: time.Since(start),
	}, nil
}

// Verify interface
var _ Engine = (*OpenAIEngine)(nil)
