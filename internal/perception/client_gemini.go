package perception

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-1.5-flash-8b"

// GeminiConfig holds configuration for Gemini client.
type GeminiConfig struct {
	APIKey  string
	BaseURL string // Optional endpoint override
	Model   string
	Timeout time.Duration
}

// contentGenerator is the slice of the genai Models service the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient implements LLMClient for Google Gemini via the genai SDK.
type GeminiClient struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newGeminiClient(client.Models, cfg.Model, cfg.Timeout), nil
}

func newGeminiClient(models contentGenerator, model string, timeout time.Duration) *GeminiClient {
	model = strings.TrimSpace(model)
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{models: models, model: model, timeout: timeout}
}

// Model returns the model identifier requests are sent to.
func (c *GeminiClient) Model() string {
	return c.model
}

// Complete sends a single-turn prompt.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", nil
	}
	return resp.Text(), nil
}

// Close releases client resources. The genai client holds none of its own.
func (c *GeminiClient) Close() error {
	return nil
}
