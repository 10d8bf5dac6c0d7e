package perception

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"inopush/internal/config"
)

// NewClientFromConfig builds the configured provider's client wrapped in a
// TracingLLMClient.
func NewClientFromConfig(ctx context.Context, cfg config.LLMConfig, timeout time.Duration, logger *zap.Logger) (LLMClient, error) {
	var client LLMClient
	switch Provider(cfg.Provider) {
	case ProviderGemini, "":
		gc, err := NewGeminiClient(ctx, GeminiConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout,
		})
		if err != nil {
			return nil, err
		}
		client = gc
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	return NewTracingLLMClient(client, logger), nil
}
