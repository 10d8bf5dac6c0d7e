package perception

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// CallStats aggregates the calls made through a TracingLLMClient.
type CallStats struct {
	Calls     int
	Failures  int
	Empty     int
	TotalTime time.Duration
}

// TracingLLMClient wraps any LLMClient and logs every interaction.
type TracingLLMClient struct {
	underlying LLMClient
	logger     *zap.Logger

	mu    sync.Mutex
	stats CallStats
}

// NewTracingLLMClient creates a tracing wrapper around an existing LLM client.
func NewTracingLLMClient(underlying LLMClient, logger *zap.Logger) *TracingLLMClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TracingLLMClient{underlying: underlying, logger: logger}
}

// Complete forwards to the underlying client and records the outcome.
func (tc *TracingLLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := tc.underlying.Complete(ctx, prompt)
	elapsed := time.Since(start)

	tc.mu.Lock()
	tc.stats.Calls++
	tc.stats.TotalTime += elapsed
	switch {
	case err != nil:
		tc.stats.Failures++
	case resp == "":
		tc.stats.Empty++
	}
	tc.mu.Unlock()

	fields := []zap.Field{
		zap.Int("prompt_chars", utf8.RuneCountInString(prompt)),
		zap.Int("response_chars", utf8.RuneCountInString(resp)),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		tc.logger.Warn("LLM call failed", append(fields, zap.Error(err))...)
		return resp, err
	}
	tc.logger.Debug("LLM call completed", fields...)
	return resp, nil
}

// Stats returns a snapshot of the recorded calls.
func (tc *TracingLLMClient) Stats() CallStats {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.stats
}

// Close closes the underlying client.
func (tc *TracingLLMClient) Close() error {
	return tc.underlying.Close()
}
