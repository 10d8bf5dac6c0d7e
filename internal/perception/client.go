// Package perception talks to the text generation service that names
// projects and writes their READMEs.
package perception

import (
	"context"
)

// LLMClient defines the interface for LLM providers.
// Complete returns the generated text, or "" when the service produced none.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Provider represents an LLM provider.
type Provider string

const (
	ProviderGemini Provider = "gemini"
)
