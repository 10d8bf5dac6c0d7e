// Package generate asks the text generation service for a project's
// repository name and README, falling back to fixed text when the service
// returns nothing.
package generate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"inopush/internal/errs"
	"inopush/internal/perception"
	"inopush/internal/prompt"
)

// Result is generated text. Fallback is set when Text is the configured
// default rather than model output.
type Result struct {
	Text     string
	Fallback bool
}

// Options configures a Generator.
type Options struct {
	ExcerptLimit   int
	FallbackName   string
	FallbackReadme string
}

// Generator produces names and READMEs from sketch source.
type Generator struct {
	client  perception.LLMClient
	prompts *prompt.Library
	opts    Options
	logger  *zap.Logger
}

// New creates a Generator.
func New(client perception.LLMClient, prompts *prompt.Library, opts Options, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, prompts: prompts, opts: opts, logger: logger}
}

// Name generates a sanitized repository name for code.
//
// An empty reply yields the fallback name. A transport failure is returned
// wrapping errs.ErrGeneration, and a reply that sanitizes to nothing returns
// errs.ErrEmptyName.
func (g *Generator) Name(ctx context.Context, code string) (Result, error) {
	p, err := g.prompts.Render(prompt.NameTemplate, prompt.Data{Code: prompt.Excerpt(code, g.opts.ExcerptLimit)})
	if err != nil {
		return Result{}, err
	}

	raw, err := g.client.Complete(ctx, p)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", errs.ErrGeneration, err)
	}

	if strings.TrimSpace(raw) == "" {
		g.logger.Warn("Empty name from model, using fallback", zap.String("fallback", g.opts.FallbackName))
		fallback := Sanitize(g.opts.FallbackName)
		if fallback == "" {
			return Result{}, fmt.Errorf("%w (fallback %q)", errs.ErrEmptyName, g.opts.FallbackName)
		}
		return Result{Text: fallback, Fallback: true}, nil
	}

	name := Sanitize(raw)
	if name == "" {
		return Result{}, fmt.Errorf("%w (model said %q)", errs.ErrEmptyName, strings.TrimSpace(raw))
	}
	return Result{Text: name}, nil
}

// Readme generates README text for a named project.
// Generation failures and empty replies both yield the fallback text; only a
// broken prompt template is returned as an error.
func (g *Generator) Readme(ctx context.Context, name, code string) (Result, error) {
	p, err := g.prompts.Render(prompt.ReadmeTemplate, prompt.Data{
		Name: name,
		Code: prompt.Excerpt(code, g.opts.ExcerptLimit),
	})
	if err != nil {
		return Result{}, err
	}

	text, err := g.client.Complete(ctx, p)
	if err != nil {
		g.logger.Warn("README generation failed, using fallback", zap.String("project", name), zap.Error(err))
		return Result{Text: g.opts.FallbackReadme, Fallback: true}, nil
	}
	if strings.TrimSpace(text) == "" {
		g.logger.Warn("Empty README from model, using fallback", zap.String("project", name))
		return Result{Text: g.opts.FallbackReadme, Fallback: true}, nil
	}
	return Result{Text: text}, nil
}
