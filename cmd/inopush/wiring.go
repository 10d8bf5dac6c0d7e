package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inopush/internal/config"
	"inopush/internal/generate"
	"inopush/internal/github"
	"inopush/internal/gitops"
	"inopush/internal/logging"
	"inopush/internal/perception"
	"inopush/internal/prompt"
	"inopush/internal/publish"
	"inopush/internal/tactile"
	"inopush/internal/world"
)

// components is everything a command may need, built from one config.
type components struct {
	scanner  *world.Scanner
	llm      perception.LLMClient
	pipeline *publish.Pipeline
}

func (c *components) Close() {
	if c.llm != nil {
		_ = c.llm.Close()
	}
}

func newScanner(c *config.Config, log *zap.Logger) *world.Scanner {
	return world.NewScanner(c.IgnoreSet(), c.SketchExt, logging.For(log, logging.CategoryScan))
}

// buildComponents wires the pipeline. GitHub and git stages are left out in
// dry-run mode so no credentials are needed.
func buildComponents(ctx context.Context, c *config.Config, log *zap.Logger, runID string) (*components, error) {
	scanner := newScanner(c, log)

	llm, err := perception.NewClientFromConfig(ctx, c.LLM, c.GetLLMTimeout(), logging.For(log, logging.CategoryLLM))
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	prompts, err := prompt.Load(c.LLM.PromptsDir)
	if err != nil {
		_ = llm.Close()
		return nil, err
	}

	gen := generate.New(llm, prompts, generate.Options{
		ExcerptLimit:   c.LLM.ExcerptLimit,
		FallbackName:   c.LLM.FallbackName,
		FallbackReadme: c.LLM.FallbackReadme,
	}, logging.For(log, logging.CategoryLLM))

	var creator publish.RepoCreator
	var pusher publish.Pusher
	if !c.DryRun {
		gh, err := github.NewClient(github.Config{
			Username: c.GitHub.Username,
			Token:    c.GitHub.Token,
			APIURL:   c.GitHub.APIURL,
			Host:     c.GitHub.Host,
			Timeout:  c.GetGitHubTimeout(),
		}, logging.For(log, logging.CategoryGitHub))
		if err != nil {
			_ = llm.Close()
			return nil, err
		}
		creator = gh

		gitLog := logging.For(log, logging.CategoryGit)
		executor := tactile.NewDirectExecutor(tactile.ExecutorConfig{DefaultTimeout: c.GetGitTimeout()}, gitLog)
		pusher = gitops.NewPusher(executor, gitops.Config{
			Binary:        c.Git.Binary,
			Remote:        c.Git.Remote,
			Branch:        c.Git.Branch,
			CommitMessage: c.Git.CommitMessage,
			AuthorName:    c.Git.AuthorName,
			AuthorEmail:   c.Git.AuthorEmail,
			Username:      c.GitHub.Username,
			Token:         c.GitHub.Token,
			Timeout:       c.GetGitTimeout(),
		}, gitLog)
	}

	pipeline := publish.NewPipeline(scanner, gen, creator, pusher, publish.Options{
		Root:       c.Root,
		ReadmeFile: c.ReadmeFile,
		Private:    c.GitHub.Private,
		Delay:      c.GetDelay(),
		DryRun:     c.DryRun,
		RunID:      runID,
	}, publish.WithLogger(logging.For(log, logging.CategoryPublish)))

	return &components{scanner: scanner, llm: llm, pipeline: pipeline}, nil
}
