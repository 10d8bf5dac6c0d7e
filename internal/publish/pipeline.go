// Package publish drives the batch: for each project folder it generates a
// name and README, creates the hosted repository and pushes the folder.
// Projects are processed one at a time; a failure only ends that project.
package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"inopush/internal/errs"
	"inopush/internal/world"
)

// Options configures a Pipeline.
type Options struct {
	Root       string
	ReadmeFile string
	Private    bool
	Delay      time.Duration
	DryRun     bool
	RunID      string
}

// Pipeline wires the stages of a publish run together.
type Pipeline struct {
	scanner   Scanner
	generator Generator
	creator   RepoCreator
	pusher    Pusher
	write     ReadmeWriter
	sleep     Sleeper
	opts      Options
	logger    *zap.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithSleeper replaces the pause between projects.
func WithSleeper(s Sleeper) Option {
	return func(p *Pipeline) { p.sleep = s }
}

// WithReadmeWriter replaces how READMEs are persisted.
func WithReadmeWriter(w ReadmeWriter) Option {
	return func(p *Pipeline) { p.write = w }
}

// WithLogger sets the pipeline logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline creates a Pipeline. creator and pusher may be nil in dry-run mode.
func NewPipeline(scanner Scanner, generator Generator, creator RepoCreator, pusher Pusher, opts Options, options ...Option) *Pipeline {
	p := &Pipeline{
		scanner:   scanner,
		generator: generator,
		creator:   creator,
		pusher:    pusher,
		write:     world.WriteReadme,
		sleep:     ContextSleep,
		opts:      opts,
		logger:    zap.NewNop(),
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// Run processes every project folder under the root.
// Only a failure to list the root, or ctx ending, is returned as an error;
// every per-project failure is recorded in the report.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: p.opts.RunID, Root: p.opts.Root, DryRun: p.opts.DryRun}

	if !p.opts.DryRun && (p.creator == nil || p.pusher == nil) {
		return report, fmt.Errorf("repository creator and pusher are required outside dry run")
	}

	projects, err := p.scanner.ListProjects(p.opts.Root)
	if err != nil {
		return report, err
	}
	p.logger.Info("Starting publish run",
		zap.String("root", p.opts.Root),
		zap.Int("projects", len(projects)),
		zap.Bool("dry_run", p.opts.DryRun))

	for i, project := range projects {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res, calledAPI := p.processProject(ctx, project)
		report.Results = append(report.Results, res)

		// Pause only after projects that reached the remote services.
		if calledAPI && i < len(projects)-1 {
			if err := p.sleep(ctx, p.opts.Delay); err != nil {
				return report, err
			}
		}
	}

	p.logger.Info("Publish run finished",
		zap.Int("processed", len(report.Results)),
		zap.Int("failed", len(report.Failures())))
	return report, nil
}

// processProject runs every stage for one folder. calledAPI reports whether
// any remote service was contacted.
func (p *Pipeline) processProject(ctx context.Context, project world.Project) (res ProjectResult, calledAPI bool) {
	res.Project = project
	log := p.logger.With(zap.String("folder", project.Name))

	sketch, err := p.scanner.LoadSketch(project)
	if err != nil {
		res.Err = err
		if errors.Is(err, errs.ErrNoSketch) {
			log.Warn("No sketch found, skipping")
			res.Outcome = OutcomeSkippedNoSketch
		} else {
			log.Error("Could not read sketch", zap.Error(err))
			res.Outcome = OutcomeReadFailed
		}
		return res, false
	}
	res.Sketch = sketch.Path

	name, err := p.generator.Name(ctx, sketch.Code)
	if err != nil {
		res.Err = err
		if errors.Is(err, errs.ErrEmptyName) {
			log.Warn("Failed to generate a usable name, skipping", zap.Error(err))
			res.Outcome = OutcomeSkippedEmptyName
		} else {
			log.Error("Name generation failed", zap.Error(err))
			res.Outcome = OutcomeNameFailed
		}
		return res, true
	}
	res.Name = name.Text
	res.NameFallback = name.Fallback
	log = log.With(zap.String("repo", res.Name))
	log.Info("Generated project name", zap.Bool("fallback", name.Fallback))

	readme, err := p.generator.Readme(ctx, res.Name, sketch.Code)
	if err != nil {
		res.Err = err
		res.Outcome = OutcomeReadmeFailed
		log.Error("README generation failed", zap.Error(err))
		return res, true
	}
	res.ReadmeFallback = readme.Fallback

	path, err := p.write(project.Path, p.opts.ReadmeFile, readme.Text)
	if err != nil {
		res.Err = err
		res.Outcome = OutcomeReadmeFailed
		log.Error("Could not write README", zap.Error(err))
		return res, true
	}
	res.ReadmePath = path
	log.Info("README written", zap.String("path", path), zap.Bool("fallback", readme.Fallback))

	if p.opts.DryRun {
		res.Outcome = OutcomeReadmeWritten
		return res, true
	}

	cloneURL, err := p.creator.CreateRepo(ctx, res.Name, p.opts.Private)
	if err != nil {
		res.Err = err
		res.Outcome = OutcomeCreateFailed
		log.Error("Failed to create repository", zap.Error(err))
		return res, true
	}
	res.CloneURL = cloneURL

	if err := p.pusher.Push(ctx, project.Path, cloneURL); err != nil {
		res.Err = err
		res.Outcome = OutcomePushFailed
		log.Error("Git push failed", zap.Error(err))
		return res, true
	}

	res.Outcome = OutcomePublished
	log.Info("Published project", zap.String("clone_url", cloneURL))
	return res, true
}

// Preview is a generated name and README that has not been written anywhere.
type Preview struct {
	Project world.Project
	Sketch  string
	Name    string
	Readme  string

	NameFallback   bool
	ReadmeFallback bool
}

// Preview generates the name and README for one folder without side effects.
func (p *Pipeline) Preview(ctx context.Context, project world.Project) (*Preview, error) {
	sketch, err := p.scanner.LoadSketch(project)
	if err != nil {
		return nil, err
	}
	name, err := p.generator.Name(ctx, sketch.Code)
	if err != nil {
		return nil, err
	}
	readme, err := p.generator.Readme(ctx, name.Text, sketch.Code)
	if err != nil {
		return nil, err
	}
	return &Preview{
		Project:        project,
		Sketch:         sketch.Path,
		Name:           name.Text,
		Readme:         readme.Text,
		NameFallback:   name.Fallback,
		ReadmeFallback: readme.Fallback,
	}, nil
}
