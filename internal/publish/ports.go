package publish

import (
	"context"
	"time"

	"inopush/internal/generate"
	"inopush/internal/world"
)

// Scanner finds project folders and their sketches.
type Scanner interface {
	ListProjects(root string) ([]world.Project, error)
	LoadSketch(p world.Project) (*world.Sketch, error)
}

// Generator writes names and READMEs.
type Generator interface {
	Name(ctx context.Context, code string) (generate.Result, error)
	Readme(ctx context.Context, name, code string) (generate.Result, error)
}

// RepoCreator creates a hosted repository and returns its clone URL.
type RepoCreator interface {
	CreateRepo(ctx context.Context, name string, private bool) (string, error)
}

// Pusher publishes a local folder to a clone URL.
type Pusher interface {
	Push(ctx context.Context, dir, cloneURL string) error
}

// ReadmeWriter persists README text into a project folder.
type ReadmeWriter func(dir, file, text string) (string, error)

// Sleeper pauses between projects. It returns early with ctx.Err() when
// ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// ContextSleep is the default Sleeper.
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
