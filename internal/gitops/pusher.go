// Package gitops turns a project folder into a git repository and
// force-pushes it to its freshly created remote.
package gitops

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"inopush/internal/errs"
	"inopush/internal/logging"
	"inopush/internal/tactile"
)

// Config configures a Pusher.
type Config struct {
	Binary        string
	Remote        string
	Branch        string
	CommitMessage string
	AuthorName    string
	AuthorEmail   string

	// Username and Token are embedded into https remote URLs.
	Username string
	Token    string

	Timeout time.Duration
}

// Pusher runs the git steps of a publish.
type Pusher struct {
	exec   tactile.Executor
	cfg    Config
	logger *zap.Logger
}

// NewPusher creates a Pusher that runs git through exec.
func NewPusher(exec tactile.Executor, cfg Config, logger *zap.Logger) *Pusher {
	if cfg.Binary == "" {
		cfg.Binary = "git"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pusher{exec: exec, cfg: cfg, logger: logger}
}

// Push initializes dir as a repository, points the remote at cloneURL with
// credentials embedded, commits everything and force-pushes HEAD to the
// configured branch. Every failure wraps errs.ErrPush.
func (p *Pusher) Push(ctx context.Context, dir, cloneURL string) error {
	authURL, err := AuthURL(cloneURL, p.cfg.Username, p.cfg.Token)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrPush, err)
	}

	if _, err := p.git(ctx, dir, "init"); err != nil {
		return err
	}

	exists, err := p.hasRemote(ctx, dir)
	if err != nil {
		return err
	}
	if exists {
		_, err = p.git(ctx, dir, "remote", "set-url", p.cfg.Remote, authURL)
	} else {
		_, err = p.git(ctx, dir, "remote", "add", p.cfg.Remote, authURL)
	}
	if err != nil {
		return err
	}

	if _, err := p.git(ctx, dir, "add", "-A"); err != nil {
		return err
	}

	commit := []string{
		"-c", "user.name=" + p.cfg.AuthorName,
		"-c", "user.email=" + p.cfg.AuthorEmail,
		"commit", "--allow-empty", "-m", p.cfg.CommitMessage,
	}
	if _, err := p.git(ctx, dir, commit...); err != nil {
		return err
	}

	if _, err := p.git(ctx, dir, "push", "--force", p.cfg.Remote, "HEAD:"+p.cfg.Branch); err != nil {
		return err
	}

	p.logger.Info("Pushed project",
		zap.String("dir", dir),
		zap.String("remote", p.redact(authURL)),
		zap.String("branch", p.cfg.Branch))
	return nil
}

func (p *Pusher) hasRemote(ctx context.Context, dir string) (bool, error) {
	out, err := p.git(ctx, dir, "remote")
	if err != nil {
		return false, err
	}
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == p.cfg.Remote {
			return true, nil
		}
	}
	return false, nil
}

// git runs one git command in dir and returns its stdout.
// Token values never appear in returned errors.
func (p *Pusher) git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := tactile.Command{
		Binary:           p.cfg.Binary,
		Arguments:        args,
		WorkingDirectory: dir,
		Environment:      []string{"GIT_TERMINAL_PROMPT=0"},
		Timeout:          p.cfg.Timeout,
	}

	res, err := p.exec.Execute(ctx, cmd)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrPush, p.redact(err.Error()))
	}
	if !res.Succeeded() {
		cmdErr := &errs.CommandError{
			Binary:   p.cfg.Binary,
			Args:     p.redactArgs(args),
			ExitCode: res.ExitCode,
			Output:   p.redact(res.Combined),
		}
		if res.Killed {
			cmdErr.Output = strings.TrimSpace(cmdErr.Output + " " + res.KillReason)
		}
		return "", fmt.Errorf("%w: %w", errs.ErrPush, cmdErr)
	}
	return res.Stdout, nil
}

func (p *Pusher) redactArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = p.redact(a)
	}
	return out
}

// redact masks the token both raw and in its URL-escaped form.
func (p *Pusher) redact(s string) string {
	return logging.Redact(s, p.cfg.Token, url.PathEscape(p.cfg.Token))
}

// AuthURL embeds username and token into an http(s) clone URL. Other URL
// forms (local paths, ssh) are returned unchanged.
func AuthURL(cloneURL, username, token string) (string, error) {
	lower := strings.ToLower(cloneURL)
	if !strings.HasPrefix(lower, "https://") && !strings.HasPrefix(lower, "http://") {
		return cloneURL, nil
	}
	if username == "" && token == "" {
		return cloneURL, nil
	}
	u, err := url.Parse(cloneURL)
	if err != nil {
		return "", fmt.Errorf("invalid clone URL: %w", err)
	}
	u.User = url.UserPassword(username, token)
	return u.String(), nil
}
