// Package github creates repositories through the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"go.uber.org/zap"

	"inopush/internal/errs"
)

// Config holds what the client needs to create repositories.
type Config struct {
	Username string
	Token    string
	APIURL   string // REST base URL, e.g. https://api.github.com/
	Host     string // host used in clone URLs, e.g. github.com
	Timeout  time.Duration
}

// Client creates repositories for the authenticated user.
type Client struct {
	api      *gh.Client
	username string
	host     string
	logger   *zap.Logger
}

// NewClient creates a client authenticated with basic auth.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.Username == "" || cfg.Token == "" {
		return nil, fmt.Errorf("GitHub username and token are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := &gh.BasicAuthTransport{Username: cfg.Username, Password: cfg.Token}
	httpClient := transport.Client()
	httpClient.Timeout = cfg.Timeout

	api := gh.NewClient(httpClient)
	if cfg.APIURL != "" {
		base := cfg.APIURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.APIURL, err)
		}
		api.BaseURL = u
	}

	host := cfg.Host
	if host == "" {
		host = "github.com"
	}

	return &Client{api: api, username: cfg.Username, host: host, logger: logger}, nil
}

// CreateRepo creates a repository named name and returns its clone URL.
// Only a 201 Created response counts as success; anything else wraps
// errs.ErrRepoCreate with the API's message.
func (c *Client) CreateRepo(ctx context.Context, name string, private bool) (string, error) {
	repo, resp, err := c.api.Repositories.Create(ctx, "", &gh.Repository{
		Name:    gh.String(name),
		Private: gh.Bool(private),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %s", errs.ErrRepoCreate, name, describe(err))
	}
	if resp == nil || resp.StatusCode != http.StatusCreated {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return "", fmt.Errorf("%w: %s: unexpected status %d", errs.ErrRepoCreate, name, status)
	}

	cloneURL := c.CloneURL(name)
	c.logger.Info("Created GitHub repository",
		zap.String("repo", name),
		zap.Bool("private", private),
		zap.String("html_url", repo.GetHTMLURL()))
	return cloneURL, nil
}

// CloneURL builds the HTTPS clone URL of one of the user's repositories.
func (c *Client) CloneURL(name string) string {
	return fmt.Sprintf("https://%s/%s/%s.git", c.host, c.username, name)
}

// describe flattens a go-github error into one line, preferring the API's
// own message and field errors.
func describe(err error) string {
	var ger *gh.ErrorResponse
	if !errors.As(err, &ger) {
		return err.Error()
	}
	parts := []string{ger.Message}
	for _, e := range ger.Errors {
		if e.Message != "" {
			parts = append(parts, e.Message)
		} else if e.Code != "" {
			parts = append(parts, fmt.Sprintf("%s %s", e.Field, e.Code))
		}
	}
	status := 0
	if ger.Response != nil {
		status = ger.Response.StatusCode
	}
	return fmt.Sprintf("status %d: %s", status, strings.Join(parts, "; "))
}
