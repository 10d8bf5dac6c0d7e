// Package config holds the inopush configuration: where projects live, which
// AI model writes names and READMEs, and how repositories are created and pushed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Config holds all inopush configuration.
type Config struct {
	// Root is the folder scanned for project subfolders.
	Root string `yaml:"root"`

	// Ignore lists folder names under Root that are never processed.
	Ignore []string `yaml:"ignore"`

	// SketchExt is the extension of the source file read from each project.
	SketchExt string `yaml:"sketch_ext"`

	// ReadmeFile is the name of the generated README inside each project.
	ReadmeFile string `yaml:"readme_file"`

	// Delay is slept after every processed project.
	Delay string `yaml:"delay"`

	// DryRun generates names and READMEs but never touches GitHub.
	DryRun bool `yaml:"dry_run"`

	LLM     LLMConfig     `yaml:"llm"`
	GitHub  GitHubConfig  `yaml:"github"`
	Git     GitConfig     `yaml:"git"`
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the text generation service.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`

	// ExcerptLimit caps how many characters of source are sent in a prompt.
	ExcerptLimit int `yaml:"excerpt_limit"`

	FallbackName   string `yaml:"fallback_name"`
	FallbackReadme string `yaml:"fallback_readme"`

	// PromptsDir optionally overrides the built-in prompt templates.
	PromptsDir string `yaml:"prompts_dir"`
}

// GitHubConfig configures repository creation.
type GitHubConfig struct {
	Username string `yaml:"username"`
	Token    string `yaml:"token"`
	APIURL   string `yaml:"api_url"`
	Host     string `yaml:"host"`
	Private  bool   `yaml:"private"`
	Timeout  string `yaml:"timeout"`
}

// GitConfig configures the local git client.
type GitConfig struct {
	Binary        string `yaml:"binary"`
	Remote        string `yaml:"remote"`
	Branch        string `yaml:"branch"`
	CommitMessage string `yaml:"commit_message"`
	AuthorName    string `yaml:"author_name"`
	AuthorEmail   string `yaml:"author_email"`
	Timeout       string `yaml:"timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Root:       "projects",
		Ignore:     []string{"libraries"},
		SketchExt:  ".ino",
		ReadmeFile: "README.md",
		Delay:      "2s",

		LLM: LLMConfig{
			Provider:       "gemini",
			Model:          "gemini-1.5-flash-8b",
			Timeout:        "60s",
			ExcerptLimit:   1000,
			FallbackName:   "project",
			FallbackReadme: "README generation failed.",
		},

		GitHub: GitHubConfig{
			APIURL:  "https://api.github.com/",
			Host:    "github.com",
			Private: false,
			Timeout: "30s",
		},

		Git: GitConfig{
			Binary:        "git",
			Remote:        "origin",
			Branch:        "main",
			CommitMessage: "Initial commit",
			AuthorName:    "inopush",
			AuthorEmail:   "inopush@users.noreply.github.com",
			Timeout:       "2m",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Credentials may live in this file.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}

	if user := os.Getenv("GITHUB_USERNAME"); user != "" {
		c.GitHub.Username = user
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		c.GitHub.Token = token
	}

	if root := os.Getenv("INOPUSH_ROOT"); root != "" {
		c.Root = root
	}
}

// GetDelay returns the pause between projects as a duration.
func (c *Config) GetDelay() time.Duration {
	return parseDuration(c.Delay, 2*time.Second)
}

// GetLLMTimeout returns the per-request LLM timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	return parseDuration(c.LLM.Timeout, 60*time.Second)
}

// GetGitHubTimeout returns the GitHub API timeout as a duration.
func (c *Config) GetGitHubTimeout() time.Duration {
	return parseDuration(c.GitHub.Timeout, 30*time.Second)
}

// GetGitTimeout returns the timeout of a single git command as a duration.
func (c *Config) GetGitTimeout() time.Duration {
	return parseDuration(c.Git.Timeout, 2*time.Minute)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// IgnoreSet returns the ignore list as a lookup set.
func (c *Config) IgnoreSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Ignore))
	for _, name := range c.Ignore {
		name = strings.TrimSpace(name)
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// ValidProviders lists all supported LLM providers.
var ValidProviders = []string{"gemini"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("project root not configured (set root or INOPUSH_ROOT)")
	}
	if !strings.HasPrefix(c.SketchExt, ".") {
		return fmt.Errorf("invalid sketch extension: %q (must start with '.')", c.SketchExt)
	}
	if strings.TrimSpace(c.ReadmeFile) == "" {
		return fmt.Errorf("readme file name not configured")
	}

	validProvider := false
	for _, p := range ValidProviders {
		if c.LLM.Provider == p {
			validProvider = true
			break
		}
	}
	if !validProvider {
		return fmt.Errorf("invalid LLM provider: %s (valid: %v)", c.LLM.Provider, ValidProviders)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM API key not configured (set GEMINI_API_KEY or llm.api_key)")
	}
	if strings.IndexFunc(c.LLM.FallbackName, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsNumber(r) }) < 0 {
		return fmt.Errorf("llm.fallback_name %q has no letters or digits", c.LLM.FallbackName)
	}
	if c.LLM.ExcerptLimit <= 0 {
		return fmt.Errorf("llm.excerpt_limit must be positive, got %d", c.LLM.ExcerptLimit)
	}

	for field, value := range map[string]string{
		"delay":          c.Delay,
		"llm.timeout":    c.LLM.Timeout,
		"github.timeout": c.GitHub.Timeout,
		"git.timeout":    c.Git.Timeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", field, value, err)
		}
	}

	if c.Git.Remote == "" || c.Git.Branch == "" {
		return fmt.Errorf("git remote and branch must be set")
	}

	if c.DryRun {
		return nil
	}
	if c.GitHub.Username == "" || c.GitHub.Token == "" {
		return fmt.Errorf("GitHub credentials not configured (set GITHUB_USERNAME and GITHUB_TOKEN)")
	}

	return nil
}
