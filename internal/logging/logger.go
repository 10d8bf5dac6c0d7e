// Package logging builds the zap loggers used across inopush.
// Each pipeline stage logs under its own category so a run can be filtered
// by stage, and every run is tagged with a run_id.
package logging

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"inopush/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config loading
	CategoryScan    Category = "scan"    // Project folder discovery
	CategoryLLM     Category = "llm"     // Text generation calls
	CategoryGitHub  Category = "github"  // Repository creation
	CategoryGit     Category = "git"     // Local git operations
	CategoryPublish Category = "publish" // Per-project orchestration
)

// New builds the root logger from the logging config.
// verbose forces the debug level regardless of cfg.Level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	var zc zap.Config
	switch strings.ToLower(cfg.Format) {
	case "json":
		zc = zap.NewProductionConfig()
	case "", "console", "text":
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format: %s", cfg.Format)
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	zc.OutputPaths = []string{"stderr"}
	if cfg.File != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// WithRun tags logger with a fresh run ID and returns both.
func WithRun(logger *zap.Logger) (*zap.Logger, string) {
	id := uuid.New().String()
	return logger.With(zap.String("run_id", id)), id
}

// For returns the child logger for a category.
func For(logger *zap.Logger, category Category) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(string(category))
}

const redacted = "***"

// Redact masks every non-empty secret in s.
func Redact(s string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, redacted)
	}
	return s
}
