package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inopush/internal/config"
	"inopush/internal/errs"
	"inopush/internal/publish"
	"inopush/internal/world"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	origErr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		_, _ = io.Copy(&buf, rErr)
		done <- buf.String()
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = origOut
	os.Stderr = origErr
	return <-done
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestApplyFlagOverrides(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().StringVarP(&rootDir, "root", "r", "", "")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "")
	cmd.Flags().DurationVar(&delay, "delay", 0, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--root", "/tmp/sketches", "--delay", "5s"}))

	c := config.DefaultConfig()
	c.DryRun = true
	applyFlagOverrides(cmd, c)

	assert.Equal(t, "/tmp/sketches", c.Root)
	assert.Equal(t, 5*time.Second, c.GetDelay())
	// Unset flags leave the config alone.
	assert.True(t, c.DryRun)
}

func TestRunConfigInit(t *testing.T) {
	logger = zap.NewNop()
	configPath = filepath.Join(t.TempDir(), "inopush.yaml")

	output := captureOutput(t, func() {
		if err := runConfigInit(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runConfigInit returned error: %v", err)
		}
	})
	assert.Contains(t, output, "Wrote default configuration")

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GITHUB_USERNAME", "")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("INOPUSH_ROOT", "")
	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	if diff := cmp.Diff(config.DefaultConfig(), loaded); diff != "" {
		t.Fatalf("written config differs from defaults (-want +got):\n%s", diff)
	}

	err = runConfigInit(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRunConfigShowMasksSecrets(t *testing.T) {
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.LLM.APIKey = "gem-secret"
	cfg.GitHub.Token = "ghp_secret"
	cfg.GitHub.Username = "octo"

	output := captureOutput(t, func() {
		if err := runConfigShow(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runConfigShow returned error: %v", err)
		}
	})

	assert.NotContains(t, output, "gem-secret")
	assert.NotContains(t, output, "ghp_secret")
	assert.Contains(t, output, "octo")
	assert.Contains(t, output, "***")
	// The live config is untouched.
	assert.Equal(t, "ghp_secret", cfg.GitHub.Token)
}

func TestRunScan(t *testing.T) {
	logger = zap.NewNop()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "blink", "blink.ino"), "void setup() {}")
	writeFile(t, filepath.Join(root, "notes", "todo.txt"), "nothing here")
	writeFile(t, filepath.Join(root, "libraries", "Servo", "Servo.ino"), "")
	writeFile(t, filepath.Join(root, "stray.ino"), "")

	cfg = config.DefaultConfig()
	cfg.Root = root

	output := captureOutput(t, func() {
		if err := runScan(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runScan returned error: %v", err)
		}
	})

	assert.Contains(t, output, "blink")
	assert.Contains(t, output, "notes")
	assert.Contains(t, output, "will be skipped")
	assert.NotContains(t, output, "libraries")
	assert.NotContains(t, output, "stray")
	assert.Contains(t, output, "1 of 2 folders ready to publish")
}

func TestRunScanEmptyRoot(t *testing.T) {
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.Root = t.TempDir()

	output := captureOutput(t, func() {
		if err := runScan(&cobra.Command{}, nil); err != nil {
			t.Fatalf("runScan returned error: %v", err)
		}
	})

	if !strings.Contains(output, "No project folders") {
		t.Fatalf("expected empty-root notice, got: %s", output)
	}
}

func TestRunPublishRequiresCredentials(t *testing.T) {
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.Root = t.TempDir()
	cfg.LLM.APIKey = "key"

	err := runPublish(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GitHub credentials")
}

func TestRunErrorInterrupted(t *testing.T) {
	err := runError(context.Canceled, zap.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Contains(t, err.Error(), "interrupted")

	assert.NoError(t, runError(nil, zap.NewNop()))

	other := errors.New("failed to list project root")
	assert.Equal(t, other, runError(other, zap.NewNop()))
}

func TestRenderReport(t *testing.T) {
	report := &publish.Report{
		RunID: "run-1",
		Results: []publish.ProjectResult{
			{
				Project:  world.Project{Name: "blink"},
				Name:     "esp32-blink",
				CloneURL: "https://github.com/octo/esp32-blink.git",
				Outcome:  publish.OutcomePublished,
			},
			{
				Project: world.Project{Name: "notes"},
				Outcome: publish.OutcomeSkippedNoSketch,
				Err:     errs.ErrNoSketch,
			},
			{
				Project: world.Project{Name: "weather"},
				Name:    "weather-station",
				Outcome: publish.OutcomeCreateFailed,
				Err:     errors.New("status 422: name already exists on this account"),
			},
		},
	}

	out := renderReport(report)

	assert.Contains(t, out, "Publish summary")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "https://github.com/octo/esp32-blink.git")
	assert.Contains(t, out, "name already exists")
	assert.Contains(t, out, "published: 1")
	assert.Contains(t, out, "skipped_no_sketch: 1")
	assert.Contains(t, out, "create_failed: 1")
	assert.NotContains(t, out, "push_failed")
}

func TestRenderReportDryRun(t *testing.T) {
	out := renderReport(&publish.Report{DryRun: true})
	assert.Contains(t, out, "(dry run)")
}
