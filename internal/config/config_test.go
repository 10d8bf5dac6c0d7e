package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "GITHUB_USERNAME", "GITHUB_TOKEN", "INOPUSH_ROOT"} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Root != "projects" {
		t.Errorf("expected Root=projects, got %s", cfg.Root)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "libraries" {
		t.Errorf("expected Ignore=[libraries], got %v", cfg.Ignore)
	}
	if cfg.LLM.ExcerptLimit != 1000 {
		t.Errorf("expected ExcerptLimit=1000, got %d", cfg.LLM.ExcerptLimit)
	}
	if cfg.Git.Branch != "main" {
		t.Errorf("expected Branch=main, got %s", cfg.Git.Branch)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "inopush.yaml")

	cfg := DefaultConfig()
	cfg.Root = "sketches"
	cfg.GitHub.Private = true
	cfg.LLM.APIKey = "gem-test"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Root != "sketches" {
		t.Errorf("expected Root=sketches, got %s", loaded.Root)
	}
	if !loaded.GitHub.Private {
		t.Error("expected Private=true")
	}
	if loaded.LLM.APIKey != "gem-test" {
		t.Errorf("expected APIKey=gem-test, got %s", loaded.LLM.APIKey)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Root != "projects" {
		t.Errorf("expected default root, got %s", cfg.Root)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("root: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	clearEnv(t)

	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing API key")
	}

	cfg.LLM.APIKey = "key"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for missing GitHub credentials")
	}

	cfg.DryRun = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("dry run should not need GitHub credentials: %v", err)
	}

	cfg.DryRun = false
	cfg.GitHub.Username = "maker"
	cfg.GitHub.Token = "ghp_x"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}

	cfg.LLM.Provider = "invalid-provider"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid provider")
	}
	cfg.LLM.Provider = "gemini"

	cfg.Delay = "soon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for bad delay")
	}
	cfg.Delay = "2s"

	cfg.SketchExt = "ino"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for extension without dot")
	}
	cfg.SketchExt = ".ino"

	cfg.LLM.FallbackName = "!!!"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for fallback name without letters or digits")
	}
}

func TestConfig_Helpers(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GetDelay() != 2*time.Second {
		t.Errorf("GetDelay=%v, want 2s", cfg.GetDelay())
	}
	cfg.Delay = "garbage"
	if cfg.GetDelay() != 2*time.Second {
		t.Errorf("GetDelay should fall back on garbage, got %v", cfg.GetDelay())
	}
	cfg.Delay = "0s"
	if cfg.GetDelay() != 0 {
		t.Errorf("GetDelay=%v, want 0", cfg.GetDelay())
	}
	if cfg.GetLLMTimeout() == 0 || cfg.GetGitHubTimeout() == 0 || cfg.GetGitTimeout() == 0 {
		t.Error("timeouts should be non-zero")
	}

	cfg.Ignore = []string{"libraries", " ", " build "}
	set := cfg.IgnoreSet()
	if _, ok := set["build"]; !ok {
		t.Error("IgnoreSet should trim names")
	}
	if len(set) != 2 {
		t.Errorf("IgnoreSet size=%d, want 2", len(set))
	}
}
