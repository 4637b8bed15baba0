package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"tublisher/internal/config"
)

func TestLoadAppliesDefaultsWithoutFile(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config file")
	}
	if cfg.Paths.APIBind != "127.0.0.1:8327" {
		t.Errorf("unexpected default bind: %q", cfg.Paths.APIBind)
	}
	if got := cfg.Captions.Languages; len(got) != 2 || got[0] != "ko" || got[1] != "en" {
		t.Errorf("unexpected default caption languages: %v", got)
	}
	if cfg.DeepSeek.BaseURL != "https://api.deepseek.com" {
		t.Errorf("unexpected deepseek base url: %q", cfg.DeepSeek.BaseURL)
	}
	if cfg.Gemini.Model == "" {
		t.Error("default gemini model not set")
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tublisher.toml")
	content := `
[paths]
staging_dir = "` + filepath.Join(dir, "staging") + `"
api_bind = "0.0.0.0:9000"

[captions]
languages = ["en"]

[deepseek]
api_key = "file-key"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DEEPSEEK_API_KEY", "")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Paths.APIBind != "0.0.0.0:9000" {
		t.Errorf("api_bind = %q", cfg.Paths.APIBind)
	}
	if !filepath.IsAbs(cfg.Paths.StagingDir) {
		t.Errorf("staging dir not absolute: %q", cfg.Paths.StagingDir)
	}
	if cfg.DeepSeek.APIKey != "file-key" {
		t.Errorf("deepseek api key = %q", cfg.DeepSeek.APIKey)
	}
}

func TestEnvironmentOverridesCredentials(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "env-deepseek")
	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("TUBLISHER_FFMPEG_LOCATION", "/opt/ffmpeg/bin/ffmpeg")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DeepSeek.APIKey != "env-deepseek" {
		t.Errorf("deepseek key = %q", cfg.DeepSeek.APIKey)
	}
	if cfg.Gemini.APIKey != "env-gemini" {
		t.Errorf("gemini key = %q", cfg.Gemini.APIKey)
	}
	if cfg.Audio.FFmpegLocation != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("ffmpeg location = %q", cfg.Audio.FFmpegLocation)
	}
}

func TestValidateRejectsBadLogging(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tublisher.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(dir, "staging")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, p := range []string{cfg.Paths.StagingDir, cfg.Paths.LogDir} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %q not created", p)
		}
	}
}
