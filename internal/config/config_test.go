package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "ollama" {
		t.Errorf("default provider = %q", cfg.LLM.Provider)
	}
	if cfg.LLM.OllamaHost != "http://localhost:11434" {
		t.Errorf("default ollama host = %q", cfg.LLM.OllamaHost)
	}
	if cfg.LLM.MaxTokens != 2048 {
		t.Errorf("default max tokens = %d", cfg.LLM.MaxTokens)
	}
	if cfg.Render.MediaRoot != "./media" || cfg.Render.WorkRoot != "./workdir" {
		t.Errorf("default roots = %q, %q", cfg.Render.MediaRoot, cfg.Render.WorkRoot)
	}
	if cfg.Render.Timeout != 0 {
		t.Errorf("default render timeout = %v, want none", cfg.Render.Timeout)
	}
	if len(cfg.LLM.AvailableModels) == 0 {
		t.Error("default model list is empty")
	}
	if cfg.LLM.SystemPrompt == "" {
		t.Error("default system prompt is empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
llm:
  provider: http
  http_endpoint: http://localhost:9000/generate
  timeout: 45s
render:
  media_root: /srv/media
  timeout: 5m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.LLM.Provider != "http" {
		t.Errorf("provider = %q", cfg.LLM.Provider)
	}
	if cfg.LLM.HTTPEndpoint != "http://localhost:9000/generate" {
		t.Errorf("endpoint = %q", cfg.LLM.HTTPEndpoint)
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.Render.MediaRoot != "/srv/media" {
		t.Errorf("media root = %q", cfg.Render.MediaRoot)
	}
	if cfg.Render.Timeout != 5*time.Minute {
		t.Errorf("render timeout = %v", cfg.Render.Timeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("LLM_MODEL_PATH", "/models/test.gguf")
	t.Setenv("LLM_HTTP_ENDPOINT", "http://delegate:9000")

	path := writeConfig(t, "server:\n  port: 8000\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.LLM.ModelPath != "/models/test.gguf" {
		t.Errorf("model path fallback = %q", cfg.LLM.ModelPath)
	}
	if cfg.LLM.HTTPEndpoint != "http://delegate:9000" {
		t.Errorf("endpoint fallback = %q", cfg.LLM.HTTPEndpoint)
	}
}
