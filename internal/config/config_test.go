package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.Oracle.Provider != "gemini" {
		t.Fatalf("expected default provider gemini, got %q", cfg.Oracle.Provider)
	}
	if !cfg.Gates.TranslateInput || !cfg.Gates.RelevanceGate {
		t.Fatal("expected gates enabled by default")
	}
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "threatlingo.yaml")
	raw := `
server:
  addr: ":9090"
oracle:
  provider: ollama
  ollama:
    model: llama3
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("expected addr from file, got %q", cfg.Server.Addr)
	}
	if cfg.Oracle.Provider != "ollama" {
		t.Fatalf("expected provider ollama, got %q", cfg.Oracle.Provider)
	}
	if cfg.Oracle.Ollama.Model != "llama3" {
		t.Fatalf("expected model from file, got %q", cfg.Oracle.Ollama.Model)
	}
	if cfg.Oracle.Ollama.BaseURL != "http://localhost:11434" {
		t.Fatalf("expected default ollama base url, got %q", cfg.Oracle.Ollama.BaseURL)
	}
	if cfg.Oracle.Timeout != 60*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.Oracle.Timeout)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default logging level, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
