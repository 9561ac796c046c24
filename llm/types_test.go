package llm

import (
	"testing"
	"time"
)

func TestStreamFormat_Values(t *testing.T) {
	if StreamNDJSON != 0 {
		t.Errorf("StreamNDJSON = %d, want 0", StreamNDJSON)
	}
	if StreamSSE != 1 {
		t.Errorf("StreamSSE = %d, want 1", StreamSSE)
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Dialect: "ollama"}
	cfg.ApplyDefaults()

	if cfg.Timeout != 120*time.Second {
		t.Errorf("Timeout = %v, want 120s", cfg.Timeout)
	}
	if cfg.Name != "ollama" {
		t.Errorf("Name = %q, want %q", cfg.Name, "ollama")
	}
}

func TestConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{Name: "poem-model", Dialect: "ollama", Timeout: time.Minute}
	cfg.ApplyDefaults()

	if cfg.Name != "poem-model" {
		t.Errorf("Name = %q, want %q (should be preserved)", cfg.Name, "poem-model")
	}
	if cfg.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want 1m (should be preserved)", cfg.Timeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Dialect: "gemini", Model: "gemini-2.5-flash", BaseURL: "https://example.com"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := Config{Model: "m"}
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing dialect")
	}
}
