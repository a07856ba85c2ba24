package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERPAPI_KEY", "test-key")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SERPAPI_TIMEOUT_SECONDS", "")
	t.Setenv("SERPAPI_MAX_TRIES", "")

	cfg := Load()
	if cfg.SerpAPIKey != "test-key" {
		t.Errorf("SerpAPIKey = %q", cfg.SerpAPIKey)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.SerpAPITimeout != 30*time.Second {
		t.Errorf("SerpAPITimeout = %s, want 30s", cfg.SerpAPITimeout)
	}
	if cfg.SerpAPITries != 3 {
		t.Errorf("SerpAPITries = %d, want 3", cfg.SerpAPITries)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("CORSOrigins = %v, want none", cfg.CORSOrigins)
	}
}

func TestLoadSplitsCORSOrigins(t *testing.T) {
	t.Setenv("SERPAPI_KEY", "test-key")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://app.example.com ,")

	cfg := Load()
	want := []string{"http://localhost:3000", "https://app.example.com"}
	if len(cfg.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
	for i := range want {
		if cfg.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.CORSOrigins[i], want[i])
		}
	}
}

func TestLoadPanicsWithoutAPIKey(t *testing.T) {
	t.Setenv("SERPAPI_KEY", "")

	defer func() {
		if recover() == nil {
			t.Error("Load must panic when SERPAPI_KEY is missing")
		}
	}()
	Load()
}
