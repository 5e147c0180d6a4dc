package config

import (
	"os"
	"testing"
)

var allEnvKeys = []string{
	"PORT",
	"GEN_PROVIDER",
	"GEN_MODEL",
	"GEMINI_API_KEY",
	"GCP_SERVICE_ACCOUNT_JSON",
	"GCP_LOCATION",
	"GEN_MAX_TOKENS",
	"GEN_TEMPERATURE",
	"GEN_TOP_P",
	"SEARCH_API_KEY",
	"SEARCH_ENGINE_ID",
	"SEARCH_MAX_RESULTS",
	"SEARCH_ALWAYS",
	"OPENWEATHER_API_KEY",
	"TTS_API_KEY",
	"DEFAULT_CITY",
	"LOCATION_LABEL",
	"ENRICH_TIMEOUT_SECONDS",
}

func unsetAllEnv(keys []string) {
	for _, key := range keys {
		_ = os.Unsetenv(key)
	}
}

func TestLoad_AllDefaults(t *testing.T) {
	unsetAllEnv(allEnvKeys)

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.GenProvider != "gemini" {
		t.Fatalf("GenProvider = %q, want %q", cfg.GenProvider, "gemini")
	}
	if cfg.GenModel != "gemini-2.0-flash" {
		t.Fatalf("GenModel = %q, want %q", cfg.GenModel, "gemini-2.0-flash")
	}
	if cfg.GCPLocation != "us-central1" {
		t.Fatalf("GCPLocation = %q, want %q", cfg.GCPLocation, "us-central1")
	}
	if cfg.GenMaxOutputTokens != 1024 {
		t.Fatalf("GenMaxOutputTokens = %d, want 1024", cfg.GenMaxOutputTokens)
	}
	if cfg.GenTemperature != 0.7 {
		t.Fatalf("GenTemperature = %v, want 0.7", cfg.GenTemperature)
	}
	if cfg.GenTopP != 0.95 {
		t.Fatalf("GenTopP = %v, want 0.95", cfg.GenTopP)
	}
	if cfg.SearchMaxResults != 8 {
		t.Fatalf("SearchMaxResults = %d, want 8", cfg.SearchMaxResults)
	}
	if cfg.SearchAlways {
		t.Fatal("SearchAlways = true, want false")
	}
	if cfg.DefaultCity != "erfurt" {
		t.Fatalf("DefaultCity = %q, want %q", cfg.DefaultCity, "erfurt")
	}
	if cfg.LocationLabel != "Türkiye/Almanya" {
		t.Fatalf("LocationLabel = %q, want %q", cfg.LocationLabel, "Türkiye/Almanya")
	}
	if cfg.EnrichTimeoutSeconds != 10 {
		t.Fatalf("EnrichTimeoutSeconds = %d, want 10", cfg.EnrichTimeoutSeconds)
	}
}

func TestLoad_Overrides(t *testing.T) {
	unsetAllEnv(allEnvKeys)
	t.Setenv("PORT", "9090")
	t.Setenv("GEN_PROVIDER", "vertex")
	t.Setenv("GEN_MAX_TOKENS", "256")
	t.Setenv("GEN_TEMPERATURE", "0.2")
	t.Setenv("SEARCH_ALWAYS", "true")
	t.Setenv("SEARCH_MAX_RESULTS", "4")
	t.Setenv("DEFAULT_CITY", "istanbul")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.GenProvider != "vertex" {
		t.Fatalf("GenProvider = %q, want %q", cfg.GenProvider, "vertex")
	}
	if cfg.GenMaxOutputTokens != 256 {
		t.Fatalf("GenMaxOutputTokens = %d, want 256", cfg.GenMaxOutputTokens)
	}
	if cfg.GenTemperature != 0.2 {
		t.Fatalf("GenTemperature = %v, want 0.2", cfg.GenTemperature)
	}
	if !cfg.SearchAlways {
		t.Fatal("SearchAlways = false, want true")
	}
	if cfg.SearchMaxResults != 4 {
		t.Fatalf("SearchMaxResults = %d, want 4", cfg.SearchMaxResults)
	}
	if cfg.DefaultCity != "istanbul" {
		t.Fatalf("DefaultCity = %q, want %q", cfg.DefaultCity, "istanbul")
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	unsetAllEnv(allEnvKeys)
	t.Setenv("GEN_MAX_TOKENS", "not-a-number")
	t.Setenv("GEN_TOP_P", "lots")
	t.Setenv("SEARCH_ALWAYS", "maybe")

	cfg := Load()

	if cfg.GenMaxOutputTokens != 1024 {
		t.Fatalf("GenMaxOutputTokens = %d, want fallback 1024", cfg.GenMaxOutputTokens)
	}
	if cfg.GenTopP != 0.95 {
		t.Fatalf("GenTopP = %v, want fallback 0.95", cfg.GenTopP)
	}
	if cfg.SearchAlways {
		t.Fatal("SearchAlways = true, want fallback false")
	}
}
