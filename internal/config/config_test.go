package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "API_PORT", "PORT", "LOG_LEVEL", "MAX_UPLOAD_MB",
		"API_RATE_LIMIT_RPS", "API_MAX_INFLIGHT", "OCR_LANGUAGES",
		"OCR_FALLBACK_MIN_CHARS", "OCR_BREAKER_ENABLED", "SUMMARY_HIGHLIGHT_COUNT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIPort != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.APIPort)
	}
	if cfg.OCRFallbackMinChars != 50 {
		t.Fatalf("expected fallback threshold 50, got %d", cfg.OCRFallbackMinChars)
	}
	if cfg.SummaryHighlightCount != 8 || cfg.SummaryHighlightMinLen != 3 {
		t.Fatalf("unexpected highlight defaults %d/%d", cfg.SummaryHighlightCount, cfg.SummaryHighlightMinLen)
	}
	if !cfg.OCRBreakerEnabled {
		t.Fatalf("expected OCR breaker enabled by default")
	}
	if cfg.MaxUploadBytes() != 32<<20 {
		t.Fatalf("unexpected upload limit %d", cfg.MaxUploadBytes())
	}
}

func TestLoadParsesEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("OCR_LANGUAGES", "eng+deu")
	t.Setenv("OCR_FALLBACK_MIN_CHARS", "80")
	t.Setenv("OCR_BREAKER_ENABLED", "false")
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")
	t.Setenv("API_MAX_INFLIGHT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIPort != "7000" {
		t.Fatalf("expected PORT fallback, got %q", cfg.APIPort)
	}
	if got := cfg.Languages(); len(got) != 2 || got[0] != "eng" || got[1] != "deu" {
		t.Fatalf("unexpected languages %v", got)
	}
	if cfg.OCRFallbackMinChars != 80 {
		t.Fatalf("expected threshold override, got %d", cfg.OCRFallbackMinChars)
	}
	if cfg.OCRBreakerEnabled {
		t.Fatalf("expected breaker disabled")
	}
	if cfg.APIRateLimitRPS != 2.5 {
		t.Fatalf("expected rps 2.5, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.APIMaxInFlight != 4 {
		t.Fatalf("invalid int must keep default, got %d", cfg.APIMaxInFlight)
	}

	t.Setenv("API_PORT", "9000")
	cfg, _ = Load()
	if cfg.APIPort != "9000" {
		t.Fatalf("API_PORT must win over PORT, got %q", cfg.APIPort)
	}
}

func TestLoadMergesConfigFileBeforeEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "docsumm.yaml")
	body := []byte("api_port: \"6000\"\nlog_level: debug\nsummary_highlight_count: 5\nocr_breaker_open_timeout_ms: 1500\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIPort != "6000" {
		t.Fatalf("expected file port, got %q", cfg.APIPort)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("env must override file, got %q", cfg.LogLevel)
	}
	if cfg.SummaryHighlightCount != 5 {
		t.Fatalf("expected file highlight count, got %d", cfg.SummaryHighlightCount)
	}
	if cfg.OCRBreakerOpenTimeout() != 1500*time.Millisecond {
		t.Fatalf("unexpected breaker timeout %v", cfg.OCRBreakerOpenTimeout())
	}
	if cfg.SummaryLongFraction != 0.40 {
		t.Fatalf("unset file keys must keep defaults, got %v", cfg.SummaryLongFraction)
	}
}

func TestLoadFailsOnBrokenConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("api_port: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected read error")
	}
}
