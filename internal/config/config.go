package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	MaxUploadMB           int     `yaml:"max_upload_mb"`
	APIRateLimitRPS       float64 `yaml:"api_rate_limit_rps"`
	APIRateLimitBurst     int     `yaml:"api_rate_limit_burst"`
	APIMaxInFlight        int     `yaml:"api_max_inflight"`
	APIBackpressureWaitMS int     `yaml:"api_backpressure_wait_ms"`

	OCRLanguages            string  `yaml:"ocr_languages"`
	OCRPageSegMode          int     `yaml:"ocr_page_seg_mode"`
	OCRFallbackMinChars     int     `yaml:"ocr_fallback_min_chars"`
	OCRBreakerEnabled       bool    `yaml:"ocr_breaker_enabled"`
	OCRBreakerMinRequests   int     `yaml:"ocr_breaker_min_requests"`
	OCRBreakerFailureRatio  float64 `yaml:"ocr_breaker_failure_ratio"`
	OCRBreakerOpenTimeoutMS int     `yaml:"ocr_breaker_open_timeout_ms"`

	SummaryShortFraction   float64 `yaml:"summary_short_fraction"`
	SummaryMediumFraction  float64 `yaml:"summary_medium_fraction"`
	SummaryLongFraction    float64 `yaml:"summary_long_fraction"`
	SummaryHighlightCount  int     `yaml:"summary_highlight_count"`
	SummaryHighlightMinLen int     `yaml:"summary_highlight_min_len"`
}

func Defaults() Config {
	return Config{
		APIPort:  "5000",
		LogLevel: "info",

		MaxUploadMB:           32,
		APIRateLimitRPS:       0,
		APIRateLimitBurst:     1,
		APIMaxInFlight:        4,
		APIBackpressureWaitMS: 250,

		OCRLanguages:            "eng",
		OCRPageSegMode:          3,
		OCRFallbackMinChars:     50,
		OCRBreakerEnabled:       true,
		OCRBreakerMinRequests:   5,
		OCRBreakerFailureRatio:  0.8,
		OCRBreakerOpenTimeoutMS: 30000,

		SummaryShortFraction:   0.15,
		SummaryMediumFraction:  0.25,
		SummaryLongFraction:    0.40,
		SummaryHighlightCount:  8,
		SummaryHighlightMinLen: 3,
	}
}

// Load starts from Defaults, applies the YAML file named by CONFIG_FILE when
// set, then environment variables.
func Load() (Config, error) {
	cfg := Defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.APIPort = mustEnv("API_PORT", mustEnv("PORT", c.APIPort))
	c.LogLevel = mustEnv("LOG_LEVEL", c.LogLevel)

	c.MaxUploadMB = mustEnvInt("MAX_UPLOAD_MB", c.MaxUploadMB)
	c.APIRateLimitRPS = mustEnvFloat("API_RATE_LIMIT_RPS", c.APIRateLimitRPS)
	c.APIRateLimitBurst = mustEnvInt("API_RATE_LIMIT_BURST", c.APIRateLimitBurst)
	c.APIMaxInFlight = mustEnvInt("API_MAX_INFLIGHT", c.APIMaxInFlight)
	c.APIBackpressureWaitMS = mustEnvInt("API_BACKPRESSURE_WAIT_MS", c.APIBackpressureWaitMS)

	c.OCRLanguages = mustEnv("OCR_LANGUAGES", c.OCRLanguages)
	c.OCRPageSegMode = mustEnvInt("OCR_PAGE_SEG_MODE", c.OCRPageSegMode)
	c.OCRFallbackMinChars = mustEnvInt("OCR_FALLBACK_MIN_CHARS", c.OCRFallbackMinChars)
	c.OCRBreakerEnabled = mustEnvBool("OCR_BREAKER_ENABLED", c.OCRBreakerEnabled)
	c.OCRBreakerMinRequests = mustEnvInt("OCR_BREAKER_MIN_REQUESTS", c.OCRBreakerMinRequests)
	c.OCRBreakerFailureRatio = mustEnvFloat("OCR_BREAKER_FAILURE_RATIO", c.OCRBreakerFailureRatio)
	c.OCRBreakerOpenTimeoutMS = mustEnvInt("OCR_BREAKER_OPEN_TIMEOUT_MS", c.OCRBreakerOpenTimeoutMS)

	c.SummaryShortFraction = mustEnvFloat("SUMMARY_SHORT_FRACTION", c.SummaryShortFraction)
	c.SummaryMediumFraction = mustEnvFloat("SUMMARY_MEDIUM_FRACTION", c.SummaryMediumFraction)
	c.SummaryLongFraction = mustEnvFloat("SUMMARY_LONG_FRACTION", c.SummaryLongFraction)
	c.SummaryHighlightCount = mustEnvInt("SUMMARY_HIGHLIGHT_COUNT", c.SummaryHighlightCount)
	c.SummaryHighlightMinLen = mustEnvInt("SUMMARY_HIGHLIGHT_MIN_LEN", c.SummaryHighlightMinLen)
}

func (c Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 32 << 20
	}
	return int64(c.MaxUploadMB) << 20
}

func (c Config) BackpressureWait() time.Duration {
	return time.Duration(c.APIBackpressureWaitMS) * time.Millisecond
}

func (c Config) OCRBreakerOpenTimeout() time.Duration {
	return time.Duration(c.OCRBreakerOpenTimeoutMS) * time.Millisecond
}

// Languages splits OCRLanguages on commas and plus signs.
func (c Config) Languages() []string {
	fields := strings.FieldsFunc(c.OCRLanguages, func(r rune) bool {
		return r == ',' || r == '+' || r == ' '
	})
	if len(fields) == 0 {
		return []string{"eng"}
	}
	return fields
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
