package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
// Provider API keys are intentionally absent: they are read per provider by the
// registry at resolution time, so that an unset key simply disables a provider.
type Config struct {
	AppEnv           string
	Port             string
	OutputRoot       string
	DefaultProvider  string
	DefaultLocale    string
	AllowedOrigins   []string
	GeminiBaseURL    string
	GeminiModel      string
	GrokBaseURL      string
	GrokModel        string
	OpenAIBaseURL    string
	OpenAIModel      string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

var knownProviders = map[string]bool{
	"gemini": true,
	"grok":   true,
	"openai": true,
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		OutputRoot:       getEnv("OUTPUT_ROOT", filepath.Join(os.TempDir(), "event-posters")),
		DefaultProvider:  getEnv("DEFAULT_PROVIDER", "gemini"),
		DefaultLocale:    getEnv("DEFAULT_LOCALE", "zh-TW"),
		AllowedOrigins:   splitList(os.Getenv("ALLOWED_ORIGINS")),
		GeminiBaseURL:    os.Getenv("GEMINI_BASE_URL"),
		GeminiModel:      os.Getenv("GEMINI_MODEL"),
		GrokBaseURL:      os.Getenv("GROK_BASE_URL"),
		GrokModel:        os.Getenv("GROK_MODEL"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 300)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if !knownProviders[cfg.DefaultProvider] {
		return nil, fmt.Errorf("DEFAULT_PROVIDER %q is not a known provider", cfg.DefaultProvider)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
