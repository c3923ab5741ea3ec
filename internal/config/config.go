package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	defaultPort      = "8080"
	defaultBodyLimit = "50M"
	// APIKeyEnv names the variable holding the model credential. It is read
	// per request, never stored in Config.
	APIKeyEnv = "API_KEY"
)

// Classifier backends
const (
	ClassifierGemini = "gemini"
	ClassifierMock   = "mock"
)

// Config holds server configuration loaded from the environment
type Config struct {
	Port           string
	Environment    string
	Classifier     string
	Model          string
	ThinkingBudget int32
	GeminiBaseURL  string
	BodyLimit      string
	ServeUI        bool
	StaticDir      string
}

// Load reads an optional .env file and then the process environment
func Load() (Config, error) {
	// Missing .env is fine, the environment may be set by the platform
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment
func FromEnv() (Config, error) {
	cfg := Config{
		Port:          getenv("PORT", defaultPort),
		Environment:   getenv("APP_ENV", "production"),
		Classifier:    strings.ToLower(getenv("CLASSIFIER", ClassifierGemini)),
		Model:         os.Getenv("GEMINI_MODEL"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		BodyLimit:     getenv("BODY_LIMIT", defaultBodyLimit),
		ServeUI:       true,
		StaticDir:     os.Getenv("STATIC_DIR"),
	}

	if v := os.Getenv("GEMINI_THINKING_BUDGET"); v != "" {
		budget, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GEMINI_THINKING_BUDGET %q: %w", v, err)
		}
		cfg.ThinkingBudget = int32(budget)
	}

	if v := os.Getenv("SERVE_UI"); v != "" {
		serve, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVE_UI %q: %w", v, err)
		}
		cfg.ServeUI = serve
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}
	if c.Classifier != ClassifierGemini && c.Classifier != ClassifierMock {
		return fmt.Errorf("unknown CLASSIFIER %q, expected %q or %q", c.Classifier, ClassifierGemini, ClassifierMock)
	}
	return nil
}

// IsDevelopment reports whether APP_ENV selects development mode
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// NewLogger builds the zap logger matching the environment
func (c Config) NewLogger() (*zap.Logger, error) {
	if c.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
