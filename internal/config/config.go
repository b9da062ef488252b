package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Backend string

const (
	BackendGemini Backend = "gemini"
	BackendREST   Backend = "rest"
	BackendVertex Backend = "vertex"
)

// DefaultReadingPrompt asks the model to check for a palm or handwriting sample,
// read it if so, and otherwise describe the image in detail.
const DefaultReadingPrompt = "ตรวจสอบรูปภาพว่าเป็นภาพลายมือหรือฝ่ามือของมนุษย์ก็ได้หรือไม่ ถ้าใช่ ให้ทำนายลายมือ อ่านลายมือโหราศาสตร์ ถ้าไม่ใช่ให้บอกว่าไม่ใช่ภาพลายมือ และอธิบายภาพนี้อย่างละเอียดมีอะไรบ้าง"

const DefaultAPIBaseURL = "https://generativelanguage.googleapis.com"

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	Port string

	Backend    Backend
	APIKey     string
	APIBaseURL string
	Model      string
	Prompt     string

	ProjectID string
	Location  string

	RequestTimeout time.Duration
	LogLevel       slog.Level
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	projectID := os.Getenv("PROJECT_ID")
	if projectID == "" {
		projectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "3033"),
		Backend:        Backend(strings.ToLower(getEnv("AI_BACKEND", string(BackendGemini)))),
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		APIBaseURL:     strings.TrimRight(getEnv("GEMINI_API_BASE_URL", DefaultAPIBaseURL), "/"),
		Model:          getEnv("MODEL_NAME", "gemini-2.5-flash"),
		Prompt:         getEnv("READING_PROMPT", DefaultReadingPrompt),
		ProjectID:      projectID,
		Location:       getEnv("LOCATION", "us-central1"),
		RequestTimeout: timeout,
		LogLevel:       level,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGemini, BackendREST:
		if c.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the %s backend", c.Backend)
		}
	case BackendVertex:
		// project may come from application default credentials
	default:
		return fmt.Errorf("unknown AI_BACKEND %q (want gemini, rest or vertex)", c.Backend)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must not be negative, got %s", c.RequestTimeout)
	}

	return nil
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
