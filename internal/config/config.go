package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Gemini (copy generation)
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModels  []string

	// OpenAI (studio image pipeline)
	OpenAIAPIKey  string
	OpenAIBaseURL string

	// remove.bg
	RemoveBgAPIKey  string
	RemoveBgBaseURL string

	// n8n workflow engine
	N8NWebhookURL string
	N8NTimeout    time.Duration

	// Resend (transactional email)
	ResendAPIKey string

	// Hotmart purchase webhook
	HotmartSecret string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseServiceRoleKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// Stale-processando sweep; zero disables it.
	StaleProcessingAfter time.Duration

	// Server
	Port           string
	Environment    string
	BaseURL        string
	SiteURL        string
	AllowedOrigins []string
}

// defaultGeminiModels is the fallback order for the copy gateway, tried
// sequentially until one answers with a non-error status.
var defaultGeminiModels = []string{
	"models/gemini-1.5-flash-latest",
	"models/gemini-1.5-pro-latest",
	"models/gemini-1.5-flash",
	"models/gemini-1.5-pro",
}

func Load() (*Config, error) {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL: getEnv("GEMINI_API_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModels:  splitList(getEnv("GEMINI_MODELS", "")),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_API_BASE_URL", "https://api.openai.com/v1"),

		RemoveBgAPIKey:  getEnv("REMOVE_BG_API_KEY", ""),
		RemoveBgBaseURL: getEnv("REMOVE_BG_API_BASE_URL", "https://api.remove.bg/v1.0"),

		N8NWebhookURL: getEnv("N8N_IMAGE_WEBHOOK_URL", ""),
		N8NTimeout:    time.Duration(getEnvInt("N8N_TIMEOUT_SECONDS", 300)) * time.Second,

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),

		HotmartSecret: getEnv("HOTMART_SECRET", ""),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "product-images"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		StaleProcessingAfter: time.Duration(getEnvInt("STALE_PROCESSING_AFTER_MINUTES", 0)) * time.Minute,

		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		SiteURL:        getEnv("SITE_URL", "http://localhost:5173"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
	}

	if len(cfg.GeminiModels) == 0 {
		cfg.GeminiModels = defaultGeminiModels
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseServiceRoleKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
