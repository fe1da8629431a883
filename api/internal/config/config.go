package config

import (
	"os"
	"strconv"
	"time"

	"github.com/apex/log"
)

// Config holds the settings of the identification service.
type Config struct {
	Port string

	// Provider selects the vision engine: openai or gemini.
	Provider string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	MaxTokens     int

	// RequestTimeout bounds one provider call; 0 disables it.
	RequestTimeout time.Duration
	MaxImageBytes  int64
	CORSOrigin     string

	LogLevel  string
	LogFormat string
}

// BotConfig holds the settings of the Telegram bot.
type BotConfig struct {
	TelegramBotToken string
	WebhookURL       string
	Port             string

	// IdentifyURL is the base URL of the identification service.
	IdentifyURL   string
	ClientTimeout time.Duration
	MaxImageBytes int64

	LogLevel  string
	LogFormat string
}

// Load reads the service configuration. Provider keys are optional: without
// one the service answers in demo mode.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		Provider: getEnv("PROVIDER", "openai"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		MaxTokens:     getIntEnv("MAX_TOKENS", 500),

		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 180*time.Second),
		MaxImageBytes:  getInt64Env("MAX_IMAGE_BYTES", 20<<20),
		CORSOrigin:     getEnv("CORS_ORIGIN", "*"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func LoadBot() *BotConfig {
	return &BotConfig{
		TelegramBotToken: mustEnv("TELEGRAM_BOT_TOKEN"),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
		Port:             getEnv("PORT", "8080"),

		IdentifyURL:   getEnv("IDENTIFY_URL", "http://localhost:8080"),
		ClientTimeout: getDurationEnv("CLIENT_TIMEOUT", 0),
		MaxImageBytes: getInt64Env("MAX_IMAGE_BYTES", 20<<20),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getDurationEnv(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warnf("invalid duration in %s=%q, using %s", k, v, def)
	}
	return def
}

func getIntEnv(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warnf("invalid integer in %s=%q, using %d", k, v, def)
	}
	return def
}

func getInt64Env(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		log.Warnf("invalid integer in %s=%q, using %d", k, v, def)
	}
	return def
}
