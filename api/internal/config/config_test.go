package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "PROVIDER", "OPENAI_API_KEY", "OPENAI_MODEL", "GEMINI_MODEL", "MAX_TOKENS", "REQUEST_TIMEOUT", "MAX_IMAGE_BYTES", "CORS_ORIGIN"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "openai", c.Provider)
	assert.Empty(t, c.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", c.OpenAIModel)
	assert.Equal(t, "gemini-2.5-flash", c.GeminiModel)
	assert.Equal(t, 500, c.MaxTokens)
	assert.Equal(t, 180*time.Second, c.RequestTimeout)
	assert.Equal(t, int64(20<<20), c.MaxImageBytes)
	assert.Equal(t, "*", c.CORSOrigin)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PROVIDER", "gemini")
	t.Setenv("MAX_TOKENS", "800")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("MAX_IMAGE_BYTES", "1048576")
	c := Load()
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, "gemini", c.Provider)
	assert.Equal(t, 800, c.MaxTokens)
	assert.Equal(t, 45*time.Second, c.RequestTimeout)
	assert.Equal(t, int64(1<<20), c.MaxImageBytes)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_TOKENS", "many")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	c := Load()
	assert.Equal(t, 500, c.MaxTokens)
	assert.Equal(t, 180*time.Second, c.RequestTimeout)
}

func TestLoadBot(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("IDENTIFY_URL", "")
	t.Setenv("CLIENT_TIMEOUT", "30s")
	c := LoadBot()
	assert.Equal(t, "123:abc", c.TelegramBotToken)
	assert.Equal(t, "http://localhost:8080", c.IdentifyURL)
	assert.Equal(t, 30*time.Second, c.ClientTimeout)
}

func TestSetupLogging(t *testing.T) {
	assert.NotPanics(t, func() {
		SetupLogging("debug", "json")
		SetupLogging("nonsense", "text")
	})
}
