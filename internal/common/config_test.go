package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "pdftoppm", cfg.PDF.Pdftoppm)
	assert.Equal(t, 350, cfg.PDF.DPI)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "llama-3.1-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PDF_DPI", "300")
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("LLM_TIMEOUT", "10s")

	cfg := LoadConfig()

	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, 300, cfg.PDF.DPI)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := LoadConfig()
	cfg.LLM.APIKey = ""

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_API_KEY")
}

func TestValidateOK(t *testing.T) {
	cfg := LoadConfig()
	cfg.LLM.APIKey = "secret"

	require.NoError(t, cfg.Validate())
}
