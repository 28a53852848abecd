package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedSwitchesDefaultURLToBackend(t *testing.T) {
	m := ModelConfig{BaseURL: DefaultOllamaURL, Mode: ModeBackend}
	assert.Equal(t, DefaultBackendURL, m.Normalized().BaseURL)
}

func TestNormalizedSwitchesDefaultURLToDirect(t *testing.T) {
	m := ModelConfig{BaseURL: DefaultBackendURL, Mode: ModeDirect}
	assert.Equal(t, DefaultOllamaURL, m.Normalized().BaseURL)
}

func TestNormalizedKeepsCustomURL(t *testing.T) {
	m := ModelConfig{BaseURL: "http://ollama.internal:11434", Mode: ModeBackend}
	assert.Equal(t, "http://ollama.internal:11434", m.Normalized().BaseURL)

	m = ModelConfig{BaseURL: "http://api.internal:5000", Mode: ModeDirect}
	assert.Equal(t, "http://api.internal:5000", m.Normalized().BaseURL)
}

func TestNormalizedKeepsMatchingDefaults(t *testing.T) {
	m := ModelConfig{BaseURL: DefaultOllamaURL, Mode: ModeDirect}
	assert.Equal(t, DefaultOllamaURL, m.Normalized().BaseURL)

	m = ModelConfig{BaseURL: DefaultBackendURL, Mode: ModeBackend}
	assert.Equal(t, DefaultBackendURL, m.Normalized().BaseURL)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "support-dashboard", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, DefaultOllamaURL, cfg.Model.BaseURL)
	assert.Equal(t, "llama3", cfg.Model.Model)
	assert.Equal(t, ModeDirect, cfg.Model.Mode)
	assert.Equal(t, 120*time.Second, cfg.Model.Timeout())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoadBackendModeCorrectsBaseURL(t *testing.T) {
	t.Setenv("MODEL_MODE", ModeBackend)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeBackend, cfg.Model.Mode)
	assert.Equal(t, DefaultBackendURL, cfg.Model.BaseURL)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("MODEL_MODE", "proxy")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MODEL_MODE")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("MODEL_NAME", "mistral")
	t.Setenv("MODEL_TIMEOUT_SECONDS", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", cfg.App.Addr())
	assert.Equal(t, "mistral", cfg.Model.Model)
	assert.Equal(t, 15*time.Second, cfg.Model.Timeout())
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("MODEL_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Model.TimeoutSeconds)
}
