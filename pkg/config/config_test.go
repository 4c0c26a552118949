package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
models:
  default: gpt-4
  definitions:
    gpt-4:
      provider: openai
      model_name: gpt-4
      api_key: ${RMW_TEST_OPENAI_KEY}
      temperature: 0.3
      requests_per_minute: 20
    gemini:
      provider: gemini
      model_name: gemini-2.0-flash
      api_key: ${RMW_TEST_GEMINI_KEY}
review:
  rate_limit_window: 3s
  timeout: 45s
draft:
  backend: sqlite
  path: /tmp/draft.db
app:
  debug: true
`

func TestParse_ExpandsEnvAndDefaults(t *testing.T) {
	t.Setenv("RMW_TEST_OPENAI_KEY", "sk-test")
	t.Setenv("RMW_TEST_GEMINI_KEY", "")

	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	m, ok := cfg.GetReviewModel("")
	require.True(t, ok)
	assert.Equal(t, "sk-test", m.APIKey)
	assert.Equal(t, ProviderOpenAI, m.Provider)
	assert.Equal(t, 1, m.Burst, "burst defaults to 1 when a limit is set")

	assert.Equal(t, 3*time.Second, cfg.Review.RateLimitWindow)
	assert.Equal(t, 45*time.Second, cfg.Review.Timeout)
	assert.Equal(t, DraftBackendSQLite, cfg.Draft.Backend)
	assert.Equal(t, "/tmp/draft.db", cfg.Draft.Path)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, DefaultGlamourStyle, cfg.App.GlamourStyle)

	g, ok := cfg.GetReviewModel("gemini")
	require.True(t, ok)
	assert.Equal(t, DefaultSafetyThreshold, g.SafetyThreshold)
	assert.Equal(t, DefaultSafetyCategories, g.SafetyCategories)
	assert.Empty(t, g.APIKey)

	assert.False(t, cfg.APIKeyMissing())
}

func TestParse_MinimalUsesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
models:
  default: m
  definitions:
    m: {provider: deepseek, model_name: deepseek-chat, base_url: "https://api.deepseek.com"}
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultRateLimitWindow, cfg.Review.RateLimitWindow)
	assert.Equal(t, DefaultReviewTimeout, cfg.Review.Timeout)
	assert.Equal(t, DraftBackendFile, cfg.Draft.Backend)
	assert.NotEmpty(t, cfg.Draft.Path)
	assert.True(t, cfg.APIKeyMissing(), "missing key is detectable, not fatal")
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no definitions",
			yaml:    "models: {default: x}",
			wantErr: "must not be empty",
		},
		{
			name:    "default not defined",
			yaml:    "models: {default: x, definitions: {y: {provider: openai, model_name: gpt-4}}}",
			wantErr: "not defined",
		},
		{
			name:    "unknown provider",
			yaml:    "models: {default: x, definitions: {x: {provider: ollama, model_name: llama}}}",
			wantErr: "unknown provider",
		},
		{
			name:    "missing model name",
			yaml:    "models: {default: x, definitions: {x: {provider: openai}}}",
			wantErr: "model_name is required",
		},
		{
			name:    "bad backend",
			yaml:    "models: {default: x, definitions: {x: {provider: openai, model_name: gpt-4}}}\ndraft: {backend: redis}",
			wantErr: "draft.backend",
		},
		{
			name:    "negative window",
			yaml:    "models: {default: x, definitions: {x: {provider: openai, model_name: gpt-4}}}\nreview: {rate_limit_window: -1s}",
			wantErr: "rate_limit_window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", cfg.Models.Default)
}

func TestDefault_PicksGeminiWhenOnlyGeminiKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "gemini", cfg.Models.Default)
	assert.False(t, cfg.APIKeyMissing())
}

func TestDefault_NoKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "gpt-4", cfg.Models.Default)
	assert.True(t, cfg.APIKeyMissing())
}

func TestEffectiveTimeout(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultReviewTimeout, cfg.EffectiveTimeout(ModelDef{}))
	assert.Equal(t, 5*time.Second, cfg.EffectiveTimeout(ModelDef{Timeout: 5 * time.Second}))
}

func TestLoad_ExampleConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-example")

	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4", cfg.Models.Default)
	assert.False(t, cfg.APIKeyMissing())
	assert.Equal(t, DefaultRateLimitWindow, cfg.Review.RateLimitWindow)
	assert.Equal(t, "default", cfg.App.ColorScheme)

	g, ok := cfg.GetReviewModel("gemini")
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, cfg.EffectiveTimeout(g))
}
