package factory

import (
	"context"
	"errors"
	"testing"

	"github.com/ilkoid/rate-my-writing/pkg/config"
	"github.com/ilkoid/rate-my-writing/pkg/llm"
	"github.com/ilkoid/rate-my-writing/pkg/llm/gemini"
	"github.com/ilkoid/rate-my-writing/pkg/llm/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewer_Variants(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		def   config.ModelDef
		check func(t *testing.T, r llm.Reviewer)
	}{
		{
			name: "openai",
			def:  config.ModelDef{Provider: config.ProviderOpenAI, ModelName: "gpt-4", APIKey: "k"},
			check: func(t *testing.T, r llm.Reviewer) {
				assert.IsType(t, &openai.Client{}, r)
			},
		},
		{
			name: "deepseek is openai-compatible",
			def:  config.ModelDef{Provider: config.ProviderDeepSeek, ModelName: "deepseek-chat", APIKey: "k", BaseURL: "https://api.deepseek.com"},
			check: func(t *testing.T, r llm.Reviewer) {
				assert.IsType(t, &openai.Client{}, r)
			},
		},
		{
			name: "gemini",
			def:  config.ModelDef{Provider: config.ProviderGemini, ModelName: "gemini-2.0-flash", APIKey: "k"},
			check: func(t *testing.T, r llm.Reviewer) {
				assert.IsType(t, &gemini.Client{}, r)
			},
		},
		{
			name: "throttled when limit set",
			def:  config.ModelDef{Provider: config.ProviderOpenAI, ModelName: "gpt-4", APIKey: "k", RequestsPerMinute: 10},
			check: func(t *testing.T, r llm.Reviewer) {
				_, isClient := r.(*openai.Client)
				assert.False(t, isClient, "limit should wrap the client")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReviewer(ctx, tt.def, nil)
			require.NoError(t, err)
			require.NotNil(t, r)
			tt.check(t, r)
		})
	}
}

func TestNewReviewer_MissingKeyDoesNotFail(t *testing.T) {
	for _, provider := range []string{config.ProviderOpenAI, config.ProviderGemini} {
		t.Run(provider, func(t *testing.T) {
			r, err := NewReviewer(context.Background(), config.ModelDef{Provider: provider, ModelName: "m"}, nil)
			require.NoError(t, err)

			_, err = r.Review(context.Background(), "text")
			require.Error(t, err)
			assert.True(t, errors.Is(err, llm.ErrNotConfigured))
		})
	}
}

func TestNewReviewer_UnknownProvider(t *testing.T) {
	_, err := NewReviewer(context.Background(), config.ModelDef{Provider: "ollama", ModelName: "llama", APIKey: "k"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
