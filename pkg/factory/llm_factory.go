package factory

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilkoid/rate-my-writing/pkg/config"
	"github.com/ilkoid/rate-my-writing/pkg/llm"
	"github.com/ilkoid/rate-my-writing/pkg/llm/gemini"
	"github.com/ilkoid/rate-my-writing/pkg/llm/openai"
	"github.com/ilkoid/rate-my-writing/pkg/prompt"
	"github.com/ilkoid/rate-my-writing/pkg/utils"
)

// NewReviewer создает провайдера на основе конфигурации модели.
//
// Отсутствующий API ключ не ошибка: возвращается llm.Unavailable, чтобы
// приложение стартовало, а ошибка проявилась при отправке.
// Неизвестный тег провайдера — ошибка.
func NewReviewer(ctx context.Context, modelDef config.ModelDef, p *prompt.PromptFile) (llm.Reviewer, error) {
	if modelDef.APIKey == "" && config.IsKnownProvider(modelDef.Provider) {
		utils.Warn("API key is not configured, reviews will fail",
			"provider", modelDef.Provider,
			"model", modelDef.ModelName)
		return llm.Unavailable(fmt.Sprintf("no api key for %s model %s", modelDef.Provider, modelDef.ModelName)), nil
	}

	var r llm.Reviewer
	switch modelDef.Provider {
	case config.ProviderOpenAI, config.ProviderDeepSeek, config.ProviderZai:
		r = openai.NewClient(modelDef, p)

	case config.ProviderGemini:
		c, err := gemini.NewClient(ctx, modelDef, p)
		if err != nil {
			if errors.Is(err, llm.ErrNotConfigured) {
				return llm.Unavailable(err.Error()), nil
			}
			return nil, err
		}
		r = c

	default:
		return nil, fmt.Errorf("unknown provider type: %s", modelDef.Provider)
	}

	return llm.Throttled(r, modelDef.RequestsPerMinute, modelDef.Burst), nil
}
