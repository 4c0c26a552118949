// Package gemini реализует адаптер LLM провайдера для Google Gemini API.
//
// Форма запроса отличается от chat-completion: одна склеенная строка промпта
// (инструкция + текст), имя модели и safety-настройки. Ключ передаётся
// в конструктор клиента библиотеки.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ilkoid/rate-my-writing/pkg/config"
	"github.com/ilkoid/rate-my-writing/pkg/llm"
	"github.com/ilkoid/rate-my-writing/pkg/prompt"
	"github.com/ilkoid/rate-my-writing/pkg/utils"
	"google.golang.org/genai"
)

// Client реализует интерфейс llm.Reviewer поверх genai.
type Client struct {
	client  *genai.Client
	model   string
	prompt  *prompt.PromptFile
	gconfig *genai.GenerateContentConfig
}

// Option настраивает genai.ClientConfig.
type Option func(*genai.ClientConfig)

// WithBaseURL направляет запросы на другой endpoint (тесты, прокси).
func WithBaseURL(url string) Option {
	return func(c *genai.ClientConfig) {
		c.HTTPOptions.BaseURL = url
	}
}

// WithHTTPClient подменяет HTTP клиент.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *genai.ClientConfig) {
		c.HTTPClient = hc
	}
}

// NewClient создает Gemini клиент на основе конфигурации модели.
//
// В отличие от openai, пустой ключ здесь ошибка конструктора — factory
// в этом случае подставляет llm.Unavailable.
func NewClient(ctx context.Context, modelDef config.ModelDef, p *prompt.PromptFile, opts ...Option) (*Client, error) {
	if modelDef.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w: api key is required", llm.ErrNotConfigured)
	}

	cc := &genai.ClientConfig{
		APIKey:  modelDef.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if modelDef.BaseURL != "" {
		cc.HTTPOptions.BaseURL = modelDef.BaseURL
	}
	for _, opt := range opts {
		opt(cc)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	if p == nil {
		p = prompt.Default()
	}

	return &Client{
		client:  client,
		model:   modelDef.ModelName,
		prompt:  p,
		gconfig: buildConfig(modelDef, p),
	}, nil
}

// buildConfig собирает параметры генерации и safety-настройки.
func buildConfig(modelDef config.ModelDef, p *prompt.PromptFile) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		SafetySettings: SafetySettings(modelDef.SafetyCategories, modelDef.SafetyThreshold),
	}

	temperature := modelDef.Temperature
	if p.Config.Temperature != 0 {
		temperature = p.Config.Temperature
	}
	if temperature != 0 {
		gc.Temperature = genai.Ptr(float32(temperature))
	}

	maxTokens := modelDef.MaxTokens
	if p.Config.MaxTokens != 0 {
		maxTokens = p.Config.MaxTokens
	}
	if maxTokens > 0 {
		gc.MaxOutputTokens = int32(maxTokens)
	}

	return gc
}

// SafetySettings строит порог блокировки для каждой категории.
//
// Значения передаются как есть (HARM_CATEGORY_*, BLOCK_*): их валидирует API.
func SafetySettings(categories []string, threshold string) []*genai.SafetySetting {
	if threshold == "" {
		threshold = config.DefaultSafetyThreshold
	}
	if len(categories) == 0 {
		categories = config.DefaultSafetyCategories
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  genai.HarmCategory(c),
			Threshold: genai.HarmBlockThreshold(threshold),
		})
	}
	return settings
}

// Review склеивает промпт в одну строку и вызывает generateContent.
func (c *Client) Review(ctx context.Context, text string) (string, error) {
	startTime := time.Now()

	composed, err := c.prompt.Compose(text)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	utils.Debug("LLM request started",
		"provider", "gemini",
		"model", c.model,
		"prompt_length", len(composed))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(composed), c.gconfig)
	if err != nil {
		utils.Error("LLM API request failed",
			"error", err,
			"model", c.model,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", fmt.Errorf("gemini api error: %w", err)
	}

	out, err := extractText(resp)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	utils.Info("LLM response received",
		"model", c.model,
		"content_length", len(out),
		"duration_ms", time.Since(startTime).Milliseconds())

	return out, nil
}

// extractText достаёт текст первого кандидата.
//
// Ошибки:
//   - prompt заблокирован (PromptFeedback.BlockReason) → llm.ErrSafetyBlocked
//   - кандидат остановлен по SAFETY → llm.ErrSafetyBlocked
//   - нет кандидатов / нет текста → llm.ErrEmptyResponse
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", llm.ErrEmptyResponse
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s) %s", llm.ErrSafetyBlocked, fb.BlockReason, fb.BlockReasonMessage)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("no candidates: %w", llm.ErrEmptyResponse)
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: candidate finished with %s", llm.ErrSafetyBlocked, cand.FinishReason)
	}

	var sb strings.Builder
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			// Thought-части — внутренние рассуждения модели, не ответ
			if part == nil || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}

	out := sb.String()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("empty text: %w", llm.ErrEmptyResponse)
	}
	return out, nil
}
