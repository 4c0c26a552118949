// Package openai реализует адаптер LLM провайдера для OpenAI-совместимых API.
//
// Форма запроса: chat-completion со списком сообщений по ролям
// (system-инструкция + текст пользователя), ключ передаётся как Bearer.
// Подходит для OpenAI, DeepSeek, Zai и других совместимых API через base_url.
package openai

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
	openai "github.com/sashabaranov/go-openai"
)

// Client реализует интерфейс llm.Reviewer для OpenAI-совместимых API.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
	prompt      *prompt.PromptFile
}

// Option настраивает Client.
type Option func(*openai.ClientConfig)

// WithHTTPClient подменяет HTTP клиент (тесты, прокси).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *openai.ClientConfig) {
		c.HTTPClient = hc
	}
}

// NewClient создает OpenAI клиент на основе конфигурации модели.
//
// Параметры запроса (temperature, max_tokens) берутся из промпта, если
// там заданы, иначе из ModelDef.
func NewClient(modelDef config.ModelDef, p *prompt.PromptFile, opts ...Option) *Client {
	// Поддержка custom BaseURL для non-OpenAI провайдеров (Zai, DeepSeek и т.д.)
	cfg := openai.DefaultConfig(modelDef.APIKey)
	if modelDef.BaseURL != "" {
		cfg.BaseURL = modelDef.BaseURL
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if p == nil {
		p = prompt.Default()
	}

	temperature := modelDef.Temperature
	if p.Config.Temperature != 0 {
		temperature = p.Config.Temperature
	}
	maxTokens := modelDef.MaxTokens
	if p.Config.MaxTokens != 0 {
		maxTokens = p.Config.MaxTokens
	}

	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       modelDef.ModelName,
		temperature: float32(temperature),
		maxTokens:   maxTokens,
		prompt:      p,
	}
}

// Review отправляет текст на разбор и возвращает ответ модели.
//
// Алгоритм:
//  1. Рендерит промпт в сообщения (текст пользователя без изменений)
//  2. Вызывает chat-completion
//  3. Пустой список choices или пустой content — ошибка "битый ответ"
func (c *Client) Review(ctx context.Context, text string) (string, error) {
	startTime := time.Now()

	msgs, err := c.prompt.Chat(text)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    mapToOpenAI(msgs),
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	utils.Debug("LLM request started",
		"provider", "openai",
		"model", c.model,
		"messages_count", len(req.Messages),
		"text_length", len(text))

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		utils.Error("LLM API request failed",
			"error", err,
			"model", c.model,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", fmt.Errorf("openai api error: %w", err)
	}

	// Проверяем что есть хотя бы один выбор
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response: %w", llm.ErrEmptyResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", fmt.Errorf("openai: %w", llm.ErrSafetyBlocked)
	}

	content := choice.Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("openai: empty content: %w", llm.ErrEmptyResponse)
	}

	utils.Info("LLM response received",
		"model", c.model,
		"content_length", len(content),
		"duration_ms", time.Since(startTime).Milliseconds())

	return content, nil
}

// mapToOpenAI конвертирует наши сообщения в формат SDK.
func mapToOpenAI(msgs []llm.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		result[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return result
}
