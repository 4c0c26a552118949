// Загрузка и Рендер - чтение файла и text/template.

package prompt

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/ilkoid/rate-my-writing/pkg/llm"
	"gopkg.in/yaml.v3"
)

// DefaultInstruction — фиксированная инструкция для модели.
const DefaultInstruction = "You are a writing assistant. Review the input for grammar, clarity, and style. Highlight issues and give constructive suggestions."

// Default возвращает встроенный промпт: system-инструкция + текст пользователя.
func Default() *PromptFile {
	return &PromptFile{
		Messages: []Message{
			{Role: string(llm.RoleSystem), Content: DefaultInstruction},
			{Role: string(llm.RoleUser), Content: "{{.Text}}"},
		},
	}
}

// Load загружает и парсит YAML файл промпта
func Load(path string) (*PromptFile, error) {
	// 1. Проверяем наличие
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("prompt file not found: %s", path)
	}

	// 2. Читаем байты
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	// 3. Парсим YAML
	var pf PromptFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("yaml parse error: %w", err)
	}

	if err := pf.validate(); err != nil {
		return nil, fmt.Errorf("prompt %s: %w", path, err)
	}

	return &pf, nil
}

// LoadOrDefault — Load для непустого path, иначе Default().
func LoadOrDefault(path string) (*PromptFile, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// validate проверяет, что промпт вообще передаёт текст пользователя модели.
func (pf *PromptFile) validate() error {
	if len(pf.Messages) == 0 {
		return fmt.Errorf("no messages")
	}
	hasText := false
	for i, msg := range pf.Messages {
		switch llm.Role(msg.Role) {
		case llm.RoleSystem, llm.RoleUser, llm.RoleAssistant:
		default:
			return fmt.Errorf("message #%d: unknown role %q", i, msg.Role)
		}
		if strings.Contains(msg.Content, ".Text") {
			hasText = true
		}
	}
	if !hasText {
		return fmt.Errorf("no message references {{.Text}}")
	}
	return nil
}

// RenderMessages принимает данные (struct или map) и возвращает готовые сообщения
// где все {{.Field}} заменены на значения.
func (pf *PromptFile) RenderMessages(data interface{}) ([]llm.Message, error) {
	rendered := make([]llm.Message, len(pf.Messages))

	for i, msg := range pf.Messages {
		// Создаем шаблон
		tmpl, err := template.New("msg").Option("missingkey=error").Parse(msg.Content)
		if err != nil {
			return nil, fmt.Errorf("template parse error in message #%d (%s): %w", i, msg.Role, err)
		}

		// Рендерим в буфер
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("template execute error in message #%d: %w", i, err)
		}

		rendered[i] = llm.Message{
			Role:    llm.Role(msg.Role),
			Content: buf.String(),
		}
	}

	return rendered, nil
}

// Chat рендерит промпт для chat-completion провайдеров.
func (pf *PromptFile) Chat(text string) ([]llm.Message, error) {
	return pf.RenderMessages(Data{Text: text})
}

// Compose склеивает промпт в одну строку для провайдеров с единым prompt:
// содержимое сообщений по порядку, через пустую строку.
func (pf *PromptFile) Compose(text string) (string, error) {
	msgs, err := pf.Chat(text)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, m.Content)
	}
	return strings.Join(parts, "\n\n"), nil
}
