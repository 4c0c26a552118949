// Базовые типы - определяем универсальный язык общения с моделями
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Role — роль автора сообщения.
type Role string

// Message — одно сообщение chat-completion запроса.
type Message struct {
	Role    Role
	Content string
}

// Константы для удобства
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ErrEmptyResponse — провайдер ответил 2xx, но текста разбора нет.
var ErrEmptyResponse = errors.New("empty response from provider")

// ErrSafetyBlocked — провайдер отказался отвечать по safety-фильтру.
var ErrSafetyBlocked = errors.New("blocked by provider safety filter")

// ErrNotConfigured — провайдер не может работать без настройки (нет ключа).
var ErrNotConfigured = errors.New("provider not configured")

// unavailable — Reviewer, который всегда отвечает ошибкой.
type unavailable struct {
	reason string
}

// Unavailable возвращает Reviewer, который всегда падает с ErrNotConfigured.
//
// Нужен, чтобы приложение стартовало без API ключа: ошибка проявится
// только при отправке, как обычная ошибка review.
func Unavailable(reason string) Reviewer {
	return unavailable{reason: reason}
}

func (u unavailable) Review(_ context.Context, _ string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrNotConfigured, u.reason)
}
