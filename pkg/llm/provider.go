// Интерфейс Провайдера через который работает всё приложение.

package llm

import "context"

// Reviewer — контракт для любого AI-сервиса, который делает разбор текста.
//
// Review получает сырой текст пользователя (без trim) и возвращает
// текст разбора. Любая проблема — сеть, авторизация, не-2xx, битый ответ,
// отказ по safety-фильтру, таймаут — возвращается ошибкой.
type Reviewer interface {
	Review(ctx context.Context, text string) (string, error)
}

// ReviewerFunc позволяет использовать функцию как Reviewer (тесты, заглушки).
type ReviewerFunc func(ctx context.Context, text string) (string, error)

// Review реализует Reviewer.
func (f ReviewerFunc) Review(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}
