package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// throttled ограничивает частоту запросов к провайдеру.
type throttled struct {
	next    Reviewer
	limiter *rate.Limiter
}

// Throttled оборачивает Reviewer лимитером запросов к провайдеру.
//
// perMinute — запросов в минуту (<= 0 — без лимита, возвращается next как есть).
// burst < 1 приводится к 1.
//
// Ожидание токена идёт под контекстом вызывающего: если дедлайн наступит
// раньше, Review вернёт ошибку, а не зависнет. Это ограничение на стороне
// провайдера, оно не заменяет окно между отправками в review.Controller.
func Throttled(next Reviewer, perMinute, burst int) Reviewer {
	if perMinute <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}

	// perMinute в запросах/минуту → rate.Limit в запросах/секунду
	ratePerSec := float64(perMinute) / 60.0
	return &throttled{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
	}
}

// Review ждёт токен лимитера и передаёт запрос дальше.
func (t *throttled) Review(ctx context.Context, text string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("provider rate limit wait: %w", err)
	}
	return t.next.Review(ctx, text)
}
