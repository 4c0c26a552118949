package review

import (
	"errors"
	"fmt"
)

// Пользовательские сообщения.
const (
	MsgRateLimited   = "Please wait a few seconds before submitting again"
	MsgEmptyInput    = "Please enter some text to review"
	MsgRemoteFailure = "Sorry, there was an issue with the review. Please try again."
	MsgInFlight      = "A review is already in progress"
)

// Локальные ошибки валидации: удалённый вызов не выполняется.
var (
	ErrRateLimited = errors.New("rate limited")
	ErrEmptyInput  = errors.New("empty input")
	// ErrInFlight — отправка во время Loading. UI блокирует кнопку,
	// так что это возможно только в обход UI.
	ErrInFlight = errors.New("review already in flight")
)

// RemoteError — любая ошибка вызова провайдера (сеть, авторизация,
// не-2xx, битый ответ, safety, таймаут).
type RemoteError struct {
	RequestID string
	Err       error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("review request %s failed: %v", e.RequestID, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// UserMessage переводит ошибку в текст для пользователя.
// Детали удалённых ошибок пользователю не показываются.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return MsgRateLimited
	case errors.Is(err, ErrEmptyInput):
		return MsgEmptyInput
	case errors.Is(err, ErrInFlight):
		return MsgInFlight
	default:
		return MsgRemoteFailure
	}
}
