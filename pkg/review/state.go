package review

import (
	"strings"
	"time"
)

// Kind — вид состояния отправки.
type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindSuccess
	KindFailure
)

// String возвращает имя состояния для логов.
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// State — состояние отправки. Активно ровно одно из Idle/Loading/Success/Failure;
// Review заполнен только в Success, Message — только в Failure.
type State struct {
	Kind    Kind
	Review  string
	Message string
}

// Idle — начальное состояние.
func Idle() State { return State{Kind: KindIdle} }

// Loading — запрос отправлен.
func Loading() State { return State{Kind: KindLoading} }

// Success — разбор получен.
func Success(review string) State { return State{Kind: KindSuccess, Review: review} }

// Failure — ошибка с сообщением для пользователя.
func Failure(message string) State { return State{Kind: KindFailure, Message: message} }

// Request — одна отправка. Text — черновик без изменений (без trim).
type Request struct {
	ID   string
	Text string
	At   time.Time
}

// Session — явный контейнер состояния. Владелец — Controller.
type Session struct {
	Draft         string
	State         State
	LastSubmitted *time.Time
	// Pending — отправка в полёте (только в Loading).
	Pending *Request
	// DropPending — черновик очищен во время Loading: результат Pending
	// не показывается, состояние после него Idle.
	DropPending bool
}

// Validate проверяет отправку по порядку: сначала окно rate limit, потом пустой ввод.
//
// Окно считается от последней УСПЕШНОЙ отправки. Ошибки — ErrRateLimited
// и ErrEmptyInput; в обоих случаях удалённый вызов делать нельзя.
func Validate(draft string, now time.Time, lastSubmitted *time.Time, window time.Duration) error {
	if lastSubmitted != nil && now.Sub(*lastSubmitted) < window {
		return ErrRateLimited
	}
	if strings.TrimSpace(draft) == "" {
		return ErrEmptyInput
	}
	return nil
}
