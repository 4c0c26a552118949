// Package review — контроллер отправки текста на разбор.
//
// Session хранит черновик, состояние отправки и время последней успешной
// отправки; Apply — чистая функция перехода; Controller связывает их
// с хранилищем черновика и провайдером.
//
// Controller не thread-safe: у него один владелец (цикл событий UI).
// Единственный метод, который можно вызывать из другой горутины, — Fetch:
// он не трогает Session.
package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ilkoid/rate-my-writing/pkg/config"
	"github.com/ilkoid/rate-my-writing/pkg/llm"
	"github.com/ilkoid/rate-my-writing/pkg/utils"
)

// DraftStore — хранилище черновика (см. pkg/draft).
type DraftStore interface {
	Load() string
	Save(text string)
}

// Controller владеет Session.
type Controller struct {
	reviewer llm.Reviewer
	store    DraftStore
	window   time.Duration
	timeout  time.Duration
	newID    func() string

	session Session
}

// Option настраивает Controller.
type Option func(*Controller)

// WithWindow задаёт минимальный интервал между успешными отправками.
func WithWindow(d time.Duration) Option {
	return func(c *Controller) { c.window = d }
}

// WithTimeout ограничивает один запрос к провайдеру (0 — без ограничения).
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithIDGenerator подменяет генератор ID запросов (тесты).
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// NewController создаёт контроллер и один раз восстанавливает черновик из store.
func NewController(reviewer llm.Reviewer, store DraftStore, opts ...Option) *Controller {
	c := &Controller{
		reviewer: reviewer,
		store:    store,
		window:   config.DefaultRateLimitWindow,
		timeout:  config.DefaultReviewTimeout,
		newID:    uuid.NewString,
		session:  Session{State: Idle()},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.session.Draft = store.Load()
	return c
}

// Session возвращает копию текущего состояния.
func (c *Controller) Session() Session { return c.session }

// State возвращает текущее состояние отправки.
func (c *Controller) State() State { return c.session.State }

// Draft возвращает текущий черновик.
func (c *Controller) Draft() string { return c.session.Draft }

// CanSubmit — кнопка отправки активна: не Loading и черновик не пустой.
//
// Черновик из одних пробелов кнопку не блокирует: такая отправка
// отклоняется валидацией с сообщением.
func (c *Controller) CanSubmit() bool {
	return c.session.State.Kind != KindLoading && c.session.Draft != ""
}

// SetDraft меняет черновик и сохраняет его на каждое изменение.
func (c *Controller) SetDraft(text string) {
	if text == c.session.Draft {
		return
	}
	c.apply(Edited{Text: text})
	c.store.Save(text)
}

// LoadExample заменяет черновик демо-текстом.
func (c *Controller) LoadExample() {
	c.apply(ExampleLoaded{})
	c.store.Save(c.session.Draft)
}

// Clear одним обновлением сбрасывает черновик, разбор и ошибку.
// Окно rate limit не сбрасывается. Запрос в полёте не отменяется:
// отправка остаётся заблокированной до его результата.
func (c *Controller) Clear() {
	c.apply(Cleared{})
	c.store.Save("")
}

// Begin проверяет отправку и переводит состояние в Loading.
//
// При ошибке валидации состояние становится Failure с сообщением,
// удалённый вызов делать нельзя. Во время Loading возвращает ErrInFlight
// и ничего не меняет.
func (c *Controller) Begin(now time.Time) (Request, error) {
	if c.session.State.Kind == KindLoading {
		return Request{}, ErrInFlight
	}

	if err := Validate(c.session.Draft, now, c.session.LastSubmitted, c.window); err != nil {
		utils.Debug("Review submission rejected", "reason", err)
		c.apply(Rejected{Err: err})
		return Request{}, err
	}

	req := Request{
		ID:   c.newID(),
		Text: c.session.Draft,
		At:   now,
	}
	c.apply(Submitted{Request: req})

	utils.Info("Review submitted",
		"request_id", req.ID,
		"words", WordCount(req.Text),
		"chars", CharCount(req.Text))
	return req, nil
}

// Fetch выполняет ровно один вызов провайдера с полным текстом запроса.
//
// Таймаут превращается в ошибку, а не в зависание. Session не трогается,
// поэтому Fetch можно запускать в tea.Cmd.
func (c *Controller) Fetch(ctx context.Context, req Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	text, err := c.reviewer.Review(ctx, req.Text)
	if err != nil {
		return "", &RemoteError{RequestID: req.ID, Err: err}
	}
	return text, nil
}

// Complete применяет результат запроса.
//
// Ошибка логируется целиком, пользователю показывается только общее сообщение.
func (c *Controller) Complete(req Request, review string, err error) {
	if !c.session.isPending(req) {
		utils.Warn("Ignoring result of a request that is no longer pending", "request_id", req.ID)
		return
	}

	elapsed := time.Since(req.At).Milliseconds()
	if err != nil {
		utils.Error("Review request failed",
			"request_id", req.ID,
			"error", err,
			"duration_ms", elapsed)
		c.apply(Failed{Request: req, Err: err})
		return
	}

	utils.Info("Review received",
		"request_id", req.ID,
		"review_length", len(review),
		"duration_ms", elapsed)
	c.apply(Succeeded{Request: req, Review: review})
}

// Submit — синхронная отправка: Begin, Fetch, Complete.
//
// Возвращает итоговое состояние и ошибку (валидации или удалённую).
func (c *Controller) Submit(ctx context.Context, now time.Time) (State, error) {
	req, err := c.Begin(now)
	if err != nil {
		return c.session.State, err
	}

	review, err := c.Fetch(ctx, req)
	c.Complete(req, review, err)
	return c.session.State, err
}

func (c *Controller) apply(ev Event) {
	c.session = Apply(c.session, ev)
}
