// Package ui реализует интерактивный экран разбора текста на Bubble Tea.
//
// Model - тонкая обёртка: все правила отправки живут в review.Controller,
// вся отрисовка разбора - в render.Renderer.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/rate-my-writing/pkg/render"
	"github.com/ilkoid/rate-my-writing/pkg/review"
	"github.com/ilkoid/rate-my-writing/pkg/tui"
	"github.com/ilkoid/rate-my-writing/pkg/tui/primitives"
)

// reviewResultMsg - результат запроса к провайдеру, пришедший из tea.Cmd.
type reviewResultMsg struct {
	req  review.Request
	text string
	err  error
}

// Options настраивает Model.
type Options struct {
	Scheme render.ColorScheme
	Debug  bool
	// Degraded сообщает, что черновик хранится только в памяти.
	Degraded func() bool
	// Now подменяет часы (тесты).
	Now func() time.Time
}

// Model - корневая модель Bubble Tea.
type Model struct {
	ctx      context.Context
	ctrl     *review.Controller
	renderer *render.Renderer

	textarea textarea.Model
	pane     *primitives.FeedbackPane
	status   *primitives.StatusBar
	help     help.Model
	keys     tui.KeyMap

	degraded func() bool
	now      func() time.Time

	// shown - состояние, отрисованное в pane последним
	shown review.State

	width  int
	height int
	ready  bool
}

// New создаёт модель. Черновик, восстановленный контроллером, сразу
// попадает в поле ввода.
func New(ctx context.Context, ctrl *review.Controller, renderer *render.Renderer, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Scheme == (render.ColorScheme{}) {
		opts.Scheme = render.GetColorScheme("default")
	}

	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.FocusedStyle, ta.BlurredStyle = textareaStyles(opts.Scheme)
	ta.SetWidth(render.DefaultWidth)
	ta.SetHeight(6)
	ta.SetValue(ctrl.Draft())
	ta.Focus()

	cfg := primitives.DefaultStatusBarConfig()
	cfg.SpinnerColor = opts.Scheme.Accent
	cfg.LoadingLabel = render.LabelLoading
	status := primitives.NewStatusBar(cfg)
	status.SetDebugMode(opts.Debug)

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		renderer: renderer,
		textarea: ta,
		pane:     primitives.NewFeedbackPane(primitives.DefaultPaneConfig()),
		status:   status,
		help:     help.New(),
		keys:     tui.DefaultKeyMap(),
		degraded: opts.Degraded,
		now:      opts.Now,
	}
	m.refresh()
	return m
}

// Init запускает мигание курсора.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// refresh перерисовывает блок разбора по текущему состоянию.
//
// Новое состояние показывается с начала; то же самое (resize, перерисовка
// под новую ширину) сохраняет позицию прокрутки.
func (m *Model) refresh() {
	state := m.ctrl.State()
	content := m.renderer.Feedback(state)
	if state == m.shown {
		m.pane.ReplaceContent(content)
	} else {
		m.pane.SetContent(content)
		m.shown = state
	}
	m.status.SetLoading(state.Kind == review.KindLoading)
	m.syncNotice()
}

// syncNotice показывает предупреждение, если черновик остался только в памяти.
func (m *Model) syncNotice() {
	if m.degraded != nil && m.degraded() {
		m.status.SetNotice(noticeDegraded)
	}
}
