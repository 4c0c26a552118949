// Логика - обрабатывает нажатия клавиш и результаты запросов.

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/rate-my-writing/pkg/review"
	"github.com/ilkoid/rate-my-writing/pkg/utils"
)

// Update реализует tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Свои сочетания проверяем до textarea, иначе она их съест
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			return m, m.submit()

		case key.Matches(msg, m.keys.LoadExample):
			m.ctrl.LoadExample()
			m.textarea.SetValue(m.ctrl.Draft())
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.ctrl.Clear()
			m.textarea.Reset()
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.ScrollUp):
			m.pane.ScrollUp()
			return m, nil

		case key.Matches(msg, m.keys.ScrollDown):
			m.pane.ScrollDown()
			return m, nil

		case key.Matches(msg, m.keys.ToggleHelp):
			m.help.ShowAll = !m.help.ShowAll
			m.resize(m.width, m.height)
			return m, nil
		}

	case reviewResultMsg:
		m.ctrl.Complete(msg.req, msg.text, msg.err)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		return m, m.status.Update(msg)

	case tea.MouseMsg:
		return m, m.pane.Update(msg)
	}

	// Всё остальное - редактирование текста; черновик можно править и во время Loading
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.ctrl.SetDraft(m.textarea.Value())
	// Сохранение черновика могло только что упасть
	m.syncNotice()
	return m, cmd
}

// submit отправляет черновик на разбор.
//
// Кнопка неактивна (Loading или пустой черновик) - нажатие игнорируется.
// Ошибка валидации уже отражена в состоянии контроллера как Failure.
func (m *Model) submit() tea.Cmd {
	if !m.ctrl.CanSubmit() {
		return nil
	}

	req, err := m.ctrl.Begin(m.now())
	m.refresh()
	if err != nil {
		return nil
	}

	return tea.Batch(m.fetch(req), m.status.Tick)
}

// fetch выполняет запрос вне цикла событий и возвращает результат сообщением.
func (m *Model) fetch(req review.Request) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		text, err := ctrl.Fetch(ctx, req)
		return reviewResultMsg{req: req, text: text, err: err}
	}
}

// resize раскладывает блоки по высоте окна.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.ready = true

	m.textarea.SetWidth(width)
	taHeight := height / 3
	if taHeight < 3 {
		taHeight = 3
	}
	m.textarea.SetHeight(taHeight)
	m.help.Width = width

	if err := m.renderer.SetWidth(width - 2); err != nil {
		utils.Warn("Failed to resize markdown renderer", "error", err, "width", width)
	}

	helpHeight := 1
	if m.help.ShowAll {
		helpHeight = 3
	}
	// textarea рисуется с рамкой: +2 строки
	paneHeight := height - chromeHeight - helpHeight - (taHeight + 2)
	m.pane.Resize(width, paneHeight, 20)
	m.refresh()
}
