// Рендер

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ilkoid/rate-my-writing/pkg/render"
	"github.com/ilkoid/rate-my-writing/pkg/review"
)

// View реализует tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing UI..."
	}

	styles := m.renderer.Styles()
	loading := m.ctrl.State().Kind == review.KindLoading

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderer.Header(),
		"  ",
		m.renderer.CountersLine(m.ctrl.Draft()),
	)

	button := m.renderer.Button(render.SubmitLabel(loading), m.ctrl.CanSubmit())
	actions := lipgloss.JoinHorizontal(lipgloss.Top,
		button,
		"  ",
		styles.Counters.Render(render.LabelExample+": Ctrl+G · "+render.LabelClear+": Ctrl+L"),
	)

	border := styles.Border.Render(strings.Repeat("─", max(m.width, 1)))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.textarea.View(),
		actions,
		border,
		m.pane.View(),
		border,
		m.status.Render(),
		m.help.View(m.keys),
	)
}
