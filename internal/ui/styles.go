// Красота

package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ilkoid/rate-my-writing/pkg/render"
)

const placeholder = "Paste or type your writing here..."

const noticeDegraded = "draft kept in memory only"

// Строки вокруг области разбора без поля ввода и помощи:
// заголовок со счётчиками, кнопка, две линии, статус-бар.
const chromeHeight = 5

// textareaStyles раскрашивает поле ввода в цвета схемы.
func textareaStyles(scheme render.ColorScheme) (focused, blurred textarea.Style) {
	focused, blurred = textarea.DefaultStyles()

	focused.CursorLine = lipgloss.NewStyle()
	focused.Placeholder = lipgloss.NewStyle().Foreground(scheme.Disabled)
	focused.Base = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(scheme.Accent)

	blurred.Base = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(scheme.Border)
	return focused, blurred
}
