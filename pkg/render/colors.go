package render

import "github.com/charmbracelet/lipgloss"

// ColorScheme определяет цвета элементов экрана.
//
// Каждое поле - это lipgloss.Color (hex, ANSI или named color).
type ColorScheme struct {
	Title    lipgloss.Color // Заголовок приложения
	Header   lipgloss.Color // Заголовок блока разбора
	Counters lipgloss.Color // Счётчики слов и символов
	Error    lipgloss.Color // Сообщения об ошибках
	Accent   lipgloss.Color // Активная кнопка, спиннер
	Disabled lipgloss.Color // Неактивная кнопка
	Border   lipgloss.Color // Границы и разделители
}

// ColorSchemes - предустановленные цветовые схемы.
var ColorSchemes = map[string]ColorScheme{
	"default": {
		Title:    lipgloss.Color("205"),
		Header:   lipgloss.Color("86"),
		Counters: lipgloss.Color("242"),
		Error:    lipgloss.Color("196"),
		Accent:   lipgloss.Color("62"),
		Disabled: lipgloss.Color("240"),
		Border:   lipgloss.Color("240"),
	},
	"light": {
		Title:    lipgloss.Color("90"),
		Header:   lipgloss.Color("31"),
		Counters: lipgloss.Color("8"),
		Error:    lipgloss.Color("1"),
		Accent:   lipgloss.Color("25"),
		Disabled: lipgloss.Color("245"),
		Border:   lipgloss.Color("8"),
	},
	"dracula": {
		Title:    lipgloss.Color("#ff79c6"),
		Header:   lipgloss.Color("#8be9fd"),
		Counters: lipgloss.Color("#6272a4"),
		Error:    lipgloss.Color("#ff5555"),
		Accent:   lipgloss.Color("#bd93f9"),
		Disabled: lipgloss.Color("#44475a"),
		Border:   lipgloss.Color("#44475a"),
	},
}

// GetColorScheme возвращает схему по имени, для неизвестного имени - default.
func GetColorScheme(name string) ColorScheme {
	if scheme, ok := ColorSchemes[name]; ok {
		return scheme
	}
	return ColorSchemes["default"]
}

// Styles - готовые lipgloss стили для схемы.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Counters lipgloss.Style
	Error    lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style
	Border   lipgloss.Style
}

// NewStyles собирает стили из схемы.
func NewStyles(c ColorScheme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(c.Title).Bold(true),
		Header:   lipgloss.NewStyle().Foreground(c.Header).Bold(true),
		Counters: lipgloss.NewStyle().Foreground(c.Counters),
		Error:    lipgloss.NewStyle().Foreground(c.Error).Bold(true),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(c.Accent).
			Padding(0, 1).
			Bold(true),
		Disabled: lipgloss.NewStyle().
			Foreground(c.Disabled).
			Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(c.Border),
	}
}
