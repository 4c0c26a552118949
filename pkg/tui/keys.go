// Package tui предоставляет reusable KeyMap и примитивы для экрана разбора.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap определяет клавиатурные сокращения.
//
// Все сочетания выбраны так, чтобы не пересекаться с редактированием
// в textarea (ctrl+e, ctrl+a, ctrl+k и т.д. заняты им).
type KeyMap struct {
	Submit      key.Binding
	LoadExample key.Binding
	Clear       key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ToggleHelp  key.Binding
	Quit        key.Binding
}

// ShortHelp реализует help.KeyMap интерфейс.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.Submit,
		km.LoadExample,
		km.Clear,
		km.ToggleHelp,
		km.Quit,
	}
}

// FullHelp реализует help.KeyMap интерфейс.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			km.Submit,
			km.LoadExample,
			km.Clear,
		},
		{
			km.ScrollUp,
			km.ScrollDown,
			km.ToggleHelp,
		},
		{
			km.Quit,
		},
	}
}

// DefaultKeyMap возвращает дефолтный KeyMap.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "review my writing"),
		),
		LoadExample: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("Ctrl+G", "load example"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "clear"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll feedback up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll feedback down"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("ctrl+_", "f1"),
			key.WithHelp("F1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("Esc", "quit"),
		),
	}
}
