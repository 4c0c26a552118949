package primitives

import (
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar shows a spinner while a review is in flight, plus optional indicators.
type StatusBar struct {
	spinner   spinner.Model
	loading   bool
	debugMode bool
	notice    string
	mu        sync.RWMutex

	cfg StatusBarConfig
}

// StatusBarConfig holds colors and labels for the status bar.
type StatusBarConfig struct {
	SpinnerColor    lipgloss.Color
	IdleColor       lipgloss.Color
	BackgroundColor lipgloss.Color
	DebugColor      lipgloss.Color
	DebugText       lipgloss.Color
	NoticeColor     lipgloss.Color

	LoadingLabel string
	IdleLabel    string
}

// DefaultStatusBarConfig returns the default color scheme.
func DefaultStatusBarConfig() StatusBarConfig {
	return StatusBarConfig{
		SpinnerColor:    lipgloss.Color("86"),
		IdleColor:       lipgloss.Color("242"),
		BackgroundColor: lipgloss.Color("235"),
		DebugColor:      lipgloss.Color("196"),
		DebugText:       lipgloss.Color("15"),
		NoticeColor:     lipgloss.Color("214"),
		LoadingLabel:    "Analyzing...",
		IdleLabel:       "✓ Ready",
	}
}

// NewStatusBar creates a StatusBar.
func NewStatusBar(cfg StatusBarConfig) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.SpinnerColor)

	return &StatusBar{
		spinner: s,
		cfg:     cfg,
	}
}

// Tick starts the spinner animation.
func (sb *StatusBar) Tick() tea.Msg {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.spinner.Tick()
}

// Update advances the spinner. Ticks stop once loading ends.
func (sb *StatusBar) Update(msg spinner.TickMsg) tea.Cmd {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.loading {
		return nil
	}
	var cmd tea.Cmd
	sb.spinner, cmd = sb.spinner.Update(msg)
	return cmd
}

// Render returns the status bar as a styled string.
func (sb *StatusBar) Render() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	text := sb.cfg.IdleLabel
	color := sb.cfg.IdleColor
	if sb.loading {
		text = sb.spinner.View() + " " + sb.cfg.LoadingLabel
		color = sb.cfg.SpinnerColor
	}

	out := lipgloss.NewStyle().
		Background(sb.cfg.BackgroundColor).
		Foreground(color).
		Padding(0, 1).
		Render(text)

	if sb.debugMode {
		out += lipgloss.NewStyle().
			Background(sb.cfg.DebugColor).
			Foreground(sb.cfg.DebugText).
			Bold(true).
			Padding(0, 1).
			Render("DEBUG")
	}

	if sb.notice != "" {
		out += lipgloss.NewStyle().
			Background(sb.cfg.BackgroundColor).
			Foreground(sb.cfg.NoticeColor).
			Padding(0, 1).
			Render(sb.notice)
	}

	return out
}

// SetLoading toggles the spinner.
func (sb *StatusBar) SetLoading(loading bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.loading = loading
}

// IsLoading reports whether the spinner is shown.
func (sb *StatusBar) IsLoading() bool {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.loading
}

// SetDebugMode toggles the DEBUG indicator.
func (sb *StatusBar) SetDebugMode(enabled bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.debugMode = enabled
}

// SetNotice sets a persistent notice, e.g. that the draft is kept in memory only.
func (sb *StatusBar) SetNotice(notice string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.notice = notice
}
