package primitives

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wrap"
)

// FeedbackPane is a scrollable viewport holding one block of feedback.
//
// The unwrapped content is kept so it can be re-wrapped on resize.
type FeedbackPane struct {
	viewport viewport.Model
	content  string
	mu       sync.RWMutex
}

// PaneConfig holds size limits for FeedbackPane.
type PaneConfig struct {
	MinWidth  int
	MinHeight int
}

// DefaultPaneConfig returns the limits used by the review screen.
func DefaultPaneConfig() PaneConfig {
	return PaneConfig{MinWidth: 20, MinHeight: 1}
}

// NewFeedbackPane creates an empty pane.
func NewFeedbackPane(cfg PaneConfig) *FeedbackPane {
	if cfg.MinWidth <= 0 {
		cfg.MinWidth = 1
	}
	if cfg.MinHeight <= 0 {
		cfg.MinHeight = 1
	}
	return &FeedbackPane{
		viewport: viewport.New(cfg.MinWidth, cfg.MinHeight),
	}
}

// Resize sets the pane dimensions, clamping to at least 1 row and minWidth columns.
func (p *FeedbackPane) Resize(width, height, minWidth int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if height < 1 {
		height = 1
	}
	if width < minWidth {
		width = minWidth
	}

	p.viewport.Width = width
	p.viewport.Height = height
	p.viewport.SetContent(p.wrapped())
	p.clamp()
}

// SetContent replaces the pane content and scrolls to the top.
func (p *FeedbackPane) SetContent(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.content = content
	p.viewport.SetContent(p.wrapped())
	p.viewport.GotoTop()
}

// ReplaceContent swaps the content but keeps the scroll offset, clamped
// to the new length. Used when the same text is re-rendered, e.g. for a new width.
func (p *FeedbackPane) ReplaceContent(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.content = content
	p.viewport.SetContent(p.wrapped())
	p.clamp()
}

// Content returns the unwrapped content.
func (p *FeedbackPane) Content() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.content
}

// Update forwards mouse and key messages to the viewport.
func (p *FeedbackPane) Update(msg tea.Msg) tea.Cmd {
	p.mu.Lock()
	defer p.mu.Unlock()

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the visible part.
func (p *FeedbackPane) View() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.viewport.View()
}

// ScrollUp scrolls up by a page.
func (p *FeedbackPane) ScrollUp() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewport.PageUp()
}

// ScrollDown scrolls down by a page.
func (p *FeedbackPane) ScrollDown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewport.PageDown()
}

// Offset returns the current vertical scroll offset.
func (p *FeedbackPane) Offset() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.viewport.YOffset
}

// TotalLines returns the number of wrapped lines.
func (p *FeedbackPane) TotalLines() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.viewport.TotalLineCount()
}

// Dimensions returns the current width and height.
func (p *FeedbackPane) Dimensions() (width, height int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.viewport.Width, p.viewport.Height
}

// wrapped must be called with the lock held.
func (p *FeedbackPane) wrapped() string {
	if p.content == "" || p.viewport.Width <= 0 {
		return p.content
	}
	lines := strings.Split(p.content, "\n")
	for i, line := range lines {
		lines[i] = wrap.String(line, p.viewport.Width)
	}
	return strings.Join(lines, "\n")
}

// clamp must be called with the lock held.
func (p *FeedbackPane) clamp() {
	maxOffset := p.viewport.TotalLineCount() - p.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.viewport.YOffset > maxOffset {
		p.viewport.SetYOffset(maxOffset)
	}
}
