package primitives

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
)

func TestStatusBar_LoadingState(t *testing.T) {
	sb := NewStatusBar(DefaultStatusBarConfig())

	output := sb.Render()
	assert.Contains(t, output, "✓ Ready")
	assert.False(t, sb.IsLoading())

	sb.SetLoading(true)
	output = sb.Render()
	assert.NotContains(t, output, "✓ Ready")
	assert.Contains(t, output, "Analyzing...")
	assert.True(t, sb.IsLoading())
}

func TestStatusBar_DebugAndNotice(t *testing.T) {
	sb := NewStatusBar(DefaultStatusBarConfig())
	assert.NotContains(t, sb.Render(), "DEBUG")

	sb.SetDebugMode(true)
	assert.Contains(t, sb.Render(), "DEBUG")

	sb.SetNotice("draft kept in memory only")
	assert.Contains(t, sb.Render(), "draft kept in memory only")

	sb.SetNotice("")
	assert.NotContains(t, sb.Render(), "memory only")
}

func TestStatusBar_TicksOnlyWhileLoading(t *testing.T) {
	sb := NewStatusBar(DefaultStatusBarConfig())

	tick, ok := sb.Tick().(spinner.TickMsg)
	assert.True(t, ok)

	assert.Nil(t, sb.Update(tick), "idle bar stops ticking")

	sb.SetLoading(true)
	assert.NotNil(t, sb.Update(tick))
}
