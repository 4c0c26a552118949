package primitives

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func manyLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("Line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestFeedbackPane_SetContentReplaces(t *testing.T) {
	p := NewFeedbackPane(DefaultPaneConfig())
	p.Resize(80, 10, 20)

	p.SetContent("first")
	p.SetContent("second")

	assert.Equal(t, "second", p.Content())
	assert.Contains(t, p.View(), "second")
	assert.NotContains(t, p.View(), "first")
}

func TestFeedbackPane_MinDimensions(t *testing.T) {
	p := NewFeedbackPane(DefaultPaneConfig())
	p.SetContent("Test content")

	p.Resize(10, -3, 20)

	width, height := p.Dimensions()
	assert.Equal(t, 20, width, "width is clamped to the minimum")
	assert.Equal(t, 1, height, "height is never below 1")
}

func TestFeedbackPane_WrapsLongLines(t *testing.T) {
	p := NewFeedbackPane(DefaultPaneConfig())
	p.Resize(20, 10, 20)

	p.SetContent(strings.Repeat("word ", 20))
	assert.Greater(t, p.TotalLines(), 1)
}

func TestFeedbackPane_ScrollAndClamp(t *testing.T) {
	p := NewFeedbackPane(DefaultPaneConfig())
	p.Resize(80, 5, 20)
	p.SetContent(manyLines(30))

	assert.Equal(t, 0, p.Offset(), "new content starts at the top")

	p.ScrollDown()
	assert.Greater(t, p.Offset(), 0)

	p.ScrollUp()
	assert.Equal(t, 0, p.Offset())

	for i := 0; i < 10; i++ {
		p.ScrollDown()
	}
	p.Resize(80, 25, 20)
	maxOffset := p.TotalLines() - 25
	if maxOffset < 0 {
		maxOffset = 0
	}
	assert.LessOrEqual(t, p.Offset(), maxOffset)
	assert.GreaterOrEqual(t, p.Offset(), 0)
}

func TestFeedbackPane_ReplaceContentKeepsOffset(t *testing.T) {
	p := NewFeedbackPane(DefaultPaneConfig())
	p.Resize(80, 5, 20)
	p.SetContent(manyLines(30))
	p.ScrollDown()
	offset := p.Offset()
	assert.Greater(t, offset, 0)

	p.ReplaceContent(manyLines(30))
	assert.Equal(t, offset, p.Offset())

	p.ReplaceContent(manyLines(3))
	assert.Equal(t, 0, p.Offset(), "offset is clamped to shorter content")
}

func TestFeedbackPane_ConcurrentAccess(t *testing.T) {
	p := NewFeedbackPane(DefaultPaneConfig())

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			p.Resize(80, 20+i%10, 20)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			p.SetContent(fmt.Sprintf("review %d", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = p.View()
			_, _ = p.Dimensions()
		}
	}()
	wg.Wait()

	assert.Equal(t, "review 99", p.Content())
}
