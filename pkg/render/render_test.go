package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/ilkoid/rate-my-writing/pkg/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, width int) *Renderer {
	t.Helper()
	r, err := New("notty", width, GetColorScheme("default"))
	require.NoError(t, err)
	return r
}

func TestCounters(t *testing.T) {
	tests := []struct {
		draft string
		want  string
	}{
		{"", "0 words · 0 characters"},
		{"Hello world", "2 words · 11 characters"},
		{"One two three", "3 words · 13 characters"},
		{"a", "1 word · 1 character"},
		{"  a b  ", "2 words · 7 characters"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Counters(tt.draft), "draft %q", tt.draft)
	}
}

func TestSubmitLabel(t *testing.T) {
	assert.Equal(t, "Analyzing...", SubmitLabel(true))
	assert.Equal(t, "Review My Writing", SubmitLabel(false))
}

func TestFeedback_States(t *testing.T) {
	r := newTestRenderer(t, 80)

	assert.Equal(t, "", r.Feedback(review.Idle()))
	assert.Equal(t, "Analyzing...", r.Feedback(review.Loading()))

	failure := ansi.Strip(r.Feedback(review.Failure(review.MsgRateLimited)))
	assert.Contains(t, failure, review.MsgRateLimited)

	success := ansi.Strip(r.Feedback(review.Success("Mocked review text")))
	assert.True(t, strings.HasPrefix(success, FeedbackHeader), "got %q", success)
	assert.Contains(t, success, "Mocked review text")
}

func TestMarkdown_RendersStructure(t *testing.T) {
	r := newTestRenderer(t, 80)

	out := ansi.Strip(r.Markdown("## Grammar\n\n- fix *teh* to the\n- use **their**\n"))
	assert.Contains(t, out, "Grammar")
	assert.Contains(t, out, "fix")
	assert.Contains(t, out, "their")
}

func TestMarkdown_StripsWholeResponseFence(t *testing.T) {
	r := newTestRenderer(t, 80)

	out := ansi.Strip(r.Markdown("```markdown\n# Review\nLooks good.\n```"))
	assert.Contains(t, out, "Review")
	assert.Contains(t, out, "Looks good.")
	assert.NotContains(t, out, "```")
}

func TestError_WrapsToWidth(t *testing.T) {
	r := newTestRenderer(t, 20)

	out := ansi.Strip(r.Error(review.MsgRemoteFailure))
	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(strings.TrimRight(line, " ")), 20, "line %q", line)
	}
	assert.Contains(t, strings.Join(strings.Fields(out), " "), review.MsgRemoteFailure)
}

func TestSetWidth(t *testing.T) {
	r := newTestRenderer(t, 0)
	assert.Equal(t, DefaultWidth, r.Width())

	require.NoError(t, r.SetWidth(40))
	assert.Equal(t, 40, r.Width())
}

func TestNew_UnknownStyle(t *testing.T) {
	_, err := New("/nonexistent/style.json", 80, GetColorScheme("default"))
	require.Error(t, err)
}

func TestButton(t *testing.T) {
	r := newTestRenderer(t, 80)
	assert.Contains(t, ansi.Strip(r.Button(LabelSubmit, true)), LabelSubmit)
	assert.Contains(t, ansi.Strip(r.Button(LabelSubmit, false)), LabelSubmit)
	assert.Contains(t, ansi.Strip(r.Header()), "Rate My Writing")
}

func TestGetColorScheme_Fallback(t *testing.T) {
	assert.Equal(t, ColorSchemes["default"], GetColorScheme("no-such-scheme"))
	assert.Equal(t, ColorSchemes["dracula"], GetColorScheme("dracula"))
}
