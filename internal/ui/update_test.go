package ui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/rate-my-writing/pkg/draft"
	"github.com/ilkoid/rate-my-writing/pkg/llm"
	"github.com/ilkoid/rate-my-writing/pkg/render"
	"github.com/ilkoid/rate-my-writing/pkg/review"
)

var start = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// clock - управляемые часы для rate limit.
type clock struct{ t time.Time }

func (c *clock) now() time.Time         { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	m     Model
	calls *atomic.Int32
	clock *clock
	store *draft.Store
}

func newHarness(t *testing.T, reply string, replyErr error) *harness {
	t.Helper()

	calls := &atomic.Int32{}
	reviewer := llm.ReviewerFunc(func(_ context.Context, _ string) (string, error) {
		calls.Add(1)
		return reply, replyErr
	})

	store := draft.NewStore(draft.NewMemoryBackend(), "memory")
	ctrl := review.NewController(reviewer, store)

	r, err := render.New("notty", 80, render.GetColorScheme("default"))
	require.NoError(t, err)

	c := &clock{t: start}
	m := New(context.Background(), ctrl, r, Options{Now: c.now})

	h := &harness{m: m, calls: calls, clock: c, store: store}
	h.send(tea.WindowSizeMsg{Width: 100, Height: 60})
	return h
}

// send прогоняет сообщение через Update и возвращает команду.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) press(k tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: k})
}

// run выполняет команду и доставляет результат запроса обратно в модель.
func (h *harness) run(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		if res, ok := msg.(reviewResultMsg); ok {
			h.send(res)
		}
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func (h *harness) view() string {
	return ansi.Strip(h.m.View())
}

func TestView_InitialScreen(t *testing.T) {
	h := newHarness(t, "Mocked review text", nil)

	v := h.view()
	assert.Contains(t, v, render.Title)
	assert.Contains(t, v, "0 words · 0 characters")
	assert.Contains(t, v, "Review My Writing")
	assert.Contains(t, v, "Load Example")
	assert.Contains(t, v, "Clear")
	assert.NotContains(t, v, render.FeedbackHeader)
}

func TestTyping_UpdatesCountersAndDraft(t *testing.T) {
	h := newHarness(t, "Mocked review text", nil)

	h.typeText("Hello world")

	assert.Equal(t, "Hello world", h.m.ctrl.Draft())
	assert.Equal(t, "Hello world", h.store.Load())
	assert.Contains(t, h.view(), "2 words · 11 characters")
}

func TestSubmit_EmptyDraftIsIgnored(t *testing.T) {
	h := newHarness(t, "Mocked review text", nil)

	cmd := h.press(tea.KeyCtrlS)
	assert.Nil(t, cmd)
	assert.Zero(t, h.calls.Load())
	assert.Equal(t, review.KindIdle, h.m.ctrl.State().Kind)
}

func TestSubmit_ShowsReview(t *testing.T) {
	h := newHarness(t, "Mocked review text", nil)
	h.typeText("Teh quick brwn fox")

	cmd := h.press(tea.KeyCtrlS)
	require.NotNil(t, cmd)
	assert.Equal(t, review.KindLoading, h.m.ctrl.State().Kind)
	assert.Contains(t, h.view(), "Analyzing...")
	assert.False(t, h.m.ctrl.CanSubmit())

	// Повторное нажатие во время Loading ничего не делает
	assert.Nil(t, h.press(tea.KeyCtrlS))

	h.run(cmd)

	assert.Equal(t, int32(1), h.calls.Load())
	v := h.view()
	assert.Contains(t, v, render.FeedbackHeader)
	assert.Contains(t, v, "Mocked review text")
	assert.Contains(t, v, "Review My Writing")
}

func TestSubmit_RateLimited(t *testing.T) {
	h := newHarness(t, "Mocked review text", nil)
	h.typeText("Hello world")
	h.run(h.press(tea.KeyCtrlS))

	h.clock.advance(2 * time.Second)
	h.typeText("!")
	cmd := h.press(tea.KeyCtrlS)

	assert.Nil(t, cmd)
	assert.Equal(t, int32(1), h.calls.Load())
	assert.Contains(t, h.view(), review.MsgRateLimited)
}

func TestSubmit_WhitespaceOnlyShowsMessage(t *testing.T) {
	h := newHarness(t, "Mocked review text", nil)
	h.typeText("   ")

	assert.Nil(t, h.press(tea.KeyCtrlS))
	assert.Zero(t, h.calls.Load())
	assert.Contains(t, h.view(), review.MsgEmptyInput)
}

func TestSubmit_RemoteFailure(t *testing.T) {
	h := newHarness(t, "", errors.New("500 internal server error"))
	h.typeText("Hello")

	h.run(h.press(tea.KeyCtrlS))

	v := h.view()
	assert.Contains(t, v, "Sorry, there was an issue with the review.")
	assert.NotContains(t, v, "500")
}

func TestClear_ResetsEverything(t *testing.T) {
	h := newHarness(t, "Mocked review text", nil)
	h.typeText("Hello world")
	h.run(h.press(tea.KeyCtrlS))

	h.press(tea.KeyCtrlL)

	assert.Equal(t, "", h.m.textarea.Value())
	assert.Equal(t, "", h.store.Load())
	v := h.view()
	assert.Contains(t, v, "0 words · 0 characters")
	assert.NotContains(t, v, "Mocked review text")
}

func TestClear_DuringLoadingKeepsSubmitDisabled(t *testing.T) {
	h := newHarness(t, "Mocked review text", nil)
	h.typeText("Hello")

	cmd := h.press(tea.KeyCtrlS)
	h.press(tea.KeyCtrlL)
	h.typeText("World")

	assert.Nil(t, h.press(tea.KeyCtrlS), "second submit while the first is in flight")
	assert.Equal(t, review.KindLoading, h.m.ctrl.State().Kind)
	assert.Contains(t, h.view(), "Analyzing...")

	h.run(cmd)

	assert.Equal(t, int32(1), h.calls.Load())
	assert.Equal(t, review.KindIdle, h.m.ctrl.State().Kind)
	assert.Equal(t, "World", h.m.textarea.Value())
	assert.NotContains(t, h.view(), "Mocked review text")
}

// brokenBackend не может сохранить черновик.
type brokenBackend struct{}

func (brokenBackend) Get(string) (string, bool, error) { return "", false, nil }
func (brokenBackend) Set(string, string) error         { return errors.New("disk full") }
func (brokenBackend) Close() error                     { return nil }

func TestTyping_SaveFailureShowsNotice(t *testing.T) {
	store := draft.NewStore(brokenBackend{}, "file")
	ctrl := review.NewController(llm.Unavailable("no key"), store)
	r, err := render.New("notty", 80, render.GetColorScheme("default"))
	require.NoError(t, err)

	h := &harness{m: New(context.Background(), ctrl, r, Options{Degraded: store.Degraded}), store: store}
	h.send(tea.WindowSizeMsg{Width: 100, Height: 60})
	require.NotContains(t, h.view(), noticeDegraded)

	h.typeText("Hi")

	assert.True(t, store.Degraded())
	assert.Contains(t, h.view(), noticeDegraded)
	assert.Equal(t, "Hi", store.Load(), "draft is kept in memory")
}

func TestResize_KeepsFeedbackScroll(t *testing.T) {
	long := strings.Repeat("- point\n", 80)
	h := newHarness(t, long, nil)
	h.typeText("Hello")
	h.run(h.press(tea.KeyCtrlS))

	h.press(tea.KeyPgDown)
	offset := h.m.pane.Offset()
	require.Greater(t, offset, 0)

	h.send(tea.WindowSizeMsg{Width: 100, Height: 50})
	assert.Greater(t, h.m.pane.Offset(), 0, "resize does not jump back to the top")
}

func TestLoadExample(t *testing.T) {
	h := newHarness(t, "Mocked review text", nil)

	h.press(tea.KeyCtrlG)

	assert.Contains(t, h.m.textarea.Value(), "quick brwn fox")
	assert.Equal(t, review.ExampleText, h.store.Load())
	assert.Contains(t, h.view(), render.Counters(review.ExampleText))
}

func TestDraftRestoredOnStart(t *testing.T) {
	store := draft.NewStore(draft.NewMemoryBackend(), "memory")
	store.Save("saved earlier")

	ctrl := review.NewController(llm.Unavailable("no key"), store)
	r, err := render.New("notty", 80, render.GetColorScheme("default"))
	require.NoError(t, err)

	m := New(context.Background(), ctrl, r, Options{})
	assert.Equal(t, "saved earlier", m.textarea.Value())
}

func TestQuit(t *testing.T) {
	h := newHarness(t, "", nil)

	cmd := h.press(tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestView_NotReadyBeforeResize(t *testing.T) {
	store := draft.NewStore(draft.NewMemoryBackend(), "memory")
	ctrl := review.NewController(llm.Unavailable("no key"), store)
	r, err := render.New("notty", 80, render.GetColorScheme("default"))
	require.NoError(t, err)

	m := New(context.Background(), ctrl, r, Options{})
	assert.Equal(t, "Initializing UI...", m.View())
}
