// Package render превращает состояние отправки в текст для терминала.
//
// Пакет не делает I/O и не меняет состояние: только строки на входе и выходе.
// Markdown разбора рендерится через glamour, сообщения об ошибках
// переносятся по словам через reflow.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/ilkoid/rate-my-writing/pkg/config"
	"github.com/ilkoid/rate-my-writing/pkg/review"
	"github.com/ilkoid/rate-my-writing/pkg/utils"
)

// Подписи интерфейса.
const (
	Title          = "✍️ Rate My Writing"
	FeedbackHeader = "📋 Feedback"
	LabelSubmit    = "Review My Writing"
	LabelLoading   = "Analyzing..."
	LabelExample   = "Load Example"
	LabelClear     = "Clear"
)

// DefaultWidth - ширина переноса до первого WindowSizeMsg.
const DefaultWidth = 80

// Renderer рендерит разбор и служебные строки.
type Renderer struct {
	style  string
	width  int
	md     *glamour.TermRenderer
	styles Styles
}

// New создаёт Renderer.
//
// style - имя стиля glamour ("auto", "dark", "light", "notty", ...) или путь
// к JSON-стилю. Пустое имя означает config.DefaultGlamourStyle.
func New(style string, width int, scheme ColorScheme) (*Renderer, error) {
	if style == "" {
		style = config.DefaultGlamourStyle
	}
	r := &Renderer{
		style:  style,
		styles: NewStyles(scheme),
	}
	if err := r.SetWidth(width); err != nil {
		return nil, err
	}
	return r, nil
}

// SetWidth пересоздаёт markdown-рендерер под новую ширину.
func (r *Renderer) SetWidth(width int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if r.md != nil && width == r.width {
		return nil
	}

	styleOpt := glamour.WithStylePath(r.style)
	if r.style == config.DefaultGlamourStyle {
		styleOpt = glamour.WithAutoStyle()
	}

	md, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return fmt.Errorf("create markdown renderer (style %q): %w", r.style, err)
	}

	r.md = md
	r.width = width
	return nil
}

// Width возвращает текущую ширину переноса.
func (r *Renderer) Width() int { return r.width }

// Styles возвращает стили схемы.
func (r *Renderer) Styles() Styles { return r.styles }

// Feedback рендерит блок разбора для состояния.
func (r *Renderer) Feedback(st review.State) string {
	switch st.Kind {
	case review.KindLoading:
		return LabelLoading
	case review.KindSuccess:
		return r.styles.Header.Render(FeedbackHeader) + "\n" + r.Markdown(st.Review)
	case review.KindFailure:
		return r.Error(st.Message)
	default:
		return ""
	}
}

// Markdown рендерит текст разбора.
//
// Если модель обернула весь ответ в ```markdown, обёртка снимается.
// При ошибке glamour возвращается исходный текст с переносом по словам.
func (r *Renderer) Markdown(text string) string {
	cleaned := utils.CleanMarkdownFence(text)

	out, err := r.md.Render(cleaned)
	if err != nil {
		utils.Warn("Markdown render failed, showing raw text", "error", err)
		return wordwrap.String(cleaned, r.width)
	}
	return strings.Trim(out, "\n")
}

// Error рендерит сообщение об ошибке с переносом по словам.
func (r *Renderer) Error(message string) string {
	return r.styles.Error.Render(wordwrap.String(message, r.width))
}

// Header рендерит заголовок приложения.
func (r *Renderer) Header() string {
	return r.styles.Title.Render(Title)
}

// CountersLine рендерит счётчики черновика.
func (r *Renderer) CountersLine(draft string) string {
	return r.styles.Counters.Render(Counters(draft))
}

// Button рендерит кнопку отправки; неактивная кнопка приглушена.
func (r *Renderer) Button(label string, enabled bool) string {
	if enabled {
		return r.styles.Button.Render(label)
	}
	return r.styles.Disabled.Render(label)
}

// Counters - "N words · M characters" с согласованием числа.
func Counters(draft string) string {
	words := review.WordCount(draft)
	chars := review.CharCount(draft)
	return fmt.Sprintf("%d %s · %d %s",
		words, plural(words, "word", "words"),
		chars, plural(chars, "character", "characters"))
}

// SubmitLabel - подпись кнопки отправки.
func SubmitLabel(loading bool) string {
	if loading {
		return LabelLoading
	}
	return LabelSubmit
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
