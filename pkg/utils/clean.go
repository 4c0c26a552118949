// Package utils предоставляет вспомогательные функции для обработки ответов LLM.
package utils

import (
	"strings"
)

// fenceLangs — языки, с которыми модели оборачивают markdown-ответ целиком.
var fenceLangs = []string{"markdown", "Markdown", "md", "MD", "text"}

// CleanMarkdownFence снимает обёртку ```markdown ... ``` вокруг всего ответа.
//
// Модели иногда возвращают разбор целиком внутри code block, и тогда
// рендерер показывает его как код, а не как форматированный текст.
// Обёртка снимается только если ответ начинается И заканчивается забором;
// code blocks внутри текста не трогаются.
//
// Примеры:
//
//	"```markdown\n# Title\n```" → "# Title"
//	"Intro\n```go\nx := 1\n```" → без изменений
func CleanMarkdownFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") || len(trimmed) < 6 {
		return s
	}

	body := strings.TrimSuffix(strings.TrimPrefix(trimmed, "```"), "```")

	// Первая строка — язык забора (может быть пустой)
	firstLine, rest, found := strings.Cut(body, "\n")
	if !found {
		return s
	}
	lang := strings.TrimSpace(firstLine)
	if lang != "" && !isFenceLang(lang) {
		return s
	}

	// Вложенный забор означает, что это не обёртка, а несколько блоков
	if strings.Contains(rest, "```") {
		return s
	}

	return strings.TrimSpace(rest)
}

func isFenceLang(lang string) bool {
	for _, l := range fenceLangs {
		if l == lang {
			return true
		}
	}
	return false
}
