// Package debug записывает трейсы запросов к провайдеру в JSON файлы.
//
// Включается флагом --debug (или app.debug): на каждый вызов Review
// сохраняется один файл с входным текстом, ответом, ошибкой и длительностью.
package debug

import "time"

// ReviewTrace - трейс одного вызова провайдера.
type ReviewTrace struct {
	// RunID - уникальный идентификатор вызова (используется в имени файла)
	RunID string `json:"run_id"`

	// Timestamp - время начала вызова
	Timestamp time.Time `json:"timestamp"`

	Provider string `json:"provider"`
	Model    string `json:"model"`

	// Input - текст пользователя (обрезается до MaxTextSize)
	Input      string `json:"input"`
	InputChars int    `json:"input_chars"`

	// Output - текст разбора (обрезается до MaxTextSize)
	Output string `json:"output,omitempty"`

	// Error - полная ошибка провайдера; пользователю она не показывается
	Error string `json:"error,omitempty"`

	// Duration - длительность вызова в миллисекундах
	Duration int64 `json:"duration_ms"`
}
