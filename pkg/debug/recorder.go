package debug

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/ilkoid/rate-my-writing/pkg/config"
	"github.com/ilkoid/rate-my-writing/pkg/llm"
	"github.com/ilkoid/rate-my-writing/pkg/utils"
)

// DefaultLogsDir - директория трейсов по умолчанию.
const DefaultLogsDir = "debug_logs"

// Recorder сохраняет трейсы в JSON файлы.
//
// Потокобезопасен - может использоваться из разных горутин.
type Recorder struct {
	mu     sync.Mutex
	config RecorderConfig
	last   string
}

// RecorderConfig конфигурация для создания Recorder.
type RecorderConfig struct {
	// LogsDir - директория для сохранения трейсов
	LogsDir string

	// MaxTextSize - максимальный размер входа и ответа в байтах
	// (превышение обрезается). 0 означает без ограничений.
	MaxTextSize int

	// Fs - файловая система (по умолчанию afero.NewOsFs)
	Fs afero.Fs
}

// NewRecorder создает Recorder. Если LogsDir не существует, создаёт её.
func NewRecorder(cfg RecorderConfig) (*Recorder, error) {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.LogsDir == "" {
		cfg.LogsDir = DefaultLogsDir
	}
	if err := cfg.Fs.MkdirAll(cfg.LogsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create debug logs directory: %w", err)
	}
	return &Recorder{config: cfg}, nil
}

// Record сохраняет трейс и возвращает путь к файлу.
func (r *Recorder) Record(t ReviewTrace) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.RunID == "" {
		t.RunID = uuid.NewString()
	}
	t.Input = truncateString(t.Input, r.config.MaxTextSize)
	t.Output = truncateString(t.Output, r.config.MaxTextSize)

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal review trace: %w", err)
	}

	name := fmt.Sprintf("review_%s_%s.json", t.Timestamp.Format("20060102_150405"), t.RunID)
	path := filepath.Join(r.config.LogsDir, name)
	if err := afero.WriteFile(r.config.Fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write review trace: %w", err)
	}

	r.last = path
	return path, nil
}

// LastPath возвращает путь к последнему сохранённому трейсу.
func (r *Recorder) LastPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Wrap оборачивает Reviewer: каждый вызов записывается в трейс.
// Ошибка записи трейса только логируется и на результат не влияет.
func Wrap(next llm.Reviewer, rec *Recorder, modelDef config.ModelDef) llm.Reviewer {
	return llm.ReviewerFunc(func(ctx context.Context, text string) (string, error) {
		start := time.Now()
		out, err := next.Review(ctx, text)

		trace := ReviewTrace{
			Timestamp:  start,
			Provider:   modelDef.Provider,
			Model:      modelDef.ModelName,
			Input:      text,
			InputChars: utf8.RuneCountInString(text),
			Output:     out,
			Duration:   time.Since(start).Milliseconds(),
		}
		if err != nil {
			trace.Error = err.Error()
		}

		if path, recErr := rec.Record(trace); recErr != nil {
			utils.Warn("Failed to record review trace", "error", recErr)
		} else {
			utils.Debug("Review trace saved", "path", path)
		}
		return out, err
	})
}

// truncateString обрезает строку по границе руны.
func truncateString(s string, maxSize int) string {
	if maxSize <= 0 || len(s) <= maxSize {
		return s
	}
	cut := maxSize
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "... (truncated)"
}
