// Package utils предоставляет файловый логгер для TUI приложения.
//
// TUI занимает весь терминал, поэтому логи пишутся в .log файл, а не в stderr.
// Внутри — zap.SugaredLogger; наружу — прежний API Info/Warn/Error/Debug
// с парами ключ-значение.
package utils

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logMutex sync.RWMutex
	sugar    = zap.NewNop().Sugar()
	logger   *zap.Logger
)

// DefaultLogFile возвращает имя лог-файла вида rate-my-writing-YYYY-MM-DD-HH-MM.log.
func DefaultLogFile() string {
	return fmt.Sprintf("rate-my-writing-%s.log", time.Now().Format("2006-01-02-15-04"))
}

// InitLogger открывает лог-файл и переключает глобальный логгер на него.
//
// Пустой path — имя по умолчанию (DefaultLogFile). debug включает уровень DEBUG.
// Повторный вызов заменяет логгер (старый синхронизируется).
func InitLogger(path string, debug bool) error {
	if path == "" {
		path = DefaultLogFile()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.DisableStacktrace = true
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	SetLogger(l)
	Info("Logger initialized", "file", path, "debug", debug)
	return nil
}

// SetLogger подменяет глобальный логгер (в тестах — zaptest/observer).
func SetLogger(l *zap.Logger) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logger != nil {
		_ = logger.Sync()
	}
	logger = l
	sugar = l.Sugar()
}

// Info - информационное сообщение.
func Info(msg string, keyvals ...any) {
	current().Infow(msg, keyvals...)
}

// Error - сообщение об ошибке.
func Error(msg string, keyvals ...any) {
	current().Errorw(msg, keyvals...)
}

// Debug - отладочное сообщение.
func Debug(msg string, keyvals ...any) {
	current().Debugw(msg, keyvals...)
}

// Warn - предупреждение.
func Warn(msg string, keyvals ...any) {
	current().Warnw(msg, keyvals...)
}

func current() *zap.SugaredLogger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return sugar
}

// Close сбрасывает буферы и возвращает no-op логгер.
//
// Вызывается через defer в main().
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
	sugar = zap.NewNop().Sugar()
}
