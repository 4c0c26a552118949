// Package app собирает компоненты приложения из конфигурации.
//
// Используется и TUI, и одноразовой командой review: вся логика
// инициализации инкапсулирована здесь, cmd/ только вызывает её.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilkoid/rate-my-writing/pkg/config"
	"github.com/ilkoid/rate-my-writing/pkg/debug"
	"github.com/ilkoid/rate-my-writing/pkg/draft"
	"github.com/ilkoid/rate-my-writing/pkg/factory"
	"github.com/ilkoid/rate-my-writing/pkg/llm"
	"github.com/ilkoid/rate-my-writing/pkg/prompt"
	"github.com/ilkoid/rate-my-writing/pkg/render"
	"github.com/ilkoid/rate-my-writing/pkg/review"
	"github.com/ilkoid/rate-my-writing/pkg/utils"
)

// Components содержит всё, что нужно экрану разбора.
type Components struct {
	Config     *config.AppConfig
	ModelName  string
	Model      config.ModelDef
	Prompt     *prompt.PromptFile
	Reviewer   llm.Reviewer
	Store      *draft.Store
	Controller *review.Controller
	Renderer   *render.Renderer
	// Recorder - трейсы запросов, только при app.debug
	Recorder *debug.Recorder
}

// maxTraceText - предел размера текста в одном трейсе.
const maxTraceText = 64 * 1024

// ConfigPathFinder определяет стратегию поиска пути к config.yaml.
type ConfigPathFinder interface {
	FindConfigPath() string
}

// DefaultConfigPathFinder реализует стандартную стратегию поиска config.yaml.
//
// Порядок поиска:
// 1. Флаг --config (если указан)
// 2. Текущая директория (./config.yaml)
// 3. Директория бинарника
// 4. ~/.rate-my-writing/config.yaml
type DefaultConfigPathFinder struct {
	// ConfigFlag - значение флага --config, если указан
	ConfigFlag string
}

// FindConfigPath находит путь к config.yaml.
//
// Если файл нигде не найден, возвращается ./config.yaml: Load вернёт
// config.ErrConfigNotFound.
func (f *DefaultConfigPathFinder) FindConfigPath() string {
	if f.ConfigFlag != "" {
		return resolveAbsPath(f.ConfigFlag)
	}

	candidates := []string{"config.yaml"}
	if execPath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(execPath), "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".rate-my-writing", "config.yaml"))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return resolveAbsPath(p)
		}
	}
	return resolveAbsPath("config.yaml")
}

// InitializeConfig загружает конфигурацию.
//
// Отсутствие файла не ошибка, если путь не задан явно: используется
// config.Default() (ключи из OPENAI_API_KEY / GEMINI_API_KEY).
// Возвращает путь к файлу или пустую строку для дефолтной конфигурации.
func InitializeConfig(finder ConfigPathFinder, explicit bool) (*config.AppConfig, string, error) {
	cfgPath := finder.FindConfigPath()

	cfg, err := config.Load(cfgPath)
	if err == nil {
		return cfg, cfgPath, nil
	}
	if errors.Is(err, config.ErrConfigNotFound) && !explicit {
		utils.Warn("Config file not found, using defaults from environment", "path", cfgPath)
		return config.Default(), "", nil
	}
	return nil, cfgPath, fmt.Errorf("failed to load config from %s: %w", cfgPath, err)
}

// Initialize создаёт и связывает все компоненты.
//
// modelName выбирает модель из models.definitions (пусто - models.default).
// Отсутствие API ключа не ошибка: Reviewer отвечает ошибкой на каждый
// запрос, и пользователь видит общее сообщение о сбое.
func Initialize(ctx context.Context, cfg *config.AppConfig, modelName string) (*Components, error) {
	if modelName == "" {
		modelName = cfg.Models.Default
	}
	modelDef, ok := cfg.GetReviewModel(modelName)
	if !ok {
		return nil, fmt.Errorf("model %q not found in models.definitions", modelName)
	}

	utils.Info("Initializing components",
		"model", modelName,
		"provider", modelDef.Provider,
		"draft_backend", cfg.Draft.Backend)

	p, err := prompt.LoadOrDefault(cfg.Review.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt: %w", err)
	}

	reviewer, err := factory.NewReviewer(ctx, modelDef, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create reviewer: %w", err)
	}

	var recorder *debug.Recorder
	if cfg.App.Debug {
		recorder, err = debug.NewRecorder(debug.RecorderConfig{
			LogsDir:     cfg.App.DebugLogsDir,
			MaxTextSize: maxTraceText,
		})
		if err != nil {
			utils.Warn("Review traces disabled", "error", err)
		} else {
			reviewer = debug.Wrap(reviewer, recorder, modelDef)
		}
	}

	renderer, err := render.New(cfg.App.GlamourStyle, render.DefaultWidth, render.GetColorScheme(cfg.App.ColorScheme))
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	store := draft.Open(cfg.Draft)
	ctrl := review.NewController(reviewer, store,
		review.WithWindow(cfg.Review.RateLimitWindow),
		review.WithTimeout(cfg.EffectiveTimeout(modelDef)),
	)

	return &Components{
		Config:     cfg,
		ModelName:  modelName,
		Model:      modelDef,
		Prompt:     p,
		Reviewer:   reviewer,
		Store:      store,
		Controller: ctrl,
		Renderer:   renderer,
		Recorder:   recorder,
	}, nil
}

// Close освобождает хранилище черновика.
func (c *Components) Close() error {
	if c == nil || c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// resolveAbsPath преобразует путь в абсолютный (если это не уже абсолютный путь).
func resolveAbsPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
