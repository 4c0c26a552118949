package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Теги провайдеров. Провайдер выбирается при конфигурации, а не в коде UI.
const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderZai      = "zai"
	ProviderGemini   = "gemini"
)

// Бэкенды хранения черновика.
const (
	DraftBackendFile   = "file"
	DraftBackendSQLite = "sqlite"
	DraftBackendMemory = "memory"
)

// ErrConfigNotFound возвращается Load, если файла нет. Вызывающий код
// может откатиться на Default().
var ErrConfigNotFound = errors.New("config file not found")

// AppConfig — корневая структура конфигурации.
// Она зеркалит структуру config.yaml.
type AppConfig struct {
	Models ModelsConfig `yaml:"models"`
	Review ReviewConfig `yaml:"review"`
	Draft  DraftConfig  `yaml:"draft"`
	App    AppSpecific  `yaml:"app"`
}

// ModelsConfig — настройки AI моделей.
type ModelsConfig struct {
	Default     string              `yaml:"default"`     // Алиас модели для review (например, "gpt-4")
	Definitions map[string]ModelDef `yaml:"definitions"` // Словарь определений моделей
}

// ModelDef — параметры конкретной модели.
type ModelDef struct {
	Provider    string        `yaml:"provider"`   // "openai", "gemini", "deepseek", "zai"
	ModelName   string        `yaml:"model_name"` // Реальное имя в API
	APIKey      string        `yaml:"api_key"`    // Поддерживает ${VAR}
	BaseURL     string        `yaml:"base_url"`   // Для OpenAI-совместимых провайдеров
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"` // Go умеет парсить строки вида "60s", "1m"

	// Лимит запросов к провайдеру (0 = без лимита)
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`

	// Только для gemini
	SafetyThreshold  string   `yaml:"safety_threshold"`  // BLOCK_MEDIUM_AND_ABOVE и т.д.
	SafetyCategories []string `yaml:"safety_categories"` // HARM_CATEGORY_*
}

// ReviewConfig — настройки контроллера отправки.
type ReviewConfig struct {
	RateLimitWindow time.Duration `yaml:"rate_limit_window"` // Минимум между успешными отправками
	Timeout         time.Duration `yaml:"timeout"`           // Потолок на один запрос к модели
	PromptFile      string        `yaml:"prompt_file"`       // YAML с шаблоном промпта (опционально)
}

// DraftConfig — где хранится черновик.
type DraftConfig struct {
	Backend string `yaml:"backend"` // file | sqlite | memory
	Path    string `yaml:"path"`
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug        bool   `yaml:"debug"`
	LogFile      string `yaml:"log_file"`
	GlamourStyle string `yaml:"glamour_style"` // auto | dark | light | notty
	ColorScheme  string `yaml:"color_scheme"`  // default | light | dracula
	// DebugLogsDir - куда писать JSON трейсы запросов при debug: true
	DebugLogsDir string `yaml:"debug_logs_dir"`
}

// Значения по умолчанию.
const (
	DefaultRateLimitWindow = 5 * time.Second
	DefaultReviewTimeout   = 60 * time.Second
	DefaultSafetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	DefaultGlamourStyle    = "auto"
)

// DefaultSafetyCategories — категории, для которых выставляется порог.
var DefaultSafetyCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(rawBytes)
}

// Parse разбирает YAML (с подстановкой ${VAR}), применяет дефолты и валидирует.
func Parse(rawBytes []byte) (*AppConfig, error) {
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default собирает конфигурацию без файла, из переменных окружения.
//
// Если задан GEMINI_API_KEY и не задан OPENAI_API_KEY, по умолчанию
// выбирается gemini. Отсутствие ключей не ошибка: см. APIKeyMissing.
func Default() *AppConfig {
	cfg := &AppConfig{
		Models: ModelsConfig{
			Default: "gpt-4",
			Definitions: map[string]ModelDef{
				"gpt-4": {
					Provider:    ProviderOpenAI,
					ModelName:   "gpt-4",
					APIKey:      os.Getenv("OPENAI_API_KEY"),
					Temperature: 0.3,
				},
				"gemini": {
					Provider:  ProviderGemini,
					ModelName: "gemini-2.0-flash",
					APIKey:    os.Getenv("GEMINI_API_KEY"),
				},
			},
		},
	}
	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("GEMINI_API_KEY") != "" {
		cfg.Models.Default = "gemini"
	}

	cfg.applyDefaults()
	return cfg
}

// applyDefaults заполняет незаданные поля.
func (c *AppConfig) applyDefaults() {
	if c.Review.RateLimitWindow == 0 {
		c.Review.RateLimitWindow = DefaultRateLimitWindow
	}
	if c.Review.Timeout == 0 {
		c.Review.Timeout = DefaultReviewTimeout
	}
	if c.Draft.Backend == "" {
		c.Draft.Backend = DraftBackendFile
	}
	if c.Draft.Path == "" && c.Draft.Backend != DraftBackendMemory {
		c.Draft.Path = defaultDraftPath(c.Draft.Backend)
	}
	if c.App.GlamourStyle == "" {
		c.App.GlamourStyle = DefaultGlamourStyle
	}

	for name, def := range c.Models.Definitions {
		if def.Provider == ProviderGemini {
			if def.SafetyThreshold == "" {
				def.SafetyThreshold = DefaultSafetyThreshold
			}
			if len(def.SafetyCategories) == 0 {
				def.SafetyCategories = append([]string(nil), DefaultSafetyCategories...)
			}
		}
		if def.Burst == 0 && def.RequestsPerMinute > 0 {
			def.Burst = 1
		}
		c.Models.Definitions[name] = def
	}
}

// defaultDraftPath — ~/.rate-my-writing/draft.{json,db}, либо текущая директория.
func defaultDraftPath(backend string) string {
	name := "draft.json"
	if backend == DraftBackendSQLite {
		name = "draft.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".rate-my-writing", name)
}

// Validate проверяет обязательные поля.
//
// Отсутствующий API ключ здесь НЕ ошибка — старт не должен падать.
func (c *AppConfig) Validate() error {
	if len(c.Models.Definitions) == 0 {
		return fmt.Errorf("models.definitions must not be empty")
	}
	if c.Models.Default == "" {
		return fmt.Errorf("models.default is required")
	}
	if _, ok := c.Models.Definitions[c.Models.Default]; !ok {
		return fmt.Errorf("default model '%s' is not defined in definitions", c.Models.Default)
	}

	for name, def := range c.Models.Definitions {
		if !IsKnownProvider(def.Provider) {
			return fmt.Errorf("model '%s': unknown provider '%s'", name, def.Provider)
		}
		if def.ModelName == "" {
			return fmt.Errorf("model '%s': model_name is required", name)
		}
		if def.Timeout < 0 || def.RequestsPerMinute < 0 || def.Burst < 0 {
			return fmt.Errorf("model '%s': timeout, requests_per_minute and burst must not be negative", name)
		}
	}

	if c.Review.RateLimitWindow < 0 {
		return fmt.Errorf("review.rate_limit_window must not be negative")
	}
	if c.Review.Timeout < 0 {
		return fmt.Errorf("review.timeout must not be negative")
	}

	switch c.Draft.Backend {
	case DraftBackendFile, DraftBackendSQLite, DraftBackendMemory:
	default:
		return fmt.Errorf("draft.backend must be one of file, sqlite, memory; got '%s'", c.Draft.Backend)
	}

	return nil
}

// IsKnownProvider сообщает, умеет ли factory собрать клиента для тега.
func IsKnownProvider(p string) bool {
	switch p {
	case ProviderOpenAI, ProviderDeepSeek, ProviderZai, ProviderGemini:
		return true
	}
	return false
}

// GetReviewModel возвращает конфигурацию модели по умолчанию или по имени.
func (c *AppConfig) GetReviewModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.Default
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}

// APIKeyMissing сообщает, что у модели для review нет ключа.
func (c *AppConfig) APIKeyMissing() bool {
	m, ok := c.GetReviewModel("")
	return !ok || m.APIKey == ""
}

// EffectiveTimeout — таймаут модели, если задан, иначе review.timeout.
func (c *AppConfig) EffectiveTimeout(m ModelDef) time.Duration {
	if m.Timeout > 0 {
		return m.Timeout
	}
	return c.Review.Timeout
}
