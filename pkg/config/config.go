// Package config загружает конфигурацию сортировщика из YAML.
//
// Конфигурация содержит словарь категорий (единый для Plan Builder и
// Plan Store), список поддерживаемых форматов, настройки локального
// inference-сервера и параметры воркер-пула.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
// Зеркалит структуру config.yaml.
type AppConfig struct {
	Model      ModelConfig   `yaml:"model"`
	Categories []Category    `yaml:"categories"`
	Sorting    SortingConfig `yaml:"sorting"`
	OCR        OCRConfig     `yaml:"ocr"`
	App        AppSpecific   `yaml:"app"`
}

// Category — одна категория словаря.
//
// Name показывается человеку и отправляется модели,
// Folder — имя подпапки в целевой директории (ASCII, безопасно для ФС).
type Category struct {
	Name   string `yaml:"name"`
	Folder string `yaml:"folder"`
}

// ModelConfig — настройки локального inference-сервера (Ollama).
type ModelConfig struct {
	BaseURL     string        `yaml:"base_url"`     // OpenAI-совместимый endpoint, например "http://localhost:11434/v1"
	Name        string        `yaml:"name"`         // Имя модели ("phi4-mini")
	APIKey      string        `yaml:"api_key"`      // Поддерживает ${VAR}; для Ollama не обязателен
	Timeout     time.Duration `yaml:"timeout"`      // Таймаут одного вызова классификации
	MaxChars    int           `yaml:"max_chars"`    // Лимит символов текста в промпте
	RateLimit   float64       `yaml:"rate_limit"`   // Запросов в секунду к inference-серверу
	Burst       int           `yaml:"burst"`        // Burst для rate limiter
}

// SortingConfig — параметры построения и применения плана.
type SortingConfig struct {
	Workers           int      `yaml:"workers"`            // Размер воркер-пула Plan Builder
	SupportedFormats  []string `yaml:"supported_formats"`  // Расширения с точкой: ".pdf", ".docx"...
	CollisionAttempts int      `yaml:"collision_attempts"` // Макс. попыток подбора суффикса "name (N).ext"
}

// OCRConfig — настройки распознавания текста на изображениях.
type OCRConfig struct {
	Binary   string `yaml:"binary"`    // Путь к tesseract (по умолчанию ищется в PATH)
	Language string `yaml:"language"`  // Языки распознавания ("rus+eng")
	MaxWidth int    `yaml:"max_width"` // Даунскейл изображения перед OCR (px), 0 = без ресайза
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	LogFile      string `yaml:"log_file"`      // Путь к лог-файлу; пусто = автоимя в текущей директории
	SettingsFile string `yaml:"settings_file"` // Файл с запомненным выбором модели
}

// GetDefaults возвращает конфигурацию модели с заполненными дефолтами.
func (c *ModelConfig) GetDefaults() ModelConfig {
	result := *c

	if result.BaseURL == "" {
		result.BaseURL = "http://localhost:11434/v1"
	}
	if result.Name == "" {
		result.Name = "phi4-mini"
	}
	if result.APIKey == "" {
		// go-openai требует непустой ключ; Ollama его игнорирует
		result.APIKey = "ollama"
	}
	if result.Timeout == 0 {
		result.Timeout = 60 * time.Second
	}
	if result.MaxChars == 0 {
		result.MaxChars = 4000
	}
	if result.RateLimit == 0 {
		result.RateLimit = 2 // локальный сервер, не душим его параллельными запросами
	}
	if result.Burst == 0 {
		result.Burst = 1
	}

	return result
}

// GetDefaults возвращает параметры сортировки с заполненными дефолтами.
func (c *SortingConfig) GetDefaults() SortingConfig {
	result := *c

	if result.Workers == 0 {
		result.Workers = 4
	}
	if len(result.SupportedFormats) == 0 {
		result.SupportedFormats = []string{".pdf", ".docx", ".xlsx", ".png", ".jpg", ".jpeg"}
	}
	if result.CollisionAttempts == 0 {
		result.CollisionAttempts = 100
	}

	return result
}

// GetDefaults возвращает настройки OCR с заполненными дефолтами.
func (c *OCRConfig) GetDefaults() OCRConfig {
	result := *c

	if result.Binary == "" {
		result.Binary = "tesseract"
	}
	if result.Language == "" {
		result.Language = "rus+eng"
	}
	if result.MaxWidth == 0 {
		result.MaxWidth = 2000
	}

	return result
}

// DefaultCategories — словарь категорий из коробки.
//
// Русские названия видит человек и модель, ASCII-папки попадают
// в целевую директорию.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Книги", Folder: "Books"},
		{Name: "Проездные документы", Folder: "Travel"},
		{Name: "Бронирования", Folder: "Booking"},
		{Name: "Медицинские документы", Folder: "Medical"},
		{Name: "Финансовые документы", Folder: "Finance"},
		{Name: "Юридические документы", Folder: "Legal"},
		{Name: "Научные статьи", Folder: "Science"},
		{Name: "Бизнес-документы", Folder: "Business"},
		{Name: "Прочее", Folder: "Other"},
	}
}

// Default возвращает полную конфигурацию с дефолтами (без файла).
func Default() *AppConfig {
	cfg := &AppConfig{
		Categories: DefaultCategories(),
	}
	cfg.Model = cfg.Model.GetDefaults()
	cfg.Sorting = cfg.Sorting.GetDefaults()
	cfg.OCR = cfg.OCR.GetDefaults()
	return cfg
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
//
// Отсутствующие секции заполняются дефолтами. Пустой путь означает
// "работаем целиком на дефолтах".
func Load(path string) (*AppConfig, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Подстановка ${VAR} из окружения
	cfg.Model.APIKey = os.ExpandEnv(cfg.Model.APIKey)

	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories()
	}
	cfg.Model = cfg.Model.GetDefaults()
	cfg.Sorting = cfg.Sorting.GetDefaults()
	cfg.OCR = cfg.OCR.GetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет согласованность конфигурации.
//
// Словарь категорий не может содержать дубликаты имён или пустые папки:
// обе ошибки молча ломали бы план сортировки.
func (c *AppConfig) Validate() error {
	seen := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return fmt.Errorf("category with empty name in config")
		}
		if strings.TrimSpace(cat.Folder) == "" {
			return fmt.Errorf("category %q has empty folder", cat.Name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate category %q in config", cat.Name)
		}
		seen[name] = struct{}{}
	}

	if c.Sorting.Workers < 1 {
		return fmt.Errorf("sorting.workers must be >= 1, got %d", c.Sorting.Workers)
	}

	return nil
}

// Vocabulary возвращает список названий категорий (в порядке конфигурации).
//
// Это единственный источник словаря: он передаётся и в Plan Builder,
// и в Plan Store, и в промпт классификатора.
func (c *AppConfig) Vocabulary() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// FolderFor возвращает имя подпапки для категории.
//
// Для неизвестной категории возвращает ok=false — вызывающий решает,
// что с этим делать (Apply Engine такие записи не обрабатывает).
func (c *AppConfig) FolderFor(category string) (string, bool) {
	for _, cat := range c.Categories {
		if cat.Name == category {
			return cat.Folder, true
		}
	}
	return "", false
}

// IsSupported проверяет расширение файла (с точкой, регистр не важен).
func (c *AppConfig) IsSupported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, s := range c.Sorting.SupportedFormats {
		if strings.ToLower(s) == ext {
			return true
		}
	}
	return false
}
