package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultSettingsFile — имя файла с запомненными настройками UI.
const DefaultSettingsFile = "last_llm_model.json"

// Settings — пользовательские настройки, переживающие перезапуск.
//
// Сюда НЕ попадает план сортировки: планы живут только в памяти одного
// запуска. Запоминается лишь последняя выбранная модель, чтобы не
// выбирать её заново при каждом старте.
type Settings struct {
	LastModel string `json:"last_model"`
}

// LoadSettings читает настройки из JSON файла.
//
// Отсутствующий или битый файл — не ошибка: возвращаются пустые настройки.
func LoadSettings(path string) Settings {
	if path == "" {
		path = DefaultSettingsFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}
	}
	return s
}

// Save записывает настройки в JSON файл.
func (s Settings) Save(path string) error {
	if path == "" {
		path = DefaultSettingsFile
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// PickModel выбирает модель для запуска.
//
// Приоритет: явно запрошенная → запомненная (если всё ещё доступна) →
// первая доступная → дефолт из конфигурации.
func (s Settings) PickModel(requested, fallback string, available []string) string {
	if requested != "" {
		return requested
	}

	for _, m := range available {
		if m == s.LastModel && s.LastModel != "" {
			return s.LastModel
		}
	}

	if len(available) > 0 {
		return available[0]
	}
	return fallback
}
